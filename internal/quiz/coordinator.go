package quiz

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
)

// Presenter is the presentation boundary the coordinator drives. The terminal
// overlay implements it; tests substitute a fake. DisplayQuestion may fail or
// panic without breaking the flow: the coordinator recovers and resumes play.
type Presenter interface {
	DisplayQuestion(q Question) error
	ForceHide()
}

// AnswerResult is reported back by the presentation when the player answers.
type AnswerResult struct {
	Correct       bool
	Selected      string
	CorrectAnswer string
	Feedback      string
}

// FlowConfig tunes when and how questions interrupt the run.
type FlowConfig struct {
	MinIntervalMs  float64
	MaxIntervalMs  float64
	RandomizeOrder bool
	AllowRepeat    bool
	HistorySize    int
}

// DefaultFlowConfig returns the stock pacing configuration.
func DefaultFlowConfig() FlowConfig {
	return FlowConfig{
		MinIntervalMs: DefaultMinIntervalMs,
		MaxIntervalMs: DefaultMaxIntervalMs,
		AllowRepeat:   false,
		HistorySize:   DefaultHistorySize,
	}
}

// FlowPatch is a partial FlowConfig; nil fields keep their current value.
type FlowPatch struct {
	MinIntervalMs  *float64
	MaxIntervalMs  *float64
	RandomizeOrder *bool
	AllowRepeat    *bool
	HistorySize    *int
}

// restartDelayMs is how long the coordinator waits before attempting to
// restart the flow after a critical failure in the trigger path.
const restartDelayMs = 5000.0

// Coordinator owns the question timing gate and orchestrates the flow from
// trigger through display to answer and feedback. Every sub-step is fault
// isolated: a failing presenter or listener degrades to resumed play, never
// to a stuck question state or a crashed tick.
type Coordinator struct {
	logger    *log.Logger
	state     *GameState
	queue     *ContentQueue
	presenter Presenter
	history   *History
	rng       *rand.Rand
	cfg       FlowConfig

	active      bool
	current     *Question
	lastResult  AnswerResult
	tasks       *TaskRunner
	restartTask *TaskHandle

	questionStart    *notifier[Question]
	questionComplete *notifier[AnswerResult]
}

// NewCoordinator wires a coordinator to its collaborators. The rng is used
// for randomized question order; pass a seeded source for determinism.
func NewCoordinator(state *GameState, queue *ContentQueue, presenter Presenter, logger *log.Logger, rng *rand.Rand) *Coordinator {
	cfg := DefaultFlowConfig()
	return &Coordinator{
		logger:           logger,
		state:            state,
		queue:            queue,
		presenter:        presenter,
		history:          NewHistory(cfg.HistorySize),
		rng:              rng,
		cfg:              cfg,
		tasks:            NewTaskRunner(),
		questionStart:    newNotifier[Question](logger),
		questionComplete: newNotifier[AnswerResult](logger),
	}
}

// Start activates the flow. It fails when the queue holds no questions.
func (c *Coordinator) Start() bool {
	if !c.queue.HasQuestions() {
		c.logger.Warn("quiz: cannot start flow without questions")
		return false
	}
	c.active = true
	c.state.ResetQuestionTimer()
	return true
}

// Stop deactivates the flow and cancels any pending restart. Idempotent.
// Stopping only prevents new triggers; it does not abort a question that is
// already displayed.
func (c *Coordinator) Stop() {
	c.active = false
	c.restartTask.Cancel()
	c.restartTask = nil
}

// IsActive reports whether the flow is running.
func (c *Coordinator) IsActive() bool {
	return c.active
}

// Update advances the flow by deltaMs of simulated time. It is a no-op while
// inactive or for invalid deltas. While the game is playing, elapsed time is
// forwarded to the game state and, once the timer gate opens and no question
// is pending, a question is triggered. A failure in one sub-step aborts the
// rest of this tick's work without propagating to the caller.
func (c *Coordinator) Update(deltaMs float64) {
	if math.IsNaN(deltaMs) || math.IsInf(deltaMs, 0) || deltaMs < 0 {
		c.logger.Warn("quiz: ignoring invalid flow delta", "delta", deltaMs)
		return
	}

	// Scheduled tasks (delayed restart after a critical failure) keep
	// advancing even while the flow itself is stopped.
	if !c.step("tasks", func() { c.tasks.Advance(deltaMs) }) {
		return
	}

	if !c.active || c.state.State() != StatePlaying {
		return
	}

	if !c.step("time", func() { c.state.UpdateGameTime(deltaMs) }) {
		return
	}

	if c.state.ShouldTriggerQuestion() && !c.state.IsQuestionPending() {
		c.TriggerQuestion()
	}
}

// TriggerQuestion pulls the next question and hands it to the presenter.
// Guarded by the active flag and the pending single-flight flag. Any panic in
// the trigger path engages full recovery: flow stopped, play resumed, display
// hidden, delayed restart scheduled.
func (c *Coordinator) TriggerQuestion() {
	if !c.active {
		return
	}
	if c.state.IsQuestionPending() {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("quiz: critical failure while triggering question", "panic", r)
			c.recoverCritical()
		}
	}()

	if !c.queue.HasQuestions() {
		c.recoverNoQuestions()
		return
	}

	q := c.nextQuestion()
	if !q.Displayable() {
		// One retry with the first record, then abandon the trigger.
		first, ok := c.queue.ByIndex(0)
		if !ok || !first.Displayable() {
			c.logger.Warn("quiz: abandoning trigger, no displayable question")
			c.resumePlaying()
			return
		}
		q = first
	}

	c.state.SetQuestionPending()
	c.state.SetState(StateQuestion)

	if err := c.presenter.DisplayQuestion(q); err != nil {
		c.logger.Error("quiz: presenter failed to display question", "id", q.ID, "error", err)
		c.presenter.ForceHide()
		c.resumePlaying()
		return
	}

	c.history.Record(q.ID)
	c.current = &q
	c.questionStart.notify(q)
}

// ForceTriggerQuestion bypasses the timing gate. It only acts while the flow
// is active and the game is in the playing state.
func (c *Coordinator) ForceTriggerQuestion() {
	if !c.active || c.state.State() != StatePlaying {
		return
	}
	c.TriggerQuestion()
}

// HandleAnswer records the answer outcome reported by the presentation and
// moves the game into the feedback phase.
func (c *Coordinator) HandleAnswer(res AnswerResult) {
	if !c.state.IsQuestionPending() {
		c.logger.Warn("quiz: answer reported with no pending question")
		return
	}
	c.state.RecordAnswer(res.Correct)
	if c.state.State() == StateQuestion {
		c.state.SetState(StateFeedback)
	}
	c.lastResult = res
}

// HandleFeedbackComplete is invoked when the presentation finishes showing
// feedback. It resets the question timer (clearing the pending flag), resumes
// play if the game is still in a question phase, and notifies
// question-complete listeners.
func (c *Coordinator) HandleFeedbackComplete() {
	c.state.ResetQuestionTimer()
	if s := c.state.State(); s == StateQuestion || s == StateFeedback {
		c.state.SetState(StatePlaying)
	}
	res := c.lastResult
	c.current = nil
	c.lastResult = AnswerResult{}
	c.questionComplete.notify(res)
}

// Configure merges the patch into the current flow config. New interval
// bounds take effect on the next interval draw. A patch whose merged bounds
// would be invalid leaves the interval config untouched, so Config() always
// reflects the bounds actually in effect.
func (c *Coordinator) Configure(patch FlowPatch) {
	if patch.MinIntervalMs != nil || patch.MaxIntervalMs != nil {
		minMs, maxMs := c.cfg.MinIntervalMs, c.cfg.MaxIntervalMs
		if patch.MinIntervalMs != nil {
			minMs = *patch.MinIntervalMs
		}
		if patch.MaxIntervalMs != nil {
			maxMs = *patch.MaxIntervalMs
		}
		if validIntervalBounds(minMs, maxMs) {
			c.cfg.MinIntervalMs = minMs
			c.cfg.MaxIntervalMs = maxMs
			c.state.SetIntervalBounds(minMs, maxMs)
		} else {
			c.logger.Warn("quiz: rejected invalid interval bounds", "min", minMs, "max", maxMs)
		}
	}
	if patch.RandomizeOrder != nil {
		c.cfg.RandomizeOrder = *patch.RandomizeOrder
	}
	if patch.AllowRepeat != nil {
		c.cfg.AllowRepeat = *patch.AllowRepeat
	}
	if patch.HistorySize != nil {
		c.cfg.HistorySize = *patch.HistorySize
		c.history.Resize(*patch.HistorySize)
	}
}

// Config returns the current flow configuration.
func (c *Coordinator) Config() FlowConfig {
	return c.cfg
}

// Reset clears history, deactivates the flow, and rewinds the timer and the
// queue cursor.
func (c *Coordinator) Reset() {
	c.history.Clear()
	c.Stop()
	c.tasks.Clear()
	c.state.ResetQuestionTimer()
	c.queue.ResetCursor()
	c.current = nil
	c.lastResult = AnswerResult{}
}

// CurrentQuestion returns the question currently awaiting an answer, if any.
func (c *Coordinator) CurrentQuestion() (Question, bool) {
	if c.current == nil {
		return Question{}, false
	}
	return *c.current, true
}

// OnQuestionStart registers a listener fired when a question is displayed.
func (c *Coordinator) OnQuestionStart(fn func(Question)) Subscription {
	return c.questionStart.subscribe(fn)
}

// OnQuestionComplete registers a listener fired when a question's feedback
// finishes and play resumes.
func (c *Coordinator) OnQuestionComplete(fn func(AnswerResult)) Subscription {
	return c.questionComplete.subscribe(fn)
}

// nextQuestion retrieves a candidate honoring order and repeat settings.
// When repeats are disallowed, retrieval is bounded to 2*queue size attempts
// before giving up and returning the latest candidate.
func (c *Coordinator) nextQuestion() Question {
	if c.cfg.RandomizeOrder && c.rng != nil && c.queue.Count() > 0 {
		return c.randomQuestion()
	}

	if c.cfg.AllowRepeat || c.queue.Count() <= 1 {
		return c.queue.Next()
	}

	var candidate Question
	maxAttempts := 2 * c.queue.Count()
	for i := 0; i < maxAttempts; i++ {
		candidate = c.queue.Next()
		if !c.history.Contains(candidate.ID) {
			return candidate
		}
	}
	c.logger.Warn("quiz: exhausted unique-question attempts, repeating", "id", candidate.ID)
	return candidate
}

// randomQuestion picks a uniformly random record, still honoring the repeat
// history when possible.
func (c *Coordinator) randomQuestion() Question {
	count := c.queue.Count()
	maxAttempts := 2 * count
	var candidate Question
	for i := 0; i < maxAttempts; i++ {
		q, ok := c.queue.ByIndex(c.rng.Intn(count))
		if !ok {
			break
		}
		candidate = q
		if c.cfg.AllowRepeat || !c.history.Contains(q.ID) {
			return q
		}
	}
	if candidate.ID == "" {
		return c.queue.Next()
	}
	return candidate
}

// recoverNoQuestions handles a trigger with an empty queue: rewind the
// cursor, and if the queue is genuinely empty, stop the flow and resume play.
func (c *Coordinator) recoverNoQuestions() {
	c.queue.ResetCursor()
	if c.queue.HasQuestions() {
		return
	}
	c.logger.Warn("quiz: stopping flow, question queue is empty")
	c.Stop()
	c.resumePlaying()
}

// recoverCritical is the last-resort self-healing path: stop the flow, force
// the game back to play, hide any presentation artifact, and schedule a
// delayed restart attempt.
func (c *Coordinator) recoverCritical() {
	c.Stop()
	c.resumePlaying()
	c.state.ResetQuestionTimer()
	c.presenter.ForceHide()
	c.restartTask = c.tasks.After(restartDelayMs, func() {
		c.logger.Info("quiz: attempting flow restart after failure")
		c.Start()
	})
}

// resumePlaying returns the game to the playing state if it was mid-question.
func (c *Coordinator) resumePlaying() {
	if s := c.state.State(); s == StateQuestion || s == StateFeedback {
		c.state.SetState(StatePlaying)
	}
	c.state.ResetQuestionTimer()
}

// step runs one fault-isolated sub-step of an update tick.
func (c *Coordinator) step(stage string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("quiz: flow sub-step failed", "stage", stage, "panic", r)
			ok = false
		}
	}()
	fn()
	return true
}
