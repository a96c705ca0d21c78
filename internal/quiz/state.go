package quiz

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
)

// State is the game's finite-state machine phase. Exactly one is active.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateQuestion
	StateFeedback
	StatePaused
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateQuestion:
		return "question"
	case StateFeedback:
		return "feedback"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Valid reports whether s is a member of the state enumeration.
func (s State) Valid() bool {
	return s >= StateMenu && s <= StateGameOver
}

// StateChange is delivered to state listeners on every accepted transition.
type StateChange struct {
	Current  State
	Previous State
}

// Gameplay tuning constants. Invalid inputs never crash the tick loop: the
// mutators below log a diagnostic and keep the last valid value instead.
const (
	ScoreCeiling       = 999_999 // score saturates here
	DefaultLives       = 3
	BaseAnswerReward   = 50
	WrongAnswerPenalty = 10
	StreakBonusStep    = 10
	MaxStreakBonus     = 50

	// MaxTimeStepMs caps a single game-time delta so a stall (for example a
	// suspended terminal) cannot advance the question timer by minutes at once.
	MaxTimeStepMs = 1000.0

	DefaultMinIntervalMs = 5000.0
	DefaultMaxIntervalMs = 10000.0
)

// Position mirrors the player's location as reported by the runner layer.
// It is informational only; the quiz engine never moves the player.
type Position struct {
	X, Y float64
}

// GameState owns the finite-state machine, score, lives, and the question
// timer. All mutation goes through validating methods; bad input is rejected
// with a logged diagnostic and the previous value retained.
type GameState struct {
	logger *log.Logger
	rng    *rand.Rand

	state    State
	previous State

	score    int
	lives    int
	answered int
	correct  int
	streak   int

	gameTimeMs      float64
	questionTimerMs float64
	intervalMs      float64
	intervalMinMs   float64
	intervalMaxMs   float64
	pending         bool

	playerPos Position
	gameSpeed float64

	listeners *notifier[StateChange]
}

// NewGameState creates a game state in the menu phase with full lives.
// The rng drives question interval draws; pass a seeded source for
// deterministic tests.
func NewGameState(logger *log.Logger, rng *rand.Rand) *GameState {
	gs := &GameState{
		logger:        logger,
		rng:           rng,
		state:         StateMenu,
		previous:      StateMenu,
		lives:         DefaultLives,
		intervalMinMs: DefaultMinIntervalMs,
		intervalMaxMs: DefaultMaxIntervalMs,
		gameSpeed:     1.0,
		listeners:     newNotifier[StateChange](logger),
	}
	gs.intervalMs = gs.drawInterval()
	return gs
}

// State returns the current FSM state.
func (g *GameState) State() State {
	return g.state
}

// PreviousState returns the state before the last accepted transition.
func (g *GameState) PreviousState() State {
	return g.previous
}

// SetState transitions to next. Requests outside the enumeration are rejected
// as a no-op with a diagnostic; they are not an error visible to callers.
// Listeners are notified synchronously, in registration order, before this
// method returns. A panicking listener is isolated and does not block others.
func (g *GameState) SetState(next State) {
	if !next.Valid() {
		g.logger.Warn("quiz: rejected invalid state transition", "requested", int(next), "current", g.state)
		return
	}
	prev := g.state
	g.previous = prev
	g.state = next
	g.listeners.notify(StateChange{Current: next, Previous: prev})
}

// AddStateListener registers fn for state-change notifications and returns a
// handle that removes it.
func (g *GameState) AddStateListener(fn func(StateChange)) Subscription {
	return g.listeners.subscribe(fn)
}

// UpdateScore adds delta to the score, clamped to [0, ScoreCeiling].
// Non-finite deltas are rejected with a diagnostic.
func (g *GameState) UpdateScore(delta float64) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		g.logger.Warn("quiz: rejected non-finite score delta", "delta", delta)
		return
	}
	g.score += int(math.Round(delta))
	if g.score < 0 {
		g.score = 0
	}
	if g.score > ScoreCeiling {
		g.score = ScoreCeiling
	}
}

// Score returns the current score.
func (g *GameState) Score() int {
	return g.score
}

// Lives returns the remaining lives.
func (g *GameState) Lives() int {
	return g.lives
}

// DecrementLives removes one life, flooring at zero, and reports whether any
// lives remain.
func (g *GameState) DecrementLives() bool {
	if g.lives > 0 {
		g.lives--
	}
	return g.lives > 0
}

// UpdateGameTime advances game time by deltaMs. Negative or non-finite deltas
// are rejected. A single step is capped at MaxTimeStepMs. The question timer
// only advances while the game is in the playing state.
func (g *GameState) UpdateGameTime(deltaMs float64) {
	if math.IsNaN(deltaMs) || math.IsInf(deltaMs, 0) || deltaMs < 0 {
		g.logger.Warn("quiz: rejected invalid time delta", "delta", deltaMs)
		return
	}
	if deltaMs > MaxTimeStepMs {
		deltaMs = MaxTimeStepMs
	}
	g.gameTimeMs += deltaMs
	if g.state == StatePlaying {
		g.questionTimerMs += deltaMs
	}
}

// GameTimeMs returns total elapsed game time in milliseconds.
func (g *GameState) GameTimeMs() float64 {
	return g.gameTimeMs
}

// ShouldTriggerQuestion reports whether the question timer has reached the
// current interval.
func (g *GameState) ShouldTriggerQuestion() bool {
	return g.questionTimerMs >= g.intervalMs
}

// ResetQuestionTimer zeroes the timer, draws a fresh random interval from the
// configured bounds, and clears the pending flag.
func (g *GameState) ResetQuestionTimer() {
	g.questionTimerMs = 0
	g.intervalMs = g.drawInterval()
	g.pending = false
}

// QuestionTimerMs returns the current question timer value.
func (g *GameState) QuestionTimerMs() float64 {
	return g.questionTimerMs
}

// QuestionIntervalMs returns the currently drawn trigger interval.
func (g *GameState) QuestionIntervalMs() float64 {
	return g.intervalMs
}

// SetIntervalBounds replaces the interval draw bounds. Invalid bounds
// (non-positive, inverted, or non-finite) are rejected with a diagnostic.
func (g *GameState) SetIntervalBounds(minMs, maxMs float64) {
	if !validIntervalBounds(minMs, maxMs) {
		g.logger.Warn("quiz: rejected invalid interval bounds", "min", minMs, "max", maxMs)
		return
	}
	g.intervalMinMs = minMs
	g.intervalMaxMs = maxMs
}

// validIntervalBounds reports whether the pair is usable as draw bounds:
// finite, positive, and not inverted.
func validIntervalBounds(minMs, maxMs float64) bool {
	if math.IsNaN(minMs) || math.IsNaN(maxMs) || math.IsInf(minMs, 0) || math.IsInf(maxMs, 0) {
		return false
	}
	return minMs > 0 && maxMs >= minMs
}

// SetQuestionPending marks a question as triggered but not yet resolved.
// The flag is the single-flight guard against overlapping triggers.
func (g *GameState) SetQuestionPending() {
	g.pending = true
}

// IsQuestionPending reports whether a triggered question awaits resolution.
func (g *GameState) IsQuestionPending() bool {
	return g.pending
}

// RecordAnswer updates metrics and score for an answered question. A correct
// answer earns the base reward plus a bounded streak bonus; a wrong answer
// costs a fixed penalty (score floors at zero) and resets the streak.
func (g *GameState) RecordAnswer(correct bool) {
	g.answered++
	if correct {
		g.correct++
		g.streak++
		bonus := (g.streak - 1) * StreakBonusStep
		if bonus > MaxStreakBonus {
			bonus = MaxStreakBonus
		}
		g.UpdateScore(float64(BaseAnswerReward + bonus))
		return
	}
	g.streak = 0
	g.UpdateScore(-WrongAnswerPenalty)
}

// Streak returns the current run of consecutive correct answers.
func (g *GameState) Streak() int {
	return g.streak
}

// GameStats is a read-only snapshot of the scoring metrics.
type GameStats struct {
	Score           int
	Lives           int
	Answered        int
	Correct         int
	Accuracy        int // 0-100, rounded; 0 when nothing answered
	GameTimeSeconds float64
	Streak          int
}

// Stats returns the current metrics snapshot.
func (g *GameState) Stats() GameStats {
	accuracy := 0
	if g.answered > 0 {
		accuracy = int(math.Round(float64(g.correct) / float64(g.answered) * 100))
	}
	return GameStats{
		Score:           g.score,
		Lives:           g.lives,
		Answered:        g.answered,
		Correct:         g.correct,
		Accuracy:        accuracy,
		GameTimeSeconds: g.gameTimeMs / 1000,
		Streak:          g.streak,
	}
}

// SetPlayerPosition mirrors the player's position from the runner layer.
func (g *GameState) SetPlayerPosition(x, y float64) {
	g.playerPos = Position{X: x, Y: y}
}

// PlayerPosition returns the mirrored player position.
func (g *GameState) PlayerPosition() Position {
	return g.playerPos
}

// SetGameSpeed sets the current world speed. Non-positive or non-finite
// values are rejected with a diagnostic.
func (g *GameState) SetGameSpeed(speed float64) {
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed <= 0 {
		g.logger.Warn("quiz: rejected invalid game speed", "speed", speed)
		return
	}
	g.gameSpeed = speed
}

// GameSpeed returns the current world speed.
func (g *GameState) GameSpeed() float64 {
	return g.gameSpeed
}

// Reset restores every field to its initial value and returns to the menu
// state. It is always legal, regardless of the current state. Listeners are
// notified of the transition to menu.
func (g *GameState) Reset() {
	g.score = 0
	g.lives = DefaultLives
	g.answered = 0
	g.correct = 0
	g.streak = 0
	g.gameTimeMs = 0
	g.questionTimerMs = 0
	g.pending = false
	g.playerPos = Position{}
	g.gameSpeed = 1.0
	g.intervalMs = g.drawInterval()
	prev := g.state
	g.previous = prev
	g.state = StateMenu
	g.listeners.notify(StateChange{Current: StateMenu, Previous: prev})
}

// drawInterval picks a uniform random interval within the configured bounds.
func (g *GameState) drawInterval() float64 {
	span := g.intervalMaxMs - g.intervalMinMs
	if span <= 0 {
		return g.intervalMinMs
	}
	if g.rng == nil {
		return g.intervalMinMs + span/2
	}
	return g.intervalMinMs + g.rng.Float64()*span
}
