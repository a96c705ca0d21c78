package runner

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/skillrun/quizrunner/internal/core"
	"github.com/skillrun/quizrunner/internal/quiz"
)

// Overlay is the in-game question and feedback display. It implements
// quiz.Presenter: the coordinator hands it a question, the player answers
// with the cursor or by typing, and the graded result flows back through the
// OnAnswer callback. Feedback stays visible for a fixed duration and then
// auto-dismisses through a cancellable scheduled task.
type Overlay struct {
	logger     *log.Logger
	tasks      *quiz.TaskRunner
	feedbackMs float64

	visible  bool
	question quiz.Question
	cursor   int
	typed    []rune
	answered bool
	result   quiz.AnswerResult
	dismiss  *quiz.TaskHandle

	// OnAnswer is invoked once per question with the graded result.
	OnAnswer func(quiz.AnswerResult)
	// OnFeedbackComplete is invoked when the feedback display ends.
	OnFeedbackComplete func()
}

// NewOverlay creates a hidden overlay. feedbackMs controls how long the
// graded result stays on screen before auto-dismissing.
func NewOverlay(logger *log.Logger, feedbackMs float64) *Overlay {
	return &Overlay{
		logger:     logger,
		tasks:      quiz.NewTaskRunner(),
		feedbackMs: feedbackMs,
	}
}

// DisplayQuestion shows the question and resets the answer state.
func (o *Overlay) DisplayQuestion(q quiz.Question) error {
	if !q.Displayable() {
		return fmt.Errorf("overlay: question %q is not displayable", q.ID)
	}
	o.dismiss.Cancel()
	o.dismiss = nil
	o.visible = true
	o.question = q
	o.cursor = 0
	o.typed = o.typed[:0]
	o.answered = false
	o.result = quiz.AnswerResult{}
	return nil
}

// ForceHide hides the overlay immediately, cancelling any pending dismiss.
// The feedback-complete callback does not fire.
func (o *Overlay) ForceHide() {
	o.dismiss.Cancel()
	o.dismiss = nil
	o.visible = false
	o.answered = false
}

// Visible reports whether the overlay currently covers the game view.
func (o *Overlay) Visible() bool {
	return o.visible
}

// InFeedback reports whether the overlay is showing a graded result.
func (o *Overlay) InFeedback() bool {
	return o.visible && o.answered
}

// Tick advances the overlay's simulated clock, firing the feedback dismiss
// when its delay elapses.
func (o *Overlay) Tick(deltaMs float64) {
	o.tasks.Advance(deltaMs)
}

// HandleInput processes one frame of player input while a question is shown.
// Input during feedback is ignored.
func (o *Overlay) HandleInput(in core.InputFrame) {
	if !o.visible || o.answered {
		return
	}

	if o.question.Type.HasOptions() {
		switch {
		case in.Has(core.ActionUp):
			if o.cursor > 0 {
				o.cursor--
			}
		case in.Has(core.ActionDown):
			if o.cursor < len(o.question.Options)-1 {
				o.cursor++
			}
		case in.Has(core.ActionConfirm):
			o.submit(o.question.Options[o.cursor])
		}
		return
	}

	for _, r := range in.Runes {
		if unicode.IsPrint(r) && len(o.typed) < 64 {
			o.typed = append(o.typed, r)
		}
	}
	if in.Has(core.ActionErase) && len(o.typed) > 0 {
		o.typed = o.typed[:len(o.typed)-1]
	}
	if in.Has(core.ActionConfirm) {
		answer := strings.TrimSpace(string(o.typed))
		if answer == "" {
			return
		}
		o.submit(answer)
	}
}

// submit grades the selected answer, switches to feedback, and schedules the
// auto-dismiss.
func (o *Overlay) submit(selected string) {
	res := quiz.AnswerResult{
		Correct:       o.matches(selected),
		Selected:      selected,
		CorrectAnswer: o.question.Answer,
		Feedback:      o.question.Feedback,
	}
	o.answered = true
	o.result = res

	if o.OnAnswer != nil {
		o.OnAnswer(res)
	}

	o.dismiss = o.tasks.After(o.feedbackMs, func() {
		o.dismiss = nil
		o.visible = false
		o.answered = false
		if o.OnFeedbackComplete != nil {
			o.OnFeedbackComplete()
		}
	})
}

// matches grades a submitted answer. Option-based questions compare exactly;
// typed answers compare case-insensitively after trimming.
func (o *Overlay) matches(selected string) bool {
	if o.question.Type.HasOptions() {
		return selected == o.question.Answer
	}
	return strings.EqualFold(strings.TrimSpace(selected), strings.TrimSpace(o.question.Answer))
}

// Render draws the overlay box onto the screen.
func (o *Overlay) Render(screen *core.Screen) {
	if !o.visible {
		return
	}

	boxW := core.Clamp(screen.Width()-10, 30, 60)
	innerW := boxW - 4

	promptLines := wrapText(o.question.Prompt, innerW)
	contentH := len(promptLines) + 1
	if o.answered {
		contentH += 2 + len(wrapText(o.result.Feedback, innerW))
	} else if o.question.Type.HasOptions() {
		contentH += len(o.question.Options)
	} else {
		contentH += 2
	}

	boxH := contentH + 2
	boxX := (screen.Width() - boxW) / 2
	boxY := core.Max((screen.Height()-boxH)/2, 1)
	box := core.NewRect(boxX, boxY, boxW, boxH)

	screen.DrawRect(core.NewRect(boxX+1, boxY+1, boxW-2, boxH-2), ' ')
	screen.DrawBox(box)

	y := boxY + 1
	for _, line := range promptLines {
		screen.DrawTextColored(boxX+2, y, line, core.ColorBrightWhite)
		y++
	}
	y++

	if o.answered {
		o.renderFeedback(screen, boxX+2, y, innerW)
		return
	}

	if o.question.Type.HasOptions() {
		for i, opt := range o.question.Options {
			marker := "  "
			color := core.ColorDefault
			if i == o.cursor {
				marker = "> "
				color = core.ColorBrightYellow
			}
			screen.DrawTextColored(boxX+2, y, marker+opt, color)
			y++
		}
		return
	}

	screen.DrawTextColored(boxX+2, y, "Answer: "+string(o.typed)+"_", core.ColorBrightCyan)
	screen.DrawTextColored(boxX+2, y+1, "(type and press Enter)", core.ColorGray)
}

// renderFeedback draws the graded result inside the box.
func (o *Overlay) renderFeedback(screen *core.Screen, x, y, width int) {
	if o.result.Correct {
		screen.DrawTextColored(x, y, "Correct!", core.ColorBrightGreen)
	} else {
		screen.DrawTextColored(x, y, "Wrong! Answer: "+o.result.CorrectAnswer, core.ColorBrightRed)
	}
	y += 2
	for _, line := range wrapText(o.result.Feedback, width) {
		screen.DrawTextColored(x, y, line, core.ColorWhite)
		y++
	}
}

// wrapText breaks text into lines no wider than width, splitting on spaces.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) <= width {
			current += " " + word
			continue
		}
		lines = append(lines, current)
		current = word
	}
	lines = append(lines, current)
	return lines
}
