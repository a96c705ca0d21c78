package runner

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/skillrun/quizrunner/internal/core"
	"github.com/skillrun/quizrunner/internal/quiz"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func mcQuestion() quiz.Question {
	return quiz.Question{
		ID: "mc", Type: quiz.TypeMultipleChoice, Prompt: "What is 2 + 2?",
		Options: []string{"3", "4"}, Answer: "4", Feedback: "2 + 2 = 4.",
	}
}

func typedQuestion() quiz.Question {
	return quiz.Question{
		ID: "fb", Type: quiz.TypeFillBlank, Prompt: "Capital of France?",
		Answer: "Paris", Feedback: "Paris is the capital.",
	}
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func typeFrame(s string) core.InputFrame {
	f := core.NewInputFrame()
	for _, r := range s {
		f.Type(r)
	}
	return f
}

func TestOverlayRejectsUndisplayable(t *testing.T) {
	o := NewOverlay(testLogger(), 100)

	bad := mcQuestion()
	bad.Prompt = ""

	if err := o.DisplayQuestion(bad); err == nil {
		t.Fatal("DisplayQuestion accepted an undisplayable question")
	}
	if o.Visible() {
		t.Error("overlay visible after rejected question")
	}
}

func TestOverlayOptionSelection(t *testing.T) {
	o := NewOverlay(testLogger(), 100)
	if err := o.DisplayQuestion(mcQuestion()); err != nil {
		t.Fatalf("DisplayQuestion failed: %v", err)
	}

	var got []quiz.AnswerResult
	o.OnAnswer = func(r quiz.AnswerResult) { got = append(got, r) }

	o.HandleInput(frame(core.ActionDown))
	o.HandleInput(frame(core.ActionConfirm))

	if len(got) != 1 {
		t.Fatalf("OnAnswer fired %d times, want 1", len(got))
	}
	if !got[0].Correct || got[0].Selected != "4" {
		t.Errorf("result = %+v, want correct selection of 4", got[0])
	}
	if !o.InFeedback() {
		t.Error("overlay not in feedback after submit")
	}
}

func TestOverlayWrongOption(t *testing.T) {
	o := NewOverlay(testLogger(), 100)
	if err := o.DisplayQuestion(mcQuestion()); err != nil {
		t.Fatalf("DisplayQuestion failed: %v", err)
	}

	var got []quiz.AnswerResult
	o.OnAnswer = func(r quiz.AnswerResult) { got = append(got, r) }

	o.HandleInput(frame(core.ActionConfirm)) // Cursor starts at option "3"

	if len(got) != 1 {
		t.Fatalf("OnAnswer fired %d times, want 1", len(got))
	}
	if got[0].Correct {
		t.Error("wrong option graded as correct")
	}
	if got[0].CorrectAnswer != "4" {
		t.Errorf("CorrectAnswer = %q, want 4", got[0].CorrectAnswer)
	}
}

func TestOverlayTypedAnswerCaseInsensitive(t *testing.T) {
	o := NewOverlay(testLogger(), 100)
	if err := o.DisplayQuestion(typedQuestion()); err != nil {
		t.Fatalf("DisplayQuestion failed: %v", err)
	}

	var got []quiz.AnswerResult
	o.OnAnswer = func(r quiz.AnswerResult) { got = append(got, r) }

	o.HandleInput(typeFrame("  paRIs "))
	o.HandleInput(frame(core.ActionConfirm))

	if len(got) != 1 {
		t.Fatalf("OnAnswer fired %d times, want 1", len(got))
	}
	if !got[0].Correct {
		t.Errorf("typed answer %q not accepted for %q", got[0].Selected, got[0].CorrectAnswer)
	}
}

func TestOverlayErase(t *testing.T) {
	o := NewOverlay(testLogger(), 100)
	if err := o.DisplayQuestion(typedQuestion()); err != nil {
		t.Fatalf("DisplayQuestion failed: %v", err)
	}

	var got []quiz.AnswerResult
	o.OnAnswer = func(r quiz.AnswerResult) { got = append(got, r) }

	o.HandleInput(typeFrame("Parisx"))
	o.HandleInput(frame(core.ActionErase))
	o.HandleInput(frame(core.ActionConfirm))

	if len(got) != 1 || !got[0].Correct {
		t.Errorf("answer after erase = %+v, want correct Paris", got)
	}
}

func TestOverlayEmptyTypedAnswerIgnored(t *testing.T) {
	o := NewOverlay(testLogger(), 100)
	if err := o.DisplayQuestion(typedQuestion()); err != nil {
		t.Fatalf("DisplayQuestion failed: %v", err)
	}

	fired := 0
	o.OnAnswer = func(quiz.AnswerResult) { fired++ }

	o.HandleInput(frame(core.ActionConfirm))
	o.HandleInput(typeFrame("   "))
	o.HandleInput(frame(core.ActionConfirm))

	if fired != 0 {
		t.Errorf("empty answer submitted %d times", fired)
	}
	if o.InFeedback() {
		t.Error("overlay entered feedback without an answer")
	}
}

func TestOverlayFeedbackAutoDismiss(t *testing.T) {
	o := NewOverlay(testLogger(), 100)
	if err := o.DisplayQuestion(mcQuestion()); err != nil {
		t.Fatalf("DisplayQuestion failed: %v", err)
	}

	completed := 0
	o.OnFeedbackComplete = func() { completed++ }

	o.HandleInput(frame(core.ActionConfirm))

	o.Tick(99)
	if !o.Visible() || completed != 0 {
		t.Fatal("feedback dismissed before its duration elapsed")
	}

	o.Tick(1)
	if o.Visible() {
		t.Error("overlay still visible after feedback duration")
	}
	if completed != 1 {
		t.Errorf("OnFeedbackComplete fired %d times, want 1", completed)
	}
}

func TestOverlayForceHideCancelsDismiss(t *testing.T) {
	o := NewOverlay(testLogger(), 100)
	if err := o.DisplayQuestion(mcQuestion()); err != nil {
		t.Fatalf("DisplayQuestion failed: %v", err)
	}

	completed := 0
	o.OnFeedbackComplete = func() { completed++ }

	o.HandleInput(frame(core.ActionConfirm))
	o.ForceHide()
	o.Tick(1000)

	if o.Visible() {
		t.Error("overlay visible after ForceHide")
	}
	if completed != 0 {
		t.Error("OnFeedbackComplete fired after ForceHide")
	}
}

func TestOverlayInputIgnoredDuringFeedback(t *testing.T) {
	o := NewOverlay(testLogger(), 100)
	if err := o.DisplayQuestion(mcQuestion()); err != nil {
		t.Fatalf("DisplayQuestion failed: %v", err)
	}

	fired := 0
	o.OnAnswer = func(quiz.AnswerResult) { fired++ }

	o.HandleInput(frame(core.ActionConfirm))
	o.HandleInput(frame(core.ActionConfirm))
	o.HandleInput(frame(core.ActionDown, core.ActionConfirm))

	if fired != 1 {
		t.Errorf("OnAnswer fired %d times, want 1", fired)
	}
}

func TestOverlayRender(t *testing.T) {
	o := NewOverlay(testLogger(), 100)
	if err := o.DisplayQuestion(mcQuestion()); err != nil {
		t.Fatalf("DisplayQuestion failed: %v", err)
	}

	screen := core.NewScreen(80, 24)
	o.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "What is 2 + 2?") {
		t.Error("rendered overlay missing the prompt")
	}
	if !strings.Contains(out, "> 3") {
		t.Error("rendered overlay missing the cursor marker")
	}
}
