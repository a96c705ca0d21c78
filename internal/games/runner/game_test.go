package runner

import (
	"testing"

	"github.com/skillrun/quizrunner/internal/config"
	"github.com/skillrun/quizrunner/internal/content"
	"github.com/skillrun/quizrunner/internal/core"
	"github.com/skillrun/quizrunner/internal/quiz"
)

// testRunnerConfig tightens question pacing so flow tests finish in a few
// dozen ticks.
func testRunnerConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Quiz.MinIntervalMs = 200
	cfg.Quiz.MaxIntervalMs = 200
	cfg.Gameplay.FeedbackMs = 100
	return cfg
}

func testDeck() content.Deck {
	return content.Deck{
		Questions: []quiz.Question{mcQuestion()},
		Meta:      quiz.Metadata{Title: "test"},
	}
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}
}

// stepUntilQuestion advances the game with empty input until a question is
// shown, failing the test if none appears.
func stepUntilQuestion(t *testing.T, g *Game) core.Status {
	t.Helper()
	for i := 0; i < 60; i++ {
		st := g.Step(frame()).Status
		if st.InQuestion {
			return st
		}
	}
	t.Fatal("no question triggered within 60 ticks")
	return core.Status{}
}

func TestGameResetInitialStatus(t *testing.T) {
	g := New(testRunnerConfig(), testDeck(), nil)
	g.Reset(testRuntime())

	st := g.Status()
	if st.Score != 0 {
		t.Errorf("Score = %d, want 0", st.Score)
	}
	if st.Lives != quiz.DefaultLives {
		t.Errorf("Lives = %d, want %d", st.Lives, quiz.DefaultLives)
	}
	if st.GameOver || st.Paused || st.InQuestion {
		t.Errorf("fresh game status = %+v", st)
	}
}

func TestGameDeterministicWithSeed(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	g1 := New(cfg, testDeck(), nil)
	g2 := New(cfg, testDeck(), nil)
	g1.Reset(testRuntime())
	g2.Reset(testRuntime())

	var s1, s2 core.Status
	for i := 0; i < 120; i++ {
		s1 = g1.Step(frame()).Status
		s2 = g2.Step(frame()).Status
	}

	if s1 != s2 {
		t.Errorf("same seed diverged: %+v vs %+v", s1, s2)
	}
}

func TestGamePauseToggle(t *testing.T) {
	g := New(testRunnerConfig(), testDeck(), nil)
	g.Reset(testRuntime())

	st := g.Step(frame(core.ActionPause)).Status
	if !st.Paused {
		t.Fatal("game not paused")
	}

	st = g.Step(frame()).Status
	if !st.Paused {
		t.Fatal("pause did not hold")
	}

	st = g.Step(frame(core.ActionPause)).Status
	if st.Paused {
		t.Fatal("game not resumed")
	}
}

func TestGameCorrectAnswerFlow(t *testing.T) {
	g := New(testRunnerConfig(), testDeck(), nil)
	g.Reset(testRuntime())

	stepUntilQuestion(t, g)

	// Move the cursor to "4" and submit
	g.Step(frame(core.ActionDown))
	st := g.Step(frame(core.ActionConfirm)).Status

	if !st.InQuestion {
		t.Fatal("feedback phase should still cover the game")
	}
	if st.Score < quiz.BaseAnswerReward {
		t.Errorf("Score = %d, want at least the answer reward %d", st.Score, quiz.BaseAnswerReward)
	}
	if st.Lives != quiz.DefaultLives {
		t.Errorf("Lives = %d, correct answer cost a life", st.Lives)
	}
	if st.Answered != 1 || st.Correct != 1 {
		t.Errorf("Answered/Correct = %d/%d, want 1/1", st.Answered, st.Correct)
	}

	// Feedback lasts 100ms; a few ticks later the run resumes
	for i := 0; i < 10; i++ {
		st = g.Step(frame()).Status
	}
	if st.InQuestion {
		t.Error("feedback did not auto-dismiss")
	}
	if st.GameOver {
		t.Error("game over after a correct answer")
	}
}

func TestGameWrongAnswerCostsLife(t *testing.T) {
	g := New(testRunnerConfig(), testDeck(), nil)
	g.Reset(testRuntime())

	stepUntilQuestion(t, g)

	// Cursor starts on "3", the wrong option
	st := g.Step(frame(core.ActionConfirm)).Status

	if st.Lives != quiz.DefaultLives-1 {
		t.Errorf("Lives = %d, want %d", st.Lives, quiz.DefaultLives-1)
	}
	if st.Correct != 0 || st.Answered != 1 {
		t.Errorf("Answered/Correct = %d/%d, want 1/0", st.Answered, st.Correct)
	}
}

func TestGameOverAfterLivesExhausted(t *testing.T) {
	g := New(testRunnerConfig(), testDeck(), nil)
	g.Reset(testRuntime())

	var st core.Status
	for i := 0; i < 3000; i++ {
		in := frame()
		if g.Status().InQuestion {
			in = frame(core.ActionConfirm) // Always pick the wrong option
		}
		st = g.Step(in).Status
		if st.GameOver {
			break
		}
	}

	if !st.GameOver {
		t.Fatal("game never ended despite wrong answers")
	}
	if st.Lives != 0 {
		t.Errorf("Lives = %d at game over, want 0", st.Lives)
	}

	// Further steps are inert
	st = g.Step(frame(core.ActionJump)).Status
	if !st.GameOver {
		t.Error("game over state did not hold")
	}
}

func TestGameFallsBackToDefaultDeck(t *testing.T) {
	bad := content.Deck{Questions: []quiz.Question{{ID: "broken"}}}
	g := New(testRunnerConfig(), bad, nil)
	g.Reset(testRuntime())

	// The invalid deck is replaced by the embedded one, so questions still flow
	stepUntilQuestion(t, g)
}

func TestGameStatsExposed(t *testing.T) {
	g := New(testRunnerConfig(), testDeck(), nil)
	g.Reset(testRuntime())

	stepUntilQuestion(t, g)
	g.Step(frame(core.ActionDown))
	g.Step(frame(core.ActionConfirm))

	stats := g.Stats()
	if stats.Answered != 1 || stats.Correct != 1 {
		t.Errorf("Stats() = %+v, want one correct answer", stats)
	}
	if stats.Accuracy != 100 {
		t.Errorf("Accuracy = %d, want 100", stats.Accuracy)
	}
}
