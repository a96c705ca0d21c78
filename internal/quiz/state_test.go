package quiz

import (
	"io"
	"math"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestState() *GameState {
	return NewGameState(testLogger(), rand.New(rand.NewSource(1)))
}

func TestInitialState(t *testing.T) {
	gs := newTestState()

	if gs.State() != StateMenu {
		t.Errorf("initial state = %v, want menu", gs.State())
	}
	if gs.Lives() != DefaultLives {
		t.Errorf("initial lives = %d, want %d", gs.Lives(), DefaultLives)
	}
	if gs.Score() != 0 {
		t.Errorf("initial score = %d, want 0", gs.Score())
	}
	iv := gs.QuestionIntervalMs()
	if iv < DefaultMinIntervalMs || iv > DefaultMaxIntervalMs {
		t.Errorf("initial interval %f outside [%f, %f]", iv, DefaultMinIntervalMs, DefaultMaxIntervalMs)
	}
}

func TestSetStateRejectsInvalid(t *testing.T) {
	gs := newTestState()
	gs.SetState(StatePlaying)

	gs.SetState(State(99))
	if gs.State() != StatePlaying {
		t.Errorf("state after invalid transition = %v, want playing", gs.State())
	}

	gs.SetState(State(-1))
	if gs.State() != StatePlaying {
		t.Errorf("state after negative transition = %v, want playing", gs.State())
	}
}

func TestStateListenersOrderedAndIsolated(t *testing.T) {
	gs := newTestState()

	var order []int
	gs.AddStateListener(func(StateChange) { order = append(order, 1) })
	gs.AddStateListener(func(StateChange) { panic("listener boom") })
	gs.AddStateListener(func(StateChange) { order = append(order, 3) })

	gs.SetState(StatePlaying)

	if len(order) != 2 || order[0] != 1 || order[1] != 3 {
		t.Errorf("listener order = %v, want [1 3]", order)
	}
	if gs.State() != StatePlaying {
		t.Errorf("state = %v, want playing despite panicking listener", gs.State())
	}
}

func TestStateListenerCancel(t *testing.T) {
	gs := newTestState()

	calls := 0
	sub := gs.AddStateListener(func(StateChange) { calls++ })

	gs.SetState(StatePlaying)
	sub.Cancel()
	gs.SetState(StatePaused)
	sub.Cancel() // Double cancel is harmless

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestStateChangePayload(t *testing.T) {
	gs := newTestState()

	var got StateChange
	gs.AddStateListener(func(c StateChange) { got = c })

	gs.SetState(StatePlaying)
	if got.Current != StatePlaying || got.Previous != StateMenu {
		t.Errorf("change = %+v, want menu->playing", got)
	}
}

func TestUpdateScoreClamping(t *testing.T) {
	gs := newTestState()

	gs.UpdateScore(-50)
	if gs.Score() != 0 {
		t.Errorf("score after negative delta from zero = %d, want 0", gs.Score())
	}

	gs.UpdateScore(100)
	gs.UpdateScore(-30)
	if gs.Score() != 70 {
		t.Errorf("score = %d, want 70", gs.Score())
	}

	gs.UpdateScore(2 * ScoreCeiling)
	if gs.Score() != ScoreCeiling {
		t.Errorf("score = %d, want ceiling %d", gs.Score(), ScoreCeiling)
	}
}

func TestUpdateScoreRejectsNonFinite(t *testing.T) {
	gs := newTestState()
	gs.UpdateScore(100)

	gs.UpdateScore(math.NaN())
	gs.UpdateScore(math.Inf(1))
	gs.UpdateScore(math.Inf(-1))

	if gs.Score() != 100 {
		t.Errorf("score after non-finite deltas = %d, want 100", gs.Score())
	}
}

func TestUpdateScoreRoundsFractions(t *testing.T) {
	gs := newTestState()
	gs.UpdateScore(10.6)
	if gs.Score() != 11 {
		t.Errorf("score = %d, want 11", gs.Score())
	}
}

func TestDecrementLivesFloorsAtZero(t *testing.T) {
	gs := newTestState()

	for i := 0; i < DefaultLives-1; i++ {
		if !gs.DecrementLives() {
			t.Fatalf("DecrementLives returned false with %d lives left", gs.Lives())
		}
	}
	if gs.DecrementLives() {
		t.Error("DecrementLives returned true on last life")
	}
	if gs.Lives() != 0 {
		t.Errorf("lives = %d, want 0", gs.Lives())
	}

	// Further decrements stay at zero
	gs.DecrementLives()
	if gs.Lives() != 0 {
		t.Errorf("lives = %d, want 0 after extra decrement", gs.Lives())
	}
}

func TestGameTimeValidation(t *testing.T) {
	gs := newTestState()
	gs.SetState(StatePlaying)

	gs.UpdateGameTime(100)
	gs.UpdateGameTime(-50)
	gs.UpdateGameTime(math.NaN())
	gs.UpdateGameTime(math.Inf(1))

	if gs.GameTimeMs() != 100 {
		t.Errorf("game time = %f, want 100", gs.GameTimeMs())
	}
}

func TestGameTimeStepCap(t *testing.T) {
	gs := newTestState()
	gs.SetState(StatePlaying)

	gs.UpdateGameTime(60_000)
	if gs.GameTimeMs() != MaxTimeStepMs {
		t.Errorf("game time = %f, want capped to %f", gs.GameTimeMs(), MaxTimeStepMs)
	}
}

func TestQuestionTimerOnlyAdvancesWhilePlaying(t *testing.T) {
	gs := newTestState()

	gs.UpdateGameTime(500)
	if gs.QuestionTimerMs() != 0 {
		t.Errorf("timer advanced in menu state: %f", gs.QuestionTimerMs())
	}

	gs.SetState(StatePlaying)
	gs.UpdateGameTime(500)
	if gs.QuestionTimerMs() != 500 {
		t.Errorf("timer = %f, want 500", gs.QuestionTimerMs())
	}

	gs.SetState(StatePaused)
	gs.UpdateGameTime(500)
	if gs.QuestionTimerMs() != 500 {
		t.Errorf("timer advanced while paused: %f", gs.QuestionTimerMs())
	}
	if gs.GameTimeMs() != 1500 {
		t.Errorf("game time = %f, want 1500", gs.GameTimeMs())
	}
}

func TestShouldTriggerQuestion(t *testing.T) {
	gs := newTestState()
	gs.SetIntervalBounds(1000, 1000)
	gs.ResetQuestionTimer()
	gs.SetState(StatePlaying)

	gs.UpdateGameTime(999)
	if gs.ShouldTriggerQuestion() {
		t.Error("triggered before interval elapsed")
	}

	gs.UpdateGameTime(1)
	if !gs.ShouldTriggerQuestion() {
		t.Error("did not trigger at interval")
	}
}

func TestResetQuestionTimerDrawsNewInterval(t *testing.T) {
	gs := newTestState()
	gs.SetIntervalBounds(2000, 3000)
	gs.SetQuestionPending()

	gs.ResetQuestionTimer()

	if gs.QuestionTimerMs() != 0 {
		t.Errorf("timer = %f, want 0", gs.QuestionTimerMs())
	}
	if gs.IsQuestionPending() {
		t.Error("pending flag survived timer reset")
	}
	iv := gs.QuestionIntervalMs()
	if iv < 2000 || iv > 3000 {
		t.Errorf("interval %f outside [2000, 3000]", iv)
	}
}

func TestSetIntervalBoundsValidation(t *testing.T) {
	gs := newTestState()
	gs.SetIntervalBounds(1000, 2000)

	gs.SetIntervalBounds(-1, 500)
	gs.SetIntervalBounds(2000, 1000)
	gs.SetIntervalBounds(math.NaN(), 1000)
	gs.SetIntervalBounds(0, 0)

	gs.ResetQuestionTimer()
	iv := gs.QuestionIntervalMs()
	if iv < 1000 || iv > 2000 {
		t.Errorf("interval %f outside last valid bounds [1000, 2000]", iv)
	}
}

func TestRecordAnswerScoring(t *testing.T) {
	gs := newTestState()

	// First correct answer: base reward, no streak bonus
	gs.RecordAnswer(true)
	if gs.Score() != BaseAnswerReward {
		t.Errorf("score = %d, want %d", gs.Score(), BaseAnswerReward)
	}
	if gs.Streak() != 1 {
		t.Errorf("streak = %d, want 1", gs.Streak())
	}

	// Second correct: base + one streak step
	gs.RecordAnswer(true)
	want := 2*BaseAnswerReward + StreakBonusStep
	if gs.Score() != want {
		t.Errorf("score = %d, want %d", gs.Score(), want)
	}

	// Wrong answer: penalty and streak reset
	gs.RecordAnswer(false)
	want -= WrongAnswerPenalty
	if gs.Score() != want {
		t.Errorf("score = %d, want %d", gs.Score(), want)
	}
	if gs.Streak() != 0 {
		t.Errorf("streak = %d, want 0", gs.Streak())
	}

	stats := gs.Stats()
	if stats.Answered != 3 || stats.Correct != 2 {
		t.Errorf("answered/correct = %d/%d, want 3/2", stats.Answered, stats.Correct)
	}
	if stats.Accuracy != 67 {
		t.Errorf("accuracy = %d, want 67", stats.Accuracy)
	}
}

func TestStreakBonusCaps(t *testing.T) {
	gs := newTestState()

	streakLen := MaxStreakBonus/StreakBonusStep + 3
	for i := 0; i < streakLen; i++ {
		gs.RecordAnswer(true)
	}

	// Sum the expected rewards with the capped bonus
	want := 0
	for i := 1; i <= streakLen; i++ {
		bonus := (i - 1) * StreakBonusStep
		if bonus > MaxStreakBonus {
			bonus = MaxStreakBonus
		}
		want += BaseAnswerReward + bonus
	}
	if gs.Score() != want {
		t.Errorf("score = %d, want %d", gs.Score(), want)
	}
}

func TestWrongAnswerFloorsAtZero(t *testing.T) {
	gs := newTestState()

	gs.RecordAnswer(false)
	if gs.Score() != 0 {
		t.Errorf("score = %d, want 0 (penalty floored)", gs.Score())
	}
}

func TestStatsAccuracyZeroWhenUnanswered(t *testing.T) {
	gs := newTestState()
	if acc := gs.Stats().Accuracy; acc != 0 {
		t.Errorf("accuracy = %d, want 0", acc)
	}
}

func TestSetGameSpeedValidation(t *testing.T) {
	gs := newTestState()

	gs.SetGameSpeed(2.5)
	gs.SetGameSpeed(0)
	gs.SetGameSpeed(-1)
	gs.SetGameSpeed(math.NaN())

	if gs.GameSpeed() != 2.5 {
		t.Errorf("speed = %f, want 2.5", gs.GameSpeed())
	}
}

func TestReset(t *testing.T) {
	gs := newTestState()
	gs.SetState(StatePlaying)
	gs.UpdateScore(500)
	gs.DecrementLives()
	gs.RecordAnswer(true)
	gs.UpdateGameTime(800)
	gs.SetQuestionPending()
	gs.SetPlayerPosition(5, 10)

	var notified bool
	gs.AddStateListener(func(c StateChange) {
		notified = true
		if c.Current != StateMenu {
			t.Errorf("reset notified %v, want menu", c.Current)
		}
	})

	gs.Reset()

	if gs.State() != StateMenu {
		t.Errorf("state = %v, want menu", gs.State())
	}
	if gs.Score() != 0 || gs.Lives() != DefaultLives || gs.Streak() != 0 {
		t.Errorf("score/lives/streak = %d/%d/%d, want 0/%d/0", gs.Score(), gs.Lives(), gs.Streak(), DefaultLives)
	}
	if gs.GameTimeMs() != 0 || gs.QuestionTimerMs() != 0 {
		t.Error("timers not reset")
	}
	if gs.IsQuestionPending() {
		t.Error("pending flag survived reset")
	}
	if (gs.PlayerPosition() != Position{}) {
		t.Errorf("player position = %+v, want zero", gs.PlayerPosition())
	}
	if !notified {
		t.Error("reset did not notify listeners")
	}
}

func TestDrawIntervalWithoutRNG(t *testing.T) {
	gs := NewGameState(testLogger(), nil)
	gs.SetIntervalBounds(4000, 6000)
	gs.ResetQuestionTimer()

	if iv := gs.QuestionIntervalMs(); iv != 5000 {
		t.Errorf("interval without rng = %f, want midpoint 5000", iv)
	}
}
