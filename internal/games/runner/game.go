// Package runner implements the quiz runner game: an endless side-scroller
// where the player jumps hurdles while the question flow periodically
// interrupts the run. Correct answers grant a speed boost, wrong answers cost
// a life and cause a stumble.
package runner

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/skillrun/quizrunner/internal/config"
	"github.com/skillrun/quizrunner/internal/content"
	"github.com/skillrun/quizrunner/internal/core"
	"github.com/skillrun/quizrunner/internal/quiz"
)

// Game wires the runner mechanics to the quiz engine. The quiz.GameState FSM
// is the single source of truth for the game phase; the runner only advances
// the world while the state is playing.
type Game struct {
	logger *log.Logger
	cfg    config.RunnerConfig
	deck   content.Deck

	runtime core.RuntimeConfig
	state   *quiz.GameState
	queue   *quiz.ContentQueue
	coord   *quiz.Coordinator
	overlay *Overlay

	obstacles  *ObstacleManager
	difficulty *config.DifficultyManager

	// Player physics
	playerY    float64
	playerVel  float64
	isGrounded bool
	ducking    bool
	groundY    int

	tickCount   int
	legFrame    int
	distanceAcc float64

	boostTicks   int
	stumbleTicks int
	invulnTicks  int
}

// New creates a runner game playing the given deck.
func New(cfg config.RunnerConfig, deck content.Deck, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		logger: logger,
		cfg:    cfg,
		deck:   deck,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "runner"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Quiz Runner"
}

// Deck returns the deck this game is playing.
func (g *Game) Deck() content.Deck {
	return g.deck
}

// Reset initializes or restarts the game.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.runtime = rt
	seed := rt.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	g.state = quiz.NewGameState(g.logger, rng)
	g.queue = quiz.NewContentQueue(g.logger)
	if err := g.queue.Load(g.deck.Questions, g.deck.Meta); err != nil {
		g.logger.Warn("runner: deck rejected, using default deck", "deck", g.deck.ID(), "error", err)
		fallback := content.DefaultDeck()
		if err := g.queue.Load(fallback.Questions, fallback.Meta); err != nil {
			g.logger.Error("runner: default deck rejected", "error", err)
		}
	}

	g.overlay = NewOverlay(g.logger, g.cfg.Gameplay.FeedbackMs)
	g.coord = quiz.NewCoordinator(g.state, g.queue, g.overlay, g.logger, rng)
	g.coord.Configure(flowPatch(g.cfg.Quiz))
	g.overlay.OnAnswer = func(res quiz.AnswerResult) {
		g.coord.HandleAnswer(res)
		g.applyAnswerEffects(res)
	}
	g.overlay.OnFeedbackComplete = func() {
		g.coord.HandleFeedbackComplete()
	}

	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.groundY = rt.ScreenH - g.cfg.Player.GroundOffset
	g.obstacles = NewObstacleManager(seed, rt.ScreenW, &g.cfg, g.difficulty)

	g.playerY = float64(g.groundY - g.cfg.Player.Height)
	g.playerVel = 0
	g.isGrounded = true
	g.ducking = false
	g.tickCount = 0
	g.legFrame = 0
	g.distanceAcc = 0
	g.boostTicks = 0
	g.stumbleTicks = 0
	g.invulnTicks = 0

	g.state.SetState(quiz.StatePlaying)
	if !g.coord.Start() {
		g.logger.Warn("runner: question flow inactive, running without questions")
	}
}

// flowPatch builds a full flow patch from the quiz config section.
func flowPatch(qc config.QuizConfig) quiz.FlowPatch {
	minMs, maxMs := qc.MinIntervalMs, qc.MaxIntervalMs
	randomize, repeat := qc.RandomizeOrder, qc.AllowRepeat
	history := qc.HistorySize
	return quiz.FlowPatch{
		MinIntervalMs:  &minMs,
		MaxIntervalMs:  &maxMs,
		RandomizeOrder: &randomize,
		AllowRepeat:    &repeat,
		HistorySize:    &history,
	}
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	st := g.state.State()

	if st == quiz.StateGameOver {
		return core.StepResult{Status: g.Status()}
	}

	if input.Has(core.ActionPause) {
		switch st {
		case quiz.StatePlaying:
			g.state.SetState(quiz.StatePaused)
		case quiz.StatePaused:
			g.state.SetState(quiz.StatePlaying)
		}
		st = g.state.State()
	}

	if st == quiz.StatePaused {
		return core.StepResult{Status: g.Status()}
	}

	dtMs := 1000.0 / float64(g.tickRate())

	// The overlay clock runs during question and feedback phases so the
	// feedback auto-dismiss can fire; the coordinator clock runs always so a
	// delayed flow restart can fire.
	g.overlay.Tick(dtMs)
	g.coord.Update(dtMs)

	switch g.state.State() {
	case quiz.StatePlaying:
		g.stepWorld(input)
	case quiz.StateQuestion, quiz.StateFeedback:
		g.overlay.HandleInput(input)
	}

	return core.StepResult{Status: g.Status()}
}

// tickRate returns the configured tick rate, defaulting to 60.
func (g *Game) tickRate() int {
	if g.runtime.TickRate > 0 {
		return g.runtime.TickRate
	}
	return 60
}

// stepWorld advances the runner world by one tick: player physics, obstacle
// movement, collisions, and distance scoring.
func (g *Game) stepWorld(input core.InputFrame) {
	g.tickCount++
	if g.tickCount%6 == 0 {
		g.legFrame = 1 - g.legFrame
	}

	if g.boostTicks > 0 {
		g.boostTicks--
	}
	if g.stumbleTicks > 0 {
		g.stumbleTicks--
	}
	if g.invulnTicks > 0 {
		g.invulnTicks--
	}

	// Jump and duck
	if input.Has(core.ActionJump) && g.isGrounded {
		g.playerVel = g.cfg.Physics.JumpImpulse
		g.isGrounded = false
		g.ducking = false
	}
	g.ducking = input.Has(core.ActionDuck) && g.isGrounded

	// Gravity
	if !g.isGrounded {
		g.playerVel += g.cfg.Physics.Gravity
		if g.playerVel > g.cfg.Physics.MaxFallSpeed {
			g.playerVel = g.cfg.Physics.MaxFallSpeed
		}
		g.playerY += g.playerVel

		floor := float64(g.groundY - g.cfg.Player.Height)
		if g.playerY >= floor {
			g.playerY = floor
			g.playerVel = 0
			g.isGrounded = true
		}
	}

	speed := g.worldSpeed()
	g.state.SetGameSpeed(speed)
	g.state.SetPlayerPosition(float64(g.cfg.Player.X), g.playerY)
	g.obstacles.Update(speed, g.state.Score(), g.tickCount)

	// Distance scoring, scaled by current speed relative to base.
	g.distanceAcc += g.cfg.Gameplay.DistancePointsPerTick * speed / g.cfg.Physics.BaseSpeed
	if g.distanceAcc >= 1 {
		points := float64(int(g.distanceAcc))
		g.distanceAcc -= points
		g.state.UpdateScore(points)
	}

	g.checkCollision()
}

// worldSpeed computes the current scroll speed from difficulty progression
// and active answer effects.
func (g *Game) worldSpeed() float64 {
	speed := g.difficulty.Speed(g.cfg.Physics.BaseSpeed, g.state.Score(), g.tickCount)
	if g.boostTicks > 0 {
		speed *= g.cfg.Gameplay.BoostMultiplier
	}
	if g.stumbleTicks > 0 {
		speed *= g.cfg.Gameplay.StumbleMultiplier
	}
	return speed
}

// checkCollision tests the player against hurdles and applies life loss.
func (g *Game) checkCollision() {
	if g.invulnTicks > 0 {
		return
	}

	idx := g.obstacles.CollidingIndex(g.playerRect(), g.groundY)
	if idx < 0 {
		return
	}

	g.obstacles.Remove(idx)
	g.invulnTicks = g.cfg.Gameplay.InvulnerableTicks
	if !g.state.DecrementLives() {
		g.endGame()
	}
}

// playerRect returns the player's current collision rectangle.
func (g *Game) playerRect() core.Rect {
	h := g.cfg.Player.Height
	y := int(g.playerY)
	if g.ducking {
		y += h - 2
		h = 2
	}
	return core.NewRect(g.cfg.Player.X, y, g.cfg.Player.Width, h)
}

// applyAnswerEffects translates a graded answer into runner-side effects.
// Scoring itself is handled by the quiz engine.
func (g *Game) applyAnswerEffects(res quiz.AnswerResult) {
	if res.Correct {
		g.boostTicks = g.cfg.Gameplay.BoostTicks
		g.stumbleTicks = 0
		return
	}
	g.stumbleTicks = g.cfg.Gameplay.StumbleTicks
	g.boostTicks = 0
	if !g.state.DecrementLives() {
		g.endGame()
	}
}

// endGame stops the flow and moves the FSM to game over.
func (g *Game) endGame() {
	g.coord.Stop()
	g.overlay.ForceHide()
	g.state.SetState(quiz.StateGameOver)
}

// Status reports the current externally visible state.
func (g *Game) Status() core.Status {
	stats := g.state.Stats()
	st := g.state.State()
	return core.Status{
		Score:      stats.Score,
		Lives:      stats.Lives,
		Answered:   stats.Answered,
		Correct:    stats.Correct,
		GameOver:   st == quiz.StateGameOver,
		Paused:     st == quiz.StatePaused,
		InQuestion: st == quiz.StateQuestion || st == quiz.StateFeedback,
	}
}

// Stats exposes the quiz engine's metrics snapshot for persistence.
func (g *Game) Stats() quiz.GameStats {
	return g.state.Stats()
}

// Render draws the world, HUD, and any active overlay.
func (g *Game) Render(screen *core.Screen) {
	screen.Clear()

	g.drawGround(screen)
	g.drawObstacles(screen)
	g.drawPlayer(screen)
	g.drawHUD(screen)

	g.overlay.Render(screen)

	switch g.state.State() {
	case quiz.StatePaused:
		g.drawCenterBox(screen, []string{"PAUSED", "", "press p to resume"})
	case quiz.StateGameOver:
		stats := g.state.Stats()
		g.drawCenterBox(screen, []string{
			"GAME OVER",
			"",
			fmt.Sprintf("score %d", stats.Score),
			fmt.Sprintf("answers %d/%d (%d%%)", stats.Correct, stats.Answered, stats.Accuracy),
			"",
			"r restart  b menu  q quit",
		})
	}
}

// drawGround draws the ground line and a simple dotted texture under it.
func (g *Game) drawGround(screen *core.Screen) {
	screen.DrawHLine(0, g.groundY, screen.Width(), '─')
	for x := (g.tickCount / 2) % 4; x < screen.Width(); x += 4 {
		screen.SetColored(x, g.groundY+1, '.', core.ColorGray)
	}
}

// drawObstacles draws all hurdles as filled blocks.
func (g *Game) drawObstacles(screen *core.Screen) {
	for _, h := range g.obstacles.Hurdles() {
		r := h.Rect(g.groundY)
		for y := r.Y; y < r.Bottom(); y++ {
			for x := r.X; x < r.Right(); x++ {
				screen.SetColored(x, y, '█', core.ColorYellow)
			}
		}
	}
}

// drawPlayer draws the runner sprite with a simple two-frame leg animation.
func (g *Game) drawPlayer(screen *core.Screen) {
	color := core.ColorBrightCyan
	if g.invulnTicks > 0 && (g.tickCount/4)%2 == 0 {
		color = core.ColorGray // Blink while invulnerable
	} else if g.boostTicks > 0 {
		color = core.ColorBrightGreen
	} else if g.stumbleTicks > 0 {
		color = core.ColorBrightRed
	}

	x := g.cfg.Player.X
	y := int(g.playerY)

	if g.ducking {
		screen.DrawTextColored(x, g.groundY-2, "_o_", color)
		screen.DrawTextColored(x, g.groundY-1, "/ \\", color)
		return
	}

	screen.DrawTextColored(x, y, " o ", color)
	screen.DrawTextColored(x, y+1, "/|\\", color)
	if g.legFrame == 0 {
		screen.DrawTextColored(x, y+2, "/ \\", color)
	} else {
		screen.DrawTextColored(x, y+2, " |\\", color)
	}
}

// drawHUD draws the score line at the top of the screen.
func (g *Game) drawHUD(screen *core.Screen) {
	stats := g.state.Stats()

	hearts := ""
	for i := 0; i < quiz.DefaultLives; i++ {
		if i < stats.Lives {
			hearts += "♥"
		} else {
			hearts += "♡"
		}
	}

	left := fmt.Sprintf(" SCORE %06d  %s", stats.Score, hearts)
	screen.DrawTextColored(0, 0, left, core.ColorBrightWhite)

	right := fmt.Sprintf("answers %d/%d", stats.Correct, stats.Answered)
	if stats.Streak > 1 {
		right = fmt.Sprintf("streak x%d  %s", stats.Streak, right)
	}
	screen.DrawTextColored(screen.Width()-len([]rune(right))-1, 0, right, core.ColorCyan)
}

// drawCenterBox draws a bordered box with centered lines of text.
func (g *Game) drawCenterBox(screen *core.Screen, lines []string) {
	maxW := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > maxW {
			maxW = n
		}
	}

	boxW := maxW + 6
	boxH := len(lines) + 2
	boxX := (screen.Width() - boxW) / 2
	boxY := (screen.Height() - boxH) / 2

	screen.DrawRect(core.NewRect(boxX+1, boxY+1, boxW-2, boxH-2), ' ')
	screen.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		screen.DrawText(x, boxY+1+i, l)
	}
}
