package runner

import (
	"math/rand"

	"github.com/skillrun/quizrunner/internal/config"
	"github.com/skillrun/quizrunner/internal/core"
)

// Hurdle represents a ground obstacle the player must jump over.
type Hurdle struct {
	X      int // Horizontal position (left edge)
	Width  int // Width in characters
	Height int // Height in characters
}

// Rect returns the collision rectangle for this hurdle.
func (h Hurdle) Rect(groundY int) core.Rect {
	return core.NewRect(h.X, groundY-h.Height, h.Width, h.Height)
}

// ObstacleManager handles spawning, movement, and removal of hurdles.
// Movement speed is fractional: sub-cell progress accumulates across ticks so
// slowdowns and boosts change the pace smoothly.
type ObstacleManager struct {
	hurdles    []Hurdle
	rng        *rand.Rand
	screenW    int
	nextSpawnX int // X position where the next hurdle will spawn
	moveAcc    float64
	cfg        *config.RunnerConfig
	difficulty *config.DifficultyManager
}

// NewObstacleManager creates a new obstacle manager with the given RNG seed.
func NewObstacleManager(seed int64, screenW int, cfg *config.RunnerConfig, diff *config.DifficultyManager) *ObstacleManager {
	om := &ObstacleManager{
		hurdles:    make([]Hurdle, 0, 8),
		screenW:    screenW,
		cfg:        cfg,
		difficulty: diff,
	}
	om.Reset(seed)
	return om
}

// Reset clears all obstacles and reseeds the RNG.
func (om *ObstacleManager) Reset(seed int64) {
	om.hurdles = om.hurdles[:0]
	om.rng = rand.New(rand.NewSource(seed))
	om.moveAcc = 0
	om.nextSpawnX = om.screenW + om.cfg.Obstacles.MinSpacing // First hurdle spawns off-screen
}

// UpdateScreenSize updates the screen width.
func (om *ObstacleManager) UpdateScreenSize(screenW int) {
	om.screenW = screenW
}

// Update moves hurdles left at the given speed (cells per tick) and spawns
// new ones as needed. Difficulty-driven spacing uses score and tick count.
func (om *ObstacleManager) Update(speed float64, score, ticks int) {
	om.moveAcc += speed
	move := int(om.moveAcc)
	if move <= 0 {
		return
	}
	om.moveAcc -= float64(move)

	for i := range om.hurdles {
		om.hurdles[i].X -= move
	}

	// Remove hurdles that have moved off the left side
	alive := om.hurdles[:0]
	for _, h := range om.hurdles {
		if h.X+h.Width > 0 {
			alive = append(alive, h)
		}
	}
	om.hurdles = alive

	om.nextSpawnX -= move

	if om.nextSpawnX <= om.screenW {
		om.spawn(score, ticks)
	}
}

// spawn creates a new hurdle at the spawn position.
func (om *ObstacleManager) spawn(score, ticks int) {
	obs := om.cfg.Obstacles

	width := obs.MinWidth
	if obs.MaxWidth > obs.MinWidth {
		width = obs.MinWidth + om.rng.Intn(obs.MaxWidth-obs.MinWidth+1)
	}

	height := obs.MinHeight
	if obs.MaxHeight > obs.MinHeight {
		height = obs.MinHeight + om.rng.Intn(obs.MaxHeight-obs.MinHeight+1)
	}

	om.hurdles = append(om.hurdles, Hurdle{
		X:      om.nextSpawnX,
		Width:  width,
		Height: height,
	})

	// Spacing shrinks as difficulty rises, never below the configured minimum.
	spacing := om.difficulty.Spacing(obs.MaxSpacing, score, ticks)
	if spacing < obs.MinSpacing {
		spacing = obs.MinSpacing
	}
	spread := spacing - obs.MinSpacing
	next := obs.MinSpacing
	if spread > 0 {
		next = obs.MinSpacing + om.rng.Intn(spread+1)
	}

	om.nextSpawnX += width + next
}

// Hurdles returns the current list of obstacles.
func (om *ObstacleManager) Hurdles() []Hurdle {
	return om.hurdles
}

// CollidingIndex returns the index of the first hurdle intersecting the
// player rectangle, or -1.
func (om *ObstacleManager) CollidingIndex(playerRect core.Rect, groundY int) int {
	for i, h := range om.hurdles {
		if playerRect.Intersects(h.Rect(groundY)) {
			return i
		}
	}
	return -1
}

// Remove deletes the hurdle at index i.
func (om *ObstacleManager) Remove(i int) {
	if i < 0 || i >= len(om.hurdles) {
		return
	}
	om.hurdles = append(om.hurdles[:i], om.hurdles[i+1:]...)
}
