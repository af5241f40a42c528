package main

import (
	"math/rand"
	"time"
)

const (
	boardWidth  = 26
	boardHeight = 16

	appleReward   = 10
	appleMaxTries = 1000

	baseMoveInterval = 120 * time.Millisecond
	moveIntervalStep = 10 * time.Millisecond
	minMoveInterval  = 60 * time.Millisecond
	speedupEvery     = 50

	// Vertical cells render roughly twice as tall as wide, so vertical
	// movement runs on a stretched interval to keep perceived speed even.
	verticalFactorNum = 8
	verticalFactorDen = 5
)

// Animation periods, counted in render frames (one frame per render tick).
const (
	appleBlinkHalf     = 8
	headGlowPeriod     = 6
	appleSparklePeriod = 5
	flashFrames        = 12
)

type Cell struct {
	X int
	Y int
}

type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

func (d Direction) Vertical() bool {
	return d == DirUp || d == DirDown
}

func (d Direction) delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

type StepOutcome int

const (
	StepContinue StepOutcome = iota
	StepCollided
	StepWon
)

type Game struct {
	Snake     []Cell // index 0 is the head
	Apple     Cell
	Dir       Direction  // direction the snake is currently moving
	NextDir   Direction  // committed for the next step
	QueuedDir *Direction // at most one request buffered beyond NextDir
	Score     int
	Over      bool
	Won       bool
	Paused    bool

	dirChangedThisTick bool

	// Animation state, advanced once per render frame.
	FrameCount      uint64
	AppleFlashTimer int
	ScoreFlashTimer int
	prevScore       int

	rng *rand.Rand
}

func NewGame(rng *rand.Rand) *Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	cx := boardWidth / 2
	cy := boardHeight / 2
	game := &Game{
		Snake: []Cell{
			{cx, cy},
			{cx - 1, cy},
			{cx - 2, cy},
		},
		Dir:     DirRight,
		NextDir: DirRight,
		rng:     rng,
	}
	game.spawnApple()
	return game
}

// TryChangeDirection applies one decoded direction request. The first accepted
// request per step becomes NextDir; a second one lands in the single queued
// slot, overwriting whatever was there. Reversals against the direction the
// request would follow are rejected outright.
func (g *Game) TryChangeDirection(dir Direction) bool {
	if !g.dirChangedThisTick {
		if dir == g.Dir.Opposite() {
			return false
		}
		g.NextDir = dir
		g.dirChangedThisTick = true
		return true
	}
	if dir == g.NextDir || dir == g.NextDir.Opposite() {
		return false
	}
	queued := dir
	g.QueuedDir = &queued
	return true
}

// PromoteQueued commits the queued direction for the step after the one that
// just resolved, subject to the same reversal rule as a fresh request.
func (g *Game) PromoteQueued() {
	if g.QueuedDir == nil {
		return
	}
	dir := *g.QueuedDir
	g.QueuedDir = nil
	if dir == g.Dir.Opposite() {
		return
	}
	g.NextDir = dir
	g.dirChangedThisTick = true
}

// Step advances the snake by one cell. Collided and Won are terminal.
func (g *Game) Step() StepOutcome {
	g.Dir = g.NextDir
	g.dirChangedThisTick = false

	head := g.Snake[0]
	dx, dy := g.Dir.delta()
	next := Cell{head.X + dx, head.Y + dy}

	if next.X < 0 || next.X >= boardWidth || next.Y < 0 || next.Y >= boardHeight {
		g.Over = true
		return StepCollided
	}

	growing := next == g.Apple

	// The tail cell vacates this step unless we grow, so moving into it is
	// legal on a non-growing step.
	limit := len(g.Snake)
	if !growing {
		limit--
	}
	for i := 0; i < limit; i++ {
		if g.Snake[i] == next {
			g.Over = true
			return StepCollided
		}
	}

	g.Snake = append(g.Snake, Cell{})
	copy(g.Snake[1:], g.Snake)
	g.Snake[0] = next

	if growing {
		g.Score += appleReward
		if !g.spawnApple() {
			g.Won = true
			g.Over = true
			return StepWon
		}
	} else {
		g.Snake = g.Snake[:len(g.Snake)-1]
	}
	return StepContinue
}

// spawnApple relocates the apple to a free cell and arms its flash timer.
// It returns false only when the snake fills the whole board.
//
// Under 75% occupancy a bounded number of random trials is expected O(1).
// Above that the free cells are enumerated outright, which bounds the cost
// and cannot fail while a free cell exists. If the trial phase ever runs
// dry it falls back to the first free cell in row-major order.
func (g *Game) spawnApple() bool {
	total := boardWidth * boardHeight
	if len(g.Snake) >= total {
		return false
	}

	if len(g.Snake) > total*3/4 {
		occupied := make(map[Cell]struct{}, len(g.Snake))
		for _, s := range g.Snake {
			occupied[s] = struct{}{}
		}
		free := make([]Cell, 0, total-len(g.Snake))
		for y := 0; y < boardHeight; y++ {
			for x := 0; x < boardWidth; x++ {
				cell := Cell{x, y}
				if _, ok := occupied[cell]; !ok {
					free = append(free, cell)
				}
			}
		}
		if len(free) == 0 {
			return false
		}
		g.placeApple(free[g.rng.Intn(len(free))])
		return true
	}

	for attempt := 0; attempt < appleMaxTries; attempt++ {
		cell := Cell{g.rng.Intn(boardWidth), g.rng.Intn(boardHeight)}
		if !g.occupies(cell) {
			g.placeApple(cell)
			return true
		}
	}

	for y := 0; y < boardHeight; y++ {
		for x := 0; x < boardWidth; x++ {
			cell := Cell{x, y}
			if !g.occupies(cell) {
				g.placeApple(cell)
				return true
			}
		}
	}
	return false
}

func (g *Game) placeApple(cell Cell) {
	g.Apple = cell
	g.AppleFlashTimer = flashFrames
}

func (g *Game) occupies(cell Cell) bool {
	for _, s := range g.Snake {
		if s == cell {
			return true
		}
	}
	return false
}

// MoveInterval is the wall-clock time between simulation steps at the
// current score and committed direction.
func (g *Game) MoveInterval() time.Duration {
	return moveInterval(g.Score, g.Dir)
}

func moveInterval(score int, dir Direction) time.Duration {
	interval := baseMoveInterval - time.Duration(score/speedupEvery)*moveIntervalStep
	if interval < minMoveInterval {
		interval = minMoveInterval
	}
	if dir.Vertical() {
		interval = interval * verticalFactorNum / verticalFactorDen
	}
	return interval
}

// AdvanceFrame moves the render-side animation state forward by one frame.
// Paused frames are frozen, so blink phases hold still under the overlay.
func (g *Game) AdvanceFrame() {
	if g.Paused {
		return
	}
	g.FrameCount++
	if g.AppleFlashTimer > 0 {
		g.AppleFlashTimer--
	}
	if g.ScoreFlashTimer > 0 {
		g.ScoreFlashTimer--
	}
	// Arm after the decrement so a fresh flash renders at full strength.
	if g.Score != g.prevScore {
		g.ScoreFlashTimer = flashFrames
		g.prevScore = g.Score
	}
}

// blinkOn derives a two-phase square wave from the frame counter.
func blinkOn(frame uint64, halfPeriod int) bool {
	return (frame/uint64(halfPeriod))%2 == 0
}

// sparklePhase cycles through n phases, one hop per period frames.
func sparklePhase(frame uint64, period, n int) int {
	if n <= 0 {
		return 0
	}
	return int(frame/uint64(period)) % n
}
