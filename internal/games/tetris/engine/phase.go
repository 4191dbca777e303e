package engine

import (
	"fmt"
	"time"
)

// Phase is a step of one piece's lifetime.
type Phase int8

// phaseAwait is returned by a phase handler when the machine must wait for a
// timer or an input before moving on.
const phaseAwait Phase = -1

const (
	PhaseIdle Phase = iota
	PhaseSpawn
	PhaseFalling
	PhaseLockDelay
	PhaseLock
	PhasePatternMatch
	PhaseClear
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSpawn:
		return "spawn"
	case PhaseFalling:
		return "falling"
	case PhaseLockDelay:
		return "lock-delay"
	case PhaseLock:
		return "lock"
	case PhasePatternMatch:
		return "pattern-match"
	case PhaseClear:
		return "clear"
	case PhaseGameOver:
		return "game-over"
	default:
		return "await"
	}
}

// run drives the machine from p until a handler asks to wait.
func (g *Game) run(p Phase) {
	for p != phaseAwait {
		if p != g.phase && g.onPhase != nil {
			g.onPhase(g.phase, p)
		}
		g.phase = p

		switch p {
		case PhaseSpawn:
			p = g.enterSpawn()
		case PhaseFalling:
			p = g.enterFalling()
		case PhaseLockDelay:
			p = g.enterLockDelay()
		case PhaseLock:
			p = g.enterLock()
		case PhasePatternMatch:
			p = g.enterPatternMatch()
		case PhaseClear:
			p = g.enterClear()
		case PhaseGameOver:
			p = g.enterGameOver()
		default:
			panic(fmt.Sprintf("engine: no handler for phase %s", p))
		}
	}
}

// settle picks the resting phase matching the piece's current position.
// Every input that moves the piece ends with run(settle()).
func (g *Game) settle() Phase {
	if g.canFall() {
		return PhaseFalling
	}
	return PhaseLockDelay
}

func (g *Game) enterSpawn() Phase {
	var kind Kind
	switch {
	case g.holdSwap && g.swapIn != KindNone:
		kind = g.swapIn
	default:
		kind = g.popQueue()
	}
	if !g.holdSwap {
		g.hold.Used = false
	}
	g.holdSwap = false
	g.swapIn = KindNone

	g.piece = Piece{Kind: kind, Facing: North, Center: SpawnPoint}
	g.hasPiece = true
	g.lockMoves = g.opts.MaxLockMoves
	g.lowest = SpawnPoint.Y
	g.rotated = false
	g.lastKick = -1
	g.pieces++

	if !g.matrix.Fits(g.piece.Cells()) {
		// The blocked piece never enters play.
		g.hasPiece = false
		g.over = BlockOut
		return PhaseGameOver
	}

	// Head start: drop one row right away when possible.
	g.tryFall()
	return PhaseFalling
}

func (g *Game) enterFalling() Phase {
	if !g.canFall() {
		return PhaseLockDelay
	}
	g.cancelLock()

	soft := g.softDropping
	if g.fallTimer.Active() && g.fallSoft == soft {
		return phaseAwait
	}
	g.cancelFall()

	interval := g.fallInterval
	if soft {
		interval /= time.Duration(g.opts.SoftDropFactor)
	}
	g.fallSoft = soft
	g.fallTimer = g.clock.AfterFunc(interval, g.onFallTimer)
	return phaseAwait
}

func (g *Game) enterLockDelay() Phase {
	g.cancelFall()
	if g.lockMoves <= 0 {
		return PhaseLock
	}
	if !g.lockTimer.Active() {
		g.lockTimer = g.clock.AfterFunc(g.opts.LockDelay, g.onLockTimer)
	}
	return phaseAwait
}

func (g *Game) enterLock() Phase {
	g.cancelTimers()

	g.spin = g.classifySpin()
	g.locked = g.piece.Cells()
	g.matrix.Lock(g.locked, g.piece.Kind)
	g.hasPiece = false

	if lockedOut(g.locked) {
		g.over = LockOut
		return PhaseGameOver
	}
	return PhasePatternMatch
}

func (g *Game) enterPatternMatch() Phase {
	rows := make([]int, 0, len(g.locked))
	for _, c := range g.locked {
		rows = append(rows, c.Y)
	}
	g.cleared = g.matrix.ScanFullRows(rows)

	award := ScoreClear(len(g.cleared), g.spin, g.level, g.backToBack)
	g.backToBack = NextBackToBack(g.backToBack, award)
	g.score += award.Points
	if desc := award.Description(); desc != "" {
		g.lastAction = desc
		g.lastAward = award.Points
		g.awards++
		g.logger.Debug("scored", "action", desc, "points", award.Points, "level", g.level)
	}
	g.spin = SpinNone
	return PhaseClear
}

func (g *Game) enterClear() Phase {
	if n := len(g.cleared); n > 0 {
		g.matrix.ClearRows(g.cleared)
		g.lines += n
	}
	g.cleared = nil

	if g.lines >= LevelGoal(g.level) && g.level < g.opts.LevelCap {
		g.level++
		g.fallInterval = FallInterval(g.opts.FallInterval, g.level)
		g.fallSoft = false
		g.logger.Debug("level up", "level", g.level, "fall", g.fallInterval)
	}
	return PhaseSpawn
}

func (g *Game) enterGameOver() Phase {
	g.cancelTimers()
	g.softDropping = false
	g.logger.Info("game over",
		"reason", g.over.String(),
		"score", g.score,
		"lines", g.lines,
		"level", g.level,
		"pieces", g.pieces,
	)
	return phaseAwait
}

func (g *Game) onFallTimer() {
	g.fallTimer = nil
	if g.phase != PhaseFalling {
		return
	}
	if g.tryFall() && g.softDropping {
		g.score += SoftDropPoints
	}
	g.run(g.settle())
}

func (g *Game) onLockTimer() {
	g.lockTimer = nil
	if g.phase != PhaseLockDelay {
		return
	}
	if g.canFall() {
		g.run(PhaseFalling)
		return
	}
	g.run(PhaseLock)
}

// lockedOut reports whether every cell sits in the hidden buffer.
func lockedOut(cells [4]Point) bool {
	for _, c := range cells {
		if c.Y < VisibleHeight {
			return false
		}
	}
	return true
}

func (g *Game) cancelFall() {
	g.fallTimer.Stop()
	g.fallTimer = nil
	g.fallSoft = false
}

func (g *Game) cancelLock() {
	g.lockTimer.Stop()
	g.lockTimer = nil
}

func (g *Game) cancelTimers() {
	g.cancelFall()
	g.cancelLock()
}
