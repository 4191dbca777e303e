package engine

import "time"

// Snapshot is a read-only copy of everything the presentation layer draws.
// It shares no memory with the Game.
type Snapshot struct {
	Matrix Grid

	Active      Piece
	ActiveCells [4]Point
	HasActive   bool
	Ghost       [4]Point

	Next     []Kind
	Hold     Kind
	HoldUsed bool

	Score      int
	Lines      int
	Level      int
	Goal       int // cumulative lines needed for the next level
	BackToBack bool
	LastAction string // e.g. "Back-to-Back Tetris"
	LastAward  int
	Awards     int // increments with every scoring event

	Phase        Phase
	GameOver     bool
	Reason       GameOverReason
	Seed         int64
	Pieces       int
	LockMoves    int
	FallInterval time.Duration
	LockDelay    time.Duration
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Matrix:       g.matrix.Grid(),
		Active:       g.piece,
		HasActive:    g.hasPiece,
		Next:         append([]Kind(nil), g.queue...),
		Hold:         g.hold.Kind,
		HoldUsed:     g.hold.Used,
		Score:        g.score,
		Lines:        g.lines,
		Level:        g.level,
		Goal:         LevelGoal(g.level),
		BackToBack:   g.backToBack,
		LastAction:   g.lastAction,
		LastAward:    g.lastAward,
		Awards:       g.awards,
		Phase:        g.phase,
		GameOver:     g.GameOver(),
		Reason:       g.over,
		Seed:         g.seed,
		Pieces:       g.pieces,
		LockMoves:    g.lockMoves,
		FallInterval: g.fallInterval,
		LockDelay:    g.opts.LockDelay,
	}
	if g.hasPiece {
		s.ActiveCells = g.piece.Cells()
		s.Ghost = g.ghost().Cells()
	}
	return s
}
