package engine

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Seed = 42
	return opts
}

// setupGame builds a session whose first piece is k, lets prep shape the
// matrix, then spawns. The phase trace is recorded into the returned slice.
func setupGame(t *testing.T, opts Options, k Kind, prep func(m *Matrix)) (*Game, *[]Phase) {
	t.Helper()
	require.NoError(t, opts.Validate())

	g := New(nil)
	var trace []Phase
	g.OnPhase(func(_, to Phase) { trace = append(trace, to) })

	g.reset(opts)
	g.queue[0] = k
	if prep != nil {
		prep(g.matrix)
	}
	g.run(PhaseSpawn)
	return g, &trace
}

// advanceUntil steps the clock until the game reaches phase p.
func advanceUntil(t *testing.T, g *Game, p Phase, step time.Duration) {
	t.Helper()
	for i := 0; i < 1000 && g.Phase() != p; i++ {
		g.Advance(step)
	}
	require.Equal(t, p, g.Phase())
}

func TestNewGameSpawnsFirstPiece(t *testing.T) {
	g := New(nil)
	require.NoError(t, g.NewGame(testOptions()))

	s := g.Snapshot()
	assert.Equal(t, PhaseFalling, s.Phase)
	assert.True(t, s.HasActive)
	assert.Equal(t, North, s.Active.Facing)
	assert.Equal(t, Point{X: 4, Y: VisibleHeight - 1}, s.Active.Center, "spawn takes a one-row head start")
	assert.Len(t, s.Next, 7)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 10, s.Goal)
	assert.Equal(t, int64(42), s.Seed)
	assert.Equal(t, 1, s.Pieces)
	assert.False(t, s.GameOver)
}

func TestNewGameRejectsInvalidOptions(t *testing.T) {
	g := New(nil)
	require.NoError(t, g.NewGame(testOptions()))
	before := g.Snapshot()

	bad := testOptions()
	bad.LockDelay = 0
	err := g.NewGame(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidOptions))
	assert.Equal(t, before, g.Snapshot(), "a rejected NewGame leaves the session untouched")
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *Options)
		ok     bool
	}{
		{"defaults", func(o *Options) {}, true},
		{"zero fall interval", func(o *Options) { o.FallInterval = 0 }, false},
		{"negative lock delay", func(o *Options) { o.LockDelay = -time.Second }, false},
		{"no lock moves", func(o *Options) { o.MaxLockMoves = 0 }, false},
		{"zero soft drop factor", func(o *Options) { o.SoftDropFactor = 0 }, false},
		{"no preview", func(o *Options) { o.PreviewDepth = 0 }, false},
		{"start above cap", func(o *Options) { o.StartLevel = 16 }, false},
		{"start at cap", func(o *Options) { o.StartLevel = 15 }, true},
		{"zero start", func(o *Options) { o.StartLevel = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.mutate(&o)
			err := o.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidOptions)
			}
		})
	}
}

func TestSameSeedSameGame(t *testing.T) {
	a, b := New(nil), New(nil)
	require.NoError(t, a.NewGame(testOptions()))
	require.NoError(t, b.NewGame(testOptions()))

	for i := 0; i < 20; i++ {
		a.MoveLeft()
		b.MoveLeft()
		a.RotateCW()
		b.RotateCW()
		a.HardDrop()
		b.HardDrop()
	}
	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestUniformRandomizerGame(t *testing.T) {
	opts := testOptions()
	opts.FairRandom = false
	g := New(nil)
	require.NoError(t, g.NewGame(opts))
	assert.True(t, g.Snapshot().Active.Kind.Valid())
	for _, k := range g.Snapshot().Next {
		assert.True(t, k.Valid())
	}
}

func TestTetrisClear(t *testing.T) {
	g, _ := setupGame(t, testOptions(), KindI, func(m *Matrix) {
		for y := 0; y < 4; y++ {
			fillRow(m, y, KindJ, Width-1)
		}
	})

	require.True(t, g.RotateCW())
	s := g.Snapshot()
	require.Equal(t, East, s.Active.Facing)
	require.Equal(t, Point{X: 5, Y: 19}, s.Active.Center)

	for i := 0; i < 4; i++ {
		require.True(t, g.MoveRight())
	}
	assert.False(t, g.MoveRight(), "wall blocks a fifth move")

	require.True(t, g.HardDrop())

	s = g.Snapshot()
	assert.Equal(t, 4, s.Lines)
	assert.Equal(t, 800, s.LastAward)
	assert.Equal(t, 800+17*HardDropPoints, s.Score)
	assert.Equal(t, "Tetris", s.LastAction)
	assert.True(t, s.BackToBack)
	assert.Equal(t, 0, stackHeight(g.matrix))
	assert.Equal(t, 2, s.Pieces)
	assert.Equal(t, PhaseFalling, s.Phase)
}

func TestTSpinDouble(t *testing.T) {
	g, _ := setupGame(t, testOptions(), KindT, nil)

	fillRow(g.matrix, 0, KindZ, 4)
	fillRow(g.matrix, 1, KindZ, 3, 4, 5)
	g.matrix.cells[2][3] = KindZ

	// Rotated into the slot pointing down.
	g.piece = Piece{Kind: KindT, Facing: South, Center: Point{X: 4, Y: 1}}
	g.rotated = true
	g.lastKick = 0

	require.True(t, g.HardDrop())

	s := g.Snapshot()
	assert.Equal(t, 2, s.Lines)
	assert.Equal(t, 1200, s.LastAward)
	assert.Equal(t, "T-Spin Double", s.LastAction)
	assert.True(t, s.BackToBack)
	assert.Equal(t, KindZ, g.matrix.Cell(3, 0), "overhang drops two rows")
}

func TestTSpinThroughLastKick(t *testing.T) {
	g, _ := setupGame(t, testOptions(), KindT, func(m *Matrix) {
		fillRow(m, 0, KindZ, 3, 4)
		fillRow(m, 1, KindZ, 3, 4)
		fillRow(m, 2, KindZ, 3)
		m.cells[4][3] = KindZ
	})
	g.piece = Piece{Kind: KindT, Facing: North, Center: Point{X: 4, Y: 3}}

	// Only the fifth north to east kick reaches the slot.
	require.True(t, g.RotateCW())
	require.Equal(t, Point{X: 3, Y: 1}, g.piece.Center)
	require.Equal(t, East, g.piece.Facing)
	require.Equal(t, KickCount-1, g.lastKick)
	require.Equal(t, PhaseLockDelay, g.Phase())

	require.True(t, g.HardDrop())

	s := g.Snapshot()
	assert.Equal(t, 2, s.Lines)
	assert.Equal(t, 1200, s.LastAward, "one pointing corner is upgraded by the last kick")
	assert.Equal(t, 1200, s.Score)
	assert.Equal(t, "T-Spin Double", s.LastAction)
	assert.True(t, s.BackToBack)
	assert.Equal(t, KindZ, g.matrix.Cell(3, 2), "overhang drops two rows")
	assert.Equal(t, KindT, g.matrix.Cell(3, 0))
	assert.Equal(t, KindNone, g.matrix.Cell(4, 0))
}

func TestClassifySpin(t *testing.T) {
	center := Point{X: 4, Y: 1}

	tests := []struct {
		name     string
		facing   Facing
		corners  []Point
		rotated  bool
		lastKick int
		want     Spin
	}{
		{"not rotated", North, []Point{{3, 0}, {5, 0}, {3, 2}, {5, 2}}, false, 0, SpinNone},
		{"two corners", North, []Point{{3, 0}, {5, 0}}, true, 0, SpinNone},
		{"three corners one front", North, []Point{{3, 0}, {5, 0}, {3, 2}}, true, 0, SpinMini},
		{"three corners both front", North, []Point{{3, 2}, {5, 2}, {3, 0}}, true, 0, SpinFull},
		{"mini upgraded by last kick", North, []Point{{3, 0}, {5, 0}, {3, 2}}, true, KickCount - 1, SpinFull},
		{"east front", East, []Point{{5, 2}, {5, 0}, {3, 0}}, true, 0, SpinFull},
		{"west back only", West, []Point{{5, 2}, {5, 0}, {3, 0}}, true, 0, SpinMini},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(nil)
			g.reset(testOptions())
			for _, c := range tt.corners {
				g.matrix.cells[c.Y][c.X] = KindI
			}
			g.piece = Piece{Kind: KindT, Facing: tt.facing, Center: center}
			g.rotated = tt.rotated
			g.lastKick = tt.lastKick
			assert.Equal(t, tt.want, g.classifySpin())
		})
	}

	t.Run("floor counts as occupied", func(t *testing.T) {
		g := New(nil)
		g.reset(testOptions())
		g.matrix.cells[1][3] = KindI
		g.piece = Piece{Kind: KindT, Facing: South, Center: Point{X: 4, Y: 0}}
		g.rotated = true
		assert.Equal(t, SpinFull, g.classifySpin())
	})

	t.Run("other kinds never spin", func(t *testing.T) {
		g := New(nil)
		g.reset(testOptions())
		g.piece = Piece{Kind: KindS, Facing: North, Center: Point{X: 4, Y: 0}}
		g.rotated = true
		assert.Equal(t, SpinNone, g.classifySpin())
	})
}

func TestRotationTakesFirstLegalKick(t *testing.T) {
	tests := []struct {
		name     string
		blocked  []Point
		want     Point
		wantKick int
	}{
		{"no obstruction", nil, Point{4, 5}, 0},
		{"first kick blocked", []Point{{4, 4}}, Point{3, 5}, 1},
		{"two kicks blocked", []Point{{4, 4}, {3, 4}}, Point{3, 6}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := setupGame(t, testOptions(), KindT, nil)
			g.piece = Piece{Kind: KindT, Facing: North, Center: Point{X: 4, Y: 5}}
			for _, c := range tt.blocked {
				g.matrix.cells[c.Y][c.X] = KindO
			}

			require.True(t, g.RotateCW())
			assert.Equal(t, East, g.piece.Facing)
			assert.Equal(t, tt.want, g.piece.Center)
			assert.Equal(t, tt.wantKick, g.lastKick)
		})
	}
}

func TestRotationRejectedWhenEveryKickFails(t *testing.T) {
	g, _ := setupGame(t, testOptions(), KindT, nil)
	for y := 0; y < 10; y++ {
		fillRow(g.matrix, y, KindO)
	}
	// Carve a T-shaped pocket that fits only the north facing.
	for _, c := range []Point{{4, 6}, {3, 5}, {4, 5}, {5, 5}} {
		g.matrix.cells[c.Y][c.X] = KindNone
	}
	g.piece = Piece{Kind: KindT, Facing: North, Center: Point{X: 4, Y: 5}}
	before := g.piece

	assert.False(t, g.RotateCW())
	assert.False(t, g.RotateCCW())
	assert.Equal(t, before, g.piece)
}

func TestORotationIsRejected(t *testing.T) {
	g, _ := setupGame(t, testOptions(), KindO, nil)
	before := g.piece
	assert.False(t, g.RotateCW())
	assert.False(t, g.RotateCCW())
	assert.Equal(t, before, g.piece)
}

func TestMoveAndRotateMatchCollision(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	g := New(nil)
	g.reset(testOptions())
	g.hasPiece = true
	g.phase = PhaseFalling

	for i := 0; i < 2000; i++ {
		g.matrix = NewMatrix()
		for y := 0; y < 12; y++ {
			for x := range Width {
				if rng.Intn(3) == 0 {
					g.matrix.cells[y][x] = KindZ
				}
			}
		}
		start := Piece{
			Kind:   Kinds[rng.Intn(KindCount)],
			Facing: Facing(rng.Intn(4)),
			Center: Point{X: rng.Intn(Width+2) - 1, Y: rng.Intn(14) - 1},
		}

		g.piece = start
		dx := []int{-1, 1}[rng.Intn(2)]
		want := g.matrix.Fits(start.Moved(dx, 0).Cells())
		require.Equal(t, want, g.tryMove(dx), "move %+v by %d", start, dx)
		if !want {
			require.Equal(t, start, g.piece)
		}

		g.piece = start
		r := []Rotation{Clockwise, CounterClockwise}[rng.Intn(2)]
		wantRotate := false
		if start.Kind != KindO {
			to := start.Facing.Rotate(r)
			for _, kick := range KickOffsets(start.Kind, start.Facing, to) {
				candidate := Piece{Kind: start.Kind, Facing: to, Center: start.Center.Add(kick)}
				if g.matrix.Fits(candidate.Cells()) {
					wantRotate = true
					break
				}
			}
		}
		require.Equal(t, wantRotate, g.tryRotate(r), "rotate %+v", start)
		if wantRotate {
			require.True(t, g.matrix.Fits(g.piece.Cells()))
		} else {
			require.Equal(t, start, g.piece)
		}
	}
}

func TestBlockOut(t *testing.T) {
	g, trace := setupGame(t, testOptions(), KindT, func(m *Matrix) {
		m.cells[SpawnPoint.Y][SpawnPoint.X] = KindZ
	})

	assert.Equal(t, []Phase{PhaseSpawn, PhaseGameOver}, *trace)
	assert.NotContains(t, *trace, PhaseFalling)

	s := g.Snapshot()
	assert.True(t, s.GameOver)
	assert.Equal(t, BlockOut, s.Reason)
	assert.Equal(t, "block out", s.Reason.String())
	assert.False(t, s.HasActive, "the blocked piece is not shown")
	assert.Equal(t, [4]Point{}, s.ActiveCells)
	assert.Equal(t, [4]Point{}, s.Ghost)
	assert.Equal(t, KindZ, g.matrix.Cell(SpawnPoint.X, SpawnPoint.Y), "the stack is untouched")
	assert.Empty(t, g.clock.pending)

	assert.False(t, g.MoveLeft())
	assert.False(t, g.RotateCW())
	assert.False(t, g.SoftDropStart())
	assert.False(t, g.HardDrop())
	assert.False(t, g.Hold())

	require.NoError(t, g.NewGame(testOptions()))
	assert.False(t, g.GameOver(), "a new game restarts after game over")
}

func TestLockOut(t *testing.T) {
	g, trace := setupGame(t, testOptions(), KindO, func(m *Matrix) {
		for y := 0; y < VisibleHeight; y++ {
			fillRow(m, y, KindL, 0)
		}
	})
	require.Equal(t, PhaseLockDelay, g.Phase())

	require.True(t, g.HardDrop())

	s := g.Snapshot()
	assert.True(t, s.GameOver)
	assert.Equal(t, LockOut, s.Reason)
	assert.Equal(t, PhaseGameOver, (*trace)[len(*trace)-1])
	assert.Equal(t, KindO, g.matrix.Cell(4, VisibleHeight))
}

func TestGravity(t *testing.T) {
	opts := testOptions()
	g, _ := setupGame(t, opts, KindT, nil)
	start := g.piece.Center.Y

	g.Advance(opts.FallInterval - time.Millisecond)
	assert.Equal(t, start, g.piece.Center.Y)
	g.Advance(time.Millisecond)
	assert.Equal(t, start-1, g.piece.Center.Y)
	g.Advance(3 * opts.FallInterval)
	assert.Equal(t, start-4, g.piece.Center.Y)
	assert.Equal(t, 0, g.Snapshot().Score, "gravity awards nothing")
}

func TestSoftDropScoring(t *testing.T) {
	opts := testOptions()
	opts.StartLevel = 5
	g, _ := setupGame(t, opts, KindT, nil)
	start := g.piece.Center.Y
	soft := g.fallInterval / time.Duration(opts.SoftDropFactor)

	require.True(t, g.SoftDropStart())
	assert.False(t, g.SoftDropStart(), "already soft dropping")
	for i := 0; i < 5; i++ {
		g.Advance(soft)
	}
	assert.Equal(t, start-5, g.piece.Center.Y)
	assert.Equal(t, 5*SoftDropPoints, g.Snapshot().Score, "one point per cell regardless of level")

	require.True(t, g.SoftDropStop())
	g.Advance(soft)
	assert.Equal(t, start-5, g.piece.Center.Y, "normal gravity is back")
	g.Advance(g.fallInterval)
	assert.Equal(t, start-6, g.piece.Center.Y)
	assert.Equal(t, 5, g.Snapshot().Score)
}

func TestHardDropScoring(t *testing.T) {
	g, _ := setupGame(t, testOptions(), KindO, nil)
	fromY := g.piece.Center.Y

	require.True(t, g.HardDrop())
	assert.Equal(t, fromY*HardDropPoints, g.Snapshot().Score)
	assert.Equal(t, KindO, g.matrix.Cell(4, 0))
	assert.Equal(t, KindO, g.matrix.Cell(5, 1))
}

func TestLockDelayExpiry(t *testing.T) {
	opts := testOptions()
	opts.FallInterval = 100 * time.Millisecond
	g, _ := setupGame(t, opts, KindO, nil)

	advanceUntil(t, g, PhaseLockDelay, opts.FallInterval)
	assert.Equal(t, 0, g.piece.Center.Y)
	assert.Len(t, g.clock.pending, 1)

	g.Advance(opts.LockDelay - time.Millisecond)
	assert.Equal(t, PhaseLockDelay, g.Phase())
	assert.Equal(t, 1, g.Snapshot().Pieces)

	g.Advance(time.Millisecond)
	assert.Equal(t, 2, g.Snapshot().Pieces)
	assert.Equal(t, KindO, g.matrix.Cell(4, 0))
}

func TestLockMoveCreditExhaustion(t *testing.T) {
	opts := testOptions()
	opts.FallInterval = 100 * time.Millisecond
	opts.MaxLockMoves = 3
	g, _ := setupGame(t, opts, KindO, nil)

	advanceUntil(t, g, PhaseLockDelay, opts.FallInterval)
	require.Equal(t, 3, g.lockMoves)

	g.Advance(400 * time.Millisecond)
	require.True(t, g.MoveLeft())
	assert.Equal(t, 2, g.lockMoves)
	g.Advance(400 * time.Millisecond)
	assert.Equal(t, PhaseLockDelay, g.Phase(), "a move restarts the lock delay")

	require.True(t, g.MoveRight())
	assert.Equal(t, 1, g.lockMoves)
	assert.Equal(t, 1, g.Snapshot().Pieces)

	require.True(t, g.MoveLeft())
	assert.Equal(t, 2, g.Snapshot().Pieces, "the last credit locks at once")
	assert.Equal(t, KindO, g.matrix.Cell(3, 0))
	assert.Equal(t, KindO, g.matrix.Cell(4, 1))
}

func TestNewLowResetsLockCredits(t *testing.T) {
	opts := testOptions()
	opts.FallInterval = 100 * time.Millisecond
	g, _ := setupGame(t, opts, KindI, nil)

	require.True(t, g.RotateCW())
	advanceUntil(t, g, PhaseLockDelay, opts.FallInterval)
	require.Equal(t, 2, g.piece.Center.Y)

	require.True(t, g.MoveLeft())
	require.True(t, g.MoveRight())
	require.Equal(t, opts.MaxLockMoves-2, g.lockMoves)

	// East to south kicks the center one row down.
	require.True(t, g.RotateCW())
	assert.Equal(t, 1, g.piece.Center.Y)
	assert.Equal(t, opts.MaxLockMoves, g.lockMoves)
	assert.Equal(t, PhaseFalling, g.Phase(), "headroom below returns the piece to falling")
	assert.False(t, g.lockTimer.Active())
}

func TestNewLowRotationRestartsLockDelay(t *testing.T) {
	opts := testOptions()
	opts.FallInterval = 100 * time.Millisecond
	g, _ := setupGame(t, opts, KindI, func(m *Matrix) {
		fillRow(m, 0, KindZ, 5)
	})

	// Vertical I drops into the one-column well.
	require.True(t, g.RotateCW())
	advanceUntil(t, g, PhaseLockDelay, opts.FallInterval)
	require.Equal(t, Point{X: 5, Y: 2}, g.piece.Center)

	g.Advance(400 * time.Millisecond)
	require.Equal(t, PhaseLockDelay, g.Phase())

	// East to south lands one row lower, still resting on row 0.
	require.True(t, g.RotateCW())
	require.Equal(t, Point{X: 5, Y: 1}, g.piece.Center)
	assert.Equal(t, PhaseLockDelay, g.Phase())
	assert.Equal(t, opts.MaxLockMoves, g.lockMoves)
	assert.Equal(t, opts.LockDelay, g.lockTimer.Remaining(), "the lock delay starts over")

	g.Advance(opts.LockDelay - time.Millisecond)
	assert.Equal(t, 1, g.Snapshot().Pieces)
	g.Advance(time.Millisecond)
	assert.Equal(t, 2, g.Snapshot().Pieces)
	assert.Equal(t, KindI, g.matrix.Cell(3, 1))
}

func TestRotationInLockDelaySpendsCredit(t *testing.T) {
	opts := testOptions()
	opts.FallInterval = 100 * time.Millisecond
	g, _ := setupGame(t, opts, KindT, nil)

	advanceUntil(t, g, PhaseLockDelay, opts.FallInterval)
	g.Advance(300 * time.Millisecond)

	// North to east on the floor kicks up a row: no new low.
	require.True(t, g.RotateCW())
	assert.Equal(t, opts.MaxLockMoves-1, g.lockMoves)
	assert.Equal(t, opts.LockDelay, g.lockTimer.Remaining())
}

func TestHoldOncePerSpawn(t *testing.T) {
	g := New(nil)
	require.NoError(t, g.NewGame(testOptions()))
	first := g.Snapshot().Active.Kind
	upcoming := g.Snapshot().Next[0]

	require.True(t, g.Hold())
	s := g.Snapshot()
	assert.Equal(t, first, s.Hold)
	assert.True(t, s.HoldUsed)
	assert.Equal(t, upcoming, s.Active.Kind)
	assert.False(t, g.Hold(), "second hold before the next spawn")

	require.True(t, g.HardDrop())
	assert.False(t, g.Snapshot().HoldUsed)

	second := g.Snapshot().Active.Kind
	next := append([]Kind(nil), g.Snapshot().Next...)
	require.True(t, g.Hold())
	s = g.Snapshot()
	assert.Equal(t, first, s.Active.Kind, "the held piece comes back")
	assert.Equal(t, second, s.Hold)
	assert.Equal(t, next, s.Next, "swapping with a held piece leaves the queue alone")
}

func TestHoldDisabled(t *testing.T) {
	opts := testOptions()
	opts.HoldEnabled = false
	g := New(nil)
	require.NoError(t, g.NewGame(opts))
	assert.False(t, g.Hold())
	assert.Equal(t, KindNone, g.Snapshot().Hold)
}

func TestLevelUp(t *testing.T) {
	opts := testOptions()
	g := New(nil)
	g.reset(opts)
	g.lines = 9
	fillRow(g.matrix, 0, KindI)
	g.cleared = []int{0}

	g.run(PhaseClear)

	s := g.Snapshot()
	assert.Equal(t, 10, s.Lines)
	assert.Equal(t, 2, s.Level)
	assert.Equal(t, 20, s.Goal)
	assert.Equal(t, FallInterval(opts.FallInterval, 2), s.FallInterval)
	assert.Equal(t, PhaseFalling, s.Phase)
}

func TestLevelCap(t *testing.T) {
	opts := testOptions()
	opts.LevelCap = 1
	g := New(nil)
	g.reset(opts)
	g.lines = 9
	fillRow(g.matrix, 0, KindI)
	g.cleared = []int{0}

	g.run(PhaseClear)

	assert.Equal(t, 1, g.Snapshot().Level)
	assert.Equal(t, opts.FallInterval, g.Snapshot().FallInterval)
}

func TestSnapshotGhostAndIsolation(t *testing.T) {
	g, _ := setupGame(t, testOptions(), KindO, nil)

	s := g.Snapshot()
	assert.Equal(t, [4]Point{{4, 0}, {5, 0}, {4, 1}, {5, 1}}, s.Ghost)

	s.Matrix[0][0] = KindT
	s.Next[0] = KindNone
	assert.Equal(t, KindNone, g.matrix.Cell(0, 0))
	assert.NotEqual(t, KindNone, g.queue[0])
}

func TestTimersStayExclusive(t *testing.T) {
	opts := testOptions()
	opts.FallInterval = 50 * time.Millisecond
	opts.LockDelay = 100 * time.Millisecond

	for seed := int64(1); seed <= 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		opts.Seed = seed
		g := New(nil)
		require.NoError(t, g.NewGame(opts))

		for i := 0; i < 3000 && !g.GameOver(); i++ {
			switch rng.Intn(10) {
			case 0, 1:
				g.MoveLeft()
			case 2, 3:
				g.MoveRight()
			case 4:
				g.RotateCW()
			case 5:
				g.RotateCCW()
			case 6:
				g.SoftDropStart()
			case 7:
				g.SoftDropStop()
			case 8:
				g.Hold()
			case 9:
				if rng.Intn(4) == 0 {
					g.HardDrop()
				}
			}
			g.Advance(time.Duration(rng.Intn(120)) * time.Millisecond)

			require.LessOrEqual(t, len(g.clock.pending), 1, "seed %d step %d", seed, i)
			require.False(t, g.fallTimer.Active() && g.lockTimer.Active())
			require.Contains(t, []Phase{PhaseFalling, PhaseLockDelay, PhaseGameOver}, g.Phase())
			if g.hasPiece {
				require.True(t, g.matrix.Fits(g.piece.Cells()), "active piece overlaps the stack")
			}
			require.Empty(t, g.matrix.ScanFullRows(nil), "full rows survive a clear")
		}
	}
}
