package engine

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// SpawnPoint is the rotation center of every freshly spawned piece: the two
// buffer rows directly above the visible field.
var SpawnPoint = Point{X: 4, Y: VisibleHeight}

// GameOverReason tells why a game ended.
type GameOverReason int8

const (
	NotOver GameOverReason = iota
	BlockOut
	LockOut
)

// String returns the reason as shown to the player.
func (r GameOverReason) String() string {
	switch r {
	case BlockOut:
		return "block out"
	case LockOut:
		return "lock out"
	default:
		return ""
	}
}

// HoldSlot is the banked piece plus the once-per-spawn guard.
type HoldSlot struct {
	Kind Kind // KindNone when empty
	Used bool // set once a hold happened during the current spawn
}

// Game owns the whole rules state: matrix, active piece, queues, progress
// and the two phase timers. It is not safe for concurrent use; callers
// serialize input calls and Advance on one goroutine.
type Game struct {
	opts    Options
	logger  *log.Logger
	onPhase func(from, to Phase)

	clock  *Clock
	seed   int64
	random Randomizer
	matrix *Matrix
	queue  []Kind
	hold   HoldSlot

	piece    Piece
	hasPiece bool
	phase    Phase
	over     GameOverReason

	// Timer handles; at most one is armed at any moment.
	fallTimer *Timer
	fallSoft  bool // armed fall timer uses the soft-drop interval
	lockTimer *Timer

	softDropping bool
	lockMoves    int // lock-resetting moves left
	lowest       int // lowest center row reached by the current piece

	rotated  bool // last successful action was a rotation
	lastKick int  // kick index of that rotation
	spin     Spin
	locked   [4]Point
	cleared  []int
	holdSwap bool
	swapIn   Kind

	score        int
	lines        int
	level        int
	fallInterval time.Duration
	backToBack   bool
	lastAction   string
	lastAward    int
	awards       int // scoring events so far
	pieces       int
}

// New creates an idle engine. A nil logger discards log output.
func New(logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		logger: logger,
		clock:  NewClock(),
		matrix: NewMatrix(),
		phase:  PhaseIdle,
	}
}

// OnPhase registers fn to observe every phase transition.
func (g *Game) OnPhase(fn func(from, to Phase)) {
	g.onPhase = fn
}

// NewGame discards the current session and starts a new one. Invalid options
// are rejected and the running session is left untouched.
func (g *Game) NewGame(opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	g.reset(opts)
	g.logger.Debug("new game",
		"seed", g.seed,
		"fair", opts.FairRandom,
		"hold", opts.HoldEnabled,
		"fall", opts.FallInterval,
		"lockDelay", opts.LockDelay,
	)
	g.run(PhaseSpawn)
	return nil
}

// reset builds a fresh session without spawning.
func (g *Game) reset(opts Options) {
	g.cancelTimers()

	g.opts = opts
	g.clock = NewClock()
	g.seed = opts.Seed
	if g.seed == 0 {
		g.seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(g.seed))
	if opts.FairRandom {
		g.random = NewBag(rng)
	} else {
		g.random = NewUniform(rng)
	}

	g.matrix = NewMatrix()
	g.queue = make([]Kind, 0, opts.PreviewDepth)
	g.refillQueue()
	g.hold = HoldSlot{}

	g.piece = Piece{}
	g.hasPiece = false
	g.phase = PhaseIdle
	g.over = NotOver
	g.softDropping = false
	g.lockMoves = opts.MaxLockMoves
	g.lowest = SpawnPoint.Y
	g.rotated = false
	g.lastKick = -1
	g.spin = SpinNone
	g.cleared = nil
	g.holdSwap = false
	g.swapIn = KindNone

	g.score = 0
	g.lines = 0
	g.level = opts.StartLevel
	g.fallInterval = FallInterval(opts.FallInterval, g.level)
	g.backToBack = false
	g.lastAction = ""
	g.lastAward = 0
	g.awards = 0
	g.pieces = 0
}

// Advance moves the engine clock forward, firing fall and lock timers.
func (g *Game) Advance(d time.Duration) {
	g.clock.Advance(d)
}

// Now returns the session's virtual time.
func (g *Game) Now() time.Duration {
	return g.clock.Now()
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// GameOver reports whether the session has ended.
func (g *Game) GameOver() bool {
	return g.phase == PhaseGameOver
}

// accepting reports whether piece input is currently meaningful.
func (g *Game) accepting() bool {
	return g.hasPiece && (g.phase == PhaseFalling || g.phase == PhaseLockDelay)
}

// MoveLeft shifts the active piece one column left.
func (g *Game) MoveLeft() bool {
	return g.shift(-1)
}

// MoveRight shifts the active piece one column right.
func (g *Game) MoveRight() bool {
	return g.shift(1)
}

func (g *Game) shift(dx int) bool {
	if !g.accepting() || !g.tryMove(dx) {
		return false
	}
	g.run(g.settle())
	return true
}

// RotateCW rotates the active piece clockwise with wall kicks.
func (g *Game) RotateCW() bool {
	return g.rotate(Clockwise)
}

// RotateCCW rotates the active piece counter-clockwise with wall kicks.
func (g *Game) RotateCCW() bool {
	return g.rotate(CounterClockwise)
}

func (g *Game) rotate(r Rotation) bool {
	if !g.accepting() || !g.tryRotate(r) {
		return false
	}
	g.run(g.settle())
	return true
}

// SoftDropStart switches gravity to the soft-drop interval. Each fall step
// taken while soft dropping awards SoftDropPoints.
func (g *Game) SoftDropStart() bool {
	if !g.accepting() || g.softDropping {
		return false
	}
	g.softDropping = true
	g.run(g.settle())
	return true
}

// SoftDropStop restores normal gravity.
func (g *Game) SoftDropStop() bool {
	if !g.softDropping {
		return false
	}
	g.softDropping = false
	if g.accepting() {
		g.run(g.settle())
	}
	return true
}

// HardDrop drops the piece to the floor and locks it in the same call.
func (g *Game) HardDrop() bool {
	if !g.accepting() {
		return false
	}
	cells := 0
	for g.tryFall() {
		cells++
	}
	g.score += cells * HardDropPoints
	g.run(PhaseLock)
	return true
}

// Hold banks the active piece and brings in the previously held one, or the
// next queued piece when the slot was empty. Allowed once per spawn.
func (g *Game) Hold() bool {
	if !g.opts.HoldEnabled || !g.accepting() || g.hold.Used {
		return false
	}
	g.cancelTimers()
	g.swapIn = g.hold.Kind
	g.hold = HoldSlot{Kind: g.piece.Kind, Used: true}
	g.hasPiece = false
	g.holdSwap = true
	g.run(PhaseSpawn)
	return true
}

// refillQueue tops the next queue up to the preview depth.
func (g *Game) refillQueue() {
	for len(g.queue) < g.opts.PreviewDepth {
		g.queue = append(g.queue, g.random.Next())
	}
}

// popQueue takes the front of the next queue and refills it.
func (g *Game) popQueue() Kind {
	if len(g.queue) == 0 {
		g.refillQueue()
	}
	k := g.queue[0]
	g.queue = g.queue[1:]
	g.refillQueue()
	return k
}
