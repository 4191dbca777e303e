package core

// Action is a player intent, decoupled from the key that produced it.
type Action int

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionRotateCW
	ActionRotateCCW
	ActionSoftDrop // repeats while the key is held
	ActionHardDrop
	ActionHold
	ActionPause
	ActionRestart // only honored after game over
	ActionQuit

	numActions
)

var actionNames = [numActions]string{
	ActionNone:      "None",
	ActionLeft:      "Left",
	ActionRight:     "Right",
	ActionRotateCW:  "RotateCW",
	ActionRotateCCW: "RotateCCW",
	ActionSoftDrop:  "SoftDrop",
	ActionHardDrop:  "HardDrop",
	ActionHold:      "Hold",
	ActionPause:     "Pause",
	ActionRestart:   "Restart",
	ActionQuit:      "Quit",
}

func (a Action) String() string {
	if a < 0 || a >= numActions {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame counts the actions triggered between two simulation steps, so
// two quick taps within one tick still shift a piece two columns.
// The zero value is an empty frame.
type InputFrame struct {
	counts [numActions]int
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set records one more occurrence of a. Unknown actions are dropped.
func (f *InputFrame) Set(a Action) {
	if a > ActionNone && a < numActions {
		f.counts[a]++
	}
}

func (f InputFrame) Has(a Action) bool {
	return f.Count(a) > 0
}

// Count returns how many times a was triggered this frame.
func (f InputFrame) Count(a Action) int {
	if a < 0 || a >= numActions {
		return 0
	}
	return f.counts[a]
}

// Clear empties the frame for the next tick.
func (f *InputFrame) Clear() {
	f.counts = [numActions]int{}
}

// Clone returns an independent copy.
func (f InputFrame) Clone() InputFrame {
	return f
}
