package engine

import (
	"math"
	"time"
)

// Spin is the T-spin classification of a lock.
type Spin int8

const (
	SpinNone Spin = iota
	SpinMini
	SpinFull
)

// String returns the display prefix for the spin.
func (s Spin) String() string {
	switch s {
	case SpinMini:
		return "Mini T-Spin"
	case SpinFull:
		return "T-Spin"
	default:
		return ""
	}
}

// Flat per-cell drop awards. These are never multiplied by level.
const (
	SoftDropPoints = 1
	HardDropPoints = 2
)

// Base awards indexed by lines cleared (0-4).
var (
	clearPoints    = [5]int{0, 100, 300, 500, 800}
	tSpinPoints    = [4]int{400, 800, 1200, 1600}
	miniSpinPoints = [3]int{100, 200, 400}
)

// LinesPerLevel is the number of cleared lines needed per level.
const LinesPerLevel = 10

// Award is the result of scoring one lock.
type Award struct {
	Lines      int
	Spin       Spin
	Base       int  // base table value before level and back-to-back scaling
	Points     int  // total points added to the score
	BackToBack bool // whether the back-to-back bonus was applied
}

// Difficult reports whether the clear keeps a back-to-back chain alive:
// a Tetris, or any T-spin that clears at least one line.
func (a Award) Difficult() bool {
	return a.Lines == 4 || (a.Spin != SpinNone && a.Lines > 0)
}

// Description renders the award the way the scoring panel shows it,
// e.g. "Back-to-Back T-Spin Double". Empty when nothing was cleared or spun.
func (a Award) Description() string {
	if a.Lines == 0 && a.Spin == SpinNone {
		return ""
	}

	var lines string
	switch a.Lines {
	case 1:
		lines = "Single"
	case 2:
		lines = "Double"
	case 3:
		lines = "Triple"
	case 4:
		lines = "Tetris"
	}

	desc := lines
	if a.Spin != SpinNone {
		desc = a.Spin.String()
		if lines != "" {
			desc += " " + lines
		}
	}
	if a.BackToBack {
		desc = "Back-to-Back " + desc
	}
	return desc
}

// BasePoints returns the table value for a clear of the given size and spin.
func BasePoints(lines int, spin Spin) int {
	if lines < 0 || lines > 4 {
		return 0
	}
	switch spin {
	case SpinFull:
		if lines < len(tSpinPoints) {
			return tSpinPoints[lines]
		}
	case SpinMini:
		if lines < len(miniSpinPoints) {
			return miniSpinPoints[lines]
		}
		// A mini cannot clear three lines; score it as a plain clear.
		return clearPoints[lines]
	}
	return clearPoints[lines]
}

// ScoreClear computes the award for a lock that cleared `lines` rows with
// the given spin at the given level. backToBack is the flag as it stood
// before this lock.
func ScoreClear(lines int, spin Spin, level int, backToBack bool) Award {
	a := Award{Lines: lines, Spin: spin}
	a.Base = BasePoints(lines, spin)
	a.Points = a.Base * level
	if backToBack && a.Difficult() {
		a.BackToBack = true
		a.Points += a.Points / 2
	}
	return a
}

// NextBackToBack returns the back-to-back flag after a lock. Difficult clears
// set it, other line clears break it, and zero-line locks leave it alone.
func NextBackToBack(current bool, a Award) bool {
	switch {
	case a.Lines == 0:
		return current
	case a.Difficult():
		return true
	default:
		return false
	}
}

// FallInterval returns the gravity interval at the given level, scaled so
// level 1 equals start. It follows the guideline curve
// (0.8-((level-1)*0.007))^(level-1) seconds.
func FallInterval(start time.Duration, level int) time.Duration {
	if level < 1 {
		level = 1
	}
	factor := math.Pow(0.8-float64(level-1)*0.007, float64(level-1))
	d := time.Duration(float64(start) * factor)
	if d < time.Millisecond {
		d = time.Millisecond
	}
	return d
}

// LevelGoal returns the cumulative line count that triggers the next level-up.
func LevelGoal(level int) int {
	return level * LinesPerLevel
}
