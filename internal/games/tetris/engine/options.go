package engine

import (
	"errors"
	"fmt"
	"time"
)

// Options configures one game session.
type Options struct {
	FairRandom     bool          // 7-bag when true, memoryless uniform draws otherwise
	HoldEnabled    bool          // whether Hold is accepted
	FallInterval   time.Duration // gravity interval at level 1
	LockDelay      time.Duration // grace period once the piece lands
	MaxLockMoves   int           // lock-resetting moves allowed per low-water mark
	SoftDropFactor int           // soft-drop interval = fall interval / factor
	PreviewDepth   int           // next-queue length
	StartLevel     int
	LevelCap       int
	Seed           int64 // 0 draws a fresh seed for every game
}

// DefaultOptions returns guideline defaults.
func DefaultOptions() Options {
	return Options{
		FairRandom:     true,
		HoldEnabled:    true,
		FallInterval:   time.Second,
		LockDelay:      500 * time.Millisecond,
		MaxLockMoves:   15,
		SoftDropFactor: 20,
		PreviewDepth:   7,
		StartLevel:     1,
		LevelCap:       15,
	}
}

// ErrInvalidOptions is wrapped by every Validate failure.
var ErrInvalidOptions = errors.New("engine: invalid options")

// Validate checks that the options describe a playable game.
func (o Options) Validate() error {
	switch {
	case o.FallInterval <= 0:
		return fmt.Errorf("%w: fall interval must be positive, got %s", ErrInvalidOptions, o.FallInterval)
	case o.LockDelay <= 0:
		return fmt.Errorf("%w: lock delay must be positive, got %s", ErrInvalidOptions, o.LockDelay)
	case o.MaxLockMoves < 1:
		return fmt.Errorf("%w: max lock moves must be at least 1, got %d", ErrInvalidOptions, o.MaxLockMoves)
	case o.SoftDropFactor < 1:
		return fmt.Errorf("%w: soft drop factor must be at least 1, got %d", ErrInvalidOptions, o.SoftDropFactor)
	case o.PreviewDepth < 1:
		return fmt.Errorf("%w: preview depth must be at least 1, got %d", ErrInvalidOptions, o.PreviewDepth)
	case o.LevelCap < 1:
		return fmt.Errorf("%w: level cap must be at least 1, got %d", ErrInvalidOptions, o.LevelCap)
	case o.StartLevel < 1 || o.StartLevel > o.LevelCap:
		return fmt.Errorf("%w: start level %d outside 1..%d", ErrInvalidOptions, o.StartLevel, o.LevelCap)
	}
	return nil
}
