package engine

// canFall reports whether the active piece fits one row lower.
func (g *Game) canFall() bool {
	return g.hasPiece && g.matrix.Fits(g.piece.Moved(0, -1).Cells())
}

// tryMove shifts the piece horizontally. A successful move made while the
// lock timer runs spends one lock-move credit and restarts the lock delay.
func (g *Game) tryMove(dx int) bool {
	next := g.piece.Moved(dx, 0)
	if !g.matrix.Fits(next.Cells()) {
		return false
	}
	g.piece = next
	g.rotated = false
	if g.lockTimer.Active() {
		g.spendLockMove()
	}
	return true
}

// tryFall moves the piece down one row and records a new low-water mark.
func (g *Game) tryFall() bool {
	next := g.piece.Moved(0, -1)
	if !g.matrix.Fits(next.Cells()) {
		return false
	}
	g.piece = next
	g.rotated = false
	g.markLow()
	return true
}

// tryRotate turns the piece one step, trying each kick offset in table order.
// The first offset giving a legal placement wins. The O piece never rotates.
// A successful rotation while the lock timer runs restarts the lock delay.
func (g *Game) tryRotate(r Rotation) bool {
	if g.piece.Kind == KindO {
		return false
	}

	to := g.piece.Facing.Rotate(r)
	for i, kick := range KickOffsets(g.piece.Kind, g.piece.Facing, to) {
		candidate := Piece{
			Kind:   g.piece.Kind,
			Facing: to,
			Center: g.piece.Center.Add(kick),
		}
		if !g.matrix.Fits(candidate.Cells()) {
			continue
		}

		g.piece = candidate
		g.rotated = true
		g.lastKick = i
		// A new low restores the credits; either way the lock delay restarts.
		if low := g.markLow(); g.lockTimer.Active() {
			if low {
				g.cancelLock()
			} else {
				g.spendLockMove()
			}
		}
		return true
	}
	return false
}

// markLow records the piece center as the new low-water mark when it is
// strictly below every row reached so far, restoring all lock-move credits.
func (g *Game) markLow() bool {
	if g.piece.Center.Y >= g.lowest {
		return false
	}
	g.lowest = g.piece.Center.Y
	g.lockMoves = g.opts.MaxLockMoves
	return true
}

// spendLockMove consumes one credit and disarms the lock timer so the next
// settle re-arms it with a full delay.
func (g *Game) spendLockMove() {
	if g.lockMoves > 0 {
		g.lockMoves--
	}
	g.cancelLock()
}

// ghost returns the piece as it would land if hard dropped now.
func (g *Game) ghost() Piece {
	p := g.piece
	for g.matrix.Fits(p.Moved(0, -1).Cells()) {
		p = p.Moved(0, -1)
	}
	return p
}

// tSlotCorners returns the two diagonal cells on the side the T points at,
// followed by the two behind it.
func tSlotCorners(p Piece) (front, back [2]Point) {
	c := p.Center
	nw := c.Add(Point{-1, 1})
	ne := c.Add(Point{1, 1})
	sw := c.Add(Point{-1, -1})
	se := c.Add(Point{1, -1})

	switch p.Facing {
	case East:
		return [2]Point{ne, se}, [2]Point{nw, sw}
	case South:
		return [2]Point{sw, se}, [2]Point{nw, ne}
	case West:
		return [2]Point{nw, sw}, [2]Point{ne, se}
	default:
		return [2]Point{nw, ne}, [2]Point{sw, se}
	}
}

// classifySpin applies the corner test to a T piece whose last action was a
// rotation. Three occupied corners are required for any spin; the lock is a
// full T-spin when both pointing-side corners are filled or the rotation
// needed the last-resort kick, and a mini otherwise.
func (g *Game) classifySpin() Spin {
	if g.piece.Kind != KindT || !g.rotated {
		return SpinNone
	}

	front, back := tSlotCorners(g.piece)
	frontCount, backCount := 0, 0
	for _, p := range front {
		if g.matrix.IsOccupied(p.X, p.Y) {
			frontCount++
		}
	}
	for _, p := range back {
		if g.matrix.IsOccupied(p.X, p.Y) {
			backCount++
		}
	}

	switch {
	case frontCount+backCount < 3:
		return SpinNone
	case frontCount == 2 || g.lastKick == KickCount-1:
		return SpinFull
	default:
		return SpinMini
	}
}
