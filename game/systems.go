package game

// SpawnSystem deals a new piece when none is active. In classic mode a
// piece that does not fit ends the game.
type SpawnSystem struct{}

// Execute deals a piece when the field has none.
func (s *SpawnSystem) Execute(frame *Frame) {
	g := frame.Game
	g.spawned = false
	if g.piece != nil || g.state == GameOver {
		return
	}
	g.spawn()
}

// InputSystem applies the queued actions in order.
type InputSystem struct{}

// Execute drains the action queue. Reset takes effect at once and drops
// the actions queued after it.
func (s *InputSystem) Execute(frame *Frame) {
	g := frame.Game
	actions := g.actions
	g.actions = g.actions[:0]

	for _, a := range actions {
		if a == Reset {
			// The rest of the tick renders the empty field.
			g.reset()
			return
		}
		if g.piece == nil || g.state == GameOver {
			continue
		}

		switch a {
		case MoveLeft:
			g.try(g.piece.Moved(-1, 0))
		case MoveRight:
			g.try(g.piece.Moved(1, 0))
		case RotateCW:
			g.try(g.piece.Rotated())
		case RotateCCW:
			g.try(g.piece.RotatedCCW())
		case SoftDrop:
			g.try(g.piece.Moved(0, 1))
		case HardDrop:
			g.hardDrop()
		}
	}
}

// GravitySystem moves the piece down every GravityEvery ticks, skipping the
// tick it spawned on.
type GravitySystem struct{}

// Execute steps gravity; a classic piece that cannot fall counts a
// grounded step instead.
func (s *GravitySystem) Execute(frame *Frame) {
	g := frame.Game
	if g.piece == nil || g.spawned {
		return
	}

	g.gravity++
	if g.gravity < g.cfg.GravityEvery {
		return
	}
	g.gravity = 0

	if g.cfg.Mode == Demo {
		g.piece.Position.Y++
		return
	}

	if next := g.piece.Moved(0, 1); g.field.Fits(next) {
		*g.piece = next
		g.grounded = 0
	} else {
		g.grounded++
	}
}

// LockSystem writes a grounded piece into the board once its lock delay
// has run out, or straight away after a hard drop.
type LockSystem struct{}

// Execute locks the piece when it is due.
func (s *LockSystem) Execute(frame *Frame) {
	g := frame.Game
	if g.cfg.Mode != Classic || g.piece == nil {
		return
	}

	if g.field.Fits(g.piece.Moved(0, 1)) {
		g.grounded = 0
		g.forceLock = false
		return
	}
	if !g.forceLock && g.grounded <= g.cfg.LockDelay {
		return
	}

	g.field.Lock(*g.piece)
	g.piece = nil
	g.forceLock = false
	g.grounded = 0
	g.state = Landed
	g.stats.Locked++
}

// LineClearSystem removes full rows after a lock.
type LineClearSystem struct{}

// Execute clears full rows on the tick a piece landed.
func (s *LineClearSystem) Execute(frame *Frame) {
	g := frame.Game
	if g.state != Landed {
		return
	}
	g.stats.Lines += uint64(g.field.ClearLines())
}

// OutOfBoundsSystem discards a piece whose top edge has passed the floor.
// In demo mode the next piece is dealt in the same tick.
type OutOfBoundsSystem struct{}

// Execute discards a piece below the field.
func (s *OutOfBoundsSystem) Execute(frame *Frame) {
	g := frame.Game
	if g.piece == nil || g.piece.Position.Y < g.cfg.Height {
		return
	}

	g.piece = nil
	g.forceLock = false
	g.state = OutOfBounds
	g.stats.Discarded++

	if g.cfg.Mode == Demo {
		g.spawn()
	}
}

// RenderSystem composites the board and the active piece and writes every
// field cell to the target. Game over replaces the view with a framed
// "GO".
type RenderSystem struct{}

// Execute renders the tick into the target.
func (s *RenderSystem) Execute(frame *Frame) {
	frame.Game.render()
}
