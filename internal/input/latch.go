package input

import "time"

// Latch holds an intent for key sources that report presses but never
// releases, such as terminals. A press sets its axis; the axis clears once
// no press has been seen for the hold duration. Terminal key repeat keeps a
// held key alive.
type Latch struct {
	hold   time.Duration
	turn   int
	move   int
	turnAt time.Time
	moveAt time.Time
}

// NewLatch creates a latch that releases an axis after hold without presses.
func NewLatch(hold time.Duration) *Latch {
	return &Latch{hold: hold}
}

// Press records a movement action at now. Non-movement actions are ignored.
func (l *Latch) Press(a Action, now time.Time) {
	switch a {
	case ActionTurnLeft:
		l.turn, l.turnAt = TurnLeft, now
	case ActionTurnRight:
		l.turn, l.turnAt = TurnRight, now
	case ActionForward:
		l.move, l.moveAt = Forward, now
	case ActionBack:
		l.move, l.moveAt = Back, now
	}
}

// Release clears both axes.
func (l *Latch) Release() {
	l.turn, l.move = 0, 0
}

// Intent returns the latched intent at now, expiring stale axes.
func (l *Latch) Intent(now time.Time) Intent {
	if l.turn != 0 && now.Sub(l.turnAt) > l.hold {
		l.turn = 0
	}
	if l.move != 0 && now.Sub(l.moveAt) > l.hold {
		l.move = 0
	}
	return Intent{Turn: l.turn, Move: l.move}
}
