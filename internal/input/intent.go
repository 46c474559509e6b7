// Package input turns key state into movement intents. Frontends poll their
// own key source and hand the result to the camera as an Intent, so nothing
// below this package sees a key code.
package input

// Turn and move directions carried by an Intent.
const (
	TurnLeft  = -1 // pans the view toward screen-left
	TurnRight = 1
	Forward   = 1
	Back      = -1
)

// Intent is the per-tick movement request.
type Intent struct {
	Turn int // TurnLeft, TurnRight or 0
	Move int // Forward, Back or 0
}

// IsZero reports whether the intent asks for nothing.
func (i Intent) IsZero() bool {
	return i.Turn == 0 && i.Move == 0
}

// Action is something a key can be bound to.
type Action int

const (
	ActionForward Action = iota
	ActionBack
	ActionTurnLeft
	ActionTurnRight
	ActionToggleHUD
	ActionToggleMap
	ActionQuit
)

var actionNames = map[Action]string{
	ActionForward:   "forward",
	ActionBack:      "back",
	ActionTurnLeft:  "turn_left",
	ActionTurnRight: "turn_right",
	ActionToggleHUD: "toggle_hud",
	ActionToggleMap: "toggle_map",
	ActionQuit:      "quit",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAction maps a config key such as "turn_left" to its Action.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return a, true
		}
	}
	return 0, false
}

// Bindings maps actions to key names. Key names are frontend neutral
// ("Up", "W", "Escape"); each frontend translates them to its own codes.
type Bindings map[Action][]string

// DefaultBindings returns arrow keys plus WASD.
func DefaultBindings() Bindings {
	return Bindings{
		ActionForward:   {"Up", "W"},
		ActionBack:      {"Down", "S"},
		ActionTurnLeft:  {"Left", "A"},
		ActionTurnRight: {"Right", "D"},
		ActionToggleHUD: {"F1"},
		ActionToggleMap: {"Tab", "M"},
		ActionQuit:      {"Escape", "Q"},
	}
}

// Action returns the action bound to key, if any. A key bound to several
// actions resolves to the first in declaration order.
func (b Bindings) Action(key string) (Action, bool) {
	for a := ActionForward; a <= ActionQuit; a++ {
		for _, k := range b[a] {
			if k == key {
				return a, true
			}
		}
	}
	return 0, false
}

// KeyState answers "is this key held" for a frontend's key source.
type KeyState interface {
	IsPressed(key string) bool
}

// Pressed reports whether any key bound to a is held.
func (b Bindings) Pressed(ks KeyState, a Action) bool {
	for _, k := range b[a] {
		if ks.IsPressed(k) {
			return true
		}
	}
	return false
}

// FromKeys builds the intent for the current key state. Opposing keys held
// together cancel out.
func FromKeys(ks KeyState, b Bindings) Intent {
	var in Intent
	if b.Pressed(ks, ActionTurnLeft) {
		in.Turn += TurnLeft
	}
	if b.Pressed(ks, ActionTurnRight) {
		in.Turn += TurnRight
	}
	if b.Pressed(ks, ActionForward) {
		in.Move += Forward
	}
	if b.Pressed(ks, ActionBack) {
		in.Move += Back
	}
	return in
}
