package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"gridcaster/internal/input"
)

var namedKeys = map[string]ebiten.Key{
	"Up":        ebiten.KeyArrowUp,
	"Down":      ebiten.KeyArrowDown,
	"Left":      ebiten.KeyArrowLeft,
	"Right":     ebiten.KeyArrowRight,
	"Escape":    ebiten.KeyEscape,
	"Tab":       ebiten.KeyTab,
	"Space":     ebiten.KeySpace,
	"Enter":     ebiten.KeyEnter,
	"Backspace": ebiten.KeyBackspace,
	"Shift":     ebiten.KeyShift,
	"Control":   ebiten.KeyControl,
	"Alt":       ebiten.KeyAlt,
	"F1":        ebiten.KeyF1,
	"F2":        ebiten.KeyF2,
	"F3":        ebiten.KeyF3,
	"F4":        ebiten.KeyF4,
	"F5":        ebiten.KeyF5,
	"F6":        ebiten.KeyF6,
	"F7":        ebiten.KeyF7,
	"F8":        ebiten.KeyF8,
	"F9":        ebiten.KeyF9,
	"F10":       ebiten.KeyF10,
	"F11":       ebiten.KeyF11,
	"F12":       ebiten.KeyF12,
	"A":         ebiten.KeyA,
	"B":         ebiten.KeyB,
	"C":         ebiten.KeyC,
	"D":         ebiten.KeyD,
	"E":         ebiten.KeyE,
	"F":         ebiten.KeyF,
	"G":         ebiten.KeyG,
	"H":         ebiten.KeyH,
	"I":         ebiten.KeyI,
	"J":         ebiten.KeyJ,
	"K":         ebiten.KeyK,
	"L":         ebiten.KeyL,
	"M":         ebiten.KeyM,
	"N":         ebiten.KeyN,
	"O":         ebiten.KeyO,
	"P":         ebiten.KeyP,
	"Q":         ebiten.KeyQ,
	"R":         ebiten.KeyR,
	"S":         ebiten.KeyS,
	"T":         ebiten.KeyT,
	"U":         ebiten.KeyU,
	"V":         ebiten.KeyV,
	"W":         ebiten.KeyW,
	"X":         ebiten.KeyX,
	"Y":         ebiten.KeyY,
	"Z":         ebiten.KeyZ,
	"0":         ebiten.KeyDigit0,
	"1":         ebiten.KeyDigit1,
	"2":         ebiten.KeyDigit2,
	"3":         ebiten.KeyDigit3,
	"4":         ebiten.KeyDigit4,
	"5":         ebiten.KeyDigit5,
	"6":         ebiten.KeyDigit6,
	"7":         ebiten.KeyDigit7,
	"8":         ebiten.KeyDigit8,
	"9":         ebiten.KeyDigit9,
}

// KeyboardState answers input.KeyState queries from ebiten's keyboard.
type KeyboardState struct {
	keys map[string]ebiten.Key
}

// NewKeyboardState resolves every bound key name once. Names ebiten has no
// key for are logged and never report pressed.
func NewKeyboardState(b input.Bindings) KeyboardState {
	ks := KeyboardState{keys: make(map[string]ebiten.Key)}
	for action, names := range b {
		for _, name := range names {
			key, ok := namedKeys[name]
			if !ok {
				log.Printf("Warning: unknown key %q bound to %s", name, action)
				continue
			}
			ks.keys[name] = key
		}
	}
	return ks
}

// IsPressed reports whether the named key is held.
func (ks KeyboardState) IsPressed(name string) bool {
	key, ok := ks.keys[name]
	return ok && ebiten.IsKeyPressed(key)
}
