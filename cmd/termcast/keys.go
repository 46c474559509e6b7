package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

var tcellKeyNames = map[tcell.Key]string{
	tcell.KeyUp:        "Up",
	tcell.KeyDown:      "Down",
	tcell.KeyLeft:      "Left",
	tcell.KeyRight:     "Right",
	tcell.KeyEscape:    "Escape",
	tcell.KeyTab:       "Tab",
	tcell.KeyEnter:     "Enter",
	tcell.KeyBackspace: "Backspace",
}

// keyName converts a tcell key event to a binding key name. Runes map to
// their upper-case letter, with ' ' named "Space".
func keyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		if ev.Rune() == ' ' {
			return "Space"
		}
		return strings.ToUpper(string(ev.Rune()))
	}
	if ev.Key() >= tcell.KeyF1 && ev.Key() <= tcell.KeyF12 {
		return fmt.Sprintf("F%d", int(ev.Key()-tcell.KeyF1)+1)
	}
	return tcellKeyNames[ev.Key()]
}
