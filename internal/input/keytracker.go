package input

// KeyStateTracker tracks the previous state of a key.
type KeyStateTracker struct {
	prevPressed bool
}

// JustPressed returns true if the key was not pressed last frame but is pressed this frame.
func (k *KeyStateTracker) JustPressed(pressed bool) bool {
	justPressed := pressed && !k.prevPressed
	k.prevPressed = pressed
	return justPressed
}
