package graphics

// Atlas is an ordered, immutable list of textures addressed by index.
type Atlas struct {
	textures []*Texture
}

// NewAtlas creates an atlas from textures in slot order.
func NewAtlas(textures ...*Texture) *Atlas {
	return &Atlas{textures: append([]*Texture(nil), textures...)}
}

// Len returns the number of slots.
func (a *Atlas) Len() int {
	if a == nil {
		return 0
	}
	return len(a.textures)
}

// At returns the texture in slot i.
func (a *Atlas) At(i int) (*Texture, bool) {
	if a == nil || i < 0 || i >= len(a.textures) {
		return nil, false
	}
	return a.textures[i], true
}
