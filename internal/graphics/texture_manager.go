package graphics

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// TextureManager loads texture files once and resamples them to a common
// size. Files that cannot be read are replaced with a placeholder, so a
// missing asset never stops the renderer.
type TextureManager struct {
	size     int
	textures map[string]*Texture
}

// NewTextureManager creates a manager producing size x size textures.
func NewTextureManager(size int) *TextureManager {
	return &TextureManager{
		size:     size,
		textures: make(map[string]*Texture),
	}
}

// Load decodes a PNG, JPEG, BMP or WebP file into a texture.
func (tm *TextureManager) Load(path string) (*Texture, error) {
	if tex, exists := tm.textures[path]; exists {
		return tex, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture %s: %w", path, err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}

	tex := NewTexture(img, tm.size)
	tm.textures[path] = tex
	log.Printf("[Textures] Loaded %s (%s %dx%d -> %dx%d)", path, format,
		img.Bounds().Dx(), img.Bounds().Dy(), tex.Width(), tex.Height())
	return tex, nil
}

// GetTexture returns the texture for path, or a placeholder when it cannot
// be loaded.
func (tm *TextureManager) GetTexture(path string) *Texture {
	tex, err := tm.Load(path)
	if err == nil {
		return tex
	}

	log.Printf("Warning: %v, using placeholder", err)
	tex = Placeholder(PlaceholderKind(path), tm.size)
	tm.textures[path] = tex
	return tex
}

// LoadAtlas builds an atlas with one slot per path, in order.
func (tm *TextureManager) LoadAtlas(paths []string) *Atlas {
	textures := make([]*Texture, len(paths))
	for i, path := range paths {
		textures[i] = tm.GetTexture(path)
	}
	return NewAtlas(textures...)
}
