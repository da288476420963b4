package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var images = map[string]*ebiten.Image{}

// RegisterImage stores an image by key.
func RegisterImage(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	images[key] = img
}

// GetImage returns a cached image by key.
func GetImage(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	return images[key]
}

// RatSprite returns a cached top-down rat of the given pixel radius and
// color, facing +x. Sprites are built on first use.
func RatSprite(radius float64, c color.Color) *ebiten.Image {
	r, g, b, a := c.RGBA()
	px := int(math.Ceil(radius))
	if px < 2 {
		px = 2
	}
	key := fmt.Sprintf("rat/%d/%04x%04x%04x%04x", px, r, g, b, a)
	if img := GetImage(key); img != nil {
		return img
	}

	size := px*4 + 2
	img := ebiten.NewImage(size, size)
	cx, cy := float32(size)/2, float32(size)/2
	body := float32(px)

	vector.DrawFilledCircle(img, cx, cy, body, c, true)
	// Head and tail so heading reads at a glance.
	vector.DrawFilledCircle(img, cx+body, cy, body*0.6, c, true)
	vector.StrokeLine(img, cx-body, cy, cx-body*1.9, cy, 1, c, true)
	vector.DrawFilledCircle(img, cx+body*1.4, cy, 1, color.Black, true)

	RegisterImage(key, img)
	return img
}
