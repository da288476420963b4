package main

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ratswarm/common"
	"gonum.org/v1/gonum/spatial/r2"
)

// cursorSource follows the mouse. Outside the window it holds the last
// position, and reports nothing until the pointer has been seen once.
type cursorSource struct {
	last image.Point
	seen bool
}

func (c *cursorSource) Position(float64) (r2.Vec, bool) {
	x, y := ebiten.CursorPosition()
	if image.Pt(x, y).In(image.Rect(0, 0, common.BaseWidth, common.BaseHeight)) {
		c.last = image.Pt(x, y)
		c.seen = true
	}
	if !c.seen {
		return r2.Vec{}, false
	}
	wx, wy := common.ScreenToWorld(float64(c.last.X), float64(c.last.Y))
	return r2.Vec{X: wx, Y: wy}, true
}

func (c *cursorSource) Name() string { return "cursor" }
