package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/ratswarm/common"
	"github.com/milk9111/ratswarm/ecs"
	"github.com/milk9111/ratswarm/ecs/component"
	"golang.org/x/image/colornames"
)

var (
	velocityColor   = colornames.Skyblue
	separationColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x30}
	closeColor      = color.RGBA{R: 0xff, G: 0x40, B: 0x40, A: 0x50}
	farColor        = color.RGBA{R: 0x40, G: 0xff, B: 0x40, A: 0x50}
)

// drawRatGizmos draws a rat's velocity, its neighborhood radius and, if it
// has a ramp, the close and far thresholds plus the current distance ring
// tinted from green (max rate) to red (min rate).
func drawRatGizmos(w *ecs.World, e ecs.Entity, screen *ebiten.Image) {
	rat, ok := ecs.Get(w, e, component.RatComponent.Kind())
	if !ok {
		return
	}
	tf, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}

	sx, sy := common.WorldToScreen(tf.X, tf.Y)
	ex, ey := common.WorldToScreen(tf.X+rat.Velocity.X*0.2, tf.Y+rat.Velocity.Y*0.2)
	vector.StrokeLine(screen, float32(sx), float32(sy), float32(ex), float32(ey), 1, velocityColor, true)

	sep := float32(rat.Params.SeparationDistance * common.PixelsPerUnit)
	vector.StrokeCircle(screen, float32(sx), float32(sy), sep, 1, separationColor, true)

	ramp, ok := ecs.Get(w, e, component.DistanceRampComponent.Kind())
	if !ok {
		return
	}
	cfg := ramp.Config
	vector.StrokeCircle(screen, float32(sx), float32(sy), float32(cfg.CloseDistance*common.PixelsPerUnit), 1, closeColor, true)
	vector.StrokeCircle(screen, float32(sx), float32(sy), float32(cfg.FarDistance*common.PixelsPerUnit), 1, farColor, true)
	if ramp.Distance > 0 {
		vector.StrokeCircle(screen, float32(sx), float32(sy), float32(ramp.Distance*common.PixelsPerUnit), 1, common.RateColor(cfg.MinChangeRate, cfg.MaxChangeRate, ramp.Rate), true)
	}
}
