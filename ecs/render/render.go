package render

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/ratswarm/common"
	"github.com/milk9111/ratswarm/ecs"
	"github.com/milk9111/ratswarm/ecs/component"
	"golang.org/x/image/colornames"
)

var (
	floorColor  = color.RGBA{R: 0x3a, G: 0x32, B: 0x2c, A: 0xff}
	wallColor   = colornames.Dimgray
	targetColor = colornames.Gold
)

type RenderSystem struct {
	Debug bool
}

func NewRenderSystem(debug bool) *RenderSystem {
	return &RenderSystem{Debug: debug}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	screen.Fill(floorColor)
	drawArena(w, screen)

	rats := w.Query(component.RatTagComponent.Kind(), component.TransformComponent.Kind())
	sort.Slice(rats, func(i, j int) bool { return uint64(rats[i]) < uint64(rats[j]) })
	for _, e := range rats {
		drawRat(w, e, screen)
	}
	drawTarget(w, screen)

	if r.Debug {
		for _, e := range rats {
			drawRatGizmos(w, e, screen)
		}
		drawHUD(w, screen, len(rats))
	}
}

func drawArena(w *ecs.World, screen *ebiten.Image) {
	e, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	b, ok := ecs.Get(w, e, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	x0, y0 := common.WorldToScreen(b.MinX, b.MaxY)
	x1, y1 := common.WorldToScreen(b.MaxX, b.MinY)
	vector.StrokeRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), 3, wallColor, false)
}

func drawRat(w *ecs.World, e ecs.Entity, screen *ebiten.Image) {
	rat, ok := ecs.Get(w, e, component.RatComponent.Kind())
	if !ok {
		return
	}
	tf, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}

	radius := 0.15
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Radius > 0 {
		radius = body.Radius
	}
	c := rat.Color
	if c == nil {
		c = colornames.Tan
	}
	img := RatSprite(radius*common.PixelsPerUnit, c)

	sx, sy := common.WorldToScreen(tf.X, tf.Y)
	half := float64(img.Bounds().Dx()) / 2
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-half, -half)
	// Screen y points down, so world rotation flips sign.
	op.GeoM.Rotate(-tf.Rotation)
	op.GeoM.Translate(sx, sy)
	screen.DrawImage(img, op)
}

func drawTarget(w *ecs.World, screen *ebiten.Image) {
	e, ok := w.First(component.TargetTagComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, e, component.TargetComponent.Kind())
	if !ok || !t.Active {
		return
	}
	sx, sy := common.WorldToScreen(t.X, t.Y)
	vector.StrokeCircle(screen, float32(sx), float32(sy), 8, 2, targetColor, true)
	vector.StrokeLine(screen, float32(sx-12), float32(sy), float32(sx+12), float32(sy), 1, targetColor, true)
	vector.StrokeLine(screen, float32(sx), float32(sy-12), float32(sx), float32(sy+12), 1, targetColor, true)
}

func drawHUD(w *ecs.World, screen *ebiten.Image, rats int) {
	source := "none"
	if e, ok := w.First(component.TargetTagComponent.Kind()); ok {
		if t, ok := ecs.Get(w, e, component.TargetComponent.Kind()); ok && t.Source != "" {
			source = t.Source
		}
	}
	text := fmt.Sprintf("TPS: %0.1f\nFPS: %0.1f\nRats: %d\nTarget: %s", ebiten.ActualTPS(), ebiten.ActualFPS(), rats, source)
	ebitenutil.DebugPrintAt(screen, text, 10, common.BaseHeight-80)
}
