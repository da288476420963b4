package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/ratswarm/common"
	"github.com/milk9111/ratswarm/swarm"
	"golang.org/x/image/font/basicfont"
)

// sliderSteps is the integer resolution of every slider.
const sliderSteps = 200

type sliderDef struct {
	name  string
	label string
	min   float64
	max   float64
}

var tuningSliders = []sliderDef{
	{name: "speed", label: "Speed", min: 0, max: 15},
	{name: "cohesion", label: "Cohesion", min: 0, max: 10},
	{name: "alignment", label: "Alignment", min: 0, max: 10},
	{name: "separation", label: "Separation", min: 0, max: 10},
	{name: "separationDistance", label: "Separation distance", min: 0, max: 5},
	{name: "gravity", label: "Gravity", min: 0, max: 20},
	{name: "follow", label: "Follow", min: 0, max: 20},
}

func (d sliderDef) value(step int) float64 {
	return common.Lerp(d.min, d.max, float64(step)/sliderSteps)
}

func (d sliderDef) step(value float64) int {
	return int(common.InverseLerp(d.min, d.max, value)*sliderSteps + 0.5)
}

// NewTuningUI builds the slider panel. Each slider overwrites one parameter
// on every rat through setter.
func NewTuningUI(setter swarm.BulkSetter, initial swarm.Params) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 170})
	trackImg := &widget.SliderTrackImage{
		Idle:  imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255}),
		Hover: imageui.NewNineSliceColor(color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 255}),
	}
	handleImg := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(color.NRGBA{R: 0xc8, G: 0xb4, B: 0x96, A: 255}),
		Hover:   imageui.NewNineSliceColor(color.NRGBA{R: 0xdc, G: 0xc8, B: 0xaa, A: 255}),
		Pressed: imageui.NewNineSliceColor(color.NRGBA{R: 0xa0, G: 0x8c, B: 0x6e, A: 255}),
	}

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	labelColor := &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 14, Right: 14}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionEnd, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)

	for _, def := range tuningSliders {
		def := def
		current := 0.0
		if v, err := initial.Get(def.name); err == nil {
			current = v
		}

		label := widget.NewLabel(widget.LabelOpts.Text(sliderText(def, current), &face, labelColor))
		slider := widget.NewSlider(
			widget.SliderOpts.Direction(widget.DirectionHorizontal),
			widget.SliderOpts.MinMax(0, sliderSteps),
			widget.SliderOpts.Images(trackImg, handleImg),
			widget.SliderOpts.FixedHandleSize(8),
			widget.SliderOpts.WidgetOpts(widget.WidgetOpts.MinSize(220, 12)),
			widget.SliderOpts.ChangedHandler(func(args *widget.SliderChangedEventArgs) {
				v := def.value(args.Current)
				label.Label = sliderText(def, v)
				if err := setter.SetAll(def.name, v); err != nil {
					log.Printf("tuning ui: %v", err)
				}
			}),
		)
		slider.Current = def.step(current)

		panel.AddChild(label)
		panel.AddChild(slider)
	}

	hint := widget.NewLabel(widget.LabelOpts.Text("Tab hides, F1 toggles gizmos", &face, labelColor))
	panel.AddChild(hint)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

func sliderText(d sliderDef, v float64) string {
	return fmt.Sprintf("%s: %.2f", d.label, v)
}
