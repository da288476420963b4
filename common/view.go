package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// PixelsPerUnit converts simulation units to screen pixels.
	PixelsPerUnit = 40.0

	// TickRate matches ebiten's default TPS.
	TickRate = 60
)

// WorldToScreen maps a y-up world point to y-down screen space with the
// world origin at the bottom-center of the base resolution.
func WorldToScreen(x, y float64) (float64, float64) {
	sx := BaseWidth/2 + x*PixelsPerUnit
	sy := BaseHeight - y*PixelsPerUnit
	return sx, sy
}

func ScreenToWorld(sx, sy float64) (float64, float64) {
	x := (sx - BaseWidth/2) / PixelsPerUnit
	y := (BaseHeight - sy) / PixelsPerUnit
	return x, y
}
