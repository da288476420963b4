package component

// LevelBounds is the walled arena rats live in, in world units. The floor
// sits at MinY.
type LevelBounds struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

func (b LevelBounds) Width() float64  { return b.MaxX - b.MinX }
func (b LevelBounds) Height() float64 { return b.MaxY - b.MinY }

var LevelBoundsComponent = NewComponent[LevelBounds]()
