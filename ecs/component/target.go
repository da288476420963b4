package component

// Target is the point rats are attracted to and measure ramp distance from.
// Active is false until a source has produced a position.
type Target struct {
	X      float64
	Y      float64
	Active bool
	Source string
}

var TargetComponent = NewComponent[Target]()
