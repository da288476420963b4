package swarm

import "gonum.org/v1/gonum/spatial/r2"

// Agent is one rat's kinematic state plus its tunables.
type Agent struct {
	Position r2.Vec
	Velocity r2.Vec
	Params   Params
}

// Neighbor is a read-only view of another agent taken at tick start.
type Neighbor struct {
	Position r2.Vec
	Velocity r2.Vec
}

// Forces are the three normalized flocking terms for one agent.
type Forces struct {
	Cohesion   r2.Vec
	Alignment  r2.Vec
	Separation r2.Vec
	// Count is the number of neighbors inside the separation radius.
	Count int
}

// Flock computes cohesion, alignment and separation. A single radius,
// Params.SeparationDistance, decides which neighbors count for all three.
func Flock(self Agent, neighbors []Neighbor) Forces {
	var cohesion, separation r2.Vec
	alignment := normalize(self.Velocity)
	count := 0

	for _, n := range neighbors {
		dist := distance(n.Position, self.Position)
		if dist >= self.Params.SeparationDistance {
			continue
		}
		cohesion = r2.Add(cohesion, n.Position)
		alignment = r2.Add(alignment, normalize(n.Velocity))
		if dist > 0 {
			away := normalize(r2.Sub(self.Position, n.Position))
			separation = r2.Add(separation, r2.Scale(1/dist, away))
		}
		count++
	}

	if count == 0 {
		return Forces{Alignment: alignment}
	}

	inv := 1 / float64(count)
	return Forces{
		Cohesion:   normalize(r2.Sub(r2.Scale(inv, cohesion), self.Position)),
		Alignment:  normalize(r2.Scale(inv, alignment)),
		Separation: normalize(r2.Scale(inv, separation)),
		Count:      count,
	}
}

// Steer folds the weighted flocking forces into velocity and rescales the
// result to Params.Speed.
func Steer(self Agent, f Forces, dt float64) r2.Vec {
	p := self.Params
	force := r2.Add(
		r2.Add(r2.Scale(p.CohesionStrength, f.Cohesion), r2.Scale(p.AlignmentStrength, f.Alignment)),
		r2.Scale(p.SeparationStrength, f.Separation),
	)
	v := r2.Add(self.Velocity, r2.Scale(dt, force))
	return r2.Scale(p.Speed, normalize(v))
}

// Step returns the agent's velocity for the next tick. Target seek and
// gravity are added after the speed renormalization, so they are not capped
// until the following tick.
func Step(self Agent, target r2.Vec, neighbors []Neighbor, dt float64) r2.Vec {
	v := Steer(self, Flock(self, neighbors), dt)

	seek := normalize(r2.Sub(target, self.Position))
	v = r2.Add(v, r2.Scale(self.Params.FollowStrength*dt, seek))

	v = r2.Add(v, r2.Scale(self.Params.GravityStrength*dt, down))
	return v
}
