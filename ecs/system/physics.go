package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ratswarm/common"
	"github.com/milk9111/ratswarm/ecs"
	"github.com/milk9111/ratswarm/ecs/component"
)

const (
	collisionTypeRat cp.CollisionType = iota + 1
	collisionTypeSolid
)

// Rats share a non-zero group so they pass through each other; separation
// is the swarm's job, not the solver's.
const ratGroup uint = 1

const wallThickness = 0.1

// PhysicsSystem integrates rat positions with Chipmunk2D. The space has no
// gravity of its own: gravity is a steering force folded into each rat's
// velocity, which is written to its body every tick.
type PhysicsSystem struct {
	Dt    float64
	space *cp.Space

	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	return &PhysicsSystem{
		Dt:       1.0 / common.TickRate,
		space:    space,
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.cleanupEntities(w)
	ps.syncEntities(w)
	ps.syncWorldBounds(w)
	ps.pushVelocities(w)

	ps.space.Step(ps.Dt)

	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if _, exists := ps.entities[e]; exists {
			return
		}
		info := ps.createBody(e, w, bodyComp, transform)
		ps.entities[e] = info
		bodyComp.Body = info.body
		if len(info.shapes) > 0 {
			bodyComp.Shape = info.shapes[0]
		}
	})
}

func (ps *PhysicsSystem) createBody(e ecs.Entity, w *ecs.World, bodyComp *component.PhysicsBody, transform *component.Transform) *bodyInfo {
	radius := bodyComp.Radius
	if radius <= 0 {
		radius = 0.1
	}
	pos := cp.Vector{X: transform.X, Y: transform.Y}

	if bodyComp.Static {
		shape := cp.NewCircle(ps.space.StaticBody, radius, pos)
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{shape}, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	body.SetPosition(pos)
	body.SetAngle(transform.Rotation)

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeSolid)
	if ecs.Has(w, e, component.RatComponent.Kind()) {
		shape.SetCollisionType(collisionTypeRat)
		shape.SetFilter(cp.NewShapeFilter(ratGroup, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shapes: []*cp.Shape{shape}}
}

// syncWorldBounds walls in the arena once. The floor is the bottom edge.
func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if !ok || bounds.Width() <= 0 || bounds.Height() <= 0 {
		return
	}

	l, r, b, t := bounds.MinX, bounds.MaxX, bounds.MinY, bounds.MaxY
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: l, Y: b}, b: cp.Vector{X: r, Y: b}}, // floor
		{a: cp.Vector{X: l, Y: t}, b: cp.Vector{X: r, Y: t}}, // ceiling
		{a: cp.Vector{X: l, Y: b}, b: cp.Vector{X: l, Y: t}}, // left
		{a: cp.Vector{X: r, Y: b}, b: cp.Vector{X: r, Y: t}}, // right
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, wallThickness)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}
	ps.entities[boundsEntity] = info
}

// pushVelocities hands each rat's steering velocity to its body.
func (ps *PhysicsSystem) pushVelocities(w *ecs.World) {
	ecs.ForEach2(w, component.RatComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, rat *component.Rat, bodyComp *component.PhysicsBody) {
		if bodyComp.Body == nil || bodyComp.Static {
			return
		}
		bodyComp.Body.SetVelocity(rat.Velocity.X, rat.Velocity.Y)
		bodyComp.Body.SetAngularVelocity(0)
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Static {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y

		// Face the direction of travel.
		v := bodyComp.Body.Velocity()
		if v.X != 0 || v.Y != 0 {
			transform.Rotation = math.Atan2(v.Y, v.X)
		}
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && (ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.LevelBoundsComponent.Kind())) {
			continue
		}
		for _, shape := range info.shapes {
			if shape != nil {
				ps.space.RemoveShape(shape)
			}
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
