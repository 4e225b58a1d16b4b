// Package collide is the lightweight movement backend: a flat set of
// static 2D collision primitives on the XZ plane, each tagged with a
// vertical extent, resolved against a moving agent circle by iterative
// penetration correction. It is a discrete penalty solver, not physically
// exact; only capsule-vs-static contact at walking speed is required.
package collide

import (
	"cabin3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ID identifies an obstacle inside a Registry.
type ID = engine.BlockerID

const (
	// resolvePasses is the fixed iteration count over the full obstacle
	// set per resolution. Two passes damp corner cases where a single
	// pass would tunnel through a corner formed by two obstacles.
	resolvePasses = 2

	// stepSlack extends the agent's vertical band upward so low lips
	// (door sills, cabin floor edge) can be stepped over.
	stepSlack = 0.4

	// degenerateNudge is the fraction of combined radius used to push
	// out of an exactly-coincident circle center.
	degenerateNudge = 0.1
)

type shapeKind uint8

const (
	shapeBox shapeKind = iota
	shapeCircle
)

// Obstacle is one static collision primitive. Box extents and circle
// centers live on the XZ plane; Vector2.Y is the world Z coordinate.
type Obstacle struct {
	id     ID
	kind   shapeKind
	min    rl.Vector2
	max    rl.Vector2
	center rl.Vector2
	radius float32
	minY   float32
	maxY   float32
}

// Registry owns the flat obstacle set. Not safe for concurrent use; the
// whole core runs on the frame thread.
type Registry struct {
	obstacles []Obstacle
	nextID    ID
}

func NewRegistry() *Registry {
	return &Registry{}
}

// AddBox registers an axis-aligned box on the XZ plane with the given
// vertical extent and returns its id.
func (r *Registry) AddBox(min, max rl.Vector2, minY, maxY float32) ID {
	r.nextID++
	r.obstacles = append(r.obstacles, Obstacle{
		id:   r.nextID,
		kind: shapeBox,
		min:  min,
		max:  max,
		minY: minY,
		maxY: maxY,
	})
	return r.nextID
}

// AddCircle registers a circular column on the XZ plane and returns its id.
func (r *Registry) AddCircle(center rl.Vector2, radius, minY, maxY float32) ID {
	r.nextID++
	r.obstacles = append(r.obstacles, Obstacle{
		id:     r.nextID,
		kind:   shapeCircle,
		center: center,
		radius: radius,
		minY:   minY,
		maxY:   maxY,
	})
	return r.nextID
}

// Remove drops the obstacle with the given id. Unknown ids are ignored.
func (r *Registry) Remove(id ID) {
	for i, ob := range r.obstacles {
		if ob.id == id {
			r.obstacles = append(r.obstacles[:i], r.obstacles[i+1:]...)
			return
		}
	}
}

// Count returns the number of registered obstacles.
func (r *Registry) Count() int {
	return len(r.obstacles)
}

// ResolveHorizontal projects the agent to the XZ plane as a circle of the
// given radius, applies the desired horizontal displacement and pushes the
// result out of every overlapping obstacle. Only obstacles whose vertical
// band overlaps [bottomY, topY+stepSlack] participate. The Y component of
// the returned position is the input Y; vertical motion is not collided.
func (r *Registry) ResolveHorizontal(pos, desired rl.Vector3, radius, bottomY, topY float32) rl.Vector3 {
	candidate := rl.Vector2{X: pos.X + desired.X, Y: pos.Z + desired.Z}

	for pass := 0; pass < resolvePasses; pass++ {
		for i := range r.obstacles {
			ob := &r.obstacles[i]
			if ob.maxY < bottomY || ob.minY > topY+stepSlack {
				continue
			}
			candidate = ob.pushOut(candidate, radius)
		}
	}

	return rl.Vector3{X: candidate.X, Y: pos.Y, Z: candidate.Y}
}

// pushOut returns the circle center moved out of the obstacle, or the
// center unchanged when there is no overlap. Degenerate obstacles
// contribute no correction.
func (ob *Obstacle) pushOut(center rl.Vector2, radius float32) rl.Vector2 {
	switch ob.kind {
	case shapeBox:
		return ob.pushOutBox(center, radius)
	case shapeCircle:
		return ob.pushOutCircle(center, radius)
	}
	return center
}

func (ob *Obstacle) pushOutBox(center rl.Vector2, radius float32) rl.Vector2 {
	if ob.max.X <= ob.min.X || ob.max.Y <= ob.min.Y {
		return center // empty box
	}

	// Closest point on the box to the circle center.
	closest := rl.Vector2{
		X: clamp(center.X, ob.min.X, ob.max.X),
		Y: clamp(center.Y, ob.min.Y, ob.max.Y),
	}

	dx := center.X - closest.X
	dz := center.Y - closest.Y
	distSq := dx*dx + dz*dz

	if distSq >= radius*radius {
		return center
	}

	if distSq > 1e-9 {
		dist := sqrt32(distSq)
		push := (radius - dist) / dist
		return rl.Vector2{X: center.X + dx*push, Y: center.Y + dz*push}
	}

	// Center is inside the box: push out along the shorter box axis,
	// toward the nearer face.
	sizeX := ob.max.X - ob.min.X
	sizeZ := ob.max.Y - ob.min.Y
	if sizeX <= sizeZ {
		if center.X-ob.min.X < ob.max.X-center.X {
			return rl.Vector2{X: ob.min.X - radius, Y: center.Y}
		}
		return rl.Vector2{X: ob.max.X + radius, Y: center.Y}
	}
	if center.Y-ob.min.Y < ob.max.Y-center.Y {
		return rl.Vector2{X: center.X, Y: ob.min.Y - radius}
	}
	return rl.Vector2{X: center.X, Y: ob.max.Y + radius}
}

func (ob *Obstacle) pushOutCircle(center rl.Vector2, radius float32) rl.Vector2 {
	if ob.radius <= 0 {
		return center
	}

	dx := center.X - ob.center.X
	dz := center.Y - ob.center.Y
	distSq := dx*dx + dz*dz
	minDist := radius + ob.radius

	if distSq >= minDist*minDist {
		return center
	}

	if distSq > 1e-9 {
		dist := sqrt32(distSq)
		push := (minDist - dist) / dist
		return rl.Vector2{X: center.X + dx*push, Y: center.Y + dz*push}
	}

	// Centers coincide: nudge by a fixed fraction of the combined radius.
	return rl.Vector2{X: center.X + minDist*degenerateNudge, Y: center.Y}
}
