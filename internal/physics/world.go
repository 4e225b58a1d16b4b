// Package physics is the full movement backend: a kinematic character
// mover plus queued kinematic bodies for hinged objects, resolved against
// static axis-aligned volumes. There are no dynamic rigidbodies; the only
// moving things are the player capsule and door slabs.
package physics

import (
	"cabin3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type staticShape struct {
	id  engine.BlockerID
	box AABB
}

type kinematicBody struct {
	id         engine.BodyID
	size       rl.Vector3
	pos        rl.Vector3
	orient     rl.Quaternion
	nextPos    rl.Vector3
	nextOrient rl.Quaternion
	hasNext    bool
}

// World implements engine.MovementBackend and engine.KinematicSink.
type World struct {
	// FloorY is the nominal ground plane. Statics above it can still be
	// stepped onto up to StepHeight.
	FloorY     float32
	StepHeight float32

	statics       []staticShape
	kinematics    []*kinematicBody
	nextBlockerID engine.BlockerID
	nextBodyID    engine.BodyID
}

var (
	_ engine.MovementBackend = (*World)(nil)
	_ engine.KinematicSink   = (*World)(nil)
)

func NewWorld() *World {
	return &World{
		StepHeight: 0.4,
	}
}

func (w *World) AddBlockerBox(min, max rl.Vector3) engine.BlockerID {
	w.nextBlockerID++
	w.statics = append(w.statics, staticShape{
		id:  w.nextBlockerID,
		box: AABB{Min: min, Max: max},
	})
	return w.nextBlockerID
}

// AddBlockerColumn approximates a circular column by its bounding square.
// Close enough for trunk-sized obstacles at walking speed.
func (w *World) AddBlockerColumn(center rl.Vector3, radius, minY, maxY float32) engine.BlockerID {
	return w.AddBlockerBox(
		rl.Vector3{X: center.X - radius, Y: minY, Z: center.Z - radius},
		rl.Vector3{X: center.X + radius, Y: maxY, Z: center.Z + radius},
	)
}

func (w *World) RemoveBlocker(id engine.BlockerID) {
	for i, s := range w.statics {
		if s.id == id {
			w.statics = append(w.statics[:i], w.statics[i+1:]...)
			return
		}
	}
}

func (w *World) StaticCount() int {
	return len(w.statics)
}

func (w *World) CreateKinematicBody(size, pos rl.Vector3, orient rl.Quaternion) engine.BodyID {
	w.nextBodyID++
	w.kinematics = append(w.kinematics, &kinematicBody{
		id:     w.nextBodyID,
		size:   size,
		pos:    pos,
		orient: orient,
	})
	return w.nextBodyID
}

// SetNextKinematicPose queues a pose that takes effect on the next Step.
// Unknown ids are ignored.
func (w *World) SetNextKinematicPose(id engine.BodyID, pos rl.Vector3, orient rl.Quaternion) {
	for _, k := range w.kinematics {
		if k.id == id {
			k.nextPos = pos
			k.nextOrient = orient
			k.hasNext = true
			return
		}
	}
}

// Step applies queued kinematic poses. Called once per frame between the
// controller's pre-physics and post-physics phases.
func (w *World) Step(dt float32) {
	for _, k := range w.kinematics {
		if k.hasNext {
			k.pos = k.nextPos
			k.orient = k.nextOrient
			k.hasNext = false
		}
	}
}

// ResolveDisplacement moves a character box (half-width = radius, vertical
// extent [bottomY, topY]) by the desired displacement, horizontal first and
// vertical second, pushing out of statics and kinematic bodies. Horizontal
// contacts whose top edge is within StepHeight of the feet are climbed
// instead of blocked.
func (w *World) ResolveDisplacement(pos, desired rl.Vector3, radius, bottomY, topY float32) (rl.Vector3, bool) {
	bottomOff := bottomY - pos.Y
	topOff := topY - pos.Y
	grounded := false

	cur := pos
	cur.X += desired.X
	cur.Z += desired.Z
	cur, g := w.pushOut(cur, radius, bottomOff, topOff, true)
	grounded = grounded || g

	cur.Y += desired.Y
	cur, g = w.pushOut(cur, radius, bottomOff, topOff, false)
	grounded = grounded || g

	// Ground snap against the nominal floor plane.
	if cur.Y+bottomOff <= w.FloorY {
		cur.Y = w.FloorY - bottomOff
		grounded = true
	}

	return cur, grounded
}

func (w *World) pushOut(cur rl.Vector3, radius, bottomOff, topOff float32, allowStep bool) (rl.Vector3, bool) {
	grounded := false

	charBox := func() AABB {
		return AABB{
			Min: rl.Vector3{X: cur.X - radius, Y: cur.Y + bottomOff, Z: cur.Z - radius},
			Max: rl.Vector3{X: cur.X + radius, Y: cur.Y + topOff, Z: cur.Z + radius},
		}
	}

	for _, s := range w.statics {
		box := charBox()
		push := box.Resolve(s.box)
		if push.X == 0 && push.Y == 0 && push.Z == 0 {
			continue
		}

		isHorizontal := (push.X != 0 || push.Z != 0) && push.Y == 0
		if isHorizontal && allowStep {
			feetY := cur.Y + bottomOff
			stepUp := s.box.Max.Y - feetY
			if stepUp > 0 && stepUp <= w.StepHeight {
				testY := cur.Y + stepUp + 0.01
				test := AABB{
					Min: rl.Vector3{X: cur.X - radius, Y: testY + bottomOff, Z: cur.Z - radius},
					Max: rl.Vector3{X: cur.X + radius, Y: testY + topOff, Z: cur.Z + radius},
				}
				if !test.Intersects(s.box) {
					cur.Y = testY
					grounded = true
					continue
				}
			}
		}

		cur = rl.Vector3Add(cur, push)
		if push.Y > 0 {
			grounded = true
		}
	}

	for _, k := range w.kinematics {
		box := charBox()
		charOBB := NewAABBasOBB(box.Center(), box.Size())
		bodyOBB := NewOBB(k.pos, k.size, k.orient)
		push := charOBB.ResolveOBB(bodyOBB)
		if push.X == 0 && push.Y == 0 && push.Z == 0 {
			continue
		}
		cur = rl.Vector3Add(cur, push)
		if push.Y > 0 {
			grounded = true
		}
	}

	return cur, grounded
}
