package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// BlockerID identifies a static blocking volume inside a movement backend.
type BlockerID uint32

// BodyID identifies a kinematic body inside a movement backend.
type BodyID uint32

// MovementBackend is the single surface the character controller and the
// door system move against. Two implementations exist: the lightweight
// circle/box registry (collide.Registry) and the kinematic physics world
// (physics.World). They are interchangeable at construction time.
type MovementBackend interface {
	// ResolveDisplacement applies the desired displacement to pos and
	// returns the corrected position after collision resolution, plus
	// whether the agent ended the move grounded.
	ResolveDisplacement(pos, desired rl.Vector3, radius, bottomY, topY float32) (corrected rl.Vector3, grounded bool)

	// AddBlockerBox registers a static axis-aligned blocking volume.
	AddBlockerBox(min, max rl.Vector3) BlockerID

	// AddBlockerColumn registers a static vertical circular column
	// (tree trunks, rocks) spanning [minY, maxY].
	AddBlockerColumn(center rl.Vector3, radius, minY, maxY float32) BlockerID

	// RemoveBlocker drops a blocker. Unknown ids are ignored.
	RemoveBlocker(id BlockerID)
}

// KinematicSink is implemented by backends that mirror moving objects as
// kinematic bodies (the physics world). Door rigs push their pivot pose
// into it once per frame; the lightweight backend does not implement it
// and doors drive blockers directly instead.
type KinematicSink interface {
	CreateKinematicBody(size, pos rl.Vector3, orient rl.Quaternion) BodyID
	SetNextKinematicPose(id BodyID, pos rl.Vector3, orient rl.Quaternion)
}
