package collide

import (
	"cabin3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Registry satisfies engine.MovementBackend. Vertical motion is not
// collided: the agent is assumed to move on a single nominal ground plane
// and is always grounded. Multi-level floors need the physics backend.
var _ engine.MovementBackend = (*Registry)(nil)

func (r *Registry) ResolveDisplacement(pos, desired rl.Vector3, radius, bottomY, topY float32) (rl.Vector3, bool) {
	return r.ResolveHorizontal(pos, desired, radius, bottomY, topY), true
}

func (r *Registry) AddBlockerBox(min, max rl.Vector3) engine.BlockerID {
	return r.AddBox(
		rl.Vector2{X: min.X, Y: min.Z},
		rl.Vector2{X: max.X, Y: max.Z},
		min.Y, max.Y,
	)
}

func (r *Registry) AddBlockerColumn(center rl.Vector3, radius, minY, maxY float32) engine.BlockerID {
	return r.AddCircle(rl.Vector2{X: center.X, Y: center.Z}, radius, minY, maxY)
}

func (r *Registry) RemoveBlocker(id engine.BlockerID) {
	r.Remove(id)
}
