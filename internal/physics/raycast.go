package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Raycast returns the distance to the nearest static or kinematic volume
// hit by the ray, or false when nothing is hit within maxDistance.
func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32) (float32, bool) {
	direction = rl.Vector3Normalize(direction)
	closest := maxDistance
	hit := false

	for _, s := range w.statics {
		if t, ok := raycastAABB(origin, direction, s.box, closest); ok {
			closest = t
			hit = true
		}
	}
	for _, k := range w.kinematics {
		if t, ok := raycastOBB(origin, direction, NewOBB(k.pos, k.size, k.orient), closest); ok {
			closest = t
			hit = true
		}
	}

	return closest, hit
}

// RayBlocked reports whether the straight line from 'from' to 'to' is
// interrupted by any volume. Used to drop interaction candidates hidden
// behind walls.
func (w *World) RayBlocked(from, to rl.Vector3) bool {
	delta := rl.Vector3Subtract(to, from)
	dist := rl.Vector3Length(delta)
	if dist < 0.0001 {
		return false
	}
	// Stop just short of the target so the candidate's own volume does
	// not count as an occluder.
	t, hit := w.Raycast(from, delta, dist-0.1)
	return hit && t < dist-0.1
}

func raycastAABB(origin, direction rl.Vector3, box AABB, maxDistance float32) (float32, bool) {
	tmin := float32(-1e30)
	tmax := float32(1e30)

	// Slab test per axis.
	axes := [3][3]float32{
		{origin.X, direction.X, 0},
		{origin.Y, direction.Y, 0},
		{origin.Z, direction.Z, 0},
	}
	mins := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	maxs := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	for i := 0; i < 3; i++ {
		o, d := axes[i][0], axes[i][1]
		if d != 0 {
			t1 := (mins[i] - o) / d
			t2 := (maxs[i] - o) / d
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
			}
			if t2 < tmax {
				tmax = t2
			}
		} else if o < mins[i] || o > maxs[i] {
			return 0, false
		}
	}

	if tmin > tmax || tmax < 0 || tmin > maxDistance {
		return 0, false
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	if t < 0 || t > maxDistance {
		return 0, false
	}
	return t, true
}

func raycastOBB(origin, direction rl.Vector3, obb OBB, maxDistance float32) (float32, bool) {
	// Transform the ray into the box's local frame; the box becomes an
	// AABB around the origin.
	rel := rl.Vector3Subtract(origin, obb.Center)
	localOrigin := rl.Vector3{
		X: rl.Vector3DotProduct(rel, obb.Axes[0]),
		Y: rl.Vector3DotProduct(rel, obb.Axes[1]),
		Z: rl.Vector3DotProduct(rel, obb.Axes[2]),
	}
	localDir := rl.Vector3{
		X: rl.Vector3DotProduct(direction, obb.Axes[0]),
		Y: rl.Vector3DotProduct(direction, obb.Axes[1]),
		Z: rl.Vector3DotProduct(direction, obb.Axes[2]),
	}
	box := AABB{
		Min: rl.Vector3{X: -obb.HalfSize.X, Y: -obb.HalfSize.Y, Z: -obb.HalfSize.Z},
		Max: rl.Vector3{X: obb.HalfSize.X, Y: obb.HalfSize.Y, Z: obb.HalfSize.Z},
	}
	return raycastAABB(localOrigin, localDir, box, maxDistance)
}
