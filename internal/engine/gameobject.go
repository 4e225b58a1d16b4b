package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Transform holds position, orientation and scale local to the parent.
// Orientation is a quaternion so hinged objects can be interpolated with
// slerp instead of going through euler angles.
type Transform struct {
	Position    rl.Vector3
	Orientation rl.Quaternion
	Scale       rl.Vector3
}

func NewTransform() Transform {
	return Transform{
		Orientation: rl.QuaternionIdentity(),
		Scale:       rl.Vector3{X: 1, Y: 1, Z: 1},
	}
}

type GameObject struct {
	Name      string
	Tags      []string
	Transform Transform
	Active    bool
	Scene     *Scene
	Parent    *GameObject
	Children  []*GameObject
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		Name:      name,
		Active:    true,
		Transform: NewTransform(),
		Children:  make([]*GameObject, 0),
	}
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (g *GameObject) AddChild(child *GameObject) {
	child.Parent = g
	g.Children = append(g.Children, child)
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// WorldPosition composes the local position through the parent chain.
func (g *GameObject) WorldPosition() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Position
	}
	return g.Parent.TransformPoint(g.Transform.Position)
}

// WorldOrientation composes local orientations through the parent chain.
func (g *GameObject) WorldOrientation() rl.Quaternion {
	if g.Parent == nil {
		return g.Transform.Orientation
	}
	return rl.QuaternionMultiply(g.Parent.WorldOrientation(), g.Transform.Orientation)
}

func (g *GameObject) WorldScale() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Scale
	}
	ps := g.Parent.WorldScale()
	return rl.Vector3{
		X: ps.X * g.Transform.Scale.X,
		Y: ps.Y * g.Transform.Scale.Y,
		Z: ps.Z * g.Transform.Scale.Z,
	}
}

// SetWorldOrientation sets the local orientation so the composed world
// orientation equals the given quaternion.
func (g *GameObject) SetWorldOrientation(q rl.Quaternion) {
	if g.Parent == nil {
		g.Transform.Orientation = q
		return
	}
	g.Transform.Orientation = rl.QuaternionMultiply(rl.QuaternionInvert(g.Parent.WorldOrientation()), q)
}

// TransformPoint maps a point from this object's local space to world space.
func (g *GameObject) TransformPoint(local rl.Vector3) rl.Vector3 {
	scale := g.WorldScale()
	scaled := rl.Vector3{
		X: local.X * scale.X,
		Y: local.Y * scale.Y,
		Z: local.Z * scale.Z,
	}
	rotated := rl.Vector3RotateByQuaternion(scaled, g.WorldOrientation())
	return rl.Vector3Add(g.WorldPosition(), rotated)
}

// InverseTransformPoint maps a world-space point into this object's local
// space.
func (g *GameObject) InverseTransformPoint(world rl.Vector3) rl.Vector3 {
	offset := rl.Vector3Subtract(world, g.WorldPosition())
	unrotated := rl.Vector3RotateByQuaternion(offset, rl.QuaternionInvert(g.WorldOrientation()))
	scale := g.WorldScale()
	if scale.X == 0 || scale.Y == 0 || scale.Z == 0 {
		return unrotated
	}
	return rl.Vector3{
		X: unrotated.X / scale.X,
		Y: unrotated.Y / scale.Y,
		Z: unrotated.Z / scale.Z,
	}
}
