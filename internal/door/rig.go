// Package door turns authored static meshes into hinged, blocking,
// interactable doors. Geometry derivation happens once at scene load from
// the mesh's local bounding box; the runtime advances an open-progress
// scalar and keeps a blocking collider (or kinematic body) in sync.
package door

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HingeEdge selects which edge of the bounding box carries the hinge.
// Auto picks an edge on the longer horizontal extent (the long side of a
// door slab swings; the short side is its thickness). Mesh authoring is
// not consistent enough to rely on Auto everywhere, hence the overrides.
type HingeEdge int

const (
	HingeAuto HingeEdge = iota
	HingeMinX
	HingeMaxX
	HingeMinZ
	HingeMaxZ
)

// RigConfig parameterizes the derivation.
type RigConfig struct {
	OpenAngle     float32 // radians; swing between closed and open
	OpenDirection float32 // +1 or -1, swing side
	Hinge         HingeEdge
}

// RigDescriptor is the pure result of DeriveHingeRig. The caller applies
// it to its scene graph: create a pivot node at PivotPosition with
// OpenOrientation, re-parent the mesh under it at MeshLocalOffset. The
// mesh then visually stays put while the pivot becomes the rotation
// origin.
type RigDescriptor struct {
	PivotPosition     rl.Vector3    // world position of the hinge line
	OpenOrientation   rl.Quaternion // authored pose; doors are authored open
	ClosedOrientation rl.Quaternion // derived, never authored
	MeshLocalOffset   rl.Vector3    // mesh position under the pivot
	InteractionOffset rl.Vector3    // pivot-local stable interaction point
	BoxMinLocal       rl.Vector3    // slab bounds in pivot space
	BoxMaxLocal       rl.Vector3
	Size              rl.Vector3 // slab dimensions
}

// ErrDegenerateBox is returned when the mesh bounding box has no volume;
// such meshes are logged and skipped rather than rigged.
var ErrDegenerateBox = errors.New("door: degenerate bounding box")

var worldUp = rl.Vector3{X: 0, Y: 1, Z: 0}

// interactionDrop nudges the interaction point down by this fraction of
// the box height so the prompt anchors at handle height, not dead center.
const interactionDrop = 0.15

// DeriveHingeRig computes the hinge pivot and swing basis for a mesh from
// its local-space bounding box and world pose. Pure: no scene graph is
// touched. The open orientation is the authored pose and the closed one
// is derived by composing a world-up rotation of -OpenAngle*OpenDirection,
// so only one pose ever has to be authored.
func DeriveHingeRig(box rl.BoundingBox, worldPos rl.Vector3, worldOrient rl.Quaternion, cfg RigConfig) (RigDescriptor, error) {
	size := rl.Vector3Subtract(box.Max, box.Min)
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return RigDescriptor{}, ErrDegenerateBox
	}

	center := rl.Vector3{
		X: (box.Min.X + box.Max.X) / 2,
		Y: (box.Min.Y + box.Max.Y) / 2,
		Z: (box.Min.Z + box.Max.Z) / 2,
	}

	edge := cfg.Hinge
	if edge == HingeAuto {
		if size.X >= size.Z {
			edge = HingeMinX
		} else {
			edge = HingeMinZ
		}
	}

	hinge := center
	switch edge {
	case HingeMinX:
		hinge.X = box.Min.X
	case HingeMaxX:
		hinge.X = box.Max.X
	case HingeMinZ:
		hinge.Z = box.Min.Z
	case HingeMaxZ:
		hinge.Z = box.Max.Z
	}

	open := worldOrient
	swing := rl.QuaternionFromAxisAngle(worldUp, -cfg.OpenAngle*cfg.OpenDirection)
	closed := rl.QuaternionMultiply(swing, open)

	interaction := rl.Vector3Subtract(center, hinge)
	interaction.Y -= size.Y * interactionDrop

	return RigDescriptor{
		PivotPosition:     rl.Vector3Add(worldPos, rl.Vector3RotateByQuaternion(hinge, worldOrient)),
		OpenOrientation:   open,
		ClosedOrientation: closed,
		MeshLocalOffset:   rl.Vector3Negate(hinge),
		InteractionOffset: interaction,
		BoxMinLocal:       rl.Vector3Subtract(box.Min, hinge),
		BoxMaxLocal:       rl.Vector3Subtract(box.Max, hinge),
		Size:              size,
	}, nil
}
