// Package game assembles the playable demo: a cabin clearing with a
// hinged front door, choppable trees, boardable windows and a firepit,
// wired onto either movement backend.
package game

import (
	"fmt"

	"cabin3d/internal/config"
	"cabin3d/internal/door"
	"cabin3d/internal/engine"
	"cabin3d/internal/interact"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

const (
	wallHeight    = 2.6
	wallThickness = 0.2
	chopsToFell   = 3
)

// Tree is a choppable trunk. Felling removes its blocker so the stump
// area becomes walkable.
type Tree struct {
	Obj       *engine.GameObject
	Radius    float32
	Height    float32
	blockerID engine.BlockerID
	hits      int
	felled    bool
}

// Board is a window opening that can be boarded up and pried open again.
type Board struct {
	Obj     *engine.GameObject
	Label   string
	Boarded bool
}

// Firepit is a lightable fire in front of the cabin.
type Firepit struct {
	Obj *engine.GameObject
	Lit bool
}

// World is the assembled demo scene plus the feature registries that feed
// interaction candidates each frame.
type World struct {
	Scene   *engine.Scene
	Doors   *door.System
	Trees   []*Tree
	Boards  []*Board
	Firepit *Firepit

	Spawn rl.Vector3

	backend engine.MovementBackend
	log     *zap.Logger
}

// BuildCabinWorld constructs the demo scene: a floor-level cabin with one
// hinged door in the south wall, two boardable windows, a firepit in the
// clearing and a ring of trees.
func BuildCabinWorld(cfg config.Config, backend engine.MovementBackend, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	w := &World{
		Scene:   engine.NewScene("cabin"),
		Doors:   door.NewSystem(cfg.Door, backend, log),
		Spawn:   rl.Vector3{X: 0, Y: 0, Z: 6},
		backend: backend,
		log:     log,
	}

	w.buildCabin(cfg)
	w.plantTrees()
	w.placeFirepit()

	log.Info("world built",
		zap.Int("doors", w.Doors.Count()),
		zap.Int("trees", len(w.Trees)),
		zap.Int("boards", len(w.Boards)))
	return w
}

// buildCabin lays out a 6x5 cabin centered at the origin with a doorway
// gap in the south wall. Walls are plain blocker boxes; only the door
// slab gets a scene node and a rig.
func (w *World) buildCabin(cfg config.Config) {
	const (
		halfW    = 3.0 // east-west
		halfD    = 2.5 // north-south
		doorHalf = 0.55
	)

	// North wall, full width.
	w.wall(-halfW, -halfD-wallThickness, halfW, -halfD)
	// East and west walls.
	w.wall(halfW, -halfD, halfW+wallThickness, halfD)
	w.wall(-halfW-wallThickness, -halfD, -halfW, halfD)
	// South wall in two segments around the doorway.
	w.wall(-halfW, halfD, -doorHalf, halfD+wallThickness)
	w.wall(doorHalf, halfD, halfW, halfD+wallThickness)

	w.riggedDoor(cfg, rl.Vector3{X: 0, Y: 0, Z: halfD + wallThickness/2}, doorHalf*2)

	w.window("west window", rl.Vector3{X: -halfW, Y: 1.2, Z: 0})
	w.window("east window", rl.Vector3{X: halfW, Y: 1.2, Z: 0})
}

func (w *World) wall(minX, minZ, maxX, maxZ float32) {
	w.backend.AddBlockerBox(
		rl.Vector3{X: minX, Y: 0, Z: minZ},
		rl.Vector3{X: maxX, Y: wallHeight, Z: maxZ},
	)
	obj := engine.NewGameObject("wall")
	obj.Tags = append(obj.Tags, "wall")
	obj.Transform.Position = rl.Vector3{
		X: (minX + maxX) / 2, Y: wallHeight / 2, Z: (minZ + maxZ) / 2,
	}
	obj.Transform.Scale = rl.Vector3{X: maxX - minX, Y: wallHeight, Z: maxZ - minZ}
	w.Scene.AddGameObject(obj)
}

// riggedDoor authors the door slab in its open pose (swung outward along
// +X from the doorway), derives the hinge rig from its bounding box and
// applies the rig to the scene graph.
func (w *World) riggedDoor(cfg config.Config, doorwayCenter rl.Vector3, width float32) {
	size := rl.Vector3{X: width, Y: 2.1, Z: 0.08}

	// Authored open: slab rotated 110 degrees around the hinge side of
	// the doorway. The mesh node carries the open world pose; the rig
	// derives closed from it.
	openAngle := cfg.Door.OpenAngleDeg * rl.Deg2rad
	orient := rl.QuaternionFromAxisAngle(rl.Vector3{X: 0, Y: 1, Z: 0}, openAngle)

	mesh := engine.NewGameObject("front door")
	mesh.Tags = append(mesh.Tags, "door")
	mesh.Transform.Position = rl.Vector3{
		X: doorwayCenter.X - width/2, Y: 0, Z: doorwayCenter.Z,
	}
	mesh.Transform.Orientation = orient
	w.Scene.AddGameObject(mesh)

	// Local bounding box: slab extends +X from the hinge edge.
	box := rl.BoundingBox{
		Min: rl.Vector3{X: 0, Y: 0, Z: -size.Z / 2},
		Max: rl.Vector3{X: size.X, Y: size.Y, Z: size.Z / 2},
	}

	desc, err := door.DeriveHingeRig(box, mesh.WorldPosition(), mesh.WorldOrientation(), door.RigConfig{
		OpenAngle:     openAngle,
		OpenDirection: 1,
		Hinge:         door.HingeMinX,
	})
	if err != nil {
		w.log.Warn("door rig skipped", zap.String("name", mesh.Name), zap.Error(err))
		return
	}

	pivot := engine.NewGameObject(mesh.Name + " pivot")
	pivot.Transform.Position = desc.PivotPosition
	pivot.Transform.Orientation = desc.OpenOrientation
	w.Scene.AddGameObject(pivot)
	w.Scene.Reparent(mesh, pivot)
	mesh.Transform.Position = desc.MeshLocalOffset

	w.Doors.Register(pivot, desc, door.Options{
		Name:  mesh.Name,
		Label: "front door",
	})
}

func (w *World) window(name string, pos rl.Vector3) {
	obj := engine.NewGameObject(name)
	obj.Tags = append(obj.Tags, "window")
	obj.Transform.Position = pos
	w.Scene.AddGameObject(obj)
	w.Boards = append(w.Boards, &Board{Obj: obj, Label: name})
}

func (w *World) plantTrees() {
	spots := []rl.Vector3{
		{X: -6, Y: 0, Z: 4}, {X: 6, Y: 0, Z: 5}, {X: -7, Y: 0, Z: -2},
		{X: 7, Y: 0, Z: -3}, {X: 3, Y: 0, Z: 9}, {X: -4, Y: 0, Z: 9},
	}
	for i, pos := range spots {
		tree := &Tree{Radius: 0.3, Height: 4}
		tree.Obj = engine.NewGameObject(fmt.Sprintf("tree %d", i+1))
		tree.Obj.Tags = append(tree.Obj.Tags, "tree")
		tree.Obj.Transform.Position = pos
		tree.blockerID = w.backend.AddBlockerColumn(pos, tree.Radius, 0, tree.Height)
		w.Scene.AddGameObject(tree.Obj)
		w.Trees = append(w.Trees, tree)
	}
}

func (w *World) placeFirepit() {
	obj := engine.NewGameObject("firepit")
	obj.Tags = append(obj.Tags, "firepit")
	obj.Transform.Position = rl.Vector3{X: 2.5, Y: 0, Z: 5}
	w.Scene.AddGameObject(obj)
	w.Firepit = &Firepit{Obj: obj}
}

// Chop lands one axe hit on a tree; the third fells it and frees its
// blocker. Returns whether the tree came down this hit.
func (w *World) Chop(t *Tree) bool {
	if t.felled {
		return false
	}
	t.hits++
	if t.hits < chopsToFell {
		return false
	}
	t.felled = true
	w.backend.RemoveBlocker(t.blockerID)
	t.Obj.Active = false
	w.log.Info("tree felled", zap.String("name", t.Obj.Name))
	return true
}

// Candidates assembles this frame's interaction candidates from every
// feature registry. Occlusion filtering is the caller's concern; this
// list is purely geometric.
func (w *World) Candidates() []interact.Candidate {
	var out []interact.Candidate

	w.Doors.ForEach(func(d *door.Door) {
		out = append(out, interact.Candidate{
			Kind:       interact.KindDoor,
			WorldPoint: d.InteractionPoint(),
			Label:      d.PromptLabel(),
			Data:       d,
		})
	})

	for _, b := range w.Boards {
		label := "Board up " + b.Label
		if b.Boarded {
			label = "Pry open " + b.Label
		}
		out = append(out, interact.Candidate{
			Kind:       interact.KindBoarding,
			WorldPoint: b.Obj.WorldPosition(),
			Label:      label,
			Data:       b,
		})
	}

	for _, t := range w.Trees {
		if t.felled {
			continue
		}
		point := t.Obj.WorldPosition()
		point.Y += 1.1 // chop at waist height
		out = append(out, interact.Candidate{
			Kind:       interact.KindChop,
			WorldPoint: point,
			Label:      "Chop " + t.Obj.Name,
			Data:       t,
		})
	}

	if w.Firepit != nil {
		label := "Light firepit"
		if w.Firepit.Lit {
			label = "Put out firepit"
		}
		out = append(out, interact.Candidate{
			Kind:       interact.KindFirepit,
			WorldPoint: w.Firepit.Obj.WorldPosition(),
			Label:      label,
			Data:       w.Firepit,
		})
	}

	return out
}
