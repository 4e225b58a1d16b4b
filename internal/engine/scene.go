package engine

type Scene struct {
	Name        string
	GameObjects []*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	g.Scene = s
	s.GameObjects = append(s.GameObjects, g)
}

func (s *Scene) RemoveGameObject(g *GameObject) {
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			g.Scene = nil
			return
		}
	}
}

func (s *Scene) FindByName(name string) *GameObject {
	for _, g := range s.GameObjects {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

// Reparent moves child under parent while keeping its world pose intact.
// Used when a door pivot is inserted above an authored mesh.
func (s *Scene) Reparent(child, parent *GameObject) {
	worldPos := child.WorldPosition()
	worldOrient := child.WorldOrientation()
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	parent.AddChild(child)
	child.Transform.Position = parent.InverseTransformPoint(worldPos)
	child.SetWorldOrientation(worldOrient)
}
