package game

import (
	"fmt"

	"cabin3d/internal/audio"
	"cabin3d/internal/camera"
	"cabin3d/internal/collide"
	"cabin3d/internal/config"
	"cabin3d/internal/door"
	"cabin3d/internal/engine"
	"cabin3d/internal/interact"
	"cabin3d/internal/physics"
	"cabin3d/internal/player"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// physicsStep is the fixed timestep for the kinematic world. Rendering
// runs at display rate; queued kinematic poses are applied on this grid.
const physicsStep = float32(1.0 / 60.0)

// strideLength tunes footstep cadence: one step per this many meters of
// horizontal travel.
const strideLength = 0.75

// Backend names accepted on the command line.
const (
	BackendLight   = "light"
	BackendPhysics = "physics"
)

// Game owns the frame loop and wires the movement core to raylib input,
// rendering and audio.
type Game struct {
	cfg config.Config
	log *zap.Logger

	cam   *camera.LookCamera
	ctrl  *player.Controller
	world *World

	prompt *interact.PromptArbiter
	sound  *audio.Manager

	// phys is non-nil only for the kinematic backend; the lightweight
	// registry has no step and no raycasts.
	phys        *physics.World
	accumulator float32

	creakID    uint64
	hasCreak   bool
	stepID     uint64
	hasStep    bool
	strideLeft float32

	promptText string
}

// NewGame builds the demo on the named backend.
func NewGame(cfg config.Config, backendName string, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var backend engine.MovementBackend
	var phys *physics.World
	switch backendName {
	case BackendLight:
		backend = collide.NewRegistry()
	case BackendPhysics:
		phys = physics.NewWorld()
		backend = phys
	default:
		return nil, fmt.Errorf("unknown backend %q", backendName)
	}

	g := &Game{
		cfg:        cfg,
		log:        log,
		cam:        camera.NewLookCamera(),
		prompt:     interact.NewPromptArbiter(),
		phys:       phys,
		strideLeft: strideLength,
	}

	g.world = BuildCabinWorld(cfg, backend, log)
	g.ctrl = player.NewController(cfg.Movement, backend, g.world.Spawn)

	g.world.Doors.OnToggled.AddListener(func(d *door.Door) {
		if g.hasCreak {
			g.sound.PlayAt(g.creakID, d.HingeWorld())
		}
	})

	log.Info("game ready", zap.String("backend", backendName))
	return g, nil
}

// Run opens the window and drives the loop until close.
func (g *Game) Run() error {
	rl.InitWindow(1280, 720, "cabin3d")
	defer rl.CloseWindow()
	rl.SetTargetFPS(120)
	rl.DisableCursor()

	g.sound = audio.NewManager()
	defer g.sound.Close()
	g.creakID, g.hasCreak = g.sound.Load("assets/sounds/door_creak.wav", 12)
	g.stepID, g.hasStep = g.sound.Load("assets/sounds/footstep.wav", 8)

	for !rl.WindowShouldClose() {
		g.update(rl.GetFrameTime())
		g.draw()
	}
	return nil
}

// update runs one frame in the fixed order the core depends on: input,
// controller pre-physics, world step, controller post-physics, doors,
// then interaction and audio off the committed state.
func (g *Game) update(dt float32) {
	in := sampleInput()
	g.cam.UpdateLook()

	g.ctrl.UpdatePrePhysics(dt, in, g.cam.Forward())

	if g.phys != nil {
		g.accumulator += dt
		for g.accumulator >= physicsStep {
			g.phys.Step(physicsStep)
			g.accumulator -= physicsStep
		}
	}

	g.ctrl.PostPhysics(dt)
	g.world.Doors.Update(dt)

	g.updateInteraction(in)
	g.updateAudio(dt)
}

func sampleInput() player.Input {
	return player.Input{
		Forward:         rl.IsKeyDown(rl.KeyW),
		Backward:        rl.IsKeyDown(rl.KeyS),
		Left:            rl.IsKeyDown(rl.KeyA),
		Right:           rl.IsKeyDown(rl.KeyD),
		Sprint:          rl.IsKeyDown(rl.KeyLeftShift),
		Crouch:          rl.IsKeyDown(rl.KeyLeftControl),
		InteractPressed: rl.IsKeyPressed(rl.KeyE),
	}
}

// updateInteraction picks the frame's best candidate, arbitrates the
// prompt and dispatches the interact key.
func (g *Game) updateInteraction(in player.Input) {
	eye := g.ctrl.CameraPosition()
	candidates := g.world.Candidates()

	// The kinematic backend can occlusion-test candidates through walls.
	if g.phys != nil {
		kept := candidates[:0]
		for _, c := range candidates {
			if !g.phys.RayBlocked(eye, c.WorldPoint) {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}

	idx, ok := interact.SelectBest(g.ctrl.Position(), g.cam.Forward(), candidates, g.cfg.Interact)
	if !ok {
		if owner, _, held := g.prompt.Active(); held {
			g.prompt.Hide(owner)
		}
		g.promptText = ""
		return
	}

	best := candidates[idx]

	// A holding owner whose candidates all fail the range and facing
	// gates this frame releases the slot before the new winner claims
	// it. The raw list alone is not enough: doors are always listed, so
	// a door walked out of range would otherwise hold the prompt while
	// the interact key dispatches something else.
	if owner, _, held := g.prompt.Active(); held && owner != best.Kind {
		stale := true
		for _, c := range candidates {
			if c.Kind == owner && interact.Eligible(g.ctrl.Position(), g.cam.Forward(), c, g.cfg.Interact) {
				stale = false
				break
			}
		}
		if stale {
			g.prompt.Hide(owner)
		}
	}

	if g.prompt.Show(best.Kind, best.Label) {
		_, g.promptText, _ = g.prompt.Active()
	}

	if in.InteractPressed {
		g.dispatch(best)
	}
}

func (g *Game) dispatch(c interact.Candidate) {
	switch c.Kind {
	case interact.KindDoor:
		g.world.Doors.Toggle(c.Data.(*door.Door))
	case interact.KindChop:
		g.world.Chop(c.Data.(*Tree))
	case interact.KindBoarding:
		b := c.Data.(*Board)
		b.Boarded = !b.Boarded
	case interact.KindFirepit:
		f := c.Data.(*Firepit)
		f.Lit = !f.Lit
	}
}

// updateAudio moves the listener to the committed camera and drives the
// footstep cadence off the speed the controller actually achieved.
func (g *Game) updateAudio(dt float32) {
	g.sound.SetListener(g.ctrl.CameraPosition(), g.cam.Forward())

	speed := g.ctrl.MoveSpeed()
	if g.ctrl.IsGrounded() && speed > 0.5 {
		g.strideLeft -= speed * dt
		if g.strideLeft <= 0 {
			g.strideLeft += strideLength
			if g.hasStep {
				g.sound.PlayAt(g.stepID, g.ctrl.Position())
			}
		}
	} else {
		g.strideLeft = strideLength
	}

	g.sound.Update()
}

func (g *Game) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 40, G: 44, B: 52, A: 255})

	cam3d := g.cam.Camera3D(g.ctrl.CameraPosition())
	rl.BeginMode3D(cam3d)
	g.drawWorld()
	rl.EndMode3D()

	g.drawHUD()
	rl.EndDrawing()
}

func (g *Game) drawWorld() {
	rl.DrawPlane(rl.Vector3{}, rl.Vector2{X: 40, Y: 40}, rl.Color{R: 60, G: 80, B: 55, A: 255})

	for _, obj := range g.world.Scene.GameObjects {
		if !obj.Active || !obj.HasTag("wall") {
			continue
		}
		rl.DrawCubeV(obj.Transform.Position, obj.Transform.Scale,
			rl.Color{R: 120, G: 95, B: 70, A: 255})
	}

	g.world.Doors.ForEach(func(d *door.Door) {
		center := d.Pivot.TransformPoint(rl.Vector3Scale(
			rl.Vector3Add(d.Desc.BoxMinLocal, d.Desc.BoxMaxLocal), 0.5))
		axis, angle := rl.QuaternionToAxisAngle(d.Pivot.WorldOrientation())
		rl.PushMatrix()
		rl.Translatef(center.X, center.Y, center.Z)
		rl.Rotatef(angle*rl.Rad2deg, axis.X, axis.Y, axis.Z)
		rl.DrawCubeV(rl.Vector3{}, d.Desc.Size, rl.Color{R: 150, G: 110, B: 60, A: 255})
		rl.PopMatrix()
	})

	for _, t := range g.world.Trees {
		if t.felled {
			continue
		}
		pos := t.Obj.WorldPosition()
		rl.DrawCylinder(pos, t.Radius, t.Radius*1.2, t.Height, 10,
			rl.Color{R: 90, G: 65, B: 40, A: 255})
	}

	for _, b := range g.world.Boards {
		if !b.Boarded {
			continue
		}
		rl.DrawCubeV(b.Obj.WorldPosition(), rl.Vector3{X: 0.2, Y: 1.2, Z: 1.2},
			rl.Color{R: 100, G: 80, B: 55, A: 255})
	}

	if f := g.world.Firepit; f != nil {
		color := rl.Color{R: 70, G: 70, B: 70, A: 255}
		if f.Lit {
			color = rl.Color{R: 230, G: 120, B: 30, A: 255}
		}
		rl.DrawSphere(f.Obj.WorldPosition(), 0.4, color)
	}
}
