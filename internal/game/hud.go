package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// drawHUD renders the crosshair, the single interaction prompt and the
// stamina bar. All 2D, drawn after the 3D pass.
func (g *Game) drawHUD() {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())

	cx, cy := int32(w/2), int32(h/2)
	rl.DrawLine(cx-6, cy, cx+6, cy, rl.RayWhite)
	rl.DrawLine(cx, cy-6, cx, cy+6, rl.RayWhite)

	if g.promptText != "" {
		gui.Label(rl.Rectangle{
			X: w/2 - 150, Y: h/2 + 40, Width: 300, Height: 24,
		}, "[E] "+g.promptText)
	}

	gui.ProgressBar(rl.Rectangle{
		X: 20, Y: h - 40, Width: 220, Height: 18,
	}, "", "stamina", g.ctrl.StaminaPercent()*100, 0, 100)

	speed := fmt.Sprintf("%.1f m/s", g.ctrl.MoveSpeed())
	rl.DrawText(speed, 20, int32(h)-70, 18, rl.LightGray)
	if g.ctrl.IsCrouching() {
		rl.DrawText("crouching", 20, int32(h)-94, 18, rl.LightGray)
	}
}
