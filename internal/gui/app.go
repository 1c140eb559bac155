package gui

import (
	"fmt"
	"math"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/wavelab/internal/audio"
	"github.com/san-kum/wavelab/internal/field"
	"github.com/san-kum/wavelab/internal/mesh"
	"github.com/san-kum/wavelab/internal/scene"
	"github.com/san-kum/wavelab/internal/share"
	"github.com/san-kum/wavelab/internal/surface"
)

// Theme colors.
var (
	ColBg      = rl.NewColor(10, 10, 14, 255)
	ColText    = rl.NewColor(150, 150, 150, 255)
	ColTextDim = rl.NewColor(70, 70, 70, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColUp      = rl.NewColor(60, 220, 90, 255)
	ColDown    = rl.NewColor(230, 70, 60, 255)
)

// Vertical exaggeration for display. Elongations live around +/-2 while the
// domain spans 1600 units; without scaling the surface reads as flat.
const heightScale = 40.0

// indicatorEps hides indicators near zero-crossings.
const indicatorEps = 0.05

// statePath is where the debounced share string lands between runs.
const statePath = ".wavelab"

type App struct {
	Scene *scene.Scene
	Grid  *mesh.Grid
	Field *surface.Field

	Camera   rl.Camera3D
	Selected int
	Sonify   *audio.Sonifier

	persist *scene.Debounce
	edits   float64
}

func initWindow() {
	rl.InitWindow(1280, 720, "wavelab")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// NewApp builds the runtime around an existing scene.
func NewApp(sc *scene.Scene) *App {
	r := mesh.ResolutionFor(sc.Speed)
	g := mesh.New(r)
	app := &App{
		Scene:   sc,
		Grid:    g,
		Field:   surface.NewField(g),
		Sonify:  audio.NewSonifier(),
		persist: scene.NewDebounce(scene.PersistQuiescence, 0),
	}
	app.resetCamera()
	return app
}

func (a *App) resetCamera() {
	if a.Scene.Style == scene.StyleParams2D {
		a.Camera = rl.NewCamera3D(
			rl.NewVector3(0, 1500, 0.001),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			1700.0,
			rl.CameraOrthographic,
		)
		return
	}
	a.Camera = rl.NewCamera3D(
		rl.NewVector3(0, 600, 900),
		rl.NewVector3(0, 0, 0),
		rl.NewVector3(0, 1, 0),
		45.0,
		rl.CameraPerspective,
	)
}

// RunInteractive opens the window, restores any persisted state and enters
// the frame loop. Blocks until the window closes.
func RunInteractive() {
	sc := scene.New()
	if data, err := os.ReadFile(statePath); err == nil {
		if st, ok := share.DecodeString(string(data)); ok {
			sc.ApplyShare(st)
		}
	}
	Run(sc)
}

// Run enters the frame loop for a prepared scene.
func Run(sc *scene.Scene) {
	initWindow()
	defer rl.CloseWindow()

	app := NewApp(sc)
	app.Sonify.Start()
	defer app.Sonify.Stop()

	for !rl.WindowShouldClose() {
		app.Update()
		app.Draw()
	}
}

func (a *App) Update() {
	now := time.Now()
	dt := float64(rl.GetFrameTime())
	a.Scene.Advance(dt)

	a.handleKeys(now)

	// Debounced geometry rebuild: the mesh only follows the speed control
	// once it has been quiet for the quiescence window.
	if speed, changed := a.Scene.GeometrySpeed(now); changed {
		a.Grid = mesh.New(mesh.ResolutionFor(speed))
		a.Field = surface.NewField(a.Grid)
	}

	// Debounced persistence; superseded writes are simply dropped.
	if _, fire := a.persist.Tick(now); fire {
		os.WriteFile(statePath, []byte(share.EncodeString(a.Scene.ToShare())), 0644)
	}

	snap := surface.Snapshot{
		Sources: a.Scene.Sources(),
		Speed:   a.Scene.Speed,
		Time:    a.Scene.Time,
		Mode:    a.displayMode(),
		Damped:  a.Scene.Style == scene.StyleWater,
	}
	a.Field.Evaluate(snap)
	a.Sonify.SetSources(snap.Sources)

	a.updateCamera(dt)
}

// displayMode resolves the style/mode axes: water always shows elongation.
func (a *App) displayMode() field.Mode {
	if a.Scene.Style == scene.StyleWater {
		return field.ModeElongation
	}
	return a.Scene.Mode
}

func (a *App) markEdited(now time.Time) {
	a.edits++
	a.persist.Set(a.edits, now)
}

func (a *App) handleKeys(now time.Time) {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.Sonify.Stop()
		os.Exit(0)
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Scene.Playing = !a.Scene.Playing
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Scene.Reset()
	}

	// Style and field mode.
	if rl.IsKeyPressed(rl.KeyF) {
		a.Scene.Style = (a.Scene.Style + 1) % 3
		a.resetCamera()
		a.markEdited(now)
	}
	if rl.IsKeyPressed(rl.KeyM) && a.Scene.Style != scene.StyleWater {
		a.Scene.Mode = (a.Scene.Mode + 1) % 5
		a.markEdited(now)
	}

	// Arena edits.
	if rl.IsKeyPressed(rl.KeyN) {
		if _, ok := a.Scene.Add(); ok {
			a.Selected = a.Scene.Count() - 1
			a.markEdited(now)
		}
	}
	if rl.IsKeyPressed(rl.KeyX) {
		srcs := a.Scene.Sources()
		if a.Selected < len(srcs) {
			a.Scene.Remove(srcs[a.Selected].ID)
			a.markEdited(now)
		}
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		if n := a.Scene.Count(); n > 0 {
			a.Selected = (a.Selected + 1) % n
		}
	}
	if n := a.Scene.Count(); a.Selected >= n && n > 0 {
		a.Selected = n - 1
	}

	a.editSelected(now)

	// Global propagation speed. The evaluator follows immediately; the mesh
	// resolution follows via the debounce.
	if rl.IsKeyDown(rl.KeyEqual) {
		a.Scene.SetSpeed(a.Scene.Speed+1, now)
		a.markEdited(now)
	}
	if rl.IsKeyDown(rl.KeyMinus) {
		a.Scene.SetSpeed(a.Scene.Speed-1, now)
		a.markEdited(now)
	}
}

func (a *App) editSelected(now time.Time) {
	srcs := a.Scene.Sources()
	if a.Selected >= len(srcs) {
		return
	}
	src, ok := a.Scene.Get(srcs[a.Selected].ID)
	if !ok {
		return
	}

	step := 2.0
	if rl.IsKeyDown(rl.KeyLeftShift) {
		step = 10.0
	}

	edited := false
	if rl.IsKeyDown(rl.KeyLeft) {
		src.X -= step
		edited = true
	}
	if rl.IsKeyDown(rl.KeyRight) {
		src.X += step
		edited = true
	}
	if rl.IsKeyDown(rl.KeyUp) {
		src.Y -= step
		edited = true
	}
	if rl.IsKeyDown(rl.KeyDown) {
		src.Y += step
		edited = true
	}
	if rl.IsKeyDown(rl.KeyPageUp) {
		src.Amplitude += 0.02
		edited = true
	}
	if rl.IsKeyDown(rl.KeyPageDown) {
		src.Amplitude = max(src.Amplitude-0.02, 0)
		edited = true
	}
	if rl.IsKeyDown(rl.KeyComma) {
		src.Frequency = max(src.Frequency-0.02, 0.05)
		edited = true
	}
	if rl.IsKeyDown(rl.KeyPeriod) {
		src.Frequency += 0.02
		edited = true
	}
	if rl.IsKeyDown(rl.KeyLeftBracket) {
		src.Phase -= 0.05
		edited = true
	}
	if rl.IsKeyDown(rl.KeyRightBracket) {
		src.Phase += 0.05
		edited = true
	}
	if rl.IsKeyPressed(rl.KeyV) {
		src.Visible = !src.Visible
		edited = true
	}
	if edited {
		a.markEdited(now)
	}
}

func (a *App) updateCamera(dt float64) {
	if a.Scene.Style == scene.StyleParams2D {
		return
	}
	orbit := float32(0)
	if rl.IsKeyDown(rl.KeyA) {
		orbit = float32(dt)
	}
	if rl.IsKeyDown(rl.KeyD) {
		orbit = -float32(dt)
	}
	if orbit != 0 {
		s, c := math.Sincos(float64(orbit))
		sin, cos := float32(s), float32(c)
		x, z := a.Camera.Position.X, a.Camera.Position.Z
		a.Camera.Position.X = x*cos - z*sin
		a.Camera.Position.Z = x*sin + z*cos
	}
	if rl.IsKeyDown(rl.KeyW) {
		a.Camera.Position.Y += 400 * float32(dt)
	}
	if rl.IsKeyDown(rl.KeyS) {
		a.Camera.Position.Y -= 400 * float32(dt)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		scale := 1 - wheel*0.08
		a.Camera.Position = rl.Vector3Scale(a.Camera.Position, scale)
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode3D(a.Camera)
	a.drawSurface()
	a.drawIndicators()
	rl.EndMode3D()

	a.drawHUD()
	rl.EndDrawing()
}

func (a *App) drawHUD() {
	rl.DrawText("wavelab", 30, 30, 24, ColSelect)
	rl.DrawText(fmt.Sprintf(":: %s / %s", a.Scene.Style, a.displayMode()), 150, 36, 16, ColText)

	status := "RUNNING"
	col := ColSelect
	if !a.Scene.Playing {
		status = "PAUSED"
		col = ColTextDim
	}
	rl.DrawText(status, 1150, 30, 16, col)

	rl.DrawText(fmt.Sprintf("t %.2f   c %.0f   grid %d   sources %d",
		a.Scene.Time, a.Scene.Speed, a.Grid.Resolution, a.Scene.Count()), 30, 60, 14, ColText)

	srcs := a.Scene.Sources()
	y := int32(100)
	for i, s := range srcs {
		col := ColText
		prefix := "  "
		if i == a.Selected {
			col = ColSelect
			prefix = "> "
		}
		vis := ""
		if !s.Visible {
			vis = " (hidden)"
		}
		rl.DrawText(fmt.Sprintf("%s%s  A %.2f  w %.2f  phi %.2f%s", prefix, s.ID, s.Amplitude, s.Frequency, s.Phase, vis),
			30, y, 14, col)
		y += 20
	}

	rl.DrawText("[SPACE] PAUSE  [R] REWIND  [N/X] ADD/DEL  [TAB] SELECT  [F] STYLE  [M] FIELD  [Q] QUIT", 30, 690, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 1180, 690, 14, ColTextDim)
}
