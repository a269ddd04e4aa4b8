package main

import (
	"flag"
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"particlefluid/internal/config"
	"particlefluid/internal/input"
	"particlefluid/internal/physics"
	"particlefluid/internal/renderer"
	"particlefluid/internal/simulation"
)

func main() {
	mode := flag.String("mode", "sph", "simulation mode: sph or discrete")
	startPaused := flag.Bool("paused", false, "start the simulation paused")
	noGPU := flag.Bool("no-gpu", false, "disable the GPU compute path")
	flag.Parse()

	cfg := config.DefaultConfig()
	switch *mode {
	case "sph":
		cfg.Mode = physics.ModeSPH
	case "discrete":
		cfg.Mode = physics.ModeDiscrete
	default:
		log.Fatalf("particlefluid: unknown -mode %q, want sph or discrete", *mode)
	}
	cfg.StartPaused = *startPaused
	cfg.UseGPU = !*noGPU

	if err := cfg.Validate(); err != nil {
		log.Fatalf("particlefluid: invalid configuration: %v", err)
	}

	sim := simulation.NewSimulation(cfg)

	rl.InitWindow(int32(cfg.ScreenWidth), int32(cfg.ScreenHeight), "2D Particle Fluid Simulator")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	cam := renderer.NewCamera(cfg.Domain, cfg.ScreenWidth, cfg.ScreenHeight)
	cam.SetZoom(float64(cfg.InitialZoom))

	view := input.NewViewTransform(cfg.ScreenWidth, cfg.ScreenHeight, cam.Scale()/cam.Zoom, cam.Center)
	controller := input.NewInputController(view)

	particleRenderer := renderer.NewParticleRenderer()
	particleRenderer.SetCamera(cam)
	particleRenderer.EnableCulling(true)
	if cfg.Mode == physics.ModeDiscrete {
		particleRenderer.SetParticleSize(cfg.DiscreteRadius)
	}

	ui := renderer.NewUIRenderer(cfg.ScreenWidth, cfg.ScreenHeight)

	loop := renderer.NewRenderLoop()
	loop.SetTargetFPS(60)
	loop.SetUpdateCallback(func(dt float64) {
		controller.UpdateFromRaylib()
		for _, cmd := range controller.ProcessInput() {
			sim.ApplyCommand(cmd)
		}
		cam.SetZoom(view.Zoom)

		sim.Update(float32(dt))
	})
	loop.SetRenderCallback(func(dt float64) {
		snap := sim.Snapshot()
		particleRenderer.SetSnapshot(snap)

		ui.SetParticleCount(snap.N)
		ui.SetPaused(snap.State == physics.StatePaused)
		ui.SetActualFPS(int(rl.GetFPS()))
		ui.SetFrameTime(dt)
		if sim.FallbackManager().IsGPUAvailable() {
			ui.SetMode(renderer.ModeGPU, sim.FallbackManager().HasError())
		} else {
			ui.SetMode(renderer.ModeCPU, false)
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 15, 25, 255))

		if err := particleRenderer.Render(); err != nil {
			drawFallbackText(ui, err)
		}
		drawHUD(ui)

		rl.EndDrawing()
	})

	loop.Start()
	for !rl.WindowShouldClose() && !loop.ShouldClose() {
		dt := rl.GetFrameTime()
		loop.RecordFrameTime(float64(dt))
		loop.ExecuteFrame()
	}
	loop.Stop()
}

// drawFallbackText reports a renderer error (e.g. a missing camera) onto
// the HUD instead of panicking; this only happens if main wires the
// renderer incorrectly, never from user input.
func drawFallbackText(ui *renderer.UIRenderer, err error) {
	x, y := ui.GetTitlePosition()
	rl.DrawText(fmt.Sprintf("render error: %v", err), int32(x), int32(y), int32(ui.GetFontSize()), rl.Red)
}

func drawHUD(ui *renderer.UIRenderer) {
	tx, ty := ui.GetTitlePosition()
	rl.DrawText(ui.GetTitle(), int32(tx), int32(ty), int32(ui.GetFontSize()), toRaylibColor(ui.GetTitleColor()))

	px, py := ui.GetParticleCountPosition()
	rl.DrawText(ui.GetParticleCountText(), int32(px), int32(py), int32(ui.GetFontSize()), toRaylibColor(ui.GetDefaultTextColor()))

	mx, my := ui.GetModePosition()
	mode, fallback := ui.GetMode()
	rl.DrawText(ui.GetModeString(), int32(mx), int32(my), int32(ui.GetFontSize()), toRaylibColor(ui.GetModeColor(mode, fallback)))

	fx, fy := ui.GetFPSPosition()
	rl.DrawText(ui.GetActualFPSText(), int32(fx), int32(fy), int32(ui.GetFontSize()), toRaylibColor(ui.GetDefaultTextColor()))

	for i, line := range ui.GetControlInstructions() {
		cx, cy := ui.GetControlPosition(i)
		rl.DrawText(line, int32(cx), int32(cy), int32(ui.GetFontSize()-4), toRaylibColor(ui.GetDefaultTextColor()))
	}

	if ui.IsPaused() {
		px, py := ui.GetPausePosition()
		rl.DrawText(ui.GetPauseText(), int32(px), int32(py), int32(ui.GetFontSize()), toRaylibColor(ui.GetPauseColor()))
	}
}

func toRaylibColor(c renderer.UIColor) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
