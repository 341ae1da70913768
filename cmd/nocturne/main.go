package main

import (
	"flag"
	"log"
	"log/slog"
	"math"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	nocturne "github.com/duskfall/nocturne"
	"github.com/duskfall/nocturne/config"
	"github.com/duskfall/nocturne/debugview"
	"github.com/duskfall/nocturne/glcontext"
	"github.com/duskfall/nocturne/postfx"
	"github.com/duskfall/nocturne/render"
	"github.com/duskfall/nocturne/shader"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	var configPath = flag.String("config", "nocturne.yaml", "Path to the config file")
	var effectName = flag.String("effect", "vignette", "Post-process effect fragment to load")
	var verbose = flag.Bool("verbose", false, "Enable engine logging to stderr")
	flag.Parse()

	if *verbose {
		nocturne.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := glcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize graphics: %v", err)
	}
	defer glcontext.TerminateGraphics()

	ctx, err := glcontext.New(cfg.Display.Width, cfg.Display.Height, cfg.Display.Title, true)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	defer ctx.Shutdown()
	ctx.SetVSync(cfg.Display.VSync)

	mgr := shader.NewManager(cfg.Shaders.Dir,
		shader.WithDebounce(
			time.Duration(cfg.Shaders.DebounceMS)*time.Millisecond,
			time.Duration(cfg.Shaders.SettleMS)*time.Millisecond,
		),
		shader.WithHotReload(cfg.Shaders.HotReload),
	)
	defer mgr.Close()

	backend, err := render.NewBackend(ctx, mgr, nil)
	if err != nil {
		log.Fatalf("Failed to create render backend: %v", err)
	}
	defer backend.Destroy()

	scale := cfg.Display.Scale
	if scale <= 0 {
		scale = ctx.ContentScale()
	}
	viewport := render.Pt(float32(cfg.Display.Width), float32(cfg.Display.Height))

	chain := postfx.NewChain(mgr, viewport, scale)
	defer chain.Destroy()
	if _, err := chain.Add(*effectName); err != nil {
		log.Fatalf("Failed to load effect %q: %v", *effectName, err)
	}

	overlay := debugview.NewOverlay()
	if cfg.Debug.Overlay {
		overlay.Show()
	}
	wireframe := cfg.Debug.Wireframe
	ctx.RegisterKeyCallback(glfw.KeyF1, overlay.Toggle)
	ctx.RegisterKeyCallback(glfw.KeyF2, func() { wireframe = !wireframe })

	log.Printf("nocturne: %dx%d scale %.1f, effect %q, shaders from %s",
		cfg.Display.Width, cfg.Display.Height, scale, *effectName, cfg.Shaders.Dir)

	run(ctx, mgr, backend, chain, overlay, viewport, scale, &wireframe)
}

func run(ctx *glcontext.Context, mgr *shader.Manager, backend *render.Backend,
	chain *postfx.Chain, overlay *debugview.Overlay,
	viewport render.Point, scale float32, wireframe *bool) {

	backend.SetClearColor(render.RGBA(0.02, 0.02, 0.03, 1))
	start := ctx.Time()
	last := start
	var frame int32

	for !ctx.ShouldClose() {
		// Run deferred work (hot-reload recompiles) between frames.
		mgr.Drain()

		now := ctx.Time()
		t := now - start
		dt := float32(now - last)
		last = now

		cx, cy := ctx.CursorPos()

		chain.Begin()
		backend.SetWireframeMode(*wireframe)
		backend.BeginFrame(viewport, scale)
		drawScene(backend, viewport, t)
		overlay.Draw(backend, sceneSnapshot(), render.Rct(0, 0, viewport.X, viewport.Y))
		backend.Flush()
		chain.End(postfx.FrameState{
			Time:      t,
			TimeDelta: dt,
			Frame:     frame,
			Mouse:     [4]float32{float32(cx), float32(cy), 0, 0},
		})
		ctx.EndFrame()
		frame++
	}
}

// drawScene renders a minimal interior: floor, a flickering lantern
// glow, and a prompt, enough to see the effects and overlay working.
func drawScene(r render.Renderer, viewport render.Point, t float64) {
	floor := render.NewPath().AddRect(render.Rct(0, viewport.Y*0.7, viewport.X, viewport.Y*0.3))
	r.DrawPath(floor, render.RGBA(0.08, 0.07, 0.06, 1))

	flicker := float32(0.85 + 0.15*math.Sin(t*9.0)*math.Sin(t*3.7))
	glow := render.NewPath().AddCircle(render.Pt(viewport.X*0.6, viewport.Y*0.55), 60*flicker)
	r.DrawPath(glow, render.RGBA(0.9, 0.7, 0.35, 0.25*flicker))

	r.DrawText("press F1 for debug view", render.Pt(viewport.X/2, viewport.Y-30),
		render.TextStyle{Color: render.RGBA(0.6, 0.6, 0.65, 1), Align: render.AlignCenter})
}

func sceneSnapshot() debugview.WorldSnapshot {
	return debugview.WorldSnapshot{
		Camera: debugview.Camera{
			Position: debugview.Vec3{X: 0, Y: 1.7, Z: -6},
			Target:   debugview.Vec3{X: 0, Y: 1, Z: 0},
		},
		Lights: []debugview.Light{
			{Position: debugview.Vec3{X: 2, Y: 2.2, Z: 1}, Color: render.RGB(0.9, 0.7, 0.35)},
		},
		Objects: []debugview.Object{
			{Name: "door", Position: debugview.Vec3{X: -3, Y: 0, Z: 2}, Radius: 0.6},
			{Name: "lantern", Position: debugview.Vec3{X: 2, Y: 0, Z: 1}, Radius: 0.3},
		},
	}
}
