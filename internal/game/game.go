package game

import (
	"fmt"
	"log"
	"time"

	"movecore/internal/components"
	"movecore/internal/config"
	"movecore/internal/engine"
	"movecore/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// maxFrameTime keeps a stalled frame (window drag, breakpoint) from turning
// into one huge movement step.
const maxFrameTime = 0.1

// Options configures the demo.
type Options struct {
	ConfigPath string // optional tuning file, watched for changes
	LevelPath  string // optional level file, the built-in playground otherwise
	Width      int32
	Height     int32
}

type Game struct {
	World    *world.World
	Renderer *world.Renderer
	Panel    *DebugPanel

	Config *config.Config
	// Preset names the active tuning: a preset name or the tuning file.
	Preset string

	opts    Options
	watcher *config.Watcher

	// Last config reload failure, shown until the next good reload.
	reloadErr string

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

// New loads the level and tuning. Nothing here needs a window.
func New(opts Options) (*Game, error) {
	if opts.Width == 0 {
		opts.Width, opts.Height = 1280, 720
	}

	lvl := world.DefaultLevel()
	if opts.LevelPath != "" {
		var err error
		if lvl, err = world.LoadLevel(opts.LevelPath); err != nil {
			return nil, err
		}
	}

	cfg, preset := config.Default(), "default"
	if opts.ConfigPath != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigPath); err != nil {
			return nil, err
		}
		preset = opts.ConfigPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		World:    world.New(lvl, cfg),
		Renderer: world.NewRenderer(),
		Panel:    NewDebugPanel(),
		Config:   cfg,
		Preset:   preset,
		opts:     opts,
	}
	if opts.ConfigPath != "" {
		w, err := config.NewWatcher(opts.ConfigPath)
		if err != nil {
			log.Printf("Game: config hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(g.opts.Width, g.opts.Height, "movecore")
	defer rl.CloseWindow()

	rl.SetTargetFPS(120)
	initPanelStyle()

	// GPU resources need the GL context created above.
	g.Renderer.Load(g.World)
	defer g.Renderer.Unload()
	if g.watcher != nil {
		defer g.watcher.Close()
	}

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := min(rl.GetFrameTime(), maxFrameTime)

	g.pollConfig()
	g.handleKeys()

	// The panel owns keyboard and mouse while the cursor is over it.
	focused := g.Panel.Visible && g.Panel.Hovered()
	if in := engine.GetComponent[*components.PlayerInput](g.World.Player); in != nil {
		in.Enabled = !focused
	}
	g.World.ThirdPerson().ReadMouse = !focused

	g.World.Update(deltaTime)

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

// pollConfig applies tuning reloads between ticks. The controller only ever
// sees whole configs, never one being edited.
func (g *Game) pollConfig() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-g.watcher.Updates:
			if !ok {
				g.watcher = nil
				return
			}
			g.applyConfig(cfg, g.opts.ConfigPath)
			g.reloadErr = ""
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("Game: config reload failed: %v", err)
			g.reloadErr = err.Error()
		default:
			return
		}
	}
}

var presetKeys = []struct {
	key  int32
	name string
}{
	{rl.KeyF1, "default"},
	{rl.KeyF2, "mmo"},
	{rl.KeyF3, "platformer"},
	{rl.KeyF4, "realistic"},
}

func (g *Game) handleKeys() {
	for _, p := range presetKeys {
		if !rl.IsKeyPressed(p.key) {
			continue
		}
		cfg, err := config.Preset(p.name)
		if err != nil {
			log.Printf("Game: %v", err)
			continue
		}
		g.applyConfig(cfg, p.name)
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		g.Panel.Visible = !g.Panel.Visible
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.World.Respawn()
	}
}

func (g *Game) applyConfig(cfg *config.Config, name string) {
	if name != g.Preset {
		log.Printf("Game: using %s tuning", name)
	}
	g.Config = cfg
	g.Preset = name
	g.World.SetConfig(cfg)
}

func (g *Game) Draw() {
	camera := g.World.ThirdPerson().GetRaylibCamera()
	aspect := float32(rl.GetScreenWidth()) / float32(max(rl.GetScreenHeight(), 1))

	rl.BeginDrawing()
	rl.ClearBackground(g.Renderer.Background)

	drawStart := time.Now()
	rl.BeginMode3D(camera)
	g.Renderer.Draw(camera, aspect, g.World.Scene.GameObjects)
	if g.Panel.Visible {
		world.DrawDebug(g.Panel.Options, g.World.Player, g.World.Physics, g.World.Controller())
	}
	rl.EndMode3D()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) DrawUI() {
	ctrl := g.World.Controller()
	rl.DrawText("WASD move, Shift run, Space jump, mouse buttons look, R respawn", 10, 10, 20, rl.DarkGray)
	rl.DrawText("F1-F4 presets, F5 debug panel", 10, 35, 20, rl.DarkGray)
	rl.DrawFPS(10, 60)
	rl.DrawText(fmt.Sprintf("%s  [%s]", ctrl.State.MovementState, g.Preset), 10, 85, 20, rl.Black)

	if g.reloadErr != "" {
		rl.DrawText("config: "+g.reloadErr, 10, int32(rl.GetScreenHeight())-30, 18, rl.Red)
	}
	if g.Panel.Visible {
		g.Panel.Draw(g)
	}
}
