package world

import (
	"log"

	"movecore/internal/components"
	"movecore/internal/config"
	"movecore/internal/engine"
	"movecore/internal/physics"
	"movecore/internal/terrain"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// World owns the scene, its collision backend and the player rig.
type World struct {
	Scene   *engine.Scene
	Physics *physics.World
	Terrain *terrain.Heightfield
	Level   *Level

	Player *engine.GameObject
	Camera *engine.GameObject

	colors map[uint64]rl.Color
}

// New builds the level, the player and a third-person camera driven by the
// keyboard and mouse. It needs no window; load a Renderer once a GL context
// exists.
func New(lvl *Level, cfg *config.Config) *World {
	return build(lvl, cfg, components.NewPlayerInput())
}

// NewScripted builds the same world for headless runs: the player reads
// input instead of the keyboard and the camera ignores the mouse.
func NewScripted(lvl *Level, cfg *config.Config, input *components.ScriptedInput) *World {
	w := build(lvl, cfg, input)
	w.ThirdPerson().ReadMouse = false
	return w
}

func build(lvl *Level, cfg *config.Config, input engine.Component) *World {
	w := &World{
		Scene:   engine.NewScene(lvl.Name),
		Physics: physics.NewWorld(),
		Level:   lvl,
		colors:  make(map[uint64]rl.Color),
	}
	w.Scene.World = w.Physics

	if lvl.Terrain != nil {
		w.Terrain = terrain.New(*lvl.Terrain)
		g := engine.NewGameObject("Terrain")
		g.Tags = []string{"terrain"}
		g.AddComponent(w.Terrain.Collider())
		w.add(g, rl.DarkGreen)
	} else {
		w.add(ObjectDef{
			Name: "Floor", Position: [3]float32{0, -0.5, 0},
			Shape: "box", Size: [3]float32{80, 1, 80},
		}.Build(), rl.LightGray)
	}
	for _, def := range lvl.Objects {
		w.add(def.Build(), lookupColor(def.Color))
	}
	w.Physics.AddScene(w.Scene)
	w.Physics.Rebuild()

	w.createPlayer(cfg, input)
	w.Scene.Start()
	log.Printf("World: %q with %d objects", lvl.Name, len(w.Scene.GameObjects))
	return w
}

func (w *World) add(g *engine.GameObject, color rl.Color) {
	w.Scene.AddGameObject(g)
	w.colors[g.UID] = color
}

// createPlayer adds the camera before the player so the camera samples the
// mouse before the controller reads the view, and follows in LateUpdate.
func (w *World) createPlayer(cfg *config.Config, input engine.Component) {
	w.Camera = engine.NewGameObject("Camera")
	w.Camera.Tags = []string{"MainCamera"}
	cam := components.NewThirdPersonCamera()
	w.Camera.AddComponent(cam)
	w.Scene.AddGameObject(w.Camera)

	w.Player = engine.NewGameObject("Player")
	w.Player.Tags = []string{"player"}
	w.Player.Transform.Position = vec(w.Level.Spawn)
	w.Player.AddComponent(input)
	ctrl := components.NewCharacterController(cfg)
	ctrl.Camera.Set(w.Camera)
	w.Player.AddComponent(ctrl)
	w.Player.AddComponent(components.NewCharacterAnimator())
	w.Player.AddComponent(components.NewCapsuleRenderer(cfg.Collision.CapsuleRadius, cfg.Collision.CapsuleHeight, rl.Blue))
	w.Scene.AddGameObject(w.Player)

	cam.Target.Set(w.Player)
	cam.Yaw = w.Player.Transform.Yaw() * rl.Rad2deg
}

// Controller returns the player's character controller.
func (w *World) Controller() *components.CharacterController {
	return engine.GetComponent[*components.CharacterController](w.Player)
}

// ThirdPerson returns the camera component.
func (w *World) ThirdPerson() *components.ThirdPersonCamera {
	return engine.GetComponent[*components.ThirdPersonCamera](w.Camera)
}

// SetConfig swaps the tuning used by the player. The capsule drawing
// follows the new collision size.
func (w *World) SetConfig(cfg *config.Config) {
	w.Controller().Config = cfg
	if cr := engine.GetComponent[*components.CapsuleRenderer](w.Player); cr != nil {
		cr.Radius, cr.Height = cfg.Collision.CapsuleRadius, cfg.Collision.CapsuleHeight
	}
}

// Respawn puts the player back at the level spawn with a fresh state.
func (w *World) Respawn() {
	w.Player.Transform.Position = vec(w.Level.Spawn)
	w.Controller().State = components.NewControllerState()
}

func (w *World) Update(deltaTime float32) {
	w.Scene.Tick(deltaTime)
}
