// Headless movement scenarios. Each scenario builds a small level, drives the
// player with scripted input and prints a per-tick trace, so presets can be
// compared without a window.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"movecore/internal/components"
	"movecore/internal/config"
	"movecore/internal/engine"
	"movecore/internal/world"
)

type scenario struct {
	name     string
	about    string
	duration float32
	level    func() *world.Level
	input    func(t float32) engine.MovementInput
}

var forward = engine.MovementInput{Forward: true}

func hold(in engine.MovementInput, until float32) func(float32) engine.MovementInput {
	return func(t float32) engine.MovementInput {
		if t < until {
			return in
		}
		return engine.MovementInput{}
	}
}

func flatLevel(name string, spawn [3]float32, objs ...world.ObjectDef) func() *world.Level {
	return func() *world.Level {
		return &world.Level{Name: name, Spawn: spawn, Objects: objs}
	}
}

func stairs() []world.ObjectDef {
	var objs []world.ObjectDef
	for i := range 6 {
		rise := float32(i+1) * 0.25
		objs = append(objs, world.Box(fmt.Sprintf("Stair_%d", i),
			[3]float32{1.3 + float32(i)*0.6, rise / 2, 0}, [3]float32{0.6, rise, 3}, ""))
	}
	return objs
}

var scenarios = []scenario{
	{
		name: "flat-run", about: "run for 2s, then release",
		duration: 3,
		level:    flatLevel("flat", [3]float32{0, 0.05, 0}),
		input:    hold(engine.MovementInput{Forward: true, Run: true}, 2),
	},
	{
		name: "slope", about: "walk up a 25 degree ramp",
		duration: 4,
		level:    flatLevel("slope", [3]float32{0, 0.05, 0}, world.Ramp("Ramp", 1, 0, 10, 25, "")),
		input:    hold(forward, 4),
	},
	{
		name: "slide", about: "stand on a 50 degree ramp",
		duration: 3,
		level:    flatLevel("slide", [3]float32{2.3, 1.7, 0}, world.Ramp("Ramp", 1, 0, 6, 50, "")),
		input:    hold(engine.MovementInput{}, 0),
	},
	{
		name: "stairs", about: "walk up 0.25m steps",
		duration: 4,
		level:    flatLevel("stairs", [3]float32{0, 0.05, 0}, stairs()...),
		input:    hold(forward, 4),
	},
	{
		name: "jump", about: "one jump from standing",
		duration: 2,
		level:    flatLevel("jump", [3]float32{0, 0.05, 0}),
		input: func(t float32) engine.MovementInput {
			return engine.MovementInput{Jump: t >= 0.2 && t < 0.2+1.0/60}
		},
	},
	{
		name: "ledge", about: "walk off a 1m platform",
		duration: 3,
		level: flatLevel("ledge", [3]float32{-1, 1.05, 0},
			world.Box("Platform", [3]float32{-2, 0.5, 0}, [3]float32{4, 1, 4}, "")),
		input: hold(forward, 3),
	},
	{
		name: "wall-corner", about: "push diagonally into a concave corner",
		duration: 3,
		level: flatLevel("corner", [3]float32{0, 0.05, 0},
			world.Box("WallX", [3]float32{3, 1.5, 0}, [3]float32{0.4, 3, 6}, ""),
			world.Box("WallZ", [3]float32{0, 1.5, -3}, [3]float32{6, 3, 0.4}, "")),
		input: hold(engine.MovementInput{Forward: true, Left: true}, 3),
	},
}

func main() {
	names := flag.String("scenario", "all", "comma separated scenario names, or all")
	preset := flag.String("preset", "default", "tuning preset: default, mmo, platformer, realistic")
	configPath := flag.String("config", "", "tuning file, overrides -preset")
	dt := flag.Float64("dt", 1.0/60, "tick length in seconds")
	every := flag.Int("every", 6, "print every n-th tick, 0 for summaries only")
	list := flag.Bool("list", false, "list scenarios and exit")
	flag.Parse()

	if *list {
		for _, s := range scenarios {
			fmt.Printf("%-12s %s\n", s.name, s.about)
		}
		return
	}

	cfg, err := loadConfig(*preset, *configPath)
	if err != nil {
		log.Fatal(err)
	}

	selected, err := pick(*names)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	for _, s := range selected {
		run(s, cfg, float32(*dt), *every)
	}
}

func loadConfig(preset, path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, err := config.Preset(preset)
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func pick(names string) ([]scenario, error) {
	if names == "all" {
		return scenarios, nil
	}
	var out []scenario
	for _, n := range strings.Split(names, ",") {
		found := false
		for _, s := range scenarios {
			if s.name == strings.TrimSpace(n) {
				out = append(out, s)
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown scenario %q (see -list)", n)
		}
	}
	return out, nil
}

func run(s scenario, cfg *config.Config, dt float32, every int) {
	input := &components.ScriptedInput{}
	w := world.NewScripted(s.level(), cfg, input)
	// Camera looks along +X so Forward walks into the fixtures.
	w.ThirdPerson().Yaw = 90
	ctrl := w.Controller()

	counts := map[components.MovementState]int{}
	ctrl.OnStateChanged.AddListener(func(c components.StateChange) {
		counts[c.To]++
	})

	fmt.Printf("== %s: %s\n", s.name, s.about)
	p := w.Player
	peak := p.Transform.Position.Y
	ticks := int(s.duration/dt + 0.5)
	for i := range ticks {
		t := float32(i) * dt
		input.Input = s.input(t)
		w.Update(dt)

		pos := p.Transform.Position
		peak = max(peak, pos.Y)
		if every > 0 && i%every == 0 {
			st := ctrl.State
			fmt.Printf("%6.3f pos=(%6.2f %6.2f %6.2f) vel=(%6.2f %6.2f %6.2f) %-10s grounded=%-5v %s\n",
				t, pos.X, pos.Y, pos.Z,
				st.Velocity.X, st.Velocity.Y, st.Velocity.Z,
				st.MovementState, st.IsGrounded, world.SlopeReport(ctrl))
		}
	}

	pos := p.Transform.Position
	fmt.Printf("-- end pos=(%.2f %.2f %.2f) peak=%.2f state=%s skipped=%d\n",
		pos.X, pos.Y, pos.Z, peak, ctrl.State.MovementState, ctrl.Skipped.Total())
	fmt.Printf("-- entered: %s\n\n", formatCounts(counts))
}

func formatCounts(counts map[components.MovementState]int) string {
	states := make([]components.MovementState, 0, len(counts))
	for st := range counts {
		states = append(states, st)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	parts := make([]string, len(states))
	for i, st := range states {
		parts[i] = fmt.Sprintf("%s x%d", st, counts[st])
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
