package game

import (
	"fmt"
	"strings"

	"movecore/internal/components"
	"movecore/internal/config"
	"movecore/internal/engine"
	"movecore/internal/world"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Panel theme
var (
	colorBgDark    = rl.NewColor(10, 10, 15, 255)
	colorBgPanel   = rl.NewColor(18, 18, 24, 230)
	colorBgElement = rl.NewColor(28, 28, 38, 255)
	colorBgHover   = rl.NewColor(38, 38, 52, 255)
	colorAccent    = rl.NewColor(108, 99, 255, 255)

	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
	colorTextMuted     = rl.NewColor(119, 119, 119, 255)
)

const (
	panelWidth  = 300
	panelMargin = 10
	rowHeight   = 22
)

func initPanelStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 14)
}

// DebugPanel shows the controller state and toggles the 3D overlays. The
// tuning sliders edit a copy of the active config and swap it in once it
// validates.
type DebugPanel struct {
	Visible bool
	Options world.DebugOptions

	bounds   rl.Rectangle
	rejected string
}

func NewDebugPanel() *DebugPanel {
	return &DebugPanel{Options: world.DefaultDebugOptions()}
}

// Hovered reports whether the mouse is over the panel as laid out last frame.
func (p *DebugPanel) Hovered() bool {
	return rl.CheckCollisionPointRec(rl.GetMousePosition(), p.bounds)
}

func (p *DebugPanel) Draw(g *Game) {
	x := float32(rl.GetScreenWidth() - panelWidth - panelMargin)
	y := float32(panelMargin)
	w := float32(panelWidth)

	// Height from the previous frame; the layout is fixed so it settles at once.
	rl.DrawRectangleRec(rl.Rectangle{X: x, Y: y, Width: w, Height: p.bounds.Height}, colorBgPanel)

	row := func() rl.Rectangle {
		r := rl.Rectangle{X: x + 10, Y: y, Width: w - 20, Height: rowHeight - 4}
		y += rowHeight
		return r
	}
	text := func(s string, c rl.Color) {
		r := row()
		rl.DrawText(s, int32(r.X), int32(r.Y)+2, 14, c)
	}

	y += 6
	ctrl := g.World.Controller()
	st := ctrl.State
	pos := g.World.Player.Transform.Position

	text("CONTROLLER", colorAccent)
	text(fmt.Sprintf("state    %s", st.MovementState), colorTextPrimary)
	text(fmt.Sprintf("pos      %.2f %.2f %.2f", pos.X, pos.Y, pos.Z), colorTextSecondary)
	text(fmt.Sprintf("velocity %.2f %.2f %.2f", st.Velocity.X, st.Velocity.Y, st.Velocity.Z), colorTextSecondary)
	text(fmt.Sprintf("speed    %.2f  vv %.2f", st.CurrentSpeed, st.VerticalVelocity), colorTextSecondary)
	text(fmt.Sprintf("grounded %v  jump %v  coyote %.2f", st.IsGrounded, st.CanJump, st.CoyoteTimeRemaining), colorTextSecondary)
	text(world.SlopeReport(ctrl), colorTextSecondary)
	text("input    "+describeInput(ctrl.LastInput()), colorTextSecondary)
	if anim := engine.GetComponent[*components.CharacterAnimator](g.World.Player); anim != nil {
		text(fmt.Sprintf("anim     %s <- %s  blend %.2f", anim.Current, anim.Previous, anim.Blend()), colorTextSecondary)
	}
	if ctrl.Skipped.Total() > 0 {
		text(fmt.Sprintf("skipped ticks %d", ctrl.Skipped.Total()), rl.Orange)
	}
	stats := g.World.Physics.Stats()
	text(fmt.Sprintf("draw %d culled %d  %.2f/%.2f ms", g.Renderer.Drawn, g.Renderer.Culled, g.updateMs, g.drawMs), colorTextMuted)
	text(fmt.Sprintf("rays %d sweeps %d candidates %d", stats.RayCasts, stats.ShapeCasts, stats.Candidates), colorTextMuted)

	y += 6
	text("OVERLAYS", colorAccent)
	o := &p.Options
	o.Velocity = gui.CheckBox(row(), "Velocity", o.Velocity)
	o.GroundRay = gui.CheckBox(row(), "Ground ray", o.GroundRay)
	o.GroundNormal = gui.CheckBox(row(), "Ground normal", o.GroundNormal)
	o.CollisionNormals = gui.CheckBox(row(), "Collision normals", o.CollisionNormals)
	o.StepProbe = gui.CheckBox(row(), "Step probe", o.StepProbe)
	o.Capsule = gui.CheckBox(row(), "Capsule", o.Capsule)
	g.Renderer.ShowGrid = gui.CheckBox(row(), "Grid", g.Renderer.ShowGrid)

	y += 6
	text(fmt.Sprintf("TUNING [%s]", g.Preset), colorAccent)
	p.drawTuning(g, row, text)

	p.bounds = rl.Rectangle{X: x, Y: panelMargin, Width: w, Height: y - panelMargin + 6}
}

func (p *DebugPanel) drawTuning(g *Game, row func() rl.Rectangle, text func(string, rl.Color)) {
	cur := g.Config
	next := cur.Clone()

	slider := func(label string, v *float32, lo, hi float32) {
		text(fmt.Sprintf("%s %.2f", label, *v), colorTextSecondary)
		*v = gui.Slider(row(), "", "", *v, lo, hi)
	}
	slider("walk speed", &next.Ground.WalkSpeed, 0.5, 8)
	slider("run speed", &next.Ground.RunSpeed, 1, 14)
	slider("jump height", &next.Air.JumpHeight, 0.2, 4)
	slider("air control", &next.Air.AirControl, 0, 1)
	slider("max step", &next.StepUp.MaxStepHeight, 0, 0.8)

	walkable := next.Slopes.MaxWalkableAngle.Degrees()
	edited := walkable
	slider("walkable deg", &edited, 10, 80)
	if edited != walkable {
		next.Slopes.MaxWalkableAngle = config.Degrees(float64(edited))
	}

	next.Advanced.EnableGroundSnapping = gui.CheckBox(row(), "Ground snapping", next.Advanced.EnableGroundSnapping)
	next.Advanced.EnableCoyoteTime = gui.CheckBox(row(), "Coyote time", next.Advanced.EnableCoyoteTime)
	next.StepUp.Enabled = gui.CheckBox(row(), "Step up", next.StepUp.Enabled)

	if p.rejected != "" {
		text(p.rejected, rl.Red)
	}
	if *next == *cur {
		return
	}
	if err := next.Validate(); err != nil {
		// Keep the old tuning; the slider snaps back next frame.
		p.rejected = err.Error()
		return
	}
	p.rejected = ""
	g.applyConfig(next, "edited")
}

func describeInput(in engine.MovementInput) string {
	var keys []string
	for _, k := range []struct {
		on   bool
		name string
	}{
		{in.Forward || in.MouseForward, "fwd"},
		{in.Backward, "back"},
		{in.Left, "left"},
		{in.Right, "right"},
		{in.Run, "run"},
		{in.Jump, "jump"},
	} {
		if k.on {
			keys = append(keys, k.name)
		}
	}
	if len(keys) == 0 {
		return "-"
	}
	return strings.Join(keys, " ")
}
