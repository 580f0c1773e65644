package components

import (
	"movecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ModelRenderer draws a GPU model with the object's transform. It owns the
// model and frees it in Unload.
type ModelRenderer struct {
	engine.BaseComponent
	Model rl.Model
	Color rl.Color
	// Wires overlays the model edges, used for terrain.
	Wires bool
}

func NewModelRenderer(model rl.Model, color rl.Color) *ModelRenderer {
	return &ModelRenderer{
		Model: model,
		Color: color,
	}
}

func (m *ModelRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active {
		return
	}

	scale := g.WorldScale()
	scaleMatrix := rl.MatrixScale(scale.X, scale.Y, scale.Z)
	rotMatrix := rl.QuaternionToMatrix(g.WorldRotation())
	pos := g.WorldPosition()
	transMatrix := rl.MatrixTranslate(pos.X, pos.Y, pos.Z)

	// scale -> rotate -> translate
	m.Model.Transform = rl.MatrixMultiply(rl.MatrixMultiply(scaleMatrix, rotMatrix), transMatrix)

	rl.DrawModel(m.Model, rl.Vector3Zero(), 1.0, m.Color)
	if m.Wires {
		rl.DrawModelWires(m.Model, rl.Vector3Zero(), 1.0, rl.Fade(rl.Black, 0.25))
	}
}

func (m *ModelRenderer) Unload() {
	rl.UnloadModel(m.Model)
}
