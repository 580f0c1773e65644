package engine

type Component interface {
	Start()
	Update(deltaTime float32)
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// LateUpdater is implemented by components that must run after every
// Update of the frame (camera follow, animation, debug overlays).
type LateUpdater interface {
	LateUpdate(deltaTime float32)
}

// ViewProvider is implemented by the active camera. The character
// controller reads its horizontal basis to turn input into a world direction.
type ViewProvider interface {
	// ViewBasis returns the camera forward and right vectors projected onto
	// the ground plane and normalized.
	ViewBasis() (forward, right Vec3)
	// MouselookActive reports whether the player is dragging the view so the
	// character should face the camera yaw.
	MouselookActive() bool
}

// InputSource is implemented by components that sample player intent once
// per frame.
type InputSource interface {
	MovementInput() MovementInput
}

// MovementInput is the raw intent for one tick.
type MovementInput struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Run      bool
	Jump     bool
	// MouseForward is set while both mouse buttons are held, which walks
	// the character forward the way MMO clients do.
	MouseForward bool
}

// Any reports whether any directional intent is present.
func (m MovementInput) Any() bool {
	return m.Forward || m.Backward || m.Left || m.Right || m.MouseForward
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float32) {}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}
