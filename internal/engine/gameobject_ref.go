package engine

// GameObjectRef points at another object in the same scene by UID. The
// controller uses one to find its camera, the camera one to find its target.
type GameObjectRef struct {
	UID uint64 // 0 = none
}

// Get resolves the reference, or returns nil when it is empty or dangling.
func (r GameObjectRef) Get(scene *Scene) *GameObject {
	if r.UID == 0 || scene == nil {
		return nil
	}
	return scene.FindByUID(r.UID)
}

func (r GameObjectRef) IsValid() bool {
	return r.UID != 0
}

// Set points the reference at g; nil clears it.
func (r *GameObjectRef) Set(g *GameObject) {
	r.UID = 0
	if g != nil {
		r.UID = g.UID
	}
}
