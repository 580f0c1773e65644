package components

import (
	"movecore/internal/engine"
)

// AnimationClip names the clip the character model plays.
type AnimationClip int

const (
	ClipIdle AnimationClip = iota
	ClipWalk
	ClipRun
	ClipJump
	ClipFall
	ClipLand
)

func (c AnimationClip) String() string {
	switch c {
	case ClipIdle:
		return "idle"
	case ClipWalk:
		return "walk"
	case ClipRun:
		return "run"
	case ClipJump:
		return "jump"
	case ClipFall:
		return "fall"
	case ClipLand:
		return "land"
	}
	return "unknown"
}

// ClipFor maps a movement state to its clip. Sliding and stepping have no
// clip of their own and reuse the walk cycle.
func ClipFor(s MovementState) AnimationClip {
	switch s {
	case Walking, Sliding, SteppingUp:
		return ClipWalk
	case Running:
		return ClipRun
	case Jumping:
		return ClipJump
	case Falling:
		return ClipFall
	case Landing:
		return ClipLand
	}
	return ClipIdle
}

// CharacterAnimator follows the controller's state changes and tracks which
// clip plays and how far the crossfade into it has got.
type CharacterAnimator struct {
	engine.BaseComponent

	TransitionTime float32

	Current  AnimationClip
	Previous AnimationClip
	// StateTime is the time spent in Current.
	StateTime float32
	// Phase advances with ground speed so walk and run cycles stay in step
	// with the feet.
	Phase float32

	controller *CharacterController
}

func NewCharacterAnimator() *CharacterAnimator {
	return &CharacterAnimator{TransitionTime: 0.1}
}

func (a *CharacterAnimator) Start() {
	g := a.GetGameObject()
	if g == nil {
		return
	}
	a.controller = engine.GetComponent[*CharacterController](g)
	if a.controller == nil {
		return
	}
	a.controller.OnStateChanged.AddListener(func(e StateChange) {
		a.play(ClipFor(e.To))
	})
}

func (a *CharacterAnimator) play(clip AnimationClip) {
	if clip == a.Current {
		return
	}
	a.Previous = a.Current
	a.Current = clip
	a.StateTime = 0
}

func (a *CharacterAnimator) LateUpdate(deltaTime float32) {
	a.StateTime += deltaTime
	if a.controller != nil {
		a.Phase += a.controller.State.CurrentSpeed * deltaTime
	}
}

// Blend is the weight of Current against Previous, 0 to 1.
func (a *CharacterAnimator) Blend() float32 {
	if a.TransitionTime <= 0 || a.StateTime >= a.TransitionTime {
		return 1
	}
	return a.StateTime / a.TransitionTime
}

// Transitioning reports whether a crossfade is still running.
func (a *CharacterAnimator) Transitioning() bool {
	return a.Blend() < 1
}
