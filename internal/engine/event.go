package engine

// EventWithArg fans a value out to every listener in registration order.
// The controller raises one per movement-state change; listeners run inside
// the controller's Update and must not block.
type EventWithArg[T any] struct {
	listeners []func(T)
}

// AddListener registers fn. A nil fn is ignored.
func (e *EventWithArg[T]) AddListener(fn func(T)) {
	if fn != nil {
		e.listeners = append(e.listeners, fn)
	}
}

func (e *EventWithArg[T]) Invoke(arg T) {
	for _, fn := range e.listeners {
		fn(arg)
	}
}

// Listeners reports how many listeners are registered.
func (e *EventWithArg[T]) Listeners() int {
	return len(e.listeners)
}
