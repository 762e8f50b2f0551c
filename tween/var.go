package tween

// Var is a standalone Property holding its own value. Invalidate simulates the
// owner going away.
type Var[T any] struct {
	value T
	dead  bool
	// Writes counts successful Set calls.
	Writes int
}

func NewVar[T any](v T) *Var[T] {
	return &Var[T]{value: v}
}

func (v *Var[T]) Get() (T, bool) {
	if v == nil || v.dead {
		var zero T
		return zero, false
	}
	return v.value, true
}

func (v *Var[T]) Set(value T) bool {
	if v == nil || v.dead {
		return false
	}
	v.value = value
	v.Writes++
	return true
}

// Value returns the current value regardless of liveness.
func (v *Var[T]) Value() T {
	return v.value
}

func (v *Var[T]) Invalidate() {
	v.dead = true
}
