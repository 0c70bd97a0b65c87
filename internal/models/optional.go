package models

// Optional distinguishes "not supplied" from a supplied value. For nullable
// columns T is a pointer, so Set with a nil Value means "clear this field".
type Optional[T any] struct {
	Set   bool
	Value T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}
