package common

// Optional holds either a value or nothing. Repository lookups return it so
// callers must check presence before touching the value.
type Optional[T any] struct {
	value T
	ok    bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

func (o Optional[T]) IsPresent() bool {
	return o.ok
}

// OrElse returns the value, or err when the optional is empty.
func (o Optional[T]) OrElse(err error) (T, error) {
	if !o.ok {
		var zero T
		return zero, err
	}
	return o.value, nil
}
