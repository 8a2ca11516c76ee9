// Package outcome wraps the result of a marketplace call as a single value
// that is either a success carrying T or a failure carrying an error.
package outcome

// Outcome is a tagged success/failure value.
type Outcome[T any] struct {
	value T
	err   error
}

// Ok returns a successful outcome.
func Ok[T any](v T) Outcome[T] {
	return Outcome[T]{value: v}
}

// Fail returns a failed outcome. A nil err is still treated as failure.
func Fail[T any](err error) Outcome[T] {
	if err == nil {
		err = errUnknown
	}
	return Outcome[T]{err: err}
}

// From builds an outcome from a conventional (value, error) pair.
func From[T any](v T, err error) Outcome[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Ok(v)
}

// OK reports success.
func (o Outcome[T]) OK() bool {
	return o.err == nil
}

// Value returns the success value, or the zero T on failure.
func (o Outcome[T]) Value() T {
	return o.value
}

// Err returns the failure, or nil on success.
func (o Outcome[T]) Err() error {
	return o.err
}

// Get unpacks the outcome.
func (o Outcome[T]) Get() (T, error) {
	return o.value, o.err
}

// OrElse returns the value on success and fallback otherwise.
func (o Outcome[T]) OrElse(fallback T) T {
	if o.err != nil {
		return fallback
	}
	return o.value
}

// Notice renders the failure for display. It returns the zero Notice on success.
func (o Outcome[T]) Notice() Notice {
	if o.err == nil {
		return Notice{}
	}
	return Present(o.err)
}

// Map transforms a successful value and passes failures through.
func Map[T, U any](o Outcome[T], fn func(T) U) Outcome[U] {
	if o.err != nil {
		return Fail[U](o.err)
	}
	return Ok(fn(o.value))
}
