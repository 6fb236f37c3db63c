package sitecrawl

import "fmt"

// Result is the outcome of a call made through Capture.
// Exactly one of the success fields (Value, Message) or Err is meaningful.
type Result[T any] struct {
	Value   T
	Message string
	Err     error
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool { return r.Err == nil }

// Capture calls fn and converts both returned errors and panics into a
// failed Result, so that one misbehaving callback cannot abort its caller.
func Capture[T any](fn func() (T, string, error)) (res Result[T]) {
	defer func() {
		if p := recover(); p != nil {
			res = Result[T]{Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	v, msg, err := fn()
	if err != nil {
		return Result[T]{Err: err}
	}
	return Result[T]{Value: v, Message: msg}
}
