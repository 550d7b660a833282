package experiment

import "errors"

// ErrUnstable reports a run whose vorticity stopped being finite.
var ErrUnstable = errors.New("experiment: simulation unstable (non-finite vorticity)")

// FrameError wraps an error with the frame it happened on.
type FrameError struct {
	Frame   int
	Wrapped error
}

func (e *FrameError) Error() string {
	return e.Wrapped.Error()
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
