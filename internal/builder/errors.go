package builder

import "fmt"

// InstantiationError reports a failure raised by a registered entity while
// it was being invoked, attributed to the document path and alias that
// triggered the call. Nested instantiation errors propagate unchanged, so
// the path always points at the innermost failing call.
type InstantiationError struct {
	Path  string
	Alias string
	Err   error
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("instantiating %q calling %q: %v", e.Path, e.Alias, e.Err)
}

func (e *InstantiationError) Unwrap() error {
	return e.Err
}
