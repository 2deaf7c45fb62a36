package experiment

import (
	"errors"
	"fmt"
	"strings"
)

// ErrReadOnly is returned by any attempt to write into the built object
// store from outside the builder. The store is accretive only.
var ErrReadOnly = errors.New("experiment store is read-only")

// UnknownKeyError reports a build request for a key the document does not
// declare.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("experiment document has no key %q", e.Key)
}

// CyclicBuildError reports a top-level key whose build transitively
// requires its own value. Chain is the in-progress stack at detection
// time, ending with the key that re-entered.
type CyclicBuildError struct {
	Key   string
	Chain []string
}

func (e *CyclicBuildError) Error() string {
	return fmt.Sprintf("cyclic build of key %q (%s)", e.Key, strings.Join(e.Chain, " -> "))
}
