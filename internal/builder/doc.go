// Package builder turns configuration document nodes into live values.
//
// A Builder owns an ordered chain of instantiators, each of which inspects a
// node and either produces a value or declines. The chain order is part of
// the contract, not an implementation detail: a mapping carrying the type
// key must be recognized as a constructor call before it can be mistaken
// for a plain mapping, and reference scalars resolve against their
// namespaces in priority order. When every instantiator declines, the node
// is returned unchanged, which is how scalar literals pass through.
package builder
