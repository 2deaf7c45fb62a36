// Package registry maps string aliases to constructible entities. It is the
// namespace the builder resolves a document's type keys and `$`-references
// against. A Registry is an explicit value passed into whatever needs it,
// never ambient global state, so tests can run against isolated instances.
package registry
