package registry

import "fmt"

// UnknownPluginError reports a lookup of an alias that has no registry entry.
type UnknownPluginError struct {
	Alias string
}

func (e *UnknownPluginError) Error() string {
	return fmt.Sprintf("plugin %q is not registered", e.Alias)
}

// DuplicateAliasError reports a registration collision. Aliases are unique
// for the life of a registry, so this is fatal at registration time.
type DuplicateAliasError struct {
	Alias string
}

func (e *DuplicateAliasError) Error() string {
	return fmt.Sprintf("alias %q is already registered, pick another name", e.Alias)
}
