package types

import (
	"maps"
	"slices"
)

// DefaultExport is the Exports key of `export default`.
const DefaultExport = "default"

// Exports maps exported binding names to their types.
type Exports map[string]ExportType

// Lookup returns the type of name and whether it is exported.
func (e Exports) Lookup(name string) (ExportType, bool) {
	t, ok := e[name]
	return t, ok
}

// Names returns the exported names in sorted order.
func (e Exports) Names() []string {
	var names []string
	for name := range e {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Clone returns an independent copy.
func (e Exports) Clone() Exports {
	if e == nil {
		return nil
	}
	return maps.Clone(e)
}

// Equal reports whether both maps hold the same entries.
func (e Exports) Equal(other Exports) bool {
	return maps.Equal(e, other)
}
