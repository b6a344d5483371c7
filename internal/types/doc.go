// Package types holds the export-type lattice shared by inference,
// lowering and the type-info cache.
package types
