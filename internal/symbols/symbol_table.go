// symbols/symbol_table.go - Scope chain entry point
//
// The package is split into focused files:
// - symbol_table_core.go: scope kinds, Symbol struct, constructors
// - symbol_table_operations.go: declare, lookup, assignment write-back
// - symbol_table_resolution.go: resolving syntax nodes to annotations, return info

package symbols
