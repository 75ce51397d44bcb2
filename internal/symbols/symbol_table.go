// symbols/symbol_table.go - Main symbol table entry point
//
// - symbol_table_core.go: MethodRef, MethodSymbol and lookup errors
// - symbol_table_operations.go: entering and resolving methods

package symbols
