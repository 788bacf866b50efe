package resolve

import (
	"wryneck/internal/ast"
)

type SymbolKind int

const (
	SymbolFunction SymbolKind = iota
	SymbolParameter
	SymbolVariable
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolFunction:
		return "function"
	case SymbolParameter:
		return "parameter"
	case SymbolVariable:
		return "variable"
	default:
		return "symbol"
	}
}

type Symbol struct {
	Name     string
	Kind     SymbolKind
	Node     ast.Node
	Position ast.Position
	Used     bool
}

// SymbolTable is one lexical scope. Blocks open a child scope, so a let
// binding is visible to the statements after it and to nested blocks.
type SymbolTable struct {
	symbols map[string]*Symbol
	parent  *SymbolTable
}

func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{
		symbols: make(map[string]*Symbol),
		parent:  parent,
	}
}

func (st *SymbolTable) Define(name string, kind SymbolKind, node ast.Node, pos ast.Position) *Symbol {
	symbol := &Symbol{
		Name:     name,
		Kind:     kind,
		Node:     node,
		Position: pos,
	}
	st.symbols[name] = symbol
	return symbol
}

func (st *SymbolTable) Lookup(name string) *Symbol {
	if symbol, exists := st.symbols[name]; exists {
		return symbol
	}
	if st.parent != nil {
		return st.parent.Lookup(name)
	}
	return nil
}

func (st *SymbolTable) LookupLocal(name string) *Symbol {
	if symbol, exists := st.symbols[name]; exists {
		return symbol
	}
	return nil
}

// Names lists the names visible from this scope, innermost first.
func (st *SymbolTable) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for scope := st; scope != nil; scope = scope.parent {
		for name := range scope.symbols {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
