// Package resolve indexes the functions of a parsed program and checks the
// names used in it. It is purely structural: nothing is typed or evaluated.
package resolve

import (
	"sort"
	"strings"

	"wryneck/internal/ast"
	"wryneck/internal/errors"
)

// FunctionID is a dense index into Program.Functions, assigned in source order.
type FunctionID int

// Thing is one top-level item: either a function reference or a comment.
type Thing struct {
	Function FunctionID
	Comment  *ast.Comment
}

// IsFunction reports whether the item refers to a function.
func (t Thing) IsFunction() bool {
	return t.Comment == nil
}

type Program struct {
	Things    []Thing
	Functions []*ast.Function

	globals     *SymbolTable
	diagnostics []errors.CompilerError
}

// Resolve builds the function table of prog and collects its diagnostics.
func Resolve(prog *ast.Program) *Program {
	r := &Program{globals: NewSymbolTable(nil)}

	for _, item := range prog.Items {
		switch n := item.(type) {
		case *ast.Comment:
			r.Things = append(r.Things, Thing{Comment: n})
		case *ast.Function:
			id := FunctionID(len(r.Functions))
			r.Functions = append(r.Functions, n)
			r.Things = append(r.Things, Thing{Function: id})
			r.declare(n)
		}
	}

	for _, fn := range r.Functions {
		r.checkFunction(fn)
	}

	errors.Sort(r.diagnostics)
	return r
}

func (r *Program) declare(fn *ast.Function) {
	if fn.Definition == nil || fn.Definition.Name.Value == "" {
		return
	}

	name := fn.Definition.Name
	if prev := r.globals.LookupLocal(name.Value); prev != nil {
		r.diagnostics = append(r.diagnostics, errors.DuplicateDeclaration(name.Value, name.Pos, prev.Position))
		return
	}
	r.globals.Define(name.Value, SymbolFunction, fn, name.Pos)
}

// Lookup returns the id of the first function declared with name.
func (r *Program) Lookup(name string) (FunctionID, bool) {
	sym := r.globals.LookupLocal(name)
	if sym == nil {
		return 0, false
	}
	for id, fn := range r.Functions {
		if fn == sym.Node {
			return FunctionID(id), true
		}
	}
	return 0, false
}

// Function returns the function with the given id.
func (r *Program) Function(id FunctionID) *ast.Function {
	return r.Functions[id]
}

// Diagnostics returns the resolution errors and warnings ordered by position.
func (r *Program) Diagnostics() []errors.CompilerError {
	return r.diagnostics
}

// FunctionNames lists the declared function names in sorted order.
func (r *Program) FunctionNames() []string {
	names := r.globals.Names()
	sort.Strings(names)
	return names
}

func (r *Program) checkFunction(fn *ast.Function) {
	scope := NewSymbolTable(r.globals)

	var params []*Symbol
	if fn.Definition != nil {
		for _, p := range fn.Definition.Params {
			params = append(params, scope.Define(p.Name.Value, SymbolParameter, p, p.Name.Pos))
		}
	}

	r.checkExpr(fn.Body, scope)

	for _, p := range params {
		if !p.Used && !strings.HasPrefix(p.Name, "_") {
			r.diagnostics = append(r.diagnostics, errors.UnusedParameter(p.Name, p.Position))
		}
	}

	// Tests run against the function from outside, so only globals are visible.
	for _, t := range fn.Tests {
		r.checkExpr(t.Input, r.globals)
		r.checkExpr(t.Output, r.globals)
	}
}

func (r *Program) checkStmt(s ast.Stmt, scope *SymbolTable) {
	switch n := s.(type) {
	case *ast.LetStmt:
		r.checkExpr(n.Value, scope)
		scope.Define(n.Name.Value, SymbolVariable, n, n.Name.Pos)
	case *ast.ReturnStmt:
		r.checkExpr(n.Value, scope)
	case *ast.ExprStmt:
		r.checkExpr(n.Expr, scope)
	}
}

func (r *Program) checkExpr(e ast.Expr, scope *SymbolTable) {
	switch n := e.(type) {
	case *ast.VariableExpr:
		if sym := scope.Lookup(n.Name); sym != nil {
			sym.Used = true
		}
	case *ast.CallExpr:
		if sym := scope.Lookup(n.Name.Value); sym != nil {
			sym.Used = true
		} else {
			r.diagnostics = append(r.diagnostics, errors.UnknownFunction(n.Name.Value, n.Name.Pos, r.FunctionNames()))
		}
		for _, arg := range n.Args {
			r.checkExpr(arg, scope)
		}
	case *ast.BinaryExpr:
		r.checkExpr(n.Left, scope)
		r.checkExpr(n.Right, scope)
	case *ast.BlockExpr:
		r.checkBlock(n, scope)
	case *ast.IfExpr:
		r.checkExpr(n.Cond, scope)
		r.checkBlock(n.Body, scope)
		if n.Else != nil {
			r.checkBlock(n.Else, scope)
		}
	}
}

func (r *Program) checkBlock(b *ast.BlockExpr, parent *SymbolTable) {
	if b == nil {
		return
	}
	scope := NewSymbolTable(parent)
	for _, s := range b.Stmts {
		r.checkStmt(s, scope)
	}
}
