package ast

import (
	"fmt"
	"strings"
)

// Children returns the direct child nodes of node in source order.
func Children(node Node) []Node {
	var children []Node

	switch n := node.(type) {
	case *Program:
		for _, item := range n.Items {
			children = append(children, item)
		}
	case *Function:
		if n.Definition != nil {
			children = append(children, n.Definition)
		}
		if n.Body != nil {
			children = append(children, n.Body)
		}
		for _, t := range n.Tests {
			children = append(children, t)
		}
	case *FunctionDefinition:
		children = append(children, &n.Name)
		for _, p := range n.Params {
			children = append(children, p)
		}
	case *Parameter:
		children = append(children, &n.Name)
	case *Test:
		children = appendExpr(children, n.Input)
		children = appendExpr(children, n.Output)
	case *LetStmt:
		children = append(children, &n.Name)
		children = appendExpr(children, n.Value)
	case *ReturnStmt:
		children = appendExpr(children, n.Value)
	case *ExprStmt:
		children = appendExpr(children, n.Expr)
	case *BlockExpr:
		for _, stmt := range n.Stmts {
			children = append(children, stmt)
		}
	case *IfExpr:
		children = appendExpr(children, n.Cond)
		if n.Body != nil {
			children = append(children, n.Body)
		}
		if n.Else != nil {
			children = append(children, n.Else)
		}
	case *CallExpr:
		children = append(children, &n.Name)
		for _, arg := range n.Args {
			children = appendExpr(children, arg)
		}
	case *BinaryExpr:
		children = appendExpr(children, n.Left)
		children = appendExpr(children, n.Right)
	}

	return children
}

func appendExpr(children []Node, e Expr) []Node {
	if e == nil {
		return children
	}
	return append(children, e)
}

// Walk visits node and its descendants depth-first. Children of a node are
// skipped when fn returns false for it.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	for _, child := range Children(node) {
		Walk(child, fn)
	}
}

// HasErrors reports whether any error placeholder occurs under node. A
// placeholder contaminates every node that contains it.
func HasErrors(node Node) bool {
	found := false
	Walk(node, func(n Node) bool {
		switch n.(type) {
		case *BadStmt, *BadExpr:
			found = true
		}
		return !found
	})
	return found
}

// Dump renders node as an indented tree, one node per line.
func Dump(node Node) string {
	var b strings.Builder
	dump(&b, node, 0)
	return b.String()
}

func dump(b *strings.Builder, node Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(describe(node))
	b.WriteString("\n")
	for _, child := range Children(node) {
		dump(b, child, depth+1)
	}
}

func describe(node Node) string {
	pos := node.NodePos()
	at := fmt.Sprintf("@%d:%d", pos.Line, pos.Column)

	switch n := node.(type) {
	case *Program:
		return "Program"
	case *Comment:
		return fmt.Sprintf("Comment %q %s", n.Text, at)
	case *Ident:
		return fmt.Sprintf("Ident %s %s", n.Value, at)
	case *Function:
		return fmt.Sprintf("Function %s (%d tests) %s", n.Definition.Name.Value, len(n.Tests), at)
	case *NumberExpr:
		return fmt.Sprintf("Number %d %s", n.Value, at)
	case *StringExpr:
		return fmt.Sprintf("String %q %s", n.Value, at)
	case *VariableExpr:
		return fmt.Sprintf("Variable %s %s", n.Name, at)
	case *BinaryExpr:
		return fmt.Sprintf("BinaryOp %s %s", n.Op, at)
	case *IfExpr:
		return fmt.Sprintf("If else=%t %s", n.Else != nil, at)
	case *BadStmt:
		return fmt.Sprintf("Error(stmt) %q %s", n.Bad.Message, at)
	case *BadExpr:
		return fmt.Sprintf("Error(expr) %q %s", n.Bad.Message, at)
	default:
		name := strings.ToLower(node.NodeType().String())
		parts := strings.Split(name, "_")
		for i, part := range parts {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
		return strings.Join(parts, "") + " " + at
	}
}
