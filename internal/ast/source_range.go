package ast

import "fmt"

// SourceRange represents a range in the source code
type SourceRange struct {
	Start Position
	End   Position
}

// RangeOf returns the source range covered by node.
func RangeOf(node Node) SourceRange {
	return SourceRange{Start: node.NodePos(), End: node.NodeEndPos()}
}

// Contains checks if a byte offset is within this source range
func (sr SourceRange) Contains(offset int) bool {
	return sr.Start.Offset <= offset && offset < sr.End.Offset
}

// String returns a human-readable representation of the source range
func (sr SourceRange) String() string {
	if sr.Start.Line == sr.End.Line {
		return fmt.Sprintf("%s:%d:%d-%d", sr.Start.Filename, sr.Start.Line, sr.Start.Column, sr.End.Column)
	}
	return fmt.Sprintf("%s:%d:%d-%d:%d", sr.Start.Filename, sr.Start.Line, sr.Start.Column, sr.End.Line, sr.End.Column)
}

// SourceText extracts the text node was parsed from.
func SourceText(node Node, source string) string {
	start, end := node.NodePos().Offset, node.NodeEndPos().Offset
	if start < 0 || end > len(source) || start > end {
		return ""
	}
	return source[start:end]
}

// PathTo returns the chain of nodes from root down to the innermost node
// whose range contains offset. It is empty when root does not contain it.
func PathTo(root Node, offset int) []Node {
	var path []Node
	node := root
	for node != nil && RangeOf(node).Contains(offset) {
		path = append(path, node)

		var next Node
		for _, child := range Children(node) {
			if RangeOf(child).Contains(offset) {
				next = child
				break
			}
		}
		node = next
	}
	return path
}
