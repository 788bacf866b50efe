package lsp

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"wryneck/token"
)

// LSP positions count UTF-16 code units from the start of the line, while
// token positions carry byte offsets. Every conversion goes through the
// offset so emoji keywords map correctly.

func lineStart(source string, offset int) int {
	return strings.LastIndexByte(source[:offset], '\n') + 1
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func clampOffset(source string, offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(source) {
		return len(source)
	}
	return offset
}

// toProtocol converts a byte offset into an LSP position.
func toProtocol(source string, offset int) protocol.Position {
	offset = clampOffset(source, offset)
	start := lineStart(source, offset)
	return protocol.Position{
		Line:      protocol.UInteger(strings.Count(source[:start], "\n")),
		Character: protocol.UInteger(utf16Len(source[start:offset])),
	}
}

func rangeOf(source string, start, end token.Position) protocol.Range {
	return protocol.Range{
		Start: toProtocol(source, start.Offset),
		End:   toProtocol(source, end.Offset),
	}
}

// spanRange covers length runes starting at pos, stopping at the end of
// the line.
func spanRange(source string, pos token.Position, length int) protocol.Range {
	start := clampOffset(source, pos.Offset)
	end := start
	for i := 0; i < length && end < len(source); i++ {
		r, size := utf8.DecodeRuneInString(source[end:])
		if r == '\n' {
			break
		}
		end += size
	}
	return protocol.Range{
		Start: toProtocol(source, start),
		End:   toProtocol(source, end),
	}
}

// offsetAt converts an LSP position back to a byte offset. Positions past
// the end of a line clamp to the line end.
func offsetAt(source string, pos protocol.Position) int {
	offset := 0
	for line := protocol.UInteger(0); line < pos.Line; line++ {
		next := strings.IndexByte(source[offset:], '\n')
		if next < 0 {
			return len(source)
		}
		offset += next + 1
	}

	units := protocol.UInteger(0)
	for offset < len(source) && units < pos.Character {
		r, size := utf8.DecodeRuneInString(source[offset:])
		if r == '\n' {
			break
		}
		units += protocol.UInteger(utf16.RuneLen(r))
		offset += size
	}
	return offset
}

// endOf returns the position just past the last byte of source.
func endOf(source string) token.Position {
	return token.Position{
		Line:   strings.Count(source, "\n") + 1,
		Offset: len(source),
	}
}
