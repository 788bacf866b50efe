// SPDX-License-Identifier: Apache-2.0
package token

import (
	"fmt"
	"sort"
	"strings"
)

// Dialect maps keyword roles to their accepted spellings. The first
// spelling of each role is the canonical one used when printing.
type Dialect struct {
	Name     string
	Function []string
	Let      []string
	If       []string
	Else     []string
	Return   []string

	// Aliases maps a surface identifier to the name it stands for.
	Aliases map[string]string
}

var Classic = &Dialect{
	Name:     "classic",
	Function: []string{"fn", "egg"},
	Let:      []string{"let"},
	If:       []string{"if"},
	Else:     []string{"else"},
	Return:   []string{"*)>"},
}

var Emoji = &Dialect{
	Name:     "emoji",
	Function: []string{"🥚"},
	Let:      []string{"let"},
	If:       []string{"if"},
	Else:     []string{"else"},
	Return:   []string{"🐔", "🐓"},
	Aliases:  map[string]string{"🐣": "hatch"},
}

var dialects = map[string]*Dialect{
	Classic.Name: Classic,
	Emoji.Name:   Emoji,
}

// DialectByName returns the dialect registered under name.
func DialectByName(name string) (*Dialect, error) {
	if d, ok := dialects[name]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("unknown dialect %q (want one of %s)", name, strings.Join(DialectNames(), ", "))
}

func DialectNames() []string {
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EmojiOnly reports whether text is a keyword spelling or alias that the
// emoji dialect accepts and the classic dialect does not.
func EmojiOnly(text string) bool {
	if _, ok := Emoji.Aliases[text]; ok {
		return true
	}
	if _, ok := Emoji.Lookup(text); !ok {
		return false
	}
	_, shared := Classic.Lookup(text)
	return !shared
}

func (d *Dialect) roles() map[TokenType][]string {
	return map[TokenType][]string{
		FUNCTION: d.Function,
		LET:      d.Let,
		IF:       d.If,
		ELSE:     d.Else,
		RETURN:   d.Return,
	}
}

// Keywords returns every accepted spelling with the role it stands for.
func (d *Dialect) Keywords() map[string]TokenType {
	keywords := make(map[string]TokenType)
	for role, spellings := range d.roles() {
		for _, s := range spellings {
			keywords[s] = role
		}
	}
	return keywords
}

// Lookup classifies text as a keyword role of the dialect.
func (d *Dialect) Lookup(text string) (TokenType, bool) {
	for role, spellings := range d.roles() {
		for _, s := range spellings {
			if s == text {
				return role, true
			}
		}
	}
	return IDENTIFIER, false
}

// Spelling returns the canonical spelling of a keyword role.
func (d *Dialect) Spelling(role TokenType) string {
	spellings := d.roles()[role]
	if len(spellings) == 0 {
		return ""
	}
	return spellings[0]
}

// CanonicalName resolves a surface alias to the name it stands for.
func (d *Dialect) CanonicalName(name string) string {
	if canonical, ok := d.Aliases[name]; ok {
		return canonical
	}
	return name
}

// SurfaceName is the inverse of CanonicalName.
func (d *Dialect) SurfaceName(name string) string {
	for alias, canonical := range d.Aliases {
		if canonical == name {
			return alias
		}
	}
	return name
}
