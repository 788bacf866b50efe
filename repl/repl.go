// SPDX-License-Identifier: Apache-2.0

// Package repl reads wryneck snippets interactively and shows how they
// parse.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"wryneck/grammar"
	"wryneck/internal/ast"
	"wryneck/internal/format"
	"wryneck/internal/parser"
	"wryneck/internal/resolve"
	"wryneck/token"
)

const (
	PROMPT      = ">> "
	CONTINUE    = ".. "
	historyFile = ".wryneck_history"
	replFile    = "<repl>"
)

const helpText = `commands:
  :help              show this text
  :quit              leave the repl
  :mode tree|dump|fmt  choose how parsed input is shown
  :dialect NAME      fix the dialect (auto, classic, emoji)
  :load FILE         parse a file
`

// Mode selects how a parsed snippet is printed.
type Mode string

const (
	ModeTree   Mode = "tree"
	ModeDump   Mode = "dump"
	ModeFormat Mode = "fmt"
)

// Prompter supplies input lines. *liner.State implements it.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

type REPL struct {
	out     io.Writer
	dialect *token.Dialect // nil detects per snippet
	mode    Mode
	indent  int
}

func New(out io.Writer, dialect *token.Dialect, indent int) *REPL {
	return &REPL{
		out:     out,
		dialect: dialect,
		mode:    ModeTree,
		indent:  indent,
	}
}

// Start runs an interactive session on the terminal until end of input.
func Start(out io.Writer, dialect *token.Dialect, indent int) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	r := New(out, dialect, indent)
	r.Run(ln, ln.AppendHistory)

	if histPath != "" {
		f, err := os.Create(histPath)
		if err != nil {
			return fmt.Errorf("failed to save history: %w", err)
		}
		defer f.Close()
		if _, err := ln.WriteHistory(f); err != nil {
			return fmt.Errorf("failed to save history: %w", err)
		}
	}
	return nil
}

// Run reads snippets from p until end of input or :quit. Each accepted
// snippet is passed to remember, which may be nil.
func (r *REPL) Run(p Prompter, remember func(string)) {
	for {
		src, ok := r.read(p)
		if !ok {
			fmt.Fprintln(r.out)
			return
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if remember != nil {
			remember(strings.ReplaceAll(src, "\n", " "))
		}

		if strings.HasPrefix(trimmed, ":") {
			if r.Command(trimmed) {
				return
			}
			continue
		}
		r.Eval(src)
	}
}

// read collects lines until the snippet no longer ends inside an open
// construct. Ctrl+C drops the pending input.
func (r *REPL) read(p Prompter) (string, bool) {
	var b strings.Builder

	for {
		prompt := PROMPT
		if b.Len() > 0 {
			prompt = CONTINUE
		}

		line, err := p.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			fmt.Fprintln(r.out, err)
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !r.incomplete(src) {
			return src, true
		}
	}
}

// incomplete reports whether parsing src ran into the end of input.
func (r *REPL) incomplete(src string) bool {
	_, parseErrors, err := parser.ParseSource(replFile, src, parser.WithDialect(r.dialect))
	if err != nil {
		return false
	}
	for _, pe := range parseErrors {
		if pe.Token.Type == token.EOF {
			return true
		}
	}
	return false
}

// Eval parses src and prints either its diagnostics or the parsed program.
func (r *REPL) Eval(src string) {
	result := resolve.Check(replFile, src, parser.WithDialect(r.dialect))
	if len(result.Diagnostics) > 0 {
		result.Report(r.out, true)
	}
	if result.Syntax == nil {
		return
	}

	d := r.dialect
	if d == nil {
		d = grammar.DetectDialect(src)
	}

	switch r.mode {
	case ModeDump:
		fmt.Fprint(r.out, ast.Dump(result.Syntax))
	case ModeFormat:
		fmt.Fprint(r.out, format.Program(result.Syntax, d, r.indent))
	default:
		fmt.Fprintln(r.out, result.Syntax.String())
	}
}

// Command executes a ':' command and reports whether the session should end.
func (r *REPL) Command(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case ":help":
		fmt.Fprint(r.out, helpText)

	case ":quit", ":exit":
		return true

	case ":mode":
		if len(fields) < 2 {
			fmt.Fprintf(r.out, "mode: %s\n", r.mode)
			return false
		}
		switch mode := Mode(fields[1]); mode {
		case ModeTree, ModeDump, ModeFormat:
			r.mode = mode
		default:
			fmt.Fprintf(r.out, "unknown mode %q\n", fields[1])
		}

	case ":dialect":
		if len(fields) < 2 {
			name := "auto"
			if r.dialect != nil {
				name = r.dialect.Name
			}
			fmt.Fprintf(r.out, "dialect: %s\n", name)
			return false
		}
		if fields[1] == "auto" {
			r.dialect = nil
			return false
		}
		d, err := token.DialectByName(fields[1])
		if err != nil {
			fmt.Fprintln(r.out, color.RedString("%v", err))
			return false
		}
		r.dialect = d

	case ":load":
		if len(fields) < 2 {
			fmt.Fprintln(r.out, "usage: :load FILE")
			return false
		}
		src, err := os.ReadFile(fields[1])
		if err != nil {
			fmt.Fprintln(r.out, color.RedString("cannot read %s: %v", fields[1], err))
			return false
		}
		r.Eval(string(src))

	default:
		fmt.Fprintln(r.out, "unknown command. Type :help for help.")
	}
	return false
}
