// Package repl implements the interactive Read-Eval-Print Loop.
//
// EDUCATIONAL NOTES:
// ------------------
// The REPL pattern is common in interactive tools:
// - Read: Get a line from the user
// - Eval: Parse it as one SQL statement
// - Print: Show the syntax tree, or the error
// - Loop: Repeat until the user types exit
//
// Every line is parsed on its own. A bad statement prints an error and the
// session carries on; only "exit", ".exit", ".quit" or end of input stop it.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/cabewaldrop/sqlparse/internal/logging"
	"github.com/cabewaldrop/sqlparse/internal/sql/lexer"
	"github.com/cabewaldrop/sqlparse/internal/sql/parser"
)

// Prompt is printed before every line is read.
const Prompt = "sqlparse> "

// Mode selects how a parsed statement is printed.
type Mode string

const (
	// ModeTree prints an indented dump of the syntax tree.
	ModeTree Mode = "tree"
	// ModeSQL prints the statement back as canonical SQL.
	ModeSQL Mode = "sql"
)

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeTree, ModeSQL:
		return m, nil
	default:
		return "", errors.Newf("unknown output mode %q (want tree or sql)", s)
	}
}

// dotCommand is a special command starting with '.'.
type dotCommand struct {
	name  string
	usage string
	desc  string
}

var dotCommands = []dotCommand{
	{".help", ".help", "Show this help message"},
	{".tokens", ".tokens <sql>", "List the tokens of a statement"},
	{".mode", ".mode [tree|sql]", "Show or set how statements are printed"},
	{".quit", ".quit", "Exit the program"},
	{".exit", ".exit", "Exit the program (alias for .quit)"},
}

// Options configures a REPL.
type Options struct {
	Mode   Mode         // defaults to ModeTree
	Color  bool         // highlight SQL when the output supports colour
	Logger *slog.Logger // nil discards log records
}

// REPL reads statements from an input stream and prints their syntax trees.
type REPL struct {
	in     *bufio.Reader
	out    io.Writer
	mode   Mode
	hl     *Highlighter
	logger *slog.Logger
}

// New creates a REPL reading from in and writing to out.
func New(in io.Reader, out io.Writer, opts Options) *REPL {
	mode := opts.Mode
	if mode == "" {
		mode = ModeTree
	}
	return &REPL{
		in:     bufio.NewReader(in),
		out:    out,
		mode:   mode,
		hl:     NewHighlighter(out, opts.Color),
		logger: logging.OrDiscard(opts.Logger),
	}
}

// Mode returns the current output mode.
func (r *REPL) Mode() Mode {
	return r.mode
}

// lineResult is one line read from the input, or the error that ended it.
type lineResult struct {
	line string
	err  error
}

// readLines feeds lines into the returned channel until input fails or ctx
// is cancelled. A read already blocked when ctx ends stays blocked until the
// input yields, but nobody waits on it.
func (r *REPL) readLines(ctx context.Context) <-chan lineResult {
	lines := make(chan lineResult)
	go func() {
		defer close(lines)
		for {
			line, err := r.in.ReadString('\n')
			select {
			case lines <- lineResult{line: line, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return lines
}

// Run loops until the user exits, input ends, or ctx is cancelled. Reaching
// end of input is a normal exit and returns nil. Cancellation takes effect
// even while waiting for input.
func (r *REPL) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := r.readLines(ctx)

	for {
		fmt.Fprint(r.out, Prompt)

		var res lineResult
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return ctx.Err()
		case res = <-lines:
		}

		line, err := res.line, res.err
		if err != nil && !errors.Is(err, io.EOF) {
			return errors.Wrap(err, "read input")
		}
		atEOF := err != nil

		if line != "" && r.handleLine(line) {
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		}
		if atEOF {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return nil
		}
	}
}

// handleLine evaluates one line of input and reports whether the session
// should end.
func (r *REPL) handleLine(line string) bool {
	line = strings.TrimSpace(line)

	// Empty lines never reach the parser.
	if line == "" {
		return false
	}

	if strings.EqualFold(line, "exit") {
		return true
	}

	if strings.HasPrefix(line, ".") {
		return r.handleDotCommand(line)
	}

	r.evalSQL(line)
	return false
}

// handleDotCommand processes special dot commands.
func (r *REPL) handleDotCommand(cmd string) bool {
	name, arg, _ := strings.Cut(cmd, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case ".help":
		r.printHelp()

	case ".quit", ".exit":
		return true

	case ".tokens":
		if arg == "" {
			fmt.Fprintln(r.out, "Usage: .tokens <sql>")
			return false
		}
		r.printTokens(arg)

	case ".mode":
		if arg == "" {
			fmt.Fprintf(r.out, "Output mode: %s\n", r.mode)
			return false
		}
		mode, err := ParseMode(arg)
		if err != nil {
			r.printError(err)
			return false
		}
		r.mode = mode
		fmt.Fprintf(r.out, "Output mode set to %s\n", mode)

	default:
		fmt.Fprintf(r.out, "Unknown command: %s\n", name)
		fmt.Fprintln(r.out, "Type '.help' for available commands.")
	}
	return false
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, "\nAvailable commands:")
	for _, c := range dotCommands {
		fmt.Fprintf(r.out, "  %-18s %s\n", c.usage, c.desc)
	}
	fmt.Fprintf(r.out, "  %-18s %s\n", "exit", "Exit the program")
	fmt.Fprintln(r.out, "\nSQL Commands:")
	fmt.Fprintln(r.out, "  SELECT * | expr, ... FROM table [WHERE expr] [ORDER BY expr [ASC|DESC], ...];")
	fmt.Fprintln(r.out, "  CREATE TABLE name (column INT|BOOL|VARCHAR(n) [PRIMARY KEY] [NOT NULL] [CHECK (expr)], ...);")
	fmt.Fprintln(r.out)
}

// evalSQL parses one statement and prints the result.
func (r *REPL) evalSQL(input string) {
	start := time.Now()
	stmt, err := parser.Parse(input)
	elapsed := time.Since(start)

	if err != nil {
		var parseErr *parser.Error
		if errors.As(err, &parseErr) {
			r.logger.Debug("parse failed",
				"kind", parseErr.Kind.String(),
				"line", parseErr.Line(),
				"column", parseErr.Column(),
				"duration", elapsed)
		}
		r.printError(err)
		return
	}

	r.logger.Debug("parsed statement",
		"kind", parser.StatementKind(stmt),
		"duration", elapsed)

	switch r.mode {
	case ModeSQL:
		fmt.Fprintln(r.out, r.hl.Highlight(stmt.String()))
	default:
		fmt.Fprint(r.out, FormatTree(stmt))
	}
}

// printTokens lists the tokens of input, one per line, stopping at the
// first lexical error.
func (r *REPL) printTokens(input string) {
	l := lexer.New(input)
	for {
		tok, err := l.NextToken()
		if err != nil {
			r.printError(err)
			return
		}

		pos := fmt.Sprintf("%d:%d", tok.Line, tok.Column)
		name := fmt.Sprintf("%-14s", tok.Type)
		fmt.Fprintf(r.out, "  %-7s %s %s\n", pos, r.hl.Token(tok.Type, name), tok)

		if tok.Type == lexer.TokenEOF {
			return
		}
	}
}

func (r *REPL) printError(err error) {
	fmt.Fprintln(r.out, r.hl.Error("Error: "+err.Error()))
}
