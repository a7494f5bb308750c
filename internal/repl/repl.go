// Package repl implements the interactive driver: a line-at-a-time
// loop over stdin, dispatching `.`-prefixed meta commands and SQL
// statements, printing results, and routing `.exit` through a clean
// catalog shutdown. Grounded on the teacher's cmd/godb-server/main.go
// (runREPL, handleMetaCommand, printResultSet), narrowed to spec.md
// §6.1's meta-command surface.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/askorykh/pagedb/internal/catalog"
	"github.com/askorykh/pagedb/internal/dblog"
	"github.com/askorykh/pagedb/internal/engine"
	"github.com/askorykh/pagedb/internal/frontend"
	"github.com/askorykh/pagedb/internal/storage/row"
)

// Prompt is printed before every line read from In.
const Prompt = "db > "

// REPL drives one interactive session over a loaded schema.
type REPL struct {
	Schema *catalog.Schema
	In     io.Reader
	Out    io.Writer
}

// New builds a REPL over an already-open schema.
func New(schema *catalog.Schema, in io.Reader, out io.Writer) *REPL {
	return &REPL{Schema: schema, In: in, Out: out}
}

// Run reads statements until EOF or a clean .exit, returning the
// process exit code: 0 for a clean shutdown, non-zero for a fatal
// storage error encountered along the way.
func (r *REPL) Run() int {
	scanner := bufio.NewScanner(r.In)

	for {
		fmt.Fprint(r.Out, Prompt)
		if !scanner.Scan() {
			return 0
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if line == ".exit" {
				return r.shutdown()
			}
			fmt.Fprintf(r.Out, "Unrecognized command '%s'\n", line)
			continue
		}

		if code, fatal := r.executeLine(line); fatal {
			return code
		}
	}
}

func (r *REPL) shutdown() int {
	if err := catalog.Close(r.Schema); err != nil {
		dblog.Logger.WithError(err).Error("shutdown failed")
		return 1
	}
	return 0
}

// executeLine parses and executes one statement, printing its outcome.
// The returned bool is true only when a fatal storage error occurred,
// signaling Run to abort with the returned exit code.
func (r *REPL) executeLine(line string) (int, bool) {
	stmt, ferr := frontend.Parse(line, r.Schema)
	if ferr != nil {
		fmt.Fprintln(r.Out, frontendMessage(ferr, line))
		return 0, false
	}

	result, err := engine.Execute(r.Schema, stmt)
	if err != nil {
		if err == engine.ErrTableFull {
			fmt.Fprintln(r.Out, "Error: Table full.")
			return 0, false
		}

		dblog.Logger.WithError(err).Error("fatal storage error")
		fmt.Fprintln(r.Out, "Internal error.")
		return 1, true
	}

	printResult(r.Out, result)
	return 0, false
}

// frontendMessage maps a FrontendError's Kind to the exact strings
// spec.md §6.1 requires.
func frontendMessage(ferr *frontend.FrontendError, line string) string {
	switch ferr.Kind {
	case frontend.NegativeId:
		return "ID must be positive."
	case frontend.StringTooLong:
		return "String is too long."
	case frontend.UnknownTable:
		return "Table not found."
	case frontend.UnknownStatement:
		return fmt.Sprintf("Unrecognized keyword at start of '%s'.", line)
	case frontend.Internal:
		return "Internal error."
	default: // Syntax, UnknownColumn
		return "Syntax error."
	}
}

// printResult writes a SELECT's rows as "(v1, v2, ...)" lines followed
// by "Executed.", or just "Executed." for INSERT/UPDATE/DELETE.
func printResult(out io.Writer, result *engine.Result) {
	if result != nil {
		for _, values := range result.Rows {
			parts := make([]string, len(values))
			for i, v := range values {
				parts[i] = formatValue(v)
			}
			fmt.Fprintf(out, "(%s)\n", strings.Join(parts, ", "))
		}
	}
	fmt.Fprintln(out, "Executed.")
}

// formatValue renders one column value the way the teacher's
// printResultSet/formatValue does: integers and strings print as-is,
// reals without a forced precision.
func formatValue(v row.Value) string {
	switch v.Type() {
	case catalog.Integer:
		return strconv.FormatInt(int64(v.Int()), 10)
	case catalog.Real:
		return strconv.FormatFloat(v.Real(), 'g', -1, 64)
	default: // catalog.Varchar
		return v.Str()
	}
}
