//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package utils

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Logger implements the simulator logging facility.
type Logger struct {
	out     io.Writer
	verbose bool
}

// NewLogger creates a new logger outputting to the argument io.Writer.
func NewLogger(out io.Writer) *Logger {
	return &Logger{
		out: out,
	}
}

// SetVerbose enables or disables verbose messages.
func (l *Logger) SetVerbose(verbose bool) {
	l.verbose = verbose
}

// Errorf logs an error message.
func (l *Logger) Errorf(locator Locator, format string,
	a ...interface{}) error {
	loc := locator.Location()
	msg := fmt.Sprintf(format, a...)
	if len(msg) > 0 && msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	if loc.Undefined() {
		if len(loc.Source) > 0 {
			fmt.Fprintf(l.out, "%s: %s", loc.Source, msg)
		} else {
			fmt.Fprint(l.out, msg)
		}
	} else {
		fmt.Fprintf(l.out, "%s: %s", loc, msg)
	}

	idx := strings.IndexRune(msg, '\n')
	if idx > 0 {
		msg = msg[:idx]
	}
	return errors.New(msg)
}

// Warningf logs a warning message.
func (l *Logger) Warningf(locator Locator, format string,
	a ...interface{}) {
	loc := locator.Location()
	msg := fmt.Sprintf(format, a...)
	if len(msg) > 0 && msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	if loc.Undefined() {
		if len(loc.Source) > 0 {
			fmt.Fprintf(l.out, "%s: warning: %s", loc.Source, msg)
		} else {
			fmt.Fprintf(l.out, "warning: %s", msg)
		}
	} else {
		fmt.Fprintf(l.out, "%s: warning: %s", loc, msg)
	}
}

// Printf logs a verbose message. The message is dropped unless the
// logger is verbose.
func (l *Logger) Printf(format string, a ...interface{}) {
	if !l.verbose {
		return
	}
	fmt.Fprintf(l.out, format, a...)
}

// Report logs the error err. If err carries an input position, the
// offending input line is printed with a caret under the error
// column.
func (l *Logger) Report(err error, line string) {
	var e *Error
	if !errors.As(err, &e) || e.Point.Undefined() || len(line) == 0 {
		fmt.Fprintf(l.out, "%s\n", err)
		return
	}
	var indicator []rune
	for i, r := range []rune(line) {
		if i >= e.Point.Col {
			break
		}
		if r == '\t' {
			indicator = append(indicator, '\t')
		} else {
			indicator = append(indicator, ' ')
		}
	}
	indicator = append(indicator, '^')
	l.Errorf(e.Point, "%s: %s\n%s\n%s\n", e.Kind, e.Msg, line,
		string(indicator))
}
