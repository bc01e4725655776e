//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package utils

import (
	"errors"
	"fmt"
)

// ErrorKind classifies simulator errors.
type ErrorKind int

// Error kinds.
const (
	// StructuralError reports malformed input: syntax errors, unknown
	// gates or commands, wrong argument counts, duplicate qubits, and
	// capacity overflows.
	StructuralError ErrorKind = iota
	// ArithmeticError reports division or modulo by zero inside an
	// oracle expression.
	ArithmeticError
	// InvariantViolation reports gate arguments that break the gate
	// engine preconditions.
	InvariantViolation
)

var errorKinds = map[ErrorKind]string{
	StructuralError:    "structural error",
	ArithmeticError:    "arithmetic error",
	InvariantViolation: "invariant violation",
}

func (k ErrorKind) String() string {
	name, ok := errorKinds[k]
	if ok {
		return name
	}
	return fmt.Sprintf("{ErrorKind %d}", k)
}

// Error is a classified error with an optional input position.
type Error struct {
	Kind  ErrorKind
	Point Point
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e.Point.Undefined() {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Point, e.Msg)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf creates a new error of the argument kind.
func Errorf(kind ErrorKind, loc Point, format string, a ...interface{}) error {
	return &Error{
		Kind:  kind,
		Point: loc,
		Msg:   fmt.Sprintf(format, a...),
	}
}

// Wrapf creates a new error of the argument kind wrapping the cause
// err.
func Wrapf(kind ErrorKind, loc Point, err error, format string,
	a ...interface{}) error {
	return &Error{
		Kind:  kind,
		Point: loc,
		Msg:   fmt.Sprintf(format, a...),
		Err:   err,
	}
}

// IsKind tests if err is an Error of the argument kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// Locate returns err positioned at loc unless err already carries an
// input position.
func Locate(err error, loc Point) error {
	var e *Error
	if !errors.As(err, &e) || !e.Point.Undefined() {
		return err
	}
	n := *e
	n.Point = loc
	return &n
}
