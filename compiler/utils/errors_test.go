//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package utils

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorKind(t *testing.T) {
	cause := errors.New("division by zero")
	err := Wrapf(ArithmeticError, Point{Line: 2, Col: 4}, cause,
		"division by zero in function %c", 'c')
	if !IsKind(err, ArithmeticError) {
		t.Errorf("IsKind(ArithmeticError) failed")
	}
	if IsKind(err, StructuralError) {
		t.Errorf("IsKind(StructuralError) succeeded")
	}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is failed to find the cause")
	}
	wrapped := fmt.Errorf("compile: %w", err)
	if !IsKind(wrapped, ArithmeticError) {
		t.Errorf("IsKind failed for wrapped error")
	}
	if err.Error() != "2:4: division by zero in function c" {
		t.Errorf("unexpected message: %s", err)
	}
}

func TestLocate(t *testing.T) {
	loc := Point{Source: "a.qc", Line: 7, Col: 2}

	err := Locate(Errorf(InvariantViolation, Point{}, "invalid qubit"), loc)
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("located error is not *Error")
	}
	if e.Point != loc || e.Kind != InvariantViolation {
		t.Errorf("unexpected error: %v", e)
	}

	orig := Point{Line: 1, Col: 3}
	err = Locate(Errorf(StructuralError, orig, "unexpected"), loc)
	if !errors.As(err, &e) || e.Point != orig {
		t.Errorf("positioned error was moved: %v", err)
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	err := Errorf(StructuralError, Point{Source: "a.qc", Line: 1, Col: 2},
		"unknown gate")
	logger.Report(err, "  Q 1")

	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("short report: %q", buf.String())
	}
	if lines[0] != "a.qc:1:2: structural error: unknown gate" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != "  Q 1" {
		t.Errorf("unexpected source line: %q", lines[1])
	}
	if lines[2] != "  ^" {
		t.Errorf("unexpected indicator: %q", lines[2])
	}
}

func TestVerbose(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	logger.Printf("hidden\n")
	if buf.Len() != 0 {
		t.Errorf("non-verbose logger printed %q", buf.String())
	}
	logger.SetVerbose(true)
	logger.Printf("shown\n")
	if buf.String() != "shown\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}
