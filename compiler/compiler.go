//
// compiler.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

// Package compiler implements the oracle function compiler. The
// compiler translates integer expressions over the argument bits into
// lookup tables for the oracle gate.
package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/markkurossi/qsim/compiler/utils"
)

// Function is a compiled oracle function.
type Function struct {
	Name  byte
	Point utils.Point
	Code  *Code
	// Table holds the function value for each argument pattern.
	Table []int32
}

// Argc returns the number of function arguments.
func (f *Function) Argc() int {
	return f.Code.Argc
}

// Pattern formats the argument pattern as a bit string, the first
// argument first.
func (f *Function) Pattern(pattern int) string {
	var sb strings.Builder
	for i := f.Argc() - 1; i >= 0; i-- {
		if pattern&(1<<i) != 0 {
			sb.WriteRune('1')
		} else {
			sb.WriteRune('0')
		}
	}
	return sb.String()
}

func (f *Function) String() string {
	return fmt.Sprintf("%c/%d", f.Name, f.Argc())
}

// Compile compiles the function definition text.
func Compile(text string) (*Function, error) {
	return CompileAt(utils.Point{Line: 1}, text)
}

// CompileAt compiles the function definition text located at loc.
func CompileAt(loc utils.Point, text string) (*Function, error) {
	f, err := NewParser(loc, text).Parse()
	if err != nil {
		return nil, err
	}
	f.Table = make([]int32, 1<<f.Argc())
	for pattern := range f.Table {
		v, err := f.Code.Eval(pattern)
		if err != nil {
			var e *utils.Error
			if errors.As(err, &e) && e.Kind == utils.ArithmeticError {
				n := *e
				n.Msg = fmt.Sprintf("%s in function %c", e.Msg, f.Name)
				return nil, &n
			}
			return nil, err
		}
		f.Table[pattern] = v
	}
	return f, nil
}

// Registry holds the defined oracle functions.
type Registry struct {
	funcs [utils.NumFuncs]*Function
}

// NewRegistry creates a new empty function registry.
func NewRegistry() *Registry {
	return new(Registry)
}

// Define compiles the function definition text and registers the
// function. Failed definitions are not registered.
func (r *Registry) Define(loc utils.Point, text string) (*Function, error) {
	f, err := CompileAt(loc, text)
	if err != nil {
		return nil, err
	}
	idx := f.Name - 'a'
	if r.funcs[idx] != nil {
		return nil, utils.Errorf(utils.StructuralError, f.Point,
			"function %c already exists", f.Name)
	}
	r.funcs[idx] = f
	return f, nil
}

// Lookup returns the function name or nil if the function is not
// defined.
func (r *Registry) Lookup(name byte) *Function {
	if name < 'a' || name >= 'a'+utils.NumFuncs {
		return nil
	}
	return r.funcs[name-'a']
}

// Functions returns the defined functions in name order.
func (r *Registry) Functions() []*Function {
	var result []*Function
	for _, f := range r.funcs {
		if f != nil {
			result = append(result, f)
		}
	}
	return result
}
