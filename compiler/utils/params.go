//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package utils

import (
	"io"
	"os"
)

// Simulator limits.
const (
	// MaxGates specifies the circuit capacity in gate descriptors.
	MaxGates = 128
	// MaxFuncOps specifies the maximum number of operations in one
	// compiled oracle function.
	MaxFuncOps = 128
)

// Params specify simulator parameters.
type Params struct {
	Verbose bool

	// Diagnostics dumps the parsed gate list instead of running it.
	Diagnostics bool

	// Color enables colored circuit diagrams.
	Color bool

	// Timing prints a profiling report after the run.
	Timing bool

	// Seed seeds the measurement random source. An empty seed selects
	// a random seed.
	Seed []byte

	// MaxGates specifies the circuit capacity.
	MaxGates int

	// Input provides the data that pause commands wait for.
	Input io.Reader

	// Output receives printed states, probabilities, functions, and
	// diagrams.
	Output io.Writer
}

// NewParams returns new simulator params object, initialized with the
// default values.
func NewParams() *Params {
	return &Params{
		MaxGates: MaxGates,
		Input:    os.Stdin,
		Output:   os.Stdout,
	}
}

// Machine dimensions.
const (
	// NumQubits specifies the number of simulated qubits.
	NumQubits = 10
	// NumFuncs specifies the number of oracle functions. The functions
	// are named 'a', 'b', ...
	NumFuncs = 8
)
