//
// main.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/markkurossi/qsim/circuit"
	"github.com/markkurossi/qsim/compiler/utils"
	"github.com/mattn/go-isatty"
)

func main() {
	fVerbose := flag.Bool("v", false, "Verbose output")
	fSeed := flag.String("seed", "", "Measurement PRG seed as hex string")
	fColor := flag.String("color", "auto",
		"Colorize circuit diagrams: auto, always, never")
	fTiming := flag.Bool("timing", false, "Print timing report")
	fParse := flag.Bool("n", false, "Parse the circuit and print its gates")
	flag.Parse()

	logger := utils.NewLogger(os.Stderr)
	logger.SetVerbose(*fVerbose)

	if len(flag.Args()) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: qsim [flags] <file>\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	params := utils.NewParams()
	params.Verbose = *fVerbose
	params.Diagnostics = *fParse
	params.Timing = *fTiming

	if len(*fSeed) > 0 {
		seed, err := hex.DecodeString(*fSeed)
		if err != nil {
			logger.Errorf(utils.Point{}, "invalid seed '%s': %s", *fSeed, err)
			os.Exit(1)
		}
		params.Seed = seed
	}

	switch *fColor {
	case "auto":
		params.Color = isatty.IsTerminal(os.Stdout.Fd())
	case "always":
		params.Color = true
	case "never":
		params.Color = false
	default:
		logger.Errorf(utils.Point{}, "invalid color mode '%s'", *fColor)
		os.Exit(1)
	}

	if err := run(params, logger, flag.Args()[0]); err != nil {
		os.Exit(1)
	}
}

func run(params *utils.Params, logger *utils.Logger, file string) error {
	timing := circuit.NewTiming()

	f, err := os.Open(file)
	if err != nil {
		return logger.Errorf(utils.Point{}, "%s", err)
	}
	defer f.Close()

	prog := circuit.NewProgram(params.MaxGates)
	err = circuit.NewParser(file, logger, f).Parse(prog)
	if err != nil {
		return err
	}
	timing.Sample("Parse", []string{fmt.Sprintf("%d", len(prog.Gates))})
	logger.Printf("%s: %d gates, %d functions\n", file, len(prog.Gates),
		len(prog.Funcs.Functions()))

	if params.Diagnostics {
		for _, fn := range prog.Funcs.Functions() {
			fmt.Fprintf(params.Output, "function %s:\n", fn)
			for idx, op := range fn.Code.Ops {
				fmt.Fprintf(params.Output, "  $%d\t%s\n", idx, op)
			}
		}
		for idx, g := range prog.Gates {
			fmt.Fprintf(params.Output, "%3d\t%s\t%s\n", idx, g.Point, g)
		}
		return nil
	}

	printer := circuit.NewPrinter(params.Output, params.Input, params.Color)
	m, err := circuit.NewMachine(params, logger, prog, printer)
	if err != nil {
		return logger.Errorf(utils.Point{}, "%s", err)
	}
	timing.Sample("Init", []string{""})

	err = m.Execute()
	if err != nil {
		logger.Report(err, "")
		return err
	}
	timing.RunSample("Run", &m.Stats)

	if params.Timing {
		timing.Print(params.Output)
	}
	return nil
}
