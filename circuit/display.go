//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bufio"
	"fmt"
	"io"

	"github.com/markkurossi/qsim/state"
	"github.com/markkurossi/tabulate"
)

// Printer implements Display for terminals.
type Printer struct {
	out   io.Writer
	in    *bufio.Reader
	color bool
}

// NewPrinter creates a new printer that writes its output to out and
// reads the pause acknowledgements from in. The color argument
// enables the colored circuit diagrams.
func NewPrinter(out io.Writer, in io.Reader, color bool) *Printer {
	return &Printer{
		out:   out,
		in:    bufio.NewReader(in),
		color: color,
	}
}

// Pause implements Display.Pause.
func (p *Printer) Pause(m *Machine, g *Gate) error {
	fmt.Fprintf(p.out, "Paused. Press Enter to continue...")
	_, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return err
	}
	fmt.Fprintln(p.out)
	return nil
}

// Draw implements Display.Draw.
func (p *Printer) Draw(m *Machine, g *Gate) error {
	r := NewRenderer(p.color)
	if err := r.Layout(m.Program.Gates); err != nil {
		return err
	}
	r.Print(p.out)
	fmt.Fprintln(p.out)
	return nil
}

// PrintState implements Display.PrintState.
func (p *Printer) PrintState(m *Machine, g *Gate) error {
	p.printAmps(m, g, "Amplitude", false)
	return nil
}

// PrintProbabilities implements Display.PrintProbabilities.
func (p *Printer) PrintProbabilities(m *Machine, g *Gate) error {
	p.printAmps(m, g, "Probability", true)
	return nil
}

func (p *Printer) printAmps(m *Machine, g *Gate, label string, probs bool) {
	snap := m.State.Marginal(g.Ctrl, probs)
	qubits := g.Ctrl.Qubits()

	tab := tabulate.New(tabulate.UnicodeLight)
	for _, q := range qubits {
		tab.Header(fmt.Sprintf("q%d", q)).SetAlign(tabulate.MC)
	}
	tab.Header(label).SetAlign(tabulate.ML)
	tab.Header("Value").SetAlign(tabulate.MR)

	for idx, a := range snap {
		if state.Mask(idx)&^g.Ctrl != 0 || a.IsZero() {
			continue
		}
		row := tab.Row()
		for _, q := range qubits {
			if state.Mask(idx)&state.Bit(q) != 0 {
				row.Column("1")
			} else {
				row.Column("0")
			}
		}
		row.Column(a.String())
		row.Column(fmt.Sprintf("%.6f", a.Float64()))
	}
	tab.Print(p.out)
	fmt.Fprintln(p.out)
}

// PrintFunction implements Display.PrintFunction.
func (p *Printer) PrintFunction(m *Machine, g *Gate) error {
	f := g.Func
	fmt.Fprintf(p.out, "Function %c:\n", f.Name)

	tab := tabulate.New(tabulate.UnicodeLight)
	for i := 0; i < f.Argc(); i++ {
		tab.Header(fmt.Sprintf("%c", 'a'+i)).SetAlign(tabulate.MC)
	}
	tab.Header(fmt.Sprintf("%c(…)", f.Name)).SetAlign(tabulate.MR)

	for pattern, v := range f.Table {
		row := tab.Row()
		for _, bit := range f.Pattern(pattern) {
			row.Column(string(bit))
		}
		row.Column(fmt.Sprintf("%d", v))
	}
	tab.Print(p.out)
	fmt.Fprintln(p.out)
	return nil
}
