//
// render.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/markkurossi/qsim/compiler/utils"
	"github.com/markkurossi/qsim/state"
	"github.com/markkurossi/text/superscript"
)

// MaxColumns specifies the maximum width of circuit diagrams.
const MaxColumns = 512

type cellKind byte

const (
	cellNone cellKind = iota
	cellCtrl
	cellX
	cellH
	cellZ
	cellSwap
	cellArg
	cellMeasure
	cellBarrier
)

type cell struct {
	kind cellKind
	// top and bottom specify the vertical wires to the neighbour
	// rows.
	top    bool
	bottom bool
	past   bool
	label  string
}

type column struct {
	cells      [state.NumQubits]cell
	annotation string
}

// Renderer lays out circuits as text diagrams. The repeat blocks are
// unrolled and the gates already executed are highlighted.
type Renderer struct {
	cols    []*column
	next    [state.NumQubits]int
	count   []int
	past    func(a ...interface{}) string
	outcome func(a ...interface{}) string
}

// NewRenderer creates a new renderer. The color argument enables
// colored output.
func NewRenderer(colored bool) *Renderer {
	r := &Renderer{
		past:    fmt.Sprint,
		outcome: fmt.Sprint,
	}
	if colored {
		past := color.New(color.FgBlue, color.Bold)
		past.EnableColor()
		outcome := color.New(color.FgGreen, color.Bold)
		outcome.EnableColor()

		r.past = past.SprintFunc()
		r.outcome = outcome.SprintFunc()
	}
	return r
}

// Layout assigns the gates to diagram columns.
func (r *Renderer) Layout(gates []*Gate) error {
	r.cols = nil
	r.next = [state.NumQubits]int{}
	r.count = make([]int, len(gates))
	return r.layout(gates, 0)
}

func (r *Renderer) layout(gates []*Gate, start int) error {
	for i := start; i < len(gates); i++ {
		g := gates[i]
		r.count[i]++
		past := g.Count >= r.count[i]

		switch g.Op {
		case BarrierEnd:
			return nil

		case BarrierBegin:
			var name string
			if g.Name != 0 {
				name = string(g.Name)
			}
			if err := r.barrier(past, name); err != nil {
				return err
			}
			for gates[i].End != 0 {
				end := gates[i].End
				for j := 0; j < gates[i].Repeat; j++ {
					if err := r.layout(gates, i+1); err != nil {
						return err
					}
					var ann string
					if gates[i].Repeat > 1 {
						ann = superscript.Itoa(j + 1)
					}
					err := r.barrier(gates[end].Count >= r.count[end], ann)
					if err != nil {
						return err
					}
				}
				i = end
			}

		case X, H, Z, Swap, Uf, Measure:
			if err := r.gate(g, past); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) column(col int) (*column, error) {
	if col >= MaxColumns {
		return nil, utils.Errorf(utils.StructuralError, utils.Point{},
			"circuit is too big to draw: more than %d columns", MaxColumns)
	}
	for len(r.cols) <= col {
		r.cols = append(r.cols, new(column))
	}
	return r.cols[col], nil
}

func (r *Renderer) barrier(past bool, annotation string) error {
	var col int
	for _, n := range r.next {
		if n > col {
			col = n
		}
	}
	c, err := r.column(col)
	if err != nil {
		return err
	}
	c.annotation = annotation
	for q := range c.cells {
		c.cells[q] = cell{
			kind: cellBarrier,
			past: past,
		}
		r.next[q] = col + 1
	}
	return nil
}

func (r *Renderer) gate(g *Gate, past bool) error {
	kinds := make(map[int]cell)
	for _, q := range g.Ctrl.Qubits() {
		kinds[q] = cell{kind: cellCtrl}
	}
	for idx, b := range g.Bits {
		switch g.Op {
		case X:
			kinds[b] = cell{kind: cellX}
		case H:
			kinds[b] = cell{kind: cellH}
		case Z:
			kinds[b] = cell{kind: cellZ}
		case Swap:
			kinds[b] = cell{kind: cellSwap}
		case Uf:
			if idx+1 == len(g.Bits) {
				kinds[b] = cell{kind: cellX}
			} else {
				kinds[b] = cell{
					kind:  cellArg,
					label: string(g.Func.Name),
				}
			}
		case Measure:
			label := Unknown.String()
			if past {
				label = g.Outcome.String()
			}
			kinds[b] = cell{
				kind:  cellMeasure,
				label: label,
			}
		}
	}

	lo := state.NumQubits
	var hi int
	for q := range kinds {
		if q < lo {
			lo = q
		}
		if q > hi {
			hi = q
		}
	}
	var col int
	for q := lo; q <= hi; q++ {
		if r.next[q] > col {
			col = r.next[q]
		}
	}
	c, err := r.column(col)
	if err != nil {
		return err
	}
	for q := lo; q <= hi; q++ {
		cl := kinds[q]
		cl.top = q > lo
		cl.bottom = q < hi
		cl.past = past
		c.cells[q] = cl
		r.next[q] = col + 1
	}
	return nil
}

// Print prints the diagram to out.
func (r *Renderer) Print(out io.Writer) {
	rows := 1
	for _, c := range r.cols {
		for q, cl := range c.cells {
			if cl.kind != cellNone && cl.kind != cellBarrier && q+1 > rows {
				rows = q + 1
			}
		}
	}

	fmt.Fprint(out, "   =")
	for _, c := range r.cols {
		ann := c.annotation
		fmt.Fprintf(out, "=%s%s", ann,
			strings.Repeat("=", 3-utf8.RuneCountInString(ann)))
	}
	fmt.Fprintln(out)

	for q := 0; q < rows; q++ {
		if q > 0 {
			fmt.Fprint(out, "    ")
			for _, c := range r.cols {
				cl := c.cells[q]
				if cl.top || cl.kind == cellBarrier {
					fmt.Fprintf(out, " %s  ", r.paint(cl, "|"))
				} else {
					fmt.Fprint(out, "    ")
				}
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "q%d -", q)
		for _, c := range r.cols {
			fmt.Fprint(out, r.cell(c.cells[q]))
		}
		fmt.Fprintln(out)
	}

	fmt.Fprint(out, "   =")
	for range r.cols {
		fmt.Fprint(out, "====")
	}
	fmt.Fprintln(out)
}

func (r *Renderer) paint(cl cell, s string) string {
	if !cl.past {
		return s
	}
	return r.past(s)
}

func (r *Renderer) cell(cl cell) string {
	switch cl.kind {
	case cellCtrl:
		return "-" + r.paint(cl, "o") + "--"
	case cellX:
		return r.paint(cl, "(+)") + "-"
	case cellH:
		return r.paint(cl, "[H]") + "-"
	case cellZ:
		return r.paint(cl, "[Z]") + "-"
	case cellSwap:
		return "-" + r.paint(cl, "X") + "--"
	case cellArg:
		return r.paint(cl, "["+cl.label+"]") + "-"
	case cellMeasure:
		label := cl.label
		if cl.label != Unknown.String() {
			label = r.outcome(label)
		}
		return r.paint(cl, "[") + label + r.paint(cl, "]") + "-"
	case cellBarrier:
		return "-" + r.paint(cl, "|") + "--"
	default:
		if cl.top || cl.bottom {
			return "-" + r.paint(cl, "|") + "--"
		}
		return "----"
	}
}
