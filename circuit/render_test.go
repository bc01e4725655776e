//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bytes"
	"testing"

	"github.com/markkurossi/qsim/compiler/utils"
)

func render(t *testing.T, prog *Program, colored bool) string {
	r := NewRenderer(colored)
	if err := r.Layout(prog.Gates); err != nil {
		t.Fatalf("Layout failed: %v", err)
	}
	var buf bytes.Buffer
	r.Print(&buf)
	return buf.String()
}

var renderTests = []struct {
	data     string
	expected string
}{
	{
		data: "H 0\nX 1 : 0\n",
		expected: "   =========\n" +
			"q0 -[H]--o--\n" +
			"         |  \n" +
			"q1 -----(+)-\n" +
			"   =========\n",
	},
	{
		data: "-a\nX 0\n-a 2\n",
		expected: "   ==a=======¹=======²==\n" +
			"q0 --|--(+)--|--(+)--|--\n" +
			"   =====================\n",
	},
	{
		data: "f = a\nW 0 2\nUf 0 1\nM 1\n",
		expected: "   =============\n" +
			"q0 --X--[f]-----\n" +
			"     |   |      \n" +
			"q1 --|--(+)-[?]-\n" +
			"     |          \n" +
			"q2 --X----------\n" +
			"   =============\n",
	},
}

func TestRender(t *testing.T) {
	for _, test := range renderTests {
		out := render(t, parse(t, test.data), false)
		if out != test.expected {
			t.Errorf("%q: got\n%s\nexpected\n%s", test.data, out,
				test.expected)
		}
	}
}

func TestRenderPast(t *testing.T) {
	prog := parse(t, "H 0\nM 0\n")
	m := NewMachineWithRand(utils.NewParams(), nil, prog, new(recorder),
		constReader(0))
	if err := m.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	out := render(t, prog, false)
	expected := "   =========\n" +
		"q0 -[H]-[1]-\n" +
		"   =========\n"
	if out != expected {
		t.Errorf("got\n%s\nexpected\n%s", out, expected)
	}

	colored := render(t, prog, true)
	if colored == out || !bytes.Contains([]byte(colored), []byte("\x1b[")) {
		t.Errorf("colored output is not colored: %q", colored)
	}
}

func TestRenderTooBig(t *testing.T) {
	prog := parse(t, "-a\nX 0\n-a 1000\n")
	err := NewRenderer(false).Layout(prog.Gates)
	if !utils.IsKind(err, utils.StructuralError) {
		t.Errorf("expected structural error, got %v", err)
	}
}
