//
// parser.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/markkurossi/qsim/compiler/utils"
	"github.com/markkurossi/qsim/state"
)

var gateOps = map[byte]Op{
	'X': X,
	'H': H,
	'Z': Z,
	'U': Uf,
	'W': Swap,
	'M': Measure,
}

// Parser implements the circuit file parser.
type Parser struct {
	source   string
	logger   *utils.Logger
	in       io.Reader
	line     string
	lineno   int
	pos      int
	barriers []int
	prog     *Program
}

// NewParser creates a new circuit parser. The parse errors are
// reported to logger if it is not nil.
func NewParser(source string, logger *utils.Logger, in io.Reader) *Parser {
	return &Parser{
		source: source,
		logger: logger,
		in:     in,
	}
}

// Parse parses the circuit from source into the program prog.
func Parse(source string, in io.Reader, prog *Program) error {
	return NewParser(source, nil, in).Parse(prog)
}

// Parse parses the circuit into the program prog.
func (p *Parser) Parse(prog *Program) error {
	p.prog = prog

	scanner := bufio.NewScanner(p.in)
	for scanner.Scan() {
		p.line = strings.TrimRight(scanner.Text(), "\r")
		p.lineno++
		p.pos = 0

		if err := p.parseLine(); err != nil {
			if p.logger != nil {
				p.logger.Report(err, p.line)
			}
			return err
		}
	}
	return scanner.Err()
}

func (p *Parser) point(pos int) utils.Point {
	return utils.Point{
		Source: p.source,
		Line:   p.lineno,
		Col:    pos,
	}
}

func (p *Parser) errf(pos int, format string, a ...interface{}) error {
	return utils.Errorf(utils.StructuralError, p.point(pos), format, a...)
}

// peek returns the byte at the current position or 0 at the end of
// line.
func (p *Parser) peek() byte {
	return p.at(p.pos)
}

func (p *Parser) at(pos int) byte {
	if pos >= len(p.line) {
		return 0
	}
	return p.line[pos]
}

func (p *Parser) skipSpace() {
	for isSpace(p.peek()) {
		p.pos++
	}
}

// atEnd tests if the rest of the line is empty or a comment.
func (p *Parser) atEnd() bool {
	p.skipSpace()
	ch := p.peek()
	return ch == 0 || ch == '#'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\v' || ch == '\f'
}

func isLower(ch byte) bool {
	return ch >= 'a' && ch <= 'z'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func (p *Parser) parseLine() error {
	if p.atEnd() {
		return nil
	}
	ch := p.peek()
	switch {
	case isLower(ch):
		if isLower(p.at(p.pos + 1)) {
			return p.parseCommand()
		}
		return p.parseFunc()
	case ch == '-':
		return p.parseBarrier()
	default:
		return p.parseGate()
	}
}

func (p *Parser) parseFunc() error {
	text := p.line[p.pos:]
	if idx := strings.IndexByte(text, '#'); idx >= 0 {
		text = text[:idx]
	}
	f, err := p.prog.Funcs.Define(p.point(p.pos), text)
	if err != nil {
		return err
	}
	if p.logger != nil {
		p.logger.Printf("function %s: %d operations\n", f, len(f.Code.Ops))
	}
	return nil
}

// parseRange parses a qubit index or an inclusive range of qubit
// indices a..b.
func (p *Parser) parseRange() (start, stop, pos int, err error) {
	pos = p.pos
	start = int(p.peek() - '0')
	stop = start
	p.pos++
	p.skipSpace()

	if p.peek() == '.' && p.at(p.pos+1) == '.' {
		p.pos += 2
		p.skipSpace()
		if !isDigit(p.peek()) {
			return 0, 0, 0, p.errf(p.pos, "missing index at end of range")
		}
		stop = int(p.peek() - '0')
		if stop < start {
			return 0, 0, 0, p.errf(p.pos,
				"end index cannot be smaller than start index")
		}
		p.pos++
	}
	return
}

// parseQubits parses a list of qubits and qubit ranges. The dup
// argument formats the error message for duplicate qubits.
func (p *Parser) parseQubits(dup string) ([]int, state.Mask, error) {
	var bits []int
	var mask state.Mask

	for {
		p.skipSpace()
		if !isDigit(p.peek()) {
			return bits, mask, nil
		}
		start, stop, pos, err := p.parseRange()
		if err != nil {
			return nil, 0, err
		}
		for q := start; q <= stop; q++ {
			if mask&state.Bit(q) != 0 {
				return nil, 0, p.errf(pos, dup, q)
			}
			mask |= state.Bit(q)
			bits = append(bits, q)
		}
	}
}

func (p *Parser) parseGate() error {
	start := p.pos
	op, ok := gateOps[p.peek()]
	if !ok {
		return p.errf(p.pos,
			"unknown gate '%c': valid gates are X, H, Z, W, M, U<f>",
			p.peek())
	}
	p.pos++

	g := &Gate{
		Op:    op,
		Point: p.point(start),
	}
	if op == Uf {
		name := p.peek()
		if name < 'a' || name >= 'a'+utils.NumFuncs {
			return p.errf(p.pos, "expected function name")
		}
		g.Func = p.prog.Funcs.Lookup(name)
		if g.Func == nil {
			return p.errf(p.pos, "function '%c' not defined", name)
		}
		p.pos++
	}

	bits, mask, err := p.parseQubits("duplicate qubit '%d'")
	if err != nil {
		return err
	}
	g.Bits = bits

	switch op {
	case Uf:
		if len(bits) != g.Func.Argc()+1 {
			return p.errf(p.pos, "gate U%c takes %d qubits: %d given",
				g.Func.Name, g.Func.Argc()+1, len(bits))
		}
	case Swap:
		if len(bits) != 2 {
			return p.errf(p.pos, "gate W takes 2 qubits: %d given", len(bits))
		}
	default:
		if len(bits) == 0 {
			return p.errf(p.pos, "gate %s needs at least one qubit", op)
		}
	}

	p.skipSpace()
	if p.peek() == ':' {
		p.pos++
		ctrl, err := p.parseControls(mask)
		if err != nil {
			return err
		}
		if op == Measure && ctrl != 0 {
			return p.errf(start, "measurement cannot be controlled")
		}
		g.Ctrl = ctrl
	}
	if !p.atEnd() {
		return p.errf(p.pos, "unexpected symbol '%c'", p.peek())
	}

	switch op {
	case X, H, Z, Measure:
		// One gate per target qubit.
		for _, b := range bits {
			gate := *g
			gate.Bits = []int{b}
			if err := p.prog.Add(&gate); err != nil {
				return err
			}
		}
		return nil

	default:
		return p.prog.Add(g)
	}
}

func (p *Parser) parseControls(bits state.Mask) (state.Mask, error) {
	var ctrl state.Mask
	for {
		p.skipSpace()
		if !isDigit(p.peek()) {
			return ctrl, nil
		}
		start, stop, pos, err := p.parseRange()
		if err != nil {
			return 0, err
		}
		for q := start; q <= stop; q++ {
			if ctrl&state.Bit(q) != 0 {
				return 0, p.errf(pos, "duplicate control qubit '%d'", q)
			}
			if bits&state.Bit(q) != 0 {
				return 0, p.errf(pos, "qubit '%d' used as target and control",
					q)
			}
			ctrl |= state.Bit(q)
		}
	}
}

var commands = map[string]Op{
	"draw":  Draw,
	"pause": Pause,
	"pfunc": PrintFunction,
	"state": PrintState,
	"prob":  PrintProbabilities,
}

func (p *Parser) parseCommand() error {
	start := p.pos
	for isLower(p.peek()) {
		p.pos++
	}
	name := p.line[start:p.pos]
	op, ok := commands[name]
	if !ok || (p.peek() != 0 && !isSpace(p.peek()) && p.peek() != '#') {
		return p.errf(start,
			"unknown command '%s': available commands are draw, pause, pfunc, state, prob",
			p.line[start:])
	}
	g := &Gate{
		Op:    op,
		Point: p.point(start),
	}

	switch op {
	case PrintFunction:
		p.skipSpace()
		fname := p.peek()
		if !isLower(fname) {
			return p.errf(p.pos, "expected function name")
		}
		g.Func = p.prog.Funcs.Lookup(fname)
		if g.Func == nil {
			return p.errf(p.pos, "unknown function '%c'", fname)
		}
		p.pos++

	case PrintState, PrintProbabilities:
		_, mask, err := p.parseQubits("duplicate qubit '%d'")
		if err != nil {
			return err
		}
		if mask == 0 {
			mask = state.All
		}
		g.Ctrl = mask
	}

	if !p.atEnd() {
		return p.errf(p.pos, "unexpected token '%c'", p.peek())
	}
	return p.prog.Add(g)
}

func (p *Parser) parseBarrier() error {
	start := p.pos
	for p.peek() == '-' {
		p.pos++
	}
	g := &Gate{
		Point: p.point(start),
	}
	if isLower(p.peek()) {
		g.Name = p.peek()
		p.pos++
	}
	if ch := p.peek(); ch != 0 && !isSpace(ch) && ch != '#' {
		return p.errf(p.pos, "barrier name must be one letter")
	}

	var repeat int
	p.skipSpace()
	if isDigit(p.peek()) {
		pos := p.pos
		for ch := p.peek(); ch != 0 && !isSpace(ch) && ch != '#'; ch = p.peek() {
			p.pos++
		}
		v, err := strconv.ParseInt(p.line[pos:p.pos], 0, 64)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
				return p.errf(pos, "barrier repeat is too big: maximum value is %d",
					math.MaxInt32)
			}
			return p.errf(pos, "barrier repeat must be an integer")
		}
		if v > math.MaxInt32 {
			return p.errf(pos, "barrier repeat is too big: maximum value is %d",
				math.MaxInt32)
		}
		repeat = int(v)
		if !p.atEnd() {
			return p.errf(p.pos, "unexpected token following barrier repeat")
		}
	} else if !p.atEnd() {
		return p.errf(p.pos, "barrier repeat must be an integer")
	}

	idx := len(p.prog.Gates)

	// Unwind the open barriers to the barrier with the same name.
	for i := len(p.barriers) - 1; i >= 0; i-- {
		if p.prog.Gates[p.barriers[i]].Name == g.Name {
			p.barriers = p.barriers[:i+1]
			break
		}
	}
	if len(p.barriers) > 0 {
		top := p.prog.Gates[p.barriers[len(p.barriers)-1]]
		if top.Name == g.Name {
			if err := p.prog.Add(g); err != nil {
				return err
			}
			top.End = idx
			top.Repeat = repeat
			if top.Repeat == 0 {
				top.Repeat = 1
			}
			g.Op = BarrierEnd
			p.barriers[len(p.barriers)-1] = idx
			return nil
		}
	}
	if repeat != 0 {
		return p.errf(start, "missing start of repeat block")
	}
	g.Op = BarrierBegin
	p.barriers = append(p.barriers, idx)
	return p.prog.Add(g)
}
