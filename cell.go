package spreadsheet

import (
	"strconv"
	"strings"

	"github.com/arjunv/go-spreadsheet/formula"
	"github.com/arjunv/go-spreadsheet/position"
)

// FormulaSign and EscapeSign are the prefix characters that select a cell's
// content kind when it is set from text.
const (
	FormulaSign byte = '='
	EscapeSign  byte = '\''
)

type contentKind int

const (
	contentEmpty contentKind = iota
	contentText
	contentFormula
)

// Cell is one grid slot: a content variant, its cached value, and its
// parent/child edges in the dependency graph. Content never changes after
// construction — SetCell replaces a cell's content by building a new Cell
// and transferring the parents set, never by mutating kind/text/ast in
// place.
type Cell struct {
	sheet *Sheet
	pos   position.Position

	kind     contentKind
	text     string
	ast      *formula.Formula
	children []position.Position

	parents map[position.Position]struct{}

	hasCache bool
	cache    Value
}

func newCell(sheet *Sheet, pos position.Position, text string) (*Cell, error) {
	c := &Cell{
		sheet:   sheet,
		pos:     pos,
		parents: make(map[position.Position]struct{}),
	}

	switch {
	case text == "":
		c.kind = contentEmpty
	case len(text) > 1 && text[0] == FormulaSign:
		ast, err := formula.Parse(text[1:])
		if err != nil {
			return nil, newFormulaException(text, err)
		}
		c.kind = contentFormula
		c.ast = ast
		c.children = ast.ReferencedCells()
	default:
		// Plain text, or escaped text (leading EscapeSign): stored
		// verbatim. The escape is stripped only when rendering the value.
		c.kind = contentText
		c.text = text
	}

	return c, nil
}

func newEmptyPlaceholder(sheet *Sheet, pos position.Position) *Cell {
	return &Cell{
		sheet:   sheet,
		pos:     pos,
		kind:    contentEmpty,
		parents: make(map[position.Position]struct{}),
	}
}

// IsEmpty reports whether this cell's content is the Empty variant.
func (c *Cell) IsEmpty() bool { return c.kind == contentEmpty }

// GetReferencedCells returns the positions this cell's content depends on.
func (c *Cell) GetReferencedCells() []position.Position {
	out := make([]position.Position, len(c.children))
	copy(out, c.children)
	return out
}

// GetText returns the cell's text: empty for Empty, the stored text
// verbatim for Text (including a leading escape apostrophe), or the
// canonical re-printed formula for Formula.
func (c *Cell) GetText() string {
	switch c.kind {
	case contentText:
		return c.text
	case contentFormula:
		return "=" + c.ast.PrintExpression()
	default:
		return ""
	}
}

// GetValue returns the cell's value, computing and memoizing it on first
// call.
func (c *Cell) GetValue() Value {
	if c.hasCache {
		return c.cache
	}

	var v Value
	switch c.kind {
	case contentText:
		if len(c.text) > 0 && c.text[0] == EscapeSign {
			v = TextValue(c.text[1:])
		} else {
			v = TextValue(c.text)
		}
	case contentFormula:
		result, evalErr := c.ast.Execute(c.lookup)
		if evalErr != nil {
			v = ErrorValue(&FormulaError{Code: FormulaErrorCode(evalErr.Kind)})
		} else {
			v = NumberValue(result)
		}
	default:
		v = TextValue("")
	}

	c.cache = v
	c.hasCache = true
	return v
}

func (c *Cell) invalidate() {
	c.hasCache = false
}

// lookup resolves a referenced position's numeric value for the formula
// evaluator: an invalid position raises Ref; an absent cell yields 0.0; a
// present cell's value is coerced (number passes through, empty string is
// 0.0, non-empty text is parsed in full or raises Value); a FormulaError
// propagates unchanged.
func (c *Cell) lookup(pos position.Position) (float64, *formula.EvalError) {
	if !pos.IsValid() {
		return 0, &formula.EvalError{Kind: formula.KindRef}
	}

	cell := c.sheet.GetCell(pos)
	if cell == nil {
		return 0, nil
	}

	v := cell.GetValue()
	switch {
	case v.IsError():
		return 0, &formula.EvalError{Kind: formula.Kind(v.FormulaError().Code)}
	case v.IsNumber():
		return v.Number(), nil
	default:
		s := v.Text()
		if s == "" {
			return 0, nil
		}
		// strtod skips leading whitespace but leaves no trailing garbage;
		// strconv.ParseFloat already rejects any unconsumed suffix.
		n, err := strconv.ParseFloat(strings.TrimLeft(s, " \t\n\v\f\r"), 64)
		if err != nil {
			return 0, &formula.EvalError{Kind: formula.KindValue}
		}
		return n, nil
	}
}
