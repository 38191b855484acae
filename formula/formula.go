// Package formula implements the formula expression parser and AST
// evaluator the spreadsheet core treats as an external collaborator: it
// knows nothing about cells or sheets, only about arithmetic over A1
// references and numeric literals.
package formula

import (
	"sort"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/arjunv/go-spreadsheet/position"
)

// Kind enumerates the categories a formula evaluation can fail with. These
// mirror the spreadsheet core's FormulaError categories 1:1 so a looked-up
// cell's own error can be propagated through Lookup without this package
// knowing what a FormulaError is.
type Kind int

const (
	KindRef Kind = iota
	KindValue
	KindDiv0
)

// EvalError is a runtime formula fault raised while evaluating an AST.
type EvalError struct {
	Kind Kind
}

func (e *EvalError) Error() string {
	switch e.Kind {
	case KindRef:
		return "invalid cell reference"
	case KindValue:
		return "value could not be coerced to a number"
	case KindDiv0:
		return "division by zero"
	default:
		return "formula evaluation error"
	}
}

// Lookup resolves the numeric value of a referenced cell. The caller (the
// spreadsheet core) decides what "invalid", "absent", and "non-numeric"
// mean for a cell; this package only calls Lookup and propagates whatever
// it returns.
type Lookup func(position.Position) (float64, *EvalError)

// Formula is the parsed form of formula text with the leading '=' already
// stripped by the caller.
type Formula struct {
	Expr *addExpr `@@`
}

type addExpr struct {
	Left *mulExpr `@@`
	Rest []*addOp `@@*`
}

type addOp struct {
	Op    string   `@("+" | "-")`
	Right *mulExpr `@@`
}

type mulExpr struct {
	Left *unary   `@@`
	Rest []*mulOp `@@*`
}

type mulOp struct {
	Op    string `@("*" | "/")`
	Right *unary `@@`
}

type unary struct {
	Neg   bool     `@"-"?`
	Value *primary `@@`
}

type primary struct {
	Number *float64 `@Number`
	Ref    *string  `| @Ref`
	Sub    *addExpr `| "(" @@ ")"`
}

var formulaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `\d+(\.\d+)?`},
	{Name: "Ref", Pattern: `[A-Za-z]+[0-9]+`},
	{Name: "Punct", Pattern: `[-+*/()]`},
	{Name: "whitespace", Pattern: `\s+`},
})

var grammar = participle.MustBuild[Formula](
	participle.Lexer(formulaLexer),
	participle.Elide("whitespace"),
	participle.UseLookahead(2),
)

// Parse turns formula text (without the leading '=') into an AST. Parse
// failure is reported by error alone; there is no partially-built result
// for the caller to observe.
func Parse(text string) (*Formula, error) {
	return grammar.ParseString("", text)
}

// Execute evaluates the formula, resolving cell references through lookup.
func (f *Formula) Execute(lookup Lookup) (float64, *EvalError) {
	return f.Expr.eval(lookup)
}

func (e *addExpr) eval(lookup Lookup) (float64, *EvalError) {
	v, err := e.Left.eval(lookup)
	if err != nil {
		return 0, err
	}
	for _, op := range e.Rest {
		r, err := op.Right.eval(lookup)
		if err != nil {
			return 0, err
		}
		if op.Op == "+" {
			v += r
		} else {
			v -= r
		}
	}
	return v, nil
}

func (e *mulExpr) eval(lookup Lookup) (float64, *EvalError) {
	v, err := e.Left.eval(lookup)
	if err != nil {
		return 0, err
	}
	for _, op := range e.Rest {
		r, err := op.Right.eval(lookup)
		if err != nil {
			return 0, err
		}
		if op.Op == "*" {
			v *= r
			continue
		}
		if r == 0 {
			return 0, &EvalError{Kind: KindDiv0}
		}
		v /= r
	}
	return v, nil
}

func (u *unary) eval(lookup Lookup) (float64, *EvalError) {
	v, err := u.Value.eval(lookup)
	if err != nil {
		return 0, err
	}
	if u.Neg {
		v = -v
	}
	return v, nil
}

func (p *primary) eval(lookup Lookup) (float64, *EvalError) {
	switch {
	case p.Number != nil:
		return *p.Number, nil
	case p.Ref != nil:
		pos, ok := position.FromA1(*p.Ref)
		if !ok {
			return 0, &EvalError{Kind: KindRef}
		}
		return lookup(pos)
	case p.Sub != nil:
		return p.Sub.eval(lookup)
	default:
		return 0, &EvalError{Kind: KindValue}
	}
}

// ReferencedCells returns the sorted, deduplicated positions this formula
// reads from.
func (f *Formula) ReferencedCells() []position.Position {
	seen := make(map[position.Position]struct{})
	var out []position.Position

	var walkAdd func(*addExpr)
	var walkMul func(*mulExpr)

	collectRef := func(p *primary) {
		switch {
		case p.Ref != nil:
			pos, ok := position.FromA1(*p.Ref)
			if !ok {
				return
			}
			if _, dup := seen[pos]; dup {
				return
			}
			seen[pos] = struct{}{}
			out = append(out, pos)
		case p.Sub != nil:
			walkAdd(p.Sub)
		}
	}

	walkMul = func(m *mulExpr) {
		collectRef(m.Left.Value)
		for _, op := range m.Rest {
			collectRef(op.Right.Value)
		}
	}
	walkAdd = func(a *addExpr) {
		walkMul(a.Left)
		for _, op := range a.Rest {
			walkMul(op.Right)
		}
	}

	walkAdd(f.Expr)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// PrintExpression re-prints the formula in canonical form: no whitespace,
// upper-case references, numbers in plain decimal notation. A parenthesized
// group appears in the output exactly where the grammar's "(" Expr ")"
// production fired during parsing; no parentheses are added, and redundant
// ones from the source text (as in "(1)+2") are kept, not removed.
func (f *Formula) PrintExpression() string {
	return f.Expr.print()
}

func (e *addExpr) print() string {
	var sb strings.Builder
	sb.WriteString(e.Left.print())
	for _, op := range e.Rest {
		sb.WriteString(op.Op)
		sb.WriteString(op.Right.print())
	}
	return sb.String()
}

func (e *mulExpr) print() string {
	var sb strings.Builder
	sb.WriteString(e.Left.print())
	for _, op := range e.Rest {
		sb.WriteString(op.Op)
		sb.WriteString(op.Right.print())
	}
	return sb.String()
}

func (u *unary) print() string {
	s := u.Value.print()
	if u.Neg {
		return "-" + s
	}
	return s
}

func (p *primary) print() string {
	switch {
	case p.Number != nil:
		return strconv.FormatFloat(*p.Number, 'f', -1, 64)
	case p.Ref != nil:
		return strings.ToUpper(*p.Ref)
	case p.Sub != nil:
		return "(" + p.Sub.print() + ")"
	default:
		return ""
	}
}
