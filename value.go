package spreadsheet

import "strconv"

// FormulaErrorCode enumerates the closed set of runtime formula faults the
// core currently knows about. The set is closed for the core's purposes but
// new categories can be added without changing edge semantics.
type FormulaErrorCode int

const (
	ErrRef FormulaErrorCode = iota
	ErrValue
	ErrDiv0
)

var formulaErrorTags = map[FormulaErrorCode]string{
	ErrRef:   "#REF!",
	ErrValue: "#VALUE!",
	ErrDiv0:  "#DIV/0!",
}

// FormulaError is an in-band value representing a runtime formula fault. It
// is a legitimate cell Value, not a failure to compute.
type FormulaError struct {
	Code FormulaErrorCode
}

func (e *FormulaError) Error() string { return e.Tag() }

// Tag renders the category tag printed for this error, e.g. "#REF!".
func (e *FormulaError) Tag() string {
	if tag, ok := formulaErrorTags[e.Code]; ok {
		return tag
	}
	return "#ERROR!"
}

type valueKind int

const (
	valueNumber valueKind = iota
	valueText
	valueError
)

// Value is the tagged union a cell's content evaluates to: exactly one of a
// finite number, a string, or a FormulaError.
type Value struct {
	kind valueKind
	num  float64
	text string
	ferr *FormulaError
}

// NumberValue wraps a finite number.
func NumberValue(n float64) Value { return Value{kind: valueNumber, num: n} }

// TextValue wraps a string. The empty cell's value is TextValue("").
func TextValue(s string) Value { return Value{kind: valueText, text: s} }

// ErrorValue wraps a FormulaError.
func ErrorValue(e *FormulaError) Value { return Value{kind: valueError, ferr: e} }

// IsNumber reports whether the value holds a number.
func (v Value) IsNumber() bool { return v.kind == valueNumber }

// IsText reports whether the value holds text.
func (v Value) IsText() bool { return v.kind == valueText }

// IsError reports whether the value holds a FormulaError.
func (v Value) IsError() bool { return v.kind == valueError }

// Number returns the numeric payload; only meaningful when IsNumber.
func (v Value) Number() float64 { return v.num }

// Text returns the text payload; only meaningful when IsText.
func (v Value) Text() string { return v.text }

// FormulaError returns the error payload; only meaningful when IsError.
func (v Value) FormulaError() *FormulaError { return v.ferr }

// String renders the value the way PrintValues does: a number in its
// default textual form, text verbatim, an error as its category tag.
func (v Value) String() string {
	switch v.kind {
	case valueNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case valueText:
		return v.text
	case valueError:
		return v.ferr.Tag()
	default:
		return ""
	}
}
