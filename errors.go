package spreadsheet

import (
	"fmt"

	"github.com/arjunv/go-spreadsheet/position"
)

// ErrorCode enumerates the exception kinds the core can raise: a single
// error struct carrying a small code enum, one per raised exception.
type ErrorCode int

const (
	CodeInvalidPosition ErrorCode = iota
	CodeCircularDependency
	CodeFormulaParse
)

// SheetError is the exception-valued error raised by Sheet operations.
// FormulaError, by contrast, is an in-band Value and never reaches the
// caller through this type.
type SheetError struct {
	Code    ErrorCode
	Message string
}

func (e *SheetError) Error() string { return e.Message }

func newInvalidPositionError(pos position.Position) *SheetError {
	return &SheetError{
		Code:    CodeInvalidPosition,
		Message: fmt.Sprintf("invalid position: row=%d col=%d", pos.Row, pos.Col),
	}
}

func newCircularDependencyError(pos position.Position) *SheetError {
	return &SheetError{
		Code:    CodeCircularDependency,
		Message: fmt.Sprintf("circular dependency through %s", pos.ToA1()),
	}
}

func newFormulaException(text string, cause error) *SheetError {
	return &SheetError{
		Code:    CodeFormulaParse,
		Message: fmt.Sprintf("failed to parse formula %q: %v", text, cause),
	}
}
