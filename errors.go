package calc

import (
	"errors"
	"strconv"
)

// Kind classifies errors returned by the package.
type Kind int8

const (
	// KindNone is the kind of errors that did not come from this package.
	KindNone Kind = iota
	// TypeMismatch indicates a value that cannot be converted to the type an
	// operation needs.
	TypeMismatch
	// Validation indicates an empty expression.
	Validation
	// Syntax indicates a malformed token stream.
	Syntax
	// Name indicates an unknown function or identifier.
	Name
	// DivisionByZero indicates division by exactly zero.
	DivisionByZero
	// InvalidOperation indicates an undefined or overflowing exponentiation
	// or a function argument outside the function's domain.
	InvalidOperation
	// Structural indicates a malformed expression tree.
	Structural
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case TypeMismatch:
		return "TypeMismatch"
	case Validation:
		return "Validation"
	case Syntax:
		return "Syntax"
	case Name:
		return "Name"
	case DivisionByZero:
		return "DivisionByZero"
	case InvalidOperation:
		return "InvalidOperation"
	case Structural:
		return "Structural"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Error is implemented by every error the package returns.
type Error interface {
	error
	Kind() Kind
}

// KindOf returns the kind of the first error in err's chain that has one, or
// KindNone if there is none.
func KindOf(err error) Kind {
	var k Error
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindNone
}

// TypeError is an error indicating text that does not convert to the type
// an operation requires.
type TypeError struct {
	// Arg names the value being converted.
	Arg string
	// Text is the text that failed to convert.
	Text string
	// Want describes the required type, e.g. "an integer".
	Want string
}

func (err *TypeError) Error() string {
	return err.Arg + " must be " + err.Want + ", not " + strconv.Quote(err.Text)
}

func (err *TypeError) Kind() Kind { return TypeMismatch }

// ValidationError is an error indicating an empty or whitespace-only
// expression.
type ValidationError struct{}

func (err *ValidationError) Error() string {
	return "empty expression"
}

func (err *ValidationError) Kind() Kind { return Validation }

// NameError is an error indicating an identifier that is not a known
// function.
type NameError struct {
	// Col is the position of the identifier, or 0 if unknown.
	Col int
	// Name is the unknown identifier.
	Name string
}

func (err *NameError) Error() string {
	return errpos(err.Col, "unknown function: "+strconv.Quote(err.Name))
}

func (err *NameError) Kind() Kind { return Name }

func (err *NameError) Pos() int {
	return err.Col
}

// ZeroDivisionError is an error indicating a division by zero or zero raised
// to a negative power.
type ZeroDivisionError struct {
	// Col is the position of the operator, or 0 if unknown.
	Col int
	// Op is the operator, either "/" or "^".
	Op string
}

func (err *ZeroDivisionError) Error() string {
	if err.Op == "^" {
		return errpos(err.Col, "zero raised to a negative power")
	}
	return errpos(err.Col, "division by zero")
}

func (err *ZeroDivisionError) Kind() Kind { return DivisionByZero }

func (err *ZeroDivisionError) Pos() int {
	return err.Col
}

// PowError is an error indicating an exponentiation that is undefined or
// overflows.
type PowError struct {
	// Col is the position of the operator, or 0 if unknown.
	Col int
	// Base and Exp are the operands.
	Base, Exp float64
	// Overflow is whether the result was too large rather than undefined.
	Overflow bool
}

func (err *PowError) Error() string {
	s := "invalid exponentiation: " + fmtnum(err.Base) + "^" + fmtnum(err.Exp)
	if err.Overflow {
		return errpos(err.Col, s+" overflows")
	}
	return errpos(err.Col, s+" is undefined")
}

func (err *PowError) Kind() Kind { return InvalidOperation }

func (err *PowError) Pos() int {
	return err.Col
}

// DomainError is an error returned when a function is called on an argument
// outside its domain or its result overflows. DomainError unwraps to the
// function's error, ErrDomain or ErrRange.
type DomainError struct {
	// Col is the position of the function name, or 0 if unknown.
	Col int
	// Func is the function name.
	Func string
	// X is the argument.
	X float64
	// Err is the error returned by the function.
	Err error
}

func (err *DomainError) Error() string {
	return errpos(err.Col, "error in function "+err.Func+"("+fmtnum(err.X)+"): "+err.Err.Error())
}

func (err *DomainError) Unwrap() error {
	return err.Err
}

func (err *DomainError) Kind() Kind { return InvalidOperation }

func (err *DomainError) Pos() int {
	return err.Col
}

// StructureError is an error indicating an expression tree that the parser
// could not have produced.
type StructureError struct {
	// Node describes the invalid node.
	Node string
}

func (err *StructureError) Error() string {
	return "invalid expression structure: " + err.Node
}

func (err *StructureError) Kind() Kind { return Structural }

// ExprError wraps any error from evaluating an expression string. It has
// the same Kind as the error it wraps.
type ExprError struct {
	// Src is the expression.
	Src string
	// Err is the underlying error.
	Err error
}

func (err *ExprError) Error() string {
	return "evaluating " + strconv.Quote(err.Src) + ": " + err.Err.Error()
}

func (err *ExprError) Unwrap() error {
	return err.Err
}

func (err *ExprError) Kind() Kind {
	return KindOf(err.Err)
}

// fmtnum formats an operand for an error message.
func fmtnum(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

var (
	_ Error = (*TypeError)(nil)
	_ Error = (*ValidationError)(nil)
	_ Error = (*NameError)(nil)
	_ Error = (*ZeroDivisionError)(nil)
	_ Error = (*PowError)(nil)
	_ Error = (*DomainError)(nil)
	_ Error = (*StructureError)(nil)
	_ Error = (*ExprError)(nil)
)
