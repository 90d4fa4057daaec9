package calc

import "strconv"

// OperatorError is an error indicating an operator where an operand was
// expected. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator token.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "unexpected operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Kind() Kind { return Syntax }

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError is an error indicating mismatched brackets in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the offending token.
	Col int
	// Left is the opening bracket, or empty for a close bracket with no open.
	Left string
	// Right is the token found where the close bracket was expected, or empty
	// at the end of input.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	if err.Right == "" {
		return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
	}
	return errpos(err.Col, "mismatched bracket: expected ) but found "+strconv.Quote(err.Right))
}

func (err *BracketError) Kind() Kind { return Syntax }

func (err *BracketError) Pos() int {
	return err.Col
}

// TokenError is an error indicating a lexeme that is neither a number, an
// operator, a bracket, nor a name. It implements InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Text is the token.
	Text string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "invalid token "+strconv.Quote(err.Text))
}

func (err *TokenError) Kind() Kind { return Syntax }

func (err *TokenError) Pos() int {
	return err.Col
}

// CallError is an error indicating a function name that is not followed by a
// bracketed argument. It implements InputError.
type CallError struct {
	// Col is the position of the token following the function name.
	Col int
	// Func is the function name.
	Func string
}

func (err *CallError) Error() string {
	return errpos(err.Col, "function "+err.Func+" must be followed by parentheses")
}

func (err *CallError) Kind() Kind { return Syntax }

func (err *CallError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty subexpression.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "unexpected end of expression")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Kind() Kind { return Syntax }

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// MissingOperatorError is an error indicating two adjacent operands with no
// operator between them.
type MissingOperatorError struct {
	// Col is the position of the second operand.
	Col int
	// Text is the second operand.
	Text string
}

func (err *MissingOperatorError) Error() string {
	return errpos(err.Col, "missing operator before "+strconv.Quote(err.Text))
}

func (err *MissingOperatorError) Kind() Kind { return Syntax }

func (err *MissingOperatorError) Pos() int {
	return err.Col
}

// ComplexityError is an error indicating that a run of operators at one
// precedence level exceeded the parser's repetition limit, or that brackets
// nested deeper than the parser's depth limit.
type ComplexityError struct {
	// Col is the position of the operator or bracket that exceeded the limit.
	Col int
	// Limit is the limit that was exceeded.
	Limit int
	// Nesting is whether the depth limit was exceeded.
	Nesting bool
}

func (err *ComplexityError) Error() string {
	if err.Nesting {
		return errpos(err.Col, "expression too complex: more than "+strconv.Itoa(err.Limit)+" nested brackets")
	}
	return errpos(err.Col, "expression too complex: more than "+strconv.Itoa(err.Limit)+" repeated operators")
}

func (err *ComplexityError) Kind() Kind { return Syntax }

func (err *ComplexityError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position. A
// non-positive position is omitted.
func errpos(pos int, msg string) string {
	if pos <= 0 {
		return msg
	}
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting
// from invalid input text implements InputError.
type InputError interface {
	Error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*MissingOperatorError)(nil)
	_ InputError = (*ComplexityError)(nil)
	_ InputError = (*NameError)(nil)
)
