package calc

import "strconv"

// DefaultMaxRepeat is the default limit on consecutive operators at one
// precedence level.
const DefaultMaxRepeat = 1000

// DefaultMaxDepth is the default limit on nested brackets and function calls.
const DefaultMaxDepth = 1000

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	repeatopt int
	depthopt  int
)

// parsectx holds general data for parsing.
type parsectx struct {
	// toks is the token sequence and at is the index of the next token.
	toks []Token
	at   int
	// maxrep is the limit on each operator loop.
	maxrep int
	// depth is the number of open brackets around the cursor, limited to
	// maxdepth.
	depth    int
	maxdepth int
}

// MaxRepeat sets the number of operators allowed in a row at one precedence
// level, e.g. the number of + and - in "1+2-3+...". Exceeding the limit is a
// ComplexityError. Panics if n is not positive.
func MaxRepeat(n int) ParseOption {
	if n <= 0 {
		panic("calc: MaxRepeat must be positive, not " + strconv.Itoa(n))
	}
	return repeatopt(n)
}

func (o repeatopt) parseOption(p parsectx) parsectx {
	p.maxrep = int(o)
	return p
}

// MaxDepth sets the number of brackets, including function call brackets,
// that may be open at once. Exceeding the limit is a ComplexityError. Panics
// if n is not positive.
func MaxDepth(n int) ParseOption {
	if n <= 0 {
		panic("calc: MaxDepth must be positive, not " + strconv.Itoa(n))
	}
	return depthopt(n)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.maxdepth = int(o)
	return p
}
