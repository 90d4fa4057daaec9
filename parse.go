package calc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse parses a token sequence into an expression. The given options are
// applied in order. Parse does not modify toks.
//
// Tokens are classified by their text, so a token sequence built by hand
// need not set Kind.
//
// Parsing stops at the first token that cannot continue the expression. A
// number there is a MissingOperatorError; anything else and everything after
// it is ignored, so "2+3)" parses as "2+3".
func Parse(toks []Token, opts ...ParseOption) (*Expr, error) {
	p := parsectx{
		toks:     toks,
		maxrep:   DefaultMaxRepeat,
		maxdepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	// parsesum leaves anything it can't continue with for its caller. At the
	// top level, that remainder is ignored.
	n, err := p.parsesum()
	if err != nil {
		return nil, err
	}
	return &Expr{n: n}, nil
}

// ParseString tokenizes and parses an expression. Errors are wrapped in an
// ExprError. Empty input is a ValidationError.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	if strings.TrimSpace(src) == "" {
		return nil, &ValidationError{}
	}
	e, err := Parse(Tokenize(src), opts...)
	if err != nil {
		return nil, &ExprError{Src: src, Err: err}
	}
	return e, nil
}

func (p *parsectx) peek() (Token, bool) {
	if p.at < len(p.toks) {
		return p.toks[p.at], true
	}
	return Token{}, false
}

func (p *parsectx) next() (Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.at++
	}
	return tok, ok
}

// endcol is the column just past the last token.
func (p *parsectx) endcol() int {
	if len(p.toks) == 0 {
		return 1
	}
	last := p.toks[len(p.toks)-1]
	return last.Pos + utf8.RuneCountInString(last.Text)
}

// parsesum parses a sum of terms. If the token following the sum is a
// number, two operands are adjacent, which is an error. Any other following
// token is left for the caller.
func (p *parsectx) parsesum() (*node, error) {
	n, err := p.parseops("+-", (*parsectx).parseterm)
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		if _, num := parsenum(tok.Text); num {
			return nil, &MissingOperatorError{Col: tok.Pos, Text: tok.Text}
		}
	}
	return n, nil
}

// parseterm parses a product of powers.
func (p *parsectx) parseterm() (*node, error) {
	return p.parseops("*/", (*parsectx).parsepower)
}

// parsepower parses a left-associative chain of exponentiations.
func (p *parsectx) parsepower() (*node, error) {
	return p.parseops("^", (*parsectx).parseunary)
}

// parseops parses operands separated by any of the single-rune operators in
// ops, associating to the left.
func (p *parsectx) parseops(ops string, operand func(*parsectx) (*node, error)) (*node, error) {
	n, err := operand(p)
	if err != nil {
		return nil, err
	}
	for reps := 0; ; reps++ {
		tok, ok := p.peek()
		if !ok || len(tok.Text) != 1 || !strings.Contains(ops, tok.Text) {
			return n, nil
		}
		if reps >= p.maxrep {
			return nil, &ComplexityError{Col: tok.Pos, Limit: p.maxrep}
		}
		p.at++
		rhs, err := operand(p)
		if err != nil {
			return nil, err
		}
		n = &node{kind: binaries[tok.Text], pos: tok.Pos, name: tok.Text, left: n, right: rhs}
	}
}

// parseunary parses any number of negations applied to a primary. The
// tokenizer folds a minus into a following number, so this only sees a minus
// before a bracket, a function, or another minus.
func (p *parsectx) parseunary() (*node, error) {
	var negs []Token
	for {
		tok, ok := p.peek()
		if !ok || tok.Text != "-" {
			break
		}
		if len(negs) >= p.maxrep {
			return nil, &ComplexityError{Col: tok.Pos, Limit: p.maxrep}
		}
		negs = append(negs, tok)
		p.at++
	}
	n, err := p.parseprimary()
	if err != nil {
		return nil, err
	}
	for i := len(negs) - 1; i >= 0; i-- {
		n = &node{kind: nodeNeg, pos: negs[i].Pos, left: n}
	}
	return n, nil
}

// parseprimary parses a number, a bracketed sum, or a function call.
func (p *parsectx) parseprimary() (*node, error) {
	tok, ok := p.next()
	if !ok {
		return nil, &EmptyExpressionError{Col: p.endcol()}
	}
	switch {
	case tok.Text == OpenBracket:
		if err := p.enter(tok); err != nil {
			return nil, err
		}
		n, err := p.parsesum()
		if err != nil {
			return nil, err
		}
		if err := p.closebracket(tok); err != nil {
			return nil, err
		}
		return n, nil
	case tok.Text == CloseBracket:
		return nil, &EmptyExpressionError{Col: tok.Pos, End: tok.Text}
	case isfunc(tok.Text):
		open, ok := p.next()
		if !ok {
			return nil, &CallError{Col: p.endcol(), Func: tok.Text}
		}
		if open.Text != OpenBracket {
			return nil, &CallError{Col: open.Pos, Func: tok.Text}
		}
		if err := p.enter(open); err != nil {
			return nil, err
		}
		arg, err := p.parsesum()
		if err != nil {
			return nil, err
		}
		if err := p.closebracket(open); err != nil {
			return nil, err
		}
		return &node{kind: nodeCall, pos: tok.Pos, name: tok.Text, left: arg}, nil
	case len(tok.Text) == 1 && strings.Contains(Operators, tok.Text):
		return nil, &OperatorError{Col: tok.Pos, Operator: tok.Text}
	}
	if v, ok := parsenum(tok.Text); ok {
		return &node{kind: nodeNum, pos: tok.Pos, num: v}, nil
	}
	if isalpha(tok.Text) {
		return nil, &NameError{Col: tok.Pos, Name: tok.Text}
	}
	return nil, &TokenError{Col: tok.Pos, Text: tok.Text}
}

// enter records that the cursor is inside the bracket open.
func (p *parsectx) enter(open Token) error {
	if p.depth >= p.maxdepth {
		return &ComplexityError{Col: open.Pos, Limit: p.maxdepth, Nesting: true}
	}
	p.depth++
	return nil
}

// closebracket consumes the close bracket matching open.
func (p *parsectx) closebracket(open Token) error {
	tok, ok := p.next()
	if !ok {
		return &BracketError{Col: open.Pos, Left: open.Text}
	}
	if tok.Text != CloseBracket {
		return &BracketError{Col: tok.Pos, Left: open.Text, Right: tok.Text}
	}
	p.depth--
	return nil
}

func isfunc(name string) bool {
	_, ok := globalfuncs[name]
	return ok
}

// isalpha reports whether s is non-empty and made only of letters, i.e.
// whether it looks like a function name.
func isalpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
