package calc

import (
	"math"
)

// Eval evaluates the expression.
func (e *Expr) Eval() (float64, error) {
	return e.node().eval()
}

// eval computes the node's value.
func (n *node) eval() (float64, error) {
	if n == nil {
		return 0, &StructureError{Node: "missing operand"}
	}
	switch n.kind {
	case nodeNum:
		return n.num, nil
	case nodeCall:
		f := globalfuncs[n.name]
		if f == nil {
			return 0, &NameError{Col: n.pos, Name: n.name}
		}
		x, err := n.left.eval()
		if err != nil {
			return 0, err
		}
		r, err := f(x)
		if err != nil {
			return 0, &DomainError{Col: n.pos, Func: n.name, X: x, Err: err}
		}
		return r, nil
	case nodeNeg:
		x, err := n.left.eval()
		if err != nil {
			return 0, err
		}
		return -x, nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		x, err := n.left.eval()
		if err != nil {
			return 0, err
		}
		y, err := n.right.eval()
		if err != nil {
			return 0, err
		}
		return n.binary(x, y)
	default:
		return 0, &StructureError{Node: n.String()}
	}
}

// binary applies the node's operator to evaluated operands.
func (n *node) binary(x, y float64) (float64, error) {
	switch n.kind {
	case nodeAdd:
		return x + y, nil
	case nodeSub:
		return x - y, nil
	case nodeMul:
		return x * y, nil
	case nodeDiv:
		if y == 0 {
			return 0, &ZeroDivisionError{Col: n.pos, Op: "/"}
		}
		return x / y, nil
	case nodePow:
		return pow(n.pos, x, y)
	default:
		panic("calc: binary on " + n.kind.String())
	}
}

// pow computes x^y, rejecting results that are undefined or overflow.
func pow(pos int, x, y float64) (float64, error) {
	// 0^-inf is +inf, not a division.
	if x == 0 && y < 0 && !math.IsInf(y, -1) {
		return 0, &ZeroDivisionError{Col: pos, Op: "^"}
	}
	r := math.Pow(x, y)
	switch {
	case math.IsNaN(r) && !math.IsNaN(x) && !math.IsNaN(y):
		return 0, &PowError{Col: pos, Base: x, Exp: y}
	case math.IsInf(r, 0) && !math.IsInf(x, 0) && !math.IsInf(y, 0):
		return 0, &PowError{Col: pos, Base: x, Exp: y, Overflow: true}
	}
	return r, nil
}

// Calculate evaluates an expression string. An empty or whitespace-only
// expression is a ValidationError. Any other error is an ExprError wrapping
// the error from tokenizing, parsing, or evaluating.
func Calculate(src string, opts ...ParseOption) (float64, error) {
	e, err := ParseString(src, opts...)
	if err != nil {
		return 0, err
	}
	r, err := e.Eval()
	if err != nil {
		return 0, &ExprError{Src: src, Err: err}
	}
	return r, nil
}
