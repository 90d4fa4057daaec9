package calc

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind
	// pos is the column of the token that produced the node, or 0 for nodes
	// built without a source.
	pos int

	num  float64
	name string

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // num
	nodeCall // name is function to call on left

	nodeNeg // evaluate left, then negate
	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodePow // evaluate left, exp by right
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeCall:
		return "Call"
	case nodeNeg:
		return "Neg"
	case nodeAdd:
		return "Add"
	case nodeSub:
		return "Sub"
	case nodeMul:
		return "Mul"
	case nodeDiv:
		return "Div"
	case nodePow:
		return "Pow"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// binaries maps binary operator text to node kinds.
var binaries = map[string]nodeKind{
	"+": nodeAdd,
	"-": nodeSub,
	"*": nodeMul,
	"/": nodeDiv,
	"^": nodePow,
}

// opText is the inverse of binaries.
func (k nodeKind) opText() string {
	switch k {
	case nodeAdd:
		return "+"
	case nodeSub:
		return "-"
	case nodeMul:
		return "*"
	case nodeDiv:
		return "/"
	case nodePow:
		return "^"
	default:
		return ""
	}
}

// Expr is a parsed expression.
type Expr struct {
	n *node
}

// Num creates an expression that is a single number.
func Num(x float64) *Expr {
	return &Expr{n: &node{kind: nodeNum, num: x}}
}

// Call creates an expression applying the named function to arg. The name
// is not checked until the expression is evaluated.
func Call(name string, arg *Expr) *Expr {
	return &Expr{n: &node{kind: nodeCall, name: name, left: arg.node()}}
}

// Neg creates an expression negating x.
func Neg(x *Expr) *Expr {
	return &Expr{n: &node{kind: nodeNeg, left: x.node()}}
}

// Binary creates an expression applying one of the Operators to x and y.
// An unknown operator produces an expression that fails to evaluate.
func Binary(op string, x, y *Expr) *Expr {
	return &Expr{n: &node{kind: binaries[op], name: op, left: x.node(), right: y.node()}}
}

func (e *Expr) node() *node {
	if e == nil {
		return nil
	}
	return e.n
}

// String creates a string representation of the expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.node().fmt(&b, false)
	return b.String()
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n *node) fmt(b *strings.Builder, square bool) {
	if n == nil {
		// Missing children use invalid characters.
		b.WriteString("$nil$")
		return
	}
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNum:
		b.WriteString(fmtnum(n.num))
	case nodeCall:
		b.WriteString(n.name)
		n.left.fmt(b, !square)
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b, !square)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		n.left.fmt(b, !square)
		b.WriteString(" " + n.kind.opText() + " ")
		n.right.fmt(b, !square)
	default:
		b.WriteByte('$')
		n.left.fmt(b, !square)
		b.WriteString(" " + strconv.Quote(n.name) + " ")
		n.right.fmt(b, !square)
		b.WriteByte('$')
	}
}
