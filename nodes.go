package arith

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression. Each node owns
// its children; trees are never modified after parsing.
type node[V Value[V]] struct {
	kind nodeKind

	// name is the variable name of a nodeName, the function name of a
	// nodeCall, or the source text of a nodeNum.
	name string
	// val is the value of a nodeNum.
	val V
	// fn is the function of a nodeCall, resolved during parsing.
	fn Func[V]

	left  *node[V]
	right *node[V]
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // val
	nodeName // lookup(name)
	nodeCall // fn(left)

	nodePlus // identity(left)
	nodeNeg  // negative(left)
	nodeAdd  // left + right
	nodeSub  // left - right
	nodeMul  // left * right
	nodeDiv  // left / right
	nodeRem  // left % right
)

var nodeKindNames = [...]string{
	nodeNone: "None",
	nodeNum:  "Num",
	nodeName: "Name",
	nodeCall: "Call",
	nodePlus: "Plus",
	nodeNeg:  "Neg",
	nodeAdd:  "Add",
	nodeSub:  "Sub",
	nodeMul:  "Mul",
	nodeDiv:  "Div",
	nodeRem:  "Rem",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeKindNames[k]
}

// binops maps binary operator characters to node kinds.
var binops = [...]struct {
	op   byte
	kind nodeKind
}{
	{'+', nodeAdd},
	{'-', nodeSub},
	{'*', nodeMul},
	{'/', nodeDiv},
	{'%', nodeRem},
}

// opchar gets the operator character for a unary or binary node kind.
func opchar(k nodeKind) byte {
	switch k {
	case nodePlus:
		return '+'
	case nodeNeg:
		return '-'
	}
	for _, b := range binops {
		if b.kind == k {
			return b.op
		}
	}
	panic("arith: no operator for node kind " + k.String())
}

func (n *node[V]) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes the node with every subexpression in parentheses, so that the
// result parses to the same tree.
func (n *node[V]) fmt(b *strings.Builder) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b)
		}
		b.WriteByte('$')
	case nodeNum:
		// Values like +Inf from saturated literals have no literal syntax.
		if n.name != "" {
			b.WriteString(n.name)
		} else {
			b.WriteString(n.val.String())
		}
	case nodeName:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		n.left.fmt(b)
	case nodePlus, nodeNeg:
		b.WriteByte(opchar(n.kind))
		n.left.fmt(b)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeRem:
		n.left.fmt(b)
		b.WriteByte(' ')
		b.WriteByte(opchar(n.kind))
		b.WriteByte(' ')
		n.right.fmt(b)
	default:
		panic("arith: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
