package deskcalc

import (
	"strconv"
	"strings"
)

// node is a node in the syntax tree of a statement.
type node struct {
	kind nodeKind

	name string
	num  complex128
	fn   *Function

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // num
	nodeName // lookup(name)

	nodeCall  // name is the function or variable, right is link to nodeArg
	nodeArg   // eval left, right is link to next arg
	nodeList  // right is link to nodeArg for each element
	nodeRange // name is the loop variable, left is the body, right is link to nodeArg for start, end, step

	nodeNeg      // evaluate left, then negate
	nodeNop      // evaluate left
	nodeFac      // evaluate left, then factorial
	nodeAdd      // evaluate left, add right
	nodeSub      // evaluate left, sub right
	nodeMul      // evaluate left, mul right
	nodeDiv      // evaluate left, div by right
	nodeFloorDiv // evaluate left, floor div by right
	nodeMod      // evaluate left, mod right
	nodePar      // evaluate left, parallel right
	nodePow      // evaluate left, exp by right

	// Statements. These only appear at the root of a tree.
	nodeAssign // name is the variable or list, left is the value
	nodeDef    // fn is the function to define
	nodeDel    // right is link to nodeArg, each with a nodeName
)

var nodeText = [...]string{
	nodeNone:     "None",
	nodeNum:      "Num",
	nodeName:     "Name",
	nodeCall:     "Call",
	nodeArg:      "Arg",
	nodeList:     "List",
	nodeRange:    "Range",
	nodeNeg:      "Neg",
	nodeNop:      "Nop",
	nodeFac:      "Fac",
	nodeAdd:      "Add",
	nodeSub:      "Sub",
	nodeMul:      "Mul",
	nodeDiv:      "Div",
	nodeFloorDiv: "FloorDiv",
	nodeMod:      "Mod",
	nodePar:      "Par",
	nodePow:      "Pow",
	nodeAssign:   "Assign",
	nodeDef:      "Def",
	nodeDel:      "Del",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodeText) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeText[k]
}

// Binding levels of node kinds when formatting. A child is parenthesized if
// its level is lower than its position in the parent requires.
const (
	levelExpr = iota + 1
	levelTerm
	levelSign
	levelPow
	levelPostfix
	levelPrim
)

var binops = map[nodeKind]struct {
	op    string
	level int
}{
	nodeAdd:      {" + ", levelExpr},
	nodeSub:      {" - ", levelExpr},
	nodeMul:      {" * ", levelTerm},
	nodeDiv:      {" / ", levelTerm},
	nodeFloorDiv: {" // ", levelTerm},
	nodeMod:      {" % ", levelTerm},
	nodePar:      {" || ", levelTerm},
}

func (n *node) level() int {
	switch n.kind {
	case nodeNeg, nodeNop:
		return levelSign
	case nodePow:
		return levelPow
	case nodeFac:
		return levelPostfix
	case nodeNum, nodeName, nodeCall:
		return levelPrim
	}
	if op, ok := binops[n.kind]; ok {
		return op.level
	}
	return levelExpr
}

// String formats the tree as a statement that parses to an equivalent tree.
func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, levelExpr)
	return b.String()
}

// fmt writes n, wrapped in parentheses if it binds less tightly than need.
func (n *node) fmt(b *strings.Builder, need int) {
	if n.level() < need {
		b.WriteByte('(')
		defer b.WriteByte(')')
	}
	switch n.kind {
	case nodeNum:
		b.WriteString(strconv.FormatFloat(real(n.num), 'g', -1, 64))
	case nodeName:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		b.WriteByte('(')
		n.right.fmtargs(b)
		b.WriteByte(')')
	case nodeArg:
		// Args only appear inside calls and lists, which use fmtargs.
		n.fmtargs(b)
	case nodeList:
		b.WriteByte('[')
		n.right.fmtargs(b)
		b.WriteByte(']')
	case nodeRange:
		b.WriteByte('[')
		b.WriteString(n.name)
		b.WriteByte('=')
		a := n.right
		a.left.fmtbound(b)
		b.WriteString(", ")
		a = a.right
		a.left.fmtbound(b)
		if a.right != nil {
			b.WriteByte(':')
			a.right.left.fmtbound(b)
		}
		b.WriteByte(' ')
		n.left.fmt(b, levelExpr)
		b.WriteByte(']')
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b, levelSign)
	case nodeNop:
		b.WriteByte('+')
		n.left.fmt(b, levelSign)
	case nodeFac:
		n.left.fmt(b, levelPostfix)
		b.WriteByte('!')
	case nodePow:
		n.left.fmt(b, levelPostfix)
		b.WriteString(" ^ ")
		n.right.fmt(b, levelSign)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeFloorDiv, nodeMod, nodePar:
		op := binops[n.kind]
		n.left.fmt(b, op.level)
		b.WriteString(op.op)
		n.right.fmt(b, op.level+1)
	case nodeAssign:
		b.WriteString(n.name)
		b.WriteString(" = ")
		n.left.fmt(b, levelExpr)
	case nodeDef:
		b.WriteString("fn ")
		b.WriteString(n.fn.String())
	case nodeDel:
		b.WriteString("del")
		for a := n.right; a != nil; a = a.right {
			b.WriteByte(' ')
			b.WriteString(a.left.name)
		}
	default:
		panic("deskcalc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// fmtargs writes a comma-separated argument chain.
func (n *node) fmtargs(b *strings.Builder) {
	for a := n; a != nil; a = a.right {
		if a != n {
			b.WriteString(", ")
		}
		a.left.fmt(b, levelExpr)
	}
}

// fmtbound writes a range bound, which is a primary with an optional sign.
func (n *node) fmtbound(b *strings.Builder) {
	if n.kind == nodeNeg && n.left.level() == levelPrim {
		b.WriteByte('-')
		n.left.fmt(b, levelPrim)
		return
	}
	n.fmt(b, levelPrim)
}
