package deskcalc

import (
	"math"

	"fortio.org/log"
)

// maxRange is the most values a range comprehension may produce.
const maxRange = 1 << 20

// eval computes the value of an expression node.
func (n *node) eval(t *SymbolTable) (complex128, error) {
	switch n.kind {
	case nodeNum:
		return n.num, nil
	case nodeName:
		return t.Value(n.name)
	case nodeCall:
		return n.call(t)
	case nodeNeg:
		v, err := n.left.eval(t)
		// Subtracting from zero keeps a real result's imaginary part at +0,
		// which keeps principal branches of sqrt, ln and ^ on the positive side.
		return 0 - v, err
	case nodeNop:
		return n.left.eval(t)
	case nodeFac:
		v, err := n.left.eval(t)
		if err != nil {
			return 0, err
		}
		return factorial(v)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeFloorDiv, nodeMod, nodePar, nodePow:
		l, err := n.left.eval(t)
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval(t)
		if err != nil {
			return 0, err
		}
		return binary(n.kind, l, r)
	default:
		panic("deskcalc: eval on " + n.kind.String())
	}
}

func binary(kind nodeKind, l, r complex128) (complex128, error) {
	switch kind {
	case nodeAdd:
		return l + r, nil
	case nodeSub:
		return l - r, nil
	case nodeMul:
		return l * r, nil
	case nodeDiv:
		return divide(l, r)
	case nodeFloorDiv:
		return floorDivide(l, r)
	case nodeMod:
		return modulo(l, r)
	case nodePar:
		return parallel(l, r)
	case nodePow:
		return power(l, r), nil
	default:
		panic("deskcalc: invalid binary operator " + kind.String())
	}
}

// call evaluates a call node. The name is resolved when the call happens, so a
// function body sees whatever the table holds at that time.
func (n *node) call(t *SymbolTable) (complex128, error) {
	if t.HasFunc(n.name) {
		args, err := n.right.args(t)
		if err != nil {
			return 0, err
		}
		log.LogVf("call %s%v", n.name, args)
		return t.Call(n.name, args)
	}
	// a(b + c) is a multiplication if a is a variable.
	if t.HasVar(n.name) && n.right.right == nil && n.right.left.isScalar() {
		l, err := t.Value(n.name)
		if err != nil {
			return 0, err
		}
		r, err := n.right.left.eval(t)
		if err != nil {
			return 0, err
		}
		return l * r, nil
	}
	return 0, &NameError{Name: n.name, Kind: "function"}
}

// isScalar returns whether n evaluates to a number rather than a list.
func (n *node) isScalar() bool {
	return n.kind != nodeList && n.kind != nodeRange
}

// args evaluates an argument chain. A chain containing only a list literal, a
// range comprehension, or the name of a list passes the list's elements.
func (n *node) args(t *SymbolTable) (List, error) {
	if n.right == nil {
		if !n.left.isScalar() {
			return n.left.values(t)
		}
		if n.left.kind == nodeName {
			if l, ok := t.List(n.left.name); ok {
				return l, nil
			}
		}
	}
	return n.list(t)
}

// values evaluates a list literal or range comprehension.
func (n *node) values(t *SymbolTable) (List, error) {
	switch n.kind {
	case nodeList:
		return n.list(t)
	case nodeRange:
		return n.collect(t)
	default:
		panic("deskcalc: values of " + n.kind.String())
	}
}

// list evaluates each element of an argument chain or list literal.
func (n *node) list(t *SymbolTable) (List, error) {
	a := n
	if n.kind == nodeList {
		a = n.right
	}
	var r List
	for ; a != nil; a = a.right {
		v, err := a.left.eval(t)
		if err != nil {
			return nil, err
		}
		r = append(r, v)
	}
	return r, nil
}

// collect evaluates a range comprehension. The loop variable is shadowed for
// the duration of the loop.
func (n *node) collect(t *SymbolTable) (List, error) {
	bounds, err := n.right.list(t)
	if err != nil {
		return nil, err
	}
	for _, b := range bounds {
		if imag(b) != 0 {
			return nil, &DomainError{Func: "range", X: b, Reason: "bounds must be real"}
		}
	}
	start, end, step := real(bounds[0]), real(bounds[1]), 1.0
	if len(bounds) > 2 {
		step = real(bounds[2])
	}
	if step == 0 || (end-start)*step < 0 {
		return nil, &DomainError{Func: "range", X: complex(step, 0), Reason: "infinite loop"}
	}
	// Allow for rounding in the quotient so that e.g. 0 to 0.3 by 0.1 includes
	// the end.
	count := math.Floor((end-start)/step+1e-9) + 1
	if math.IsNaN(count) || count > maxRange {
		return nil, &DomainError{Func: "range", X: complex(step, 0), Reason: "too many values"}
	}
	g := NewGuard(t)
	defer g.Release()
	if err := g.Shadow(n.name, complex(start, 0)); err != nil {
		return nil, err
	}
	r := make(List, 0, int(count))
	for i := 0; i < int(count); i++ {
		g.rebind(n.name, complex(start+float64(i)*step, 0))
		v, err := n.left.eval(t)
		if err != nil {
			return nil, err
		}
		r = append(r, v)
	}
	return r, nil
}
