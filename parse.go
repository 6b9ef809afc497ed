package deskcalc

import (
	"errors"
	"io"
	"os"
	"strings"

	"fortio.org/log"
)

// Statement = [ Def | Del | Assign | Expr ] ( '\n' | ';' | EOF )
// Def = 'fn' name Params '=' Expr | name Params '=' Expr
// Params = '(' name { ',' name } ')'
// Del = 'del' name { name }
// Assign = name '=' ( Expr | Bracket )
// Expr = Term { ( '+' | '-' ) Term }
// Term = Sign { ( '*' | '/' | '//' | 'div' | '%' | 'mod' | '||' ) Sign }
// Sign = ( '+' | '-' ) Sign | Postfix
// Postfix = Prim { ( '^' | '**' ) Sign | '!' | Postfix }
// Prim = num | name | name Args | '(' Expr ')'
// Args = '(' Expr { ',' Expr } ')' | '(' Bracket ')'
// Bracket = '[' Expr { ',' Expr } ']' | '[' name '=' Bound ',' Bound [ ':' Bound ] Expr ']'
// Bound = [ '+' | '-' ] Prim
//
// A Postfix directly following another is an implicit multiplication, as in
// 2pi or 3(x+1). A Def without 'fn' is only recognized at the start of a
// statement with a name that is not bound to anything.

// Parser parses and executes statements against a symbol table. It is not
// safe to use a Parser concurrently.
type Parser struct {
	table *SymbolTable
	lex   *lexer
	// tok is the current token.
	tok token
	// depth is the number of open parentheses in the current statement.
	depth int

	hasResult bool
	res       complex128

	out    io.Writer
	format Formatter
}

// NewParser creates a parser that executes statements against table.
func NewParser(table *SymbolTable, opts ...ParserOption) *Parser {
	p := Parser{table: table, out: os.Stdout}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.parserOption(&p)
	}
	return &p
}

// Table returns the parser's symbol table.
func (p *Parser) Table() *SymbolTable {
	return p.table
}

// HasResult returns whether the most recently executed statement produced a
// result. Assignments, definitions, deletions, list displays, and empty
// statements do not.
func (p *Parser) HasResult() bool {
	return p.hasResult
}

// Result returns the result of the most recently executed statement. Panics
// if there is no result.
func (p *Parser) Result() complex128 {
	if !p.hasResult {
		panic("deskcalc: Result called with no result")
	}
	return p.res
}

// Parse executes every statement in src. It stops at the first error.
func (p *Parser) Parse(src io.RuneScanner) error {
	p.Reset(src)
	for {
		err := p.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// ParseString executes every statement in src. It stops at the first error.
func (p *Parser) ParseString(src string) error {
	return p.Parse(strings.NewReader(src))
}

// Reset sets the parser to read statements from src with Next and clears
// the previous result.
func (p *Parser) Reset(src io.RuneScanner) {
	p.lex = lex(src)
	p.tok = token{}
	p.depth = 0
	p.hasResult = false
}

// Next executes one statement from the input set by Reset. It returns io.EOF
// once the input is exhausted. After an error, the rest of the failed
// statement is skipped, so calling Next again continues with the following
// statement. A statement that fails has no effect on the symbol table.
//
// Next does not read past the end of the statement, so it is suitable for
// interactive input.
func (p *Parser) Next() error {
	if p.lex == nil {
		return io.EOF
	}
	p.depth = 0
	if err := p.advance(); err != nil {
		p.hasResult = false
		p.skip()
		return err
	}
	if p.tok.kind == tokenEnd {
		return io.EOF
	}
	p.hasResult = false
	n, err := p.statement()
	if err != nil {
		p.depth = 0
		p.skip()
		return err
	}
	if n != nil {
		log.LogVf("statement %v", n)
	}
	return p.exec(n)
}

// Eval executes statements from src with a new symbol table and returns the
// result of the last one. If the last statement has no result, the result is
// zero.
func Eval(src string) (complex128, error) {
	p := NewParser(NewSymbolTable(), ListOutput(io.Discard))
	if err := p.ParseString(src); err != nil {
		return 0, err
	}
	if !p.HasResult() {
		return 0, nil
	}
	return p.Result(), nil
}

// advance scans the next token and makes it current.
func (p *Parser) advance() error {
	tok, err := p.lex.next()
	p.tok = tok
	return err
}

// skip discards tokens up to the end of the current statement.
func (p *Parser) skip() {
	for p.tok.kind != tokenPrint && p.tok.kind != tokenEnd {
		if err := p.advance(); err != nil {
			var le *LexError
			if !errors.As(err, &le) {
				// The input itself failed. There is nothing more to read.
				p.lex = nil
				return
			}
		}
	}
}

// unexpected returns an error for the current token.
func (p *Parser) unexpected(want string) error {
	return &SyntaxError{Col: p.tok.pos, Got: p.tok.String(), Want: want}
}

// end checks that the current token ends a statement.
func (p *Parser) end() error {
	switch p.tok.kind {
	case tokenPrint, tokenEnd:
		return nil
	case tokenRParen:
		return &BracketError{Col: p.tok.pos, Close: true}
	}
	return p.unexpected("end of statement")
}

// close consumes a closing parenthesis.
func (p *Parser) close() error {
	switch p.tok.kind {
	case tokenRParen:
		p.depth--
		return p.advance()
	case tokenPrint, tokenEnd:
		return &BracketError{Col: p.tok.pos, Close: false}
	}
	return p.unexpected(")")
}

// statement parses one statement. The result is nil for an empty statement.
func (p *Parser) statement() (*node, error) {
	var n *node
	var err error
	switch p.tok.kind {
	case tokenPrint, tokenEnd:
		return nil, nil
	case tokenFn:
		n, err = p.definition()
	case tokenDel:
		n, err = p.deletion()
	case tokenIdent:
		n, err = p.identifier()
	default:
		n, err = p.expr()
	}
	if err != nil {
		return nil, err
	}
	if err := p.end(); err != nil {
		return nil, err
	}
	return n, nil
}

// identifier parses a statement beginning with a name.
func (p *Parser) identifier() (*node, error) {
	name := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	switch {
	case p.tok.kind == tokenAssign:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.assignment(name.text)
	case p.tok.kind == tokenLParen && !p.table.IsSet(name.text):
		params, err := p.params()
		if err != nil {
			var le *LexError
			if errors.As(err, &le) {
				return nil, err
			}
			// Not a definition, so it must be a call.
			return nil, &NameError{Name: name.text, Kind: "function"}
		}
		return p.body(name.text, params)
	}
	// Just an expression. Back up so that it starts at the name.
	p.lex.push(p.tok)
	p.tok = name
	return p.expr()
}

// assignment parses the value assigned to name. The value may itself be an
// assignment, so y = x = 3 binds both names.
func (p *Parser) assignment(name string) (*node, error) {
	var v *node
	var err error
	switch p.tok.kind {
	case tokenLBracket:
		v, err = p.bracket()
	case tokenIdent:
		target := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokenAssign {
			if err := p.advance(); err != nil {
				return nil, err
			}
			v, err = p.assignment(target.text)
			break
		}
		p.lex.push(p.tok)
		p.tok = target
		v, err = p.expr()
	default:
		v, err = p.expr()
	}
	if err != nil {
		return nil, err
	}
	return &node{kind: nodeAssign, name: name, left: v}, nil
}

// definition parses a function definition beginning with fn.
func (p *Parser) definition() (*node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind != tokenIdent {
		return nil, p.unexpected("function name")
	}
	name := p.tok.text
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind != tokenLParen {
		return nil, p.unexpected("(")
	}
	params, err := p.params()
	if err != nil {
		return nil, err
	}
	return p.body(name, params)
}

// params parses a parameter list through the following =.
func (p *Parser) params() ([]string, error) {
	var r []string
	for {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokenIdent {
			return nil, p.unexpected("parameter name")
		}
		r = append(r, p.tok.text)
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokenRParen {
			break
		}
		if p.tok.kind != tokenComma {
			return nil, p.unexpected(")")
		}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind != tokenAssign {
		return nil, p.unexpected("=")
	}
	return r, p.advance()
}

// body parses the body of a function definition.
func (p *Parser) body(name string, params []string) (*node, error) {
	f := NewFunction(name, p.table)
	for _, param := range params {
		if err := f.AddParam(param); err != nil {
			return nil, err
		}
	}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	f.body = n
	return &node{kind: nodeDef, fn: f}, nil
}

func (p *Parser) deletion() (*node, error) {
	n := &node{kind: nodeDel}
	l := n
	for {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokenIdent {
			break
		}
		l.right = &node{kind: nodeArg, left: &node{kind: nodeName, name: p.tok.text}}
		l = l.right
	}
	if n.right == nil {
		return nil, p.unexpected("name to delete")
	}
	return n, nil
}

func (p *Parser) expr() (*node, error) {
	n, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		var k nodeKind
		switch p.tok.kind {
		case tokenPlus:
			k = nodeAdd
		case tokenMinus:
			k = nodeSub
		default:
			return n, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		r, err := p.term()
		if err != nil {
			return nil, err
		}
		n = &node{kind: k, left: n, right: r}
	}
}

var termops = map[tokenKind]nodeKind{
	tokenMul:      nodeMul,
	tokenDiv:      nodeDiv,
	tokenFloorDiv: nodeFloorDiv,
	tokenMod:      nodeMod,
	tokenParallel: nodePar,
}

func (p *Parser) term() (*node, error) {
	n, err := p.sign()
	if err != nil {
		return nil, err
	}
	for {
		k, ok := termops[p.tok.kind]
		if !ok {
			return n, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		r, err := p.sign()
		if err != nil {
			return nil, err
		}
		n = &node{kind: k, left: n, right: r}
	}
}

func (p *Parser) sign() (*node, error) {
	var k nodeKind
	switch p.tok.kind {
	case tokenMinus:
		k = nodeNeg
	case tokenPlus:
		k = nodeNop
	default:
		return p.postfix()
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	x, err := p.sign()
	if err != nil {
		return nil, err
	}
	return &node{kind: k, left: x}, nil
}

func (p *Parser) postfix() (*node, error) {
	n, err := p.prim()
	if err != nil {
		return nil, err
	}
	for {
		switch p.tok.kind {
		case tokenPow:
			// Recursing through sign makes exponentiation right-associative
			// and lets the exponent have a sign.
			if err := p.advance(); err != nil {
				return nil, err
			}
			r, err := p.sign()
			if err != nil {
				return nil, err
			}
			n = &node{kind: nodePow, left: n, right: r}
		case tokenFac:
			n = &node{kind: nodeFac, left: n}
			if err := p.advance(); err != nil {
				return nil, err
			}
		case tokenIdent, tokenLParen:
			r, err := p.postfix()
			if err != nil {
				return nil, err
			}
			n = &node{kind: nodeMul, left: n, right: r}
		default:
			return n, nil
		}
	}
}

func (p *Parser) prim() (*node, error) {
	switch p.tok.kind {
	case tokenNum:
		n := &node{kind: nodeNum, num: p.tok.num}
		return n, p.advance()
	case tokenIdent:
		name := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokenLParen {
			return &node{kind: nodeName, name: name}, nil
		}
		args, err := p.args()
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeCall, name: name, right: args}, nil
	case tokenLParen:
		p.depth++
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		return n, p.close()
	case tokenRParen:
		if p.depth == 0 {
			return nil, &BracketError{Col: p.tok.pos, Close: true}
		}
	case tokenPrint, tokenEnd:
		if p.depth > 0 {
			return nil, &BracketError{Col: p.tok.pos, Close: false}
		}
	}
	return nil, p.unexpected("expression")
}

// args parses the argument list of a call, starting at the open parenthesis.
func (p *Parser) args() (*node, error) {
	p.depth++
	if err := p.advance(); err != nil {
		return nil, err
	}
	switch p.tok.kind {
	case tokenRParen:
		return nil, p.unexpected("argument")
	case tokenLBracket:
		l, err := p.bracket()
		if err != nil {
			return nil, err
		}
		if err := p.close(); err != nil {
			return nil, err
		}
		return &node{kind: nodeArg, left: l}, nil
	}
	var n node
	l := &n
	for {
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		l.right = &node{kind: nodeArg, left: x}
		l = l.right
		if p.tok.kind != tokenComma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if err := p.close(); err != nil {
		return nil, err
	}
	return n.right, nil
}

// bracket parses a list literal or range comprehension, starting at the open
// bracket.
func (p *Parser) bracket() (*node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind == tokenIdent {
		name := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokenAssign {
			return p.comprehension(name.text)
		}
		p.lex.push(p.tok)
		p.tok = name
	}
	n := &node{kind: nodeList}
	l := n
	for {
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		l.right = &node{kind: nodeArg, left: x}
		l = l.right
		if p.tok.kind != tokenComma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if p.tok.kind != tokenRBracket {
		return nil, p.unexpected("]")
	}
	return n, p.advance()
}

// comprehension parses a range comprehension, starting at the = after the
// loop variable.
func (p *Parser) comprehension(name string) (*node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	start, err := p.bound()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokenComma {
		return nil, p.unexpected(",")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	end, err := p.bound()
	if err != nil {
		return nil, err
	}
	bounds := &node{kind: nodeArg, left: start, right: &node{kind: nodeArg, left: end}}
	if p.tok.kind == tokenColon {
		if err := p.advance(); err != nil {
			return nil, err
		}
		step, err := p.bound()
		if err != nil {
			return nil, err
		}
		bounds.right.right = &node{kind: nodeArg, left: step}
	}
	body, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokenRBracket {
		return nil, p.unexpected("]")
	}
	n := &node{kind: nodeRange, name: name, left: body, right: bounds}
	return n, p.advance()
}

// bound parses a range bound. Bounds are primaries so that the body can follow
// them directly.
func (p *Parser) bound() (*node, error) {
	var k nodeKind
	switch p.tok.kind {
	case tokenMinus:
		k = nodeNeg
	case tokenPlus:
		k = nodeNop
	default:
		return p.prim()
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	x, err := p.prim()
	if err != nil {
		return nil, err
	}
	return &node{kind: k, left: x}, nil
}

// exec executes a parsed statement.
func (p *Parser) exec(n *node) error {
	if n == nil {
		return nil
	}
	t := p.table
	switch n.kind {
	case nodeDef:
		if err := t.checkFunc(n.fn.name); err != nil {
			return err
		}
		if err := n.fn.validate(); err != nil {
			return err
		}
		log.LogVf("define %v", n.fn)
		return t.SetFunc(n.fn)
	case nodeDel:
		var names []string
		for a := n.right; a != nil; a = a.right {
			names = append(names, a.left.name)
		}
		log.LogVf("delete %v", names)
		return t.RemoveAll(names...)
	case nodeAssign:
		return p.assign(n)
	case nodeName:
		if l, ok := t.List(n.name); ok {
			_, err := io.WriteString(p.out, p.format.List(l)+"\n")
			return err
		}
	}
	v, err := n.eval(t)
	if err != nil {
		return err
	}
	p.res, p.hasResult = v, true
	return nil
}

func (p *Parser) assign(n *node) error {
	t := p.table
	names := []string{n.name}
	v := n.left
	for v.kind == nodeAssign {
		names = append(names, v.name)
		v = v.left
	}
	var l List
	var x complex128
	var err error
	isList := true
	switch {
	case !v.isScalar():
		l, err = v.values(t)
	case v.kind == nodeName && t.HasList(v.name):
		l, _ = t.List(v.name)
	default:
		isList = false
		x, err = v.eval(t)
	}
	if err != nil {
		return err
	}
	// Every target is checked before any is bound.
	check, set := t.checkVar, func(name string) error { return t.SetVar(name, x) }
	if isList {
		check, set = t.checkList, func(name string) error { return t.SetList(name, l) }
	}
	for _, name := range names {
		if err := check(name); err != nil {
			return err
		}
	}
	for i := len(names) - 1; i >= 0; i-- {
		if err := set(names[i]); err != nil {
			return err
		}
	}
	return nil
}
