package deskcalc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type token struct {
	kind tokenKind
	// num is the value of a tokenNum.
	num complex128
	// text is the name of a tokenIdent.
	text string
	pos  int
}

func (t token) String() string {
	switch t.kind {
	case tokenNum:
		return strconv.FormatFloat(real(t.num), 'g', -1, 64)
	case tokenIdent:
		return t.text
	default:
		return t.kind.String()
	}
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenEnd indicates the end of the input.
	tokenEnd
	// tokenNum is a real number literal.
	tokenNum
	// tokenIdent is a variable, list, or function name.
	tokenIdent
	// tokenPrint terminates a statement. It is either a newline or ;.
	tokenPrint

	tokenPlus
	tokenMinus
	tokenMul
	tokenDiv
	tokenFloorDiv
	tokenMod
	tokenPow
	tokenFac
	tokenParallel
	tokenAssign
	tokenComma
	tokenColon
	tokenLParen
	tokenRParen
	tokenLBracket
	tokenRBracket
	tokenLBrace
	tokenRBrace

	// tokenFn introduces a function definition.
	tokenFn
	// tokenDel introduces a deletion.
	tokenDel

	tokenInvalid
)

var tokenText = [...]string{
	tokenNone:     "none",
	tokenEnd:      "end of input",
	tokenNum:      "number",
	tokenIdent:    "identifier",
	tokenPrint:    "end of statement",
	tokenPlus:     "+",
	tokenMinus:    "-",
	tokenMul:      "*",
	tokenDiv:      "/",
	tokenFloorDiv: "//",
	tokenMod:      "%",
	tokenPow:      "^",
	tokenFac:      "!",
	tokenParallel: "||",
	tokenAssign:   "=",
	tokenComma:    ",",
	tokenColon:    ":",
	tokenLParen:   "(",
	tokenRParen:   ")",
	tokenLBracket: "[",
	tokenRBracket: "]",
	tokenLBrace:   "{",
	tokenRBrace:   "}",
	tokenFn:       "fn",
	tokenDel:      "del",
	tokenInvalid:  "invalid",
}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokenText) {
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenText[k]
}

// single maps the runes that are complete tokens by themselves.
var single = map[rune]tokenKind{
	'\n': tokenPrint,
	';':  tokenPrint,
	'+':  tokenPlus,
	'-':  tokenMinus,
	'%':  tokenMod,
	'^':  tokenPow,
	'!':  tokenFac,
	'=':  tokenAssign,
	',':  tokenComma,
	':':  tokenColon,
	'(':  tokenLParen,
	')':  tokenRParen,
	'[':  tokenLBracket,
	']':  tokenRBracket,
	'{':  tokenLBrace,
	'}':  tokenRBrace,
}

// keywords maps identifiers which are lexed as other tokens.
var keywords = map[string]tokenKind{
	"div": tokenFloorDiv,
	"mod": tokenMod,
	"fn":  tokenFn,
	"del": tokenDel,
}

type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	// back holds runes that have been read and returned to the input, most
	// recent last. io.RuneScanner only guarantees one rune of unreading, but
	// exponents need more lookahead.
	back []rune
	rune int
	cur  token
	p    token
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{
		src:  src,
		rune: 1,
		cur:  token{kind: tokenEnd},
	}
}

func lexString(src string) *lexer {
	return lex(strings.NewReader(src))
}

// current returns the most recently scanned token.
func (l *lexer) current() token {
	return l.cur
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok token) {
	if l.p.kind != tokenNone {
		panic("deskcalc: double push")
	}
	l.p = tok
}

// readRune reads a rune and updates the lexer's position info.
func (l *lexer) readRune() (rune, error) {
	if n := len(l.back); n > 0 {
		r := l.back[n-1]
		l.back = l.back[:n-1]
		l.rune++
		return r, nil
	}
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune returns r to the input.
func (l *lexer) unreadRune(r rune) {
	l.back = append(l.back, r)
	l.rune--
}

// next scans the next token from the input and makes it current. Once the
// input is exhausted, every call returns a tokenEnd. On error, the current
// token is tokenInvalid.
func (l *lexer) next() (token, error) {
	if l.p.kind != tokenNone {
		l.cur, l.p = l.p, token{}
		return l.cur, nil
	}
	tok, err := l.scan()
	if err != nil {
		tok.kind = tokenInvalid
	}
	l.cur = tok
	return tok, err
}

func (l *lexer) scan() (token, error) {
	defer l.buf.Reset()
	tok := token{pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEnd
				return tok, nil
			}
			return tok, err
		}
		if r != '\n' && unicode.IsSpace(r) {
			tok.pos++
			continue
		}
		if k, ok := single[r]; ok {
			tok.kind = k
			return tok, nil
		}
		switch {
		case r == '*':
			tok.kind = l.double('*', tokenPow, tokenMul)
			return tok, nil
		case r == '/':
			tok.kind = l.double('/', tokenFloorDiv, tokenDiv)
			return tok, nil
		case r == '|':
			tok.kind = l.double('|', tokenParallel, tokenInvalid)
			if tok.kind == tokenInvalid {
				l.buf.WriteRune(r)
				return tok, l.error("operator")
			}
			return tok, nil
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune(r)
			v, err := l.scanNum()
			if err != nil {
				return tok, err
			}
			tok.kind = tokenNum
			tok.num = complex(v, 0)
			return tok, nil
		case r == '_', unicode.IsLetter(r):
			l.unreadRune(r)
			l.scanIdent()
			tok.text = l.buf.String()
			if k, ok := keywords[tok.text]; ok {
				tok.kind = k
				tok.text = ""
				return tok, nil
			}
			tok.kind = tokenIdent
			return tok, nil
		default:
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error("")
		}
	}
}

// double scans the second rune of a two-rune operator. If the next rune is
// second, the result is match; otherwise the rune is unread and the result is
// alone.
func (l *lexer) double(second rune, match, alone tokenKind) tokenKind {
	r, err := l.readRune()
	if err != nil {
		return alone
	}
	if r == second {
		return match
	}
	l.unreadRune(r)
	return alone
}

// accept reads a rune and keeps it if it satisfies ok.
func (l *lexer) accept(ok func(rune) bool) bool {
	r, err := l.readRune()
	if err != nil {
		return false
	}
	if !ok(r) {
		l.unreadRune(r)
		return false
	}
	l.buf.WriteRune(r)
	return true
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func (l *lexer) scanNum() (float64, error) {
	dig := false
	for l.accept(isDigit) {
		dig = true
	}
	if l.accept(func(r rune) bool { return r == '.' }) {
		for l.accept(isDigit) {
			dig = true
		}
	}
	if !dig {
		return 0, l.error("number")
	}
	l.scanExp()
	v, err := strconv.ParseFloat(l.buf.String(), 64)
	if err != nil {
		// Only range errors are possible here. ParseFloat still gives the
		// right infinity or zero for those.
		var ne *strconv.NumError
		if !errors.As(err, &ne) || !errors.Is(ne.Err, strconv.ErrRange) {
			return 0, l.error("number")
		}
	}
	return v, nil
}

// scanExp scans an exponent suffix if there is one. An e or E that does not
// begin an exponent is left in the input, so 2e is 2 times e.
func (l *lexer) scanExp() {
	e, err := l.readRune()
	if err != nil {
		return
	}
	if e != 'e' && e != 'E' {
		l.unreadRune(e)
		return
	}
	s, err := l.readRune()
	if err != nil {
		l.unreadRune(e)
		return
	}
	if isDigit(s) {
		l.buf.WriteRune(e)
		l.buf.WriteRune(s)
		for l.accept(isDigit) {
		}
		return
	}
	if s != '+' && s != '-' {
		l.unreadRune(s)
		l.unreadRune(e)
		return
	}
	d, err := l.readRune()
	if err != nil || !isDigit(d) {
		if err == nil {
			l.unreadRune(d)
		}
		l.unreadRune(s)
		l.unreadRune(e)
		return
	}
	l.buf.WriteRune(e)
	l.buf.WriteRune(s)
	l.buf.WriteRune(d)
	for l.accept(isDigit) {
	}
}

func (l *lexer) scanIdent() {
	for l.accept(func(r rune) bool { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }) {
	}
}

func (l *lexer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.rune,
	}
}
