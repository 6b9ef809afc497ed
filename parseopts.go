package deskcalc

import (
	"io"
)

// ParserOption is an option used when creating a parser.
type ParserOption interface {
	parserOption(*Parser)
}

type (
	outopt    struct{ w io.Writer }
	formatopt Formatter
)

func (o outopt) parserOption(p *Parser) {
	p.out = o.w
}

func (o formatopt) parserOption(p *Parser) {
	p.format = Formatter(o)
}

// ListOutput sets the writer to which the parser writes lists named by
// themselves as statements. The default is os.Stdout.
func ListOutput(w io.Writer) ParserOption {
	return outopt{w}
}

// ListFormat sets the format the parser uses to write lists.
func ListFormat(f Formatter) ParserOption {
	return formatopt(f)
}
