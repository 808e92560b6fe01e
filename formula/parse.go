package formula

// Parse parses one arithmetic expression into an Unbound wrapper. On
// failure it returns a *SyntaxError carrying the source offset of the
// offending token and no partial result. The whole input must be consumed;
// trailing tokens fail as unexpected.
func Parse(src string) (*Unbound, error) {
	p := &parser{src: src, scan: NewScanner(src)}
	p.next()

	root, err := p.additive()
	if err != nil {
		return nil, err
	}

	if p.tok.Kind != KindEOF {
		return nil, p.errUnexpected()
	}

	return &Unbound{root: root}, nil
}

// parser holds the parser state: the scanner and a one-token lookahead.
type parser struct {
	src  string
	scan *Scanner
	tok  Token
}

func (p *parser) next() { p.tok = p.scan.Next() }

// additive parses: multiplicative (("+" | "-") multiplicative)*.
func (p *parser) additive() (node, error) {
	lhs, err := p.multiplicative()
	if err != nil {
		return nil, err
	}

	for p.tok.Kind == KindPlus || p.tok.Kind == KindMinus {
		op := p.tok.Kind
		p.next()

		rhs, err := p.multiplicative()
		if err != nil {
			return nil, err
		}

		lhs = &binaryNode{op: op, lhs: lhs, rhs: rhs}
	}

	return lhs, nil
}

// multiplicative parses: unary (("*" | "/" | "%") unary)*.
func (p *parser) multiplicative() (node, error) {
	lhs, err := p.unary()
	if err != nil {
		return nil, err
	}

	for p.tok.Kind == KindStar || p.tok.Kind == KindSlash ||
		p.tok.Kind == KindPercent {
		op := p.tok.Kind
		p.next()

		rhs, err := p.unary()
		if err != nil {
			return nil, err
		}

		lhs = &binaryNode{op: op, lhs: lhs, rhs: rhs}
	}

	return lhs, nil
}

// unary parses: "-" unary | primary. Negation is right-recursive, so
// "--5" nests two negations.
func (p *parser) unary() (node, error) {
	if p.tok.Kind == KindMinus {
		p.next()

		operand, err := p.unary()
		if err != nil {
			return nil, err
		}

		return &negNode{operand: operand}, nil
	}

	return p.primary()
}

// primary parses: NUMBER | IDENT ("." IDENT)* | "(" additive ")".
func (p *parser) primary() (node, error) {
	switch p.tok.Kind {
	case KindNumber:
		n := &literalNode{value: p.tok.Value}
		p.next()

		return n, nil

	case KindIdent:
		return p.name()

	case KindLParen:
		p.next()

		inner, err := p.additive()
		if err != nil {
			return nil, err
		}

		if p.tok.Kind != KindRParen {
			return nil, p.errExpected(`')'`)
		}

		p.next()

		return inner, nil
	}

	return nil, p.errExpected("number, identifier, or '('")
}

// name parses a dotted identifier chain into a single symbolic reference.
func (p *parser) name() (node, error) {
	ref := &nameNode{
		parts:  []string{p.tok.Text},
		offset: p.tok.Offset,
	}
	p.next()

	for p.tok.Kind == KindDot {
		p.next()

		if p.tok.Kind != KindIdent {
			return nil, p.errExpected("identifier")
		}

		ref.parts = append(ref.parts, p.tok.Text)
		p.next()
	}

	return ref, nil
}

func (p *parser) errUnexpected() error {
	return &SyntaxError{
		Source: p.src,
		Offset: p.tok.Offset,
		Msg:    "unexpected " + describe(p.tok),
	}
}

func (p *parser) errExpected(what string) error {
	return &SyntaxError{
		Source: p.src,
		Offset: p.tok.Offset,
		Msg:    "expected " + what + ", found " + describe(p.tok),
	}
}

// describe renders a token for error messages.
func describe(tok Token) string {
	switch tok.Kind {
	case KindEOF:
		return "end of input"
	case KindUnknown:
		return "character " + quote(tok.Text)
	default:
		return "token " + quote(tok.Text)
	}
}

func quote(s string) string { return `"` + s + `"` }
