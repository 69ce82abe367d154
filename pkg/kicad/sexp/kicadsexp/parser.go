package kicadsexp

import (
	"fmt"
	"io"
)

// Parser builds expressions from a token stream
type Parser struct {
	lexer *Lexer
}

// NewParser creates a new parser from an io.Reader
func NewParser(r io.Reader) *Parser {
	return &Parser{lexer: NewLexer(r)}
}

// ParseAll parses all top-level S-expressions from the input
func (p *Parser) ParseAll() ([]Sexp, error) {
	var result []Sexp
	for {
		tok, err := p.lexer.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenEOF {
			return result, nil
		}
		expr, err := p.parseExpr(tok)
		if err != nil {
			return nil, err
		}
		result = append(result, expr)
	}
}

func (p *Parser) parseExpr(tok Token) (Sexp, error) {
	switch tok.Type {
	case TokenLeftParen:
		return p.parseList(tok.Line)
	case TokenSymbol:
		return Symbol(tok.Value), nil
	case TokenString:
		return String(tok.Value), nil
	default:
		return nil, fmt.Errorf("line %d: unexpected %s", tok.Line, tok.Type)
	}
}

// parseList reads elements until the ')' matching the '(' opened on line start
func (p *Parser) parseList(start int) (Sexp, error) {
	var elements []Sexp
	for {
		tok, err := p.lexer.NextToken()
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case TokenRightParen:
			return &List{elements: elements}, nil
		case TokenEOF:
			return nil, fmt.Errorf("line %d: unclosed list", start)
		}

		elem, err := p.parseExpr(tok)
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)
	}
}
