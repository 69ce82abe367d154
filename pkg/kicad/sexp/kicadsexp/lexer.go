package kicadsexp

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// TokenType represents the type of a token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenLeftParen
	TokenRightParen
	TokenSymbol
	TokenString
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenLeftParen:
		return "'('"
	case TokenRightParen:
		return "')'"
	case TokenSymbol:
		return "symbol"
	case TokenString:
		return "string"
	default:
		return "unknown"
	}
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
	Line  int
}

// Lexer tokenizes S-expressions from an io.Reader
type Lexer struct {
	reader *bufio.Reader
	line   int
}

// NewLexer creates a new lexer
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(r),
		line:   1,
	}
}

// NextToken reads the next token from the input
func (l *Lexer) NextToken() (Token, error) {
	ch, err := l.skipSpace()
	if err == io.EOF {
		return Token{Type: TokenEOF, Line: l.line}, nil
	}
	if err != nil {
		return Token{}, err
	}

	switch ch {
	case '(':
		return Token{Type: TokenLeftParen, Value: "(", Line: l.line}, nil
	case ')':
		return Token{Type: TokenRightParen, Value: ")", Line: l.line}, nil
	case '"':
		return l.readString()
	default:
		l.unread()
		return l.readSymbol()
	}
}

// skipSpace consumes whitespace and returns the first significant rune
func (l *Lexer) skipSpace() (rune, error) {
	for {
		ch, _, err := l.reader.ReadRune()
		if err != nil {
			return 0, err
		}
		if ch == '\n' {
			l.line++
		}
		if !unicode.IsSpace(ch) {
			return ch, nil
		}
	}
}

func (l *Lexer) unread() {
	_ = l.reader.UnreadRune()
}

// readString reads a quoted string; the opening quote is already consumed
func (l *Lexer) readString() (Token, error) {
	start := l.line
	var sb strings.Builder
	for {
		ch, _, err := l.reader.ReadRune()
		if err == io.EOF {
			return Token{}, fmt.Errorf("line %d: unterminated string", start)
		}
		if err != nil {
			return Token{}, err
		}

		switch ch {
		case '"':
			return Token{Type: TokenString, Value: sb.String(), Line: start}, nil
		case '\n':
			l.line++
			sb.WriteRune(ch)
		case '\\':
			next, _, err := l.reader.ReadRune()
			if err != nil {
				return Token{}, fmt.Errorf("line %d: unexpected EOF after backslash", l.line)
			}
			switch next {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			default:
				sb.WriteRune(next)
			}
		default:
			sb.WriteRune(ch)
		}
	}
}

// readSymbol reads a bare atom up to the next delimiter
func (l *Lexer) readSymbol() (Token, error) {
	var sb strings.Builder
	for {
		ch, _, err := l.reader.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Token{}, err
		}
		if unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '"' {
			l.unread()
			break
		}
		sb.WriteRune(ch)
	}

	if sb.Len() == 0 {
		return Token{}, fmt.Errorf("line %d: empty symbol", l.line)
	}
	return Token{Type: TokenSymbol, Value: sb.String(), Line: l.line}, nil
}
