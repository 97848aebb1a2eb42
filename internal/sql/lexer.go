package sql

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// lexer walks the query text once, left to right.
type lexer struct {
	input  string
	pos    int
	tokens []Token
}

// Tokenize converts a query into tokens. The returned slice always ends with
// a TokenEOF token.
func Tokenize(input string) ([]Token, error) {
	l := &lexer{input: input}
	for {
		l.skipWhitespaceAndComments()
		if l.pos >= len(l.input) {
			break
		}
		if err := l.next(); err != nil {
			return nil, err
		}
	}
	l.tokens = append(l.tokens, Token{Kind: TokenEOF, Pos: l.pos})
	return l.tokens, nil
}

// peek returns the byte offset bytes ahead of the current one, or 0 past the end.
func (l *lexer) peek(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *lexer) emit(kind TokenKind, width int) {
	l.tokens = append(l.tokens, Token{Kind: kind, Text: l.input[l.pos : l.pos+width], Pos: l.pos})
	l.pos += width
}

func (l *lexer) next() error {
	ch := l.input[l.pos]
	switch {
	case ch == '=':
		l.emit(TokenEq, 1)
	case ch == '!' && l.peek(1) == '=':
		l.emit(TokenNe, 2)
	case ch == '<':
		switch l.peek(1) {
		case '>':
			l.emit(TokenNe, 2)
		case '=':
			l.emit(TokenLe, 2)
		default:
			l.emit(TokenLt, 1)
		}
	case ch == '>':
		if l.peek(1) == '=' {
			l.emit(TokenGe, 2)
		} else {
			l.emit(TokenGt, 1)
		}
	case ch == ',':
		l.emit(TokenComma, 1)
	case ch == '(':
		l.emit(TokenLParen, 1)
	case ch == ')':
		l.emit(TokenRParen, 1)
	case ch == '*':
		l.emit(TokenStar, 1)
	case ch == ';':
		l.emit(TokenSemicolon, 1)
	case ch == '\'':
		return l.readString()
	case isDigit(ch) || (ch == '-' && isDigit(l.peek(1))):
		l.readNumber()
	default:
		r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsLetter(r) && r != '_' {
			return &LexicalError{Pos: l.pos, Char: r}
		}
		l.readIdentifier()
	}
	return nil
}

func (l *lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.input) {
		switch ch := l.input[l.pos]; {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			l.pos++
		case ch == '-' && l.peek(1) == '-':
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

// readString reads a quoted literal. A doubled quote stands for one quote.
func (l *lexer) readString() error {
	start := l.pos
	l.pos++ // opening quote
	var sb strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch != '\'' {
			sb.WriteByte(ch)
			l.pos++
			continue
		}
		if l.peek(1) == '\'' {
			sb.WriteByte('\'')
			l.pos += 2
			continue
		}
		l.pos++ // closing quote
		l.tokens = append(l.tokens, Token{Kind: TokenString, Text: sb.String(), Pos: start})
		return nil
	}
	return &LexicalError{Pos: start, Char: '\'', Msg: "unterminated string literal"}
}

// readNumber reads [-]digits[.digits]. The dot is taken only when a digit follows it.
func (l *lexer) readNumber() {
	start := l.pos
	if l.input[l.pos] == '-' {
		l.pos++
	}
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	if l.peek(0) == '.' && isDigit(l.peek(1)) {
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	l.tokens = append(l.tokens, Token{Kind: TokenNumber, Text: l.input[start:l.pos], Pos: start})
}

func (l *lexer) readIdentifier() {
	start := l.pos
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '\'' {
			break
		}
		l.pos += size
	}
	text := l.input[start:l.pos]
	l.tokens = append(l.tokens, Token{Kind: lookupKeyword(text), Text: text, Pos: start})
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
