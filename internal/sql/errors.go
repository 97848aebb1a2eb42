package sql

import (
	"fmt"
	"strings"
)

// LexicalError reports input the lexer could not turn into a token.
type LexicalError struct {
	Pos  int
	Char rune
	Msg  string
}

func (e *LexicalError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("lexical error at position %d: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("lexical error at position %d: unexpected character %q", e.Pos, e.Char)
}

// SyntaxError reports a token the parser did not expect.
type SyntaxError struct {
	Pos      int
	Expected []TokenKind
	Found    Token
	Msg      string
}

func (e *SyntaxError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Msg)
	}
	want := make([]string, len(e.Expected))
	for i, k := range e.Expected {
		want[i] = k.String()
	}
	msg := fmt.Sprintf("syntax error at position %d: expected %s, found %s",
		e.Pos, strings.Join(want, " or "), e.Found.Kind)
	if e.Found.Kind.IsKeyword() {
		msg += fmt.Sprintf(" (%q is a reserved word)", e.Found.Text)
	}
	return msg
}
