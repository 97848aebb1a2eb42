package sql

import (
	"fmt"
	"strconv"
	"strings"
)

// parseValue consumes a number or string token and converts it to a Value.
// Numbers containing a '.' are reals, everything else is an integer.
func (p *parser) parseValue() (Value, error) {
	tok, ok := p.match(TokenNumber, TokenString)
	if !ok {
		return Value{}, p.unexpected(TokenNumber, TokenString)
	}
	if tok.Kind == TokenString {
		return TextValue(tok.Text), nil
	}
	return numberValue(tok)
}

func numberValue(tok Token) (Value, error) {
	if strings.Contains(tok.Text, ".") {
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return Value{}, &SyntaxError{Pos: tok.Pos, Found: tok, Msg: fmt.Sprintf("invalid number %q", tok.Text)}
		}
		return RealValue(f), nil
	}
	i, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		return Value{}, &SyntaxError{Pos: tok.Pos, Found: tok, Msg: fmt.Sprintf("integer out of range: %s", tok.Text)}
	}
	return IntValue(i), nil
}
