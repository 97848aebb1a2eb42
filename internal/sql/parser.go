package sql

// parser is a cursor over an immutable token slice. The grammar is LL(1), so
// peek/check/match/expect are all it needs.
type parser struct {
	tokens []Token
	pos    int
}

// Parse tokenizes and parses a single statement.
func Parse(query string) (Statement, error) {
	tokens, err := Tokenize(query)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens parses a single statement from tokens produced by Tokenize.
// A trailing semicolon is allowed; anything else after the statement is an error.
func ParseTokens(tokens []Token) (Statement, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TokenEOF {
		end := 0
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			end = last.Pos + len(last.Text)
		}
		tokens = append(tokens[:len(tokens):len(tokens)], Token{Kind: TokenEOF, Pos: end})
	}

	p := &parser{tokens: tokens}
	if p.check(TokenEOF) {
		return nil, &SyntaxError{Pos: p.peek().Pos, Found: p.peek(), Msg: "empty query"}
	}

	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	p.match(TokenSemicolon)
	if !p.check(TokenEOF) {
		return nil, p.unexpected(TokenEOF)
	}
	return stmt, nil
}

// parseStatement dispatches on the first token.
func (p *parser) parseStatement() (Statement, error) {
	switch p.peek().Kind {
	case TokenSelect:
		return p.parseSelect()
	case TokenInsert:
		return p.parseInsert()
	case TokenUpdate:
		return p.parseUpdate()
	case TokenDelete:
		return p.parseDelete()
	case TokenCreateTable, TokenCreate:
		return p.parseCreateTable()
	default:
		return nil, p.unexpected(TokenSelect, TokenInsert, TokenUpdate, TokenDelete, TokenCreateTable)
	}
}

// === Token helpers ===

func (p *parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// check reports whether the current token is one of kinds.
func (p *parser) check(kinds ...TokenKind) bool {
	cur := p.peek().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

// match consumes the current token if it is one of kinds.
func (p *parser) match(kinds ...TokenKind) (Token, bool) {
	if p.check(kinds...) {
		return p.advance(), true
	}
	return Token{}, false
}

// expect consumes a token of the given kind or fails with a SyntaxError.
func (p *parser) expect(kind TokenKind) (Token, error) {
	if tok, ok := p.match(kind); ok {
		return tok, nil
	}
	return Token{}, p.unexpected(kind)
}

func (p *parser) expectIdent() (string, error) {
	tok, err := p.expect(TokenIdent)
	if err != nil {
		return "", err
	}
	return tok.Text, nil
}

// unexpected builds a SyntaxError for the current token.
func (p *parser) unexpected(expected ...TokenKind) error {
	tok := p.peek()
	return &SyntaxError{Pos: tok.Pos, Expected: expected, Found: tok}
}

// === Expressions ===

var compareOps = map[TokenKind]CompareOp{
	TokenEq: OpEq,
	TokenNe: OpNe,
	TokenLt: OpLt,
	TokenGt: OpGt,
	TokenLe: OpLe,
	TokenGe: OpGe,
}

// parseExpr parses an OR chain, the lowest precedence level.
func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.match(TokenOr); !ok {
			return left, nil
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BooleanExpr{Left: left, Op: OpOr, Right: right}
	}
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.match(TokenAnd); !ok {
			return left, nil
		}
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &BooleanExpr{Left: left, Op: OpAnd, Right: right}
	}
}

// parseComparison parses "atom [op atom]". Comparisons do not chain.
func (p *parser) parseComparison() (Expr, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	tok, ok := p.match(TokenEq, TokenNe, TokenLt, TokenGt, TokenLe, TokenGe)
	if !ok {
		return left, nil
	}
	right, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	return &Comparison{Left: left, Op: compareOps[tok.Kind], Right: right}, nil
}

func (p *parser) parseAtom() (Expr, error) {
	switch tok := p.peek(); tok.Kind {
	case TokenNumber, TokenString:
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return &Literal{Value: v}, nil
	case TokenIdent:
		p.advance()
		return &ColumnRef{Name: tok.Text}, nil
	default:
		return nil, p.unexpected(TokenNumber, TokenString, TokenIdent)
	}
}

// parseIdentList parses "ident (',' ident)*".
func (p *parser) parseIdentList() ([]string, error) {
	var names []string
	for {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if _, ok := p.match(TokenComma); !ok {
			return names, nil
		}
	}
}

// parseWhere parses an optional WHERE clause; it returns nil when absent.
func (p *parser) parseWhere() (Expr, error) {
	if _, ok := p.match(TokenWhere); !ok {
		return nil, nil
	}
	return p.parseExpr()
}
