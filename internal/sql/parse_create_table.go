package sql

// parseCreateTable parses:
//
//	CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL, score REAL)
//	JADVAL_YARAT users (id BUTUN_SON ASOSIY_KALIT, ism MATN BOSH_EMAS)
//
// The column type is optional and defaults to TEXT. Constraints may follow in
// any order and may repeat.
func (p *parser) parseCreateTable() (Statement, error) {
	if _, ok := p.match(TokenCreateTable); !ok {
		if _, err := p.expect(TokenCreate); err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenTable); err != nil {
			return nil, err
		}
	}

	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	var columns []Column
	for {
		col, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
		if _, ok := p.match(TokenComma); !ok {
			break
		}
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	return &CreateTableStmt{
		TableName: table,
		Columns:   columns,
	}, nil
}

var columnTypes = map[TokenKind]DataType{
	TokenInteger: TypeInteger,
	TokenText:    TypeText,
	TokenReal:    TypeReal,
}

func (p *parser) parseColumnDef() (Column, error) {
	name, err := p.expectIdent()
	if err != nil {
		return Column{}, err
	}
	col := Column{Name: name, Type: TypeText}

	if tok, ok := p.match(TokenInteger, TokenText, TokenReal); ok {
		col.Type = columnTypes[tok.Kind]
	}

	for {
		switch {
		case p.check(TokenPrimaryKey):
			p.advance()
			col.PrimaryKey = true
		case p.check(TokenPrimary):
			p.advance()
			if _, err := p.expect(TokenKey); err != nil {
				return Column{}, err
			}
			col.PrimaryKey = true
		case p.check(TokenNotNull):
			p.advance()
			col.NotNull = true
		case p.check(TokenNot):
			p.advance()
			if _, err := p.expect(TokenNull); err != nil {
				return Column{}, err
			}
			col.NotNull = true
		case p.check(TokenUnique):
			p.advance()
			col.Unique = true
		default:
			return col, nil
		}
	}
}
