package sql

// parseInsert parses an INSERT statement. INTO is optional.
//
//	INSERT INTO users (id, name) VALUES (1, 'Ali');
//	QO'SH ICHIGA users (id, ism) QIYMATLAR (1, 'Ali')
func (p *parser) parseInsert() (Statement, error) {
	if _, err := p.expect(TokenInsert); err != nil {
		return nil, err
	}
	p.match(TokenInto)

	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	cols, err := p.parseIdentList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenValues); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	var vals []Value
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
		if _, ok := p.match(TokenComma); !ok {
			break
		}
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	return &InsertStmt{
		TableName: table,
		Columns:   cols,
		Values:    vals,
	}, nil
}
