package sql

import "fmt"

// parseSelect parses:
//
//	SELECT * FROM users
//	SELECT name, age FROM users WHERE age > 25 ORDER BY age DESC LIMIT 3
//	TANLASH ism, yosh JADVALDAN users QAYERDA yosh > 25 TARTIBLA yosh KAMAYISH CHEGARA 3
func (p *parser) parseSelect() (Statement, error) {
	if _, err := p.expect(TokenSelect); err != nil {
		return nil, err
	}

	stmt := &SelectStmt{}
	if _, ok := p.match(TokenStar); ok {
		stmt.Columns = []Expr{&Wildcard{}}
	} else {
		names, err := p.parseIdentList()
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			stmt.Columns = append(stmt.Columns, &ColumnRef{Name: n})
		}
	}

	if _, err := p.expect(TokenFrom); err != nil {
		return nil, err
	}
	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	stmt.TableName = table

	if stmt.Where, err = p.parseWhere(); err != nil {
		return nil, err
	}

	orderBy, err := p.matchOrderBy()
	if err != nil {
		return nil, err
	}
	if orderBy {
		if stmt.OrderBy, err = p.parseOrderKeys(); err != nil {
			return nil, err
		}
	}

	if _, ok := p.match(TokenLimit); ok {
		tok, err := p.expect(TokenNumber)
		if err != nil {
			return nil, err
		}
		v, err := numberValue(tok)
		if err != nil {
			return nil, err
		}
		if v.Type != TypeInteger || v.I64 < 0 || int64(int(v.I64)) != v.I64 {
			return nil, &SyntaxError{Pos: tok.Pos, Found: tok,
				Msg: fmt.Sprintf("LIMIT expects a non-negative integer, got %s", tok.Text)}
		}
		n := int(v.I64)
		stmt.Limit = &n
	}

	return stmt, nil
}

// matchOrderBy consumes TARTIBLA or ORDER BY.
func (p *parser) matchOrderBy() (bool, error) {
	if _, ok := p.match(TokenOrderBy); ok {
		return true, nil
	}
	if _, ok := p.match(TokenOrder); !ok {
		return false, nil
	}
	if _, err := p.expect(TokenBy); err != nil {
		return false, err
	}
	return true, nil
}

// parseOrderKeys parses "col [ASC|DESC] (, col [ASC|DESC])*".
func (p *parser) parseOrderKeys() ([]OrderKey, error) {
	var keys []OrderKey
	for {
		col, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		key := OrderKey{Column: col}
		if _, ok := p.match(TokenDesc); ok {
			key.Desc = true
		}
		p.match(TokenAsc)
		keys = append(keys, key)

		if _, ok := p.match(TokenComma); !ok {
			return keys, nil
		}
	}
}
