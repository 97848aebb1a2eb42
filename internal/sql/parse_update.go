package sql

// parseUpdate parses:
//
//	UPDATE tableName SET col1 = value1, col2 = value2 [WHERE expr];
func (p *parser) parseUpdate() (Statement, error) {
	if _, err := p.expect(TokenUpdate); err != nil {
		return nil, err
	}

	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenSet); err != nil {
		return nil, err
	}

	var assignments []Assignment
	for {
		col, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenEq); err != nil {
			return nil, err
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, Assignment{Column: col, Value: val})

		if _, ok := p.match(TokenComma); !ok {
			break
		}
	}

	where, err := p.parseWhere()
	if err != nil {
		return nil, err
	}

	return &UpdateStmt{
		TableName:   table,
		Assignments: assignments,
		Where:       where,
	}, nil
}
