package sql

// parseDelete parses:
//
//	DELETE FROM tableName [WHERE expr];
//	O'CHIR users QAYERDA id = 3
func (p *parser) parseDelete() (Statement, error) {
	if _, err := p.expect(TokenDelete); err != nil {
		return nil, err
	}
	p.match(TokenFrom)

	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	where, err := p.parseWhere()
	if err != nil {
		return nil, err
	}

	return &DeleteStmt{
		TableName: table,
		Where:     where,
	}, nil
}
