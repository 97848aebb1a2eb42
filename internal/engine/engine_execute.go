package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/logging"
	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/sql"
)

// Execute parses and runs one statement.
func (e *DBEngine) Execute(query string) (*Result, error) {
	if !e.started {
		return nil, fmt.Errorf("engine not started")
	}
	stmt, err := sql.Parse(query)
	if err != nil {
		return nil, err
	}
	return e.ExecuteStatement(stmt)
}

// ExecuteStatement runs an already parsed statement. Mutating statements
// have flushed to storage by the time it returns.
func (e *DBEngine) ExecuteStatement(stmt sql.Statement) (*Result, error) {
	if !e.started {
		return nil, fmt.Errorf("engine not started")
	}

	log := logging.WithQuery(e.log, uuid.NewString())
	kind := statementKind(stmt)
	log.Debug("executing statement", "kind", kind)
	start := time.Now()

	res, err := e.dispatch(log, stmt)
	if err != nil {
		log.Debug("statement failed", "kind", kind, "error", err)
		return nil, err
	}

	log.Debug("statement done",
		"kind", kind,
		"duration", time.Since(start),
		"rows", len(res.Rows),
		"affected", res.RowsAffected,
		"skipped", res.Stats.Skipped,
	)
	return res, nil
}

func (e *DBEngine) dispatch(log *slog.Logger, stmt sql.Statement) (*Result, error) {
	switch s := stmt.(type) {
	case *sql.CreateTableStmt:
		return e.executeCreate(s)
	case *sql.InsertStmt:
		return e.executeInsert(s)
	case *sql.SelectStmt:
		return e.executeSelect(log, s)
	case *sql.UpdateStmt:
		return e.executeUpdate(log, s)
	case *sql.DeleteStmt:
		return e.executeDelete(log, s)
	default:
		return nil, fmt.Errorf("unsupported statement type %T", stmt)
	}
}

func statementKind(stmt sql.Statement) string {
	switch stmt.(type) {
	case *sql.CreateTableStmt:
		return "create"
	case *sql.InsertStmt:
		return "insert"
	case *sql.SelectStmt:
		return "select"
	case *sql.UpdateStmt:
		return "update"
	case *sql.DeleteStmt:
		return "delete"
	default:
		return fmt.Sprintf("%T", stmt)
	}
}
