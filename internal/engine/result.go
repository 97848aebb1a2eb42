package engine

import "github.com/RasulbekOzodov/ozbekcha-databaza/internal/sql"

// ResultKind tells whether a Result carries rows or a status message.
type ResultKind int

const (
	ResultMessage ResultKind = iota
	ResultRows
)

// ScanStats describes the full scan behind a statement.
type ScanStats struct {
	Pages   int // pages visited
	Rows    int // rows decoded
	Skipped int // rows that could not be decoded
}

// Result is what Execute returns. SELECT yields rows; every other statement
// yields a message.
type Result struct {
	Kind         ResultKind
	Columns      []string
	Rows         []sql.Row
	Message      string
	RowsAffected int
	Stats        ScanStats
}

func messageResult(msg string, affected int) *Result {
	return &Result{Kind: ResultMessage, Message: msg, RowsAffected: affected}
}
