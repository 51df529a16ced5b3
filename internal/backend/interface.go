// Package backend selects and constructs the data backend: the in-process
// memory store, the Google Sheets workbook, or the local SQLite database.
package backend

import (
	"context"

	"moneymage/internal/sheets"
)

// Backend is the unified interface every data backend provides.
type Backend interface {
	sheets.LedgerReader
	sheets.LedgerWriter
	sheets.BudgetReader
	sheets.RuleReader
	sheets.BalanceReader
}

// CleanupFunc releases a backend's resources.
type CleanupFunc func() error

// Result pairs a backend instance with its optional cleanup.
type Result struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Factory creates backends from configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds everything backend construction needs.
type Config struct {
	Type Type

	// SQLite
	SQLiteDBPath string
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets
	GoogleSpreadsheetID      string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string

	// Memory
	DataDirectory string
}

// Type selects the backend implementation.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	SheetsBackend Type = "sheets"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// IsValid reports whether t names a known backend.
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, SheetsBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
