// Package storage is the SQLite persistence backend. It implements the
// same ports as the sheets backends so the review service never knows
// which one it is talking to.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"moneymage/internal/core"
	ports "moneymage/internal/sheets"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

var (
	_ ports.LedgerReader  = (*SQLiteRepository)(nil)
	_ ports.LedgerWriter  = (*SQLiteRepository)(nil)
	_ ports.BudgetReader  = (*SQLiteRepository)(nil)
	_ ports.RuleReader    = (*SQLiteRepository)(nil)
	_ ports.BalanceReader = (*SQLiteRepository)(nil)
)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadTransactions implements sheets.LedgerReader.
func (r *SQLiteRepository) LoadTransactions(ctx context.Context, year int) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, amount_cents, category, account, description, reconciled, note
		FROM transactions
		WHERE date >= ? AND date <= ?
		ORDER BY date, id`,
		fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year))
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			dateStr    string
			cents      int64
			category   string
			account    string
			desc       string
			reconciled bool
			note       string
		)
		if err := rows.Scan(&dateStr, &cents, &category, &account, &desc, &reconciled, &note); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		date, err := core.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("stored date %q: %w", dateStr, err)
		}
		out = append(out, core.Transaction{
			Date:        date,
			Amount:      core.Money{Cents: cents},
			Category:    category,
			Account:     account,
			Description: desc,
			Reconciled:  reconciled,
			Note:        note,
		})
	}
	return out, rows.Err()
}

// SaveTransactions implements sheets.LedgerWriter. The year's rows are
// replaced in one transaction so a failed save never leaves a half ledger.
func (r *SQLiteRepository) SaveTransactions(ctx context.Context, year int, txns []core.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM transactions WHERE date >= ? AND date <= ?`,
		fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year)); err != nil {
		return fmt.Errorf("clear year %d: %w", year, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (date, amount_cents, category, account, description, reconciled, note)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range txns {
		if _, err := stmt.ExecContext(ctx,
			t.Date.Key(), t.Amount.Cents, t.Category, t.Account, t.Description, t.Reconciled, t.Note); err != nil {
			return fmt.Errorf("insert transaction %q: %w", t.Description, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	slog.InfoContext(ctx, "Ledger saved to SQLite", "year", year, "count", len(txns))
	return nil
}

// LoadSpecs implements sheets.BudgetReader.
func (r *SQLiteRepository) LoadSpecs(ctx context.Context, year int) ([]core.CategorySpec, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, type, yearly_cents, next_year_cents
		FROM category_specs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query category specs: %w", err)
	}
	defer rows.Close()

	var specs []core.CategorySpec
	for rows.Next() {
		var (
			name     string
			typ      string
			yearly   int64
			nextYear int64
		)
		if err := rows.Scan(&name, &typ, &yearly, &nextYear); err != nil {
			return nil, fmt.Errorf("scan category spec: %w", err)
		}
		specs = append(specs, core.CategorySpec{
			Name:           name,
			Type:           core.BudgetType(typ),
			YearlyAmount:   core.Money{Cents: yearly},
			NextYearAmount: core.Money{Cents: nextYear},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range specs {
		planned, err := r.loadPlanned(ctx, specs[i].Name, year)
		if err != nil {
			return nil, err
		}
		specs[i].Planned = planned
	}
	return specs, nil
}

func (r *SQLiteRepository) loadPlanned(ctx context.Context, category string, year int) ([]core.PlannedEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, amount_cents, description, note, reconciled
		FROM planned_entries
		WHERE category = ? AND date >= ? AND date <= ?
		ORDER BY date, id`,
		category, fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year))
	if err != nil {
		return nil, fmt.Errorf("query planned entries for %s: %w", category, err)
	}
	defer rows.Close()

	var out []core.PlannedEntry
	for rows.Next() {
		var (
			dateStr    string
			cents      int64
			desc       string
			note       string
			reconciled bool
		)
		if err := rows.Scan(&dateStr, &cents, &desc, &note, &reconciled); err != nil {
			return nil, fmt.Errorf("scan planned entry: %w", err)
		}
		date, err := core.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("stored date %q: %w", dateStr, err)
		}
		out = append(out, core.PlannedEntry{
			Date:        date,
			Amount:      core.Money{Cents: cents},
			Description: desc,
			Note:        note,
			Reconciled:  reconciled,
		})
	}
	return out, rows.Err()
}

// LoadRules implements sheets.RuleReader.
func (r *SQLiteRepository) LoadRules(ctx context.Context) ([]core.Rule, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT pattern, category FROM rules ORDER BY pattern`)
	if err != nil {
		return nil, fmt.Errorf("query rules: %w", err)
	}
	defer rows.Close()

	var out []core.Rule
	for rows.Next() {
		var rule core.Rule
		if err := rows.Scan(&rule.Pattern, &rule.Category); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		out = append(out, rule)
	}
	return out, rows.Err()
}

// LoadBalances implements sheets.BalanceReader.
func (r *SQLiteRepository) LoadBalances(ctx context.Context) ([]core.AccountBalance, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT account, date, balance_cents FROM balances ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("query balances: %w", err)
	}
	defer rows.Close()

	var out []core.AccountBalance
	for rows.Next() {
		var (
			account string
			dateStr string
			cents   int64
		)
		if err := rows.Scan(&account, &dateStr, &cents); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		date, err := core.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("stored date %q: %w", dateStr, err)
		}
		out = append(out, core.AccountBalance{Account: account, Date: date, Balance: core.Money{Cents: cents}})
	}
	return out, rows.Err()
}

// SaveSpecs replaces the budget configuration. Used to mirror the workbook
// into the local store.
func (r *SQLiteRepository) SaveSpecs(ctx context.Context, specs []core.CategorySpec) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM planned_entries`); err != nil {
		return fmt.Errorf("clear planned entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM category_specs`); err != nil {
		return fmt.Errorf("clear category specs: %w", err)
	}

	for _, spec := range specs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO category_specs (name, type, yearly_cents, next_year_cents)
			VALUES (?, ?, ?, ?)`,
			spec.Name, string(spec.Type), spec.YearlyAmount.Cents, spec.NextYearAmount.Cents); err != nil {
			return fmt.Errorf("insert spec %s: %w", spec.Name, err)
		}
		for _, p := range spec.Planned {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO planned_entries (category, date, amount_cents, description, note, reconciled)
				VALUES (?, ?, ?, ?, ?, ?)`,
				spec.Name, p.Date.Key(), p.Amount.Cents, p.Description, p.Note, p.Reconciled); err != nil {
				return fmt.Errorf("insert planned entry for %s: %w", spec.Name, err)
			}
		}
	}

	return tx.Commit()
}

// SaveRules replaces the categorization rules.
func (r *SQLiteRepository) SaveRules(ctx context.Context, rules []core.Rule) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rules`); err != nil {
		return fmt.Errorf("clear rules: %w", err)
	}
	for _, rule := range rules {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO rules (pattern, category) VALUES (?, ?)`,
			rule.Pattern, rule.Category); err != nil {
			return fmt.Errorf("insert rule %q: %w", rule.Pattern, err)
		}
	}
	return tx.Commit()
}

// AppendBalance records a new balance history row.
func (r *SQLiteRepository) AppendBalance(ctx context.Context, b core.AccountBalance) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO balances (account, date, balance_cents) VALUES (?, ?, ?)`,
		b.Account, b.Date.Key(), b.Balance.Cents); err != nil {
		return fmt.Errorf("insert balance: %w", err)
	}
	return nil
}
