// Package memory is the in-process backend used by tests and local runs.
// It holds the whole workbook in maps behind one mutex and optionally seeds
// itself from JSON files in a data directory.
package memory

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"moneymage/internal/core"
	"moneymage/internal/sheets"
)

type Store struct {
	mu       sync.Mutex
	specs    []core.CategorySpec
	rules    []core.Rule
	balances []core.AccountBalance
	ledgers  map[int][]core.Transaction
}

func New() *Store {
	return &Store{ledgers: make(map[int][]core.Transaction)}
}

// NewFromFiles seeds a store from JSON files under base. Missing or
// malformed files leave the corresponding section empty. Transactions are
// JSON lines (one record per line), the rest are plain JSON arrays.
func NewFromFiles(base string) *Store {
	s := New()

	var specRecs []specRecord
	readJSON(filepath.Join(base, "specs.json"), &specRecs)
	for _, r := range specRecs {
		if spec, ok := r.toCore(); ok {
			s.specs = append(s.specs, spec)
		}
	}

	readJSON(filepath.Join(base, "rules.json"), &s.rules)

	var balRecs []balanceRecord
	readJSON(filepath.Join(base, "balances.json"), &balRecs)
	for _, r := range balRecs {
		if b, ok := r.toCore(); ok {
			s.balances = append(s.balances, b)
		}
	}

	for _, t := range readTransactionLines(filepath.Join(base, "transactions.jsonl")) {
		y := t.Date.Year()
		s.ledgers[y] = append(s.ledgers[y], t)
	}
	return s
}

// Seed replaces the store's budget configuration. Test helper.
func (s *Store) Seed(specs []core.CategorySpec, rules []core.Rule, balances []core.AccountBalance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.specs = append([]core.CategorySpec(nil), specs...)
	s.rules = append([]core.Rule(nil), rules...)
	s.balances = append([]core.AccountBalance(nil), balances...)
}

func (s *Store) LoadTransactions(_ context.Context, year int) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.ledgers[year]...), nil
}

func (s *Store) SaveTransactions(_ context.Context, year int, txns []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledgers[year] = append([]core.Transaction(nil), txns...)
	return nil
}

func (s *Store) LoadSpecs(_ context.Context, year int) ([]core.CategorySpec, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.CategorySpec(nil), s.specs...), nil
}

func (s *Store) LoadRules(_ context.Context) ([]core.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Rule(nil), s.rules...), nil
}

func (s *Store) LoadBalances(_ context.Context) ([]core.AccountBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.AccountBalance(nil), s.balances...), nil
}

// Seed file wire forms: dates as yyyy-mm-dd strings, money as cents.
type (
	specRecord struct {
		Name          string          `json:"name"`
		Type          string          `json:"type"`
		YearlyCents   int64           `json:"yearly_cents"`
		NextYearCents int64           `json:"next_year_cents"`
		Planned       []plannedRecord `json:"planned,omitempty"`
	}

	plannedRecord struct {
		Date        string `json:"date"`
		AmountCents int64  `json:"amount_cents"`
		Description string `json:"description"`
		Note        string `json:"note,omitempty"`
		Reconciled  bool   `json:"reconciled,omitempty"`
	}

	balanceRecord struct {
		Account      string `json:"account"`
		Date         string `json:"date"`
		BalanceCents int64  `json:"balance_cents"`
	}
)

func (r specRecord) toCore() (core.CategorySpec, bool) {
	spec := core.CategorySpec{
		Name:           r.Name,
		Type:           core.BudgetType(r.Type),
		YearlyAmount:   core.Money{Cents: r.YearlyCents},
		NextYearAmount: core.Money{Cents: r.NextYearCents},
	}
	for _, p := range r.Planned {
		date, err := core.ParseDate(p.Date)
		if err != nil {
			continue
		}
		spec.Planned = append(spec.Planned, core.PlannedEntry{
			Date:        date,
			Amount:      core.Money{Cents: p.AmountCents},
			Description: p.Description,
			Note:        p.Note,
			Reconciled:  p.Reconciled,
		})
	}
	return spec, spec.Validate() == nil
}

func (r balanceRecord) toCore() (core.AccountBalance, bool) {
	date, err := core.ParseDate(r.Date)
	if err != nil {
		return core.AccountBalance{}, false
	}
	return core.AccountBalance{
		Account: r.Account,
		Date:    date,
		Balance: core.Money{Cents: r.BalanceCents},
	}, true
}

func readJSON(path string, out any) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, out)
}

func readTransactionLines(path string) []core.Transaction {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var out []core.Transaction
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec sheets.TransactionRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		t, err := rec.ToCore()
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	return out
}
