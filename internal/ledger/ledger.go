// Package ledger holds the deduplicated, categorized transaction history
// for one budget year, plus per-transaction reconciliation state.
package ledger

import (
	"sort"

	"moneymage/internal/core"
	"moneymage/internal/match"
)

// ReconciliationFilter selects transactions by reconciliation state.
type ReconciliationFilter int

const (
	All ReconciliationFilter = iota
	ReconciledOnly
	UnreconciledOnly
)

// Ledger is an ordered, deduplicated transaction history. The zero value
// is an empty ledger ready to use.
type Ledger struct {
	txns []core.Transaction
}

// New builds a ledger from transactions, preserving their order.
// Callers own deduplication; use Merge to import with dedup.
func New(txns []core.Transaction) Ledger {
	return Ledger{txns: append([]core.Transaction(nil), txns...)}
}

// Transactions returns a copy of the ledger's entries in order.
func (l Ledger) Transactions() []core.Transaction {
	return append([]core.Transaction(nil), l.txns...)
}

// Len returns the number of entries.
func (l Ledger) Len() int { return len(l.txns) }

// Filter returns the entries passing the reconciliation filter, optionally
// restricted to one category (empty category means all).
func (l Ledger) Filter(category string, rf ReconciliationFilter) []core.Transaction {
	var out []core.Transaction
	for _, t := range l.txns {
		if category != "" && t.Category != category {
			continue
		}
		switch rf {
		case ReconciledOnly:
			if !t.Reconciled {
				continue
			}
		case UnreconciledOnly:
			if t.Reconciled {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// InYear returns the entries dated within year.
func (l Ledger) InYear(year int) []core.Transaction {
	var out []core.Transaction
	for _, t := range l.txns {
		if t.Date.Year() == year {
			out = append(out, t)
		}
	}
	return out
}

// MergeResult reports the outcome of one import batch.
type MergeResult struct {
	Ledger     Ledger
	Imported   int
	Duplicates int
	Report     core.Report
}

// Merge imports incoming transactions into existing. Duplicates (exact
// identity-tuple equality) are discarded and counted. Incoming records with
// no category are run through the matcher against rules. Malformed records
// are skipped and reported; one bad record never aborts the batch.
//
// Existing entries keep their reconciliation flags untouched; incoming data
// never overwrites reconciliation state. The merged ledger is sorted
// chronologically with insertion order preserved on equal dates, and must
// contain no duplicate identity tuples (InvariantError otherwise).
func Merge(existing Ledger, incoming []core.Transaction, matcher *match.Matcher, rules []core.Rule) MergeResult {
	res := MergeResult{}
	seen := make(map[core.Identity]struct{}, existing.Len()+len(incoming))
	merged := make([]core.Transaction, 0, existing.Len()+len(incoming))

	for _, t := range existing.txns {
		id := t.Identity()
		if _, dup := seen[id]; dup {
			// Existing ledger already broken; surface it and keep going so
			// the caller sees every offender.
			res.Report.AddError(&core.InvariantError{Identity: id})
			continue
		}
		seen[id] = struct{}{}
		merged = append(merged, t)
	}

	for i, t := range incoming {
		if err := t.Validate(); err != nil {
			res.Report.AddError(&core.RecordError{Index: i, Description: t.Description, Err: err})
			continue
		}
		id := t.Identity()
		if _, dup := seen[id]; dup {
			res.Duplicates++
			continue
		}
		if t.Category == "" || t.Category == core.Uncategorized {
			if matcher != nil {
				t.Category, _ = matcher.Categorize(t.Description, rules)
			} else {
				t.Category = core.Uncategorized
			}
		}
		t.Reconciled = false
		seen[id] = struct{}{}
		merged = append(merged, t)
		res.Imported++
	}

	// Chronological order; SliceStable keeps insertion order on date ties.
	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].Date.Before(merged[b].Date)
	})

	res.Ledger = Ledger{txns: merged}
	return res
}

// SetCategory updates the category of every transaction matching the
// identity tuple. Returns true when at least one entry changed.
func (l *Ledger) SetCategory(id core.Identity, category string) bool {
	changed := false
	for i := range l.txns {
		if l.txns[i].Identity() == id && l.txns[i].Category != category {
			l.txns[i].Category = category
			changed = true
		}
	}
	return changed
}

// Reconcile flips the reconciled flag of the entry matching the identity
// tuple. Returns false when no entry matched.
func (l *Ledger) Reconcile(id core.Identity, reconciled bool) bool {
	for i := range l.txns {
		if l.txns[i].Identity() == id {
			l.txns[i].Reconciled = reconciled
			return true
		}
	}
	return false
}

// ResolveCategories replaces categories that have no spec with
// core.Uncategorized, reporting each as a warning.
func (l *Ledger) ResolveCategories(specs map[string]core.CategorySpec) core.Report {
	var report core.Report
	for i := range l.txns {
		cat := l.txns[i].Category
		if cat == "" || cat == core.Uncategorized {
			l.txns[i].Category = core.Uncategorized
			continue
		}
		if _, ok := specs[cat]; !ok {
			report.AddWarning(&core.UnknownCategoryError{
				Category:    cat,
				Description: l.txns[i].Description,
			})
			l.txns[i].Category = core.Uncategorized
		}
	}
	return report
}
