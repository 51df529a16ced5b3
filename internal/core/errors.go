package core

import "fmt"

// The engine never aborts a whole batch for one bad record. Per-record
// problems are collected into a Report that callers receive alongside the
// results; structural problems abort only the smallest operation that can
// safely be abandoned (one category, one merge).

// RecordError marks a malformed incoming record that was skipped.
type RecordError struct {
	Index       int
	Description string
	Err         error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (%q): %v", e.Index, e.Description, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// UnknownCategoryError marks a transaction whose category has no spec.
// The transaction falls back to Uncategorized; this is a warning.
type UnknownCategoryError struct {
	Category    string
	Description string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("category %q not in budget (transaction %q)", e.Category, e.Description)
}

// UnsupportedBudgetTypeError marks a category spec whose type is not one of
// the four variants. Only that category's computation is skipped.
type UnsupportedBudgetTypeError struct {
	Category string
	Type     string
}

func (e *UnsupportedBudgetTypeError) Error() string {
	return fmt.Sprintf("category %q has unsupported budget type %q", e.Category, e.Type)
}

// InvariantError reports a duplicate identity tuple surviving a merge.
// It is fatal for that merge only.
type InvariantError struct {
	Identity Identity
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("duplicate identity tuple after merge: %s %q on %s (%d cents)",
		e.Identity.Account, e.Identity.Description, e.Identity.Date, e.Identity.Cents)
}

// Report accumulates per-record errors and warnings for one batch
// operation. A zero Report is ready to use.
type Report struct {
	Errors   []error
	Warnings []error
}

// AddError records a recoverable per-record error.
func (r *Report) AddError(err error) {
	if err != nil {
		r.Errors = append(r.Errors, err)
	}
}

// AddWarning records a non-fatal observation.
func (r *Report) AddWarning(err error) {
	if err != nil {
		r.Warnings = append(r.Warnings, err)
	}
}

// Merge folds other's entries into r.
func (r *Report) Merge(other Report) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Empty reports whether the batch completed without errors or warnings.
func (r *Report) Empty() bool {
	return len(r.Errors) == 0 && len(r.Warnings) == 0
}
