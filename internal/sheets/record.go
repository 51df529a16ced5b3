package sheets

import (
	"fmt"

	"moneymage/internal/core"
)

// TransactionRecord is the wire form of a transaction, shared by the JSON
// lines import format, the AMQP batch payload, and the memory backend's
// seed files. Amounts travel as integer cents so no float ever touches
// money on the wire.
type TransactionRecord struct {
	Date        string `json:"date"` // 2006-01-02
	AmountCents int64  `json:"amount_cents"`
	Category    string `json:"category,omitempty"`
	Account     string `json:"account"`
	Description string `json:"description"`
	Reconciled  bool   `json:"reconciled,omitempty"`
	Note        string `json:"note,omitempty"`
}

// ToCore converts the record to a domain transaction.
func (r TransactionRecord) ToCore() (core.Transaction, error) {
	date, err := core.ParseDate(r.Date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse date %q: %w", r.Date, err)
	}
	return core.Transaction{
		Date:        date,
		Amount:      core.Money{Cents: r.AmountCents},
		Category:    r.Category,
		Account:     r.Account,
		Description: r.Description,
		Reconciled:  r.Reconciled,
		Note:        r.Note,
	}, nil
}

// RecordFromCore converts a domain transaction to its wire form.
func RecordFromCore(t core.Transaction) TransactionRecord {
	return TransactionRecord{
		Date:        t.Date.Key(),
		AmountCents: t.Amount.Cents,
		Category:    t.Category,
		Account:     t.Account,
		Description: t.Description,
		Reconciled:  t.Reconciled,
		Note:        t.Note,
	}
}

// ToCoreBatch converts records in order, returning per-record failures
// without aborting the batch.
func ToCoreBatch(records []TransactionRecord) ([]core.Transaction, core.Report) {
	var report core.Report
	out := make([]core.Transaction, 0, len(records))
	for i, r := range records {
		t, err := r.ToCore()
		if err != nil {
			report.AddError(&core.RecordError{Index: i, Description: r.Description, Err: err})
			continue
		}
		out = append(out, t)
	}
	return out, report
}
