package log

// Common field names for structured logging
const (
	FieldComponent    = "component"
	FieldError        = "error"
	FieldOperation    = "operation"
	FieldYear         = "year"
	FieldMonth        = "month"
	FieldCategory     = "category"
	FieldBudgetType   = "budget_type"
	FieldPeriod       = "period"
	FieldAccount      = "account"
	FieldDescription  = "description"
	FieldAmountCents  = "amount_cents"
	FieldBalanceCents = "balance_cents"
	FieldImported     = "imported"
	FieldDuplicates   = "duplicates"
	FieldBatchID      = "batch_id"
	FieldBatchSize    = "batch_size"
	FieldBackend      = "backend"
	FieldQueue        = "queue"
	FieldExchange     = "exchange"
	FieldSheet        = "sheet"
	FieldSuccess      = "success"
	FieldDuration     = "duration_ms"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentReview  = "review"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentCache   = "cache"
	ComponentBackend = "backend"
	ComponentConfig  = "config"
)

// Operations defines standard operation names
const (
	OpLoad     = "load"
	OpMerge    = "merge"
	OpCompute  = "compute"
	OpProject  = "project"
	OpPersist  = "persist"
	OpImport   = "import"
	OpPublish  = "publish"
	OpConsume  = "consume"
	OpValidate = "validate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithCategory adds category and budget type fields
func (f LogFields) WithCategory(name, budgetType string) LogFields {
	f[FieldCategory] = name
	f[FieldBudgetType] = budgetType
	return f
}

// WithTransaction adds transaction-related fields
func (f LogFields) WithTransaction(desc string, amountCents int64, account string) LogFields {
	f[FieldDescription] = desc
	f[FieldAmountCents] = amountCents
	f[FieldAccount] = account
	return f
}

// WithMergeResult adds ledger merge outcome fields
func (f LogFields) WithMergeResult(imported, duplicates int) LogFields {
	f[FieldImported] = imported
	f[FieldDuplicates] = duplicates
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
