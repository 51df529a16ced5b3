package core

const (
	SourceActual  SourceKind = "actual"
	SourcePlanned SourceKind = "planned"
)

const (
	PeriodMonth   PeriodKind = "month"
	PeriodQuarter PeriodKind = "quarter"
	PeriodYear    PeriodKind = "year"
)

type (
	// SourceKind says whether a projection point came from an unreconciled
	// actual transaction or from a planned entry.
	SourceKind string

	// PeriodKind is the bucketing granularity of a PeriodBucket.
	PeriodKind string

	// PeriodBucket is a derived per-category, per-period aggregate. It is
	// recomputed on every run and never persisted.
	PeriodBucket struct {
		Category   string
		Kind       PeriodKind
		Index      int // month 1-12, quarter 1-4, or 0 for year
		Planned    Money
		Actual     Money
		Difference Money // always Actual - Planned
	}

	// ProjectionPoint is one step of a forward balance series.
	ProjectionPoint struct {
		Date        Date
		Description string
		Amount      Money
		Category    string
		Balance     Money
		Source      SourceKind
		Note        string
	}
)
