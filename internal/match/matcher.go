// Package match maps raw transaction descriptions to categories using a
// fuzzy similarity score against a learned rule table.
//
// The metric is pluggable behind a narrow interface so the threshold and
// algorithm can change without touching callers. The default metric is a
// Ratcliff/Obershelp sequence ratio in [0,1].
package match

import (
	"moneymage/internal/core"
)

// DefaultThreshold is the minimum similarity score for a rule to claim a
// description.
const DefaultThreshold = 0.7

// Metric computes a normalized similarity score between two strings.
// Implementations must be deterministic and locale-independent.
type Metric interface {
	Ratio(a, b string) float64
}

// Matcher categorizes descriptions against a rule table.
type Matcher struct {
	metric    Metric
	threshold float64
}

// New returns a Matcher using the given metric and threshold. A nil metric
// selects the sequence ratio; a threshold <= 0 selects DefaultThreshold.
func New(metric Metric, threshold float64) *Matcher {
	if metric == nil {
		metric = SequenceMetric{}
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{metric: metric, threshold: threshold}
}

// Default returns a Matcher with the sequence metric and DefaultThreshold.
func Default() *Matcher {
	return New(nil, 0)
}

// Categorize returns the category of the best-scoring rule when its score
// exceeds the threshold, else core.Uncategorized with the best score seen.
// Exact score ties go to the first rule in table order. Pure function.
func (m *Matcher) Categorize(description string, rules []core.Rule) (string, float64) {
	best := 0.0
	category := core.Uncategorized
	for _, rule := range rules {
		score := m.metric.Ratio(description, rule.Pattern)
		if score > best {
			best = score
			if score > m.threshold {
				category = rule.Category
			}
		}
	}
	if best <= m.threshold {
		return core.Uncategorized, best
	}
	return category, best
}
