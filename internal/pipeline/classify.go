package pipeline

import "strings"

// Indicator columns observed in real Netflix data exports, one set per shape.
var (
	viewingIndicators = indicatorSet(
		"start time", "duration", "title", "profile name", "device type", "bookmark",
	)
	billingIndicators = indicatorSet(
		"transaction date", "gross sale amt", "currency", "payment type", "pmt status",
	)
)

// Classify decides which canonical shape a table's columns match. Each shape
// is scored by how many of its indicator columns appear in the table; the
// strictly higher score wins and any tie (including zero-zero) is Unknown.
// Pure function of the column-name set.
func Classify(columns []string) Shape {
	set := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		set[normalizeColumn(col)] = struct{}{}
	}

	viewingScore, billingScore := 0, 0
	for col := range set {
		if _, ok := viewingIndicators[col]; ok {
			viewingScore++
		}
		if _, ok := billingIndicators[col]; ok {
			billingScore++
		}
	}

	switch {
	case viewingScore > billingScore:
		return ShapeViewingActivity
	case billingScore > viewingScore:
		return ShapeBillingHistory
	default:
		return ShapeUnknown
	}
}

// normalizeColumn lowercases and trims a column name for comparison.
func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func indicatorSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
