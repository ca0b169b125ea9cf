package analysis

import (
	"fmt"
	"math"
	"sort"

	"evalreport/domain/core"
	"evalreport/domain/evaluation"
	"evalreport/domain/table"
	"evalreport/internal/inference"
)

// NoData is displayed for a group whose metric values are all null
const NoData = "n/a"

// GroupSummary is the aggregate of one metric within one group
type GroupSummary struct {
	Group any
	inference.MeanSummary
}

// Aggregator computes grouped means with confidence intervals
type Aggregator struct {
	confidence float64
}

// NewAggregator creates an aggregator reporting intervals at the given
// confidence level (e.g. 0.95)
func NewAggregator(confidence float64) *Aggregator {
	return &Aggregator{confidence: confidence}
}

// Summarize filters data for the metric's level, applies the binary
// condition if any and returns one summary per group value, sorted by group.
// Rows with a null group value belong to no group. Null metric values are
// dropped per group, so n counts non-null values only.
func (a *Aggregator) Summarize(data *table.Table, groupCol string, spec MetricSpec) ([]GroupSummary, error) {
	filtered, err := FilterForLevel(data, spec.Level, spec.Column, groupCol)
	if err != nil {
		return nil, err
	}

	if spec.Condition != nil {
		for r := 0; r < filtered.Len(); r++ {
			v := 0
			if spec.Condition(filtered.Value(r, spec.Column)) {
				v = 1
			}
			filtered.Set(r, spec.Column, v)
		}
	}

	var order []any
	values := make(map[any][]float64)
	for r := 0; r < filtered.Len(); r++ {
		g := filtered.Value(r, groupCol)
		if g == nil {
			continue
		}
		if _, seen := values[g]; !seen {
			order = append(order, g)
			values[g] = []float64{}
		}

		v := filtered.Value(r, spec.Column)
		if v == nil {
			continue
		}
		f, ok := table.Float(v)
		if !ok {
			return nil, core.NewNonNumericError(spec.Column, v)
		}
		values[g] = append(values[g], f)
	}

	sort.SliceStable(order, func(i, j int) bool { return table.Less(order[i], order[j]) })

	summaries := make([]GroupSummary, len(order))
	for i, g := range order {
		summaries[i] = GroupSummary{
			Group:       g,
			MeanSummary: inference.SummarizeMean(values[g], a.confidence),
		}
	}
	return summaries, nil
}

// Aggregate produces the display table for one metric grouped by groupCol:
// columns {groupCol, metric, n_<level>}, one row per group in ascending group
// order. See formatMean for the display policy.
func (a *Aggregator) Aggregate(data *table.Table, groupCol string, spec MetricSpec) (*table.Table, error) {
	summaries, err := a.Summarize(data, groupCol, spec)
	if err != nil {
		return nil, err
	}

	allLE1, allGT1 := true, true
	for _, s := range summaries {
		if s.N > 1 {
			allLE1 = false
		} else {
			allGT1 = false
		}
	}

	label := DisplayName(spec.Column)
	if !allLE1 && spec.Format != FormatPercentage {
		label = "Avg " + label
	}

	sizeCol := spec.Level.SampleSizeColumn()
	out := table.NewWithColumns(
		table.Column{Key: groupCol, Label: groupCol},
		table.Column{Key: spec.Column, Label: label},
		table.Column{Key: sizeCol, Label: sizeCol},
	)
	for _, s := range summaries {
		display := formatMean(s, spec.Format, allLE1, allGT1, groupCol)
		if err := out.Append(s.Group, display, s.N); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// formatMean applies the display policy. The two flags are table-wide:
//
//   - every group n<=1: the mean rounded to an integer, no interval
//   - percentage: mean*100 with two decimals and a % sign
//   - zero-to-five, every group n>1 and not grouped by scenario: mean ± half
//     of the interval, both to two decimals
//   - otherwise: the mean to two decimals
func formatMean(s GroupSummary, format Format, allLE1, allGT1 bool, groupCol string) string {
	if s.N == 0 || math.IsNaN(s.Mean) {
		return NoData
	}
	switch {
	case allLE1:
		return fmt.Sprintf("%.0f", s.Mean)
	case format == FormatPercentage:
		return fmt.Sprintf("%.2f%%", s.Mean*100)
	case format == FormatZeroToFive && allGT1 && groupCol != evaluation.ColScenario:
		return fmt.Sprintf(`\( %.2f \pm %.2f \)`, s.Mean, s.Margin())
	default:
		return fmt.Sprintf("%.2f", s.Mean)
	}
}
