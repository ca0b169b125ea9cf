package analysis

import (
	"evalreport/domain/core"
	"evalreport/domain/evaluation"
	"evalreport/domain/table"
)

// FilterForLevel selects the columns a metric needs at the given level and
// deduplicates rows where the level requires it.
//
//   - action: {response_id, action_name, group, metric}, every row kept
//   - response: {response_id, group, metric}, one row per response_id
//   - scenario: {scenario, group, metric}, one row per scenario
//
// Response and scenario rows must carry the same group and metric value for
// every row sharing a key; a mismatch fails with ErrInconsistentGroup rather
// than silently keeping the first row. The input is never modified.
func FilterForLevel(data *table.Table, level Level, metricCol, groupCol string) (*table.Table, error) {
	var dedupKey string
	var keys []string

	switch level {
	case LevelAction:
		keys = []string{evaluation.ColResponseID, evaluation.ColActionName, groupCol, metricCol}
	case LevelResponse:
		dedupKey = evaluation.ColResponseID
		keys = []string{dedupKey, groupCol, metricCol}
	case LevelScenario:
		dedupKey = evaluation.ColScenario
		keys = []string{dedupKey, groupCol, metricCol}
	default:
		return nil, core.NewInvalidLevelError(string(level))
	}

	projected, err := data.Project(keys...)
	if err != nil {
		return nil, err
	}
	if dedupKey == "" {
		return projected, nil
	}
	return dedupe(projected, dedupKey)
}

// dedupe keeps the first row per key and checks every later row agrees
func dedupe(t *table.Table, key string) (*table.Table, error) {
	out := table.NewWithColumns(t.Columns()...)
	first := make(map[any]int)
	cols := t.Keys()

	for r := 0; r < t.Len(); r++ {
		k := t.Value(r, key)
		if f, seen := first[k]; seen {
			for _, c := range cols {
				if !table.Equal(t.Value(f, c), t.Value(r, c)) {
					return nil, core.NewInconsistentGroupError(key, k, c, t.Value(f, c), t.Value(r, c))
				}
			}
			continue
		}
		first[k] = r
		if err := out.Append(t.Row(r)...); err != nil {
			return nil, err
		}
	}
	return out, nil
}
