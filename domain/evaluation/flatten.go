package evaluation

import (
	"strings"

	"evalreport/domain/table"
)

// Flatten produces one FlatRecord per action across all sheets, in sheet,
// response, action order.
func Flatten(sheets []Sheet) []FlatRecord {
	var records []FlatRecord
	for _, s := range sheets {
		for _, resp := range s.Responses {
			for _, a := range resp.Actions {
				records = append(records, FlatRecord{
					Scenario:      s.Name,
					FindingNumber: findingNumber(s.Name),
					ContextLevel:  s.ContextLevel,
					Category:      s.Category,
					SheetNotes:    s.Notes,

					TreeDepth:    s.TreeDepth,
					NumBranches:  s.NumBranches,
					NumResponses: s.NumResponses,
					Success:      s.Success,

					ResponseID:             resp.ID,
					ReasoningQuality:       resp.ReasoningQuality,
					ReasoningNotes:         resp.ReasoningNotes,
					ReasoningHallucination: resp.ReasoningHallucination,

					ActionName:          a.Name,
					Usefulness:          a.Usefulness,
					Actionability:       a.Actionability,
					Duplicate:           a.Duplicate,
					ActionHallucination: a.Hallucination,
					Relevant:            a.Relevant,
					ActionNotes:         a.Notes,
				})
			}
		}
	}
	return records
}

// findingNumber is the digit following the leading "F" of names like F1C2
func findingNumber(sheetName string) string {
	if len(sheetName) < 2 {
		return ""
	}
	return sheetName[1:2]
}

// ToTable converts records into the flat dataset table. Hierarchy columns are
// only included when at least one record was enriched.
func ToTable(records []FlatRecord) *table.Table {
	enriched := false
	for _, r := range records {
		if r.Enriched {
			enriched = true
			break
		}
	}

	keys := Columns
	if !enriched {
		keys = make([]string, 0, len(Columns))
		for _, k := range Columns {
			if !isHierarchyColumn(k) {
				keys = append(keys, k)
			}
		}
	}

	t := table.New(keys...)
	for _, r := range records {
		t.AppendMap(r.Fields())
	}
	return t
}

func isHierarchyColumn(key string) bool {
	switch key {
	case ColMessageDepth, ColMessageText, ColRootText, ColParentText,
		ColConcatenatedText, ColConcatenatedTextLen:
		return true
	}
	return false
}

// WordCount counts whitespace-separated words
func WordCount(s string) int {
	return len(strings.Fields(s))
}
