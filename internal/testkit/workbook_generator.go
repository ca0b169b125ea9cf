package testkit

import (
	"fmt"

	"evalreport/domain/evaluation"

	"github.com/xuri/excelize/v2"
)

// Layout offsets of the evaluation workbook, in data rows (sheet row minus 2)
const (
	responseBlockRows  = 12
	responseBlockStart = 8
	actionsPerResponse = 3
)

// WriteWorkbook saves sheets to path using the evaluation layout. Extra
// sheets named in decoys are added with unrelated content.
func WriteWorkbook(path string, sheets []evaluation.Sheet, decoys ...string) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return err
		}
		if err := writeSheet(f, s); err != nil {
			return fmt.Errorf("write sheet %s: %w", s.Name, err)
		}
	}

	for _, name := range decoys {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
		if err := f.SetCellValue(name, "A1", "summary"); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

// writeSheet places a scenario at the fixed offsets. data row d lives on
// sheet row d+2; columns are 1-based.
func writeSheet(f *excelize.File, s evaluation.Sheet) error {
	set := func(dataRow, col int, v any) error {
		if v == nil {
			return nil
		}
		cell, err := excelize.CoordinatesToCellName(col, dataRow+2)
		if err != nil {
			return err
		}
		return f.SetCellValue(s.Name, cell, v)
	}

	meta := []struct {
		label string
		value any
	}{
		{"Tree Depth", s.TreeDepth},
		{"Branches", s.NumBranches},
		{"Responses", s.NumResponses},
		{"Success", s.Success},
		{"Context Level", s.ContextLevel},
		{"Category", s.Category},
		{"Notes", s.Notes},
	}
	if err := f.SetCellValue(s.Name, "A1", "Scenario"); err != nil {
		return err
	}
	for i, m := range meta {
		if err := set(i, 1, m.label); err != nil {
			return err
		}
		if err := set(i, 2, m.value); err != nil {
			return err
		}
	}

	for i, r := range s.Responses {
		start := responseBlockRows*i + responseBlockStart
		if err := set(start+1, 1, "Response ID"); err != nil {
			return err
		}
		if err := set(start+1, 2, r.ID); err != nil {
			return err
		}
		for c, v := range []any{"Reasoning", r.ReasoningQuality, r.ReasoningNotes, r.ReasoningHallucination} {
			if err := set(start+4, c+1, v); err != nil {
				return err
			}
		}
		if len(r.Actions) > actionsPerResponse {
			return fmt.Errorf("response %s has %d actions, layout holds %d", r.ID, len(r.Actions), actionsPerResponse)
		}
		for j, a := range r.Actions {
			row := []any{a.Name, a.Usefulness, a.Actionability, a.Duplicate, a.Hallucination, a.Relevant, a.Notes}
			for c, v := range row {
				if err := set(start+7+j, c+1, v); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
