package excel

import (
	"fmt"
	"math"

	"evalreport/domain/core"
	"evalreport/domain/evaluation"
)

// Fixed offsets of the scenario layout, in data rows (sheet row minus 2)
const (
	rowTreeDepth    = 0
	rowNumBranches  = 1
	rowNumResponses = 2
	rowSuccess      = 3
	rowContextLevel = 4
	rowCategory     = 5
	rowNotes        = 6

	metadataCol = 1

	responseBlockStart = 8
	responseBlockRows  = 12
	responseIDOffset   = 1
	reasoningOffset    = 4
	actionsOffset      = 7
	actionsPerResponse = 3
)

// ParseSheet reads one scenario sheet. rows is the full sheet as returned by
// excelize, header row included.
func ParseSheet(name string, rows [][]string) (evaluation.Sheet, error) {
	var g grid
	if len(rows) > 1 {
		g = grid(rows[1:])
	}

	numResponses, err := responseCount(g.value(rowNumResponses, metadataCol))
	if err != nil {
		return evaluation.Sheet{}, core.NewSheetLayoutError(name, err.Error())
	}

	sheet := evaluation.Sheet{
		Name:         name,
		TreeDepth:    g.value(rowTreeDepth, metadataCol),
		NumBranches:  g.value(rowNumBranches, metadataCol),
		NumResponses: float64(numResponses),
		Success:      g.value(rowSuccess, metadataCol),
		ContextLevel: g.value(rowContextLevel, metadataCol),
		Category:     g.value(rowCategory, metadataCol),
		Notes:        g.value(rowNotes, metadataCol),
	}

	for i := 0; i < numResponses; i++ {
		start := responseBlockRows*i + responseBlockStart

		id := g.raw(start+responseIDOffset, 1)
		if id == "" {
			return evaluation.Sheet{}, core.NewSheetLayoutError(name,
				fmt.Sprintf("response %d has no response id at row %d", i+1, start+responseIDOffset+2))
		}

		resp := evaluation.Response{
			ID:                     id,
			ReasoningQuality:       g.value(start+reasoningOffset, 1),
			ReasoningNotes:         g.value(start+reasoningOffset, 2),
			ReasoningHallucination: g.value(start+reasoningOffset, 3),
		}

		for j := 0; j < actionsPerResponse; j++ {
			row := start + actionsOffset + j
			actionName := g.raw(row, 0)
			if actionName == "" {
				continue
			}
			resp.Actions = append(resp.Actions, evaluation.Action{
				Name:          actionName,
				Usefulness:    g.value(row, 1),
				Actionability: g.value(row, 2),
				Duplicate:     g.value(row, 3),
				Hallucination: g.value(row, 4),
				Relevant:      g.value(row, 5),
				Notes:         g.value(row, 6),
			})
		}
		sheet.Responses = append(sheet.Responses, resp)
	}

	return sheet, nil
}

func responseCount(v any) (int, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("number of responses %v is not a number", v)
	}
	if f < 0 || f != math.Trunc(f) {
		return 0, fmt.Errorf("number of responses %v is not a whole number", f)
	}
	return int(f), nil
}
