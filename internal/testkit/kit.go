package testkit

import (
	"evalreport/domain/evaluation"
	"evalreport/domain/table"
)

// Response ids used by the fixtures
const (
	ResponseA = "0b7e6a52-2f4d-4c1e-9a51-6a3f0c1d2e01"
	ResponseB = "0b7e6a52-2f4d-4c1e-9a51-6a3f0c1d2e02"
	ResponseC = "0b7e6a52-2f4d-4c1e-9a51-6a3f0c1d2e03"
	ResponseD = "0b7e6a52-2f4d-4c1e-9a51-6a3f0c1d2e04"
	ResponseE = "0b7e6a52-2f4d-4c1e-9a51-6a3f0c1d2e05"
)

// ConcreteSheet is one scenario with two responses of five actions each.
// Usefulness across the ten actions is 3,4,5,4,3,2,3,4,5,4 (mean 3.7) and
// four of them are marked duplicate.
func ConcreteSheet() evaluation.Sheet {
	usefulness := []float64{3, 4, 5, 4, 3, 2, 3, 4, 5, 4}
	duplicate := []string{"Y", "N", "N", "Y", "N", "Y", "N", "N", "N", "Y"}

	actions := make([]evaluation.Action, len(usefulness))
	for i := range usefulness {
		actions[i] = evaluation.Action{
			Name:          "action-" + string(rune('a'+i)),
			Usefulness:    usefulness[i],
			Actionability: 3.0,
			Duplicate:     duplicate[i],
			Hallucination: "N",
			Relevant:      "Y",
		}
	}

	return evaluation.Sheet{
		Name:         "F1C1",
		TreeDepth:    4.0,
		NumBranches:  2.0,
		NumResponses: 2.0,
		Success:      1.0,
		ContextLevel: 1.0,
		Category:     "network",
		Responses: []evaluation.Response{
			{ID: ResponseA, ReasoningQuality: 4.0, ReasoningHallucination: "N", Actions: actions[:5]},
			{ID: ResponseB, ReasoningQuality: 3.0, ReasoningHallucination: "Y", Actions: actions[5:]},
		},
	}
}

// SampleSheets is a small three-scenario workbook covering two context levels
// and two categories. Every response has at most three actions so the sheets
// fit the spreadsheet layout.
func SampleSheets() []evaluation.Sheet {
	return []evaluation.Sheet{
		{
			Name: "F1C1", TreeDepth: 4.0, NumBranches: 2.0, NumResponses: 2.0, Success: 1.0,
			ContextLevel: 1.0, Category: "network", Notes: "baseline",
			Responses: []evaluation.Response{
				{ID: ResponseA, ReasoningQuality: 4.0, ReasoningNotes: "clear", ReasoningHallucination: "N", Actions: []evaluation.Action{
					action("scan ports", 5, 4, "N", "N", "Y"),
					action("check firewall", 4, 4, "Y", "N", "Y"),
				}},
				{ID: ResponseB, ReasoningQuality: 3.0, ReasoningHallucination: "Y", Actions: []evaluation.Action{
					action("reboot host", 2, 3, "N", "Y", "N"),
				}},
			},
		},
		{
			Name: "F1C2", TreeDepth: 3.0, NumBranches: 1.0, NumResponses: 1.0, Success: 0.0,
			ContextLevel: 2.0, Category: "network",
			Responses: []evaluation.Response{
				{ID: ResponseC, ReasoningQuality: 5.0, ReasoningHallucination: "N", Actions: []evaluation.Action{
					action("inspect logs", 5, 5, "N", "N", "Y"),
					action("trace route", 3, 4, "N", "N", "Y"),
				}},
			},
		},
		{
			Name: "F2C1", TreeDepth: 6.0, NumBranches: 3.0, NumResponses: 2.0, Success: 1.0,
			ContextLevel: 1.0, Category: "identity",
			Responses: []evaluation.Response{
				{ID: ResponseD, ReasoningQuality: 2.0, ReasoningHallucination: "N", Actions: []evaluation.Action{
					action("reset password", 1, 2, "Y", "Y", "N"),
				}},
				{ID: ResponseE, ReasoningQuality: 4.0, ReasoningHallucination: "N", Actions: []evaluation.Action{
					action("audit roles", 4, 3, "N", "N", "Y"),
					action("review tokens", 3, 3, "N", "N", "Y"),
					action("revoke sessions", 4, 4, "Y", "N", "Y"),
				}},
			},
		},
	}
}

func action(name string, usefulness, actionability float64, duplicate, hallucination, relevant string) evaluation.Action {
	return evaluation.Action{
		Name:          name,
		Usefulness:    usefulness,
		Actionability: actionability,
		Duplicate:     duplicate,
		Hallucination: hallucination,
		Relevant:      relevant,
	}
}

// Dataset flattens sheets into the flat dataset table
func Dataset(sheets ...evaluation.Sheet) *table.Table {
	return evaluation.ToTable(evaluation.Flatten(sheets))
}
