// Package evaluation models one human evaluation workbook: scenarios (one per
// worksheet), the agent responses evaluated inside each scenario and the
// actions proposed by each response.
package evaluation

// Canonical column keys of the flattened dataset
const (
	ColScenario      = "scenario"
	ColFindingNumber = "finding_number"
	ColContextLevel  = "context-level"
	ColCategory      = "category"
	ColSheetNotes    = "sheet_notes"

	ColTreeDepth    = "tree_depth"
	ColNumBranches  = "num_branches"
	ColNumResponses = "num_responses"
	ColSuccess      = "success"

	ColResponseID             = "response_id"
	ColReasoningQuality       = "reasoning_quality"
	ColReasoningNotes         = "reasoning_notes"
	ColReasoningHallucination = "reasoning_hallucination"

	ColActionName          = "action_name"
	ColUsefulness          = "usefulness"
	ColActionability       = "actionability"
	ColDuplicate           = "duplicate"
	ColActionHallucination = "action_hallucination"
	ColRelevant            = "relevant"
	ColActionNotes         = "action_notes"

	ColMessageDepth        = "message_depth"
	ColMessageText         = "message_text"
	ColRootText            = "root_text"
	ColParentText          = "parent_text"
	ColConcatenatedText    = "concatenated_text_from_root"
	ColConcatenatedTextLen = "concatenated_text_from_root_length"
)

// Columns lists every flat record column in output order
var Columns = []string{
	ColScenario, ColFindingNumber, ColContextLevel,
	ColTreeDepth, ColNumBranches, ColNumResponses, ColSuccess,
	ColCategory, ColSheetNotes,
	ColResponseID, ColReasoningQuality, ColReasoningNotes, ColReasoningHallucination,
	ColActionName, ColUsefulness, ColActionability, ColDuplicate,
	ColActionHallucination, ColRelevant, ColActionNotes,
	ColMessageDepth, ColMessageText, ColRootText, ColParentText,
	ColConcatenatedText, ColConcatenatedTextLen,
}

// Sheet is one parsed scenario worksheet. Cell-typed fields hold nil, a
// float64 or a string exactly as the spreadsheet provided them.
type Sheet struct {
	Name         string
	TreeDepth    any
	NumBranches  any
	NumResponses any
	Success      any
	ContextLevel any
	Category     any
	Notes        any
	Responses    []Response
}

// Response is one evaluated agent response within a scenario
type Response struct {
	ID                     string
	ReasoningQuality       any
	ReasoningNotes         any
	ReasoningHallucination any
	Actions                []Action
}

// Action is one action proposed by a response
type Action struct {
	Name          string
	Usefulness    any
	Actionability any
	Duplicate     any
	Hallucination any
	Relevant      any
	Notes         any
}

// Hierarchy is the conversation-tree context of one response message
type Hierarchy struct {
	Depth            int
	Text             string
	RootText         string
	ParentText       string
	ConcatenatedText string
}

// FlatRecord is one row per (scenario, response, action)
type FlatRecord struct {
	Scenario      string
	FindingNumber string
	ContextLevel  any
	Category      any
	SheetNotes    any

	TreeDepth    any
	NumBranches  any
	NumResponses any
	Success      any

	ResponseID             string
	ReasoningQuality       any
	ReasoningNotes         any
	ReasoningHallucination any

	ActionName          string
	Usefulness          any
	Actionability       any
	Duplicate           any
	ActionHallucination any
	Relevant            any
	ActionNotes         any

	// Populated by hierarchy enrichment; Enriched is false until then.
	Enriched               bool
	MessageDepth           int
	MessageText            string
	RootText               string
	ParentText             string
	ConcatenatedText       string
	ConcatenatedTextLength int
}

// Fields returns the record as a column-keyed map. Hierarchy columns are nil
// on records that were never enriched.
func (r FlatRecord) Fields() map[string]any {
	m := map[string]any{
		ColScenario:               r.Scenario,
		ColFindingNumber:          r.FindingNumber,
		ColContextLevel:           r.ContextLevel,
		ColCategory:               r.Category,
		ColSheetNotes:             r.SheetNotes,
		ColTreeDepth:              r.TreeDepth,
		ColNumBranches:            r.NumBranches,
		ColNumResponses:           r.NumResponses,
		ColSuccess:                r.Success,
		ColResponseID:             r.ResponseID,
		ColReasoningQuality:       r.ReasoningQuality,
		ColReasoningNotes:         r.ReasoningNotes,
		ColReasoningHallucination: r.ReasoningHallucination,
		ColActionName:             r.ActionName,
		ColUsefulness:             r.Usefulness,
		ColActionability:          r.Actionability,
		ColDuplicate:              r.Duplicate,
		ColActionHallucination:    r.ActionHallucination,
		ColRelevant:               r.Relevant,
		ColActionNotes:            r.ActionNotes,
	}
	if r.Enriched {
		m[ColMessageDepth] = r.MessageDepth
		m[ColMessageText] = r.MessageText
		m[ColRootText] = r.RootText
		m[ColParentText] = r.ParentText
		m[ColConcatenatedText] = r.ConcatenatedText
		m[ColConcatenatedTextLen] = r.ConcatenatedTextLength
	}
	return m
}
