// Package presentation splits each wide per-dimension table into the three
// reader-facing tables of the report: what the agent did (actions), how it
// reasoned (responses) and how the scenario went overall.
package presentation

import (
	"fmt"

	"evalreport/domain/evaluation"
	"evalreport/domain/table"
	"evalreport/internal/analysis"
)

// Bucket names one of the three composed tables
type Bucket string

const (
	BucketAction   Bucket = "action"
	BucketResponse Bucket = "response"
	BucketScenario Bucket = "scenario"
)

// Buckets lists the composed tables in output order
var Buckets = []Bucket{BucketAction, BucketResponse, BucketScenario}

// Layout is the injectable description of how wide-table columns map onto
// the composed tables. Columns are addressed by canonical key, never by
// display label.
type Layout struct {
	// Members maps a column key to the buckets it appears in. Keys not listed
	// appear in none.
	Members map[string][]Bucket
	// SampleSize is the count column shown second in each bucket
	SampleSize map[Bucket]string
	// Labels overrides display labels per bucket
	Labels map[Bucket]map[string]string
	// Excluded lists columns removed from a bucket after classification
	Excluded map[Bucket][]string
	// ExcludedFor lists columns removed from a bucket only when grouping by
	// the given dimension
	ExcludedFor map[analysis.Dimension]map[Bucket][]string
}

// DefaultLayout is the standard report layout
func DefaultLayout() Layout {
	nAction := analysis.LevelAction.SampleSizeColumn()
	nResponse := analysis.LevelResponse.SampleSizeColumn()
	nScenario := analysis.LevelScenario.SampleSizeColumn()

	return Layout{
		Members: map[string][]Bucket{
			evaluation.ColUsefulness:             {BucketAction},
			evaluation.ColActionability:          {BucketAction},
			evaluation.ColDuplicate:              {BucketAction},
			evaluation.ColRelevant:               {BucketAction},
			evaluation.ColActionHallucination:    {BucketAction},
			nAction:                              {BucketAction},
			evaluation.ColNumResponses:           {BucketResponse},
			evaluation.ColReasoningQuality:       {BucketResponse},
			evaluation.ColReasoningHallucination: {BucketResponse},
			nResponse:                            {BucketResponse},
			evaluation.ColSuccess:                {BucketScenario},
			evaluation.ColTreeDepth:              {BucketScenario},
			evaluation.ColNumBranches:            {BucketScenario},
			nScenario:                            {BucketScenario},
		},
		SampleSize: map[Bucket]string{
			BucketAction:   nAction,
			BucketResponse: nResponse,
			BucketScenario: nScenario,
		},
		Labels: map[Bucket]map[string]string{
			BucketAction: {
				nAction:                           "Actions Evaluated",
				evaluation.ColActionHallucination: "Hallucination",
			},
			BucketResponse: {
				nResponse:                            "Responses Evaluated",
				evaluation.ColReasoningHallucination: "Hallucination",
			},
			BucketScenario: {
				nScenario: "Scenarios Evaluated",
			},
		},
		// Branch counts in the scenario table already cover this
		Excluded: map[Bucket][]string{
			BucketResponse: {evaluation.ColNumResponses},
		},
		// Every scenario group holds exactly one scenario
		ExcludedFor: map[analysis.Dimension]map[Bucket][]string{
			analysis.DimensionScenario: {
				BucketScenario: {nScenario},
			},
		},
	}
}

// ComposedSet holds the three tables of one dimension
type ComposedSet struct {
	Dimension analysis.Dimension
	Tables    map[Bucket]*table.Table
}

// Name is the display name used for the set, e.g. "Context-Level"
func (s ComposedSet) Name() string {
	return s.Dimension.Label()
}

// Composer builds ComposedSets from wide tables
type Composer struct {
	layout Layout
}

// NewComposer creates a composer for a layout
func NewComposer(layout Layout) *Composer {
	return &Composer{layout: layout}
}

// Compose splits one wide table into its action, response and scenario
// tables. Each starts with the group column followed by its sample-size
// column when present.
func (c *Composer) Compose(dim analysis.Dimension, wide *table.Table) (ComposedSet, error) {
	groupCol := dim.Column()
	if err := wide.Require(groupCol); err != nil {
		return ComposedSet{}, fmt.Errorf("compose %s: %w", dim, err)
	}

	set := ComposedSet{Dimension: dim, Tables: make(map[Bucket]*table.Table, len(Buckets))}
	for _, b := range Buckets {
		keys := []string{groupCol}
		for _, col := range wide.Keys() {
			if col != groupCol && c.inBucket(col, b) {
				keys = append(keys, col)
			}
		}

		t, err := wide.Project(keys...)
		if err != nil {
			return ComposedSet{}, fmt.Errorf("compose %s/%s: %w", dim, b, err)
		}

		for key, label := range c.layout.Labels[b] {
			t.SetLabel(key, label)
		}
		if size, ok := c.layout.SampleSize[b]; ok {
			t = t.Reorder(groupCol, size)
		}
		t = t.Drop(c.layout.Excluded[b]...)
		t = t.Drop(c.layout.ExcludedFor[dim][b]...)

		set.Tables[b] = t
	}
	return set, nil
}

// ComposeAll composes every dimension in the order given
func (c *Composer) ComposeAll(dims []analysis.Dimension, wide map[analysis.Dimension]*table.Table) ([]ComposedSet, error) {
	sets := make([]ComposedSet, 0, len(dims))
	for _, dim := range dims {
		w, ok := wide[dim]
		if !ok {
			continue
		}
		set, err := c.Compose(dim, w)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, nil
}

func (c *Composer) inBucket(key string, b Bucket) bool {
	for _, m := range c.layout.Members[key] {
		if m == b {
			return true
		}
	}
	return false
}
