package analysis

import (
	"errors"
	"testing"

	"evalreport/domain/core"
	"evalreport/domain/evaluation"
	"evalreport/internal"
	"evalreport/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(config Config) *Analyzer {
	return NewAnalyzer(config, internal.NewNopLogger())
}

func TestNewAnalyzer_FillsDefaults(t *testing.T) {
	a := newTestAnalyzer(Config{})

	cfg := a.Config()
	assert.Equal(t, DefaultConfidence, cfg.Confidence)
	assert.Equal(t, Dimensions, cfg.Dimensions)
	assert.Len(t, cfg.Catalog, len(DefaultCatalog()))
}

func TestAnalyzeDimension_ConcreteCategoryTable(t *testing.T) {
	a := newTestAnalyzer(DefaultConfig())
	data := testkit.Dataset(testkit.ConcreteSheet())

	wide, err := a.AnalyzeDimension(data, DimensionCategory)
	require.NoError(t, err)

	require.Equal(t, 1, wide.Len())
	assert.Equal(t, []string{
		evaluation.ColCategory,
		evaluation.ColUsefulness, "n_action",
		evaluation.ColActionability,
		evaluation.ColDuplicate,
		evaluation.ColRelevant,
		evaluation.ColActionHallucination,
		evaluation.ColReasoningQuality, "n_response",
		evaluation.ColReasoningHallucination,
		evaluation.ColSuccess, "n_scenario",
		evaluation.ColTreeDepth,
		evaluation.ColNumBranches,
		evaluation.ColNumResponses,
	}, wide.Keys())

	assert.Equal(t, "Category", wide.Label(evaluation.ColCategory))
	assert.Equal(t, "Avg Usefulness", wide.Label(evaluation.ColUsefulness))
	assert.Equal(t, "N Action", wide.Label("n_action"))
	assert.Equal(t, "Action Hallucination", wide.Label(evaluation.ColActionHallucination))

	assert.Equal(t, `\( 3.70 \pm 0.68 \)`, wide.Value(0, evaluation.ColUsefulness))
	assert.Equal(t, "40.00%", wide.Value(0, evaluation.ColDuplicate))
	assert.Equal(t, "100.00%", wide.Value(0, evaluation.ColRelevant))
	assert.Equal(t, 10.0, wide.Value(0, "n_action"))
	assert.Equal(t, 2.0, wide.Value(0, "n_response"))
	assert.Equal(t, 1.0, wide.Value(0, "n_scenario"))
	assert.Equal(t, "4", wide.Value(0, evaluation.ColTreeDepth))
}

func TestAnalyzeDimension_SampleSizeCollisionKeepsFirst(t *testing.T) {
	data := testkit.Dataset(testkit.SampleSheets()...)
	// Blank one usefulness value so the first n_action differs from the
	// one every later action metric would produce
	data.Set(0, evaluation.ColUsefulness, nil)

	a := newTestAnalyzer(DefaultConfig())
	wide, err := a.AnalyzeDimension(data, DimensionCategory)
	require.NoError(t, err)

	count := 0
	for _, k := range wide.Keys() {
		if k == "n_action" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	// network has five actions, one of them without usefulness
	assert.Equal(t, []any{4.0, 4.0}, wide.Column("n_action"))
}

func TestAnalyze_EveryDimension(t *testing.T) {
	a := newTestAnalyzer(DefaultConfig())
	data := testkit.Dataset(testkit.SampleSheets()...)

	results, err := a.Analyze(data)
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, 2, results[DimensionContextLevel].Len())
	assert.Equal(t, 2, results[DimensionCategory].Len())
	assert.Equal(t, 3, results[DimensionScenario].Len())
	assert.Equal(t, "Context-Level", results[DimensionContextLevel].Label(evaluation.ColContextLevel))
	assert.Equal(t, "Scenario", results[DimensionScenario].Label(evaluation.ColScenario))
}

func TestAnalyze_CustomCatalog(t *testing.T) {
	a := newTestAnalyzer(Config{
		Dimensions: []Dimension{DimensionScenario},
		Catalog: []MetricSpec{
			{Column: evaluation.ColNumBranches, Level: LevelScenario},
		},
	})

	results, err := a.Analyze(testkit.Dataset(testkit.SampleSheets()...))
	require.NoError(t, err)

	require.Len(t, results, 1)
	wide := results[DimensionScenario]
	assert.Equal(t, []string{evaluation.ColScenario, evaluation.ColNumBranches, "n_scenario"}, wide.Keys())
	assert.Equal(t, []any{"2", "1", "3"}, wide.Column(evaluation.ColNumBranches))
}

func TestAnalyze_PropagatesErrors(t *testing.T) {
	a := newTestAnalyzer(Config{
		Catalog: []MetricSpec{{Column: "latency", Level: LevelAction}},
	})

	_, err := a.Analyze(testkit.Dataset(testkit.SampleSheets()...))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrMissingColumn))
	assert.Contains(t, err.Error(), "latency/action")
}
