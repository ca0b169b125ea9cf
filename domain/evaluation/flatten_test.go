package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoSheets() []Sheet {
	return []Sheet{
		{
			Name: "F3C2", TreeDepth: 2.0, NumBranches: 1.0, NumResponses: 1.0, Success: 1.0,
			ContextLevel: 2.0, Category: "storage",
			Responses: []Response{{
				ID: "r1", ReasoningQuality: 4.0,
				Actions: []Action{{Name: "a1", Usefulness: 5.0}, {Name: "a2", Usefulness: 3.0}},
			}},
		},
		{
			Name: "F4C1", Category: "storage",
			Responses: []Response{{ID: "r2", Actions: []Action{{Name: "b1", Duplicate: "Y"}}}},
		},
	}
}

func TestFlatten_OneRecordPerAction(t *testing.T) {
	records := Flatten(twoSheets())

	require.Len(t, records, 3)
	assert.Equal(t, "F3C2", records[0].Scenario)
	assert.Equal(t, "3", records[0].FindingNumber)
	assert.Equal(t, "r1", records[1].ResponseID)
	assert.Equal(t, "a2", records[1].ActionName)
	assert.Equal(t, 4.0, records[1].ReasoningQuality)
	assert.Equal(t, "4", records[2].FindingNumber)
	assert.Equal(t, "Y", records[2].Duplicate)
}

func TestToTable_OmitsHierarchyUntilEnriched(t *testing.T) {
	records := Flatten(twoSheets())

	plain := ToTable(records)
	assert.Equal(t, 3, plain.Len())
	assert.False(t, plain.Has(ColMessageDepth))
	assert.True(t, plain.Has(ColUsefulness))

	records[0].Enriched = true
	records[0].MessageDepth = 2
	records[0].ConcatenatedText = "root text"
	records[0].ConcatenatedTextLength = 2

	enriched := ToTable(records)
	assert.Equal(t, Columns, enriched.Keys())
	assert.Equal(t, 2.0, enriched.Value(0, ColMessageDepth))
	assert.Equal(t, 2.0, enriched.Value(0, ColConcatenatedTextLen))
	assert.Nil(t, enriched.Value(1, ColMessageDepth))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 3, WordCount("  scan the\tports\n"))
}
