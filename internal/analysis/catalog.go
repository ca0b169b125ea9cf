package analysis

import (
	"fmt"

	"evalreport/domain/core"
	"evalreport/domain/evaluation"
	"evalreport/domain/table"
)

// Level is the granularity at which a metric is counted
type Level string

const (
	LevelAction   Level = "action"
	LevelResponse Level = "response"
	LevelScenario Level = "scenario"
)

// ParseLevel validates a level name
func ParseLevel(s string) (Level, error) {
	switch l := Level(s); l {
	case LevelAction, LevelResponse, LevelScenario:
		return l, nil
	}
	return "", core.NewInvalidLevelError(s)
}

// SampleSizeColumn is the key of the per-level count column, e.g. n_action
func (l Level) SampleSizeColumn() string {
	return "n_" + string(l)
}

// Dimension is a grouping axis of the summary tables
type Dimension string

const (
	DimensionContextLevel Dimension = Dimension(evaluation.ColContextLevel)
	DimensionCategory     Dimension = Dimension(evaluation.ColCategory)
	DimensionScenario     Dimension = Dimension(evaluation.ColScenario)
)

// Dimensions is the fixed set of grouping dimensions in report order
var Dimensions = []Dimension{DimensionContextLevel, DimensionCategory, DimensionScenario}

// ParseDimension validates a dimension name
func ParseDimension(s string) (Dimension, error) {
	switch d := Dimension(s); d {
	case DimensionContextLevel, DimensionCategory, DimensionScenario:
		return d, nil
	}
	return "", core.NewInvalidDimensionError(s)
}

// Column is the flat dataset column the dimension groups by
func (d Dimension) Column() string {
	return string(d)
}

// Label is the display name, e.g. "Context-Level"
func (d Dimension) Label() string {
	return TitleCase(string(d))
}

// Format selects how an aggregated mean is displayed
type Format string

const (
	FormatPlain      Format = ""
	FormatPercentage Format = "percentage"
	FormatZeroToFive Format = "zero-to-five"
)

// ParseFormat validates a format name; "none" is accepted for FormatPlain
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatPlain, FormatPercentage, FormatZeroToFive:
		return f, nil
	case "none":
		return FormatPlain, nil
	}
	return "", core.NewInvalidFormatError(s)
}

// Condition recodes a raw cell to a 0/1 indicator
type Condition func(v any) bool

// Equals returns a condition matching cells deep-equal to want
func Equals(want any) Condition {
	w := table.Normalize(want)
	return func(v any) bool {
		return table.Equal(v, w)
	}
}

// MetricSpec describes one catalog entry
type MetricSpec struct {
	Column    string
	Level     Level
	Condition Condition
	Format    Format
}

func (m MetricSpec) String() string {
	return fmt.Sprintf("%s/%s", m.Column, m.Level)
}

// DefaultCatalog is the ordered set of metrics reported per dimension. Order
// matters: on sample-size column collisions the earlier metric wins.
func DefaultCatalog() []MetricSpec {
	return []MetricSpec{
		{Column: evaluation.ColUsefulness, Level: LevelAction, Format: FormatZeroToFive},
		{Column: evaluation.ColActionability, Level: LevelAction, Format: FormatZeroToFive},
		{Column: evaluation.ColDuplicate, Level: LevelAction, Condition: Equals("Y"), Format: FormatPercentage},
		{Column: evaluation.ColRelevant, Level: LevelAction, Condition: Equals("Y"), Format: FormatPercentage},
		{Column: evaluation.ColActionHallucination, Level: LevelAction, Condition: Equals("Y"), Format: FormatPercentage},
		{Column: evaluation.ColReasoningQuality, Level: LevelResponse, Format: FormatZeroToFive},
		{Column: evaluation.ColReasoningHallucination, Level: LevelResponse, Condition: Equals("Y"), Format: FormatPercentage},
		{Column: evaluation.ColSuccess, Level: LevelScenario, Condition: Equals(1), Format: FormatPercentage},
		{Column: evaluation.ColTreeDepth, Level: LevelScenario, Format: FormatPlain},
		{Column: evaluation.ColNumBranches, Level: LevelScenario, Format: FormatPlain},
		{Column: evaluation.ColNumResponses, Level: LevelScenario, Format: FormatPlain},
	}
}

// DefaultConfidence is the confidence level of reported intervals
const DefaultConfidence = 0.95

// Config is the injectable analysis configuration
type Config struct {
	Dimensions []Dimension
	Catalog    []MetricSpec
	Confidence float64
}

// DefaultConfig returns the standard report configuration
func DefaultConfig() Config {
	return Config{
		Dimensions: Dimensions,
		Catalog:    DefaultCatalog(),
		Confidence: DefaultConfidence,
	}
}
