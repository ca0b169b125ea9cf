package analysis

import (
	"fmt"

	"evalreport/domain/table"
	"evalreport/internal"
)

// Analyzer runs the metric catalog once per grouping dimension
type Analyzer struct {
	config     Config
	aggregator *Aggregator
	logger     *internal.Logger
}

// NewAnalyzer creates an analyzer for the given configuration
func NewAnalyzer(config Config, logger *internal.Logger) *Analyzer {
	if config.Confidence == 0 {
		config.Confidence = DefaultConfidence
	}
	if len(config.Dimensions) == 0 {
		config.Dimensions = Dimensions
	}
	if len(config.Catalog) == 0 {
		config.Catalog = DefaultCatalog()
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Analyzer{
		config:     config,
		aggregator: NewAggregator(config.Confidence),
		logger:     logger,
	}
}

// Config returns the effective configuration
func (a *Analyzer) Config() Config {
	return a.config
}

// Analyze builds one wide table per dimension
func (a *Analyzer) Analyze(data *table.Table) (map[Dimension]*table.Table, error) {
	results := make(map[Dimension]*table.Table, len(a.config.Dimensions))
	for _, dim := range a.config.Dimensions {
		wide, err := a.AnalyzeDimension(data, dim)
		if err != nil {
			return nil, err
		}
		results[dim] = wide
	}
	return results, nil
}

// AnalyzeDimension aggregates every catalog metric grouped by one dimension
// and left-merges the results on the group column. A non-key column already
// present from an earlier metric (e.g. a second n_action) is dropped, so the
// first metric in catalog order wins. Finally every non-key label becomes
// title-cased with spaces for underscores and the key takes the dimension's
// display name.
func (a *Analyzer) AnalyzeDimension(data *table.Table, dim Dimension) (*table.Table, error) {
	groupCol := dim.Column()
	var combined *table.Table

	for _, spec := range a.config.Catalog {
		result, err := a.aggregator.Aggregate(data, groupCol, spec)
		if err != nil {
			return nil, fmt.Errorf("aggregate %s by %s: %w", spec, groupCol, err)
		}
		a.logger.Debug("aggregated %s by %s: %d groups", spec, groupCol, result.Len())

		if combined == nil {
			combined = result
			continue
		}
		combined, err = combined.MergeLeft(result, groupCol)
		if err != nil {
			return nil, fmt.Errorf("merge %s by %s: %w", spec, groupCol, err)
		}
	}

	if combined == nil {
		return table.New(groupCol), nil
	}

	combined.Relabel(func(c table.Column) string {
		if c.Key == groupCol {
			return dim.Label()
		}
		return DisplayName(c.Label)
	})
	return combined, nil
}
