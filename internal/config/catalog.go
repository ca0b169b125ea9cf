package config

import (
	"fmt"
	"os"

	"evalreport/internal/analysis"
	"evalreport/internal/errors"

	"gopkg.in/yaml.v3"
)

// CatalogFile is the YAML form of an analysis configuration:
//
//	confidence: 0.95
//	dimensions: [context-level, category, scenario]
//	metrics:
//	  - column: duplicate
//	    level: action
//	    condition: {equals: "Y"}
//	    format: percentage
type CatalogFile struct {
	Confidence float64        `yaml:"confidence"`
	Dimensions []string       `yaml:"dimensions"`
	Metrics    []CatalogEntry `yaml:"metrics"`
}

// CatalogEntry is one metric of the catalog file
type CatalogEntry struct {
	Column    string          `yaml:"column"`
	Level     string          `yaml:"level"`
	Condition *ConditionEntry `yaml:"condition,omitempty"`
	Format    string          `yaml:"format"`
}

// ConditionEntry recodes a metric to 1 where the cell equals the value
type ConditionEntry struct {
	Equals any `yaml:"equals"`
}

// LoadCatalog reads an analysis configuration from a YAML file
func LoadCatalog(path string) (analysis.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return analysis.Config{}, errors.WithCode(errors.CodeConfigInvalid, err, "failed to read catalog "+path)
	}
	cfg, err := ParseCatalog(data)
	if err != nil {
		return analysis.Config{}, errors.Wrapf(err, "invalid catalog %s", path)
	}
	return cfg, nil
}

// ParseCatalog decodes a catalog. Omitted dimensions and confidence keep
// their defaults; an empty metric list is an error.
func ParseCatalog(data []byte) (analysis.Config, error) {
	var file CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return analysis.Config{}, errors.WithCode(errors.CodeConfigInvalid, err, "failed to decode catalog")
	}
	if len(file.Metrics) == 0 {
		return analysis.Config{}, errors.ConfigInvalid("catalog lists no metrics")
	}

	cfg := analysis.DefaultConfig()
	cfg.Catalog = nil
	if file.Confidence != 0 {
		if file.Confidence <= 0 || file.Confidence >= 1 {
			return analysis.Config{}, errors.ConfigInvalid(fmt.Sprintf("confidence must be between 0 and 1, got %v", file.Confidence))
		}
		cfg.Confidence = file.Confidence
	}

	if len(file.Dimensions) > 0 {
		cfg.Dimensions = nil
		for _, name := range file.Dimensions {
			dim, err := analysis.ParseDimension(name)
			if err != nil {
				return analysis.Config{}, errors.WithCode(errors.CodeConfigInvalid, err, "invalid dimension")
			}
			cfg.Dimensions = append(cfg.Dimensions, dim)
		}
	}

	for i, entry := range file.Metrics {
		spec, err := entry.spec()
		if err != nil {
			return analysis.Config{}, errors.WithCode(errors.CodeConfigInvalid, err, fmt.Sprintf("invalid metric #%d (%s)", i+1, entry.Column))
		}
		cfg.Catalog = append(cfg.Catalog, spec)
	}
	return cfg, nil
}

func (e CatalogEntry) spec() (analysis.MetricSpec, error) {
	if e.Column == "" {
		return analysis.MetricSpec{}, fmt.Errorf("column is required")
	}
	level, err := analysis.ParseLevel(e.Level)
	if err != nil {
		return analysis.MetricSpec{}, err
	}
	format, err := analysis.ParseFormat(e.Format)
	if err != nil {
		return analysis.MetricSpec{}, err
	}

	spec := analysis.MetricSpec{Column: e.Column, Level: level, Format: format}
	if e.Condition != nil {
		if e.Condition.Equals == nil {
			return analysis.MetricSpec{}, fmt.Errorf("condition needs an equals value")
		}
		spec.Condition = analysis.Equals(e.Condition.Equals)
	}
	return spec, nil
}
