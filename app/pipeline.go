package app

import (
	"context"
	"os"
	"time"

	"evalreport/adapters/db/hierarchy"
	"evalreport/adapters/excel"
	"evalreport/adapters/report"
	"evalreport/domain/core"
	"evalreport/domain/evaluation"
	"evalreport/domain/table"
	"evalreport/internal"
	"evalreport/internal/analysis"
	"evalreport/internal/config"
	"evalreport/internal/correlation"
	"evalreport/internal/enrich"
	"evalreport/internal/errors"
	"evalreport/internal/presentation"
	"evalreport/ports"
)

// HierarchyOpener connects to the message database
type HierarchyOpener func(ctx context.Context, driver, dsn string) (ports.HierarchyPort, error)

// Pipeline runs one report: workbook in, summary tables and correlations out
type Pipeline struct {
	cfg    *config.Config
	logger *internal.Logger
	open   HierarchyOpener
	reader ports.SheetReaderPort
}

// RunResult describes what a run produced
type RunResult struct {
	RunID            core.RunID
	Sheets           int
	Records          int
	Enriched         bool
	Dataset          *table.Table
	Files            []string
	Correlations     []correlation.Result
	CorrelationsFile string
	Duration         time.Duration
}

// NewPipeline creates a pipeline for a validated configuration
func NewPipeline(cfg *config.Config, logger *internal.Logger) *Pipeline {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Pipeline{
		cfg:    cfg,
		logger: logger,
		open: func(ctx context.Context, driver, dsn string) (ports.HierarchyPort, error) {
			return hierarchy.Open(ctx, driver, dsn)
		},
	}
}

// WithHierarchyOpener replaces how the message database is opened
func (p *Pipeline) WithHierarchyOpener(open HierarchyOpener) *Pipeline {
	p.open = open
	return p
}

// WithSheetReader replaces the Excel reader built from the input config
func (p *Pipeline) WithSheetReader(reader ports.SheetReaderPort) *Pipeline {
	p.reader = reader
	return p
}

// Run executes every stage in order and stops at the first failure
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	start := time.Now()
	result := &RunResult{RunID: core.NewRunID()}
	log := p.logger.With("run", result.RunID.String())
	log.Info("[Pipeline] reading %s", p.cfg.Input.ExcelFile)

	analysisConfig, err := p.analysisConfig()
	if err != nil {
		return nil, err
	}
	renderers, err := report.RenderersFor(p.cfg.Report.Formats)
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err, "invalid report formats")
	}

	sheets, err := p.loadSheets(ctx)
	if err != nil {
		return nil, err
	}
	result.Sheets = len(sheets)

	records := evaluation.Flatten(sheets)
	result.Records = len(records)
	log.Info("[Pipeline] flattened %d sheets into %d action records", len(sheets), len(records))

	if !p.cfg.Database.SkipEnrichment {
		records, err = p.enrich(ctx, records)
		if err != nil {
			return nil, err
		}
		result.Enriched = true
	}

	dataset := evaluation.ToTable(records)
	result.Dataset = dataset

	analyzer := analysis.NewAnalyzer(analysisConfig, log)
	wide, err := analyzer.Analyze(dataset)
	if err != nil {
		return nil, analysisError(err)
	}

	sets, err := presentation.NewComposer(presentation.DefaultLayout()).ComposeAll(analyzer.Config().Dimensions, wide)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compose tables")
	}

	if err := os.MkdirAll(p.cfg.Report.OutputDir, 0o755); err != nil {
		return nil, errors.ExportError("failed to create output directory "+p.cfg.Report.OutputDir, err)
	}
	exporter := report.NewExporter(p.cfg.Report.OutputDir, renderers, log)
	result.Files, err = exporter.Export(ctx, sets)
	if err != nil {
		return nil, err
	}

	if p.cfg.Report.Correlations {
		corr := correlation.NewAnalyzer(analyzer.Config().Confidence, log)
		result.Correlations = corr.Run(dataset, correlation.DefaultPairs())
		result.CorrelationsFile, err = exporter.WriteCorrelations(correlation.Report(result.Correlations))
		if err != nil {
			return nil, err
		}
	}

	result.Duration = time.Since(start)
	log.Info("[Pipeline] wrote %d files to %s in %v", len(result.Files), p.cfg.Report.OutputDir, result.Duration)
	return result, nil
}

func (p *Pipeline) analysisConfig() (analysis.Config, error) {
	cfg := analysis.DefaultConfig()
	if p.cfg.Analysis.CatalogFile != "" {
		var err error
		cfg, err = config.LoadCatalog(p.cfg.Analysis.CatalogFile)
		if err != nil {
			return analysis.Config{}, err
		}
		p.logger.Info("[Pipeline] using %d metrics from %s", len(cfg.Catalog), p.cfg.Analysis.CatalogFile)
	}
	// A catalog keeps its own confidence unless the user asked for one
	if p.cfg.Analysis.Confidence != 0 && (p.cfg.Analysis.CatalogFile == "" || p.cfg.Analysis.ConfidenceSet) {
		cfg.Confidence = p.cfg.Analysis.Confidence
	}
	return cfg, nil
}

// analysisError maps a domain failure to the code the user can act on:
// a catalog naming an unknown column or level is a configuration problem,
// a column holding the wrong kind of value is bad input.
func analysisError(err error) error {
	switch {
	case core.IsArgumentError(err):
		return errors.WithCode(errors.CodeConfigInvalid, err, "analysis configuration does not match the data")
	case core.IsDataIntegrityError(err):
		return errors.WithCode(errors.CodeInvalidInput, err, "evaluation data is inconsistent")
	default:
		return errors.Wrap(err, "analysis failed")
	}
}

func (p *Pipeline) loadSheets(ctx context.Context) ([]evaluation.Sheet, error) {
	reader := p.reader
	if reader == nil {
		xlsx, err := excel.NewSheetReader(excel.ReaderConfig{
			SheetPattern: p.cfg.Input.SheetPattern,
			StrictSheets: p.cfg.Input.StrictSheets,
		}, p.logger)
		if err != nil {
			return nil, err
		}
		reader = xlsx
	}
	sheets, err := reader.ReadSheets(ctx, p.cfg.Input.ExcelFile)
	if err != nil {
		return nil, err
	}
	if len(sheets) == 0 {
		return nil, errors.Newf(errors.CodeInvalidInput, "no scenario sheets found in %s", p.cfg.Input.ExcelFile)
	}
	return sheets, nil
}

func (p *Pipeline) enrich(ctx context.Context, records []evaluation.FlatRecord) ([]evaluation.FlatRecord, error) {
	if p.cfg.Database.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Database.Timeout)
		defer cancel()
	}

	driver := p.cfg.Database.ResolveDriver()
	store, err := p.open(ctx, driver, p.cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			p.logger.Warn("[Pipeline] failed to close message database: %v", cerr)
		}
	}()

	enricher := enrich.NewEnricher(store, p.cfg.Database.Workers, p.logger)
	enriched, err := enricher.Enrich(ctx, records)
	if err != nil {
		return nil, errors.Wrap(err, "hierarchy enrichment failed")
	}
	p.logger.Info("[Pipeline] enriched %d records from %d responses (%s)", len(enriched), enricher.CacheSize(), driver)
	return enriched, nil
}
