package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"evalreport/adapters/report"
	"evalreport/app"
	"evalreport/internal"
	"evalreport/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	rootCmd := newRootCmd()
	rootCmd.AddCommand(newFormatsCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		excelFile      string
		outputDir      string
		dbFile         string
		formats        string
		catalog        string
		logLevel       string
		skipEnrichment bool
		noCorrelations bool
		confidence     float64
	)

	cmd := &cobra.Command{
		Use:   "evalreport",
		Short: "Summarize decision-tree agent evaluations into report tables",
		Long: `Read an evaluation workbook, enrich each response with its conversation
context from the message database, and write summary tables per context
level, category and scenario together with a correlation summary.

Settings are read from the environment (and a .env file) first:
  EXCEL_FILE, OUTPUT_DIR, DATABASE_URL, DATABASE_DRIVER, REPORT_FORMATS,
  CATALOG_FILE, CONFIDENCE, SKIP_ENRICHMENT, CORRELATIONS, LOG_LEVEL
Flags override them.

Example:
  evalreport -f data/evaluation.xlsx -o out -d data/completed.db --formats latex,markdown`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			flags := cmd.Flags()
			if flags.Changed("file") {
				cfg.Input.ExcelFile = excelFile
			}
			if flags.Changed("output_dir") {
				cfg.Report.OutputDir = outputDir
			}
			if flags.Changed("db_file") {
				cfg.Database.URL = dbFile
			}
			if flags.Changed("formats") {
				cfg.Report.Formats = strings.Split(formats, ",")
			}
			if flags.Changed("catalog") {
				cfg.Analysis.CatalogFile = catalog
			}
			if flags.Changed("confidence") {
				cfg.Analysis.Confidence = confidence
				cfg.Analysis.ConfidenceSet = true
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if skipEnrichment {
				cfg.Database.SkipEnrichment = true
			}
			if noCorrelations {
				cfg.Report.Correlations = false
			}

			logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))
			defer logger.Sync()

			if err := cfg.Validate(); err != nil {
				return err
			}

			res, err := app.NewPipeline(cfg, logger).Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Processed %d scenario sheets (%d actions)\n", res.Sheets, res.Records)
			fmt.Printf("Wrote %d report files to %s\n", len(res.Files), cfg.Report.OutputDir)
			if res.CorrelationsFile != "" {
				fmt.Printf("Correlations: %s\n", res.CorrelationsFile)
			}
			if logger.GetLevel() >= internal.LogLevelDebug {
				for _, f := range res.Files {
					fmt.Printf("  %s\n", f)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&excelFile, "file", "f", "", "Evaluation workbook (.xlsx)")
	cmd.Flags().StringVarP(&outputDir, "output_dir", "o", "out", "Directory for the report tables")
	cmd.Flags().StringVarP(&dbFile, "db_file", "d", "data/completed.db", "Message database: SQLite file or postgres:// URL")
	cmd.Flags().StringVar(&formats, "formats", report.FormatLaTeX, "Comma-separated report formats: "+strings.Join(report.Formats(), ","))
	cmd.Flags().StringVar(&catalog, "catalog", "", "YAML metric catalog replacing the built-in one")
	cmd.Flags().Float64Var(&confidence, "confidence", 0.95, "Confidence level of reported intervals")
	cmd.Flags().StringVar(&logLevel, "log-level", "INFO", "ERROR, WARN, INFO, DEBUG or TRACE")
	cmd.Flags().BoolVar(&skipEnrichment, "skip-enrichment", false, "Do not read the message database")
	cmd.Flags().BoolVar(&noCorrelations, "no-correlations", false, "Do not write correlations.txt")

	return cmd
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported report formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, f := range report.Formats() {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
		},
	}
}
