package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"evalreport/internal/errors"
)

// Supported message database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	Input    InputConfig
	Database DatabaseConfig
	Report   ReportConfig
	Analysis AnalysisConfig
	LogLevel string
}

// InputConfig describes the evaluation workbook
type InputConfig struct {
	ExcelFile    string
	SheetPattern string
	StrictSheets bool
}

// DatabaseConfig holds the message database settings used for hierarchy
// enrichment
type DatabaseConfig struct {
	URL            string
	Driver         string
	SkipEnrichment bool
	Workers        int
	Timeout        time.Duration
}

// ReportConfig holds output settings
type ReportConfig struct {
	OutputDir    string
	Formats      []string
	Correlations bool
}

// AnalysisConfig holds aggregation settings
type AnalysisConfig struct {
	Confidence float64
	// ConfidenceSet is true when Confidence came from the user rather than
	// the default; only then does it override a catalog's own level
	ConfidenceSet bool
	CatalogFile   string
}

// Load reads configuration from environment variables. It does not touch
// the file system; call Validate once command-line overrides are applied.
func Load() *Config {
	cfg := &Config{
		Input: InputConfig{
			ExcelFile:    getEnvOrDefault("EXCEL_FILE", ""),
			SheetPattern: getEnvOrDefault("SHEET_PATTERN", ""),
			StrictSheets: getEnvBoolOrDefault("STRICT_SHEETS", false),
		},
		Database: DatabaseConfig{
			URL:            getEnvOrDefault("DATABASE_URL", "data/completed.db"),
			Driver:         getEnvOrDefault("DATABASE_DRIVER", ""),
			SkipEnrichment: getEnvBoolOrDefault("SKIP_ENRICHMENT", false),
			Workers:        getEnvIntOrDefault("DATABASE_WORKERS", 4),
			Timeout:        getEnvDurationOrDefault("DATABASE_TIMEOUT", 2*time.Minute),
		},
		Report: ReportConfig{
			OutputDir:    getEnvOrDefault("OUTPUT_DIR", "out"),
			Formats:      splitList(getEnvOrDefault("REPORT_FORMATS", "latex")),
			Correlations: getEnvBoolOrDefault("CORRELATIONS", true),
		},
		Analysis: AnalysisConfig{
			Confidence:    getEnvFloatOrDefault("CONFIDENCE", 0.95),
			ConfidenceSet: os.Getenv("CONFIDENCE") != "",
			CatalogFile:   getEnvOrDefault("CATALOG_FILE", ""),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}
	return cfg
}

// ResolveDriver returns the configured driver, inferring postgres from a
// postgres:// URL and sqlite otherwise
func (c DatabaseConfig) ResolveDriver() string {
	if c.Driver != "" {
		return strings.ToLower(c.Driver)
	}
	url := strings.ToLower(c.URL)
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

// Validate checks the configuration against the file system: the workbook
// must exist with an Excel extension and, unless enrichment is skipped or
// the database is postgres, the SQLite file must exist with a .db extension.
func (c *Config) Validate() error {
	if c.Input.ExcelFile == "" {
		return errors.ConfigInvalid("an input workbook is required (--file or EXCEL_FILE)")
	}
	if err := requireFile(c.Input.ExcelFile, ".xls", ".xlsx"); err != nil {
		return err
	}

	if c.Report.OutputDir == "" {
		return errors.ConfigInvalid("output directory must not be empty")
	}
	if len(c.Report.Formats) == 0 {
		return errors.ConfigInvalid("at least one report format is required")
	}

	if c.Analysis.Confidence <= 0 || c.Analysis.Confidence >= 1 {
		return errors.ConfigInvalid("confidence must be between 0 and 1, got " +
			strconv.FormatFloat(c.Analysis.Confidence, 'f', -1, 64))
	}
	if c.Analysis.CatalogFile != "" {
		if err := requireFile(c.Analysis.CatalogFile, ".yaml", ".yml"); err != nil {
			return err
		}
	}

	if c.Database.SkipEnrichment {
		return nil
	}
	switch c.Database.ResolveDriver() {
	case DriverPostgres:
		if c.Database.URL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required for the postgres driver")
		}
	case DriverSQLite:
		if err := requireFile(c.Database.URL, ".db"); err != nil {
			return err
		}
	default:
		return errors.ConfigInvalid("unsupported database driver " + c.Database.Driver)
	}
	if c.Database.Workers <= 0 {
		return errors.ConfigInvalid("database workers must be positive")
	}
	return nil
}

func requireFile(path string, extensions ...string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.WithCode(errors.CodeInvalidInput, err, "file "+path+" does not exist")
	}
	if info.IsDir() {
		return errors.InvalidInput(path + " is a directory")
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range extensions {
		if ext == want {
			return nil
		}
	}
	return errors.InvalidInput("file " + path + " must have extension " + strings.Join(extensions, " or "))
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
