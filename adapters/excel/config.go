package excel

import "regexp"

// DefaultSheetPattern matches scenario sheets such as F1C2 (finding 1,
// context 2)
const DefaultSheetPattern = `^F\d+C\d+$`

// ReaderConfig holds configuration for the evaluation workbook reader
type ReaderConfig struct {
	// SheetPattern selects which sheets are scenarios; others are ignored
	SheetPattern string `json:"sheet_pattern" yaml:"sheet_pattern"`
	// StrictSheets turns a sheet that fails to parse into a read error
	// instead of a logged skip
	StrictSheets bool `json:"strict_sheets" yaml:"strict_sheets"`
}

// DefaultReaderConfig returns the layout used by the evaluation workbooks
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		SheetPattern: DefaultSheetPattern,
	}
}

func (c ReaderConfig) compile() (*regexp.Regexp, error) {
	pattern := c.SheetPattern
	if pattern == "" {
		pattern = DefaultSheetPattern
	}
	return regexp.Compile(pattern)
}
