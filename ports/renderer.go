package ports

import (
	"evalreport/domain/table"
)

// TableRendererPort turns a composed table into one report file body
type TableRendererPort interface {
	// Name is the format name used in configuration, e.g. "latex"
	Name() string
	// Extension is the file extension without the dot
	Extension() string
	Render(t *table.Table) ([]byte, error)
}
