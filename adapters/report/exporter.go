package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"evalreport/internal"
	"evalreport/internal/errors"
	"evalreport/internal/presentation"
	"evalreport/ports"

	"golang.org/x/sync/errgroup"
)

// CorrelationsFile is the name of the correlation summary in the output
// directory
const CorrelationsFile = "correlations.txt"

// Exporter writes composed table sets below an output directory as
// <dir>/<Set Name>/<bucket>.<ext>
type Exporter struct {
	dir       string
	renderers []ports.TableRendererPort
	logger    *internal.Logger
}

// NewExporter creates an exporter writing every table in each of the given
// formats
func NewExporter(dir string, renderers []ports.TableRendererPort, logger *internal.Logger) *Exporter {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Exporter{dir: dir, renderers: renderers, logger: logger}
}

// Dir is the output directory
func (e *Exporter) Dir() string {
	return e.dir
}

// Export renders and writes every table of every set. Files are written
// concurrently; the returned paths are sorted.
func (e *Exporter) Export(ctx context.Context, sets []presentation.ComposedSet) ([]string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, errors.ExportError(fmt.Sprintf("failed to create output directory %s", e.dir), err)
	}

	var (
		mu      sync.Mutex
		written []string
	)
	// Directories first so a failure leaves no writer running
	for _, set := range sets {
		setDir := filepath.Join(e.dir, set.Name())
		if err := os.MkdirAll(setDir, 0o755); err != nil {
			return nil, errors.ExportError(fmt.Sprintf("failed to create %s", setDir), err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, set := range sets {
		setDir := filepath.Join(e.dir, set.Name())
		for _, bucket := range presentation.Buckets {
			t, ok := set.Tables[bucket]
			if !ok {
				continue
			}
			for _, r := range e.renderers {
				path := filepath.Join(setDir, fmt.Sprintf("%s.%s", bucket, r.Extension()))
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						return err
					}
					body, err := r.Render(t)
					if err != nil {
						return errors.ExportError(fmt.Sprintf("failed to render %s", path), err)
					}
					if err := os.WriteFile(path, body, 0o644); err != nil {
						return errors.ExportError(fmt.Sprintf("failed to write %s", path), err)
					}
					mu.Lock()
					written = append(written, path)
					mu.Unlock()
					return nil
				})
			}
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(written)
	e.logger.Info("[Exporter] wrote %d report files to %s", len(written), e.dir)
	return written, nil
}

// WriteCorrelations writes the correlation summary text
func (e *Exporter) WriteCorrelations(text string) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", errors.ExportError(fmt.Sprintf("failed to create output directory %s", e.dir), err)
	}
	path := filepath.Join(e.dir, CorrelationsFile)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", errors.ExportError(fmt.Sprintf("failed to write %s", path), err)
	}
	e.logger.Debug("[Exporter] wrote %s", path)
	return path, nil
}
