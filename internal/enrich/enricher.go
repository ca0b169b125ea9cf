// Package enrich adds conversation-tree context from the message database to
// flattened evaluation records.
package enrich

import (
	"context"
	"sync"

	"evalreport/domain/evaluation"
	"evalreport/internal"
	"evalreport/ports"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds concurrent lookups against the message database
const DefaultWorkers = 4

// Enricher resolves every distinct response id once and copies the result
// onto each record of that response
type Enricher struct {
	lookup  ports.HierarchyPort
	workers int
	logger  *internal.Logger

	mu    sync.Mutex
	cache map[string]evaluation.Hierarchy
}

// NewEnricher creates an enricher; workers <= 0 uses DefaultWorkers
func NewEnricher(lookup ports.HierarchyPort, workers int, logger *internal.Logger) *Enricher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Enricher{
		lookup:  lookup,
		workers: workers,
		logger:  logger,
		cache:   make(map[string]evaluation.Hierarchy),
	}
}

// Enrich returns a copy of records with the hierarchy fields populated. The
// first lookup failure cancels the remaining ones and is returned.
func (e *Enricher) Enrich(ctx context.Context, records []evaluation.FlatRecord) ([]evaluation.FlatRecord, error) {
	var pending []string
	seen := make(map[string]bool)
	e.mu.Lock()
	for _, r := range records {
		if _, cached := e.cache[r.ResponseID]; cached || seen[r.ResponseID] {
			continue
		}
		seen[r.ResponseID] = true
		pending = append(pending, r.ResponseID)
	}
	e.mu.Unlock()

	e.logger.Debug("[Enricher] %d records, %d response ids to look up", len(records), len(pending))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for _, id := range pending {
		g.Go(func() error {
			h, err := e.lookup.Lookup(gctx, id)
			if err != nil {
				return err
			}
			if h.Depth == 0 && h.Text == "" {
				e.logger.Warn("[Enricher] response %s not found in message database", id)
			}
			e.mu.Lock()
			e.cache[id] = h
			e.mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]evaluation.FlatRecord, len(records))
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, r := range records {
		out[i] = Apply(r, e.cache[r.ResponseID])
	}
	return out, nil
}

// Apply copies a hierarchy onto one record
func Apply(r evaluation.FlatRecord, h evaluation.Hierarchy) evaluation.FlatRecord {
	r.Enriched = true
	r.MessageDepth = h.Depth
	r.MessageText = h.Text
	r.RootText = h.RootText
	r.ParentText = h.ParentText
	r.ConcatenatedText = h.ConcatenatedText
	r.ConcatenatedTextLength = evaluation.WordCount(h.ConcatenatedText)
	return r
}

// CacheSize reports how many response ids have been resolved
func (e *Enricher) CacheSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.cache)
}
