package ports

import (
	"context"

	"evalreport/domain/evaluation"
)

// HierarchyPort resolves a response id to its position in the conversation
// tree of the message store
type HierarchyPort interface {
	// Lookup returns the zero Hierarchy, not an error, for an unknown id
	Lookup(ctx context.Context, responseID string) (evaluation.Hierarchy, error)
	Close() error
}
