package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RunID identifies one report run in logs and results
type RunID string

// NewRunID creates a time-ordered run identifier
func NewRunID() RunID {
	// v7 sorts by creation time; v4 if the clock source fails
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return RunID(id.String())
}

// String returns the string representation
func (id RunID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id RunID) IsEmpty() bool {
	return id == ""
}

// ParseRunID parses a string into RunID
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}
	return RunID(s), nil
}
