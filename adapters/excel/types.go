package excel

import (
	"math"
	"strconv"
	"strings"
)

// grid is the raw string content of one sheet, starting at sheet row 2.
// Rows are ragged: trailing empty cells are not present.
type grid [][]string

// raw returns the trimmed text of a cell, "" when out of range
func (g grid) raw(row, col int) string {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return ""
	}
	return strings.TrimSpace(g[row][col])
}

// value returns a cell coerced to a dataset value: nil for empty, float64
// when the text parses as a finite number, otherwise the trimmed string
func (g grid) value(row, col int) any {
	return coerceCell(g.raw(row, col))
}

func coerceCell(s string) any {
	if s == "" {
		return nil
	}
	// "inf" and "NaN" are text, not numbers
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return s
}
