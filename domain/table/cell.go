package table

import (
	"fmt"
	"math"
)

// Normalize maps a raw cell value onto the small set of dynamic types a
// Table holds: nil, float64, string and bool. Every integer and float kind
// becomes float64 so equal numbers read from different sources compare equal.
func Normalize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(x) {
			return nil
		}
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case string, bool:
		return x
	case *string:
		if x == nil {
			return nil
		}
		return *x
	case *float64:
		if x == nil {
			return nil
		}
		return Normalize(*x)
	case *int:
		if x == nil {
			return nil
		}
		return float64(*x)
	default:
		return fmt.Sprint(x)
	}
}

// Float reports the numeric value of a normalized cell.
func Float(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// Equal is deep equality over normalized cells.
func Equal(a, b any) bool {
	return Normalize(a) == Normalize(b)
}

// Less orders cells: nil first, then bools, numbers ascending, strings
// lexically.
func Less(a, b any) bool {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra < rb
	}
	switch x := a.(type) {
	case bool:
		return !x && b.(bool)
	case float64:
		return x < b.(float64)
	case string:
		return x < b.(string)
	}
	return false
}

func rank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case float64:
		return 2
	case string:
		return 3
	default:
		return 4
	}
}
