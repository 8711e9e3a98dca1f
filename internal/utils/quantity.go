package utils

import (
	"encoding/json"
	"math"
)

// Quantity converts a loosely typed amount (JSON number, Go number, numeric
// string) to an integer count, truncating fractions toward zero.
// It returns nil for absent, null, boolean or unparsable values.
func Quantity(v any) *int64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return &i
		}
		ff, err := x.Float64()
		if err != nil {
			return nil
		}
		f = ff
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		i := int64(x)
		return &i
	case int64:
		return &x
	case int32:
		i := int64(x)
		return &i
	case string:
		ff, ok := ParseFloatRU(x)
		if !ok {
			return nil
		}
		f = ff
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt64/2 {
		return nil
	}
	i := int64(f)
	return &i
}
