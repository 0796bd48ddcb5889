package config

import (
	"math"
	"time"

	"github.com/dshills/griddrop/internal/gesture"
)

func asString(path string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

func asBool(path string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

func asInt(path string, v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		if val != math.Trunc(val) {
			return 0, &TypeError{Path: path, Expected: "int", Actual: "float64"}
		}
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

func asFloat(path string, v any) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "float64", Actual: typeName(v)}
	}
}

// asDuration accepts a time.Duration, a duration string, or a number of
// milliseconds.
func asDuration(path string, v any) (time.Duration, error) {
	switch val := v.(type) {
	case time.Duration:
		return val, nil
	case string:
		d, err := time.ParseDuration(val)
		if err != nil {
			return 0, &TypeError{Path: path, Expected: "duration", Actual: "string"}
		}
		return d, nil
	default:
		ms, err := asFloat(path, v)
		if err != nil {
			return 0, &TypeError{Path: path, Expected: "duration", Actual: typeName(v)}
		}
		return time.Duration(ms * float64(time.Millisecond)), nil
	}
}

func asStringSlice(path string, v any) ([]string, error) {
	switch val := v.(type) {
	case []string:
		return val, nil
	case []any:
		result := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
	}
}

// asThreshold accepts a number for a scalar threshold or a table with x
// and/or y for a per-axis one.
func asThreshold(path string, v any) (gesture.Threshold, error) {
	m, ok := v.(map[string]any)
	if !ok {
		d, err := asFloat(path, v)
		if err != nil {
			return gesture.Threshold{}, &TypeError{Path: path, Expected: "number or {x, y}", Actual: typeName(v)}
		}
		return gesture.Scalar(d), nil
	}

	xv, hasX := m["x"]
	yv, hasY := m["y"]
	var x, y float64
	var err error
	if hasX {
		if x, err = asFloat(path+".x", xv); err != nil {
			return gesture.Threshold{}, err
		}
	}
	if hasY {
		if y, err = asFloat(path+".y", yv); err != nil {
			return gesture.Threshold{}, err
		}
	}

	switch {
	case hasX && hasY:
		return gesture.OnXY(x, y), nil
	case hasX:
		return gesture.OnX(x), nil
	case hasY:
		return gesture.OnY(y), nil
	default:
		return gesture.Threshold{}, nil
	}
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case time.Duration:
		return "duration"
	case []string:
		return "[]string"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return "unknown"
	}
}
