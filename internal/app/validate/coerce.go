package validate

import (
	"encoding/json"
	"fmt"
	"strconv"
)

func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

func asArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

// str stringifies a decoded JSON value. Falsy values (null, "", false, 0)
// become "", objects and arrays are rendered as compact JSON.
func str(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return ""
	case float64:
		if x == 0 {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case map[string]any, []any:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return fmt.Sprint(x)
	}
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}

// elem stringifies an array element. Unlike str it keeps falsy values:
// null, false and 0 become "null", "false" and "0".
func elem(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return str(v)
	}
}

// strList coerces an array of scalars; anything else yields an empty list.
func strList(v any) []string {
	arr, ok := asArray(v)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		out = append(out, elem(item))
	}
	return out
}

// list decodes each element with fn. Elements that are not objects decode
// as empty records; a non-array input yields an empty list.
func list[T any](v any, fn func(obj map[string]any, index int) T) []T {
	arr, ok := asArray(v)
	if !ok {
		return []T{}
	}
	out := make([]T, 0, len(arr))
	for i, item := range arr {
		obj, _ := asObject(item)
		out = append(out, fn(obj, i))
	}
	return out
}

// object returns v as an object, or an empty one.
func object(v any) map[string]any {
	if obj, ok := asObject(v); ok {
		return obj
	}
	return map[string]any{}
}
