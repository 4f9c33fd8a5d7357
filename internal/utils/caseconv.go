package utils

import (
	"strings"
	"unicode"
)

// CamelToSnakeKey converts a single camelCase key to snake_case.
// Keys without uppercase letters come back unchanged.
func CamelToSnakeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for _, r := range key {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SnakeToCamelKey converts a single snake_case key to camelCase.
// Only an underscore followed by a lowercase letter is collapsed, so
// single-word keys round-trip unchanged.
func SnakeToCamelKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for i := 0; i < len(key); i++ {
		if key[i] == '_' && i+1 < len(key) && key[i+1] >= 'a' && key[i+1] <= 'z' {
			b.WriteByte(key[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(key[i])
	}
	return b.String()
}

// CamelToSnake converts every key of a decoded JSON value to snake_case,
// descending into nested maps and slices. Non-container values are
// returned as-is.
func CamelToSnake(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			out[CamelToSnakeKey(key)] = CamelToSnake(inner)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = CamelToSnake(inner)
		}
		return out
	default:
		return value
	}
}

// SnakeToCamel is the inverse of CamelToSnake for records built from
// known snake_case column names.
func SnakeToCamel(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			out[SnakeToCamelKey(key)] = SnakeToCamel(inner)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = SnakeToCamel(inner)
		}
		return out
	default:
		return value
	}
}

// CamelToSnakeMap is CamelToSnake for the common top-level map case,
// used when shaping partial-update payloads into column maps.
func CamelToSnakeMap(fields map[string]any) map[string]any {
	return CamelToSnake(fields).(map[string]any)
}

// SnakeToCamelMap is SnakeToCamel for a single row map.
func SnakeToCamelMap(row map[string]any) map[string]any {
	return SnakeToCamel(row).(map[string]any)
}
