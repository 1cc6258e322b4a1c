package normalize

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// String coerces an arbitrary JSON value to a trimmed string.
func String(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// Number coerces an arbitrary JSON value to a float64, defaulting to 0.
func Number(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		n, _ := x.Float64()
		return n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Bool treats boolean true and the string "true" as truthy.
func Bool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return strings.EqualFold(strings.TrimSpace(x), "true")
	default:
		return false
	}
}

var listSeparators = func(r rune) bool { return r == ',' || r == '|' }

// StringList normalizes a native list, a comma/pipe-delimited string or a
// single scalar into a trimmed, deduplicated list with empty entries removed.
func StringList(v any) []string {
	var parts []string
	switch x := v.(type) {
	case nil:
		return nil
	case []any:
		for _, item := range x {
			parts = append(parts, String(item))
		}
	case string:
		parts = strings.FieldsFunc(x, listSeparators)
	default:
		parts = []string{String(v)}
	}

	seen := make(map[string]struct{}, len(parts))
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		result = append(result, p)
	}
	return result
}

var yearExpr = regexp.MustCompile(`\d{4}`)

// Year extracts a 4-digit year, defaulting to the current year.
func Year(v any) string {
	if found := yearExpr.FindString(String(v)); found != "" {
		return found
	}
	return strconv.Itoa(time.Now().Year())
}

// Runtime coerces a runtime-in-minutes value, defaulting to 0.
func Runtime(v any) float64 {
	minutes := Number(v)
	if minutes < 0 {
		return 0
	}
	return minutes
}

// firstPresent returns the first non-nil field among names.
func firstPresent(rec map[string]any, names ...string) any {
	for _, name := range names {
		if v, ok := rec[name]; ok && v != nil {
			return v
		}
	}
	return nil
}

// firstString returns the first field among names that coerces to a
// non-empty string.
func firstString(rec map[string]any, names ...string) string {
	for _, name := range names {
		if s := String(rec[name]); s != "" {
			return s
		}
	}
	return ""
}
