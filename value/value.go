// Package value provides the property value model shared by every dialect
// strategy and the graph assembler.
//
// These helpers solve common problems:
//   - Text coercion from element text, numbers and booleans
//   - Null/empty normalization to a single absent value
//   - Order-preserving list wrapping
//   - Text length limits and URL checks
package value

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// =============================================================================
// TEXT VALUES
// =============================================================================

// Text extracts a string from various representations.
// Handles: string, []byte, fmt.Stringer, numeric types, bool, nil
func Text(v any) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// MaxTextLength is the longest text a textual property may carry.
const MaxTextLength = 5000

// LimitText truncates s to MaxTextLength characters.
func LimitText(s string) string {
	if utf8.RuneCountInString(s) <= MaxTextLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxTextLength])
}

// =============================================================================
// NUMERIC VALUES
// =============================================================================

// AsNumeric converts text to an int or a float64. It returns nil when the
// value is empty or not a number.
func AsNumeric(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case int, int64, float64:
		return val
	}
	s := strings.TrimSpace(Text(v))
	if s == "" {
		return nil
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return nil
}

// Float extracts a float64 and reports whether the value was numeric.
func Float(v any) (float64, bool) {
	switch n := AsNumeric(v).(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// =============================================================================
// URL VALUES
// =============================================================================

// IsURL reports whether s is an absolute URL with a scheme and a host.
func IsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
