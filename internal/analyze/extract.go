package analyze

import "strings"

// Models reliably wrap JSON in prose, so the extractors scan for the
// outermost brackets instead of parsing strictly. Strict parsing would only
// raise the fallback rate.

// ExtractJSONArray returns the slice of s between the first '[' and the
// last ']'.
func ExtractJSONArray(s string) (string, bool) {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// ExtractJSONObject returns the slice of s between the first '{' and the
// last '}'.
func ExtractJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
