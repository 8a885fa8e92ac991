package helpers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// DecodeStringList decodes a JSON-encoded array of strings, as submitted in
// the tags and agenda form fields. Anything that is not a flat string array
// is rejected.
func DecodeStringList(raw string) ([]string, error) {
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("expected a JSON array of strings: %w", err)
	}
	return items, nil
}

// Slugify lowercases the input and collapses anything that is not a letter
// or digit into single hyphens.
func Slugify(s string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			hyphen = false
		} else if !hyphen && b.Len() > 0 {
			b.WriteRune('-')
			hyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
