package util

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxLogBodySize is the default maximum body size for logging (10KB).
const MaxLogBodySize = 10 * 1024

// TruncateBody truncates a string to maxSize bytes, appending "...(truncated)" if truncated.
// If maxSize <= 0, uses MaxLogBodySize.
func TruncateBody(data string, maxSize int) string {
	if maxSize <= 0 {
		maxSize = MaxLogBodySize
	}
	if len(data) > maxSize {
		return data[:maxSize] + "...(truncated)"
	}
	return data
}

// DecodeBase64 decodes base64-encoded text and returns it as a UTF-8 string.
// Invalid UTF-8 sequences in the decoded bytes are dropped rather than
// reported, since service payloads occasionally carry stray bytes around
// otherwise readable content.
func DecodeBase64(encoded string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}
	if utf8.Valid(decoded) {
		return string(decoded), nil
	}

	// Keep only valid UTF-8 runes.
	var b strings.Builder
	for len(decoded) > 0 {
		r, size := utf8.DecodeRune(decoded)
		if r != utf8.RuneError || size > 1 {
			b.WriteRune(r)
		}
		decoded = decoded[size:]
	}
	return b.String(), nil
}
