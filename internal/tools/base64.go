package tools

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// EncodeBase64 encodes the UTF-8 bytes of s, using the URL-safe alphabet when urlSafe is set.
func EncodeBase64(s string, urlSafe bool) string {
	if urlSafe {
		return base64.URLEncoding.EncodeToString([]byte(s))
	}
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// DecodeBase64 decodes s back to text. Whitespace anywhere in the input and
// missing padding are tolerated; results that are not valid UTF-8 are rejected.
func DecodeBase64(s string, urlSafe bool) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	cleaned = strings.TrimRight(cleaned, "=")

	enc := base64.RawStdEncoding
	if urlSafe {
		enc = base64.RawURLEncoding
	}
	out, err := enc.DecodeString(cleaned)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}
	if !utf8.Valid(out) {
		return "", fmt.Errorf("%w: decoded bytes are not valid UTF-8", ErrInvalidBase64)
	}
	return string(out), nil
}
