package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DefaultJSONIndent is the indent width used when callers pass a non-positive width.
const DefaultJSONIndent = 2

// JSONResult describes the outcome of validating a JSON document.
type JSONResult struct {
	Valid  bool
	Error  string
	Line   int
	Column int
}

// FormatJSON pretty-prints input with indent spaces per level. Key order and
// number literals are preserved, so formatting is idempotent.
func FormatJSON(input string, indent int) (string, error) {
	src, err := checkJSON(input)
	if err != nil {
		return "", err
	}
	if indent <= 0 {
		indent = DefaultJSONIndent
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, src, "", strings.Repeat(" ", indent)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return buf.String(), nil
}

// MinifyJSON strips all insignificant whitespace from input.
func MinifyJSON(input string) (string, error) {
	src, err := checkJSON(input)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, src); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return buf.String(), nil
}

// ValidateJSON reports whether input parses, with the error position when it does not.
func ValidateJSON(input string) JSONResult {
	if _, err := checkJSON(input); err != nil {
		res := JSONResult{Error: err.Error()}
		var posErr *jsonPositionError
		if errors.As(err, &posErr) {
			res.Line = posErr.line
			res.Column = posErr.column
		}
		return res
	}
	return JSONResult{Valid: true}
}

type jsonPositionError struct {
	msg    string
	line   int
	column int
}

func (e *jsonPositionError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.msg, e.line, e.column)
}

func (e *jsonPositionError) Unwrap() error { return ErrInvalidJSON }

func checkJSON(input string) ([]byte, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidJSON)
	}
	src := []byte(trimmed)
	if json.Valid(src) {
		return src, nil
	}

	var v any
	err := json.Unmarshal(src, &v)
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := lineColumn(trimmed, int(syntaxErr.Offset))
		return nil, &jsonPositionError{msg: syntaxErr.Error(), line: line, column: col}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil, ErrInvalidJSON
}

// lineColumn converts a byte offset into 1-based line and column numbers.
func lineColumn(s string, offset int) (int, int) {
	if offset > len(s) {
		offset = len(s)
	}
	if offset < 1 {
		return 1, 1
	}
	head := s[:offset]
	line := strings.Count(head, "\n") + 1
	col := offset - (strings.LastIndex(head, "\n") + 1)
	if col < 1 {
		col = 1
	}
	return line, col
}
