// Package extract pulls the JSON object out of free-form model output.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExtraction       = errors.New("json extraction failed")
	ErrEmptyInput       = fmt.Errorf("%w: empty input", ErrExtraction)
	ErrIncompleteObject = fmt.Errorf("%w: incomplete JSON object", ErrExtraction)
	ErrInvalidJSON      = fmt.Errorf("%w: invalid JSON", ErrExtraction)
)

// JSONBlock returns the first balanced {...} span in text, verified to parse.
// Braces are counted without regard to JSON strings, so a stray brace inside
// a string value shifts the match.
func JSONBlock(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrEmptyInput
	}

	depth := 0
	start, end := -1, -1

scan:
	for i := 0; i < len(trimmed); i++ {
		switch trimmed[i] {
		case '{':
			if start == -1 {
				start = i
			}
			depth++
		case '}':
			depth--
			if depth == 0 && start != -1 {
				end = i
				break scan
			}
		}
	}

	if start == -1 || end == -1 {
		return "", ErrIncompleteObject
	}

	block := trimmed[start : end+1]
	var probe any
	if err := json.Unmarshal([]byte(block), &probe); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return block, nil
}

// Decode extracts the first JSON object from text and unmarshals it into a
// generic value for the validators.
func Decode(text string) (any, error) {
	block, err := JSONBlock(text)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal([]byte(block), &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return v, nil
}
