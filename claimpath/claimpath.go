// Package claimpath selects claim values out of raw JSON-like claim
// documents (map[string]any, []any, scalars) by a small jq-style path.
//
// Supported syntax:
//
//	.foo.bar          - object field access
//	.foo[0]           - array index (negative indexes allowed)
//	.foo[*]           - every array element
//	.["complex key"]  - quoted keys
//
// Parts of a path missing at runtime yield zero values, not an error; only a
// malformed path fails. Matched scalars render to strings the way claim
// values do; non-scalar matches are dropped.
package claimpath

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type segmentKind int

const (
	segField segmentKind = iota
	segIndex
	segWildcard
)

type segment struct {
	kind  segmentKind
	field string
	index int
}

// Values returns every claim value the path selects from the document.
func Values(doc map[string]any, path string) ([]string, error) {
	segments, err := parse(path)
	if err != nil {
		return nil, err
	}
	frontier := []any{any(doc)}
	for _, seg := range segments {
		var next []any
		for _, node := range frontier {
			next = append(next, apply(node, seg)...)
		}
		frontier = next
	}
	var values []string
	for _, node := range frontier {
		if value, ok := stringify(node); ok {
			values = append(values, value)
		}
	}
	return values, nil
}

// Value expects the path to select exactly one claim value.
func Value(doc map[string]any, path string) (string, error) {
	values, err := Values(doc, path)
	if err != nil {
		return "", err
	}
	switch len(values) {
	case 0:
		return "", errors.New("no value at path")
	case 1:
		return values[0], nil
	default:
		return "", fmt.Errorf("path matched %d values; expected one", len(values))
	}
}

func apply(node any, seg segment) []any {
	switch seg.kind {
	case segField:
		if m, ok := node.(map[string]any); ok {
			if value, ok := m[seg.field]; ok {
				return []any{value}
			}
		}
	case segIndex:
		items := elements(node)
		index := seg.index
		if index < 0 {
			index += len(items)
		}
		if index >= 0 && index < len(items) {
			return []any{items[index]}
		}
	case segWildcard:
		return elements(node)
	}
	return nil
}

func elements(node any) []any {
	switch v := node.(type) {
	case []any:
		return v
	case []string:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = item
		}
		return items
	}
	return nil
}

func stringify(v any) (string, bool) {
	switch value := v.(type) {
	case string:
		return value, true
	case bool:
		return strconv.FormatBool(value), true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case int:
		return strconv.Itoa(value), true
	case int64:
		return strconv.FormatInt(value, 10), true
	case json.Number:
		return value.String(), true
	}
	return "", false
}

// ----------------- Parser -----------------

type scanner struct {
	s string
	i int
}

func parse(path string) ([]segment, error) {
	s := &scanner{s: strings.TrimSpace(path)}
	var segments []segment
	for s.i < len(s.s) {
		switch ch := s.peek(); {
		case ch == '.':
			s.i++
			if isIdentStart(s.peek()) {
				segments = append(segments, segment{kind: segField, field: s.readIdent()})
				continue
			}
			if s.peek() == '[' {
				continue
			}
			return nil, s.errf("identifier or '[' expected after '.'")
		case ch == '[':
			s.i++
			seg, err := s.readBracket()
			if err != nil {
				return nil, err
			}
			segments = append(segments, seg)
		case isIdentStart(ch) && len(segments) == 0:
			segments = append(segments, segment{kind: segField, field: s.readIdent()})
		default:
			return nil, s.errf("unexpected character %q", ch)
		}
	}
	if len(segments) == 0 {
		return nil, errors.New("empty path")
	}
	return segments, nil
}

func (s *scanner) peek() byte {
	if s.i >= len(s.s) {
		return 0
	}
	return s.s[s.i]
}

func (s *scanner) readIdent() string {
	start := s.i
	for s.i < len(s.s) && isIdentPart(s.s[s.i]) {
		s.i++
	}
	return s.s[start:s.i]
}

func isIdentStart(b byte) bool {
	return b != 0 && (b == '_' || unicode.IsLetter(rune(b)))
}

func isIdentPart(b byte) bool {
	return b != 0 && (b == '_' || b == '-' || unicode.IsLetter(rune(b)) || unicode.IsDigit(rune(b)))
}

func (s *scanner) readBracket() (segment, error) {
	if s.peek() == '"' || s.peek() == '\'' {
		field, err := s.readQuoted()
		if err != nil {
			return segment{}, err
		}
		if s.peek() != ']' {
			return segment{}, s.errf("']' expected after quoted key")
		}
		s.i++
		return segment{kind: segField, field: field}, nil
	}
	if s.peek() == '*' {
		s.i++
		if s.peek() != ']' {
			return segment{}, s.errf("']' expected after '*'")
		}
		s.i++
		return segment{kind: segWildcard}, nil
	}
	index, ok := s.readInt()
	if !ok {
		return segment{}, s.errf("number, '*' or quoted key expected inside '[]'")
	}
	if s.peek() != ']' {
		return segment{}, s.errf("']' expected after index")
	}
	s.i++
	return segment{kind: segIndex, index: index}, nil
}

func (s *scanner) readQuoted() (string, error) {
	quote := s.peek()
	s.i++
	var b strings.Builder
	for s.i < len(s.s) {
		ch := s.s[s.i]
		s.i++
		if ch == quote {
			return b.String(), nil
		}
		if ch == '\\' {
			if s.i >= len(s.s) {
				return "", s.errf("unterminated escape")
			}
			esc := s.s[s.i]
			s.i++
			switch esc {
			case '\\', '\'', '"':
				b.WriteByte(esc)
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				return "", s.errf("unsupported escape: \\%c", esc)
			}
			continue
		}
		b.WriteByte(ch)
	}
	return "", s.errf("unterminated string literal")
}

func (s *scanner) readInt() (int, bool) {
	start := s.i
	if s.peek() == '-' {
		s.i++
	}
	digitsStart := s.i
	for s.i < len(s.s) && s.s[s.i] >= '0' && s.s[s.i] <= '9' {
		s.i++
	}
	if s.i == digitsStart {
		s.i = start
		return 0, false
	}
	value, err := strconv.Atoi(s.s[start:s.i])
	if err != nil {
		s.i = start
		return 0, false
	}
	return value, true
}

func (s *scanner) errf(format string, a ...any) error {
	return fmt.Errorf("parse error at %d: "+format, append([]any{s.i}, a...)...)
}
