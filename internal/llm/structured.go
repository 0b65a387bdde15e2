package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

const fence = "```"

// StripCodeFences returns the content of the first markdown code fence in s
// (```json ... ``` or ``` ... ```). Text that is already valid JSON, or has no
// fence, is returned trimmed. An unterminated fence yields everything after
// the opening line.
func StripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if json.Valid([]byte(trimmed)) {
		return trimmed
	}
	open := openingFence(trimmed)
	if open == -1 {
		return trimmed
	}

	rest := trimmed[open+len(fence):]
	body := rest
	if nl := strings.IndexByte(rest, '\n'); nl != -1 {
		if isFenceTag(strings.TrimSpace(rest[:nl])) {
			body = rest[nl+1:]
		}
	} else if tag := leadingTag(rest); tag != "" {
		body = rest[len(tag):]
	}

	if end := closingFence(body); end != -1 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// openingFence finds a fence that starts a line or carries a language tag
// up to the end of its line. JSON strings hold no raw newlines, so backticks
// inside a string value never qualify.
func openingFence(s string) int {
	for i := 0; ; {
		k := strings.Index(s[i:], fence)
		if k == -1 {
			return -1
		}
		k += i
		if atLineStart(s, k) {
			return k
		}
		line := s[k+len(fence):]
		if nl := strings.IndexByte(line, '\n'); nl != -1 {
			if tag := strings.TrimSpace(line[:nl]); tag != "" && isFenceTag(tag) {
				return k
			}
		}
		i = k + len(fence)
	}
}

// closingFence finds a fence that starts a line or ends one.
func closingFence(s string) int {
	for i := 0; ; {
		k := strings.Index(s[i:], fence)
		if k == -1 {
			return -1
		}
		k += i
		after := s[k+len(fence):]
		if nl := strings.IndexByte(after, '\n'); nl != -1 {
			after = after[:nl]
		}
		if atLineStart(s, k) || strings.TrimSpace(after) == "" {
			return k
		}
		i = k + len(fence)
	}
}

func atLineStart(s string, i int) bool {
	for i > 0 && (s[i-1] == ' ' || s[i-1] == '\t') {
		i--
	}
	return i == 0 || s[i-1] == '\n'
}

// isFenceTag reports whether s looks like a fence language tag ("json", "JSON5").
func isFenceTag(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || isDigit(c) || c == '-' || c == '_') {
			return false
		}
	}
	return true
}

func leadingTag(s string) string {
	i := 0
	for i < len(s) && (s[i] >= 'a' && s[i] <= 'z' || s[i] >= 'A' && s[i] <= 'Z') {
		i++
	}
	return s[:i]
}

// DecodeLenient unmarshals text into v. When strict decoding fails the text
// goes through RepairJSON and is decoded once more.
func DecodeLenient(text string, v any) error {
	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}
	repaired := RepairJSON(text)
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("decoding json after repair: %w", err)
	}
	return nil
}

// RepairJSON fixes the mistakes models commonly make in JSON output:
// surrounding prose, comments, leading-dot decimals and trailing commas.
// Valid JSON passes through with its meaning unchanged.
func RepairJSON(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") && !strings.HasPrefix(s, "[") {
		if block := extractJSONBlock(s); block != "" {
			s = block
		}
	}
	s = stripJSONComments(s)
	s = normalizeLeadingDecimalNumbers(s)
	s = removeTrailingCommas(s)
	return s
}

// extractJSONBlock finds the first balanced { ... } block in the text.
func extractJSONBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return ""
}

// rewriteOutsideStrings copies s, handing every byte outside string literals to fn.
// fn returns how many bytes it consumed (0 means copy c verbatim).
func rewriteOutsideStrings(s string, fn func(b *strings.Builder, s string, i int) int) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}
		if c == '\\' && inString {
			b.WriteByte(c)
			escaped = true
			continue
		}
		if c == '"' {
			b.WriteByte(c)
			inString = !inString
			continue
		}
		if inString {
			b.WriteByte(c)
			continue
		}

		if n := fn(&b, s, i); n > 0 {
			i += n - 1
			continue
		}
		b.WriteByte(c)
	}

	return b.String()
}

// stripJSONComments removes // and /* */ comments outside of string values.
func stripJSONComments(s string) string {
	return rewriteOutsideStrings(s, func(_ *strings.Builder, s string, i int) int {
		if s[i] != '/' || i+1 >= len(s) {
			return 0
		}
		switch s[i+1] {
		case '/':
			j := i + 2
			for j < len(s) && s[j] != '\n' {
				j++
			}
			return j - i
		case '*':
			end := strings.Index(s[i+2:], "*/")
			if end == -1 {
				return len(s) - i
			}
			return end + 4
		}
		return 0
	})
}

// normalizeLeadingDecimalNumbers rewrites ".8" and "-.3" into "0.8" and
// "-0.3" outside string values.
func normalizeLeadingDecimalNumbers(s string) string {
	return rewriteOutsideStrings(s, func(b *strings.Builder, s string, i int) int {
		if s[i] == '.' && i+1 < len(s) && isDigit(s[i+1]) && isNumericBoundary(prevNonSpace(s, i-1)) {
			b.WriteString("0.")
			return 1
		}
		return 0
	})
}

// removeTrailingCommas drops commas that directly precede a closing } or ].
func removeTrailingCommas(s string) string {
	return rewriteOutsideStrings(s, func(_ *strings.Builder, s string, i int) int {
		if s[i] != ',' {
			return 0
		}
		j := i + 1
		for j < len(s) && isSpace(s[j]) {
			j++
		}
		if j < len(s) && (s[j] == '}' || s[j] == ']') {
			return 1
		}
		return 0
	})
}

func prevNonSpace(s string, i int) byte {
	for ; i >= 0; i-- {
		if !isSpace(s[i]) {
			return s[i]
		}
	}
	return 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}

func isNumericBoundary(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '{', '-':
		return true
	default:
		return false
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
