package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

// FallbackAnswer is the guaranteed-success tail of the extractor chain.
const FallbackAnswer = "Sorry, I couldn't generate a proper answer this time. Please try rephrasing your question."

// textFields are the keys different providers use for generated text.
var textFields = []string{"generated_text", "text", "answer", "content"}

type extractor func(raw string) (string, bool)

// answerExtractors are applied in order; first success wins.
var answerExtractors = []extractor{fromList, fromObject, fromString}

// Answer normalizes a provider response into a single answer string. Provider
// payloads are not guaranteed to share a shape: some return a list whose first
// element carries the text (and echo the prompt back before the generation),
// some a single object, some a bare string. The chain never fails; the final
// stage returns a fixed apology.
func Answer(raw, marker string) string {
	if text, ok := fromList(raw); ok {
		// Providers that echo the prompt prepend it to the generation; keep
		// only what follows the instruction marker.
		return afterMarker(text, marker)
	}
	if text, ok := fromObject(raw); ok {
		return text
	}
	if text, ok := fromString(raw); ok {
		return text
	}
	return FallbackAnswer
}

func fromList(raw string) (string, bool) {
	var list []map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &list); err != nil || len(list) == 0 {
		return "", false
	}
	return textField(list[0])
}

func fromObject(raw string) (string, bool) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return "", false
	}
	return textField(obj)
}

func fromString(raw string) (string, bool) {
	// A JSON-encoded string, or plain text. Any other valid JSON shape
	// (a list or object without a text field) already failed the earlier
	// stages and must fall through to the apology.
	var s string
	if err := json.Unmarshal([]byte(raw), &s); err == nil {
		trimmed := strings.TrimSpace(s)
		return trimmed, trimmed != ""
	}
	if json.Valid([]byte(raw)) {
		return "", false
	}
	trimmed := strings.TrimSpace(raw)
	return trimmed, trimmed != ""
}

func textField(obj map[string]interface{}) (string, bool) {
	for _, field := range textFields {
		if v, ok := obj[field]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return s, true
			}
		}
	}
	return "", false
}

func afterMarker(text, marker string) string {
	if marker == "" {
		return strings.TrimSpace(text)
	}
	if idx := strings.LastIndex(text, marker); idx >= 0 {
		return strings.TrimSpace(text[idx+len(marker):])
	}
	return strings.TrimSpace(text)
}

// fencedBlock matches a markdown code fence around a JSON payload.
var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// StructuredJSON parses a generation that is supposed to be a JSON object.
// Recovery ladder: direct parse, then fenced-code-block strip, then
// unwrapping a list-shaped payload and rerunning the ladder on its first
// element, then the first balanced {...} region. On total failure the
// original text is passed through under "rawResponse" so the caller never
// receives a hard error for a malformed generation.
func StructuredJSON(raw string) map[string]interface{} {
	if obj, ok := parseObject(raw); ok {
		return obj
	}

	if m := fencedBlock.FindStringSubmatch(raw); m != nil {
		if obj, ok := parseObject(m[1]); ok {
			return obj
		}
	}

	// Some providers wrap the generation in a one-element list; the fenced
	// block inside the element carries escaped quotes, so the rungs above
	// cannot see it until the list is unwrapped.
	if inner, ok := listElement(raw); ok {
		return StructuredJSON(inner)
	}

	if region, ok := balancedRegion(raw); ok {
		if obj, ok := parseObject(region); ok {
			return obj
		}
	}

	return map[string]interface{}{"rawResponse": raw}
}

// listElement unwraps a JSON array payload to the text of its first element:
// either a bare string or an object with a known text field.
func listElement(raw string) (string, bool) {
	var list []interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &list); err != nil || len(list) == 0 {
		return "", false
	}
	switch first := list[0].(type) {
	case string:
		return first, strings.TrimSpace(first) != ""
	case map[string]interface{}:
		return textField(first)
	}
	return "", false
}

func parseObject(s string) (map[string]interface{}, bool) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// balancedRegion returns the first {...} region with balanced braces,
// ignoring braces inside string literals.
func balancedRegion(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
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
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
