package payload

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// Parse turns an arbitrary AI response — an already-decoded object, or a
// string possibly wrapped in markdown code fences — into a plain
// key/value map. It never fails: any unparseable input yields an empty
// map and callers degrade to an empty canonical record.
func Parse(raw any) map[string]any {
	switch v := raw.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		return v
	case string:
		return parseString(v)
	case []byte:
		return parseString(string(v))
	default:
		// Structs from callers that already decoded the response:
		// round-trip through JSON to get a uniform map view.
		data, err := json.Marshal(v)
		if err != nil {
			return map[string]any{}
		}
		return parseString(string(data))
	}
}

func parseString(text string) map[string]any {
	cleaned := stripFences(text)

	var out map[string]any
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil || out == nil {
		return map[string]any{}
	}
	return out
}

// stripFences removes ```json ... ``` wrappers and leading/trailing prose
// that models often add around JSON output.
func stripFences(text string) string {
	if m := fenceRe.FindStringSubmatch(text); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}

	start := strings.Index(text, "{")
	if start == -1 {
		return strings.TrimSpace(text)
	}
	end := strings.LastIndex(text, "}")
	if end == -1 || end < start {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(text[start : end+1])
}
