package payload

// Document is the shape-independent view of an AI payload after adapter
// selection. All historical field-name variance is absorbed here; the
// normalizer downstream only ever sees this form.
type Document struct {
	Title      string
	ClassName  string
	SchoolName string
	IssueMonth string
	IssueDate  string
	Overview   string
	KeyPoints  []string
	Actions    []RawAction
	Infos      []RawInfo
}

// RawAction is one untrusted action record plus the array it came from.
// Source matters: records from an "events" array default to calendar
// events, everything else to to-dos.
type RawAction struct {
	Source string // actions | todos | tasks | events
	Fields map[string]any
}

// RawInfo is one untrusted informational record.
type RawInfo struct {
	Title    string
	Summary  string
	Audience string
}

// Str returns the first non-empty string among the given keys.
// This is the per-field fallback chain for legacy field names.
func (a RawAction) Str(keys ...string) string {
	for _, k := range keys {
		if s, ok := a.Fields[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Bool returns the first present boolean among the given keys.
func (a RawAction) Bool(keys ...string) bool {
	for _, k := range keys {
		if b, ok := a.Fields[k].(bool); ok {
			return b
		}
	}
	return false
}

// Float returns the first numeric value among the given keys.
func (a RawAction) Float(keys ...string) (float64, bool) {
	for _, k := range keys {
		if f, ok := a.Fields[k].(float64); ok {
			return f, true
		}
	}
	return 0, false
}

// Strings returns the first present string slice among the given keys,
// skipping non-string elements.
func (a RawAction) Strings(keys ...string) []string {
	for _, k := range keys {
		raw, ok := a.Fields[k].([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Map returns the first present sub-object among the given keys.
func (a RawAction) Map(keys ...string) map[string]any {
	for _, k := range keys {
		if m, ok := a.Fields[k].(map[string]any); ok {
			return m
		}
	}
	return nil
}
