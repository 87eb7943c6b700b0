package payload

// Historical AI payload shapes. Prompt and model revisions changed the
// top-level structure several times; each variant gets its own adapter
// and Adapt selects one by structural probing instead of optional
// chaining through every known key.
type shape interface {
	// Name identifies the adapter in logs and tests.
	Name() string

	// Matches reports whether the raw map is structurally this shape.
	Matches(m map[string]any) bool

	// Document normalizes the raw map into the shape-independent form.
	Document(m map[string]any) Document
}

// Probe order is newest shape first; flatShape matches anything and
// closes the chain.
var shapes = []shape{headerShape{}, splitShape{}, flatShape{}}

// Adapt selects the adapter for the given payload and normalizes it.
// An empty map falls through to flatShape and yields a zero Document.
func Adapt(m map[string]any) Document {
	for _, s := range shapes {
		if s.Matches(m) {
			return s.Document(m)
		}
	}
	return Document{}
}

// AdapterName reports which adapter Adapt would pick, for logging.
func AdapterName(m map[string]any) string {
	for _, s := range shapes {
		if s.Matches(m) {
			return s.Name()
		}
	}
	return "none"
}

// headerShape is the current payload convention: a nested "header"
// object plus overview/key_points/actions/infos.
type headerShape struct{}

func (headerShape) Name() string { return "header" }

func (headerShape) Matches(m map[string]any) bool {
	_, ok := m["header"].(map[string]any)
	return ok
}

func (headerShape) Document(m map[string]any) Document {
	header, _ := m["header"].(map[string]any)
	return Document{
		Title:      str(header, "title"),
		ClassName:  str(header, "class_name", "className"),
		SchoolName: str(header, "school_name", "schoolName"),
		IssueMonth: str(header, "issue_month", "issueMonth"),
		IssueDate:  str(header, "issue_date", "issueDate"),
		Overview:   str(m, "overview", "summary"),
		KeyPoints:  strList(m, "key_points", "keyPoints"),
		Actions:    collectActions(m),
		Infos:      collectInfos(m),
	}
}

// splitShape is the older convention that kept separate top-level
// "todos" and "events" arrays next to flat header fields.
type splitShape struct{}

func (splitShape) Name() string { return "split" }

func (splitShape) Matches(m map[string]any) bool {
	if _, ok := m["todos"].([]any); ok {
		return true
	}
	_, ok := m["events"].([]any)
	return ok
}

func (splitShape) Document(m map[string]any) Document {
	return Document{
		Title:      str(m, "title", "headline"),
		ClassName:  str(m, "class_name", "class"),
		SchoolName: str(m, "school_name", "school"),
		IssueMonth: str(m, "issue_month", "month"),
		IssueDate:  str(m, "issue_date", "date"),
		Overview:   str(m, "summary", "overview"),
		KeyPoints:  strList(m, "key_points", "points"),
		Actions:    collectActions(m),
		Infos:      collectInfos(m),
	}
}

// flatShape is the oldest convention (flat title + "tasks") and the
// catch-all: it extracts whatever known keys are present.
type flatShape struct{}

func (flatShape) Name() string { return "flat" }

func (flatShape) Matches(m map[string]any) bool { return true }

func (flatShape) Document(m map[string]any) Document {
	return Document{
		Title:      str(m, "title", "headline"),
		ClassName:  str(m, "class_name", "class"),
		SchoolName: str(m, "school_name", "school"),
		IssueMonth: str(m, "issue_month", "month"),
		IssueDate:  str(m, "issue_date", "date"),
		Overview:   str(m, "overview", "summary"),
		KeyPoints:  strList(m, "key_points"),
		Actions:    collectActions(m),
		Infos:      collectInfos(m),
	}
}

// actionArrays are every name an action list has ever been published
// under, in precedence order.
var actionArrays = []string{"actions", "todos", "tasks", "events"}

// collectActions gathers candidate records from every known array name
// without assuming any one exists.
func collectActions(m map[string]any) []RawAction {
	var out []RawAction
	for _, key := range actionArrays {
		raw, ok := m[key].([]any)
		if !ok {
			continue
		}
		for _, item := range raw {
			fields, ok := item.(map[string]any)
			if !ok {
				continue
			}
			out = append(out, RawAction{Source: key, Fields: fields})
		}
	}
	return out
}

func collectInfos(m map[string]any) []RawInfo {
	var out []RawInfo
	for _, key := range []string{"infos", "notices"} {
		raw, ok := m[key].([]any)
		if !ok {
			continue
		}
		for _, item := range raw {
			fields, ok := item.(map[string]any)
			if !ok {
				continue
			}
			info := RawInfo{
				Title:    str(fields, "title", "name"),
				Summary:  str(fields, "summary", "body", "description"),
				Audience: str(fields, "audience", "target"),
			}
			if info.Title == "" && info.Summary == "" {
				continue
			}
			out = append(out, info)
		}
	}
	return out
}

func str(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func strList(m map[string]any, keys ...string) []string {
	for _, k := range keys {
		raw, ok := m[k].([]any)
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
