package normalize

import (
	"strings"
	"unicode"

	"newsletter-hub/internal/model"
)

// degenerateName reports names too short to be real actions. CJK packs
// meaning densely, so a two-kanji name like 遠足 is legitimate while one
// kana or two latin letters is OCR noise.
func degenerateName(name string) bool {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) < 2 {
		return true
	}
	if len(runes) >= 3 {
		return false
	}
	for _, r := range runes {
		if !unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) {
			return true
		}
	}
	return false
}

// Dedup collapses near-duplicate actions. Per normalized name key at
// most one action survives: the most information-rich variant, with
// calendar events preferred over same-named to-dos when the event
// carries a concrete date. Low-signal generic to-dos are collapsed to at
// most one per document. Dedup is idempotent.
func Dedup(actions []model.Action) []model.Action {
	byKey := map[string]model.Action{}
	var order []string

	for _, a := range actions {
		if degenerateName(a.EventName) {
			continue
		}
		key := NameKey(a.EventName)
		if key == "" {
			continue
		}

		current, exists := byKey[key]
		if !exists {
			byKey[key] = a
			order = append(order, key)
			continue
		}
		// Ties favor the earlier entry: stable.
		if infoScore(a) > infoScore(current) {
			byKey[key] = a
		}
	}

	// Event preference: a dated calendar item is more actionable than a
	// vague to-do with the same name, even a richer one.
	for _, a := range actions {
		if a.Type != model.ActionEvent || a.EventDate == nil {
			continue
		}
		key := NameKey(a.EventName)
		if current, exists := byKey[key]; exists && current.Type == model.ActionTodo {
			byKey[key] = a
		}
	}

	out := make([]model.Action, 0, len(order))
	seenGeneric := false
	for _, key := range order {
		a := byKey[key]
		if lowSignalTodo(a) {
			if seenGeneric {
				continue
			}
			seenGeneric = true
		}
		out = append(out, a)
	}
	return out
}

// NameKey is the dedup key: lowercased with whitespace and punctuation
// stripped.
func NameKey(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, name)
}

// infoScore counts how much schedulable information an action carries.
func infoScore(a model.Action) int {
	score := len(a.Items)
	if a.EventDate != nil {
		score++
	}
	if a.DueDate != nil {
		score++
	}
	return score
}

// lowSignalTodo marks generic to-dos that remain ambiguous after
// normalization; flooding the result with these helps nobody.
func lowSignalTodo(a model.Action) bool {
	return a.Type == model.ActionTodo &&
		a.EventDate == nil &&
		a.DueDate == nil &&
		len(a.Items) == 0 &&
		a.Fee == nil &&
		a.Notes == nil
}
