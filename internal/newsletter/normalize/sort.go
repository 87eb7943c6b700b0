package normalize

import (
	"sort"
	"strings"

	"newsletter-hub/internal/model"
)

// undatedSentinel sorts genuinely undated follow-ups after every dated
// action, grouped together at the end.
const undatedSentinel = "9999-12-31"

// Sort orders actions chronologically by effective date, with events
// before to-dos on the same day and names breaking remaining ties.
// The slice is sorted in place and returned for chaining.
func Sort(actions []model.Action) []model.Action {
	sort.SliceStable(actions, func(i, j int) bool {
		di, dj := effectiveDate(actions[i]), effectiveDate(actions[j])
		if di != dj {
			return di < dj
		}
		if actions[i].Type != actions[j].Type {
			return actions[i].Type == model.ActionEvent
		}
		return strings.Compare(actions[i].EventName, actions[j].EventName) < 0
	})
	return actions
}

func effectiveDate(a model.Action) string {
	if a.EventDate != nil {
		return *a.EventDate
	}
	if a.DueDate != nil {
		return *a.DueDate
	}
	return undatedSentinel
}
