package jpdate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	fullDateRe  = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	shortDateRe = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})$`)
	issueRe     = regexp.MustCompile(`^(\d{4})-(\d{1,2})`)
)

// Resolve normalizes raw into an ISO-8601 date string.
// issueMonth ("YYYY-MM") supplies the year for year-omitted dates;
// when empty, the current year is used instead.
// Returns ("", false) for anything that cannot be normalized — an
// unresolvable date is a "needs review" signal, never a guess.
func (r *Resolver) Resolve(raw, issueMonth string) (string, bool) {
	cleaned := clean(raw)
	if cleaned == "" {
		return "", false
	}

	if m := fullDateRe.FindStringSubmatch(cleaned); m != nil {
		return buildDate(m[1], m[2], m[3])
	}

	if m := shortDateRe.FindStringSubmatch(cleaned); m != nil {
		return buildDate(r.yearFor(issueMonth), m[1], m[2])
	}

	return "", false
}

// yearFor extracts the year from an issue month, falling back to the
// current year when the hint is absent or malformed.
func (r *Resolver) yearFor(issueMonth string) string {
	if m := issueRe.FindStringSubmatch(strings.TrimSpace(issueMonth)); m != nil {
		return m[1]
	}
	return strconv.Itoa(r.now().Year())
}

// clean maps full-width digits to ASCII and Japanese/alternate date
// separators to "-", producing a bare digits-and-dashes form.
func clean(raw string) string {
	var b strings.Builder
	for _, ch := range strings.TrimSpace(raw) {
		switch {
		case ch >= '０' && ch <= '９':
			b.WriteRune('0' + (ch - '０'))
		case ch >= '0' && ch <= '9':
			b.WriteRune(ch)
		case ch == '年' || ch == '月' || ch == '/' || ch == '.' || ch == '-':
			b.WriteRune('-')
		case ch == '日':
			// Day marker ends the date; anything after (weekday
			// annotations like "(火)") is dropped.
			return strings.Trim(b.String(), "-")
		case ch == ' ' || ch == '　':
			// skip
		default:
			// Unexpected character: bail out, never guess.
			return ""
		}
	}
	return strings.Trim(b.String(), "-")
}

// buildDate zero-pads month/day and rejects out-of-range values.
func buildDate(year, month, day string) (string, bool) {
	y, err := strconv.Atoi(year)
	if err != nil || y < 1000 || y > 9999 {
		return "", false
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return "", false
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d), true
}
