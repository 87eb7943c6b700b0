package jpdate

import "time"

// ISOFormat is the canonical date layout every resolved date conforms to.
const ISOFormat = "2006-01-02"

// Resolver normalizes heterogeneous Japanese date strings
// (full-width digits, 年/月/日 separators, year-omitted MM-DD)
// into ISO-8601 YYYY-MM-DD.
type Resolver struct {
	now func() time.Time
}

// NewResolver creates a date resolver using the wall clock for
// year-omitted dates when no issue month is available.
func NewResolver() *Resolver {
	return &Resolver{now: time.Now}
}

// NewResolverAt creates a resolver with a fixed clock, for tests.
func NewResolverAt(now func() time.Time) *Resolver {
	return &Resolver{now: now}
}
