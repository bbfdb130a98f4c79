package core

import (
	"strings"
	"time"
)

const (
	WindowCurrentMonth Window = "current_month"
	WindowLast30Days   Window = "last_30_days"
	WindowLast90Days   Window = "last_90_days"
)

// CategoryAll is the sentinel category value that bypasses category
// filtering.
const CategoryAll = "all"

// Window is a relative date range computed against "now" at call time.
type Window string

// Valid reports whether w names a known relative window.
func (w Window) Valid() bool {
	switch w {
	case WindowCurrentMonth, WindowLast30Days, WindowLast90Days:
		return true
	}
	return false
}

// Criteria narrows a record collection. All fields are optional and
// combine with logical AND. Month and Year apply only when both are set.
type Criteria struct {
	// Category matches exactly; empty or CategoryAll bypasses.
	Category string

	// Month and Year match the record's calendar month. Both must be
	// set (Month 1-12, Year nonzero) for the pair to apply.
	Month time.Month
	Year  int

	// Text is a case-insensitive substring match against description
	// OR category. The empty string matches everything; it behaves
	// identically to no text filter at all.
	Text string

	// Window restricts to a relative date range, recomputed on every
	// Apply call.
	Window Window

	// Now anchors relative windows. The zero value means time.Now at
	// the moment Apply runs; tests pin it.
	Now time.Time
}

// Apply returns the order-preserving subsequence of records matching
// every set criterion. It never mutates its input.
func (c Criteria) Apply(records []Record) []Record {
	now := c.Now
	if now.IsZero() {
		now = time.Now()
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if c.matches(r, now) {
			out = append(out, r)
		}
	}
	return out
}

func (c Criteria) matches(r Record, now time.Time) bool {
	if c.Category != "" && c.Category != CategoryAll && r.Category != c.Category {
		return false
	}
	if c.Year != 0 && c.Month >= time.January && c.Month <= time.December {
		if r.Date.Year() != c.Year || r.Date.Month() != c.Month {
			return false
		}
	}
	if c.Text != "" {
		q := strings.ToLower(c.Text)
		if !strings.Contains(strings.ToLower(r.Description), q) &&
			!strings.Contains(strings.ToLower(r.Category), q) {
			return false
		}
	}
	switch c.Window {
	case WindowCurrentMonth:
		if r.Date.Year() != now.Year() || r.Date.Month() != now.Month() {
			return false
		}
	case WindowLast30Days:
		if r.Date.Before(now.AddDate(0, 0, -30)) {
			return false
		}
	case WindowLast90Days:
		if r.Date.Before(now.AddDate(0, 0, -90)) {
			return false
		}
	}
	return true
}
