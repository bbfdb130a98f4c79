package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gastos/internal/core"
)

// parseCriteria builds filter criteria from the request's query string.
// Supported parameters: category, month (1-12), year, q, window.
// Month and year must be provided together.
func parseCriteria(r *http.Request) (core.Criteria, error) {
	q := r.URL.Query()
	c := core.Criteria{
		Category: strings.TrimSpace(q.Get("category")),
		Text:     strings.TrimSpace(q.Get("q")),
	}

	monthStr := strings.TrimSpace(q.Get("month"))
	yearStr := strings.TrimSpace(q.Get("year"))
	if (monthStr == "") != (yearStr == "") {
		return core.Criteria{}, fmt.Errorf("month and year must be provided together")
	}
	if monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil || m < 1 || m > 12 {
			return core.Criteria{}, fmt.Errorf("invalid month '%s': must be 1-12", monthStr)
		}
		y, err := strconv.Atoi(yearStr)
		if err != nil || y < 1 {
			return core.Criteria{}, fmt.Errorf("invalid year '%s'", yearStr)
		}
		c.Month = time.Month(m)
		c.Year = y
	}

	if w := strings.TrimSpace(q.Get("window")); w != "" {
		window := core.Window(w)
		if !window.Valid() {
			return core.Criteria{}, fmt.Errorf("invalid window '%s'", w)
		}
		c.Window = window
	}

	return c, nil
}

// parseYearMonth extracts year and month from query parameters,
// defaulting to the current month.
func parseYearMonth(r *http.Request) (year int, month time.Month, err error) {
	now := time.Now()
	year, month = now.Year(), now.Month()

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		y, convErr := strconv.Atoi(v)
		if convErr != nil || y < 1 {
			return 0, 0, fmt.Errorf("invalid year '%s'", v)
		}
		year = y
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		m, convErr := strconv.Atoi(v)
		if convErr != nil || m < 1 || m > 12 {
			return 0, 0, fmt.Errorf("invalid month '%s': must be 1-12", v)
		}
		month = time.Month(m)
	}

	return year, month, nil
}

// parseMonthParam parses a required YYYY-MM query parameter.
func parseMonthParam(r *http.Request, name string) (year int, month time.Month, err error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return 0, 0, fmt.Errorf("missing required parameter '%s' (YYYY-MM)", name)
	}
	t, err := time.Parse("2006-01", v)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid parameter '%s': want YYYY-MM, got '%s'", name, v)
	}
	return t.Year(), t.Month(), nil
}

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
