package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"gastos/internal/core"
	"gastos/internal/log"
)

// loadRecords fetches all records, writing a 500 on failure. The bool
// reports whether the caller may proceed.
func (s *Server) loadRecords(w http.ResponseWriter, r *http.Request) ([]core.Record, bool) {
	records, err := s.records.List(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to load records", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return nil, false
	}
	return records, true
}

// handleCategories returns per-category totals for the filtered record
// set, largest first.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	records, ok := s.loadRecords(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, core.CategoryTotals(criteria.Apply(records)))
}

// handleSplit returns the fixed vs variable totals for the filtered
// record set.
func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	records, ok := s.loadRecords(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, core.KindSplit(criteria.Apply(records)))
}

// handleTrend returns one zero-filled bucket per month for the trailing
// window ending at the current month.
func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	months := s.trendMonths
	if v := strings.TrimSpace(r.URL.Query().Get("months")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 60 {
			writeError(w, http.StatusBadRequest, "invalid months: must be 1-60")
			return
		}
		months = n
	}
	records, ok := s.loadRecords(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, core.MonthlyTrend(records, time.Now(), months))
}

// handleComparison returns the day-by-day cumulative comparison of two
// months given as a=YYYY-MM and b=YYYY-MM.
func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	yearA, monthA, err := parseMonthParam(r, "a")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	yearB, monthB, err := parseMonthParam(r, "b")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	records, ok := s.loadRecords(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, core.CompareMonths(records, yearA, monthA, yearB, monthB))
}

// handleBudgets returns the budget status of every budgeted category
// for the requested month, defaulting to the current one.
func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	records, ok := s.loadRecords(w, r)
	if !ok {
		return
	}

	monthly := core.Criteria{Year: year, Month: month}.Apply(records)
	writeJSON(w, http.StatusOK, core.EvaluateBudgets(core.CategoryTotals(monthly), s.catalog))
}

// handleInsights evaluates the rule set against a snapshot of the
// current month and the trailing trend.
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	records, ok := s.loadRecords(w, r)
	if !ok {
		return
	}

	now := time.Now()
	monthly := core.Criteria{Year: now.Year(), Month: now.Month()}.Apply(records)
	aggregates := core.CategoryTotals(monthly)

	snapshot := core.Snapshot{
		Records:    records,
		Aggregates: aggregates,
		Trend:      core.MonthlyTrend(records, now, s.trendMonths),
		Budgets:    core.EvaluateBudgets(aggregates, s.catalog),
		Now:        now,
	}
	writeJSON(w, http.StatusOK, s.insights.Generate(snapshot))
}
