package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"gastos/internal/core"
	"gastos/internal/log"
	"gastos/internal/services"
	"gastos/internal/store"
)

type recordPayload struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Kind        string          `json:"kind"`
}

func (p recordPayload) toInput() (services.RecordInput, error) {
	date, err := parseDate(p.Date)
	if err != nil {
		return services.RecordInput{}, errors.New("invalid date: want YYYY-MM-DD")
	}
	return services.RecordInput{
		Amount:      p.Amount,
		Category:    sanitizeInput(p.Category),
		Description: sanitizeInput(p.Description),
		Date:        date,
		Kind:        core.Kind(p.Kind),
	}, nil
}

// handleListRecords returns all records, optionally narrowed by the
// filter query parameters.
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := s.records.List(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to list records", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return
	}

	writeJSON(w, http.StatusOK, criteria.Apply(records))
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var payload recordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	in, err := payload.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := s.records.Add(r.Context(), in)
	if err != nil {
		s.writeMutationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload recordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	in, err := payload.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := s.records.Update(r.Context(), id, in)
	if err != nil {
		s.writeMutationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.records.Remove(r.Context(), id); err != nil {
		s.writeMutationError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeMutationError maps service errors onto HTTP status codes.
// Validation failures are the caller's fault, unknown ids are 404,
// anything else is a server error.
func (s *Server) writeMutationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "record not found")
	case errors.Is(err, core.ErrNegativeAmount),
		errors.Is(err, core.ErrZeroDate),
		errors.Is(err, core.ErrEmptyCategory),
		errors.Is(err, core.ErrInvalidKind),
		errors.Is(err, core.ErrDescriptionTooLong):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Record mutation failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
