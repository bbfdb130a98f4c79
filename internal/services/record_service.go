package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gastos/internal/core"
	"gastos/internal/events"
	"gastos/internal/store"
)

// RecordInput carries the user-editable fields of a record. IDs are
// never supplied by callers; creation assigns a fresh one and edits
// address an existing one.
type RecordInput struct {
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
	Kind        core.Kind
}

// RecordService orchestrates record mutations: it validates input,
// writes to the store first and then publishes a change event.
// Publishing is best-effort; the store write is the source of truth.
type RecordService struct {
	store     store.RecordStore
	publisher *events.Publisher
}

func NewRecordService(store store.RecordStore, publisher *events.Publisher) *RecordService {
	return &RecordService{
		store:     store,
		publisher: publisher,
	}
}

// List returns a snapshot of every record.
func (s *RecordService) List(ctx context.Context) ([]core.Record, error) {
	records, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	return records, nil
}

// Add creates a record with a fresh id. An unset kind defaults to
// variable.
func (s *RecordService) Add(ctx context.Context, in RecordInput) (core.Record, error) {
	r := s.build(uuid.NewString(), in)
	if err := r.Validate(); err != nil {
		return core.Record{}, err
	}

	if err := s.store.Add(ctx, r); err != nil {
		return core.Record{}, fmt.Errorf("add record: %w", err)
	}
	s.publish(ctx, r.ID, events.ActionAdded)
	return r, nil
}

// Update replaces the fields of the record with the given id.
func (s *RecordService) Update(ctx context.Context, id string, in RecordInput) (core.Record, error) {
	r := s.build(id, in)
	if err := r.Validate(); err != nil {
		return core.Record{}, err
	}

	if err := s.store.Update(ctx, r); err != nil {
		return core.Record{}, fmt.Errorf("update record: %w", err)
	}
	s.publish(ctx, r.ID, events.ActionUpdated)
	return r, nil
}

// Remove deletes the record with the given id.
func (s *RecordService) Remove(ctx context.Context, id string) error {
	if err := s.store.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove record: %w", err)
	}
	s.publish(ctx, id, events.ActionRemoved)
	return nil
}

func (s *RecordService) build(id string, in RecordInput) core.Record {
	kind := in.Kind
	if kind == "" {
		kind = core.KindVariable
	}
	return core.Record{
		ID:          id,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        in.Date,
		Kind:        kind,
	}
}

func (s *RecordService) publish(ctx context.Context, id, action string) {
	if err := s.publisher.PublishRecordChanged(ctx, id, action); err != nil {
		// The mutation already succeeded locally; a missing broker must
		// not fail the request.
		slog.ErrorContext(ctx, "Failed to publish record change",
			"record_id", id, "action", action, "error", err)
	}
}

// Close closes the store and the publisher.
func (s *RecordService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if err := s.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("events: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("close record service: %v", errs)
	}
	return nil
}
