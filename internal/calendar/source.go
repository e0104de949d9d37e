// Package calendar supplies the fixed events a plan is built around.
package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/julianstephens/chronoforge/internal/logger"
	"github.com/julianstephens/chronoforge/internal/models"
	"github.com/julianstephens/chronoforge/internal/storage"
)

// Source fetches the events overlapping [from, to) for a user
type Source interface {
	Name() string
	FetchEvents(ctx context.Context, userID string, from, to time.Time) ([]models.FixedEvent, error)
}

// FetchOrEmpty returns the source's events, or an empty list when the
// source fails. Planning proceeds on whatever capacity is known.
func FetchOrEmpty(ctx context.Context, src Source, userID string, from, to time.Time) []models.FixedEvent {
	if src == nil {
		return []models.FixedEvent{}
	}
	events, err := src.FetchEvents(ctx, userID, from, to)
	if err != nil {
		logger.Warn("Event source unavailable, planning without events", "source", src.Name(), "user", userID, "error", err)
		return []models.FixedEvent{}
	}
	if events == nil {
		return []models.FixedEvent{}
	}
	return events
}

// EventLister is the slice of storage.Provider a StoreSource needs
type EventLister interface {
	ListEvents(userID string, from, to *time.Time) ([]models.FixedEvent, error)
}

var _ EventLister = storage.Provider(nil)

// StoreSource serves events previously saved in storage
type StoreSource struct {
	Store EventLister
}

func (s *StoreSource) Name() string { return "store" }

func (s *StoreSource) FetchEvents(ctx context.Context, userID string, from, to time.Time) ([]models.FixedEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Store.ListEvents(userID, &from, &to)
}

// MultiSource concatenates several sources. A failing source is logged and
// skipped; an error is returned only when every source fails.
type MultiSource []Source

func (m MultiSource) Name() string { return "multi" }

func (m MultiSource) FetchEvents(ctx context.Context, userID string, from, to time.Time) ([]models.FixedEvent, error) {
	events := []models.FixedEvent{}
	var errs []error
	for _, src := range m {
		got, err := src.FetchEvents(ctx, userID, from, to)
		if err != nil {
			logger.Warn("Skipping event source", "source", src.Name(), "error", err)
			errs = append(errs, err)
			continue
		}
		events = append(events, got...)
	}
	if len(m) > 0 && len(errs) == len(m) {
		return nil, errors.Join(errs...)
	}
	storage.SortEvents(events)
	return events, nil
}
