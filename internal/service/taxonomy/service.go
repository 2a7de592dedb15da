package taxonomy

import (
	"context"
	"errors"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"newsstand/internal/domain"
	"newsstand/internal/repository"
)

var (
	// ErrUnknownKind signals a kind outside the known taxonomy set.
	ErrUnknownKind = errors.New("unknown taxonomy kind")
	// ErrValueRequired signals a blank entry value.
	ErrValueRequired = errors.New("taxonomy value is required")
)

// Service orchestrates the per-kind reference collections.
type Service struct {
	entries repository.TaxonomyRepository
	logger  *slog.Logger
}

// New returns a taxonomy service.
func New(entries repository.TaxonomyRepository, logger *slog.Logger) Service {
	return Service{entries: entries, logger: logger}
}

// List returns entries of a kind sorted by value ascending.
func (s Service) List(ctx context.Context, kind domain.TaxonomyKind) ([]domain.TaxonomyEntry, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	return s.entries.ListEntries(ctx, kind)
}

// Get returns a single entry of a kind.
func (s Service) Get(ctx context.Context, kind domain.TaxonomyKind, id string) (*domain.TaxonomyEntry, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, repository.ErrNotFound
	}
	return s.entries.GetEntryByID(ctx, kind, id)
}

// Add appends a new entry. Duplicate values within a kind are allowed.
func (s Service) Add(ctx context.Context, kind domain.TaxonomyKind, value string) (*domain.TaxonomyEntry, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, ErrValueRequired
	}
	entry := &domain.TaxonomyEntry{
		ID:        uuid.NewString(),
		Kind:      kind,
		Value:     value,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.entries.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}
	s.logger.Info("taxonomy entry added", "kind", string(kind), "entry_id", entry.ID)
	return entry, nil
}

// Update replaces an entry's value in place. Articles that copied the old
// value are untouched.
func (s Service) Update(ctx context.Context, kind domain.TaxonomyKind, id, value string) error {
	if !kind.Valid() {
		return ErrUnknownKind
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return repository.ErrNotFound
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return ErrValueRequired
	}
	if err := s.entries.UpdateEntry(ctx, kind, id, value); err != nil {
		return err
	}
	s.logger.Info("taxonomy entry updated", "kind", string(kind), "entry_id", id)
	return nil
}

// Remove deletes an entry. There is no cascade: articles keep the copied
// value.
func (s Service) Remove(ctx context.Context, kind domain.TaxonomyKind, id string) error {
	if !kind.Valid() {
		return ErrUnknownKind
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return repository.ErrNotFound
	}
	if err := s.entries.DeleteEntry(ctx, kind, id); err != nil {
		return err
	}
	s.logger.Info("taxonomy entry deleted", "kind", string(kind), "entry_id", id)
	return nil
}
