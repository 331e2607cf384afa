// Package service manages the section → unit/contact hierarchy.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"coldcheck/internal/hierarchy/metrics"
	"coldcheck/internal/models"
	id "coldcheck/pkg/domain"
	dErrors "coldcheck/pkg/domain-errors"
	"coldcheck/pkg/platform/sentinel"
	"coldcheck/pkg/requestcontext"
)

// Store is the persistence port for the hierarchy.
type Store interface {
	CreateSection(ctx context.Context, section *models.Section) error
	UpdateSection(ctx context.Context, section *models.Section) error
	DeleteSection(ctx context.Context, sectionID id.SectionID) error
	FindSection(ctx context.Context, sectionID id.SectionID) (*models.Section, error)
	ListSections(ctx context.Context) ([]*models.Section, error)

	CreateUnit(ctx context.Context, unit *models.Unit) error
	UpdateUnit(ctx context.Context, unit *models.Unit) error
	DeleteUnit(ctx context.Context, unitID id.UnitID) error
	FindUnit(ctx context.Context, unitID id.UnitID) (*models.Unit, error)
	ListUnits(ctx context.Context, sectionID id.SectionID) ([]*models.Unit, error)

	CreateContact(ctx context.Context, contact *models.Contact) error
	UpdateContact(ctx context.Context, contact *models.Contact) error
	DeleteContact(ctx context.Context, contactID id.ContactID) error
	FindContact(ctx context.Context, contactID id.ContactID) (*models.Contact, error)
}

// Service orchestrates section, unit and contact management.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("hierarchy store is required")
	}
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ContactUpdate carries the fields to change; nil fields are left as is.
type ContactUpdate struct {
	Name  *string
	Phone *string
}

// -----------------------------------------------------------------------------
// Sections
// -----------------------------------------------------------------------------

// AddSection creates a section at the end of the section order.
func (s *Service) AddSection(ctx context.Context, name string) (*models.Section, error) {
	section, err := models.NewSection(id.NewSectionID(), name, requestcontext.Now(ctx))
	if err != nil {
		return nil, toValidation(err)
	}
	if err := s.store.CreateSection(ctx, section); err != nil {
		return nil, translate(err, "section", "failed to create section")
	}
	s.logMutation(ctx, "section", "create", "section_id", section.ID)
	return section, nil
}

func (s *Service) RenameSection(ctx context.Context, sectionID id.SectionID, name string) (*models.Section, error) {
	section, err := s.store.FindSection(ctx, sectionID)
	if err != nil {
		return nil, translate(err, "section", "failed to load section")
	}
	if err := section.Rename(name, requestcontext.Now(ctx)); err != nil {
		return nil, toValidation(err)
	}
	if err := s.store.UpdateSection(ctx, section); err != nil {
		return nil, translate(err, "section", "failed to rename section")
	}
	s.logMutation(ctx, "section", "update", "section_id", section.ID)
	return section, nil
}

// RemoveSection deletes the section together with its units and contacts.
// Report entries that pointed at those units stay and resolve to no unit.
func (s *Service) RemoveSection(ctx context.Context, sectionID id.SectionID) error {
	if err := s.store.DeleteSection(ctx, sectionID); err != nil {
		return translate(err, "section", "failed to remove section")
	}
	s.logMutation(ctx, "section", "delete", "section_id", sectionID)
	return nil
}

// ListSections returns the full hierarchy ordered by position then id.
func (s *Service) ListSections(ctx context.Context) ([]*models.Section, error) {
	start := time.Now()
	defer s.observeListSections(start)

	sections, err := s.store.ListSections(ctx)
	if err != nil {
		return nil, translate(err, "section", "failed to list sections")
	}
	return sections, nil
}

// GetSection returns one section with its units attached.
func (s *Service) GetSection(ctx context.Context, sectionID id.SectionID) (*models.Section, error) {
	section, err := s.store.FindSection(ctx, sectionID)
	if err != nil {
		return nil, translate(err, "section", "failed to load section")
	}
	units, err := s.store.ListUnits(ctx, sectionID)
	if err != nil {
		return nil, translate(err, "section", "failed to load units")
	}
	section.Units = units
	return section, nil
}

// -----------------------------------------------------------------------------
// Units
// -----------------------------------------------------------------------------

// AddUnit creates a unit at the end of its section's unit order.
func (s *Service) AddUnit(ctx context.Context, sectionID id.SectionID, name string) (*models.Unit, error) {
	unit, err := models.NewUnit(id.NewUnitID(), sectionID, name, requestcontext.Now(ctx))
	if err != nil {
		return nil, toValidation(err)
	}
	if err := s.store.CreateUnit(ctx, unit); err != nil {
		if errors.Is(err, sentinel.ErrConstraint) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "section not found")
		}
		return nil, translate(err, "unit", "failed to create unit")
	}
	s.logMutation(ctx, "unit", "create", "unit_id", unit.ID, "section_id", sectionID)
	return unit, nil
}

func (s *Service) RenameUnit(ctx context.Context, unitID id.UnitID, name string) (*models.Unit, error) {
	unit, err := s.store.FindUnit(ctx, unitID)
	if err != nil {
		return nil, translate(err, "unit", "failed to load unit")
	}
	if err := unit.Rename(name, requestcontext.Now(ctx)); err != nil {
		return nil, toValidation(err)
	}
	if err := s.store.UpdateUnit(ctx, unit); err != nil {
		return nil, translate(err, "unit", "failed to rename unit")
	}
	s.logMutation(ctx, "unit", "update", "unit_id", unit.ID)
	return unit, nil
}

// RemoveUnit deletes the unit. Past entries for it remain and read as "Unknown".
func (s *Service) RemoveUnit(ctx context.Context, unitID id.UnitID) error {
	if err := s.store.DeleteUnit(ctx, unitID); err != nil {
		return translate(err, "unit", "failed to remove unit")
	}
	s.logMutation(ctx, "unit", "delete", "unit_id", unitID)
	return nil
}

// -----------------------------------------------------------------------------
// Contacts
// -----------------------------------------------------------------------------

// AddContact creates a contact; the phone number is stored as entered.
func (s *Service) AddContact(ctx context.Context, sectionID id.SectionID, name, phone string) (*models.Contact, error) {
	contact, err := models.NewContact(id.NewContactID(), sectionID, name, phone, requestcontext.Now(ctx))
	if err != nil {
		return nil, toValidation(err)
	}
	if err := s.store.CreateContact(ctx, contact); err != nil {
		if errors.Is(err, sentinel.ErrConstraint) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "section not found")
		}
		return nil, translate(err, "contact", "failed to create contact")
	}
	s.logMutation(ctx, "contact", "create", "contact_id", contact.ID, "section_id", sectionID)
	return contact, nil
}

func (s *Service) UpdateContact(ctx context.Context, contactID id.ContactID, update ContactUpdate) (*models.Contact, error) {
	contact, err := s.store.FindContact(ctx, contactID)
	if err != nil {
		return nil, translate(err, "contact", "failed to load contact")
	}
	now := requestcontext.Now(ctx)
	if update.Name != nil {
		if err := contact.Rename(*update.Name, now); err != nil {
			return nil, toValidation(err)
		}
	}
	if update.Phone != nil {
		contact.SetPhone(*update.Phone, now)
	}
	if err := s.store.UpdateContact(ctx, contact); err != nil {
		return nil, translate(err, "contact", "failed to update contact")
	}
	s.logMutation(ctx, "contact", "update", "contact_id", contact.ID)
	return contact, nil
}

func (s *Service) RemoveContact(ctx context.Context, contactID id.ContactID) error {
	if err := s.store.DeleteContact(ctx, contactID); err != nil {
		return translate(err, "contact", "failed to remove contact")
	}
	s.logMutation(ctx, "contact", "delete", "contact_id", contactID)
	return nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// toValidation surfaces model invariant violations as validation errors.
func toValidation(err error) error {
	if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
		return dErrors.New(dErrors.CodeValidation, dErrors.MessageOf(err))
	}
	return err
}

func translate(err error, entity, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, entity+" not found")
	case errors.Is(err, sentinel.ErrConstraint):
		return dErrors.Wrap(err, dErrors.CodeConstraintViolation, msg)
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeTimeout, msg)
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}

func (s *Service) logMutation(ctx context.Context, entity, op string, attrs ...any) {
	if s.metrics != nil {
		s.metrics.IncrementMutation(entity, op)
	}
	if s.logger == nil {
		return
	}
	args := append([]any{"entity", entity, "op", op, "request_id", requestcontext.RequestID(ctx)}, attrs...)
	s.logger.InfoContext(ctx, "hierarchy mutated", args...)
}

func (s *Service) observeListSections(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveListSections(start)
	}
}

