package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"coldcheck/internal/models"
	id "coldcheck/pkg/domain"
	"coldcheck/pkg/platform/sentinel"
)

// InMemory keeps the whole entity graph behind one RWMutex.
type InMemory struct {
	mu       sync.RWMutex
	sections map[id.SectionID]*models.Section
	units    map[id.UnitID]*models.Unit
	contacts map[id.ContactID]*models.Contact
	reports  map[id.ReportID]*storedReport
	seq      int64

	// High-water marks: the next position to hand out, per parent.
	nextSection int
	nextUnit    map[id.SectionID]int
	nextContact map[id.SectionID]int
}

type storedReport struct {
	report *models.Report
	seq    int64
}

func NewInMemory() *InMemory {
	return &InMemory{
		sections: make(map[id.SectionID]*models.Section),
		units:    make(map[id.UnitID]*models.Unit),
		contacts: make(map[id.ContactID]*models.Contact),
		reports:  make(map[id.ReportID]*storedReport),

		nextUnit:    make(map[id.SectionID]int),
		nextContact: make(map[id.SectionID]int),
	}
}

// -----------------------------------------------------------------------------
// Sections
// -----------------------------------------------------------------------------

// CreateSection appends the section after its siblings and sets Position.
// Positions freed by deletes are never handed out again.
func (s *InMemory) CreateSection(_ context.Context, section *models.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sections[section.ID]; exists {
		return fmt.Errorf("section %s: %w", section.ID, sentinel.ErrConstraint)
	}
	section.Position = s.nextSection
	s.nextSection++
	s.sections[section.ID] = cloneSection(section)
	return nil
}

func (s *InMemory) UpdateSection(_ context.Context, section *models.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.sections[section.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	stored.Name = section.Name
	stored.UpdatedAt = section.UpdatedAt
	return nil
}

// DeleteSection removes the section with its units and contacts.
func (s *InMemory) DeleteSection(_ context.Context, sectionID id.SectionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sections[sectionID]; !ok {
		return sentinel.ErrNotFound
	}
	for unitID, u := range s.units {
		if u.SectionID == sectionID {
			delete(s.units, unitID)
		}
	}
	for contactID, c := range s.contacts {
		if c.SectionID == sectionID {
			delete(s.contacts, contactID)
		}
	}
	delete(s.sections, sectionID)
	delete(s.nextUnit, sectionID)
	delete(s.nextContact, sectionID)
	return nil
}

func (s *InMemory) FindSection(_ context.Context, sectionID id.SectionID) (*models.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.sections[sectionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneSection(stored), nil
}

// ListSections returns every section with its units and contacts attached.
func (s *InMemory) ListSections(_ context.Context) ([]*models.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Section, 0, len(s.sections))
	byID := make(map[id.SectionID]*models.Section, len(s.sections))
	for _, stored := range s.sections {
		c := cloneSection(stored)
		c.Units = []*models.Unit{}
		c.Contacts = []*models.Contact{}
		out = append(out, c)
		byID[c.ID] = c
	}
	sort.Slice(out, func(i, j int) bool {
		return lessByPosition(out[i].Position, out[i].ID.String(), out[j].Position, out[j].ID.String())
	})

	for _, u := range s.units {
		if parent, ok := byID[u.SectionID]; ok {
			parent.Units = append(parent.Units, cloneUnit(u))
		}
	}
	for _, c := range s.contacts {
		if parent, ok := byID[c.SectionID]; ok {
			parent.Contacts = append(parent.Contacts, cloneContact(c))
		}
	}
	for _, section := range out {
		sortUnits(section.Units)
		sortContacts(section.Contacts)
	}
	return out, nil
}

// -----------------------------------------------------------------------------
// Units
// -----------------------------------------------------------------------------

func (s *InMemory) CreateUnit(_ context.Context, unit *models.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sections[unit.SectionID]; !ok {
		return fmt.Errorf("unit parent section %s: %w", unit.SectionID, sentinel.ErrConstraint)
	}
	if _, exists := s.units[unit.ID]; exists {
		return fmt.Errorf("unit %s: %w", unit.ID, sentinel.ErrConstraint)
	}
	unit.Position = s.nextUnit[unit.SectionID]
	s.nextUnit[unit.SectionID]++
	s.units[unit.ID] = cloneUnit(unit)
	return nil
}

func (s *InMemory) UpdateUnit(_ context.Context, unit *models.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.units[unit.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if stored.SectionID != unit.SectionID {
		return fmt.Errorf("unit %s cannot change section: %w", unit.ID, sentinel.ErrConstraint)
	}
	stored.Name = unit.Name
	stored.UpdatedAt = unit.UpdatedAt
	return nil
}

// DeleteUnit removes the unit. Entries that reference it are kept and
// resolve to no unit afterwards.
func (s *InMemory) DeleteUnit(_ context.Context, unitID id.UnitID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.units[unitID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.units, unitID)
	return nil
}

func (s *InMemory) FindUnit(_ context.Context, unitID id.UnitID) (*models.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.units[unitID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneUnit(stored), nil
}

// ListUnits returns the units of one section in position order.
func (s *InMemory) ListUnits(_ context.Context, sectionID id.SectionID) ([]*models.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.sections[sectionID]; !ok {
		return nil, sentinel.ErrNotFound
	}
	out := []*models.Unit{}
	for _, u := range s.units {
		if u.SectionID == sectionID {
			out = append(out, cloneUnit(u))
		}
	}
	sortUnits(out)
	return out, nil
}

// -----------------------------------------------------------------------------
// Contacts
// -----------------------------------------------------------------------------

func (s *InMemory) CreateContact(_ context.Context, contact *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sections[contact.SectionID]; !ok {
		return fmt.Errorf("contact parent section %s: %w", contact.SectionID, sentinel.ErrConstraint)
	}
	if _, exists := s.contacts[contact.ID]; exists {
		return fmt.Errorf("contact %s: %w", contact.ID, sentinel.ErrConstraint)
	}
	contact.Position = s.nextContact[contact.SectionID]
	s.nextContact[contact.SectionID]++
	s.contacts[contact.ID] = cloneContact(contact)
	return nil
}

func (s *InMemory) UpdateContact(_ context.Context, contact *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.contacts[contact.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if stored.SectionID != contact.SectionID {
		return fmt.Errorf("contact %s cannot change section: %w", contact.ID, sentinel.ErrConstraint)
	}
	stored.Name = contact.Name
	stored.Phone = contact.Phone
	stored.UpdatedAt = contact.UpdatedAt
	return nil
}

func (s *InMemory) DeleteContact(_ context.Context, contactID id.ContactID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contacts[contactID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.contacts, contactID)
	return nil
}

func (s *InMemory) FindContact(_ context.Context, contactID id.ContactID) (*models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.contacts[contactID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneContact(stored), nil
}

// -----------------------------------------------------------------------------
// Reports
// -----------------------------------------------------------------------------

// CreateReport stores the report with all of its entries, or nothing.
// On success the entries of report are resolved against current units.
func (s *InMemory) CreateReport(_ context.Context, report *models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.reports[report.ID]; exists {
		return fmt.Errorf("report %s: %w", report.ID, sentinel.ErrConstraint)
	}
	seen := make(map[id.UnitID]struct{}, len(report.Entries))
	for _, e := range report.Entries {
		if _, ok := s.units[e.UnitID]; !ok {
			return fmt.Errorf("entry references unknown unit %s: %w", e.UnitID, sentinel.ErrConstraint)
		}
		if _, dup := seen[e.UnitID]; dup {
			return fmt.Errorf("duplicate entry for unit %s: %w", e.UnitID, sentinel.ErrConstraint)
		}
		seen[e.UnitID] = struct{}{}
	}

	s.seq++
	s.reports[report.ID] = &storedReport{report: cloneReport(report), seq: s.seq}
	s.resolveEntries(report)
	return nil
}

func (s *InMemory) FindReport(_ context.Context, reportID id.ReportID) (*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.reports[reportID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	r := cloneReport(stored.report)
	s.resolveEntries(r)
	return r, nil
}

// ListReportsByDate returns the reports for one day, newest first.
func (s *InMemory) ListReportsByDate(_ context.Context, date models.Date) ([]*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]*storedReport, 0)
	for _, stored := range s.reports {
		if stored.report.Date == date {
			matches = append(matches, stored)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if !a.report.CreatedAt.Equal(b.report.CreatedAt) {
			return a.report.CreatedAt.After(b.report.CreatedAt)
		}
		return a.seq > b.seq
	})

	out := make([]*models.Report, 0, len(matches))
	for _, stored := range matches {
		r := cloneReport(stored.report)
		s.resolveEntries(r)
		out = append(out, r)
	}
	return out, nil
}

// DeleteReport removes the report together with its entries.
func (s *InMemory) DeleteReport(_ context.Context, reportID id.ReportID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[reportID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.reports, reportID)
	return nil
}

// resolveEntries attaches current unit and section copies. Caller holds the lock.
func (s *InMemory) resolveEntries(r *models.Report) {
	for _, e := range r.Entries {
		e.Unit, e.Section = nil, nil
		u, ok := s.units[e.UnitID]
		if !ok {
			continue
		}
		e.Unit = cloneUnit(u)
		if section, ok := s.sections[u.SectionID]; ok {
			e.Section = cloneSection(section)
		}
	}
}

func lessByPosition(posA int, idA string, posB int, idB string) bool {
	if posA != posB {
		return posA < posB
	}
	return idA < idB
}

func sortUnits(units []*models.Unit) {
	sort.Slice(units, func(i, j int) bool {
		return lessByPosition(units[i].Position, units[i].ID.String(), units[j].Position, units[j].ID.String())
	})
}

func sortContacts(contacts []*models.Contact) {
	sort.Slice(contacts, func(i, j int) bool {
		return lessByPosition(contacts[i].Position, contacts[i].ID.String(), contacts[j].Position, contacts[j].ID.String())
	})
}
