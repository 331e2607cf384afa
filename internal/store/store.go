// Package store persists the section hierarchy and compliance reports.
//
// Two implementations share one contract:
//   - InMemory guards every entity map with a single lock, so cascades and
//     report inserts are all-or-nothing and never observed half-applied.
//   - PostgresStore relies on transactions and ON DELETE CASCADE.
//
// Reads order sections, units and contacts by position then id, and reports
// by creation time descending. Missing ids yield sentinel.ErrNotFound; writes
// that would orphan a row or duplicate a (report, unit) pair yield
// sentinel.ErrConstraint.
package store

import "coldcheck/internal/models"

func cloneSection(s *models.Section) *models.Section {
	c := *s
	c.Units = nil
	c.Contacts = nil
	return &c
}

func cloneUnit(u *models.Unit) *models.Unit {
	c := *u
	return &c
}

func cloneContact(ct *models.Contact) *models.Contact {
	c := *ct
	return &c
}

// cloneReport copies the report header and entries without resolution.
func cloneReport(r *models.Report) *models.Report {
	c := *r
	c.Entries = make([]*models.Entry, 0, len(r.Entries))
	for _, e := range r.Entries {
		ec := *e
		ec.Unit = nil
		ec.Section = nil
		c.Entries = append(c.Entries, &ec)
	}
	return &c
}
