package models

import (
	"strings"
	"time"

	id "coldcheck/pkg/domain"
	dErrors "coldcheck/pkg/domain-errors"
)

// MaxNameLength bounds section, unit, contact and submitter names.
const MaxNameLength = 128

// Section groups refrigeration units and the contacts responsible for them.
//
// Invariants:
//   - Name is non-empty after trimming
//   - Position is assigned by the store on insert (max sibling + 1, or 0)
//   - Deleting a Section deletes its Units and Contacts in the same transaction
type Section struct {
	ID        id.SectionID `json:"id"`
	Name      string       `json:"name"`
	Position  int          `json:"position"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	// Populated by hierarchy listings only.
	Units    []*Unit    `json:"units,omitempty"`
	Contacts []*Contact `json:"contacts,omitempty"`
}

// Unit is a single refrigeration appliance. SectionID never changes after creation.
type Unit struct {
	ID        id.UnitID    `json:"id"`
	SectionID id.SectionID `json:"section_id"`
	Name      string       `json:"name"`
	Position  int          `json:"position"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Contact is a person responsible for a section. Phone is stored exactly as
// entered; see pkg/phone for dialable forms.
type Contact struct {
	ID        id.ContactID `json:"id"`
	SectionID id.SectionID `json:"section_id"`
	Name      string       `json:"name"`
	Phone     string       `json:"phone_number"`
	Position  int          `json:"position"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func NewSection(sectionID id.SectionID, name string, now time.Time) (*Section, error) {
	name, err := normalizeName(name, "section name")
	if err != nil {
		return nil, err
	}
	return &Section{ID: sectionID, Name: name, CreatedAt: now, UpdatedAt: now}, nil
}

func NewUnit(unitID id.UnitID, sectionID id.SectionID, name string, now time.Time) (*Unit, error) {
	if sectionID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unit must belong to a section")
	}
	name, err := normalizeName(name, "unit name")
	if err != nil {
		return nil, err
	}
	return &Unit{ID: unitID, SectionID: sectionID, Name: name, CreatedAt: now, UpdatedAt: now}, nil
}

func NewContact(contactID id.ContactID, sectionID id.SectionID, name, phone string, now time.Time) (*Contact, error) {
	if sectionID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "contact must belong to a section")
	}
	name, err := normalizeName(name, "contact name")
	if err != nil {
		return nil, err
	}
	return &Contact{ID: contactID, SectionID: sectionID, Name: name, Phone: phone, CreatedAt: now, UpdatedAt: now}, nil
}

// Rename validates and applies a new name.
func (s *Section) Rename(name string, now time.Time) error {
	name, err := normalizeName(name, "section name")
	if err != nil {
		return err
	}
	s.Name = name
	s.UpdatedAt = now
	return nil
}

func (u *Unit) Rename(name string, now time.Time) error {
	name, err := normalizeName(name, "unit name")
	if err != nil {
		return err
	}
	u.Name = name
	u.UpdatedAt = now
	return nil
}

func (c *Contact) Rename(name string, now time.Time) error {
	name, err := normalizeName(name, "contact name")
	if err != nil {
		return err
	}
	c.Name = name
	c.UpdatedAt = now
	return nil
}

// SetPhone replaces the stored number verbatim.
func (c *Contact) SetPhone(phone string, now time.Time) {
	c.Phone = phone
	c.UpdatedAt = now
}

func normalizeName(name, field string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", dErrors.New(dErrors.CodeInvariantViolation, field+" cannot be empty")
	}
	if len(name) > MaxNameLength {
		return "", dErrors.New(dErrors.CodeInvariantViolation, field+" must be 128 characters or less")
	}
	return name, nil
}
