// Package domain holds typed identifiers shared across bounded contexts.
//
// Each entity gets its own UUID-backed type so a UnitID can never be passed
// where a SectionID is expected.
package domain

import (
	"github.com/google/uuid"

	dErrors "coldcheck/pkg/domain-errors"
)

type (
	SectionID uuid.UUID
	UnitID    uuid.UUID
	ContactID uuid.UUID
	ReportID  uuid.UUID
	EntryID   uuid.UUID
)

func (id SectionID) String() string { return uuid.UUID(id).String() }
func (id UnitID) String() string    { return uuid.UUID(id).String() }
func (id ContactID) String() string { return uuid.UUID(id).String() }
func (id ReportID) String() string  { return uuid.UUID(id).String() }
func (id EntryID) String() string   { return uuid.UUID(id).String() }

func (id SectionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id UnitID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id ContactID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ReportID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id EntryID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }

func (id SectionID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id UnitID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }
func (id ContactID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id ReportID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id EntryID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }

func (id *SectionID) UnmarshalText(b []byte) error { return unmarshalID((*uuid.UUID)(id), b) }
func (id *UnitID) UnmarshalText(b []byte) error    { return unmarshalID((*uuid.UUID)(id), b) }
func (id *ContactID) UnmarshalText(b []byte) error { return unmarshalID((*uuid.UUID)(id), b) }
func (id *ReportID) UnmarshalText(b []byte) error  { return unmarshalID((*uuid.UUID)(id), b) }
func (id *EntryID) UnmarshalText(b []byte) error   { return unmarshalID((*uuid.UUID)(id), b) }

func NewSectionID() SectionID { return SectionID(uuid.New()) }
func NewUnitID() UnitID       { return UnitID(uuid.New()) }
func NewContactID() ContactID { return ContactID(uuid.New()) }
func NewReportID() ReportID   { return ReportID(uuid.New()) }
func NewEntryID() EntryID     { return EntryID(uuid.New()) }

func ParseSectionID(s string) (SectionID, error) {
	u, err := parseUUID(s, "section id")
	return SectionID(u), err
}

func ParseUnitID(s string) (UnitID, error) {
	u, err := parseUUID(s, "unit id")
	return UnitID(u), err
}

func ParseContactID(s string) (ContactID, error) {
	u, err := parseUUID(s, "contact id")
	return ContactID(u), err
}

func ParseReportID(s string) (ReportID, error) {
	u, err := parseUUID(s, "report id")
	return ReportID(u), err
}

func ParseEntryID(s string) (EntryID, error) {
	u, err := parseUUID(s, "entry id")
	return EntryID(u), err
}

// parseUUID rejects empty, malformed and nil UUIDs.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return u, nil
}

func unmarshalID(dst *uuid.UUID, b []byte) error {
	u, err := parseUUID(string(b), "id")
	if err != nil {
		return err
	}
	*dst = u
	return nil
}
