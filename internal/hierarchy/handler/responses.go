package handler

import (
	"time"

	"coldcheck/internal/models"
	"coldcheck/pkg/phone"
)

type SectionResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Position  int                `json:"position"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	Units     []*UnitResponse    `json:"units,omitempty"`
	Contacts  []*ContactResponse `json:"contacts,omitempty"`
}

type UnitResponse struct {
	ID        string    `json:"id"`
	SectionID string    `json:"section_id"`
	Name      string    `json:"name"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ContactResponse struct {
	ID          string      `json:"id"`
	SectionID   string      `json:"section_id"`
	Name        string      `json:"name"`
	PhoneNumber string      `json:"phone_number"`
	Position    int         `json:"position"`
	Links       phone.Links `json:"links"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type SectionListResponse struct {
	Sections []*SectionResponse `json:"sections"`
}

func toSectionResponse(s *models.Section, phones *phone.Formatter) *SectionResponse {
	resp := &SectionResponse{
		ID:        s.ID.String(),
		Name:      s.Name,
		Position:  s.Position,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.Units != nil {
		resp.Units = make([]*UnitResponse, 0, len(s.Units))
		for _, u := range s.Units {
			resp.Units = append(resp.Units, toUnitResponse(u))
		}
	}
	if s.Contacts != nil {
		resp.Contacts = make([]*ContactResponse, 0, len(s.Contacts))
		for _, c := range s.Contacts {
			resp.Contacts = append(resp.Contacts, toContactResponse(c, phones))
		}
	}
	return resp
}

func toUnitResponse(u *models.Unit) *UnitResponse {
	return &UnitResponse{
		ID:        u.ID.String(),
		SectionID: u.SectionID.String(),
		Name:      u.Name,
		Position:  u.Position,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toContactResponse(c *models.Contact, phones *phone.Formatter) *ContactResponse {
	return &ContactResponse{
		ID:          c.ID.String(),
		SectionID:   c.SectionID.String(),
		Name:        c.Name,
		PhoneNumber: c.Phone,
		Position:    c.Position,
		Links:       phones.Links(c.Phone),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
