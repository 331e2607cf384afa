package handler

import (
	"strings"

	dErrors "coldcheck/pkg/domain-errors"
)

// NameRequest is the body for creating or renaming a section or unit.
type NameRequest struct {
	Name string `json:"name" validate:"required,max=128"`
}

// Validate trims the name.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *NameRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	return nil
}

// CreateContactRequest is the body for POST /sections/{id}/contacts.
type CreateContactRequest struct {
	Name        string `json:"name" validate:"required,max=128"`
	PhoneNumber string `json:"phone_number" validate:"required,max=32"`
}

func (r *CreateContactRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(r.PhoneNumber) == "" {
		return dErrors.New(dErrors.CodeValidation, "phone_number is required")
	}
	return nil
}

// UpdateContactRequest is the body for PATCH /contacts/{id}. Omitted fields keep their value.
type UpdateContactRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=128"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=32"`
}

func (r *UpdateContactRequest) Validate() error {
	if r.Name == nil && r.PhoneNumber == nil {
		return dErrors.New(dErrors.CodeValidation, "name or phone_number is required")
	}
	if r.PhoneNumber != nil && strings.TrimSpace(*r.PhoneNumber) == "" {
		return dErrors.New(dErrors.CodeValidation, "phone_number cannot be empty")
	}
	return nil
}
