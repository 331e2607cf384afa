package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"coldcheck/internal/hierarchy/service"
	"coldcheck/internal/models"
	id "coldcheck/pkg/domain"
	dErrors "coldcheck/pkg/domain-errors"
	"coldcheck/pkg/phone"
	"coldcheck/pkg/platform/httputil"
	"coldcheck/pkg/requestcontext"
)

// Service defines the interface for hierarchy operations.
type Service interface {
	AddSection(ctx context.Context, name string) (*models.Section, error)
	RenameSection(ctx context.Context, sectionID id.SectionID, name string) (*models.Section, error)
	RemoveSection(ctx context.Context, sectionID id.SectionID) error
	ListSections(ctx context.Context) ([]*models.Section, error)
	GetSection(ctx context.Context, sectionID id.SectionID) (*models.Section, error)
	AddUnit(ctx context.Context, sectionID id.SectionID, name string) (*models.Unit, error)
	RenameUnit(ctx context.Context, unitID id.UnitID, name string) (*models.Unit, error)
	RemoveUnit(ctx context.Context, unitID id.UnitID) error
	AddContact(ctx context.Context, sectionID id.SectionID, name, phone string) (*models.Contact, error)
	UpdateContact(ctx context.Context, contactID id.ContactID, update service.ContactUpdate) (*models.Contact, error)
	RemoveContact(ctx context.Context, contactID id.ContactID) error
}

// Handler serves the section, unit and contact endpoints.
type Handler struct {
	service Service
	phones  *phone.Formatter
	logger  *slog.Logger
}

// New creates a hierarchy Handler.
func New(svc Service, phones *phone.Formatter, logger *slog.Logger) *Handler {
	return &Handler{service: svc, phones: phones, logger: logger}
}

// Register registers the hierarchy routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/sections", h.HandleListSections)
	r.Post("/sections", h.HandleCreateSection)
	r.Get("/sections/{id}", h.HandleGetSection)
	r.Patch("/sections/{id}", h.HandleRenameSection)
	r.Delete("/sections/{id}", h.HandleDeleteSection)

	r.Post("/sections/{id}/units", h.HandleCreateUnit)
	r.Patch("/units/{id}", h.HandleRenameUnit)
	r.Delete("/units/{id}", h.HandleDeleteUnit)

	r.Post("/sections/{id}/contacts", h.HandleCreateContact)
	r.Patch("/contacts/{id}", h.HandleUpdateContact)
	r.Delete("/contacts/{id}", h.HandleDeleteContact)
}

func (h *Handler) HandleListSections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sections, err := h.service.ListSections(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to list sections", err)
		return
	}
	resp := SectionListResponse{Sections: make([]*SectionResponse, 0, len(sections))}
	for _, s := range sections {
		resp.Sections = append(resp.Sections, toSectionResponse(s, h.phones))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleCreateSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[NameRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	section, err := h.service.AddSection(ctx, req.Name)
	if err != nil {
		h.fail(ctx, w, "failed to create section", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toSectionResponse(section, h.phones))
}

func (h *Handler) HandleGetSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sectionID, err := id.ParseSectionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	section, err := h.service.GetSection(ctx, sectionID)
	if err != nil {
		h.fail(ctx, w, "failed to get section", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSectionResponse(section, h.phones))
}

func (h *Handler) HandleRenameSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sectionID, err := id.ParseSectionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[NameRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	section, err := h.service.RenameSection(ctx, sectionID, req.Name)
	if err != nil {
		h.fail(ctx, w, "failed to rename section", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSectionResponse(section, h.phones))
}

func (h *Handler) HandleDeleteSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sectionID, err := id.ParseSectionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.RemoveSection(ctx, sectionID); err != nil {
		h.fail(ctx, w, "failed to delete section", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleCreateUnit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sectionID, err := id.ParseSectionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[NameRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	unit, err := h.service.AddUnit(ctx, sectionID, req.Name)
	if err != nil {
		h.fail(ctx, w, "failed to create unit", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toUnitResponse(unit))
}

func (h *Handler) HandleRenameUnit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	unitID, err := id.ParseUnitID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[NameRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	unit, err := h.service.RenameUnit(ctx, unitID, req.Name)
	if err != nil {
		h.fail(ctx, w, "failed to rename unit", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toUnitResponse(unit))
}

func (h *Handler) HandleDeleteUnit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	unitID, err := id.ParseUnitID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.RemoveUnit(ctx, unitID); err != nil {
		h.fail(ctx, w, "failed to delete unit", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleCreateContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sectionID, err := id.ParseSectionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[CreateContactRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	contact, err := h.service.AddContact(ctx, sectionID, req.Name, req.PhoneNumber)
	if err != nil {
		h.fail(ctx, w, "failed to create contact", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toContactResponse(contact, h.phones))
}

func (h *Handler) HandleUpdateContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	contactID, err := id.ParseContactID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateContactRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	contact, err := h.service.UpdateContact(ctx, contactID, service.ContactUpdate{
		Name:  req.Name,
		Phone: req.PhoneNumber,
	})
	if err != nil {
		h.fail(ctx, w, "failed to update contact", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toContactResponse(contact, h.phones))
}

func (h *Handler) HandleDeleteContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	contactID, err := id.ParseContactID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.RemoveContact(ctx, contactID); err != nil {
		h.fail(ctx, w, "failed to delete contact", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fail logs at a level matching the error's code and writes the response.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	level := slog.LevelWarn
	if dErrors.ToHTTPStatus(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteError(w, err)
}
