package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"offboard-checklist/internal/middleware"
	"offboard-checklist/internal/models"
	"offboard-checklist/internal/repository"
	"offboard-checklist/internal/service"
	"offboard-checklist/internal/utils"
)

// TicketHTTP wires the offboarding endpoints to the service.
type TicketHTTP struct {
	svc *service.Offboarding
	log zerolog.Logger
}

func NewTicketHTTP(svc *service.Offboarding, log zerolog.Logger) *TicketHTTP {
	return &TicketHTTP{svc: svc, log: log}
}

// -----------------------------------------------------------------------------
// GET /api/tickets
// -----------------------------------------------------------------------------
func (h *TicketHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.svc.ListTickets(r.Context())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		w.Header().Set("X-Total-Count", strconv.Itoa(len(items)))
		utils.JSON(w, http.StatusOK, items)
	}
}

// -----------------------------------------------------------------------------
// GET /api/tickets/{id}
// -----------------------------------------------------------------------------
func (h *TicketHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id", service.ErrTicketNotFound)
		if !ok {
			return
		}
		t, err := h.svc.GetTicket(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

// -----------------------------------------------------------------------------
// POST /api/tickets
// created_by falls back to the authenticated user when auth is enabled.
// -----------------------------------------------------------------------------
func (h *TicketHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in service.CreateTicketInput
		if !decode(w, r, &in) {
			return
		}
		t, err := h.svc.CreateTicket(r.Context(), in, middleware.UserFrom(r.Context()))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusCreated, t)
	}
}

// -----------------------------------------------------------------------------
// PATCH /api/tickets/{id}
// -----------------------------------------------------------------------------
func (h *TicketHTTP) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id", service.ErrTicketNotFound)
		if !ok {
			return
		}
		var p repository.TicketPatch
		if !decode(w, r, &p) {
			return
		}
		t, err := h.svc.UpdateTicket(r.Context(), id, p)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

// -----------------------------------------------------------------------------
// PATCH /api/tickets/{id}/checklist/{itemId}
// -----------------------------------------------------------------------------
func (h *TicketHTTP) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id", service.ErrItemNotFound)
		if !ok {
			return
		}
		itemID, ok := pathID(w, r, "itemId", service.ErrItemNotFound)
		if !ok {
			return
		}
		var p repository.ItemPatch
		if !decode(w, r, &p) {
			return
		}
		it, err := h.svc.UpdateChecklistItem(r.Context(), id, itemID, p)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, it)
	}
}

// -----------------------------------------------------------------------------
// PATCH /api/tickets/{id}/checklist/bulk
// -----------------------------------------------------------------------------
func (h *TicketHTTP) BulkUpdateItems() http.HandlerFunc {
	type inDTO struct {
		ItemIDs []int64 `json:"item_ids"`
		repository.ItemPatch
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id", service.ErrTicketNotFound)
		if !ok {
			return
		}
		var in inDTO
		if !decode(w, r, &in) {
			return
		}
		n, err := h.svc.BulkUpdateChecklist(r.Context(), id, in.ItemIDs, in.ItemPatch)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]int64{"updated": n})
	}
}

// -----------------------------------------------------------------------------
// GET /api/tickets/{id}/export?format=xlsx|pdf
// -----------------------------------------------------------------------------
func (h *TicketHTTP) Export() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id", service.ErrTicketNotFound)
		if !ok {
			return
		}
		doc, err := h.svc.ExportTicket(r.Context(), id, r.URL.Query().Get("format"))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		w.Header().Set("Content-Type", doc.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(doc.Filename)))
		w.Header().Set("Content-Length", strconv.Itoa(len(doc.Body)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(doc.Body)
	}
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func (h *TicketHTTP) fail(w http.ResponseWriter, r *http.Request, err error) {
	fail(h.log, w, r, err)
}

// fail maps service errors onto 400 / 404 / 500. Unclassified errors are
// logged and echo their message to the caller.
func fail(log zerolog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.Error(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).
			Str("request_id", middleware.RequestIDFrom(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		utils.Error(w, http.StatusInternalServerError, err.Error())
	}
}

// pathID parses a numeric URL param. A malformed id cannot match a row, so it
// is answered with notFound.
func pathID(w http.ResponseWriter, r *http.Request, name string, notFound error) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		utils.Error(w, http.StatusNotFound, notFound.Error())
		return 0, false
	}
	return id, true
}

// decode reads the request body into v. Unparseable dates get their own
// message; anything else is "invalid json".
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var derr *models.DateError
		if errors.As(err, &derr) {
			utils.Error(w, http.StatusBadRequest, derr.Error())
			return false
		}
		utils.Error(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}
