package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"offboard-checklist/internal/models"
	"offboard-checklist/internal/service"
	"offboard-checklist/internal/utils"
)

type ReportsHTTP struct {
	svc *service.Offboarding
	log zerolog.Logger
}

func NewReportsHTTP(svc *service.Offboarding, log zerolog.Logger) *ReportsHTTP {
	return &ReportsHTTP{svc: svc, log: log}
}

// GET /api/reports/summary
// Returns: { total, "Not Started": n, "In Progress": n, "Done": n }
func (h *ReportsHTTP) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.svc.ListTickets(r.Context())
		if err != nil {
			fail(h.log, w, r, err)
			return
		}
		out := map[string]int{"total": len(items)}
		for _, s := range models.Statuses {
			out[string(s)] = 0
		}
		for _, t := range items {
			out[string(t.Status)]++
		}
		utils.JSON(w, http.StatusOK, out)
	}
}
