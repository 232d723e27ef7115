package handler

import (
	"net/http"

	"github.com/slotbook/venue-booking/internal/model"
)

// ListSports handles GET /sports
// Returns the catalog seeded at startup; venue sport codes must come from it.
func (h *Handler) ListSports(w http.ResponseWriter, r *http.Request) {
	sports, err := h.sports.ListSports(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list sports")
		return
	}
	if sports == nil {
		sports = []model.Sport{}
	}
	writeJSON(w, http.StatusOK, sports)
}
