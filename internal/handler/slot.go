package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/slotbook/venue-booking/internal/model"
)

// CreateSlot handles POST /venues/{id}/slots
// Publishes a new bookable slot on the venue; overlapping slots on the
// same date are rejected with 409.
func (h *Handler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSlotRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	slot, err := h.slots.CreateSlot(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, slot)
}

// ListSlots handles GET /venues/{id}/slots
func (h *Handler) ListSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.slots.ListSlots(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if slots == nil {
		slots = []model.Slot{}
	}
	writeJSON(w, http.StatusOK, slots)
}
