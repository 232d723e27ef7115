package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/slotbook/venue-booking/internal/calendar"
	"github.com/slotbook/venue-booking/internal/model"
)

// CreateVenue handles POST /venues
func (h *Handler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req model.CreateVenueRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	venue, err := h.venues.CreateVenue(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, venue)
}

// ListVenues handles GET /venues
func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := h.venues.ListVenues(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list venues")
		return
	}
	if venues == nil {
		venues = []model.Venue{}
	}
	writeJSON(w, http.StatusOK, venues)
}

// GetVenue handles GET /venues/{id}
func (h *Handler) GetVenue(w http.ResponseWriter, r *http.Request) {
	venue, err := h.venues.GetVenue(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, venue)
}

// DeleteVenue handles DELETE /venues/{id}
func (h *Handler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	if err := h.venues.DeleteVenue(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FindAvailableVenues handles GET /venues/available
// Query params: sport_code, date (YYYY-MM-DD), start_time, end_time (HH:MM).
func (h *Handler) FindAvailableVenues(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	date, err := calendar.ParseDate(q.Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	start, err := calendar.ParseClock(q.Get("start_time"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := calendar.ParseClock(q.Get("end_time"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	venues, err := h.availability.FindAvailableVenues(r.Context(), model.AvailabilityQuery{
		SportCode: q.Get("sport_code"),
		Date:      date,
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if venues == nil {
		venues = []model.Venue{}
	}
	writeJSON(w, http.StatusOK, venues)
}
