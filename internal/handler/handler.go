// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/slotbook/venue-booking/internal/model"
	"github.com/slotbook/venue-booking/internal/repository"
	"github.com/slotbook/venue-booking/internal/service"
)

// Handler holds all HTTP handlers for the venue booking API.
type Handler struct {
	venues       *service.VenueService
	slots        *service.SlotService
	bookings     *service.BookingService
	availability *service.AvailabilityService
	sports       *service.SportService
}

// New constructs a Handler over the service layer.
func New(
	venues *service.VenueService,
	slots *service.SlotService,
	bookings *service.BookingService,
	availability *service.AvailabilityService,
	sports *service.SportService,
) *Handler {
	return &Handler{venues: venues, slots: slots, bookings: bookings, availability: availability, sports: sports}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeDomainError maps service and repository errors to HTTP statuses:
// missing resources to 404, contention and overlap to 409, bad input to
// 400, anything else (storage failures) to 500.
func writeDomainError(w http.ResponseWriter, err error) {
	var overlap *repository.OverlapError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &overlap),
		errors.Is(err, repository.ErrSlotTaken),
		errors.Is(err, repository.ErrBookingCancelled):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidRange),
		errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
