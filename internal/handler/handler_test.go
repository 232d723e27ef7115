package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/slotbook/venue-booking/internal/catalog"
	"github.com/slotbook/venue-booking/internal/events"
	"github.com/slotbook/venue-booking/internal/model"
	"github.com/slotbook/venue-booking/internal/repository/memory"
	"github.com/slotbook/venue-booking/internal/service"
)

// newTestServer builds the whole stack over the in-memory store, wired to
// the same routes as the real server.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.NewStore()
	logger := zap.NewNop()
	cat := catalog.Static{{Code: "FOOTBALL", Name: "Football"}}

	sportSvc := service.NewSportService(cat, store.Sports(), logger)
	if err := sportSvc.Seed(context.Background()); err != nil {
		t.Fatalf("seed sports: %v", err)
	}

	h := New(
		service.NewVenueService(store.Venues(), sportSvc, logger),
		service.NewSlotService(store.Venues(), store.Slots(), events.Nop{}, logger),
		service.NewBookingService(store.Bookings(), events.Nop{}, logger),
		service.NewAvailabilityService(store.Venues()),
		sportSvc,
	)

	r := chi.NewRouter()
	r.Get("/health", HealthCheck)
	r.Get("/sports", h.ListSports)
	r.Route("/venues", func(r chi.Router) {
		r.Post("/", h.CreateVenue)
		r.Get("/", h.ListVenues)
		r.Get("/available", h.FindAvailableVenues)
		r.Get("/{id}", h.GetVenue)
		r.Delete("/{id}", h.DeleteVenue)
		r.Post("/{id}/slots", h.CreateSlot)
		r.Get("/{id}/slots", h.ListSlots)
	})
	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", h.CreateBooking)
		r.Get("/", h.ListBookings)
		r.Get("/{id}", h.GetBooking)
		r.Put("/{id}/cancel", h.CancelBooking)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any, wantStatus int, out any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var e model.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		t.Fatalf("%s %s: expected status %d, got %d (%s)", method, url, wantStatus, resp.StatusCode, e.Error)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func TestBookingFlowOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	var venue model.Venue
	doJSON(t, http.MethodPost, srv.URL+"/venues", map[string]any{
		"name":       "Kick Off Arena",
		"location":   "Indiranagar, Bangalore",
		"sport_code": "FOOTBALL",
	}, http.StatusCreated, &venue)

	var slot model.Slot
	doJSON(t, http.MethodPost, srv.URL+"/venues/"+venue.ID+"/slots", map[string]any{
		"date":       "2024-06-01",
		"start_time": "10:00",
		"end_time":   "11:00",
		"price":      500,
	}, http.StatusCreated, &slot)
	if !slot.IsAvailable {
		t.Fatalf("expected new slot to be available")
	}

	// Overlapping slot on the same date: 409.
	doJSON(t, http.MethodPost, srv.URL+"/venues/"+venue.ID+"/slots", map[string]any{
		"date":       "2024-06-01",
		"start_time": "10:30",
		"end_time":   "11:30",
	}, http.StatusConflict, nil)

	// Reversed range: 400.
	doJSON(t, http.MethodPost, srv.URL+"/venues/"+venue.ID+"/slots", map[string]any{
		"date":       "2024-06-01",
		"start_time": "15:00",
		"end_time":   "14:00",
	}, http.StatusBadRequest, nil)

	bookingBody := map[string]any{
		"slot_id":        slot.ID,
		"customer_name":  "Priya Sharma",
		"customer_email": "priya@example.com",
	}
	var booking model.Booking
	doJSON(t, http.MethodPost, srv.URL+"/bookings", bookingBody, http.StatusCreated, &booking)
	if booking.TotalAmount == nil || *booking.TotalAmount != 500 {
		t.Fatalf("expected total_amount 500, got %v", booking.TotalAmount)
	}

	// The second attempt cannot tell "taken" from "gone": 404.
	doJSON(t, http.MethodPost, srv.URL+"/bookings", bookingBody, http.StatusNotFound, nil)

	doJSON(t, http.MethodPut, srv.URL+"/bookings/"+booking.ID+"/cancel", nil, http.StatusOK, &booking)
	if booking.Status != model.BookingCancelled {
		t.Fatalf("expected CANCELLED, got %s", booking.Status)
	}

	// Double cancel: 409.
	doJSON(t, http.MethodPut, srv.URL+"/bookings/"+booking.ID+"/cancel", nil, http.StatusConflict, nil)

	var slots []model.Slot
	doJSON(t, http.MethodGet, srv.URL+"/venues/"+venue.ID+"/slots", nil, http.StatusOK, &slots)
	if len(slots) != 1 || !slots[0].IsAvailable {
		t.Fatalf("expected the slot to be available again after cancel, got %+v", slots)
	}
}

func TestAvailabilityOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	var venue model.Venue
	doJSON(t, http.MethodPost, srv.URL+"/venues", map[string]any{
		"name":       "Kick Off Arena",
		"location":   "Indiranagar, Bangalore",
		"sport_code": "FOOTBALL",
	}, http.StatusCreated, &venue)

	doJSON(t, http.MethodPost, srv.URL+"/venues/"+venue.ID+"/slots", map[string]any{
		"date":       "2024-06-01",
		"start_time": "09:00",
		"end_time":   "11:00",
	}, http.StatusCreated, nil)

	availURL := func(start, end string) string {
		return fmt.Sprintf("%s/venues/available?sport_code=FOOTBALL&date=2024-06-01&start_time=%s&end_time=%s", srv.URL, start, end)
	}

	// Partial coverage: 09:00-11:00 cannot serve 10:00-12:00.
	var venues []model.Venue
	doJSON(t, http.MethodGet, availURL("10:00", "12:00"), nil, http.StatusOK, &venues)
	if len(venues) != 0 {
		t.Fatalf("expected no venues for partially covered window, got %d", len(venues))
	}

	doJSON(t, http.MethodGet, availURL("09:30", "10:30"), nil, http.StatusOK, &venues)
	if len(venues) != 1 || venues[0].ID != venue.ID {
		t.Fatalf("expected venue %s, got %v", venue.ID, venues)
	}

	// Reversed window: 400.
	doJSON(t, http.MethodGet, availURL("12:00", "10:00"), nil, http.StatusBadRequest, nil)

	// Malformed clock: 400.
	doJSON(t, http.MethodGet, availURL("noon", "13:00"), nil, http.StatusBadRequest, nil)
}

func TestVenueEndpoints(t *testing.T) {
	srv := newTestServer(t)

	var sports []model.Sport
	doJSON(t, http.MethodGet, srv.URL+"/sports", nil, http.StatusOK, &sports)
	if len(sports) != 1 || sports[0].Code != "FOOTBALL" {
		t.Fatalf("expected seeded FOOTBALL catalog, got %v", sports)
	}

	// Unknown sport code: 400.
	doJSON(t, http.MethodPost, srv.URL+"/venues", map[string]any{
		"name":       "Mystery Grounds",
		"location":   "Somewhere",
		"sport_code": "QUIDDITCH",
	}, http.StatusBadRequest, nil)

	// Unknown IDs: 404.
	doJSON(t, http.MethodGet, srv.URL+"/venues/nope", nil, http.StatusNotFound, nil)
	doJSON(t, http.MethodPost, srv.URL+"/venues/nope/slots", map[string]any{
		"date":       "2024-06-01",
		"start_time": "10:00",
		"end_time":   "11:00",
	}, http.StatusNotFound, nil)
	doJSON(t, http.MethodGet, srv.URL+"/bookings/nope", nil, http.StatusNotFound, nil)

	var venue model.Venue
	doJSON(t, http.MethodPost, srv.URL+"/venues", map[string]any{
		"name":       "Kick Off Arena",
		"location":   "Indiranagar, Bangalore",
		"sport_code": "FOOTBALL",
	}, http.StatusCreated, &venue)

	var venues []model.Venue
	doJSON(t, http.MethodGet, srv.URL+"/venues", nil, http.StatusOK, &venues)
	if len(venues) != 1 {
		t.Fatalf("expected 1 venue, got %d", len(venues))
	}

	doJSON(t, http.MethodDelete, srv.URL+"/venues/"+venue.ID, nil, http.StatusNoContent, nil)
	doJSON(t, http.MethodGet, srv.URL+"/venues/"+venue.ID, nil, http.StatusNotFound, nil)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := chi.NewRouter()
	r.Use(RateLimit(1, 1))
	r.Get("/health", HealthCheck)

	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("first request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", resp.StatusCode)
	}

	// Burst of 1 exhausted; the immediate second request is rejected.
	resp, err = http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("second request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}
}
