package adaptor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"seatmap-engine/internal/dto/request"
	"seatmap-engine/internal/dto/response"
	"seatmap-engine/internal/seatmap"
	"seatmap-engine/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSeatmapService records the last call and returns canned results.
type fakeSeatmapService struct {
	err error

	itinerary  *response.ItineraryResponse
	selection  *response.SelectionResponse
	selections []response.SelectionResponse
	total      *response.TotalResponse

	gotItineraryID string
	gotSegment     int
	gotDeck        int
	gotTravelerID  string
	gotSelect      *request.SelectSeatRequest
	gotDeselect    *request.DeselectSeatRequest
}

func (f *fakeSeatmapService) LoadItinerary(_ context.Context, _ *request.LoadItineraryRequest) (*response.ItineraryResponse, error) {
	return f.itinerary, f.err
}

func (f *fakeSeatmapService) GetItinerary(_ context.Context, id string) (*response.ItineraryResponse, error) {
	f.gotItineraryID = id
	return f.itinerary, f.err
}

func (f *fakeSeatmapService) CloseItinerary(_ context.Context, id string) (*response.ItineraryResponse, error) {
	f.gotItineraryID = id
	return f.itinerary, f.err
}

func (f *fakeSeatmapService) DeleteItinerary(_ context.Context, id string) error {
	f.gotItineraryID = id
	return f.err
}

func (f *fakeSeatmapService) GetCabinView(_ context.Context, id string, segment, deck int, travelerID string) (*response.CabinViewResponse, error) {
	f.gotItineraryID, f.gotSegment, f.gotDeck, f.gotTravelerID = id, segment, deck, travelerID
	if f.err != nil {
		return nil, f.err
	}
	return &response.CabinViewResponse{SegmentIndex: segment, DeckIndex: deck}, nil
}

func (f *fakeSeatmapService) GetSeatStatus(_ context.Context, id string, segment int, seatNumber, travelerID string) (*response.SeatStatusResponse, error) {
	f.gotItineraryID, f.gotSegment, f.gotTravelerID = id, segment, travelerID
	if f.err != nil {
		return nil, f.err
	}
	return &response.SeatStatusResponse{SegmentIndex: segment, SeatNumber: seatNumber, Status: seatmap.StatusAvailable}, nil
}

func (f *fakeSeatmapService) SelectSeat(_ context.Context, id string, req *request.SelectSeatRequest) (*response.SelectionResponse, error) {
	f.gotItineraryID, f.gotSelect = id, req
	return f.selection, f.err
}

func (f *fakeSeatmapService) DeselectSeat(_ context.Context, id string, req *request.DeselectSeatRequest) ([]response.SelectionResponse, error) {
	f.gotItineraryID, f.gotDeselect = id, req
	return f.selections, f.err
}

func (f *fakeSeatmapService) GetSelections(_ context.Context, id string) ([]response.SelectionResponse, error) {
	f.gotItineraryID = id
	return f.selections, f.err
}

func (f *fakeSeatmapService) GetTotal(_ context.Context, id string) (*response.TotalResponse, error) {
	f.gotItineraryID = id
	return f.total, f.err
}

func newTestRouter(svc usecase.SeatmapService) chi.Router {
	h := NewSeatmapHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.Route("/api/itineraries", func(r chi.Router) {
		r.Post("/", h.LoadItinerary)
		r.Get("/{id}", h.GetItinerary)
		r.Delete("/{id}", h.DeleteItinerary)
		r.Post("/{id}/close", h.CloseItinerary)
		r.Get("/{id}/segments/{segment}/decks/{deck}", h.GetCabinView)
		r.Get("/{id}/segments/{segment}/seats/{seat}", h.GetSeatStatus)
		r.Get("/{id}/selections", h.GetSelections)
		r.Post("/{id}/selections", h.SelectSeat)
		r.Delete("/{id}/selections", h.DeselectSeat)
		r.Get("/{id}/total", h.GetTotal)
	})
	return r
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func serve(t *testing.T, r http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestLoadItinerary(t *testing.T) {
	svc := &fakeSeatmapService{itinerary: &response.ItineraryResponse{Fingerprint: "abc123"}}
	r := newTestRouter(svc)

	rec, env := serve(t, r, http.MethodPost, "/api/itineraries/",
		`{"traveler_ids":["1","2"],"seatmap":{"data":[]}}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Status)
	assert.Equal(t, `"abc123"`, rec.Header().Get("ETag"))
}

func TestLoadItineraryBadInput(t *testing.T) {
	r := newTestRouter(&fakeSeatmapService{})

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"seatmap":`},
		{"missing seatmap", `{"traveler_ids":["1"]}`},
		{"bad currency", `{"currency":"euro","seatmap":{"data":[]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := serve(t, r, http.MethodPost, "/api/itineraries/", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, env.Status)
		})
	}
}

func TestGetItinerarySetsETag(t *testing.T) {
	svc := &fakeSeatmapService{itinerary: &response.ItineraryResponse{Fingerprint: "f00d"}}
	r := newTestRouter(svc)

	rec, _ := serve(t, r, http.MethodGet, "/api/itineraries/it-1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `"f00d"`, rec.Header().Get("ETag"))
	assert.Equal(t, "it-1", svc.gotItineraryID)
}

func TestGetCabinView(t *testing.T) {
	svc := &fakeSeatmapService{}
	r := newTestRouter(svc)

	rec, _ := serve(t, r, http.MethodGet, "/api/itineraries/it-1/segments/1/decks/0?traveler_id=2", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.gotSegment)
	assert.Equal(t, 0, svc.gotDeck)
	assert.Equal(t, "2", svc.gotTravelerID)
}

func TestGetCabinViewBadIndex(t *testing.T) {
	r := newTestRouter(&fakeSeatmapService{})

	for _, target := range []string{
		"/api/itineraries/it-1/segments/x/decks/0",
		"/api/itineraries/it-1/segments/0/decks/-1",
	} {
		rec, _ := serve(t, r, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestGetSeatStatus(t *testing.T) {
	svc := &fakeSeatmapService{}
	r := newTestRouter(svc)

	rec, env := serve(t, r, http.MethodGet, "/api/itineraries/it-1/segments/0/seats/12A?traveler_id=1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var status response.SeatStatusResponse
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, "12A", status.SeatNumber)
	assert.Equal(t, seatmap.StatusAvailable, status.Status)
	assert.Equal(t, "1", svc.gotTravelerID)
}

func TestSelectSeat(t *testing.T) {
	svc := &fakeSeatmapService{selection: &response.SelectionResponse{SegmentID: "1", TravelerID: "1", SeatNumber: "12A", Price: "25.00", Currency: "EUR"}}
	r := newTestRouter(svc)

	rec, env := serve(t, r, http.MethodPost, "/api/itineraries/it-1/selections",
		`{"segment":0,"traveler_id":"1","seat_number":"12A"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.gotSelect)
	assert.Equal(t, 0, *svc.gotSelect.Segment)
	assert.Equal(t, "12A", svc.gotSelect.SeatNumber)

	var sel response.SelectionResponse
	require.NoError(t, json.Unmarshal(env.Data, &sel))
	assert.Equal(t, "25.00", sel.Price)
}

func TestSelectSeatValidation(t *testing.T) {
	svc := &fakeSeatmapService{}
	r := newTestRouter(svc)

	rec, env := serve(t, r, http.MethodPost, "/api/itineraries/it-1/selections", `{"traveler_id":"1"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, env.Errors)
	assert.Nil(t, svc.gotSelect)
}

func TestDeselectSeat(t *testing.T) {
	svc := &fakeSeatmapService{selections: []response.SelectionResponse{}}
	r := newTestRouter(svc)

	rec, _ := serve(t, r, http.MethodDelete, "/api/itineraries/it-1/selections?segment=1&seat=12a", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotDeselect)
	assert.Equal(t, 1, svc.gotDeselect.Segment)
	assert.Equal(t, "12a", svc.gotDeselect.SeatNumber)
	assert.Empty(t, svc.gotDeselect.TravelerID)
}

func TestDeselectSeatNeedsTarget(t *testing.T) {
	svc := &fakeSeatmapService{}
	r := newTestRouter(svc)

	rec, _ := serve(t, r, http.MethodDelete, "/api/itineraries/it-1/selections?segment=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = serve(t, r, http.MethodDelete, "/api/itineraries/it-1/selections?traveler_id=1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Nil(t, svc.gotDeselect)
}

func TestGetTotalMixedCurrency(t *testing.T) {
	svc := &fakeSeatmapService{err: &seatmap.MixedCurrencyError{Totals: map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("25"),
		"USD": decimal.RequireFromString("30.5"),
	}}}
	r := newTestRouter(svc)

	rec, env := serve(t, r, http.MethodGet, "/api/itineraries/it-1/total", "")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"EUR":"25.00","USD":"30.50"}`, string(env.Errors))
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"itinerary not found", usecase.ErrItineraryNotFound, http.StatusNotFound},
		{"segment not found", fmt.Errorf("segment 4: %w", seatmap.ErrSegmentNotFound), http.StatusNotFound},
		{"deck not found", seatmap.ErrDeckNotFound, http.StatusNotFound},
		{"seat not found", seatmap.ErrSeatNotFound, http.StatusNotFound},
		{"seat taken", fmt.Errorf("select seat 12A: %w", seatmap.ErrSeatTaken), http.StatusConflict},
		{"seat unavailable", seatmap.ErrSeatUnavailable, http.StatusConflict},
		{"capacity", seatmap.ErrCapacityExceeded, http.StatusConflict},
		{"closed", usecase.ErrItineraryClosed, http.StatusConflict},
		{"unknown traveler", fmt.Errorf("traveler 9: %w", seatmap.ErrUnknownTraveler), http.StatusUnprocessableEntity},
		{"validation", fmt.Errorf("validation failed: seat_number is required"), http.StatusBadRequest},
		{"invalid id", fmt.Errorf("invalid itinerary ID format"), http.StatusBadRequest},
		{"unexpected", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&fakeSeatmapService{err: tt.err})

			rec, env := serve(t, r, http.MethodGet, "/api/itineraries/it-1/selections", "")

			assert.Equal(t, tt.want, rec.Code)
			assert.False(t, env.Status)
			if tt.want == http.StatusInternalServerError {
				assert.Equal(t, "Internal server error", env.Message)
			}
		})
	}
}

func TestCloseAndDeleteItinerary(t *testing.T) {
	svc := &fakeSeatmapService{itinerary: &response.ItineraryResponse{Status: "closed"}}
	r := newTestRouter(svc)

	rec, _ := serve(t, r, http.MethodPost, "/api/itineraries/it-1/close", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = serve(t, r, http.MethodDelete, "/api/itineraries/it-2", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "it-2", svc.gotItineraryID)
}
