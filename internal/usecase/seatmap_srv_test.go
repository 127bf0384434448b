package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"seatmap-engine/internal/data/entity"
	"seatmap-engine/internal/data/repository"
	"seatmap-engine/internal/dto/request"
	"seatmap-engine/internal/seatmap"
	"seatmap-engine/pkg/cache"
	"seatmap-engine/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const seatmapPayload = `{
  "data": [{
    "type": "seatmap",
    "segmentId": "1",
    "carrierCode": "LH",
    "number": "400",
    "aircraft": {"code": "359"},
    "departure": {"iataCode": "FRA"},
    "arrival": {"iataCode": "JFK"},
    "decks": [{
      "deckType": "MAIN",
      "deckConfiguration": {"width": 3, "startSeatRow": 1, "endSeatRow": 1, "exitRowsX": [1]},
      "facilities": [{"code": "LA", "coordinates": {"x": 0, "y": 0}}],
      "seats": [
        {"cabin": "ECONOMY", "number": "1A", "characteristicsCodes": ["W"], "coordinates": {"x": 1, "y": 0},
         "travelerPricing": [
           {"travelerId": "1", "seatAvailabilityStatus": "AVAILABLE", "price": {"currency": "EUR", "total": "0.00"}},
           {"travelerId": "2", "seatAvailabilityStatus": "AVAILABLE", "price": {"currency": "EUR", "total": "0.00"}}]},
        {"cabin": "ECONOMY", "number": "1B", "characteristicsCodes": ["A"], "coordinates": {"x": 1, "y": 1},
         "travelerPricing": [
           {"travelerId": "1", "seatAvailabilityStatus": "AVAILABLE", "price": {"currency": "EUR", "total": "25.50"}},
           {"travelerId": "2", "seatAvailabilityStatus": "AVAILABLE", "price": {"currency": "EUR", "total": "25.50"}}]},
        {"cabin": "ECONOMY", "number": "1C", "coordinates": {"x": 1, "y": 2},
         "travelerPricing": [
           {"travelerId": "1", "seatAvailabilityStatus": "OCCUPIED"},
           {"travelerId": "2", "seatAvailabilityStatus": "OCCUPIED"}]}
      ]
    }],
    "availableSeatsCounters": [{"travelerId": "1", "value": 2}, {"travelerId": "2", "value": 2}]
  }],
  "dictionaries": {"facilities": {"LA": "Lavatory"}}
}`

type fakeItineraryRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Itinerary
	finds int
}

func (r *fakeItineraryRepo) Create(_ context.Context, it *entity.Itinerary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *it
	r.items[it.ID] = &cp
	return nil
}

func (r *fakeItineraryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Itinerary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItineraryRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.ItineraryStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return errors.New("not found")
	}
	it.Status = status
	return nil
}

func (r *fakeItineraryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type fakeSelectionRepo struct {
	mu      sync.Mutex
	rows    map[uuid.UUID][]*entity.SelectionRow
	failErr error
}

func (r *fakeSelectionRepo) FindByItineraryID(_ context.Context, id uuid.UUID) ([]*entity.SelectionRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[id], nil
}

func (r *fakeSelectionRepo) ReplaceAll(_ context.Context, id uuid.UUID, rows []*entity.SelectionRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return r.failErr
	}
	r.rows[id] = rows
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []SelectionChangedEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, queue string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	if e, ok := event.(SelectionChangedEvent); ok && queue == SelectionChangedQueue {
		p.events = append(p.events, e)
	}
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fixture struct {
	svc         SeatmapService
	itineraries *fakeItineraryRepo
	selections  *fakeSelectionRepo
	publisher   *fakePublisher
	cache       cache.Service
}

func newFixture(t *testing.T, store cache.Service) *fixture {
	t.Helper()
	if store == nil {
		store = cache.NewMemoryService()
	}

	f := &fixture{
		itineraries: &fakeItineraryRepo{items: make(map[uuid.UUID]*entity.Itinerary)},
		selections:  &fakeSelectionRepo{rows: make(map[uuid.UUID][]*entity.SelectionRow)},
		publisher:   &fakePublisher{},
		cache:       store,
	}

	cfg := &utils.Config{Seatmap: utils.SeatmapConfig{
		AisleThreshold:  seatmap.DefaultAisleThreshold,
		DefaultCurrency: "EUR",
		Layouts:         "359=A-BC",
	}}
	repo := &repository.Repository{Itinerary: f.itineraries, Selection: f.selections}

	svc, err := NewSeatmapService(repo, store, f.publisher, cfg, zap.NewNop())
	require.NoError(t, err)
	f.svc = svc
	return f
}

// restart drops the in-memory sessions, as a process restart would.
func (f *fixture) restart(t *testing.T) {
	t.Helper()
	f.svc.(*seatmapService).mu.Lock()
	f.svc.(*seatmapService).sessions = make(map[uuid.UUID]*session)
	f.svc.(*seatmapService).mu.Unlock()
}

func (f *fixture) load(t *testing.T) string {
	t.Helper()
	res, err := f.svc.LoadItinerary(context.Background(), &request.LoadItineraryRequest{
		Seatmap: json.RawMessage(seatmapPayload),
	})
	require.NoError(t, err)
	return res.ID
}

func payloadWith(old, replacement string) *request.LoadItineraryRequest {
	return &request.LoadItineraryRequest{Seatmap: json.RawMessage(strings.Replace(seatmapPayload, old, replacement, 1))}
}

func selectReq(segment int, traveler, seat string) *request.SelectSeatRequest {
	return &request.SelectSeatRequest{Segment: &segment, TravelerID: traveler, SeatNumber: seat}
}

func TestLoadItinerary(t *testing.T) {
	f := newFixture(t, nil)

	res, err := f.svc.LoadItinerary(context.Background(), &request.LoadItineraryRequest{
		Seatmap: json.RawMessage(seatmapPayload),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2"}, res.TravelerIDs)
	assert.Equal(t, "EUR", res.Currency)
	assert.Equal(t, entity.ItineraryStatusOpen, res.Status)
	assert.Len(t, res.Fingerprint, 64)
	require.Len(t, res.Segments, 1)
	assert.Equal(t, "359", res.Segments[0].Aircraft)
	assert.Equal(t, map[string]int{"1": 2, "2": 2}, res.Segments[0].AvailableSeats)

	id := uuid.MustParse(res.ID)
	stored, _ := f.itineraries.FindByID(context.Background(), id)
	require.NotNil(t, stored)
	assert.JSONEq(t, seatmapPayload, string(stored.Payload))
}

func TestLoadItineraryRejectsBadInput(t *testing.T) {
	f := newFixture(t, nil)

	tests := []struct {
		name string
		req  *request.LoadItineraryRequest
		want string
	}{
		{"missing seatmap", &request.LoadItineraryRequest{}, "validation failed"},
		{"bad currency", &request.LoadItineraryRequest{Currency: "EURO", Seatmap: json.RawMessage(seatmapPayload)}, "validation failed"},
		{"not json", &request.LoadItineraryRequest{Seatmap: json.RawMessage(`{"data":`)}, "invalid seatmap payload"},
		{"no segments", &request.LoadItineraryRequest{Seatmap: json.RawMessage(`{"data":[]}`)}, "invalid seatmap payload"},
		{"huge coordinates", payloadWith(`"coordinates": {"x": 1, "y": 2}`, `"coordinates": {"x": 5000000, "y": 2}`), "invalid seatmap payload"},
		{"overflowing coordinates", payloadWith(`"coordinates": {"x": 1, "y": 2}`, `"coordinates": {"x": 9223372036854775807, "y": 2}`), "invalid seatmap payload"},
		{"pricing currency not ISO 4217", payloadWith(`"currency": "EUR", "total": "25.50"`, `"currency": "EUROS", "total": "25.50"`), "invalid seatmap payload"},
		{"segment id too long", payloadWith(`"segmentId": "1"`, `"segmentId": "`+strings.Repeat("9", 40)+`"`), "invalid seatmap payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.LoadItinerary(context.Background(), tt.req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
	assert.Empty(t, f.itineraries.items)
}

func TestSelectSeatRoundTrip(t *testing.T) {
	f := newFixture(t, nil)
	id := f.load(t)
	ctx := context.Background()

	rec, err := f.svc.SelectSeat(ctx, id, selectReq(0, "1", "1a"))
	require.NoError(t, err)
	assert.Equal(t, "1A", rec.SeatNumber)
	assert.Equal(t, "0.00", rec.Price)

	status, err := f.svc.GetSeatStatus(ctx, id, 0, "1A", "")
	require.NoError(t, err)
	assert.Equal(t, seatmap.StatusSelected, status.Status)

	status, err = f.svc.GetSeatStatus(ctx, id, 0, "1C", "")
	require.NoError(t, err)
	assert.Equal(t, seatmap.StatusOccupied, status.Status)

	total, err := f.svc.GetTotal(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "0.00", total.Amount)
	assert.Equal(t, "EUR", total.Currency)

	_, err = f.svc.SelectSeat(ctx, id, selectReq(0, "1", "1B"))
	require.NoError(t, err)

	selections, err := f.svc.GetSelections(ctx, id)
	require.NoError(t, err)
	require.Len(t, selections, 1)
	assert.Equal(t, "1B", selections[0].SeatNumber)

	status, err = f.svc.GetSeatStatus(ctx, id, 0, "1A", "")
	require.NoError(t, err)
	assert.Equal(t, seatmap.StatusAvailable, status.Status)

	total, err = f.svc.GetTotal(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "25.50", total.Amount)

	require.Len(t, f.selections.rows[uuid.MustParse(id)], 1)
	require.Len(t, f.publisher.events, 2)
	assert.Equal(t, ActionSelected, f.publisher.events[1].Action)
	assert.Equal(t, "1B", f.publisher.events[1].SeatNumber)
}

func TestSelectSeatErrors(t *testing.T) {
	f := newFixture(t, nil)
	id := f.load(t)
	ctx := context.Background()

	_, err := f.svc.SelectSeat(ctx, id, selectReq(0, "1", "1A"))
	require.NoError(t, err)

	tests := []struct {
		name string
		id   string
		req  *request.SelectSeatRequest
		want error
	}{
		{"seat taken", id, selectReq(0, "2", "1A"), seatmap.ErrSeatTaken},
		{"occupied", id, selectReq(0, "2", "1C"), seatmap.ErrSeatUnavailable},
		{"unknown traveler", id, selectReq(0, "9", "1B"), seatmap.ErrUnknownTraveler},
		{"unknown segment", id, selectReq(4, "2", "1B"), seatmap.ErrSegmentNotFound},
		{"unknown seat", id, selectReq(0, "2", "9Z"), seatmap.ErrSeatNotFound},
		{"unknown itinerary", uuid.NewString(), selectReq(0, "2", "1B"), ErrItineraryNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.SelectSeat(ctx, tt.id, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err = f.svc.SelectSeat(ctx, id, &request.SelectSeatRequest{TravelerID: "1", SeatNumber: "1B"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	_, err = f.svc.SelectSeat(ctx, "not-a-uuid", selectReq(0, "1", "1B"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid itinerary ID")

	assert.Len(t, f.publisher.events, 1)
}

func TestSelectSeatRollsBackWhenPersistFails(t *testing.T) {
	f := newFixture(t, nil)
	id := f.load(t)
	ctx := context.Background()

	_, err := f.svc.SelectSeat(ctx, id, selectReq(0, "1", "1A"))
	require.NoError(t, err)

	f.selections.failErr = errors.New("connection reset")
	_, err = f.svc.SelectSeat(ctx, id, selectReq(0, "1", "1B"))
	require.Error(t, err)

	selections, err := f.svc.GetSelections(ctx, id)
	require.NoError(t, err)
	require.Len(t, selections, 1)
	assert.Equal(t, "1A", selections[0].SeatNumber)
	assert.Len(t, f.publisher.events, 1)
}

func TestPublishFailureIsNotFatal(t *testing.T) {
	f := newFixture(t, nil)
	id := f.load(t)
	f.publisher.err = errors.New("broker down")

	_, err := f.svc.SelectSeat(context.Background(), id, selectReq(0, "1", "1A"))
	assert.NoError(t, err)
}

func TestDeselectSeat(t *testing.T) {
	f := newFixture(t, nil)
	id := f.load(t)
	ctx := context.Background()

	_, err := f.svc.SelectSeat(ctx, id, selectReq(0, "1", "1A"))
	require.NoError(t, err)
	_, err = f.svc.SelectSeat(ctx, id, selectReq(0, "2", "1B"))
	require.NoError(t, err)

	remaining, err := f.svc.DeselectSeat(ctx, id, &request.DeselectSeatRequest{TravelerID: "1"})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "2", remaining[0].TravelerID)

	// nothing left for traveler 1: no-op, no event
	remaining, err = f.svc.DeselectSeat(ctx, id, &request.DeselectSeatRequest{TravelerID: "1"})
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
	assert.Len(t, f.publisher.events, 3)

	remaining, err = f.svc.DeselectSeat(ctx, id, &request.DeselectSeatRequest{SeatNumber: "1b"})
	require.NoError(t, err)
	assert.Empty(t, remaining)
	assert.Equal(t, ActionDeselected, f.publisher.events[3].Action)
	assert.Equal(t, "2", f.publisher.events[3].TravelerID)

	_, err = f.svc.DeselectSeat(ctx, id, &request.DeselectSeatRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestCapacityWithMaxSelections(t *testing.T) {
	f := newFixture(t, nil)
	res, err := f.svc.LoadItinerary(context.Background(), &request.LoadItineraryRequest{
		MaxSelections: 1,
		Seatmap:       json.RawMessage(seatmapPayload),
	})
	require.NoError(t, err)

	_, err = f.svc.SelectSeat(context.Background(), res.ID, selectReq(0, "1", "1A"))
	require.NoError(t, err)

	_, err = f.svc.SelectSeat(context.Background(), res.ID, selectReq(0, "2", "1B"))
	assert.ErrorIs(t, err, seatmap.ErrCapacityExceeded)

	selections, _ := f.svc.GetSelections(context.Background(), res.ID)
	assert.Len(t, selections, 1)
}

func TestSessionRehydratesFromDatabase(t *testing.T) {
	f := newFixture(t, nil)
	id := f.load(t)
	ctx := context.Background()

	_, err := f.svc.SelectSeat(ctx, id, selectReq(0, "2", "1B"))
	require.NoError(t, err)

	f.restart(t)
	require.NoError(t, f.cache.Delete(ctx, cacheKey(uuid.MustParse(id))))

	status, err := f.svc.GetSeatStatus(ctx, id, 0, "1B", "2")
	require.NoError(t, err)
	assert.Equal(t, seatmap.StatusSelected, status.Status)
	assert.Equal(t, 1, f.itineraries.finds)
}

func TestSessionRehydratesFromRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := newFixture(t, cache.NewService(client))
	id := f.load(t)
	ctx := context.Background()

	assert.True(t, mr.Exists(cacheKey(uuid.MustParse(id))))

	_, err := f.svc.SelectSeat(ctx, id, selectReq(0, "1", "1B"))
	require.NoError(t, err)

	f.restart(t)

	total, err := f.svc.GetTotal(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "25.50", total.Amount)
	assert.Zero(t, f.itineraries.finds, "cache hit must not touch the database")
}

func TestGetCabinView(t *testing.T) {
	f := newFixture(t, nil)
	id := f.load(t)
	ctx := context.Background()

	_, err := f.svc.SelectSeat(ctx, id, selectReq(0, "1", "1B"))
	require.NoError(t, err)

	view, err := f.svc.GetCabinView(ctx, id, 0, 0, "2")
	require.NoError(t, err)

	assert.Equal(t, "1-2", view.Layout.Pattern, "configured layout for 359")
	assert.Equal(t, []int{1}, view.ExitRows)
	require.Len(t, view.Cells, 2)

	lav := view.Cells[0][0]
	assert.Equal(t, seatmap.CellFacility, lav.Kind)
	assert.Equal(t, "Lavatory", lav.FacilityName)

	seats := view.Cells[1]
	assert.Equal(t, seatmap.StatusAvailable, seats[0].Status)
	assert.True(t, seats[0].Traits.Window)
	assert.True(t, seats[0].Traits.Exit)
	assert.Equal(t, seatmap.StatusSelected, seats[1].Status)
	assert.Equal(t, "25.50", seats[1].Price.Amount)
	assert.Equal(t, seatmap.StatusOccupied, seats[2].Status)

	_, err = f.svc.GetCabinView(ctx, id, 0, 3, "")
	assert.ErrorIs(t, err, seatmap.ErrDeckNotFound)
}

func TestCloseItinerary(t *testing.T) {
	f := newFixture(t, nil)
	id := f.load(t)
	ctx := context.Background()

	res, err := f.svc.CloseItinerary(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.ItineraryStatusClosed, res.Status)

	_, err = f.svc.SelectSeat(ctx, id, selectReq(0, "1", "1A"))
	assert.ErrorIs(t, err, ErrItineraryClosed)

	f.restart(t)
	got, err := f.svc.GetItinerary(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.ItineraryStatusClosed, got.Status)
}

func TestDeleteItinerary(t *testing.T) {
	f := newFixture(t, nil)
	id := f.load(t)
	ctx := context.Background()

	require.NoError(t, f.svc.DeleteItinerary(ctx, id))

	_, err := f.svc.GetItinerary(ctx, id)
	assert.ErrorIs(t, err, ErrItineraryNotFound)
	assert.ErrorIs(t, f.svc.DeleteItinerary(ctx, id), ErrItineraryNotFound)
}

func TestConcurrentSelectionsKeepSeatsUnique(t *testing.T) {
	f := newFixture(t, nil)
	id := f.load(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, traveler := range []string{"1", "2"} {
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(traveler string) {
				defer wg.Done()
				_, _ = f.svc.SelectSeat(ctx, id, selectReq(0, traveler, "1A"))
			}(traveler)
		}
	}
	wg.Wait()

	selections, err := f.svc.GetSelections(ctx, id)
	require.NoError(t, err)
	require.Len(t, selections, 1)
	assert.Equal(t, "1A", selections[0].SeatNumber)
}

func TestTravelersOfFallsBackToPricing(t *testing.T) {
	seatmaps := []entity.Seatmap{{
		Decks: []entity.Deck{{Seats: []entity.Seat{{
			Number: "1A",
			TravelerPricing: []entity.TravelerPricing{
				{TravelerID: "3"}, {TravelerID: "1"}, {TravelerID: ""},
			},
		}}}},
	}}

	assert.Equal(t, []string{"1", "3"}, travelersOf(seatmaps))
}

func TestSelectionKeepsFullPricePrecision(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	loaded, err := f.svc.LoadItinerary(ctx, payloadWith(`"total": "25.50"`, `"total": "25.505"`))
	require.NoError(t, err)

	_, err = f.svc.SelectSeat(ctx, loaded.ID, selectReq(0, "1", "1B"))
	require.NoError(t, err)

	rows := f.selections.rows[uuid.MustParse(loaded.ID)]
	require.Len(t, rows, 1)
	assert.Equal(t, "25.505", rows[0].Price.String())
	assert.Equal(t, "EUR", rows[0].Currency)
}

func TestDeleteRetiresLiveSession(t *testing.T) {
	f := newFixture(t, nil)
	id := f.load(t)
	ctx := context.Background()
	svc := f.svc.(*seatmapService)

	sess, err := svc.session(ctx, id)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteItinerary(ctx, id))

	// A caller that fetched the session before the delete must not write through it.
	_, err = svc.selectSeat(ctx, sess, selectReq(0, "1", "1A"))
	assert.ErrorIs(t, err, ErrItineraryNotFound)
	assert.Empty(t, f.selections.rows[uuid.MustParse(id)])
	assert.Empty(t, f.publisher.events)

	_, err = f.svc.CloseItinerary(ctx, id)
	assert.ErrorIs(t, err, ErrItineraryNotFound)
}

func TestDeleteWaitsForInFlightMutation(t *testing.T) {
	f := newFixture(t, nil)
	id := f.load(t)
	ctx := context.Background()

	sess, err := f.svc.(*seatmapService).session(ctx, id)
	require.NoError(t, err)

	sess.mu.Lock()
	done := make(chan error, 1)
	go func() { done <- f.svc.DeleteItinerary(ctx, id) }()

	select {
	case <-done:
		t.Fatal("delete finished while the session was locked")
	case <-time.After(50 * time.Millisecond):
	}

	sess.mu.Unlock()
	require.NoError(t, <-done)
	assert.True(t, sess.deleted)
}
