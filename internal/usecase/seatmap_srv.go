package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"seatmap-engine/internal/data/entity"
	"seatmap-engine/internal/data/repository"
	"seatmap-engine/internal/dto/request"
	"seatmap-engine/internal/dto/response"
	"seatmap-engine/internal/seatmap"
	"seatmap-engine/pkg/broker"
	"seatmap-engine/pkg/cache"
	"seatmap-engine/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrItineraryNotFound = errors.New("itinerary not found")
	ErrItineraryClosed   = errors.New("itinerary is closed")
)

const (
	cacheKeyPrefix = "seatmap:itinerary:"
	publishTimeout = 5 * time.Second
)

type SeatmapService interface {
	LoadItinerary(ctx context.Context, req *request.LoadItineraryRequest) (*response.ItineraryResponse, error)
	GetItinerary(ctx context.Context, itineraryID string) (*response.ItineraryResponse, error)
	CloseItinerary(ctx context.Context, itineraryID string) (*response.ItineraryResponse, error)
	DeleteItinerary(ctx context.Context, itineraryID string) error

	GetCabinView(ctx context.Context, itineraryID string, segment, deck int, travelerID string) (*response.CabinViewResponse, error)
	GetSeatStatus(ctx context.Context, itineraryID string, segment int, seatNumber, travelerID string) (*response.SeatStatusResponse, error)

	SelectSeat(ctx context.Context, itineraryID string, req *request.SelectSeatRequest) (*response.SelectionResponse, error)
	DeselectSeat(ctx context.Context, itineraryID string, req *request.DeselectSeatRequest) ([]response.SelectionResponse, error)
	GetSelections(ctx context.Context, itineraryID string) ([]response.SelectionResponse, error)
	GetTotal(ctx context.Context, itineraryID string) (*response.TotalResponse, error)
}

// session is the live engine of one itinerary. mu serializes every engine call.
type session struct {
	mu        sync.Mutex
	itinerary *entity.Itinerary
	engine    *seatmap.Engine
	deleted   bool
}

// writable reports why selections may no longer change. Callers hold mu.
func (sess *session) writable() error {
	switch {
	case sess.deleted:
		return ErrItineraryNotFound
	case sess.itinerary.Status != entity.ItineraryStatusOpen:
		return ErrItineraryClosed
	}
	return nil
}

// cachedItinerary is what the cache holds: the itinerary row without its raw payload,
// plus the decoded seatmaps.
type cachedItinerary struct {
	ID            uuid.UUID              `json:"id"`
	Fingerprint   string                 `json:"fingerprint"`
	TravelerIDs   []string               `json:"traveler_ids"`
	MaxSelections int                    `json:"max_selections"`
	Currency      string                 `json:"currency"`
	Status        entity.ItineraryStatus `json:"status"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	Seatmap       entity.SeatmapResponse `json:"seatmap"`
}

type seatmapService struct {
	itineraries repository.ItineraryRepository
	selections  repository.SelectionRepository
	cache       cache.Service
	publisher   broker.Publisher
	queue       string
	config      utils.SeatmapConfig
	cacheTTL    time.Duration
	layouts     *seatmap.LayoutRegistry
	log         *zap.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

func NewSeatmapService(repo *repository.Repository, store cache.Service, publisher broker.Publisher, config *utils.Config, log *zap.Logger) (SeatmapService, error) {
	layouts, err := seatmap.ParseLayouts(config.Seatmap.Layouts)
	if err != nil {
		return nil, fmt.Errorf("parse SEATMAP_LAYOUTS: %w", err)
	}

	queue := config.RabbitMQ.Queue
	if queue == "" {
		queue = SelectionChangedQueue
	}

	return &seatmapService{
		itineraries: repo.Itinerary,
		selections:  repo.Selection,
		cache:       store,
		publisher:   publisher,
		queue:       queue,
		config:      config.Seatmap,
		cacheTTL:    config.Redis.TTL,
		layouts:     seatmap.NewLayoutRegistry(layouts),
		log:         log.With(zap.String("service", "seatmap")),
		sessions:    make(map[uuid.UUID]*session),
	}, nil
}

func (s *seatmapService) LoadItinerary(ctx context.Context, req *request.LoadItineraryRequest) (*response.ItineraryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Load itinerary validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var payload bytes.Buffer
	if err := json.Compact(&payload, req.Seatmap); err != nil {
		return nil, fmt.Errorf("invalid seatmap payload: %w", err)
	}

	var doc entity.SeatmapResponse
	if err := json.Unmarshal(payload.Bytes(), &doc); err != nil {
		return nil, fmt.Errorf("invalid seatmap payload: %w", err)
	}
	if len(doc.Data) == 0 {
		return nil, fmt.Errorf("invalid seatmap payload: no segments")
	}
	if err := checkPayload(&doc); err != nil {
		s.log.Warn("Seatmap payload rejected", zap.Error(err))
		return nil, fmt.Errorf("invalid seatmap payload: %w", err)
	}

	travelerIDs := req.TravelerIDs
	if len(travelerIDs) == 0 {
		travelerIDs = travelersOf(doc.Data)
	}

	maxSelections := req.MaxSelections
	if maxSelections == 0 {
		maxSelections = s.config.MaxSelections
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = s.config.DefaultCurrency
	}

	now := time.Now()
	itinerary := &entity.Itinerary{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Fingerprint:   utils.Fingerprint(payload.Bytes()),
		TravelerIDs:   travelerIDs,
		MaxSelections: maxSelections,
		Currency:      currency,
		Payload:       payload.Bytes(),
		Status:        entity.ItineraryStatusOpen,
	}

	if err := s.itineraries.Create(ctx, itinerary); err != nil {
		return nil, fmt.Errorf("create itinerary: %w", err)
	}

	sess := s.newSession(itinerary, &doc)
	s.storeCache(ctx, itinerary, &doc)

	s.mu.Lock()
	s.sessions[itinerary.ID] = sess
	s.mu.Unlock()

	s.log.Info("Itinerary loaded",
		zap.String("itinerary_id", itinerary.ID.String()),
		zap.String("fingerprint", itinerary.Fingerprint),
		zap.Int("segments", len(doc.Data)),
		zap.Strings("travelers", travelerIDs),
	)

	return s.itineraryResponse(sess), nil
}

func (s *seatmapService) GetItinerary(ctx context.Context, itineraryID string) (*response.ItineraryResponse, error) {
	sess, err := s.session(ctx, itineraryID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return s.itineraryResponse(sess), nil
}

// CloseItinerary freezes the selections; later select and deselect calls are rejected.
func (s *seatmapService) CloseItinerary(ctx context.Context, itineraryID string) (*response.ItineraryResponse, error) {
	sess, err := s.session(ctx, itineraryID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.deleted {
		return nil, ErrItineraryNotFound
	}
	if sess.itinerary.Status == entity.ItineraryStatusClosed {
		return s.itineraryResponse(sess), nil
	}

	if err := s.itineraries.UpdateStatus(ctx, sess.itinerary.ID, entity.ItineraryStatusClosed); err != nil {
		return nil, fmt.Errorf("close itinerary: %w", err)
	}
	sess.itinerary.Status = entity.ItineraryStatusClosed
	sess.itinerary.UpdatedAt = time.Now()
	s.dropCache(ctx, sess.itinerary.ID)

	s.log.Info("Itinerary closed",
		zap.String("itinerary_id", itineraryID),
		zap.Int("selections", len(sess.engine.Selections())),
	)

	return s.itineraryResponse(sess), nil
}

func (s *seatmapService) DeleteItinerary(ctx context.Context, itineraryID string) error {
	id, err := parseItineraryID(itineraryID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Wait for an in-flight mutation on the live session, then retire it.
	sess, live := s.sessions[id]
	if live {
		sess.mu.Lock()
		defer sess.mu.Unlock()
	}

	existing, err := s.itineraries.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find itinerary: %w", err)
	}
	if existing == nil {
		return ErrItineraryNotFound
	}

	if err := s.itineraries.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete itinerary: %w", err)
	}

	if live {
		sess.deleted = true
	}
	delete(s.sessions, id)
	s.dropCache(ctx, id)

	s.log.Info("Itinerary deleted", zap.String("itinerary_id", itineraryID))
	return nil
}

func (s *seatmapService) GetCabinView(ctx context.Context, itineraryID string, segment, deck int, travelerID string) (*response.CabinViewResponse, error) {
	sess, err := s.session(ctx, itineraryID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	view, err := sess.engine.CabinView(segment, deck)
	if err != nil {
		return nil, err
	}

	res := response.CabinViewToResponse(view, sess.engine.Dictionaries(), travelerID, func(seat *entity.Seat) seatmap.Status {
		return sess.engine.StatusOf(segment, seat, travelerID)
	})
	return &res, nil
}

func (s *seatmapService) GetSeatStatus(ctx context.Context, itineraryID string, segment int, seatNumber, travelerID string) (*response.SeatStatusResponse, error) {
	sess, err := s.session(ctx, itineraryID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	seat, err := sess.engine.FindSeat(segment, seatNumber)
	if err != nil {
		return nil, err
	}
	segmentID, _ := sess.engine.SegmentID(segment)

	return &response.SeatStatusResponse{
		SegmentIndex:    segment,
		SegmentID:       segmentID,
		SeatNumber:      seat.Number,
		TravelerID:      travelerID,
		Status:          sess.engine.StatusOf(segment, seat, travelerID),
		Characteristics: seat.CharacteristicsCodes,
	}, nil
}

func (s *seatmapService) SelectSeat(ctx context.Context, itineraryID string, req *request.SelectSeatRequest) (*response.SelectionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Select seat validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	sess, err := s.session(ctx, itineraryID)
	if err != nil {
		return nil, err
	}

	return s.selectSeat(ctx, sess, req)
}

func (s *seatmapService) selectSeat(ctx context.Context, sess *session, req *request.SelectSeatRequest) (*response.SelectionResponse, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.writable(); err != nil {
		return nil, err
	}
	itineraryID := sess.itinerary.ID.String()

	previous := sess.engine.Selections()
	rec, err := sess.engine.Select(*req.Segment, req.TravelerID, req.SeatNumber)
	if err != nil {
		return nil, err
	}

	if err := s.persist(ctx, sess, previous); err != nil {
		return nil, err
	}

	s.log.Info("Seat selected",
		zap.String("itinerary_id", itineraryID),
		zap.String("segment_id", rec.SegmentID),
		zap.String("traveler_id", rec.TravelerID),
		zap.String("seat_number", rec.SeatNumber),
	)
	s.publish(ctx, sess, ActionSelected, rec)

	res := response.SelectionToResponse(rec)
	return &res, nil
}

// DeselectSeat removes by seat when a seat number is given, otherwise by traveler.
// Removing nothing is not an error.
func (s *seatmapService) DeselectSeat(ctx context.Context, itineraryID string, req *request.DeselectSeatRequest) ([]response.SelectionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Deselect seat validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	sess, err := s.session(ctx, itineraryID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.writable(); err != nil {
		return nil, err
	}

	previous := sess.engine.Selections()

	var (
		removed seatmap.SelectionRecord
		ok      bool
	)
	if req.SeatNumber != "" {
		removed, ok, err = sess.engine.DeselectBySeat(req.Segment, req.SeatNumber)
	} else {
		segmentID, idErr := sess.engine.SegmentID(req.Segment)
		if idErr != nil {
			return nil, idErr
		}
		removed, ok = findRecord(previous, segmentID, req.TravelerID)
		if ok {
			_, err = sess.engine.Deselect(req.Segment, req.TravelerID)
		}
	}
	if err != nil {
		return nil, err
	}

	if !ok {
		return response.SelectionsToResponse(previous), nil
	}

	if err := s.persist(ctx, sess, previous); err != nil {
		return nil, err
	}

	s.log.Info("Seat deselected",
		zap.String("itinerary_id", itineraryID),
		zap.String("segment_id", removed.SegmentID),
		zap.String("traveler_id", removed.TravelerID),
		zap.String("seat_number", removed.SeatNumber),
	)
	s.publish(ctx, sess, ActionDeselected, removed)

	return response.SelectionsToResponse(sess.engine.Selections()), nil
}

func (s *seatmapService) GetSelections(ctx context.Context, itineraryID string) ([]response.SelectionResponse, error) {
	sess, err := s.session(ctx, itineraryID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return response.SelectionsToResponse(sess.engine.Selections()), nil
}

func (s *seatmapService) GetTotal(ctx context.Context, itineraryID string) (*response.TotalResponse, error) {
	sess, err := s.session(ctx, itineraryID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	total, err := sess.engine.Total()
	if err != nil {
		return nil, err
	}

	res := response.TotalToResponse(total, sess.engine.Selections())
	return &res, nil
}

// session returns the live session, rehydrating it from cache or postgres on a miss.
func (s *seatmapService) session(ctx context.Context, itineraryID string) (*session, error) {
	id, err := parseItineraryID(itineraryID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}

	itinerary, doc, err := s.loadItinerary(ctx, id)
	if err != nil {
		return nil, err
	}

	sess := s.newSession(itinerary, doc)

	rows, err := s.selections.FindByItineraryID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load selections: %w", err)
	}
	if err := sess.engine.RestoreSelections(rowsToRecords(rows)); err != nil {
		// rows that no longer fit the seatmap are discarded as a whole
		s.log.Warn("Stored selections rejected on restore",
			zap.String("itinerary_id", itineraryID),
			zap.Error(err),
		)
		_ = sess.engine.RestoreSelections(nil)
	}

	s.sessions[id] = sess
	s.log.Debug("Session rehydrated",
		zap.String("itinerary_id", itineraryID),
		zap.Int("selections", len(rows)),
	)
	return sess, nil
}

func (s *seatmapService) loadItinerary(ctx context.Context, id uuid.UUID) (*entity.Itinerary, *entity.SeatmapResponse, error) {
	var cached cachedItinerary
	err := s.cache.Get(ctx, cacheKey(id), &cached)
	if err == nil {
		itinerary := &entity.Itinerary{
			Base:          entity.Base{ID: cached.ID, CreatedAt: cached.CreatedAt, UpdatedAt: cached.UpdatedAt},
			Fingerprint:   cached.Fingerprint,
			TravelerIDs:   cached.TravelerIDs,
			MaxSelections: cached.MaxSelections,
			Currency:      cached.Currency,
			Status:        cached.Status,
		}
		return itinerary, &cached.Seatmap, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Warn("Cache read failed, falling back to database", zap.String("itinerary_id", id.String()), zap.Error(err))
	}

	itinerary, err := s.itineraries.FindByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("find itinerary: %w", err)
	}
	if itinerary == nil {
		return nil, nil, ErrItineraryNotFound
	}

	var doc entity.SeatmapResponse
	if err := json.Unmarshal(itinerary.Payload, &doc); err != nil {
		return nil, nil, fmt.Errorf("decode stored seatmap: %w", err)
	}

	s.storeCache(ctx, itinerary, &doc)
	return itinerary, &doc, nil
}

func (s *seatmapService) newSession(itinerary *entity.Itinerary, doc *entity.SeatmapResponse) *session {
	opts := seatmap.Options{
		MaxSelections:   itinerary.MaxSelections,
		AisleThreshold:  s.config.AisleThreshold,
		DefaultCurrency: itinerary.Currency,
		Layouts:         s.layouts,
		Dictionaries:    doc.Dictionaries,
	}

	return &session{
		itinerary: itinerary,
		engine: seatmap.NewEngine(doc.Data, itinerary.TravelerIDs, opts,
			s.log.With(zap.String("itinerary_id", itinerary.ID.String()))),
	}
}

// persist writes the engine's selections; on failure the engine is rolled back to previous.
func (s *seatmapService) persist(ctx context.Context, sess *session, previous []seatmap.SelectionRecord) error {
	records := sess.engine.Selections()
	now := time.Now()

	rows := make([]*entity.SelectionRow, len(records))
	for i, r := range records {
		rows[i] = &entity.SelectionRow{
			BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			ItineraryID: sess.itinerary.ID,
			Position:    i,
			SegmentID:   r.SegmentID,
			TravelerID:  r.TravelerID,
			SeatNumber:  r.SeatNumber,
			Price:       r.Price,
			Currency:    r.Currency,
		}
	}

	if err := s.selections.ReplaceAll(ctx, sess.itinerary.ID, rows); err != nil {
		if restoreErr := sess.engine.RestoreSelections(previous); restoreErr != nil {
			s.log.Error("Failed to roll back selections", zap.Error(restoreErr))
		}
		return fmt.Errorf("persist selections: %w", err)
	}

	return nil
}

func (s *seatmapService) publish(ctx context.Context, sess *session, action SelectionAction, rec seatmap.SelectionRecord) {
	event := SelectionChangedEvent{
		EventID:     uuid.NewString(),
		ItineraryID: sess.itinerary.ID.String(),
		Action:      action,
		SegmentID:   rec.SegmentID,
		TravelerID:  rec.TravelerID,
		SeatNumber:  rec.SeatNumber,
		Price:       rec.Price.StringFixed(2),
		Currency:    rec.Currency,
		Selections:  len(sess.engine.Selections()),
		OccurredAt:  time.Now().UTC(),
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(pubCtx, s.queue, event); err != nil {
		s.log.Warn("Failed to publish selection event",
			zap.String("itinerary_id", event.ItineraryID),
			zap.String("action", string(action)),
			zap.Error(err),
		)
	}
}

func (s *seatmapService) storeCache(ctx context.Context, itinerary *entity.Itinerary, doc *entity.SeatmapResponse) {
	entry := cachedItinerary{
		ID:            itinerary.ID,
		Fingerprint:   itinerary.Fingerprint,
		TravelerIDs:   itinerary.TravelerIDs,
		MaxSelections: itinerary.MaxSelections,
		Currency:      itinerary.Currency,
		Status:        itinerary.Status,
		CreatedAt:     itinerary.CreatedAt,
		UpdatedAt:     itinerary.UpdatedAt,
		Seatmap:       *doc,
	}
	if err := s.cache.Set(ctx, cacheKey(itinerary.ID), entry, s.cacheTTL); err != nil {
		s.log.Warn("Failed to cache itinerary", zap.String("itinerary_id", itinerary.ID.String()), zap.Error(err))
	}
}

func (s *seatmapService) dropCache(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, cacheKey(id)); err != nil {
		s.log.Warn("Failed to evict itinerary from cache", zap.String("itinerary_id", id.String()), zap.Error(err))
	}
}

func (s *seatmapService) itineraryResponse(sess *session) *response.ItineraryResponse {
	it := sess.itinerary
	res := &response.ItineraryResponse{
		ID:            it.ID.String(),
		Fingerprint:   it.Fingerprint,
		Status:        it.Status,
		TravelerIDs:   it.TravelerIDs,
		MaxSelections: it.MaxSelections,
		Currency:      it.Currency,
		Selections:    response.SelectionsToResponse(sess.engine.Selections()),
		CreatedAt:     it.CreatedAt,
	}

	for i := 0; i < sess.engine.Segments(); i++ {
		sm, _ := sess.engine.Seatmap(i)
		segmentID, _ := sess.engine.SegmentID(i)
		segment := response.SegmentToResponse(i, segmentID, sm)

		if len(it.TravelerIDs) > 0 {
			segment.AvailableSeats = make(map[string]int, len(it.TravelerIDs))
			for _, traveler := range it.TravelerIDs {
				segment.AvailableSeats[traveler], _ = sess.engine.AvailableCount(i, traveler)
			}
		}
		res.Segments = append(res.Segments, segment)
	}

	return res
}

// travelersOf collects the traveler IDs named by the seatmaps, counters first.
func travelersOf(seatmaps []entity.Seatmap) []string {
	seen := make(map[string]bool)
	for _, sm := range seatmaps {
		for _, c := range sm.AvailableSeatsCounters {
			seen[c.TravelerID] = true
		}
	}
	if len(seen) == 0 {
		for _, sm := range seatmaps {
			for _, deck := range sm.Decks {
				for _, seat := range deck.Seats {
					for _, p := range seat.TravelerPricing {
						seen[p.TravelerID] = true
					}
				}
			}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		if id != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// checkPayload enforces what storage and the grid can hold: ISO 4217 pricing currencies,
// bounded identifiers and bounded deck coordinates.
func checkPayload(doc *entity.SeatmapResponse) error {
	if errs := utils.ValidateStruct(doc); len(errs) > 0 {
		return errors.New(utils.FormatValidationErrors(errs))
	}

	for i := range doc.Data {
		for d := range doc.Data[i].Decks {
			if err := seatmap.CheckExtents(&doc.Data[i].Decks[d]); err != nil {
				return fmt.Errorf("segment %d deck %d: %w", i, d, err)
			}
		}
	}
	return nil
}

func rowsToRecords(rows []*entity.SelectionRow) []seatmap.SelectionRecord {
	records := make([]seatmap.SelectionRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, seatmap.SelectionRecord{
			SegmentID:  r.SegmentID,
			TravelerID: r.TravelerID,
			SeatNumber: r.SeatNumber,
			Price:      r.Price,
			Currency:   r.Currency,
		})
	}
	return records
}

func findRecord(records []seatmap.SelectionRecord, segmentID, travelerID string) (seatmap.SelectionRecord, bool) {
	for _, r := range records {
		if r.SegmentID == segmentID && r.TravelerID == travelerID {
			return r, true
		}
	}
	return seatmap.SelectionRecord{}, false
}

func parseItineraryID(itineraryID string) (uuid.UUID, error) {
	id, err := uuid.Parse(itineraryID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid itinerary ID format %s: %w", itineraryID, err)
	}
	return id, nil
}

func cacheKey(id uuid.UUID) string {
	return cacheKeyPrefix + id.String()
}
