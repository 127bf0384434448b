package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"

	"seatmap-engine/internal/dto/request"
	"seatmap-engine/internal/seatmap"
	"seatmap-engine/internal/usecase"
	"seatmap-engine/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxPayloadBytes bounds the seatmap upload; a widebody seatmap with pricing for nine travelers stays well below.
const maxPayloadBytes = 8 << 20

type SeatmapHandler struct {
	service usecase.SeatmapService
	log     *zap.Logger
}

func NewSeatmapHandler(service usecase.SeatmapService, log *zap.Logger) *SeatmapHandler {
	return &SeatmapHandler{
		service: service,
		log:     log.With(zap.String("handler", "seatmap")),
	}
}

// LoadItinerary handles POST /api/itineraries
func (h *SeatmapHandler) LoadItinerary(w http.ResponseWriter, r *http.Request) {
	var req request.LoadItineraryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPayloadBytes)).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	itinerary, err := h.service.LoadItinerary(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "load itinerary")
		return
	}

	w.Header().Set("ETag", `"`+itinerary.Fingerprint+`"`)
	utils.ResponseCreated(w, "success", itinerary)
}

// GetItinerary handles GET /api/itineraries/{id}
func (h *SeatmapHandler) GetItinerary(w http.ResponseWriter, r *http.Request) {
	itinerary, err := h.service.GetItinerary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get itinerary")
		return
	}

	utils.ResponseSuccessTagged(w, itinerary.Fingerprint, "success", itinerary)
}

// CloseItinerary handles POST /api/itineraries/{id}/close
func (h *SeatmapHandler) CloseItinerary(w http.ResponseWriter, r *http.Request) {
	itinerary, err := h.service.CloseItinerary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "close itinerary")
		return
	}

	utils.ResponseSuccess(w, "success", itinerary)
}

// DeleteItinerary handles DELETE /api/itineraries/{id}
func (h *SeatmapHandler) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteItinerary(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete itinerary")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetCabinView handles GET /api/itineraries/{id}/segments/{segment}/decks/{deck}?traveler_id=
func (h *SeatmapHandler) GetCabinView(w http.ResponseWriter, r *http.Request) {
	segment, err := utils.ParseIndex(chi.URLParam(r, "segment"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid segment index", nil)
		return
	}
	deck, err := utils.ParseIndex(chi.URLParam(r, "deck"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid deck index", nil)
		return
	}

	view, err := h.service.GetCabinView(r.Context(), chi.URLParam(r, "id"), segment, deck, r.URL.Query().Get("traveler_id"))
	if err != nil {
		h.handleServiceError(w, err, "get cabin view")
		return
	}

	utils.ResponseSuccess(w, "success", view)
}

// GetSeatStatus handles GET /api/itineraries/{id}/segments/{segment}/seats/{seat}?traveler_id=
func (h *SeatmapHandler) GetSeatStatus(w http.ResponseWriter, r *http.Request) {
	segment, err := utils.ParseIndex(chi.URLParam(r, "segment"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid segment index", nil)
		return
	}

	status, err := h.service.GetSeatStatus(r.Context(), chi.URLParam(r, "id"), segment, chi.URLParam(r, "seat"), r.URL.Query().Get("traveler_id"))
	if err != nil {
		h.handleServiceError(w, err, "get seat status")
		return
	}

	utils.ResponseSuccess(w, "success", status)
}

// GetSelections handles GET /api/itineraries/{id}/selections
func (h *SeatmapHandler) GetSelections(w http.ResponseWriter, r *http.Request) {
	selections, err := h.service.GetSelections(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get selections")
		return
	}

	utils.ResponseSuccess(w, "success", selections)
}

// SelectSeat handles POST /api/itineraries/{id}/selections
func (h *SeatmapHandler) SelectSeat(w http.ResponseWriter, r *http.Request) {
	var req request.SelectSeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	selection, err := h.service.SelectSeat(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "select seat")
		return
	}

	utils.ResponseCreated(w, "success", selection)
}

// DeselectSeat handles DELETE /api/itineraries/{id}/selections?segment=&traveler_id=|seat=
func (h *SeatmapHandler) DeselectSeat(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	segment, err := utils.ParseIndex(query.Get("segment"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid segment index", nil)
		return
	}

	req := request.DeselectSeatRequest{
		Segment:    segment,
		TravelerID: query.Get("traveler_id"),
		SeatNumber: query.Get("seat"),
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	selections, err := h.service.DeselectSeat(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "deselect seat")
		return
	}

	utils.ResponseSuccess(w, "success", selections)
}

// GetTotal handles GET /api/itineraries/{id}/total
func (h *SeatmapHandler) GetTotal(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.GetTotal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get total")
		return
	}

	utils.ResponseSuccess(w, "success", total)
}

// handleServiceError maps service errors to HTTP responses
func (h *SeatmapHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	var mixed *seatmap.MixedCurrencyError
	switch {
	case errors.As(err, &mixed):
		h.log.Warn(operation+" failed - mixed currencies",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnprocessable(w, errMsg, currencyBreakdown(mixed))

	case errors.Is(err, seatmap.ErrUnknownTraveler):
		h.log.Warn(operation+" failed - unknown traveler",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnprocessable(w, errMsg, nil)

	case errors.Is(err, usecase.ErrItineraryNotFound),
		errors.Is(err, seatmap.ErrSegmentNotFound),
		errors.Is(err, seatmap.ErrDeckNotFound),
		errors.Is(err, seatmap.ErrSeatNotFound),
		strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, seatmap.ErrSeatTaken),
		errors.Is(err, seatmap.ErrSeatUnavailable),
		errors.Is(err, seatmap.ErrCapacityExceeded),
		errors.Is(err, usecase.ErrItineraryClosed):
		h.log.Info(operation+" rejected",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func currencyBreakdown(mixed *seatmap.MixedCurrencyError) map[string]string {
	currencies := make([]string, 0, len(mixed.Totals))
	for c := range mixed.Totals {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)

	out := make(map[string]string, len(currencies))
	for _, c := range currencies {
		out[c] = mixed.Totals[c].StringFixed(2)
	}
	return out
}
