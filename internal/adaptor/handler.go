package adaptor

import (
	"seatmap-engine/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Seatmap *SeatmapHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Seatmap: NewSeatmapHandler(service.Seatmap, log),
	}
}
