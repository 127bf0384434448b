package usecase

import (
	"seatmap-engine/internal/data/repository"
	"seatmap-engine/pkg/broker"
	"seatmap-engine/pkg/cache"
	"seatmap-engine/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Seatmap SeatmapService
}

func NewService(repo *repository.Repository, store cache.Service, publisher broker.Publisher, config *utils.Config, log *zap.Logger) (*Service, error) {
	seatmapService, err := NewSeatmapService(repo, store, publisher, config, log)
	if err != nil {
		return nil, err
	}

	return &Service{
		Seatmap: seatmapService,
	}, nil
}
