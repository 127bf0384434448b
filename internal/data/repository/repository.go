package repository

import (
	"seatmap-engine/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Itinerary ItineraryRepository
	Selection SelectionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Itinerary: NewItineraryRepository(db, log),
		Selection: NewSelectionRepository(db, log),
	}
}
