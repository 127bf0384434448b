package repository

import (
	"context"
	"fmt"

	"seatmap-engine/internal/data/entity"
	"seatmap-engine/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SelectionRepository interface {
	FindByItineraryID(ctx context.Context, itineraryID uuid.UUID) ([]*entity.SelectionRow, error)

	// ReplaceAll swaps the stored selections of an itinerary for rows, atomically.
	ReplaceAll(ctx context.Context, itineraryID uuid.UUID, rows []*entity.SelectionRow) error
}

type selectionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSelectionRepository(db database.PgxIface, log *zap.Logger) SelectionRepository {
	return &selectionRepository{
		db:  db,
		log: log.With(zap.String("repository", "selection")),
	}
}

func (r *selectionRepository) FindByItineraryID(ctx context.Context, itineraryID uuid.UUID) ([]*entity.SelectionRow, error) {
	query := `
		SELECT id, itinerary_id, position, segment_id, traveler_id, seat_number, price, currency, created_at
		FROM itinerary_selections
		WHERE itinerary_id = $1
		ORDER BY position ASC
	`

	rows, err := r.db.Query(ctx, query, itineraryID)
	if err != nil {
		r.log.Error("Failed to query selections",
			zap.Error(err),
			zap.String("itinerary_id", itineraryID.String()),
		)
		return nil, fmt.Errorf("find selections for itinerary %s: %w", itineraryID, err)
	}
	defer rows.Close()

	var selections []*entity.SelectionRow
	for rows.Next() {
		var s entity.SelectionRow
		if err := rows.Scan(
			&s.ID,
			&s.ItineraryID,
			&s.Position,
			&s.SegmentID,
			&s.TravelerID,
			&s.SeatNumber,
			&s.Price,
			&s.Currency,
			&s.CreatedAt,
		); err != nil {
			r.log.Error("Failed to scan selection row", zap.Error(err))
			return nil, fmt.Errorf("scan selection: %w", err)
		}
		selections = append(selections, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate selections: %w", err)
	}

	return selections, nil
}

func (r *selectionRepository) ReplaceAll(ctx context.Context, itineraryID uuid.UUID, rows []*entity.SelectionRow) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM itinerary_selections WHERE itinerary_id = $1`, itineraryID); err != nil {
		r.log.Error("Failed to clear selections",
			zap.Error(err),
			zap.String("itinerary_id", itineraryID.String()),
		)
		return fmt.Errorf("clear selections for itinerary %s: %w", itineraryID, err)
	}

	insert := `
		INSERT INTO itinerary_selections (id, itinerary_id, position, segment_id, traveler_id, seat_number, price, currency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8, $9)
	`
	for _, s := range rows {
		if _, err := tx.Exec(ctx, insert,
			s.ID,
			itineraryID,
			s.Position,
			s.SegmentID,
			s.TravelerID,
			s.SeatNumber,
			s.Price.String(),
			s.Currency,
			s.CreatedAt,
		); err != nil {
			r.log.Error("Failed to insert selection",
				zap.Error(err),
				zap.String("itinerary_id", itineraryID.String()),
				zap.String("seat_number", s.SeatNumber),
			)
			return fmt.Errorf("insert selection %s for itinerary %s: %w", s.SeatNumber, itineraryID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit selections: %w", err)
	}

	return nil
}
