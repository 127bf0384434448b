package repository

import (
	"context"
	"errors"
	"fmt"

	"seatmap-engine/internal/data/entity"
	"seatmap-engine/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ItineraryRepository interface {
	Create(ctx context.Context, itinerary *entity.Itinerary) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Itinerary, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ItineraryStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type itineraryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewItineraryRepository(db database.PgxIface, log *zap.Logger) ItineraryRepository {
	return &itineraryRepository{
		db:  db,
		log: log.With(zap.String("repository", "itinerary")),
	}
}

func (r *itineraryRepository) Create(ctx context.Context, itinerary *entity.Itinerary) error {
	query := `
		INSERT INTO itineraries (id, fingerprint, traveler_ids, max_selections, currency, payload, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		itinerary.ID,
		itinerary.Fingerprint,
		itinerary.TravelerIDs,
		itinerary.MaxSelections,
		itinerary.Currency,
		itinerary.Payload,
		itinerary.Status,
		itinerary.CreatedAt,
		itinerary.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create itinerary",
			zap.Error(err),
			zap.String("itinerary_id", itinerary.ID.String()),
		)
		return fmt.Errorf("create itinerary %s: %w", itinerary.ID, err)
	}

	return nil
}

func (r *itineraryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Itinerary, error) {
	query := `
		SELECT id, fingerprint, traveler_ids, max_selections, currency, payload, status, created_at, updated_at
		FROM itineraries
		WHERE id = $1 AND deleted_at IS NULL
	`

	var it entity.Itinerary
	err := r.db.QueryRow(ctx, query, id).Scan(
		&it.ID,
		&it.Fingerprint,
		&it.TravelerIDs,
		&it.MaxSelections,
		&it.Currency,
		&it.Payload,
		&it.Status,
		&it.CreatedAt,
		&it.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find itinerary by ID",
			zap.Error(err),
			zap.String("itinerary_id", id.String()),
		)
		return nil, fmt.Errorf("find itinerary by ID %s: %w", id, err)
	}

	return &it, nil
}

func (r *itineraryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ItineraryStatus) error {
	query := `
		UPDATE itineraries
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`

	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		r.log.Error("Failed to update itinerary status",
			zap.Error(err),
			zap.String("itinerary_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update itinerary status %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("itinerary %s not found", id)
	}

	return nil
}

// Delete soft-deletes the itinerary; its selections stay until the row is purged.
func (r *itineraryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE itineraries
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete itinerary",
			zap.Error(err),
			zap.String("itinerary_id", id.String()),
		)
		return fmt.Errorf("delete itinerary %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("itinerary %s not found", id)
	}

	return nil
}
