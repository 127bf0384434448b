package database

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS itineraries (
	id             UUID PRIMARY KEY,
	fingerprint    VARCHAR(64) NOT NULL,
	traveler_ids   TEXT[] NOT NULL DEFAULT '{}',
	max_selections INT NOT NULL DEFAULT 0,
	currency       VARCHAR(3) NOT NULL DEFAULT '',
	payload        JSONB NOT NULL,
	status         VARCHAR(16) NOT NULL DEFAULT 'open',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	deleted_at     TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS itinerary_selections (
	id           UUID PRIMARY KEY,
	itinerary_id UUID NOT NULL REFERENCES itineraries(id) ON DELETE CASCADE,
	position     INT NOT NULL,
	segment_id   VARCHAR(32) NOT NULL,
	traveler_id  VARCHAR(64) NOT NULL,
	seat_number  VARCHAR(8) NOT NULL,
	price        NUMERIC NOT NULL DEFAULT 0,
	currency     VARCHAR(3) NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (itinerary_id, segment_id, traveler_id),
	UNIQUE (itinerary_id, segment_id, seat_number)
);

CREATE INDEX IF NOT EXISTS idx_itinerary_selections_itinerary ON itinerary_selections (itinerary_id, position);
`

// Migrate creates the tables when they do not exist yet.
func Migrate(ctx context.Context, db PgxIface) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
