// README: Payload store backed by PostgreSQL; keeps raw buffers that decoded badly.
package rapido

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"cabsync/internal/wire"
)

type PayloadStore struct {
	db *pgxpool.Pool
}

func NewPayloadStore(db *pgxpool.Pool) *PayloadStore {
	return &PayloadStore{db: db}
}

func (s *PayloadStore) Record(ctx context.Context, p *Payload) error {
	row := s.db.QueryRow(ctx, `
        INSERT INTO rapido_payloads (
            cache_key, payload_hex, length, consumed, stop_reason, ride_count, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id`,
		p.CacheKey,
		p.PayloadHex,
		p.Length,
		p.Consumed,
		string(p.StopReason),
		p.RideCount,
		p.CreatedAt,
	)
	return row.Scan(&p.ID)
}

// Recent returns the newest payloads first.
func (s *PayloadStore) Recent(ctx context.Context, limit int) ([]Payload, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, cache_key, payload_hex, length, consumed, stop_reason, ride_count, created_at
        FROM rapido_payloads
        ORDER BY created_at DESC, id DESC
        LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payload
	for rows.Next() {
		var p Payload
		var stop string
		if err := rows.Scan(&p.ID, &p.CacheKey, &p.PayloadHex, &p.Length, &p.Consumed, &stop, &p.RideCount, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.StopReason = wire.StopReason(stop)
		out = append(out, p)
	}
	return out, rows.Err()
}
