package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateEvent reports a provider event that was already recorded.
// Callers treat it as "already processed", never as a failure.
var ErrDuplicateEvent = errors.New("provider event already recorded")

// EventRepository records received provider events for replay protection.
type EventRepository interface {
	InsertEvent(ctx context.Context, ev ProviderEvent) error
	EventExists(ctx context.Context, provider, eventID string) (bool, error)
}

type pgxEventRepository struct {
	pool *pgxpool.Pool
}

// NewPgxEventRepository creates an EventRepository backed by pgxpool.
func NewPgxEventRepository(pool *pgxpool.Pool) EventRepository {
	return &pgxEventRepository{
		pool: pool,
	}
}

func (r *pgxEventRepository) InsertEvent(ctx context.Context, ev ProviderEvent) error {
	const query = `
		INSERT INTO public.provider_events (provider, provider_event_id, event_type, payload)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.pool.Exec(ctx, query, ev.Provider, ev.ProviderEventID, ev.EventType, ev.Payload); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateEvent
		}
		return fmt.Errorf("insert provider event failed: %w", err)
	}

	return nil
}

func (r *pgxEventRepository) EventExists(ctx context.Context, provider, eventID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM public.provider_events
			WHERE provider = $1 AND provider_event_id = $2
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, provider, eventID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check provider event failed: %w", err)
	}

	return exists, nil
}
