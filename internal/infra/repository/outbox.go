package repository

import (
	"context"
	"time"

	"wheelshare/internal/infra"
	"wheelshare/internal/infra/db"
	"wheelshare/internal/pkg/pgconv"
	"wheelshare/internal/usecase/shared"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// OutboxRepository appends events inside business transactions and serves
// the relay, which reads and marks them outside of one.
type OutboxRepository struct {
	db db.DBTX
}

func NewOutboxRepository(dbtx db.DBTX) *OutboxRepository {
	return &OutboxRepository{db: dbtx}
}

func (r *OutboxRepository) Append(ctx context.Context, event shared.OutboxEvent) error {
	query, args, err := db.Psql.
		Insert("outbox_events").
		SetMap(map[string]any{
			"id":             event.ID,
			"event_type":     event.EventType,
			"aggregate_id":   event.AggregateID,
			"correlation_id": pgconv.StringToPgtype(event.CorrelationID),
			"payload":        event.Payload,
			"occurred_at":    pgconv.TimeToPgtype(event.OccurredAt),
		}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build outbox insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to append outbox event", err)
	}
	return nil
}

// FetchPending returns unpublished events, oldest first.
func (r *OutboxRepository) FetchPending(ctx context.Context, limit int) ([]shared.OutboxEvent, error) {
	builder := db.Psql.
		Select("id", "event_type", "aggregate_id", "correlation_id", "payload", "occurred_at").
		From("outbox_events").
		Where(squirrel.Eq{"published_at": nil}).
		OrderBy("occurred_at", "id")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build outbox fetch", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to fetch outbox events", err)
	}
	defer rows.Close()

	var events []shared.OutboxEvent
	for rows.Next() {
		var (
			e             shared.OutboxEvent
			correlationID pgtype.Text
		)
		if err := rows.Scan(&e.ID, &e.EventType, &e.AggregateID, &correlationID, &e.Payload, &e.OccurredAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan outbox event", err)
		}
		e.CorrelationID = pgconv.StringFromPgtype(correlationID)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate outbox events", err)
	}
	return events, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := db.Psql.
		Update("outbox_events").
		Set("published_at", pgconv.TimeToPgtype(at)).
		Set("attempts", squirrel.Expr("attempts + 1")).
		Set("last_error", nil).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build outbox publish mark", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to mark outbox events published", err)
	}
	return nil
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, ids []uuid.UUID, reason string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := db.Psql.
		Update("outbox_events").
		Set("attempts", squirrel.Expr("attempts + 1")).
		Set("last_error", reason).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build outbox failure mark", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to mark outbox events failed", err)
	}
	return nil
}
