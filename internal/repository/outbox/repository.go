package outbox

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lavandel/flower_storefront/pkg/logger"
)

type Repository struct {
	db *sqlx.DB

	log logger.Logger
}

func New(log logger.Logger, db *sqlx.DB) *Repository {
	return &Repository{db: db, log: log}
}

// Insert writes the pending notification event. It runs on the order
// transaction so the event exists iff the order does.
func (r *Repository) Insert(ctx context.Context, tx *sqlx.Tx, orderUUID uuid.UUID) error {
	const op = "repository.outbox.Insert"

	eventUUID, err := uuid.NewUUID()
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: event_uuid generate error: %w", op, err)
	}

	const query = `INSERT INTO outbox (event_uuid, order_uuid) VALUES ($1, $2)`

	if _, err = tx.ExecContext(ctx, query, eventUUID, orderUUID); err != nil {
		r.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: outbox insert error: %w", op, err)
	}

	return nil
}
