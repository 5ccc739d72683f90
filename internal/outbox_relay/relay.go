package outbox_relay

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/lavandel/flower_storefront/internal/config"
	"github.com/lavandel/flower_storefront/pkg/logger"
)

// Relay drains pending outbox rows into the order events topic. The
// notification consumers (email sender, messaging bot) read from there.
type Relay struct {
	producer    sarama.SyncProducer
	db          *sqlx.DB
	kafkaConfig config.KafkaConfig
	log         logger.Logger
}

type outboxMessage struct {
	EventUUID uuid.UUID `json:"event_uuid"`
	OrderUUID uuid.UUID `json:"order_uuid"`
}

func New(
	producer sarama.SyncProducer,
	db *sqlx.DB,
	kafkaConfig config.KafkaConfig,
	log logger.Logger,
) *Relay {
	return &Relay{
		producer:    producer,
		db:          db,
		kafkaConfig: kafkaConfig,
		log:         log,
	}
}

const messageSendLimit = 100

func (r *Relay) ProduceMessages(ctx context.Context) (err error) {
	const op = "outbox_relay.ProduceMessages"

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollBackErr := tx.Rollback(); rollBackErr != nil {
				r.log.Error(op, logger.Err(rollBackErr))
				err = errors.Join(err, rollBackErr)
			}
		}
	}()

	const outboxSelectQuery = `
		SELECT event_uuid, order_uuid
		FROM outbox
		WHERE sent = FALSE
		ORDER BY order_uuid
		LIMIT $1`

	rows, err := tx.QueryContext(ctx, outboxSelectQuery, messageSendLimit)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var eventUUIDs []uuid.UUID
	saramaMessages := make([]*sarama.ProducerMessage, 0, messageSendLimit)

	for rows.Next() {
		msg := outboxMessage{}
		if err = rows.Scan(&msg.EventUUID, &msg.OrderUUID); err != nil {
			r.log.Error(op, logger.Err(err))
			return fmt.Errorf("scan outbox: %w", err)
		}

		bytes, marshalErr := json.Marshal(msg)
		if marshalErr != nil {
			err = marshalErr
			r.log.Error(op, logger.Err(err))
			return fmt.Errorf("marshal outbox: %w", err)
		}

		saramaMessages = append(saramaMessages, &sarama.ProducerMessage{
			Topic: r.kafkaConfig.OrderEventTopic,
			Value: sarama.ByteEncoder(bytes),
		})

		eventUUIDs = append(eventUUIDs, msg.EventUUID)
	}
	if rows.Err() != nil {
		err = rows.Err()
		return fmt.Errorf("iterate outbox: %w", err)
	}

	if len(saramaMessages) == 0 {
		return tx.Rollback()
	}

	// Mark rows first: if the database fails, the transaction aborts
	// before anything reaches the topic. The reverse order could send
	// messages whose rows never get marked.
	const outboxUpdateQuery = `UPDATE outbox SET sent = TRUE WHERE event_uuid = ANY($1)`

	if _, err = tx.ExecContext(ctx, outboxUpdateQuery, pq.Array(eventUUIDs)); err != nil {
		r.log.Error(op, logger.Err(err))
		return fmt.Errorf("update outbox: %w", err)
	}

	if err = r.producer.SendMessages(saramaMessages); err != nil {
		r.log.Error(op, logger.Err(err))
		return fmt.Errorf("send messages: %w", err)
	}

	return tx.Commit()
}
