package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lavandel/flower_storefront/internal/domain/models"
	internalErrors "github.com/lavandel/flower_storefront/internal/lib/errors"
	"github.com/lavandel/flower_storefront/pkg/logger"
)

type outboxRepository interface {
	Insert(ctx context.Context, tx *sqlx.Tx, orderUUID uuid.UUID) error
}

type Repository struct {
	log              logger.Logger
	db               *sqlx.DB
	outboxRepository outboxRepository
}

func NewOrderRepository(log logger.Logger, db *sqlx.DB, outboxRepository outboxRepository) *Repository {
	return &Repository{
		log:              log,
		db:               db,
		outboxRepository: outboxRepository,
	}
}

// Create persists the order snapshot, its items and the notification
// outbox row in one serializable transaction.
func (r *Repository) Create(ctx context.Context, order *models.Order) (orderUUID uuid.UUID, err error) {
	const op = "repository.order.Create"

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return uuid.Nil, fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer func() {
		if err != nil {
			if rollBackErr := tx.Rollback(); rollBackErr != nil {
				r.log.Error(op, logger.Err(rollBackErr))
				err = errors.Join(err, fmt.Errorf("%s: rollback transaction: %w", op, rollBackErr))
			}
		}
	}()

	const orderQuery = `
		INSERT INTO orders (customer_name, email, phone, address, comment, locale, status, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	row := tx.QueryRowContext(ctx, orderQuery,
		order.Customer.Name, order.Customer.Email, order.Customer.Phone,
		order.Customer.Address, order.Customer.Comment,
		order.Locale, order.Status, order.TotalPrice)

	if err = row.Scan(&orderUUID); err != nil {
		r.log.Error(op, logger.Err(err))
		return uuid.Nil, fmt.Errorf("%s: scan result: %w", op, err)
	}

	const itemsQuery = `INSERT INTO order_items (order_id, kind, bouquet_id, title, quantity, price, composition) VALUES %s`
	var values []interface{}
	var placeholders []string

	for i, item := range order.Items {
		var bouquetID uuid.NullUUID
		if item.Kind == models.ItemKindCatalog {
			bouquetID = uuid.NullUUID{UUID: item.BouquetID, Valid: true}
		}

		var composition []byte
		if len(item.Composition) > 0 {
			composition, err = json.Marshal(item.Composition)
			if err != nil {
				r.log.Error(op, logger.Err(err))
				return uuid.Nil, fmt.Errorf("%s: marshal composition: %w", op, err)
			}
		}

		values = append(values, orderUUID, item.Kind, bouquetID, item.Title, item.Quantity, item.Price, composition)

		argID := i * 7

		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			argID+1, argID+2, argID+3, argID+4, argID+5, argID+6, argID+7))
	}

	fullQuery := fmt.Sprintf(itemsQuery, strings.Join(placeholders, ","))

	if _, err = tx.ExecContext(ctx, fullQuery, values...); err != nil {
		r.log.Error(op, logger.Err(err))
		return uuid.Nil, fmt.Errorf("%s: order_items execute statement: %w", op, err)
	}

	if err = r.outboxRepository.Insert(ctx, tx, orderUUID); err != nil {
		r.log.Error(op, logger.Err(err))
		return uuid.Nil, fmt.Errorf("%s: outbox insert error: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		r.log.Error(op, logger.Err(err))
		return uuid.Nil, fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return orderUUID, nil
}

// Order loads a single submitted order with its items.
func (r *Repository) Order(ctx context.Context, orderUUID uuid.UUID) (*models.Order, error) {
	const op = "repository.order.Order"

	const orderQuery = `
		SELECT o.id, o.customer_name, o.email, o.phone, o.address, o.comment,
		       o.locale, o.status, o.total_price, o.created_at
		FROM orders o
		WHERE o.id = $1`

	row := r.db.QueryRowxContext(ctx, orderQuery, orderUUID)

	var order models.Order
	if err := row.Scan(&order.OrderUUID,
		&order.Customer.Name, &order.Customer.Email, &order.Customer.Phone,
		&order.Customer.Address, &order.Customer.Comment,
		&order.Locale, &order.Status, &order.TotalPrice, &order.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internalErrors.ErrOrderNotFound
		}
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: scan order: %w", op, err)
	}

	const itemsQuery = `
		SELECT i.id, i.kind, i.bouquet_id, i.title, i.quantity, i.price, i.composition
		FROM order_items i
		WHERE i.order_id = $1`

	rows, err := r.db.QueryxContext(ctx, itemsQuery, orderUUID)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: execute statement: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		var bouquetID uuid.NullUUID
		var composition []byte

		if err = rows.Scan(&item.ID, &item.Kind, &bouquetID, &item.Title,
			&item.Quantity, &item.Price, &composition); err != nil {
			r.log.Error(op, logger.Err(err))
			return nil, fmt.Errorf("%s: scan order_items: %w", op, err)
		}

		item.OrderUUID = orderUUID
		if bouquetID.Valid {
			item.BouquetID = bouquetID.UUID
		}
		if len(composition) > 0 {
			if err = json.Unmarshal(composition, &item.Composition); err != nil {
				r.log.Error(op, logger.Err(err))
				return nil, fmt.Errorf("%s: unmarshal composition: %w", op, err)
			}
		}

		order.Items = append(order.Items, item)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return &order, nil
}

// UpdateStatus moves an order along created -> paid -> delivered or to
// canceled. Status transitions are validated by the caller.
func (r *Repository) UpdateStatus(ctx context.Context, orderUUID uuid.UUID, status models.OrderStatus) error {
	const op = "repository.order.UpdateStatus"

	const query = `UPDATE orders SET status = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, int(status), orderUUID)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: execute statement: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return internalErrors.ErrOrderNotFound
	}

	return nil
}
