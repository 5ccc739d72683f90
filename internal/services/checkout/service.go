package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lavandel/flower_storefront/internal/domain/models"
	internalErrors "github.com/lavandel/flower_storefront/internal/lib/errors"
	"github.com/lavandel/flower_storefront/pkg/logger"
)

type orderCreator interface {
	Create(ctx context.Context, order *models.Order) (uuid.UUID, error)
}

type cartProvider interface {
	Cart(ctx context.Context, sessionID uuid.UUID) (*models.Cart, map[uuid.UUID]int64)
	Clear(sessionID uuid.UUID)
}

type bouquetGetter interface {
	BouquetByID(ctx context.Context, bouquetID uuid.UUID, locale models.Locale) (*models.Bouquet, error)
}

// Service turns the accumulated cart into an order snapshot. The cart
// is cleared only after the order transaction commits.
type Service struct {
	log      logger.Logger
	validate *validator.Validate

	orders  orderCreator
	carts   cartProvider
	catalog bouquetGetter
}

func New(log logger.Logger, orders orderCreator, carts cartProvider, catalog bouquetGetter) *Service {
	return &Service{
		log:      log,
		validate: validator.New(),
		orders:   orders,
		carts:    carts,
		catalog:  catalog,
	}
}

func (s *Service) Submit(ctx context.Context, sessionID uuid.UUID, customer models.CustomerInfo, locale models.Locale) (uuid.UUID, error) {
	const op = "services.checkout.Submit"

	if err := s.validate.Struct(customer); err != nil {
		return uuid.Nil, fmt.Errorf("%s: validate customer: %w", op, err)
	}

	cart, livePrices := s.carts.Cart(ctx, sessionID)
	if len(cart.Items) == 0 {
		return uuid.Nil, internalErrors.ErrEmptyCart
	}

	order := s.buildOrder(ctx, cart, livePrices, customer, locale)

	orderUUID, err := s.orders.Create(ctx, order)
	if err != nil {
		s.log.ErrorContext(ctx, op, logger.Err(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	s.carts.Clear(sessionID)

	s.log.InfoContext(ctx, op,
		logger.String("order_uuid", orderUUID.String()),
		logger.Int("items", len(order.Items)),
		logger.Int64("total_price", order.TotalPrice))

	return orderUUID, nil
}

// buildOrder snapshots the cart with effective prices. Titles come
// from the current catalog; a failed lookup keeps the line with a
// generic title rather than blocking submission.
func (s *Service) buildOrder(ctx context.Context, cart *models.Cart, livePrices map[uuid.UUID]int64, customer models.CustomerInfo, locale models.Locale) *models.Order {
	const op = "services.checkout.buildOrder"

	order := &models.Order{
		Customer:  customer,
		Locale:    locale,
		Status:    models.OrderStatusCreated,
		CreatedAt: time.Now().UTC(),
	}

	for _, item := range cart.Items {
		price := models.EffectivePrice(item, livePrices)

		orderItem := models.OrderItem{
			ID:       uuid.New(),
			Kind:     item.Kind,
			Quantity: item.Quantity,
			Price:    price,
		}

		switch item.Kind {
		case models.ItemKindCatalog:
			orderItem.BouquetID = item.BouquetID
			if bouquet, err := s.catalog.BouquetByID(ctx, item.BouquetID, locale); err == nil {
				orderItem.Title = bouquet.Name
			} else {
				s.log.WarnContext(ctx, op,
					logger.String("bouquet_id", item.BouquetID.String()), logger.Err(err))
				orderItem.Title = "bouquet"
			}
		case models.ItemKindCustom:
			orderItem.Title = item.Custom.Name
			if orderItem.Title == "" {
				orderItem.Title = "custom bouquet"
			}
			orderItem.Composition = item.Custom.Flowers
		}

		order.TotalPrice += price * int64(item.Quantity)
		order.Items = append(order.Items, orderItem)
	}

	return order
}
