package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lavandel/flower_storefront/internal/domain/models"
	internalErrors "github.com/lavandel/flower_storefront/internal/lib/errors"
	"github.com/lavandel/flower_storefront/pkg/logger"
)

type stubOrders struct {
	created   *models.Order
	createErr error
	orderUUID uuid.UUID
}

func (s *stubOrders) Create(_ context.Context, order *models.Order) (uuid.UUID, error) {
	if s.createErr != nil {
		return uuid.Nil, s.createErr
	}

	s.created = order
	return s.orderUUID, nil
}

type stubCarts struct {
	cart       *models.Cart
	livePrices map[uuid.UUID]int64
	cleared    bool
}

func (s *stubCarts) Cart(_ context.Context, _ uuid.UUID) (*models.Cart, map[uuid.UUID]int64) {
	return s.cart, s.livePrices
}

func (s *stubCarts) Clear(_ uuid.UUID) {
	s.cleared = true
}

type stubCatalog struct {
	bouquets map[uuid.UUID]*models.Bouquet
}

func (s *stubCatalog) BouquetByID(_ context.Context, bouquetID uuid.UUID, _ models.Locale) (*models.Bouquet, error) {
	bouquet, ok := s.bouquets[bouquetID]
	if !ok {
		return nil, internalErrors.ErrBouquetNotFound
	}
	return bouquet, nil
}

func validCustomer() models.CustomerInfo {
	return models.CustomerInfo{
		Name:    "Aigerim",
		Email:   "aigerim@example.com",
		Phone:   "+77001234567",
		Address: "Almaty, Dostyk ave 1",
	}
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	log := logger.NewSlogLogger(logger.EnvLocal)

	bouquetID := uuid.New()
	flowerID := uuid.New()

	orders := &stubOrders{orderUUID: uuid.New()}
	carts := &stubCarts{
		cart: &models.Cart{Items: []models.CartItem{
			{ID: uuid.New(), Kind: models.ItemKindCatalog, Quantity: 2, Price: 100000, BouquetID: bouquetID},
			{ID: uuid.New(), Kind: models.ItemKindCustom, Quantity: 1, Price: 80000, Custom: &models.CustomBouquet{
				Name:    "spring mix",
				Flowers: []models.FlowerSelection{{FlowerID: flowerID, Quantity: 4, FlowerName: "tulip"}},
			}},
		}},
		livePrices: map[uuid.UUID]int64{bouquetID: 120000},
	}
	catalog := &stubCatalog{bouquets: map[uuid.UUID]*models.Bouquet{
		bouquetID: {ID: bouquetID, Name: "Red Roses", Price: 120000},
	}}

	svc := New(log, orders, carts, catalog)

	orderUUID, err := svc.Submit(ctx, uuid.New(), validCustomer(), models.LocaleEN)
	require.NoError(t, err)
	require.Equal(t, orders.orderUUID, orderUUID)
	require.True(t, carts.cleared)

	order := orders.created
	require.Len(t, order.Items, 2)
	require.Equal(t, models.OrderStatusCreated, order.Status)

	// The catalog line snapshots the live price, not the stored one.
	require.Equal(t, int64(120000), order.Items[0].Price)
	require.Equal(t, "Red Roses", order.Items[0].Title)

	require.Equal(t, "spring mix", order.Items[1].Title)
	require.Equal(t, "tulip", order.Items[1].Composition[0].FlowerName)

	require.Equal(t, int64(2*120000+80000), order.TotalPrice)
}

func TestSubmitInvalidCustomer(t *testing.T) {
	log := logger.NewSlogLogger(logger.EnvLocal)

	orders := &stubOrders{}
	carts := &stubCarts{cart: &models.Cart{Items: []models.CartItem{{Quantity: 1}}}}

	svc := New(log, orders, carts, &stubCatalog{})

	_, err := svc.Submit(context.Background(), uuid.New(), models.CustomerInfo{Name: "A"}, models.LocaleRU)
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)

	require.Nil(t, orders.created)
	require.False(t, carts.cleared)
}

func TestSubmitEmptyCart(t *testing.T) {
	log := logger.NewSlogLogger(logger.EnvLocal)

	svc := New(log, &stubOrders{}, &stubCarts{cart: &models.Cart{}}, &stubCatalog{})

	_, err := svc.Submit(context.Background(), uuid.New(), validCustomer(), models.LocaleRU)
	require.ErrorIs(t, err, internalErrors.ErrEmptyCart)
}

func TestSubmitCreateFailureKeepsCart(t *testing.T) {
	log := logger.NewSlogLogger(logger.EnvLocal)

	orders := &stubOrders{createErr: errors.New("serialization failure")}
	carts := &stubCarts{cart: &models.Cart{Items: []models.CartItem{
		{ID: uuid.New(), Kind: models.ItemKindCatalog, Quantity: 1, Price: 50000, BouquetID: uuid.New()},
	}}}

	svc := New(log, orders, carts, &stubCatalog{})

	_, err := svc.Submit(context.Background(), uuid.New(), validCustomer(), models.LocaleRU)
	require.Error(t, err)
	require.False(t, carts.cleared)
}

func TestSubmitTitleFallback(t *testing.T) {
	log := logger.NewSlogLogger(logger.EnvLocal)

	orders := &stubOrders{orderUUID: uuid.New()}
	carts := &stubCarts{cart: &models.Cart{Items: []models.CartItem{
		{ID: uuid.New(), Kind: models.ItemKindCatalog, Quantity: 1, Price: 50000, BouquetID: uuid.New()},
	}}}

	// The bouquet disappeared from the catalog between add and checkout.
	svc := New(log, orders, carts, &stubCatalog{})

	_, err := svc.Submit(context.Background(), uuid.New(), validCustomer(), models.LocaleRU)
	require.NoError(t, err)
	require.Equal(t, "bouquet", orders.created.Items[0].Title)
}
