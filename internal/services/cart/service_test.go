package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lavandel/flower_storefront/internal/domain/models"
	internalErrors "github.com/lavandel/flower_storefront/internal/lib/errors"
	"github.com/lavandel/flower_storefront/pkg/logger"
)

type stubPriceSource struct {
	bouquets map[uuid.UUID]*models.Bouquet
	flowers  map[uuid.UUID]*models.Flower

	bouquetErr error
	pricesErr  error

	bouquetCalls int
	pricesCalls  int
}

func (s *stubPriceSource) BouquetByID(_ context.Context, bouquetID uuid.UUID, _ models.Locale) (*models.Bouquet, error) {
	s.bouquetCalls++
	if s.bouquetErr != nil {
		return nil, s.bouquetErr
	}

	bouquet, ok := s.bouquets[bouquetID]
	if !ok {
		return nil, internalErrors.ErrBouquetNotFound
	}
	return bouquet, nil
}

func (s *stubPriceSource) FlowerByID(_ context.Context, flowerID uuid.UUID, _ models.Locale) (*models.Flower, error) {
	flower, ok := s.flowers[flowerID]
	if !ok {
		return nil, internalErrors.ErrFlowerNotFound
	}
	return flower, nil
}

func (s *stubPriceSource) BouquetPrices(_ context.Context, bouquetIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	s.pricesCalls++
	if s.pricesErr != nil {
		return nil, s.pricesErr
	}

	prices := make(map[uuid.UUID]int64, len(bouquetIDs))
	for _, id := range bouquetIDs {
		if bouquet, ok := s.bouquets[id]; ok {
			prices[id] = bouquet.Price
		}
	}
	return prices, nil
}

func newTestService(prices *stubPriceSource) *Service {
	log := logger.NewSlogLogger(logger.EnvLocal)
	store := NewSessionStore(16, time.Hour)

	return New(log, prices, store, models.LocaleRU)
}

func TestAddProductMergesByIdentity(t *testing.T) {
	ctx := context.Background()
	bouquetID := uuid.New()

	prices := &stubPriceSource{bouquets: map[uuid.UUID]*models.Bouquet{
		bouquetID: {ID: bouquetID, Price: 250050},
	}}
	svc := newTestService(prices)

	sessionID := uuid.New()

	cart, err := svc.AddProduct(ctx, sessionID, bouquetID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	cart, err = svc.AddProduct(ctx, sessionID, bouquetID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 3, cart.Items[0].Quantity)

	// The merge reuses the stored line price, one lookup total.
	require.Equal(t, 1, prices.bouquetCalls)
}

func TestAddProductUnknownBouquet(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(&stubPriceSource{})

	_, err := svc.AddProduct(ctx, uuid.New(), uuid.New(), 1)
	require.ErrorIs(t, err, internalErrors.ErrBouquetNotFound)
}

func TestAddCustomBouquetAlwaysNewLine(t *testing.T) {
	ctx := context.Background()
	flowerID := uuid.New()

	prices := &stubPriceSource{flowers: map[uuid.UUID]*models.Flower{
		flowerID: {ID: flowerID, Name: "rose", Price: 50000},
	}}
	svc := newTestService(prices)

	sessionID := uuid.New()
	custom := models.CustomBouquet{
		Name:    "red roses",
		Flowers: []models.FlowerSelection{{FlowerID: flowerID, Quantity: 5, Color: "red"}},
	}

	cart, err := svc.AddCustomBouquet(ctx, sessionID, custom)
	require.NoError(t, err)

	cart, err = svc.AddCustomBouquet(ctx, sessionID, custom)
	require.NoError(t, err)

	// Identical compositions stay distinct lines.
	require.Len(t, cart.Items, 2)
	require.NotEqual(t, cart.Items[0].ID, cart.Items[1].ID)

	require.Equal(t, models.ItemKindCustom, cart.Items[0].Kind)
	require.Equal(t, int64(250000), cart.Items[0].Price)
	require.Equal(t, "rose", cart.Items[0].Custom.Flowers[0].FlowerName)
}

func TestAddCustomBouquetEmptyComposition(t *testing.T) {
	svc := newTestService(&stubPriceSource{})

	_, err := svc.AddCustomBouquet(context.Background(), uuid.New(), models.CustomBouquet{Name: "empty"})
	require.ErrorIs(t, err, internalErrors.ErrEmptyComposition)
}

func TestUpdateItemQuantity(t *testing.T) {
	ctx := context.Background()
	bouquetID := uuid.New()

	prices := &stubPriceSource{bouquets: map[uuid.UUID]*models.Bouquet{
		bouquetID: {ID: bouquetID, Price: 100000},
	}}
	svc := newTestService(prices)

	sessionID := uuid.New()

	cart, err := svc.AddProduct(ctx, sessionID, bouquetID, 2)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart = svc.UpdateItemQuantity(sessionID, itemID, 5)
	require.Equal(t, 5, cart.Items[0].Quantity)

	// Zero removes the line instead of keeping a dead entry.
	cart = svc.UpdateItemQuantity(sessionID, itemID, 0)
	require.Empty(t, cart.Items)
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	bouquetID := uuid.New()

	prices := &stubPriceSource{bouquets: map[uuid.UUID]*models.Bouquet{
		bouquetID: {ID: bouquetID, Price: 100000},
	}}
	svc := newTestService(prices)

	sessionID := uuid.New()

	_, err := svc.AddProduct(ctx, sessionID, bouquetID, 1)
	require.NoError(t, err)

	cart := svc.RemoveItem(sessionID, uuid.New())
	require.Len(t, cart.Items, 1)
}

func TestCartTotals(t *testing.T) {
	ctx := context.Background()
	bouquetID := uuid.New()
	flowerID := uuid.New()

	prices := &stubPriceSource{
		bouquets: map[uuid.UUID]*models.Bouquet{bouquetID: {ID: bouquetID, Price: 200000}},
		flowers:  map[uuid.UUID]*models.Flower{flowerID: {ID: flowerID, Name: "tulip", Price: 30000}},
	}
	svc := newTestService(prices)

	sessionID := uuid.New()

	_, err := svc.AddProduct(ctx, sessionID, bouquetID, 2)
	require.NoError(t, err)

	_, err = svc.AddCustomBouquet(ctx, sessionID, models.CustomBouquet{
		Flowers: []models.FlowerSelection{{FlowerID: flowerID, Quantity: 3}},
	})
	require.NoError(t, err)

	cart, livePrices := svc.Cart(ctx, sessionID)

	// Two catalog units plus one custom line; inner flower quantities
	// do not count as items.
	require.Equal(t, 3, cart.TotalItems())
	require.Equal(t, int64(2*200000+3*30000), cart.TotalPrice(livePrices))
}

func TestCartLivePricePreferred(t *testing.T) {
	ctx := context.Background()
	bouquetID := uuid.New()

	prices := &stubPriceSource{bouquets: map[uuid.UUID]*models.Bouquet{
		bouquetID: {ID: bouquetID, Price: 100000},
	}}
	svc := newTestService(prices)

	sessionID := uuid.New()

	_, err := svc.AddProduct(ctx, sessionID, bouquetID, 1)
	require.NoError(t, err)

	// The catalog price changes after the line was captured.
	prices.bouquets[bouquetID].Price = 150000

	cart, livePrices := svc.Cart(ctx, sessionID)

	require.Equal(t, int64(100000), cart.Items[0].Price)
	require.Equal(t, int64(150000), models.EffectivePrice(cart.Items[0], livePrices))
	require.Equal(t, int64(150000), cart.TotalPrice(livePrices))
}

func TestCartDegradesOnPriceError(t *testing.T) {
	ctx := context.Background()
	bouquetID := uuid.New()

	prices := &stubPriceSource{bouquets: map[uuid.UUID]*models.Bouquet{
		bouquetID: {ID: bouquetID, Price: 100000},
	}}
	svc := newTestService(prices)

	sessionID := uuid.New()

	_, err := svc.AddProduct(ctx, sessionID, bouquetID, 1)
	require.NoError(t, err)

	prices.pricesErr = errors.New("catalog unavailable")

	cart, livePrices := svc.Cart(ctx, sessionID)

	require.Nil(t, livePrices)
	require.Equal(t, int64(100000), cart.TotalPrice(livePrices))
}

func TestCartReturnsDetachedSnapshot(t *testing.T) {
	ctx := context.Background()
	bouquetID := uuid.New()

	prices := &stubPriceSource{bouquets: map[uuid.UUID]*models.Bouquet{
		bouquetID: {ID: bouquetID, Price: 100000},
	}}
	svc := newTestService(prices)

	sessionID := uuid.New()

	first, err := svc.AddProduct(ctx, sessionID, bouquetID, 1)
	require.NoError(t, err)

	_, err = svc.AddProduct(ctx, sessionID, bouquetID, 2)
	require.NoError(t, err)

	// The earlier return value does not observe the later merge.
	require.Equal(t, 1, first.Items[0].Quantity)

	// Writing through a returned cart never reaches the stored one.
	first.Items[0].Quantity = 99

	cart, _ := svc.Cart(ctx, sessionID)
	require.Equal(t, 3, cart.Items[0].Quantity)
}

func TestCartConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	bouquetID := uuid.New()

	prices := &stubPriceSource{bouquets: map[uuid.UUID]*models.Bouquet{
		bouquetID: {ID: bouquetID, Price: 100000},
	}}
	svc := newTestService(prices)

	sessionID := uuid.New()

	_, err := svc.AddProduct(ctx, sessionID, bouquetID, 1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_, _ = svc.AddProduct(ctx, sessionID, bouquetID, 1)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			cart, livePrices := svc.Cart(ctx, sessionID)
			_ = cart.TotalItems()
			_ = cart.TotalPrice(livePrices)
		}
	}()

	wg.Wait()

	cart, _ := svc.Cart(ctx, sessionID)
	require.Equal(t, 201, cart.TotalItems())
}

func TestOpenClose(t *testing.T) {
	svc := newTestService(&stubPriceSource{})
	sessionID := uuid.New()

	cart := svc.OpenCart(sessionID)
	require.True(t, cart.IsOpen)

	cart = svc.CloseCart(sessionID)
	require.False(t, cart.IsOpen)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	bouquetID := uuid.New()

	prices := &stubPriceSource{bouquets: map[uuid.UUID]*models.Bouquet{
		bouquetID: {ID: bouquetID, Price: 100000},
	}}
	svc := newTestService(prices)

	sessionID := uuid.New()

	_, err := svc.AddProduct(ctx, sessionID, bouquetID, 1)
	require.NoError(t, err)

	svc.Clear(sessionID)

	cart, _ := svc.Cart(ctx, sessionID)
	require.Empty(t, cart.Items)
}
