package admin

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lavandel/flower_storefront/internal/cache"
	"github.com/lavandel/flower_storefront/internal/domain/models"
	internalErrors "github.com/lavandel/flower_storefront/internal/lib/errors"
	"github.com/lavandel/flower_storefront/pkg/logger"
)

type stubWriter struct {
	createdID uuid.UUID
}

func (s *stubWriter) CreateBouquet(_ context.Context, _ *models.Bouquet, _ []models.BouquetTranslation) (uuid.UUID, error) {
	return s.createdID, nil
}

func (s *stubWriter) UpdateBouquet(_ context.Context, _ *models.Bouquet, _ []models.BouquetTranslation) error {
	return nil
}

func (s *stubWriter) DeleteBouquet(_ context.Context, _ uuid.UUID) error { return nil }

func (s *stubWriter) UpdateFlower(_ context.Context, _ *models.Flower, _ []models.FlowerTranslation) error {
	return nil
}

func (s *stubWriter) UpdateCategory(_ context.Context, _ *models.Category, _ []models.CategoryTranslation) error {
	return nil
}

func (s *stubWriter) ReorderMedia(_ context.Context, _ uuid.UUID, _ []uuid.UUID) error { return nil }

func (s *stubWriter) SetThumbnail(_ context.Context, _, _ uuid.UUID) error { return nil }

type stubOrderStore struct {
	orders map[uuid.UUID]*models.Order

	updated models.OrderStatus
}

func (s *stubOrderStore) Order(_ context.Context, orderUUID uuid.UUID) (*models.Order, error) {
	order, ok := s.orders[orderUUID]
	if !ok {
		return nil, internalErrors.ErrOrderNotFound
	}
	return order, nil
}

func (s *stubOrderStore) UpdateStatus(_ context.Context, _ uuid.UUID, status models.OrderStatus) error {
	s.updated = status
	return nil
}

func newTestService(t *testing.T) (*Service, *cache.Cache, chan models.Event) {
	t.Helper()

	log := logger.NewSlogLogger(logger.EnvLocal)
	cacheLayer := cache.New(cache.NewMemoryStore(), log)
	events := make(chan models.Event, 8)

	svc := New(log, &stubWriter{createdID: uuid.New()}, &stubOrderStore{}, cacheLayer, nil, events)

	return svc, cacheLayer, events
}

func prime(t *testing.T, cacheLayer *cache.Cache, keys ...string) {
	t.Helper()

	ctx := context.Background()
	for _, key := range keys {
		require.NoError(t, cacheLayer.Set(ctx, key, "cached", time.Hour))
	}
}

func cached(t *testing.T, cacheLayer *cache.Cache, key string) bool {
	t.Helper()

	var dest string
	hit, err := cacheLayer.Get(context.Background(), key, &dest)
	require.NoError(t, err)

	return hit
}

func TestUpdateBouquetInvalidation(t *testing.T) {
	ctx := context.Background()

	svc, cacheLayer, events := newTestService(t)

	bouquetID := uuid.New()
	otherID := uuid.New()
	categoryID := uuid.New()

	stale := []string{
		fmt.Sprintf("bouquet:%s:ru", bouquetID),
		fmt.Sprintf("bouquet:%s:en", bouquetID),
		fmt.Sprintf("related:%s:ru", bouquetID),
		"bouquets:ru",
		"bouquets:en",
		"featured:bouquets:ru",
		fmt.Sprintf("category:%s:bouquets:ru", categoryID),
	}
	fresh := []string{
		fmt.Sprintf("bouquet:%s:ru", otherID),
		"categories:ru",
		"flowers:ru",
	}

	prime(t, cacheLayer, append(stale, fresh...)...)

	err := svc.UpdateBouquet(ctx, &models.Bouquet{ID: bouquetID, CategoryID: categoryID}, nil)
	require.NoError(t, err)

	for _, key := range stale {
		require.False(t, cached(t, cacheLayer, key), "expected %s to be invalidated", key)
	}
	for _, key := range fresh {
		require.True(t, cached(t, cacheLayer, key), "expected %s to survive", key)
	}

	event := <-events
	require.Equal(t, "catalog.bouquet.updated", event.EventType())
}

func TestUpdateFlowerInvalidation(t *testing.T) {
	ctx := context.Background()

	svc, cacheLayer, events := newTestService(t)

	flowerID := uuid.New()

	prime(t, cacheLayer,
		fmt.Sprintf("flower:%s:ru", flowerID),
		"flowers:en",
		"bouquets:ru",
	)

	err := svc.UpdateFlower(ctx, &models.Flower{ID: flowerID}, nil)
	require.NoError(t, err)

	require.False(t, cached(t, cacheLayer, fmt.Sprintf("flower:%s:ru", flowerID)))
	require.False(t, cached(t, cacheLayer, "flowers:en"))

	// Bouquet listings do not depend on flower rows.
	require.True(t, cached(t, cacheLayer, "bouquets:ru"))

	event := <-events
	require.Equal(t, "catalog.flower.updated", event.EventType())
}

func TestDeleteBouquetDropsAllCategoryListings(t *testing.T) {
	ctx := context.Background()

	svc, cacheLayer, _ := newTestService(t)

	listingRU := fmt.Sprintf("category:%s:bouquets:ru", uuid.New())
	listingEN := fmt.Sprintf("category:%s:bouquets:en", uuid.New())

	prime(t, cacheLayer, listingRU, listingEN, "categories:ru")

	require.NoError(t, svc.DeleteBouquet(ctx, uuid.New()))

	// The category is unknown after a delete, every listing goes; the
	// category entities themselves are untouched.
	require.False(t, cached(t, cacheLayer, listingRU))
	require.False(t, cached(t, cacheLayer, listingEN))
	require.True(t, cached(t, cacheLayer, "categories:ru"))
}

func TestSetThumbnailInvalidatesListings(t *testing.T) {
	ctx := context.Background()

	svc, cacheLayer, events := newTestService(t)

	bouquetID := uuid.New()

	prime(t, cacheLayer,
		fmt.Sprintf("bouquet:%s:ru", bouquetID),
		"bouquets:ru",
		"featured:bouquets:kk",
	)

	require.NoError(t, svc.SetThumbnail(ctx, bouquetID, uuid.New()))

	// Listings embed the thumbnail url.
	require.False(t, cached(t, cacheLayer, fmt.Sprintf("bouquet:%s:ru", bouquetID)))
	require.False(t, cached(t, cacheLayer, "bouquets:ru"))
	require.False(t, cached(t, cacheLayer, "featured:bouquets:kk"))

	event := <-events
	require.Equal(t, "catalog.bouquet.thumbnail_changed", event.EventType())
}

func TestUpdateOrderStatusTransitions(t *testing.T) {
	ctx := context.Background()

	log := logger.NewSlogLogger(logger.EnvLocal)
	cacheLayer := cache.New(cache.NewMemoryStore(), log)

	orderUUID := uuid.New()
	orders := &stubOrderStore{orders: map[uuid.UUID]*models.Order{
		orderUUID: {OrderUUID: orderUUID, Status: models.OrderStatusCreated},
	}}

	svc := New(log, &stubWriter{}, orders, cacheLayer, nil, nil)

	// created -> delivered skips paid.
	err := svc.UpdateOrderStatus(ctx, orderUUID, models.OrderStatusDelivered)
	require.ErrorIs(t, err, internalErrors.ErrInvalidOrderStatus)

	require.NoError(t, svc.UpdateOrderStatus(ctx, orderUUID, models.OrderStatusPaid))
	require.Equal(t, models.OrderStatusPaid, orders.updated)

	err = svc.UpdateOrderStatus(ctx, uuid.New(), models.OrderStatusPaid)
	require.ErrorIs(t, err, internalErrors.ErrOrderNotFound)
}
