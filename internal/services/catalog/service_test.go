package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lavandel/flower_storefront/internal/cache"
	"github.com/lavandel/flower_storefront/internal/config"
	"github.com/lavandel/flower_storefront/internal/domain/models"
	internalErrors "github.com/lavandel/flower_storefront/internal/lib/errors"
	"github.com/lavandel/flower_storefront/pkg/logger"
)

type stubRepository struct {
	bouquets map[uuid.UUID]*models.Bouquet

	listCalls    int
	bouquetCalls int
	relatedCalls int

	listErr error
}

func (s *stubRepository) Bouquets(_ context.Context, _ models.Locale) ([]models.Bouquet, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}

	var out []models.Bouquet
	for _, b := range s.bouquets {
		out = append(out, *b)
	}
	return out, nil
}

func (s *stubRepository) BouquetsByCategory(_ context.Context, _ uuid.UUID, _ models.Locale) ([]models.Bouquet, error) {
	return nil, nil
}

func (s *stubRepository) FeaturedBouquets(_ context.Context, _ models.Locale) ([]models.Bouquet, error) {
	return nil, nil
}

func (s *stubRepository) RelatedBouquets(_ context.Context, _ uuid.UUID, _ uuid.NullUUID, _ []uuid.UUID, _ models.Locale) ([]models.Bouquet, error) {
	s.relatedCalls++
	return nil, nil
}

func (s *stubRepository) BouquetByID(_ context.Context, bouquetID uuid.UUID, _ models.Locale) (*models.Bouquet, error) {
	s.bouquetCalls++

	bouquet, ok := s.bouquets[bouquetID]
	if !ok {
		return nil, internalErrors.ErrBouquetNotFound
	}
	return bouquet, nil
}

func (s *stubRepository) Categories(_ context.Context, _ models.Locale) ([]models.Category, error) {
	return nil, nil
}

func (s *stubRepository) CategoryByID(_ context.Context, _ uuid.UUID, _ models.Locale) (*models.Category, error) {
	return nil, internalErrors.ErrCategoryNotFound
}

func (s *stubRepository) Flowers(_ context.Context, _ models.Locale) ([]models.Flower, error) {
	return nil, nil
}

func (s *stubRepository) FlowerByID(_ context.Context, _ uuid.UUID, _ models.Locale) (*models.Flower, error) {
	return nil, internalErrors.ErrFlowerNotFound
}

func testTTL() config.CacheConfig {
	return config.CacheConfig{
		CategoriesTTL: 24 * time.Hour,
		FlowersTTL:    24 * time.Hour,
		BouquetTTL:    2 * time.Hour,
		FeaturedTTL:   3 * time.Hour,
		ListingTTL:    time.Hour,
	}
}

func newTestService(repo *stubRepository) *Service {
	log := logger.NewSlogLogger(logger.EnvLocal)
	cacheLayer := cache.New(cache.NewMemoryStore(), log)

	return New(log, cacheLayer, repo, testTTL(), models.LocaleRU)
}

func TestBouquetsReadThrough(t *testing.T) {
	ctx := context.Background()
	bouquetID := uuid.New()

	repo := &stubRepository{bouquets: map[uuid.UUID]*models.Bouquet{
		bouquetID: {ID: bouquetID, Slug: "red-roses", Price: 250050},
	}}
	svc := newTestService(repo)

	first, err := svc.Bouquets(ctx, models.LocaleEN)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.Bouquets(ctx, models.LocaleEN)
	require.NoError(t, err)
	require.Equal(t, first, second)

	// The second read is served from the cache.
	require.Equal(t, 1, repo.listCalls)

	// A different locale is a different key.
	_, err = svc.Bouquets(ctx, models.LocaleRU)
	require.NoError(t, err)
	require.Equal(t, 2, repo.listCalls)
}

func TestBouquetsErrorNotCached(t *testing.T) {
	ctx := context.Background()

	repo := &stubRepository{listErr: errors.New("connection refused")}
	svc := newTestService(repo)

	_, err := svc.Bouquets(ctx, models.LocaleRU)
	require.Error(t, err)

	// The failure left nothing behind, the next call retries the source.
	repo.listErr = nil
	repo.bouquets = map[uuid.UUID]*models.Bouquet{}

	_, err = svc.Bouquets(ctx, models.LocaleRU)
	require.NoError(t, err)
	require.Equal(t, 2, repo.listCalls)
}

func TestBouquetByIDNotFound(t *testing.T) {
	repo := &stubRepository{}
	svc := newTestService(repo)

	_, err := svc.BouquetByID(context.Background(), uuid.New(), models.LocaleRU)
	require.ErrorIs(t, err, internalErrors.ErrBouquetNotFound)
}

func TestRelatedBouquetsKeyedByHints(t *testing.T) {
	ctx := context.Background()

	repo := &stubRepository{}
	svc := newTestService(repo)

	bouquetID := uuid.New()
	categoryID := uuid.NullUUID{UUID: uuid.New(), Valid: true}

	_, err := svc.RelatedBouquets(ctx, bouquetID, uuid.NullUUID{}, nil, models.LocaleRU)
	require.NoError(t, err)

	_, err = svc.RelatedBouquets(ctx, bouquetID, uuid.NullUUID{}, nil, models.LocaleRU)
	require.NoError(t, err)
	require.Equal(t, 1, repo.relatedCalls)

	// A category hint is a separate lookup, not a shared entry.
	_, err = svc.RelatedBouquets(ctx, bouquetID, categoryID, nil, models.LocaleRU)
	require.NoError(t, err)
	require.Equal(t, 2, repo.relatedCalls)

	// So is a tag filter.
	_, err = svc.RelatedBouquets(ctx, bouquetID, categoryID, []uuid.UUID{uuid.New()}, models.LocaleRU)
	require.NoError(t, err)
	require.Equal(t, 3, repo.relatedCalls)
}

func TestBouquetPrices(t *testing.T) {
	ctx := context.Background()
	knownID := uuid.New()

	repo := &stubRepository{bouquets: map[uuid.UUID]*models.Bouquet{
		knownID: {ID: knownID, Price: 175000},
	}}
	svc := newTestService(repo)

	prices, err := svc.BouquetPrices(ctx, []uuid.UUID{knownID, uuid.New()})
	require.NoError(t, err)

	// Unresolvable ids are skipped, not fatal.
	require.Len(t, prices, 1)
	require.Equal(t, int64(175000), prices[knownID])
}
