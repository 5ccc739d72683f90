package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lavandel/flower_storefront/internal/cache"
	"github.com/lavandel/flower_storefront/internal/config"
	"github.com/lavandel/flower_storefront/internal/domain/models"
	"github.com/lavandel/flower_storefront/pkg/logger"
)

type catalogRepository interface {
	Bouquets(ctx context.Context, locale models.Locale) ([]models.Bouquet, error)
	BouquetByID(ctx context.Context, bouquetID uuid.UUID, locale models.Locale) (*models.Bouquet, error)
	BouquetsByCategory(ctx context.Context, categoryID uuid.UUID, locale models.Locale) ([]models.Bouquet, error)
	FeaturedBouquets(ctx context.Context, locale models.Locale) ([]models.Bouquet, error)
	RelatedBouquets(ctx context.Context, bouquetID uuid.UUID, categoryID uuid.NullUUID, tagIDs []uuid.UUID, locale models.Locale) ([]models.Bouquet, error)
	Categories(ctx context.Context, locale models.Locale) ([]models.Category, error)
	CategoryByID(ctx context.Context, categoryID uuid.UUID, locale models.Locale) (*models.Category, error)
	Flowers(ctx context.Context, locale models.Locale) ([]models.Flower, error)
	FlowerByID(ctx context.Context, flowerID uuid.UUID, locale models.Locale) (*models.Flower, error)
}

// Service serves catalog reads through the cache. Every method binds a
// namespaced key to the matching repository call; the TTL tier follows
// entity volatility.
type Service struct {
	log   logger.Logger
	cache *cache.Cache
	repo  catalogRepository
	ttl   config.CacheConfig

	defaultLocale models.Locale
}

func New(
	log logger.Logger,
	cacheLayer *cache.Cache,
	repo catalogRepository,
	ttl config.CacheConfig,
	defaultLocale models.Locale,
) *Service {
	return &Service{
		log:           log,
		cache:         cacheLayer,
		repo:          repo,
		ttl:           ttl,
		defaultLocale: defaultLocale,
	}
}

func (s *Service) Bouquets(ctx context.Context, locale models.Locale) ([]models.Bouquet, error) {
	key := fmt.Sprintf("bouquets:%s", locale)

	return cache.Fetch(ctx, s.cache, key, s.ttl.ListingTTL, func(ctx context.Context) ([]models.Bouquet, error) {
		return s.repo.Bouquets(ctx, locale)
	})
}

func (s *Service) BouquetByID(ctx context.Context, bouquetID uuid.UUID, locale models.Locale) (*models.Bouquet, error) {
	key := fmt.Sprintf("bouquet:%s:%s", bouquetID, locale)

	return cache.Fetch(ctx, s.cache, key, s.ttl.BouquetTTL, func(ctx context.Context) (*models.Bouquet, error) {
		return s.repo.BouquetByID(ctx, bouquetID, locale)
	})
}

func (s *Service) BouquetsByCategory(ctx context.Context, categoryID uuid.UUID, locale models.Locale) ([]models.Bouquet, error) {
	key := fmt.Sprintf("category:%s:bouquets:%s", categoryID, locale)

	return cache.Fetch(ctx, s.cache, key, s.ttl.ListingTTL, func(ctx context.Context) ([]models.Bouquet, error) {
		return s.repo.BouquetsByCategory(ctx, categoryID, locale)
	})
}

func (s *Service) FeaturedBouquets(ctx context.Context, locale models.Locale) ([]models.Bouquet, error) {
	key := fmt.Sprintf("featured:bouquets:%s", locale)

	return cache.Fetch(ctx, s.cache, key, s.ttl.FeaturedTTL, func(ctx context.Context) ([]models.Bouquet, error) {
		return s.repo.FeaturedBouquets(ctx, locale)
	})
}

func (s *Service) RelatedBouquets(ctx context.Context, bouquetID uuid.UUID, categoryID uuid.NullUUID, tagIDs []uuid.UUID, locale models.Locale) ([]models.Bouquet, error) {
	key := relatedKey(bouquetID, categoryID, tagIDs, locale)

	return cache.Fetch(ctx, s.cache, key, s.ttl.ListingTTL, func(ctx context.Context) ([]models.Bouquet, error) {
		return s.repo.RelatedBouquets(ctx, bouquetID, categoryID, tagIDs, locale)
	})
}

// relatedKey folds the optional hints into the key so differently
// hinted lookups never share an entry. The hint suffix stays inside the
// related:<id>: namespace, pattern invalidation covers every variant.
func relatedKey(bouquetID uuid.UUID, categoryID uuid.NullUUID, tagIDs []uuid.UUID, locale models.Locale) string {
	key := fmt.Sprintf("related:%s:%s", bouquetID, locale)

	if categoryID.Valid {
		key += ":cat=" + categoryID.UUID.String()
	}
	for _, tagID := range tagIDs {
		key += ":tag=" + tagID.String()
	}

	return key
}

func (s *Service) Categories(ctx context.Context, locale models.Locale) ([]models.Category, error) {
	key := fmt.Sprintf("categories:%s", locale)

	return cache.Fetch(ctx, s.cache, key, s.ttl.CategoriesTTL, func(ctx context.Context) ([]models.Category, error) {
		return s.repo.Categories(ctx, locale)
	})
}

func (s *Service) CategoryByID(ctx context.Context, categoryID uuid.UUID, locale models.Locale) (*models.Category, error) {
	key := fmt.Sprintf("category:%s:%s", categoryID, locale)

	return cache.Fetch(ctx, s.cache, key, s.ttl.CategoriesTTL, func(ctx context.Context) (*models.Category, error) {
		return s.repo.CategoryByID(ctx, categoryID, locale)
	})
}

func (s *Service) Flowers(ctx context.Context, locale models.Locale) ([]models.Flower, error) {
	key := fmt.Sprintf("flowers:%s", locale)

	return cache.Fetch(ctx, s.cache, key, s.ttl.FlowersTTL, func(ctx context.Context) ([]models.Flower, error) {
		return s.repo.Flowers(ctx, locale)
	})
}

func (s *Service) FlowerByID(ctx context.Context, flowerID uuid.UUID, locale models.Locale) (*models.Flower, error) {
	key := fmt.Sprintf("flower:%s:%s", flowerID, locale)

	return cache.Fetch(ctx, s.cache, key, s.ttl.FlowersTTL, func(ctx context.Context) (*models.Flower, error) {
		return s.repo.FlowerByID(ctx, flowerID, locale)
	})
}

// BouquetPrices resolves current unit prices for the cart's live price
// map. A bouquet that cannot be resolved is skipped: the cart falls
// back to the price stored on the line.
func (s *Service) BouquetPrices(ctx context.Context, bouquetIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	const op = "services.catalog.BouquetPrices"

	prices := make(map[uuid.UUID]int64, len(bouquetIDs))

	for _, bouquetID := range bouquetIDs {
		bouquet, err := s.BouquetByID(ctx, bouquetID, s.defaultLocale)
		if err != nil {
			s.log.WarnContext(ctx, op,
				logger.String("bouquet_id", bouquetID.String()), logger.Err(err))
			continue
		}
		prices[bouquet.ID] = bouquet.Price
	}

	return prices, nil
}
