package admin

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lavandel/flower_storefront/internal/cache"
	"github.com/lavandel/flower_storefront/internal/domain/models"
	internalErrors "github.com/lavandel/flower_storefront/internal/lib/errors"
	"github.com/lavandel/flower_storefront/pkg/logger"
)

type catalogWriter interface {
	CreateBouquet(ctx context.Context, bouquet *models.Bouquet, translations []models.BouquetTranslation) (uuid.UUID, error)
	UpdateBouquet(ctx context.Context, bouquet *models.Bouquet, translations []models.BouquetTranslation) error
	DeleteBouquet(ctx context.Context, bouquetID uuid.UUID) error
	UpdateFlower(ctx context.Context, flower *models.Flower, translations []models.FlowerTranslation) error
	UpdateCategory(ctx context.Context, category *models.Category, translations []models.CategoryTranslation) error
	ReorderMedia(ctx context.Context, bouquetID uuid.UUID, mediaIDs []uuid.UUID) error
	SetThumbnail(ctx context.Context, bouquetID, mediaID uuid.UUID) error
}

type orderStore interface {
	Order(ctx context.Context, orderUUID uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderUUID uuid.UUID, status models.OrderStatus) error
}

// fanout propagates invalidation patterns to peer instances. Nil when
// the storefront runs on the in-process store alone.
type fanout interface {
	Publish(ctx context.Context, pattern string) error
}

// Service is the back-office write path. Every successful write drops
// the entity's detail key plus any list keys that may embed it, then
// announces the change on the catalog events topic.
type Service struct {
	log    logger.Logger
	repo   catalogWriter
	orders orderStore
	cache  *cache.Cache
	fanout fanout
	events chan<- models.Event
}

func New(log logger.Logger, repo catalogWriter, orders orderStore, cacheLayer *cache.Cache, fanoutPublisher fanout, events chan<- models.Event) *Service {
	return &Service{
		log:    log,
		repo:   repo,
		orders: orders,
		cache:  cacheLayer,
		fanout: fanoutPublisher,
		events: events,
	}
}

func (s *Service) CreateBouquet(ctx context.Context, bouquet *models.Bouquet, translations []models.BouquetTranslation) (uuid.UUID, error) {
	const op = "services.admin.CreateBouquet"

	bouquetID, err := s.repo.CreateBouquet(ctx, bouquet, translations)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, bouquetListPatterns(bouquet.CategoryID)...)
	s.emit(ctx, &models.CatalogChangedEvent{EntityUUID: bouquetID, Entity: "bouquet", Action: "created"})

	return bouquetID, nil
}

func (s *Service) UpdateBouquet(ctx context.Context, bouquet *models.Bouquet, translations []models.BouquetTranslation) error {
	const op = "services.admin.UpdateBouquet"

	if err := s.repo.UpdateBouquet(ctx, bouquet, translations); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	patterns := append(bouquetDetailPatterns(bouquet.ID), bouquetListPatterns(bouquet.CategoryID)...)
	s.invalidate(ctx, patterns...)
	s.emit(ctx, &models.CatalogChangedEvent{EntityUUID: bouquet.ID, Entity: "bouquet", Action: "updated"})

	return nil
}

func (s *Service) DeleteBouquet(ctx context.Context, bouquetID uuid.UUID) error {
	const op = "services.admin.DeleteBouquet"

	if err := s.repo.DeleteBouquet(ctx, bouquetID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// The category is unknown after the delete, drop every category
	// listing instead.
	patterns := append(bouquetDetailPatterns(bouquetID), "bouquets:*", "featured:bouquets:*", "category:*:bouquets:*", "related:*")
	s.invalidate(ctx, patterns...)
	s.emit(ctx, &models.CatalogChangedEvent{EntityUUID: bouquetID, Entity: "bouquet", Action: "deleted"})

	return nil
}

func (s *Service) UpdateFlower(ctx context.Context, flower *models.Flower, translations []models.FlowerTranslation) error {
	const op = "services.admin.UpdateFlower"

	if err := s.repo.UpdateFlower(ctx, flower, translations); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, fmt.Sprintf("flower:%s:*", flower.ID), "flowers:*")
	s.emit(ctx, &models.CatalogChangedEvent{EntityUUID: flower.ID, Entity: "flower", Action: "updated"})

	return nil
}

func (s *Service) UpdateCategory(ctx context.Context, category *models.Category, translations []models.CategoryTranslation) error {
	const op = "services.admin.UpdateCategory"

	if err := s.repo.UpdateCategory(ctx, category, translations); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, fmt.Sprintf("category:%s:*", category.ID), "categories:*")
	s.emit(ctx, &models.CatalogChangedEvent{EntityUUID: category.ID, Entity: "category", Action: "updated"})

	return nil
}

func (s *Service) ReorderMedia(ctx context.Context, bouquetID uuid.UUID, mediaIDs []uuid.UUID) error {
	const op = "services.admin.ReorderMedia"

	if err := s.repo.ReorderMedia(ctx, bouquetID, mediaIDs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateMediaChange(ctx, bouquetID, "media_reordered")

	return nil
}

func (s *Service) SetThumbnail(ctx context.Context, bouquetID, mediaID uuid.UUID) error {
	const op = "services.admin.SetThumbnail"

	if err := s.repo.SetThumbnail(ctx, bouquetID, mediaID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateMediaChange(ctx, bouquetID, "thumbnail_changed")

	return nil
}

func (s *Service) invalidateMediaChange(ctx context.Context, bouquetID uuid.UUID, action string) {
	// List keys embed the thumbnail, drop them along with the detail.
	patterns := append(bouquetDetailPatterns(bouquetID), "bouquets:*", "featured:bouquets:*", "category:*:bouquets:*")
	s.invalidate(ctx, patterns...)
	s.emit(ctx, &models.CatalogChangedEvent{EntityUUID: bouquetID, Entity: "bouquet", Action: action})
}

func bouquetDetailPatterns(bouquetID uuid.UUID) []string {
	return []string{
		fmt.Sprintf("bouquet:%s:*", bouquetID),
		fmt.Sprintf("related:%s:*", bouquetID),
	}
}

func bouquetListPatterns(categoryID uuid.UUID) []string {
	return []string{
		"bouquets:*",
		"featured:bouquets:*",
		fmt.Sprintf("category:%s:bouquets:*", categoryID),
		"related:*",
	}
}

func (s *Service) Order(ctx context.Context, orderUUID uuid.UUID) (*models.Order, error) {
	const op = "services.admin.Order"

	order, err := s.orders.Order(ctx, orderUUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return order, nil
}

// statusTransitions maps each status to the set it may move to. Orders
// never leave delivered or canceled.
var statusTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusCreated: {models.OrderStatusPaid, models.OrderStatusCanceled},
	models.OrderStatusPaid:    {models.OrderStatusDelivered, models.OrderStatusCanceled},
}

func (s *Service) UpdateOrderStatus(ctx context.Context, orderUUID uuid.UUID, status models.OrderStatus) error {
	const op = "services.admin.UpdateOrderStatus"

	order, err := s.orders.Order(ctx, orderUUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	allowed := false
	for _, next := range statusTransitions[order.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return internalErrors.ErrInvalidOrderStatus
	}

	if err = s.orders.UpdateStatus(ctx, orderUUID, status); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.InfoContext(ctx, op,
		logger.String("order_uuid", orderUUID.String()),
		logger.String("from", order.Status.String()),
		logger.String("to", status.String()))

	return nil
}

func (s *Service) invalidate(ctx context.Context, patterns ...string) {
	const op = "services.admin.invalidate"

	for _, pattern := range patterns {
		if err := s.cache.InvalidateByPattern(ctx, pattern); err != nil {
			s.log.WarnContext(ctx, op, logger.String("pattern", pattern), logger.Err(err))
		}

		if s.fanout == nil {
			continue
		}
		if err := s.fanout.Publish(ctx, pattern); err != nil {
			s.log.WarnContext(ctx, op, logger.String("pattern", pattern), logger.Err(err))
		}
	}
}

func (s *Service) emit(ctx context.Context, event models.Event) {
	if s.events == nil {
		return
	}

	select {
	case s.events <- event:
	default:
		s.log.WarnContext(ctx, "catalog event dropped, channel full",
			logger.String("event", event.EventType()))
	}
}
