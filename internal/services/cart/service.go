package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/lavandel/flower_storefront/internal/domain/models"
	internalErrors "github.com/lavandel/flower_storefront/internal/lib/errors"
	"github.com/lavandel/flower_storefront/pkg/logger"
)

type priceSource interface {
	BouquetByID(ctx context.Context, bouquetID uuid.UUID, locale models.Locale) (*models.Bouquet, error)
	FlowerByID(ctx context.Context, flowerID uuid.UUID, locale models.Locale) (*models.Flower, error)
	BouquetPrices(ctx context.Context, bouquetIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

// Service is the cart engine. Mutations are plain state transitions
// guarded by one mutex; only the price lookups around them touch I/O.
// Every method hands back a snapshot of the stored aggregate, so the
// caller never walks a slice a concurrent mutation can grow.
type Service struct {
	log    logger.Logger
	prices priceSource
	carts  *SessionStore

	defaultLocale models.Locale

	mu sync.Mutex
}

func New(log logger.Logger, prices priceSource, carts *SessionStore, defaultLocale models.Locale) *Service {
	return &Service{
		log:           log,
		prices:        prices,
		carts:         carts,
		defaultLocale: defaultLocale,
	}
}

func (s *Service) loadOrCreate(sessionID uuid.UUID) *models.Cart {
	if cart, ok := s.carts.Get(sessionID); ok {
		return cart
	}

	cart := &models.Cart{}
	s.carts.Put(sessionID, cart)

	return cart
}

// AddProduct merges by bouquet identity: a repeat add increments the
// existing line instead of creating a second one.
func (s *Service) AddProduct(ctx context.Context, sessionID, bouquetID uuid.UUID, quantity int) (*models.Cart, error) {
	const op = "services.cart.AddProduct"

	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.loadOrCreate(sessionID)

	for i := range cart.Items {
		item := &cart.Items[i]
		if item.Kind == models.ItemKindCatalog && item.BouquetID == bouquetID {
			item.Quantity += quantity
			s.carts.Put(sessionID, cart)
			return cart.Snapshot(), nil
		}
	}

	bouquet, err := s.prices.BouquetByID(ctx, bouquetID, s.defaultLocale)
	if err != nil {
		s.log.ErrorContext(ctx, op,
			logger.String("bouquet_id", bouquetID.String()), logger.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cart.Items = append(cart.Items, models.CartItem{
		ID:        uuid.New(),
		Kind:      models.ItemKindCatalog,
		Quantity:  quantity,
		Price:     bouquet.Price,
		BouquetID: bouquetID,
	})
	s.carts.Put(sessionID, cart)

	return cart.Snapshot(), nil
}

// AddCustomBouquet always appends a new line. Two identical
// compositions stay distinct cart entries.
func (s *Service) AddCustomBouquet(ctx context.Context, sessionID uuid.UUID, custom models.CustomBouquet) (*models.Cart, error) {
	const op = "services.cart.AddCustomBouquet"

	if len(custom.Flowers) == 0 {
		return nil, internalErrors.ErrEmptyComposition
	}

	// Detach from the caller's slice, the line owns its composition.
	custom.Flowers = append([]models.FlowerSelection(nil), custom.Flowers...)

	var price int64
	for i := range custom.Flowers {
		selection := &custom.Flowers[i]
		if selection.Quantity < 1 {
			selection.Quantity = 1
		}

		flower, err := s.prices.FlowerByID(ctx, selection.FlowerID, s.defaultLocale)
		if err != nil {
			s.log.ErrorContext(ctx, op,
				logger.String("flower_id", selection.FlowerID.String()), logger.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if selection.FlowerName == "" {
			selection.FlowerName = flower.Name
		}

		price += flower.Price * int64(selection.Quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.loadOrCreate(sessionID)

	cart.Items = append(cart.Items, models.CartItem{
		ID:       uuid.New(),
		Kind:     models.ItemKindCustom,
		Quantity: 1,
		Price:    price,
		Custom:   &custom,
	})
	s.carts.Put(sessionID, cart)

	return cart.Snapshot(), nil
}

// RemoveItem drops the line; removing an absent line is a no-op.
func (s *Service) RemoveItem(sessionID, itemID uuid.UUID) *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.loadOrCreate(sessionID)

	for i, item := range cart.Items {
		if item.ID == itemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			break
		}
	}
	s.carts.Put(sessionID, cart)

	return cart.Snapshot()
}

// UpdateItemQuantity sets the quantity directly. Anything below one is
// a removal, never an error.
func (s *Service) UpdateItemQuantity(sessionID, itemID uuid.UUID, quantity int) *models.Cart {
	if quantity < 1 {
		return s.RemoveItem(sessionID, itemID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.loadOrCreate(sessionID)

	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = quantity
			break
		}
	}
	s.carts.Put(sessionID, cart)

	return cart.Snapshot()
}

func (s *Service) OpenCart(sessionID uuid.UUID) *models.Cart {
	return s.setOpen(sessionID, true)
}

func (s *Service) CloseCart(sessionID uuid.UUID) *models.Cart {
	return s.setOpen(sessionID, false)
}

func (s *Service) setOpen(sessionID uuid.UUID, open bool) *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.loadOrCreate(sessionID)
	cart.IsOpen = open
	s.carts.Put(sessionID, cart)

	return cart.Snapshot()
}

// Cart returns the session's cart together with the live price map for
// its catalog lines. A failed refresh degrades to stored line prices
// and never blocks the read.
func (s *Service) Cart(ctx context.Context, sessionID uuid.UUID) (*models.Cart, map[uuid.UUID]int64) {
	const op = "services.cart.Cart"

	s.mu.Lock()
	cart := s.loadOrCreate(sessionID).Snapshot()
	s.mu.Unlock()

	ids := cart.CatalogIDs()
	if len(ids) == 0 {
		return cart, nil
	}

	livePrices, err := s.prices.BouquetPrices(ctx, ids)
	if err != nil {
		s.log.WarnContext(ctx, op, logger.Err(err))
		return cart, nil
	}

	return cart, livePrices
}

func (s *Service) Clear(sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts.Delete(sessionID)
}
