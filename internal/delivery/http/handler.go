package storefront_http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lavandel/flower_storefront/internal/config"
	"github.com/lavandel/flower_storefront/internal/domain/models"
	"github.com/lavandel/flower_storefront/pkg/logger"
)

type Catalog interface {
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

type Cart interface {
	AddProduct(ctx context.Context, sessionID, bouquetID uuid.UUID, quantity int) (*models.Cart, error)
	AddCustomBouquet(ctx context.Context, sessionID uuid.UUID, custom models.CustomBouquet) (*models.Cart, error)
	RemoveItem(sessionID, itemID uuid.UUID) *models.Cart
	UpdateItemQuantity(sessionID, itemID uuid.UUID, quantity int) *models.Cart
	OpenCart(sessionID uuid.UUID) *models.Cart
	CloseCart(sessionID uuid.UUID) *models.Cart
	Cart(ctx context.Context, sessionID uuid.UUID) (*models.Cart, map[uuid.UUID]int64)
}

type Checkout interface {
	Submit(ctx context.Context, sessionID uuid.UUID, customer models.CustomerInfo, locale models.Locale) (uuid.UUID, error)
}

type Admin interface {
	CreateBouquet(ctx context.Context, bouquet *models.Bouquet, translations []models.BouquetTranslation) (uuid.UUID, error)
	UpdateBouquet(ctx context.Context, bouquet *models.Bouquet, translations []models.BouquetTranslation) error
	DeleteBouquet(ctx context.Context, bouquetID uuid.UUID) error
	UpdateFlower(ctx context.Context, flower *models.Flower, translations []models.FlowerTranslation) error
	UpdateCategory(ctx context.Context, category *models.Category, translations []models.CategoryTranslation) error
	ReorderMedia(ctx context.Context, bouquetID uuid.UUID, mediaIDs []uuid.UUID) error
	SetThumbnail(ctx context.Context, bouquetID, mediaID uuid.UUID) error
	Order(ctx context.Context, orderUUID uuid.UUID) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderUUID uuid.UUID, status models.OrderStatus) error
}

type Handler struct {
	log logger.Logger

	catalogService  Catalog
	cartService     Cart
	checkoutService Checkout
	adminService    Admin

	locales config.LocaleConfig
}

func NewHandler(
	log logger.Logger,
	catalogService Catalog,
	cartService Cart,
	checkoutService Checkout,
	adminService Admin,
	locales config.LocaleConfig,
) *Handler {
	return &Handler{
		log:             log,
		catalogService:  catalogService,
		cartService:     cartService,
		checkoutService: checkoutService,
		adminService:    adminService,
		locales:         locales,
	}
}

func (h *Handler) InitRoutes() http.Handler {
	mux := chi.NewRouter()

	mux.Route("/catalog", func(r chi.Router) {
		r.Get("/bouquets", h.bouquets)
		r.Get("/bouquets/featured", h.featuredBouquets)
		r.Get("/bouquets/{id}", h.bouquetByID)
		r.Get("/bouquets/{id}/related", h.relatedBouquets)
		r.Get("/categories", h.categories)
		r.Get("/categories/{id}", h.categoryByID)
		r.Get("/categories/{id}/bouquets", h.bouquetsByCategory)
		r.Get("/flowers", h.flowers)
		r.Get("/flowers/{id}", h.flowerByID)
	})

	mux.Route("/cart", func(r chi.Router) {
		r.Get("/", h.cart)
		r.Post("/items", h.addProduct)
		r.Post("/custom", h.addCustomBouquet)
		r.Patch("/items/{id}", h.updateItemQuantity)
		r.Delete("/items/{id}", h.removeItem)
		r.Post("/open", h.openCart)
		r.Post("/close", h.closeCart)
	})

	mux.Post("/checkout", h.checkout)

	mux.Route("/admin", func(r chi.Router) {
		r.Post("/bouquets", h.createBouquet)
		r.Put("/bouquets/{id}", h.updateBouquet)
		r.Delete("/bouquets/{id}", h.deleteBouquet)
		r.Put("/bouquets/{id}/media/order", h.reorderMedia)
		r.Put("/bouquets/{id}/media/thumbnail", h.setThumbnail)
		r.Put("/flowers/{id}", h.updateFlower)
		r.Put("/categories/{id}", h.updateCategory)
		r.Get("/orders/{id}", h.orderByID)
		r.Patch("/orders/{id}/status", h.updateOrderStatus)
	})

	return h.withLocale(mux)
}
