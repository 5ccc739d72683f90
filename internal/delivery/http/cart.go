package storefront_http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lavandel/flower_storefront/internal/domain/models"
	internalErrors "github.com/lavandel/flower_storefront/internal/lib/errors"
	"github.com/lavandel/flower_storefront/internal/lib/format"
	httpresponse "github.com/lavandel/flower_storefront/internal/lib/http"
	"github.com/lavandel/flower_storefront/pkg/logger"
)

const sessionHeader = "X-Session-ID"

var (
	errInvalidBouquetUUID = errors.New("invalid bouquet id")
	errInvalidFlowerUUID  = errors.New("invalid flower id")
	errInvalidQuantity    = errors.New("quantity must be positive")
	errNoFlowers          = errors.New("flowers must not be empty")
)

// sessionID reads the cart session from the request header. A missing
// or malformed header starts a fresh session; the id is echoed back so
// the client can persist it.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) uuid.UUID {
	id, err := uuid.Parse(r.Header.Get(sessionHeader))
	if err != nil {
		id = uuid.New()
	}

	w.Header().Set(sessionHeader, id.String())

	return id
}

type cartItemResponse struct {
	models.CartItem
	EffectivePrice          int64  `json:"effective_price"`
	EffectivePriceFormatted string `json:"effective_price_formatted"`
}

type cartResponse struct {
	Items               []cartItemResponse `json:"items"`
	IsOpen              bool               `json:"is_open"`
	TotalItems          int                `json:"total_items"`
	TotalPrice          int64              `json:"total_price"`
	TotalPriceFormatted string             `json:"total_price_formatted"`
}

func toCartResponse(cart *models.Cart, livePrices map[uuid.UUID]int64, locale models.Locale) cartResponse {
	items := make([]cartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		price := models.EffectivePrice(item, livePrices)
		items = append(items, cartItemResponse{
			CartItem:                item,
			EffectivePrice:          price,
			EffectivePriceFormatted: format.Price(price, locale),
		})
	}

	totalPrice := cart.TotalPrice(livePrices)

	return cartResponse{
		Items:               items,
		IsOpen:              cart.IsOpen,
		TotalItems:          cart.TotalItems(),
		TotalPrice:          totalPrice,
		TotalPriceFormatted: format.Price(totalPrice, locale),
	}
}

func (h *Handler) respondCart(w http.ResponseWriter, r *http.Request, cart *models.Cart, livePrices map[uuid.UUID]int64) {
	const op = "delivery.http.respondCart"

	if err := httpresponse.JSON(w, http.StatusOK,
		toCartResponse(cart, livePrices, localeFromContext(r.Context()))); err != nil {
		h.log.ErrorContext(r.Context(), op, logger.Err(err))
	}
}

type addProductRequest struct {
	BouquetID string `json:"bouquet_id"`
	Quantity  int    `json:"quantity"`
}

func (req *addProductRequest) validate() (uuid.UUID, error) {
	bouquetID, err := uuid.Parse(req.BouquetID)
	if err != nil {
		return uuid.Nil, errInvalidBouquetUUID
	}

	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		return uuid.Nil, errInvalidQuantity
	}

	return bouquetID, nil
}

func (h *Handler) addProduct(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.addProduct"

	var req addProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	bouquetID, err := req.validate()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sessionID := h.sessionID(w, r)

	cart, err := h.cartService.AddProduct(r.Context(), sessionID, bouquetID, req.Quantity)
	if err != nil {
		if errors.Is(err, internalErrors.ErrBouquetNotFound) {
			http.Error(w, internalErrors.ErrBouquetNotFound.Error(), http.StatusNotFound)
			return
		}

		h.log.ErrorContext(r.Context(), op, logger.Err(err))
		http.Error(w, "failed to add bouquet", http.StatusInternalServerError)
		return
	}

	h.respondCart(w, r, cart, nil)
}

type customFlowerRequest struct {
	FlowerID string `json:"flower_id"`
	Quantity int    `json:"quantity"`
	Color    string `json:"color"`
}

type addCustomBouquetRequest struct {
	Name    string                `json:"name"`
	BasedOn string                `json:"based_on"`
	Flowers []customFlowerRequest `json:"flowers"`
}

func (req *addCustomBouquetRequest) validate() error {
	if len(req.Flowers) == 0 {
		return errNoFlowers
	}

	for _, flower := range req.Flowers {
		if _, err := uuid.Parse(flower.FlowerID); err != nil {
			return errInvalidFlowerUUID
		}
		if flower.Quantity < 0 {
			return errInvalidQuantity
		}
	}

	if req.BasedOn != "" {
		if _, err := uuid.Parse(req.BasedOn); err != nil {
			return errInvalidBouquetUUID
		}
	}

	return nil
}

func (req *addCustomBouquetRequest) toDTO() models.CustomBouquet {
	custom := models.CustomBouquet{Name: req.Name}

	if req.BasedOn != "" {
		basedOn := uuid.MustParse(req.BasedOn)
		custom.BasedOn = &basedOn
	}

	for _, flower := range req.Flowers {
		custom.Flowers = append(custom.Flowers, models.FlowerSelection{
			FlowerID: uuid.MustParse(flower.FlowerID),
			Quantity: flower.Quantity,
			Color:    flower.Color,
		})
	}

	return custom
}

func (h *Handler) addCustomBouquet(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.addCustomBouquet"

	var req addCustomBouquetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sessionID := h.sessionID(w, r)

	cart, err := h.cartService.AddCustomBouquet(r.Context(), sessionID, req.toDTO())
	if err != nil {
		switch {
		case errors.Is(err, internalErrors.ErrEmptyComposition):
			http.Error(w, internalErrors.ErrEmptyComposition.Error(), http.StatusBadRequest)
		case errors.Is(err, internalErrors.ErrFlowerNotFound):
			http.Error(w, internalErrors.ErrFlowerNotFound.Error(), http.StatusNotFound)
		default:
			h.log.ErrorContext(r.Context(), op, logger.Err(err))
			http.Error(w, "failed to add custom bouquet", http.StatusInternalServerError)
		}
		return
	}

	h.respondCart(w, r, cart, nil)
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateItemQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sessionID := h.sessionID(w, r)

	// Quantity below one removes the line; the service handles both.
	cart := h.cartService.UpdateItemQuantity(sessionID, itemID, req.Quantity)

	h.respondCart(w, r, cart, nil)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	sessionID := h.sessionID(w, r)

	cart := h.cartService.RemoveItem(sessionID, itemID)

	h.respondCart(w, r, cart, nil)
}

func (h *Handler) openCart(w http.ResponseWriter, r *http.Request) {
	cart := h.cartService.OpenCart(h.sessionID(w, r))

	h.respondCart(w, r, cart, nil)
}

func (h *Handler) closeCart(w http.ResponseWriter, r *http.Request) {
	cart := h.cartService.CloseCart(h.sessionID(w, r))

	h.respondCart(w, r, cart, nil)
}

func (h *Handler) cart(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)

	cart, livePrices := h.cartService.Cart(r.Context(), sessionID)

	h.respondCart(w, r, cart, livePrices)
}
