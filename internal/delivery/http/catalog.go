package storefront_http

import (
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

type bouquetResponse struct {
	models.Bouquet
	PriceFormatted string `json:"price_formatted"`
}

type flowerResponse struct {
	models.Flower
	PriceFormatted string `json:"price_formatted"`
}

func toBouquetResponses(bouquets []models.Bouquet, locale models.Locale) []bouquetResponse {
	out := make([]bouquetResponse, 0, len(bouquets))
	for _, bouquet := range bouquets {
		out = append(out, bouquetResponse{
			Bouquet:        bouquet,
			PriceFormatted: format.Price(bouquet.Price, locale),
		})
	}
	return out
}

func (h *Handler) bouquets(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.bouquets"

	locale := localeFromContext(r.Context())

	bouquets, err := h.catalogService.Bouquets(r.Context(), locale)
	if err != nil {
		h.log.ErrorContext(r.Context(), op, logger.Err(err))
		http.Error(w, "failed to list bouquets", http.StatusInternalServerError)
		return
	}

	if err := httpresponse.JSON(w, http.StatusOK, httpresponse.H{
		"bouquets": toBouquetResponses(bouquets, locale),
	}); err != nil {
		h.log.ErrorContext(r.Context(), op, logger.Err(err))
	}
}

func (h *Handler) featuredBouquets(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.featuredBouquets"

	locale := localeFromContext(r.Context())

	bouquets, err := h.catalogService.FeaturedBouquets(r.Context(), locale)
	if err != nil {
		h.log.ErrorContext(r.Context(), op, logger.Err(err))
		http.Error(w, "failed to list featured bouquets", http.StatusInternalServerError)
		return
	}

	if err := httpresponse.JSON(w, http.StatusOK, httpresponse.H{
		"bouquets": toBouquetResponses(bouquets, locale),
	}); err != nil {
		h.log.ErrorContext(r.Context(), op, logger.Err(err))
	}
}

func (h *Handler) bouquetByID(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.bouquetByID"

	bouquetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid bouquet id", http.StatusBadRequest)
		return
	}

	locale := localeFromContext(r.Context())

	bouquet, err := h.catalogService.BouquetByID(r.Context(), bouquetID, locale)
	if err != nil {
		if errors.Is(err, internalErrors.ErrBouquetNotFound) {
			http.Error(w, internalErrors.ErrBouquetNotFound.Error(), http.StatusNotFound)
			return
		}

		h.log.ErrorContext(r.Context(), op, logger.Err(err))
		http.Error(w, "failed to get bouquet", http.StatusInternalServerError)
		return
	}

	if err := httpresponse.JSON(w, http.StatusOK, bouquetResponse{
		Bouquet:        *bouquet,
		PriceFormatted: format.Price(bouquet.Price, locale),
	}); err != nil {
		h.log.ErrorContext(r.Context(), op, logger.Err(err))
	}
}

func (h *Handler) relatedBouquets(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.relatedBouquets"

	bouquetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid bouquet id", http.StatusBadRequest)
		return
	}

	locale := localeFromContext(r.Context())

	bouquets, err := h.catalogService.RelatedBouquets(r.Context(), bouquetID, uuid.NullUUID{}, nil, locale)
	if err != nil {
		if errors.Is(err, internalErrors.ErrBouquetNotFound) {
			http.Error(w, internalErrors.ErrBouquetNotFound.Error(), http.StatusNotFound)
			return
		}

		h.log.ErrorContext(r.Context(), op, logger.Err(err))
		http.Error(w, "failed to list related bouquets", http.StatusInternalServerError)
		return
	}

	if err := httpresponse.JSON(w, http.StatusOK, httpresponse.H{
		"bouquets": toBouquetResponses(bouquets, locale),
	}); err != nil {
		h.log.ErrorContext(r.Context(), op, logger.Err(err))
	}
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.categories"

	locale := localeFromContext(r.Context())

	categories, err := h.catalogService.Categories(r.Context(), locale)
	if err != nil {
		h.log.ErrorContext(r.Context(), op, logger.Err(err))
		http.Error(w, "failed to list categories", http.StatusInternalServerError)
		return
	}

	if err := httpresponse.JSON(w, http.StatusOK, httpresponse.H{"categories": categories}); err != nil {
		h.log.ErrorContext(r.Context(), op, logger.Err(err))
	}
}

func (h *Handler) categoryByID(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.categoryByID"

	categoryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}

	category, err := h.catalogService.CategoryByID(r.Context(), categoryID, localeFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, internalErrors.ErrCategoryNotFound) {
			http.Error(w, internalErrors.ErrCategoryNotFound.Error(), http.StatusNotFound)
			return
		}

		h.log.ErrorContext(r.Context(), op, logger.Err(err))
		http.Error(w, "failed to get category", http.StatusInternalServerError)
		return
	}

	if err := httpresponse.JSON(w, http.StatusOK, category); err != nil {
		h.log.ErrorContext(r.Context(), op, logger.Err(err))
	}
}

func (h *Handler) bouquetsByCategory(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.bouquetsByCategory"

	categoryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}

	locale := localeFromContext(r.Context())

	bouquets, err := h.catalogService.BouquetsByCategory(r.Context(), categoryID, locale)
	if err != nil {
		if errors.Is(err, internalErrors.ErrCategoryNotFound) {
			http.Error(w, internalErrors.ErrCategoryNotFound.Error(), http.StatusNotFound)
			return
		}

		h.log.ErrorContext(r.Context(), op, logger.Err(err))
		http.Error(w, "failed to list category bouquets", http.StatusInternalServerError)
		return
	}

	if err := httpresponse.JSON(w, http.StatusOK, httpresponse.H{
		"bouquets": toBouquetResponses(bouquets, locale),
	}); err != nil {
		h.log.ErrorContext(r.Context(), op, logger.Err(err))
	}
}

func (h *Handler) flowers(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.flowers"

	locale := localeFromContext(r.Context())

	flowers, err := h.catalogService.Flowers(r.Context(), locale)
	if err != nil {
		h.log.ErrorContext(r.Context(), op, logger.Err(err))
		http.Error(w, "failed to list flowers", http.StatusInternalServerError)
		return
	}

	out := make([]flowerResponse, 0, len(flowers))
	for _, flower := range flowers {
		out = append(out, flowerResponse{
			Flower:         flower,
			PriceFormatted: format.Price(flower.Price, locale),
		})
	}

	if err := httpresponse.JSON(w, http.StatusOK, httpresponse.H{"flowers": out}); err != nil {
		h.log.ErrorContext(r.Context(), op, logger.Err(err))
	}
}

func (h *Handler) flowerByID(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.flowerByID"

	flowerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid flower id", http.StatusBadRequest)
		return
	}

	locale := localeFromContext(r.Context())

	flower, err := h.catalogService.FlowerByID(r.Context(), flowerID, locale)
	if err != nil {
		if errors.Is(err, internalErrors.ErrFlowerNotFound) {
			http.Error(w, internalErrors.ErrFlowerNotFound.Error(), http.StatusNotFound)
			return
		}

		h.log.ErrorContext(r.Context(), op, logger.Err(err))
		http.Error(w, "failed to get flower", http.StatusInternalServerError)
		return
	}

	if err := httpresponse.JSON(w, http.StatusOK, flowerResponse{
		Flower:         *flower,
		PriceFormatted: format.Price(flower.Price, locale),
	}); err != nil {
		h.log.ErrorContext(r.Context(), op, logger.Err(err))
	}
}
