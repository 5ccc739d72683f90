package storefront_http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lavandel/flower_storefront/internal/config"
	"github.com/lavandel/flower_storefront/internal/domain/models"
	internalErrors "github.com/lavandel/flower_storefront/internal/lib/errors"
	httpresponse "github.com/lavandel/flower_storefront/internal/lib/http"
	"github.com/lavandel/flower_storefront/pkg/logger"
)

var (
	errEmptySlug          = errors.New("slug must not be empty")
	errInvalidPrice       = errors.New("price must not be negative")
	errInvalidCategoryID  = errors.New("invalid category id")
	errNoTranslations     = errors.New("translations must not be empty")
	errInvalidMediaUUID   = errors.New("invalid media id")
	errNoMediaIDs         = errors.New("media ids must not be empty")
	errEmptyTranslatedRow = errors.New("translation name must not be empty")
	errUnknownStatus      = errors.New("unknown order status")
)

type translationRequest struct {
	Locale      string `json:"locale"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type mediaRequest struct {
	URL         string `json:"url"`
	IsThumbnail bool   `json:"is_thumbnail"`
}

type bouquetRequest struct {
	Slug         string               `json:"slug"`
	Price        int64                `json:"price"`
	CategoryID   string               `json:"category_id"`
	Featured     bool                 `json:"featured"`
	Translations []translationRequest `json:"translations"`
	Media        []mediaRequest       `json:"media"`
}

func (req *bouquetRequest) validate(locales config.LocaleConfig) error {
	if req.Slug == "" {
		return errEmptySlug
	}
	if req.Price < 0 {
		return errInvalidPrice
	}
	if _, err := uuid.Parse(req.CategoryID); err != nil {
		return errInvalidCategoryID
	}
	if len(req.Translations) == 0 {
		return errNoTranslations
	}

	for _, translation := range req.Translations {
		if !locales.IsSupported(translation.Locale) {
			return internalErrors.ErrUnsupportedLocale
		}
		if translation.Name == "" {
			return errEmptyTranslatedRow
		}
	}

	return nil
}

func (req *bouquetRequest) toDTO(bouquetID uuid.UUID) (*models.Bouquet, []models.BouquetTranslation) {
	bouquet := &models.Bouquet{
		ID:         bouquetID,
		Slug:       req.Slug,
		Price:      req.Price,
		CategoryID: uuid.MustParse(req.CategoryID),
		Featured:   req.Featured,
	}

	for position, media := range req.Media {
		bouquet.Media = append(bouquet.Media, models.Media{
			ID:          uuid.New(),
			URL:         media.URL,
			Position:    position,
			IsThumbnail: media.IsThumbnail,
		})
	}

	translations := make([]models.BouquetTranslation, 0, len(req.Translations))
	for _, translation := range req.Translations {
		translations = append(translations, models.BouquetTranslation{
			Locale:      models.Locale(translation.Locale),
			Name:        translation.Name,
			Description: translation.Description,
		})
	}

	return bouquet, translations
}

func (h *Handler) createBouquet(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.createBouquet"

	var req bouquetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.validate(h.locales); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bouquet, translations := req.toDTO(uuid.Nil)

	bouquetID, err := h.adminService.CreateBouquet(r.Context(), bouquet, translations)
	if err != nil {
		h.log.ErrorContext(r.Context(), op, logger.Err(err))
		http.Error(w, "failed to create bouquet", http.StatusInternalServerError)
		return
	}

	if err := httpresponse.JSON(w, http.StatusCreated, httpresponse.H{
		"bouquet_id": bouquetID.String(),
	}); err != nil {
		h.log.ErrorContext(r.Context(), op, logger.Err(err))
	}
}

func (h *Handler) updateBouquet(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.updateBouquet"

	bouquetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid bouquet id", http.StatusBadRequest)
		return
	}

	var req bouquetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.validate(h.locales); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bouquet, translations := req.toDTO(bouquetID)

	if err := h.adminService.UpdateBouquet(r.Context(), bouquet, translations); err != nil {
		if errors.Is(err, internalErrors.ErrBouquetNotFound) {
			http.Error(w, internalErrors.ErrBouquetNotFound.Error(), http.StatusNotFound)
			return
		}

		h.log.ErrorContext(r.Context(), op, logger.Err(err))
		http.Error(w, "failed to update bouquet", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteBouquet(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.deleteBouquet"

	bouquetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid bouquet id", http.StatusBadRequest)
		return
	}

	if err := h.adminService.DeleteBouquet(r.Context(), bouquetID); err != nil {
		if errors.Is(err, internalErrors.ErrBouquetNotFound) {
			http.Error(w, internalErrors.ErrBouquetNotFound.Error(), http.StatusNotFound)
			return
		}

		h.log.ErrorContext(r.Context(), op, logger.Err(err))
		http.Error(w, "failed to delete bouquet", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type flowerRequest struct {
	Price        int64                `json:"price"`
	Colors       []string             `json:"colors"`
	Translations []translationRequest `json:"translations"`
}

func (req *flowerRequest) validate(locales config.LocaleConfig) error {
	if req.Price < 0 {
		return errInvalidPrice
	}
	if len(req.Translations) == 0 {
		return errNoTranslations
	}

	for _, translation := range req.Translations {
		if !locales.IsSupported(translation.Locale) {
			return internalErrors.ErrUnsupportedLocale
		}
		if translation.Name == "" {
			return errEmptyTranslatedRow
		}
	}

	return nil
}

func (h *Handler) updateFlower(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.updateFlower"

	flowerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid flower id", http.StatusBadRequest)
		return
	}

	var req flowerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.validate(h.locales); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	flower := &models.Flower{ID: flowerID, Colors: req.Colors, Price: req.Price}

	translations := make([]models.FlowerTranslation, 0, len(req.Translations))
	for _, translation := range req.Translations {
		translations = append(translations, models.FlowerTranslation{
			Locale: models.Locale(translation.Locale),
			Name:   translation.Name,
		})
	}

	if err := h.adminService.UpdateFlower(r.Context(), flower, translations); err != nil {
		if errors.Is(err, internalErrors.ErrFlowerNotFound) {
			http.Error(w, internalErrors.ErrFlowerNotFound.Error(), http.StatusNotFound)
			return
		}

		h.log.ErrorContext(r.Context(), op, logger.Err(err))
		http.Error(w, "failed to update flower", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type categoryRequest struct {
	Slug         string               `json:"slug"`
	ImageURL     string               `json:"image_url"`
	Position     int                  `json:"position"`
	Translations []translationRequest `json:"translations"`
}

func (req *categoryRequest) validate(locales config.LocaleConfig) error {
	if req.Slug == "" {
		return errEmptySlug
	}
	if len(req.Translations) == 0 {
		return errNoTranslations
	}

	for _, translation := range req.Translations {
		if !locales.IsSupported(translation.Locale) {
			return internalErrors.ErrUnsupportedLocale
		}
		if translation.Name == "" {
			return errEmptyTranslatedRow
		}
	}

	return nil
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.updateCategory"

	categoryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.validate(h.locales); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	category := &models.Category{
		ID:       categoryID,
		Slug:     req.Slug,
		ImageURL: req.ImageURL,
		Position: req.Position,
	}

	translations := make([]models.CategoryTranslation, 0, len(req.Translations))
	for _, translation := range req.Translations {
		translations = append(translations, models.CategoryTranslation{
			Locale:      models.Locale(translation.Locale),
			Name:        translation.Name,
			Description: translation.Description,
		})
	}

	if err := h.adminService.UpdateCategory(r.Context(), category, translations); err != nil {
		if errors.Is(err, internalErrors.ErrCategoryNotFound) {
			http.Error(w, internalErrors.ErrCategoryNotFound.Error(), http.StatusNotFound)
			return
		}

		h.log.ErrorContext(r.Context(), op, logger.Err(err))
		http.Error(w, "failed to update category", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type reorderMediaRequest struct {
	MediaIDs []string `json:"media_ids"`
}

func (req *reorderMediaRequest) validate() ([]uuid.UUID, error) {
	if len(req.MediaIDs) == 0 {
		return nil, errNoMediaIDs
	}

	mediaIDs := make([]uuid.UUID, 0, len(req.MediaIDs))
	for _, raw := range req.MediaIDs {
		mediaID, err := uuid.Parse(raw)
		if err != nil {
			return nil, errInvalidMediaUUID
		}
		mediaIDs = append(mediaIDs, mediaID)
	}

	return mediaIDs, nil
}

func (h *Handler) reorderMedia(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.reorderMedia"

	bouquetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid bouquet id", http.StatusBadRequest)
		return
	}

	var req reorderMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	mediaIDs, err := req.validate()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.adminService.ReorderMedia(r.Context(), bouquetID, mediaIDs); err != nil {
		if errors.Is(err, internalErrors.ErrMediaNotFound) {
			http.Error(w, internalErrors.ErrMediaNotFound.Error(), http.StatusNotFound)
			return
		}

		h.log.ErrorContext(r.Context(), op, logger.Err(err))
		http.Error(w, "failed to reorder media", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type thumbnailRequest struct {
	MediaID string `json:"media_id"`
}

func (h *Handler) setThumbnail(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.setThumbnail"

	bouquetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid bouquet id", http.StatusBadRequest)
		return
	}

	var req thumbnailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	mediaID, err := uuid.Parse(req.MediaID)
	if err != nil {
		http.Error(w, errInvalidMediaUUID.Error(), http.StatusBadRequest)
		return
	}

	if err := h.adminService.SetThumbnail(r.Context(), bouquetID, mediaID); err != nil {
		if errors.Is(err, internalErrors.ErrMediaNotFound) {
			http.Error(w, internalErrors.ErrMediaNotFound.Error(), http.StatusNotFound)
			return
		}

		h.log.ErrorContext(r.Context(), op, logger.Err(err))
		http.Error(w, "failed to set thumbnail", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) orderByID(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.orderByID"

	orderUUID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	order, err := h.adminService.Order(r.Context(), orderUUID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrOrderNotFound) {
			http.Error(w, internalErrors.ErrOrderNotFound.Error(), http.StatusNotFound)
			return
		}

		h.log.ErrorContext(r.Context(), op, logger.Err(err))
		http.Error(w, "failed to get order", http.StatusInternalServerError)
		return
	}

	if err := httpresponse.JSON(w, http.StatusOK, order); err != nil {
		h.log.ErrorContext(r.Context(), op, logger.Err(err))
	}
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.updateOrderStatus"

	orderUUID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var req orderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	status, ok := models.OrderStatusFromString(req.Status)
	if !ok {
		http.Error(w, errUnknownStatus.Error(), http.StatusBadRequest)
		return
	}

	if err := h.adminService.UpdateOrderStatus(r.Context(), orderUUID, status); err != nil {
		switch {
		case errors.Is(err, internalErrors.ErrOrderNotFound):
			http.Error(w, internalErrors.ErrOrderNotFound.Error(), http.StatusNotFound)
		case errors.Is(err, internalErrors.ErrInvalidOrderStatus):
			http.Error(w, internalErrors.ErrInvalidOrderStatus.Error(), http.StatusConflict)
		default:
			h.log.ErrorContext(r.Context(), op, logger.Err(err))
			http.Error(w, "failed to update order status", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
