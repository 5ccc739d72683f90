package storefront_http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lavandel/flower_storefront/internal/domain/models"
	internalErrors "github.com/lavandel/flower_storefront/internal/lib/errors"
	httpresponse "github.com/lavandel/flower_storefront/internal/lib/http"
	"github.com/lavandel/flower_storefront/pkg/logger"
)

type checkoutRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Comment string `json:"comment"`
}

func (req *checkoutRequest) toDTO() models.CustomerInfo {
	return models.CustomerInfo{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Comment: req.Comment,
	}
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.checkout"

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sessionID := h.sessionID(w, r)

	orderUUID, err := h.checkoutService.Submit(r.Context(), sessionID, req.toDTO(), localeFromContext(r.Context()))
	if err != nil {
		var validationErrs validator.ValidationErrors

		switch {
		case errors.As(err, &validationErrs):
			http.Error(w, validationErrs.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, internalErrors.ErrEmptyCart):
			http.Error(w, internalErrors.ErrEmptyCart.Error(), http.StatusBadRequest)
		default:
			h.log.ErrorContext(r.Context(), op, logger.Err(err))
			http.Error(w, "failed to submit order", http.StatusInternalServerError)
		}
		return
	}

	if err := httpresponse.JSON(w, http.StatusCreated, httpresponse.H{
		"order_uuid": orderUUID.String(),
	}); err != nil {
		h.log.ErrorContext(r.Context(), op, logger.Err(err))
	}
}
