package storefront_http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lavandel/flower_storefront/internal/delivery/http/mocks"
	"github.com/lavandel/flower_storefront/internal/domain/models"
	internalErrors "github.com/lavandel/flower_storefront/internal/lib/errors"
	"github.com/lavandel/flower_storefront/pkg/logger"
)

func TestCheckoutHandler(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	log := logger.NewSlogLogger(logger.EnvLocal)

	sessionID := uuid.New()
	orderUUID := uuid.New()

	customer := models.CustomerInfo{
		Name:    "Aigerim",
		Email:   "aigerim@example.com",
		Phone:   "+77001234567",
		Address: "Almaty, Dostyk ave 1",
	}

	mockCheckout := mocks.NewMockCheckout(ctl)
	mockCheckout.EXPECT().
		Submit(gomock.Any(), sessionID, customer, models.LocaleKK).
		Return(orderUUID, nil)

	h := NewHandler(log, nil, nil, mockCheckout, nil, testLocales())
	router := h.InitRoutes()

	body, err := json.Marshal(customer)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/kk/checkout", bytes.NewBuffer(body))
	req.Header.Set(sessionHeader, sessionID.String())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, orderUUID.String(), resp["order_uuid"])
}

func TestCheckoutHandlerEmptyCart(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	log := logger.NewSlogLogger(logger.EnvLocal)

	mockCheckout := mocks.NewMockCheckout(ctl)
	mockCheckout.EXPECT().
		Submit(gomock.Any(), gomock.Any(), gomock.Any(), models.LocaleRU).
		Return(uuid.Nil, internalErrors.ErrEmptyCart)

	h := NewHandler(log, nil, nil, mockCheckout, nil, testLocales())
	router := h.InitRoutes()

	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewBufferString(`{"name":"A","email":"a@b.c","phone":"123456","address":"somewhere"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
