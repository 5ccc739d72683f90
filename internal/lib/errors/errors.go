package errors

import "errors"

var (
	ErrBouquetNotFound  = errors.New("bouquet not found")
	ErrFlowerNotFound   = errors.New("flower not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrMediaNotFound    = errors.New("media not found")

	ErrEmptyCart          = errors.New("cart is empty")
	ErrEmptyComposition   = errors.New("custom bouquet has no flowers")
	ErrUnsupportedLocale  = errors.New("unsupported locale")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)
