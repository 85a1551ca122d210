package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrLineItemNotFound    = errors.New("line item not found")
	ErrInvalidCustomerType = errors.New("invalid customer type; allowed: b2b, d2c")
	ErrInvalidItemKind     = errors.New("invalid item kind; allowed: goods, services")
	ErrRateNotFound        = errors.New("no GST rate found for classification code")
	ErrUploadFailed        = errors.New("snapshot upload to storage failed")
)
