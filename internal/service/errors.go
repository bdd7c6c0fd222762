package service

import "errors"

// Validation errors are fatal: they surface to the caller before any write.
var (
	ErrEmptyCart     = errors.New("cart has no lines")
	ErrActorNotFound = errors.New("acting staff account not found")

	// Promotion validation
	ErrPromotionInvalidOrExpired = errors.New("promotion code is invalid or expired")
	ErrPromotionAlreadyUsed      = errors.New("promotion already used by this client")

	// Gift card validation
	ErrGiftCardInvalidExpiredOrEmpty = errors.New("gift card is invalid, expired or empty")
)
