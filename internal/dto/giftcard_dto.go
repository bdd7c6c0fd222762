package dto

import "github.com/shopspring/decimal"

type ValidateGiftCardRequest struct {
	Code string `json:"code" validate:"required,min=1"`
}

type GiftCardResponse struct {
	ID         string          `json:"id"`
	Code       string          `json:"code"`
	Balance    decimal.Decimal `json:"balance"`
	Status     string          `json:"status"`
	ExpiryDate *string         `json:"expiry_date,omitempty"`
}

// GiftCardTransactionResponse is one ledger row in the card's history.
type GiftCardTransactionResponse struct {
	SaleID        string          `json:"sale_id"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Type          string          `json:"type"`
	CreatedAt     string          `json:"created_at"`
}
