package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CheckoutLineRequest is one cart line. Kind selects which catalog the RefID
// points into; UnitPrice overrides the catalog price when present.
type CheckoutLineRequest struct {
	Kind      string           `json:"kind"       validate:"required,oneof=product service"`
	RefID     string           `json:"ref_id"     validate:"required,uuid"`
	VariantID *string          `json:"variant_id" validate:"omitempty,uuid"`
	Quantity  int              `json:"quantity"   validate:"required,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"omitempty,gte=0"`
}

// ManualDiscountRequest is honoured only for callers holding the
// discount capability (manager/admin), and never when a promotion applies.
type ManualDiscountRequest struct {
	Value decimal.Decimal `json:"value" validate:"required,gt=0"`
	Type  string          `json:"type"  validate:"required,oneof=percentage amount"`
}

type DeliveryRequest struct {
	Address string  `json:"address" validate:"required,min=5"`
	Phone   *string `json:"phone"   validate:"omitempty"`
}

type CheckoutRequest struct {
	ClientID       *string                `json:"client_id"        validate:"omitempty,uuid"`
	Lines          []CheckoutLineRequest  `json:"lines"            validate:"required,min=1,dive"`
	PromotionCode  *string                `json:"promotion_code"   validate:"omitempty,min=1"`
	GiftCardCode   *string                `json:"gift_card_code"   validate:"omitempty,min=1"`
	GiftCardAmount *decimal.Decimal       `json:"gift_card_amount" validate:"omitempty,gt=0"`
	ManualDiscount *ManualDiscountRequest `json:"manual_discount"  validate:"omitempty"`
	PaymentMethod  string                 `json:"payment_method"   validate:"required,oneof=cash card mobile_money transfer"`
	Delivery       *DeliveryRequest       `json:"delivery"         validate:"omitempty"`
	// ClientEmail: optional — when present, the receipt worker mails the PDF.
	ClientEmail *string `json:"client_email" validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	Label     string          `json:"label"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// FailedStepResponse reports one non-fatal commit step that failed. The sale
// itself is committed; the caller decides whether to surface the degradation.
type FailedStepResponse struct {
	Step   string `json:"step"`
	Reason string `json:"reason"`
}

type CheckoutResponse struct {
	SaleID          string               `json:"sale_id"`
	LineType        string               `json:"line_type"`
	Items           []SaleItemResponse   `json:"items"`
	Subtotal        decimal.Decimal      `json:"subtotal"`
	DiscountAmount  decimal.Decimal      `json:"discount_amount"`
	DiscountPercent decimal.Decimal      `json:"discount_percent"`
	GiftCardUsed    decimal.Decimal      `json:"gift_card_used"`
	Total           decimal.Decimal      `json:"total"`
	PaymentMethod   string               `json:"payment_method"`
	Status          string               `json:"status"`
	LoyaltyPoints   int                  `json:"loyalty_points_earned"`
	Receipt         string               `json:"receipt"`
	Warnings        []FailedStepResponse `json:"warnings,omitempty"`
	CreatedAt       string               `json:"created_at"`
}
