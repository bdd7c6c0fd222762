package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// SaleFilter is bound from query string of GET /v1/sales.
type SaleFilter struct {
	Date     string `form:"date"`                // YYYY-MM-DD; empty = today
	Status   string `form:"status,default=paid"` // paid | all
	LineType string `form:"line_type"`           // product | service | mixed
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SaleListItem struct {
	ID             string             `json:"id"`
	ClientID       *string            `json:"client_id,omitempty"`
	ClientName     string             `json:"client_name,omitempty"`
	UserID         string             `json:"user_id"`
	StaffName      string             `json:"staff_name,omitempty"`
	LineType       string             `json:"line_type"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	GiftCardAmount decimal.Decimal    `json:"gift_card_amount"`
	Total          decimal.Decimal    `json:"total"`
	PaymentMethod  string             `json:"payment_method"`
	Status         string             `json:"status"`
	Items          []SaleItemResponse `json:"items"`
	CreatedAt      string             `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleListItem `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

type ReceiptResponse struct {
	SaleID  string `json:"sale_id"`
	Receipt string `json:"receipt"`
}
