package dto

import "github.com/shopspring/decimal"

// ProductFilter is bound from query string of GET /v1/products.
type ProductFilter struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VariantResponse struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Quantity int              `json:"quantity"`
}

type ProductResponse struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Category      string            `json:"category"`
	Price         decimal.Decimal   `json:"price"`
	StockQuantity int               `json:"stock_quantity"`
	Variants      []VariantResponse `json:"variants,omitempty"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type ServiceResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	DurationMin int             `json:"duration_min"`
}

type ClientResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Email         *string         `json:"email,omitempty"`
	LastVisitDate *string         `json:"last_visit_date,omitempty"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	LoyaltyPoints int             `json:"loyalty_points"`
}
