package dto

import "github.com/shopspring/decimal"

type ValidatePromotionRequest struct {
	Code     string  `json:"code"      validate:"required,min=1"`
	ClientID *string `json:"client_id" validate:"omitempty,uuid"`
}

type PromotionResponse struct {
	ID                     string          `json:"id"`
	Code                   string          `json:"code"`
	Value                  decimal.Decimal `json:"value"`
	ValueType              string          `json:"value_type"`
	ActiveFrom             string          `json:"active_from"`
	ActiveTo               string          `json:"active_to"`
	IsUniqueUsagePerClient bool            `json:"is_unique_usage_per_client"`
}
