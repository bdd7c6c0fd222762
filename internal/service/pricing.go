package service

import (
	"github.com/DoniniDjessa/cercleof-sub000/internal/model"

	"github.com/shopspring/decimal"
)

// PricingInput feeds ComputeTotals. Promotion takes precedence over the
// manual discount; the manual discount is honoured only when CanDiscount is
// set (discount-management capability).
type PricingInput struct {
	Lines          []CartLine
	Promotion      *model.Promotion
	ManualDiscount *ManualDiscount
	CanDiscount    bool
	GiftCard       *model.GiftCard
	GiftCardAmount decimal.Decimal // requested amount to charge on the card
}

// Totals is the computed payable breakdown. Invariants:
//
//	Total = max(0, Subtotal - DiscountAmount - GiftCardUsed)
//	GiftCardUsed <= min(requested, card balance, Subtotal - DiscountAmount)
type Totals struct {
	Subtotal        decimal.Decimal
	DiscountAmount  decimal.Decimal
	DiscountPercent decimal.Decimal
	GiftCardUsed    decimal.Decimal
	Total           decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// ComputeTotals is the pure pricing calculator. All amounts are truncated to
// the display unit (whole francs); no other rounding is applied anywhere.
func ComputeTotals(in PricingInput) Totals {
	subtotal := decimal.Zero
	for _, l := range in.Lines {
		subtotal = subtotal.Add(l.Total())
	}

	var discount, percent decimal.Decimal
	switch {
	case in.Promotion != nil:
		discount, percent = applyDiscount(subtotal, in.Promotion.Value, in.Promotion.ValueType)
	case in.ManualDiscount != nil && in.CanDiscount:
		discount, percent = applyDiscount(subtotal, in.ManualDiscount.Value, in.ManualDiscount.Type)
	default:
		discount, percent = decimal.Zero, decimal.Zero
	}

	afterDiscount := subtotal.Sub(discount)

	giftCardUsed := decimal.Zero
	if in.GiftCard != nil {
		giftCardUsed = decimal.Min(in.GiftCardAmount, afterDiscount, in.GiftCard.Balance).Truncate(0)
		if giftCardUsed.IsNegative() {
			giftCardUsed = decimal.Zero
		}
	}

	total := afterDiscount.Sub(giftCardUsed)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal:        subtotal,
		DiscountAmount:  discount,
		DiscountPercent: percent,
		GiftCardUsed:    giftCardUsed,
		Total:           total,
	}
}

// applyDiscount resolves a percentage or fixed-amount discount against the
// subtotal. Fixed amounts are capped at the subtotal so the discount can
// never exceed what is being bought; a negative value is treated as no
// discount so the payable total can never exceed the subtotal.
func applyDiscount(subtotal, value decimal.Decimal, valueType string) (amount, percent decimal.Decimal) {
	if value.IsNegative() {
		return decimal.Zero, decimal.Zero
	}
	switch valueType {
	case "percentage":
		return subtotal.Mul(value).Div(hundred).Truncate(0), value
	case "amount":
		return decimal.Min(value, subtotal).Truncate(0), decimal.Zero
	default:
		return decimal.Zero, decimal.Zero
	}
}

// LoyaltyPoints returns the fidelity points earned for a committed total:
// floor(total / 1000).
func LoyaltyPoints(total decimal.Decimal) int {
	return int(total.Div(decimal.NewFromInt(1000)).Floor().IntPart())
}
