package service

import (
	"testing"
	"time"

	"github.com/DoniniDjessa/cercleof-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func productLine(label string, price int64, qty int) CartLine {
	return CartLine{
		LineID:    uuid.New(),
		Kind:      LineProduct,
		RefID:     uuid.New(),
		Label:     label,
		UnitPrice: d(price),
		Quantity:  qty,
	}
}

func TestComputeTotalsNoAdjustments(t *testing.T) {
	totals := ComputeTotals(PricingInput{
		Lines: []CartLine{productLine("Shampooing", 1500, 2), productLine("Peigne", 500, 1)},
	})

	assert.True(t, totals.Subtotal.Equal(d(3500)))
	assert.True(t, totals.DiscountAmount.IsZero())
	assert.True(t, totals.GiftCardUsed.IsZero())
	assert.True(t, totals.Total.Equal(d(3500)))
}

func TestComputeTotalsAmountDiscount(t *testing.T) {
	totals := ComputeTotals(PricingInput{
		Lines:          []CartLine{productLine("Tresses", 2000, 1)},
		ManualDiscount: &ManualDiscount{Value: d(200), Type: "amount"},
		CanDiscount:    true,
	})

	assert.True(t, totals.Subtotal.Equal(d(2000)))
	assert.True(t, totals.DiscountAmount.Equal(d(200)))
	assert.True(t, totals.Total.Equal(d(1800)))
}

func TestComputeTotalsPercentageDiscount(t *testing.T) {
	totals := ComputeTotals(PricingInput{
		Lines:          []CartLine{productLine("Soin", 2000, 1)},
		ManualDiscount: &ManualDiscount{Value: d(10), Type: "percentage"},
		CanDiscount:    true,
	})

	assert.True(t, totals.DiscountAmount.Equal(d(200)))
	assert.True(t, totals.DiscountPercent.Equal(d(10)))
	assert.True(t, totals.Total.Equal(d(1800)))
}

func TestComputeTotalsManualDiscountWithoutCapability(t *testing.T) {
	// A cashier without the discount capability gets no manual discount.
	totals := ComputeTotals(PricingInput{
		Lines:          []CartLine{productLine("Soin", 2000, 1)},
		ManualDiscount: &ManualDiscount{Value: d(500), Type: "amount"},
		CanDiscount:    false,
	})

	assert.True(t, totals.DiscountAmount.IsZero())
	assert.True(t, totals.Total.Equal(d(2000)))
}

func TestComputeTotalsPromotionWinsOverManual(t *testing.T) {
	promo := &model.Promotion{
		ID:        uuid.New(),
		Code:      "BIENVENUE",
		Value:     d(300),
		ValueType: "amount",
	}
	totals := ComputeTotals(PricingInput{
		Lines:          []CartLine{productLine("Soin", 2000, 1)},
		Promotion:      promo,
		ManualDiscount: &ManualDiscount{Value: d(50), Type: "percentage"},
		CanDiscount:    true,
	})

	assert.True(t, totals.DiscountAmount.Equal(d(300)), "promotion must take precedence")
	assert.True(t, totals.Total.Equal(d(1700)))
}

func TestComputeTotalsAmountDiscountCappedAtSubtotal(t *testing.T) {
	totals := ComputeTotals(PricingInput{
		Lines:          []CartLine{productLine("Peigne", 500, 1)},
		ManualDiscount: &ManualDiscount{Value: d(900), Type: "amount"},
		CanDiscount:    true,
	})

	assert.True(t, totals.DiscountAmount.Equal(d(500)))
	assert.True(t, totals.Total.IsZero(), "total never goes negative")
}

func TestComputeTotalsNegativeManualDiscountIgnored(t *testing.T) {
	// A negative discount would inflate the total above the subtotal.
	totals := ComputeTotals(PricingInput{
		Lines:          []CartLine{productLine("Soin", 2000, 1)},
		ManualDiscount: &ManualDiscount{Value: d(-500), Type: "amount"},
		CanDiscount:    true,
	})

	assert.True(t, totals.DiscountAmount.IsZero())
	assert.True(t, totals.Total.Equal(d(2000)), "total never exceeds the subtotal")
}

func TestComputeTotalsNegativePercentageDiscountIgnored(t *testing.T) {
	totals := ComputeTotals(PricingInput{
		Lines:          []CartLine{productLine("Soin", 2000, 1)},
		ManualDiscount: &ManualDiscount{Value: d(-10), Type: "percentage"},
		CanDiscount:    true,
	})

	assert.True(t, totals.DiscountAmount.IsZero())
	assert.True(t, totals.DiscountPercent.IsZero())
	assert.True(t, totals.Total.Equal(d(2000)))
}

func TestComputeTotalsNegativeGiftCardAmountIgnored(t *testing.T) {
	card := &model.GiftCard{ID: uuid.New(), Code: "GC-N", Balance: d(5000), Status: "active"}
	totals := ComputeTotals(PricingInput{
		Lines:          []CartLine{productLine("Soin", 2000, 1)},
		GiftCard:       card,
		GiftCardAmount: d(-300),
	})

	assert.True(t, totals.GiftCardUsed.IsZero())
	assert.True(t, totals.Total.Equal(d(2000)))
}

func TestComputeTotalsGiftCardPartialBalance(t *testing.T) {
	card := &model.GiftCard{ID: uuid.New(), Code: "GC-1", Balance: d(500), Status: "active"}
	totals := ComputeTotals(PricingInput{
		Lines:          []CartLine{productLine("Tresses", 2000, 1)},
		GiftCard:       card,
		GiftCardAmount: d(2000),
	})

	assert.True(t, totals.GiftCardUsed.Equal(d(500)), "usage capped at card balance")
	assert.True(t, totals.Total.Equal(d(1500)))
}

func TestComputeTotalsGiftCardCappedAtRemainder(t *testing.T) {
	// Discount first, then the card covers at most the remainder.
	card := &model.GiftCard{ID: uuid.New(), Code: "GC-2", Balance: d(5000), Status: "active"}
	totals := ComputeTotals(PricingInput{
		Lines:          []CartLine{productLine("Tresses", 2000, 1)},
		ManualDiscount: &ManualDiscount{Value: d(200), Type: "amount"},
		CanDiscount:    true,
		GiftCard:       card,
		GiftCardAmount: d(5000),
	})

	assert.True(t, totals.DiscountAmount.Equal(d(200)))
	assert.True(t, totals.GiftCardUsed.Equal(d(1800)), "card never exceeds the payable remainder")
	assert.True(t, totals.Total.IsZero())
}

func TestComputeTotalsGiftCardAfterDiscountWithLowBalance(t *testing.T) {
	card := &model.GiftCard{ID: uuid.New(), Code: "GC-3", Balance: d(700), Status: "active"}
	totals := ComputeTotals(PricingInput{
		Lines:          []CartLine{productLine("Tresses", 2000, 1)},
		ManualDiscount: &ManualDiscount{Value: d(200), Type: "amount"},
		CanDiscount:    true,
		GiftCard:       card,
		GiftCardAmount: d(1800),
	})

	assert.True(t, totals.GiftCardUsed.Equal(d(700)))
	assert.True(t, totals.Total.Equal(d(1100)))
}

func TestComputeTotalsTruncatesToWholeFrancs(t *testing.T) {
	// 3 × 333.33 = 999.99 → line truncates to 999
	line := CartLine{
		LineID:    uuid.New(),
		Kind:      LineProduct,
		RefID:     uuid.New(),
		Label:     "Echantillon",
		UnitPrice: decimal.RequireFromString("333.33"),
		Quantity:  3,
	}
	totals := ComputeTotals(PricingInput{Lines: []CartLine{line}})
	assert.True(t, totals.Subtotal.Equal(d(999)))

	// 15% of 999 = 149.85 → discount truncates to 149
	totals = ComputeTotals(PricingInput{
		Lines:          []CartLine{line},
		ManualDiscount: &ManualDiscount{Value: d(15), Type: "percentage"},
		CanDiscount:    true,
	})
	assert.True(t, totals.DiscountAmount.Equal(d(149)))
	assert.True(t, totals.Total.Equal(d(850)))
}

func TestLoyaltyPoints(t *testing.T) {
	assert.Equal(t, 0, LoyaltyPoints(d(999)))
	assert.Equal(t, 1, LoyaltyPoints(d(1000)))
	assert.Equal(t, 1, LoyaltyPoints(d(1999)))
	assert.Equal(t, 12, LoyaltyPoints(d(12500)))
	assert.Equal(t, 0, LoyaltyPoints(decimal.Zero))
}

func TestPromotionValidAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	promo := model.Promotion{
		IsActive:   true,
		ActiveFrom: now.AddDate(0, 0, -1),
		ActiveTo:   now.AddDate(0, 0, 1),
	}
	assert.True(t, promo.ValidAt(now))

	promo.IsActive = false
	assert.False(t, promo.ValidAt(now))

	promo.IsActive = true
	assert.False(t, promo.ValidAt(now.AddDate(0, 0, 5)))
	assert.False(t, promo.ValidAt(now.AddDate(0, 0, -5)))
}
