package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineKind discriminates product and service cart lines.
type LineKind string

const (
	LineProduct LineKind = "product"
	LineService LineKind = "service"
)

// CartLine is one in-progress line: a product/variant or a service, with a
// quantity and a unit price that the cashier may override.
type CartLine struct {
	LineID    uuid.UUID
	Kind      LineKind
	RefID     uuid.UUID
	VariantID *uuid.UUID
	Label     string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Total returns unitPrice * quantity truncated to the display unit (whole
// francs). Truncation happens once, at line level — the same values flow
// into pricing and persistence so totals cannot drift by a unit.
func (l CartLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Truncate(0)
}

// ManualDiscount is the cashier-entered discount; it contributes only when
// the caller holds the discount capability and no promotion applies.
type ManualDiscount struct {
	Value decimal.Decimal
	Type  string // "percentage" | "amount"
}

// Cart is the in-memory, mutable line collection for one in-progress
// checkout. Lines keep insertion order, which is also the display and
// receipt order. A Cart is owned by a single request flow and is not safe
// for concurrent mutation.
type Cart struct {
	lines []CartLine
}

func NewCart() *Cart { return &Cart{} }

// AddLine appends a line, assigning it a fresh line id.
func (c *Cart) AddLine(l CartLine) uuid.UUID {
	if l.LineID == uuid.Nil {
		l.LineID = uuid.New()
	}
	c.lines = append(c.lines, l)
	return l.LineID
}

// RemoveLine deletes the line with the given id, preserving order.
func (c *Cart) RemoveLine(lineID uuid.UUID) bool {
	for i, l := range c.lines {
		if l.LineID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// SetQuantity updates a line's quantity; qty must be positive.
func (c *Cart) SetQuantity(lineID uuid.UUID, qty int) bool {
	if qty <= 0 {
		return false
	}
	for i := range c.lines {
		if c.lines[i].LineID == lineID {
			c.lines[i].Quantity = qty
			return true
		}
	}
	return false
}

// OverridePrice replaces a line's unit price.
func (c *Cart) OverridePrice(lineID uuid.UUID, price decimal.Decimal) bool {
	if price.IsNegative() {
		return false
	}
	for i := range c.lines {
		if c.lines[i].LineID == lineID {
			c.lines[i].UnitPrice = price
			return true
		}
	}
	return false
}

// Lines returns the lines in insertion order.
func (c *Cart) Lines() []CartLine { return c.lines }

func (c *Cart) Empty() bool { return len(c.lines) == 0 }

// Subtotal sums all line totals.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

// LineType classifies the cart as "product", "service" or "mixed".
func (c *Cart) LineType() string {
	var hasProduct, hasService bool
	for _, l := range c.lines {
		switch l.Kind {
		case LineProduct:
			hasProduct = true
		case LineService:
			hasService = true
		}
	}
	switch {
	case hasProduct && hasService:
		return "mixed"
	case hasService:
		return "service"
	default:
		return "product"
	}
}

// Clear destroys all lines (submit or cancel).
func (c *Cart) Clear() { c.lines = nil }
