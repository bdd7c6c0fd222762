package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/DoniniDjessa/cercleof-sub000/internal/model"
)

// receiptWidth matches 40-column thermal paper.
const receiptWidth = 40

// ReceiptData is everything the receipt renderer needs. It carries plain
// values only so rendering stays pure: same input, same bytes, call it as
// many times as you like.
type ReceiptData struct {
	StoreName     string
	SaleID        string
	CreatedAt     time.Time
	StaffName     string
	ClientName    string
	Items         []model.SaleItem
	Totals        Totals
	PaymentMethod string
	LoyaltyPoints int
}

// RenderReceipt formats a committed sale as a printable text document.
// Line order reproduces the committed SaleItems order, and every amount is
// the already-truncated decimal persisted with the sale — no re-rounding.
func RenderReceipt(d ReceiptData) string {
	var b strings.Builder
	sep := strings.Repeat("-", receiptWidth)

	center(&b, d.StoreName)
	center(&b, "Recu de vente")
	b.WriteString(sep + "\n")

	fmt.Fprintf(&b, "Vente  %s\n", shortID(d.SaleID))
	fmt.Fprintf(&b, "Date   %s\n", d.CreatedAt.Format("02/01/2006 15:04"))
	fmt.Fprintf(&b, "Staff  %s\n", d.StaffName)
	if d.ClientName != "" {
		fmt.Fprintf(&b, "Client %s\n", d.ClientName)
	}
	b.WriteString(sep + "\n")

	for _, it := range d.Items {
		// Truncate on runes: variant labels carry multibyte dashes.
		label := it.Label
		if r := []rune(label); len(r) > 24 {
			label = string(r[:23]) + "…"
		}
		fmt.Fprintf(&b, "%-24s x%-3d %10s\n", label, it.Quantity, it.LineTotal.StringFixed(0))
	}
	b.WriteString(sep + "\n")

	amountLine(&b, "Sous-total", d.Totals.Subtotal.StringFixed(0))
	if d.Totals.DiscountAmount.IsPositive() {
		amountLine(&b, "Remise", "-"+d.Totals.DiscountAmount.StringFixed(0))
	}
	if d.Totals.GiftCardUsed.IsPositive() {
		amountLine(&b, "Carte cadeau", "-"+d.Totals.GiftCardUsed.StringFixed(0))
	}
	amountLine(&b, "TOTAL", d.Totals.Total.StringFixed(0)+" FCFA")
	amountLine(&b, "Paiement", d.PaymentMethod)
	if d.LoyaltyPoints > 0 {
		amountLine(&b, "Points fidelite", fmt.Sprintf("+%d", d.LoyaltyPoints))
	}

	b.WriteString(sep + "\n")
	center(&b, "Merci de votre visite !")

	return b.String()
}

func center(b *strings.Builder, s string) {
	pad := (receiptWidth - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	b.WriteString(strings.Repeat(" ", pad) + s + "\n")
}

func amountLine(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%-20s%20s\n", label, value)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
