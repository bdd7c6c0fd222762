package infra

// pdf.go — Receipt PDF generation using go-pdf/fpdf.
// Generates A7-size thermal receipt-style documents with:
//   - Store name header
//   - Sale reference and timestamp
//   - Item table (label, quantity, line total)
//   - Discount and gift-card lines (if applicable)
//   - Bold total and payment method
//
// The output file is saved to storagePath/receipt_{saleID}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DoniniDjessa/cercleof-sub000/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateReceiptPDF renders a committed Sale (with preloaded Items) as a
// PDF receipt. storagePath is created if needed. Returns the absolute path
// to the generated file.
func GenerateReceiptPDF(sale *model.Sale, storeName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("receipt_%s.pdf", sale.ID.String())
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm — close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, storeName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Recu de vente", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Sale info ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Vente %s", sale.ID.String()[:8]), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, sale.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items header ──────────────────────────────────────────────────────────
	col1 := contentW * 0.52 // label
	col2 := contentW * 0.16 // qty
	col3 := contentW * 0.32 // line total

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Article", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qte", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Montant", "B", 1, "R", false, 0, "")

	// ── Item rows ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	for _, item := range sale.Items {
		label := item.Label
		if r := []rune(label); len(r) > 22 {
			label = string(r[:21]) + "…"
		}
		pdf.CellFormat(col1, 5, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, item.LineTotal.StringFixed(0), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	if !sale.DiscountAmount.IsZero() {
		pdf.CellFormat(col1+col2, 5, "Remise:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "-"+sale.DiscountAmount.StringFixed(0), "", 1, "R", false, 0, "")
	}
	if !sale.GiftCardAmount.IsZero() {
		pdf.CellFormat(col1+col2, 5, "Carte cadeau:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "-"+sale.GiftCardAmount.StringFixed(0), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, sale.Total.StringFixed(0)+" FCFA", "", 1, "R", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1+col2, 4, "Paiement:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, sale.PaymentMethod, "", 1, "R", false, 0, "")

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Merci de votre visite !", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
