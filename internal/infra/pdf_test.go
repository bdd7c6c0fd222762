package infra

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DoniniDjessa/cercleof-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSaleWithItems() *model.Sale {
	saleID := uuid.New()
	return &model.Sale{
		ID:            saleID,
		LineType:      "mixed",
		Subtotal:      decimal.NewFromInt(11000),
		Total:         decimal.NewFromInt(11000),
		PaymentMethod: "cash",
		Status:        "paid",
		CreatedAt:     time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC),
		Items: []model.SaleItem{
			{ID: uuid.New(), SaleID: saleID, Label: "Tresses collees", Quantity: 1, UnitPrice: decimal.NewFromInt(8000), LineTotal: decimal.NewFromInt(8000)},
			{ID: uuid.New(), SaleID: saleID, Label: "Shampooing", Quantity: 2, UnitPrice: decimal.NewFromInt(1500), LineTotal: decimal.NewFromInt(3000)},
		},
	}
}

func TestGenerateReceiptPDF(t *testing.T) {
	tmpDir := t.TempDir()
	sale := buildSaleWithItems()

	pdfPath, err := GenerateReceiptPDF(sale, "Cercleof", tmpDir)

	require.NoError(t, err)
	assert.Equal(t, "receipt_"+sale.ID.String()+".pdf", filepath.Base(pdfPath))
	info, statErr := os.Stat(pdfPath)
	require.NoError(t, statErr)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerateReceiptPDF_WithDiscountAndGiftCard(t *testing.T) {
	tmpDir := t.TempDir()
	sale := buildSaleWithItems()
	sale.DiscountAmount = decimal.NewFromInt(1000)
	sale.GiftCardAmount = decimal.NewFromInt(2000)
	sale.Total = decimal.NewFromInt(8000)

	pdfPath, err := GenerateReceiptPDF(sale, "Cercleof", tmpDir)

	require.NoError(t, err)
	_, statErr := os.Stat(pdfPath)
	assert.NoError(t, statErr)
}

func TestGenerateReceiptPDF_CreatesStorageDir(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "receipts", "2026")

	_, err := GenerateReceiptPDF(buildSaleWithItems(), "Cercleof", nested)

	require.NoError(t, err)
	_, statErr := os.Stat(nested)
	assert.NoError(t, statErr)
}
