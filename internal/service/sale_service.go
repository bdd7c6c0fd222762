package service

import (
	"context"
	"errors"
	"time"

	"github.com/DoniniDjessa/cercleof-sub000/internal/dto"
	"github.com/DoniniDjessa/cercleof-sub000/internal/model"
	"github.com/DoniniDjessa/cercleof-sub000/internal/repository"

	"github.com/google/uuid"
)

// SaleService reads committed sales and re-renders their receipts.
type SaleService interface {
	List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SaleListItem, error)
	Receipt(ctx context.Context, id uuid.UUID) (string, error)
}

type saleService struct {
	repo      repository.SaleRepository
	storeName string
}

func NewSaleService(repo repository.SaleRepository, storeName string) SaleService {
	return &saleService{repo: repo, storeName: storeName}
}

func (s *saleService) List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Status == "" {
		filter.Status = "paid"
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleListItem, 0, len(sales))
	for i := range sales {
		items = append(items, *saleToListItem(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *saleService) Get(ctx context.Context, id uuid.UUID) (*dto.SaleListItem, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("sale not found")
	}
	return saleToListItem(sale), nil
}

// Receipt re-renders the receipt for a committed sale. The renderer is pure
// and the sale is immutable, so the output is byte-identical on every call.
func (s *saleService) Receipt(ctx context.Context, id uuid.UUID) (string, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", errors.New("sale not found")
	}

	staffName := ""
	if sale.User != nil {
		staffName = sale.User.Name
	}
	clientName := ""
	if sale.Client != nil {
		clientName = sale.Client.Name
	}

	return RenderReceipt(ReceiptData{
		StoreName:  s.storeName,
		SaleID:     sale.ID.String(),
		CreatedAt:  sale.CreatedAt,
		StaffName:  staffName,
		ClientName: clientName,
		Items:      sale.Items,
		Totals: Totals{
			Subtotal:        sale.Subtotal,
			DiscountAmount:  sale.DiscountAmount,
			DiscountPercent: sale.DiscountPercent,
			GiftCardUsed:    sale.GiftCardAmount,
			Total:           sale.Total,
		},
		PaymentMethod: sale.PaymentMethod,
		LoyaltyPoints: LoyaltyPoints(sale.Total),
	}), nil
}

func saleToListItem(v *model.Sale) *dto.SaleListItem {
	items := make([]dto.SaleItemResponse, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, dto.SaleItemResponse{
			Label:     item.Label,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}
	clientName := ""
	var clientID *string
	if v.ClientID != nil {
		id := v.ClientID.String()
		clientID = &id
	}
	if v.Client != nil {
		clientName = v.Client.Name
	}
	staffName := ""
	if v.User != nil {
		staffName = v.User.Name
	}
	return &dto.SaleListItem{
		ID:             v.ID.String(),
		ClientID:       clientID,
		ClientName:     clientName,
		UserID:         v.UserID.String(),
		StaffName:      staffName,
		LineType:       v.LineType,
		Subtotal:       v.Subtotal,
		DiscountAmount: v.DiscountAmount,
		GiftCardAmount: v.GiftCardAmount,
		Total:          v.Total,
		PaymentMethod:  v.PaymentMethod,
		Status:         v.Status,
		Items:          items,
		CreatedAt:      v.CreatedAt.Format(time.RFC3339),
	}
}
