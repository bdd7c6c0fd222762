package service

// stubs_test.go
// Hand-written in-memory repository stubs shared by the service tests.
// Each stub implements the full repository interface; failure injection is
// done through fail* flags so tests can exercise the non-fatal step paths.

import (
	"context"
	"errors"
	"time"

	"github.com/DoniniDjessa/cercleof-sub000/internal/dto"
	"github.com/DoniniDjessa/cercleof-sub000/internal/model"
	"github.com/DoniniDjessa/cercleof-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errNotFound = errors.New("record not found")

// ── SaleRepository ───────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales      map[uuid.UUID]*model.Sale
	items      map[uuid.UUID][]model.SaleItem
	usedPromos map[uuid.UUID]uuid.UUID // clientID → promotionID
	failCreate bool
	failItems  bool
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{
		sales:      make(map[uuid.UUID]*model.Sale),
		items:      make(map[uuid.UUID][]model.SaleItem),
		usedPromos: make(map[uuid.UUID]uuid.UUID),
	}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if r.failCreate {
		return errors.New("insert failed")
	}
	cloned := *s
	r.sales[s.ID] = &cloned
	return nil
}

func (r *stubSaleRepo) CreateItemsTx(_ *gorm.DB, items []model.SaleItem) error {
	if r.failItems {
		return errors.New("insert failed")
	}
	if len(items) == 0 {
		return nil
	}
	r.items[items[0].SaleID] = append([]model.SaleItem{}, items...)
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, errNotFound
	}
	cloned := *s
	cloned.Items = r.items[id]
	return &cloned, nil
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	var out []model.Sale
	for _, s := range r.sales {
		cloned := *s
		cloned.Items = r.items[s.ID]
		out = append(out, cloned)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) ClientUsedPromotion(_ context.Context, clientID, promotionID uuid.UUID) (bool, error) {
	return r.usedPromos[clientID] == promotionID, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── ProductRepository ────────────────────────────────────────────────────────

type stubProductRepo struct {
	products  map[uuid.UUID]*model.Product
	variants  map[uuid.UUID]*model.ProductVariant
	failStock map[uuid.UUID]bool // products whose stock decrement fails
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		products:  make(map[uuid.UUID]*model.Product),
		variants:  make(map[uuid.UUID]*model.ProductVariant),
		failStock: make(map[uuid.UUID]bool),
	}
}

func (r *stubProductRepo) add(p *model.Product) {
	r.products[p.ID] = p
	for i := range p.Variants {
		r.variants[p.Variants[i].ID] = &p.Variants[i]
	}
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindVariantByID(_ context.Context, id uuid.UUID) (*model.ProductVariant, error) {
	v, ok := r.variants[id]
	if !ok {
		return nil, errNotFound
	}
	return v, nil
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	return nil, 0, nil
}

func (r *stubProductRepo) DecrementStockTx(_ *gorm.DB, id uuid.UUID, qty int) error {
	if r.failStock[id] {
		return errors.New("stock update failed")
	}
	p, ok := r.products[id]
	if !ok {
		return errNotFound
	}
	p.StockQuantity -= qty
	return nil
}

func (r *stubProductRepo) DecrementVariantStockTx(_ *gorm.DB, id uuid.UUID, qty int) error {
	v, ok := r.variants[id]
	if !ok {
		return errNotFound
	}
	v.Quantity -= qty
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── ServiceRepository ────────────────────────────────────────────────────────

type stubServiceRepo struct {
	services map[uuid.UUID]*model.Service
	entries  []model.SalonEntry
}

func newStubServiceRepo() *stubServiceRepo {
	return &stubServiceRepo{services: make(map[uuid.UUID]*model.Service)}
}

func (r *stubServiceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, errNotFound
	}
	return s, nil
}

func (r *stubServiceRepo) List(_ context.Context) ([]model.Service, error) { return nil, nil }

func (r *stubServiceRepo) CreateSalonEntryTx(_ *gorm.DB, e *model.SalonEntry) error {
	r.entries = append(r.entries, *e)
	return nil
}

var _ repository.ServiceRepository = (*stubServiceRepo)(nil)

// ── ClientRepository ─────────────────────────────────────────────────────────

type stubClientRepo struct {
	clients map[uuid.UUID]*model.Client
	loyalty map[uuid.UUID]*model.LoyaltyRecord
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{
		clients: make(map[uuid.UUID]*model.Client),
		loyalty: make(map[uuid.UUID]*model.LoyaltyRecord),
	}
}

func (r *stubClientRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, errNotFound
	}
	return c, nil
}

func (r *stubClientRepo) UpdateVisitTotalsTx(_ *gorm.DB, id uuid.UUID, spent decimal.Decimal, visitedAt time.Time) error {
	c, ok := r.clients[id]
	if !ok {
		return errNotFound
	}
	c.TotalSpent = c.TotalSpent.Add(spent)
	c.LastVisitDate = &visitedAt
	return nil
}

func (r *stubClientRepo) UpsertLoyaltyTx(_ *gorm.DB, clientID uuid.UUID, points int) error {
	rec, ok := r.loyalty[clientID]
	if !ok {
		r.loyalty[clientID] = &model.LoyaltyRecord{ID: uuid.New(), ClientID: clientID, Points: points, Status: "active"}
		return nil
	}
	rec.Points += points
	return nil
}

func (r *stubClientRepo) FindLoyalty(_ context.Context, clientID uuid.UUID) (*model.LoyaltyRecord, error) {
	rec, ok := r.loyalty[clientID]
	if !ok {
		return nil, errNotFound
	}
	return rec, nil
}

var _ repository.ClientRepository = (*stubClientRepo)(nil)

// ── PromotionRepository ──────────────────────────────────────────────────────

type stubPromotionRepo struct {
	byCode map[string]*model.Promotion
}

func newStubPromotionRepo() *stubPromotionRepo {
	return &stubPromotionRepo{byCode: make(map[string]*model.Promotion)}
}

func (r *stubPromotionRepo) FindByCode(_ context.Context, code string) (*model.Promotion, error) {
	p, ok := r.byCode[code]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

func (r *stubPromotionRepo) IncrementUsageTx(_ *gorm.DB, id uuid.UUID) error {
	for _, p := range r.byCode {
		if p.ID == id {
			p.UsageCount++
			return nil
		}
	}
	return errNotFound
}

var _ repository.PromotionRepository = (*stubPromotionRepo)(nil)

// ── UserRepository ───────────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Active {
			return u, nil
		}
	}
	return nil, errNotFound
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// ── GiftCardRepository ───────────────────────────────────────────────────────

type stubGiftCardRepo struct {
	byCode       map[string]*model.GiftCard
	byID         map[uuid.UUID]*model.GiftCard
	transactions []model.GiftCardTransaction
	failDebit    bool
}

func newStubGiftCardRepo() *stubGiftCardRepo {
	return &stubGiftCardRepo{
		byCode: make(map[string]*model.GiftCard),
		byID:   make(map[uuid.UUID]*model.GiftCard),
	}
}

func (r *stubGiftCardRepo) add(c *model.GiftCard) {
	r.byCode[c.Code] = c
	r.byID[c.ID] = c
}

func (r *stubGiftCardRepo) FindByCode(_ context.Context, code string) (*model.GiftCard, error) {
	c, ok := r.byCode[code]
	if !ok {
		return nil, errNotFound
	}
	return c, nil
}

func (r *stubGiftCardRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	c, ok := r.byID[id]
	if !ok {
		return errNotFound
	}
	c.Status = status
	return nil
}

func (r *stubGiftCardRepo) DebitTx(_ *gorm.DB, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if r.failDebit {
		return decimal.Zero, errors.New("debit failed")
	}
	c, ok := r.byID[id]
	if !ok {
		return decimal.Zero, errNotFound
	}
	if c.Balance.LessThan(amount) {
		return decimal.Zero, repository.ErrInsufficientBalance
	}
	c.Balance = c.Balance.Sub(amount)
	return c.Balance, nil
}

func (r *stubGiftCardRepo) SetStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	c, ok := r.byID[id]
	if !ok {
		return errNotFound
	}
	c.Status = status
	return nil
}

func (r *stubGiftCardRepo) CreateTransactionTx(_ *gorm.DB, t *model.GiftCardTransaction) error {
	r.transactions = append(r.transactions, *t)
	return nil
}

func (r *stubGiftCardRepo) ListTransactions(_ context.Context, giftCardID uuid.UUID) ([]model.GiftCardTransaction, error) {
	var out []model.GiftCardTransaction
	for _, t := range r.transactions {
		if t.GiftCardID == giftCardID {
			out = append(out, t)
		}
	}
	return out, nil
}

var _ repository.GiftCardRepository = (*stubGiftCardRepo)(nil)

// ── LedgerRepository ─────────────────────────────────────────────────────────

type stubLedgerRepo struct {
	revenues      []model.RevenueEntry
	audits        []model.AuditAction
	deliveries    []model.Delivery
	notifications map[uuid.UUID]*model.Notification
	failRevenue   bool
}

func newStubLedgerRepo() *stubLedgerRepo {
	return &stubLedgerRepo{notifications: make(map[uuid.UUID]*model.Notification)}
}

func (r *stubLedgerRepo) CreateRevenueTx(_ *gorm.DB, e *model.RevenueEntry) error {
	if r.failRevenue {
		return errors.New("insert failed")
	}
	r.revenues = append(r.revenues, *e)
	return nil
}

func (r *stubLedgerRepo) CreateAuditTx(_ *gorm.DB, a *model.AuditAction) error {
	r.audits = append(r.audits, *a)
	return nil
}

func (r *stubLedgerRepo) CreateDeliveryTx(_ *gorm.DB, d *model.Delivery) error {
	r.deliveries = append(r.deliveries, *d)
	return nil
}

func (r *stubLedgerRepo) CreateNotificationTx(_ *gorm.DB, n *model.Notification) error {
	cloned := *n
	r.notifications[n.ID] = &cloned
	return nil
}

func (r *stubLedgerRepo) FindNotificationByID(_ context.Context, id uuid.UUID) (*model.Notification, error) {
	n, ok := r.notifications[id]
	if !ok {
		return nil, errNotFound
	}
	return n, nil
}

func (r *stubLedgerRepo) ListPendingNotificationRetries(_ context.Context, before time.Time, limit int) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range r.notifications {
		if n.Status == "failed" && n.NextRetryAt != nil && !n.NextRetryAt.After(before) {
			out = append(out, *n)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *stubLedgerRepo) UpdateNotification(_ context.Context, n *model.Notification) error {
	cloned := *n
	r.notifications[n.ID] = &cloned
	return nil
}

var _ repository.LedgerRepository = (*stubLedgerRepo)(nil)
