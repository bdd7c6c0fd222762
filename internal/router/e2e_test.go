//go:build integration

package router_test

// e2e_test.go
// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v
//
// Covered flows:
//   - login → checkout a mixed cart → list sales → re-fetch the receipt
//   - promotion code applied at checkout, usage counted once
//   - gift card validate → debit at checkout → transaction history
//   - role gating on the gift-card history endpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DoniniDjessa/cercleof-sub000/internal/config"
	"github.com/DoniniDjessa/cercleof-sub000/internal/infra"
	"github.com/DoniniDjessa/cercleof-sub000/internal/model"
	"github.com/DoniniDjessa/cercleof-sub000/internal/router"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server       *httptest.Server
	db           *gorm.DB
	cashierToken string
	managerToken string
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("cercleof-e2e"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.User{
		ID:           uuid.New(),
		Username:     username,
		Name:         username,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}).Error)
}

func login(t *testing.T, srv *httptest.Server, username string) string {
	t.Helper()
	resp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": username, "password": "cercleof-e2e"}), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("cercleof_test"),
		tcPostgres.WithUsername("cercleof"),
		tcPostgres.WithPassword("cercleof"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		StoreName:          "Cercleof",
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	seedUser(t, db, "cashier.e2e", "cashier")
	seedUser(t, db, "manager.e2e", "manager")

	mailerCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	r := router.New(cfg, db, rdb, mailerCB)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{
		server:       srv,
		db:           db,
		cashierToken: login(t, srv, "cashier.e2e"),
		managerToken: login(t, srv, "manager.e2e"),
	}
}

func (e *testEnv) seedProduct(t *testing.T, name string, price int64, stock int) *model.Product {
	t.Helper()
	p := &model.Product{
		ID:            uuid.New(),
		Name:          name,
		Category:      "soin",
		Price:         decimal.NewFromInt(price),
		StockQuantity: stock,
		Active:        true,
	}
	require.NoError(t, e.db.Create(p).Error)
	return p
}

func (e *testEnv) seedService(t *testing.T, name string, price int64) *model.Service {
	t.Helper()
	s := &model.Service{
		ID:          uuid.New(),
		Name:        name,
		Price:       decimal.NewFromInt(price),
		DurationMin: 45,
		Active:      true,
	}
	require.NoError(t, e.db.Create(s).Error)
	return s
}

func (e *testEnv) seedClient(t *testing.T, name string) *model.Client {
	t.Helper()
	c := &model.Client{ID: uuid.New(), Name: name, Active: true}
	require.NoError(t, e.db.Create(c).Error)
	return c
}

type checkoutResp struct {
	SaleID         string `json:"sale_id"`
	LineType       string `json:"line_type"`
	Subtotal       string `json:"subtotal"`
	DiscountAmount string `json:"discount_amount"`
	GiftCardUsed   string `json:"gift_card_used"`
	Total          string `json:"total"`
	Status         string `json:"status"`
	LoyaltyPoints  int    `json:"loyalty_points_earned"`
	Receipt        string `json:"receipt"`
	Warnings       []struct {
		Step   string `json:"step"`
		Reason string `json:"reason"`
	} `json:"warnings"`
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_FullCheckoutCycle(t *testing.T) {
	env := setupTestEnv(t)

	shampoo := env.seedProduct(t, "Shampooing hydratant", 1500, 10)
	braids := env.seedService(t, "Tresses collees", 8000)
	client := env.seedClient(t, "Mme Diallo")

	resp := do(t, env.server, "POST", "/v1/checkout",
		jsonBody(t, map[string]any{
			"client_id": client.ID.String(),
			"lines": []map[string]any{
				{"kind": "product", "ref_id": shampoo.ID.String(), "quantity": 2},
				{"kind": "service", "ref_id": braids.ID.String(), "quantity": 1},
			},
			"payment_method": "cash",
		}), env.cashierToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var sale checkoutResp
	decodeJSON(t, resp, &sale)
	assert.Equal(t, "mixed", sale.LineType)
	assert.Equal(t, "paid", sale.Status)
	assert.Equal(t, "11000", sale.Subtotal)
	assert.Equal(t, "11000", sale.Total)
	assert.Equal(t, 11, sale.LoyaltyPoints)
	assert.Empty(t, sale.Warnings)
	assert.Contains(t, sale.Receipt, "Cercleof")

	// Stock decremented
	var p model.Product
	require.NoError(t, env.db.First(&p, "id = ?", shampoo.ID).Error)
	assert.Equal(t, 8, p.StockQuantity)

	// Sale appears in the list
	listResp := do(t, env.server, "GET", "/v1/sales?date="+time.Now().Format("2006-01-02"), nil, env.cashierToken)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, listResp, &list)
	assert.Equal(t, int64(1), list.Total)

	// Receipt re-renders byte-identically
	rcptResp := do(t, env.server, "GET", "/v1/sales/"+sale.SaleID+"/receipt", nil, env.cashierToken)
	require.Equal(t, http.StatusOK, rcptResp.StatusCode)
	var rcpt struct {
		Receipt string `json:"receipt"`
	}
	decodeJSON(t, rcptResp, &rcpt)
	assert.Equal(t, sale.Receipt, rcpt.Receipt)
}

func TestE2E_PromotionAppliedOnce(t *testing.T) {
	env := setupTestEnv(t)

	p := env.seedProduct(t, "Creme capillaire", 2000, 5)
	promo := &model.Promotion{
		ID:         uuid.New(),
		Code:       "MARS10",
		Value:      decimal.NewFromInt(10),
		ValueType:  "percentage",
		ActiveFrom: time.Now().AddDate(0, 0, -1),
		ActiveTo:   time.Now().AddDate(0, 0, 7),
		IsActive:   true,
	}
	require.NoError(t, env.db.Create(promo).Error)

	// Pre-flight validation endpoint
	valResp := do(t, env.server, "POST", "/v1/promotions/validate",
		jsonBody(t, map[string]any{"code": "MARS10"}), env.cashierToken)
	require.Equal(t, http.StatusOK, valResp.StatusCode)

	resp := do(t, env.server, "POST", "/v1/checkout",
		jsonBody(t, map[string]any{
			"lines":          []map[string]any{{"kind": "product", "ref_id": p.ID.String(), "quantity": 1}},
			"promotion_code": "MARS10",
			"payment_method": "card",
		}), env.cashierToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var sale checkoutResp
	decodeJSON(t, resp, &sale)
	assert.Equal(t, "200", sale.DiscountAmount)
	assert.Equal(t, "1800", sale.Total)

	var stored model.Promotion
	require.NoError(t, env.db.First(&stored, "id = ?", promo.ID).Error)
	assert.Equal(t, 1, stored.UsageCount)
}

func TestE2E_GiftCardDebitAndHistory(t *testing.T) {
	env := setupTestEnv(t)

	p := env.seedProduct(t, "Huile de ricin", 3000, 5)
	card := &model.GiftCard{
		ID:      uuid.New(),
		Code:    "GC-E2E-1",
		Balance: decimal.NewFromInt(1000),
		Status:  "active",
	}
	require.NoError(t, env.db.Create(card).Error)

	resp := do(t, env.server, "POST", "/v1/checkout",
		jsonBody(t, map[string]any{
			"lines":          []map[string]any{{"kind": "product", "ref_id": p.ID.String(), "quantity": 1}},
			"gift_card_code": "GC-E2E-1",
			"payment_method": "cash",
		}), env.cashierToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var sale checkoutResp
	decodeJSON(t, resp, &sale)
	assert.Equal(t, "1000", sale.GiftCardUsed)
	assert.Equal(t, "2000", sale.Total)
	assert.Empty(t, sale.Warnings)

	// Balance drained → card flips to used
	var stored model.GiftCard
	require.NoError(t, env.db.First(&stored, "id = ?", card.ID).Error)
	assert.True(t, stored.Balance.IsZero())
	assert.Equal(t, "used", stored.Status)

	// History is manager/admin only
	denied := do(t, env.server, "GET", "/v1/giftcards/"+card.ID.String()+"/transactions", nil, env.cashierToken)
	assert.Equal(t, http.StatusForbidden, denied.StatusCode)

	histResp := do(t, env.server, "GET", "/v1/giftcards/"+card.ID.String()+"/transactions", nil, env.managerToken)
	require.Equal(t, http.StatusOK, histResp.StatusCode)
	var hist []struct {
		Amount        string `json:"amount"`
		BalanceBefore string `json:"balance_before"`
		BalanceAfter  string `json:"balance_after"`
	}
	decodeJSON(t, histResp, &hist)
	require.Len(t, hist, 1)
	assert.Equal(t, "-1000", hist[0].Amount)
	assert.Equal(t, "1000", hist[0].BalanceBefore)
	assert.Equal(t, "0", hist[0].BalanceAfter)
}

func TestE2E_AnonymousCheckoutRejected(t *testing.T) {
	env := setupTestEnv(t)
	p := env.seedProduct(t, "Produit", 500, 1)

	resp := do(t, env.server, "POST", "/v1/checkout",
		jsonBody(t, map[string]any{
			"lines":          []map[string]any{{"kind": "product", "ref_id": p.ID.String(), "quantity": 1}},
			"payment_method": "cash",
		}), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
