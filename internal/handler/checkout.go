package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/DoniniDjessa/cercleof-sub000/internal/apierror"
	"github.com/DoniniDjessa/cercleof-sub000/internal/dto"
	"github.com/DoniniDjessa/cercleof-sub000/internal/middleware"
	"github.com/DoniniDjessa/cercleof-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CheckoutHandler struct{ svc service.CheckoutService }

func NewCheckoutHandler(svc service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

// Commit godoc
// @Summary      Commit a sale
// @Description  Commits the cart as a paid sale: applies discounts and gift card, decrements stock, updates loyalty and writes the full ledger trail. Non-fatal step failures are reported in the warnings array.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CheckoutRequest true "Cart, tender and adjustments"
// @Success      201  {object} dto.CheckoutResponse
// @Failure      400  {object} apierror.APIError
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/checkout [post]
func (h *CheckoutHandler) Commit(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid token subject"))
		return
	}

	result, err := h.svc.Commit(c.Request.Context(), userID, req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrActorNotFound) {
			status = http.StatusUnauthorized
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, checkoutResultToResponse(result))
}

func checkoutResultToResponse(r *service.CheckoutResult) dto.CheckoutResponse {
	items := make([]dto.SaleItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, dto.SaleItemResponse{
			Label:     it.Label,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
		})
	}

	var warnings []dto.FailedStepResponse
	for _, w := range r.Warnings {
		warnings = append(warnings, dto.FailedStepResponse{Step: w.Step, Reason: w.Reason})
	}

	return dto.CheckoutResponse{
		SaleID:          r.Sale.ID.String(),
		LineType:        r.Sale.LineType,
		Items:           items,
		Subtotal:        r.Totals.Subtotal,
		DiscountAmount:  r.Totals.DiscountAmount,
		DiscountPercent: r.Totals.DiscountPercent,
		GiftCardUsed:    r.Totals.GiftCardUsed,
		Total:           r.Totals.Total,
		PaymentMethod:   r.Sale.PaymentMethod,
		Status:          r.Sale.Status,
		LoyaltyPoints:   r.LoyaltyPoints,
		Receipt:         r.Receipt,
		Warnings:        warnings,
		CreatedAt:       r.Sale.CreatedAt.Format(time.RFC3339),
	}
}
