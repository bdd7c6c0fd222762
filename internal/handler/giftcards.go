package handler

import (
	"net/http"
	"time"

	"github.com/DoniniDjessa/cercleof-sub000/internal/apierror"
	"github.com/DoniniDjessa/cercleof-sub000/internal/dto"
	"github.com/DoniniDjessa/cercleof-sub000/internal/repository"
	"github.com/DoniniDjessa/cercleof-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GiftCardsHandler struct {
	svc  service.GiftCardService
	repo repository.GiftCardRepository
}

func NewGiftCardsHandler(svc service.GiftCardService, repo repository.GiftCardRepository) *GiftCardsHandler {
	return &GiftCardsHandler{svc: svc, repo: repo}
}

// Validate godoc
// @Summary      Validate a gift card
// @Description  Checks that the card is active, unexpired and carries a positive balance. Does not debit.
// @Tags         giftcards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ValidateGiftCardRequest true "Card code"
// @Success      200  {object} dto.GiftCardResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/giftcards/validate [post]
func (h *GiftCardsHandler) Validate(c *gin.Context) {
	var req dto.ValidateGiftCardRequest
	if !bindAndValidate(c, &req) {
		return
	}

	card, err := h.svc.Validate(c.Request.Context(), req.Code)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}

	resp := dto.GiftCardResponse{
		ID:      card.ID.String(),
		Code:    card.Code,
		Balance: card.Balance,
		Status:  card.Status,
	}
	if card.ExpiryDate != nil {
		s := card.ExpiryDate.Format("2006-01-02")
		resp.ExpiryDate = &s
	}
	c.JSON(http.StatusOK, resp)
}

// History godoc
// @Summary      Gift card transaction history
// @Description  Returns the append-only debit ledger of a card, newest first.
// @Tags         giftcards
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Gift card UUID"
// @Success      200 {array} dto.GiftCardTransactionResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/giftcards/{id}/transactions [get]
func (h *GiftCardsHandler) History(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}

	txs, err := h.repo.ListTransactions(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list transactions"))
		return
	}

	resp := make([]dto.GiftCardTransactionResponse, 0, len(txs))
	for _, t := range txs {
		resp = append(resp, dto.GiftCardTransactionResponse{
			SaleID:        t.SaleID.String(),
			Amount:        t.Amount,
			BalanceBefore: t.BalanceBefore,
			BalanceAfter:  t.BalanceAfter,
			Type:          t.Type,
			CreatedAt:     t.CreatedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, resp)
}
