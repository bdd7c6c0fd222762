package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/DoniniDjessa/cercleof-sub000/internal/apierror"
	"github.com/DoniniDjessa/cercleof-sub000/internal/dto"
	"github.com/DoniniDjessa/cercleof-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PromotionsHandler struct{ svc service.PromotionService }

func NewPromotionsHandler(svc service.PromotionService) *PromotionsHandler {
	return &PromotionsHandler{svc: svc}
}

// Validate godoc
// @Summary      Validate a promotion code
// @Description  Checks activity window and per-client usage without consuming the code.
// @Tags         promotions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ValidatePromotionRequest true "Code and optional client"
// @Success      200  {object} dto.PromotionResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/promotions/validate [post]
func (h *PromotionsHandler) Validate(c *gin.Context) {
	var req dto.ValidatePromotionRequest
	if !bindAndValidate(c, &req) {
		return
	}

	var clientID *uuid.UUID
	if req.ClientID != nil {
		cid, err := uuid.Parse(*req.ClientID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid client_id"))
			return
		}
		clientID = &cid
	}

	promo, err := h.svc.Validate(c.Request.Context(), req.Code, clientID)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrPromotionInvalidOrExpired) {
			status = http.StatusNotFound
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.PromotionResponse{
		ID:                     promo.ID.String(),
		Code:                   promo.Code,
		Value:                  promo.Value,
		ValueType:              promo.ValueType,
		ActiveFrom:             promo.ActiveFrom.Format(time.RFC3339),
		ActiveTo:               promo.ActiveTo.Format(time.RFC3339),
		IsUniqueUsagePerClient: promo.IsUniqueUsagePerClient,
	})
}
