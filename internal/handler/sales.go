package handler

import (
	"net/http"

	"github.com/DoniniDjessa/cercleof-sub000/internal/apierror"
	"github.com/DoniniDjessa/cercleof-sub000/internal/dto"
	"github.com/DoniniDjessa/cercleof-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

// List godoc
// @Summary      List sales
// @Description  Returns a paginated list of sales filtered by date, status and line type.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        date      query string false "Date YYYY-MM-DD (default: today)"
// @Param        status    query string false "paid | all"
// @Param        line_type query string false "product | service | mixed"
// @Param        page      query int    false "Page (default 1)"
// @Param        limit     query int    false "Records per page (default 50)"
// @Success      200       {object} dto.SaleListResponse
// @Failure      400       {object} apierror.APIError
// @Router       /v1/sales [get]
func (h *SalesHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list sales"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Get a sale
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Sale UUID"
// @Success      200 {object} dto.SaleListItem
// @Failure      404 {object} apierror.APIError
// @Router       /v1/sales/{id} [get]
func (h *SalesHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Sale not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Receipt godoc
// @Summary      Re-render a sale receipt
// @Description  Renders the receipt from the persisted sale. Output is byte-identical on every call.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Sale UUID"
// @Success      200 {object} dto.ReceiptResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/sales/{id}/receipt [get]
func (h *SalesHandler) Receipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	receipt, err := h.svc.Receipt(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Sale not found"))
		return
	}
	c.JSON(http.StatusOK, dto.ReceiptResponse{SaleID: id.String(), Receipt: receipt})
}
