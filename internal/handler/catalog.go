package handler

import (
	"net/http"

	"github.com/DoniniDjessa/cercleof-sub000/internal/apierror"
	"github.com/DoniniDjessa/cercleof-sub000/internal/dto"
	"github.com/DoniniDjessa/cercleof-sub000/internal/model"
	"github.com/DoniniDjessa/cercleof-sub000/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler exposes the read-only catalog the register consults while
// building a cart: products with variants, services and clients.
type CatalogHandler struct {
	productRepo repository.ProductRepository
	serviceRepo repository.ServiceRepository
	clientRepo  repository.ClientRepository
}

func NewCatalogHandler(
	productRepo repository.ProductRepository,
	serviceRepo repository.ServiceRepository,
	clientRepo repository.ClientRepository,
) *CatalogHandler {
	return &CatalogHandler{productRepo: productRepo, serviceRepo: serviceRepo, clientRepo: clientRepo}
}

// ListProducts godoc
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        name     query string false "Name filter (partial match)"
// @Param        category query string false "Category filter"
// @Param        page     query int    false "Page (default 1)"
// @Param        limit    query int    false "Records per page (default 50)"
// @Success      200      {object} dto.ProductListResponse
// @Router       /v1/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var filter dto.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	products, total, err := h.productRepo.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list products"))
		return
	}

	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, productToResponse(&products[i]))
	}
	c.JSON(http.StatusOK, dto.ProductListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit})
}

// GetProduct godoc
// @Summary      Get a product with its variants
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product UUID"
// @Success      200 {object} dto.ProductResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	p, err := h.productRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Product not found"))
		return
	}
	c.JSON(http.StatusOK, productToResponse(p))
}

// ListServices godoc
// @Summary      List services
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ServiceResponse
// @Router       /v1/services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.serviceRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list services"))
		return
	}

	data := make([]dto.ServiceResponse, 0, len(services))
	for _, s := range services {
		data = append(data, dto.ServiceResponse{
			ID:          s.ID.String(),
			Name:        s.Name,
			Price:       s.Price,
			DurationMin: s.DurationMin,
		})
	}
	c.JSON(http.StatusOK, data)
}

// GetClient godoc
// @Summary      Get a client with loyalty points
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Client UUID"
// @Success      200 {object} dto.ClientResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/clients/{id} [get]
func (h *CatalogHandler) GetClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	client, err := h.clientRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Client not found"))
		return
	}

	resp := dto.ClientResponse{
		ID:         client.ID.String(),
		Name:       client.Name,
		Phone:      client.Phone,
		Email:      client.Email,
		TotalSpent: client.TotalSpent,
	}
	if client.LastVisitDate != nil {
		s := client.LastVisitDate.Format("2006-01-02")
		resp.LastVisitDate = &s
	}
	if loyalty, err := h.clientRepo.FindLoyalty(c.Request.Context(), id); err == nil {
		resp.LoyaltyPoints = loyalty.Points
	}
	c.JSON(http.StatusOK, resp)
}

func productToResponse(p *model.Product) dto.ProductResponse {
	variants := make([]dto.VariantResponse, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, dto.VariantResponse{
			ID:       v.ID.String(),
			Name:     v.Name,
			Price:    v.Price,
			Quantity: v.Quantity,
		})
	}
	return dto.ProductResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Category:      p.Category,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Variants:      variants,
	}
}
