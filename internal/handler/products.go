package handler

import (
	"errors"
	"net/http"

	"briqtrack/internal/apierror"
	"briqtrack/internal/dto"
	"briqtrack/internal/model"
	"briqtrack/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductsHandler manages finished-product specifications. These are plain
// records with no business rules, so the handler goes straight to the
// repository.
type ProductsHandler struct{ repo repository.ProductRepository }

func NewProductsHandler(repo repository.ProductRepository) *ProductsHandler {
	return &ProductsHandler{repo: repo}
}

func mapProduct(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:                         p.ID.String(),
		SizeMM:                     p.SizeMM,
		Ash:                        p.Ash,
		BurnTime:                   p.BurnTime,
		CustomSpecificationEnabled: p.CustomSpecificationEnabled,
		CustomSpecification:        p.CustomSpecification,
		Quantity:                   p.Quantity,
		Cost:                       p.Cost,
		ExpectedDeliveryDate:       p.ExpectedDeliveryDate,
		CreatedAt:                  p.CreatedAt,
	}
}

func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	product := model.Product{
		SizeMM:                     req.SizeMM,
		Ash:                        req.Ash,
		BurnTime:                   req.BurnTime,
		CustomSpecificationEnabled: req.CustomSpecificationEnabled,
		CustomSpecification:        req.CustomSpecification,
		Quantity:                   req.Quantity,
		Cost:                       req.Cost,
		ExpectedDeliveryDate:       req.ExpectedDeliveryDate,
	}
	if err := h.repo.Create(c.Request.Context(), &product); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to create product"))
		return
	}
	c.JSON(http.StatusCreated, mapProduct(&product))
}

func (h *ProductsHandler) List(c *gin.Context) {
	products, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list products"))
		return
	}
	resp := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, mapProduct(&products[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	product, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("product not found"))
		return
	}
	c.JSON(http.StatusOK, mapProduct(product))
}

func (h *ProductsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	product, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load product"))
		return
	}

	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	product.SizeMM = req.SizeMM
	product.Ash = req.Ash
	product.BurnTime = req.BurnTime
	product.CustomSpecificationEnabled = req.CustomSpecificationEnabled
	product.CustomSpecification = req.CustomSpecification
	product.Quantity = req.Quantity
	product.Cost = req.Cost
	product.ExpectedDeliveryDate = req.ExpectedDeliveryDate

	if err := h.repo.Update(c.Request.Context(), product); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to update product"))
		return
	}
	c.JSON(http.StatusOK, mapProduct(product))
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to delete product"))
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{Message: "Product deleted successfully"})
}
