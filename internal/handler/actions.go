package handler

import (
	"net/http"

	"briqtrack/internal/apierror"
	"briqtrack/internal/dto"
	"briqtrack/internal/model"
	"briqtrack/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ActionsHandler records customer/product interactions coming from the
// dashboard's scan flow.
type ActionsHandler struct {
	repo      repository.ActionRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
}

func NewActionsHandler(
	repo repository.ActionRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
) *ActionsHandler {
	return &ActionsHandler{repo: repo, customers: customers, products: products}
}

func mapAction(a *model.Action) dto.ActionResponse {
	resp := dto.ActionResponse{
		ID:         a.ID.String(),
		ActionUUID: a.ActionUUID,
		CreatedAt:  a.CreatedAt,
	}
	if a.Customer != nil {
		cu := mapCustomer(a.Customer)
		resp.Customer = &cu
	}
	if a.Product != nil {
		p := mapProduct(a.Product)
		resp.Product = &p
	}
	return resp
}

func (h *ActionsHandler) Create(c *gin.Context) {
	var req dto.CreateActionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	customerID, _ := uuid.Parse(req.CustomerUUID)
	productID, _ := uuid.Parse(req.ProductUUID)

	if _, err := h.customers.FindByID(c.Request.Context(), customerID); err != nil {
		c.JSON(http.StatusNotFound, apierror.New("customer not found"))
		return
	}
	if _, err := h.products.FindByID(c.Request.Context(), productID); err != nil {
		c.JSON(http.StatusNotFound, apierror.New("product not found"))
		return
	}

	action := model.Action{
		CustomerID: customerID,
		ProductID:  productID,
		ActionUUID: req.ActionUUID,
	}
	if err := h.repo.Create(c.Request.Context(), &action); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to record action"))
		return
	}
	c.JSON(http.StatusCreated, mapAction(&action))
}

func (h *ActionsHandler) ListByCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid customer id"))
		return
	}
	actions, err := h.repo.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list actions"))
		return
	}
	resp := make([]dto.ActionResponse, 0, len(actions))
	for i := range actions {
		resp = append(resp, mapAction(&actions[i]))
	}
	c.JSON(http.StatusOK, resp)
}
