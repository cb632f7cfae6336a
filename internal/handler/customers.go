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

type CustomersHandler struct{ repo repository.CustomerRepository }

func NewCustomersHandler(repo repository.CustomerRepository) *CustomersHandler {
	return &CustomersHandler{repo: repo}
}

func mapCustomer(cu *model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:              cu.ID.String(),
		Name:            cu.Name,
		Phone:           cu.Phone,
		BillingAddress:  cu.BillingAddress,
		DeliveryAddress: cu.DeliveryAddress,
		GST:             cu.GST,
		Email:           cu.Email,
		CreatedAt:       cu.CreatedAt,
	}
}

func (h *CustomersHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	customer := model.Customer{
		Name:            req.Name,
		Phone:           req.Phone,
		BillingAddress:  req.BillingAddress,
		DeliveryAddress: req.DeliveryAddress,
		GST:             req.GST,
		Email:           req.Email,
	}
	if err := h.repo.Create(c.Request.Context(), &customer); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to create customer"))
		return
	}
	c.JSON(http.StatusCreated, mapCustomer(&customer))
}

func (h *CustomersHandler) List(c *gin.Context) {
	customers, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list customers"))
		return
	}
	resp := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		resp = append(resp, mapCustomer(&customers[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CustomersHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	customer, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("customer not found"))
		return
	}
	c.JSON(http.StatusOK, mapCustomer(customer))
}

func (h *CustomersHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	customer, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("customer not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load customer"))
		return
	}

	var req dto.CreateCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.BillingAddress = req.BillingAddress
	customer.DeliveryAddress = req.DeliveryAddress
	customer.GST = req.GST
	customer.Email = req.Email

	if err := h.repo.Update(c.Request.Context(), customer); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to update customer"))
		return
	}
	c.JSON(http.StatusOK, mapCustomer(customer))
}

func (h *CustomersHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to delete customer"))
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{Message: "Customer deleted successfully"})
}
