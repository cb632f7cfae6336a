package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	SizeMM                     int             `json:"sizeMm" validate:"omitempty,gt=0"`
	Ash                        string          `json:"ash"`
	BurnTime                   string          `json:"burnTime"`
	CustomSpecificationEnabled bool            `json:"customSpecificationEnabled"`
	CustomSpecification        string          `json:"customSpecification"`
	Quantity                   int             `json:"quantity" validate:"omitempty,min=0"`
	Cost                       decimal.Decimal `json:"cost"`
	ExpectedDeliveryDate       *time.Time      `json:"expectedDeliveryDate"`
}

type ProductResponse struct {
	ID                         string          `json:"id"`
	SizeMM                     int             `json:"sizeMm"`
	Ash                        string          `json:"ash"`
	BurnTime                   string          `json:"burnTime"`
	CustomSpecificationEnabled bool            `json:"customSpecificationEnabled"`
	CustomSpecification        string          `json:"customSpecification"`
	Quantity                   int             `json:"quantity"`
	Cost                       decimal.Decimal `json:"cost"`
	ExpectedDeliveryDate       *time.Time      `json:"expectedDeliveryDate"`
	CreatedAt                  time.Time       `json:"createdAt"`
}

type CreateCustomerRequest struct {
	Name            string `json:"name" validate:"required,min=1"`
	Phone           string `json:"phone"`
	BillingAddress  string `json:"billingAddress"`
	DeliveryAddress string `json:"deliveryAddress"`
	GST             string `json:"gst"`
	Email           string `json:"email" validate:"omitempty,email"`
}

type CustomerResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	BillingAddress  string    `json:"billingAddress"`
	DeliveryAddress string    `json:"deliveryAddress"`
	GST             string    `json:"gst"`
	Email           string    `json:"email"`
	CreatedAt       time.Time `json:"createdAt"`
}

type CreateActionRequest struct {
	CustomerUUID string `json:"customerUUID" validate:"required,uuid"`
	ProductUUID  string `json:"productUUID" validate:"required,uuid"`
	ActionUUID   string `json:"actionUUID" validate:"required,min=1"`
}

type ActionResponse struct {
	ID         string            `json:"id"`
	Customer   *CustomerResponse `json:"customer,omitempty"`
	Product    *ProductResponse  `json:"product,omitempty"`
	ActionUUID string            `json:"actionUUID"`
	CreatedAt  time.Time         `json:"createdAt"`
}
