package dto

import "time"

type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=120"`
	Contact string `json:"contact" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required"`
}

type UpdateSupplierRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=120"`
	Contact *string `json:"contact"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address"`
}

type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
