package handler

import (
	"net/http"

	"briqtrack/internal/apierror"
	"briqtrack/internal/dto"
	"briqtrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MachinesHandler struct{ svc service.MachineService }

func NewMachinesHandler(svc service.MachineService) *MachinesHandler {
	return &MachinesHandler{svc: svc}
}

func (h *MachinesHandler) Add(c *gin.Context) {
	var req dto.AddMachineRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Add(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.AddMachineResponse{
		Message: "Machine added successfully",
		Data:    *resp,
	})
}

func (h *MachinesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list machines"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MachinesHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.UpdateMachineRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
