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

// MovementsHandler serves the read-only ledger audit trail. It queries the
// repository directly: there is no business logic between the filter and
// the rows.
type MovementsHandler struct{ repo repository.StockMovementRepository }

func NewMovementsHandler(repo repository.StockMovementRepository) *MovementsHandler {
	return &MovementsHandler{repo: repo}
}

func (h *MovementsHandler) List(c *gin.Context) {
	var filter dto.StockMovementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid filter parameters"))
		return
	}

	repoFilter := repository.StockMovementFilter{
		Type:  filter.Type,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	if filter.MaterialID != "" {
		id, err := uuid.Parse(filter.MaterialID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid materialId"))
			return
		}
		repoFilter.RawMaterialID = &id
	}

	movements, total, err := h.repo.List(c.Request.Context(), repoFilter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list stock movements"))
		return
	}

	data := make([]dto.StockMovementResponse, 0, len(movements))
	for i := range movements {
		data = append(data, mapMovement(&movements[i]))
	}
	c.JSON(http.StatusOK, dto.StockMovementListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

func mapMovement(m *model.StockMovement) dto.StockMovementResponse {
	resp := dto.StockMovementResponse{
		ID:          m.ID.String(),
		MaterialID:  m.RawMaterialID.String(),
		Type:        m.Type,
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Reason:      m.Reason,
		CreatedAt:   m.CreatedAt,
	}
	if m.RawMaterial != nil {
		resp.MaterialName = m.RawMaterial.Name
	}
	if m.ReferenceID != nil {
		ref := m.ReferenceID.String()
		resp.ReferenceID = &ref
	}
	return resp
}
