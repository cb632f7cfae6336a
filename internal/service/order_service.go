package service

import (
	"context"
	"errors"
	"fmt"

	"briqtrack/internal/dto"
	"briqtrack/internal/model"
	"briqtrack/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// OrderMailEnqueuer queues the supplier notification for a freshly created
// purchase order. The mail is sent by the email worker, which also flips the
// order status to "sent" — the create response never waits on SMTP.
type OrderMailEnqueuer interface {
	EnqueueOrderMail(ctx context.Context, orderID uuid.UUID) error
}

type OrderService interface {
	Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context) ([]dto.OrderResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateOrderRequest) (*dto.OrderResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderService struct {
	repo      repository.OrderRepository
	suppliers repository.SupplierRepository
	materials repository.MaterialRepository
	mail      OrderMailEnqueuer
}

func NewOrderService(
	repo repository.OrderRepository,
	suppliers repository.SupplierRepository,
	materials repository.MaterialRepository,
	mail OrderMailEnqueuer,
) OrderService {
	return &orderService{repo: repo, suppliers: suppliers, materials: materials, mail: mail}
}

func mapOrder(o *model.PurchaseOrder) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:            o.ID.String(),
		SupplierID:    o.SupplierID.String(),
		RawMaterialID: o.RawMaterialID.String(),
		Quantity:      o.Quantity,
		OrderDate:     o.OrderDate,
		Status:        o.Status,
		Notes:         o.Notes,
	}
	if o.Supplier != nil {
		resp.SupplierName = o.Supplier.Name
	}
	if o.RawMaterial != nil {
		resp.MaterialName = o.RawMaterial.Name
	}
	return resp
}

func (s *orderService) Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("invalid supplierId: %w", err)
	}
	materialID, err := uuid.Parse(req.RawMaterialID)
	if err != nil {
		return nil, fmt.Errorf("invalid rawMaterialId: %w", err)
	}

	if _, err := s.suppliers.FindByID(ctx, supplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("supplier %w", ErrNotFound)
		}
		return nil, err
	}
	if _, err := s.materials.FindByID(ctx, materialID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("raw material %w", ErrNotFound)
		}
		return nil, err
	}

	order := &model.PurchaseOrder{
		SupplierID:    supplierID,
		RawMaterialID: materialID,
		Quantity:      req.Quantity,
		Notes:         req.Notes,
		Status:        model.OrderPending,
	}
	if req.OrderDate != nil {
		order.OrderDate = *req.OrderDate
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	// Best effort: a failed enqueue leaves the order pending and the retry
	// sweep picks it up later.
	if err := s.mail.EnqueueOrderMail(ctx, order.ID); err != nil {
		log.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to enqueue order mail")
	}

	created, err := s.repo.FindByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return &dto.CreateOrderResponse{
		Message: "Order created, supplier notification queued",
		Order:   *mapOrder(created),
	}, nil
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %w", ErrNotFound)
		}
		return nil, err
	}
	return mapOrder(order), nil
}

func (s *orderService) List(ctx context.Context) ([]dto.OrderResponse, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, *mapOrder(&orders[i]))
	}
	return out, nil
}

func (s *orderService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %w", ErrNotFound)
		}
		return nil, err
	}

	if req.Quantity != nil {
		order.Quantity = *req.Quantity
	}
	if req.Status != nil {
		order.Status = *req.Status
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	return mapOrder(order), nil
}

func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("order %w", ErrNotFound)
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
