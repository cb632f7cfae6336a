package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"briqtrack/internal/dto"
	"briqtrack/internal/model"
	"briqtrack/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory OrderRepository stub ───────────────────────────────────────────

type stubOrderRepo struct {
	orders map[uuid.UUID]*model.PurchaseOrder
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.PurchaseOrder)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *model.PurchaseOrder) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = model.OrderPending
	}
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *stubOrderRepo) List(_ context.Context) ([]model.PurchaseOrder, error) {
	var out []model.PurchaseOrder
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrderRepo) Update(_ context.Context, o *model.PurchaseOrder) error {
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

func (r *stubOrderRepo) MarkSent(_ context.Context, id uuid.UUID) error {
	o, ok := r.orders[id]
	if !ok || o.Status != model.OrderPending {
		return nil
	}
	o.Status = model.OrderSent
	return nil
}

func (r *stubOrderRepo) ListPendingOlderThan(_ context.Context, cutoff time.Time, limit int) ([]model.PurchaseOrder, error) {
	var out []model.PurchaseOrder
	for _, o := range r.orders {
		if o.Status == model.OrderPending && o.CreatedAt.Before(cutoff) {
			out = append(out, *o)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// ── Supplier repo stub ───────────────────────────────────────────────────────

type stubSupplierRepo struct {
	suppliers map[uuid.UUID]*model.Supplier
}

func newStubSupplierRepo() *stubSupplierRepo {
	return &stubSupplierRepo{suppliers: make(map[uuid.UUID]*model.Supplier)}
}

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubSupplierRepo) FindByName(_ context.Context, name string) (*model.Supplier, error) {
	for _, s := range r.suppliers {
		if s.Name == name {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSupplierRepo) List(_ context.Context) ([]model.Supplier, error) {
	var out []model.Supplier
	for _, s := range r.suppliers {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.suppliers, id)
	return nil
}

// ── Enqueuer recorder ────────────────────────────────────────────────────────

type stubEnqueuer struct {
	enqueued []uuid.UUID
	fail     bool
}

func (e *stubEnqueuer) EnqueueOrderMail(_ context.Context, orderID uuid.UUID) error {
	if e.fail {
		return errors.New("redis down")
	}
	e.enqueued = append(e.enqueued, orderID)
	return nil
}

// ── Tests ────────────────────────────────────────────────────────────────────

type orderFixture struct {
	svc        service.OrderService
	orders     *stubOrderRepo
	enqueuer   *stubEnqueuer
	supplierID uuid.UUID
	materialID uuid.UUID
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	ctx := context.Background()

	suppliers := newStubSupplierRepo()
	supplier := &model.Supplier{Name: "Acme Timber", Email: "sales@acme.test"}
	require.NoError(t, suppliers.Create(ctx, supplier))

	materials := newStubMaterialRepo()
	material := &model.RawMaterial{Name: "Sawdust", Quantity: 400}
	require.NoError(t, materials.Create(ctx, material))

	orders := newStubOrderRepo()
	enqueuer := &stubEnqueuer{}
	return &orderFixture{
		svc:        service.NewOrderService(orders, suppliers, materials, enqueuer),
		orders:     orders,
		enqueuer:   enqueuer,
		supplierID: supplier.ID,
		materialID: material.ID,
	}
}

func TestCreateOrderQueuesMailAndStaysPending(t *testing.T) {
	f := newOrderFixture(t)

	resp, err := f.svc.Create(context.Background(), dto.CreateOrderRequest{
		SupplierID:    f.supplierID.String(),
		RawMaterialID: f.materialID.String(),
		Quantity:      500,
	})
	require.NoError(t, err)

	// The create response never waits on mail delivery
	assert.Equal(t, model.OrderPending, resp.Order.Status)
	require.Len(t, f.enqueuer.enqueued, 1)
	assert.Equal(t, resp.Order.ID, f.enqueuer.enqueued[0].String())
}

func TestCreateOrderSurvivesEnqueueFailure(t *testing.T) {
	f := newOrderFixture(t)
	f.enqueuer.fail = true

	resp, err := f.svc.Create(context.Background(), dto.CreateOrderRequest{
		SupplierID:    f.supplierID.String(),
		RawMaterialID: f.materialID.String(),
		Quantity:      500,
	})
	require.NoError(t, err, "a dead queue must not fail the create")
	assert.Equal(t, model.OrderPending, resp.Order.Status)

	// The persisted order is eligible for the retry sweep
	stored, err := f.orders.FindByID(context.Background(), uuid.MustParse(resp.Order.ID))
	require.NoError(t, err)
	assert.Equal(t, model.OrderPending, stored.Status)
}

func TestCreateOrderUnknownSupplierRejected(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.Create(context.Background(), dto.CreateOrderRequest{
		SupplierID:    uuid.NewString(),
		RawMaterialID: f.materialID.String(),
		Quantity:      10,
	})
	require.ErrorIs(t, err, service.ErrNotFound)
	assert.Empty(t, f.enqueuer.enqueued)
}

func TestCreateOrderUnknownMaterialRejected(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.Create(context.Background(), dto.CreateOrderRequest{
		SupplierID:    f.supplierID.String(),
		RawMaterialID: uuid.NewString(),
		Quantity:      10,
	})
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestMarkSentFlipsPendingOrderOnce(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Create(ctx, dto.CreateOrderRequest{
		SupplierID:    f.supplierID.String(),
		RawMaterialID: f.materialID.String(),
		Quantity:      500,
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.Order.ID)

	require.NoError(t, f.orders.MarkSent(ctx, id))
	stored, err := f.orders.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.OrderSent, stored.Status)
}
