package service_test

import (
	"context"
	"testing"

	"briqtrack/internal/dto"
	"briqtrack/internal/model"
	"briqtrack/internal/repository"
	"briqtrack/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory MaterialRepository stub ────────────────────────────────────────

type stubMaterialRepo struct {
	materials map[uuid.UUID]*model.RawMaterial
}

func newStubMaterialRepo() *stubMaterialRepo {
	return &stubMaterialRepo{materials: make(map[uuid.UUID]*model.RawMaterial)}
}

func (r *stubMaterialRepo) Create(_ context.Context, m *model.RawMaterial) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.materials[m.ID] = m
	return nil
}

func (r *stubMaterialRepo) FindByID(_ context.Context, id uuid.UUID) (*model.RawMaterial, error) {
	m, ok := r.materials[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *m
	return &copy, nil
}

func (r *stubMaterialRepo) FindByName(_ context.Context, name string) (*model.RawMaterial, error) {
	for _, m := range r.materials {
		if m.Name == name {
			copy := *m
			return &copy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMaterialRepo) List(_ context.Context) ([]model.RawMaterial, error) {
	var out []model.RawMaterial
	for _, m := range r.materials {
		out = append(out, *m)
	}
	return out, nil
}

func (r *stubMaterialRepo) ListBelow(_ context.Context, threshold int) ([]model.RawMaterial, error) {
	var out []model.RawMaterial
	for _, m := range r.materials {
		if m.Quantity < threshold {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubMaterialRepo) Update(_ context.Context, m *model.RawMaterial) error {
	r.materials[m.ID] = m
	return nil
}

func (r *stubMaterialRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.materials, id)
	return nil
}

// AdjustQuantity mirrors the production guarded UPDATE: no row is touched
// when the result would go negative.
func (r *stubMaterialRepo) AdjustQuantity(_ context.Context, id uuid.UUID, delta int) error {
	m, ok := r.materials[id]
	if !ok || m.Quantity+delta < 0 {
		return gorm.ErrRecordNotFound
	}
	m.Quantity += delta
	return nil
}

// ── StockMovement recorder ───────────────────────────────────────────────────

type stubMovementRepo struct {
	movements []model.StockMovement
}

func (r *stubMovementRepo) Create(_ context.Context, m *model.StockMovement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, _ repository.StockMovementFilter) ([]model.StockMovement, int64, error) {
	return r.movements, int64(len(r.movements)), nil
}

// ── Notifier recorder ────────────────────────────────────────────────────────

type alertCall struct {
	material string
	quantity int
}

type stubNotifier struct {
	calls []alertCall
}

func (n *stubNotifier) NotifyLowStock(_ context.Context, materialName string, quantity int) {
	n.calls = append(n.calls, alertCall{material: materialName, quantity: quantity})
}

// ── Tests ────────────────────────────────────────────────────────────────────

func intPtr(v int) *int { return &v }

func newMaterialFixture(t *testing.T) (service.MaterialService, *stubMaterialRepo, *stubMovementRepo, *stubNotifier) {
	t.Helper()
	repo := newStubMaterialRepo()
	movements := &stubMovementRepo{}
	notifier := &stubNotifier{}
	svc := service.NewMaterialService(repo, movements, notifier, 100)
	return svc, repo, movements, notifier
}

func TestCreateThenGetReturnsStoredQuantity(t *testing.T) {
	svc, _, _, _ := newMaterialFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreateMaterialRequest{Name: "Sawdust", Quantity: intPtr(400)})
	require.NoError(t, err)
	assert.Equal(t, 400, created.Quantity)

	got, err := svc.Get(ctx, uuid.MustParse(created.ID))
	require.NoError(t, err)
	assert.Equal(t, "Sawdust", got.Name)
	assert.Equal(t, 400, got.Quantity)
}

func TestCreateWithoutQuantityDefaultsToZero(t *testing.T) {
	svc, _, _, notifier := newMaterialFixture(t)

	created, err := svc.Create(context.Background(), dto.CreateMaterialRequest{Name: "Clay"})
	require.NoError(t, err)
	assert.Equal(t, 0, created.Quantity)

	// 0 < 100 — registering an empty material already counts as low stock
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "Clay", notifier.calls[0].material)
}

func TestCreateDuplicateNameRejected(t *testing.T) {
	svc, _, _, _ := newMaterialFixture(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, dto.CreateMaterialRequest{Name: "Cement", Quantity: intPtr(150)})
	require.NoError(t, err)

	_, err = svc.Create(ctx, dto.CreateMaterialRequest{Name: "Cement", Quantity: intPtr(10)})
	require.ErrorIs(t, err, service.ErrDuplicate)

	// First record unaffected
	got, err := svc.Get(ctx, uuid.MustParse(first.ID))
	require.NoError(t, err)
	assert.Equal(t, 150, got.Quantity)
}

func TestReduceBelowThresholdFiresAlert(t *testing.T) {
	svc, _, movements, notifier := newMaterialFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateMaterialRequest{Name: "Cement", Quantity: intPtr(150)})
	require.NoError(t, err)
	require.Empty(t, notifier.calls)

	updated, err := svc.Reduce(ctx, dto.ReduceStockRequest{Material: "Cement", Quantity: 60})
	require.NoError(t, err)
	assert.Equal(t, 90, updated.Quantity)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "Cement", notifier.calls[0].material)
	assert.Equal(t, 90, notifier.calls[0].quantity)

	// Consumption is recorded on the audit trail
	require.Len(t, movements.movements, 1)
	mv := movements.movements[0]
	assert.Equal(t, model.MovementConsumption, mv.Type)
	assert.Equal(t, -60, mv.Quantity)
	assert.Equal(t, 150, mv.StockBefore)
	assert.Equal(t, 90, mv.StockAfter)
}

func TestReduceAboveThresholdStaysQuiet(t *testing.T) {
	svc, _, _, notifier := newMaterialFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateMaterialRequest{Name: "Sawdust", Quantity: intPtr(400)})
	require.NoError(t, err)

	updated, err := svc.Reduce(ctx, dto.ReduceStockRequest{Material: "Sawdust", Quantity: 100})
	require.NoError(t, err)
	assert.Equal(t, 300, updated.Quantity)
	assert.Empty(t, notifier.calls)
}

func TestReduceInsufficientStockLeavesQuantityUnchanged(t *testing.T) {
	svc, _, movements, _ := newMaterialFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreateMaterialRequest{Name: "Charcoal Dust", Quantity: intPtr(30)})
	require.NoError(t, err)

	_, err = svc.Reduce(ctx, dto.ReduceStockRequest{Material: "Charcoal Dust", Quantity: 50})
	require.ErrorIs(t, err, service.ErrInsufficientStock)

	got, err := svc.Get(ctx, uuid.MustParse(created.ID))
	require.NoError(t, err)
	assert.Equal(t, 30, got.Quantity)
	assert.Empty(t, movements.movements, "no movement recorded for a rejected reduction")
}

func TestReduceUnknownMaterialIsNotFound(t *testing.T) {
	svc, _, _, _ := newMaterialFixture(t)

	_, err := svc.Reduce(context.Background(), dto.ReduceStockRequest{Material: "Unobtainium", Quantity: 1})
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestReplayedReductionDecrementsTwice(t *testing.T) {
	svc, _, _, _ := newMaterialFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateMaterialRequest{Name: "Cement", Quantity: intPtr(500)})
	require.NoError(t, err)

	payload := dto.ReduceStockRequest{Material: "Cement", Quantity: 60}

	first, err := svc.Reduce(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, 440, first.Quantity)

	// Same payload again: there is no dedup key, both decrements apply
	second, err := svc.Reduce(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, 380, second.Quantity)
}

func TestUpdateQuantityRecordsManualEdit(t *testing.T) {
	svc, _, movements, notifier := newMaterialFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreateMaterialRequest{Name: "Cement", Quantity: intPtr(200)})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, uuid.MustParse(created.ID), dto.UpdateMaterialRequest{Quantity: intPtr(80)})
	require.NoError(t, err)
	assert.Equal(t, 80, updated.Quantity)

	require.Len(t, movements.movements, 1)
	mv := movements.movements[0]
	assert.Equal(t, model.MovementManualEdit, mv.Type)
	assert.Equal(t, -120, mv.Quantity)
	assert.Equal(t, 200, mv.StockBefore)
	assert.Equal(t, 80, mv.StockAfter)

	// 80 < 100 — edit re-checks the threshold
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, 80, notifier.calls[0].quantity)
}

func TestUpdateNameConflictRejected(t *testing.T) {
	svc, _, _, _ := newMaterialFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateMaterialRequest{Name: "Cement", Quantity: intPtr(200)})
	require.NoError(t, err)
	other, err := svc.Create(ctx, dto.CreateMaterialRequest{Name: "Sawdust", Quantity: intPtr(300)})
	require.NoError(t, err)

	name := "Cement"
	_, err = svc.Update(ctx, uuid.MustParse(other.ID), dto.UpdateMaterialRequest{Name: &name})
	require.ErrorIs(t, err, service.ErrDuplicate)
}

func TestReceiveIncrementsAndRecordsReceipt(t *testing.T) {
	svc, repo, movements, _ := newMaterialFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreateMaterialRequest{Name: "Sawdust", Quantity: intPtr(300)})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)
	logID := uuid.New()

	require.NoError(t, svc.Receive(ctx, id, 120, logID))

	m, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 420, m.Quantity)

	require.Len(t, movements.movements, 1)
	mv := movements.movements[0]
	assert.Equal(t, model.MovementSupplyReceipt, mv.Type)
	assert.Equal(t, 120, mv.Quantity)
	require.NotNil(t, mv.ReferenceID)
	assert.Equal(t, logID, *mv.ReferenceID)
}

func TestLowStockListsOnlyBelowThreshold(t *testing.T) {
	svc, _, _, _ := newMaterialFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateMaterialRequest{Name: "Cement", Quantity: intPtr(90)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, dto.CreateMaterialRequest{Name: "Sawdust", Quantity: intPtr(100)})
	require.NoError(t, err)

	low, err := svc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Cement", low[0].Name)
}
