//go:build integration

package e2e

// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"briqtrack/internal/config"
	"briqtrack/internal/infra"
	"briqtrack/internal/router"
	"briqtrack/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	rdb    *redis.Client
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("briqtrack_test"),
		tcPostgres.WithUsername("briqtrack"),
		tcPostgres.WithPassword("briqtrack"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:              8000,
		Env:               "test",
		DatabaseURL:       pgURL,
		RedisURL:          rdURL,
		WorkerPoolSize:    1,
		LowStockThreshold: 100,
		PDFStoragePath:    t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))

	srv := httptest.NewServer(router.New(cfg, db, rdb))
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, rdb: rdb}
}

func queueLen(t *testing.T, rdb *redis.Client, queue string) int64 {
	t.Helper()
	n, err := rdb.LLen(context.Background(), queue).Result()
	require.NoError(t, err)
	return n
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Consumption below the threshold must update the ledger and queue exactly
// one WhatsApp alert job.
func TestReduceStockFiresAlertJob(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, http.MethodPost, "/api/materials",
		jsonBody(t, map[string]any{"name": "Cement", "quantity": 150}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	before := queueLen(t, env.rdb, "jobs:alerts")

	resp = do(t, env.server, http.MethodPost, "/api/materials/reduce",
		jsonBody(t, map[string]any{"material": "Cement", "quantity": 60}))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reduced struct {
		Message         string `json:"message"`
		UpdatedMaterial struct {
			Quantity int `json:"quantity"`
		} `json:"updatedMaterial"`
	}
	decodeJSON(t, resp, &reduced)
	assert.Equal(t, 90, reduced.UpdatedMaterial.Quantity)

	assert.Equal(t, before+1, queueLen(t, env.rdb, "jobs:alerts"))
}

func TestReduceStockInsufficientLeavesLedgerUntouched(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, http.MethodPost, "/api/materials",
		jsonBody(t, map[string]any{"name": "Charcoal Dust", "quantity": 30}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &created)

	resp = do(t, env.server, http.MethodPost, "/api/materials/reduce",
		jsonBody(t, map[string]any{"material": "Charcoal Dust", "quantity": 50}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, http.MethodGet, "/api/materials/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		Quantity int `json:"quantity"`
	}
	decodeJSON(t, resp, &got)
	assert.Equal(t, 30, got.Quantity)
}

func TestSupplyLogIncrementsStockAndAuditTrail(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, http.MethodPost, "/api/suppliers",
		jsonBody(t, map[string]any{
			"name": "Acme Timber", "contact": "9876543210",
			"email": "sales@acme.test", "address": "Yard 4",
		}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var supplier struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &supplier)

	resp = do(t, env.server, http.MethodPost, "/api/materials",
		jsonBody(t, map[string]any{"name": "Sawdust", "quantity": 300}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var material struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &material)

	resp = do(t, env.server, http.MethodPost, "/api/supplies",
		jsonBody(t, map[string]any{
			"supplierId": supplier.ID, "rawMaterialId": material.ID,
			"quantitySupplied": 120, "price": "4500.00",
		}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, http.MethodGet, "/api/materials/"+material.ID, nil)
	var got struct {
		Quantity int `json:"quantity"`
	}
	decodeJSON(t, resp, &got)
	assert.Equal(t, 420, got.Quantity)

	resp = do(t, env.server, http.MethodGet, "/api/stock-movements?materialId="+material.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var trail struct {
		Total int64 `json:"total"`
		Data  []struct {
			Type     string `json:"type"`
			Quantity int    `json:"quantity"`
		} `json:"data"`
	}
	decodeJSON(t, resp, &trail)
	require.Equal(t, int64(1), trail.Total)
	assert.Equal(t, "supply_receipt", trail.Data[0].Type)
	assert.Equal(t, 120, trail.Data[0].Quantity)
}

// Order create responds 201 with a pending order and one queued mail job;
// delivery (and the flip to "sent") belongs to the worker.
func TestOrderCreateQueuesSupplierMail(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, http.MethodPost, "/api/suppliers",
		jsonBody(t, map[string]any{
			"name": "Acme Timber", "contact": "9876543210",
			"email": "sales@acme.test", "address": "Yard 4",
		}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var supplier struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &supplier)

	resp = do(t, env.server, http.MethodPost, "/api/materials",
		jsonBody(t, map[string]any{"name": "Sawdust", "quantity": 400}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var material struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &material)

	before := queueLen(t, env.rdb, "jobs:email")

	resp = do(t, env.server, http.MethodPost, "/api/order",
		jsonBody(t, map[string]any{
			"supplierId": supplier.ID, "rawMaterialId": material.ID, "quantity": 500,
		}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Order struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"order"`
	}
	decodeJSON(t, resp, &created)
	assert.Equal(t, "pending", created.Order.Status)
	assert.Equal(t, before+1, queueLen(t, env.rdb, "jobs:email"))

	// The queued payload points at the persisted order
	raw, err := env.rdb.LIndex(context.Background(), "jobs:email", 0).Result()
	require.NoError(t, err)
	var job worker.Job
	require.NoError(t, json.Unmarshal([]byte(raw), &job))
	assert.Equal(t, "order_mail", job.Type)
	assert.Contains(t, string(job.Payload), created.Order.ID)
}

func TestMachineUsageWastageAndDuplicateGuard(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, http.MethodPost, "/api/machines/add",
		jsonBody(t, map[string]any{"machineName": "Press A", "machineType": "Briquette Press"}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var machine struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	decodeJSON(t, resp, &machine)

	usage := map[string]any{
		"usageId": "BATCH-001", "machine": machine.Data.ID,
		"input": 100, "output": 85, "operator": "Ravi",
	}
	resp = do(t, env.server, http.MethodPost, "/api/machine-usage/add", jsonBody(t, usage))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Wastage int `json:"wastage"`
	}
	decodeJSON(t, resp, &created)
	assert.Equal(t, 15, created.Wastage)

	// Same usageId again
	resp = do(t, env.server, http.MethodPost, "/api/machine-usage/add", jsonBody(t, usage))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, http.MethodGet, "/api/machine-usage", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []json.RawMessage
	decodeJSON(t, resp, &all)
	assert.Len(t, all, 1)
}

func TestHealthReportsConnectedBackends(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health struct {
		OK    bool   `json:"ok"`
		DB    string `json:"db"`
		Redis string `json:"redis"`
	}
	decodeJSON(t, resp, &health)
	assert.True(t, health.OK)
	assert.Equal(t, "connected", health.DB)
	assert.Equal(t, "connected", health.Redis)
}
