package infra

import (
	"os"
	"testing"
	"time"

	"briqtrack/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderPDFWritesFile(t *testing.T) {
	order := &model.PurchaseOrder{
		ID:        uuid.New(),
		Quantity:  500,
		OrderDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Notes:     "Deliver before month end",
		Supplier: &model.Supplier{
			ID:      uuid.New(),
			Name:    "Acme Timber",
			Address: "Yard 4, Industrial Estate",
		},
		RawMaterial: &model.RawMaterial{
			ID:   uuid.New(),
			Name: "Sawdust",
		},
	}

	dir := t.TempDir()
	path, err := GenerateOrderPDF(order, dir)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// PDF magic bytes
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerateOrderPDFWithoutRefsStillRenders(t *testing.T) {
	order := &model.PurchaseOrder{
		ID:        uuid.New(),
		Quantity:  50,
		OrderDate: time.Now(),
	}
	path, err := GenerateOrderPDF(order, t.TempDir())
	require.NoError(t, err)
	assert.FileExists(t, path)
}
