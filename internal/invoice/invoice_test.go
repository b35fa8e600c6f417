package invoice

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazarlab/chatshop/internal/model"
)

func testOrder() model.Order {
	return model.Order{
		OrderID:   "ORDER1001",
		User:      "guest",
		Product:   "HP Pavilion 15",
		Qty:       1,
		UnitPrice: 65000,
		Tax:       0.07,
		Total:     69550,
		Status:    model.OrderStatusConfirmed,
		CreatedAt: "2024-06-01T12:00:00",
		Time:      "2024-06-01T12:00:00",
		Category:  "ল্যাপটপ",
	}
}

func TestRenderWritesPDF(t *testing.T) {
	dir := t.TempDir()
	g, err := NewGenerator(dir)
	require.NoError(t, err)

	path, err := g.Render(testOrder())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ORDER1001.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderIsDeterministic(t *testing.T) {
	g, err := NewGenerator(t.TempDir())
	require.NoError(t, err)
	o := testOrder()

	first, err := g.Render(o)
	require.NoError(t, err)
	a, err := os.ReadFile(first)
	require.NoError(t, err)

	second, err := g.Render(o)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)

	assert.Equal(t, len(a), len(b))
}

func TestRenderFailsOnMissingDir(t *testing.T) {
	dir := t.TempDir()
	g, err := NewGenerator(dir)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	_, err = g.Render(testOrder())
	assert.Error(t, err)
}
