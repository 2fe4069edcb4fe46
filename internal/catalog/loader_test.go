package catalog

import (
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pos-sync/internal/model"
)

// writeSnapshot writes a gzipped NDJSON snapshot file for testing.
func writeSnapshot(t *testing.T, lines []string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.ndjson.gz")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	writer := gzip.NewWriter(file)
	for _, line := range lines {
		_, err := writer.Write([]byte(line + "\n"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return path
}

func TestFileLoader_Load(t *testing.T) {
	path := writeSnapshot(t, []string{
		`{"id": 1, "name": "Espresso", "price": "3.50", "type": "simple"}`,
		``,
		`{"id": 2, "name": "Gift Box", "price": "25.00", "type": "bundle", "bundledItems": [1, 3]}`,
	})

	loader := NewFileLoader(zerolog.Nop())

	products, err := loader.Load(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Espresso", products[0].Name)
	assert.Equal(t, "3.50", products[0].UnitPrice)
	assert.Equal(t, model.ProductTypeSimple, products[0].ProductType)
	assert.Empty(t, products[0].BundledItems)

	assert.Equal(t, model.ProductTypeBundle, products[1].ProductType)
	assert.Equal(t, []int64{1, 3}, products[1].BundledItems)
}

func TestFileLoader_FileNotFound(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	products, err := loader.Load(context.Background(), "/nonexistent/catalog.ndjson.gz")

	require.Error(t, err)
	assert.Nil(t, products)
	assert.Contains(t, err.Error(), "failed to open catalog snapshot")
}

func TestFileLoader_InvalidRecord(t *testing.T) {
	path := writeSnapshot(t, []string{
		`{"id": 1, "name": "Espresso", "price": "3.50", "type": "simple"}`,
		`this is not json`,
	})

	loader := NewFileLoader(zerolog.Nop())

	products, err := loader.Load(context.Background(), path)

	require.Error(t, err)
	assert.Nil(t, products)
	assert.Contains(t, err.Error(), "line 2")
}

func TestFileLoader_NotGzipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.ndjson")
	require.NoError(t, os.WriteFile(path, []byte(`{"id": 1}`), 0o644))

	loader := NewFileLoader(zerolog.Nop())

	products, err := loader.Load(context.Background(), path)

	require.Error(t, err)
	assert.Nil(t, products)
	assert.Contains(t, err.Error(), "gzip")
}

// MockLoader is a mock implementation of Loader.
type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) Load(ctx context.Context, path string) ([]model.CatalogProduct, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CatalogProduct), args.Error(1)
}

func TestFallbackLoader_S3Success(t *testing.T) {
	ctx := context.Background()
	snapshot := []model.CatalogProduct{{ID: 1, Name: "Espresso"}}

	s3 := new(MockLoader)
	file := new(MockLoader)
	s3.On("Load", ctx, "catalog/latest.ndjson.gz").Return(snapshot, nil)

	loader := NewFallbackLoader(s3, file, "catalog/", true, zerolog.Nop())

	products, err := loader.Load(ctx, "latest.ndjson.gz")

	require.NoError(t, err)
	assert.Equal(t, snapshot, products)
	s3.AssertExpectations(t)
	file.AssertNotCalled(t, "Load")
}

func TestFallbackLoader_S3FailureFallsBack(t *testing.T) {
	ctx := context.Background()
	snapshot := []model.CatalogProduct{{ID: 1, Name: "Espresso"}}

	s3 := new(MockLoader)
	file := new(MockLoader)
	s3.On("Load", ctx, "catalog/latest.ndjson.gz").Return(nil, errors.New("access denied"))
	file.On("Load", ctx, "latest.ndjson.gz").Return(snapshot, nil)

	loader := NewFallbackLoader(s3, file, "catalog/", true, zerolog.Nop())

	products, err := loader.Load(ctx, "latest.ndjson.gz")

	require.NoError(t, err)
	assert.Equal(t, snapshot, products)
	s3.AssertExpectations(t)
	file.AssertExpectations(t)
}

func TestFallbackLoader_S3Disabled(t *testing.T) {
	ctx := context.Background()
	snapshot := []model.CatalogProduct{{ID: 1, Name: "Espresso"}}

	s3 := new(MockLoader)
	file := new(MockLoader)
	file.On("Load", ctx, "latest.ndjson.gz").Return(snapshot, nil)

	loader := NewFallbackLoader(s3, file, "catalog/", false, zerolog.Nop())

	products, err := loader.Load(ctx, "latest.ndjson.gz")

	require.NoError(t, err)
	assert.Equal(t, snapshot, products)
	s3.AssertNotCalled(t, "Load")
	file.AssertExpectations(t)
}
