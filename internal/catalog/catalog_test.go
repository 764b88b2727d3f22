package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golabz/cloudslice-editor/internal/models"
	"github.com/golabz/cloudslice-editor/internal/remote"
)

// stubClient serves GetAwsServices only - the catalog never touches
// the rest of the sync surface
type stubClient struct {
	remote.Client
	rows []models.RawService
	err  error
}

func (s *stubClient) GetAwsServices(ctx context.Context) ([]models.RawService, error) {
	return s.rows, s.err
}

func testRows() []models.RawService {
	return []models.RawService{
		{Services: "EC2", Category: "Compute", Description: "Virtual machines", ServicesPrefix: "ec2"},
		{Services: "Lambda", Category: "Compute", Description: "Functions"},
		{Services: "S3", Category: "Storage", Description: "Object storage"},
		{Services: "", Category: "Storage", Description: "broken row"},
	}
}

func TestFetch(t *testing.T) {
	t.Run("normalizes rows and drops unnamed ones", func(t *testing.T) {
		c, err := Fetch(context.Background(), &stubClient{rows: testRows()}, nil)
		require.NoError(t, err)

		assert.Equal(t, []string{"Compute", "Storage"}, c.Categories())
		require.Len(t, c.Services("Storage"), 1)
		assert.Equal(t, "S3", c.Services("Storage")[0].Name)
	})

	t.Run("fetch failure propagates", func(t *testing.T) {
		_, err := Fetch(context.Background(), &stubClient{err: errors.New("boom")}, nil)
		assert.Error(t, err)
	})
}

func TestFilter(t *testing.T) {
	c, err := Fetch(context.Background(), &stubClient{rows: testRows()}, nil)
	require.NoError(t, err)

	t.Run("category search is case-insensitive", func(t *testing.T) {
		assert.Equal(t, []string{"Storage"}, c.FilterCategories("stor"))
		assert.Len(t, c.FilterCategories(""), 2)
		assert.Empty(t, c.FilterCategories("networking"))
	})

	t.Run("service search covers name and description", func(t *testing.T) {
		byName := c.FilterServices("Compute", "lambda")
		require.Len(t, byName, 1)
		assert.Equal(t, "Lambda", byName[0].Name)

		byDescription := c.FilterServices("Compute", "virtual")
		require.Len(t, byDescription, 1)
		assert.Equal(t, "EC2", byDescription[0].Name)
	})
}

func TestFind(t *testing.T) {
	c, err := Fetch(context.Background(), &stubClient{rows: testRows()}, nil)
	require.NoError(t, err)

	svc, ok := c.Find("EC2")
	require.True(t, ok)
	assert.Equal(t, "ec2", svc.ServicesPrefix)

	_, ok = c.Find("Route53")
	assert.False(t, ok)
}
