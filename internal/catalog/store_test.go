package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartagro/smartagro/internal/domain"
)

func TestFixtureCollections(t *testing.T) {
	ctx := context.Background()
	s := NewFixtureStore()

	raw, err := s.Products(ctx)
	require.NoError(t, err)
	require.Len(t, raw, 3)
	assert.Equal(t, []string{"Corn", "Soya", "Plantain"}, []string{raw[0].Name, raw[1].Name, raw[2].Name})

	processed, err := s.ProcessedProducts(ctx)
	require.NoError(t, err)
	require.Len(t, processed, 12)
	seen := map[int64]bool{}
	for i, p := range processed {
		assert.Equal(t, int64(i+4), p.ID)
		assert.False(t, seen[p.ID], "id %d reused", p.ID)
		seen[p.ID] = true
	}

	for _, p := range append(raw, processed...) {
		assert.Positive(t, p.Price, "product %d", p.ID)
	}

	users, err := s.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 12)

	tasks, err := s.Tasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 3)

	assert.Equal(t, LogoAsset, s.Logo())
}

func TestStoreProductLookup(t *testing.T) {
	ctx := context.Background()
	s := NewFixtureStore()

	p, err := s.Product(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Cornflakes", p.Name)
	assert.True(t, p.IsProcessed())

	p, err = s.Product(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Soya", p.Name)

	_, err = s.Product(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreAllProductsOrdered(t *testing.T) {
	all, err := AllProducts(context.Background(), NewFixtureStore())
	require.NoError(t, err)
	require.Len(t, all, 15)
	for i, p := range all {
		assert.Equal(t, int64(i+1), p.ID)
	}
}

func TestStoreMessagesFilter(t *testing.T) {
	ctx := context.Background()
	s := NewFixtureStore()

	tests := []struct {
		name   string
		filter MessageFilter
		ids    []int64
	}{
		{"all", MessageFilter{}, []int64{1, 2, 3, 4, 5, 6}},
		{"general", MessageFilter{ChatType: domain.ChatGeneral}, []int64{1, 2, 3}},
		{"direct", MessageFilter{ChatType: domain.ChatDirect}, []int64{4, 5, 6}},
		{"conversation with alice", MessageFilter{Peer: "Alice Johnson"}, []int64{4, 5, 6}},
		{"conversation with bob", MessageFilter{Peer: "Bob Smith"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, err := s.Messages(ctx, tt.filter)
			require.NoError(t, err)
			var ids []int64
			for _, m := range msgs {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewFixtureStore()

	raw, err := s.Products(ctx)
	require.NoError(t, err)
	raw[0].Name = "Changed"

	again, err := s.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Corn", again[0].Name)
}

func TestStoreHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFixtureStore().Users(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewStoreRejectsInvalidData(t *testing.T) {
	d := Fixtures()
	d.ProcessedProducts[0].ID = 1

	_, err := NewStore(d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already used in products")
}

func TestLoadDatasetRoundTrip(t *testing.T) {
	d, err := LoadDataset(context.Background(), NewFixtureStore())
	require.NoError(t, err)
	assert.Equal(t, Fixtures(), d)
}
