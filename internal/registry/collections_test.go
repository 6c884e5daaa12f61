package registry_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-auction-engine/internal/adapter"
	"github.com/feral-file/ff-auction-engine/internal/domain"
	"github.com/feral-file/ff-auction-engine/internal/logger"
	"github.com/feral-file/ff-auction-engine/internal/mocks"
	"github.com/feral-file/ff-auction-engine/internal/registry"
	"github.com/feral-file/ff-auction-engine/internal/store/schema"
)

const (
	testNetwork    = domain.Network("market")
	testCollection = "0x1111111111111111111111111111111111111111"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func setupTest(t *testing.T) (registry.CollectionRegistry, *mocks.MockStore) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)

	reg, err := registry.NewCollectionRegistry(st, 16)
	require.NoError(t, err)
	return reg, st
}

func TestCollectionRegistry_IsEnabled(t *testing.T) {
	tests := []struct {
		name       string
		collection *schema.Collection
		expected   bool
	}{
		{name: "enabled", collection: &schema.Collection{Network: testNetwork, ID: testCollection, Status: domain.CollectionStatusEnabled}, expected: true},
		{name: "disabled", collection: &schema.Collection{Network: testNetwork, ID: testCollection, Status: domain.CollectionStatusDisabled}, expected: false},
		{name: "unknown", collection: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, st := setupTest(t)
			ctx := context.Background()

			// second lookup is served from cache
			st.EXPECT().GetCollection(ctx, testNetwork, testCollection).Return(tt.collection, nil).Times(1)

			for range 2 {
				enabled, err := reg.IsEnabled(ctx, testNetwork, testCollection)
				require.NoError(t, err)
				assert.Equal(t, tt.expected, enabled)
			}
		})
	}
}

func TestCollectionRegistry_IsEnabled_NormalizesAddress(t *testing.T) {
	reg, st := setupTest(t)
	ctx := context.Background()
	lower := "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"

	st.EXPECT().GetCollection(ctx, testNetwork, domain.NormalizeAddress(lower)).
		Return(&schema.Collection{Status: domain.CollectionStatusEnabled}, nil).Times(1)

	enabled, err := reg.IsEnabled(ctx, testNetwork, lower)
	require.NoError(t, err)
	assert.True(t, enabled)

	enabled, err = reg.IsEnabled(ctx, testNetwork, domain.NormalizeAddress(lower))
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestCollectionRegistry_StoreErrorIsNotCached(t *testing.T) {
	reg, st := setupTest(t)
	ctx := context.Background()

	gomock.InOrder(
		st.EXPECT().GetCollection(ctx, testNetwork, testCollection).Return(nil, errors.New("connection reset")),
		st.EXPECT().GetCollection(ctx, testNetwork, testCollection).Return(&schema.Collection{Status: domain.CollectionStatusEnabled}, nil),
	)

	_, err := reg.IsEnabled(ctx, testNetwork, testCollection)
	assert.Error(t, err)

	enabled, err := reg.IsEnabled(ctx, testNetwork, testCollection)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestCollectionRegistry_SetCollectionInvalidates(t *testing.T) {
	reg, st := setupTest(t)
	ctx := context.Background()

	gomock.InOrder(
		st.EXPECT().GetCollection(ctx, testNetwork, testCollection).Return(nil, nil),
		st.EXPECT().UpsertCollection(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, collection *schema.Collection) error {
				assert.Equal(t, testCollection, collection.ID)
				assert.Equal(t, "Genesis", collection.Name)
				return nil
			}),
		st.EXPECT().GetCollection(ctx, testNetwork, testCollection).Return(&schema.Collection{Status: domain.CollectionStatusEnabled}, nil),
	)

	enabled, err := reg.IsEnabled(ctx, testNetwork, testCollection)
	require.NoError(t, err)
	assert.False(t, enabled)

	_, err = reg.SetCollection(ctx, testNetwork, testCollection, "Genesis", domain.CollectionStatusEnabled)
	require.NoError(t, err)

	enabled, err = reg.IsEnabled(ctx, testNetwork, testCollection)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestCollectionRegistry_SetCollectionRejectsUnknownStatus(t *testing.T) {
	reg, _ := setupTest(t)

	_, err := reg.SetCollection(context.Background(), testNetwork, testCollection, "Genesis", "paused")
	assert.True(t, domain.IsBadRequest(err))
}

func TestSeed(t *testing.T) {
	reg, st := setupTest(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "collections.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"market": ["`+testCollection+`"]}`), 0o600))

	st.EXPECT().UpsertCollection(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, collection *schema.Collection) error {
			assert.Equal(t, testNetwork, collection.Network)
			assert.Equal(t, domain.CollectionStatusEnabled, collection.Status)
			return nil
		})

	require.NoError(t, registry.Seed(ctx, reg, path, adapter.NewJSON()))

	err := registry.Seed(ctx, reg, filepath.Join(t.TempDir(), "missing.json"), adapter.NewJSON())
	assert.Error(t, err)
}
