package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mu-waterwear/models"
	"mu-waterwear/repository"
)

// failingKVStore simulates an unavailable backing store
type failingKVStore struct{}

func (failingKVStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	return "", false, errors.New("store unavailable")
}

func (failingKVStore) SetItem(ctx context.Context, key string, value string) error {
	return errors.New("store unavailable")
}

func (failingKVStore) RemoveItem(ctx context.Context, key string) error {
	return errors.New("store unavailable")
}

func newTestStorage() (*Storage, *repository.MemoryKVStore) {
	store := repository.NewMemoryKVStore()
	return NewStorage(store, "test-cart"), store
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage, _ := newTestStorage()

	items := []models.CartItem{
		{ID: "a", Name: "Tee", Price: "$19.99", Size: "M", Image: "tee.jpg", Quantity: 2},
		{ID: "b", Name: "Hat", Price: "$14.99", Image: "hat.jpg", Quantity: 1},
	}

	require.True(t, storage.SaveCart(ctx, items))
	loaded := storage.LoadCart(ctx)
	assert.Equal(t, items, loaded)
}

func TestLoadCartMissingKey(t *testing.T) {
	ctx := context.Background()
	storage, _ := newTestStorage()

	loaded := storage.LoadCart(ctx)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestSaveCartNilBecomesEmpty(t *testing.T) {
	ctx := context.Background()
	storage, _ := newTestStorage()

	require.True(t, storage.SaveCart(ctx, nil))
	loaded := storage.LoadCart(ctx)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestLoadCartCorruptionRecovery(t *testing.T) {
	ctx := context.Background()

	corrupt := map[string]string{
		"not json":          `not json at all`,
		"not an array":      `{"id":"a"}`,
		"missing id":        `[{"name":"Tee","price":"$19.99","quantity":1}]`,
		"zero quantity":     `[{"id":"a","name":"Tee","price":"$19.99","quantity":0}]`,
		"numeric price":     `[{"id":"a","name":"Tee","price":19.99,"quantity":1}]`,
		"negative quantity": `[{"id":"a","name":"Tee","price":"$19.99","quantity":-2}]`,
	}

	for name, raw := range corrupt {
		t.Run(name, func(t *testing.T) {
			storage, store := newTestStorage()
			require.NoError(t, store.SetItem(ctx, models.CartStorageKeyPrefix+"test-cart", raw))

			loaded := storage.LoadCart(ctx)
			assert.NotNil(t, loaded)
			assert.Empty(t, loaded)

			// the corrupt value must be gone
			assert.Equal(t, 0, store.Len())
		})
	}
}

func TestLoadCartFailingStoreDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	storage := NewStorage(failingKVStore{}, "test-cart")

	loaded := storage.LoadCart(ctx)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestSaveCartFailingStore(t *testing.T) {
	ctx := context.Background()
	storage := NewStorage(failingKVStore{}, "test-cart")

	assert.False(t, storage.SaveCart(ctx, []models.CartItem{{ID: "a"}}))
	assert.False(t, storage.ClearCart(ctx))
}

func TestIsStorageAvailable(t *testing.T) {
	ctx := context.Background()

	storage, store := newTestStorage()
	assert.True(t, storage.IsStorageAvailable(ctx))
	// the probe key must not linger
	assert.Equal(t, 0, store.Len())

	broken := NewStorage(failingKVStore{}, "test-cart")
	assert.False(t, broken.IsStorageAvailable(ctx))
}

func TestMigrateCartFormat(t *testing.T) {
	ctx := context.Background()
	legacyKey := models.LegacyCartStorageKeyPrefix + "test-cart"
	currentKey := models.CartStorageKeyPrefix + "test-cart"
	payload := `[{"id":"a","name":"Tee","price":"$19.99","quantity":1}]`

	t.Run("copies legacy data and removes the old key", func(t *testing.T) {
		storage, store := newTestStorage()
		require.NoError(t, store.SetItem(ctx, legacyKey, payload))

		assert.True(t, storage.MigrateCartFormat(ctx))

		value, found, err := store.GetItem(ctx, currentKey)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, payload, value)

		_, found, err = store.GetItem(ctx, legacyKey)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("idempotent", func(t *testing.T) {
		storage, store := newTestStorage()
		require.NoError(t, store.SetItem(ctx, legacyKey, payload))

		assert.True(t, storage.MigrateCartFormat(ctx))
		assert.True(t, storage.MigrateCartFormat(ctx))

		value, found, err := store.GetItem(ctx, currentKey)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, payload, value)
	})

	t.Run("never overwrites current data", func(t *testing.T) {
		storage, store := newTestStorage()
		require.NoError(t, store.SetItem(ctx, legacyKey, `[]`))
		require.NoError(t, store.SetItem(ctx, currentKey, payload))

		assert.True(t, storage.MigrateCartFormat(ctx))

		value, _, err := store.GetItem(ctx, currentKey)
		require.NoError(t, err)
		assert.Equal(t, payload, value)
	})

	t.Run("nothing to migrate", func(t *testing.T) {
		storage, _ := newTestStorage()
		assert.True(t, storage.MigrateCartFormat(ctx))
	})

	t.Run("failing store reports false", func(t *testing.T) {
		storage := NewStorage(failingKVStore{}, "test-cart")
		assert.False(t, storage.MigrateCartFormat(ctx))
	})
}
