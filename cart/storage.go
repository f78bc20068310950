package cart

import (
	"context"
	"encoding/json"
	"log"

	"mu-waterwear/models"
	"mu-waterwear/repository"
)

// Storage is the sole owner of the persistence boundary for one cart.
// Every read and write of cart data goes through it, under a single fixed
// storage key derived from the cart id. Store failures (read, write,
// serialization) are always caught here and converted to empty/boolean
// results; they never propagate to callers as errors.
type Storage struct {
	store     repository.KVStore
	key       string
	legacyKey string
}

// NewStorage creates cart storage bound to one cart id
func NewStorage(store repository.KVStore, cartID string) *Storage {
	return &Storage{
		store:     store,
		key:       models.CartStorageKeyPrefix + cartID,
		legacyKey: models.LegacyCartStorageKeyPrefix + cartID,
	}
}

// LoadCart reads the persisted cart. A missing key returns an empty cart,
// not an error. Corrupt data is self-healing: the collected validation
// errors are logged, the stored value is cleared, and an empty cart is
// returned; loading never fails the caller.
func (s *Storage) LoadCart(ctx context.Context) []models.CartItem {
	raw, found, err := s.store.GetItem(ctx, s.key)
	if err != nil {
		log.Printf("❌ Cart storage: failed to read %s: %v", s.key, err)
		return []models.CartItem{}
	}
	if !found {
		return []models.CartItem{}
	}

	var decoded interface{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		log.Printf("❌ Cart storage: corrupt data under %s (%v), clearing", s.key, err)
		s.ClearCart(ctx)
		return []models.CartItem{}
	}

	validation := ValidateCartData(decoded)
	if !validation.IsValid {
		for _, e := range validation.Errors {
			log.Printf("❌ Cart storage: invalid persisted cart: %s", e)
		}
		s.ClearCart(ctx)
		return []models.CartItem{}
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		// Validated above; a decode failure here means a shape we can't
		// repair, so treat it like corruption.
		log.Printf("❌ Cart storage: failed to decode cart items (%v), clearing", err)
		s.ClearCart(ctx)
		return []models.CartItem{}
	}

	return items
}

// SaveCart serializes and persists the cart. Returns false (and logs) on
// any failure instead of propagating.
func (s *Storage) SaveCart(ctx context.Context, items []models.CartItem) bool {
	if items == nil {
		items = []models.CartItem{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		log.Printf("❌ Cart storage: failed to serialize cart: %v", err)
		return false
	}

	if err := s.store.SetItem(ctx, s.key, string(data)); err != nil {
		log.Printf("❌ Cart storage: failed to save cart: %v", err)
		return false
	}

	return true
}

// ClearCart removes the persisted cart. Same failure contract as SaveCart.
func (s *Storage) ClearCart(ctx context.Context) bool {
	if err := s.store.RemoveItem(ctx, s.key); err != nil {
		log.Printf("❌ Cart storage: failed to clear cart: %v", err)
		return false
	}
	return true
}

// IsStorageAvailable probes writability with a throwaway key. Callers can
// pre-flight with it instead of failing later.
func (s *Storage) IsStorageAvailable(ctx context.Context) bool {
	if err := s.store.SetItem(ctx, models.CartStorageProbeKey, "ok"); err != nil {
		return false
	}
	if err := s.store.RemoveItem(ctx, models.CartStorageProbeKey); err != nil {
		return false
	}
	return true
}

// MigrateCartFormat copies data from the legacy storage key to the current
// one, then deletes the legacy key. Best-effort and idempotent: safe to
// call unconditionally at startup, a no-op when there is nothing to migrate
// or the current key is already populated.
func (s *Storage) MigrateCartFormat(ctx context.Context) bool {
	legacyRaw, legacyFound, err := s.store.GetItem(ctx, s.legacyKey)
	if err != nil {
		log.Printf("❌ Cart storage: migration read failed: %v", err)
		return false
	}
	if !legacyFound {
		return true
	}

	_, currentFound, err := s.store.GetItem(ctx, s.key)
	if err != nil {
		log.Printf("❌ Cart storage: migration read failed: %v", err)
		return false
	}
	if currentFound {
		return true
	}

	if err := s.store.SetItem(ctx, s.key, legacyRaw); err != nil {
		log.Printf("❌ Cart storage: migration write failed: %v", err)
		return false
	}
	if err := s.store.RemoveItem(ctx, s.legacyKey); err != nil {
		log.Printf("❌ Cart storage: failed to remove legacy key: %v", err)
		return false
	}

	log.Printf("✓ Cart storage: migrated legacy cart data to %s", s.key)
	return true
}

// LoadCartResult exposes LoadCart in the envelope shape the operations
// layer consumes. The error is always nil on this path: corruption and
// read failures already degraded to an empty cart inside LoadCart.
func (s *Storage) LoadCartResult(ctx context.Context) ([]models.CartItem, *models.CartError) {
	return s.LoadCart(ctx), nil
}
