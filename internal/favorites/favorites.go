// Package favorites implements the per-session favorites list: a
// deduplicated, insertion-ordered set of product snapshots mirrored to
// durable storage.
package favorites

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/parfumerie-dz/storefront/internal/catalog"
	"github.com/parfumerie-dz/storefront/internal/storage"
)

// slotName is the storage slot favorites persist under, one per session.
const slotName = "parfumerie_favorites"

// FavoritesService defines session-scoped favorites operations.
type FavoritesService interface {
	// List returns the session's favorites in the order they were added.
	List(sessionID string) []catalog.Product

	// Add appends the product unless it is already a favorite, and
	// returns the updated list.
	Add(sessionID string, product catalog.Product) ([]catalog.Product, error)

	// Remove deletes the product from the list. Removing an absent
	// product is a no-op.
	Remove(sessionID string, productID uuid.UUID) ([]catalog.Product, error)

	// IsFavorite reports whether the product is in the session's list.
	IsFavorite(sessionID string, productID uuid.UUID) bool
}

// Service implements FavoritesService on a FileStore, with a per-session
// lock serializing the load-mutate-save cycle.
type Service struct {
	store *storage.FileStore
	locks storage.KeyedMutex
}

// NewService creates a favorites service backed by the given store.
func NewService(store *storage.FileStore) *Service {
	return &Service{store: store}
}

func slotKey(sessionID string) string {
	return sessionID + "/" + slotName
}

// List returns the session's favorites, empty when nothing is stored.
func (s *Service) List(sessionID string) []catalog.Product {
	return storage.Load[catalog.Product](s.store, slotKey(sessionID))
}

// Add appends the product to the session's favorites. Adding a product
// that is already present changes nothing, including its position.
func (s *Service) Add(sessionID string, product catalog.Product) ([]catalog.Product, error) {
	return s.mutate(sessionID, func(items []catalog.Product) []catalog.Product {
		for _, p := range items {
			if p.ID == product.ID {
				return items
			}
		}
		return append(items, product)
	})
}

// Remove deletes the product from the session's favorites.
func (s *Service) Remove(sessionID string, productID uuid.UUID) ([]catalog.Product, error) {
	return s.mutate(sessionID, func(items []catalog.Product) []catalog.Product {
		for i, p := range items {
			if p.ID == productID {
				return append(items[:i], items[i+1:]...)
			}
		}
		return items
	})
}

// IsFavorite reports whether the product is in the session's favorites.
func (s *Service) IsFavorite(sessionID string, productID uuid.UUID) bool {
	for _, p := range s.List(sessionID) {
		if p.ID == productID {
			return true
		}
	}
	return false
}

func (s *Service) mutate(sessionID string, fn func([]catalog.Product) []catalog.Product) ([]catalog.Product, error) {
	key := slotKey(sessionID)
	unlock := s.locks.Lock(key)
	defer unlock()

	items := fn(storage.Load[catalog.Product](s.store, key))
	if err := storage.Save(s.store, key, items); err != nil {
		return nil, fmt.Errorf("failed to persist favorites: %w", err)
	}
	return items, nil
}
