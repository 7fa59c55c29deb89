package cart

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/parfumerie-dz/storefront/internal/catalog"
	"github.com/parfumerie-dz/storefront/internal/storage"
)

// slotName is the storage slot carts persist under, one per session.
const slotName = "parfumerie_cart"

// CartService defines session-scoped cart operations. Every mutation is
// written through to storage before it returns, so a crash never loses an
// acknowledged change.
type CartService interface {
	// Get returns the session's cart. A session with no stored cart gets
	// an empty one.
	Get(sessionID string) Cart

	// Add puts one unit of the product in the session's cart and returns
	// the updated cart.
	Add(sessionID string, product catalog.Product) (Cart, error)

	// SetQuantity replaces a line's quantity. Zero or negative removes the
	// line; an unknown product ID leaves the cart unchanged.
	SetQuantity(sessionID string, productID uuid.UUID, quantity int32) (Cart, error)

	// Remove deletes a line. Removing an absent product is a no-op.
	Remove(sessionID string, productID uuid.UUID) (Cart, error)

	// Clear empties the session's cart and frees its storage slot.
	Clear(sessionID string) error
}

// Service implements CartService on a FileStore. A per-session lock
// serializes the load-mutate-save cycle against concurrent requests.
type Service struct {
	store *storage.FileStore
	locks storage.KeyedMutex
}

// NewService creates a cart service backed by the given store.
func NewService(store *storage.FileStore) *Service {
	return &Service{store: store}
}

func slotKey(sessionID string) string {
	return sessionID + "/" + slotName
}

// Get returns the session's cart, empty when nothing is stored or the
// stored payload is unreadable.
func (s *Service) Get(sessionID string) Cart {
	return Cart{Items: storage.Load[LineItem](s.store, slotKey(sessionID))}
}

// Add puts one unit of the product in the session's cart.
func (s *Service) Add(sessionID string, product catalog.Product) (Cart, error) {
	return s.mutate(sessionID, func(c *Cart) {
		c.Add(product)
	})
}

// SetQuantity replaces the quantity of the product's line.
func (s *Service) SetQuantity(sessionID string, productID uuid.UUID, quantity int32) (Cart, error) {
	return s.mutate(sessionID, func(c *Cart) {
		c.SetQuantity(productID, quantity)
	})
}

// Remove deletes the product's line from the session's cart.
func (s *Service) Remove(sessionID string, productID uuid.UUID) (Cart, error) {
	return s.mutate(sessionID, func(c *Cart) {
		c.Remove(productID)
	})
}

// Clear empties the session's cart and removes its storage slot.
func (s *Service) Clear(sessionID string) error {
	key := slotKey(sessionID)
	unlock := s.locks.Lock(key)
	defer unlock()

	if err := s.store.Clear(key); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// mutate runs fn against the stored cart under the session's lock and
// writes the result back.
func (s *Service) mutate(sessionID string, fn func(*Cart)) (Cart, error) {
	key := slotKey(sessionID)
	unlock := s.locks.Lock(key)
	defer unlock()

	c := Cart{Items: storage.Load[LineItem](s.store, key)}
	fn(&c)
	if err := storage.Save(s.store, key, c.Items); err != nil {
		return Cart{}, fmt.Errorf("failed to persist cart: %w", err)
	}
	return c, nil
}
