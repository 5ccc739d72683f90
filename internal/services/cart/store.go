package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/lavandel/flower_storefront/internal/domain/models"
)

// SessionStore holds one cart per shopper session. Carts expire with
// the session TTL and the LRU bound keeps abandoned carts from growing
// without limit.
type SessionStore struct {
	carts *expirable.LRU[uuid.UUID, *models.Cart]
}

func NewSessionStore(maxCarts int, ttl time.Duration) *SessionStore {
	return &SessionStore{
		carts: expirable.NewLRU[uuid.UUID, *models.Cart](maxCarts, nil, ttl),
	}
}

func (s *SessionStore) Get(sessionID uuid.UUID) (*models.Cart, bool) {
	return s.carts.Get(sessionID)
}

func (s *SessionStore) Put(sessionID uuid.UUID, cart *models.Cart) {
	s.carts.Add(sessionID, cart)
}

func (s *SessionStore) Delete(sessionID uuid.UUID) {
	s.carts.Remove(sessionID)
}
