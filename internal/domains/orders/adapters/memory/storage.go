package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-gin-order-tracker/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-tracker/internal/domains/orders/ports"
)

var _ ports.Storage = (*Storage)(nil)

// Storage is an in-memory order storage adapter. Listing follows first-save order.
type Storage struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
	ids    []string
}

func NewStorage() *Storage {
	return &Storage{orders: map[string]domain.Order{}}
}

func (s *Storage) Save(_ context.Context, id string, order domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		s.ids = append(s.ids, id)
	}
	s.orders[id] = order
	return nil
}

func (s *Storage) Get(_ context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (s *Storage) GetAll(_ context.Context) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]domain.Order, 0, len(s.ids))
	for _, id := range s.ids {
		list = append(list, s.orders[id])
	}
	return list, nil
}
