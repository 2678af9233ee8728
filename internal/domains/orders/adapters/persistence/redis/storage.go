package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Apurer/go-gin-order-tracker/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-tracker/internal/domains/orders/ports"
)

var _ ports.Storage = (*Storage)(nil)

// DefaultKeyPrefix namespaces the keys written by Storage.
const DefaultKeyPrefix = "order-tracker"

// Storage keeps orders as JSON in a hash. A sorted set scored by a counter
// records the position of each id at its first save.
type Storage struct {
	client goredis.UniversalClient
	prefix string
}

// NewStorage wires a Redis-backed storage. Caller manages client lifecycle.
func NewStorage(client goredis.UniversalClient, prefix string) *Storage {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Storage{client: client, prefix: prefix}
}

type orderRecord struct {
	OrderID    string `json:"order_id"`
	ItemName   string `json:"item_name"`
	Quantity   int    `json:"quantity"`
	CustomerID string `json:"customer_id"`
	Status     string `json:"status"`
}

func (s *Storage) ordersKey() string  { return s.prefix + ":orders" }
func (s *Storage) indexKey() string   { return s.prefix + ":order_index" }
func (s *Storage) counterKey() string { return s.prefix + ":order_seq" }

func (s *Storage) Save(ctx context.Context, id string, order domain.Order) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	payload, err := encodeRecord(id, order)
	if err != nil {
		return err
	}
	seq, err := s.client.Incr(ctx, s.counterKey()).Result()
	if err != nil {
		return fmt.Errorf("allocate order sequence: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, s.ordersKey(), id, payload)
		pipe.ZAddNX(ctx, s.indexKey(), goredis.Z{Score: float64(seq), Member: id})
		return nil
	})
	if err != nil {
		return fmt.Errorf("save order %s: %w", id, err)
	}
	return nil
}

func (s *Storage) Get(ctx context.Context, id string) (*domain.Order, error) {
	if err := s.ensureClient(); err != nil {
		return nil, err
	}
	raw, err := s.client.HGet(ctx, s.ordersKey(), id).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	order, err := decodeRecord(raw)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Storage) GetAll(ctx context.Context) ([]domain.Order, error) {
	if err := s.ensureClient(); err != nil {
		return nil, err
	}
	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list order index: %w", err)
	}
	orders := make([]domain.Order, 0, len(ids))
	if len(ids) == 0 {
		return orders, nil
	}
	values, err := s.client.HMGet(ctx, s.ordersKey(), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		order, err := decodeRecord(raw)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (s *Storage) ensureClient() error {
	if s == nil || s.client == nil {
		return errors.New("redis order storage not configured")
	}
	return nil
}

func encodeRecord(id string, order domain.Order) (string, error) {
	payload, err := json.Marshal(orderRecord{
		OrderID:    id,
		ItemName:   order.ItemName,
		Quantity:   order.Quantity,
		CustomerID: order.CustomerID,
		Status:     string(order.Status),
	})
	if err != nil {
		return "", fmt.Errorf("encode order %s: %w", id, err)
	}
	return string(payload), nil
}

func decodeRecord(raw string) (domain.Order, error) {
	var record orderRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return domain.Order{}, fmt.Errorf("decode order: %w", err)
	}
	return domain.Order{
		ID:         record.OrderID,
		ItemName:   record.ItemName,
		Quantity:   record.Quantity,
		CustomerID: record.CustomerID,
		Status:     domain.Status(record.Status),
	}, nil
}
