package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-order-tracker/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-tracker/internal/domains/orders/ports"
)

var _ ports.Storage = (*Storage)(nil)

// Storage persists orders in PostgreSQL using GORM. Schema is owned by the migrations package.
type Storage struct {
	db *gorm.DB
}

// NewStorage wires a PostgreSQL-backed storage. Caller manages DB lifecycle.
func NewStorage(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

// orderRecord maps an order to the orders table. Seq fixes listing order on first insert.
type orderRecord struct {
	OrderID    string    `gorm:"primaryKey;column:order_id;size:255"`
	ItemName   string    `gorm:"column:item_name"`
	Quantity   int       `gorm:"column:quantity"`
	CustomerID string    `gorm:"column:customer_id;index"`
	Status     string    `gorm:"column:status;type:varchar(32);index"`
	Seq        int64     `gorm:"column:seq;autoIncrement;not null;uniqueIndex"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Save inserts the order or overwrites every mutable column of an existing one.
func (s *Storage) Save(ctx context.Context, id string, order domain.Order) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	record := toRecord(id, order)
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"item_name":   record.ItemName,
				"quantity":    record.Quantity,
				"customer_id": record.CustomerID,
				"status":      record.Status,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error
}

// Get fetches an order by id, returning nil when it does not exist.
func (s *Storage) Get(ctx context.Context, id string) (*domain.Order, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := s.db.WithContext(ctx).Take(&record, "order_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	order := record.toDomain()
	return &order, nil
}

// GetAll returns all orders in insertion order.
func (s *Storage) GetAll(ctx context.Context) ([]domain.Order, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := s.db.WithContext(ctx).Order("seq ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (s *Storage) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres order storage not configured")
	}
	return nil
}

func toRecord(id string, order domain.Order) orderRecord {
	return orderRecord{
		OrderID:    id,
		ItemName:   order.ItemName,
		Quantity:   order.Quantity,
		CustomerID: order.CustomerID,
		Status:     string(order.Status),
	}
}

func (r orderRecord) toDomain() domain.Order {
	return domain.Order{
		ID:         r.OrderID,
		ItemName:   r.ItemName,
		Quantity:   r.Quantity,
		CustomerID: r.CustomerID,
		Status:     domain.Status(r.Status),
	}
}
