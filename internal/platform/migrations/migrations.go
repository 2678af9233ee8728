package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the order tracker schema.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&orderRecord{})
}

// Order schema mirrors the orders Postgres storage.
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
