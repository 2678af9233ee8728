package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Apurer/go-gin-order-tracker/internal/domains/orders/domain"
)

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewStorage(db), mock
}

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

var recordColumns = []string{"order_id", "item_name", "quantity", "customer_id", "status", "seq", "created_at", "updated_at"}

func TestStorage_GetMapsRecord(t *testing.T) {
	storage, mock := newMockStorage(t)

	rows := sqlmock.NewRows(recordColumns).
		AddRow("o1", "jacket", 2, "c1", "processing", 1, now, now)
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE order_id = \$1`).WillReturnRows(rows)

	order, err := storage.Get(context.Background(), "o1")
	require.NoError(t, err)
	require.Equal(t, &domain.Order{ID: "o1", ItemName: "jacket", Quantity: 2, CustomerID: "c1", Status: domain.StatusProcessing}, order)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_GetMissingReturnsNil(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE order_id = \$1`).
		WillReturnRows(sqlmock.NewRows(recordColumns))

	order, err := storage.Get(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, order)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_GetPropagatesBackendErrors(t *testing.T) {
	storage, mock := newMockStorage(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery(`SELECT \* FROM "orders"`).WillReturnError(boom)

	_, err := storage.Get(context.Background(), "o1")
	require.ErrorIs(t, err, boom)
}

func TestStorage_GetAllOrdersBySeq(t *testing.T) {
	storage, mock := newMockStorage(t)

	rows := sqlmock.NewRows(recordColumns).
		AddRow("b", "pen", 1, "c1", "pending", 1, now, now).
		AddRow("a", "ink", 3, "c2", "shipped", 2, now, now)
	mock.ExpectQuery(`SELECT \* FROM "orders" ORDER BY seq ASC`).WillReturnRows(rows)

	orders, err := storage.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, "b", orders[0].ID)
	require.Equal(t, domain.StatusShipped, orders[1].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_RequiresDB(t *testing.T) {
	storage := NewStorage(nil)

	_, err := storage.Get(context.Background(), "o1")
	require.Error(t, err)
	_, err = storage.GetAll(context.Background())
	require.Error(t, err)
	require.Error(t, storage.Save(context.Background(), "o1", domain.Order{}))
}
