package persistence

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/markethub/backend/internal/domain/cart"
	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/domain/shipping"
)

// newTestDB opens an isolated in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&identity.User{},
		&identity.Partner{},
		&catalog.Category{},
		&catalog.Product{},
		&catalog.ProductImage{},
		&catalog.Coupon{},
		&shipping.Address{},
		&cart.Item{},
	))
	return db
}

// newMockDB opens a GORM connection backed by sqlmock for tests that
// assert the generated SQL rather than round-trip through a schema.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}
