package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/localnerve/smart-reviewer/internal/database"
	"github.com/localnerve/smart-reviewer/internal/services"
	"github.com/localnerve/smart-reviewer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockStore runs a Store over the postgres dialect with a scripted connection
func newMockStore(t *testing.T) (*services.Store, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}),
		database.NewGormConfig(logger.Default.LogMode(logger.Silent)))
	require.NoError(t, err)

	store := services.NewStore(db, services.WithClock(func() time.Time { return baseTime }))
	return store, mock
}

// TestCreateOwnerRollsBackOnCredentialFailure tests that a failed credential insert undoes the owner insert
func TestCreateOwnerRollsBackOnCredentialFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`INSERT INTO "business_auth"`).
		WillReturnError(errors.New("connection reset by peer"))
	mock.ExpectRollback()

	_, err := store.CreateOwner(context.Background(), ownerInput("rollback"))
	require.Error(t, err)

	var de *types.DataError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "owners.create", de.Op)
	assert.Nil(t, de.Kind)
	assert.Equal(t, "Internal server error", types.PublicMessage(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCreateOwnerDuplicateFromDriver tests that a driver unique violation is classified as a conflict
func TestCreateOwnerDuplicateFromDriver(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
	mock.ExpectQuery(`INSERT INTO "business_auth"`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_business_auth_username" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	_, err := store.CreateOwner(context.Background(), ownerInput("dupe"))
	assert.ErrorIs(t, err, types.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestRecordAnalyticsEventIsOneUpsert tests that the increment is a single insert-or-update statement
func TestRecordAnalyticsEventIsOneUpsert(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "daily_analytics" .* ON CONFLICT \("unique_id","analytics_date"\) DO UPDATE SET "qr_scans"=daily_analytics\.qr_scans \+ \$\d+,"updated_at"=\$\d+`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	require.NoError(t, store.RecordAnalyticsEvent(context.Background(), "0f8fad5b-d9cb-469f-a165-70867728950e", services.EventScan))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestDeleteOwnerOrder tests that children are deleted before the owner, in one transaction
func TestDeleteOwnerOrder(t *testing.T) {
	store, mock := newMockStore(t)
	uniqueID := "0f8fad5b-d9cb-469f-a165-70867728950e"

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id","unique_id" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "unique_id"}).AddRow(3, uniqueID))
	mock.ExpectExec(`DELETE FROM "daily_analytics"`).WithArgs(uniqueID).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "feedback"`).WithArgs(uniqueID).WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec(`DELETE FROM "business_auth"`).WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "users"`).WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.DeleteOwner(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestDeleteOwnerRollsBack tests that a failure part way through the cascade rolls everything back
func TestDeleteOwnerRollsBack(t *testing.T) {
	store, mock := newMockStore(t)
	uniqueID := "0f8fad5b-d9cb-469f-a165-70867728950e"

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id","unique_id" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "unique_id"}).AddRow(3, uniqueID))
	mock.ExpectExec(`DELETE FROM "daily_analytics"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "feedback"`).WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	err := store.DeleteOwner(context.Background(), 3)
	require.Error(t, err)
	assert.Equal(t, "Internal server error", types.PublicMessage(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
