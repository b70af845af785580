// Package testutil builds databases, stores and clocks for tests and the
// local container runner.
package testutil

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/smart-reviewer/internal/database"
	"github.com/localnerve/smart-reviewer/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupTestDB opens a private in-memory sqlite database with foreign keys on and the schema migrated.
// One connection keeps the shared-cache database alive and serializes writers.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), database.NewGormConfig(gormlogger.Default.LogMode(gormlogger.Silent)))
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// SetupFileTestDB opens a migrated sqlite database file with up to maxOpen connections,
// for tests that need writers on separate connections. Transactions begin IMMEDIATE and
// wait on the busy timeout for the write lock.
func SetupFileTestDB(t *testing.T, maxOpen int) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	dsn := path + "?_foreign_keys=on&_busy_timeout=10000&_journal_mode=WAL&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), database.NewGormConfig(gormlogger.Default.LogMode(gormlogger.Silent)))
	if err != nil {
		t.Fatalf("Failed to open test database file: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(maxOpen)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// Clock is a settable time source for services.WithClock
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a Clock stopped at now
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the current fake time
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to now
func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Advance moves the clock forward by d
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// NewTestStore returns a Store over a fresh test database, with the minimum bcrypt cost
func NewTestStore(t *testing.T, opts ...services.Option) (*services.Store, *gorm.DB) {
	t.Helper()
	db := SetupTestDB(t)
	opts = append([]services.Option{services.WithBcryptCost(4)}, opts...)
	return services.NewStore(db, opts...), db
}
