// connection.go
//
// Feedback, rating link and analytics service for multi-tenant business dashboards
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of smart-reviewer.
// smart-reviewer is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// smart-reviewer is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with smart-reviewer.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package database

import (
	"fmt"
	"net/url"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/localnerve/smart-reviewer/internal/config"
	"github.com/localnerve/smart-reviewer/internal/logging"
	"github.com/localnerve/smart-reviewer/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Dialector builds the GORM dialector for the configured DB_TYPE
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	connectSecs := int(cfg.DBConnectTimeout / time.Second)
	if connectSecs <= 0 {
		connectSecs = 10
	}

	switch cfg.DBType {
	case "mysql", "mariadb":
		// clientFoundRows makes an unchanged UPDATE still report the matched row
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true&timeout=%ds",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBDatabase,
			connectSecs,
		)
		return mysql.Open(dsn), nil

	case "postgres", "postgresql":
		if cfg.DatabaseURL != "" {
			return postgres.Open(cfg.DatabaseURL), nil
		}
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s connect_timeout=%d TimeZone=UTC",
			cfg.DBHost,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBDatabase,
			cfg.DBPort,
			cfg.DBSSLMode,
			connectSecs,
		)
		return postgres.Open(dsn), nil

	case "sqlite":
		// DBDatabase is the file path; foreign keys are off by default in sqlite
		dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)",
			cfg.DBDatabase, connectSecs*1000)
		return sqlite.Open(dsn), nil

	case "sqlserver", "mssql":
		query := url.Values{}
		query.Set("database", cfg.DBDatabase)
		query.Set("connection timeout", fmt.Sprint(connectSecs))
		u := &url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(cfg.DBUser, cfg.DBPassword),
			Host:     fmt.Sprintf("%s:%s", cfg.DBHost, cfg.DBPort),
			RawQuery: query.Encode(),
		}
		return sqlserver.Open(u.String()), nil
	}

	return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
}

// NewGormConfig is the GORM configuration shared by the server, tools and tests.
// Driver unique and foreign key failures are translated to gorm.ErrDuplicatedKey
// and gorm.ErrForeignKeyViolated.
func NewGormConfig(l gormlogger.Interface) *gorm.Config {
	return &gorm.Config{
		Logger:         l,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Connect establishes the shared database pool based on the configured DB_TYPE
func Connect(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, NewGormConfig(logging.NewGormLogger(log, cfg.LogSQL)))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB for connection pool configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	limit := cfg.DBConnectionLimit
	if cfg.DBType == "sqlite" {
		// a single writer avoids SQLITE_BUSY under concurrent upserts
		limit = 1
	}
	sqlDB.SetMaxOpenConns(limit)
	sqlDB.SetMaxIdleConns(max(limit/2, 1))
	sqlDB.SetConnMaxIdleTime(cfg.DBIdleTimeout)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	log.Info().
		Str("db_type", cfg.DBType).
		Str("database", cfg.DBDatabase).
		Int("max_open_conns", limit).
		Msg("connected to database")

	return db, nil
}

// AutoMigrate creates or updates the four tables with their keys and constraints
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
