// health.go
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

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/localnerve/smart-reviewer/internal/config"
	"github.com/localnerve/smart-reviewer/internal/utils"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// Healthy reports whether every dependency answered
func (r HealthCheckResult) Healthy() bool {
	return r.Status == "healthy"
}

const healthTimeout = 1500 * time.Millisecond

// HealthCheck reports whether the database host answers and the pool can reach the database
func HealthCheck(ctx context.Context, cfg *config.Config, db *gorm.DB, log zerolog.Logger) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	fail := func(state, key string, err error, format string) {
		result.Status = "unhealthy"
		result.Database = state
		result.Details[key] = err.Error()
		result.ErrorMessage = fmt.Sprintf(format, err)
		log.Warn().Err(err).Str("check", key).Msg("health check failed")
	}

	// A refused TCP dial fails faster than the driver's connect timeout
	if err := pingDatabaseHost(cfg); err != nil {
		fail("unreachable", "database_host_error", err, "Database host unreachable: %v")
		return result
	}

	sqlDB, err := db.DB()
	if err != nil {
		fail("error", "database_error", err, "Database connection error: %v")
		return result
	}

	pingCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		fail("unreachable", "database_ping_error", err, "Database ping failed: %v")
		return result
	}

	result.Database = "ok"
	result.Details["database_type"] = cfg.DBType
	if cfg.DBDatabase != "" {
		result.Details["database_name"] = cfg.DBDatabase
	}
	log.Debug().Msg("health check passed")

	return result
}

func pingDatabaseHost(cfg *config.Config) error {
	switch {
	case cfg.DBType == "sqlite":
		return nil
	case cfg.DatabaseURL != "":
		return utils.PingService(cfg.DatabaseURL, healthTimeout)
	}
	return utils.PingAddress(cfg.DBHost, cfg.DBPort, healthTimeout)
}
