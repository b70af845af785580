// store.go
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
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/localnerve/smart-reviewer/internal/config"
	"github.com/localnerve/smart-reviewer/internal/types"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultWindowDays is the trailing window used by the aggregation queries
const DefaultWindowDays = 30

// DefaultDisplayOffsetMinutes is the fixed display offset, UTC+05:30
const DefaultDisplayOffsetMinutes = 330

// Store is the tenant-scoped data-access and aggregation layer.
// It is built once at startup around the shared pool and handed to every handler.
type Store struct {
	db         *gorm.DB
	log        zerolog.Logger
	loc        *time.Location
	now        func() time.Time
	windowDays int
	bcryptCost int
	validate   *validator.Validate

	dummyOnce sync.Once
	dummyHash []byte
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for store failures
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log.With().Str("component", "store").Logger()
	}
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithDisplayOffset sets the fixed offset, in minutes east of UTC, that defines a calendar day
func WithDisplayOffset(minutes int) Option {
	return func(s *Store) {
		s.loc = config.FixedLocation(minutes)
	}
}

// WithWindowDays sets the default aggregation window
func WithWindowDays(days int) Option {
	return func(s *Store) {
		if days > 0 {
			s.windowDays = days
		}
	}
}

// WithBcryptCost sets the cost used by HashPassword and the dummy comparison hash
func WithBcryptCost(cost int) Option {
	return func(s *Store) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

// FromConfig maps the process configuration onto store options
func FromConfig(cfg *config.Config) []Option {
	return []Option{
		WithDisplayOffset(cfg.DisplayOffsetMinutes),
		WithWindowDays(cfg.AnalyticsWindowDays),
		WithBcryptCost(cfg.BcryptCost),
	}
}

// NewStore builds a Store over db
func NewStore(db *gorm.DB, opts ...Option) *Store {
	s := &Store{
		db:         db,
		log:        zerolog.Nop(),
		loc:        config.FixedLocation(DefaultDisplayOffsetMinutes),
		now:        time.Now,
		windowDays: DefaultWindowDays,
		bcryptCost: bcrypt.DefaultCost,
		validate:   NewValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DB exposes the underlying pool for health checks and shutdown
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Location is the fixed zone that defines calendar days
func (s *Store) Location() *time.Location {
	return s.loc
}

// Today is the current calendar day in the display offset, as YYYY-MM-DD
func (s *Store) Today() string {
	return s.dayOf(s.now())
}

func (s *Store) dayOf(t time.Time) string {
	return t.In(s.loc).Format(time.DateOnly)
}

// withTx runs fn in one transaction: committed when fn returns nil, rolled back on
// an error or panic. The connection goes back to the pool on every path.
func (s *Store) withTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

// fail classifies err into a DataError and logs it under the operation name.
// Bound parameters are not logged.
func (s *Store) fail(op string, err error) error {
	var de *types.DataError
	if errors.As(err, &de) {
		if de.Kind == nil {
			s.log.Error().Str("op", op).Err(de.Cause).Msg("store operation failed")
		} else {
			s.log.Debug().Str("op", op).Str("kind", de.Kind.Error()).Msg("store operation rejected")
		}
		return de
	}

	switch {
	case isDuplicateKey(err):
		s.log.Debug().Str("op", op).Msg("unique constraint violated")
		return types.NewDataError(op, types.ErrConflict, "", err)
	case isForeignKeyViolation(err):
		s.log.Debug().Str("op", op).Msg("foreign key constraint violated")
		return types.NewDataError(op, types.ErrConstraint, "", err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return types.NewDataError(op, types.ErrNotFound, "", err)
	}

	s.log.Error().Str("op", op).Err(err).Msg("store operation failed")
	return types.NewDataError(op, nil, "", err)
}

// isDuplicateKey matches translated errors first, then driver text for dialects without a translator
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint") ||
		strings.Contains(msg, "violates foreign key")
}

// NewValidator returns a validator that reports failing fields by their JSON names.
// Handlers and the Store share it so messages read the same.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// invalid wraps a validator error as a ValidationError
func invalid(op string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return types.NewDataError(op, types.ErrValidation, "Missing or invalid field: "+verrs[0].Field(), err)
	}
	return types.NewDataError(op, types.ErrValidation, "Invalid input", err)
}
