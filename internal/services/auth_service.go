// auth_service.go
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
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/localnerve/smart-reviewer/internal/models"
	"github.com/localnerve/smart-reviewer/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Principal is the minimum an authenticated session needs
type Principal struct {
	OwnerID      uint64 `json:"businessId"`
	PropertyName string `json:"propertyName"`
	FirstLogin   bool   `json:"firstLogin"`
}

// compareDummy spends the same bcrypt work as a real comparison for unknown logins.
// The hash is built on first use at this store's cost.
func (s *Store) compareDummy(secret string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("smart-reviewer-dummy-secret"), s.bcryptCost)
	})
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(secret))
}

// HashPassword hashes a secret with the store's bcrypt cost
func (s *Store) HashPassword(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Authenticate verifies a login. Unknown logins and wrong secrets fail identically.
func (s *Store) Authenticate(ctx context.Context, login, secret string) (*Principal, error) {
	const op = "auth.authenticate"

	var row struct {
		BusinessID   uint64
		PasswordHash string
		FirstLogin   bool
		PropertyName string
	}
	err := s.db.WithContext(ctx).
		Model(&models.Credential{}).
		Select("business_auth.business_id, business_auth.password_hash, business_auth.first_login, users.property_name").
		Joins("JOIN users ON users.id = business_auth.business_id").
		Where("business_auth.username = ?", login).
		Take(&row).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		s.compareDummy(secret)
		return nil, s.fail(op, types.NewDataError(op, types.ErrAuth, "", nil))
	case err != nil:
		return nil, s.fail(op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(secret)); err != nil {
		return nil, s.fail(op, types.NewDataError(op, types.ErrAuth, "", nil))
	}

	return &Principal{
		OwnerID:      row.BusinessID,
		PropertyName: row.PropertyName,
		FirstLogin:   row.FirstLogin,
	}, nil
}

// ChangeSecret replaces the owner's password hash after verifying the current secret,
// and clears the first-login flag.
func (s *Store) ChangeSecret(ctx context.Context, ownerID uint64, currentSecret, newHash string) error {
	const op = "auth.change_secret"

	if newHash == "" {
		return s.fail(op, types.NewDataError(op, types.ErrValidation, "Missing or invalid field: newPassword", nil))
	}

	err := s.withTx(ctx, func(tx *gorm.DB) error {
		var cred models.Credential
		err := tx.Where("business_id = ?", ownerID).Take(&cred).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NewDataError(op, types.ErrAuth, "", nil)
		}
		if err != nil {
			return err
		}
		if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(currentSecret)); err != nil {
			return types.NewDataError(op, types.ErrAuth, "", nil)
		}
		return tx.Model(&models.Credential{}).
			Where("id = ?", cred.ID).
			Updates(map[string]interface{}{
				"password_hash": newHash,
				"first_login":   false,
			}).Error
	})
	if err != nil {
		return s.fail(op, err)
	}

	return nil
}

// SessionClaims is the signed session payload
type SessionClaims struct {
	PropertyName string `json:"propertyName"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 session tokens
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager returns a TokenManager signing with secret. ttl <= 0 means 24 hours.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is the lifetime of issued tokens
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue mints a token for a verified principal
func (m *TokenManager) Issue(p *Principal) (string, time.Time, error) {
	now := m.now()
	expires := now.Add(m.ttl)
	claims := SessionClaims{
		PropertyName: p.PropertyName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(p.OwnerID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, expires, nil
}

// Verify checks the signature and expiry of a token and returns its principal.
// Every failure is an ErrAuth.
func (m *TokenManager) Verify(token string) (*Principal, error) {
	const op = "auth.verify_token"

	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, types.NewDataError(op, types.ErrAuth, "", err)
	}

	ownerID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || ownerID == 0 {
		return nil, types.NewDataError(op, types.ErrAuth, "", err)
	}

	return &Principal{OwnerID: ownerID, PropertyName: claims.PropertyName}, nil
}
