// owners.go
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
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/smart-reviewer/internal/models"
	"github.com/localnerve/smart-reviewer/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// OwnerProfile holds the mutable display fields of an Owner
type OwnerProfile struct {
	OwnerName             string `json:"ownerName" validate:"required,max=255"`
	PropertyName          string `json:"propertyName" validate:"required,max=255"`
	PropertyAddress       string `json:"propertyAddress"`
	GoogleMapLink         string `json:"googleMapLink" validate:"omitempty,url"`
	ContactNumber         string `json:"contactNumber" validate:"max=20"`
	CustomFeedbackMessage string `json:"customFeedbackMessage"`
}

// OwnerInput registers an Owner together with its Credential.
// PasswordHash must already be hashed.
type OwnerInput struct {
	OwnerProfile
	Username     string `json:"username" validate:"required,max=255"`
	PasswordHash string `json:"-" validate:"required"`
}

// OwnerUpdate overwrites the whole profile. The credential fields change only when Set.
type OwnerUpdate struct {
	Profile      OwnerProfile
	Username     types.Optional[string]
	PasswordHash types.Optional[string]
}

// OwnerSummary is one row of the admin owner list
type OwnerSummary struct {
	ID                    uint64    `json:"id"`
	UniqueID              string    `json:"uniqueId"`
	OwnerName             string    `json:"ownerName"`
	PropertyName          string    `json:"propertyName"`
	PropertyAddress       string    `json:"propertyAddress"`
	GoogleMapLink         string    `json:"googleMapLink"`
	ContactNumber         string    `json:"contactNumber"`
	CustomFeedbackMessage string    `json:"customFeedbackMessage"`
	CreatedAt             time.Time `json:"createdAt"`
	Username              string    `json:"username"`
	ReviewCount           int64     `json:"reviewCount"`
}

func (p OwnerProfile) columns() map[string]interface{} {
	return map[string]interface{}{
		"owner_name":              p.OwnerName,
		"property_name":           p.PropertyName,
		"property_address":        p.PropertyAddress,
		"google_map_link":         p.GoogleMapLink,
		"contact_number":          p.ContactNumber,
		"custom_feedback_message": p.CustomFeedbackMessage,
	}
}

// CreateOwner inserts an Owner with a fresh opaque id and its Credential in one transaction
func (s *Store) CreateOwner(ctx context.Context, in OwnerInput) (*models.Owner, error) {
	const op = "owners.create"

	if err := s.validate.Struct(in); err != nil {
		return nil, s.fail(op, invalid(op, err))
	}

	now := s.now().UTC()
	owner := &models.Owner{
		UniqueID:              uuid.NewString(),
		OwnerName:             in.OwnerName,
		PropertyName:          in.PropertyName,
		PropertyAddress:       in.PropertyAddress,
		GoogleMapLink:         in.GoogleMapLink,
		ContactNumber:         in.ContactNumber,
		CustomFeedbackMessage: in.CustomFeedbackMessage,
		CreatedAt:             now,
	}

	err := s.withTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(owner).Error; err != nil {
			return err
		}
		return tx.Create(&models.Credential{
			BusinessID:   owner.ID,
			Username:     in.Username,
			PasswordHash: in.PasswordHash,
			FirstLogin:   true,
			CreatedAt:    now,
		}).Error
	})
	if err != nil {
		return nil, s.fail(op, err)
	}

	return owner, nil
}

// ListOwners returns every Owner with its login and review count, newest first
func (s *Store) ListOwners(ctx context.Context) ([]OwnerSummary, error) {
	const op = "owners.list"

	reviewCounts := s.db.Model(&models.Feedback{}).
		Select("unique_id, COUNT(*) AS review_count").
		Group("unique_id")

	summaries := make([]OwnerSummary, 0)
	err := s.db.WithContext(ctx).
		Clauses(hints.Comment("select", op)).
		Table("users").
		Select(`users.id, users.unique_id, users.owner_name, users.property_name,
			users.property_address, users.google_map_link, users.contact_number,
			users.custom_feedback_message, users.created_at,
			COALESCE(business_auth.username, '') AS username,
			COALESCE(fc.review_count, 0) AS review_count`).
		Joins("LEFT JOIN business_auth ON business_auth.business_id = users.id").
		Joins("LEFT JOIN (?) AS fc ON fc.unique_id = users.unique_id", reviewCounts).
		Order("users.id DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, s.fail(op, err)
	}

	return summaries, nil
}

// GetOwner loads an Owner by internal id
func (s *Store) GetOwner(ctx context.Context, id uint64) (*models.Owner, error) {
	const op = "owners.get"

	var owner models.Owner
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&owner).Error; err != nil {
		return nil, s.fail(op, err)
	}
	return &owner, nil
}

// GetOwnerByUniqueID loads an Owner by its opaque id, for the public rating page
func (s *Store) GetOwnerByUniqueID(ctx context.Context, uniqueID string) (*models.Owner, error) {
	const op = "owners.get_by_unique_id"

	if uniqueID == "" {
		return nil, s.fail(op, types.NewDataError(op, types.ErrNotFound, "", nil))
	}

	var owner models.Owner
	if err := s.db.WithContext(ctx).Where("unique_id = ?", uniqueID).First(&owner).Error; err != nil {
		return nil, s.fail(op, err)
	}
	return &owner, nil
}

// UpdateOwner overwrites the profile of Owner id and changes its login and hash only where supplied
func (s *Store) UpdateOwner(ctx context.Context, id uint64, upd OwnerUpdate) error {
	const op = "owners.update"

	if err := s.validate.Struct(upd.Profile); err != nil {
		return s.fail(op, invalid(op, err))
	}
	if username, ok := upd.Username.Get(); ok && (username == "" || len(username) > 255) {
		return s.fail(op, types.NewDataError(op, types.ErrValidation, "Missing or invalid field: username", nil))
	}
	if hash, ok := upd.PasswordHash.Get(); ok && hash == "" {
		return s.fail(op, types.NewDataError(op, types.ErrValidation, "Missing or invalid field: password", nil))
	}

	err := s.withTx(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&models.Owner{}).Where("id = ?", id).Updates(upd.Profile.columns())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return types.NewDataError(op, types.ErrNotFound, "", nil)
		}

		cred := tx.Model(&models.Credential{}).Where("business_id = ?", id)
		username, hasUsername := upd.Username.Get()
		hash, hasHash := upd.PasswordHash.Get()

		switch {
		case hasUsername && hasHash:
			return cred.Updates(map[string]interface{}{
				"username":      username,
				"password_hash": hash,
			}).Error
		case hasUsername:
			return cred.Update("username", username).Error
		case hasHash:
			return cred.Update("password_hash", hash).Error
		}
		return nil
	})
	if err != nil {
		return s.fail(op, err)
	}

	return nil
}

// DeleteOwner removes Owner id and everything that references it, children first.
// An unknown id is a successful no-op.
func (s *Store) DeleteOwner(ctx context.Context, id uint64) error {
	const op = "owners.delete"

	err := s.withTx(ctx, func(tx *gorm.DB) error {
		var owner models.Owner
		err := tx.Select("id", "unique_id").Where("id = ?", id).Take(&owner).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Where("unique_id = ?", owner.UniqueID).Delete(&models.DailyAnalytics{}).Error; err != nil {
			return err
		}
		if err := tx.Where("unique_id = ?", owner.UniqueID).Delete(&models.Feedback{}).Error; err != nil {
			return err
		}
		if err := tx.Where("business_id = ?", owner.ID).Delete(&models.Credential{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Owner{}, owner.ID).Error
	})
	if err != nil {
		return s.fail(op, err)
	}

	return nil
}
