// feedback.go
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
	"time"

	"github.com/localnerve/smart-reviewer/internal/models"
	"gorm.io/hints"
)

// Rating bounds accepted for a review
const (
	MinRating = 1
	MaxRating = 5
)

// FeedbackInput is one customer review, addressed by the owner's opaque id
type FeedbackInput struct {
	UniqueID     string `json:"uniqueId" validate:"required,max=36"`
	CustomerName string `json:"customerName" validate:"max=255"`
	Rating       int    `json:"rating" validate:"min=1,max=5"`
	Feedback     string `json:"feedback"`
}

// Review is a Feedback row joined with the property it was left for
type Review struct {
	ID           uint64    `json:"id"`
	UniqueID     string    `json:"uniqueId"`
	PropertyName string    `json:"propertyName"`
	CustomerName string    `json:"customerName"`
	Rating       int       `json:"rating"`
	Feedback     string    `json:"feedback"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateFeedback stores one review. An opaque id with no Owner is a ConstraintError.
func (s *Store) CreateFeedback(ctx context.Context, in FeedbackInput) (*models.Feedback, error) {
	const op = "feedback.create"

	if err := s.validate.Struct(in); err != nil {
		return nil, s.fail(op, invalid(op, err))
	}

	fb := &models.Feedback{
		UniqueID:     in.UniqueID,
		CustomerName: in.CustomerName,
		Rating:       in.Rating,
		FeedbackText: in.Feedback,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(fb).Error; err != nil {
		return nil, s.fail(op, err)
	}

	return fb, nil
}

// ListOwnerReviews returns the reviews of Owner ownerID, newest first
func (s *Store) ListOwnerReviews(ctx context.Context, ownerID uint64) ([]models.Feedback, error) {
	const op = "feedback.list_owner"

	reviews := make([]models.Feedback, 0)
	err := s.db.WithContext(ctx).
		Clauses(hints.Comment("select", op)).
		Joins("JOIN users ON users.unique_id = feedback.unique_id").
		Where("users.id = ?", ownerID).
		Order("feedback.created_at DESC, feedback.id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, s.fail(op, err)
	}

	return reviews, nil
}

// ListAllReviews returns every review with its property name, newest first
func (s *Store) ListAllReviews(ctx context.Context) ([]Review, error) {
	const op = "feedback.list_all"

	reviews := make([]Review, 0)
	err := s.db.WithContext(ctx).
		Clauses(hints.Comment("select", op)).
		Table("feedback").
		Select(`feedback.id, feedback.unique_id, users.property_name, feedback.customer_name,
			feedback.rating, feedback.feedback_text AS feedback, feedback.created_at`).
		Joins("JOIN users ON users.unique_id = feedback.unique_id").
		Order("feedback.created_at DESC, feedback.id DESC").
		Scan(&reviews).Error
	if err != nil {
		return nil, s.fail(op, err)
	}

	return reviews, nil
}
