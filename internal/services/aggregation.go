// aggregation.go
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
	"github.com/localnerve/smart-reviewer/internal/types"
	"gorm.io/hints"
)

// DailyCount is one point of a sparse daily series. Date is YYYY-MM-DD in the display offset.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// Dashboard is everything the business dashboard shows for one Owner
type Dashboard struct {
	BusinessName         string            `json:"businessName"`
	Reviews              []models.Feedback `json:"reviews"`
	DailyReviews         []DailyCount      `json:"dailyReviews"`
	DailyQRScans         []DailyCount      `json:"dailyQRScans"`
	DailyGoogleRedirects []DailyCount      `json:"dailyGoogleRedirects"`
}

func (s *Store) window(days int) int {
	if days <= 0 {
		return s.windowDays
	}
	return days
}

// DailyReviewCounts counts Owner ownerID's reviews per display day over the trailing window.
// Days without reviews are absent.
func (s *Store) DailyReviewCounts(ctx context.Context, ownerID uint64, windowDays int) ([]DailyCount, error) {
	const op = "aggregation.daily_reviews"

	since := s.now().UTC().Add(-time.Duration(s.window(windowDays)) * 24 * time.Hour)

	var stamps []time.Time
	err := s.db.WithContext(ctx).
		Clauses(hints.Comment("select", op)).
		Model(&models.Feedback{}).
		Joins("JOIN users ON users.unique_id = feedback.unique_id").
		Where("users.id = ? AND feedback.created_at >= ?", ownerID, since).
		Order("feedback.created_at ASC").
		Pluck("feedback.created_at", &stamps).Error
	if err != nil {
		return nil, s.fail(op, err)
	}

	return s.bucketByDay(stamps), nil
}

// bucketByDay shifts each instant into the display offset before truncating it to a day,
// so an event just after local midnight is not counted on the previous UTC day.
// stamps must be ascending.
func (s *Store) bucketByDay(stamps []time.Time) []DailyCount {
	series := make([]DailyCount, 0)
	for _, ts := range stamps {
		day := s.dayOf(ts)
		if n := len(series); n > 0 && series[n-1].Date == day {
			series[n-1].Count++
			continue
		}
		series = append(series, DailyCount{Date: day, Count: 1})
	}
	return series
}

// DailyAnalyticsCounts sums one counter of Owner ownerID per day over the trailing window.
// Days without a row are absent.
func (s *Store) DailyAnalyticsCounts(ctx context.Context, ownerID uint64, kind EventKind, windowDays int) ([]DailyCount, error) {
	const op = "aggregation.daily_analytics"

	column, err := kind.Column()
	if err != nil {
		return nil, s.fail(op, types.NewDataError(op, types.ErrValidation, "Invalid event kind", err))
	}

	since := s.now().In(s.loc).AddDate(0, 0, -s.window(windowDays)).Format(time.DateOnly)

	series := make([]DailyCount, 0)
	err = s.db.WithContext(ctx).
		Clauses(hints.Comment("select", op+"."+column)).
		Table("daily_analytics").
		Select("daily_analytics.analytics_date AS date, COALESCE(SUM(daily_analytics."+column+"), 0) AS count").
		Joins("JOIN users ON users.unique_id = daily_analytics.unique_id").
		Where("users.id = ? AND daily_analytics.analytics_date >= ?", ownerID, since).
		Group("daily_analytics.analytics_date").
		Order("daily_analytics.analytics_date ASC").
		Scan(&series).Error
	if err != nil {
		return nil, s.fail(op, err)
	}

	return series, nil
}

// Dashboard loads the business name, reviews and the three daily series for Owner ownerID
func (s *Store) Dashboard(ctx context.Context, ownerID uint64) (*Dashboard, error) {
	const op = "aggregation.dashboard"

	var owner models.Owner
	err := s.db.WithContext(ctx).
		Clauses(hints.Comment("select", op)).
		Select("users.id", "users.property_name").
		Joins("JOIN business_auth ON business_auth.business_id = users.id").
		Where("users.id = ?", ownerID).
		Take(&owner).Error
	if err != nil {
		return nil, s.fail(op, err)
	}

	dash := &Dashboard{BusinessName: owner.PropertyName}

	if dash.Reviews, err = s.ListOwnerReviews(ctx, ownerID); err != nil {
		return nil, err
	}
	if dash.DailyReviews, err = s.DailyReviewCounts(ctx, ownerID, 0); err != nil {
		return nil, err
	}
	if dash.DailyQRScans, err = s.DailyAnalyticsCounts(ctx, ownerID, EventScan, 0); err != nil {
		return nil, err
	}
	if dash.DailyGoogleRedirects, err = s.DailyAnalyticsCounts(ctx, ownerID, EventRedirect, 0); err != nil {
		return nil, err
	}

	return dash, nil
}
