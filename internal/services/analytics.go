// analytics.go
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

	"github.com/localnerve/smart-reviewer/internal/models"
	"github.com/localnerve/smart-reviewer/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventKind names a daily analytics counter
type EventKind string

// Analytics event kinds
const (
	EventScan     EventKind = "scan"
	EventRedirect EventKind = "redirect"
)

// Column is the daily_analytics counter column for the kind
func (k EventKind) Column() (string, error) {
	switch k {
	case EventScan:
		return "qr_scans", nil
	case EventRedirect:
		return "google_redirects", nil
	}
	return "", fmt.Errorf("unknown event kind %q", string(k))
}

// RecordAnalyticsEvent bumps today's counter for the owner with one insert-or-increment
// statement, so concurrent events for the same day neither duplicate the row nor lose a count.
func (s *Store) RecordAnalyticsEvent(ctx context.Context, uniqueID string, kind EventKind) error {
	const op = "analytics.record"

	column, err := kind.Column()
	if err != nil {
		return s.fail(op, types.NewDataError(op, types.ErrValidation, "Invalid event kind", err))
	}
	if uniqueID == "" || len(uniqueID) > 36 {
		return s.fail(op, types.NewDataError(op, types.ErrValidation, "Missing or invalid field: uniqueId", nil))
	}

	now := s.now().UTC()
	row := &models.DailyAnalytics{
		UniqueID:      uniqueID,
		AnalyticsDate: s.dayOf(now),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if kind == EventScan {
		row.QRScans = 1
	} else {
		row.GoogleRedirects = 1
	}

	err = s.withTx(ctx, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "unique_id"}, {Name: "analytics_date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				column:       gorm.Expr("daily_analytics."+column+" + ?", 1),
				"updated_at": now,
			}),
		}).Create(row).Error
	})
	if err != nil {
		return s.fail(op, err)
	}

	return nil
}
