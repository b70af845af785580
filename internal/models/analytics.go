package models

import "time"

// DailyAnalytics holds one Owner's event counters for one calendar day.
// AnalyticsDate is a YYYY-MM-DD day in the display offset, so it sorts and compares as text.
type DailyAnalytics struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	UniqueID        string    `gorm:"type:char(36);not null;uniqueIndex:idx_daily_analytics_owner_day" json:"uniqueId"`
	AnalyticsDate   string    `gorm:"size:10;not null;uniqueIndex:idx_daily_analytics_owner_day" json:"analyticsDate"`
	QRScans         int64     `gorm:"column:qr_scans;not null;default:0" json:"qrScans"`
	GoogleRedirects int64     `gorm:"column:google_redirects;not null;default:0" json:"googleRedirects"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TableName overrides the table name for DailyAnalytics
func (DailyAnalytics) TableName() string {
	return "daily_analytics"
}

// All lists every model in dependency order, for AutoMigrate and tooling
func All() []interface{} {
	return []interface{}{
		&Owner{},
		&Credential{},
		&Feedback{},
		&DailyAnalytics{},
	}
}
