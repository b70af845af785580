package models

import "time"

// Feedback is one customer review, attached to its Owner by the opaque id
type Feedback struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UniqueID     string    `gorm:"type:char(36);not null;index" json:"uniqueId"`
	CustomerName string    `gorm:"size:255" json:"customerName"`
	Rating       int       `gorm:"not null" json:"rating"`
	FeedbackText string    `gorm:"type:text" json:"feedback"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
}

// TableName overrides the table name for Feedback
func (Feedback) TableName() string {
	return "feedback"
}
