package models

import "time"

// Owner is a registered business property, the unit of tenant isolation.
// UniqueID is the opaque identifier embedded in rating links and QR codes.
type Owner struct {
	ID                    uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UniqueID              string    `gorm:"type:char(36);uniqueIndex;not null" json:"uniqueId"`
	OwnerName             string    `gorm:"size:255" json:"ownerName"`
	PropertyName          string    `gorm:"size:255" json:"propertyName"`
	PropertyAddress       string    `gorm:"type:text" json:"propertyAddress"`
	GoogleMapLink         string    `gorm:"type:text" json:"googleMapLink"`
	ContactNumber         string    `gorm:"size:20" json:"contactNumber"`
	CustomFeedbackMessage string    `gorm:"type:text" json:"customFeedbackMessage"`
	CreatedAt             time.Time `json:"createdAt"`

	// The foreign keys live on feedback and daily_analytics, referencing users.unique_id
	Feedback  []Feedback       `gorm:"foreignKey:UniqueID;references:UniqueID" json:"-"`
	Analytics []DailyAnalytics `gorm:"foreignKey:UniqueID;references:UniqueID" json:"-"`
}

// Credential is the dashboard login paired one-to-one with an Owner
type Credential struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	BusinessID   uint64    `gorm:"not null;uniqueIndex" json:"businessId"`
	Owner        *Owner    `gorm:"foreignKey:BusinessID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Username     string    `gorm:"size:255;not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	FirstLogin   bool      `gorm:"not null;default:true" json:"firstLogin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TableName overrides the table name for Owner
func (Owner) TableName() string {
	return "users"
}

// TableName overrides the table name for Credential
func (Credential) TableName() string {
	return "business_auth"
}
