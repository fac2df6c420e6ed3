package models

import "time"

// Client is a billable customer. Email is stored lower-cased and carries a
// unique index; handlers additionally pre-check duplicates so the API can
// return a clean validation error instead of a driver error.
type Client struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:255;not null;index" json:"name"`
	Email          string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone          string    `gorm:"size:50" json:"phone"`
	Company        string    `gorm:"size:255" json:"company"`
	BillingAddress string    `gorm:"type:text" json:"billing_address"`
	ActualAddress  string    `gorm:"type:text" json:"actual_address"`
	Notes          string    `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
