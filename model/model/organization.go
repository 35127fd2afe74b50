package model

import (
	"time"
)

// Partner lifecycle. New organizations start pending and stay read-only
// until an admin approves them; suspended partners keep their data but
// cannot generate new quotes.
const (
	PartnerStatusPending   = "pending"
	PartnerStatusApproved  = "approved"
	PartnerStatusSuspended = "suspended"
)

// Organization is the partner company a user signs up under. One per
// partner user.
type Organization struct {
	ID uint64 `gorm:"primary_key:true" json:"id"`

	UserID string `gorm:"type:varchar(255);not null;unique_index" json:"user_id"`

	CompanyName string `gorm:"type:varchar(255);not null" json:"company_name"`
	Website     string `gorm:"type:varchar(255)" json:"website"`
	Phone       string `gorm:"type:varchar(50)" json:"phone"`

	Address string `gorm:"type:varchar(255)" json:"address"`
	City    string `gorm:"type:varchar(100)" json:"city"`
	State   string `gorm:"type:varchar(50)" json:"state"`
	Zip     string `gorm:"type:varchar(20)" json:"zip"`

	PartnerStatus string `gorm:"type:varchar(50);default:'pending'" json:"partner_status"`
	PartnerType   string `gorm:"type:varchar(100)" json:"partner_type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func IsValidPartnerStatus(status string) bool {
	return status == PartnerStatusPending || status == PartnerStatusApproved ||
		status == PartnerStatusSuspended
}

// PartnerOverview is the admin listing row: the organization together
// with its owning user's contact fields.
type PartnerOverview struct {
	Organization Organization `json:"organization"`
	Owner        *User        `json:"owner"`
}
