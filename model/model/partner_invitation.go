package model

import (
	"time"
)

const (
	InvitationValidityDays = 7
	InvitationTokenLength  = 48
)

// PartnerInvitation is an email invitation into the partner program. The
// token travels in the signup link; acceptance is recorded once the
// invitee completes signup.
type PartnerInvitation struct {
	ID uint64 `gorm:"primary_key:true" json:"id"`

	Email            string `gorm:"type:varchar(100);not null" json:"email"`
	OrganizationName string `gorm:"type:varchar(255)" json:"organization_name"`
	Token            string `gorm:"type:varchar(100);not null;unique_index" json:"-"`

	InvitedBy string `gorm:"type:varchar(255)" json:"invited_by"`

	ExpiresAt  time.Time  `json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at"`
	AcceptedBy *string    `gorm:"type:varchar(255)" json:"accepted_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *PartnerInvitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

func (i *PartnerInvitation) IsAccepted() bool {
	return i.AcceptedAt != nil
}

// IsPending reports whether the invitation can still be accepted.
func (i *PartnerInvitation) IsPending(now time.Time) bool {
	return !i.IsAccepted() && !i.IsExpired(now)
}
