package model

import (
	"time"

	"github.com/jinzhu/gorm/dialects/postgres"
)

// Signup funnel and quote lifecycle events. The table is append-only;
// rows are written fire-and-forget and never updated.
const (
	EventInvitationSent     = "invitation_sent"
	EventInvitationAccepted = "invitation_accepted"
	EventSignupCompleted    = "signup_completed"
	EventAssessmentCreated  = "assessment_created"
	EventQuoteGenerated     = "quote_generated"
	EventQuoteApproved      = "quote_approved"
	EventQuoteRejected      = "quote_rejected"
)

type SignupAnalytics struct {
	ID uint64 `gorm:"primary_key:true" json:"id"`

	EventType string `gorm:"type:varchar(100);not null;index" json:"event_type"`

	Email          string          `gorm:"type:varchar(100)" json:"email"`
	InvitationID   *uint64         `json:"invitation_id"`
	UserID         string          `gorm:"type:varchar(255)" json:"user_id"`
	OrganizationID *uint64         `json:"organization_id"`
	Metadata       *postgres.Jsonb `json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}

// AnalyticsSummary is the admin dashboard payload: recent events plus
// counts per event type.
type AnalyticsSummary struct {
	Events []SignupAnalytics `json:"events"`
	Counts map[string]int64  `json:"counts"`
}
