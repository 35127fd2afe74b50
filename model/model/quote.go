package model

import (
	"fmt"
	"time"
)

const (
	QuoteStatusPending  = "pending"
	QuoteStatusApproved = "approved"
	QuoteStatusRejected = "rejected"
	QuoteStatusClosed   = "closed"
)

// Customer portal actions on a pending quote.
const (
	QuoteActionApprove = "approve"
	QuoteActionReject  = "reject"
)

const QuoteShareTokenLength = 32

// Quote is the one-to-one pricing artifact derived from an assessment. The
// breakdown is computed once at generation time and never recomputed; later
// edits to the assessment do not touch an existing quote.
type Quote struct {
	ID uint64 `gorm:"primary_key:true" json:"id"`

	AssessmentID   uint64 `gorm:"not null;unique_index" json:"assessment_id"`
	OrganizationID uint64 `gorm:"not null;index" json:"organization_id"`
	UserID         string `gorm:"type:varchar(255);not null;index" json:"user_id"`

	Status string `gorm:"type:varchar(50);default:'pending'" json:"status"`

	// Hour estimates per phase.
	SurveyHours        float64 `json:"survey_hours"`
	InstallationHours  float64 `json:"installation_hours"`
	ConfigurationHours float64 `json:"configuration_hours"`
	RemovalHours       float64 `json:"removal_hours"`
	LaborHoldHours     float64 `json:"labor_hold_hours"`

	HourlyRate    float64 `json:"hourly_rate"`
	LaborCost     float64 `json:"labor_cost"`
	HardwareCost  float64 `json:"hardware_cost"`
	LaborHoldCost float64 `json:"labor_hold_cost"`
	TotalCost     float64 `json:"total_cost"`

	// ShareToken authenticates the customer portal view; it is the only
	// credential the end customer ever receives.
	ShareToken string `gorm:"type:varchar(100);unique_index" json:"-"`

	PdfPath       string `gorm:"type:varchar(500)" json:"pdf_path"`
	HubspotDealID string `gorm:"type:varchar(100)" json:"hubspot_deal_id"`

	RespondedAt *time.Time `json:"responded_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// QuoteNumber is the human-facing reference printed on PDFs and emails.
func (q *Quote) QuoteNumber() string {
	return fmt.Sprintf("NXT-%06d", q.ID)
}

func IsValidQuoteStatus(status string) bool {
	return status == QuoteStatusPending || status == QuoteStatusApproved ||
		status == QuoteStatusRejected || status == QuoteStatusClosed
}

func IsValidQuoteAction(action string) bool {
	return action == QuoteActionApprove || action == QuoteActionReject
}

// StatusForAction maps a portal action to the resulting quote status.
func StatusForAction(action string) string {
	if action == QuoteActionApprove {
		return QuoteStatusApproved
	}
	return QuoteStatusRejected
}
