package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPartnerInvitationLifecycle(t *testing.T) {
	now := time.Now().UTC()

	invitation := &PartnerInvitation{
		Email:     "partner@example.com",
		Token:     "token",
		ExpiresAt: now.Add(time.Duration(InvitationValidityDays) * 24 * time.Hour),
	}

	assert.True(t, invitation.IsPending(now))
	assert.False(t, invitation.IsExpired(now))
	assert.False(t, invitation.IsAccepted())

	// The boundary instant itself is still valid.
	assert.False(t, invitation.IsExpired(invitation.ExpiresAt))
	assert.True(t, invitation.IsExpired(invitation.ExpiresAt.Add(time.Second)))

	acceptedAt := now.Add(time.Hour)
	userID := "user-1"
	invitation.AcceptedAt = &acceptedAt
	invitation.AcceptedBy = &userID
	assert.True(t, invitation.IsAccepted())
	assert.False(t, invitation.IsPending(now))
}

func TestQuoteStatusForAction(t *testing.T) {
	assert.True(t, IsValidQuoteAction(QuoteActionApprove))
	assert.True(t, IsValidQuoteAction(QuoteActionReject))
	assert.False(t, IsValidQuoteAction("close"))

	assert.Equal(t, QuoteStatusApproved, StatusForAction(QuoteActionApprove))
	assert.Equal(t, QuoteStatusRejected, StatusForAction(QuoteActionReject))
}
