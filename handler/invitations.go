package handler

import (
	"net/http"
	"time"

	mid "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/middleware"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/model"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/store"
	U "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/util"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// GetInvitationHandler validates an invitation token for the public
// signup page. Expired and already-accepted invitations answer 410 so
// the page can show the right message.
func GetInvitationHandler(c *gin.Context) {
	token := c.Params.ByName("token")
	if token == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid invitation token."})
		return
	}

	invitation, errCode := store.GetStore().GetPartnerInvitationByToken(token)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Invitation not found."})
		return
	}

	if !invitation.IsPending(time.Now().UTC()) {
		c.AbortWithStatusJSON(http.StatusGone, gin.H{"error": "Invitation is no longer valid."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":             invitation.Email,
		"organization_name": invitation.OrganizationName,
		"expires_at":        invitation.ExpiresAt,
	})
}

// AcceptInvitationHandler records acceptance for an already logged in
// user, the path taken when the invitee had an account before the
// invitation arrived.
func AcceptInvitationHandler(c *gin.Context) {
	userID := U.GetScopeByKeyAsString(c, mid.SCOPE_LOGGEDIN_USER_ID)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Accept invitation failed. Invalid user."})
		return
	}
	logCtx := log.WithField("user_id", userID)

	token := c.Params.ByName("token")
	if token == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid invitation token."})
		return
	}

	invitation, errCode := store.GetStore().GetPartnerInvitationByToken(token)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Invitation not found."})
		return
	}

	errCode = store.GetStore().AcceptPartnerInvitation(token, userID, time.Now().UTC())
	switch errCode {
	case http.StatusAccepted:
	case http.StatusGone:
		c.AbortWithStatusJSON(http.StatusGone, gin.H{"error": "Invitation has expired."})
		return
	case http.StatusConflict:
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Invitation already accepted."})
		return
	default:
		logCtx.WithField("err_code", errCode).Error("Accept invitation failed.")
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Accept invitation failed."})
		return
	}

	email := ""
	if user, errCode := store.GetStore().GetUserByID(userID); errCode == http.StatusFound {
		email = user.Email
	}
	store.GetStore().TrackSignupEvent(&model.SignupAnalytics{
		EventType:    model.EventInvitationAccepted,
		Email:        email,
		InvitationID: &invitation.ID,
		UserID:       userID,
	})

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}
