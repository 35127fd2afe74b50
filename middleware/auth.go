package middleware

import (
	"net/http"

	C "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/handler/helpers"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/store"
	U "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/util"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// SetLoggedInUser - Validates the auth cookie and sets the logged in user
// on the request scope. Aborts with 401 on a missing, tampered or expired
// cookie.
func SetLoggedInUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		logCtx := log.WithFields(log.Fields{
			"reqId": U.GetScopeByKeyAsString(c, SCOPE_REQ_ID),
		})

		cookieData, err := c.Cookie(C.GetQuotingCookieName())
		if err != nil || cookieData == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized."})
			return
		}

		authData, err := helpers.ParseAuthData(cookieData)
		if err != nil {
			logCtx.WithError(err).Error("Request failed. Failed to parse auth data.")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized."})
			return
		}

		email, errType, err := helpers.ParseAndDecryptProtectedFields(
			C.GetAuthCookieSecret(), authData.ProtectedFields)
		if err != nil {
			if errType != "ExpiredKey" {
				logCtx.WithError(err).WithField("error_type", errType).
					Error("Request failed. Invalid auth cookie.")
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized."})
			return
		}

		user, errCode := store.GetStore().GetUserByID(authData.UserID)
		if errCode != http.StatusFound || user.Email != email {
			logCtx.WithField("user_id", authData.UserID).
				Error("Request failed. Auth cookie for unknown user.")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized."})
			return
		}

		U.SetScope(c, SCOPE_LOGGEDIN_USER_ID, user.ID)
		U.SetScope(c, SCOPE_LOGGEDIN_IS_ADMIN, user.CanManagePartners())
		U.SetScope(c, SCOPE_LOGGEDIN_CAN_VIEW_RECORDS, user.CanViewAllRecords())

		c.Next()
	}
}

// RequireAdmin - Gates the mutating admin routes. Answers 404 so the
// routes stay invisible to non-admins.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !U.GetScopeByKeyAsBool(c, SCOPE_LOGGEDIN_IS_ADMIN) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not found."})
			return
		}
		c.Next()
	}
}

// RequireRecordsViewer - Gates the read-only admin listings, which sales
// executives may also see.
func RequireRecordsViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !U.GetScopeByKeyAsBool(c, SCOPE_LOGGEDIN_CAN_VIEW_RECORDS) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not found."})
			return
		}
		c.Next()
	}
}
