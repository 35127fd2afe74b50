package handler

import (
	"encoding/json"
	"net/http"

	mid "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/middleware"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/model"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/store"
	U "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/util"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type OrganizationRequestPayload struct {
	CompanyName string `json:"company_name"`
	Website     string `json:"website"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	PartnerType string `json:"partner_type"`
}

// CreateOrganizationHandler registers the partner company for the logged
// in user. One organization per user; a second attempt answers 409.
func CreateOrganizationHandler(c *gin.Context) {
	userID := U.GetScopeByKeyAsString(c, mid.SCOPE_LOGGEDIN_USER_ID)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Create organization failed. Invalid user."})
		return
	}
	logCtx := log.WithField("user_id", userID)

	var requestPayload OrganizationRequestPayload
	decoder := json.NewDecoder(c.Request.Body)
	if err := decoder.Decode(&requestPayload); err != nil {
		errMsg := "Create organization failed. Json decode failed."
		logCtx.WithError(err).Error(errMsg)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}

	if requestPayload.CompanyName == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Company name is required."})
		return
	}

	organization, errCode := store.GetStore().CreateOrganization(&model.Organization{
		UserID:      userID,
		CompanyName: requestPayload.CompanyName,
		Website:     requestPayload.Website,
		Phone:       requestPayload.Phone,
		Address:     requestPayload.Address,
		City:        requestPayload.City,
		State:       requestPayload.State,
		Zip:         requestPayload.Zip,
		PartnerType: requestPayload.PartnerType,
	})
	if errCode == http.StatusConflict {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Organization already registered."})
		return
	}
	if errCode != http.StatusCreated {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Create organization failed."})
		return
	}

	user, userErrCode := store.GetStore().GetUserByID(userID)
	email := ""
	if userErrCode == http.StatusFound {
		email = user.Email
	}
	store.GetStore().TrackSignupEvent(&model.SignupAnalytics{
		EventType:      model.EventSignupCompleted,
		Email:          email,
		UserID:         userID,
		OrganizationID: &organization.ID,
	})

	c.JSON(http.StatusCreated, organization)
}

func GetOwnOrganizationHandler(c *gin.Context) {
	userID := U.GetScopeByKeyAsString(c, mid.SCOPE_LOGGEDIN_USER_ID)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Get organization failed. Invalid user."})
		return
	}

	organization, errCode := store.GetStore().GetOrganizationByUserID(userID)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Get organization failed."})
		return
	}

	c.JSON(http.StatusOK, organization)
}

// UpdateOwnOrganizationHandler applies a partial update to the caller's
// organization. Partner status is not updatable here; only admins touch
// it, through the partner management routes.
func UpdateOwnOrganizationHandler(c *gin.Context) {
	userID := U.GetScopeByKeyAsString(c, mid.SCOPE_LOGGEDIN_USER_ID)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Update organization failed. Invalid user."})
		return
	}
	logCtx := log.WithField("user_id", userID)

	organization, errCode := store.GetStore().GetOrganizationByUserID(userID)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Update organization failed."})
		return
	}

	var payload map[string]interface{}
	decoder := json.NewDecoder(c.Request.Body)
	if err := decoder.Decode(&payload); err != nil {
		errMsg := "Update organization failed. Json decode failed."
		logCtx.WithError(err).Error(errMsg)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}

	fields := model.BuildOrganizationUpdateFields(payload)
	if len(fields) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Nothing to update."})
		return
	}

	errCode = store.GetStore().UpdateOrganizationInfo(organization.ID, fields)
	if errCode != http.StatusAccepted {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Update organization failed."})
		return
	}

	updated, errCode := store.GetStore().GetOrganizationByID(organization.ID)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Update organization failed."})
		return
	}
	c.JSON(http.StatusAccepted, updated)
}
