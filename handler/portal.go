package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	C "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/integration/hubspot"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/model"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/store"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type PortalActionPayload struct {
	Action string `json:"action"`
}

// GetPortalQuoteHandler is the customer's view of a quote, reached with
// nothing but the share token. The payload is sanitized: no partner user
// ids, no internal foreign keys.
func GetPortalQuoteHandler(c *gin.Context) {
	quote, assessment, errCode := getPortalQuote(c)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Quote not found."})
		return
	}

	resp := gin.H{
		"quote_number":  quote.QuoteNumber(),
		"status":        quote.Status,
		"service_type":  assessment.ServiceType,
		"customer_name": strings.TrimSpace(assessment.CustomerFirstName + " " + assessment.CustomerLastName),
		"site_city":     assessment.SiteCity,
		"site_state":    assessment.SiteState,
		"breakdown": gin.H{
			"survey_hours":        quote.SurveyHours,
			"installation_hours":  quote.InstallationHours,
			"configuration_hours": quote.ConfigurationHours,
			"removal_hours":       quote.RemovalHours,
			"labor_hold_hours":    quote.LaborHoldHours,
			"hourly_rate":         quote.HourlyRate,
			"labor_cost":          quote.LaborCost,
			"hardware_cost":       quote.HardwareCost,
			"labor_hold_cost":     quote.LaborHoldCost,
			"total_cost":          quote.TotalCost,
		},
		"created_at":   quote.CreatedAt,
		"responded_at": quote.RespondedAt,
	}
	if organization, errCode := store.GetStore().GetOrganizationByID(quote.OrganizationID); errCode == http.StatusFound {
		resp["partner_name"] = organization.CompanyName
	}

	c.JSON(http.StatusOK, resp)
}

// PortalQuoteActionHandler lets the customer approve or reject a pending
// quote. Repeating the same action is idempotent; the opposite action on
// a decided quote answers 409.
func PortalQuoteActionHandler(c *gin.Context) {
	quote, assessment, errCode := getPortalQuote(c)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Quote not found."})
		return
	}
	logCtx := log.WithField("quote_id", quote.ID)

	var requestPayload PortalActionPayload
	decoder := json.NewDecoder(c.Request.Body)
	if err := decoder.Decode(&requestPayload); err != nil {
		errMsg := "Quote action failed. Json decode failed."
		logCtx.WithError(err).Error(errMsg)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}
	if !model.IsValidQuoteAction(requestPayload.Action) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid action."})
		return
	}

	targetStatus := model.StatusForAction(requestPayload.Action)
	if quote.Status == targetStatus {
		c.JSON(http.StatusOK, gin.H{"status": quote.Status})
		return
	}
	if quote.Status != model.QuoteStatusPending {
		c.AbortWithStatusJSON(http.StatusConflict,
			gin.H{"error": fmt.Sprintf("Quote already %s.", quote.Status)})
		return
	}

	ts := time.Now().UTC()
	errCode = store.GetStore().UpdateQuoteStatus(quote.ID, targetStatus, &ts)
	if errCode != http.StatusAccepted {
		logCtx.WithField("err_code", errCode).Error("Quote action failed.")
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Quote action failed."})
		return
	}

	go syncQuoteDecisionToHubspot(quote, assessment, requestPayload.Action)
	go trackQuoteDecision(quote, assessment, requestPayload.Action)

	c.JSON(http.StatusOK, gin.H{"status": targetStatus})
}

func getPortalQuote(c *gin.Context) (*model.Quote, *model.Assessment, int) {
	shareToken := c.Params.ByName("share_token")
	if shareToken == "" {
		return nil, nil, http.StatusBadRequest
	}

	quote, errCode := store.GetStore().GetQuoteByShareToken(shareToken)
	if errCode != http.StatusFound {
		return nil, nil, errCode
	}

	assessment, errCode := store.GetStore().GetAssessmentByID(quote.AssessmentID)
	if errCode != http.StatusFound {
		return nil, nil, errCode
	}
	return quote, assessment, http.StatusFound
}

// syncQuoteDecisionToHubspot moves the deal to closed won or lost; a
// rejection also opens a support ticket so sales can follow up.
func syncQuoteDecisionToHubspot(quote *model.Quote, assessment *model.Assessment, action string) {
	if !C.IsHubspotEnabled() {
		return
	}
	logCtx := log.WithField("quote_id", quote.ID)

	client := hubspot.NewClient(C.GetHubspotAPIToken(), C.GetHubspotAPIBaseURL())

	if quote.HubspotDealID != "" {
		stage := hubspot.DealStageClosedWon
		if action == model.QuoteActionReject {
			stage = hubspot.DealStageClosedLost
		}
		if err := client.UpdateDealStage(quote.HubspotDealID, stage); err != nil {
			logCtx.WithError(err).Error("Failed to update hubspot deal stage.")
		}
	}

	if action != model.QuoteActionReject {
		return
	}

	contactID, err := client.UpsertContact(assessment.CustomerEmail,
		assessment.CustomerFirstName, assessment.CustomerLastName,
		assessment.CustomerPhone, assessment.CustomerCompanyName)
	if err != nil {
		logCtx.WithError(err).Error("Failed to resolve hubspot contact for rejection ticket.")
		return
	}

	subject := fmt.Sprintf("Quote %s rejected", quote.QuoteNumber())
	content := fmt.Sprintf("Customer %s rejected quote %s (total $%.2f). Follow up for revised scope.",
		strings.TrimSpace(assessment.CustomerFirstName+" "+assessment.CustomerLastName),
		quote.QuoteNumber(), quote.TotalCost)
	if _, err := client.CreateTicket(subject, content, contactID); err != nil {
		logCtx.WithError(err).Error("Failed to create hubspot rejection ticket.")
	}
}

func trackQuoteDecision(quote *model.Quote, assessment *model.Assessment, action string) {
	eventType := model.EventQuoteApproved
	if action == model.QuoteActionReject {
		eventType = model.EventQuoteRejected
	}
	store.GetStore().TrackSignupEvent(&model.SignupAnalytics{
		EventType:      eventType,
		Email:          assessment.CustomerEmail,
		UserID:         quote.UserID,
		OrganizationID: &quote.OrganizationID,
	})
}
