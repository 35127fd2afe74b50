package handler

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"
	"time"

	C "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/integration/hubspot"
	mid "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/middleware"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/model"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/store"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/pdf"
	U "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/util"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// GenerateQuoteHandler prices a completed assessment and creates its
// quote. Generation is idempotent: a repeat call answers with the
// existing quote. PDF render, CRM sync, customer email and analytics all
// detach as best-effort goroutines.
func GenerateQuoteHandler(c *gin.Context) {
	userID := U.GetScopeByKeyAsString(c, mid.SCOPE_LOGGEDIN_USER_ID)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Generate quote failed. Invalid user."})
		return
	}
	logCtx := log.WithField("user_id", userID)

	assessmentID, err := strconv.ParseUint(c.Params.ByName("assessment_id"), 10, 64)
	if err != nil || assessmentID == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid assessment id."})
		return
	}
	logCtx = logCtx.WithField("assessment_id", assessmentID)

	assessment, errCode := store.GetStore().GetAssessment(assessmentID, userID)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Generate quote failed."})
		return
	}

	organization, errCode := store.GetStore().GetOrganizationByID(assessment.OrganizationID)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Generate quote failed."})
		return
	}
	if organization.PartnerStatus != model.PartnerStatusApproved {
		c.AbortWithStatusJSON(http.StatusForbidden,
			gin.H{"error": "Organization is not approved for quoting yet."})
		return
	}

	breakdown := model.ComputeQuoteBreakdown(assessment)
	quote, errCode := store.GetStore().CreateQuote(&model.Quote{
		AssessmentID:       assessmentID,
		OrganizationID:     organization.ID,
		UserID:             userID,
		SurveyHours:        breakdown.SurveyHours,
		InstallationHours:  breakdown.InstallationHours,
		ConfigurationHours: breakdown.ConfigurationHours,
		RemovalHours:       breakdown.RemovalHours,
		LaborHoldHours:     breakdown.LaborHoldHours,
		HourlyRate:         breakdown.HourlyRate,
		LaborCost:          breakdown.LaborCost,
		HardwareCost:       breakdown.HardwareCost,
		LaborHoldCost:      breakdown.LaborHoldCost,
		TotalCost:          breakdown.TotalCost,
	})
	if errCode == http.StatusConflict {
		existing, errCode := store.GetStore().GetQuoteByAssessmentID(assessmentID)
		if errCode != http.StatusFound {
			c.AbortWithStatusJSON(errCode, gin.H{"error": "Generate quote failed."})
			return
		}
		c.JSON(http.StatusOK, quoteResponse(existing))
		return
	}
	if errCode != http.StatusCreated {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Generate quote failed."})
		return
	}

	ts := time.Now().UTC()
	if errCode := store.GetStore().MarkAssessmentCompleted(assessmentID, ts); errCode != http.StatusAccepted {
		logCtx.WithField("err_code", errCode).Error("Failed to mark assessment completed.")
	}

	go renderAndStoreQuotePdf(quote, assessment, organization)
	go syncQuoteToHubspot(quote, assessment)
	go sendQuoteReadyEmail(quote, assessment)
	go store.GetStore().TrackSignupEvent(&model.SignupAnalytics{
		EventType:      model.EventQuoteGenerated,
		Email:          assessment.CustomerEmail,
		UserID:         userID,
		OrganizationID: &organization.ID,
	})

	c.JSON(http.StatusCreated, quoteResponse(quote))
}

// quoteResponse adds the customer portal link, which the partner forwards
// when the automated email cannot reach the customer.
func quoteResponse(quote *model.Quote) gin.H {
	return gin.H{
		"quote":      quote,
		"portal_url": portalQuoteURL(quote.ShareToken),
	}
}

func portalQuoteURL(shareToken string) string {
	return fmt.Sprintf("%s%s/portal/quotes/%s", C.GetProtocol(), C.GetAPPDomain(), shareToken)
}

func renderAndStoreQuotePdf(quote *model.Quote, assessment *model.Assessment, organization *model.Organization) {
	logCtx := log.WithField("quote_id", quote.ID)

	data, err := pdf.RenderQuote(quote, assessment, organization)
	if err != nil {
		logCtx.WithError(err).Error("Failed to render quote pdf.")
		return
	}

	fm := C.GetServices().FileManager
	dir, name := fm.GetQuotePdfPathAndName(quote.OrganizationID, quote.ID)
	if err := fm.Create(dir, name, bytes.NewReader(data)); err != nil {
		logCtx.WithError(err).Error("Failed to store quote pdf.")
		return
	}

	if errCode := store.GetStore().UpdateQuotePdfPath(quote.ID, dir+name); errCode != http.StatusAccepted {
		logCtx.WithField("err_code", errCode).Error("Failed to record quote pdf path.")
	}
}

func syncQuoteToHubspot(quote *model.Quote, assessment *model.Assessment) {
	if !C.IsHubspotEnabled() {
		return
	}
	logCtx := log.WithField("quote_id", quote.ID)

	client := hubspot.NewClient(C.GetHubspotAPIToken(), C.GetHubspotAPIBaseURL())
	contactID, err := client.UpsertContact(assessment.CustomerEmail,
		assessment.CustomerFirstName, assessment.CustomerLastName,
		assessment.CustomerPhone, assessment.CustomerCompanyName)
	if err != nil {
		logCtx.WithError(err).Error("Failed to upsert hubspot contact.")
		return
	}

	dealID, err := client.CreateDeal(hubspotDealName(quote, assessment), quote.TotalCost, contactID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to create hubspot deal.")
		return
	}

	if errCode := store.GetStore().UpdateQuoteHubspotDealID(quote.ID, dealID); errCode != http.StatusAccepted {
		logCtx.WithField("err_code", errCode).Error("Failed to record hubspot deal id.")
	}
}

func hubspotDealName(quote *model.Quote, assessment *model.Assessment) string {
	company := strings.TrimSpace(assessment.CustomerCompanyName)
	if company == "" {
		company = strings.TrimSpace(assessment.CustomerFirstName + " " + assessment.CustomerLastName)
	}
	return strings.TrimSpace(quote.QuoteNumber() + " " + company)
}

func sendQuoteReadyEmail(quote *model.Quote, assessment *model.Assessment) {
	if !U.IsEmail(assessment.CustomerEmail) {
		return
	}

	sub, text, html := U.CreateQuoteReadyTemplate(portalQuoteURL(quote.ShareToken))
	err := C.GetServices().Mailer.SendMail(assessment.CustomerEmail, C.GetSenderEmail(), sub, html, text)
	if err != nil {
		log.WithError(err).WithField("quote_id", quote.ID).Error("Failed to send quote ready email.")
	}
}

func GetQuotesHandler(c *gin.Context) {
	userID := U.GetScopeByKeyAsString(c, mid.SCOPE_LOGGEDIN_USER_ID)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Get quotes failed. Invalid user."})
		return
	}

	quotes, errCode := store.GetStore().GetQuotesByUser(userID)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Get quotes failed."})
		return
	}

	c.JSON(http.StatusOK, quotes)
}

func GetQuoteHandler(c *gin.Context) {
	userID := U.GetScopeByKeyAsString(c, mid.SCOPE_LOGGEDIN_USER_ID)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Get quote failed. Invalid user."})
		return
	}

	quoteID, err := strconv.ParseUint(c.Params.ByName("quote_id"), 10, 64)
	if err != nil || quoteID == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid quote id."})
		return
	}

	quote, errCode := store.GetStore().GetQuote(quoteID, userID)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Get quote failed."})
		return
	}

	c.JSON(http.StatusOK, quoteResponse(quote))
}

// DownloadQuotePdfHandler streams the stored quote PDF, rendering and
// persisting it first when the detached render has not landed yet.
func DownloadQuotePdfHandler(c *gin.Context) {
	userID := U.GetScopeByKeyAsString(c, mid.SCOPE_LOGGEDIN_USER_ID)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Quote pdf failed. Invalid user."})
		return
	}
	logCtx := log.WithField("user_id", userID)

	quoteID, err := strconv.ParseUint(c.Params.ByName("quote_id"), 10, 64)
	if err != nil || quoteID == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid quote id."})
		return
	}

	quote, errCode := store.GetStore().GetQuote(quoteID, userID)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Quote pdf failed."})
		return
	}

	data, err := loadOrRenderQuotePdf(quote)
	if err != nil {
		logCtx.WithError(err).WithField("quote_id", quoteID).Error("Quote pdf failed.")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Quote pdf failed."})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", quote.QuoteNumber()+".pdf"))
	c.Data(http.StatusOK, "application/pdf", data)
}

func loadOrRenderQuotePdf(quote *model.Quote) ([]byte, error) {
	fm := C.GetServices().FileManager
	dir, name := fm.GetQuotePdfPathAndName(quote.OrganizationID, quote.ID)

	if quote.PdfPath != "" {
		reader, err := fm.Get(dir, name)
		if err == nil {
			defer reader.Close()
			return ioutil.ReadAll(reader)
		}
		log.WithError(err).WithField("quote_id", quote.ID).Error("Stored quote pdf unreadable. Re-rendering.")
	}

	assessment, errCode := store.GetStore().GetAssessmentByID(quote.AssessmentID)
	if errCode != http.StatusFound {
		return nil, fmt.Errorf("assessment lookup failed with code %d", errCode)
	}
	organization, errCode := store.GetStore().GetOrganizationByID(quote.OrganizationID)
	if errCode != http.StatusFound {
		return nil, fmt.Errorf("organization lookup failed with code %d", errCode)
	}

	data, err := pdf.RenderQuote(quote, assessment, organization)
	if err != nil {
		return nil, err
	}

	if err := fm.Create(dir, name, bytes.NewReader(data)); err != nil {
		log.WithError(err).WithField("quote_id", quote.ID).Error("Failed to store re-rendered quote pdf.")
	} else if errCode := store.GetStore().UpdateQuotePdfPath(quote.ID, dir+name); errCode != http.StatusAccepted {
		log.WithField("quote_id", quote.ID).WithField("err_code", errCode).
			Error("Failed to record quote pdf path.")
	}
	return data, nil
}
