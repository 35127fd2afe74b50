package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	C "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"
	mid "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/middleware"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/model"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/store"
	U "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/util"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type PartnerStatusPayload struct {
	Status string `json:"status"`
}

type QuoteStatusPayload struct {
	Status string `json:"status"`
}

type InvitationRequestPayload struct {
	Email            string `json:"email"`
	OrganizationName string `json:"organization_name"`
}

func GetPartnersHandler(c *gin.Context) {
	overviews, errCode := store.GetStore().GetPartnerOverviews()
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Get partners failed."})
		return
	}

	c.JSON(http.StatusOK, overviews)
}

// UpdatePartnerStatusHandler approves or suspends a partner. Approval
// unlocks quote generation and notifies the partner by email.
func UpdatePartnerStatusHandler(c *gin.Context) {
	organizationID, err := strconv.ParseUint(c.Params.ByName("org_id"), 10, 64)
	if err != nil || organizationID == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid organization id."})
		return
	}
	logCtx := log.WithField("organization_id", organizationID)

	var requestPayload PartnerStatusPayload
	decoder := json.NewDecoder(c.Request.Body)
	if err := decoder.Decode(&requestPayload); err != nil {
		errMsg := "Update partner status failed. Json decode failed."
		logCtx.WithError(err).Error(errMsg)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}

	if !model.IsValidPartnerStatus(requestPayload.Status) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid partner status."})
		return
	}

	errCode := store.GetStore().UpdateOrganizationPartnerStatus(organizationID, requestPayload.Status)
	if errCode != http.StatusAccepted {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Update partner status failed."})
		return
	}

	if requestPayload.Status == model.PartnerStatusApproved {
		go sendPartnerApprovedEmail(organizationID)
	}

	c.JSON(http.StatusAccepted, gin.H{"status": requestPayload.Status})
}

func sendPartnerApprovedEmail(organizationID uint64) {
	logCtx := log.WithField("organization_id", organizationID)

	organization, errCode := store.GetStore().GetOrganizationByID(organizationID)
	if errCode != http.StatusFound {
		logCtx.Error("Failed to load organization for approval email.")
		return
	}
	owner, errCode := store.GetStore().GetUserByID(organization.UserID)
	if errCode != http.StatusFound || !U.IsEmail(owner.Email) {
		logCtx.Error("Failed to load owner for approval email.")
		return
	}

	link := C.GetProtocol() + C.GetAPPDomain()
	sub, text, html := U.CreatePartnerApprovedTemplate(link)
	if err := C.GetServices().Mailer.SendMail(owner.Email, C.GetSenderEmail(), sub, html, text); err != nil {
		logCtx.WithError(err).Error("Failed to send partner approved email.")
	}
}

func GetAllAssessmentsHandler(c *gin.Context) {
	assessments, errCode := store.GetStore().GetAllAssessments()
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Get assessments failed."})
		return
	}

	c.JSON(http.StatusOK, assessments)
}

func GetAllQuotesHandler(c *gin.Context) {
	quotes, errCode := store.GetStore().GetAllQuotes()
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Get quotes failed."})
		return
	}

	c.JSON(http.StatusOK, quotes)
}

// UpdateQuoteStatusHandler closes a quote administratively. Customer
// decisions arrive through the portal, not here.
func UpdateQuoteStatusHandler(c *gin.Context) {
	quoteID, err := strconv.ParseUint(c.Params.ByName("quote_id"), 10, 64)
	if err != nil || quoteID == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid quote id."})
		return
	}
	logCtx := log.WithField("quote_id", quoteID)

	var requestPayload QuoteStatusPayload
	decoder := json.NewDecoder(c.Request.Body)
	if err := decoder.Decode(&requestPayload); err != nil {
		errMsg := "Update quote status failed. Json decode failed."
		logCtx.WithError(err).Error(errMsg)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}

	if requestPayload.Status != model.QuoteStatusClosed {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Only 'closed' can be set here."})
		return
	}

	errCode := store.GetStore().UpdateQuoteStatus(quoteID, requestPayload.Status, nil)
	if errCode != http.StatusAccepted {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Update quote status failed."})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": requestPayload.Status})
}

func DeleteQuoteHandler(c *gin.Context) {
	quoteID, err := strconv.ParseUint(c.Params.ByName("quote_id"), 10, 64)
	if err != nil || quoteID == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid quote id."})
		return
	}
	logCtx := log.WithField("quote_id", quoteID)

	quote, errCode := store.GetStore().GetQuoteByID(quoteID)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Delete quote failed."})
		return
	}

	if quote.PdfPath != "" {
		fm := C.GetServices().FileManager
		dir, name := fm.GetQuotePdfPathAndName(quote.OrganizationID, quote.ID)
		if err := fm.Delete(dir, name); err != nil {
			logCtx.WithError(err).Error("Failed to delete quote pdf blob.")
		}
	}

	errCode = store.GetStore().DeleteQuote(quoteID)
	if errCode != http.StatusAccepted {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Delete quote failed."})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "deleted"})
}

// CreateInvitationHandler creates a partner invitation and emails the
// signup link. The invite URL comes back in the response as well, for
// copy-paste delivery when SMTP is disabled.
func CreateInvitationHandler(c *gin.Context) {
	adminUserID := U.GetScopeByKeyAsString(c, mid.SCOPE_LOGGEDIN_USER_ID)
	logCtx := log.WithField("user_id", adminUserID)

	var requestPayload InvitationRequestPayload
	decoder := json.NewDecoder(c.Request.Body)
	if err := decoder.Decode(&requestPayload); err != nil {
		errMsg := "Create invitation failed. Json decode failed."
		logCtx.WithError(err).Error(errMsg)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}

	if !U.IsEmail(requestPayload.Email) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid email."})
		return
	}

	invitation, errCode := store.GetStore().CreatePartnerInvitation(&model.PartnerInvitation{
		Email:            requestPayload.Email,
		OrganizationName: requestPayload.OrganizationName,
		InvitedBy:        adminUserID,
	})
	if errCode != http.StatusCreated {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Create invitation failed."})
		return
	}

	inviteURL := fmt.Sprintf("%s%s/signup?invitation=%s",
		C.GetProtocol(), C.GetAPPDomain(), invitation.Token)

	go func() {
		sub, text, html := U.CreateInvitationTemplate(inviteURL)
		if err := C.GetServices().Mailer.SendMail(invitation.Email, C.GetSenderEmail(), sub, html, text); err != nil {
			logCtx.WithError(err).WithField("invitation_id", invitation.ID).
				Error("Failed to send invitation email.")
		}
	}()

	store.GetStore().TrackSignupEvent(&model.SignupAnalytics{
		EventType:    model.EventInvitationSent,
		Email:        invitation.Email,
		InvitationID: &invitation.ID,
		UserID:       adminUserID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"invitation": invitation,
		"invite_url": inviteURL,
	})
}

func GetInvitationsHandler(c *gin.Context) {
	invitations, errCode := store.GetStore().GetAllPartnerInvitations()
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Get invitations failed."})
		return
	}

	c.JSON(http.StatusOK, invitations)
}

func GetAnalyticsHandler(c *gin.Context) {
	limit := 0
	if rawLimit := c.Query("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid limit."})
			return
		}
		limit = parsed
	}

	summary, errCode := store.GetStore().GetAnalyticsSummary(limit)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Get analytics failed."})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ExportAssessmentsHandler downloads every assessment as CSV, or XLSX
// with ?format=xlsx.
func ExportAssessmentsHandler(c *gin.Context) {
	assessments, errCode := store.GetStore().GetAllAssessments()
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Export failed."})
		return
	}

	rows := make([][]string, 0, len(assessments))
	for i := range assessments {
		rows = append(rows, assessmentExportRow(&assessments[i]))
	}

	serveExport(c, "assessments", "Assessments", assessmentExportHeader(), rows)
}

func ExportQuotesHandler(c *gin.Context) {
	quotes, errCode := store.GetStore().GetAllQuotes()
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Export failed."})
		return
	}

	rows := make([][]string, 0, len(quotes))
	for i := range quotes {
		rows = append(rows, quoteExportRow(&quotes[i]))
	}

	serveExport(c, "quotes", "Quotes", quoteExportHeader(), rows)
}

func serveExport(c *gin.Context, prefix, sheetName string, header []string, rows [][]string) {
	format := c.Query("format")
	if format == "" {
		format = ExportFormatCSV
	}

	switch format {
	case ExportFormatCSV:
		data, err := writeCSVExport(header, rows)
		if err != nil {
			log.WithError(err).Error("Export failed. CSV write failed.")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Export failed."})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(prefix, ExportFormatCSV)))
		c.Data(http.StatusOK, "text/csv", data)
	case ExportFormatXLSX:
		data, err := writeXLSXExport(sheetName, header, rows)
		if err != nil {
			log.WithError(err).Error("Export failed. XLSX write failed.")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Export failed."})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(prefix, ExportFormatXLSX)))
		c.Data(http.StatusOK,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid export format."})
	}
}
