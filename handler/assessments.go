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
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/pdf"
	U "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/util"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type AssessmentRequestPayload struct {
	ServiceType string `json:"service_type"`
}

// CreateAssessmentHandler opens a new draft assessment. The partner must
// have registered an organization first; the form steps arrive later as
// partial updates.
func CreateAssessmentHandler(c *gin.Context) {
	userID := U.GetScopeByKeyAsString(c, mid.SCOPE_LOGGEDIN_USER_ID)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Create assessment failed. Invalid user."})
		return
	}
	logCtx := log.WithField("user_id", userID)

	var requestPayload AssessmentRequestPayload
	decoder := json.NewDecoder(c.Request.Body)
	if err := decoder.Decode(&requestPayload); err != nil {
		errMsg := "Create assessment failed. Json decode failed."
		logCtx.WithError(err).Error(errMsg)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}

	if !model.IsValidServiceType(requestPayload.ServiceType) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid service type."})
		return
	}

	organization, errCode := store.GetStore().GetOrganizationByUserID(userID)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Register an organization first."})
		return
	}

	assessment, errCode := store.GetStore().CreateAssessment(&model.Assessment{
		UserID:         userID,
		OrganizationID: organization.ID,
		ServiceType:    requestPayload.ServiceType,
	})
	if errCode != http.StatusCreated {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Create assessment failed."})
		return
	}

	store.GetStore().TrackSignupEvent(&model.SignupAnalytics{
		EventType:      model.EventAssessmentCreated,
		UserID:         userID,
		OrganizationID: &organization.ID,
	})

	c.JSON(http.StatusCreated, assessment)
}

func GetAssessmentsHandler(c *gin.Context) {
	userID := U.GetScopeByKeyAsString(c, mid.SCOPE_LOGGEDIN_USER_ID)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Get assessments failed. Invalid user."})
		return
	}

	assessments, errCode := store.GetStore().GetAssessmentsByUser(userID)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Get assessments failed."})
		return
	}

	c.JSON(http.StatusOK, assessments)
}

func GetAssessmentHandler(c *gin.Context) {
	userID := U.GetScopeByKeyAsString(c, mid.SCOPE_LOGGEDIN_USER_ID)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Get assessment failed. Invalid user."})
		return
	}

	assessmentID, err := strconv.ParseUint(c.Params.ByName("assessment_id"), 10, 64)
	if err != nil || assessmentID == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid assessment id."})
		return
	}

	assessment, errCode := store.GetStore().GetAssessment(assessmentID, userID)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Get assessment failed."})
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// UpdateAssessmentHandler saves one step of the multi-step form. The body
// is a partial column map; unknown keys are dropped, writes are
// last-write-wins. Completed assessments stay editable, but the quote
// already generated from one is never recomputed.
func UpdateAssessmentHandler(c *gin.Context) {
	userID := U.GetScopeByKeyAsString(c, mid.SCOPE_LOGGEDIN_USER_ID)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Update assessment failed. Invalid user."})
		return
	}
	logCtx := log.WithField("user_id", userID)

	assessmentID, err := strconv.ParseUint(c.Params.ByName("assessment_id"), 10, 64)
	if err != nil || assessmentID == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid assessment id."})
		return
	}

	var payload map[string]interface{}
	decoder := json.NewDecoder(c.Request.Body)
	if err := decoder.Decode(&payload); err != nil {
		errMsg := "Update assessment failed. Json decode failed."
		logCtx.WithError(err).Error(errMsg)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}

	fields := model.BuildAssessmentUpdateFields(payload)
	if len(fields) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Nothing to update."})
		return
	}

	errCode := store.GetStore().UpdateAssessment(assessmentID, userID, fields)
	if errCode != http.StatusAccepted {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Update assessment failed."})
		return
	}

	assessment, errCode := store.GetStore().GetAssessment(assessmentID, userID)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Update assessment failed."})
		return
	}
	c.JSON(http.StatusAccepted, assessment)
}

// DownloadAssessmentReportHandler renders the full survey as a PDF
// attachment. The report is rendered per request and never persisted.
func DownloadAssessmentReportHandler(c *gin.Context) {
	userID := U.GetScopeByKeyAsString(c, mid.SCOPE_LOGGEDIN_USER_ID)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Assessment report failed. Invalid user."})
		return
	}
	logCtx := log.WithField("user_id", userID)

	assessmentID, err := strconv.ParseUint(c.Params.ByName("assessment_id"), 10, 64)
	if err != nil || assessmentID == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid assessment id."})
		return
	}

	assessment, errCode := store.GetStore().GetAssessment(assessmentID, userID)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Assessment report failed."})
		return
	}

	organization, errCode := store.GetStore().GetOrganizationByID(assessment.OrganizationID)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Assessment report failed."})
		return
	}

	data, err := pdf.RenderAssessmentReport(assessment, organization)
	if err != nil {
		logCtx.WithError(err).WithField("assessment_id", assessmentID).Error("Assessment report render failed.")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Assessment report failed."})
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("assessment_%d_report.pdf", assessmentID)))
	c.Data(http.StatusOK, "application/pdf", data)
}

// DeleteAssessmentHandler removes the assessment along with its uploaded
// files and quote. Blob deletion is best effort; the rows always go.
func DeleteAssessmentHandler(c *gin.Context) {
	userID := U.GetScopeByKeyAsString(c, mid.SCOPE_LOGGEDIN_USER_ID)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Delete assessment failed. Invalid user."})
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
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Delete assessment failed."})
		return
	}

	files, errCode := store.GetStore().GetUploadedFilesByAssessment(assessmentID, userID)
	if errCode == http.StatusFound {
		fm := C.GetServices().FileManager
		dir := fm.GetAssessmentFilesDir(assessment.OrganizationID, assessmentID)
		for i := range files {
			if err := fm.Delete(dir, files[i].StoredName); err != nil {
				logCtx.WithError(err).WithField("file_id", files[i].ID).
					Error("Failed to delete stored file on assessment delete.")
			}
			store.GetStore().DeleteUploadedFile(files[i].ID, userID)
		}
	}

	if quote, errCode := store.GetStore().GetQuoteByAssessmentID(assessmentID); errCode == http.StatusFound {
		if errCode = store.GetStore().DeleteQuote(quote.ID); errCode != http.StatusAccepted {
			logCtx.WithField("quote_id", quote.ID).Error("Failed to delete quote on assessment delete.")
		}
	}

	errCode = store.GetStore().DeleteAssessment(assessmentID, userID)
	if errCode != http.StatusAccepted {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Delete assessment failed."})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "deleted"})
}
