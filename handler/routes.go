package handler

import (
	"net/http"

	C "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"
	mid "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/middleware"
	session "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/session/store"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// InitAppRoutes wires every route. The OIDC authenticator is built once
// here; when the provider is not configured (local tooling, tests) the
// auth routes answer 503 instead of failing startup.
func InitAppRoutes(r *gin.Engine) {
	session.GetSessionStore().InitSessionStore(r)

	r.GET("/status", StatusHandler)

	registerAuthRoutes(r)

	r.GET("/invitations/:token", GetInvitationHandler)

	r.GET("/portal/quotes/:share_token", GetPortalQuoteHandler)
	r.POST("/portal/quotes/:share_token/action", PortalQuoteActionHandler)

	api := r.Group("/api")
	api.Use(mid.SetLoggedInUser())

	api.GET("/auth/user", GetLoggedInUserHandler)

	api.POST("/organizations", CreateOrganizationHandler)
	api.GET("/organizations/me", GetOwnOrganizationHandler)
	api.PUT("/organizations/me", UpdateOwnOrganizationHandler)

	api.POST("/invitations/:token/accept", AcceptInvitationHandler)

	api.POST("/assessments", CreateAssessmentHandler)
	api.GET("/assessments", GetAssessmentsHandler)
	api.GET("/assessments/:assessment_id", GetAssessmentHandler)
	api.PUT("/assessments/:assessment_id", UpdateAssessmentHandler)
	api.DELETE("/assessments/:assessment_id", DeleteAssessmentHandler)
	api.GET("/assessments/:assessment_id/report", DownloadAssessmentReportHandler)

	api.POST("/assessments/:assessment_id/files", UploadAssessmentFileHandler)
	api.GET("/assessments/:assessment_id/files", GetAssessmentFilesHandler)
	api.GET("/files/:file_id/download", DownloadFileHandler)
	api.DELETE("/files/:file_id", DeleteFileHandler)

	api.POST("/assessments/:assessment_id/quote", GenerateQuoteHandler)
	api.GET("/quotes", GetQuotesHandler)
	api.GET("/quotes/:quote_id", GetQuoteHandler)
	api.GET("/quotes/:quote_id/pdf", DownloadQuotePdfHandler)

	adminRead := api.Group("/admin")
	adminRead.Use(mid.RequireRecordsViewer())
	adminRead.GET("/partners", GetPartnersHandler)
	adminRead.GET("/assessments", GetAllAssessmentsHandler)
	adminRead.GET("/quotes", GetAllQuotesHandler)
	adminRead.GET("/analytics", GetAnalyticsHandler)
	adminRead.GET("/export/assessments", ExportAssessmentsHandler)
	adminRead.GET("/export/quotes", ExportQuotesHandler)

	adminManage := api.Group("/admin")
	adminManage.Use(mid.RequireAdmin())
	adminManage.PUT("/partners/:org_id/status", UpdatePartnerStatusHandler)
	adminManage.PUT("/quotes/:quote_id/status", UpdateQuoteStatusHandler)
	adminManage.DELETE("/quotes/:quote_id", DeleteQuoteHandler)
	adminManage.POST("/invitations", CreateInvitationHandler)
	adminManage.GET("/invitations", GetInvitationsHandler)
}

func registerAuthRoutes(r *gin.Engine) {
	if !C.IsOIDCConfigured() {
		log.Warn("OIDC not configured. Auth routes disabled.")
		r.GET("/auth/login", authUnavailableHandler)
		r.GET("/auth/signup", authUnavailableHandler)
		r.GET("/auth/callback", authUnavailableHandler)
		r.GET("/auth/logout", SignOutHandler)
		return
	}

	auth, err := NewAuth()
	if err != nil {
		log.WithError(err).Error("OIDC provider discovery failed. Auth routes disabled.")
		r.GET("/auth/login", authUnavailableHandler)
		r.GET("/auth/signup", authUnavailableHandler)
		r.GET("/auth/callback", authUnavailableHandler)
		r.GET("/auth/logout", SignOutHandler)
		return
	}

	r.GET("/auth/login", ExternalAuthentication(auth, SIGNIN_FLOW))
	r.GET("/auth/signup", ExternalAuthentication(auth, SIGNUP_FLOW))
	r.GET("/auth/callback", CallbackHandler(auth))
	r.GET("/auth/logout", SignOutHandler)
}

func authUnavailableHandler(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Authentication is not configured."})
}
