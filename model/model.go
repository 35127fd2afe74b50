package model

import (
	"time"

	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/model"
)

// Model - Interface of all methods to be implemented by the stores.
//
// Store methods return an http.Status* code alongside the value; handlers
// translate the code straight into the response. Owner-scoped reads take
// the requesting user's id and answer StatusNotFound for rows owned by
// someone else, so cross-user probing cannot distinguish "missing" from
// "not yours".
type Model interface {
	// user
	CreateOrUpdateUser(user *model.User) (*model.User, int)
	GetUserByID(id string) (*model.User, int)
	UpdateUserLastLoginInfo(userID string, ts time.Time) int
	UpdateUserRole(userID, role string) int

	// organization
	CreateOrganization(organization *model.Organization) (*model.Organization, int)
	GetOrganizationByID(id uint64) (*model.Organization, int)
	GetOrganizationByUserID(userID string) (*model.Organization, int)
	UpdateOrganizationInfo(id uint64, fields model.FieldsToUpdate) int
	UpdateOrganizationPartnerStatus(id uint64, status string) int
	GetPartnerOverviews() ([]model.PartnerOverview, int)

	// assessment
	CreateAssessment(assessment *model.Assessment) (*model.Assessment, int)
	GetAssessment(id uint64, userID string) (*model.Assessment, int)
	GetAssessmentByID(id uint64) (*model.Assessment, int)
	GetAssessmentsByUser(userID string) ([]model.Assessment, int)
	GetAllAssessments() ([]model.Assessment, int)
	UpdateAssessment(id uint64, userID string, fields model.FieldsToUpdate) int
	MarkAssessmentCompleted(id uint64, ts time.Time) int
	DeleteAssessment(id uint64, userID string) int

	// quote
	CreateQuote(quote *model.Quote) (*model.Quote, int)
	GetQuote(id uint64, userID string) (*model.Quote, int)
	GetQuoteByID(id uint64) (*model.Quote, int)
	GetQuoteByAssessmentID(assessmentID uint64) (*model.Quote, int)
	GetQuoteByShareToken(token string) (*model.Quote, int)
	GetQuotesByUser(userID string) ([]model.Quote, int)
	GetAllQuotes() ([]model.Quote, int)
	UpdateQuoteStatus(id uint64, status string, respondedAt *time.Time) int
	UpdateQuotePdfPath(id uint64, pdfPath string) int
	UpdateQuoteHubspotDealID(id uint64, dealID string) int
	DeleteQuote(id uint64) int

	// uploaded_file
	CreateUploadedFile(file *model.UploadedFile) (*model.UploadedFile, int)
	GetUploadedFile(id uint64, userID string) (*model.UploadedFile, int)
	GetUploadedFilesByAssessment(assessmentID uint64, userID string) ([]model.UploadedFile, int)
	DeleteUploadedFile(id uint64, userID string) int

	// partner_invitation
	CreatePartnerInvitation(invitation *model.PartnerInvitation) (*model.PartnerInvitation, int)
	GetPartnerInvitationByToken(token string) (*model.PartnerInvitation, int)
	GetAllPartnerInvitations() ([]model.PartnerInvitation, int)
	AcceptPartnerInvitation(token, userID string, ts time.Time) int

	// signup_analytics
	TrackSignupEvent(event *model.SignupAnalytics) int
	GetAnalyticsSummary(limit int) (*model.AnalyticsSummary, int)

	// health
	HealthCheck() int
}
