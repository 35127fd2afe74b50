package postgres

import (
	"net/http"
	"time"

	C "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/model"
	U "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/util"

	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"
)

// CreateQuote persists a computed quote. One quote per assessment: a second
// create for the same assessment answers StatusConflict and the caller is
// expected to re-read the existing row.
func (store *Postgres) CreateQuote(quote *model.Quote) (*model.Quote, int) {
	logCtx := log.WithField("assessment_id", quote.AssessmentID)

	if quote.AssessmentID == 0 || quote.OrganizationID == 0 || quote.UserID == "" {
		logCtx.Error("CreateQuote failed. Missing assessment, organization or user.")
		return nil, http.StatusBadRequest
	}

	if _, errCode := store.GetQuoteByAssessmentID(quote.AssessmentID); errCode == http.StatusFound {
		return nil, http.StatusConflict
	}

	if quote.Status == "" {
		quote.Status = model.QuoteStatusPending
	}
	// Share token gates the no-login customer portal. Generated before
	// create, like the agent salt on signup.
	if quote.ShareToken == "" {
		quote.ShareToken = U.RandomLowerAphaNumString(model.QuoteShareTokenLength)
	}

	db := C.GetServices().Db
	if err := db.Create(quote).Error; err != nil {
		logCtx.WithError(err).Error("CreateQuote failed.")
		return nil, http.StatusInternalServerError
	}
	return quote, http.StatusCreated
}

// GetQuote is the owner-scoped read, StatusNotFound for foreign rows.
func (store *Postgres) GetQuote(id uint64, userID string) (*model.Quote, int) {
	if id == 0 || userID == "" {
		log.Error("GetQuote failed. Missing id or user_id.")
		return nil, http.StatusBadRequest
	}

	db := C.GetServices().Db

	var quote model.Quote
	if err := db.Limit(1).Where("id = ? AND user_id = ?", id, userID).
		Find(&quote).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, http.StatusNotFound
		}
		log.WithError(err).Error("GetQuote failed.")
		return nil, http.StatusInternalServerError
	}
	return &quote, http.StatusFound
}

func (store *Postgres) GetQuoteByID(id uint64) (*model.Quote, int) {
	if id == 0 {
		log.Error("GetQuoteByID failed. Id not provided.")
		return nil, http.StatusBadRequest
	}

	db := C.GetServices().Db

	var quote model.Quote
	if err := db.Limit(1).Where("id = ?", id).Find(&quote).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, http.StatusNotFound
		}
		log.WithError(err).Error("GetQuoteByID failed.")
		return nil, http.StatusInternalServerError
	}
	return &quote, http.StatusFound
}

func (store *Postgres) GetQuoteByAssessmentID(assessmentID uint64) (*model.Quote, int) {
	if assessmentID == 0 {
		log.Error("GetQuoteByAssessmentID failed. AssessmentID not provided.")
		return nil, http.StatusBadRequest
	}

	db := C.GetServices().Db

	var quote model.Quote
	if err := db.Limit(1).Where("assessment_id = ?", assessmentID).
		Find(&quote).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, http.StatusNotFound
		}
		log.WithError(err).Error("GetQuoteByAssessmentID failed.")
		return nil, http.StatusInternalServerError
	}
	return &quote, http.StatusFound
}

// GetQuoteByShareToken resolves the unauthenticated customer-portal token.
func (store *Postgres) GetQuoteByShareToken(token string) (*model.Quote, int) {
	if token == "" {
		log.Error("GetQuoteByShareToken failed. Token not provided.")
		return nil, http.StatusBadRequest
	}

	db := C.GetServices().Db

	var quote model.Quote
	if err := db.Limit(1).Where("share_token = ?", token).Find(&quote).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, http.StatusNotFound
		}
		log.WithError(err).Error("GetQuoteByShareToken failed.")
		return nil, http.StatusInternalServerError
	}
	return &quote, http.StatusFound
}

func (store *Postgres) GetQuotesByUser(userID string) ([]model.Quote, int) {
	if userID == "" {
		log.Error("GetQuotesByUser failed. UserID not provided.")
		return nil, http.StatusBadRequest
	}

	db := C.GetServices().Db

	var quotes []model.Quote
	if err := db.Order("created_at DESC").Where("user_id = ?", userID).
		Find(&quotes).Error; err != nil {
		log.WithError(err).Error("GetQuotesByUser failed.")
		return nil, http.StatusInternalServerError
	}
	return quotes, http.StatusFound
}

func (store *Postgres) GetAllQuotes() ([]model.Quote, int) {
	db := C.GetServices().Db

	var quotes []model.Quote
	if err := db.Order("created_at DESC").Find(&quotes).Error; err != nil {
		log.WithError(err).Error("GetAllQuotes failed.")
		return nil, http.StatusInternalServerError
	}
	return quotes, http.StatusFound
}

func (store *Postgres) UpdateQuoteStatus(id uint64, status string, respondedAt *time.Time) int {
	logCtx := log.WithField("quote_id", id).WithField("status", status)

	if id == 0 || !model.IsValidQuoteStatus(status) {
		logCtx.Error("UpdateQuoteStatus failed. Invalid params.")
		return http.StatusBadRequest
	}

	fields := model.FieldsToUpdate{"status": status}
	if respondedAt != nil {
		fields["responded_at"] = *respondedAt
	}

	db := C.GetServices().Db

	db = db.Model(&model.Quote{}).Where("id = ?", id).Updates(fields)
	if db.Error != nil {
		logCtx.WithError(db.Error).Error("UpdateQuoteStatus failed.")
		return http.StatusInternalServerError
	}
	if db.RowsAffected == 0 {
		return http.StatusNotFound
	}
	return http.StatusAccepted
}

func (store *Postgres) UpdateQuotePdfPath(id uint64, pdfPath string) int {
	if id == 0 || pdfPath == "" {
		log.WithField("quote_id", id).Error("UpdateQuotePdfPath failed. Invalid params.")
		return http.StatusBadRequest
	}

	db := C.GetServices().Db

	db = db.Model(&model.Quote{}).Where("id = ?", id).
		Updates(model.FieldsToUpdate{"pdf_path": pdfPath})
	if db.Error != nil {
		log.WithError(db.Error).Error("UpdateQuotePdfPath failed.")
		return http.StatusInternalServerError
	}
	if db.RowsAffected == 0 {
		return http.StatusNotFound
	}
	return http.StatusAccepted
}

func (store *Postgres) UpdateQuoteHubspotDealID(id uint64, dealID string) int {
	if id == 0 || dealID == "" {
		log.WithField("quote_id", id).Error("UpdateQuoteHubspotDealID failed. Invalid params.")
		return http.StatusBadRequest
	}

	db := C.GetServices().Db

	db = db.Model(&model.Quote{}).Where("id = ?", id).
		Updates(model.FieldsToUpdate{"hubspot_deal_id": dealID})
	if db.Error != nil {
		log.WithError(db.Error).Error("UpdateQuoteHubspotDealID failed.")
		return http.StatusInternalServerError
	}
	if db.RowsAffected == 0 {
		return http.StatusNotFound
	}
	return http.StatusAccepted
}

func (store *Postgres) DeleteQuote(id uint64) int {
	if id == 0 {
		log.Error("DeleteQuote failed. Id not provided.")
		return http.StatusBadRequest
	}

	db := C.GetServices().Db

	db = db.Where("id = ?", id).Delete(&model.Quote{})
	if db.Error != nil {
		log.WithError(db.Error).Error("DeleteQuote failed.")
		return http.StatusInternalServerError
	}
	if db.RowsAffected == 0 {
		return http.StatusNotFound
	}
	return http.StatusAccepted
}
