package postgres

import (
	"net/http"
	"time"

	C "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/model"

	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"
)

// CreateAssessment creates a draft assessment for the given owner and
// organization.
func (store *Postgres) CreateAssessment(assessment *model.Assessment) (*model.Assessment, int) {
	logCtx := log.WithField("user_id", assessment.UserID)

	if assessment.UserID == "" || assessment.OrganizationID == 0 {
		logCtx.Error("CreateAssessment failed. Missing user_id or organization_id.")
		return nil, http.StatusBadRequest
	}
	if !model.IsValidServiceType(assessment.ServiceType) {
		logCtx.WithField("service_type", assessment.ServiceType).
			Error("CreateAssessment failed. Invalid service_type.")
		return nil, http.StatusBadRequest
	}

	if assessment.Status == "" {
		assessment.Status = model.AssessmentStatusDraft
	}

	db := C.GetServices().Db
	if err := db.Create(assessment).Error; err != nil {
		logCtx.WithError(err).Error("CreateAssessment failed.")
		return nil, http.StatusInternalServerError
	}
	return assessment, http.StatusCreated
}

// GetAssessment is the owner-scoped read. A row owned by another user
// answers StatusNotFound, same as a missing row.
func (store *Postgres) GetAssessment(id uint64, userID string) (*model.Assessment, int) {
	if id == 0 || userID == "" {
		log.Error("GetAssessment failed. Missing id or user_id.")
		return nil, http.StatusBadRequest
	}

	db := C.GetServices().Db

	var assessment model.Assessment
	if err := db.Limit(1).Where("id = ? AND user_id = ?", id, userID).
		Find(&assessment).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, http.StatusNotFound
		}
		log.WithError(err).Error("GetAssessment failed.")
		return nil, http.StatusInternalServerError
	}
	return &assessment, http.StatusFound
}

// GetAssessmentByID is the unscoped read used by admin listings and
// internal jobs that already verified access.
func (store *Postgres) GetAssessmentByID(id uint64) (*model.Assessment, int) {
	if id == 0 {
		log.Error("GetAssessmentByID failed. Id not provided.")
		return nil, http.StatusBadRequest
	}

	db := C.GetServices().Db

	var assessment model.Assessment
	if err := db.Limit(1).Where("id = ?", id).Find(&assessment).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, http.StatusNotFound
		}
		log.WithError(err).Error("GetAssessmentByID failed.")
		return nil, http.StatusInternalServerError
	}
	return &assessment, http.StatusFound
}

func (store *Postgres) GetAssessmentsByUser(userID string) ([]model.Assessment, int) {
	if userID == "" {
		log.Error("GetAssessmentsByUser failed. UserID not provided.")
		return nil, http.StatusBadRequest
	}

	db := C.GetServices().Db

	var assessments []model.Assessment
	if err := db.Order("updated_at DESC").Where("user_id = ?", userID).
		Find(&assessments).Error; err != nil {
		log.WithError(err).Error("GetAssessmentsByUser failed.")
		return nil, http.StatusInternalServerError
	}
	return assessments, http.StatusFound
}

func (store *Postgres) GetAllAssessments() ([]model.Assessment, int) {
	db := C.GetServices().Db

	var assessments []model.Assessment
	if err := db.Order("updated_at DESC").Find(&assessments).Error; err != nil {
		log.WithError(err).Error("GetAllAssessments failed.")
		return nil, http.StatusInternalServerError
	}
	return assessments, http.StatusFound
}

// UpdateAssessment applies a partial form save. Owner-scoped; last write
// wins, there is no optimistic locking on the form steps.
func (store *Postgres) UpdateAssessment(id uint64, userID string, fields model.FieldsToUpdate) int {
	logCtx := log.WithField("assessment_id", id).WithField("user_id", userID)

	if id == 0 || userID == "" || len(fields) == 0 {
		logCtx.Error("UpdateAssessment failed. Invalid params.")
		return http.StatusBadRequest
	}
	if serviceType, exists := fields["service_type"]; exists {
		asString, ok := serviceType.(string)
		if !ok || !model.IsValidServiceType(asString) {
			logCtx.WithField("service_type", serviceType).
				Error("UpdateAssessment failed. Invalid service_type.")
			return http.StatusBadRequest
		}
	}

	db := C.GetServices().Db

	db = db.Model(&model.Assessment{}).Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if db.Error != nil {
		logCtx.WithError(db.Error).Error("UpdateAssessment failed.")
		return http.StatusInternalServerError
	}
	if db.RowsAffected == 0 {
		return http.StatusNotFound
	}
	return http.StatusAccepted
}

// MarkAssessmentCompleted stamps the completion transition done at quote
// generation. Ownership is the caller's concern.
func (store *Postgres) MarkAssessmentCompleted(id uint64, ts time.Time) int {
	if id == 0 {
		log.Error("MarkAssessmentCompleted failed. Id not provided.")
		return http.StatusBadRequest
	}

	db := C.GetServices().Db

	db = db.Model(&model.Assessment{}).Where("id = ?", id).
		Updates(model.FieldsToUpdate{
			"status":       model.AssessmentStatusCompleted,
			"completed_at": ts,
		})
	if db.Error != nil {
		log.WithError(db.Error).Error("MarkAssessmentCompleted failed.")
		return http.StatusInternalServerError
	}
	if db.RowsAffected == 0 {
		return http.StatusNotFound
	}
	return http.StatusAccepted
}

func (store *Postgres) DeleteAssessment(id uint64, userID string) int {
	if id == 0 || userID == "" {
		log.Error("DeleteAssessment failed. Missing id or user_id.")
		return http.StatusBadRequest
	}

	db := C.GetServices().Db

	db = db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Assessment{})
	if db.Error != nil {
		log.WithError(db.Error).Error("DeleteAssessment failed.")
		return http.StatusInternalServerError
	}
	if db.RowsAffected == 0 {
		return http.StatusNotFound
	}
	return http.StatusAccepted
}
