package postgres

import (
	"net/http"

	C "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/model"

	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"
)

func (store *Postgres) CreateUploadedFile(file *model.UploadedFile) (*model.UploadedFile, int) {
	logCtx := log.WithField("assessment_id", file.AssessmentID)

	if file.AssessmentID == 0 || file.UserID == "" || file.StoredName == "" {
		logCtx.Error("CreateUploadedFile failed. Missing params.")
		return nil, http.StatusBadRequest
	}
	if !model.IsValidFileCategory(file.Category) {
		logCtx.WithField("category", file.Category).
			Error("CreateUploadedFile failed. Invalid category.")
		return nil, http.StatusBadRequest
	}

	db := C.GetServices().Db
	if err := db.Create(file).Error; err != nil {
		logCtx.WithError(err).Error("CreateUploadedFile failed.")
		return nil, http.StatusInternalServerError
	}
	return file, http.StatusCreated
}

// GetUploadedFile is owner-scoped, like the assessment it hangs off.
func (store *Postgres) GetUploadedFile(id uint64, userID string) (*model.UploadedFile, int) {
	if id == 0 || userID == "" {
		log.Error("GetUploadedFile failed. Missing id or user_id.")
		return nil, http.StatusBadRequest
	}

	db := C.GetServices().Db

	var file model.UploadedFile
	if err := db.Limit(1).Where("id = ? AND user_id = ?", id, userID).
		Find(&file).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, http.StatusNotFound
		}
		log.WithError(err).Error("GetUploadedFile failed.")
		return nil, http.StatusInternalServerError
	}
	return &file, http.StatusFound
}

func (store *Postgres) GetUploadedFilesByAssessment(assessmentID uint64, userID string) ([]model.UploadedFile, int) {
	if assessmentID == 0 || userID == "" {
		log.Error("GetUploadedFilesByAssessment failed. Missing params.")
		return nil, http.StatusBadRequest
	}

	db := C.GetServices().Db

	var files []model.UploadedFile
	if err := db.Order("created_at ASC").
		Where("assessment_id = ? AND user_id = ?", assessmentID, userID).
		Find(&files).Error; err != nil {
		log.WithError(err).Error("GetUploadedFilesByAssessment failed.")
		return nil, http.StatusInternalServerError
	}
	return files, http.StatusFound
}

func (store *Postgres) DeleteUploadedFile(id uint64, userID string) int {
	if id == 0 || userID == "" {
		log.Error("DeleteUploadedFile failed. Missing id or user_id.")
		return http.StatusBadRequest
	}

	db := C.GetServices().Db

	db = db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.UploadedFile{})
	if db.Error != nil {
		log.WithError(db.Error).Error("DeleteUploadedFile failed.")
		return http.StatusInternalServerError
	}
	if db.RowsAffected == 0 {
		return http.StatusNotFound
	}
	return http.StatusAccepted
}
