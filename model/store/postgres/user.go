package postgres

import (
	"net/http"
	"strings"
	"time"

	C "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/model"

	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"
)

// CreateOrUpdateUser upserts the local record for an identity-provider
// subject. Called on every login callback, so an existing row only gets its
// profile fields refreshed.
func (store *Postgres) CreateOrUpdateUser(user *model.User) (*model.User, int) {
	logCtx := log.WithField("user_id", user.ID)

	if user.ID == "" || user.Email == "" {
		logCtx.Error("CreateOrUpdateUser failed. Missing id or email.")
		return nil, http.StatusBadRequest
	}
	user.Email = strings.ToLower(user.Email)

	db := C.GetServices().Db

	existing, errCode := store.GetUserByID(user.ID)
	if errCode == http.StatusFound {
		fields := model.FieldsToUpdate{"email": user.Email}
		model.ProfileInfo(user.FirstName, user.LastName, user.ProfileImageURL)(fields)

		if err := db.Model(&model.User{}).Where("id = ?", user.ID).
			Updates(fields).Error; err != nil {
			logCtx.WithError(err).Error("CreateOrUpdateUser failed on update.")
			return nil, http.StatusInternalServerError
		}

		existing.Email = user.Email
		if user.FirstName != "" {
			existing.FirstName = user.FirstName
		}
		if user.LastName != "" {
			existing.LastName = user.LastName
		}
		if user.ProfileImageURL != "" {
			existing.ProfileImageURL = user.ProfileImageURL
		}
		return existing, http.StatusOK
	}
	if errCode != http.StatusNotFound {
		return nil, errCode
	}

	if user.Role == "" {
		user.Role = model.RolePartner
	}
	if !model.IsValidRole(user.Role) {
		logCtx.WithField("role", user.Role).Error("CreateOrUpdateUser failed. Invalid role.")
		return nil, http.StatusBadRequest
	}

	if err := db.Create(user).Error; err != nil {
		logCtx.WithError(err).Error("CreateOrUpdateUser failed on create.")
		return nil, http.StatusInternalServerError
	}
	return user, http.StatusCreated
}

func (store *Postgres) GetUserByID(id string) (*model.User, int) {
	if id == "" {
		log.Error("GetUserByID failed. Id not provided.")
		return nil, http.StatusBadRequest
	}

	db := C.GetServices().Db

	var user model.User
	if err := db.Limit(1).Where("id = ?", id).Find(&user).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, http.StatusNotFound
		}
		log.WithError(err).Error("GetUserByID failed.")
		return nil, http.StatusInternalServerError
	}
	return &user, http.StatusFound
}

func (store *Postgres) UpdateUserLastLoginInfo(userID string, ts time.Time) int {
	if userID == "" {
		log.Error("UpdateUserLastLoginInfo failed. Missing params.")
		return http.StatusBadRequest
	}

	return updateUser(userID, model.LastLoggedInAtAndIncrLoginCount(ts))
}

func (store *Postgres) UpdateUserRole(userID, role string) int {
	if userID == "" || !model.IsValidRole(role) {
		log.WithField("user_id", userID).WithField("role", role).
			Error("UpdateUserRole failed. Invalid params.")
		return http.StatusBadRequest
	}

	return updateUser(userID, model.Role(role))
}

func updateUser(userID string, options ...model.Option) int {
	if userID == "" {
		return http.StatusBadRequest
	}

	fields := model.FieldsToUpdate{}
	for _, option := range options {
		option(fields)
	}
	if len(fields) == 0 {
		return http.StatusBadRequest
	}

	db := C.GetServices().Db

	db = db.Model(&model.User{}).Where("id = ?", userID).Updates(fields)
	if db.Error != nil {
		log.WithError(db.Error).Error("UpdateUser failed.")
		return http.StatusInternalServerError
	}
	if db.RowsAffected == 0 {
		return http.StatusNoContent
	}
	return http.StatusAccepted
}
