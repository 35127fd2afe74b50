package postgres

import (
	"net/http"
	"strings"
	"time"

	C "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/model"
	U "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/util"

	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"
)

// CreatePartnerInvitation creates the invitation row with a fresh token and
// the default validity window.
func (store *Postgres) CreatePartnerInvitation(invitation *model.PartnerInvitation) (*model.PartnerInvitation, int) {
	logCtx := log.WithField("email", invitation.Email)

	if !U.IsEmail(invitation.Email) {
		logCtx.Error("CreatePartnerInvitation failed. Invalid email.")
		return nil, http.StatusBadRequest
	}
	invitation.Email = strings.ToLower(invitation.Email)

	if invitation.Token == "" {
		invitation.Token = U.RandomLowerAphaNumString(model.InvitationTokenLength)
	}
	if invitation.ExpiresAt.IsZero() {
		invitation.ExpiresAt = U.TimeNow().AddDate(0, 0, model.InvitationValidityDays)
	}

	db := C.GetServices().Db
	if err := db.Create(invitation).Error; err != nil {
		logCtx.WithError(err).Error("CreatePartnerInvitation failed.")
		return nil, http.StatusInternalServerError
	}
	return invitation, http.StatusCreated
}

func (store *Postgres) GetPartnerInvitationByToken(token string) (*model.PartnerInvitation, int) {
	if token == "" {
		log.Error("GetPartnerInvitationByToken failed. Token not provided.")
		return nil, http.StatusBadRequest
	}

	db := C.GetServices().Db

	var invitation model.PartnerInvitation
	if err := db.Limit(1).Where("token = ?", token).Find(&invitation).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, http.StatusNotFound
		}
		log.WithError(err).Error("GetPartnerInvitationByToken failed.")
		return nil, http.StatusInternalServerError
	}
	return &invitation, http.StatusFound
}

func (store *Postgres) GetAllPartnerInvitations() ([]model.PartnerInvitation, int) {
	db := C.GetServices().Db

	var invitations []model.PartnerInvitation
	if err := db.Order("created_at DESC").Find(&invitations).Error; err != nil {
		log.WithError(err).Error("GetAllPartnerInvitations failed.")
		return nil, http.StatusInternalServerError
	}
	return invitations, http.StatusFound
}

// AcceptPartnerInvitation records acceptance by the signed-up user.
// Expired invitations answer StatusGone, already-accepted ones
// StatusConflict.
func (store *Postgres) AcceptPartnerInvitation(token, userID string, ts time.Time) int {
	logCtx := log.WithField("user_id", userID)

	if token == "" || userID == "" {
		logCtx.Error("AcceptPartnerInvitation failed. Missing token or user_id.")
		return http.StatusBadRequest
	}

	invitation, errCode := store.GetPartnerInvitationByToken(token)
	if errCode != http.StatusFound {
		return errCode
	}
	if invitation.IsAccepted() {
		return http.StatusConflict
	}
	if invitation.IsExpired(ts) {
		return http.StatusGone
	}

	db := C.GetServices().Db

	db = db.Model(&model.PartnerInvitation{}).Where("id = ?", invitation.ID).
		Updates(model.FieldsToUpdate{
			"accepted_at": ts,
			"accepted_by": userID,
		})
	if db.Error != nil {
		logCtx.WithError(db.Error).Error("AcceptPartnerInvitation failed.")
		return http.StatusInternalServerError
	}
	if db.RowsAffected == 0 {
		return http.StatusNotFound
	}
	return http.StatusAccepted
}
