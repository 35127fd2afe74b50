package postgres

import (
	"net/http"

	C "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/model"

	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"
)

func (store *Postgres) satisfiesOrganizationForeignConstraints(organization model.Organization) int {
	_, errCode := store.GetUserByID(organization.UserID)
	if errCode != http.StatusFound {
		return http.StatusBadRequest
	}
	return http.StatusOK
}

// CreateOrganization creates the partner organization owned by a user.
// Unique (user_id) constraint: a second create for the same user answers
// StatusConflict.
func (store *Postgres) CreateOrganization(organization *model.Organization) (*model.Organization, int) {
	logCtx := log.WithField("user_id", organization.UserID)

	if organization.UserID == "" || organization.CompanyName == "" {
		logCtx.Error("CreateOrganization failed. Missing user_id or company_name.")
		return nil, http.StatusBadRequest
	}

	if _, errCode := store.GetOrganizationByUserID(organization.UserID); errCode == http.StatusFound {
		return nil, http.StatusConflict
	}

	if organization.PartnerStatus == "" {
		organization.PartnerStatus = model.PartnerStatusPending
	}
	if !model.IsValidPartnerStatus(organization.PartnerStatus) {
		logCtx.WithField("partner_status", organization.PartnerStatus).
			Error("CreateOrganization failed. Invalid partner_status.")
		return nil, http.StatusBadRequest
	}

	if errCode := store.satisfiesOrganizationForeignConstraints(*organization); errCode != http.StatusOK {
		return nil, http.StatusInternalServerError
	}

	db := C.GetServices().Db
	if err := db.Create(organization).Error; err != nil {
		logCtx.WithError(err).Error("CreateOrganization failed.")
		return nil, http.StatusInternalServerError
	}
	return organization, http.StatusCreated
}

func (store *Postgres) GetOrganizationByID(id uint64) (*model.Organization, int) {
	if id == 0 {
		log.Error("GetOrganizationByID failed. Id not provided.")
		return nil, http.StatusBadRequest
	}

	db := C.GetServices().Db

	var organization model.Organization
	if err := db.Limit(1).Where("id = ?", id).Find(&organization).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, http.StatusNotFound
		}
		log.WithError(err).Error("GetOrganizationByID failed.")
		return nil, http.StatusInternalServerError
	}
	return &organization, http.StatusFound
}

func (store *Postgres) GetOrganizationByUserID(userID string) (*model.Organization, int) {
	if userID == "" {
		log.Error("GetOrganizationByUserID failed. UserID not provided.")
		return nil, http.StatusBadRequest
	}

	db := C.GetServices().Db

	var organization model.Organization
	if err := db.Limit(1).Where("user_id = ?", userID).Find(&organization).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, http.StatusNotFound
		}
		log.WithError(err).Error("GetOrganizationByUserID failed.")
		return nil, http.StatusInternalServerError
	}
	return &organization, http.StatusFound
}

func (store *Postgres) UpdateOrganizationInfo(id uint64, fields model.FieldsToUpdate) int {
	if id == 0 || len(fields) == 0 {
		log.WithField("organization_id", id).Error("UpdateOrganizationInfo failed. Invalid params.")
		return http.StatusBadRequest
	}

	db := C.GetServices().Db

	db = db.Model(&model.Organization{}).Where("id = ?", id).Updates(fields)
	if db.Error != nil {
		log.WithError(db.Error).Error("UpdateOrganizationInfo failed.")
		return http.StatusInternalServerError
	}
	if db.RowsAffected == 0 {
		return http.StatusNoContent
	}
	return http.StatusAccepted
}

func (store *Postgres) UpdateOrganizationPartnerStatus(id uint64, status string) int {
	if id == 0 || !model.IsValidPartnerStatus(status) {
		log.WithField("organization_id", id).WithField("partner_status", status).
			Error("UpdateOrganizationPartnerStatus failed. Invalid params.")
		return http.StatusBadRequest
	}

	db := C.GetServices().Db

	db = db.Model(&model.Organization{}).Where("id = ?", id).
		Updates(model.FieldsToUpdate{"partner_status": status})
	if db.Error != nil {
		log.WithError(db.Error).Error("UpdateOrganizationPartnerStatus failed.")
		return http.StatusInternalServerError
	}
	if db.RowsAffected == 0 {
		return http.StatusNotFound
	}
	return http.StatusAccepted
}

// GetPartnerOverviews returns every organization joined with its owner, for
// the admin partner listing.
func (store *Postgres) GetPartnerOverviews() ([]model.PartnerOverview, int) {
	db := C.GetServices().Db

	var organizations []model.Organization
	if err := db.Order("created_at DESC").Find(&organizations).Error; err != nil {
		log.WithError(err).Error("GetPartnerOverviews failed on organizations.")
		return nil, http.StatusInternalServerError
	}
	if len(organizations) == 0 {
		return []model.PartnerOverview{}, http.StatusFound
	}

	userIDs := make([]string, 0, len(organizations))
	for i := range organizations {
		userIDs = append(userIDs, organizations[i].UserID)
	}

	var users []model.User
	if err := db.Where("id IN (?)", userIDs).Find(&users).Error; err != nil {
		log.WithError(err).Error("GetPartnerOverviews failed on users.")
		return nil, http.StatusInternalServerError
	}
	usersByID := make(map[string]*model.User, len(users))
	for i := range users {
		usersByID[users[i].ID] = &users[i]
	}

	overviews := make([]model.PartnerOverview, 0, len(organizations))
	for i := range organizations {
		overviews = append(overviews, model.PartnerOverview{
			Organization: organizations[i],
			Owner:        usersByID[organizations[i].UserID],
		})
	}
	return overviews, http.StatusFound
}
