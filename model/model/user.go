package model

import (
	"time"

	"github.com/jinzhu/gorm"
)

// Roles assignable to a user. Partners create assessments and quotes for
// their own organization; sales executives get read access to every
// partner's pipeline; admins manage partners, quotes and invitations.
const (
	RolePartner        = "partner"
	RoleSalesExecutive = "sales_executive"
	RoleAdmin          = "admin"
)

// User is the local record of an identity issued by the external OIDC
// provider. The ID is the provider's subject claim, so the row is upserted
// on every login.
type User struct {
	ID string `gorm:"primary_key:true;type:varchar(255)" json:"id"`

	Email           string `gorm:"type:varchar(100)" json:"email"`
	FirstName       string `gorm:"type:varchar(100)" json:"first_name"`
	LastName        string `gorm:"type:varchar(100)" json:"last_name"`
	ProfileImageURL string `gorm:"type:varchar(500)" json:"profile_image_url"`

	Role          string `gorm:"type:varchar(50);default:'partner'" json:"role"`
	IsSystemAdmin bool   `gorm:"default:false" json:"is_system_admin"`

	LastLoggedInAt *time.Time `json:"last_logged_in_at"`
	LoginCount     uint64     `json:"login_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OIDCProfile holds the ID token claims consumed at login.
type OIDCProfile struct {
	Subject         string `json:"sub"`
	Email           string `json:"email"`
	EmailVerified   bool   `json:"email_verified"`
	FirstName       string `json:"given_name"`
	LastName        string `json:"family_name"`
	ProfileImageURL string `json:"picture"`
}

func IsValidRole(role string) bool {
	return role == RolePartner || role == RoleSalesExecutive || role == RoleAdmin
}

// CanViewAllRecords is true for the roles allowed on the read-only admin
// listings (partners, assessments, quotes, exports).
func (u *User) CanViewAllRecords() bool {
	return u.Role == RoleAdmin || u.Role == RoleSalesExecutive || u.IsSystemAdmin
}

// CanManagePartners is true for roles allowed to mutate partner status,
// quotes and invitations.
func (u *User) CanManagePartners() bool {
	return u.Role == RoleAdmin || u.IsSystemAdmin
}

func LastLoggedInAtAndIncrLoginCount(ts time.Time) Option {
	return func(fields FieldsToUpdate) {
		fields["last_logged_in_at"] = ts
		fields["login_count"] = gorm.Expr("login_count + 1")
	}
}

func Role(role string) Option {
	return func(fields FieldsToUpdate) {
		fields["role"] = role
	}
}

func ProfileInfo(firstName, lastName, profileImageURL string) Option {
	return func(fields FieldsToUpdate) {
		if firstName != "" {
			fields["first_name"] = firstName
		}
		if lastName != "" {
			fields["last_name"] = lastName
		}
		if profileImageURL != "" {
			fields["profile_image_url"] = profileImageURL
		}
	}
}
