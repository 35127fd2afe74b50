package handler

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	C "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/handler/helpers"
	mid "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/middleware"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/model"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/store"
	session "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/session/store"
	U "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/util"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// Authenticator bundles the OIDC provider with the oauth2 client config.
type Authenticator struct {
	*oidc.Provider
	oauth2.Config
}

const SIGNUP_FLOW = "signup"
const SIGNIN_FLOW = "login"

func NewAuth() (*Authenticator, error) {
	auth := C.GetOIDCInfo()
	provider, err := oidc.NewProvider(context.Background(), auth.IssuerURL)
	if err != nil {
		return nil, err
	}

	conf := oauth2.Config{
		ClientID:     auth.ClientID,
		ClientSecret: auth.ClientSecret,
		RedirectURL:  auth.CallbackURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}

	return &Authenticator{
		Provider: provider,
		Config:   conf,
	}, nil
}

func (a *Authenticator) verifyIDToken(ctx context.Context, token *oauth2.Token) (*oidc.IDToken, error) {
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, errors.New("no id_token field in oauth2 token")
	}

	oidcConfig := &oidc.Config{
		ClientID: a.ClientID,
	}

	return a.Verifier(oidcConfig).Verify(ctx, rawIDToken)
}

// ExternalAuthentication kicks off the provider redirect for the given
// flow. A signup link may carry an invitation token; it is parked in the
// session so the callback can mark the invitation accepted.
func ExternalAuthentication(auth *Authenticator, flow string) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := generateRandomState(flow)
		if err != nil {
			log.WithError(err).Error("Failed to generate random state")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		err = session.GetSessionStore().SetValue(c, C.GetOIDCStateCookieName(), state)
		if err != nil {
			log.WithError(err).Error(err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set state cookie"})
			return
		}

		if invitationToken := c.Query("invitation"); invitationToken != "" && flow == SIGNUP_FLOW {
			err = session.GetSessionStore().SetValue(c, C.GetOIDCInviteCookieName(), invitationToken)
			if err != nil {
				log.WithError(err).Error("Failed to set invitation cookie")
			}
		}

		c.Redirect(http.StatusTemporaryRedirect, auth.AuthCodeURL(state))
	}
}

func CallbackHandler(auth *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := session.GetSessionStore().GetValueAsString(c, C.GetOIDCStateCookieName())
		if state == "" {
			log.Error("Error in oidc callback handler, No State")
			c.Redirect(http.StatusPermanentRedirect, buildRedirectURL("", "NO_STATE"))
			return
		}

		if state != c.Query("state") {
			log.Error("Error in oidc callback handler, Invalid State")
			c.Redirect(http.StatusPermanentRedirect, buildRedirectURL("", "INVALID_STATE"))
			return
		}

		err := session.GetSessionStore().DeleteValue(c, C.GetOIDCStateCookieName())
		if err != nil {
			log.WithError(err).Error("Error in oidc callback handler, Session Error")
			c.Redirect(http.StatusPermanentRedirect, buildRedirectURL("", "SESSION_ERROR"))
			return
		}

		token, err := auth.Exchange(c.Request.Context(), c.Query("code"))
		if err != nil {
			log.WithError(err).Error("Error in oidc callback handler, Token Exchange Error")
			c.Redirect(http.StatusPermanentRedirect, buildRedirectURL("", "TOKEN_ERROR"))
			return
		}

		idToken, err := auth.verifyIDToken(c.Request.Context(), token)
		if err != nil {
			log.WithError(err).Error("Error in oidc callback handler, Token ID verification Error")
			c.Redirect(http.StatusPermanentRedirect, buildRedirectURL("", "VERIFY_ERROR"))
			return
		}

		profile := model.OIDCProfile{}
		if err := idToken.Claims(&profile); err != nil {
			log.WithError(err).Error("Error in oidc callback handler, Claims Error")
			c.Redirect(http.StatusPermanentRedirect, buildRedirectURL("", "TOKEN_ERROR"))
			return
		}

		flow, err := decodeState(state)
		if err != nil {
			log.Error("Error in oidc callback handler, Invalid State")
			c.Redirect(http.StatusPermanentRedirect, buildRedirectURL("", "INVALID_STATE"))
			return
		}
		if flow != SIGNUP_FLOW && flow != SIGNIN_FLOW {
			log.WithField("email", profile.Email).Error("Invalid Flow")
			c.Redirect(http.StatusPermanentRedirect, buildRedirectURL("", "INVALID_FLOW"))
			return
		}

		if profile.Subject == "" || !U.IsEmail(profile.Email) {
			log.WithField("email", profile.Email).Error("Failed to login, incomplete profile claims")
			c.Redirect(http.StatusPermanentRedirect, buildRedirectURL(flow, "INVALID_PROFILE"))
			return
		}

		user, errCode := store.GetStore().CreateOrUpdateUser(&model.User{
			ID:              profile.Subject,
			Email:           profile.Email,
			FirstName:       profile.FirstName,
			LastName:        profile.LastName,
			ProfileImageURL: profile.ProfileImageURL,
		})
		if errCode != http.StatusOK && errCode != http.StatusCreated {
			log.WithField("email", profile.Email).Error("Failed to upsert user on login")
			c.Redirect(http.StatusPermanentRedirect, buildRedirectURL(flow, "SERVER_ERROR"))
			return
		}

		if adminEmail := C.GetAdminLoginEmail(); adminEmail != "" &&
			strings.EqualFold(user.Email, adminEmail) && user.Role != model.RoleAdmin {
			if errCode := store.GetStore().UpdateUserRole(user.ID, model.RoleAdmin); errCode == http.StatusAccepted {
				user.Role = model.RoleAdmin
			} else {
				log.WithField("email", user.Email).Error("Failed to bootstrap admin role")
			}
		}

		acceptPendingInvitation(c, user)

		ts := time.Now().UTC()
		errCode = store.GetStore().UpdateUserLastLoginInfo(user.ID, ts)
		if errCode != http.StatusAccepted {
			log.WithField("email", user.Email).Error("Failed to update user lastLoginInfo")
			c.Redirect(http.StatusPermanentRedirect, buildRedirectURL(flow, "SERVER_ERROR"))
			return
		}

		cookieData, err := helpers.GetAuthData(user.Email, user.ID,
			C.GetAuthCookieSecret(), helpers.SecondsInOneMonth*time.Second)
		if err != nil {
			log.WithField("email", user.Email).Error("Failed in oidc callback, Failed to generate cookie data")
			c.Redirect(http.StatusPermanentRedirect, buildRedirectURL(flow, "SERVER_ERROR"))
			return
		}

		domain := C.GetCookieDomain()
		c.SetCookie(C.GetQuotingCookieName(), cookieData, helpers.SecondsInOneMonth,
			"/", domain, C.UseSecureCookie(), C.UseHTTPOnlyCookie())
		c.Redirect(http.StatusPermanentRedirect, buildRedirectURL("", ""))
	}
}

// acceptPendingInvitation consumes an invitation token parked by the
// signup redirect, if any. Failure never blocks the login.
func acceptPendingInvitation(c *gin.Context, user *model.User) {
	invitationToken := session.GetSessionStore().GetValueAsString(c, C.GetOIDCInviteCookieName())
	if invitationToken == "" {
		return
	}
	if err := session.GetSessionStore().DeleteValue(c, C.GetOIDCInviteCookieName()); err != nil {
		log.WithError(err).Error("Failed to clear invitation cookie")
	}

	invitation, errCode := store.GetStore().GetPartnerInvitationByToken(invitationToken)
	if errCode != http.StatusFound {
		log.WithField("email", user.Email).Error("Invitation token from signup not found")
		return
	}

	errCode = store.GetStore().AcceptPartnerInvitation(invitationToken, user.ID, time.Now().UTC())
	if errCode != http.StatusAccepted {
		log.WithField("email", user.Email).WithField("err_code", errCode).
			Error("Failed to accept invitation on signup")
		return
	}

	store.GetStore().TrackSignupEvent(&model.SignupAnalytics{
		EventType:    model.EventInvitationAccepted,
		Email:        user.Email,
		InvitationID: &invitation.ID,
		UserID:       user.ID,
	})
}

// SignOutHandler expires the auth cookie.
func SignOutHandler(c *gin.Context) {
	domain := C.GetCookieDomain()
	c.SetCookie(C.GetQuotingCookieName(), "", helpers.ExpireCookie,
		"/", domain, C.UseSecureCookie(), C.UseHTTPOnlyCookie())
	c.JSON(http.StatusOK, gin.H{"status": "signed_out"})
}

// GetLoggedInUserHandler returns the authenticated user along with their
// organization, when one has been registered.
func GetLoggedInUserHandler(c *gin.Context) {
	userID := U.GetScopeByKeyAsString(c, mid.SCOPE_LOGGEDIN_USER_ID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized."})
		return
	}

	user, errCode := store.GetStore().GetUserByID(userID)
	if errCode != http.StatusFound {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized."})
		return
	}

	resp := gin.H{"user": user}
	if organization, errCode := store.GetStore().GetOrganizationByUserID(userID); errCode == http.StatusFound {
		resp["organization"] = organization
	}
	c.JSON(http.StatusOK, resp)
}

func generateRandomState(flow string) (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	copy(b, flow+"|")
	state := base64.StdEncoding.EncodeToString(b)

	return state, nil
}

func decodeState(state string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(state)
	if err != nil {
		return "", err
	}
	return strings.Split(string(decoded), "|")[0], nil
}

func buildRedirectURL(flow string, errMsg string) string {
	u := url.URL{
		Scheme: strings.TrimSuffix(C.GetProtocol(), "://"),
		Host:   C.GetAPPDomain(),
		Path:   flow,
	}
	if errMsg != "" {
		q := u.Query()
		q.Set("error", errMsg)
		u.RawQuery = q.Encode()
	}
	return u.String()
}
