package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	C "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/handler/helpers"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/model"
	U "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SetLoggedInUser())
	r.GET("/api/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func TestSetLoggedInUserMissingCookie(t *testing.T) {
	r := protectedRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/ping", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSetLoggedInUserGarbageCookie(t *testing.T) {
	r := protectedRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/ping", nil)
	req.AddCookie(&http.Cookie{Name: C.GetQuotingCookieName(), Value: "not-an-auth-cookie"})
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSetLoggedInUserTamperedCookie(t *testing.T) {
	C.InitConf(&C.Configuration{AuthCookieSecret: "ffffffffffffffffffffffffffffffff"})

	// Cookie issued with a different key than the server verifies with.
	cookieData, err := helpers.GetAuthData("partner@example.com", "auth0|abc123",
		"0123456789abcdef0123456789abcdef", time.Hour)
	assert.Nil(t, err)

	r := protectedRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/ping", nil)
	req.AddCookie(&http.Cookie{Name: C.GetQuotingCookieName(), Value: cookieData})
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func roleRouter(role string) *gin.Engine {
	user := &model.User{ID: "auth0|abc123", Role: role}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		U.SetScope(c, SCOPE_LOGGEDIN_USER_ID, user.ID)
		U.SetScope(c, SCOPE_LOGGEDIN_IS_ADMIN, user.CanManagePartners())
		U.SetScope(c, SCOPE_LOGGEDIN_CAN_VIEW_RECORDS, user.CanViewAllRecords())
		c.Next()
	})
	r.GET("/admin/records", RequireRecordsViewer(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/admin/manage", RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func TestRequireAdmin(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/manage", nil)
	roleRouter(model.RoleAdmin).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Hidden, not forbidden.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/admin/manage", nil)
	roleRouter(model.RolePartner).ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/admin/manage", nil)
	roleRouter(model.RoleSalesExecutive).ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequireRecordsViewer(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/records", nil)
	roleRouter(model.RoleAdmin).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/admin/records", nil)
	roleRouter(model.RoleSalesExecutive).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/admin/records", nil)
	roleRouter(model.RolePartner).ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
