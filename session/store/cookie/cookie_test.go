package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"

	C "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func sessionRouter(t *testing.T) *gin.Engine {
	C.InitConf(&C.Configuration{
		Env:                C.DEVELOPMENT,
		SessionStore:       "cookie",
		SessionStoreSecret: "test-session-secret",
	})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	cs := &Cookie{}
	assert.Nil(t, cs.InitSessionStore(r))

	r.GET("/set", func(c *gin.Context) {
		assert.Nil(t, cs.SetValue(c, "state", "abc123"))
		c.Status(http.StatusOK)
	})
	r.GET("/get", func(c *gin.Context) {
		c.String(http.StatusOK, cs.GetValueAsString(c, "state"))
	})
	r.GET("/delete", func(c *gin.Context) {
		assert.Nil(t, cs.DeleteValue(c, "state"))
		c.Status(http.StatusOK)
	})
	return r
}

func TestCookieSessionRoundTrip(t *testing.T) {
	r := sessionRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/set", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	assert.NotEmpty(t, cookies)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/get", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc123", w.Body.String())
}

func TestCookieSessionDelete(t *testing.T) {
	r := sessionRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/set", nil)
	r.ServeHTTP(w, req)
	cookies := w.Result().Cookies()

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/delete", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	r.ServeHTTP(w, req)
	cookies = w.Result().Cookies()

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/get", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	r.ServeHTTP(w, req)
	assert.Equal(t, "", w.Body.String())
}

func TestCookieSessionMissingKey(t *testing.T) {
	r := sessionRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/get", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, "", w.Body.String())
}
