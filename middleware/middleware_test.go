package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	U "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequestIdGenerator(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIdGenerator())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, U.GetScopeByKeyAsString(c, SCOPE_REQ_ID))
	})

	w1 := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	r.ServeHTTP(w1, req)
	assert.NotEmpty(t, w1.Body.String())

	w2 := httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/ping", nil)
	r.ServeHTTP(w2, req)
	assert.NotEqual(t, w1.Body.String(), w2.Body.String())
}

func TestAddSecurityHeadersForAppRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AddSecurityHeadersForAppRoutes())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
