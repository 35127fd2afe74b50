package session

import "github.com/gin-gonic/gin"

// Session carries short-lived values across the OIDC redirect dance. Backed
// by an encrypted cookie by default, redis when configured.
type Session interface {
	InitSessionStore(r *gin.Engine) error
	GetValueAsString(c *gin.Context, key string) string
	SetValue(c *gin.Context, key string, value string) error
	DeleteValue(c *gin.Context, key string) error
}
