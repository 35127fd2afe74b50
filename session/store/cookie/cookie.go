package cookie

import (
	C "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

type Cookie struct{}

func (cs *Cookie) InitSessionStore(r *gin.Engine) error {
	store := cookie.NewStore([]byte(C.GetSessionStoreSecret()))
	// Holds only the OIDC state across the redirect. Ten minutes is enough
	// to finish the provider round trip.
	store.Options(sessions.Options{
		MaxAge:   600,
		Path:     "/",
		HttpOnly: true,
		Secure:   C.UseSecureCookie(),
	})
	r.Use(sessions.Sessions("session", store))
	return nil
}

func (cs *Cookie) GetValueAsString(c *gin.Context, key string) string {
	session := sessions.Default(c)
	v := session.Get(key)
	if v == nil {
		return ""
	}
	return v.(string)
}

func (cs *Cookie) SetValue(c *gin.Context, key string, value string) error {
	session := sessions.Default(c)
	session.Set(key, value)
	return session.Save()
}

func (cs *Cookie) DeleteValue(c *gin.Context, key string) error {
	session := sessions.Default(c)
	session.Delete(key)
	return session.Save()
}
