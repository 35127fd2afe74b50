package redis

import (
	C "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

type Redis struct{}

func (rs *Redis) InitSessionStore(r *gin.Engine) error {
	store, err := redis.NewStore(10, "tcp", C.GetRedisHostAndPort(), "",
		[]byte(C.GetSessionStoreSecret()))
	if err != nil {
		return err
	}
	store.Options(sessions.Options{
		MaxAge:   600,
		Path:     "/",
		HttpOnly: true,
		Secure:   C.UseSecureCookie(),
	})
	r.Use(sessions.Sessions("session", store))
	return nil
}

func (rs *Redis) GetValueAsString(c *gin.Context, key string) string {
	session := sessions.Default(c)
	v := session.Get(key)
	if v == nil {
		return ""
	}
	return v.(string)
}

func (rs *Redis) SetValue(c *gin.Context, key string, value string) error {
	session := sessions.Default(c)
	session.Set(key, value)
	return session.Save()
}

func (rs *Redis) DeleteValue(c *gin.Context, key string) error {
	session := sessions.Default(c)
	session.Delete(key)
	return session.Save()
}
