package store

import (
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/session"
	cookieStore "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/session/store/cookie"
	redisStore "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/session/store/redis"
)

func GetSessionStore() session.Session {
	var store session.Session
	if st := config.GetSessionStore(); st == "cookie" {
		store = &cookieStore.Cookie{}
	} else if st == "redis" {
		store = &redisStore.Redis{}
	}
	return store
}
