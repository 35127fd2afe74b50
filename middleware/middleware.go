package middleware

import (
	"net/http"
	"strings"
	"time"

	C "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"
	U "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/xid"
	log "github.com/sirupsen/logrus"
)

// scope constants.
const SCOPE_REQ_ID = "reqId"
const SCOPE_LOGGEDIN_USER_ID = "loggedInUserId"
const SCOPE_LOGGEDIN_IS_ADMIN = "loggedInIsAdmin"
const SCOPE_LOGGEDIN_CAN_VIEW_RECORDS = "loggedInCanViewRecords"

// cors prefix constants.
const PREFIX_PATH_PORTAL = "/portal/"

// RequestIdGenerator - Sets a unique id on the request scope for log
// correlation.
func RequestIdGenerator() gin.HandlerFunc {
	return func(c *gin.Context) {
		U.SetScope(c, SCOPE_REQ_ID, xid.New().String())
		c.Next()
	}
}

// Logger - Request log line after completion, with latency and status.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.WithFields(log.Fields{
			"reqId":   U.GetScopeByKeyAsString(c, SCOPE_REQ_ID),
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		}).Info("Processed request.")
	}
}

// Recovery - Converts handler panics into 500s instead of killing the
// process.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(log.Fields{
					"reqId": U.GetScopeByKeyAsString(c, SCOPE_REQ_ID),
					"path":  c.Request.URL.Path,
					"panic": r,
				}).Error("Recovered from panic on request.")
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					gin.H{"error": "Internal server error."})
			}
		}()
		c.Next()
	}
}

func AddSecurityHeadersForAppRoutes() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// CustomCors for customised cors configuration based on conditions.
func CustomCors() gin.HandlerFunc {
	return func(c *gin.Context) {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowCredentials = true

		if strings.HasPrefix(c.Request.URL.Path, PREFIX_PATH_PORTAL) {
			// Customer portal is linked from emails and embedded by
			// partners, so any origin may read it.
			corsConfig.AllowAllOrigins = true
			corsConfig.AllowCredentials = false
		} else if C.IsDevelopment() {
			corsConfig.AllowOrigins = []string{"http://localhost:8080", "http://localhost:3000"}
		} else {
			corsConfig.AllowOrigins = []string{C.GetProtocol() + C.GetAPPDomain()}
		}

		// Applys custom cors and proceed.
		cors.New(corsConfig)(c)
		c.Next()
	}
}
