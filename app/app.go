package main

import (
	"flag"
	"strconv"

	C "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"
	H "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/handler"
	mid "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/middleware"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ./app --env=development --api_domain=localhost:8080 --app_domain=localhost:3000 --api_http_port=8080 --db_host=localhost --db_port=5432 --db_user=nxtkonekt --db_name=nxtkonekt --db_pass=nxtkonekt --db_migrate --email_sender=quotes@nxtkonekt.com
func main() {

	env := flag.String("env", "development", "")
	port := flag.Int("api_http_port", 8080, "")

	dbHost := flag.String("db_host", "localhost", "")
	dbPort := flag.Int("db_port", 5432, "")
	dbUser := flag.String("db_user", "nxtkonekt", "")
	dbName := flag.String("db_name", "nxtkonekt", "")
	dbPass := flag.String("db_pass", "nxtkonekt", "")
	dbMigrate := flag.Bool("db_migrate", false, "Auto migrate the schema on startup")

	redisHost := flag.String("redis_host", "localhost", "")
	redisPort := flag.Int("redis_port", 6379, "")

	apiDomain := flag.String("api_domain", "localhost:8080", "")
	appDomain := flag.String("app_domain", "localhost:3000", "")

	sessionStore := flag.String("session_store", "cookie", "Session store backend. cookie or redis.")
	sessionStoreSecret := flag.String("session_store_secret", "dev-only-session-secret", "")
	authCookieSecret := flag.String("auth_cookie_secret",
		"dev-only-cookie-secret-32-bytes!", "32 byte key for the auth cookie")

	oidcIssuerURL := flag.String("oidc_issuer_url", "", "OIDC provider issuer URL")
	oidcClientID := flag.String("oidc_client_id", "", "")
	oidcClientSecret := flag.String("oidc_client_secret", "", "")
	oidcCallbackURL := flag.String("oidc_callback_url", "", "Registered callback. Empty derives it from api_domain.")

	hubspotAPIToken := flag.String("hubspot_api_token", "", "Private app token. Empty disables the sync.")
	hubspotAPIBaseURL := flag.String("hubspot_api_base_url", "", "Override for testing.")

	smtpHost := flag.String("smtp_host", "", "Empty disables outbound email.")
	smtpPort := flag.Int("smtp_port", 587, "")
	smtpUser := flag.String("smtp_user", "", "")
	smtpPassword := flag.String("smtp_password", "", "")
	emailSender := flag.String("email_sender", "quotes@nxtkonekt.com", "")

	awsRegion := flag.String("aws_region", "us-east-1", "")
	awsAccessKeyId := flag.String("aws_key", "", "Empty uses the SDK default credential chain.")
	awsSecretAccessKey := flag.String("aws_secret", "", "")
	bucketName := flag.String("bucket_name", "", "S3 bucket for uploads and PDFs. Empty uses local disk.")
	diskDir := flag.String("disk_dir", "/usr/local/var/nxtkonekt/files", "Local file store root")

	sentryDSN := flag.String("sentry_dsn", "", "Sentry DSN")

	adminLoginEmail := flag.String("admin_login_email", "", "Email granted the admin role on first login")

	flag.Parse()

	config := &C.Configuration{
		AppName: "quoting_app_server",
		Env:     *env,
		Port:    *port,
		DBInfo: C.DBConf{
			Host:     *dbHost,
			Port:     *dbPort,
			User:     *dbUser,
			Name:     *dbName,
			Password: *dbPass,
		},
		DBMigrate:          *dbMigrate,
		APIDomain:          *apiDomain,
		APPDomain:          *appDomain,
		RedisHost:          *redisHost,
		RedisPort:          *redisPort,
		SessionStore:       *sessionStore,
		SessionStoreSecret: *sessionStoreSecret,
		AuthCookieSecret:   *authCookieSecret,
		OIDCIssuerURL:      *oidcIssuerURL,
		OIDCClientID:       *oidcClientID,
		OIDCClientSecret:   *oidcClientSecret,
		OIDCCallbackURL:    *oidcCallbackURL,
		HubspotAPIToken:    *hubspotAPIToken,
		HubspotAPIBaseURL:  *hubspotAPIBaseURL,
		SMTPHost:           *smtpHost,
		SMTPPort:           *smtpPort,
		SMTPUser:           *smtpUser,
		SMTPPassword:       *smtpPassword,
		EmailSender:        *emailSender,
		AWSRegion:          *awsRegion,
		AWSKey:             *awsAccessKeyId,
		AWSSecret:          *awsSecretAccessKey,
		BucketName:         *bucketName,
		DiskDir:            *diskDir,
		SentryDSN:          *sentryDSN,
		AdminLoginEmail:    *adminLoginEmail,
	}

	// Initialize configs and connections.
	err := C.Init(config)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize.")
		return
	}

	if !C.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	defer C.SafeFlushSentryHook()

	r := gin.New()
	r.Use(mid.AddSecurityHeadersForAppRoutes())
	r.Use(mid.CustomCors())
	r.Use(mid.RequestIdGenerator())
	r.Use(mid.Logger())
	r.Use(mid.Recovery())

	// Initialize routes.
	H.InitAppRoutes(r)
	r.Run(":" + strconv.Itoa(C.GetConfig().Port))
}
