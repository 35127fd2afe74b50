package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/filestore"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/interfaces/maileriface"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/model"
	serviceDisk "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/services/disk"
	serviceMail "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/services/mail"
	serviceS3 "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/services/s3"

	"github.com/evalphobia/logrus_sentry"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

var initiated bool = false

const DEVELOPMENT = "development"
const STAGING = "staging"
const PRODUCTION = "production"

// envPrefix scopes the environment variables read for secrets, e.g.
// NXTQ_DB_PASSWORD.
const envPrefix = "nxtq"

type DBConf struct {
	Host     string
	Port     int
	User     string
	Name     string
	Password string
}

type OIDCInfo struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

type Configuration struct {
	AppName string
	Env     string
	Port    int

	DBInfo    DBConf
	DBMigrate bool

	APIDomain string
	APPDomain string

	RedisHost string
	RedisPort int

	SessionStore       string
	SessionStoreSecret string

	// AuthCookieSecret keys the securecookie payload of the login cookie.
	AuthCookieSecret string

	OIDCIssuerURL    string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCCallbackURL  string

	HubspotAPIToken   string
	HubspotAPIBaseURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	EmailSender  string

	AWSRegion  string
	AWSKey     string
	AWSSecret  string
	BucketName string
	DiskDir    string

	SentryDSN string

	// AdminLoginEmail gets the admin role on first login. Bootstrap for a
	// fresh install; later role changes go through the admin API.
	AdminLoginEmail string
}

// secretsConf mirrors the Configuration fields that should come from the
// environment instead of flags on shared boxes.
type secretsConf struct {
	DBPassword         string `envconfig:"db_password"`
	SessionStoreSecret string `envconfig:"session_store_secret"`
	AuthCookieSecret   string `envconfig:"auth_cookie_secret"`
	OIDCClientSecret   string `envconfig:"oidc_client_secret"`
	HubspotAPIToken    string `envconfig:"hubspot_api_token"`
	SMTPPassword       string `envconfig:"smtp_password"`
	AWSKey             string `envconfig:"aws_key"`
	AWSSecret          string `envconfig:"aws_secret"`
	SentryDSN          string `envconfig:"sentry_dsn"`
}

type Services struct {
	Db          *gorm.DB
	Mailer      maileriface.Mailer
	FileManager filestore.FileManager
}

var configuration *Configuration = nil
var services *Services = nil
var sentryHook *logrus_sentry.SentryHook = nil

// InitConf sets the configuration and overlays secrets from the
// environment. Flag values win when both are present.
func InitConf(config *Configuration) {
	configuration = config
	applySecretsFromEnv(configuration)
}

func applySecretsFromEnv(config *Configuration) {
	var secrets secretsConf
	if err := envconfig.Process(envPrefix, &secrets); err != nil {
		log.WithError(err).Error("Failed to process secrets from environment.")
		return
	}

	if config.DBInfo.Password == "" {
		config.DBInfo.Password = secrets.DBPassword
	}
	if config.SessionStoreSecret == "" {
		config.SessionStoreSecret = secrets.SessionStoreSecret
	}
	if config.AuthCookieSecret == "" {
		config.AuthCookieSecret = secrets.AuthCookieSecret
	}
	if config.OIDCClientSecret == "" {
		config.OIDCClientSecret = secrets.OIDCClientSecret
	}
	if config.HubspotAPIToken == "" {
		config.HubspotAPIToken = secrets.HubspotAPIToken
	}
	if config.SMTPPassword == "" {
		config.SMTPPassword = secrets.SMTPPassword
	}
	if config.AWSKey == "" {
		config.AWSKey = secrets.AWSKey
	}
	if config.AWSSecret == "" {
		config.AWSSecret = secrets.AWSSecret
	}
	if config.SentryDSN == "" {
		config.SentryDSN = secrets.SentryDSN
	}
}

func initLogging() {
	// Log as JSON instead of the default ASCII formatter.
	log.SetFormatter(&log.JSONFormatter{})

	if IsDevelopment() {
		log.SetLevel(log.DebugLevel)
	}
}

// InitSentryLogging hooks error and above logs to sentry. No-op without a
// DSN, so development boxes run without it.
func InitSentryLogging(dsn, appName string) {
	if dsn == "" {
		log.Warn("Sentry DSN not given. Skipped initializing sentry hook.")
		return
	}

	hook, err := logrus_sentry.NewSentryHook(dsn, []log.Level{
		log.PanicLevel,
		log.FatalLevel,
		log.ErrorLevel,
	})
	if err != nil {
		log.WithError(err).Error("Failed to initialize sentry hook.")
		return
	}

	hook.SetTagsContext(map[string]string{"app_name": appName, "env": configuration.Env})
	hook.StacktraceConfiguration.Enable = true
	hook.Timeout = 1 * time.Second

	log.AddHook(hook)
	sentryHook = hook
}

// SafeFlushSentryHook drains buffered sentry events. Deferred on main.
func SafeFlushSentryHook() {
	if sentryHook != nil {
		sentryHook.Flush()
	}
}

func initDB(config *Configuration) error {
	db, err := gorm.Open("postgres", fmt.Sprintf(
		"host=%s port=%d user=%s dbname=%s password=%s sslmode=disable",
		config.DBInfo.Host,
		config.DBInfo.Port,
		config.DBInfo.User,
		config.DBInfo.Name,
		config.DBInfo.Password))
	if err != nil {
		log.WithFields(log.Fields{"err": err}).Error("Failed Db Initialization")
		return err
	}

	// Connection Pooling and Logging.
	db.DB().SetMaxIdleConns(10)
	db.DB().SetMaxOpenConns(100)
	db.LogMode(IsDevelopment())

	if config.DBMigrate {
		if err := autoMigrate(db); err != nil {
			return err
		}
	}

	services.Db = db
	log.Info("Db Service initialized")
	return nil
}

func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Organization{},
		&model.Assessment{},
		&model.Quote{},
		&model.UploadedFile{},
		&model.PartnerInvitation{},
		&model.SignupAnalytics{},
	).Error
	if err != nil {
		log.WithError(err).Error("Failed to auto migrate schema.")
		return err
	}
	log.Info("Schema migration completed")
	return nil
}

func initMailClient(config *Configuration) {
	if config.SMTPHost == "" {
		log.Warn("SMTP not configured. Using dummy mailer.")
		services.Mailer = serviceMail.NewDummyMailer()
		return
	}
	services.Mailer = serviceMail.New(config.SMTPHost, config.SMTPPort,
		config.SMTPUser, config.SMTPPassword)
	log.Info("Mail Service initialized")
}

func initFilestore(config *Configuration) {
	if IsDevelopment() || config.BucketName == "" {
		services.FileManager = serviceDisk.New(config.DiskDir)
		log.WithField("base_dir", config.DiskDir).Info("Disk filestore initialized")
		return
	}
	services.FileManager = serviceS3.New(config.BucketName, config.AWSRegion,
		config.AWSKey, config.AWSSecret)
	log.WithField("bucket", config.BucketName).Info("S3 filestore initialized")
}

// Init initializes configs and connections for the app server.
func Init(config *Configuration) error {
	if initiated {
		return fmt.Errorf("config already initialized")
	}

	InitConf(config)
	initLogging()
	InitSentryLogging(configuration.SentryDSN, configuration.AppName)

	services = &Services{}
	if err := initDB(configuration); err != nil {
		return err
	}
	initMailClient(configuration)
	initFilestore(configuration)

	initiated = true
	return nil
}

func GetConfig() *Configuration {
	return configuration
}

func GetServices() *Services {
	return services
}

func IsDevelopment() bool {
	return configuration.Env == DEVELOPMENT
}

func GetProtocol() string {
	if IsDevelopment() {
		return "http://"
	}
	return "https://"
}

func GetAPIDomain() string {
	return configuration.APIDomain
}

func GetAPPDomain() string {
	return configuration.APPDomain
}

// GetCookieDomain is the API domain without the port, the form SetCookie
// expects.
func GetCookieDomain() string {
	domain := configuration.APIDomain
	if i := strings.Index(domain, ":"); i != -1 {
		domain = domain[:i]
	}
	return domain
}

func UseSecureCookie() bool {
	return !IsDevelopment()
}

func UseHTTPOnlyCookie() bool {
	return true
}

func GetQuotingCookieName() string {
	return "nxtq-sid"
}

func GetOIDCStateCookieName() string {
	return "nxtq-oidc-state"
}

// GetOIDCInviteCookieName names the session key that carries a partner
// invitation token across the provider redirect, so signup can mark the
// invitation accepted once the callback lands.
func GetOIDCInviteCookieName() string {
	return "nxtq-oidc-invite"
}

func GetAuthCookieSecret() string {
	return configuration.AuthCookieSecret
}

func GetSessionStore() string {
	if configuration.SessionStore == "" {
		return "cookie"
	}
	return configuration.SessionStore
}

func GetSessionStoreSecret() string {
	return configuration.SessionStoreSecret
}

func GetRedisHostAndPort() string {
	return fmt.Sprintf("%s:%d", configuration.RedisHost, configuration.RedisPort)
}

func GetOIDCInfo() OIDCInfo {
	callbackURL := configuration.OIDCCallbackURL
	if callbackURL == "" {
		callbackURL = GetProtocol() + GetAPIDomain() + "/auth/callback"
	}
	return OIDCInfo{
		IssuerURL:    configuration.OIDCIssuerURL,
		ClientID:     configuration.OIDCClientID,
		ClientSecret: configuration.OIDCClientSecret,
		CallbackURL:  callbackURL,
	}
}

func IsOIDCConfigured() bool {
	return configuration.OIDCIssuerURL != "" && configuration.OIDCClientID != ""
}

func GetSenderEmail() string {
	return configuration.EmailSender
}

func IsHubspotEnabled() bool {
	return configuration.HubspotAPIToken != ""
}

func GetHubspotAPIToken() string {
	return configuration.HubspotAPIToken
}

func GetHubspotAPIBaseURL() string {
	if configuration.HubspotAPIBaseURL == "" {
		return "https://api.hubapi.com"
	}
	return configuration.HubspotAPIBaseURL
}

func GetAdminLoginEmail() string {
	return configuration.AdminLoginEmail
}
