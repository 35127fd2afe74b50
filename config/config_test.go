package config

import (
	"os"
	"testing"
)

func TestGetCookieDomain(t *testing.T) {
	tests := []struct {
		name      string
		apiDomain string
		want      string
	}{
		{"with_port", "localhost:8080", "localhost"},
		{"without_port", "api.nxtkonekt.com", "api.nxtkonekt.com"},
		{"with_standard_port", "api.nxtkonekt.com:443", "api.nxtkonekt.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configuration = &Configuration{APIDomain: tt.apiDomain}
			if got := GetCookieDomain(); got != tt.want {
				t.Errorf("GetCookieDomain() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetProtocol(t *testing.T) {
	configuration = &Configuration{Env: DEVELOPMENT}
	if got := GetProtocol(); got != "http://" {
		t.Errorf("GetProtocol() = %v, want http:// on development", got)
	}

	configuration = &Configuration{Env: PRODUCTION}
	if got := GetProtocol(); got != "https://" {
		t.Errorf("GetProtocol() = %v, want https:// on production", got)
	}
}

func TestGetSessionStoreDefaultsToCookie(t *testing.T) {
	configuration = &Configuration{}
	if got := GetSessionStore(); got != "cookie" {
		t.Errorf("GetSessionStore() = %v, want cookie", got)
	}

	configuration = &Configuration{SessionStore: "redis"}
	if got := GetSessionStore(); got != "redis" {
		t.Errorf("GetSessionStore() = %v, want redis", got)
	}
}

func TestGetHubspotAPIBaseURLDefault(t *testing.T) {
	configuration = &Configuration{}
	if got := GetHubspotAPIBaseURL(); got != "https://api.hubapi.com" {
		t.Errorf("GetHubspotAPIBaseURL() = %v, want default hubapi url", got)
	}

	configuration = &Configuration{HubspotAPIBaseURL: "http://127.0.0.1:9999"}
	if got := GetHubspotAPIBaseURL(); got != "http://127.0.0.1:9999" {
		t.Errorf("GetHubspotAPIBaseURL() = %v, want override", got)
	}
}

func TestApplySecretsFromEnv(t *testing.T) {
	os.Setenv("NXTQ_HUBSPOT_API_TOKEN", "env-token")
	os.Setenv("NXTQ_DB_PASSWORD", "env-pass")
	defer os.Unsetenv("NXTQ_HUBSPOT_API_TOKEN")
	defer os.Unsetenv("NXTQ_DB_PASSWORD")

	config := &Configuration{}
	applySecretsFromEnv(config)
	if config.HubspotAPIToken != "env-token" {
		t.Errorf("HubspotAPIToken = %v, want env-token", config.HubspotAPIToken)
	}
	if config.DBInfo.Password != "env-pass" {
		t.Errorf("DBInfo.Password = %v, want env-pass", config.DBInfo.Password)
	}

	// Flag value wins over the environment.
	config = &Configuration{HubspotAPIToken: "flag-token"}
	applySecretsFromEnv(config)
	if config.HubspotAPIToken != "flag-token" {
		t.Errorf("HubspotAPIToken = %v, want flag-token", config.HubspotAPIToken)
	}
}
