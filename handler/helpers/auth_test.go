package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testCookieKey = "0123456789abcdef0123456789abcdef"

func TestAuthDataRoundTrip(t *testing.T) {
	cookieData, err := GetAuthData("partner@example.com", "auth0|abc123", testCookieKey,
		SecondsInOneMonth*time.Second)
	assert.Nil(t, err)
	assert.NotEmpty(t, cookieData)

	authData, err := ParseAuthData(cookieData)
	assert.Nil(t, err)
	assert.Equal(t, "auth0|abc123", authData.UserID)

	email, errType, err := ParseAndDecryptProtectedFields(testCookieKey, authData.ProtectedFields)
	assert.Nil(t, err)
	assert.Empty(t, errType)
	assert.Equal(t, "partner@example.com", email)
}

func TestAuthDataMissingParams(t *testing.T) {
	_, err := GetAuthData("", "auth0|abc123", testCookieKey, time.Hour)
	assert.NotNil(t, err)

	_, err = GetAuthData("partner@example.com", "", testCookieKey, time.Hour)
	assert.NotNil(t, err)

	_, err = ParseAuthData("")
	assert.NotNil(t, err)
}

func TestAuthDataExpired(t *testing.T) {
	cookieData, err := GetAuthData("partner@example.com", "auth0|abc123", testCookieKey,
		-1*time.Minute)
	assert.Nil(t, err)

	authData, err := ParseAuthData(cookieData)
	assert.Nil(t, err)

	_, errType, err := ParseAndDecryptProtectedFields(testCookieKey, authData.ProtectedFields)
	assert.Equal(t, ErrExpired, err)
	assert.Equal(t, "ExpiredKey", errType)
}

func TestAuthDataWrongKey(t *testing.T) {
	cookieData, err := GetAuthData("partner@example.com", "auth0|abc123", testCookieKey,
		time.Hour)
	assert.Nil(t, err)

	authData, err := ParseAuthData(cookieData)
	assert.Nil(t, err)

	otherKey := "ffffffffffffffffffffffffffffffff"
	_, errType, err := ParseAndDecryptProtectedFields(otherKey, authData.ProtectedFields)
	assert.NotNil(t, err)
	assert.Equal(t, "Tampering", errType)
}

func TestParseAuthDataGarbage(t *testing.T) {
	_, err := ParseAuthData("not-base64!!!")
	assert.NotNil(t, err)

	_, err = ParseAuthData("bm90LWpzb24")
	assert.NotNil(t, err)
}
