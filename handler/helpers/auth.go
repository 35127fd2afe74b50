package helpers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	C "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"

	"github.com/gorilla/securecookie"
)

const (
	SecondsInOneDay      = 86400
	SecondsInFifteenDays = SecondsInOneDay * 15
	SecondsInOneMonth    = SecondsInOneDay * 30
	ExpireCookie         = -1
)

var (
	ErrExpired = errors.New("expired")
)

// ProtectedFields is the encrypted part of the auth cookie. Everything a
// request may trust has to live here, the outer AuthData is plain base64.
type ProtectedFields struct {
	Email string `json:"e"`
	ExpAt int64  `json:"exp"`
}

type AuthData struct {
	UserID          string `json:"uid"`
	ProtectedFields string `json:"pf"`
}

// GetAuthData builds the auth cookie value issued after the OIDC callback.
// The key must be 32 bytes, it doubles as the securecookie block key.
func GetAuthData(email, userID, key string, dur time.Duration) (string, error) {

	if email == "" || userID == "" || key == "" {
		return "", errors.New("missing params")
	}

	pf := ProtectedFields{Email: email, ExpAt: time.Now().UTC().Add(dur).Unix()}

	encPfBytes, err := createSecureData([]byte(key), pf)
	if err != nil {
		return "", err
	}

	ad := AuthData{
		UserID:          userID,
		ProtectedFields: string(encPfBytes),
	}

	adBytes, err := json.Marshal(ad)
	if err != nil {
		return "", err
	}

	return base64.URLEncoding.EncodeToString(adBytes), nil
}

func ParseAuthData(data string) (*AuthData, error) {

	if data == "" {
		return nil, errors.New("missing params")
	}

	decode, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		return nil, err
	}

	ad := AuthData{}
	if err = json.Unmarshal(decode, &ad); err != nil {
		return nil, err
	}

	return &ad, nil
}

// ParseAndDecryptProtectedFields verifies the encrypted part of the cookie
// and answers the email it was issued for. The second return names the
// failure class for logging.
func ParseAndDecryptProtectedFields(key string, protectedFields string) (string, string, error) {
	pf, err := decodeSecureData([]byte(key), protectedFields)
	if err != nil {
		return "", "Tampering", err
	}

	now := time.Now().UTC().Unix()

	if now > pf.ExpAt {
		return "", "ExpiredKey", ErrExpired
	}
	return pf.Email, "", nil
}

func createSecureData(key []byte, pf ProtectedFields) (string, error) {
	s := securecookie.New(key, key)
	s = s.SetSerializer(securecookie.JSONEncoder{})
	str, er := s.Encode(C.GetQuotingCookieName(), pf)
	return str, er
}

func decodeSecureData(key []byte, value string) (ProtectedFields, error) {
	s := securecookie.New(key, key)
	s = s.SetSerializer(securecookie.JSONEncoder{})
	pf := ProtectedFields{}
	err := s.Decode(C.GetQuotingCookieName(), value, &pf)
	return pf, err
}
