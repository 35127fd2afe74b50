package handler

import (
	"testing"

	C "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRandomStateEncodesFlow(t *testing.T) {
	state, err := generateRandomState(SIGNUP_FLOW)
	assert.Nil(t, err)

	flow, err := decodeState(state)
	assert.Nil(t, err)
	assert.Equal(t, SIGNUP_FLOW, flow)

	state, err = generateRandomState(SIGNIN_FLOW)
	assert.Nil(t, err)
	flow, err = decodeState(state)
	assert.Nil(t, err)
	assert.Equal(t, SIGNIN_FLOW, flow)
}

func TestGenerateRandomStateIsUnique(t *testing.T) {
	state1, err := generateRandomState(SIGNIN_FLOW)
	assert.Nil(t, err)
	state2, err := generateRandomState(SIGNIN_FLOW)
	assert.Nil(t, err)
	assert.NotEqual(t, state1, state2)
}

func TestDecodeStateRejectsGarbage(t *testing.T) {
	_, err := decodeState("%%%not-base64%%%")
	assert.NotNil(t, err)
}

func TestBuildRedirectURL(t *testing.T) {
	C.InitConf(&C.Configuration{Env: C.DEVELOPMENT, APPDomain: "localhost:3000"})

	assert.Equal(t, "http://localhost:3000", buildRedirectURL("", ""))
	assert.Equal(t, "http://localhost:3000/signup?error=INVALID_PROFILE",
		buildRedirectURL(SIGNUP_FLOW, "INVALID_PROFILE"))
	assert.Equal(t, "http://localhost:3000/login?error=NO_STATE",
		buildRedirectURL(SIGNIN_FLOW, "NO_STATE"))
}
