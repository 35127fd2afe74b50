package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/model"

	"github.com/stretchr/testify/assert"
)

func sampleQuote() (*model.Quote, *model.Assessment, *model.Organization) {
	quote := &model.Quote{
		ID:                 42,
		AssessmentID:       7,
		OrganizationID:     3,
		UserID:             "auth0|abc",
		Status:             model.QuoteStatusPending,
		SurveyHours:        2,
		InstallationHours:  6.5,
		ConfigurationHours: 1.5,
		LaborHoldHours:     4,
		HourlyRate:         model.HourlyRate,
		LaborCost:          1900,
		HardwareCost:       215,
		LaborHoldCost:      760,
		TotalCost:          2875,
		CreatedAt:          time.Date(2024, 3, 11, 15, 4, 5, 0, time.UTC),
	}
	assessment := &model.Assessment{
		ID:                  7,
		ServiceType:         model.ServiceTypeFixedWireless,
		CustomerFirstName:   "Dana",
		CustomerLastName:    "Whitfield",
		CustomerCompanyName: "Acme Logistics",
		CustomerEmail:       "dana@acmelogistics.example",
		SiteAddress:         "500 Dock St",
		SiteCity:            "Tacoma",
		SiteState:           "WA",
		SiteZip:             "98402",
	}
	organization := &model.Organization{
		ID:          3,
		CompanyName: "Northwest Connectivity Partners",
	}
	return quote, assessment, organization
}

func TestRenderQuoteProducesPdf(t *testing.T) {
	quote, assessment, organization := sampleQuote()

	data, err := RenderQuote(quote, assessment, organization)
	assert.Nil(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.True(t, bytes.Contains(data, []byte("NXT-000042")))
	assert.True(t, bytes.Contains(data, []byte("Acme Logistics")))
	assert.True(t, bytes.Contains(data, []byte("$2875.00")))
}

func TestRenderQuoteSkipsRemovalRowWhenZero(t *testing.T) {
	quote, assessment, organization := sampleQuote()
	quote.RemovalHours = 0

	data, err := RenderQuote(quote, assessment, organization)
	assert.Nil(t, err)
	assert.False(t, bytes.Contains(data, []byte("Legacy equipment removal")))

	quote.RemovalHours = 2
	data, err = RenderQuote(quote, assessment, organization)
	assert.Nil(t, err)
	assert.True(t, bytes.Contains(data, []byte("Legacy equipment removal")))
}

func TestHoursFormatting(t *testing.T) {
	assert.Equal(t, "2", hours(2))
	assert.Equal(t, "6.5", hours(6.5))
	assert.Equal(t, "0.25", hours(0.25))
	assert.Equal(t, "12.5", hours(12.5))
}

func TestServiceTypeLabel(t *testing.T) {
	assert.Equal(t, "Fleet Tracking Installation", serviceTypeLabel(model.ServiceTypeFleetTracking))
	assert.Equal(t, "Fleet Camera Installation", serviceTypeLabel(model.ServiceTypeFleetCamera))
	assert.Equal(t, "custom", serviceTypeLabel("custom"))
}

func TestRenderAssessmentReportOmitsEmptyAnswers(t *testing.T) {
	_, assessment, organization := sampleQuote()
	assessment.DeviceCount = 12
	assessment.SignalStrength = model.SignalStrengthThreeBars
	assessment.Notes = "Roof access requires an escort."

	data, err := RenderAssessmentReport(assessment, organization)
	assert.Nil(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.True(t, bytes.Contains(data, []byte("Device count")))
	assert.True(t, bytes.Contains(data, []byte("Roof access requires an escort.")))
	assert.False(t, bytes.Contains(data, []byte("Cable footage")))
	assert.False(t, bytes.Contains(data, []byte("Vehicle count")))
}

func TestRenderAssessmentReportFleetSections(t *testing.T) {
	_, assessment, organization := sampleQuote()
	assessment.ServiceType = model.ServiceTypeFleetTracking
	assessment.VehicleCount = 14
	assessment.TrackerType = "obd-ii"

	data, err := RenderAssessmentReport(assessment, organization)
	assert.Nil(t, err)
	assert.True(t, bytes.Contains(data, []byte("Vehicle count")))
	assert.False(t, bytes.Contains(data, []byte("Signal strength")))
}
