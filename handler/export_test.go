package handler

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/model"

	"github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/stretchr/testify/assert"
)

func exportAssessment() *model.Assessment {
	completedAt := time.Date(2024, time.March, 12, 9, 30, 0, 0, time.UTC)
	return &model.Assessment{
		ID:                  340,
		ServiceType:         model.ServiceTypeFixedWireless,
		Status:              model.AssessmentStatusCompleted,
		CustomerFirstName:   "Dana",
		CustomerLastName:    "Whitfield",
		CustomerEmail:       "dana@acmelogistics.example",
		CustomerPhone:       "253-555-0144",
		CustomerCompanyName: "Acme Logistics",
		SiteCity:            "Tacoma",
		SiteState:           "WA",
		DeviceCount:         12,
		CreatedAt:           time.Date(2024, time.March, 11, 17, 4, 5, 0, time.UTC),
		CompletedAt:         &completedAt,
	}
}

func exportQuote() *model.Quote {
	return &model.Quote{
		ID:                 42,
		AssessmentID:       340,
		OrganizationID:     3,
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
		CreatedAt:          time.Date(2024, time.March, 11, 17, 10, 0, 0, time.UTC),
	}
}

func TestAssessmentExportRowMatchesHeader(t *testing.T) {
	header := assessmentExportHeader()
	row := assessmentExportRow(exportAssessment())
	assert.Equal(t, len(header), len(row))

	byColumn := make(map[string]string)
	for i := range header {
		byColumn[header[i]] = row[i]
	}
	assert.Equal(t, "340", byColumn["id"])
	assert.Equal(t, model.ServiceTypeFixedWireless, byColumn["service_type"])
	assert.Equal(t, "Acme Logistics", byColumn["customer_company"])
	assert.Equal(t, "12", byColumn["device_count"])
	assert.Equal(t, "0", byColumn["vehicle_count"])
	assert.Equal(t, "2024-03-12T09:30:00Z", byColumn["completed_at"])
}

func TestQuoteExportRowMatchesHeader(t *testing.T) {
	header := quoteExportHeader()
	row := quoteExportRow(exportQuote())
	assert.Equal(t, len(header), len(row))

	byColumn := make(map[string]string)
	for i := range header {
		byColumn[header[i]] = row[i]
	}
	assert.Equal(t, "NXT-000042", byColumn["quote_number"])
	assert.Equal(t, "190.00", byColumn["hourly_rate"])
	assert.Equal(t, "2875.00", byColumn["total_cost"])
	assert.Equal(t, "", byColumn["responded_at"])
}

func TestExportTime(t *testing.T) {
	assert.Equal(t, "", exportTime(nil))

	var zero time.Time
	assert.Equal(t, "", exportTime(&zero))

	loc := time.FixedZone("PST", -8*60*60)
	ts := time.Date(2024, time.March, 11, 9, 0, 0, 0, loc)
	assert.Equal(t, "2024-03-11T17:00:00Z", exportTime(&ts))
}

func TestWriteCSVExportRoundTrip(t *testing.T) {
	data, err := writeCSVExport(quoteExportHeader(), [][]string{quoteExportRow(exportQuote())})
	assert.Nil(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	assert.Nil(t, err)
	assert.Equal(t, 2, len(records))
	assert.Equal(t, quoteExportHeader(), records[0])
	assert.Equal(t, quoteExportRow(exportQuote()), records[1])
}

func TestWriteXLSXExportRoundTrip(t *testing.T) {
	data, err := writeXLSXExport("Quotes", quoteExportHeader(), [][]string{quoteExportRow(exportQuote())})
	assert.Nil(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	assert.Nil(t, err)

	header, err := f.GetCellValue("Quotes", "A1")
	assert.Nil(t, err)
	assert.Equal(t, "id", header)

	quoteNumber, err := f.GetCellValue("Quotes", "B2")
	assert.Nil(t, err)
	assert.Equal(t, "NXT-000042", quoteNumber)
}

func TestExportFilename(t *testing.T) {
	name := exportFilename("quotes", ExportFormatCSV)
	assert.True(t, strings.HasPrefix(name, "quotes_export_"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
}
