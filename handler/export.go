package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/model"

	"github.com/360EntSecGroup-Skylar/excelize/v2"
)

const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"
)

// Bulk export of assessments and quotes for the admin dashboard. Rows are
// built as string matrices so the CSV and XLSX writers share them.

func assessmentExportHeader() []string {
	return []string{
		"id", "service_type", "status",
		"customer_first_name", "customer_last_name", "customer_email",
		"customer_phone", "customer_company",
		"site_city", "site_state",
		"device_count", "vehicle_count",
		"created_at", "completed_at",
	}
}

func assessmentExportRow(a *model.Assessment) []string {
	return []string{
		strconv.FormatUint(a.ID, 10),
		a.ServiceType,
		a.Status,
		a.CustomerFirstName,
		a.CustomerLastName,
		a.CustomerEmail,
		a.CustomerPhone,
		a.CustomerCompanyName,
		a.SiteCity,
		a.SiteState,
		strconv.Itoa(a.DeviceCount),
		strconv.Itoa(a.VehicleCount),
		exportTime(&a.CreatedAt),
		exportTime(a.CompletedAt),
	}
}

func quoteExportHeader() []string {
	return []string{
		"id", "quote_number", "assessment_id", "organization_id", "status",
		"survey_hours", "installation_hours", "configuration_hours",
		"removal_hours", "labor_hold_hours", "hourly_rate",
		"labor_cost", "hardware_cost", "labor_hold_cost", "total_cost",
		"hubspot_deal_id", "created_at", "responded_at",
	}
}

func quoteExportRow(q *model.Quote) []string {
	return []string{
		strconv.FormatUint(q.ID, 10),
		q.QuoteNumber(),
		strconv.FormatUint(q.AssessmentID, 10),
		strconv.FormatUint(q.OrganizationID, 10),
		q.Status,
		exportFloat(q.SurveyHours),
		exportFloat(q.InstallationHours),
		exportFloat(q.ConfigurationHours),
		exportFloat(q.RemovalHours),
		exportFloat(q.LaborHoldHours),
		exportFloat(q.HourlyRate),
		exportFloat(q.LaborCost),
		exportFloat(q.HardwareCost),
		exportFloat(q.LaborHoldCost),
		exportFloat(q.TotalCost),
		q.HubspotDealID,
		exportTime(&q.CreatedAt),
		exportTime(q.RespondedAt),
	}
}

func exportFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func exportTime(ts *time.Time) string {
	if ts == nil || ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}

func writeCSVExport(header []string, rows [][]string) ([]byte, error) {
	var buffer bytes.Buffer
	csvWriter := csv.NewWriter(&buffer)
	if err := csvWriter.Write(header); err != nil {
		return nil, err
	}
	if err := csvWriter.WriteAll(rows); err != nil {
		return nil, err
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func writeXLSXExport(sheetName string, header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), sheetName)

	if err := setSheetStringRow(f, sheetName, 1, header); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := setSheetStringRow(f, sheetName, i+2, row); err != nil {
			return nil, err
		}
	}

	var buffer bytes.Buffer
	if err := f.Write(&buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func setSheetStringRow(f *excelize.File, sheetName string, rowIndex int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIndex)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i := range values {
		row[i] = values[i]
	}
	return f.SetSheetRow(sheetName, cell, &row)
}

func exportFilename(prefix, format string) string {
	return fmt.Sprintf("%s_export_%s.%s", prefix, time.Now().UTC().Format("20060102"), format)
}
