package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/model"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageMarginMm   = 15.0
	labelColWidth  = 45.0
	tableColPhase  = 90.0
	tableColHours  = 40.0
	tableColAmount = 40.0
)

// RenderQuote renders the customer-facing quote document. Compression is
// off so the quote number stays greppable in the stored artifact.
func RenderQuote(quote *model.Quote, assessment *model.Assessment, organization *model.Organization) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.SetMargins(pageMarginMm, pageMarginMm, pageMarginMm)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.Cell(0, 10, "NXTKonekt Installation Quote")
	doc.Ln(12)

	doc.SetFont("Helvetica", "", 10)
	doc.Cell(labelColWidth, 6, "Quote Number")
	doc.SetFont("Helvetica", "B", 10)
	doc.Cell(0, 6, quote.QuoteNumber())
	doc.Ln(6)

	doc.SetFont("Helvetica", "", 10)
	doc.Cell(labelColWidth, 6, "Date")
	doc.Cell(0, 6, quote.CreatedAt.UTC().Format("January 2, 2006"))
	doc.Ln(6)

	doc.Cell(labelColWidth, 6, "Service")
	doc.Cell(0, 6, serviceTypeLabel(assessment.ServiceType))
	doc.Ln(6)

	doc.Cell(labelColWidth, 6, "Prepared by")
	doc.Cell(0, 6, organization.CompanyName)
	doc.Ln(10)

	writeCustomerBlock(doc, assessment)
	writeBreakdownTable(doc, quote)

	doc.SetFont("Helvetica", "I", 9)
	doc.Ln(8)
	doc.MultiCell(0, 5, "This quote is an estimate based on the submitted site assessment. "+
		"Final billing reflects hours worked on site. Labor hold covers schedule "+
		"contingency and is released if unused.", "", "L", false)

	var buffer bytes.Buffer
	if err := doc.Output(&buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func writeCustomerBlock(doc *gofpdf.Fpdf, assessment *model.Assessment) {
	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 8, "Customer")
	doc.Ln(8)

	doc.SetFont("Helvetica", "", 10)
	name := strings.TrimSpace(assessment.CustomerFirstName + " " + assessment.CustomerLastName)
	if assessment.CustomerCompanyName != "" {
		name = name + ", " + assessment.CustomerCompanyName
	}
	doc.Cell(0, 6, name)
	doc.Ln(6)

	if assessment.CustomerEmail != "" {
		doc.Cell(0, 6, assessment.CustomerEmail)
		doc.Ln(6)
	}
	if assessment.CustomerPhone != "" {
		doc.Cell(0, 6, assessment.CustomerPhone)
		doc.Ln(6)
	}

	site := strings.TrimSpace(strings.Join(nonEmpty(
		assessment.SiteAddress,
		assessment.SiteCity,
		assessment.SiteState,
		assessment.SiteZip), ", "))
	if site != "" {
		doc.Cell(0, 6, "Site: "+site)
		doc.Ln(6)
	}
	doc.Ln(4)
}

func writeBreakdownTable(doc *gofpdf.Fpdf, quote *model.Quote) {
	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 8, "Estimate")
	doc.Ln(8)

	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(tableColPhase, 7, "Phase", "1", 0, "L", false, 0, "")
	doc.CellFormat(tableColHours, 7, "Hours", "1", 0, "R", false, 0, "")
	doc.CellFormat(tableColAmount, 7, "Amount", "1", 1, "R", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	writePhaseRow(doc, "Site survey", quote.SurveyHours, quote.HourlyRate)
	writePhaseRow(doc, "Installation", quote.InstallationHours, quote.HourlyRate)
	writePhaseRow(doc, "Configuration", quote.ConfigurationHours, quote.HourlyRate)
	if quote.RemovalHours > 0 {
		writePhaseRow(doc, "Legacy equipment removal", quote.RemovalHours, quote.HourlyRate)
	}

	doc.CellFormat(tableColPhase, 7, "Hardware and materials", "1", 0, "L", false, 0, "")
	doc.CellFormat(tableColHours, 7, "", "1", 0, "R", false, 0, "")
	doc.CellFormat(tableColAmount, 7, money(quote.HardwareCost), "1", 1, "R", false, 0, "")

	doc.CellFormat(tableColPhase, 7, fmt.Sprintf("Labor hold (%s hrs)", hours(quote.LaborHoldHours)), "1", 0, "L", false, 0, "")
	doc.CellFormat(tableColHours, 7, "", "1", 0, "R", false, 0, "")
	doc.CellFormat(tableColAmount, 7, money(quote.LaborHoldCost), "1", 1, "R", false, 0, "")

	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(tableColPhase+tableColHours, 8, "Total", "1", 0, "L", false, 0, "")
	doc.CellFormat(tableColAmount, 8, money(quote.TotalCost), "1", 1, "R", false, 0, "")
}

func writePhaseRow(doc *gofpdf.Fpdf, label string, phaseHours, rate float64) {
	doc.CellFormat(tableColPhase, 7, label, "1", 0, "L", false, 0, "")
	doc.CellFormat(tableColHours, 7, hours(phaseHours), "1", 0, "R", false, 0, "")
	doc.CellFormat(tableColAmount, 7, money(phaseHours*rate), "1", 1, "R", false, 0, "")
}

func serviceTypeLabel(serviceType string) string {
	switch serviceType {
	case model.ServiceTypeFixedWireless:
		return "Fixed Wireless Access Installation"
	case model.ServiceTypeFleetTracking:
		return "Fleet Tracking Installation"
	case model.ServiceTypeFleetCamera:
		return "Fleet Camera Installation"
	}
	return serviceType
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func hours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

// RenderAssessmentReport renders the full survey as a field-by-field
// document, for partners who want the raw assessment alongside the quote.
// Empty answers are omitted.
func RenderAssessmentReport(assessment *model.Assessment, organization *model.Organization) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.SetMargins(pageMarginMm, pageMarginMm, pageMarginMm)
	doc.SetAutoPageBreak(true, pageMarginMm)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.Cell(0, 10, "Site Assessment Report")
	doc.Ln(12)

	doc.SetFont("Helvetica", "", 10)
	doc.Cell(labelColWidth, 6, "Assessment")
	doc.Cell(0, 6, fmt.Sprintf("#%d (%s)", assessment.ID, serviceTypeLabel(assessment.ServiceType)))
	doc.Ln(6)
	doc.Cell(labelColWidth, 6, "Prepared by")
	doc.Cell(0, 6, organization.CompanyName)
	doc.Ln(10)

	writeReportSection(doc, "Customer", [][2]string{
		{"Name", strings.TrimSpace(assessment.CustomerFirstName + " " + assessment.CustomerLastName)},
		{"Company", assessment.CustomerCompanyName},
		{"Email", assessment.CustomerEmail},
		{"Phone", assessment.CustomerPhone},
		{"Industry", assessment.IndustryVertical},
		{"Site address", strings.Join(nonEmpty(assessment.SiteAddress, assessment.SiteCity,
			assessment.SiteState, assessment.SiteZip), ", ")},
	})

	switch assessment.ServiceType {
	case model.ServiceTypeFleetTracking, model.ServiceTypeFleetCamera:
		writeReportSection(doc, "Fleet", [][2]string{
			{"Vehicle count", countField(assessment.VehicleCount)},
			{"Tracker type", assessment.TrackerType},
			{"Camera solution", assessment.CameraSolutionType},
			{"Existing trackers", countField(assessment.ExistingTrackerCount)},
			{"Removal needed", boolField(assessment.RemovalNeeded)},
		})
	default:
		writeReportSection(doc, "Site Survey", [][2]string{
			{"Building type", assessment.BuildingType},
			{"Floors", countField(assessment.FloorCount)},
			{"Ceiling height", assessment.CeilingHeight},
			{"Ceiling type", assessment.CeilingType},
			{"Coverage area (sqft)", floatField(assessment.CoverageAreaSqft)},
			{"Device count", countField(assessment.DeviceCount)},
			{"Signal strength", assessment.SignalStrength},
			{"Connection usage", assessment.ConnectionUsage},
			{"Router location", assessment.RouterLocation},
			{"Router mounting", assessment.RouterMounting},
			{"Cable footage", floatField(assessment.CableFootage)},
			{"Antenna cable footage", floatField(assessment.AntennaCableFootage)},
			{"Antenna type", assessment.AntennaType},
			{"Antenna installation", boolField(assessment.AntennaInstallation)},
			{"Dual WAN support", boolField(assessment.DualWanSupport)},
			{"Low voltage available", boolField(assessment.LowVoltageAvailable)},
			{"Power available", boolField(assessment.PowerAvailable)},
		})
	}

	if strings.TrimSpace(assessment.Notes) != "" {
		doc.SetFont("Helvetica", "B", 12)
		doc.Cell(0, 8, "Notes")
		doc.Ln(8)
		doc.SetFont("Helvetica", "", 10)
		doc.MultiCell(0, 5, assessment.Notes, "", "L", false)
	}

	var buffer bytes.Buffer
	if err := doc.Output(&buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func writeReportSection(doc *gofpdf.Fpdf, title string, rows [][2]string) {
	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 8, title)
	doc.Ln(8)

	doc.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		if strings.TrimSpace(row[1]) == "" {
			continue
		}
		doc.Cell(labelColWidth+15, 6, row[0])
		doc.MultiCell(0, 6, row[1], "", "L", false)
	}
	doc.Ln(4)
}

func countField(v int) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%d", v)
}

func floatField(v float64) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%g", v)
}

func boolField(v bool) string {
	if !v {
		return ""
	}
	return "Yes"
}
