package model

import (
	"encoding/json"

	U "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/util"

	"github.com/jinzhu/gorm/dialects/postgres"
)

// FieldsToUpdate carries a partial column update, keyed by column name.
// The multi-step assessment form saves one step at a time, so most writes
// touch a handful of columns; updates are last-write-wins.
type FieldsToUpdate map[string]interface{}

type Option func(FieldsToUpdate)

// assessmentColumns whitelists the form-updatable assessment columns.
// Ownership and lifecycle columns (user_id, organization_id, status,
// completed_at) are deliberately absent.
var assessmentColumns = map[string]bool{
	"service_type":           true,
	"customer_first_name":    true,
	"customer_last_name":     true,
	"customer_email":         true,
	"customer_phone":         true,
	"customer_company_name":  true,
	"industry_vertical":      true,
	"site_address":           true,
	"site_city":              true,
	"site_state":             true,
	"site_zip":               true,
	"building_type":          true,
	"floor_count":            true,
	"ceiling_height":         true,
	"ceiling_type":           true,
	"coverage_area_sqft":     true,
	"device_count":           true,
	"signal_strength":        true,
	"connection_usage":       true,
	"router_location":        true,
	"router_mounting":        true,
	"cable_footage":          true,
	"antenna_cable_footage":  true,
	"antenna_type":           true,
	"antenna_installation":   true,
	"dual_wan_support":       true,
	"low_voltage_available":  true,
	"power_available":        true,
	"vehicle_count":          true,
	"vehicle_details":        true,
	"tracker_type":           true,
	"imei_list":              true,
	"camera_solution_type":   true,
	"addon_features":         true,
	"existing_tracker_count": true,
	"removal_needed":         true,
	"notes":                  true,
}

var assessmentJsonbColumns = map[string]bool{
	"vehicle_details": true,
	"imei_list":       true,
	"addon_features":  true,
}

var assessmentIntColumns = map[string]bool{
	"floor_count":            true,
	"device_count":           true,
	"vehicle_count":          true,
	"existing_tracker_count": true,
}

var assessmentFloatColumns = map[string]bool{
	"coverage_area_sqft":    true,
	"cable_footage":         true,
	"antenna_cable_footage": true,
}

var organizationColumns = map[string]bool{
	"company_name": true,
	"website":      true,
	"phone":        true,
	"address":      true,
	"city":         true,
	"state":        true,
	"zip":          true,
	"partner_type": true,
}

// BuildAssessmentUpdateFields filters a decoded JSON body down to the
// whitelisted assessment columns, re-encoding object/array values for the
// jsonb columns and coercing numbers for the integer ones.
func BuildAssessmentUpdateFields(payload map[string]interface{}) FieldsToUpdate {
	return buildUpdateFields(payload, assessmentColumns)
}

// BuildOrganizationUpdateFields filters a decoded JSON body down to the
// whitelisted organization columns.
func BuildOrganizationUpdateFields(payload map[string]interface{}) FieldsToUpdate {
	return buildUpdateFields(payload, organizationColumns)
}

func buildUpdateFields(payload map[string]interface{}, allowed map[string]bool) FieldsToUpdate {
	fields := FieldsToUpdate{}
	for key, value := range payload {
		if !allowed[key] {
			continue
		}

		if assessmentJsonbColumns[key] {
			raw, err := json.Marshal(value)
			if err != nil {
				continue
			}
			fields[key] = postgres.Jsonb{RawMessage: raw}
			continue
		}

		// Numeric form fields arrive as float64, int or string depending
		// on the client form step.
		if assessmentIntColumns[key] {
			fields[key] = int64(U.GetValueAsFloat64(value))
			continue
		}
		if assessmentFloatColumns[key] {
			fields[key] = U.GetValueAsFloat64(value)
			continue
		}

		fields[key] = value
	}
	return fields
}
