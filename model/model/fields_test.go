package model

import (
	"testing"

	"github.com/jinzhu/gorm/dialects/postgres"
	"github.com/stretchr/testify/assert"
)

func TestBuildAssessmentUpdateFieldsFiltersUnknownColumns(t *testing.T) {
	fields := BuildAssessmentUpdateFields(map[string]interface{}{
		"customer_email": "dana@example.com",
		"user_id":        "auth0|evil",
		"status":         "completed",
		"completed_at":   "2024-01-01",
		"not_a_column":   "x",
	})

	assert.Len(t, fields, 1)
	assert.Equal(t, "dana@example.com", fields["customer_email"])
}

func TestBuildAssessmentUpdateFieldsCoercesNumericColumns(t *testing.T) {
	// JSON numbers decode as float64; some form steps send numbers as
	// strings.
	fields := BuildAssessmentUpdateFields(map[string]interface{}{
		"device_count":  float64(12),
		"floor_count":   "3",
		"cable_footage": "120.5",
		"vehicle_count": "not-a-number",
	})

	assert.Equal(t, int64(12), fields["device_count"])
	assert.Equal(t, int64(3), fields["floor_count"])
	assert.Equal(t, float64(120.5), fields["cable_footage"])
	assert.Equal(t, int64(0), fields["vehicle_count"])
}

func TestBuildAssessmentUpdateFieldsEncodesJsonbColumns(t *testing.T) {
	fields := BuildAssessmentUpdateFields(map[string]interface{}{
		"imei_list":      []interface{}{"356938035643809", "490154203237518"},
		"addon_features": []interface{}{"dashcam", "ai-coaching"},
	})

	imei, ok := fields["imei_list"].(postgres.Jsonb)
	assert.True(t, ok)
	assert.Equal(t, `["356938035643809","490154203237518"]`, string(imei.RawMessage))

	_, ok = fields["addon_features"].(postgres.Jsonb)
	assert.True(t, ok)
}

func TestBuildOrganizationUpdateFieldsSkipsPrivilegedColumns(t *testing.T) {
	fields := BuildOrganizationUpdateFields(map[string]interface{}{
		"company_name":   "Northwest Connectivity",
		"partner_status": "approved",
		"user_id":        "auth0|evil",
		"website":        "https://nwc.example",
	})

	assert.Len(t, fields, 2)
	assert.Equal(t, "Northwest Connectivity", fields["company_name"])
	assert.Equal(t, "https://nwc.example", fields["website"])
	assert.Nil(t, fields["partner_status"])
}
