package model

import (
	"time"

	"github.com/jinzhu/gorm/dialects/postgres"
)

const (
	ServiceTypeFixedWireless = "fixed-wireless"
	ServiceTypeFleetTracking = "fleet-tracking"
	ServiceTypeFleetCamera   = "fleet-camera"
)

const (
	AssessmentStatusDraft     = "draft"
	AssessmentStatusCompleted = "completed"
)

// Signal strength options offered by the site survey form.
const (
	SignalStrengthFiveBars  = "5-bars"
	SignalStrengthFourBars  = "4-bars"
	SignalStrengthThreeBars = "3-bars"
	SignalStrengthTwoBars   = "2-bars"
	SignalStrengthOneBar    = "1-bar"
)

// Assessment is the multi-step site survey form. It is created as a draft
// and mutated repeatedly while the partner walks through the form steps;
// quote generation marks it completed. Updates are last-write-wins.
type Assessment struct {
	ID uint64 `gorm:"primary_key:true" json:"id"`

	UserID         string `gorm:"type:varchar(255);not null;index" json:"user_id"`
	OrganizationID uint64 `gorm:"not null;index" json:"organization_id"`

	ServiceType string `gorm:"type:varchar(50);not null" json:"service_type"`
	Status      string `gorm:"type:varchar(50);default:'draft'" json:"status"`

	// Customer contact block.
	CustomerFirstName   string `gorm:"type:varchar(100)" json:"customer_first_name"`
	CustomerLastName    string `gorm:"type:varchar(100)" json:"customer_last_name"`
	CustomerEmail       string `gorm:"type:varchar(100)" json:"customer_email"`
	CustomerPhone       string `gorm:"type:varchar(50)" json:"customer_phone"`
	CustomerCompanyName string `gorm:"type:varchar(255)" json:"customer_company_name"`
	IndustryVertical    string `gorm:"type:varchar(100)" json:"industry_vertical"`

	SiteAddress string `gorm:"type:varchar(255)" json:"site_address"`
	SiteCity    string `gorm:"type:varchar(100)" json:"site_city"`
	SiteState   string `gorm:"type:varchar(50)" json:"site_state"`
	SiteZip     string `gorm:"type:varchar(20)" json:"site_zip"`

	// Fixed wireless site survey.
	BuildingType        string  `gorm:"type:varchar(100)" json:"building_type"`
	FloorCount          int     `json:"floor_count"`
	CeilingHeight       string  `gorm:"type:varchar(50)" json:"ceiling_height"`
	CeilingType         string  `gorm:"type:varchar(100)" json:"ceiling_type"`
	CoverageAreaSqft    float64 `json:"coverage_area_sqft"`
	DeviceCount         int     `json:"device_count"`
	SignalStrength      string  `gorm:"type:varchar(50)" json:"signal_strength"`
	ConnectionUsage     string  `gorm:"type:varchar(255)" json:"connection_usage"`
	RouterLocation      string  `gorm:"type:varchar(255)" json:"router_location"`
	RouterMounting      string  `gorm:"type:varchar(100)" json:"router_mounting"`
	CableFootage        float64 `json:"cable_footage"`
	AntennaCableFootage float64 `json:"antenna_cable_footage"`
	AntennaType         string  `gorm:"type:varchar(100)" json:"antenna_type"`
	AntennaInstallation bool    `gorm:"default:false" json:"antenna_installation"`
	DualWanSupport      bool    `gorm:"default:false" json:"dual_wan_support"`
	LowVoltageAvailable bool    `gorm:"default:false" json:"low_voltage_available"`
	PowerAvailable      bool    `gorm:"default:false" json:"power_available"`

	// Fleet tracking / fleet camera survey.
	VehicleCount         int             `json:"vehicle_count"`
	VehicleDetails       *postgres.Jsonb `json:"vehicle_details"`
	TrackerType          string          `gorm:"type:varchar(100)" json:"tracker_type"`
	ImeiList             *postgres.Jsonb `json:"imei_list"`
	CameraSolutionType   string          `gorm:"type:varchar(100)" json:"camera_solution_type"`
	AddonFeatures        *postgres.Jsonb `json:"addon_features"`
	ExistingTrackerCount int             `json:"existing_tracker_count"`
	RemovalNeeded        bool            `gorm:"default:false" json:"removal_needed"`

	Notes string `gorm:"type:text" json:"notes"`

	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func IsValidServiceType(serviceType string) bool {
	return serviceType == ServiceTypeFixedWireless ||
		serviceType == ServiceTypeFleetTracking ||
		serviceType == ServiceTypeFleetCamera
}

// SignalStrengthBars maps the survey's signal options to a bar count.
// Unknown or missing values read as 3 bars, the middle of the scale.
func SignalStrengthBars(signal string) int {
	switch signal {
	case SignalStrengthFiveBars:
		return 5
	case SignalStrengthFourBars:
		return 4
	case SignalStrengthThreeBars:
		return 3
	case SignalStrengthTwoBars:
		return 2
	case SignalStrengthOneBar:
		return 1
	default:
		return 3
	}
}

// AddonFeatureCount counts the selected camera add-on features from the
// free-form JSON list saved by the form. Invalid payloads count as 0.
func (a *Assessment) AddonFeatureCount() int {
	return jsonbArrayLen(a.AddonFeatures)
}
