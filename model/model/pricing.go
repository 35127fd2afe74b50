package model

import "math"

// Pricing constants. Rates are flat across service types; the per-phase
// base hours and band adjustments below encode the installation playbook.
const (
	HourlyRate          = 190.0
	CableCostPerFoot    = 7.0
	AntennaHardwareCost = 180.0
)

// Coverage area bands (sqft). Edges are inclusive: exactly 5000 sqft
// stays in the mid band.
const (
	coverageMidBandSqft  = 2500.0
	coverageHighBandSqft = 5000.0
)

// Device count bands. Edges are inclusive: exactly 10 devices stays in
// the mid band.
const (
	deviceMidBandCount  = 5
	deviceHighBandCount = 10
)

// Vehicle count bands shared by the fleet service types.
const (
	vehicleMidBandCount  = 10
	vehicleHighBandCount = 25
)

// QuoteBreakdown is the output of the pricing formula: hour estimates per
// phase plus the derived cost components. TotalCost is always the sum of
// LaborCost, LaborHoldCost and HardwareCost.
type QuoteBreakdown struct {
	SurveyHours        float64 `json:"survey_hours"`
	InstallationHours  float64 `json:"installation_hours"`
	ConfigurationHours float64 `json:"configuration_hours"`
	RemovalHours       float64 `json:"removal_hours"`
	LaborHoldHours     float64 `json:"labor_hold_hours"`

	HourlyRate    float64 `json:"hourly_rate"`
	LaborCost     float64 `json:"labor_cost"`
	HardwareCost  float64 `json:"hardware_cost"`
	LaborHoldCost float64 `json:"labor_hold_cost"`
	TotalCost     float64 `json:"total_cost"`
}

// BillableHours are the worked phases, excluding the refundable hold.
func (b *QuoteBreakdown) BillableHours() float64 {
	return b.SurveyHours + b.InstallationHours + b.ConfigurationHours + b.RemovalHours
}

// ComputeQuoteBreakdown derives the quote from an assessment. Pure and
// deterministic: identical input always produces an identical breakdown.
// Missing or zero-valued numeric fields contribute nothing.
func ComputeQuoteBreakdown(a *Assessment) *QuoteBreakdown {
	breakdown := &QuoteBreakdown{HourlyRate: HourlyRate}

	switch a.ServiceType {
	case ServiceTypeFleetTracking:
		computeFleetTracking(a, breakdown)
	case ServiceTypeFleetCamera:
		computeFleetCamera(a, breakdown)
	default:
		computeFixedWireless(a, breakdown)
	}

	breakdown.LaborCost = roundCents(breakdown.BillableHours() * breakdown.HourlyRate)
	breakdown.LaborHoldCost = roundCents(breakdown.LaborHoldHours * breakdown.HourlyRate)
	breakdown.HardwareCost = roundCents(breakdown.HardwareCost)
	breakdown.TotalCost = roundCents(breakdown.LaborCost + breakdown.LaborHoldCost + breakdown.HardwareCost)

	return breakdown
}

func computeFixedWireless(a *Assessment, b *QuoteBreakdown) {
	b.SurveyHours = 2
	if a.CoverageAreaSqft > coverageHighBandSqft {
		b.SurveyHours++
	}
	if a.FloorCount > 3 {
		b.SurveyHours++
	}

	b.InstallationHours = 2
	if a.CoverageAreaSqft > coverageHighBandSqft {
		b.InstallationHours += 2
	} else if a.CoverageAreaSqft > coverageMidBandSqft {
		b.InstallationHours++
	}
	switch bars := SignalStrengthBars(a.SignalStrength); {
	case bars <= 2:
		b.InstallationHours += 2
	case bars == 3:
		b.InstallationHours++
	}
	if a.AntennaInstallation {
		b.InstallationHours++
	}
	if a.DualWanSupport {
		b.InstallationHours += 0.5
	}

	b.ConfigurationHours = 1
	if a.DeviceCount > deviceHighBandCount {
		b.ConfigurationHours += 2
	} else if a.DeviceCount > deviceMidBandCount {
		b.ConfigurationHours++
	}
	if a.DualWanSupport {
		b.ConfigurationHours += 0.5
	}

	b.LaborHoldHours = 4

	b.HardwareCost = a.CableFootage*CableCostPerFoot + a.AntennaCableFootage*CableCostPerFoot
	if a.AntennaInstallation {
		b.HardwareCost += AntennaHardwareCost
	}
}

func computeFleetTracking(a *Assessment, b *QuoteBreakdown) {
	b.SurveyHours = 1

	b.InstallationHours = 0.5 * float64(a.VehicleCount)
	if b.InstallationHours < 1 {
		b.InstallationHours = 1
	}

	b.ConfigurationHours = 1 + vehicleBandAdjustment(a.VehicleCount)

	if a.RemovalNeeded {
		b.RemovalHours = 0.25 * float64(a.ExistingTrackerCount)
	}

	b.LaborHoldHours = 2
}

func computeFleetCamera(a *Assessment, b *QuoteBreakdown) {
	b.SurveyHours = 1

	b.InstallationHours = float64(a.VehicleCount)
	if b.InstallationHours < 2 {
		b.InstallationHours = 2
	}

	b.ConfigurationHours = 1 + vehicleBandAdjustment(a.VehicleCount)
	if features := a.AddonFeatureCount(); features > 1 {
		b.ConfigurationHours += 0.5 * float64(features-1)
	}

	if a.RemovalNeeded {
		b.RemovalHours = 0.5 * float64(a.ExistingTrackerCount)
	}

	b.LaborHoldHours = 2
}

func vehicleBandAdjustment(count int) float64 {
	if count > vehicleHighBandCount {
		return 2
	}
	if count > vehicleMidBandCount {
		return 1
	}
	return 0
}

func roundCents(value float64) float64 {
	return math.Round(value*100) / 100
}
