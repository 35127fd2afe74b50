package model

import (
	"encoding/json"
	"testing"

	"github.com/jinzhu/gorm/dialects/postgres"
	"github.com/stretchr/testify/assert"
)

func TestComputeQuoteBreakdownFixedWireless(t *testing.T) {
	assessment := &Assessment{
		ServiceType:      ServiceTypeFixedWireless,
		CoverageAreaSqft: 6000,
		DeviceCount:      12,
		SignalStrength:   SignalStrengthThreeBars,
	}

	breakdown := ComputeQuoteBreakdown(assessment)

	// Installation: base 2 + coverage band 2 + signal 1.
	assert.Equal(t, 5.0, breakdown.InstallationHours)
	// Configuration: base 1 + device band 2.
	assert.Equal(t, 3.0, breakdown.ConfigurationHours)
	assert.Equal(t, 4.0, breakdown.LaborHoldHours)
	assert.Equal(t, HourlyRate, breakdown.HourlyRate)
}

func TestComputeQuoteBreakdownDeviceCountBands(t *testing.T) {
	expected := map[int]float64{
		1:  0,
		3:  0,
		7:  1,
		12: 2,
	}

	for deviceCount, adjustment := range expected {
		assessment := &Assessment{
			ServiceType: ServiceTypeFixedWireless,
			DeviceCount: deviceCount,
		}
		breakdown := ComputeQuoteBreakdown(assessment)
		assert.Equal(t, 1+adjustment, breakdown.ConfigurationHours,
			"device count %d", deviceCount)
	}
}

func TestComputeQuoteBreakdownBandEdges(t *testing.T) {
	// Exactly 5000 sqft stays in the mid coverage band.
	edge := ComputeQuoteBreakdown(&Assessment{
		ServiceType:      ServiceTypeFixedWireless,
		CoverageAreaSqft: 5000,
		SignalStrength:   SignalStrengthFiveBars,
	})
	assert.Equal(t, 3.0, edge.InstallationHours)
	assert.Equal(t, 2.0, edge.SurveyHours)

	above := ComputeQuoteBreakdown(&Assessment{
		ServiceType:      ServiceTypeFixedWireless,
		CoverageAreaSqft: 5001,
		SignalStrength:   SignalStrengthFiveBars,
	})
	assert.Equal(t, 4.0, above.InstallationHours)
	assert.Equal(t, 3.0, above.SurveyHours)

	// Exactly 10 devices stays in the mid device band.
	tenDevices := ComputeQuoteBreakdown(&Assessment{
		ServiceType: ServiceTypeFixedWireless,
		DeviceCount: 10,
	})
	assert.Equal(t, 2.0, tenDevices.ConfigurationHours)

	elevenDevices := ComputeQuoteBreakdown(&Assessment{
		ServiceType: ServiceTypeFixedWireless,
		DeviceCount: 11,
	})
	assert.Equal(t, 3.0, elevenDevices.ConfigurationHours)
}

func TestComputeQuoteBreakdownSignalStrength(t *testing.T) {
	expected := map[string]float64{
		SignalStrengthFiveBars:  0,
		SignalStrengthFourBars:  0,
		SignalStrengthThreeBars: 1,
		SignalStrengthTwoBars:   2,
		SignalStrengthOneBar:    2,
		// Missing signal reads as 3 bars.
		"": 1,
	}

	for signal, adjustment := range expected {
		breakdown := ComputeQuoteBreakdown(&Assessment{
			ServiceType:    ServiceTypeFixedWireless,
			SignalStrength: signal,
		})
		assert.Equal(t, 2+adjustment, breakdown.InstallationHours,
			"signal %q", signal)
	}
}

func TestComputeQuoteBreakdownTotalIsSumOfComponents(t *testing.T) {
	assessments := []*Assessment{
		{ServiceType: ServiceTypeFixedWireless, CoverageAreaSqft: 6000,
			DeviceCount: 12, SignalStrength: SignalStrengthOneBar,
			CableFootage: 150, AntennaInstallation: true, AntennaCableFootage: 40,
			DualWanSupport: true, FloorCount: 5},
		{ServiceType: ServiceTypeFleetTracking, VehicleCount: 18,
			RemovalNeeded: true, ExistingTrackerCount: 6},
		{ServiceType: ServiceTypeFleetCamera, VehicleCount: 30},
		{ServiceType: ServiceTypeFixedWireless},
	}

	for _, assessment := range assessments {
		breakdown := ComputeQuoteBreakdown(assessment)
		sum := breakdown.LaborCost + breakdown.LaborHoldCost + breakdown.HardwareCost
		assert.InDelta(t, sum, breakdown.TotalCost, 0.001, "service %s", assessment.ServiceType)
		assert.InDelta(t, breakdown.BillableHours()*breakdown.HourlyRate,
			breakdown.LaborCost, 0.001)
	}
}

func TestComputeQuoteBreakdownIdempotent(t *testing.T) {
	assessment := &Assessment{
		ServiceType:         ServiceTypeFixedWireless,
		CoverageAreaSqft:    4200,
		DeviceCount:         8,
		SignalStrength:      SignalStrengthTwoBars,
		CableFootage:        220,
		AntennaInstallation: true,
	}

	first := ComputeQuoteBreakdown(assessment)
	second := ComputeQuoteBreakdown(assessment)
	assert.Equal(t, first, second)
}

func TestComputeQuoteBreakdownHardwareCost(t *testing.T) {
	breakdown := ComputeQuoteBreakdown(&Assessment{
		ServiceType:  ServiceTypeFixedWireless,
		CableFootage: 100,
	})
	assert.Equal(t, 700.0, breakdown.HardwareCost)

	withAntenna := ComputeQuoteBreakdown(&Assessment{
		ServiceType:         ServiceTypeFixedWireless,
		CableFootage:        100,
		AntennaCableFootage: 50,
		AntennaInstallation: true,
	})
	assert.Equal(t, 100*CableCostPerFoot+50*CableCostPerFoot+AntennaHardwareCost,
		withAntenna.HardwareCost)
}

func TestComputeQuoteBreakdownFleetTracking(t *testing.T) {
	breakdown := ComputeQuoteBreakdown(&Assessment{
		ServiceType:          ServiceTypeFleetTracking,
		VehicleCount:         12,
		RemovalNeeded:        true,
		ExistingTrackerCount: 4,
	})

	assert.Equal(t, 1.0, breakdown.SurveyHours)
	assert.Equal(t, 6.0, breakdown.InstallationHours)
	assert.Equal(t, 2.0, breakdown.ConfigurationHours)
	assert.Equal(t, 1.0, breakdown.RemovalHours)
	assert.Equal(t, 2.0, breakdown.LaborHoldHours)

	// A single vehicle still books the minimum install visit.
	single := ComputeQuoteBreakdown(&Assessment{
		ServiceType:  ServiceTypeFleetTracking,
		VehicleCount: 1,
	})
	assert.Equal(t, 1.0, single.InstallationHours)
	assert.Equal(t, 0.0, single.RemovalHours)
}

func TestComputeQuoteBreakdownFleetCameraAddons(t *testing.T) {
	features, err := json.Marshal([]string{"dash-cam", "driver-facing", "ai-alerts"})
	assert.Nil(t, err)

	breakdown := ComputeQuoteBreakdown(&Assessment{
		ServiceType:   ServiceTypeFleetCamera,
		VehicleCount:  5,
		AddonFeatures: &postgres.Jsonb{RawMessage: features},
	})

	// Configuration: base 1 + 0.5 per add-on beyond the first.
	assert.Equal(t, 2.0, breakdown.ConfigurationHours)
	assert.Equal(t, 5.0, breakdown.InstallationHours)

	// The two-vehicle minimum applies to small fleets.
	small := ComputeQuoteBreakdown(&Assessment{
		ServiceType:  ServiceTypeFleetCamera,
		VehicleCount: 1,
	})
	assert.Equal(t, 2.0, small.InstallationHours)
}
