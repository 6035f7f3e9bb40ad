package cropdata

import (
	"math"
	"time"
)

// Fixed per-unit input prices in rupees.
const (
	seedPricePerKg = 50
	npkPricePerKg  = 25
	ureaPricePerKg = 15

	// Urea is applied at a flat rate regardless of crop.
	ureaRateKgPerHa = 50

	// Windows are expressed within a fixed reference year so that
	// month arithmetic stays deterministic.
	referenceYear = 2024
)

// DateWindow is a concrete start/end date pair.
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Timeline is the planting-to-harvest schedule for a crop.
type Timeline struct {
	PlantingWindow DateWindow `json:"plantingWindow"`
	HarvestWindow  DateWindow `json:"harvestWindow"`
	Duration       int        `json:"duration"`
}

// SeedRequirement is the quantity and cost of seed for the given area.
type SeedRequirement struct {
	Quantity      int    `json:"quantity"`
	Unit          string `json:"unit"`
	EstimatedCost int    `json:"estimatedCost"`
}

// FertilizerRequirement is one fertilizer line item.
type FertilizerRequirement struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
	Cost     int    `json:"cost"`
}

// IrrigationRequirement is the irrigation schedule and volume.
type IrrigationRequirement struct {
	Frequency string `json:"frequency"`
	Amount    int    `json:"amount"`
	Unit      string `json:"unit"`
}

// Requirements bundles the input requirements for growing a crop over a
// given area.
type Requirements struct {
	Seeds       SeedRequirement         `json:"seeds"`
	Fertilizers []FertilizerRequirement `json:"fertilizers"`
	Irrigation  IrrigationRequirement   `json:"irrigation"`
}

// Timeline returns the planting/harvest windows and growth duration for
// a crop. Window boundaries are fixed to day 1 and day 30 of the
// respective months. Unknown crops resolve via the default entry.
func (c *Catalog) Timeline(cropName string) Timeline {
	entry := c.Lookup(cropName)
	return Timeline{
		PlantingWindow: monthWindowDates(entry.Planting),
		HarvestWindow:  monthWindowDates(entry.Harvest),
		Duration:       entry.DurationDays,
	}
}

// Requirements scales the crop's per-hectare base quantities linearly by
// area. All quantities and costs are rounded to the nearest integer.
func (c *Catalog) Requirements(cropName string, area float64) Requirements {
	entry := c.Lookup(cropName)

	seedQty := roundQty(entry.SeedRateKg * area)
	npkQty := roundQty(entry.FertilizerKg * area)
	ureaQty := roundQty(ureaRateKgPerHa * area)

	return Requirements{
		Seeds: SeedRequirement{
			Quantity:      seedQty,
			Unit:          "kg",
			EstimatedCost: roundQty(entry.SeedRateKg * area * seedPricePerKg),
		},
		Fertilizers: []FertilizerRequirement{
			{
				Name:     "NPK",
				Quantity: npkQty,
				Unit:     "kg",
				Cost:     roundQty(entry.FertilizerKg * area * npkPricePerKg),
			},
			{
				Name:     "Urea",
				Quantity: ureaQty,
				Unit:     "kg",
				Cost:     roundQty(ureaRateKgPerHa * area * ureaPricePerKg),
			},
		},
		Irrigation: IrrigationRequirement{
			Frequency: "Weekly",
			Amount:    roundQty(entry.IrrigationL * area),
			Unit:      "liters",
		},
	}
}

func monthWindowDates(window MonthWindow) DateWindow {
	return DateWindow{
		Start: time.Date(referenceYear, time.Month(window.StartMonth), 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(referenceYear, time.Month(window.EndMonth), 30, 0, 0, 0, 0, time.UTC),
	}
}

func roundQty(value float64) int {
	return int(math.Round(value))
}
