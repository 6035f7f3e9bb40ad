// Package cropdata holds the static per-crop agronomic and business
// reference data. The catalog is loaded once at process start and never
// mutated; lookups are safe for concurrent use.
package cropdata

import (
	"math/rand"
	"strings"
)

// YieldRange is the expected yield band in tonnes per hectare.
type YieldRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

// MonthWindow is a planting or harvest window expressed as calendar
// months (1-12).
type MonthWindow struct {
	StartMonth int
	EndMonth   int
}

// Entry is the full reference record for one crop. Revenue, cost and
// profit are per-hectare figures; seed/fertilizer/irrigation rates are
// per-hectare base quantities scaled by area at request time.
type Entry struct {
	Name            string
	Yield           YieldRange
	Revenue         float64
	Cost            float64
	Profit          float64
	CarbonFootprint float64
	WaterUsage      float64
	Varieties       []string
	Planting        MonthWindow
	Harvest         MonthWindow
	DurationDays    int
	SeedRateKg      float64
	FertilizerKg    float64
	IrrigationL     float64
}

// Catalog is the immutable reference data store.
type Catalog struct {
	entries map[string]Entry
	order   []string
	intn    func(n int) int
}

// Option customizes catalog construction.
type Option func(*Catalog)

// WithIntn injects the random source used for variety suggestion so
// tests can make it deterministic.
func WithIntn(intn func(n int) int) Option {
	return func(c *Catalog) {
		c.intn = intn
	}
}

// New builds the catalog from the built-in reference tables. Crops
// without their own timeline or input rates inherit rice's, matching the
// lookup fallback of the upstream data set.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		entries: make(map[string]Entry, len(baseEntries)),
		order:   make([]string, 0, len(baseEntries)),
		intn:    rand.Intn,
	}
	for _, opt := range opts {
		opt(c)
	}

	rice := baseEntries[0]
	for _, entry := range baseEntries {
		if entry.DurationDays == 0 {
			entry.Planting = rice.Planting
			entry.Harvest = rice.Harvest
			entry.DurationDays = rice.DurationDays
		}
		if entry.SeedRateKg == 0 {
			entry.SeedRateKg = rice.SeedRateKg
			entry.FertilizerKg = rice.FertilizerKg
			entry.IrrigationL = rice.IrrigationL
		}
		c.entries[entry.Name] = entry
		c.order = append(c.order, entry.Name)
	}
	return c
}

// Lookup returns the reference entry for a crop. The match is
// case-insensitive; unknown crops resolve to the first catalog entry so
// enrichment never blocks on a name the predictor invented.
func (c *Catalog) Lookup(cropName string) Entry {
	if entry, ok := c.entries[strings.ToLower(strings.TrimSpace(cropName))]; ok {
		return entry
	}
	return c.entries[c.order[0]]
}

// Known reports whether the crop has its own catalog entry.
func (c *Catalog) Known(cropName string) bool {
	_, ok := c.entries[strings.ToLower(strings.TrimSpace(cropName))]
	return ok
}

// SuggestVariety picks one of the crop's known varieties at random, or
// "Standard" when none are recorded. Cosmetic only: the choice never
// affects scoring or ordering.
func (c *Catalog) SuggestVariety(cropName string) string {
	varieties := c.Lookup(cropName).Varieties
	if !c.Known(cropName) || len(varieties) == 0 {
		return "Standard"
	}
	return varieties[c.intn(len(varieties))]
}

// baseEntries carries the reference tables in catalog order. Rice is
// first on purpose: it doubles as the default entry for unknown crops.
var baseEntries = []Entry{
	{
		Name:            "rice",
		Yield:           YieldRange{Min: 3, Max: 6, Average: 4.5},
		Revenue:         112500,
		Cost:            45000,
		Profit:          67500,
		CarbonFootprint: 3.2,
		WaterUsage:      1200,
		Varieties:       []string{"Basmati 370", "IR64", "Swarna", "MTU 1010"},
		Planting:        MonthWindow{StartMonth: 6, EndMonth: 7},
		Harvest:         MonthWindow{StartMonth: 10, EndMonth: 11},
		DurationDays:    120,
		SeedRateKg:      25,
		FertilizerKg:    150,
		IrrigationL:     1200,
	},
	{
		Name:            "wheat",
		Yield:           YieldRange{Min: 2.5, Max: 4.5, Average: 3.5},
		Revenue:         77000,
		Cost:            35000,
		Profit:          42000,
		CarbonFootprint: 2.8,
		WaterUsage:      800,
		Varieties:       []string{"HD 2967", "PBW 343", "WH 542", "DBW 88"},
		Planting:        MonthWindow{StartMonth: 11, EndMonth: 12},
		Harvest:         MonthWindow{StartMonth: 3, EndMonth: 4},
		DurationDays:    120,
		SeedRateKg:      100,
		FertilizerKg:    120,
		IrrigationL:     400,
	},
	{
		Name:            "maize",
		Yield:           YieldRange{Min: 4, Max: 8, Average: 6},
		Revenue:         120000,
		Cost:            40000,
		Profit:          80000,
		CarbonFootprint: 2.5,
		WaterUsage:      600,
		Varieties:       []string{"Pioneer 30V92", "DKC 9144", "Hishell", "P3396"},
		Planting:        MonthWindow{StartMonth: 6, EndMonth: 7},
		Harvest:         MonthWindow{StartMonth: 9, EndMonth: 10},
		DurationDays:    90,
		SeedRateKg:      20,
		FertilizerKg:    180,
		IrrigationL:     500,
	},
	{
		Name:            "potato",
		Yield:           YieldRange{Min: 15, Max: 30, Average: 22},
		Revenue:         330000,
		Cost:            120000,
		Profit:          210000,
		CarbonFootprint: 1.8,
		WaterUsage:      400,
		Varieties:       []string{"Kufri Jyoti", "Kufri Pukhraj", "Kufri Chipsona", "Kufri Bahar"},
	},
	{
		Name:            "tomato",
		Yield:           YieldRange{Min: 12, Max: 25, Average: 18},
		Revenue:         540000,
		Cost:            180000,
		Profit:          360000,
		CarbonFootprint: 2.2,
		WaterUsage:      800,
		Varieties:       []string{"Pusa Ruby", "Arka Rakshak", "Himsona", "Kashi Vishesh"},
	},
}
