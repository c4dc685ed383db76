package domain

import "time"

// LedgerEntry is the slice of an order a sales rollup needs.
type LedgerEntry struct {
	CreatedAt time.Time
	Total     float64
}

// SalesReport is an hourly rollup over some window of the ledger. Buckets
// are local time-of-day hours.
type SalesReport struct {
	Hourly [24]float64 `json:"hourly"`
	Total  float64     `json:"total"`
}

// BucketHourly aggregates ledger entries into a sales report.
func BucketHourly(entries []LedgerEntry) SalesReport {
	var report SalesReport
	for _, e := range entries {
		report.Hourly[e.CreatedAt.Local().Hour()] += e.Total
		report.Total += e.Total
	}
	return report
}

// SalesLine is one row of the per-recipe sales report.
type SalesLine struct {
	RecipeID int64   `json:"recipe_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// UsageLine is one row of the ingredient usage report: units consumed by
// orders inside the window, one unit per recipe-ingredient link per order
// unit.
type UsageLine struct {
	Ingredient string  `json:"ingredient"`
	Used       int     `json:"used_quantity"`
	Price      float64 `json:"price"`
}

// RestockLine is one inventory row at or below its minimum stock.
type RestockLine struct {
	Ingredient   string  `json:"ingredient"`
	Quantity     float64 `json:"quantity"`
	MinimumStock float64 `json:"minimum_stock"`
	Price        float64 `json:"price"`
}
