package domain

// Recipe is a menu item. Read-only to this core; maintained by the menu
// admin collaborator.
type Recipe struct {
	ID       int64
	Name     string
	Price    float64
	Category string
	Active   bool
}

// StockLevel is the state of one inventory row right after a decrement.
type StockLevel struct {
	ID           int64
	Name         string
	Quantity     float64
	MinimumStock *float64
	Price        float64
}

// Low reports whether the row has reached its restock threshold.
func (s StockLevel) Low() bool {
	return s.MinimumStock != nil && s.Quantity <= *s.MinimumStock
}
