package domain

// MaintenancePackage is an immutable service template: a tier with a
// cumulative distance threshold. A package includes every inspection task
// whose distance interval is less than or equal to its own threshold.
type MaintenancePackage struct {
	ID         int64
	Level      int // ordinal tier, 1-based
	Name       string
	DistanceKM int // cumulative distance threshold in kilometers
}

// InspectionTask is an immutable checklist item template
type InspectionTask struct {
	ID                 int64
	Category           string
	DistanceIntervalKM int // interval class the task belongs to
	Description        string
}

// SparePart is a catalog entry with current stock and price
type SparePart struct {
	ID        int64
	Name      string
	UnitPrice float64
	Stock     int
}
