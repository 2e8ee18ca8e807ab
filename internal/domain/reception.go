package domain

import "time"

// ReceptionStatus represents the lifecycle of a service session
type ReceptionStatus string

const (
	// ReceptionReceived initial state when no technician is assigned yet
	ReceptionReceived ReceptionStatus = "received"
	// ReceptionAssigned initial state when a technician is set at creation
	ReceptionAssigned ReceptionStatus = "assigned"
	// ReceptionInProgress technician started working
	ReceptionInProgress ReceptionStatus = "in_progress"
	// ReceptionCompleted all work finished, waiting for payment
	ReceptionCompleted ReceptionStatus = "completed"
	// ReceptionPaid terminal
	ReceptionPaid ReceptionStatus = "paid"
)

// RecordAction is the result state of a single inspection record
type RecordAction string

const (
	ActionPending    RecordAction = "pending"
	ActionInspected  RecordAction = "inspected"
	ActionCleaned    RecordAction = "cleaned"
	ActionReplaced   RecordAction = "replaced"
	ActionLubricated RecordAction = "lubricated"
)

// SparePartRequestStatus lifecycle of a spare-part request
type SparePartRequestStatus string

const (
	PartRequestPending  SparePartRequestStatus = "pending"
	PartRequestApproved SparePartRequestStatus = "approved"
	PartRequestRejected SparePartRequestStatus = "rejected"
	PartRequestUsed     SparePartRequestStatus = "used"
)

// Reception is a single physical service visit, optionally linked back to a
// booking (nil for walk-ins). Customer/vehicle fields are snapshotted at
// creation so later customer edits never alter history. Never deleted.
type Reception struct {
	ID        int64
	BookingID *int64 // nil for walk-ins

	// Snapshot fields
	CustomerID    int64
	CustomerName  string
	CustomerPhone string
	VehicleID     int64
	VehicleModel  string
	VehiclePlate  string
	CenterID      int64

	TechnicianID *int64
	PackageID    *int64 // selected maintenance package, nil when none

	Status    ReceptionStatus
	TotalCost float64

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// IsTerminal returns true if the reception reached paid
func (r *Reception) IsTerminal() bool {
	return r.Status == ReceptionPaid
}

// IsDone returns true once all work is finished
func (r *Reception) IsDone() bool {
	return r.Status == ReceptionCompleted || r.Status == ReceptionPaid
}

// InitialStatus returns the starting status given technician assignment
func InitialReceptionStatus(technicianID *int64) ReceptionStatus {
	if technicianID != nil {
		return ReceptionAssigned
	}
	return ReceptionReceived
}

// InspectionRecord is the per-visit instance of an InspectionTask template.
// Exactly one record exists per applicable template; owned by its Reception.
type InspectionRecord struct {
	ID          int64
	ReceptionID int64
	TaskID      int64 // InspectionTask template this record instantiates

	Action  RecordAction
	Version int64 // optimistic version, bumped on every update

	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SparePartRequest is a technician's request for a catalog part
type SparePartRequest struct {
	ID          int64
	ReceptionID int64
	PartID      int64

	Quantity  int
	UnitPrice float64 // snapshot at request creation
	Status    SparePartRequestStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeResolved returns true while the request waits for staff
func (r *SparePartRequest) CanBeResolved() bool {
	return r.Status == PartRequestPending
}
