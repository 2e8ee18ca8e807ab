package domain

// Default booking policy values
const (
	DefaultSlotDurationMinutes   = 30
	DefaultMaxConcurrentBookings = 1
	DefaultPaymentTimeoutMinutes = 30  // unpaid hold lifetime
	DefaultSweepIntervalMinutes  = 5   // expiry sweeper tick
	DefaultMinLeadMinutes        = 60  // minimum advance for a new booking
	DefaultModifyLeadMinutes     = 720 // minimum remaining time to request cancel/reschedule
	DefaultArrivalGraceMinutes   = 30  // hold window after slot start for arrival
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinConcurrentBookings  = 1
	MaxConcurrentBookings  = 100
	MaxNotesLength         = 500
	MaxReasonLength        = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих место в слоте
// Используется при подсчёте занятости слота
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}

// ActiveStatuses список статусов, занимающих место в слоте
var ActiveStatuses = []BookingStatus{
	StatusPendingPayment,
	StatusUpcoming,
	StatusUpdateRequested,
	StatusCancellationRequested,
	StatusReceived,
	StatusCompleted,
	StatusVisited,
}
