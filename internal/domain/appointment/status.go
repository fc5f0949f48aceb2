package appointment

import "github.com/BruksfildServices01/salon-platform/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusBooked    Status = "booked"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	// StatusNoShow is part of the stored vocabulary; no operation sets it.
	StatusNoShow Status = "no_show"
)

func InitialStatus() Status {
	return StatusBooked
}

// ===============================
// Validations
// ===============================

func CanReschedule(current Status) error {
	if current != StatusBooked {
		return httperr.InvalidState("invalid_state", "Only booked appointments can be rescheduled.")
	}
	return nil
}

// CanCancel reports whether cancel has work to do. An already cancelled
// appointment is a no-op, not an error.
func CanCancel(current Status) (bool, error) {
	switch current {
	case StatusBooked:
		return true, nil
	case StatusCancelled:
		return false, nil
	default:
		return false, httperr.InvalidState("invalid_state", "Appointment can no longer be cancelled.")
	}
}

// CanComplete mirrors CanCancel: completing twice is a no-op.
func CanComplete(current Status) (bool, error) {
	switch current {
	case StatusBooked:
		return true, nil
	case StatusCompleted:
		return false, nil
	default:
		return false, httperr.InvalidState("invalid_state", "Appointment can no longer be completed.")
	}
}
