package booking

import "github.com/phucdtWork/clinic-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func InitialStatus() Status {
	return StatusPending
}

// IsLive reports whether the appointment still holds its slot.
func IsLive(s Status) bool {
	return s == StatusPending || s == StatusConfirmed
}

func IsTerminal(s Status) bool {
	return s == StatusRejected || s == StatusCompleted || s == StatusCancelled
}

func IsKnown(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ===============================
// Transition guards
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

func CanReject(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

func CanReschedule(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}
