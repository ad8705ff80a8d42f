package booking

import (
	"time"

	"github.com/phucdtWork/clinic-scheduler/internal/httperr"
	"github.com/phucdtWork/clinic-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// RescheduleCutoff is the minimum lead time before the scheduled start
// for a patient-initiated reschedule.
const RescheduleCutoff = 24 * time.Hour

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

func Reject(ap *models.Appointment, reason string) error {
	if err := CanReject(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusRejected)
	ap.RejectionReason = reason
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// Reschedule moves a pending appointment to a new day and slot in place.
// Conflict and cutoff checks belong to the caller; this only guards the
// state machine and the slot shape.
func Reschedule(ap *models.Appointment, day time.Time, slot models.TimeRange) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}
	if err := ValidateRange(slot); err != nil {
		return err
	}

	ap.Date = day
	ap.StartTime = slot.Start
	ap.EndTime = slot.End
	return nil
}

// StartsAt combines the appointment's calendar day with its start time
// in the given location.
func StartsAt(ap *models.Appointment, loc *time.Location) time.Time {
	day := ap.Date.In(loc)
	mins := minutesOf(ap.StartTime)
	return time.Date(day.Year(), day.Month(), day.Day(), mins/60, mins%60, 0, 0, loc)
}

// CheckRescheduleCutoff rejects reschedules requested 24h or less before
// the currently scheduled start.
func CheckRescheduleCutoff(ap *models.Appointment, now time.Time, loc *time.Location) error {
	if StartsAt(ap, loc).Sub(now) <= RescheduleCutoff {
		return httperr.ErrBusiness("too_close_to_appointment")
	}
	return nil
}
