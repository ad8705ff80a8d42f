package notify

import (
	"fmt"
	"log"

	"github.com/phucdtWork/clinic-scheduler/internal/domain/booking"
)

// Dispatcher is the async lifecycle-event sink. Events are queued and
// written out by a single worker; a full queue drops the event rather
// than blocking or failing the booking path.
type Dispatcher struct {
	store *Store
	queue chan booking.Event
}

func NewDispatcher(store *Store) *Dispatcher {
	d := &Dispatcher{
		store: store,
		queue: make(chan booking.Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.deliver(ev); err != nil {
			log.Println("notify error:", err)
		}
	}
}

// Emit implements booking.EventSink.
func (d *Dispatcher) Emit(ev booking.Event) {
	select {
	case d.queue <- ev:
	default:
		log.Println("notify queue full, dropping event")
	}
}

func (d *Dispatcher) deliver(ev booking.Event) error {
	ap := ev.Appointment
	if ap == nil {
		return nil
	}

	apID := ap.ID
	day := ap.Date.Format("2006-01-02")
	when := fmt.Sprintf("%s at %s", day, ap.StartTime)

	record := func(userID uint, title, message string) error {
		return d.store.Record(userID, &apID, string(ev.Type), title, message)
	}

	switch ev.Type {
	case booking.EventCreated:
		if err := record(ap.DoctorID, "New appointment request", "A patient requested "+when); err != nil {
			return err
		}
		return record(ap.PatientID, "Appointment requested", "Your request for "+when+" is awaiting confirmation")

	case booking.EventConfirmed:
		return record(ap.PatientID, "Appointment confirmed", "Your appointment on "+when+" was confirmed")

	case booking.EventRejected, booking.EventUpdated:
		msg := "Your appointment on " + when + " was declined"
		if ap.RejectionReason != "" {
			msg += ": " + ap.RejectionReason
		}
		return record(ap.PatientID, "Appointment declined", msg)

	case booking.EventRescheduled:
		return record(ap.DoctorID, "Appointment rescheduled", "An appointment was moved to "+when)

	case booking.EventCancelled:
		if err := record(ap.DoctorID, "Appointment cancelled", "The appointment on "+when+" was cancelled"); err != nil {
			return err
		}
		return record(ap.PatientID, "Appointment cancelled", "Your appointment on "+when+" was cancelled")

	case booking.EventCompleted:
		if err := record(ap.PatientID, "Appointment completed", "Your appointment on "+when+" is complete"); err != nil {
			return err
		}
		return d.queueReviewReminder(ap.PatientID, apID)
	}

	return nil
}

// queueReviewReminder asks the patient for a review after completion.
// Only queued when an email is on file; failures are logged by the
// worker, never surfaced to the transition that triggered them.
func (d *Dispatcher) queueReviewReminder(patientID uint, appointmentID uint) error {
	email, err := d.store.PatientEmail(patientID)
	if err != nil || email == "" {
		return nil
	}

	return d.store.Record(
		patientID,
		&appointmentID,
		"review_reminder",
		"How was your visit?",
		"Leave a review for your recent appointment",
	)
}
