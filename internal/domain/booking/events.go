package booking

import "github.com/phucdtWork/clinic-scheduler/internal/models"

// ===============================
// Lifecycle Events
// ===============================

type EventType string

const (
	EventCreated     EventType = "created"
	EventConfirmed   EventType = "confirmed"
	EventRejected    EventType = "rejected"
	EventRescheduled EventType = "rescheduled"
	EventCancelled   EventType = "cancelled"
	EventCompleted   EventType = "completed"

	// EventUpdated covers status changes applied by the engine itself,
	// such as the auto-rejected losers of a confirm cascade.
	EventUpdated EventType = "updated"
)

type Event struct {
	Type        EventType
	Appointment *models.Appointment
	ActorID     uint
}

// EventSink receives one event per lifecycle transition. Delivery
// (email, realtime push) lives behind the sink; the engine never waits
// on it and never fails because of it.
type EventSink interface {
	Emit(ev Event)
}
