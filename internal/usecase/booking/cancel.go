package booking

import (
	"context"

	domain "github.com/phucdtWork/clinic-scheduler/internal/domain/booking"
	"github.com/phucdtWork/clinic-scheduler/internal/httperr"
	"github.com/phucdtWork/clinic-scheduler/internal/models"
	"github.com/phucdtWork/clinic-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo   domain.Repository
	events domain.EventSink
}

func NewCancelAppointment(
	repo domain.Repository,
	events domain.EventSink,
) *CancelAppointment {
	return &CancelAppointment{
		repo:   repo,
		events: events,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	patientID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if ap.PatientID != patientID {
		return nil, httperr.ErrBusiness("not_appointment_owner")
	}

	tz := ""
	if sched, err := uc.repo.GetScheduleByDoctor(ctx, ap.DoctorID); err == nil {
		tz = sched.Timezone
	}

	if err := domain.Cancel(ap, timezone.NowIn(tz)); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.events.Emit(domain.Event{
		Type:        domain.EventCancelled,
		Appointment: ap,
		ActorID:     patientID,
	})

	return ap, nil
}
