package booking

import (
	"context"

	domain "github.com/phucdtWork/clinic-scheduler/internal/domain/booking"
	"github.com/phucdtWork/clinic-scheduler/internal/httperr"
	"github.com/phucdtWork/clinic-scheduler/internal/models"
	"github.com/phucdtWork/clinic-scheduler/internal/timezone"
)

// AutoRejectReason marks pending requests the confirm cascade loses.
const AutoRejectReason = "slot already confirmed"

type UpdateStatusInput struct {
	DoctorID      uint
	AppointmentID uint

	Status          string
	DoctorNotes     string
	RejectionReason string
}

type UpdateStatus struct {
	repo   domain.Repository
	events domain.EventSink
}

func NewUpdateStatus(
	repo domain.Repository,
	events domain.EventSink,
) *UpdateStatus {
	return &UpdateStatus{
		repo:   repo,
		events: events,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if ap.DoctorID != in.DoctorID {
		return nil, httperr.ErrBusiness("not_appointment_doctor")
	}

	tz := ""
	allowDouble := false
	if sched, err := uc.repo.GetScheduleByDoctor(ctx, ap.DoctorID); err == nil {
		tz = sched.Timezone
		allowDouble = sched.AllowDoubleBooking
	}
	now := timezone.NowIn(tz)

	if in.DoctorNotes != "" {
		ap.DoctorNotes = in.DoctorNotes
	}

	switch domain.Status(in.Status) {

	case domain.StatusConfirmed:
		if err := domain.Confirm(ap, now); err != nil {
			return nil, err
		}

		if allowDouble {
			// no slot contention to resolve, plain update
			if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
				return nil, err
			}
		} else {
			losers, err := uc.repo.ConfirmAndRejectCompeting(ctx, ap, AutoRejectReason)
			if err != nil {
				return nil, err
			}
			for i := range losers {
				uc.events.Emit(domain.Event{
					Type:        domain.EventUpdated,
					Appointment: &losers[i],
					ActorID:     in.DoctorID,
				})
			}
		}

		uc.events.Emit(domain.Event{
			Type:        domain.EventConfirmed,
			Appointment: ap,
			ActorID:     in.DoctorID,
		})

	case domain.StatusRejected:
		if in.RejectionReason == "" {
			return nil, httperr.ErrBusiness("rejection_reason_required")
		}
		if err := domain.Reject(ap, in.RejectionReason); err != nil {
			return nil, err
		}
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}

		uc.events.Emit(domain.Event{
			Type:        domain.EventRejected,
			Appointment: ap,
			ActorID:     in.DoctorID,
		})

	case domain.StatusCompleted:
		if err := domain.Complete(ap, now); err != nil {
			return nil, err
		}
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}

		// the sink queues the review reminder; its failure never
		// reaches this transition
		uc.events.Emit(domain.Event{
			Type:        domain.EventCompleted,
			Appointment: ap,
			ActorID:     in.DoctorID,
		})

	case domain.StatusCancelled:
		if err := domain.Cancel(ap, now); err != nil {
			return nil, err
		}
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}

		uc.events.Emit(domain.Event{
			Type:        domain.EventCancelled,
			Appointment: ap,
			ActorID:     in.DoctorID,
		})

	default:
		return nil, httperr.ErrBusiness("invalid_status")
	}

	return ap, nil
}
