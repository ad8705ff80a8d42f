package booking

import (
	"context"
	"time"

	domain "github.com/phucdtWork/clinic-scheduler/internal/domain/booking"
	"github.com/phucdtWork/clinic-scheduler/internal/httperr"
	"github.com/phucdtWork/clinic-scheduler/internal/lock"
	"github.com/phucdtWork/clinic-scheduler/internal/models"
	"github.com/phucdtWork/clinic-scheduler/internal/timezone"
)

type RescheduleInput struct {
	PatientID     uint
	AppointmentID uint

	Date     time.Time
	TimeSlot models.TimeRange
}

type RescheduleAppointment struct {
	repo   domain.Repository
	events domain.EventSink
	locker *lock.SlotLocker
}

func NewRescheduleAppointment(
	repo domain.Repository,
	events domain.EventSink,
	locker *lock.SlotLocker,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:   repo,
		events: events,
		locker: locker,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if ap.PatientID != in.PatientID {
		return nil, httperr.ErrBusiness("not_appointment_owner")
	}

	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	sched, err := uc.repo.GetScheduleByDoctor(ctx, ap.DoctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("schedule_not_found")
	}

	loc := timezone.Location(sched.Timezone)
	now := timezone.NowIn(sched.Timezone)

	// cutoff is measured against the currently scheduled start
	if err := domain.CheckRescheduleCutoff(ap, now, loc); err != nil {
		return nil, err
	}

	day := dayOf(in.Date, loc)
	dayStr := day.Format("2006-01-02")

	apps, err := uc.repo.ListForDoctorDay(ctx, ap.DoctorID, day)
	if err != nil {
		return nil, err
	}

	// self never blocks its own move to another slot on the same day
	others := apps[:0:0]
	for _, a := range apps {
		if a.ID != ap.ID {
			others = append(others, a)
		}
	}

	if !slotOffered(sched, day, others, now, in.TimeSlot, sched.AllowDoubleBooking) {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	release, err := uc.locker.Acquire(ctx, lock.Key(ap.DoctorID, dayStr, in.TimeSlot.Start))
	if err != nil {
		return nil, err
	}
	defer release()

	if err := domain.Reschedule(ap, day, in.TimeSlot); err != nil {
		return nil, err
	}

	if err := uc.repo.RescheduleIfSlotFree(ctx, ap, sched.AllowDoubleBooking); err != nil {
		return nil, err
	}

	uc.events.Emit(domain.Event{
		Type:        domain.EventRescheduled,
		Appointment: ap,
		ActorID:     in.PatientID,
	})

	return ap, nil
}
