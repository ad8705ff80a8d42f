package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/phucdtWork/clinic-scheduler/internal/domain/booking"
	"github.com/phucdtWork/clinic-scheduler/internal/httperr"
	"github.com/phucdtWork/clinic-scheduler/internal/lock"
	"github.com/phucdtWork/clinic-scheduler/internal/models"
	"github.com/phucdtWork/clinic-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	PatientID uint
	DoctorID  uint

	Date     time.Time
	TimeSlot models.TimeRange

	Reason string
	Notes  string
	Fee    float64

	// RequestID makes create retry-safe: the same patient resubmitting
	// the same id gets the original appointment back.
	RequestID string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	events domain.EventSink
	locker *lock.SlotLocker
}

func NewCreateAppointment(
	repo domain.Repository,
	events domain.EventSink,
	locker *lock.SlotLocker,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		events: events,
		locker: locker,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if err := domain.ValidateRange(in.TimeSlot); err != nil {
		return nil, httperr.ErrBusiness("invalid_time_slot")
	}

	doctor, err := uc.repo.GetUser(ctx, in.DoctorID)
	if err != nil || doctor.Role != models.RoleDoctor {
		return nil, httperr.ErrBusiness("doctor_not_found")
	}

	sched, err := uc.repo.GetScheduleByDoctor(ctx, in.DoctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("schedule_not_found")
	}

	loc := timezone.Location(sched.Timezone)
	day := dayOf(in.Date, loc)
	dayStr := day.Format("2006-01-02")

	if in.RequestID != "" {
		if _, err := uuid.Parse(in.RequestID); err != nil {
			return nil, httperr.ErrBusiness("invalid_request_id")
		}
		if existing, err := uc.repo.FindByRequestID(ctx, in.PatientID, in.RequestID); err != nil {
			return nil, err
		} else if existing != nil {
			return existing, nil
		}
	}

	// the requested slot must be one the generator would offer today:
	// inside working hours, outside breaks, not blocked, not in the past
	apps, err := uc.repo.ListForDoctorDay(ctx, in.DoctorID, day)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(sched.Timezone)
	if !slotOffered(sched, day, apps, now, in.TimeSlot, sched.AllowDoubleBooking) {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	if sched.MaxAppointmentsPerDay > 0 {
		count, err := uc.repo.CountLiveOnDay(ctx, in.DoctorID, day)
		if err != nil {
			return nil, err
		}
		if count >= int64(sched.MaxAppointmentsPerDay) {
			return nil, httperr.ErrBusiness("day_limit_reached")
		}
	}

	release, err := uc.locker.Acquire(ctx, lock.Key(in.DoctorID, dayStr, in.TimeSlot.Start))
	if err != nil {
		return nil, err
	}
	defer release()

	fee := in.Fee
	if fee <= 0 {
		fee = doctor.ConsultationFee
	}

	ap := &models.Appointment{
		PatientID: in.PatientID,
		DoctorID:  in.DoctorID,
		Date:      day,
		StartTime: in.TimeSlot.Start,
		EndTime:   in.TimeSlot.End,
		Status:    string(domain.InitialStatus()),
		Reason:    in.Reason,
		Notes:     in.Notes,
		Fee:       fee,
		RequestID: in.RequestID,
	}

	if err := uc.repo.CreateIfSlotFree(ctx, ap, sched.AllowDoubleBooking); err != nil {
		return nil, err
	}

	uc.events.Emit(domain.Event{
		Type:        domain.EventCreated,
		Appointment: ap,
		ActorID:     in.PatientID,
	})

	return ap, nil
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// slotOffered checks the requested slot against the generated set. With
// double booking enabled a booked slot still counts as offered.
func slotOffered(
	sched *models.DoctorSchedule,
	day time.Time,
	apps []models.Appointment,
	now time.Time,
	requested models.TimeRange,
	allowBooked bool,
) bool {

	for _, s := range domain.GenerateSlots(sched, day, apps, now) {
		if s.Start != requested.Start || s.End != requested.End {
			continue
		}
		return s.IsAvailable || allowBooked
	}
	return false
}
