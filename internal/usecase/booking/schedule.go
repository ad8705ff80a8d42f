package booking

import (
	"context"

	domain "github.com/phucdtWork/clinic-scheduler/internal/domain/booking"
	"github.com/phucdtWork/clinic-scheduler/internal/httperr"
	"github.com/phucdtWork/clinic-scheduler/internal/models"
	"github.com/phucdtWork/clinic-scheduler/internal/timezone"
)

type GetSchedule struct {
	repo domain.Repository
}

func NewGetSchedule(repo domain.Repository) *GetSchedule {
	return &GetSchedule{repo: repo}
}

func (uc *GetSchedule) Execute(
	ctx context.Context,
	doctorID uint,
) (*models.DoctorSchedule, error) {

	sched, err := uc.repo.GetScheduleByDoctor(ctx, doctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("schedule_not_found")
	}
	return sched, nil
}

type UpsertScheduleInput struct {
	DoctorID uint

	WorkingHours    models.WeeklySchedule
	SlotDuration    int
	BreakTimes      []models.TimeRange
	BlockedDates    []string
	CustomSchedules []models.CustomSchedule

	Timezone              string
	AllowDoubleBooking    bool
	MaxAppointmentsPerDay int
}

type UpsertSchedule struct {
	repo domain.Repository
}

func NewUpsertSchedule(repo domain.Repository) *UpsertSchedule {
	return &UpsertSchedule{repo: repo}
}

// Execute creates or replaces the caller's schedule, keyed on doctor id.
func (uc *UpsertSchedule) Execute(
	ctx context.Context,
	in UpsertScheduleInput,
) (*models.DoctorSchedule, error) {

	if in.SlotDuration != 30 && in.SlotDuration != 60 {
		return nil, httperr.ErrBusiness("invalid_slot_duration")
	}

	if err := domain.ValidateWeekly(in.WorkingHours); err != nil {
		return nil, err
	}

	for _, br := range in.BreakTimes {
		if err := domain.ValidateRange(br); err != nil {
			return nil, err
		}
	}

	for _, d := range in.BlockedDates {
		if !domain.IsValidDateString(d) {
			return nil, httperr.ErrBusiness("invalid_blocked_date")
		}
	}

	for _, cs := range in.CustomSchedules {
		if !domain.IsValidDateString(cs.Date) {
			return nil, httperr.ErrBusiness("invalid_custom_schedule")
		}
		if cs.IsWorking {
			if err := domain.ValidateDayRanges(cs.TimeRanges); err != nil {
				return nil, err
			}
		}
	}

	tz := in.Timezone
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		return nil, httperr.ErrBusiness("invalid_timezone")
	}

	sched := &models.DoctorSchedule{
		DoctorID:              in.DoctorID,
		WorkingHours:          in.WorkingHours,
		SlotDuration:          in.SlotDuration,
		BreakTimes:            in.BreakTimes,
		BlockedDates:          in.BlockedDates,
		CustomSchedules:       in.CustomSchedules,
		Timezone:              tz,
		AllowDoubleBooking:    in.AllowDoubleBooking,
		MaxAppointmentsPerDay: in.MaxAppointmentsPerDay,
	}

	if err := uc.repo.UpsertSchedule(ctx, sched); err != nil {
		return nil, err
	}

	return sched, nil
}
