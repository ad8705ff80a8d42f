package booking

import (
	"context"
	"time"

	domain "github.com/phucdtWork/clinic-scheduler/internal/domain/booking"
	"github.com/phucdtWork/clinic-scheduler/internal/httperr"
	"github.com/phucdtWork/clinic-scheduler/internal/timezone"
)

const MaxRangeDays = 31

type GetSlots struct {
	repo domain.Repository
}

func NewGetSlots(repo domain.Repository) *GetSlots {
	return &GetSlots{repo: repo}
}

func (uc *GetSlots) Execute(
	ctx context.Context,
	doctorID uint,
	dateStr string,
) ([]domain.Slot, error) {

	sched, err := uc.repo.GetScheduleByDoctor(ctx, doctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("schedule_not_found")
	}

	loc := timezone.Location(sched.Timezone)

	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	apps, err := uc.repo.ListForDoctorDay(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(sched.Timezone)
	return domain.GenerateSlots(sched, date, apps, now), nil
}

type GetSlotsRange struct {
	repo domain.Repository
}

func NewGetSlotsRange(repo domain.Repository) *GetSlotsRange {
	return &GetSlotsRange{repo: repo}
}

// Execute returns one slot list per day in [startDate, startDate+days).
// There is no cross-day slot logic; each day is generated independently.
func (uc *GetSlotsRange) Execute(
	ctx context.Context,
	doctorID uint,
	startDateStr string,
	days int,
) (map[string][]domain.Slot, error) {

	if days < 1 || days > MaxRangeDays {
		return nil, httperr.ErrBusiness("invalid_range")
	}

	sched, err := uc.repo.GetScheduleByDoctor(ctx, doctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("schedule_not_found")
	}

	loc := timezone.Location(sched.Timezone)

	start, err := time.ParseInLocation("2006-01-02", startDateStr, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	now := timezone.NowIn(sched.Timezone)
	out := make(map[string][]domain.Slot, days)

	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)

		apps, err := uc.repo.ListForDoctorDay(ctx, doctorID, date)
		if err != nil {
			return nil, err
		}

		out[date.Format("2006-01-02")] = domain.GenerateSlots(sched, date, apps, now)
	}

	return out, nil
}
