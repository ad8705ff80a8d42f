package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phucdtWork/clinic-scheduler/internal/models"
)

// 2024-01-01 was a Monday; stepping whole weeks keeps the weekday.
var (
	anchorMonday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	futureMonday = anchorMonday.AddDate(0, 0, 7*500)
	fixedNow     = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
)

func mondaySchedule() *models.DoctorSchedule {
	return &models.DoctorSchedule{
		DoctorID: 42,
		WorkingHours: models.WeeklySchedule{
			"monday": {{Start: "09:00", End: "12:00"}},
		},
		SlotDuration: 30,
		BreakTimes:   []models.TimeRange{{Start: "10:00", End: "10:30"}},
		Timezone:     "UTC",
	}
}

func starts(slots []Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}

func TestGenerateSlotsExampleScenario(t *testing.T) {
	slots := GenerateSlots(mondaySchedule(), futureMonday, nil, fixedNow)

	require.Len(t, slots, 5, "the 10:00 slot is removed by the break")
	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00", "11:30"}, starts(slots))

	for _, s := range slots {
		assert.True(t, s.IsAvailable)
		assert.False(t, s.IsBooked)
		assert.Nil(t, s.AppointmentID)
		assert.Equal(t, uint(42), s.DoctorID)
		assert.Equal(t, futureMonday.Format("2006-01-02"), s.Date)
	}
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	sched := mondaySchedule()
	apps := []models.Appointment{
		{ID: 7, StartTime: "09:30", EndTime: "10:00", Status: string(StatusPending)},
	}

	first := GenerateSlots(sched, futureMonday, apps, fixedNow)
	second := GenerateSlots(sched, futureMonday, apps, fixedNow)
	assert.Equal(t, first, second)
}

func TestGenerateSlotsBlockedDate(t *testing.T) {
	sched := mondaySchedule()
	sched.BlockedDates = []string{futureMonday.Format("2006-01-02")}

	slots := GenerateSlots(sched, futureMonday, nil, fixedNow)
	assert.Empty(t, slots, "blocked dates win over working hours")
}

func TestGenerateSlotsCustomScheduleOverride(t *testing.T) {
	day := futureMonday.Format("2006-01-02")

	t.Run("custom ranges replace weekly hours", func(t *testing.T) {
		sched := mondaySchedule()
		sched.CustomSchedules = []models.CustomSchedule{
			{Date: day, IsWorking: true, TimeRanges: []models.TimeRange{{Start: "14:00", End: "15:00"}}},
		}

		slots := GenerateSlots(sched, futureMonday, nil, fixedNow)
		assert.Equal(t, []string{"14:00", "14:30"}, starts(slots))
	})

	t.Run("isWorking=false empties the day", func(t *testing.T) {
		sched := mondaySchedule()
		sched.CustomSchedules = []models.CustomSchedule{
			{Date: day, IsWorking: false},
		}

		slots := GenerateSlots(sched, futureMonday, nil, fixedNow)
		assert.Empty(t, slots)
	})

	t.Run("override only applies to its own date", func(t *testing.T) {
		sched := mondaySchedule()
		sched.CustomSchedules = []models.CustomSchedule{
			{Date: "2019-01-07", IsWorking: false},
		}

		slots := GenerateSlots(sched, futureMonday, nil, fixedNow)
		assert.Len(t, slots, 5)
	})
}

func TestGenerateSlotsDayOff(t *testing.T) {
	tuesday := futureMonday.AddDate(0, 0, 1)
	slots := GenerateSlots(mondaySchedule(), tuesday, nil, fixedNow)
	assert.Empty(t, slots, "no weekly entry means day off")
}

func TestGenerateSlotsBreakExclusion(t *testing.T) {
	t.Run("break spanning exactly one slot removes only that slot", func(t *testing.T) {
		sched := mondaySchedule()
		slots := GenerateSlots(sched, futureMonday, nil, fixedNow)

		assert.NotContains(t, starts(slots), "10:00")
		assert.Contains(t, starts(slots), "09:30")
		assert.Contains(t, starts(slots), "10:30")
	})

	t.Run("partial overlap also removes the slot", func(t *testing.T) {
		sched := mondaySchedule()
		sched.BreakTimes = []models.TimeRange{{Start: "10:15", End: "10:45"}}

		slots := GenerateSlots(sched, futureMonday, nil, fixedNow)
		assert.NotContains(t, starts(slots), "10:00")
		assert.NotContains(t, starts(slots), "10:30")
		assert.Contains(t, starts(slots), "11:00")
	})

	t.Run("break wider than a slot removes everything it covers", func(t *testing.T) {
		sched := mondaySchedule()
		sched.BreakTimes = []models.TimeRange{{Start: "09:45", End: "11:15"}}

		slots := GenerateSlots(sched, futureMonday, nil, fixedNow)
		assert.Equal(t, []string{"09:00", "11:30"}, starts(slots))
	})
}

func TestGenerateSlotsDropsTrailingRemainder(t *testing.T) {
	sched := mondaySchedule()
	sched.BreakTimes = nil
	sched.WorkingHours = models.WeeklySchedule{
		"monday": {{Start: "09:00", End: "10:45"}},
	}

	slots := GenerateSlots(sched, futureMonday, nil, fixedNow)
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, starts(slots),
		"no short slot for the 10:30-10:45 remainder")
}

func TestGenerateSlotsBookedMarking(t *testing.T) {
	sched := mondaySchedule()

	tests := []struct {
		status string
		booked bool
	}{
		{string(StatusPending), true},
		{string(StatusConfirmed), true},
		{string(StatusCancelled), false},
		{string(StatusRejected), false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			apps := []models.Appointment{
				{ID: 99, StartTime: "09:30", EndTime: "10:00", Status: tt.status},
			}

			slots := GenerateSlots(sched, futureMonday, apps, fixedNow)

			var target *Slot
			for i := range slots {
				if slots[i].Start == "09:30" {
					target = &slots[i]
				}
			}
			require.NotNil(t, target)

			if tt.booked {
				assert.True(t, target.IsBooked)
				assert.False(t, target.IsAvailable)
				require.NotNil(t, target.AppointmentID)
				assert.Equal(t, uint(99), *target.AppointmentID)
			} else {
				assert.False(t, target.IsBooked)
				assert.True(t, target.IsAvailable)
			}

			// neighbors stay free
			for _, s := range slots {
				if s.Start != "09:30" {
					assert.True(t, s.IsAvailable, "slot %s", s.Start)
				}
			}
		})
	}
}

func TestGenerateSlotsFirstMatchWinsOnSharedStart(t *testing.T) {
	sched := mondaySchedule()
	apps := []models.Appointment{
		{ID: 1, StartTime: "09:00", EndTime: "09:30", Status: string(StatusPending)},
		{ID: 2, StartTime: "09:00", EndTime: "09:30", Status: string(StatusConfirmed)},
	}

	slots := GenerateSlots(sched, futureMonday, apps, fixedNow)
	require.NotEmpty(t, slots)
	require.NotNil(t, slots[0].AppointmentID)
	assert.Equal(t, uint(1), *slots[0].AppointmentID)
}

func TestGenerateSlotsNoPastSlots(t *testing.T) {
	sched := mondaySchedule()

	// querying the anchor Monday itself, mid-morning
	now := time.Date(2024, 1, 1, 10, 40, 0, 0, time.UTC)
	slots := GenerateSlots(sched, anchorMonday, nil, now)

	assert.Equal(t, []string{"11:00", "11:30"}, starts(slots))

	t.Run("slot starting exactly now is dropped", func(t *testing.T) {
		exact := time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)
		slots := GenerateSlots(sched, anchorMonday, nil, exact)
		assert.Equal(t, []string{"11:30"}, starts(slots))
	})
}

func TestGenerateSlotsMultipleRangesChronological(t *testing.T) {
	sched := mondaySchedule()
	sched.BreakTimes = nil
	sched.WorkingHours = models.WeeklySchedule{
		"monday": {
			{Start: "14:00", End: "15:00"},
			{Start: "09:00", End: "10:00"},
		},
	}

	slots := GenerateSlots(sched, futureMonday, nil, fixedNow)
	assert.Equal(t, []string{"09:00", "09:30", "14:00", "14:30"}, starts(slots))
}

func TestGenerateSlotsHourDuration(t *testing.T) {
	sched := mondaySchedule()
	sched.SlotDuration = 60
	sched.BreakTimes = nil

	slots := GenerateSlots(sched, futureMonday, nil, fixedNow)
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, starts(slots))
	assert.Equal(t, "10:00", slots[0].End)
}

func TestGenerateSlotsDefaultDuration(t *testing.T) {
	sched := mondaySchedule()
	sched.SlotDuration = 0
	sched.BreakTimes = nil

	slots := GenerateSlots(sched, futureMonday, nil, fixedNow)
	assert.Len(t, slots, 6, "zero duration falls back to 30 minutes")
}

func TestResolveDayRangesPrecedence(t *testing.T) {
	day := futureMonday.Format("2006-01-02")

	sched := mondaySchedule()
	sched.BlockedDates = []string{day}
	sched.CustomSchedules = []models.CustomSchedule{
		{Date: day, IsWorking: true, TimeRanges: []models.TimeRange{{Start: "08:00", End: "09:00"}}},
	}

	assert.Nil(t, ResolveDayRanges(sched, futureMonday),
		"blocked date beats even a custom schedule")
}
