package booking

import (
	"sort"
	"strings"
	"time"

	"github.com/phucdtWork/clinic-scheduler/internal/models"
	"github.com/phucdtWork/clinic-scheduler/internal/timezone"
)

const DefaultSlotDuration = 30 // minutes

// Slot is one bookable interval for a doctor on a date. Derived on every
// query, never persisted.
type Slot struct {
	DoctorID uint   `json:"doctor_id"`
	Date     string `json:"date"`
	Start    string `json:"start"`
	End      string `json:"end"`

	IsAvailable   bool  `json:"is_available"`
	IsBooked      bool  `json:"is_booked"`
	AppointmentID *uint `json:"appointment_id,omitempty"`
}

// ResolveDayRanges returns the working ranges in effect for date.
// Precedence: blocked date > custom schedule > weekly hours.
func ResolveDayRanges(sched *models.DoctorSchedule, date time.Time) []models.TimeRange {
	day := date.Format("2006-01-02")

	for _, blocked := range sched.BlockedDates {
		if blocked == day {
			return nil
		}
	}

	for _, cs := range sched.CustomSchedules {
		if cs.Date != day {
			continue
		}
		if !cs.IsWorking {
			return nil
		}
		return cs.TimeRanges
	}

	weekday := strings.ToLower(date.Weekday().String())
	return sched.WorkingHours[weekday]
}

// GenerateSlots discretizes the day's working ranges into slots of the
// schedule's duration, removes break overlaps and past starts, and marks
// slots held by live appointments. Pure and deterministic for fixed
// inputs; appointments must already be filtered to this doctor and date.
func GenerateSlots(
	sched *models.DoctorSchedule,
	date time.Time,
	appointments []models.Appointment,
	now time.Time,
) []Slot {

	ranges := ResolveDayRanges(sched, date)
	if len(ranges) == 0 {
		return []Slot{}
	}

	sorted := make([]models.TimeRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	duration := sched.SlotDuration
	if duration <= 0 {
		duration = DefaultSlotDuration
	}

	loc := timezone.Location(sched.Timezone)
	day := date.In(loc)
	dayStr := day.Format("2006-01-02")

	slots := []Slot{}

	for _, wr := range sorted {
		rangeStart := minutesOf(wr.Start)
		rangeEnd := minutesOf(wr.End)

		// no partial trailing slot: the last slot must end at or
		// before the range end
		for cur := rangeStart; cur+duration <= rangeEnd; cur += duration {
			slot := Slot{
				DoctorID:    sched.DoctorID,
				Date:        dayStr,
				Start:       clockOf(cur),
				End:         clockOf(cur + duration),
				IsAvailable: true,
			}

			if intersectsBreak(sched.BreakTimes, cur, cur+duration) {
				continue
			}

			startAt := time.Date(day.Year(), day.Month(), day.Day(), cur/60, cur%60, 0, 0, loc)
			if !startAt.After(now) {
				continue
			}

			markIfBooked(&slot, appointments)
			slots = append(slots, slot)
		}
	}

	return slots
}

// intersectsBreak catches partial overlaps and containment in either
// direction, not just exact matches.
func intersectsBreak(breaks []models.TimeRange, start, end int) bool {
	for _, br := range breaks {
		if start < minutesOf(br.End) && end > minutesOf(br.Start) {
			return true
		}
	}
	return false
}

// markIfBooked flags the slot when a live appointment holds the same
// start and end. If several live appointments share a start the first
// match wins; that situation is a defensive fallback, the conflict
// invariant keeps it from arising.
func markIfBooked(slot *Slot, appointments []models.Appointment) {
	for i := range appointments {
		ap := &appointments[i]
		if !IsLive(Status(ap.Status)) {
			continue
		}
		if ap.StartTime != slot.Start || ap.EndTime != slot.End {
			continue
		}

		id := ap.ID
		slot.IsBooked = true
		slot.IsAvailable = false
		slot.AppointmentID = &id
		return
	}
}
