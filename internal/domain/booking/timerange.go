package booking

import (
	"regexp"
	"sort"

	"github.com/phucdtWork/clinic-scheduler/internal/httperr"
	"github.com/phucdtWork/clinic-scheduler/internal/models"
)

var (
	hhmmPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

func IsValidClockTime(hm string) bool {
	return hhmmPattern.MatchString(hm)
}

func IsValidDateString(d string) bool {
	return datePattern.MatchString(d)
}

// ValidateRange checks HH:MM format and start < end. Both sides are
// zero-padded, so lexicographic order is chronological order.
func ValidateRange(r models.TimeRange) error {
	if !IsValidClockTime(r.Start) || !IsValidClockTime(r.End) {
		return httperr.ErrBusiness("invalid_time_range")
	}
	if r.Start >= r.End {
		return httperr.ErrBusiness("invalid_time_range")
	}
	return nil
}

// RangesOverlap reports whether two ranges share any time, including
// partial and full containment. Touching boundaries do not overlap.
func RangesOverlap(a, b models.TimeRange) bool {
	return a.Start < b.End && b.Start < a.End
}

// ValidateDayRanges checks each range and rejects overlapping pairs
// within the same day.
func ValidateDayRanges(ranges []models.TimeRange) error {
	for _, r := range ranges {
		if err := ValidateRange(r); err != nil {
			return err
		}
	}

	sorted := make([]models.TimeRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	for i := 1; i < len(sorted); i++ {
		if RangesOverlap(sorted[i-1], sorted[i]) {
			return httperr.ErrBusiness("overlapping_time_ranges")
		}
	}
	return nil
}

var weekdayNames = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

// ValidateWeekly checks weekday keys and per-day range consistency.
func ValidateWeekly(ws models.WeeklySchedule) error {
	for day, ranges := range ws {
		if !weekdayNames[day] {
			return httperr.ErrBusiness("invalid_weekday")
		}
		if err := ValidateDayRanges(ranges); err != nil {
			return err
		}
	}
	return nil
}

func minutesOf(hm string) int {
	h := int(hm[0]-'0')*10 + int(hm[1]-'0')
	m := int(hm[3]-'0')*10 + int(hm[4]-'0')
	return h*60 + m
}

func clockOf(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	return string([]byte{
		byte('0' + h/10), byte('0' + h%10),
		':',
		byte('0' + m/10), byte('0' + m%10),
	})
}
