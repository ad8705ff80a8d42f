package models

import "time"

// TimeRange is a wall-clock interval in the doctor's timezone.
// Start and End are zero-padded "HH:MM" 24h strings, so string
// comparison matches chronological comparison.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WeeklySchedule maps lowercase weekday names ("monday".."sunday")
// to that day's working ranges. A missing or empty entry is a day off.
type WeeklySchedule map[string][]TimeRange

// CustomSchedule overrides the weekly hours for a single date.
type CustomSchedule struct {
	Date       string      `json:"date"` // YYYY-MM-DD
	TimeRanges []TimeRange `json:"time_ranges"`
	IsWorking  bool        `json:"is_working"`
}

type DoctorSchedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DoctorID uint `gorm:"uniqueIndex" json:"doctor_id"`
	Doctor   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	WorkingHours WeeklySchedule `gorm:"serializer:json" json:"working_hours"`
	SlotDuration int            `gorm:"default:30" json:"slot_duration"`

	BreakTimes      []TimeRange      `gorm:"serializer:json" json:"break_times"`
	BlockedDates    []string         `gorm:"serializer:json" json:"blocked_dates"`
	CustomSchedules []CustomSchedule `gorm:"serializer:json" json:"custom_schedules"`

	Timezone              string `gorm:"size:64" json:"timezone"`
	AllowDoubleBooking    bool   `json:"allow_double_booking"`
	MaxAppointmentsPerDay int    `json:"max_appointments_per_day"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
