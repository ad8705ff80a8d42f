package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phucdtWork/clinic-scheduler/internal/httperr"
)

// businessStatus maps engine error codes to HTTP statuses. Unknown
// codes fall back to 400 so a business error never leaks as a 500.
var businessStatus = map[string]int{
	"appointment_not_found": http.StatusNotFound,
	"schedule_not_found":    http.StatusNotFound,
	"doctor_not_found":      http.StatusNotFound,

	"not_appointment_owner":  http.StatusForbidden,
	"not_appointment_doctor": http.StatusForbidden,

	"slot_unavailable":  http.StatusConflict,
	"day_limit_reached": http.StatusConflict,

	"too_close_to_appointment": http.StatusPreconditionFailed,

	"invalid_transition":        http.StatusUnprocessableEntity,
	"invalid_status":            http.StatusUnprocessableEntity,
	"rejection_reason_required": http.StatusUnprocessableEntity,
}

var businessMessage = map[string]string{
	"appointment_not_found": "Appointment not found.",
	"schedule_not_found":    "This doctor has no schedule configured.",
	"doctor_not_found":      "Doctor not found.",

	"not_appointment_owner":  "You can only update your own appointments.",
	"not_appointment_doctor": "You can only update appointments booked with you.",

	"slot_unavailable":  "This time slot is no longer available. Please pick another one.",
	"day_limit_reached": "The doctor is fully booked on this day.",

	"too_close_to_appointment": "Appointments can only be rescheduled more than 24 hours in advance.",

	"invalid_transition":        "This status change is not allowed from the appointment's current state.",
	"invalid_status":            "Unknown appointment status.",
	"rejection_reason_required": "A rejection reason is required.",

	"invalid_time_slot":       "Time slot must be HH:MM with start before end.",
	"invalid_time_range":      "Time range must be HH:MM with start before end.",
	"overlapping_time_ranges": "Time ranges for the same day must not overlap.",
	"invalid_weekday":         "Weekday keys must be lowercase day names.",
	"invalid_slot_duration":   "Slot duration must be 30 or 60 minutes.",
	"invalid_timezone":        "Unknown timezone.",
	"invalid_date":            "Dates must be formatted YYYY-MM-DD.",
	"invalid_range":           "The range must cover between 1 and 31 days.",
	"invalid_request_id":      "request_id must be a UUID.",
	"invalid_blocked_date":    "Blocked dates must be formatted YYYY-MM-DD.",
	"invalid_custom_schedule": "Custom schedules need a YYYY-MM-DD date and valid ranges.",
}

func writeBusinessError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	status := businessStatus[code]
	if status == 0 {
		status = http.StatusBadRequest
	}

	message := businessMessage[code]
	if message == "" {
		message = "Request rejected."
	}

	httperr.Write(c, status, code, message)
}
