package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/phucdtWork/clinic-scheduler/internal/httperr"
	"github.com/phucdtWork/clinic-scheduler/internal/httpresp"
	"github.com/phucdtWork/clinic-scheduler/internal/middleware"
	"github.com/phucdtWork/clinic-scheduler/internal/models"
	ucBooking "github.com/phucdtWork/clinic-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	getSlotsUC      *ucBooking.GetSlots
	getSlotsRangeUC *ucBooking.GetSlotsRange
	getScheduleUC   *ucBooking.GetSchedule
	upsertUC        *ucBooking.UpsertSchedule
}

func NewScheduleHandler(
	getSlotsUC *ucBooking.GetSlots,
	getSlotsRangeUC *ucBooking.GetSlotsRange,
	getScheduleUC *ucBooking.GetSchedule,
	upsertUC *ucBooking.UpsertSchedule,
) *ScheduleHandler {
	return &ScheduleHandler{
		getSlotsUC:      getSlotsUC,
		getSlotsRangeUC: getSlotsRangeUC,
		getScheduleUC:   getScheduleUC,
		upsertUC:        upsertUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpsertScheduleRequest struct {
	WorkingHours    models.WeeklySchedule   `json:"working_hours" binding:"required"`
	SlotDuration    int                     `json:"slot_duration" binding:"required"`
	BreakTimes      []models.TimeRange      `json:"break_times"`
	BlockedDates    []string                `json:"blocked_dates"`
	CustomSchedules []models.CustomSchedule `json:"custom_schedules"`

	Timezone              string `json:"timezone"`
	AllowDoubleBooking    bool   `json:"allow_double_booking"`
	MaxAppointmentsPerDay int    `json:"max_appointments_per_day"`
}

// ======================================================
// SLOTS (public, read-only)
// ======================================================

func (h *ScheduleHandler) GetSlots(c *gin.Context) {
	doctorID, ok := parseDoctorID(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Query parameter 'date' is required.")
		return
	}

	slots, err := h.getSlotsUC.Execute(c.Request.Context(), doctorID, date)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"slots": slots})
}

func (h *ScheduleHandler) GetSlotsRange(c *gin.Context) {
	doctorID, ok := parseDoctorID(c)
	if !ok {
		return
	}

	startDate := c.Query("startDate")
	if startDate == "" {
		httperr.BadRequest(c, "missing_start_date", "Query parameter 'startDate' is required.")
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil {
		httperr.BadRequest(c, "invalid_days", "Query parameter 'days' must be a number.")
		return
	}

	byDate, err := h.getSlotsRangeUC.Execute(c.Request.Context(), doctorID, startDate, days)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, byDate)
}

// ======================================================
// SCHEDULE CONFIG
// ======================================================

func (h *ScheduleHandler) GetByDoctor(c *gin.Context) {
	doctorID, ok := parseDoctorID(c)
	if !ok {
		return
	}

	sched, err := h.getScheduleUC.Execute(c.Request.Context(), doctorID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, sched)
}

func (h *ScheduleHandler) Upsert(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpsertScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid schedule payload.")
		return
	}

	sched, err := h.upsertUC.Execute(c.Request.Context(), ucBooking.UpsertScheduleInput{
		DoctorID:              doctorID,
		WorkingHours:          req.WorkingHours,
		SlotDuration:          req.SlotDuration,
		BreakTimes:            req.BreakTimes,
		BlockedDates:          req.BlockedDates,
		CustomSchedules:       req.CustomSchedules,
		Timezone:              req.Timezone,
		AllowDoubleBooking:    req.AllowDoubleBooking,
		MaxAppointmentsPerDay: req.MaxAppointmentsPerDay,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, sched)
}

func parseDoctorID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("doctorId"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_doctor_id", "Doctor id must be a positive number.")
		return 0, false
	}
	return uint(id), true
}
