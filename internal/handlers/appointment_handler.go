package handlers

import (
	"strconv"
	"time"

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

type AppointmentHandler struct {
	createUC       *ucBooking.CreateAppointment
	updateStatusUC *ucBooking.UpdateStatus
	cancelUC       *ucBooking.CancelAppointment
	rescheduleUC   *ucBooking.RescheduleAppointment
	listPatientUC  *ucBooking.ListForPatient
	listDoctorUC   *ucBooking.ListForDoctor
}

func NewAppointmentHandler(
	createUC *ucBooking.CreateAppointment,
	updateStatusUC *ucBooking.UpdateStatus,
	cancelUC *ucBooking.CancelAppointment,
	rescheduleUC *ucBooking.RescheduleAppointment,
	listPatientUC *ucBooking.ListForPatient,
	listDoctorUC *ucBooking.ListForDoctor,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:       createUC,
		updateStatusUC: updateStatusUC,
		cancelUC:       cancelUC,
		rescheduleUC:   rescheduleUC,
		listPatientUC:  listPatientUC,
		listDoctorUC:   listDoctorUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	DoctorID uint             `json:"doctor_id" binding:"required"`
	Date     time.Time        `json:"date" binding:"required"`
	TimeSlot models.TimeRange `json:"time_slot" binding:"required"`
	Reason   string           `json:"reason" binding:"required"`
	Notes    string           `json:"notes"`
	Fee      float64          `json:"fee"`

	RequestID string `json:"request_id"`
}

type UpdateStatusRequest struct {
	Status          string `json:"status" binding:"required"`
	DoctorNotes     string `json:"doctor_notes"`
	RejectionReason string `json:"rejection_reason"`
}

type PatientUpdateRequest struct {
	Action string `json:"action" binding:"required,oneof=cancel reschedule"`

	// reschedule only
	Date     time.Time        `json:"date"`
	TimeSlot models.TimeRange `json:"time_slot"`
}

// ======================================================
// CREATE (patient)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid appointment payload.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateAppointmentInput{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
		Reason:    req.Reason,
		Notes:     req.Notes,
		Fee:       req.Fee,
		RequestID: req.RequestID,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LISTS
// ======================================================

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	views, err := h.listPatientUC.Execute(c.Request.Context(), patientID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, views)
}

func (h *AppointmentHandler) ListForDoctor(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	views, err := h.listDoctorUC.Execute(c.Request.Context(), doctorID, c.Query("status"))
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, views)
}

// ======================================================
// STATUS (doctor) — confirm / reject / complete / cancel
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	appointmentID, ok := parseAppointmentID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid status payload.")
		return
	}

	ap, err := h.updateStatusUC.Execute(c.Request.Context(), ucBooking.UpdateStatusInput{
		DoctorID:        doctorID,
		AppointmentID:   appointmentID,
		Status:          req.Status,
		DoctorNotes:     req.DoctorNotes,
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// PATIENT UPDATE — cancel / reschedule
// ======================================================

func (h *AppointmentHandler) PatientUpdate(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	appointmentID, ok := parseAppointmentID(c)
	if !ok {
		return
	}

	var req PatientUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid update payload.")
		return
	}

	var (
		ap  *models.Appointment
		err error
	)

	switch req.Action {
	case "cancel":
		ap, err = h.cancelUC.Execute(c.Request.Context(), patientID, appointmentID)

	case "reschedule":
		if req.Date.IsZero() {
			httperr.BadRequest(c, "invalid_request", "Reschedule requires a date and time slot.")
			return
		}
		ap, err = h.rescheduleUC.Execute(c.Request.Context(), ucBooking.RescheduleInput{
			PatientID:     patientID,
			AppointmentID: appointmentID,
			Date:          req.Date,
			TimeSlot:      req.TimeSlot,
		})
	}

	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func parseAppointmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_appointment_id", "Appointment id must be a positive number.")
		return 0, false
	}
	return uint(id), true
}
