package booking

import (
	"context"
	"time"

	"github.com/phucdtWork/clinic-scheduler/internal/models"
)

// Repository is the storage boundary of the booking engine. The
// conditional-write methods must run their read-check-write sequence
// inside a single storage transaction.
type Repository interface {
	// -------- Users --------
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Schedule --------
	GetScheduleByDoctor(
		ctx context.Context,
		doctorID uint,
	) (*models.DoctorSchedule, error)

	UpsertSchedule(
		ctx context.Context,
		sched *models.DoctorSchedule,
	) error

	// -------- Appointment (lookup) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	FindByRequestID(
		ctx context.Context,
		patientID uint,
		requestID string,
	) (*models.Appointment, error)

	ListForDoctorDay(
		ctx context.Context,
		doctorID uint,
		day time.Time,
	) ([]models.Appointment, error)

	ListForDoctor(
		ctx context.Context,
		doctorID uint,
		status string,
	) ([]models.Appointment, error)

	ListForPatient(
		ctx context.Context,
		patientID uint,
	) ([]models.Appointment, error)

	CountLiveOnDay(
		ctx context.Context,
		doctorID uint,
		day time.Time,
	) (int64, error)

	// -------- Appointment (conditional writes) --------
	CreateIfSlotFree(
		ctx context.Context,
		ap *models.Appointment,
		allowDouble bool,
	) error

	RescheduleIfSlotFree(
		ctx context.Context,
		ap *models.Appointment,
		allowDouble bool,
	) error

	ConfirmAndRejectCompeting(
		ctx context.Context,
		ap *models.Appointment,
		rejectionReason string,
	) ([]models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error
}
