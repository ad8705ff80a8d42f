package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/phucdtWork/clinic-scheduler/internal/domain/booking"
	"github.com/phucdtWork/clinic-scheduler/internal/httperr"
	"github.com/phucdtWork/clinic-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

var liveStatuses = []string{
	string(domain.StatusPending),
	string(domain.StatusConfirmed),
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *BookingGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *BookingGormRepository) GetScheduleByDoctor(
	ctx context.Context,
	doctorID uint,
) (*models.DoctorSchedule, error) {

	var sched models.DoctorSchedule
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		First(&sched).Error; err != nil {
		return nil, err
	}
	return &sched, nil
}

func (r *BookingGormRepository) UpsertSchedule(
	ctx context.Context,
	sched *models.DoctorSchedule,
) error {

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doctor_id"}},
			UpdateAll: true,
		}).
		Create(sched).Error
}

// --------------------------------------------------
// Appointment (lookup)
// --------------------------------------------------

func (r *BookingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) FindByRequestID(
	ctx context.Context,
	patientID uint,
	requestID string,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND request_id = ?", patientID, requestID).
		First(&ap).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) ListForDoctorDay(
	ctx context.Context,
	doctorID uint,
	day time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"doctor_id = ? AND date >= ? AND date < ?",
			doctorID, day, day.Add(24*time.Hour),
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *BookingGormRepository) ListForDoctor(
	ctx context.Context,
	doctorID uint,
	status string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Patient").
		Where("doctor_id = ?", doctorID)

	if status != "" {
		q = q.Where("status = ?", status)
	}

	var apps []models.Appointment
	if err := q.Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *BookingGormRepository) ListForPatient(
	ctx context.Context,
	patientID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *BookingGormRepository) CountLiveOnDay(
	ctx context.Context,
	doctorID uint,
	day time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"doctor_id = ? AND date >= ? AND date < ? AND status IN ?",
			doctorID, day, day.Add(24*time.Hour), liveStatuses,
		).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --------------------------------------------------
// Appointment (conditional writes)
// --------------------------------------------------

// CreateIfSlotFree re-checks the slot under a row lock and inserts in
// the same transaction, so two racing creates cannot both observe a
// free slot.
func (r *BookingGormRepository) CreateIfSlotFree(
	ctx context.Context,
	ap *models.Appointment,
	allowDouble bool,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !allowDouble {
			taken, err := liveCountAtSlot(tx, ap.DoctorID, ap.Date, ap.StartTime, 0)
			if err != nil {
				return err
			}
			if taken > 0 {
				return httperr.ErrBusiness("slot_unavailable")
			}
		}

		return tx.Create(ap).Error
	})
}

func (r *BookingGormRepository) RescheduleIfSlotFree(
	ctx context.Context,
	ap *models.Appointment,
	allowDouble bool,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !allowDouble {
			taken, err := liveCountAtSlot(tx, ap.DoctorID, ap.Date, ap.StartTime, ap.ID)
			if err != nil {
				return err
			}
			if taken > 0 {
				return httperr.ErrBusiness("slot_unavailable")
			}
		}

		return tx.Save(ap).Error
	})
}

// ConfirmAndRejectCompeting persists the confirmed winner and rejects
// every other pending appointment on the same doctor/day/start in one
// transaction. Either the whole cascade lands or none of it does.
func (r *BookingGormRepository) ConfirmAndRejectCompeting(
	ctx context.Context,
	ap *models.Appointment,
	rejectionReason string,
) ([]models.Appointment, error) {

	var losers []models.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&current, ap.ID).Error; err != nil {
			return err
		}

		// a competing confirm may have landed between read and lock
		if current.Status != string(domain.StatusPending) {
			return httperr.ErrBusiness("invalid_transition")
		}

		var confirmed int64
		if err := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"doctor_id = ? AND date = ? AND start_time = ? AND status = ? AND id <> ?",
				ap.DoctorID, ap.Date, ap.StartTime, string(domain.StatusConfirmed), ap.ID,
			).
			Count(&confirmed).Error; err != nil {
			return err
		}
		if confirmed > 0 {
			return httperr.ErrBusiness("slot_unavailable")
		}

		if err := tx.Save(ap).Error; err != nil {
			return err
		}

		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"doctor_id = ? AND date = ? AND start_time = ? AND status = ? AND id <> ?",
				ap.DoctorID, ap.Date, ap.StartTime, string(domain.StatusPending), ap.ID,
			).
			Find(&losers).Error; err != nil {
			return err
		}

		for i := range losers {
			losers[i].Status = string(domain.StatusRejected)
			losers[i].RejectionReason = rejectionReason
			if err := tx.Save(&losers[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return losers, nil
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func liveCountAtSlot(
	tx *gorm.DB,
	doctorID uint,
	day time.Time,
	start string,
	excludeID uint,
) (int64, error) {

	q := tx.
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"doctor_id = ? AND date = ? AND start_time = ? AND status IN ?",
			doctorID, day, start, liveStatuses,
		)

	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
