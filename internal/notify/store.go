package notify

import (
	"gorm.io/gorm"

	"github.com/phucdtWork/clinic-scheduler/internal/models"
)

// Store persists notifications for later delivery by the external
// email/realtime channels.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Record(
	userID uint,
	appointmentID *uint,
	notifType string,
	title string,
	message string,
) error {

	n := models.Notification{
		UserID:        userID,
		AppointmentID: appointmentID,
		Type:          notifType,
		Title:         title,
		Message:       message,
	}

	return s.db.Create(&n).Error
}

func (s *Store) PatientEmail(patientID uint) (string, error) {
	var user models.User
	if err := s.db.Select("email").First(&user, patientID).Error; err != nil {
		return "", err
	}
	return user.Email, nil
}
