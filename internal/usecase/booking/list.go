package booking

import (
	"context"

	domain "github.com/phucdtWork/clinic-scheduler/internal/domain/booking"
	"github.com/phucdtWork/clinic-scheduler/internal/dto"
	"github.com/phucdtWork/clinic-scheduler/internal/httperr"
	"github.com/phucdtWork/clinic-scheduler/internal/models"
)

type ListForPatient struct {
	repo domain.Repository
}

func NewListForPatient(repo domain.Repository) *ListForPatient {
	return &ListForPatient{repo: repo}
}

func (uc *ListForPatient) Execute(
	ctx context.Context,
	patientID uint,
) ([]dto.AppointmentView, error) {

	apps, err := uc.repo.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentView, 0, len(apps))
	for i := range apps {
		view := toView(&apps[i])
		view.Doctor = &dto.UserSnapshot{
			ID:        apps[i].Doctor.ID,
			Name:      apps[i].Doctor.Name,
			Specialty: apps[i].Doctor.Specialty,
			Fee:       apps[i].Doctor.ConsultationFee,
		}
		out = append(out, view)
	}

	return out, nil
}

type ListForDoctor struct {
	repo domain.Repository
}

func NewListForDoctor(repo domain.Repository) *ListForDoctor {
	return &ListForDoctor{repo: repo}
}

func (uc *ListForDoctor) Execute(
	ctx context.Context,
	doctorID uint,
	status string,
) ([]dto.AppointmentView, error) {

	if status != "" && !domain.IsKnown(domain.Status(status)) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	apps, err := uc.repo.ListForDoctor(ctx, doctorID, status)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentView, 0, len(apps))
	for i := range apps {
		view := toView(&apps[i])
		view.Patient = &dto.UserSnapshot{
			ID:    apps[i].Patient.ID,
			Name:  apps[i].Patient.Name,
			Phone: apps[i].Patient.Phone,
		}
		out = append(out, view)
	}

	return out, nil
}

func toView(ap *models.Appointment) dto.AppointmentView {
	return dto.AppointmentView{
		ID:              ap.ID,
		Date:            ap.Date,
		StartTime:       ap.StartTime,
		EndTime:         ap.EndTime,
		Status:          ap.Status,
		Reason:          ap.Reason,
		Notes:           ap.Notes,
		DoctorNotes:     ap.DoctorNotes,
		RejectionReason: ap.RejectionReason,
		Fee:             ap.Fee,
		CreatedAt:       ap.CreatedAt,
		UpdatedAt:       ap.UpdatedAt,
	}
}
