package booking

import (
	"context"
	"errors"
	"time"

	domain "github.com/phucdtWork/clinic-scheduler/internal/domain/booking"
	"github.com/phucdtWork/clinic-scheduler/internal/httperr"
	"github.com/phucdtWork/clinic-scheduler/internal/models"
)

// 2024-01-01 was a Monday; whole weeks keep the weekday and the date
// far enough out that "now" never interferes with the tests.
var futureMonday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7*500)

var errNotFound = errors.New("record not found")

// fakeRepo is an in-memory booking.Repository with the same conditional
// write semantics as the gorm implementation.
type fakeRepo struct {
	users        map[uint]*models.User
	schedules    map[uint]*models.DoctorSchedule
	appointments map[uint]*models.Appointment

	nextID uint
	seq    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:        map[uint]*models.User{},
		schedules:    map[uint]*models.DoctorSchedule{},
		appointments: map[uint]*models.Appointment{},
	}
}

func (r *fakeRepo) addUser(u models.User) *models.User {
	stored := u
	r.users[u.ID] = &stored
	return &stored
}

func (r *fakeRepo) addSchedule(s models.DoctorSchedule) {
	stored := s
	r.schedules[s.DoctorID] = &stored
}

func (r *fakeRepo) addAppointment(ap models.Appointment) *models.Appointment {
	if ap.ID == 0 {
		r.nextID++
		ap.ID = r.nextID
	} else if ap.ID > r.nextID {
		r.nextID = ap.ID
	}

	r.seq++
	if ap.CreatedAt.IsZero() {
		ap.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(r.seq) * time.Second)
	}

	stored := ap
	r.appointments[ap.ID] = &stored
	return &stored
}

func (r *fakeRepo) stored(id uint) *models.Appointment {
	return r.appointments[id]
}

func copyOf(ap *models.Appointment) *models.Appointment {
	c := *ap
	return &c
}

func sameDay(apDate, day time.Time) bool {
	return !apDate.Before(day) && apDate.Before(day.Add(24*time.Hour))
}

func (r *fakeRepo) liveAtSlot(doctorID uint, day time.Time, start string, excludeID uint) int {
	count := 0
	for _, ap := range r.appointments {
		if ap.DoctorID != doctorID || ap.ID == excludeID {
			continue
		}
		if !sameDay(ap.Date, day) || ap.StartTime != start {
			continue
		}
		if domain.IsLive(domain.Status(ap.Status)) {
			count++
		}
	}
	return count
}

// -------- Repository --------

func (r *fakeRepo) GetUser(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errNotFound
	}
	c := *u
	return &c, nil
}

func (r *fakeRepo) GetScheduleByDoctor(_ context.Context, doctorID uint) (*models.DoctorSchedule, error) {
	s, ok := r.schedules[doctorID]
	if !ok {
		return nil, errNotFound
	}
	c := *s
	return &c, nil
}

func (r *fakeRepo) UpsertSchedule(_ context.Context, sched *models.DoctorSchedule) error {
	if existing, ok := r.schedules[sched.DoctorID]; ok {
		sched.ID = existing.ID
	} else {
		r.nextID++
		sched.ID = r.nextID
	}
	stored := *sched
	r.schedules[sched.DoctorID] = &stored
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := r.appointments[id]
	if !ok {
		return nil, errNotFound
	}
	return copyOf(ap), nil
}

func (r *fakeRepo) FindByRequestID(_ context.Context, patientID uint, requestID string) (*models.Appointment, error) {
	for _, ap := range r.appointments {
		if ap.PatientID == patientID && ap.RequestID == requestID {
			return copyOf(ap), nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) ListForDoctorDay(_ context.Context, doctorID uint, day time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.DoctorID == doctorID && sameDay(ap.Date, day) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListForDoctor(_ context.Context, doctorID uint, status string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.DoctorID != doctorID {
			continue
		}
		if status != "" && ap.Status != status {
			continue
		}
		enriched := *ap
		if u, ok := r.users[ap.PatientID]; ok {
			enriched.Patient = *u
		}
		out = append(out, enriched)
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *fakeRepo) ListForPatient(_ context.Context, patientID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.PatientID != patientID {
			continue
		}
		enriched := *ap
		if u, ok := r.users[ap.DoctorID]; ok {
			enriched.Doctor = *u
		}
		out = append(out, enriched)
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(apps []models.Appointment) {
	for i := 0; i < len(apps); i++ {
		for j := i + 1; j < len(apps); j++ {
			if apps[j].CreatedAt.After(apps[i].CreatedAt) {
				apps[i], apps[j] = apps[j], apps[i]
			}
		}
	}
}

func (r *fakeRepo) CountLiveOnDay(_ context.Context, doctorID uint, day time.Time) (int64, error) {
	var count int64
	for _, ap := range r.appointments {
		if ap.DoctorID == doctorID && sameDay(ap.Date, day) && domain.IsLive(domain.Status(ap.Status)) {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) CreateIfSlotFree(_ context.Context, ap *models.Appointment, allowDouble bool) error {
	if !allowDouble && r.liveAtSlot(ap.DoctorID, ap.Date, ap.StartTime, 0) > 0 {
		return httperr.ErrBusiness("slot_unavailable")
	}
	stored := r.addAppointment(*ap)
	*ap = *stored
	return nil
}

func (r *fakeRepo) RescheduleIfSlotFree(_ context.Context, ap *models.Appointment, allowDouble bool) error {
	if !allowDouble && r.liveAtSlot(ap.DoctorID, ap.Date, ap.StartTime, ap.ID) > 0 {
		return httperr.ErrBusiness("slot_unavailable")
	}
	r.appointments[ap.ID] = copyOf(ap)
	return nil
}

func (r *fakeRepo) ConfirmAndRejectCompeting(_ context.Context, ap *models.Appointment, rejectionReason string) ([]models.Appointment, error) {
	current, ok := r.appointments[ap.ID]
	if !ok {
		return nil, errNotFound
	}
	if current.Status != string(domain.StatusPending) {
		return nil, httperr.ErrBusiness("invalid_transition")
	}

	for _, other := range r.appointments {
		if other.ID == ap.ID || other.DoctorID != ap.DoctorID {
			continue
		}
		if sameDay(other.Date, ap.Date) && other.StartTime == ap.StartTime &&
			other.Status == string(domain.StatusConfirmed) {
			return nil, httperr.ErrBusiness("slot_unavailable")
		}
	}

	r.appointments[ap.ID] = copyOf(ap)

	var losers []models.Appointment
	for _, other := range r.appointments {
		if other.ID == ap.ID || other.DoctorID != ap.DoctorID {
			continue
		}
		if sameDay(other.Date, ap.Date) && other.StartTime == ap.StartTime &&
			other.Status == string(domain.StatusPending) {
			other.Status = string(domain.StatusRejected)
			other.RejectionReason = rejectionReason
			losers = append(losers, *other)
		}
	}

	return losers, nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if _, ok := r.appointments[ap.ID]; !ok {
		return errNotFound
	}
	r.appointments[ap.ID] = copyOf(ap)
	return nil
}

// -------- EventSink --------

type recordingSink struct {
	events []domain.Event
}

func (s *recordingSink) Emit(ev domain.Event) {
	s.events = append(s.events, ev)
}

func (s *recordingSink) ofType(t domain.EventType) []domain.Event {
	var out []domain.Event
	for _, ev := range s.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// -------- Fixtures --------

func seedDoctorAndSchedule(repo *fakeRepo) (*models.User, *models.DoctorSchedule) {
	doctor := repo.addUser(models.User{
		ID:              1,
		Name:            "Dr. Tran",
		Email:           "dr.tran@clinic.example",
		Role:            models.RoleDoctor,
		Specialty:       "Cardiology",
		ConsultationFee: 50,
	})

	sched := models.DoctorSchedule{
		ID:       1,
		DoctorID: doctor.ID,
		WorkingHours: models.WeeklySchedule{
			"monday":  {{Start: "09:00", End: "12:00"}},
			"tuesday": {{Start: "09:00", End: "12:00"}},
		},
		SlotDuration: 30,
		BreakTimes:   []models.TimeRange{{Start: "10:00", End: "10:30"}},
		Timezone:     "UTC",
	}
	repo.addSchedule(sched)

	return doctor, repo.schedules[doctor.ID]
}

func seedPatient(repo *fakeRepo, id uint) *models.User {
	return repo.addUser(models.User{
		ID:    id,
		Name:  "Pat Example",
		Email: "pat@example.com",
		Phone: "555-0101",
		Role:  models.RolePatient,
	})
}
