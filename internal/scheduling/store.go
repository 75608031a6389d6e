package scheduling

import (
	"context"
	"time"

	"hospital-visit-server/internal/models"
)

// AppointmentStore is the persistence collaborator for appointments.
type AppointmentStore interface {
	// Create persists a new appointment in a single write.
	Create(ctx context.Context, appt *models.Appointment) error
	// GetByID returns the appointment or a NotFound error.
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// Update persists changed fields of an existing appointment.
	Update(ctx context.Context, appt *models.Appointment) error
	// ActiveForDay returns the active (scheduled, confirmed, in-progress)
	// appointments of one (doctorId, date) partition ordered by
	// (queuePosition, createdAt).
	ActiveForDay(ctx context.Context, doctorID string, date time.Time) ([]models.Appointment, error)
	// HoldsSlot reports whether a scheduled or confirmed appointment already
	// occupies the exact (doctorId, date, time) triple.
	HoldsSlot(ctx context.Context, doctorID string, date time.Time, clock string) (bool, error)
	// UpdatePositions overwrites queue positions by appointment id. The whole
	// set is applied atomically or not at all.
	UpdatePositions(ctx context.Context, positions map[string]int) error
}

// DoctorDirectory is the doctor directory collaborator.
type DoctorDirectory interface {
	// GetDoctor returns the profile with its weekly availability, or a
	// NotFound error.
	GetDoctor(ctx context.Context, id string) (*models.Doctor, error)
}

// HospitalDirectory is the hospital directory collaborator.
type HospitalDirectory interface {
	// GetHospital returns the hospital or a NotFound error.
	GetHospital(ctx context.Context, id string) (*models.Hospital, error)
}
