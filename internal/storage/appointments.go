package storage

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hospital-visit-server/internal/models"
	"hospital-visit-server/internal/scheduling"
)

// activeStatuses are the statuses counting toward queue and conflict checks.
var activeStatuses = []models.AppointmentStatus{
	models.StatusScheduled,
	models.StatusConfirmed,
	models.StatusInProgress,
}

// AppointmentStore persists appointments in MySQL through GORM.
type AppointmentStore struct {
	DB *gorm.DB
}

// NewAppointmentStore creates a new AppointmentStore.
func NewAppointmentStore(db *gorm.DB) *AppointmentStore {
	return &AppointmentStore{DB: db}
}

func (s *AppointmentStore) Create(ctx context.Context, appt *models.Appointment) error {
	return s.DB.WithContext(ctx).Create(appt).Error
}

func (s *AppointmentStore) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := s.DB.WithContext(ctx).First(&appt, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, scheduling.ErrNotFound("appointment %s not found", id)
		}
		return nil, err
	}
	return &appt, nil
}

func (s *AppointmentStore) Update(ctx context.Context, appt *models.Appointment) error {
	return s.DB.WithContext(ctx).Save(appt).Error
}

func (s *AppointmentStore) ActiveForDay(ctx context.Context, doctorID string, date time.Time) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.DB.WithContext(ctx).
		Where("doctor_id = ? AND date = ? AND status IN ?", doctorID, date, activeStatuses).
		Order("queue_position asc, created_at asc").
		Find(&appts).Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}

func (s *AppointmentStore) HoldsSlot(ctx context.Context, doctorID string, date time.Time, clock string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ? AND time = ? AND status IN ?",
			doctorID, date, clock,
			[]models.AppointmentStatus{models.StatusScheduled, models.StatusConfirmed}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdatePositions applies all position overwrites in one transaction; a
// missing appointment rolls the whole set back.
func (s *AppointmentStore) UpdatePositions(ctx context.Context, positions map[string]int) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, pos := range positions {
			res := tx.Model(&models.Appointment{}).Where("id = ?", id).Update("queue_position", pos)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return scheduling.ErrNotFound("appointment %s not found", id)
			}
		}
		return nil
	})
}
