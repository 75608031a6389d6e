package storage

import (
	"context"

	"gorm.io/gorm"

	"hospital-visit-server/internal/models"
	"hospital-visit-server/internal/scheduling"
)

// Directory serves doctor and hospital profile lookups through GORM.
type Directory struct {
	DB *gorm.DB
}

// NewDirectory creates a new Directory.
func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{DB: db}
}

func (d *Directory) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := d.DB.WithContext(ctx).Preload("Availability").First(&doctor, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, scheduling.ErrNotFound("doctor %s not found", id)
		}
		return nil, err
	}
	return &doctor, nil
}

func (d *Directory) GetHospital(ctx context.Context, id string) (*models.Hospital, error) {
	var hospital models.Hospital
	err := d.DB.WithContext(ctx).First(&hospital, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, scheduling.ErrNotFound("hospital %s not found", id)
		}
		return nil, err
	}
	return &hospital, nil
}
