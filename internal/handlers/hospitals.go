package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-visit-server/internal/models"
	"hospital-visit-server/internal/utils"
)

// HospitalHandler serves the hospital directory's read surface.
type HospitalHandler struct {
	DB *gorm.DB
}

// NewHospitalHandler creates a new HospitalHandler.
func NewHospitalHandler(db *gorm.DB) *HospitalHandler {
	return &HospitalHandler{DB: db}
}

// GetHospitals lists the active, approved hospitals.
func (h *HospitalHandler) GetHospitals(c *gin.Context) {
	var hospitals []models.Hospital
	if err := h.DB.Where("is_active = ? AND is_approved = ?", true, true).Find(&hospitals).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch hospitals: "+err.Error())
		return
	}
	utils.Success(c, "Hospitals fetched successfully", hospitals)
}

// GetHospitalByID fetches a single hospital.
func (h *HospitalHandler) GetHospitalByID(c *gin.Context) {
	var hospital models.Hospital
	if err := h.DB.First(&hospital, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Hospital not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Hospital fetched successfully", hospital)
}
