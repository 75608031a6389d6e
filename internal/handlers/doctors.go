package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-visit-server/internal/models"
	"hospital-visit-server/internal/scheduling"
	"hospital-visit-server/internal/utils"
)

// DoctorHandler serves the doctor directory's read surface.
type DoctorHandler struct {
	DB        *gorm.DB
	Scheduler *scheduling.Service
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB, scheduler *scheduling.Service) *DoctorHandler {
	return &DoctorHandler{DB: db, Scheduler: scheduler}
}

// GetDoctors lists the active, approved doctors.
func (h *DoctorHandler) GetDoctors(c *gin.Context) {
	var doctors []models.Doctor
	query := h.DB.Preload("User").Where("is_active = ? AND is_approved = ?", true, true)
	if hospitalID := c.Query("hospitalId"); hospitalID != "" {
		query = query.Where("hospital_id = ?", hospitalID)
	}
	if err := query.Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}
	utils.Success(c, "Doctors fetched successfully", doctors)
}

// GetDoctorAvailability returns the doctor's weekly availability windows.
func (h *DoctorHandler) GetDoctorAvailability(c *gin.Context) {
	doctorID := c.Param("id")

	var doctor models.Doctor
	if err := h.DB.Preload("Availability").First(&doctor, "id = ?", doctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Availability fetched successfully", doctor.Availability)
}

// GetDoctorSlots enumerates the doctor's 30-minute slots for a date, each
// marked available or taken.
func (h *DoctorHandler) GetDoctorSlots(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		utils.BadRequest(c, "date=YYYY-MM-DD query parameter is required")
		return
	}

	day, err := h.Scheduler.DaySlots(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, "Slots fetched successfully", day)
}
