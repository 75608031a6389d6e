package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-visit-server/internal/middleware"
	"hospital-visit-server/internal/models"
	"hospital-visit-server/internal/scheduling"
	"hospital-visit-server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB        *gorm.DB
	Scheduler *scheduling.Service
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, scheduler *scheduling.Service) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Scheduler: scheduler}
}

// CreateAppointmentRequest represents the request body for booking a slot.
type CreateAppointmentRequest struct {
	PatientID       string `json:"patientId" binding:"required,uuid"`
	DoctorID        string `json:"doctorId" binding:"required,uuid"`
	HospitalID      string `json:"hospitalId" binding:"required,uuid"`
	Date            string `json:"date" binding:"required"`
	Time            string `json:"time" binding:"required"`
	Type            string `json:"type"`
	DurationMinutes int    `json:"durationMinutes"`
}

// CreateAppointment books a slot with a doctor. Patients book for
// themselves; admins and organization admins may book for any patient.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		utils.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	appointment, err := h.Scheduler.Book(c.Request.Context(), actorFromContext(c), scheduling.BookingInput{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		HospitalID:      req.HospitalID,
		Date:            date,
		Time:            req.Time,
		Type:            req.Type,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, "Appointment created successfully", appointment)
}

// GetAppointmentsForUser handles fetching appointments for the logged-in user.
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	actor := actorFromContext(c)

	var appointments []models.Appointment
	query := h.DB.Preload("Patient").Preload("Doctor.User").Order("date asc, queue_position asc")

	var err error
	switch actor.Role {
	case models.RolePatient:
		err = query.Where("patient_id = ?", actor.UserID).Find(&appointments).Error
	case models.RoleDoctor:
		err = query.Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
			Where("doctors.user_id = ?", actor.UserID).Find(&appointments).Error
	case models.RoleOrgAdmin:
		err = query.Where("hospital_id = ?", actor.HospitalID).Find(&appointments).Error
	case models.RoleAdmin:
		err = query.Find(&appointments).Error
	default:
		utils.Forbidden(c, "User role not permitted to view appointments")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID handles fetching a single appointment by its ID.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointment, err := h.Scheduler.Get(c.Request.Context(), actorFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, "Appointment fetched successfully", appointment)
}

// UpdateAppointmentStatusRequest carries a status transition. Reason is only
// meaningful for cancellations.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required"`
	Reason string                   `json:"reason"`
}

// UpdateAppointmentStatus applies a status transition to an appointment.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := h.Scheduler.SetStatus(c.Request.Context(), actorFromContext(c), c.Param("id"), req.Status, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, "Appointment status updated successfully", appointment)
}

// UpdateSessionPhaseRequest carries the target session phase.
type UpdateSessionPhaseRequest struct {
	SessionPhase models.SessionPhase `json:"sessionPhase" binding:"required"`
}

// UpdateSessionPhase sets the clinical session phase of an appointment.
func (h *AppointmentHandler) UpdateSessionPhase(c *gin.Context) {
	var req UpdateSessionPhaseRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := h.Scheduler.SetPhase(c.Request.Context(), actorFromContext(c), c.Param("id"), req.SessionPhase)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, "Session phase updated successfully", appointment)
}

// MoveUp swaps the appointment with its predecessor in the day's queue.
func (h *AppointmentHandler) MoveUp(c *gin.Context) {
	appointment, err := h.Scheduler.MoveUp(c.Request.Context(), actorFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, "Appointment moved up", appointment)
}

// MoveDown swaps the appointment with its successor in the day's queue.
func (h *AppointmentHandler) MoveDown(c *gin.Context) {
	appointment, err := h.Scheduler.MoveDown(c.Request.Context(), actorFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, "Appointment moved down", appointment)
}

// GetQueue returns the ordered active queue for one doctor and date.
func (h *AppointmentHandler) GetQueue(c *gin.Context) {
	doctorID := c.Query("doctorId")
	date, err := parseDate(c.Query("date"))
	if doctorID == "" || err != nil {
		utils.BadRequest(c, "doctorId and date=YYYY-MM-DD query parameters are required")
		return
	}

	queue, err := h.Scheduler.Queue(c.Request.Context(), actorFromContext(c), doctorID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, "Queue fetched successfully", queue)
}

// ReorderQueueRequest carries an explicit queue permutation for one partition.
type ReorderQueueRequest struct {
	DoctorID string                   `json:"doctorId" binding:"required,uuid"`
	Date     string                   `json:"date" binding:"required"`
	Items    []scheduling.ReorderItem `json:"items" binding:"required"`
}

// ReorderQueue overwrites queue positions from an explicit list.
func (h *AppointmentHandler) ReorderQueue(c *gin.Context) {
	var req ReorderQueueRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		utils.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	if err := h.Scheduler.BulkReorder(c.Request.Context(), actorFromContext(c), req.DoctorID, date, req.Items); err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, "Queue reordered successfully", nil)
}

// ReconcileQueueRequest names the partition to renumber.
type ReconcileQueueRequest struct {
	DoctorID string `json:"doctorId" binding:"required,uuid"`
	Date     string `json:"date" binding:"required"`
}

// ReconcileQueue renumbers a partition into a gap-free 1..n sequence.
func (h *AppointmentHandler) ReconcileQueue(c *gin.Context) {
	var req ReconcileQueueRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		utils.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	queue, err := h.Scheduler.Reconcile(c.Request.Context(), actorFromContext(c), req.DoctorID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, "Queue reconciled successfully", queue)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// actorFromContext builds the scheduling actor from the auth middleware's
// context values.
func actorFromContext(c *gin.Context) scheduling.Actor {
	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)
	return scheduling.Actor{
		UserID:     userID,
		Role:       role,
		HospitalID: middleware.GetHospitalIDFromContext(c),
	}
}

// respondError maps scheduling error kinds to HTTP responses.
func respondError(c *gin.Context, err error) {
	kind, ok := scheduling.KindOf(err)
	if !ok {
		utils.InternalServerError(c, err.Error())
		return
	}
	switch kind {
	case scheduling.KindNotFound:
		utils.NotFound(c, err.Error())
	case scheduling.KindForbidden:
		utils.Forbidden(c, err.Error())
	case scheduling.KindConflict:
		utils.Conflict(c, err.Error())
	case scheduling.KindValidation:
		utils.BadRequest(c, err.Error())
	default:
		utils.InternalServerError(c, err.Error())
	}
}
