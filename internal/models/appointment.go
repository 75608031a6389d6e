package models

import (
	"time"
)

// AppointmentStatus represents the booking status of an appointment.
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in-progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no-show"
)

// IsTerminal reports whether the status ends queue participation.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// IsActive reports whether the appointment counts toward the queue and
// conflict checks for its doctor and date.
func (s AppointmentStatus) IsActive() bool {
	return s == StatusScheduled || s == StatusConfirmed || s == StatusInProgress
}

// IsValidStatus reports whether s is a known appointment status.
func IsValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// SessionPhase is the clinical-workflow sub-state of a visit, tracked
// independently of the booking status.
type SessionPhase string

const (
	PhaseWaiting           SessionPhase = "waiting"
	PhaseDataCollection    SessionPhase = "data-collection"
	PhaseInitialAssessment SessionPhase = "initial-assessment"
	PhaseExamination       SessionPhase = "examination"
	PhaseDiagnosis         SessionPhase = "diagnosis"
	PhaseTreatment         SessionPhase = "treatment"
	PhaseSurgery           SessionPhase = "surgery"
	PhaseRecovery          SessionPhase = "recovery"
	PhaseFollowUp          SessionPhase = "follow-up"
	PhaseDischarge         SessionPhase = "discharge"
)

// IsValidSessionPhase reports whether p is a known session phase.
func IsValidSessionPhase(p SessionPhase) bool {
	switch p {
	case PhaseWaiting, PhaseDataCollection, PhaseInitialAssessment, PhaseExamination,
		PhaseDiagnosis, PhaseTreatment, PhaseSurgery, PhaseRecovery, PhaseFollowUp, PhaseDischarge:
		return true
	}
	return false
}

// PaymentStatus tracks payment of the consultation fee.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentWaived   PaymentStatus = "waived"
)

// Appointment represents a scheduled hospital visit. Date holds the calendar
// day with the time of day stripped; Time is the slot start as "HH:MM".
type Appointment struct {
	BaseModel
	PatientID          string            `gorm:"size:36;index" json:"patientId"`
	DoctorID           string            `gorm:"size:36;index:idx_doctor_date" json:"doctorId"`
	HospitalID         string            `gorm:"size:36;index" json:"hospitalId"`
	Date               time.Time         `gorm:"type:date;index:idx_doctor_date" json:"date"`
	Time               string            `gorm:"size:5" json:"time"`
	DurationMinutes    int               `gorm:"default:30" json:"durationMinutes"`
	Status             AppointmentStatus `gorm:"size:20;default:'scheduled'" json:"status"`
	SessionPhase       SessionPhase      `gorm:"size:30;default:'waiting'" json:"sessionPhase"`
	QueuePosition      int               `json:"queuePosition"`
	Type               string            `gorm:"size:50" json:"type"`
	ConsultationFee    float64           `json:"consultationFee"`
	PaymentStatus      PaymentStatus     `gorm:"size:20;default:'pending'" json:"paymentStatus"`
	CancellationReason string            `gorm:"size:255" json:"cancellationReason,omitempty"`
	CancelledBy        string            `gorm:"size:30" json:"cancelledBy,omitempty"`

	// Relations (not always preloaded). DoctorID references the doctor's
	// directory profile, not their user record.
	Patient User   `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}
