package models

// Role enum. Identity itself (registration, login, credentials) lives in a
// separate service; this server only consumes the role carried by the token.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOrgAdmin Role = "organization_admin"
	RoleDoctor   Role = "doctor"
	RolePatient  Role = "patient"
)

// IsValidRole reports whether r is a known role.
func IsValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleOrgAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// User mirrors the identity service's user record, kept locally so
// appointments can join patient and doctor display data.
type User struct {
	BaseModel
	Email     string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FirstName string `gorm:"size:100" json:"firstName"`
	LastName  string `gorm:"size:100" json:"lastName"`
	Role      Role   `gorm:"size:30;default:'patient'" json:"role"`

	// Relations (not always preloaded)
	PatientAppointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
}
