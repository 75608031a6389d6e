package models

// Doctor is a doctor's directory profile: hospital membership, approval state
// and the weekly recurring availability used to derive open hours per date.
type Doctor struct {
	BaseModel
	UserID          string  `gorm:"size:36;uniqueIndex" json:"userId"`
	HospitalID      string  `gorm:"size:36;index" json:"hospitalId"`
	Specialty       string  `gorm:"size:100" json:"specialty"`
	ConsultationFee float64 `json:"consultationFee"`
	IsActive        bool    `gorm:"default:true" json:"isActive"`
	IsApproved      bool    `gorm:"default:false" json:"isApproved"`

	// Relations
	User         User                 `gorm:"foreignKey:UserID" json:"-"`
	Availability []DoctorAvailability `gorm:"foreignKey:DoctorID" json:"availability,omitempty"`
	Appointments []Appointment        `gorm:"foreignKey:DoctorID" json:"-"`
}

// DoctorAvailability is one entry of a doctor's weekly recurring schedule.
// Times are "HH:MM"; DayOfWeek is the English weekday name ("Monday").
type DoctorAvailability struct {
	BaseModel
	DoctorID    string `gorm:"size:36;index" json:"doctorId"`
	DayOfWeek   string `gorm:"size:10" json:"dayOfWeek"`
	StartTime   string `gorm:"size:5" json:"startTime"`
	EndTime     string `gorm:"size:5" json:"endTime"`
	IsAvailable bool   `gorm:"default:true" json:"isAvailable"`
}
