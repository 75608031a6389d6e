package models

// Hospital represents a hospital in the directory. Bookings are rejected when
// the hospital is inactive or not yet approved.
type Hospital struct {
	BaseModel
	Name        string `gorm:"size:255;not null" json:"name"`
	Address     string `gorm:"size:255" json:"address"`
	PhoneNumber string `gorm:"size:30" json:"phoneNumber"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
	IsApproved  bool   `gorm:"default:false" json:"isApproved"`

	// Relations (not always preloaded)
	Doctors []Doctor `gorm:"foreignKey:HospitalID" json:"-"`
}
