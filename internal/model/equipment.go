package model

import "time"

// Equipment is a single tracked device with its license metadata.
// ServiceTag and SerialNumber are unique across the whole store, not
// just within one datacenter.
type Equipment struct {
	ID                 int64     `gorm:"primaryKey"`
	EquipmentType      string    `gorm:"size:50;not null"`
	ServiceTag         string    `gorm:"uniqueIndex;size:100;not null"`
	LicenseType        string    `gorm:"size:100;not null"`
	SerialNumber       string    `gorm:"uniqueIndex;size:100;not null"`
	LicenseExpiredDate time.Time `gorm:"type:date;not null"`
	DatacenterID       int64     `gorm:"index;not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Associations
	Datacenter Datacenter `gorm:"constraint:OnDelete:CASCADE"`
}
