package model

import "time"

// Datacenter represents a physical datacenter site.
type Datacenter struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"size:255;not null"`
	Description string
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`

	// Associations
	Equipments []Equipment `gorm:"foreignKey:DatacenterID"`
}
