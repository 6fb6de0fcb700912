package models

import (
	"github.com/google/uuid"
)

type Salon struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	Name    string    `gorm:"not null"`
	Address string

	Users        []User        `gorm:"foreignKey:SalonID"`
	Branches     []Branch      `gorm:"foreignKey:SalonID"`
	Clients      []Client      `gorm:"foreignKey:SalonID"`
	Salespersons []Salesperson `gorm:"foreignKey:SalonID"`
}
