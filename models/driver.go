package models

import (
	"gorm.io/gorm"
)

type Driver struct {
	gorm.Model
	Name          string `json:"name"`
	Email         string `json:"email" gorm:"uniqueIndex"`
	Phone         string `json:"phone"`
	LicenceNumber string `json:"licence_number"`
}
