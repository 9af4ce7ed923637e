package model

import (
	"gorm.io/gorm"
)

type UserRole string

const (
	Admin   UserRole = "admin"
	Manager UserRole = "manager"
)

type User struct {
	gorm.Model
	Username string   `json:"username" gorm:"size:150;not null;uniqueIndex"`
	Password string   `json:"-" gorm:"not null"`
	Role     UserRole `json:"role" gorm:"size:20;not null"`
}
