package models

import (
	"time"
)

type Role string

const (
	RoleFreelancer Role = "freelancer"
	RoleEmployer   Role = "employer"
	RoleAdmin      Role = "admin"
)

type UserStatus string

const (
	UserActive  UserStatus = "active"
	UserBlocked UserStatus = "blocked"
)

type User struct {
	ID    string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`

	Password string     `gorm:"not null" json:"-"`
	Role     Role       `gorm:"type:varchar(20);not null;index" json:"role"`
	Status   UserStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	// Wallet balance in the smallest currency unit.
	Balance int64 `gorm:"default:0" json:"balance"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
