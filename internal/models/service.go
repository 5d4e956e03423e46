package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ServiceStatus string

const (
	ServiceDraft     ServiceStatus = "draft"
	ServicePublished ServiceStatus = "published"
	ServiceArchived  ServiceStatus = "archived"
)

// Service is a freelancer-offered gig listed for purchase.
type Service struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	FreelancerID string `gorm:"type:uuid;not null;index" json:"freelancer_id"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"type:varchar(80);index" json:"category"`
	Price       int64  `gorm:"not null" json:"price"`

	// Tiers keeps delivery packages flexible: { basic: {...}, standard: {...}, premium: {...} }
	Tiers datatypes.JSON `json:"tiers"`

	Status ServiceStatus `gorm:"type:varchar(20);default:'draft';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Freelancer *User `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return
}
