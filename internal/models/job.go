package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JobStatus string

const (
	JobOpen   JobStatus = "open"
	JobClosed JobStatus = "closed"
	JobFilled JobStatus = "filled"
)

// Job is an employer-posted position accepting applications.
type Job struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	EmployerID string `gorm:"type:uuid;not null;index" json:"employer_id"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"type:varchar(80);index" json:"category"`
	Budget      int64  `gorm:"not null" json:"budget"`

	// Skills is a JSON array of requested skill tags.
	Skills datatypes.JSON `json:"skills"`

	Status JobStatus `gorm:"type:varchar(20);default:'open';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Employer *User `gorm:"foreignKey:EmployerID" json:"employer,omitempty"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) (err error) {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return
}
