package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationApproved  ApplicationStatus = "approved"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationWithdrawn ApplicationStatus = "withdrawn"
)

// Application links a freelancer to a job they applied for.
// A freelancer can hold at most one application per job.
type Application struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	JobID        string `gorm:"type:uuid;not null;index;uniqueIndex:idx_job_freelancer" json:"job_id"`
	FreelancerID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_job_freelancer" json:"freelancer_id"`

	CoverLetter string `gorm:"type:text" json:"cover_letter"`
	BidAmount   int64  `json:"bid_amount"`

	Status ApplicationStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Job        *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Freelancer *User `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return
}
