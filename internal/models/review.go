package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID    string `gorm:"type:uuid;index;unique" json:"order_id"`
	ServiceID  string `gorm:"type:uuid;index" json:"service_id"`
	ReviewerID string `gorm:"type:uuid;index" json:"reviewer_id"`
	SellerID   string `gorm:"type:uuid;index" json:"seller_id"`

	Rating  int    `gorm:"not null" json:"rating"` // 1-5
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Order    *Order   `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Service  *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Reviewer *User    `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Seller   *User    `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return
}
