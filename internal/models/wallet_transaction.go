package models

import (
	"time"
)

type WalletTrxType string

const (
	WalletCredit WalletTrxType = "credit" // earnings in
	WalletDebit  WalletTrxType = "debit"  // payment out
	WalletRefund WalletTrxType = "refund" // money returned to buyer
)

type WalletTransaction struct {
	ID          string        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      string        `gorm:"type:uuid;index;not null" json:"user_id"`
	Amount      int64         `gorm:"not null" json:"amount"`
	Type        WalletTrxType `gorm:"type:varchar(20);not null" json:"type"`
	Description string        `gorm:"type:text" json:"description"`
	ReferenceID *string       `gorm:"type:uuid;index" json:"reference_id,omitempty"` // usually an order ID
	CreatedAt   time.Time     `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
