package model

import "time"

// Coupon 优惠券（固定面额）
type Coupon struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Code      string    `json:"code" gorm:"type:varchar(15);uniqueIndex;not null"`
	Amount    float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Coupon) TableName() string { return "coupons" }
