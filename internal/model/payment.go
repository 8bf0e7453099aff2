package model

import "time"

// Payment 成功扣款记录，与已下单订单 1:1
type Payment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ChargeID  string    `json:"charge_id" gorm:"type:varchar(64);not null"` // 网关返回的扣款标识
	OrderID   string    `json:"order_id" gorm:"type:varchar(36);uniqueIndex;not null"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);index:idx_payment_user;not null"`
	Amount    float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (Payment) TableName() string { return "payments" }
