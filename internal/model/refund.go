package model

import "time"

// Refund 退款申请，挂在已下单订单上；不回滚 Payment，履约走线下流程
type Refund struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string    `json:"order_id" gorm:"type:varchar(36);index:idx_refund_order;not null"`
	Reason    string    `json:"reason" gorm:"type:text;not null"`
	Email     string    `json:"email" gorm:"type:varchar(100);not null"`
	Accepted  bool      `json:"accepted" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (Refund) TableName() string { return "refunds" }
