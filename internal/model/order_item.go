package model

import "time"

// OrderItem 订单行（商品 + 数量）
// 数量恒 ≥ 1：减到 0 时删除整行，不存 0
type OrderItem struct {
	ID      string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID string `json:"-" gorm:"type:varchar(36);index:idx_oi_order;uniqueIndex:ux_oi_order_item;not null"`
	ItemID  string `json:"-" gorm:"type:varchar(36);uniqueIndex:ux_oi_order_item;not null"`
	// 复合唯一键，同一订单内一个商品只有一行
	// ux_oi_order_item = (order_id, item_id)
	Item      Item      `json:"item" gorm:"foreignKey:ItemID"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	Ordered   bool      `json:"ordered" gorm:"not null;default:false"` // 下单后置位，行即不可变
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (OrderItem) TableName() string { return "order_items" }
