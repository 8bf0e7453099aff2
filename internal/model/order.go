package model

import (
	"time"
)

// 支付方式
const (
	PaymentMethodCard   = "card"
	PaymentMethodWallet = "external-wallet"
)

// OrderStatus 订单状态常量
const (
	OrderStatusCartOpen        = 0
	OrderStatusAddressesSet    = 1
	OrderStatusPaymentPending  = 2
	OrderStatusPlaced          = 3
	OrderStatusRefundRequested = 4
)

// Order 订单（placed=false 即购物车）
// 唯一性：每个用户最多一个未下单订单，由 orders(user_id) WHERE NOT placed 部分唯一索引保证
type Order struct {
	ID                string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID            string      `json:"user_id" gorm:"type:varchar(36);index:idx_order_user;not null"`
	Items             []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	Placed            bool        `json:"placed" gorm:"not null;default:false"`
	PaymentMethod     string      `json:"payment_method" gorm:"type:varchar(16)"`
	RefCode           *string     `json:"ref_code,omitempty" gorm:"type:varchar(20);uniqueIndex"`
	ShippingAddressID *string     `json:"-" gorm:"type:varchar(36)"`
	BillingAddressID  *string     `json:"-" gorm:"type:varchar(36)"`
	ShippingAddress   *Address    `json:"shipping_address,omitempty" gorm:"foreignKey:ShippingAddressID"`
	BillingAddress    *Address    `json:"billing_address,omitempty" gorm:"foreignKey:BillingAddressID"`
	CouponID          *string     `json:"-" gorm:"type:varchar(36)"`
	Coupon            *Coupon     `json:"coupon,omitempty" gorm:"foreignKey:CouponID"`
	RefundRequested   bool        `json:"refund_requested" gorm:"not null;default:false"`
	CreatedAt         time.Time   `json:"created_at"`
	PlacedAt          *time.Time  `json:"placed_at,omitempty"`
	UpdatedAt         time.Time   `json:"-"`
}

func (Order) TableName() string { return "orders" }

// Status 根据字段推导当前状态
func (o *Order) Status() int {
	switch {
	case o.Placed && o.RefundRequested:
		return OrderStatusRefundRequested
	case o.Placed:
		return OrderStatusPlaced
	case o.PaymentMethod != "":
		return OrderStatusPaymentPending
	case o.ShippingAddressID != nil && o.BillingAddressID != nil:
		return OrderStatusAddressesSet
	default:
		return OrderStatusCartOpen
	}
}

// Total 订单金额：Σ 单价×数量 − 优惠券面额，下限 0
// 需要预加载 Items.Item 与 Coupon
func (o *Order) Total() float64 {
	var total float64
	for _, li := range o.Items {
		total += li.Item.Price * float64(li.Quantity)
	}
	if o.Coupon != nil {
		total -= o.Coupon.Amount
	}
	if total < 0 {
		total = 0
	}
	return total
}
