package service

import "errors"

// 业务错误：全部在请求边界可恢复，handler 负责映射为响应
var (
	ErrItemNotFound         = errors.New("item not found")
	ErrCouponNotFound       = errors.New("coupon not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrNoActiveOrder        = errors.New("no active order")
	ErrItemNotInCart        = errors.New("item not in cart")
	ErrNoDefaultAddress     = errors.New("no default address")
	ErrIncompleteAddress    = errors.New("shipping and billing address required")
	ErrAlreadyPlaced        = errors.New("order already placed")
	ErrInvalidAddressType   = errors.New("invalid address type")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)
