package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/gin-shop/internal/model"
	"github.com/d60-Lab/gin-shop/internal/payment"
	"github.com/d60-Lab/gin-shop/internal/repository"
)

// AddressInput 结账地址入参
// UseDefault / SameAsShipping / 手填字段三选一；SameAsShipping 仅对账单地址有效
type AddressInput struct {
	Street         string
	Apartment      string
	Country        string
	Zip            string
	UseDefault     bool
	SetDefault     bool
	SameAsShipping bool
}

// CheckoutService 结账状态机：地址 → 支付方式 → 扣款落单 → 退款申请
type CheckoutService interface {
	// SetAddress 绑定收货/账单地址
	SetAddress(ctx context.Context, userID, addressType string, in AddressInput) (*model.Order, error)

	// Checkout 校验地址齐备并选定支付方式；external-wallet 返回跳转地址
	Checkout(ctx context.Context, userID, method string) (*model.Order, string, error)

	// Charge 对订单扣款：锁行 → 调网关 → 置 placed、发参考码、冻结订单行
	// 网关失败原样返回分类错误，订单不动；重复扣款返回 ErrAlreadyPlaced
	Charge(ctx context.Context, userID, orderID string, src payment.Source) (*model.Payment, error)

	// StoreCard 留卡，返回网关客户标识，此后可免 token 扣款
	StoreCard(ctx context.Context, userID, token string) (string, error)

	// RequestRefund 按参考码申请退款；只置位并记录，不动 Payment
	RequestRefund(ctx context.Context, refCode, reason, email string) (*model.Refund, error)
}

type checkoutService struct {
	db        *gorm.DB
	gateway   payment.Gateway
	orderRepo repository.OrderRepository
	currency  string
	walletURL string
}

func NewCheckoutService(db *gorm.DB, gateway payment.Gateway, orderRepo repository.OrderRepository, currency, walletURL string) CheckoutService {
	return &checkoutService{db: db, gateway: gateway, orderRepo: orderRepo, currency: currency, walletURL: walletURL}
}

func (s *checkoutService) SetAddress(ctx context.Context, userID, addressType string, in AddressInput) (*model.Order, error) {
	if addressType != model.AddressTypeShipping && addressType != model.AddressTypeBilling {
		return nil, ErrInvalidAddressType
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := findOpenOrder(tx, userID)
		if err != nil {
			return err
		}

		var addr *model.Address
		switch {
		case in.UseDefault:
			var def model.Address
			err := tx.Where("user_id = ? AND address_type = ? AND is_default = ?", userID, addressType, true).
				First(&def).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNoDefaultAddress
				}
				return err
			}
			addr = &def

		case in.SameAsShipping && addressType == model.AddressTypeBilling:
			// 复制字段为新行，不复用收货地址行
			if order.ShippingAddressID == nil {
				return ErrIncompleteAddress
			}
			var ship model.Address
			if err := tx.Where("id = ?", *order.ShippingAddressID).First(&ship).Error; err != nil {
				return err
			}
			addr = ship.CloneAs(uuid.New().String(), model.AddressTypeBilling)
			if err := tx.Create(addr).Error; err != nil {
				return err
			}

		default:
			// 手填地址不允许关键字段留空
			if in.Street == "" || in.Country == "" || in.Zip == "" {
				return ErrIncompleteAddress
			}
			addr = &model.Address{
				ID:          uuid.New().String(),
				UserID:      userID,
				Street:      in.Street,
				Apartment:   in.Apartment,
				Country:     in.Country,
				Zip:         in.Zip,
				AddressType: addressType,
			}
			if in.SetDefault {
				// 默认地址是单例标记：先清旧默认再置新
				if err := tx.Model(&model.Address{}).
					Where("user_id = ? AND address_type = ? AND is_default = ?", userID, addressType, true).
					Update("is_default", false).Error; err != nil {
					return err
				}
				addr.Default = true
			}
			if err := tx.Create(addr).Error; err != nil {
				return err
			}
		}

		column := "shipping_address_id"
		if addressType == model.AddressTypeBilling {
			column = "billing_address_id"
		}
		return tx.Model(order).Update(column, addr.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetOpenByUserID(ctx, userID)
}

func (s *checkoutService) Checkout(ctx context.Context, userID, method string) (*model.Order, string, error) {
	if method != model.PaymentMethodCard && method != model.PaymentMethodWallet {
		return nil, "", ErrInvalidPaymentMethod
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := findOpenOrder(tx, userID)
		if err != nil {
			return err
		}
		if order.ShippingAddressID == nil || order.BillingAddressID == nil {
			return ErrIncompleteAddress
		}
		return tx.Model(order).Update("payment_method", method).Error
	})
	if err != nil {
		return nil, "", err
	}

	order, err := s.orderRepo.GetOpenByUserID(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	// 外部钱包：职责止于跳转，后续流程由钱包方完成
	redirect := ""
	if method == model.PaymentMethodWallet {
		redirect = s.walletURL
	}
	return order, redirect, nil
}

func (s *checkoutService) Charge(ctx context.Context, userID, orderID string, src payment.Source) (*model.Payment, error) {
	var pay *model.Payment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order model.Order
		err := lockForUpdate(tx).Where("id = ?", orderID).First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.UserID != userID {
			return ErrOrderNotFound
		}
		// 行锁之下判重，杜绝并发双扣
		if order.Placed {
			return ErrAlreadyPlaced
		}
		if order.ShippingAddressID == nil || order.BillingAddressID == nil {
			return ErrIncompleteAddress
		}

		if err := loadOrderLines(tx, &order); err != nil {
			return err
		}
		amount := order.Total()

		// 网关调用保持在行锁内：结果完全决定状态迁移
		chargeID, err := s.gateway.Charge(ctx, MinorUnits(amount), s.currency, src)
		if err != nil {
			return err
		}

		code, err := uniqueRefCode(tx)
		if err != nil {
			return err
		}
		now := time.Now()
		pay = &model.Payment{
			ID:        uuid.New().String(),
			ChargeID:  chargeID,
			OrderID:   order.ID,
			UserID:    userID,
			Amount:    amount,
			CreatedAt: now,
		}
		if err := tx.Create(pay).Error; err != nil {
			return err
		}
		if err := tx.Model(&order).Updates(map[string]interface{}{
			"placed":    true,
			"placed_at": now,
			"ref_code":  code,
		}).Error; err != nil {
			return err
		}
		// 冻结订单行
		return tx.Model(&model.OrderItem{}).
			Where("order_id = ?", order.ID).
			Update("ordered", true).Error
	})
	if err != nil {
		return nil, err
	}
	return pay, nil
}

func (s *checkoutService) StoreCard(ctx context.Context, userID, token string) (string, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	customerID, err := s.gateway.CreateCustomer(ctx, user.Email, token)
	if err != nil {
		return "", err
	}
	if err := s.db.WithContext(ctx).Model(&user).
		Update("stripe_customer_id", customerID).Error; err != nil {
		return "", err
	}
	return customerID, nil
}

func (s *checkoutService) RequestRefund(ctx context.Context, refCode, reason, email string) (*model.Refund, error) {
	var refund *model.Refund
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order model.Order
		err := lockForUpdate(tx).
			Where("ref_code = ? AND placed = ?", refCode, true).
			First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if err := tx.Model(&order).Update("refund_requested", true).Error; err != nil {
			return err
		}
		refund = &model.Refund{
			ID:      uuid.New().String(),
			OrderID: order.ID,
			Reason:  reason,
			Email:   email,
		}
		return tx.Create(refund).Error
	})
	if err != nil {
		return nil, err
	}
	return refund, nil
}
