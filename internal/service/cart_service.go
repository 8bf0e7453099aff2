package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/gin-shop/internal/model"
	"github.com/d60-Lab/gin-shop/internal/repository"
)

// CartService 购物车聚合：所有写操作在单事务内完成，持有未下单订单行锁
type CartService interface {
	// AddItem 加购：无车建车；已有同商品行则数量 +1
	AddItem(ctx context.Context, userID, itemID string) (*model.Order, error)

	// RemoveItem 整行移除，不论数量
	RemoveItem(ctx context.Context, userID, itemID string) (*model.Order, error)

	// DecrementItem 数量 -1；减到 0 删除整行
	DecrementItem(ctx context.Context, userID, itemID string) (*model.Order, error)

	// ApplyCoupon 绑定优惠券，替换已有券
	ApplyCoupon(ctx context.Context, userID, code string) (*model.Order, error)

	// GetCart 查询当前购物车
	GetCart(ctx context.Context, userID string) (*model.Order, error)
}

type cartService struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
}

func NewCartService(db *gorm.DB, orderRepo repository.OrderRepository) CartService {
	return &cartService{db: db, orderRepo: orderRepo}
}

func (s *cartService) AddItem(ctx context.Context, userID, itemID string) (*model.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.Item
		if err := tx.Where("id = ?", itemID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		order, err := findOpenOrder(tx, userID)
		if errors.Is(err, ErrNoActiveOrder) {
			order = &model.Order{ID: uuid.New().String(), UserID: userID}
			if err := tx.Create(order).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		var line model.OrderItem
		err = tx.Where("order_id = ? AND item_id = ?", order.ID, itemID).First(&line).Error
		switch {
		case err == nil:
			return tx.Model(&line).Update("quantity", gorm.Expr("quantity + ?", 1)).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			line = model.OrderItem{ID: uuid.New().String(), OrderID: order.ID, ItemID: itemID, Quantity: 1}
			return tx.Create(&line).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

func (s *cartService) RemoveItem(ctx context.Context, userID, itemID string) (*model.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := findOpenOrder(tx, userID)
		if err != nil {
			return err
		}
		line, err := findLine(tx, order.ID, itemID)
		if err != nil {
			return err
		}
		return tx.Delete(line).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

func (s *cartService) DecrementItem(ctx context.Context, userID, itemID string) (*model.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := findOpenOrder(tx, userID)
		if err != nil {
			return err
		}
		line, err := findLine(tx, order.ID, itemID)
		if err != nil {
			return err
		}
		// 数量恒 ≥ 1：减到 0 即删行
		if line.Quantity <= 1 {
			return tx.Delete(line).Error
		}
		return tx.Model(line).Update("quantity", gorm.Expr("quantity - ?", 1)).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

func (s *cartService) ApplyCoupon(ctx context.Context, userID, code string) (*model.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := findOpenOrder(tx, userID)
		if err != nil {
			return err
		}
		var coupon model.Coupon
		if err := tx.Where("code = ?", code).First(&coupon).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCouponNotFound
			}
			return err
		}
		return tx.Model(order).Update("coupon_id", coupon.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

func (s *cartService) GetCart(ctx context.Context, userID string) (*model.Order, error) {
	order, err := s.orderRepo.GetOpenByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveOrder
		}
		return nil, err
	}
	return order, nil
}

func findLine(tx *gorm.DB, orderID, itemID string) (*model.OrderItem, error) {
	var line model.OrderItem
	err := tx.Where("order_id = ? AND item_id = ?", orderID, itemID).First(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotInCart
		}
		return nil, err
	}
	return &line, nil
}
