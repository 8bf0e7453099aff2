package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/gin-shop/internal/model"
)

// OrderRepository 订单仓储接口（读路径；购物车/结账的事务性写在 service 层）
type OrderRepository interface {
	// GetOpenByUserID 查询用户当前未下单订单（含订单行、商品、优惠券）
	GetOpenByUserID(ctx context.Context, userID string) (*model.Order, error)

	// GetByID 根据订单ID查询订单
	GetByID(ctx context.Context, id string) (*model.Order, error)

	// GetByRefCode 根据参考码查询已下单订单
	GetByRefCode(ctx context.Context, refCode string) (*model.Order, error)

	// ListPlacedByUserID 查询用户历史订单
	ListPlacedByUserID(ctx context.Context, userID string, offset, limit int) ([]*model.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) preload(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items.Item").
		Preload("Coupon").
		Preload("ShippingAddress").
		Preload("BillingAddress")
}

func (r *orderRepository) GetOpenByUserID(ctx context.Context, userID string) (*model.Order, error) {
	var order model.Order
	err := r.preload(ctx).Where("user_id = ? AND placed = ?", userID, false).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := r.preload(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByRefCode(ctx context.Context, refCode string) (*model.Order, error) {
	var order model.Order
	err := r.preload(ctx).Where("ref_code = ? AND placed = ?", refCode, true).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListPlacedByUserID(ctx context.Context, userID string, offset, limit int) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.preload(ctx).
		Where("user_id = ? AND placed = ?", userID, true).
		Order("placed_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
