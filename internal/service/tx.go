package service

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/gin-shop/internal/model"
)

// lockForUpdate 给查询加行锁
// sqlite 不支持 FOR UPDATE（测试用单连接内存库，事务本身串行），跳过
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// findOpenOrder 在事务内锁定用户当前未下单订单
func findOpenOrder(tx *gorm.DB, userID string) (*model.Order, error) {
	var order model.Order
	err := lockForUpdate(tx).
		Where("user_id = ? AND placed = ?", userID, false).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveOrder
		}
		return nil, err
	}
	return &order, nil
}

// loadOrderLines 加载订单行（含商品）与优惠券，用于事务内计算金额
func loadOrderLines(tx *gorm.DB, order *model.Order) error {
	if err := tx.Preload("Item").
		Where("order_id = ?", order.ID).
		Find(&order.Items).Error; err != nil {
		return err
	}
	if order.CouponID != nil {
		var coupon model.Coupon
		if err := tx.Where("id = ?", *order.CouponID).First(&coupon).Error; err != nil {
			return err
		}
		order.Coupon = &coupon
	}
	return nil
}
