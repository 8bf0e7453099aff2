package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/gin-shop/internal/model"
)

type CouponRepository interface {
	Create(ctx context.Context, code string, amount float64) error
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)
}

type couponRepository struct{ db *gorm.DB }

func NewCouponRepository(db *gorm.DB) CouponRepository { return &couponRepository{db: db} }

func (r *couponRepository) Create(ctx context.Context, code string, amount float64) error {
	c := &model.Coupon{ID: uuid.New().String(), Code: code, Amount: amount}
	// 幂等：重复投放同一券码不报错
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(c).Error
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var c model.Coupon
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
