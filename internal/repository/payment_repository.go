package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/gin-shop/internal/model"
)

type PaymentRepository interface {
	GetByOrderID(ctx context.Context, orderID string) (*model.Payment, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.Payment, error)
}

type paymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) PaymentRepository { return &paymentRepository{db: db} }

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID string) (*model.Payment, error) {
	var p model.Payment
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.Payment, error) {
	var res []*model.Payment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}
