package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/gin-shop/internal/model"
)

type AddressRepository interface {
	Create(ctx context.Context, addr *model.Address) error
	GetByID(ctx context.Context, id string) (*model.Address, error)
	// GetDefault 查询 (user, type) 的默认地址
	GetDefault(ctx context.Context, userID, addressType string) (*model.Address, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.Address, error)
}

type addressRepository struct{ db *gorm.DB }

func NewAddressRepository(db *gorm.DB) AddressRepository { return &addressRepository{db: db} }

func (r *addressRepository) Create(ctx context.Context, addr *model.Address) error {
	return r.db.WithContext(ctx).Create(addr).Error
}

func (r *addressRepository) GetByID(ctx context.Context, id string) (*model.Address, error) {
	var addr model.Address
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&addr).Error; err != nil {
		return nil, err
	}
	return &addr, nil
}

func (r *addressRepository) GetDefault(ctx context.Context, userID, addressType string) (*model.Address, error) {
	var addr model.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND address_type = ? AND is_default = ?", userID, addressType, true).
		First(&addr).Error
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

func (r *addressRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.Address, error) {
	var res []*model.Address
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}
