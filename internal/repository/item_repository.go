package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/d60-Lab/gin-shop/internal/model"
)

// ItemRepository 商品仓储接口（目录只读路径带缓存）
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	GetByID(ctx context.Context, id string) (*model.Item, error)
	List(ctx context.Context, category string, offset, limit int) ([]*model.Item, error)
}

type itemRepository struct {
	db    *gorm.DB
	cache *redis.Client
	ttl   time.Duration
}

// NewItemRepository 创建商品仓储；cache 可为 nil（直查库）
func NewItemRepository(db *gorm.DB, cache *redis.Client, ttl time.Duration) ItemRepository {
	return &itemRepository{db: db, cache: cache, ttl: ttl}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetByID 旁路缓存：目录行不可变，无需失效
func (r *itemRepository) GetByID(ctx context.Context, id string) (*model.Item, error) {
	key := "item:" + id
	if r.cache != nil {
		if data, err := r.cache.Get(ctx, key).Bytes(); err == nil {
			var item model.Item
			if uErr := json.Unmarshal(data, &item); uErr == nil {
				return &item, nil
			}
		}
	}

	var item model.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	if r.cache != nil {
		if payload, err := json.Marshal(&item); err == nil {
			_ = r.cache.Set(ctx, key, payload, r.ttl).Err()
		}
	}
	return &item, nil
}

func (r *itemRepository) List(ctx context.Context, category string, offset, limit int) ([]*model.Item, error) {
	key := fmt.Sprintf("items:%s:%d:%d", category, offset, limit)
	if r.cache != nil {
		if data, err := r.cache.Get(ctx, key).Bytes(); err == nil {
			var items []*model.Item
			if uErr := json.Unmarshal(data, &items); uErr == nil {
				return items, nil
			}
		}
	}

	q := r.db.WithContext(ctx).Model(&model.Item{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var items []*model.Item
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	if r.cache != nil {
		if payload, err := json.Marshal(items); err == nil {
			_ = r.cache.Set(ctx, key, payload, r.ttl).Err()
		}
	}
	return items, nil
}
