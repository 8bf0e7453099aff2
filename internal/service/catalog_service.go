package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/gin-shop/internal/model"
	"github.com/d60-Lab/gin-shop/internal/repository"
)

// CatalogService 目录只读服务
type CatalogService interface {
	ListItems(ctx context.Context, category string, page, pageSize int) ([]*model.Item, error)
	GetItem(ctx context.Context, id string) (*model.Item, error)
}

type catalogService struct {
	itemRepo repository.ItemRepository
}

func NewCatalogService(itemRepo repository.ItemRepository) CatalogService {
	return &catalogService{itemRepo: itemRepo}
}

func (s *catalogService) ListItems(ctx context.Context, category string, page, pageSize int) ([]*model.Item, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize
	return s.itemRepo.List(ctx, category, offset, pageSize)
}

func (s *catalogService) GetItem(ctx context.Context, id string) (*model.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}
