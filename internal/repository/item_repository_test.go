package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/gin-shop/internal/model"
	"github.com/d60-Lab/gin-shop/pkg/database"
)

func setupItemRepo(t *testing.T) (ItemRepository, *gorm.DB, *miniredis.Miniredis) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.InitSchema(db))

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewItemRepository(db, cache, time.Minute), db, mr
}

func TestItemGetByIDCachesResult(t *testing.T) {
	repo, db, mr := setupItemRepo(t)
	ctx := context.Background()

	item := &model.Item{ID: uuid.New().String(), Title: "Basic Tee", Price: 19.99, Category: model.CategoryShirt, Label: model.LabelPrimary}
	require.NoError(t, db.Create(item).Error)

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.Title, got.Title)
	assert.True(t, mr.Exists("item:"+item.ID))

	// 目录行不可变，命中缓存后不再回库
	require.NoError(t, db.Delete(&model.Item{}, "id = ?", item.ID).Error)
	got, err = repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.Title, got.Title)
}

func TestItemGetByIDMiss(t *testing.T) {
	repo, _, _ := setupItemRepo(t)
	_, err := repo.GetByID(context.Background(), "no-such-item")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestItemListByCategory(t *testing.T) {
	repo, db, _ := setupItemRepo(t)
	ctx := context.Background()

	for i, cat := range []string{model.CategoryShirt, model.CategoryShirt, model.CategoryOutWear} {
		require.NoError(t, db.Create(&model.Item{
			ID: uuid.New().String(), Title: "item", Price: float64(i) + 1,
			Category: cat, Label: model.LabelPrimary,
		}).Error)
	}

	all, err := repo.List(ctx, "", 0, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	shirts, err := repo.List(ctx, model.CategoryShirt, 0, 10)
	require.NoError(t, err)
	assert.Len(t, shirts, 2)
}
