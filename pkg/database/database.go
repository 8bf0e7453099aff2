package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/gin-shop/config"
	"github.com/d60-Lab/gin-shop/internal/model"
)

// InitDB 按配置打开数据库并初始化表结构
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := InitSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

// InitSchema 初始化数据库表结构
func InitSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Item{},
		&model.Order{},
		&model.OrderItem{},
		&model.Address{},
		&model.Coupon{},
		&model.Payment{},
		&model.Refund{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// 部分唯一索引：每个用户最多一个未下单订单
	// AutoMigrate 的标签表达不了 WHERE 条件，postgres/sqlite 都支持该语法
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_orders_user_open ON orders (user_id) WHERE NOT placed`,
	).Error; err != nil {
		return fmt.Errorf("failed to create open-order index: %w", err)
	}
	return nil
}

// Close 关闭数据库连接
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
