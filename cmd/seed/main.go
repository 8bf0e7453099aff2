package main

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/gin-shop/config"
	"github.com/d60-Lab/gin-shop/internal/model"
	"github.com/d60-Lab/gin-shop/internal/repository"
	"github.com/d60-Lab/gin-shop/pkg/database"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }
func mustDo(err error)             { if err != nil { panic(err) } }

// 演示数据：商品、优惠券、体验账号，并签发一枚可直接调用 API 的 token
func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	defer func() { _ = database.Close(db) }()
	ctx := context.Background()

	items := []model.Item{
		{ID: uuid.New().String(), Title: "Basic Tee", Price: 19.99, Category: model.CategoryShirt, Label: model.LabelPrimary},
		{ID: uuid.New().String(), Title: "Logo Tee", Price: 24.50, Category: model.CategoryShirt, Label: model.LabelSecondary},
		{ID: uuid.New().String(), Title: "Track Jacket", Price: 59.90, Category: model.CategorySportWear, Label: model.LabelPrimary},
		{ID: uuid.New().String(), Title: "Running Shorts", Price: 19.995, Category: model.CategorySportWear, Label: model.LabelDanger},
		{ID: uuid.New().String(), Title: "Winter Parka", Price: 129.00, Category: model.CategoryOutWear, Label: model.LabelPrimary},
	}
	mustDo(db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&items).Error)

	couponRepo := repository.NewCouponRepository(db)
	mustDo(couponRepo.Create(ctx, "WELCOME5", 5.00))
	mustDo(couponRepo.Create(ctx, "BIGSPENDER", 20.00))

	hash := must(bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost))
	demo := model.User{
		ID:       uuid.New().String(),
		Username: "demo",
		Email:    "demo@example.com",
		Password: string(hash),
		Age:      30,
	}
	mustDo(db.WithContext(ctx).Where("username = ?", demo.Username).FirstOrCreate(&demo).Error)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": demo.ID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	signed := must(token.SignedString([]byte(cfg.JWT.Secret)))

	fmt.Printf("seeded %d items, 2 coupons\n", len(items))
	fmt.Printf("demo user: %s\n", demo.ID)
	fmt.Printf("bearer token: %s\n", signed)
}
