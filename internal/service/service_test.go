package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/gin-shop/internal/model"
	"github.com/d60-Lab/gin-shop/internal/payment"
	"github.com/d60-Lab/gin-shop/internal/repository"
	"github.com/d60-Lab/gin-shop/pkg/database"
)

func setupShopDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库每个连接各自独立，收紧到单连接
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.InitSchema(db))
	return db
}

func seedItem(t *testing.T, db *gorm.DB, title string, price float64) *model.Item {
	t.Helper()
	item := &model.Item{
		ID:       uuid.New().String(),
		Title:    title,
		Price:    price,
		Category: model.CategoryShirt,
		Label:    model.LabelPrimary,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func seedCoupon(t *testing.T, db *gorm.DB, code string, amount float64) *model.Coupon {
	t.Helper()
	c := &model.Coupon{ID: uuid.New().String(), Code: code, Amount: amount}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    username + "@example.com",
		Password: "p",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// fakeGateway 记录调用的网关替身，err 置位时所有调用返回该错误
type fakeGateway struct {
	err         error
	chargeCalls int
	lastAmount  int64
	lastSource  payment.Source
}

func (f *fakeGateway) Charge(_ context.Context, amountMinor int64, _ string, src payment.Source) (string, error) {
	f.chargeCalls++
	f.lastAmount = amountMinor
	f.lastSource = src
	if f.err != nil {
		return "", f.err
	}
	return "ch_test_1", nil
}

func (f *fakeGateway) CreateCustomer(_ context.Context, _, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "cus_test_1", nil
}

type shopFixture struct {
	db       *gorm.DB
	gateway  *fakeGateway
	cart     CartService
	checkout CheckoutService
}

func setupShop(t *testing.T) *shopFixture {
	t.Helper()
	db := setupShopDB(t)
	orderRepo := repository.NewOrderRepository(db)
	gw := &fakeGateway{}
	return &shopFixture{
		db:       db,
		gateway:  gw,
		cart:     NewCartService(db, orderRepo),
		checkout: NewCheckoutService(db, gw, orderRepo, "usd", "https://wallet.example.com/pay"),
	}
}

// setBothAddresses 准备好一个可扣款的订单（收货+账单地址）
func setBothAddresses(t *testing.T, f *shopFixture, userID string) *model.Order {
	t.Helper()
	ctx := context.Background()
	_, err := f.checkout.SetAddress(ctx, userID, model.AddressTypeShipping, AddressInput{
		Street: "1 Main St", Country: "US", Zip: "10001",
	})
	require.NoError(t, err)
	order, err := f.checkout.SetAddress(ctx, userID, model.AddressTypeBilling, AddressInput{
		SameAsShipping: true,
	})
	require.NoError(t, err)
	return order
}
