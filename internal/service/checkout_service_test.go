package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/gin-shop/internal/model"
	"github.com/d60-Lab/gin-shop/internal/payment"
)

func TestSetAddressRequiresOpenOrder(t *testing.T) {
	f := setupShop(t)
	_, err := f.checkout.SetAddress(context.Background(), "u1", model.AddressTypeShipping, AddressInput{
		Street: "1 Main St", Country: "US", Zip: "10001",
	})
	assert.ErrorIs(t, err, ErrNoActiveOrder)
}

func TestSetAddressRejectsBlankManualEntry(t *testing.T) {
	f := setupShop(t)
	ctx := context.Background()
	item := seedItem(t, f.db, "Basic Tee", 19.99)
	_, err := f.cart.AddItem(ctx, "u1", item.ID)
	require.NoError(t, err)

	// 手填路径缺关键字段：不得落空行
	_, err = f.checkout.SetAddress(ctx, "u1", model.AddressTypeShipping, AddressInput{Street: "1 Main St"})
	assert.ErrorIs(t, err, ErrIncompleteAddress)

	var addresses int64
	require.NoError(t, f.db.Model(&model.Address{}).Count(&addresses).Error)
	assert.Zero(t, addresses)
}

func TestSetAddressDefaultLookup(t *testing.T) {
	f := setupShop(t)
	ctx := context.Background()
	item := seedItem(t, f.db, "Basic Tee", 19.99)
	_, err := f.cart.AddItem(ctx, "u1", item.ID)
	require.NoError(t, err)

	_, err = f.checkout.SetAddress(ctx, "u1", model.AddressTypeShipping, AddressInput{UseDefault: true})
	assert.ErrorIs(t, err, ErrNoDefaultAddress)

	_, err = f.checkout.SetAddress(ctx, "u1", model.AddressTypeShipping, AddressInput{
		Street: "1 Main St", Country: "US", Zip: "10001", SetDefault: true,
	})
	require.NoError(t, err)

	order, err := f.checkout.SetAddress(ctx, "u1", model.AddressTypeShipping, AddressInput{UseDefault: true})
	require.NoError(t, err)
	require.NotNil(t, order.ShippingAddress)
	assert.Equal(t, "1 Main St", order.ShippingAddress.Street)
}

func TestSetDefaultIsSingletonPerType(t *testing.T) {
	f := setupShop(t)
	ctx := context.Background()
	item := seedItem(t, f.db, "Basic Tee", 19.99)
	_, err := f.cart.AddItem(ctx, "u1", item.ID)
	require.NoError(t, err)

	for _, street := range []string{"1 Main St", "2 Side St"} {
		_, err = f.checkout.SetAddress(ctx, "u1", model.AddressTypeShipping, AddressInput{
			Street: street, Country: "US", Zip: "10001", SetDefault: true,
		})
		require.NoError(t, err)
	}

	var defaults []model.Address
	require.NoError(t, f.db.
		Where("user_id = ? AND address_type = ? AND is_default = ?", "u1", model.AddressTypeShipping, true).
		Find(&defaults).Error)
	require.Len(t, defaults, 1)
	assert.Equal(t, "2 Side St", defaults[0].Street)
}

func TestBillingSameAsShippingCopiesRow(t *testing.T) {
	f := setupShop(t)
	ctx := context.Background()
	item := seedItem(t, f.db, "Basic Tee", 19.99)
	_, err := f.cart.AddItem(ctx, "u1", item.ID)
	require.NoError(t, err)

	// 没有收货地址时不可引用
	_, err = f.checkout.SetAddress(ctx, "u1", model.AddressTypeBilling, AddressInput{SameAsShipping: true})
	assert.ErrorIs(t, err, ErrIncompleteAddress)

	order := setBothAddresses(t, f, "u1")
	require.NotNil(t, order.ShippingAddress)
	require.NotNil(t, order.BillingAddress)
	// 复制为新行：字段一致、行不同、类型正确
	assert.NotEqual(t, order.ShippingAddress.ID, order.BillingAddress.ID)
	assert.Equal(t, order.ShippingAddress.Street, order.BillingAddress.Street)
	assert.Equal(t, model.AddressTypeBilling, order.BillingAddress.AddressType)
	assert.Equal(t, model.AddressTypeShipping, order.ShippingAddress.AddressType)
}

func TestCheckoutRequiresBothAddresses(t *testing.T) {
	f := setupShop(t)
	ctx := context.Background()
	item := seedItem(t, f.db, "Basic Tee", 19.99)
	_, err := f.cart.AddItem(ctx, "u1", item.ID)
	require.NoError(t, err)

	_, _, err = f.checkout.Checkout(ctx, "u1", model.PaymentMethodCard)
	assert.ErrorIs(t, err, ErrIncompleteAddress)

	_, err = f.checkout.SetAddress(ctx, "u1", model.AddressTypeShipping, AddressInput{
		Street: "1 Main St", Country: "US", Zip: "10001",
	})
	require.NoError(t, err)

	// 账单地址仍缺失
	_, _, err = f.checkout.Checkout(ctx, "u1", model.PaymentMethodCard)
	assert.ErrorIs(t, err, ErrIncompleteAddress)

	order, err := f.cart.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, order.Placed)
	var payments int64
	require.NoError(t, f.db.Model(&model.Payment{}).Count(&payments).Error)
	assert.Zero(t, payments)
}

func TestCheckoutMethods(t *testing.T) {
	f := setupShop(t)
	ctx := context.Background()
	item := seedItem(t, f.db, "Basic Tee", 19.99)
	_, err := f.cart.AddItem(ctx, "u1", item.ID)
	require.NoError(t, err)
	setBothAddresses(t, f, "u1")

	_, _, err = f.checkout.Checkout(ctx, "u1", "cash")
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)

	order, redirect, err := f.checkout.Checkout(ctx, "u1", model.PaymentMethodCard)
	require.NoError(t, err)
	assert.Empty(t, redirect)
	assert.Equal(t, model.OrderStatusPaymentPending, order.Status())

	// 外部钱包：只返回跳转地址，状态机止步于此
	_, redirect, err = f.checkout.Checkout(ctx, "u1", model.PaymentMethodWallet)
	require.NoError(t, err)
	assert.Equal(t, "https://wallet.example.com/pay", redirect)
}

func TestChargePlacesOrder(t *testing.T) {
	f := setupShop(t)
	ctx := context.Background()
	item := seedItem(t, f.db, "Basic Tee", 19.99)
	seedCoupon(t, f.db, "WELCOME5", 5.00)

	_, err := f.cart.AddItem(ctx, "u1", item.ID)
	require.NoError(t, err)
	_, err = f.cart.AddItem(ctx, "u1", item.ID)
	require.NoError(t, err)
	_, err = f.cart.ApplyCoupon(ctx, "u1", "WELCOME5")
	require.NoError(t, err)
	order := setBothAddresses(t, f, "u1")

	pay, err := f.checkout.Charge(ctx, "u1", order.ID, payment.Source{Token: "tok_visa"})
	require.NoError(t, err)
	require.NotNil(t, pay)
	assert.Equal(t, "ch_test_1", pay.ChargeID)
	assert.InDelta(t, 34.98, pay.Amount, 1e-9)
	assert.Equal(t, int64(3498), f.gateway.lastAmount)

	var placed model.Order
	require.NoError(t, f.db.Where("id = ?", order.ID).First(&placed).Error)
	assert.True(t, placed.Placed)
	require.NotNil(t, placed.RefCode)
	assert.Len(t, *placed.RefCode, 20)
	require.NotNil(t, placed.PlacedAt)

	// 订单行全部冻结
	var unfrozen int64
	require.NoError(t, f.db.Model(&model.OrderItem{}).
		Where("order_id = ? AND ordered = ?", order.ID, false).Count(&unfrozen).Error)
	assert.Zero(t, unfrozen)
}

func TestChargeTwiceFailsFast(t *testing.T) {
	f := setupShop(t)
	ctx := context.Background()
	item := seedItem(t, f.db, "Basic Tee", 19.99)
	_, err := f.cart.AddItem(ctx, "u1", item.ID)
	require.NoError(t, err)
	order := setBothAddresses(t, f, "u1")

	_, err = f.checkout.Charge(ctx, "u1", order.ID, payment.Source{Token: "tok_visa"})
	require.NoError(t, err)

	_, err = f.checkout.Charge(ctx, "u1", order.ID, payment.Source{Token: "tok_visa"})
	assert.ErrorIs(t, err, ErrAlreadyPlaced)
	assert.Equal(t, 1, f.gateway.chargeCalls, "second attempt must not reach the gateway")

	var payments int64
	require.NoError(t, f.db.Model(&model.Payment{}).
		Where("order_id = ?", order.ID).Count(&payments).Error)
	assert.Equal(t, int64(1), payments)
}

func TestChargeGatewayDeclineLeavesOrderOpen(t *testing.T) {
	f := setupShop(t)
	ctx := context.Background()
	item := seedItem(t, f.db, "Basic Tee", 19.99)
	_, err := f.cart.AddItem(ctx, "u1", item.ID)
	require.NoError(t, err)
	order := setBothAddresses(t, f, "u1")

	f.gateway.err = &payment.Error{Kind: payment.KindDeclined, Message: "card declined"}
	_, err = f.checkout.Charge(ctx, "u1", order.ID, payment.Source{Token: "tok_chargeDeclined"})
	pe, ok := payment.AsError(err)
	require.True(t, ok)
	assert.Equal(t, payment.KindDeclined, pe.Kind)

	var after model.Order
	require.NoError(t, f.db.Where("id = ?", order.ID).First(&after).Error)
	assert.False(t, after.Placed)
	assert.Nil(t, after.RefCode)
	var payments int64
	require.NoError(t, f.db.Model(&model.Payment{}).Count(&payments).Error)
	assert.Zero(t, payments)

	// 失败后可重试
	f.gateway.err = nil
	_, err = f.checkout.Charge(ctx, "u1", order.ID, payment.Source{Token: "tok_visa"})
	require.NoError(t, err)
}

func TestChargeChecksOwnershipAndExistence(t *testing.T) {
	f := setupShop(t)
	ctx := context.Background()
	item := seedItem(t, f.db, "Basic Tee", 19.99)
	_, err := f.cart.AddItem(ctx, "u1", item.ID)
	require.NoError(t, err)
	order := setBothAddresses(t, f, "u1")

	_, err = f.checkout.Charge(ctx, "u1", "no-such-order", payment.Source{Token: "tok_visa"})
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = f.checkout.Charge(ctx, "u2", order.ID, payment.Source{Token: "tok_visa"})
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Zero(t, f.gateway.chargeCalls)
}

func TestRequestRefund(t *testing.T) {
	f := setupShop(t)
	ctx := context.Background()
	item := seedItem(t, f.db, "Basic Tee", 19.99)
	_, err := f.cart.AddItem(ctx, "u1", item.ID)
	require.NoError(t, err)
	order := setBothAddresses(t, f, "u1")

	_, err = f.checkout.RequestRefund(ctx, "aaaaaaaaaaaaaaaaaaaa", "wrong size", "a@b.com")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = f.checkout.Charge(ctx, "u1", order.ID, payment.Source{Token: "tok_visa"})
	require.NoError(t, err)

	var placed model.Order
	require.NoError(t, f.db.Where("id = ?", order.ID).First(&placed).Error)
	refund, err := f.checkout.RequestRefund(ctx, *placed.RefCode, "wrong size", "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, order.ID, refund.OrderID)
	assert.False(t, refund.Accepted)

	require.NoError(t, f.db.Where("id = ?", order.ID).First(&placed).Error)
	assert.True(t, placed.RefundRequested)
	assert.Equal(t, model.OrderStatusRefundRequested, placed.Status())

	// Payment 原样保留
	var payments int64
	require.NoError(t, f.db.Model(&model.Payment{}).
		Where("order_id = ?", order.ID).Count(&payments).Error)
	assert.Equal(t, int64(1), payments)
}

func TestStoreCard(t *testing.T) {
	f := setupShop(t)
	ctx := context.Background()

	_, err := f.checkout.StoreCard(ctx, "nobody", "tok_visa")
	assert.ErrorIs(t, err, ErrUserNotFound)

	user := seedUser(t, f.db, "demo")
	customerID, err := f.checkout.StoreCard(ctx, user.ID, "tok_visa")
	require.NoError(t, err)
	assert.Equal(t, "cus_test_1", customerID)

	var stored model.User
	require.NoError(t, f.db.Where("id = ?", user.ID).First(&stored).Error)
	assert.Equal(t, "cus_test_1", stored.StripeCustomerID)

	// 留卡后可用 customer 扣款
	item := seedItem(t, f.db, "Basic Tee", 19.99)
	_, err = f.cart.AddItem(ctx, user.ID, item.ID)
	require.NoError(t, err)
	order := setBothAddresses(t, f, user.ID)
	_, err = f.checkout.Charge(ctx, user.ID, order.ID, payment.Source{CustomerID: customerID})
	require.NoError(t, err)
	assert.Equal(t, customerID, f.gateway.lastSource.CustomerID)
}
