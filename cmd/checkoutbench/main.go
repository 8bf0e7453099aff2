package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/gin-shop/config"
	"github.com/d60-Lab/gin-shop/internal/model"
	"github.com/d60-Lab/gin-shop/internal/payment"
	"github.com/d60-Lab/gin-shop/internal/repository"
	"github.com/d60-Lab/gin-shop/internal/service"
	"github.com/d60-Lab/gin-shop/pkg/database"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

// noopGateway 本地基准用网关替身，立即放行
type noopGateway struct{}

func (noopGateway) Charge(context.Context, int64, string, payment.Source) (string, error) {
	return "ch_bench", nil
}
func (noopGateway) CreateCustomer(context.Context, string, string) (string, error) {
	return "cus_bench", nil
}

// 基准：N 个用户各自 加购→地址→扣款 全链路，CONC 并发
func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	defer func() { _ = database.Close(db) }()

	orderRepo := repository.NewOrderRepository(db)
	cartSvc := service.NewCartService(db, orderRepo)
	checkoutSvc := service.NewCheckoutService(db, noopGateway{}, orderRepo, "usd", "")

	ctx := context.Background()

	N := 1000
	if s := os.Getenv("N"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 { N = n }
	}
	CONC := 4
	if s := os.Getenv("CONC"); s != "" {
		if c, err := strconv.Atoi(s); err == nil && c > 0 { CONC = c }
	}

	item := model.Item{ID: uuid.New().String(), Title: "bench-tee", Price: 19.99, Category: model.CategoryShirt, Label: model.LabelPrimary}
	if err := db.Create(&item).Error; err != nil { panic(err) }

	users := make([]string, N)
	for i := range users { users[i] = uuid.New().String() }

	recs := make([]time.Duration, 0, N)
	recCh := make(chan time.Duration, N)
	feed := make(chan int, N)
	for i := 0; i < N; i++ { feed <- i }
	close(feed)

	workers := CONC
	if workers > N { workers = N }
	done := make(chan error, workers)

	t0 := time.Now()
	for w := 0; w < workers; w++ {
		go func() {
			for i := range feed {
				uid := users[i]
				st := time.Now()
				if _, err := cartSvc.AddItem(ctx, uid, item.ID); err != nil { done <- err; return }
				if _, err := checkoutSvc.SetAddress(ctx, uid, model.AddressTypeShipping, service.AddressInput{
					Street: "1 Main St", Country: "US", Zip: "10001",
				}); err != nil { done <- err; return }
				order, err := checkoutSvc.SetAddress(ctx, uid, model.AddressTypeBilling, service.AddressInput{SameAsShipping: true})
				if err != nil { done <- err; return }
				if _, err := checkoutSvc.Charge(ctx, uid, order.ID, payment.Source{Token: "tok_bench"}); err != nil { done <- err; return }
				recCh <- time.Since(st)
			}
			done <- nil
		}()
	}
	for w := 0; w < workers; w++ {
		if err := <-done; err != nil { panic(err) }
	}
	close(recCh)
	for d := range recCh { recs = append(recs, d) }
	total := time.Since(t0)

	pct := func(vs []time.Duration, p float64) time.Duration {
		if len(vs) == 0 { return 0 }
		xs := append([]time.Duration(nil), vs...)
		sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
		k := int(math.Ceil(p*float64(len(xs)))) - 1
		if k < 0 { k = 0 }
		if k >= len(xs) { k = len(xs) - 1 }
		return xs[k]
	}

	fmt.Printf("N=%d, CONC=%d\n", N, CONC)
	fmt.Printf("Full checkout total: %v, per op: %v, p50: %v, p95: %v, p99: %v\n",
		total, total/time.Duration(N), pct(recs, 0.50), pct(recs, 0.95), pct(recs, 0.99))
}
