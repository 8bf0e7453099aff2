package api

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/gin-shop/config"
	_ "github.com/d60-Lab/gin-shop/docs"
	"github.com/d60-Lab/gin-shop/internal/api/handler"
	"github.com/d60-Lab/gin-shop/internal/api/middleware"
)

// NewRouter 组装路由与中间件
func NewRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	registerValidations()

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(otelgin.Middleware(cfg.Trace.ServiceName))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// 目录与退款申请无需登录（参考码即凭证）
	v1.GET("/items", h.ListItems)
	v1.GET("/items/:id", h.GetItem)
	v1.POST("/refunds", h.RequestRefund)

	auth := v1.Group("", middleware.JWTAuth(cfg.JWT.Secret))
	{
		cart := auth.Group("/cart")
		{
			cart.GET("", h.GetCart)
			cart.POST("/items", h.AddItem)
			cart.DELETE("/items/:item_id", h.RemoveItem)
			cart.POST("/items/:item_id/decrement", h.DecrementItem)
			cart.POST("/coupon", h.ApplyCoupon)
		}

		checkout := auth.Group("/checkout",
			middleware.RateLimit(cfg.Limit.ChargePerSecond, cfg.Limit.ChargeBurst))
		{
			checkout.POST("", h.Checkout)
			checkout.POST("/address", h.SetAddress)
			checkout.POST("/charge", h.Charge)
			checkout.POST("/card", h.StoreCard)
		}

		auth.GET("/orders", h.ListOrders)
		auth.GET("/addresses", h.ListAddresses)
		auth.GET("/payments", h.ListPayments)
	}

	return r
}

// registerValidations 注册参考码格式校验（20位小写字母/数字）
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("refcode", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) != 20 {
			return false
		}
		for _, r := range s {
			if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
				return false
			}
		}
		return true
	})
}
