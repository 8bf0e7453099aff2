package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/gin-shop/internal/api/middleware"
	"github.com/d60-Lab/gin-shop/internal/payment"
	"github.com/d60-Lab/gin-shop/internal/repository"
	"github.com/d60-Lab/gin-shop/internal/service"
	"github.com/d60-Lab/gin-shop/pkg/response"
)

// Handler 聚合各业务服务的 HTTP 处理器
type Handler struct {
	catalogService  service.CatalogService
	cartService     service.CartService
	checkoutService service.CheckoutService
	orderRepo       repository.OrderRepository
	addressRepo     repository.AddressRepository
	paymentRepo     repository.PaymentRepository
}

func NewHandler(
	catalogService service.CatalogService,
	cartService service.CartService,
	checkoutService service.CheckoutService,
	orderRepo repository.OrderRepository,
	addressRepo repository.AddressRepository,
	paymentRepo repository.PaymentRepository,
) *Handler {
	return &Handler{
		catalogService:  catalogService,
		cartService:     cartService,
		checkoutService: checkoutService,
		orderRepo:       orderRepo,
		addressRepo:     addressRepo,
		paymentRepo:     paymentRepo,
	}
}

func userID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserID)
}

// respondErr 业务错误 → HTTP 响应的统一映射
func respondErr(c *gin.Context, err error) {
	if pe, ok := payment.AsError(err); ok {
		switch pe.Kind {
		case payment.KindUnavailable, payment.KindUnknown:
			response.Error(c, http.StatusBadGateway, string(pe.Kind)+": "+pe.Message)
		default:
			response.Error(c, http.StatusPaymentRequired, string(pe.Kind)+": "+pe.Message)
		}
		return
	}

	switch {
	case errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrCouponNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNoActiveOrder),
		errors.Is(err, service.ErrItemNotInCart),
		errors.Is(err, service.ErrNoDefaultAddress),
		errors.Is(err, service.ErrIncompleteAddress),
		errors.Is(err, service.ErrAlreadyPlaced),
		errors.Is(err, service.ErrInvalidAddressType),
		errors.Is(err, service.ErrInvalidPaymentMethod):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
