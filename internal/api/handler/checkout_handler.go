package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/gin-shop/internal/payment"
	"github.com/d60-Lab/gin-shop/internal/service"
	"github.com/d60-Lab/gin-shop/pkg/response"
)

type setAddressRequest struct {
	AddressType    string `json:"address_type" binding:"required,oneof=S B"`
	Street         string `json:"street" binding:"required_without_all=UseDefault SameAsShipping"`
	Apartment      string `json:"apartment"`
	Country        string `json:"country" binding:"required_without_all=UseDefault SameAsShipping"`
	Zip            string `json:"zip" binding:"required_without_all=UseDefault SameAsShipping"`
	UseDefault     bool   `json:"use_default"`
	SetDefault     bool   `json:"set_default"`
	SameAsShipping bool   `json:"same_as_shipping"`
}

type checkoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,oneof=card external-wallet"`
}

type chargeRequest struct {
	OrderID    string `json:"order_id" binding:"required"`
	Token      string `json:"token"`
	CustomerID string `json:"customer_id"`
}

type storeCardRequest struct {
	Token string `json:"token" binding:"required"`
}

// SetAddress 绑定收货/账单地址
// @Summary 设置结账地址
// @Tags 结账
// @Accept json
// @Produce json
// @Param request body setAddressRequest true "地址信息；use_default/same_as_shipping 与手填字段互斥"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 400 {object} response.Response
// @Router /api/v1/checkout/address [post]
func (h *Handler) SetAddress(c *gin.Context) {
	var req setAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	order, err := h.checkoutService.SetAddress(c.Request.Context(), userID(c), req.AddressType, service.AddressInput{
		Street:         req.Street,
		Apartment:      req.Apartment,
		Country:        req.Country,
		Zip:            req.Zip,
		UseDefault:     req.UseDefault,
		SetDefault:     req.SetDefault,
		SameAsShipping: req.SameAsShipping,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, cartPayload(order))
}

// Checkout 校验地址并选定支付方式
// @Summary 结账
// @Tags 结账
// @Accept json
// @Produce json
// @Param request body checkoutRequest true "支付方式 card / external-wallet"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 400 {object} response.Response
// @Router /api/v1/checkout [post]
func (h *Handler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	order, redirect, err := h.checkoutService.Checkout(c.Request.Context(), userID(c), req.PaymentMethod)
	if err != nil {
		respondErr(c, err)
		return
	}
	data := cartPayload(order)
	if redirect != "" {
		data["redirect_url"] = redirect
	}
	response.Success(c, data)
}

// Charge 扣款落单
// @Summary 扣款
// @Tags 结账
// @Accept json
// @Produce json
// @Param request body chargeRequest true "订单与支付来源（token 或已留卡 customer_id）"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 402 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /api/v1/checkout/charge [post]
func (h *Handler) Charge(c *gin.Context) {
	var req chargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	pay, err := h.checkoutService.Charge(c.Request.Context(), userID(c), req.OrderID, payment.Source{
		Token:      req.Token,
		CustomerID: req.CustomerID,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, pay)
}

// StoreCard 留卡，之后可免 token 一键扣款
// @Summary 留卡
// @Tags 结账
// @Accept json
// @Produce json
// @Param request body storeCardRequest true "卡 token"
// @Success 200 {object} response.Response
// @Failure 402 {object} response.Response
// @Router /api/v1/checkout/card [post]
func (h *Handler) StoreCard(c *gin.Context) {
	var req storeCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	customerID, err := h.checkoutService.StoreCard(c.Request.Context(), userID(c), req.Token)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, gin.H{"customer_id": customerID})
}

// ListOrders 历史订单
// @Summary 历史订单
// @Tags 结账
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/orders [get]
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	list, err := h.orderRepo.ListPlacedByUserID(c.Request.Context(), userID(c), (page-1)*pageSize, pageSize)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

// ListAddresses 地址簿
// @Summary 地址簿
// @Tags 结账
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/addresses [get]
func (h *Handler) ListAddresses(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	list, err := h.addressRepo.ListByUser(c.Request.Context(), userID(c), (page-1)*pageSize, pageSize)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

// ListPayments 扣款记录
// @Summary 扣款记录
// @Tags 结账
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/payments [get]
func (h *Handler) ListPayments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	list, err := h.paymentRepo.ListByUser(c.Request.Context(), userID(c), (page-1)*pageSize, pageSize)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}
