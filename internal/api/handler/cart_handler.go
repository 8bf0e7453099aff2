package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/gin-shop/internal/model"
	"github.com/d60-Lab/gin-shop/pkg/response"
)

type addItemRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

type applyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

func cartPayload(order *model.Order) gin.H {
	return gin.H{"order": order, "total": order.Total(), "status": order.Status()}
}

// GetCart 查询当前购物车
// @Summary 当前购物车
// @Tags 购物车
// @Produce json
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 400 {object} response.Response
// @Router /api/v1/cart [get]
func (h *Handler) GetCart(c *gin.Context) {
	order, err := h.cartService.GetCart(c.Request.Context(), userID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, cartPayload(order))
}

// AddItem 加购（重复加购数量+1）
// @Summary 加入购物车
// @Tags 购物车
// @Accept json
// @Produce json
// @Param request body addItemRequest true "商品"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/cart/items [post]
func (h *Handler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	order, err := h.cartService.AddItem(c.Request.Context(), userID(c), req.ItemID)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, cartPayload(order))
}

// RemoveItem 整行移除
// @Summary 移除商品
// @Tags 购物车
// @Produce json
// @Param item_id path string true "商品ID"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 400 {object} response.Response
// @Router /api/v1/cart/items/{item_id} [delete]
func (h *Handler) RemoveItem(c *gin.Context) {
	order, err := h.cartService.RemoveItem(c.Request.Context(), userID(c), c.Param("item_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, cartPayload(order))
}

// DecrementItem 数量-1，减到0删行
// @Summary 减少数量
// @Tags 购物车
// @Produce json
// @Param item_id path string true "商品ID"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 400 {object} response.Response
// @Router /api/v1/cart/items/{item_id}/decrement [post]
func (h *Handler) DecrementItem(c *gin.Context) {
	order, err := h.cartService.DecrementItem(c.Request.Context(), userID(c), c.Param("item_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, cartPayload(order))
}

// ApplyCoupon 绑定优惠券（覆盖旧券）
// @Summary 使用优惠券
// @Tags 购物车
// @Accept json
// @Produce json
// @Param request body applyCouponRequest true "券码"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/cart/coupon [post]
func (h *Handler) ApplyCoupon(c *gin.Context) {
	var req applyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	order, err := h.cartService.ApplyCoupon(c.Request.Context(), userID(c), req.Code)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, cartPayload(order))
}
