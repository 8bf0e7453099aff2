package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/gin-shop/pkg/response"
)

type refundRequest struct {
	RefCode string `json:"ref_code" binding:"required,refcode"`
	Reason  string `json:"reason" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
}

// RequestRefund 按参考码申请退款
// @Summary 申请退款
// @Tags 退款
// @Accept json
// @Produce json
// @Param request body refundRequest true "参考码、原因与联系邮箱"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/refunds [post]
func (h *Handler) RequestRefund(c *gin.Context) {
	var req refundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	refund, err := h.checkoutService.RequestRefund(c.Request.Context(), req.RefCode, req.Reason, req.Email)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, refund)
}
