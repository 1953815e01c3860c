package internalapi

import (
	"errors"
	"strings"

	"github.com/slideboard-next/internal/constants"
	"github.com/slideboard-next/internal/http/response"
	"github.com/slideboard-next/internal/logger"
	"github.com/slideboard-next/internal/models"
	"github.com/slideboard-next/internal/queue"
	"github.com/slideboard-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// OrderEventRequest 订单事件请求。order_id 与 order_no 至少提供其一，
// 支付回调等只带业务单号的上游可只传 order_no
type OrderEventRequest struct {
	TenantID uint   `json:"tenant_id" binding:"required"`
	OrderID  uint   `json:"order_id"`
	OrderNo  string `json:"order_no"`
	Trigger  string `json:"trigger"`
	Async    bool   `json:"async"`
}

// OrderRefundRequest 订单退款事件请求
type OrderRefundRequest struct {
	TenantID     uint   `json:"tenant_id" binding:"required"`
	OrderID      uint   `json:"order_id" binding:"required"`
	RefundAmount string `json:"refund_amount" binding:"required"`
	Reason       string `json:"reason"`
	Async        bool   `json:"async"`
}

// HandleOrderEvent 接收订单生命周期事件并生成佣金。
// async=true 时仅入队，由 worker 异步处理
func (h *Handler) HandleOrderEvent(c *gin.Context) {
	var req OrderEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}
	orderNo := strings.TrimSpace(req.OrderNo)
	if req.OrderID == 0 && orderNo == "" {
		response.BadRequest(c, "order_id 与 order_no 至少提供其一")
		return
	}
	trigger := strings.TrimSpace(req.Trigger)
	if trigger == "" {
		trigger = constants.CommissionTriggerPaymentCompleted
	}

	if req.Async {
		if req.OrderID == 0 {
			response.BadRequest(c, "异步模式需提供 order_id")
			return
		}
		if h.QueueClient == nil || !h.QueueClient.Enabled() {
			response.Internal(c, "队列未启用")
			return
		}
		err := h.QueueClient.EnqueueOrderEvent(queue.OrderEventPayload{
			TenantID: req.TenantID,
			OrderID:  req.OrderID,
			Trigger:  trigger,
		})
		if err != nil {
			logger.Errorw("order_event_enqueue_failed",
				"tenant_id", req.TenantID,
				"order_id", req.OrderID,
				"error", err,
			)
			response.Internal(c, "事件入队失败")
			return
		}
		response.SuccessWithMsg(c, "已入队", nil)
		return
	}

	if h.CommissionService == nil {
		response.Internal(c, "佣金服务未初始化")
		return
	}
	var (
		record *models.ChannelCommission
		err    error
	)
	if req.OrderID != 0 {
		record, err = h.CommissionService.GenerateForOrder(c.Request.Context(), req.TenantID, req.OrderID, trigger)
	} else {
		record, err = h.CommissionService.GenerateForOrderNo(c.Request.Context(), req.TenantID, orderNo, trigger)
	}
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.NotFound(c, "订单不存在")
			return
		}
		response.Internal(c, "佣金生成失败")
		return
	}
	response.Success(c, record)
}

// HandleOrderRefund 接收订单退款事件并冲销佣金
func (h *Handler) HandleOrderRefund(c *gin.Context) {
	var req OrderRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}
	refundAmount, err := decimal.NewFromString(strings.TrimSpace(req.RefundAmount))
	if err != nil {
		response.BadRequest(c, "退款金额格式错误")
		return
	}

	if req.Async {
		if h.QueueClient == nil || !h.QueueClient.Enabled() {
			response.Internal(c, "队列未启用")
			return
		}
		err := h.QueueClient.EnqueueOrderRefund(queue.OrderRefundPayload{
			TenantID:     req.TenantID,
			OrderID:      req.OrderID,
			RefundAmount: refundAmount.String(),
			Reason:       req.Reason,
		})
		if err != nil {
			logger.Errorw("order_refund_enqueue_failed",
				"tenant_id", req.TenantID,
				"order_id", req.OrderID,
				"error", err,
			)
			response.Internal(c, "事件入队失败")
			return
		}
		response.SuccessWithMsg(c, "已入队", nil)
		return
	}

	if h.CommissionService == nil {
		response.Internal(c, "佣金服务未初始化")
		return
	}
	if err := h.CommissionService.HandleRefund(c.Request.Context(), req.TenantID, req.OrderID, refundAmount, req.Reason); err != nil {
		if errors.Is(err, service.ErrInvalidRefundAmount) {
			response.BadRequest(c, "退款金额无效")
			return
		}
		response.Internal(c, "佣金冲销失败")
		return
	}
	response.SuccessWithMsg(c, "冲销完成", nil)
}
