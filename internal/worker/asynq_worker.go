package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/slideboard-next/internal/logger"
	"github.com/slideboard-next/internal/provider"
	"github.com/slideboard-next/internal/queue"
	"github.com/slideboard-next/internal/service"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCommissionOrderEvent, c.handleOrderEvent)
	mux.HandleFunc(queue.TaskCommissionOrderRefund, c.handleOrderRefund)
}

func (c *Consumer) handleOrderEvent(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_event_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderEventPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_event_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 || payload.TenantID == 0 {
		logger.Debugw("worker_order_event_skip_invalid_payload",
			"tenant_id", payload.TenantID,
			"order_id", payload.OrderID,
		)
		return nil
	}
	if c.CommissionService == nil {
		logger.Warnw("worker_order_event_skip_service_nil", "order_id", payload.OrderID)
		return nil
	}
	_, err := c.CommissionService.GenerateForOrder(ctx, payload.TenantID, payload.OrderID, payload.Trigger)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			logger.Debugw("worker_order_event_skip_order_not_found",
				"tenant_id", payload.TenantID,
				"order_id", payload.OrderID,
			)
			return nil
		}
		logger.Warnw("worker_order_event_failed",
			"tenant_id", payload.TenantID,
			"order_id", payload.OrderID,
			"trigger", payload.Trigger,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderRefund(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_refund_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderRefundPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_refund_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 || payload.TenantID == 0 {
		logger.Debugw("worker_order_refund_skip_invalid_payload",
			"tenant_id", payload.TenantID,
			"order_id", payload.OrderID,
		)
		return nil
	}
	refundAmount, err := decimal.NewFromString(payload.RefundAmount)
	if err != nil {
		logger.Warnw("worker_order_refund_invalid_amount",
			"order_id", payload.OrderID,
			"refund_amount", payload.RefundAmount,
			"error", err,
		)
		return nil
	}
	if c.CommissionService == nil {
		logger.Warnw("worker_order_refund_skip_service_nil", "order_id", payload.OrderID)
		return nil
	}
	err = c.CommissionService.HandleRefund(ctx, payload.TenantID, payload.OrderID, refundAmount, payload.Reason)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefundAmount) {
			logger.Debugw("worker_order_refund_skip_invalid_refund",
				"order_id", payload.OrderID,
				"refund_amount", payload.RefundAmount,
			)
			return nil
		}
		logger.Warnw("worker_order_refund_failed",
			"tenant_id", payload.TenantID,
			"order_id", payload.OrderID,
			"error", err,
		)
		return err
	}
	return nil
}
