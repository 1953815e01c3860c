package queue

import (
	"encoding/json"

	"github.com/slideboard-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCommissionOrderEvent 订单生命周期事件任务（触发佣金生成）
	TaskCommissionOrderEvent = constants.TaskCommissionOrderEvent
	// TaskCommissionOrderRefund 订单退款事件任务（触发佣金冲销）
	TaskCommissionOrderRefund = constants.TaskCommissionOrderRefund
)

// OrderEventPayload 订单事件任务载荷
type OrderEventPayload struct {
	TenantID uint   `json:"tenant_id"`
	OrderID  uint   `json:"order_id"`
	Trigger  string `json:"trigger"`
}

// OrderRefundPayload 订单退款任务载荷
type OrderRefundPayload struct {
	TenantID     uint   `json:"tenant_id"`
	OrderID      uint   `json:"order_id"`
	RefundAmount string `json:"refund_amount"`
	Reason       string `json:"reason"`
}

// NewOrderEventTask 创建订单事件任务
func NewOrderEventTask(payload OrderEventPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCommissionOrderEvent, body), nil
}

// NewOrderRefundTask 创建订单退款任务
func NewOrderRefundTask(payload OrderRefundPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCommissionOrderRefund, body), nil
}
