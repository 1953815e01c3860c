package constants

// 渠道合作模式常量
const (
	CooperationModeCommission = "COMMISSION"
	CooperationModeBasePrice  = "BASE_PRICE"
)

// 渠道佣金类型常量
const (
	CommissionTypeFixed  = "FIXED"
	CommissionTypeTiered = "TIERED"
)

// 佣金记录状态常量
const (
	CommissionStatusPending = "PENDING"
	CommissionStatusSettled = "SETTLED"
	CommissionStatusPaid    = "PAID"
	CommissionStatusVoid    = "VOID"
)

// 佣金触发事件常量
const (
	CommissionTriggerOrderCreated     = "ORDER_CREATED"
	CommissionTriggerOrderCompleted   = "ORDER_COMPLETED"
	CommissionTriggerPaymentCompleted = "PAYMENT_COMPLETED"
)

// 佣金调整类型常量
const (
	AdjustmentTypePartialRefund = "PARTIAL_REFUND"
	AdjustmentTypeFullRefund    = "FULL_REFUND"
)

// 渠道等级常量
const (
	ChannelLevelS = "S"
	ChannelLevelA = "A"
	ChannelLevelB = "B"
	ChannelLevelC = "C"
)

// 订单状态常量（佣金引擎只读）
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCompleted = "completed"
	OrderStatusCanceled  = "canceled"
)

// 财务配置键常量
const (
	FinanceConfigKeyGradeDiscounts = "CHANNEL_GRADE_DISCOUNTS"
)

// 队列常量
const (
	QueueDefault = "default"

	TaskCommissionOrderEvent  = "commission:order_event"
	TaskCommissionOrderRefund = "commission:order_refund"
)
