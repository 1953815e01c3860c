package service

import "errors"

var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = errors.New("订单不存在")
	// ErrCommissionNotFound 佣金记录不存在
	ErrCommissionNotFound = errors.New("佣金记录不存在")
	// ErrInvalidRefundAmount 退款金额无效
	ErrInvalidRefundAmount = errors.New("退款金额无效")
)
