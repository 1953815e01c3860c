package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/slideboard-next/internal/constants"
	"github.com/slideboard-next/internal/logger"
	"github.com/slideboard-next/internal/models"
	"github.com/slideboard-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// HandleRefund 处理订单退款对佣金的冲销。
// 每条佣金记录在独立事务中处理：PENDING 直接作废并回退成交额快照，
// SETTLED/PAID 按退款比例生成负向调整（累计调整不超过原佣金金额）。
// 单条失败不阻塞其余记录，错误合并返回。
func (s *CommissionService) HandleRefund(ctx context.Context, tenantID, orderID uint, refundAmount decimal.Decimal, reason string) error {
	if refundAmount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidRefundAmount
	}

	order, err := s.orders.GetByID(ctx, tenantID, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		logger.Debugw("refund_order_not_found",
			"tenant_id", tenantID,
			"order_id", orderID,
		)
		return nil
	}

	records, err := s.commissions.ListActiveByOrder(ctx, tenantID, orderID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		logger.Debugw("refund_no_active_commission",
			"tenant_id", tenantID,
			"order_id", orderID,
		)
		return nil
	}

	var failures []error
	for _, record := range records {
		if err := s.clawbackOne(ctx, tenantID, record.ID, refundAmount, reason); err != nil {
			logger.Errorw("commission_clawback_failed",
				"tenant_id", tenantID,
				"order_id", orderID,
				"commission_id", record.ID,
				"error", err,
			)
			failures = append(failures, fmt.Errorf("佣金 %d 冲销失败: %w", record.ID, err))
		}
	}
	return errors.Join(failures...)
}

// clawbackOne 在独立事务中冲销单条佣金记录，事务内行锁复核状态
func (s *CommissionService) clawbackOne(ctx context.Context, tenantID, commissionID uint, refundAmount decimal.Decimal, reason string) error {
	return s.commissions.Transaction(ctx, func(tx *gorm.DB) error {
		commissionRepo := s.commissions.WithTx(tx)
		channelRepo := s.channels.WithTx(tx)

		record, err := commissionRepo.GetByIDForUpdate(ctx, tenantID, commissionID)
		if err != nil {
			return err
		}
		if record == nil || record.Status == constants.CommissionStatusVoid {
			return nil
		}

		switch record.Status {
		case constants.CommissionStatusPending:
			return voidPendingCommission(ctx, commissionRepo, channelRepo, record, reason)
		case constants.CommissionStatusSettled, constants.CommissionStatusPaid:
			return s.adjustSettledCommission(ctx, commissionRepo, channelRepo, record, refundAmount, reason)
		default:
			logger.Warnw("commission_clawback_unknown_status",
				"commission_id", record.ID,
				"status", record.Status,
			)
			return nil
		}
	})
}

func voidPendingCommission(
	ctx context.Context,
	commissionRepo repository.CommissionRepository,
	channelRepo repository.ChannelRepository,
	record *models.ChannelCommission,
	reason string,
) error {
	remark := "订单退款，待结算佣金作废"
	if reason != "" {
		remark = fmt.Sprintf("%s（%s）", remark, reason)
	}
	if err := commissionRepo.UpdateStatus(ctx, record.TenantID, record.ID, constants.CommissionStatusVoid, remark); err != nil {
		return err
	}
	if err := channelRepo.IncrTotalDealAmount(ctx, record.TenantID, record.ChannelID, record.OrderAmount.Decimal.Neg()); err != nil {
		return err
	}
	logger.Infow("commission_voided",
		"tenant_id", record.TenantID,
		"commission_id", record.ID,
		"order_id", record.OrderID,
	)
	return nil
}

// adjustSettledCommission 对已结算佣金按退款比例生成负向调整。
// 比例 = 退款金额 / 订单金额快照（上限 1），调整幅度受「累计调整不超过原佣金」约束
func (s *CommissionService) adjustSettledCommission(
	ctx context.Context,
	commissionRepo repository.CommissionRepository,
	channelRepo repository.ChannelRepository,
	record *models.ChannelCommission,
	refundAmount decimal.Decimal,
	reason string,
) error {
	snapshot := record.OrderAmount.Decimal
	if snapshot.LessThanOrEqual(decimal.Zero) {
		logger.Warnw("commission_clawback_zero_snapshot",
			"commission_id", record.ID,
		)
		return nil
	}

	ratio := refundAmount.Div(snapshot)
	one := decimal.NewFromInt(1)
	if ratio.GreaterThan(one) {
		ratio = one
	}

	adjusted, err := commissionRepo.SumAdjustments(ctx, record.TenantID, record.ID)
	if err != nil {
		return err
	}
	// adjusted 为历史调整之和（非正数），remaining 为仍可冲销的额度
	remaining := record.Amount.Decimal.Add(adjusted)
	if remaining.LessThanOrEqual(decimal.Zero) {
		logger.Warnw("commission_clawback_exhausted",
			"commission_id", record.ID,
		)
		return channelRepo.IncrTotalDealAmount(ctx, record.TenantID, record.ChannelID, refundAmount.Neg())
	}

	proposed := record.Amount.Decimal.Mul(ratio).Round(2)
	if proposed.LessThanOrEqual(decimal.Zero) {
		logger.Debugw("commission_clawback_skip_zero_adjustment",
			"commission_id", record.ID,
		)
		return nil
	}
	if proposed.GreaterThan(remaining) {
		proposed = remaining
	}

	adjustmentType := constants.AdjustmentTypePartialRefund
	if refundAmount.GreaterThanOrEqual(snapshot) {
		adjustmentType = constants.AdjustmentTypeFullRefund
	}

	if reason == "" {
		reason = fmt.Sprintf("订单退款 %s，按比例冲销佣金", refundAmount.StringFixed(2))
	}
	adjustment := &models.CommissionAdjustment{
		TenantID:             record.TenantID,
		ChannelID:            record.ChannelID,
		OriginalCommissionID: record.ID,
		OrderID:              record.OrderID,
		AdjustmentType:       adjustmentType,
		AdjustmentAmount:     models.NewMoneyFromDecimal(proposed.Neg()),
		RefundAmount:         models.NewMoneyFromDecimal(refundAmount),
		Reason:               reason,
	}
	if err := commissionRepo.CreateAdjustment(ctx, adjustment); err != nil {
		return err
	}
	if err := channelRepo.IncrTotalDealAmount(ctx, record.TenantID, record.ChannelID, refundAmount.Neg()); err != nil {
		return err
	}

	logger.Infow("commission_adjusted",
		"tenant_id", record.TenantID,
		"commission_id", record.ID,
		"order_id", record.OrderID,
		"adjustment_type", adjustmentType,
		"adjustment_amount", adjustment.AdjustmentAmount.String(),
	)
	return nil
}
