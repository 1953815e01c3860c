package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/slideboard-next/internal/constants"
	"github.com/slideboard-next/internal/logger"
	"github.com/slideboard-next/internal/models"
	"github.com/slideboard-next/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CommissionService 渠道佣金业务服务：负责佣金生成与退款冲销
type CommissionService struct {
	orders         repository.OrderRepository
	leads          repository.LeadRepository
	channels       repository.ChannelRepository
	products       repository.ProductRepository
	financeConfigs repository.FinanceConfigRepository
	commissions    repository.CommissionRepository
}

// NewCommissionService 创建佣金服务
func NewCommissionService(
	orders repository.OrderRepository,
	leads repository.LeadRepository,
	channels repository.ChannelRepository,
	products repository.ProductRepository,
	financeConfigs repository.FinanceConfigRepository,
	commissions repository.CommissionRepository,
) *CommissionService {
	return &CommissionService{
		orders:         orders,
		leads:          leads,
		channels:       channels,
		products:       products,
		financeConfigs: financeConfigs,
		commissions:    commissions,
	}
}

// GenerateForOrder 为订单生成佣金记录。
// 订单无归属渠道、触发节点不匹配或佣金不为正时静默返回 nil；
// 同一订单已存在非 VOID 记录时告警并放弃，保证幂等。
func (s *CommissionService) GenerateForOrder(ctx context.Context, tenantID, orderID uint, trigger string) (*models.ChannelCommission, error) {
	order, err := s.orders.GetByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.generate(ctx, order, trigger)
}

// GenerateForOrderNo 按订单号生成佣金记录，供只携带业务单号的上游回调使用
func (s *CommissionService) GenerateForOrderNo(ctx context.Context, tenantID uint, orderNo, trigger string) (*models.ChannelCommission, error) {
	order, err := s.orders.GetByOrderNo(ctx, tenantID, orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.generate(ctx, order, trigger)
}

func (s *CommissionService) generate(ctx context.Context, order *models.Order, trigger string) (*models.ChannelCommission, error) {
	tenantID := order.TenantID

	channel, err := s.resolveChannel(ctx, order)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		logger.Debugw("commission_skip_no_channel",
			"tenant_id", tenantID,
			"order_id", order.ID,
		)
		return nil, nil
	}

	if !triggerMatches(channel, trigger) {
		logger.Debugw("commission_skip_trigger_mismatch",
			"tenant_id", tenantID,
			"order_id", order.ID,
			"channel_id", channel.ID,
			"trigger", trigger,
			"channel_trigger", channel.CommissionTriggerMode,
		)
		return nil, nil
	}

	var margin *marginComputation
	if effectiveCooperationMode(order, channel) == constants.CooperationModeBasePrice {
		margin, err = s.resolveMargin(ctx, order, channel)
		if err != nil {
			return nil, err
		}
	}

	result := calculateCommission(order, channel, margin)
	if result == nil {
		logger.Debugw("commission_skip_non_positive_amount",
			"tenant_id", tenantID,
			"order_id", order.ID,
			"channel_id", channel.ID,
		)
		return nil, nil
	}

	record := &models.ChannelCommission{
		TenantID:       tenantID,
		ChannelID:      channel.ID,
		OrderID:        order.ID,
		LeadID:         order.LeadID,
		CommissionNo:   newCommissionNo(),
		CommissionType: result.Mode,
		OrderAmount:    order.TotalAmount,
		CommissionRate: result.Rate,
		Amount:         models.NewMoneyFromDecimal(result.Amount),
		Status:         constants.CommissionStatusPending,
		Formula:        result.Formula,
		Remark:         result.Remark,
	}

	duplicated := false
	err = s.commissions.Transaction(ctx, func(tx *gorm.DB) error {
		commissionRepo := s.commissions.WithTx(tx)
		existing, err := commissionRepo.GetActiveByOrderForUpdate(ctx, tenantID, order.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			duplicated = true
			logger.Warnw("commission_duplicate_skipped",
				"tenant_id", tenantID,
				"order_id", order.ID,
				"existing_commission_no", existing.CommissionNo,
			)
			return nil
		}
		if err := commissionRepo.Create(ctx, record); err != nil {
			return err
		}
		return s.channels.WithTx(tx).IncrTotalDealAmount(ctx, tenantID, channel.ID, order.TotalAmount.Decimal)
	})
	if err != nil {
		return nil, err
	}
	if duplicated {
		return nil, nil
	}

	logger.Infow("commission_generated",
		"tenant_id", tenantID,
		"order_id", order.ID,
		"channel_id", channel.ID,
		"commission_no", record.CommissionNo,
		"amount", record.Amount.String(),
		"mode", record.CommissionType,
	)
	return record, nil
}

// resolveChannel 解析订单归属渠道：优先订单直挂渠道，其次线索引流渠道
func (s *CommissionService) resolveChannel(ctx context.Context, order *models.Order) (*models.Channel, error) {
	channelID := order.ChannelID
	if channelID == nil && order.LeadID != nil {
		lead, err := s.leads.GetByID(ctx, order.TenantID, *order.LeadID)
		if err != nil {
			return nil, err
		}
		if lead != nil {
			channelID = lead.ChannelID
		}
	}
	if channelID == nil {
		return nil, nil
	}
	return s.channels.GetByID(ctx, order.TenantID, *channelID)
}

// triggerMatches 触发节点判断，渠道未配置时默认 PAYMENT_COMPLETED
func triggerMatches(channel *models.Channel, trigger string) bool {
	channelTrigger := strings.TrimSpace(channel.CommissionTriggerMode)
	if channelTrigger == "" {
		channelTrigger = constants.CommissionTriggerPaymentCompleted
	}
	return channelTrigger == trigger
}

// resolveMargin 底价模式利润核算：批量取商品底价，按等级折扣逐行算利润，
// 无法定位商品或数量不为正的明细行跳过
func (s *CommissionService) resolveMargin(ctx context.Context, order *models.Order, channel *models.Channel) (*marginComputation, error) {
	discounts := s.gradeDiscounts(ctx, order.TenantID)
	discount := gradeDiscountFor(discounts, channel.Level)

	productIDs := make([]uint, 0, len(order.Items))
	for _, item := range order.Items {
		if item.ProductID != nil {
			productIDs = append(productIDs, *item.ProductID)
		}
	}
	products, err := s.products.ListByIDs(ctx, order.TenantID, productIDs)
	if err != nil {
		return nil, err
	}
	productByID := make(map[uint]models.Product, len(products))
	for _, product := range products {
		productByID[product.ID] = product
	}

	computation := &marginComputation{total: decimal.Zero}
	for _, item := range order.Items {
		if item.ProductID == nil {
			logger.Warnw("margin_item_skipped_no_product",
				"order_id", order.ID,
				"item_id", item.ID,
			)
			continue
		}
		product, ok := productByID[*item.ProductID]
		if !ok {
			logger.Warnw("margin_item_skipped_product_missing",
				"order_id", order.ID,
				"product_id", *item.ProductID,
			)
			continue
		}

		if item.Quantity <= 0 {
			logger.Warnw("margin_item_skipped_non_positive_quantity",
				"order_id", order.ID,
				"item_id", item.ID,
				"quantity", item.Quantity,
			)
			continue
		}
		cost := product.ChannelPrice.Decimal.Mul(discount)
		profit := item.UnitPrice.Decimal.Sub(cost).Mul(decimal.NewFromInt(int64(item.Quantity)))

		computation.total = computation.total.Add(profit)
		computation.items = append(computation.items, MarginItemTrace{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   item.UnitPrice.Decimal,
			BasePrice:   product.ChannelPrice.Decimal,
			Discount:    discount,
			Quantity:    item.Quantity,
			Profit:      profit.Round(2),
		})
	}
	return computation, nil
}

// GetCommission 查询佣金记录详情，不存在时返回 ErrCommissionNotFound
func (s *CommissionService) GetCommission(ctx context.Context, tenantID, commissionID uint) (*models.ChannelCommission, error) {
	record, err := s.commissions.GetByID(ctx, tenantID, commissionID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrCommissionNotFound
	}
	return record, nil
}

// ListCommissions 分页查询佣金记录
func (s *CommissionService) ListCommissions(ctx context.Context, filter repository.CommissionListFilter, page repository.Pagination) ([]models.ChannelCommission, int64, error) {
	return s.commissions.List(ctx, filter, page)
}

// ListAdjustments 分页查询佣金调整记录
func (s *CommissionService) ListAdjustments(ctx context.Context, filter repository.AdjustmentListFilter, page repository.Pagination) ([]models.CommissionAdjustment, int64, error) {
	return s.commissions.ListAdjustments(ctx, filter, page)
}

// newCommissionNo 生成佣金单号
func newCommissionNo() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	return fmt.Sprintf("COMM-%s-%s", time.Now().Format("20060102"), suffix)
}
