package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/slideboard-next/internal/constants"
	"github.com/slideboard-next/internal/logger"
	"github.com/slideboard-next/internal/models"

	"github.com/shopspring/decimal"
)

// TieredRate 阶梯费率区间（渠道 tiered_rates JSON 的元素）
type TieredRate struct {
	MinAmount decimal.Decimal  `json:"minAmount"`
	MaxAmount *decimal.Decimal `json:"maxAmount,omitempty"`
	Rate      decimal.Decimal  `json:"rate"`
}

// MarginItemTrace 底价模式单行计算明细
type MarginItemTrace struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Discount    decimal.Decimal `json:"discount"`
	Quantity    int             `json:"quantity"`
	Profit      decimal.Decimal `json:"profit"`
}

// FormulaTrace 佣金计算过程（持久化到记录的 formula 字段）
type FormulaTrace struct {
	Mode        string            `json:"mode"`
	OrderAmount decimal.Decimal   `json:"order_amount"`
	Rate        decimal.Decimal   `json:"rate,omitempty"`
	TierMatched bool              `json:"tier_matched,omitempty"`
	Calc        string            `json:"calc"`
	Items       []MarginItemTrace `json:"items,omitempty"`
	Total       decimal.Decimal   `json:"total"`
}

// CalcResult 佣金计算结果，金额不为正时整体为 nil
type CalcResult struct {
	Amount  decimal.Decimal
	Rate    decimal.Decimal
	Mode    string
	Formula string
	Remark  string
}

// marginComputation 底价模式利润汇总
type marginComputation struct {
	total decimal.Decimal
	items []MarginItemTrace
}

// normalizeRate 费率归一化：非正数归零，(0,1] 视为小数费率，大于 1 视为百分数
func normalizeRate(raw decimal.Decimal) decimal.Decimal {
	if raw.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if raw.LessThanOrEqual(decimal.NewFromInt(1)) {
		return raw
	}
	return raw.Div(decimal.NewFromInt(100))
}

// effectiveCooperationMode 合作模式优先级：订单覆盖 > 渠道默认 > COMMISSION
func effectiveCooperationMode(order *models.Order, channel *models.Channel) string {
	if mode := strings.TrimSpace(order.CooperationMode); mode != "" {
		return mode
	}
	if mode := strings.TrimSpace(channel.CooperationMode); mode != "" {
		return mode
	}
	return constants.CooperationModeCommission
}

// resolveTieredRate 按订单金额匹配阶梯费率，首个满足 min ≤ amount < max 的区间生效；
// 配置异常或无匹配时回退基础费率
func resolveTieredRate(channel *models.Channel, orderAmount decimal.Decimal) (decimal.Decimal, bool) {
	baseRate := normalizeRate(channel.CommissionRate)
	raw := strings.TrimSpace(channel.TieredRates)
	if raw == "" {
		return baseRate, false
	}

	var tiers []TieredRate
	if err := json.Unmarshal([]byte(raw), &tiers); err != nil {
		logger.Warnw("tiered_rates_invalid_fallback_base",
			"channel_id", channel.ID,
			"error", err,
		)
		return baseRate, false
	}
	if len(tiers) == 0 {
		return baseRate, false
	}

	for _, tier := range tiers {
		if orderAmount.LessThan(tier.MinAmount) {
			continue
		}
		if tier.MaxAmount != nil && orderAmount.GreaterThanOrEqual(*tier.MaxAmount) {
			continue
		}
		return normalizeRate(tier.Rate), true
	}

	logger.Warnw("tiered_rates_no_match_fallback_base",
		"channel_id", channel.ID,
		"order_amount", orderAmount.String(),
	)
	return baseRate, false
}

// calcStrategy 单个合作模式的计算策略
type calcStrategy func(channel *models.Channel, orderAmount decimal.Decimal, margin *marginComputation) *CalcResult

// calcStrategies 合作模式 → 策略的封闭映射，新增模式需在此注册
var calcStrategies = map[string]calcStrategy{
	constants.CooperationModeCommission: func(channel *models.Channel, orderAmount decimal.Decimal, _ *marginComputation) *CalcResult {
		return calcRateBased(channel, orderAmount)
	},
	constants.CooperationModeBasePrice: calcBasePrice,
}

// calculateCommission 按合作模式计算佣金。底价模式由调用方预先算好利润传入；
// 订单金额或佣金金额不为正时返回 nil（不产生记录），任何模式都不例外
func calculateCommission(order *models.Order, channel *models.Channel, margin *marginComputation) *CalcResult {
	mode := effectiveCooperationMode(order, channel)
	orderAmount := order.TotalAmount.Decimal
	if orderAmount.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	strategy, ok := calcStrategies[mode]
	if !ok {
		logger.Warnw("unknown_cooperation_mode_fallback_commission",
			"channel_id", channel.ID,
			"mode", mode,
		)
		strategy = calcStrategies[constants.CooperationModeCommission]
	}

	result := strategy(channel, orderAmount, margin)
	if result == nil || result.Amount.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	return result
}

func calcRateBased(channel *models.Channel, orderAmount decimal.Decimal) *CalcResult {
	var (
		rate        decimal.Decimal
		tierMatched bool
	)
	if channel.CommissionType == constants.CommissionTypeTiered {
		rate, tierMatched = resolveTieredRate(channel, orderAmount)
	} else {
		rate = normalizeRate(channel.CommissionRate)
	}

	amount := orderAmount.Mul(rate).Round(2)
	ratePercent := rate.Mul(decimal.NewFromInt(100))

	trace := FormulaTrace{
		Mode:        constants.CooperationModeCommission,
		OrderAmount: orderAmount,
		Rate:        rate,
		TierMatched: tierMatched,
		Calc:        fmt.Sprintf("%s x %s%% = %s", orderAmount.StringFixed(2), ratePercent.String(), amount.StringFixed(2)),
		Total:       amount,
	}
	return &CalcResult{
		Amount:  amount,
		Rate:    rate,
		Mode:    constants.CooperationModeCommission,
		Formula: marshalTrace(trace),
		Remark:  fmt.Sprintf("返佣模式 (费率 %s%%)", ratePercent.String()),
	}
}

// calcBasePrice 底价供货模式：佣金为渠道利润汇总
func calcBasePrice(channel *models.Channel, orderAmount decimal.Decimal, margin *marginComputation) *CalcResult {
	if margin == nil {
		return nil
	}
	amount := margin.total.Round(2)

	trace := FormulaTrace{
		Mode:        constants.CooperationModeBasePrice,
		OrderAmount: orderAmount,
		Calc:        fmt.Sprintf("sum((unit_price - base_price x discount) x qty) = %s", amount.StringFixed(2)),
		Items:       margin.items,
		Total:       amount,
	}
	return &CalcResult{
		Amount:  amount,
		Rate:    decimal.Zero,
		Mode:    constants.CooperationModeBasePrice,
		Formula: marshalTrace(trace),
		Remark:  fmt.Sprintf("底价供货模式 (渠道等级 %s)", channel.Level),
	}
}

func marshalTrace(trace FormulaTrace) string {
	payload, err := json.Marshal(trace)
	if err != nil {
		logger.Warnw("formula_trace_marshal_failed", "error", err)
		return ""
	}
	return string(payload)
}
