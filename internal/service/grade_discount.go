package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/slideboard-next/internal/cache"
	"github.com/slideboard-next/internal/constants"
	"github.com/slideboard-next/internal/logger"

	"github.com/shopspring/decimal"
)

const gradeDiscountCacheTTL = 10 * time.Minute

// defaultGradeDiscounts 渠道等级默认折扣率
func defaultGradeDiscounts() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		constants.ChannelLevelS: decimal.NewFromFloat(0.90),
		constants.ChannelLevelA: decimal.NewFromFloat(0.95),
		constants.ChannelLevelB: decimal.NewFromInt(1),
		constants.ChannelLevelC: decimal.NewFromInt(1),
	}
}

// gradeDiscounts 加载租户等级折扣表：默认值 + 财务配置覆盖，配置异常时仅告警
func (s *CommissionService) gradeDiscounts(ctx context.Context, tenantID uint) map[string]decimal.Decimal {
	discounts := defaultGradeDiscounts()

	cacheKey := fmt.Sprintf("finance:grade_discounts:%d", tenantID)
	var cached map[string]decimal.Decimal
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return mergeGradeDiscounts(discounts, cached)
	}

	cfg, err := s.financeConfigs.GetByKey(ctx, tenantID, constants.FinanceConfigKeyGradeDiscounts)
	if err != nil {
		logger.Warnw("grade_discount_config_load_failed",
			"tenant_id", tenantID,
			"error", err,
		)
		return discounts
	}
	if cfg == nil || strings.TrimSpace(cfg.ConfigValue) == "" {
		return discounts
	}

	var parsed map[string]decimal.Decimal
	if err := json.Unmarshal([]byte(cfg.ConfigValue), &parsed); err != nil {
		logger.Warnw("grade_discount_config_invalid",
			"tenant_id", tenantID,
			"error", err,
		)
		return discounts
	}

	if err := cache.SetJSON(ctx, cacheKey, parsed, gradeDiscountCacheTTL); err != nil {
		logger.Warnw("grade_discount_cache_write_failed",
			"tenant_id", tenantID,
			"error", err,
		)
	}
	return mergeGradeDiscounts(discounts, parsed)
}

func mergeGradeDiscounts(base, overrides map[string]decimal.Decimal) map[string]decimal.Decimal {
	for grade, discount := range overrides {
		if discount.LessThanOrEqual(decimal.Zero) {
			continue
		}
		base[strings.ToUpper(strings.TrimSpace(grade))] = discount
	}
	return base
}

// gradeDiscountFor 按渠道等级取折扣率，未知等级按 1.00 处理
func gradeDiscountFor(discounts map[string]decimal.Decimal, level string) decimal.Decimal {
	if discount, ok := discounts[strings.ToUpper(strings.TrimSpace(level))]; ok {
		return discount
	}
	return decimal.NewFromInt(1)
}
