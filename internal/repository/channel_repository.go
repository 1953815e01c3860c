package repository

import (
	"context"
	"errors"

	"github.com/slideboard-next/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ChannelRepository 渠道数据访问接口
type ChannelRepository interface {
	GetByID(ctx context.Context, tenantID, channelID uint) (*models.Channel, error)
	Create(ctx context.Context, channel *models.Channel) error
	// IncrTotalDealAmount 以 SQL 表达式原子增减累计成交额（delta 可为负）
	IncrTotalDealAmount(ctx context.Context, tenantID, channelID uint, delta decimal.Decimal) error
	WithTx(tx *gorm.DB) ChannelRepository
}

// GormChannelRepository 渠道仓储 GORM 实现
type GormChannelRepository struct {
	db *gorm.DB
}

// NewChannelRepository 创建渠道仓储
func NewChannelRepository(db *gorm.DB) *GormChannelRepository {
	return &GormChannelRepository{db: db}
}

// WithTx 返回绑定事务的仓储
func (r *GormChannelRepository) WithTx(tx *gorm.DB) ChannelRepository {
	return &GormChannelRepository{db: tx}
}

// GetByID 按 ID 查询渠道，不存在返回 nil
func (r *GormChannelRepository) GetByID(ctx context.Context, tenantID, channelID uint) (*models.Channel, error) {
	var channel models.Channel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, channelID).
		First(&channel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

// Create 创建渠道
func (r *GormChannelRepository) Create(ctx context.Context, channel *models.Channel) error {
	return r.db.WithContext(ctx).Create(channel).Error
}

// IncrTotalDealAmount 原子增减渠道累计成交额
func (r *GormChannelRepository) IncrTotalDealAmount(ctx context.Context, tenantID, channelID uint, delta decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.Channel{}).
		Where("tenant_id = ? AND id = ?", tenantID, channelID).
		UpdateColumn("total_deal_amount", gorm.Expr("total_deal_amount + ?", delta)).Error
}
