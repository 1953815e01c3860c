package repository

import (
	"context"
	"errors"

	"github.com/slideboard-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FinanceConfigRepository 财务配置数据访问接口
type FinanceConfigRepository interface {
	GetByKey(ctx context.Context, tenantID uint, key string) (*models.FinanceConfig, error)
	Upsert(ctx context.Context, cfg *models.FinanceConfig) error
}

// GormFinanceConfigRepository 财务配置仓储 GORM 实现
type GormFinanceConfigRepository struct {
	db *gorm.DB
}

// NewFinanceConfigRepository 创建财务配置仓储
func NewFinanceConfigRepository(db *gorm.DB) *GormFinanceConfigRepository {
	return &GormFinanceConfigRepository{db: db}
}

// GetByKey 按配置键查询，不存在返回 nil
func (r *GormFinanceConfigRepository) GetByKey(ctx context.Context, tenantID uint, key string) (*models.FinanceConfig, error) {
	var cfg models.FinanceConfig
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND config_key = ?", tenantID, key).
		First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Upsert 写入或更新配置
func (r *GormFinanceConfigRepository) Upsert(ctx context.Context, cfg *models.FinanceConfig) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "config_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"config_value", "remark", "updated_at"}),
		}).
		Create(cfg).Error
}
