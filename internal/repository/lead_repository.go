package repository

import (
	"context"
	"errors"

	"github.com/slideboard-next/internal/models"

	"gorm.io/gorm"
)

// LeadRepository 线索数据访问接口
type LeadRepository interface {
	GetByID(ctx context.Context, tenantID, leadID uint) (*models.Lead, error)
	Create(ctx context.Context, lead *models.Lead) error
}

// GormLeadRepository 线索仓储 GORM 实现
type GormLeadRepository struct {
	db *gorm.DB
}

// NewLeadRepository 创建线索仓储
func NewLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

// GetByID 按 ID 查询线索，不存在返回 nil
func (r *GormLeadRepository) GetByID(ctx context.Context, tenantID, leadID uint) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, leadID).
		First(&lead).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// Create 创建线索
func (r *GormLeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}
