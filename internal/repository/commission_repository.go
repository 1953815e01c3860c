package repository

import (
	"context"
	"errors"
	"time"

	"github.com/slideboard-next/internal/constants"
	"github.com/slideboard-next/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommissionListFilter 佣金记录列表过滤条件
type CommissionListFilter struct {
	TenantID  uint
	ChannelID uint
	OrderID   uint
	Status    string
}

// AdjustmentListFilter 佣金调整列表过滤条件
type AdjustmentListFilter struct {
	TenantID             uint
	ChannelID            uint
	OrderID              uint
	OriginalCommissionID uint
}

// CommissionRepository 佣金数据访问接口
type CommissionRepository interface {
	Create(ctx context.Context, record *models.ChannelCommission) error
	GetByID(ctx context.Context, tenantID, id uint) (*models.ChannelCommission, error)
	// GetActiveByOrderForUpdate 行锁查询订单下非 VOID 佣金记录，用于幂等判重
	GetActiveByOrderForUpdate(ctx context.Context, tenantID, orderID uint) (*models.ChannelCommission, error)
	// ListActiveByOrder 查询订单下全部非 VOID 佣金记录
	ListActiveByOrder(ctx context.Context, tenantID, orderID uint) ([]models.ChannelCommission, error)
	// GetByIDForUpdate 行锁查询单条佣金记录，用于冲销前的状态复核
	GetByIDForUpdate(ctx context.Context, tenantID, id uint) (*models.ChannelCommission, error)
	UpdateStatus(ctx context.Context, tenantID, id uint, status, remark string) error
	List(ctx context.Context, filter CommissionListFilter, page Pagination) ([]models.ChannelCommission, int64, error)
	CreateAdjustment(ctx context.Context, adjustment *models.CommissionAdjustment) error
	// SumAdjustments 统计某条佣金记录的累计调整金额（负数之和）
	SumAdjustments(ctx context.Context, tenantID, commissionID uint) (decimal.Decimal, error)
	ListAdjustments(ctx context.Context, filter AdjustmentListFilter, page Pagination) ([]models.CommissionAdjustment, int64, error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CommissionRepository
}

// GormCommissionRepository 佣金仓储 GORM 实现
type GormCommissionRepository struct {
	db *gorm.DB
}

// NewCommissionRepository 创建佣金仓储
func NewCommissionRepository(db *gorm.DB) *GormCommissionRepository {
	return &GormCommissionRepository{db: db}
}

// WithTx 返回绑定事务的仓储
func (r *GormCommissionRepository) WithTx(tx *gorm.DB) CommissionRepository {
	return &GormCommissionRepository{db: tx}
}

// Transaction 在事务中执行回调
func (r *GormCommissionRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// Create 创建佣金记录
func (r *GormCommissionRepository) Create(ctx context.Context, record *models.ChannelCommission) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// GetByID 按 ID 查询佣金记录，不存在返回 nil
func (r *GormCommissionRepository) GetByID(ctx context.Context, tenantID, id uint) (*models.ChannelCommission, error) {
	var record models.ChannelCommission
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetActiveByOrderForUpdate 行锁查询订单下非 VOID 佣金记录
func (r *GormCommissionRepository) GetActiveByOrderForUpdate(ctx context.Context, tenantID, orderID uint) (*models.ChannelCommission, error) {
	var record models.ChannelCommission
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND order_id = ? AND status <> ?", tenantID, orderID, constants.CommissionStatusVoid).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListActiveByOrder 查询订单下全部非 VOID 佣金记录
func (r *GormCommissionRepository) ListActiveByOrder(ctx context.Context, tenantID, orderID uint) ([]models.ChannelCommission, error) {
	var records []models.ChannelCommission
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_id = ? AND status <> ?", tenantID, orderID, constants.CommissionStatusVoid).
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// GetByIDForUpdate 行锁查询单条佣金记录
func (r *GormCommissionRepository) GetByIDForUpdate(ctx context.Context, tenantID, id uint) (*models.ChannelCommission, error) {
	var record models.ChannelCommission
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateStatus 更新佣金状态（附带备注与状态时间戳）
func (r *GormCommissionRepository) UpdateStatus(ctx context.Context, tenantID, id uint, status, remark string) error {
	updates := map[string]interface{}{
		"status": status,
	}
	if remark != "" {
		updates["remark"] = remark
	}
	now := time.Now()
	switch status {
	case constants.CommissionStatusSettled:
		updates["settled_at"] = &now
	case constants.CommissionStatusPaid:
		updates["paid_at"] = &now
	}
	return r.db.WithContext(ctx).
		Model(&models.ChannelCommission{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(updates).Error
}

// List 分页查询佣金记录
func (r *GormCommissionRepository) List(ctx context.Context, filter CommissionListFilter, page Pagination) ([]models.ChannelCommission, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ChannelCommission{}).
		Where("tenant_id = ?", filter.TenantID)
	if filter.ChannelID > 0 {
		query = query.Where("channel_id = ?", filter.ChannelID)
	}
	if filter.OrderID > 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.ChannelCommission
	if err := applyPagination(query.Order("id DESC"), page).Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// CreateAdjustment 创建佣金调整记录
func (r *GormCommissionRepository) CreateAdjustment(ctx context.Context, adjustment *models.CommissionAdjustment) error {
	return r.db.WithContext(ctx).Create(adjustment).Error
}

// SumAdjustments 统计某条佣金记录的累计调整金额
func (r *GormCommissionRepository) SumAdjustments(ctx context.Context, tenantID, commissionID uint) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.CommissionAdjustment{}).
		Select("COALESCE(SUM(adjustment_amount), 0)").
		Where("tenant_id = ? AND original_commission_id = ?", tenantID, commissionID).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// ListAdjustments 分页查询佣金调整记录
func (r *GormCommissionRepository) ListAdjustments(ctx context.Context, filter AdjustmentListFilter, page Pagination) ([]models.CommissionAdjustment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CommissionAdjustment{}).
		Where("tenant_id = ?", filter.TenantID)
	if filter.ChannelID > 0 {
		query = query.Where("channel_id = ?", filter.ChannelID)
	}
	if filter.OrderID > 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.OriginalCommissionID > 0 {
		query = query.Where("original_commission_id = ?", filter.OriginalCommissionID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.CommissionAdjustment
	if err := applyPagination(query.Order("id DESC"), page).Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
