package repository

import (
	"context"
	"errors"

	"github.com/slideboard-next/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	GetByID(ctx context.Context, tenantID, orderID uint) (*models.Order, error)
	GetByOrderNo(ctx context.Context, tenantID uint, orderNo string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	WithTx(tx *gorm.DB) OrderRepository
}

// GormOrderRepository 订单仓储 GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 返回绑定事务的仓储
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: tx}
}

// GetByID 按 ID 查询订单（含明细行），不存在返回 nil
func (r *GormOrderRepository) GetByID(ctx context.Context, tenantID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, orderID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByOrderNo 按订单号查询订单，不存在返回 nil
func (r *GormOrderRepository) GetByOrderNo(ctx context.Context, tenantID uint, orderNo string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND order_no = ?", tenantID, orderNo).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Create 创建订单
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}
