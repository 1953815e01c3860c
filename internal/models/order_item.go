package models

import "time"

// OrderItem 订单明细行
type OrderItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TenantID    uint      `gorm:"index;not null" json:"tenant_id"`
	OrderID     uint      `gorm:"index:idx_order_item_order;not null" json:"order_id"`
	ProductID   *uint     `gorm:"index" json:"product_id"` // 可为空（自定义项目）
	ProductName string    `gorm:"type:varchar(128)" json:"product_name"`
	UnitPrice   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	Quantity    int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
