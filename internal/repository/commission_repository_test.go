package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/slideboard-next/internal/constants"
	"github.com/slideboard-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:commission_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db failed: %v", err)
	}
	if err := db.AutoMigrate(&models.ChannelCommission{}, &models.CommissionAdjustment{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func seedCommission(t *testing.T, db *gorm.DB, orderID uint, status string) *models.ChannelCommission {
	t.Helper()
	amount, _ := decimal.NewFromString("100")
	record := &models.ChannelCommission{
		TenantID:       1,
		ChannelID:      1,
		OrderID:        orderID,
		CommissionNo:   fmt.Sprintf("COMM-TEST-%d", time.Now().UnixNano()),
		CommissionType: constants.CooperationModeCommission,
		OrderAmount:    models.NewMoneyFromDecimal(decimal.NewFromInt(1000)),
		Amount:         models.NewMoneyFromDecimal(amount),
		Status:         status,
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("seed commission failed: %v", err)
	}
	return record
}

func TestGetActiveByOrderForUpdateExcludesVoid(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewCommissionRepository(db)
	ctx := context.Background()

	seedCommission(t, db, 10, constants.CommissionStatusVoid)

	got, err := repo.GetActiveByOrderForUpdate(ctx, 1, 10)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if got != nil {
		t.Fatalf("void record should be invisible, got %+v", got)
	}

	active := seedCommission(t, db, 10, constants.CommissionStatusPending)
	got, err = repo.GetActiveByOrderForUpdate(ctx, 1, 10)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if got == nil || got.ID != active.ID {
		t.Fatalf("expected active record %d, got %+v", active.ID, got)
	}
}

func TestListFiltersAndPaginates(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewCommissionRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		seedCommission(t, db, uint(100+i), constants.CommissionStatusPending)
	}
	seedCommission(t, db, 200, constants.CommissionStatusSettled)

	rows, total, err := repo.List(ctx, CommissionListFilter{TenantID: 1, Status: constants.CommissionStatusPending}, Pagination{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	if len(rows) != 2 {
		t.Fatalf("page size = %d, want 2", len(rows))
	}

	rows, total, err = repo.List(ctx, CommissionListFilter{TenantID: 1, OrderID: 200}, Pagination{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].OrderID != 200 {
		t.Fatalf("order filter mismatch: total=%d rows=%d", total, len(rows))
	}

	_, total, err = repo.List(ctx, CommissionListFilter{TenantID: 2}, Pagination{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("tenant isolation broken, total = %d", total)
	}
}

func TestSumAdjustments(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewCommissionRepository(db)
	ctx := context.Background()

	record := seedCommission(t, db, 300, constants.CommissionStatusSettled)

	sum, err := repo.SumAdjustments(ctx, 1, record.ID)
	if err != nil {
		t.Fatalf("sum failed: %v", err)
	}
	if !sum.IsZero() {
		t.Fatalf("empty sum = %s, want 0", sum)
	}

	for _, value := range []string{"-30", "-20.5"} {
		amount, _ := decimal.NewFromString(value)
		adjustment := &models.CommissionAdjustment{
			TenantID:             1,
			ChannelID:            1,
			OriginalCommissionID: record.ID,
			OrderID:              record.OrderID,
			AdjustmentType:       constants.AdjustmentTypePartialRefund,
			AdjustmentAmount:     models.NewMoneyFromDecimal(amount),
			RefundAmount:         models.NewMoneyFromDecimal(amount.Neg()),
		}
		if err := repo.CreateAdjustment(ctx, adjustment); err != nil {
			t.Fatalf("create adjustment failed: %v", err)
		}
	}

	sum, err = repo.SumAdjustments(ctx, 1, record.ID)
	if err != nil {
		t.Fatalf("sum failed: %v", err)
	}
	if want, _ := decimal.NewFromString("-50.5"); !sum.Equal(want) {
		t.Fatalf("sum = %s, want -50.5", sum)
	}
}
