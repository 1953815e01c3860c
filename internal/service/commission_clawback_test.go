package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/slideboard-next/internal/constants"
	"github.com/slideboard-next/internal/models"
	"github.com/slideboard-next/internal/repository"

	"gorm.io/gorm"
)

// generatePendingCommission 构造渠道+订单并生成一条 PENDING 佣金
func generatePendingCommission(t *testing.T, db *gorm.DB, svc *CommissionService, orderAmount string) (*models.Channel, *models.Order, *models.ChannelCommission) {
	t.Helper()
	channel := seedChannel(t, db, nil)
	order := seedOrder(t, db, orderAmount, func(o *models.Order) {
		o.ChannelID = &channel.ID
	})
	record, err := svc.GenerateForOrder(context.Background(), testTenantID, order.ID, constants.CommissionTriggerPaymentCompleted)
	if err != nil || record == nil {
		t.Fatalf("generate commission failed: record=%v err=%v", record, err)
	}
	return channel, order, record
}

func markCommissionStatus(t *testing.T, db *gorm.DB, id uint, status string) {
	t.Helper()
	repo := repository.NewCommissionRepository(db)
	if err := repo.UpdateStatus(context.Background(), testTenantID, id, status, ""); err != nil {
		t.Fatalf("update status failed: %v", err)
	}
}

func loadCommission(t *testing.T, db *gorm.DB, id uint) *models.ChannelCommission {
	t.Helper()
	var record models.ChannelCommission
	if err := db.First(&record, id).Error; err != nil {
		t.Fatalf("load commission failed: %v", err)
	}
	return &record
}

func listAdjustments(t *testing.T, db *gorm.DB, commissionID uint) []models.CommissionAdjustment {
	t.Helper()
	var rows []models.CommissionAdjustment
	if err := db.Where("original_commission_id = ?", commissionID).Order("id ASC").Find(&rows).Error; err != nil {
		t.Fatalf("list adjustments failed: %v", err)
	}
	return rows
}

func TestHandleRefundVoidsPendingCommission(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCommissionService(db)
	channel, order, record := generatePendingCommission(t, db, svc, "1000")

	err := svc.HandleRefund(context.Background(), testTenantID, order.ID, mustDecimal(t, "1000"), "客户全额退款")
	if err != nil {
		t.Fatalf("handle refund failed: %v", err)
	}

	updated := loadCommission(t, db, record.ID)
	if updated.Status != constants.CommissionStatusVoid {
		t.Fatalf("status = %s, want VOID", updated.Status)
	}
	if !strings.Contains(updated.Remark, "作废") {
		t.Fatalf("remark = %s, want void note", updated.Remark)
	}
	if got := loadChannel(t, db, channel.ID).TotalDealAmount.String(); got != "0.00" {
		t.Fatalf("total deal amount = %s, want 0.00 after void", got)
	}
	if rows := listAdjustments(t, db, record.ID); len(rows) != 0 {
		t.Fatalf("pending void should not create adjustments, got %d", len(rows))
	}
}

func TestHandleRefundIgnoresAlreadyVoided(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCommissionService(db)
	channel, order, _ := generatePendingCommission(t, db, svc, "1000")

	if err := svc.HandleRefund(context.Background(), testTenantID, order.ID, mustDecimal(t, "1000"), ""); err != nil {
		t.Fatalf("first refund failed: %v", err)
	}
	if err := svc.HandleRefund(context.Background(), testTenantID, order.ID, mustDecimal(t, "1000"), ""); err != nil {
		t.Fatalf("second refund should no-op: %v", err)
	}
	if got := loadChannel(t, db, channel.ID).TotalDealAmount.String(); got != "0.00" {
		t.Fatalf("total deal amount = %s, want 0.00 (no double deduction)", got)
	}
}

func TestHandleRefundPartialAdjustsSettledCommission(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCommissionService(db)
	channel, order, record := generatePendingCommission(t, db, svc, "1000")
	markCommissionStatus(t, db, record.ID, constants.CommissionStatusSettled)

	err := svc.HandleRefund(context.Background(), testTenantID, order.ID, mustDecimal(t, "400"), "部分退款")
	if err != nil {
		t.Fatalf("handle refund failed: %v", err)
	}

	updated := loadCommission(t, db, record.ID)
	if updated.Status != constants.CommissionStatusSettled {
		t.Fatalf("settled record should keep status, got %s", updated.Status)
	}
	rows := listAdjustments(t, db, record.ID)
	if len(rows) != 1 {
		t.Fatalf("adjustment count = %d, want 1", len(rows))
	}
	// 佣金 100，退款比例 400/1000 → 调整 -40
	if rows[0].AdjustmentAmount.String() != "-40.00" {
		t.Fatalf("adjustment amount = %s, want -40.00", rows[0].AdjustmentAmount)
	}
	if rows[0].AdjustmentType != constants.AdjustmentTypePartialRefund {
		t.Fatalf("adjustment type = %s, want PARTIAL_REFUND", rows[0].AdjustmentType)
	}
	if got := loadChannel(t, db, channel.ID).TotalDealAmount.String(); got != "600.00" {
		t.Fatalf("total deal amount = %s, want 600.00", got)
	}
}

func TestHandleRefundFullRefundOnSettledCommission(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCommissionService(db)
	channel, order, record := generatePendingCommission(t, db, svc, "1000")
	markCommissionStatus(t, db, record.ID, constants.CommissionStatusPaid)

	err := svc.HandleRefund(context.Background(), testTenantID, order.ID, mustDecimal(t, "1000"), "全额退款")
	if err != nil {
		t.Fatalf("handle refund failed: %v", err)
	}

	rows := listAdjustments(t, db, record.ID)
	if len(rows) != 1 {
		t.Fatalf("adjustment count = %d, want 1", len(rows))
	}
	if rows[0].AdjustmentType != constants.AdjustmentTypeFullRefund {
		t.Fatalf("adjustment type = %s, want FULL_REFUND", rows[0].AdjustmentType)
	}
	if rows[0].AdjustmentAmount.String() != "-100.00" {
		t.Fatalf("adjustment amount = %s, want -100.00", rows[0].AdjustmentAmount)
	}
	if got := loadChannel(t, db, channel.ID).TotalDealAmount.String(); got != "0.00" {
		t.Fatalf("total deal amount = %s, want 0.00", got)
	}
}

func TestHandleRefundCapsCumulativeAdjustment(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCommissionService(db)
	_, order, record := generatePendingCommission(t, db, svc, "1000")
	markCommissionStatus(t, db, record.ID, constants.CommissionStatusSettled)

	// 第一次退 800 → 调整 -80；第二次退 800 按比例应 -80，但剩余额度只有 20
	if err := svc.HandleRefund(context.Background(), testTenantID, order.ID, mustDecimal(t, "800"), ""); err != nil {
		t.Fatalf("first refund failed: %v", err)
	}
	if err := svc.HandleRefund(context.Background(), testTenantID, order.ID, mustDecimal(t, "800"), ""); err != nil {
		t.Fatalf("second refund failed: %v", err)
	}

	rows := listAdjustments(t, db, record.ID)
	if len(rows) != 2 {
		t.Fatalf("adjustment count = %d, want 2", len(rows))
	}
	if rows[0].AdjustmentAmount.String() != "-80.00" {
		t.Fatalf("first adjustment = %s, want -80.00", rows[0].AdjustmentAmount)
	}
	if rows[1].AdjustmentAmount.String() != "-20.00" {
		t.Fatalf("second adjustment = %s, want capped -20.00", rows[1].AdjustmentAmount)
	}

	// 额度耗尽后再退款不再产生调整
	if err := svc.HandleRefund(context.Background(), testTenantID, order.ID, mustDecimal(t, "100"), ""); err != nil {
		t.Fatalf("third refund failed: %v", err)
	}
	if rows := listAdjustments(t, db, record.ID); len(rows) != 2 {
		t.Fatalf("exhausted commission should not gain adjustments, got %d", len(rows))
	}
}

func TestHandleRefundInvalidAmount(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCommissionService(db)

	err := svc.HandleRefund(context.Background(), testTenantID, 1, mustDecimal(t, "0"), "")
	if !errors.Is(err, ErrInvalidRefundAmount) {
		t.Fatalf("err = %v, want ErrInvalidRefundAmount", err)
	}
}

func TestHandleRefundNoActiveRecords(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCommissionService(db)
	order := seedOrder(t, db, "1000", nil)

	if err := svc.HandleRefund(context.Background(), testTenantID, order.ID, mustDecimal(t, "100"), ""); err != nil {
		t.Fatalf("refund without commissions should no-op: %v", err)
	}
}
