package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/slideboard-next/internal/http/response"
	"github.com/slideboard-next/internal/repository"
	"github.com/slideboard-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListCommissions 佣金记录列表
func (h *Handler) ListCommissions(c *gin.Context) {
	if h.CommissionService == nil {
		response.Internal(c, "佣金服务未初始化")
		return
	}
	tenantID := parseUintQuery(c, "tenant_id")
	if tenantID == 0 {
		response.BadRequest(c, "tenant_id 不能为空")
		return
	}
	page, pageSize := parsePagination(c)

	rows, total, err := h.CommissionService.ListCommissions(c.Request.Context(), repository.CommissionListFilter{
		TenantID:  tenantID,
		ChannelID: parseUintQuery(c, "channel_id"),
		OrderID:   parseUintQuery(c, "order_id"),
		Status:    strings.TrimSpace(c.Query("status")),
	}, repository.Pagination{Page: page, PageSize: pageSize})
	if err != nil {
		response.Internal(c, "佣金记录查询失败")
		return
	}
	response.SuccessWithPage(c, rows, response.BuildPagination(page, pageSize, total))
}

// ListCommissionAdjustments 佣金调整记录列表
func (h *Handler) ListCommissionAdjustments(c *gin.Context) {
	if h.CommissionService == nil {
		response.Internal(c, "佣金服务未初始化")
		return
	}
	tenantID := parseUintQuery(c, "tenant_id")
	if tenantID == 0 {
		response.BadRequest(c, "tenant_id 不能为空")
		return
	}
	page, pageSize := parsePagination(c)

	rows, total, err := h.CommissionService.ListAdjustments(c.Request.Context(), repository.AdjustmentListFilter{
		TenantID:             tenantID,
		ChannelID:            parseUintQuery(c, "channel_id"),
		OrderID:              parseUintQuery(c, "order_id"),
		OriginalCommissionID: parseUintQuery(c, "commission_id"),
	}, repository.Pagination{Page: page, PageSize: pageSize})
	if err != nil {
		response.Internal(c, "佣金调整记录查询失败")
		return
	}
	response.SuccessWithPage(c, rows, response.BuildPagination(page, pageSize, total))
}

// GetCommission 佣金记录详情
func (h *Handler) GetCommission(c *gin.Context) {
	if h.CommissionService == nil {
		response.Internal(c, "佣金服务未初始化")
		return
	}
	tenantID := parseUintQuery(c, "tenant_id")
	if tenantID == 0 {
		response.BadRequest(c, "tenant_id 不能为空")
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "无效的佣金记录 ID")
		return
	}
	record, err := h.CommissionService.GetCommission(c.Request.Context(), tenantID, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrCommissionNotFound) {
			response.NotFound(c, "佣金记录不存在")
			return
		}
		response.Internal(c, "佣金记录查询失败")
		return
	}
	response.Success(c, record)
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

func parseUintQuery(c *gin.Context, key string) uint {
	value, _ := strconv.ParseUint(strings.TrimSpace(c.Query(key)), 10, 64)
	return uint(value)
}
