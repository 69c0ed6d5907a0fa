package handler

import (
	"net/http"
	"strconv"

	"docconnect/internal/delivery/dto"
	"docconnect/internal/usecase"
	"docconnect/pkg/response"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

// GetAllAuditLogs pages through the audit trail, newest first
// @Summary List audit logs (admin)
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Param action query string false "Filter by action"
// @Success 200 {object} response.Response
// @Router /admin/audit-logs [get]
func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	logs, err := h.auditLogUsecase.ListAuditLogs(r.Context(), &dto.AuditLogQuery{
		Action: query.Get("action"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	totalPages := logs.Total / int64(logs.Limit)
	if logs.Total%int64(logs.Limit) != 0 {
		totalPages++
	}

	response.SuccessWithMeta(w, http.StatusOK, "Audit logs retrieved successfully", logs.Logs, &response.Meta{
		Page:       logs.Page,
		Limit:      logs.Limit,
		Total:      logs.Total,
		TotalPages: int(totalPages),
	})
}
