package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"cellhub/backend/internal/dto"
	"cellhub/backend/internal/service"
	"cellhub/backend/pkg/response"
)

// LedgerHandler serves group finance endpoints.
type LedgerHandler struct {
	ledgerSvc service.LedgerService
}

// NewLedgerHandler creates a LedgerHandler.
func NewLedgerHandler(ledgerSvc service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc}
}

func writeLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, 14001, "group not found")
	case errors.Is(err, service.ErrLedgerEntryNotFound):
		response.NotFound(c, 17001, "ledger entry not found")
	case errors.Is(err, service.ErrNotAllowed):
		response.Forbidden(c, 10003, "not allowed")
	case errors.Is(err, service.ErrInvalidLedgerEntry):
		response.BadRequest(c, 17002, "invalid ledger entry")
	default:
		response.InternalError(c)
	}
}

// CreateEntry records an income or expense line.
// POST /api/v1/groups/:id/ledger
func (h *LedgerHandler) CreateEntry(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	entry, err := h.ledgerSvc.CreateEntry(c.Request.Context(), c.Param("id"), &req, caller)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	response.Created(c, entry)
}

// ListEntries lists a group's ledger entries.
// GET /api/v1/groups/:id/ledger
func (h *LedgerHandler) ListEntries(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var page dto.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	entries, total, err := h.ledgerSvc.ListByGroup(c.Request.Context(), c.Param("id"), &page, caller)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	response.OKPage(c, entries, total, page.GetPage(), page.GetPageSize())
}

// GetReport returns a group's income/expense/balance totals.
// GET /api/v1/groups/:id/ledger/report
func (h *LedgerHandler) GetReport(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	report, err := h.ledgerSvc.Report(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	response.OK(c, report)
}

// DeleteEntry removes a ledger entry.
// DELETE /api/v1/groups/:id/ledger/:entry_id
func (h *LedgerHandler) DeleteEntry(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.ledgerSvc.DeleteEntry(c.Request.Context(), c.Param("id"), c.Param("entry_id"), caller); err != nil {
		writeLedgerError(c, err)
		return
	}

	response.OK(c, nil)
}
