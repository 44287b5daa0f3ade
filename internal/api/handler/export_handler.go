package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"cellhub/backend/internal/service"
	"cellhub/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves Excel downloads.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

func writeExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, 14001, "group not found")
	case errors.Is(err, service.ErrNotAllowed):
		response.Forbidden(c, 10003, "not allowed")
	case errors.Is(err, service.ErrExportNoMeetings):
		response.NotFound(c, 19001, "group has no meetings to export")
	case errors.Is(err, service.ErrExportNoEntries):
		response.NotFound(c, 19002, "group has no ledger entries to export")
	default:
		response.InternalError(c)
	}
}

func writeXLSX(c *gin.Context, buf interface{ Bytes() []byte }, filename string) {
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportAttendance downloads a group's attendance workbook.
// GET /api/v1/export/groups/:id/attendance
func (h *ExportHandler) ExportAttendance(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportAttendance(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		writeExportError(c, err)
		return
	}

	writeXLSX(c, buf, filename)
}

// ExportLedger downloads a group's ledger workbook.
// GET /api/v1/export/groups/:id/ledger
func (h *ExportHandler) ExportLedger(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportLedger(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		writeExportError(c, err)
		return
	}

	writeXLSX(c, buf, filename)
}
