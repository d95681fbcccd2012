package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"exam-portal/web/internal/page"
	"exam-portal/web/internal/service"
	"exam-portal/web/pkg/response"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc   service.ExportService
	calendarSvc service.CalendarService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, calendarSvc service.CalendarService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, calendarSvc: calendarSvc}
}

// ExportRegistrations 导出考试报名记录
// GET /export/registrations/:id/:examId?sort=<列名>&dir=asc|desc
func (h *ExportHandler) ExportRegistrations(c *gin.Context) {
	a, ok := MustGetApp(c)
	if !ok {
		return
	}
	professorID, ctx, ok := MustGetCareer(c, a, service.RoleProfessor)
	if !ok {
		return
	}
	examID, err := page.Params{"examId": c.Param("examId")}.ID("examId")
	if err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	ascending := c.Query("dir") != "desc"
	buf, filename, err := h.exportSvc.ExportRegistrations(ctx, professorID, examID, c.Query("sort"), ascending)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	attachment(c, filename, mimeXLSX, buf)
}

// ExportCalendar 导出学年考试日历
// GET /export/calendar/:role/:id/:year
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	a, ok := MustGetApp(c)
	if !ok {
		return
	}
	role := c.Param("role")
	careerID, ctx, ok := MustGetCareer(c, a, role)
	if !ok {
		return
	}
	year, err := page.Params{"year": c.Param("year")}.Year("year")
	if err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	buf, filename, err := h.calendarSvc.ExamCalendar(ctx, role, careerID, year)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	attachment(c, filename, mimeICS, buf)
}

// attachment 设置下载响应头并写入内容
func attachment(c *gin.Context, filename, mime string, buf *bytes.Buffer) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, mime, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportUnknownColumn):
		response.BadRequest(c, 16101, "未知的排序列")
	case errors.Is(err, service.ErrCalendarRole):
		response.BadRequest(c, 16102, "不支持的角色")
	case errors.Is(err, service.ErrExportFetchFail), errors.Is(err, service.ErrCalendarFetchFail):
		response.BadGateway(c, 16103, "考试后端暂不可用")
	default:
		response.InternalError(c)
	}
}
