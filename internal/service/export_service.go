package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"exam-portal/web/internal/exam"
	"exam-portal/web/internal/model"
	"exam-portal/web/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportFetchFail     = errors.New("获取导出数据失败")
	ErrExportUnknownColumn = errors.New("未知的排序列")
	ErrExportGenerateFail  = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出教师某场考试的全部报名记录为 Excel (.xlsx)
//   - 行顺序与页面表格一致：按 sortCol 列的规范顺序，dir 决定方向
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportRegistrations 导出报名记录；sortCol 为空时保持后端顺序
	ExportRegistrations(ctx context.Context, professorID, examID int64, sortCol string, ascending bool) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// 导出表头，与页面表格列一致
var exportHeaders = []string{
	exam.ColStudentID, exam.ColName, exam.ColSurname, exam.ColEmail,
	exam.ColMajor, exam.ColStatus, exam.ColGrade,
}

const registrationsSheet = "Registrations"

// ═══════════════════════════════════════════════════════════
// ExportRegistrations 导出报名记录为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 第 1 行：课程名与考试日期（合并单元格）
//   - 第 2 行：列头
//   - 之后每条报名一行：状态为可读文本，成绩为结果表示
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportRegistrations(ctx context.Context, professorID, examID int64, sortCol string, ascending bool) (*bytes.Buffer, string, error) {
	// 1. 解析排序列
	var col *exam.Column
	if sortCol != "" {
		col = exam.FindColumn(exam.DefaultColumns(), sortCol)
		if col == nil {
			return nil, "", ErrExportUnknownColumn
		}
		col.Ascending = ascending
	}

	// 2. 并发获取考试信息与报名记录
	var (
		info *model.ExamCourse
		rows []model.ExamRegistrationCareer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res := s.repo.Professor.GetExam(gctx, professorID, examID)
		if res.Failed() {
			return res.Err
		}
		info = res.Data
		return nil
	})
	g.Go(func() error {
		res := s.repo.Professor.GetExamRegistrations(gctx, professorID, examID)
		if res.Failed() {
			return res.Err
		}
		rows = res.Data
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("获取导出数据失败",
			zap.Int64("professor_id", professorID),
			zap.Int64("exam_id", examID),
			zap.Error(err),
		)
		return nil, "", fmt.Errorf("%w: %v", ErrExportFetchFail, err)
	}
	if info == nil {
		return nil, "", ErrExportFetchFail
	}

	// 3. 排序
	exam.SortRegistrations(rows, col)

	// 4. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	idx, _ := f.NewSheet(registrationsSheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(registrationsSheet, "A", "A", 12)
	f.SetColWidth(registrationsSheet, "B", "C", 18)
	f.SetColWidth(registrationsSheet, "D", "D", 30)
	f.SetColWidth(registrationsSheet, "E", "E", 26)
	f.SetColWidth(registrationsSheet, "F", "G", 16)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	last := colName(len(exportHeaders) - 1)
	f.SetCellValue(registrationsSheet, "A1", fmt.Sprintf("%s %s", info.Course.Name, info.Date.Format("2 January 2006")))
	f.MergeCell(registrationsSheet, "A1", cell(last, 1))
	f.SetCellStyle(registrationsSheet, "A1", cell(last, 1), headerStyle)

	// 表头
	for i, h := range exportHeaders {
		f.SetCellValue(registrationsSheet, cell(colName(i), 2), h)
	}
	f.SetCellStyle(registrationsSheet, "A2", cell(last, 2), headerStyle)

	// 数据行
	for i := range rows {
		reg := &rows[i]
		row := i + 3
		values := []interface{}{
			reg.StudentID,
			reg.Career.User.Name,
			reg.Career.User.Surname,
			reg.Career.User.Email,
			reg.Career.Major,
			exam.StatusString(reg.Status),
			exam.GradeString(reg.ResultRepresentation),
		}
		if err := f.SetSheetRow(registrationsSheet, cell("A", row), &values); err != nil {
			s.logger.Error("写入 Excel 行失败", zap.Int("row", row), zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("registrations_%d_%s.xlsx", examID, info.Date.Format("2006-01-02"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
