package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"exam-portal/web/internal/model"
	"exam-portal/web/internal/repository"
)

// ── 考试日历导出 ──────────────────────────────────────────────
//
// 职责：将某学籍某学年的考试场次生成为标准 iCalendar (RFC 5545)。
//
//   - 每场考试一个 VEVENT，UID 由考试 ID 派生，重复导入可覆盖
//   - DTSTART 为考试时间，DTEND 按固定时长推算
//   - SUMMARY 为课程名
// ─────────────────────────────────────────────────────────────

const (
	examDuration = 3 * time.Hour
	calendarProd = "-//exam-portal//exam calendar//EN"
	uidDomain    = "exam-portal"
)

// 角色
const (
	RoleStudent   = "student"
	RoleProfessor = "professor"
)

var (
	ErrCalendarRole      = errors.New("不支持的角色")
	ErrCalendarFetchFail = errors.New("获取考试列表失败")
)

// CalendarService 考试日历导出接口
type CalendarService interface {
	// ExamCalendar 生成 .ics；返回内容与建议文件名
	ExamCalendar(ctx context.Context, role string, careerID int64, year int) (*bytes.Buffer, string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger, now: time.Now}
}

func (s *calendarService) ExamCalendar(ctx context.Context, role string, careerID int64, year int) (*bytes.Buffer, string, error) {
	var res repository.Result[[]model.CourseExams]
	switch role {
	case RoleStudent:
		res = s.repo.Student.GetCoursesExams(ctx, careerID, year)
	case RoleProfessor:
		res = s.repo.Professor.GetCoursesExams(ctx, careerID, year)
	default:
		return nil, "", ErrCalendarRole
	}
	if res.Failed() {
		s.logger.Error("获取考试列表失败",
			zap.String("role", role),
			zap.Int64("career_id", careerID),
			zap.Int("year", year),
			zap.Error(res.Err),
		)
		return nil, "", fmt.Errorf("%w: %v", ErrCalendarFetchFail, res.Err)
	}

	cal := BuildExamCalendar(res.Data, s.now())

	buf := new(bytes.Buffer)
	buf.WriteString(cal.Serialize())
	filename := fmt.Sprintf("exams_%s_%d_%d.ics", role, careerID, year)
	return buf, filename, nil
}

// BuildExamCalendar 由课程考试列表构建日历；stamp 为 DTSTAMP
func BuildExamCalendar(courses []model.CourseExams, stamp time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProd)
	cal.SetName("Exams")

	for _, c := range courses {
		for _, e := range c.Exams {
			event := cal.AddEvent(fmt.Sprintf("exam-%d@%s", e.ID, uidDomain))
			event.SetDtStampTime(stamp)
			event.SetStartAt(e.Date)
			event.SetEndAt(e.Date.Add(examDuration))
			event.SetSummary(c.Name)
			event.SetDescription(fmt.Sprintf("%s exam, %s", c.Name, e.Date.Format("2 January 2006")))
		}
	}
	return cal
}
