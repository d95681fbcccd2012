package repository

import (
	"context"
	"fmt"
	"net/http"

	"exam-portal/web/internal/model"
)

// StudentRepository 学生侧数据访问接口
type StudentRepository interface {
	GetCoursesExams(ctx context.Context, studentID int64, year int) Result[[]model.CourseExams]
	GetExam(ctx context.Context, studentID, examID int64) Result[*model.ExamCourse]
	GetExamRegistration(ctx context.Context, studentID, examID int64) Result[*model.ExamRegistration]
	Register(ctx context.Context, studentID, examID int64) Result[bool]
	Deregister(ctx context.Context, studentID, examID int64) Result[bool]
	Reject(ctx context.Context, studentID, examID int64) Result[bool]
}

type studentRepo struct {
	c *Client
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(c *Client) StudentRepository {
	return &studentRepo{c: c}
}

func studentExamPath(studentID, examID int64) string {
	return fmt.Sprintf("/students/%d/exams/%d", studentID, examID)
}

func (r *studentRepo) GetCoursesExams(ctx context.Context, studentID int64, year int) Result[[]model.CourseExams] {
	path := fmt.Sprintf("/students/%d/courses/exams?year=%d", studentID, year)
	return call[[]model.CourseExams](ctx, r.c, http.MethodGet, path, nil)
}

func (r *studentRepo) GetExam(ctx context.Context, studentID, examID int64) Result[*model.ExamCourse] {
	return call[*model.ExamCourse](ctx, r.c, http.MethodGet, studentExamPath(studentID, examID), nil)
}

// GetExamRegistration 未报名时 Data 为 nil
func (r *studentRepo) GetExamRegistration(ctx context.Context, studentID, examID int64) Result[*model.ExamRegistration] {
	path := studentExamPath(studentID, examID) + "/registration"
	return call[*model.ExamRegistration](ctx, r.c, http.MethodGet, path, nil)
}

func (r *studentRepo) Register(ctx context.Context, studentID, examID int64) Result[bool] {
	path := studentExamPath(studentID, examID) + "/registration"
	return call[bool](ctx, r.c, http.MethodPost, path, nil)
}

func (r *studentRepo) Deregister(ctx context.Context, studentID, examID int64) Result[bool] {
	path := studentExamPath(studentID, examID) + "/registration"
	return call[bool](ctx, r.c, http.MethodDelete, path, nil)
}

func (r *studentRepo) Reject(ctx context.Context, studentID, examID int64) Result[bool] {
	path := studentExamPath(studentID, examID) + "/registration/reject"
	return call[bool](ctx, r.c, http.MethodPost, path, nil)
}
