package repository

import (
	"context"
	"fmt"
	"net/http"

	"exam-portal/web/internal/model"
)

// ProfessorRepository 教师侧数据访问接口
type ProfessorRepository interface {
	GetCoursesExams(ctx context.Context, professorID int64, year int) Result[[]model.CourseExams]
	GetExam(ctx context.Context, professorID, examID int64) Result[*model.ExamCourse]
	GetExamRegistrations(ctx context.Context, professorID, examID int64) Result[[]model.ExamRegistrationCareer]
	GetExamRegistration(ctx context.Context, professorID, examID, studentID int64) Result[*model.ExamRegistrationCareer]
	EditExamRegistrations(ctx context.Context, professorID, examID int64, evals []model.ExamEvaluation) Result[bool]
	PublishExamRegistrations(ctx context.Context, professorID, examID int64) Result[bool]
	VerbalizeExamRegistrations(ctx context.Context, professorID, examID int64) Result[bool]
	GetExamRecords(ctx context.Context, professorID, examID int64) Result[[]model.ExamRecord]
}

type professorRepo struct {
	c *Client
}

// NewProfessorRepo 创建 ProfessorRepository 实例
func NewProfessorRepo(c *Client) ProfessorRepository {
	return &professorRepo{c: c}
}

func professorExamPath(professorID, examID int64) string {
	return fmt.Sprintf("/professors/%d/exams/%d", professorID, examID)
}

func (r *professorRepo) GetCoursesExams(ctx context.Context, professorID int64, year int) Result[[]model.CourseExams] {
	path := fmt.Sprintf("/professors/%d/courses/exams?year=%d", professorID, year)
	return call[[]model.CourseExams](ctx, r.c, http.MethodGet, path, nil)
}

func (r *professorRepo) GetExam(ctx context.Context, professorID, examID int64) Result[*model.ExamCourse] {
	return call[*model.ExamCourse](ctx, r.c, http.MethodGet, professorExamPath(professorID, examID), nil)
}

func (r *professorRepo) GetExamRegistrations(ctx context.Context, professorID, examID int64) Result[[]model.ExamRegistrationCareer] {
	path := professorExamPath(professorID, examID) + "/registrations"
	return call[[]model.ExamRegistrationCareer](ctx, r.c, http.MethodGet, path, nil)
}

func (r *professorRepo) GetExamRegistration(ctx context.Context, professorID, examID, studentID int64) Result[*model.ExamRegistrationCareer] {
	path := fmt.Sprintf("%s/registrations/%d", professorExamPath(professorID, examID), studentID)
	return call[*model.ExamRegistrationCareer](ctx, r.c, http.MethodGet, path, nil)
}

func (r *professorRepo) EditExamRegistrations(ctx context.Context, professorID, examID int64, evals []model.ExamEvaluation) Result[bool] {
	path := professorExamPath(professorID, examID) + "/registrations"
	return call[bool](ctx, r.c, http.MethodPut, path, evals)
}

func (r *professorRepo) PublishExamRegistrations(ctx context.Context, professorID, examID int64) Result[bool] {
	path := professorExamPath(professorID, examID) + "/registrations/publish"
	return call[bool](ctx, r.c, http.MethodPost, path, nil)
}

func (r *professorRepo) VerbalizeExamRegistrations(ctx context.Context, professorID, examID int64) Result[bool] {
	path := professorExamPath(professorID, examID) + "/registrations/verbalize"
	return call[bool](ctx, r.c, http.MethodPost, path, nil)
}

func (r *professorRepo) GetExamRecords(ctx context.Context, professorID, examID int64) Result[[]model.ExamRecord] {
	path := professorExamPath(professorID, examID) + "/records"
	return call[[]model.ExamRecord](ctx, r.c, http.MethodGet, path, nil)
}
