package service

import (
	"context"
	"errors"
	"time"

	"exam-portal/web/internal/model"
	"exam-portal/web/internal/repository"
)

var errBackend = errors.New("backend down")

// ── Mock ProfessorRepository ──

type mockProfessorRepo struct {
	repository.ProfessorRepository
	exam    repository.Result[*model.ExamCourse]
	regs    repository.Result[[]model.ExamRegistrationCareer]
	courses repository.Result[[]model.CourseExams]
}

func (m *mockProfessorRepo) GetExam(context.Context, int64, int64) repository.Result[*model.ExamCourse] {
	return m.exam
}

func (m *mockProfessorRepo) GetExamRegistrations(context.Context, int64, int64) repository.Result[[]model.ExamRegistrationCareer] {
	// 返回副本，排序不影响夹具
	return repository.Result[[]model.ExamRegistrationCareer]{
		Data: append([]model.ExamRegistrationCareer(nil), m.regs.Data...),
		Err:  m.regs.Err,
	}
}

func (m *mockProfessorRepo) GetCoursesExams(context.Context, int64, int) repository.Result[[]model.CourseExams] {
	return m.courses
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	repository.StudentRepository
	courses repository.Result[[]model.CourseExams]
	gotID   int64
	gotYear int
}

func (m *mockStudentRepo) GetCoursesExams(_ context.Context, id int64, year int) repository.Result[[]model.CourseExams] {
	m.gotID, m.gotYear = id, year
	return m.courses
}

// ── 夹具 ──

var examDate = time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)

func sampleExamCourse() *model.ExamCourse {
	return &model.ExamCourse{ID: 9, Date: examDate, Year: 2026, Course: model.Course{ID: 1, Name: "Analisi"}}
}

func reg(id int64, name string, status model.ExamStatus, repr string) model.ExamRegistrationCareer {
	return model.ExamRegistrationCareer{
		ExamRegistration: model.ExamRegistration{
			StudentID:            id,
			ExamID:               9,
			Status:               status,
			ResultRepresentation: repr,
		},
		Career: model.StudentCareer{
			ID:    id,
			Major: "Computer Engineering",
			User:  model.User{Name: name, Surname: "S" + name, Email: name + "@example.org"},
		},
	}
}

func sampleCourses() []model.CourseExams {
	return []model.CourseExams{
		{ID: 1, Name: "Analisi", Exams: []model.Exam{
			{ID: 7, Date: examDate},
			{ID: 8, Date: examDate.AddDate(0, 1, 0)},
		}},
		{ID: 2, Name: "Fisica", Exams: []model.Exam{{ID: 11, Date: examDate.AddDate(0, 0, 3)}}},
	}
}
