package page

import (
	"context"
	"fmt"
	"strings"

	"exam-portal/web/internal/model"
	"exam-portal/web/internal/repository"
	"exam-portal/web/pkg/dom"
)

type coursesExamsFetcher func(ctx context.Context, id int64, year int) repository.Result[[]model.CourseExams]

// ExamsPage 某一年份的考试列表，按课程分组；学生与教师两种变体只在数据来源上不同
type ExamsPage struct {
	env   *Env
	role  string
	fetch coursesExamsFetcher
}

func newStudentExamsPage(env *Env) *ExamsPage {
	return &ExamsPage{env: env, role: "student", fetch: env.Repo.Student.GetCoursesExams}
}

func newProfessorExamsPage(env *Env) *ExamsPage {
	return &ExamsPage{env: env, role: "professor", fetch: env.Repo.Professor.GetCoursesExams}
}

const careersRoute = "/inside/careers"

func (p *ExamsPage) Show(ctx context.Context, params Params) Outcome {
	s := begin(p.env, "Exams")
	s.clearBackLink()

	id, err := params.ID("id")
	if err != nil {
		return s.fail(ctx, err, careersRoute)
	}
	year, err := params.Year("year")
	if err != nil {
		return s.fail(ctx, err, careersRoute)
	}

	frag, courses, err := fetchPair(ctx, p.env, "exams", func(ctx context.Context) repository.Result[[]model.CourseExams] {
		return p.fetch(ctx, id, year)
	})
	if err != nil {
		return s.fail(ctx, err, careersRoute)
	}
	v, err := bindExams(frag)
	if err != nil {
		return s.fail(ctx, err, careersRoute)
	}

	p.fillTable(v, courses)
	p.fillForm(frag, v, year)
	dom.SetAttr(v.calendarLink, "href", fmt.Sprintf("/export/calendar/%s/%d/%d", p.role, id, year))
	return s.commit(frag)
}

func (p *ExamsPage) fillTable(v *examsView, courses []model.CourseExams) {
	for i, course := range courses {
		for j, e := range course.Exams {
			tr := dom.InsertRow(v.tbody)
			if j == 0 {
				groupCell(tr, itoa(course.ID), len(course.Exams), i)
				groupCell(tr, course.Name, len(course.Exams), i)
			}
			textCell(tr, itoa(e.ID))
			textCell(tr, formatDate(e.Date))
			linkCell(tr, "exam/"+itoa(e.ID)+"/")
		}
	}
}

func (p *ExamsPage) fillForm(frag *dom.Fragment, v *examsView, year int) {
	dom.SetAttr(v.year, "value", fmt.Sprint(year))
	frag.On(v.yearForm, dom.EventSubmit, func(ctx context.Context, ev dom.Event) {
		p.env.Nav.NavigateTo(ctx, strings.TrimSpace(ev.Value("year")))
	})
}
