package page

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"exam-portal/web/internal/exam"
	"exam-portal/web/internal/model"
	"exam-portal/web/internal/repository"
	"exam-portal/web/pkg/dom"
)

// ProfExamRegistrationsPage 教师的报名管理页：可排序报名表、发布、归档与批量录入
type ProfExamRegistrationsPage struct {
	env   *Env
	table *RegistrationsTable
}

// Table 已渲染的表格控制器
func (p *ProfExamRegistrationsPage) Table() *RegistrationsTable {
	return p.table
}

func (p *ProfExamRegistrationsPage) Show(ctx context.Context, params Params) Outcome {
	s := begin(p.env, "Exam Registration")

	id, err := params.ID("id")
	if err != nil {
		return s.fail(ctx, err, careerRoot)
	}
	examID, err := params.ID("examId")
	if err != nil {
		return s.fail(ctx, err, careerRoot)
	}

	prof := p.env.Repo.Professor
	var (
		tab, regs *dom.Fragment
		year      int
		table     *RegistrationsTable
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		frag, ec, err := fetchPair(gctx, p.env, "exam_tab", func(ctx context.Context) repository.Result[*model.ExamCourse] {
			return prof.GetExam(ctx, id, examID)
		})
		if err != nil {
			return err
		}
		if err := fillExamTab(frag, ec); err != nil {
			return err
		}
		tab, year = frag, ec.Year
		return nil
	})
	g.Go(func() error {
		frag, rows, err := fetchPair(gctx, p.env, "registrations", func(ctx context.Context) repository.Result[[]model.ExamRegistrationCareer] {
			return prof.GetExamRegistrations(ctx, id, examID)
		})
		if err != nil {
			return err
		}
		v, err := bindRegistrations(frag)
		if err != nil {
			return err
		}
		table = NewRegistrationsTable(rows, v.tbody, v.multiTBody, v.exportLink,
			fmt.Sprintf("/export/registrations/%d/%d", id, examID))
		p.fill(s, frag, v, table, id, examID)
		regs = frag
		return nil
	})
	if err := g.Wait(); err != nil {
		return s.fail(ctx, err, careerRoot)
	}

	table.Render()
	p.table = table
	out := s.commit(tab, regs)
	if out == Rendered {
		s.backLink("Exams", "../../"+itoa(int64(year)))
	}
	return out
}

func (p *ProfExamRegistrationsPage) fill(s *shell, frag *dom.Fragment, v *registrationsView, table *RegistrationsTable, professorID, examID int64) {
	table.BuildHeaders(v.headers, func(th *html.Node, col *exam.Column) {
		name := col.Name
		frag.On(th, dom.EventClick, func(context.Context, dom.Event) {
			p.env.View.Do(func() { table.ClickHeader(name) })
		})
	})

	prof := p.env.Repo.Professor
	frag.On(v.publishSubmit, dom.EventClick, func(ctx context.Context, _ dom.Event) {
		report(s.logger(), "publish", prof.PublishExamRegistrations(ctx, professorID, examID))
		p.env.Nav.NavigateTo(ctx, ".")
	})
	frag.On(v.verbalizeSubmit, dom.EventClick, func(ctx context.Context, _ dom.Event) {
		report(s.logger(), "verbalize", prof.VerbalizeExamRegistrations(ctx, professorID, examID))
		p.env.Nav.NavigateTo(ctx, "records")
	})
	frag.On(v.multiForm, dom.EventSubmit, func(ctx context.Context, ev dom.Event) {
		p.multiInsert(ctx, s, v, table, professorID, examID, ev)
	})
}

// multiInsert 批量录入：任意一行校验失败则整批不提交
func (p *ProfExamRegistrationsPage) multiInsert(ctx context.Context, s *shell, v *registrationsView, table *RegistrationsTable, professorID, examID int64, ev dom.Event) {
	evals, unparsed := table.Harvest(ev.Form)
	p.env.View.Do(func() { dom.RemoveChildren(v.errorBox) })
	if len(evals) == 0 && len(unparsed) == 0 {
		p.env.Nav.RedirectTo(ctx, "")
		return
	}

	batch := exam.ValidateBatch(evals)
	if failed := append(unparsed, batch.Failed...); len(failed) > 0 {
		msgs := make([]string, 0, len(failed))
		for _, f := range failed {
			msgs = append(msgs, StudentErrorText(f))
		}
		p.env.View.Do(func() { showErrors(v.errorBox, msgs...) })
		return
	}

	res := p.env.Repo.Professor.EditExamRegistrations(ctx, professorID, examID, evals)
	if res.Failed() {
		s.logger().Error("批量录入失败", zap.Error(res.Err))
		p.env.View.Do(func() { appendErrors(v.errorBox, repository.Message(res.Err)) })
		return
	}
	p.env.Nav.RedirectTo(ctx, "")
}

// StudentErrorText 某个学生的校验错误段落，如 "Student 3:\n  Grade should be ..."
func StudentErrorText(se exam.StudentErrors) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Student %d:", se.StudentID)
	for _, e := range se.Errors {
		b.WriteString("\n  ")
		b.WriteString(e)
	}
	return b.String()
}
