package page

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"exam-portal/web/internal/exam"
	"exam-portal/web/internal/model"
	"exam-portal/web/internal/repository"
	"exam-portal/web/pkg/dom"
)

// MsgGradeNotNumber 成绩不是数字
const MsgGradeNotNumber = "Grade must be a number"

// ProfEditExamPage 教师编辑单个学生的成绩
type ProfEditExamPage struct {
	env *Env
}

func (p *ProfEditExamPage) Show(ctx context.Context, params Params) Outcome {
	s := begin(p.env, "Edit Exam Registration")

	id, err := params.ID("id")
	if err != nil {
		return s.fail(ctx, err, "..")
	}
	examID, err := params.ID("examId")
	if err != nil {
		return s.fail(ctx, err, "..")
	}
	studentID, err := params.ID("studentId")
	if err != nil {
		return s.fail(ctx, err, "..")
	}

	prof := p.env.Repo.Professor
	var tab, edit *dom.Fragment
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		frag, ec, err := fetchPair(gctx, p.env, "exam_tab", func(ctx context.Context) repository.Result[*model.ExamCourse] {
			return prof.GetExam(ctx, id, examID)
		})
		if err != nil {
			return err
		}
		tab = frag
		return fillExamTab(frag, ec)
	})
	g.Go(func() error {
		frag, reg, err := fetchPair(gctx, p.env, "single_edit", func(ctx context.Context) repository.Result[*model.ExamRegistrationCareer] {
			return prof.GetExamRegistration(ctx, id, examID, studentID)
		})
		if err != nil {
			return err
		}
		if reg == nil {
			return ErrNoData
		}
		v, err := bindSingleEdit(frag)
		if err != nil {
			return err
		}
		edit = frag
		p.fill(s, frag, v, id, examID, reg)
		return nil
	})
	if err := g.Wait(); err != nil {
		return s.fail(ctx, err, "..")
	}

	out := s.commit(tab, edit)
	if out == Rendered {
		s.backLink("Exam Registrations", "..")
	}
	return out
}

func (p *ProfEditExamPage) fill(s *shell, frag *dom.Fragment, v *singleEditView, professorID, examID int64, reg *model.ExamRegistrationCareer) {
	dom.SetText(v.studentID, itoa(reg.Career.ID))
	dom.SetText(v.personCode, reg.Career.User.PersonCode)
	dom.SetText(v.name, reg.Career.User.Name)
	dom.SetText(v.surname, reg.Career.User.Surname)
	resultOptions(v.result, reg.Result)
	dom.SetAttr(v.grade, "value", strconv.Itoa(reg.Grade))
	setChecked(v.laude, reg.Laude)

	studentID := reg.StudentID
	frag.On(v.form, dom.EventSubmit, func(ctx context.Context, ev dom.Event) {
		grade, err := strconv.Atoi(strings.TrimSpace(ev.Value("grade")))
		if err != nil {
			p.env.View.Do(func() { showErrors(v.errorBox, MsgGradeNotNumber) })
			return
		}
		eval := model.ExamEvaluation{
			StudentID: studentID,
			Result:    model.ExamResult(ev.Value("examResult")),
			Grade:     grade,
			Laude:     ev.Checked("laude"),
		}
		check := exam.Validate(eval)
		p.env.View.Do(func() { showErrors(v.errorBox, check.Errors...) })
		if !check.Valid {
			return
		}

		res := p.env.Repo.Professor.EditExamRegistrations(ctx, professorID, examID, []model.ExamEvaluation{eval})
		if res.Failed() || !res.Data {
			report(s.logger(), "edit", res)
			p.env.Nav.RedirectTo(ctx, "./"+itoa(studentID))
			return
		}
		p.env.Nav.NavigateTo(ctx, "..")
	})
}
