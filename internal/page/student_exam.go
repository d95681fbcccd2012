package page

import (
	"context"

	"exam-portal/web/internal/exam"
	"exam-portal/web/internal/model"
	"exam-portal/web/internal/repository"
	"exam-portal/web/pkg/dom"
)

// 考试页面的回退路由：学籍入口（跳转到当前年份）
const careerRoot = "../.."

// StudentExamRegistrationPage 学生的考试报名页：先渲染考试信息，再追加报名状态
type StudentExamRegistrationPage struct {
	env *Env
}

func (p *StudentExamRegistrationPage) Show(ctx context.Context, params Params) Outcome {
	s := begin(p.env, "Exam Registration")

	id, err := params.ID("id")
	if err != nil {
		return s.fail(ctx, err, careerRoot)
	}
	examID, err := params.ID("examId")
	if err != nil {
		return s.fail(ctx, err, careerRoot)
	}

	// 第一阶段：考试信息
	frag, ec, err := fetchPair(ctx, p.env, "exam_tab", func(ctx context.Context) repository.Result[*model.ExamCourse] {
		return p.env.Repo.Student.GetExam(ctx, id, examID)
	})
	if err == nil {
		err = fillExamTab(frag, ec)
	}
	if err != nil {
		return s.fail(ctx, err, careerRoot)
	}
	if out := s.commit(frag); out != Rendered {
		return out
	}
	s.backLink("Exams", "../../"+itoa(int64(ec.Year)))

	// 第二阶段：报名状态
	regFrag, err := p.registration(ctx, s, id, examID)
	if err != nil {
		return s.fail(ctx, err, careerRoot)
	}
	return s.append(regFrag)
}

func fillExamTab(frag *dom.Fragment, ec *model.ExamCourse) error {
	if ec == nil {
		return ErrNoData
	}
	v, err := bindExamTab(frag)
	if err != nil {
		return err
	}
	v.fill(ec)
	return nil
}

// registration 按报名状态选择三种视图之一
func (p *StudentExamRegistrationPage) registration(ctx context.Context, s *shell, id, examID int64) (*dom.Fragment, error) {
	res := p.env.Repo.Student.GetExamRegistration(ctx, id, examID)
	if res.Failed() {
		return nil, res.Err
	}
	reg := res.Data
	student := p.env.Repo.Student

	switch {
	case reg == nil:
		frag, err := p.env.Templates.Get(ctx, "exam_unregistered")
		if err != nil {
			return nil, err
		}
		form, err := frag.MustElement("register_form")
		if err != nil {
			return nil, err
		}
		frag.On(form, dom.EventSubmit, p.mutation(s, "register", func(ctx context.Context) repository.Result[bool] {
			return student.Register(ctx, id, examID)
		}))
		return frag, nil

	case reg.Result == model.ResultEmpty:
		frag, err := p.env.Templates.Get(ctx, "exam_unpublished")
		if err != nil {
			return nil, err
		}
		form, err := frag.MustElement("deregister_form")
		if err != nil {
			return nil, err
		}
		frag.On(form, dom.EventSubmit, p.mutation(s, "deregister", func(ctx context.Context) repository.Result[bool] {
			return student.Deregister(ctx, id, examID)
		}))
		return frag, nil

	default:
		frag, err := p.env.Templates.Get(ctx, "exam_evaluation")
		if err != nil {
			return nil, err
		}
		v, err := bindEvaluation(frag)
		if err != nil {
			return nil, err
		}
		dom.SetText(v.status, exam.StatusString(reg.Status))
		dom.SetText(v.grade, exam.GradeString(reg.ResultRepresentation))
		if reg.Status == model.StatusPublished && reg.Result == model.ResultPassed {
			frag.On(v.rejectForm, dom.EventSubmit, p.mutation(s, "reject", func(ctx context.Context) repository.Result[bool] {
				return student.Reject(ctx, id, examID)
			}))
		} else {
			dom.Remove(v.rejectForm)
		}
		return frag, nil
	}
}

// mutation 执行变更后重新加载本页面
func (p *StudentExamRegistrationPage) mutation(s *shell, op string, call func(context.Context) repository.Result[bool]) dom.Handler {
	return func(ctx context.Context, _ dom.Event) {
		report(s.logger(), op, call(ctx))
		p.env.Nav.RedirectTo(ctx, "")
	}
}
