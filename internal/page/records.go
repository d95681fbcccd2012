package page

import (
	"context"

	"golang.org/x/sync/errgroup"

	"exam-portal/web/internal/exam"
	"exam-portal/web/internal/model"
	"exam-portal/web/internal/repository"
	"exam-portal/web/pkg/dom"
)

// RecordsPage 考试的归档记录，按记录分组
type RecordsPage struct {
	env *Env
}

func (p *RecordsPage) Show(ctx context.Context, params Params) Outcome {
	s := begin(p.env, "Records")
	s.backLink("Exam Registrations", ".")

	id, err := params.ID("id")
	if err != nil {
		return s.fail(ctx, err, careerRoot)
	}
	examID, err := params.ID("examId")
	if err != nil {
		return s.fail(ctx, err, careerRoot)
	}

	prof := p.env.Repo.Professor
	var tab, records *dom.Fragment
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
		frag, list, err := fetchPair(gctx, p.env, "records", func(ctx context.Context) repository.Result[[]model.ExamRecord] {
			return prof.GetExamRecords(ctx, id, examID)
		})
		if err != nil {
			return err
		}
		v, err := bindRecords(frag)
		if err != nil {
			return err
		}
		fillRecords(v, list)
		records = frag
		return nil
	})
	if err := g.Wait(); err != nil {
		// 回到报名管理页
		return s.fail(ctx, err, ".")
	}
	return s.commit(tab, records)
}

func fillRecords(v *recordsView, records []model.ExamRecord) {
	for i, rec := range records {
		for j, reg := range rec.ExamRegistrations {
			tr := dom.InsertRow(v.tbody)
			if j == 0 {
				n := len(rec.ExamRegistrations)
				groupCell(tr, itoa(rec.ID), n, i)
				groupCell(tr, rec.Time.Format(dateTimeLayout), n, i)
			}
			textCell(tr, itoa(reg.StudentID))
			textCell(tr, reg.Career.User.Name)
			textCell(tr, reg.Career.User.Surname)
			textCell(tr, exam.GradeString(reg.ResultRepresentation))
		}
	}
}
