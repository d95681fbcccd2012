package exam

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"exam-portal/web/internal/model"
)

func reg(id int64, name string, status model.ExamStatus, result model.ExamResult, grade int, laude bool) model.ExamRegistrationCareer {
	return model.ExamRegistrationCareer{
		ExamRegistration: model.ExamRegistration{StudentID: id, Status: status, Result: result, Grade: grade, Laude: laude},
		Career:           model.StudentCareer{ID: id, User: model.User{Name: name}},
	}
}

func ids(rows []model.ExamRegistrationCareer) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.StudentID
	}
	return out
}

func TestSortRegistrations_ToggleReversesWithoutTies(t *testing.T) {
	rows := []model.ExamRegistrationCareer{
		reg(3, "Carla", model.StatusInserted, model.ResultPassed, 24, false),
		reg(1, "Anna", model.StatusInserted, model.ResultPassed, 28, false),
		reg(2, "Bruno", model.StatusInserted, model.ResultPassed, 30, true),
	}
	col := FindColumn(DefaultColumns(), ColName)

	col.Ascending = true
	SortRegistrations(rows, col)
	asc := ids(rows)

	col.Ascending = false
	SortRegistrations(rows, col)
	desc := ids(rows)

	if diff := cmp.Diff([]int64{1, 2, 3}, asc); diff != "" {
		t.Errorf("升序不符 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{3, 2, 1}, desc); diff != "" {
		t.Errorf("降序应为升序的逆序 (-want +got):\n%s", diff)
	}
}

func TestSortRegistrations_DescendingReversesTiedBlocks(t *testing.T) {
	// 10 和 11 状态相同，升序时保持输入顺序，降序时整体反转
	rows := []model.ExamRegistrationCareer{
		reg(10, "A", model.StatusPublished, model.ResultPassed, 20, false),
		reg(20, "B", model.StatusNotInserted, model.ResultEmpty, 0, false),
		reg(11, "C", model.StatusPublished, model.ResultPassed, 25, false),
	}
	col := FindColumn(DefaultColumns(), ColStatus)

	col.Ascending = true
	SortRegistrations(rows, col)
	if diff := cmp.Diff([]int64{20, 10, 11}, ids(rows)); diff != "" {
		t.Errorf("升序不符 (-want +got):\n%s", diff)
	}

	col.Ascending = false
	SortRegistrations(rows, col)
	if diff := cmp.Diff([]int64{11, 10, 20}, ids(rows)); diff != "" {
		t.Errorf("降序应反转整段（含相等块）(-want +got):\n%s", diff)
	}
}

func TestCompareGrade_TieBreaks(t *testing.T) {
	rows := []model.ExamRegistrationCareer{
		reg(1, "", model.StatusInserted, model.ResultPassed, 30, true),
		reg(2, "", model.StatusInserted, model.ResultPassed, 30, false),
		reg(3, "", model.StatusInserted, model.ResultPassed, 27, false),
		reg(4, "", model.StatusInserted, model.ResultAbsent, 0, false),
	}
	col := FindColumn(DefaultColumns(), ColGrade)
	col.Ascending = true
	SortRegistrations(rows, col)

	if diff := cmp.Diff([]int64{4, 3, 2, 1}, ids(rows)); diff != "" {
		t.Errorf("成绩列排序不符 (-want +got):\n%s", diff)
	}
}

func TestSortRegistrations_NilColumnKeepsOrder(t *testing.T) {
	rows := []model.ExamRegistrationCareer{reg(2, "", "", "", 0, false), reg(1, "", "", "", 0, false)}
	SortRegistrations(rows, nil)
	if diff := cmp.Diff([]int64{2, 1}, ids(rows)); diff != "" {
		t.Errorf("无排序列时应保持原顺序 (-want +got):\n%s", diff)
	}
}

func TestDefaultColumns_Independent(t *testing.T) {
	a, b := DefaultColumns(), DefaultColumns()
	a[0].Ascending = true
	if b[0].Ascending {
		t.Error("不同实例的列方向不应共享")
	}
	if FindColumn(a, "missing") != nil {
		t.Error("不存在的列应返回 nil")
	}
}
