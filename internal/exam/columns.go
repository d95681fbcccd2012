package exam

import (
	"cmp"
	"slices"
	"sort"
	"strings"

	"exam-portal/web/internal/model"
)

// Column 可排序的表格列：名称、规范顺序比较器与当前方向
type Column struct {
	Name      string
	Compare   func(a, b *model.ExamRegistrationCareer) int
	Ascending bool
}

// 列名
const (
	ColStudentID = "Student ID"
	ColName      = "Name"
	ColSurname   = "Surname"
	ColEmail     = "Email"
	ColMajor     = "Major"
	ColStatus    = "Status"
	ColGrade     = "Grade"
)

// DefaultColumns 报名表格的全部列；每次调用返回新的实例，方向状态互不影响
func DefaultColumns() []*Column {
	return []*Column{
		{Name: ColStudentID, Compare: func(a, b *model.ExamRegistrationCareer) int {
			return cmp.Compare(a.StudentID, b.StudentID)
		}},
		{Name: ColName, Compare: func(a, b *model.ExamRegistrationCareer) int {
			return strings.Compare(a.Career.User.Name, b.Career.User.Name)
		}},
		{Name: ColSurname, Compare: func(a, b *model.ExamRegistrationCareer) int {
			return strings.Compare(a.Career.User.Surname, b.Career.User.Surname)
		}},
		{Name: ColEmail, Compare: func(a, b *model.ExamRegistrationCareer) int {
			return strings.Compare(a.Career.User.Email, b.Career.User.Email)
		}},
		{Name: ColMajor, Compare: func(a, b *model.ExamRegistrationCareer) int {
			return strings.Compare(a.Career.Major, b.Career.Major)
		}},
		{Name: ColStatus, Compare: func(a, b *model.ExamRegistrationCareer) int {
			return cmp.Compare(StatusRank(a.Status), StatusRank(b.Status))
		}},
		{Name: ColGrade, Compare: compareGrade},
	}
}

// 结果权重相同时依次比较分数与 laude
func compareGrade(a, b *model.ExamRegistrationCareer) int {
	if c := cmp.Compare(ResultRank(a.Result), ResultRank(b.Result)); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Grade, b.Grade); c != 0 {
		return c
	}
	return cmp.Compare(boolRank(a.Laude), boolRank(b.Laude))
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// FindColumn 按名称查找列
func FindColumn(cols []*Column, name string) *Column {
	for _, c := range cols {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// SortRegistrations 按列的规范顺序稳定排序；降序时整体反转排序结果，
// 相等元素的相对顺序随之反转。col 为 nil 时保持原顺序。
func SortRegistrations(rows []model.ExamRegistrationCareer, col *Column) {
	if col == nil {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return col.Compare(&rows[i], &rows[j]) < 0
	})
	if !col.Ascending {
		slices.Reverse(rows)
	}
}
