package exam

import "exam-portal/web/internal/model"

// Info 枚举值的排序权重与展示文本
type Info struct {
	Rank  int
	Label string
}

var statusTable = map[model.ExamStatus]Info{
	model.StatusNotInserted: {Rank: 0, Label: "NOT INSERTED"},
	model.StatusInserted:    {Rank: 1, Label: "INSERTED"},
	model.StatusPublished:   {Rank: 2, Label: "PUBLISHED"},
	model.StatusRejected:    {Rank: 3, Label: "REJECTED"},
	model.StatusVerbalized:  {Rank: 4, Label: "VERBALIZED"},
}

var resultTable = map[model.ExamResult]Info{
	model.ResultEmpty:     {Rank: 0, Label: "EMPTY"},
	model.ResultAbsent:    {Rank: 1, Label: "ABSENT"},
	model.ResultPostponed: {Rank: 2, Label: "POSTPONED"},
	model.ResultRetake:    {Rank: 3, Label: "TO SIT AGAIN"},
	model.ResultPassed:    {Rank: 4, Label: "PASSED"},
}

// AllResults 按权重排列的全部结果代码（下拉框选项顺序）
var AllResults = []model.ExamResult{
	model.ResultEmpty,
	model.ResultAbsent,
	model.ResultPostponed,
	model.ResultRetake,
	model.ResultPassed,
}

// StatusData 查询报名状态信息
func StatusData(s model.ExamStatus) (Info, bool) {
	info, ok := statusTable[s]
	return info, ok
}

// ResultData 查询考试结果信息
func ResultData(r model.ExamResult) (Info, bool) {
	info, ok := resultTable[r]
	return info, ok
}

// StatusRank 状态排序权重，未知状态排在最后
func StatusRank(s model.ExamStatus) int {
	if info, ok := statusTable[s]; ok {
		return info.Rank
	}
	return len(statusTable)
}

// ResultRank 结果排序权重，未知结果排在最后
func ResultRank(r model.ExamResult) int {
	if info, ok := resultTable[r]; ok {
		return info.Rank
	}
	return len(resultTable)
}

// StatusString 状态展示文本，未知状态原样返回
func StatusString(s model.ExamStatus) string {
	if info, ok := statusTable[s]; ok {
		return info.Label
	}
	return string(s)
}

// ResultString 结果展示文本，未知结果原样返回
func ResultString(r model.ExamResult) string {
	if info, ok := resultTable[r]; ok {
		return info.Label
	}
	return string(r)
}

// GradeString 成绩展示文本
// representation 是结果代码时返回其展示文本，否则（如 "28", "30 e lode"）原样返回
func GradeString(representation string) string {
	return ResultString(model.ExamResult(representation))
}
