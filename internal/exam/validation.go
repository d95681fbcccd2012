package exam

import "exam-portal/web/internal/model"

const (
	passingGrade = 18
	maxGrade     = 30
)

// 校验错误文本（直接展示给用户）
const (
	MsgEmptyGrade  = "Grade should be 0 with EMPTY exam"
	MsgAbsentGrade = "Grade should be 0 on ABSENT student"
	MsgPassGrade   = "Grade should be greater than 18 on PASSED exam"
	MsgLaudeGrade  = "Laude cannot be given with a grade lower than 30"
)

// Check 单条成绩的校验结果
type Check struct {
	Valid  bool
	Errors []string
}

// Validate 校验一条成绩编辑，收集全部违规项而不是遇错即停。
// 成绩上限 30 不在此处校验。
func Validate(eval model.ExamEvaluation) Check {
	check := Check{Valid: true}
	fail := func(msg string) {
		check.Valid = false
		check.Errors = append(check.Errors, msg)
	}

	switch eval.Result {
	case model.ResultEmpty:
		if eval.Grade != 0 {
			fail(MsgEmptyGrade)
		}
	case model.ResultAbsent:
		if eval.Grade != 0 {
			fail(MsgAbsentGrade)
		}
	case model.ResultPassed:
		if eval.Grade < passingGrade {
			fail(MsgPassGrade)
		}
	}

	// laude 独立于结果校验
	if eval.Laude && eval.Grade != maxGrade {
		fail(MsgLaudeGrade)
	}

	return check
}

// StudentErrors 某个学生的全部校验错误
type StudentErrors struct {
	StudentID int64
	Errors    []string
}

// BatchCheck 批量校验结果；任意一行失败则整体无效
type BatchCheck struct {
	Valid  bool
	Failed []StudentErrors
}

// ValidateBatch 逐行校验，按输入顺序按学生分组返回错误
func ValidateBatch(evals []model.ExamEvaluation) BatchCheck {
	batch := BatchCheck{Valid: true}
	for _, eval := range evals {
		check := Validate(eval)
		if check.Valid {
			continue
		}
		batch.Valid = false
		batch.Failed = append(batch.Failed, StudentErrors{
			StudentID: eval.StudentID,
			Errors:    check.Errors,
		})
	}
	return batch
}
