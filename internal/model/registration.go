package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// ExamStatus 报名状态：NINS → INS → PUB → RIF | VERB
type ExamStatus string

const (
	StatusNotInserted ExamStatus = "NINS"
	StatusInserted    ExamStatus = "INS"
	StatusPublished   ExamStatus = "PUB"
	StatusRejected    ExamStatus = "RIF"
	StatusVerbalized  ExamStatus = "VERB"
)

// ExamResult 考试结果代码
type ExamResult string

const (
	ResultEmpty     ExamResult = "VUOTO"
	ResultAbsent    ExamResult = "ASS"
	ResultPostponed ExamResult = "RM"
	ResultRetake    ExamResult = "RP"
	ResultPassed    ExamResult = "PASS"
)

// ExamRegistration 学生的考试报名及成绩
type ExamRegistration struct {
	StudentID            int64      `json:"studentId"`
	ExamID               int64      `json:"examId"`
	Status               ExamStatus `json:"status"`
	Result               ExamResult `json:"result"`
	Grade                int        `json:"grade"`
	Laude                bool       `json:"laude"`
	ResultRepresentation string     `json:"resultRepresentation"`
}

// ExamRegistrationCareer 报名记录及学生学籍
type ExamRegistrationCareer struct {
	ExamRegistration
	Career StudentCareer `json:"career"`
}

// ExamRecord 一次归档（verbalization）生成的不可变记录
type ExamRecord struct {
	ID                int64                    `json:"id"`
	Time              time.Time                `json:"time"`
	ExamRegistrations []ExamRegistrationCareer `json:"examRegistrations"`
}

// ExamEvaluation 一条待提交的成绩编辑 (studentId, result, grade, laude)
// 线上格式为四元组数组
type ExamEvaluation struct {
	StudentID int64
	Result    ExamResult
	Grade     int
	Laude     bool
}

// MarshalJSON 编码为 [studentId, result, grade, laude]
func (e ExamEvaluation) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.StudentID, e.Result, e.Grade, e.Laude})
}

// UnmarshalJSON 解码四元组数组
func (e *ExamEvaluation) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) != 4 {
		return fmt.Errorf("ExamEvaluation: 期望 4 个元素，实际 %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &e.StudentID); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &e.Result); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[2], &e.Grade); err != nil {
		return err
	}
	return json.Unmarshal(raw[3], &e.Laude)
}
