package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Course 课程
type Course struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Exam 考试场次
type Exam struct {
	ID   int64     `json:"id"`
	Date time.Time `json:"date"`
}

// ExamCourse 考试场次及其所属课程（只读快照）
type ExamCourse struct {
	ID     int64     `json:"id"`
	Date   time.Time `json:"date"`
	Year   int       `json:"year"`
	Course Course    `json:"course"`
}

// CourseExams 课程及其有序考试场次，用于分组表格
type CourseExams struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Exams []Exam `json:"exams"`
}

// dateLayouts 后端日期可接受的格式，无时区时按 UTC
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate 按 dateLayouts 依次解析日期字符串
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("无法解析日期 %q", s)
}

func decodeDate(raw json.RawMessage) (time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, err
	}
	return ParseDate(s)
}

// UnmarshalJSON 宽松解码 date 字段
func (e *Exam) UnmarshalJSON(b []byte) error {
	type alias Exam
	aux := struct {
		*alias
		Date json.RawMessage `json:"date"`
	}{alias: (*alias)(e)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	d, err := decodeDate(aux.Date)
	if err != nil {
		return err
	}
	e.Date = d
	return nil
}

// UnmarshalJSON 宽松解码 date 字段
func (e *ExamCourse) UnmarshalJSON(b []byte) error {
	type alias ExamCourse
	aux := struct {
		*alias
		Date json.RawMessage `json:"date"`
	}{alias: (*alias)(e)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	d, err := decodeDate(aux.Date)
	if err != nil {
		return err
	}
	e.Date = d
	return nil
}
