package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestExam_DecodesDateFormats(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"RFC3339", `{"id":1,"date":"2020-06-15T09:30:00Z"}`, time.Date(2020, 6, 15, 9, 30, 0, 0, time.UTC)},
		{"无时区", `{"id":1,"date":"2020-06-15T09:30:00"}`, time.Date(2020, 6, 15, 9, 30, 0, 0, time.UTC)},
		{"纯日期", `{"id":1,"date":"2020-06-15"}`, time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Exam
			if err := json.Unmarshal([]byte(tt.raw), &e); err != nil {
				t.Fatalf("解码失败: %v", err)
			}
			if e.ID != 1 || !e.Date.Equal(tt.want) {
				t.Errorf("期望 %v，实际 id=%d date=%v", tt.want, e.ID, e.Date)
			}
		})
	}
}

func TestExamCourse_DecodesDateOnly(t *testing.T) {
	var ec ExamCourse
	raw := `{"id":7,"date":"2020-06-15","year":2020,"course":{"id":3,"name":"Analisi"}}`
	if err := json.Unmarshal([]byte(raw), &ec); err != nil {
		t.Fatalf("解码失败: %v", err)
	}
	if ec.Course.Name != "Analisi" || ec.Year != 2020 || ec.Date.Day() != 15 {
		t.Errorf("解码结果不符: %+v", ec)
	}

	var nested CourseExams
	if err := json.Unmarshal([]byte(`{"id":3,"name":"Analisi","exams":[{"id":7,"date":"2020-06-15"}]}`), &nested); err != nil {
		t.Fatalf("嵌套解码失败: %v", err)
	}
	if len(nested.Exams) != 1 || nested.Exams[0].Date.Month() != time.June {
		t.Errorf("嵌套考试日期不符: %+v", nested.Exams)
	}
}

func TestExam_RejectsBadDate(t *testing.T) {
	var e Exam
	if err := json.Unmarshal([]byte(`{"id":1,"date":"15/06/2020"}`), &e); err == nil {
		t.Error("无法识别的日期格式应解码失败")
	}
}
