package model

import (
	"encoding/json"
	"testing"
)

func TestExamEvaluation_WireFormat(t *testing.T) {
	eval := ExamEvaluation{StudentID: 42, Result: ResultPassed, Grade: 30, Laude: true}

	b, err := json.Marshal([]ExamEvaluation{eval})
	if err != nil {
		t.Fatalf("Marshal 失败: %v", err)
	}
	if string(b) != `[[42,"PASS",30,true]]` {
		t.Errorf("期望四元组数组，实际=%s", b)
	}
}

func TestExamEvaluation_UnmarshalWrongArity(t *testing.T) {
	var eval ExamEvaluation
	if err := json.Unmarshal([]byte(`[1,"PASS",28]`), &eval); err == nil {
		t.Error("三元组应解码失败")
	}
}

func TestIdentity_Career(t *testing.T) {
	major := "Computer Engineering"
	id := &Identity{Careers: []Career{
		{ID: 1, Role: "student", Major: &major},
		{ID: 2, Role: "professor"},
	}}

	c, ok := id.Career(2)
	if !ok || c.Role != "professor" {
		t.Errorf("期望找到 professor 学籍，实际=%+v ok=%v", c, ok)
	}
	if _, ok := id.Career(3); ok {
		t.Error("不存在的学籍不应被找到")
	}

	var nilID *Identity
	if _, ok := nilID.Career(1); ok {
		t.Error("nil 身份不应有学籍")
	}
}
