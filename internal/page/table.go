package page

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"exam-portal/web/internal/exam"
	"exam-portal/web/internal/model"
	"exam-portal/web/pkg/dom"
)

const (
	arrowUp   = "▲"
	arrowDown = "▼"
)

// RegistrationsTable 可排序、可批量录入的报名表格。
// 持有整页生命周期内的全部报名记录，只在内存中重排与重绘，从不访问数据层。
type RegistrationsTable struct {
	rows    []model.ExamRegistrationCareer
	columns []*exam.Column
	current *exam.Column

	headers    map[string]*html.Node
	tbody      *html.Node
	multiTBody *html.Node
	exportLink *html.Node
	exportBase string
}

// NewRegistrationsTable 以报名记录与表格节点创建控制器；exportBase 为导出链接地址（可为空）
func NewRegistrationsTable(rows []model.ExamRegistrationCareer, tbody, multiTBody, exportLink *html.Node, exportBase string) *RegistrationsTable {
	return &RegistrationsTable{
		rows:       rows,
		columns:    exam.DefaultColumns(),
		headers:    make(map[string]*html.Node),
		tbody:      tbody,
		multiTBody: multiTBody,
		exportLink: exportLink,
		exportBase: exportBase,
	}
}

// BuildHeaders 在表头行中为每一列创建表头，bind 为其挂载点击事件
func (t *RegistrationsTable) BuildHeaders(row *html.Node, bind func(th *html.Node, col *exam.Column)) {
	for _, col := range t.columns {
		th := dom.Element("th", "scope", "col", "id", headerID(col.Name), "class", "sort-header")
		dom.SetText(th, col.Name)
		t.headers[col.Name] = th
		dom.Append(row, th)
		if bind != nil {
			bind(th, col)
		}
	}
	edit := dom.Element("th", "scope", "col")
	dom.SetText(edit, "Edit exam result")
	dom.Append(row, edit)
}

func headerID(name string) string {
	return "col-" + strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// Current 当前排序列，未排序时为 nil
func (t *RegistrationsTable) Current() *exam.Column {
	return t.current
}

// Rows 当前顺序下的报名记录
func (t *RegistrationsTable) Rows() []model.ExamRegistrationCareer {
	return t.rows
}

// ClickHeader 切换列的方向并设为当前排序列，然后重绘
func (t *RegistrationsTable) ClickHeader(name string) bool {
	col := exam.FindColumn(t.columns, name)
	if col == nil {
		return false
	}
	if t.current != nil {
		if th := t.headers[t.current.Name]; th != nil {
			dom.SetText(th, t.current.Name)
		}
	}
	col.Ascending = !col.Ascending
	t.current = col
	if th := t.headers[col.Name]; th != nil {
		dom.SetText(th, col.Name+" "+arrow(col.Ascending))
	}
	t.Render()
	return true
}

func arrow(ascending bool) string {
	if ascending {
		return arrowUp
	}
	return arrowDown
}

// Render 按当前列排序后重建报名表与批量录入表
func (t *RegistrationsTable) Render() {
	exam.SortRegistrations(t.rows, t.current)

	dom.RemoveChildren(t.tbody)
	dom.RemoveChildren(t.multiTBody)
	for i := range t.rows {
		reg := &t.rows[i]
		t.renderRow(reg)
		if reg.Status == model.StatusNotInserted {
			t.renderMultiInsertRow(reg)
		}
	}
	t.updateExportLink()
}

func (t *RegistrationsTable) renderRow(reg *model.ExamRegistrationCareer) {
	tr := dom.InsertRow(t.tbody)
	for _, text := range []string{
		itoa(reg.Career.ID),
		reg.Career.User.Name,
		reg.Career.User.Surname,
		reg.Career.User.Email,
		reg.Career.Major,
		exam.StatusString(reg.Status),
		exam.GradeString(reg.ResultRepresentation),
	} {
		textCell(tr, text)
	}

	switch reg.Status {
	case model.StatusPublished:
		textCell(tr, "Exam result has been published")
	case model.StatusVerbalized:
		textCell(tr, "Exam result has been finalized")
	default:
		linkCell(tr, "reg/"+itoa(reg.StudentID))
	}
}

func (t *RegistrationsTable) renderMultiInsertRow(reg *model.ExamRegistrationCareer) {
	tr := dom.InsertRow(t.multiTBody)
	textCell(tr, itoa(reg.Career.ID))
	textCell(tr, reg.Career.User.Name)
	textCell(tr, reg.Career.User.Surname)

	studentID := itoa(reg.StudentID)
	result := dom.InsertCell(tr)
	sel := dom.Element("select", "name", "examResult", "size", "1")
	resultOptions(sel, reg.Result)
	dom.Append(result, dom.Element("input", "type", "hidden", "name", "studId", "value", studentID), sel)

	dom.Append(dom.InsertCell(tr), dom.Element("input",
		"type", "number", "name", "grade", "min", "0", "max", "30", "value", strconv.Itoa(reg.Grade)))

	laude := dom.Element("input", "type", "checkbox", "name", "laude", "value", studentID)
	setChecked(laude, reg.Laude)
	dom.Append(dom.InsertCell(tr), laude)
}

func (t *RegistrationsTable) updateExportLink() {
	if t.exportLink == nil || t.exportBase == "" {
		return
	}
	href := t.exportBase
	if t.current != nil {
		q := url.Values{}
		q.Set("sort", t.current.Name)
		q.Set("dir", Direction(t.current.Ascending))
		href += "?" + q.Encode()
	}
	dom.SetAttr(t.exportLink, "href", href)
}

// Direction 排序方向的查询参数值
func Direction(ascending bool) string {
	if ascending {
		return "asc"
	}
	return "desc"
}

// Harvest 从批量录入表单的提交值重建成绩编辑。
// 各字段按行顺序对齐；laude 复选框的值是学生 ID，只有勾选的会被提交。
// 只接受表格中仍为 NINS 的学生；空成绩记为 0，无法解析的成绩按学生报告错误。
func (t *RegistrationsTable) Harvest(form url.Values) ([]model.ExamEvaluation, []exam.StudentErrors) {
	ids := form["studId"]
	results := form["examResult"]
	grades := form["grade"]

	pending := make(map[int64]bool, len(t.rows))
	for i := range t.rows {
		if t.rows[i].Status == model.StatusNotInserted {
			pending[t.rows[i].StudentID] = true
		}
	}

	laude := make(map[string]bool, len(form["laude"]))
	for _, v := range form["laude"] {
		laude[v] = true
	}

	var (
		evals  = make([]model.ExamEvaluation, 0, len(ids))
		failed []exam.StudentErrors
	)
	for i, raw := range ids {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil || !pending[id] {
			continue
		}
		eval := model.ExamEvaluation{StudentID: id, Laude: laude[raw]}
		if i < len(results) {
			eval.Result = model.ExamResult(results[i])
		}
		if i < len(grades) {
			grade, ok := parseGrade(grades[i])
			if !ok {
				failed = append(failed, exam.StudentErrors{StudentID: id, Errors: []string{MsgGradeNotNumber}})
				continue
			}
			eval.Grade = grade
		}
		evals = append(evals, eval)
	}
	return evals, failed
}

func parseGrade(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	grade, err := strconv.Atoi(raw)
	return grade, err == nil
}
