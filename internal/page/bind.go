package page

import (
	"strconv"
	"time"

	"golang.org/x/net/html"

	"exam-portal/web/internal/exam"
	"exam-portal/web/internal/model"
	"exam-portal/web/pkg/dom"
)

const (
	dateLayout     = "2 January 2006"
	dateTimeLayout = "2 January 2006, 15:04:05"
	linkSymbol     = "➡"
)

// binder 按 id 取出片段中的元素，记录第一个缺失的元素
type binder struct {
	frag *dom.Fragment
	err  error
}

func (b *binder) el(id string) *html.Node {
	if b.err != nil {
		return nil
	}
	n, err := b.frag.MustElement(id)
	if err != nil {
		b.err = err
	}
	return n
}

// examTabView 考试信息表
type examTabView struct {
	courseID   *html.Node
	courseName *html.Node
	examID     *html.Node
	examDate   *html.Node
}

func bindExamTab(f *dom.Fragment) (*examTabView, error) {
	b := &binder{frag: f}
	v := &examTabView{
		courseID:   b.el("course_id"),
		courseName: b.el("course_name"),
		examID:     b.el("exam_id"),
		examDate:   b.el("exam_date"),
	}
	return v, b.err
}

func (v *examTabView) fill(e *model.ExamCourse) {
	dom.SetText(v.courseID, itoa(e.Course.ID))
	dom.SetText(v.courseName, e.Course.Name)
	dom.SetText(v.examID, itoa(e.ID))
	dom.SetText(v.examDate, formatDate(e.Date))
}

type loginView struct {
	form     *html.Node
	errorBox *html.Node
}

func bindLogin(f *dom.Fragment) (*loginView, error) {
	b := &binder{frag: f}
	v := &loginView{form: b.el("loginForm"), errorBox: b.el("login_error")}
	return v, b.err
}

type careersView struct {
	tbody *html.Node
}

func bindCareers(f *dom.Fragment) (*careersView, error) {
	b := &binder{frag: f}
	v := &careersView{tbody: b.el("careers_tbody")}
	return v, b.err
}

type examsView struct {
	tbody        *html.Node
	yearForm     *html.Node
	year         *html.Node
	calendarLink *html.Node
}

func bindExams(f *dom.Fragment) (*examsView, error) {
	b := &binder{frag: f}
	v := &examsView{
		tbody:        b.el("exams_tbody"),
		yearForm:     b.el("year_form"),
		year:         b.el("year"),
		calendarLink: b.el("calendar_link"),
	}
	return v, b.err
}

type evaluationView struct {
	status     *html.Node
	grade      *html.Node
	rejectForm *html.Node
}

func bindEvaluation(f *dom.Fragment) (*evaluationView, error) {
	b := &binder{frag: f}
	v := &evaluationView{
		status:     b.el("registration_status"),
		grade:      b.el("registration_grade"),
		rejectForm: b.el("reject_form"),
	}
	return v, b.err
}

type singleEditView struct {
	studentID  *html.Node
	personCode *html.Node
	name       *html.Node
	surname    *html.Node
	form       *html.Node
	result     *html.Node
	grade      *html.Node
	laude      *html.Node
	errorBox   *html.Node
}

func bindSingleEdit(f *dom.Fragment) (*singleEditView, error) {
	b := &binder{frag: f}
	v := &singleEditView{
		studentID:  b.el("student_id"),
		personCode: b.el("person_code"),
		name:       b.el("name"),
		surname:    b.el("surname"),
		form:       b.el("edit_form"),
		result:     b.el("examResult"),
		grade:      b.el("grade"),
		laude:      b.el("laude"),
		errorBox:   b.el("edit_error"),
	}
	return v, b.err
}

type registrationsView struct {
	headers         *html.Node
	tbody           *html.Node
	multiTBody      *html.Node
	exportLink      *html.Node
	publishSubmit   *html.Node
	verbalizeSubmit *html.Node
	multiForm       *html.Node
	errorBox        *html.Node
}

func bindRegistrations(f *dom.Fragment) (*registrationsView, error) {
	b := &binder{frag: f}
	v := &registrationsView{
		headers:         b.el("registrations_headers_trow"),
		tbody:           b.el("registrations_tbody"),
		multiTBody:      b.el("multiinsert_tbody"),
		exportLink:      b.el("export_link"),
		publishSubmit:   b.el("publish_submit"),
		verbalizeSubmit: b.el("verbalize_submit"),
		multiForm:       b.el("multiinsert_form"),
		errorBox:        b.el("edit_error"),
	}
	return v, b.err
}

type recordsView struct {
	tbody *html.Node
}

func bindRecords(f *dom.Fragment) (*recordsView, error) {
	b := &binder{frag: f}
	v := &recordsView{tbody: b.el("records_tbody")}
	return v, b.err
}

// resultOptions 结果下拉框选项，当前结果预选
func resultOptions(sel *html.Node, current model.ExamResult) {
	dom.RemoveChildren(sel)
	for _, r := range exam.AllResults {
		opt := dom.Element("option", "value", string(r))
		dom.SetText(opt, exam.ResultString(r))
		if r == current {
			dom.SetAttr(opt, "selected", "selected")
		}
		dom.Append(sel, opt)
	}
}

func setChecked(input *html.Node, checked bool) {
	if checked {
		dom.SetAttr(input, "checked", "checked")
	} else {
		dom.DelAttr(input, "checked")
	}
}

// showErrors 用错误文本替换错误区，每条一个段落
func showErrors(box *html.Node, msgs ...string) {
	dom.RemoveChildren(box)
	appendErrors(box, msgs...)
}

func appendErrors(box *html.Node, msgs ...string) {
	for _, msg := range msgs {
		p := dom.Element("p")
		dom.SetText(p, msg)
		dom.Append(box, p)
	}
}

// groupCell 分组表格的首行表头（跨行）
func groupCell(tr *html.Node, text string, rows, group int) {
	th := dom.Element("th", "rowspan", strconv.Itoa(rows), "class", parity(group))
	dom.SetText(th, text)
	dom.Append(tr, th)
}

func textCell(tr *html.Node, text string) *html.Node {
	td := dom.InsertCell(tr)
	dom.SetText(td, text)
	return td
}

func linkCell(tr *html.Node, href string) {
	a := dom.Element("a", "class", "symbol data-link", "href", href)
	dom.SetText(a, linkSymbol)
	dom.Append(dom.InsertCell(tr), a)
}

func parity(i int) string {
	if i%2 == 1 {
		return "odd"
	}
	return "even"
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
