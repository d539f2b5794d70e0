// Package web предоставляет веб-интерфейс для просмотра и изменения реестра
package web

import (
	"bytes"
	"embed"
	"html/template"
	"strconv"
	"strings"

	"github.com/Vaflel/school-registry/domain"
)

//go:embed templates/index.html static/*
var templates embed.FS

// EntityRow представляет одну строку таблицы сущностей
type EntityRow struct {
	ID    int    // Идентификатор
	Name  string // Имя или название
	Extra string // Стаж преподавателя, для остальных пусто
	Links string // Связанные курсы или студенты через пробел
	Line  string // Текстовое представление, как в файле базы
}

// TemplateData содержит все данные, необходимые для отображения реестра
type TemplateData struct {
	Students   []EntityRow
	Teachers   []EntityRow
	Courses    []EntityRow
	Violations []domain.Violation
}

// RenderRegistry генерирует HTML-представление реестра и найденных нарушений
func RenderRegistry(db *domain.Database, violations []domain.Violation) (string, error) {
	data := prepareTemplateData(db, violations)

	const registryTemplate = `
		<h2>Студенты</h2>
		<table class="registry-table" id="students">
			<tr><th>Id</th><th>Имя</th><th>Курсы</th></tr>
			{{range .Students}}
			<tr title="{{.Line}}"><td>{{.ID}}</td><td>{{.Name}}</td><td>{{if .Links}}{{.Links}}{{else}}-{{end}}</td></tr>
			{{end}}
		</table>
		<h2>Преподаватели</h2>
		<table class="registry-table" id="teachers">
			<tr><th>Id</th><th>Имя</th><th>Стаж</th><th>Курсы</th></tr>
			{{range .Teachers}}
			<tr title="{{.Line}}"><td>{{.ID}}</td><td>{{.Name}}</td><td>{{.Extra}}</td><td>{{if .Links}}{{.Links}}{{else}}-{{end}}</td></tr>
			{{end}}
		</table>
		<h2>Курсы</h2>
		<table class="registry-table" id="courses">
			<tr><th>Id</th><th>Название</th><th>Студенты</th></tr>
			{{range .Courses}}
			<tr title="{{.Line}}"><td>{{.ID}}</td><td>{{.Name}}</td><td>{{if .Links}}{{.Links}}{{else}}-{{end}}</td></tr>
			{{end}}
		</table>
		{{if .Violations}}
		<h2>Несогласованные связи</h2>
		<ul id="violations">
			{{range .Violations}}<li>{{.String}}</li>{{end}}
		</ul>
		{{else}}
		<p id="consistent">Все связи согласованы.</p>
		{{end}}
	`

	tmpl, err := template.New("registry").Parse(registryTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// prepareTemplateData раскладывает базу по строкам таблиц в порядке идентификаторов
func prepareTemplateData(db *domain.Database, violations []domain.Violation) TemplateData {
	data := TemplateData{Violations: violations}

	for _, s := range db.SortedStudents() {
		data.Students = append(data.Students, EntityRow{
			ID:    s.ID,
			Name:  s.Name,
			Links: domain.JoinIDs(s.Courses),
			Line:  s.String(),
		})
	}
	for _, t := range db.SortedTeachers() {
		data.Teachers = append(data.Teachers, EntityRow{
			ID:    t.ID,
			Name:  t.Name,
			Extra: strconv.Itoa(t.Experience),
			Links: strings.Join(t.Courses, " "),
			Line:  t.String(),
		})
	}
	for _, c := range db.SortedCourses() {
		data.Courses = append(data.Courses, EntityRow{
			ID:    c.ID,
			Name:  c.Name,
			Links: domain.JoinIDs(c.Students),
			Line:  c.String(),
		})
	}

	return data
}
