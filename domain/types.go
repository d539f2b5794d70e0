package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind обозначает тип сущности реестра
type Kind string

const (
	KindStudent Kind = "student"
	KindTeacher Kind = "teacher"
	KindCourse  Kind = "course"
)

// Entity — общий контракт для студента, преподавателя и курса.
// Кроме идентификатора и текстового представления ничего общего у них нет.
type Entity interface {
	EntityID() int
	Kind() Kind
	String() string
}

// Student содержит информацию о студенте и идентификаторы его курсов
type Student struct {
	ID      int    `yaml:"id"`
	Name    string `yaml:"name"`
	Courses []int  `yaml:"courses"`
}

// NewStudent создает студента без курсов
func NewStudent(id int, name string) *Student {
	return &Student{
		ID:      id,
		Name:    name,
		Courses: []int{},
	}
}

func (s *Student) EntityID() int { return s.ID }
func (s *Student) Kind() Kind { return KindStudent }

// AddCourse добавляет идентификатор курса без каких-либо проверок
func (s *Student) AddCourse(courseID int) {
	s.Courses = append(s.Courses, courseID)
}

// String возвращает строку вида "Student Id = 1, Name = Clara, Courses = 1 2"
func (s *Student) String() string {
	return fmt.Sprintf("Student Id = %d, Name = %s, Courses = %s", s.ID, s.Name, JoinIDs(s.Courses))
}

// Teacher содержит информацию о преподавателе.
// Курсы хранятся по названию, а не по идентификатору.
type Teacher struct {
	ID         int      `yaml:"id"`
	Name       string   `yaml:"name"`
	Experience int      `yaml:"experience"`
	Courses    []string `yaml:"courses"`
}

// NewTeacher создает преподавателя без курсов
func NewTeacher(id int, name string, experience int) *Teacher {
	return &Teacher{
		ID:         id,
		Name:       name,
		Experience: experience,
		Courses:    []string{},
	}
}

func (t *Teacher) EntityID() int { return t.ID }
func (t *Teacher) Kind() Kind { return KindTeacher }

// AddCourse добавляет название курса
func (t *Teacher) AddCourse(courseName string) {
	t.Courses = append(t.Courses, courseName)
}

// String возвращает строку вида "Teacher Id = 1, Exp = 5, Name = Jane Doe, Lesson = Math"
func (t *Teacher) String() string {
	return fmt.Sprintf("Teacher Id = %d, Exp = %d, Name = %s, Lesson = %s",
		t.ID, t.Experience, t.Name, strings.Join(t.Courses, " "))
}

// Course содержит информацию о курсе и идентификаторы записанных студентов
type Course struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	Students []int  `yaml:"students"`
}

// NewCourse создает курс без студентов
func NewCourse(id int, name string) *Course {
	return &Course{
		ID:       id,
		Name:     name,
		Students: []int{},
	}
}

func (c *Course) EntityID() int { return c.ID }
func (c *Course) Kind() Kind { return KindCourse }

// AddStudent добавляет идентификатор студента без каких-либо проверок
func (c *Course) AddStudent(studentID int) {
	c.Students = append(c.Students, studentID)
}

// String возвращает строку вида "Course Id = 1, Name = Math, Course = 1 2"
func (c *Course) String() string {
	return fmt.Sprintf("Course Id = %d, Name = %s, Course = %s", c.ID, c.Name, JoinIDs(c.Students))
}

// JoinIDs соединяет идентификаторы через пробел
func JoinIDs(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
