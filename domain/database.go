package domain

import (
	"errors"
	"sort"
)

// ErrNotFound возвращается, когда сущность с указанным идентификатором отсутствует
var ErrNotFound = errors.New("сущность не найдена")

// Database хранит все сущности реестра в трёх коллекциях по идентификатору.
// Коллекции экспортированы: вызывающий код может менять их напрямую.
type Database struct {
	Students map[int]*Student
	Teachers map[int]*Teacher
	Courses  map[int]*Course
}

// NewDatabase создает пустую базу
func NewDatabase() *Database {
	return &Database{
		Students: make(map[int]*Student),
		Teachers: make(map[int]*Teacher),
		Courses:  make(map[int]*Course),
	}
}

// PutStudent сохраняет студента, при совпадении идентификатора перезаписывает
func (d *Database) PutStudent(s *Student) {
	d.Students[s.ID] = s
}

// PutTeacher сохраняет преподавателя, при совпадении идентификатора перезаписывает
func (d *Database) PutTeacher(t *Teacher) {
	d.Teachers[t.ID] = t
}

// PutCourse сохраняет курс, при совпадении идентификатора перезаписывает
func (d *Database) PutCourse(c *Course) {
	d.Courses[c.ID] = c
}

// Put сохраняет сущность любого типа в соответствующую коллекцию
func (d *Database) Put(e Entity) {
	switch v := e.(type) {
	case *Student:
		d.PutStudent(v)
	case *Teacher:
		d.PutTeacher(v)
	case *Course:
		d.PutCourse(v)
	}
}

// Len возвращает общее количество сущностей
func (d *Database) Len() int {
	return len(d.Students) + len(d.Teachers) + len(d.Courses)
}

// SortedStudents возвращает студентов по возрастанию идентификатора
func (d *Database) SortedStudents() []*Student {
	result := make([]*Student, 0, len(d.Students))
	for _, s := range d.Students {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// SortedTeachers возвращает преподавателей по возрастанию идентификатора
func (d *Database) SortedTeachers() []*Teacher {
	result := make([]*Teacher, 0, len(d.Teachers))
	for _, t := range d.Teachers {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// SortedCourses возвращает курсы по возрастанию идентификатора
func (d *Database) SortedCourses() []*Course {
	result := make([]*Course, 0, len(d.Courses))
	for _, c := range d.Courses {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Entities возвращает все сущности в порядке сохранения:
// студенты, затем преподаватели, затем курсы, внутри каждой группы по идентификатору.
func (d *Database) Entities() []Entity {
	result := make([]Entity, 0, d.Len())
	for _, s := range d.SortedStudents() {
		result = append(result, s)
	}
	for _, t := range d.SortedTeachers() {
		result = append(result, t)
	}
	for _, c := range d.SortedCourses() {
		result = append(result, c)
	}
	return result
}

// Merge переносит все сущности из other, одинаковые идентификаторы перезаписываются
func (d *Database) Merge(other *Database) {
	for _, e := range other.Entities() {
		d.Put(e)
	}
}
