package domain

import (
	"fmt"
	"slices"
	"sort"
)

const (
	ViolationMissingCourse     = "Курс не найден"
	ViolationMissingStudent    = "Студент не найден"
	ViolationUnmirroredCourse  = "Курс не содержит студента"
	ViolationUnmirroredStudent = "Студент не содержит курс"
	ViolationUnknownLesson     = "Неизвестное название курса"
)

// Violation описывает несогласованную связь между сущностями
type Violation struct {
	Kind     Kind   // тип сущности, у которой найдена проблема
	EntityID int    // идентификатор этой сущности
	Type     string // одна из констант Violation*
	Ref      string // ссылка, на которой обнаружена проблема
}

// NewViolation создает новое нарушение
func NewViolation(kind Kind, entityID int, violationType, ref string) Violation {
	return Violation{
		Kind:     kind,
		EntityID: entityID,
		Type:     violationType,
		Ref:      ref,
	}
}

// String возвращает нарушение в одну строку для логов
func (v Violation) String() string {
	return fmt.Sprintf("%s %d: %s (%s)", v.Kind, v.EntityID, v.Type, v.Ref)
}

// Validator ищет односторонние и висячие связи.
// Ничего не исправляет, только сообщает.
type Validator struct {
	db *Database
}

// NewValidator создаёт новый Validator
func NewValidator(db *Database) *Validator {
	return &Validator{db: db}
}

func (v *Validator) Validate() []Violation {
	violations := []Violation{}
	violations = append(violations, v.validateStudents()...)
	violations = append(violations, v.validateCourses()...)
	violations = append(violations, v.validateTeachers()...)

	kindOrder := map[Kind]int{KindStudent: 0, KindTeacher: 1, KindCourse: 2}
	sort.SliceStable(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if a.Kind != b.Kind {
			return kindOrder[a.Kind] < kindOrder[b.Kind]
		}
		if a.EntityID != b.EntityID {
			return a.EntityID < b.EntityID
		}
		return a.Type < b.Type
	})
	return violations
}

// validateStudents проверяет, что каждый курс студента существует и знает о нём
func (v *Validator) validateStudents() []Violation {
	violations := []Violation{}
	for _, student := range v.db.SortedStudents() {
		for _, courseID := range student.Courses {
			ref := fmt.Sprintf("course %d", courseID)
			course, ok := v.db.Courses[courseID]
			if !ok {
				violations = append(violations, NewViolation(KindStudent, student.ID, ViolationMissingCourse, ref))
				continue
			}
			if !slices.Contains(course.Students, student.ID) {
				violations = append(violations, NewViolation(KindStudent, student.ID, ViolationUnmirroredCourse, ref))
			}
		}
	}
	return violations
}

// validateCourses проверяет, что каждый студент курса существует и знает о курсе
func (v *Validator) validateCourses() []Violation {
	violations := []Violation{}
	for _, course := range v.db.SortedCourses() {
		for _, studentID := range course.Students {
			ref := fmt.Sprintf("student %d", studentID)
			student, ok := v.db.Students[studentID]
			if !ok {
				violations = append(violations, NewViolation(KindCourse, course.ID, ViolationMissingStudent, ref))
				continue
			}
			if !slices.Contains(student.Courses, course.ID) {
				violations = append(violations, NewViolation(KindCourse, course.ID, ViolationUnmirroredStudent, ref))
			}
		}
	}
	return violations
}

// validateTeachers проверяет названия курсов у преподавателей
func (v *Validator) validateTeachers() []Violation {
	names := make(map[string]struct{}, len(v.db.Courses))
	for _, course := range v.db.Courses {
		names[course.Name] = struct{}{}
	}

	violations := []Violation{}
	for _, teacher := range v.db.SortedTeachers() {
		for _, name := range teacher.Courses {
			if _, ok := names[name]; !ok {
				violations = append(violations, NewViolation(KindTeacher, teacher.ID, ViolationUnknownLesson, name))
			}
		}
	}
	return violations
}
