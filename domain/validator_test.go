package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateConsistentDatabase(t *testing.T) {
	db := NewDatabase()
	clara := NewStudent(1, "Clara")
	math := NewCourse(1, "Math")
	jane := NewTeacher(1, "Jane", 5)
	clara.AddCourse(math.ID)
	math.AddStudent(clara.ID)
	jane.AddCourse(math.Name)
	db.PutStudent(clara)
	db.PutCourse(math)
	db.PutTeacher(jane)

	assert.Empty(t, NewValidator(db).Validate())
}

func TestValidateReportsBrokenLinks(t *testing.T) {
	db := NewDatabase()

	clara := NewStudent(1, "Clara")
	clara.AddCourse(1) // курс не знает о Кларе
	clara.AddCourse(9) // курса нет
	db.PutStudent(clara)

	math := NewCourse(1, "Math")
	math.AddStudent(2) // студент не знает о курсе
	math.AddStudent(3) // студента нет
	db.PutCourse(math)
	db.PutStudent(NewStudent(2, "Domi"))

	jane := NewTeacher(4, "Jane", 5)
	jane.AddCourse("Chemistry")
	db.PutTeacher(jane)

	violations := NewValidator(db).Validate()

	assert.Equal(t, []Violation{
		NewViolation(KindStudent, 1, ViolationMissingCourse, "course 9"),
		NewViolation(KindStudent, 1, ViolationUnmirroredCourse, "course 1"),
		NewViolation(KindTeacher, 4, ViolationUnknownLesson, "Chemistry"),
		NewViolation(KindCourse, 1, ViolationMissingStudent, "student 3"),
		NewViolation(KindCourse, 1, ViolationUnmirroredStudent, "student 2"),
	}, violations)
}
