package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabasePutLastWriteWins(t *testing.T) {
	db := NewDatabase()
	db.PutStudent(NewStudent(1, "Clara"))
	db.PutStudent(NewStudent(1, "Domi"))

	require.Len(t, db.Students, 1)
	assert.Equal(t, "Domi", db.Students[1].Name)
}

func TestDatabaseEntitiesOrder(t *testing.T) {
	db := NewDatabase()
	db.Put(NewCourse(2, "Physics"))
	db.Put(NewStudent(5, "Eve"))
	db.Put(NewCourse(1, "Math"))
	db.Put(NewTeacher(9, "Jane", 5))
	db.Put(NewStudent(2, "Domi"))

	var got []string
	for _, e := range db.Entities() {
		got = append(got, e.String())
	}

	assert.Equal(t, []string{
		"Student Id = 2, Name = Domi, Courses = ",
		"Student Id = 5, Name = Eve, Courses = ",
		"Teacher Id = 9, Exp = 5, Name = Jane, Lesson = ",
		"Course Id = 1, Name = Math, Course = ",
		"Course Id = 2, Name = Physics, Course = ",
	}, got)
	assert.Equal(t, 5, db.Len())
}

func TestDatabaseMerge(t *testing.T) {
	db := NewDatabase()
	db.PutStudent(NewStudent(1, "Clara"))
	db.PutCourse(NewCourse(1, "Math"))

	other := NewDatabase()
	other.PutStudent(NewStudent(1, "Clarissa"))
	other.PutTeacher(NewTeacher(1, "Jane", 3))

	db.Merge(other)

	assert.Equal(t, "Clarissa", db.Students[1].Name)
	assert.Contains(t, db.Teachers, 1)
	assert.Contains(t, db.Courses, 1)
}
