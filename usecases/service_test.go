package usecases

import (
	"errors"
	"testing"

	"github.com/Vaflel/school-registry/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepository хранит базу в памяти
type memoryRepository struct {
	db      *domain.Database
	saved   *domain.Database
	loadErr error
	saveErr error
}

func (r *memoryRepository) Load() (*domain.Database, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	if r.db == nil {
		return domain.NewDatabase(), nil
	}
	return r.db, nil
}

func (r *memoryRepository) Save(db *domain.Database) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = db
	return nil
}

func TestOpenAndSave(t *testing.T) {
	db := domain.NewDatabase()
	db.PutStudent(domain.NewStudent(1, "Clara"))
	repo := &memoryRepository{db: db}
	service := NewRegistryService(repo)

	require.NoError(t, service.Open())
	assert.Same(t, db, service.Database())

	require.NoError(t, service.Save())
	assert.Same(t, db, repo.saved)
}

func TestOpenFailureKeepsDatabase(t *testing.T) {
	repo := &memoryRepository{loadErr: errors.New("broken")}
	service := NewRegistryService(repo)
	before := service.Database()
	before.PutStudent(domain.NewStudent(1, "Clara"))

	err := service.Open()

	require.Error(t, err)
	assert.Same(t, before, service.Database())
}

func TestSaveError(t *testing.T) {
	repo := &memoryRepository{saveErr: errors.New("disk full")}
	service := NewRegistryService(repo)

	err := service.Save()
	assert.ErrorContains(t, err, "disk full")
}

func TestEnroll(t *testing.T) {
	service := NewRegistryService(&memoryRepository{})
	db := service.Database()
	db.PutStudent(domain.NewStudent(1, "Clara"))
	db.PutCourse(domain.NewCourse(2, "Math"))

	require.NoError(t, service.Enroll(1, 2))

	assert.Equal(t, []int{2}, db.Students[1].Courses)
	assert.Equal(t, []int{1}, db.Courses[2].Students)
	assert.ErrorIs(t, service.Enroll(9, 2), domain.ErrNotFound)
	assert.ErrorIs(t, service.Enroll(1, 9), domain.ErrNotFound)
}

func TestAssignTeacher(t *testing.T) {
	service := NewRegistryService(&memoryRepository{})
	db := service.Database()
	db.PutTeacher(domain.NewTeacher(1, "Jane", 5))
	db.PutCourse(domain.NewCourse(3, "Physics"))

	require.NoError(t, service.AssignTeacher(1, 3))

	assert.Equal(t, []string{"Physics"}, db.Teachers[1].Courses)
	assert.ErrorIs(t, service.AssignTeacher(2, 3), domain.ErrNotFound)
	assert.ErrorIs(t, service.AssignTeacher(1, 4), domain.ErrNotFound)
}

func TestImportMerges(t *testing.T) {
	service := NewRegistryService(&memoryRepository{})
	service.Database().PutStudent(domain.NewStudent(1, "Clara"))

	imported := domain.NewDatabase()
	imported.PutStudent(domain.NewStudent(2, "Domi"))
	imported.PutCourse(domain.NewCourse(1, "Math"))

	require.NoError(t, service.Import(&memoryRepository{db: imported}))

	assert.Len(t, service.Database().Students, 2)
	assert.Len(t, service.Database().Courses, 1)
}

func TestImportError(t *testing.T) {
	service := NewRegistryService(&memoryRepository{})

	err := service.Import(&memoryRepository{loadErr: errors.New("bad sheet")})
	assert.ErrorContains(t, err, "bad sheet")
}

func TestSeedDemo(t *testing.T) {
	service := NewRegistryService(&memoryRepository{})
	service.SeedDemo()
	db := service.Database()

	var lines []string
	for _, e := range db.Entities() {
		lines = append(lines, e.String())
	}
	assert.Equal(t, []string{
		"Student Id = 1, Name = Clara, Courses = 1",
		"Student Id = 2, Name = Domi, Courses = 1",
		"Teacher Id = 1, Exp = 5, Name = Jane Doe, Lesson = Math",
		"Course Id = 1, Name = Math, Course = 1 2",
	}, lines)
	assert.Empty(t, service.Validate())
}
