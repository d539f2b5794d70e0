package infrastructure

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/Vaflel/school-registry/domain"
	"gopkg.in/yaml.v3"
)

// DatabaseSnapshot структура для сохранения базы в YAML
type DatabaseSnapshot struct {
	Students []*domain.Student `yaml:"students"`
	Teachers []*domain.Teacher `yaml:"teachers"`
	Courses  []*domain.Course  `yaml:"courses"`
}

// YAMLDatabaseRepository хранит полный снимок базы в YAML-файле.
// В отличие от текстового файла, снимок читается обратно без потерь.
type YAMLDatabaseRepository struct {
	filename string
	mutex    sync.RWMutex
}

// NewYAMLDatabaseRepository создает новый экземпляр репозитория
func NewYAMLDatabaseRepository(filename string) *YAMLDatabaseRepository {
	return &YAMLDatabaseRepository{
		filename: filename,
	}
}

// Load загружает снимок базы. Отсутствующий файл означает пустую базу.
func (r *YAMLDatabaseRepository) Load() (*domain.Database, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	snapshot, err := r.loadSnapshotUnsafe()
	if err != nil {
		return nil, err
	}

	db := domain.NewDatabase()
	for _, s := range snapshot.Students {
		if s.Courses == nil {
			s.Courses = []int{}
		}
		db.PutStudent(s)
	}
	for _, t := range snapshot.Teachers {
		if t.Courses == nil {
			t.Courses = []string{}
		}
		db.PutTeacher(t)
	}
	for _, c := range snapshot.Courses {
		if c.Students == nil {
			c.Students = []int{}
		}
		db.PutCourse(c)
	}
	return db, nil
}

// Save сохраняет снимок базы, сущности упорядочены по идентификатору
func (r *YAMLDatabaseRepository) Save(db *domain.Database) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.saveSnapshotUnsafe(DatabaseSnapshot{
		Students: db.SortedStudents(),
		Teachers: db.SortedTeachers(),
		Courses:  db.SortedCourses(),
	})
}

// loadSnapshotUnsafe читает снимок без блокировки (внутренний метод)
func (r *YAMLDatabaseRepository) loadSnapshotUnsafe() (DatabaseSnapshot, error) {
	var snapshot DatabaseSnapshot

	data, err := os.ReadFile(r.filename)
	if errors.Is(err, fs.ErrNotExist) {
		return snapshot, nil
	}
	if err != nil {
		return snapshot, fmt.Errorf("не удалось прочитать файл: %w", err)
	}

	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return snapshot, fmt.Errorf("не удалось распарсить YAML: %w", err)
	}
	return snapshot, nil
}

// saveSnapshotUnsafe сохраняет снимок в YAML файл без блокировки (внутренний метод)
func (r *YAMLDatabaseRepository) saveSnapshotUnsafe(snapshot DatabaseSnapshot) error {
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать YAML: %w", err)
	}

	if err := os.WriteFile(r.filename, data, 0644); err != nil {
		return fmt.Errorf("не удалось записать файл: %w", err)
	}
	return nil
}
