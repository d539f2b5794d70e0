package usecases

import (
	"fmt"
	"log/slog"

	"github.com/Vaflel/school-registry/domain"
)

// RegistryService управляет загрузкой, изменением и сохранением реестра
type RegistryService struct {
	repository DatabaseRepository
	db         *domain.Database
}

// NewRegistryService создает новый экземпляр сервиса с пустой базой
func NewRegistryService(repository DatabaseRepository) *RegistryService {
	return &RegistryService{
		repository: repository,
		db:         domain.NewDatabase(),
	}
}

// Open загружает базу из репозитория. При ошибке текущая база не меняется.
func (s *RegistryService) Open() error {
	db, err := s.repository.Load()
	if err != nil {
		return fmt.Errorf("не удалось загрузить базу: %w", err)
	}
	s.db = db
	slog.Info("база загружена",
		"students", len(db.Students), "teachers", len(db.Teachers), "courses", len(db.Courses))
	return nil
}

// Database возвращает текущую базу для прямого изменения
func (s *RegistryService) Database() *domain.Database {
	return s.db
}

// Save сохраняет текущую базу в репозиторий сервиса
func (s *RegistryService) Save() error {
	return s.Export(s.repository)
}

// Export сохраняет текущую базу в другой репозиторий
func (s *RegistryService) Export(repository DatabaseRepository) error {
	if err := repository.Save(s.db); err != nil {
		return fmt.Errorf("не удалось сохранить базу: %w", err)
	}
	return nil
}

// Import читает базу из loader и добавляет её сущности к текущей
func (s *RegistryService) Import(loader DatabaseLoader) error {
	imported, err := loader.Load()
	if err != nil {
		return fmt.Errorf("не удалось импортировать базу: %w", err)
	}
	s.db.Merge(imported)
	slog.Info("импорт завершён", "entities", imported.Len())
	return nil
}

// Enroll записывает студента на курс, обновляя обе стороны связи
func (s *RegistryService) Enroll(studentID, courseID int) error {
	student, ok := s.db.Students[studentID]
	if !ok {
		return fmt.Errorf("студент %d: %w", studentID, domain.ErrNotFound)
	}
	course, ok := s.db.Courses[courseID]
	if !ok {
		return fmt.Errorf("курс %d: %w", courseID, domain.ErrNotFound)
	}

	course.AddStudent(student.ID)
	student.AddCourse(course.ID)
	return nil
}

// AssignTeacher добавляет преподавателю название курса
func (s *RegistryService) AssignTeacher(teacherID, courseID int) error {
	teacher, ok := s.db.Teachers[teacherID]
	if !ok {
		return fmt.Errorf("преподаватель %d: %w", teacherID, domain.ErrNotFound)
	}
	course, ok := s.db.Courses[courseID]
	if !ok {
		return fmt.Errorf("курс %d: %w", courseID, domain.ErrNotFound)
	}

	teacher.AddCourse(course.Name)
	return nil
}

// Validate возвращает несогласованные связи текущей базы
func (s *RegistryService) Validate() []domain.Violation {
	return domain.NewValidator(s.db).Validate()
}

// SeedDemo добавляет демонстрационные данные:
// преподаватель Jane Doe ведёт Math, на курс записаны Clara и Domi.
func (s *RegistryService) SeedDemo() {
	teacher := domain.NewTeacher(1, "Jane Doe", 5)
	s.db.PutTeacher(teacher)

	clara := domain.NewStudent(1, "Clara")
	domi := domain.NewStudent(2, "Domi")
	s.db.PutStudent(clara)
	s.db.PutStudent(domi)

	course := domain.NewCourse(1, "Math")
	s.db.PutCourse(course)

	// Добавляем студентов к курсу
	course.AddStudent(clara.ID)
	course.AddStudent(domi.ID)
	clara.AddCourse(course.ID)
	domi.AddCourse(course.ID)

	// Добавляем курс для учителя по названию курса
	teacher.AddCourse(course.Name)
}
