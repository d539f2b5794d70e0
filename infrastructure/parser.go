package infrastructure

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Vaflel/school-registry/domain"
)

// lineHandler разбирает поля одной строки и кладёт результат в базу
type lineHandler func(db *domain.Database, fields []string) error

// lineHandlers сопоставляет тег в начале строки с обработчиком.
// Строки с другими тегами пропускаются.
var lineHandlers = map[string]lineHandler{
	string(domain.KindStudent): applyStudent,
	string(domain.KindTeacher): applyTeacher,
	string(domain.KindCourse):  applyCourse,
}

// ParseStudent разбирает строку "student <id> <name>"
func ParseStudent(fields []string) (*domain.Student, error) {
	if err := requireFields(fields, 3); err != nil {
		return nil, err
	}
	id, err := parseNumber(fields[1], "id")
	if err != nil {
		return nil, err
	}
	return domain.NewStudent(id, fields[2]), nil
}

// ParseTeacher разбирает строку "teacher <id> <experience> <name>"
func ParseTeacher(fields []string) (*domain.Teacher, error) {
	if err := requireFields(fields, 4); err != nil {
		return nil, err
	}
	id, err := parseNumber(fields[1], "id")
	if err != nil {
		return nil, err
	}
	experience, err := parseNumber(fields[2], "experience")
	if err != nil {
		return nil, err
	}
	return domain.NewTeacher(id, fields[3], experience), nil
}

// ParseCourse разбирает строку "course <id> <name> ...".
// Идентификаторы студентов после названия здесь не читаются, ими занимается LinkCourseStudents.
func ParseCourse(fields []string) (*domain.Course, error) {
	if err := requireFields(fields, 3); err != nil {
		return nil, err
	}
	id, err := parseNumber(fields[1], "id")
	if err != nil {
		return nil, err
	}
	return domain.NewCourse(id, fields[2]), nil
}

// LinkCourseStudents записывает студентов из candidates на курс.
// Студент получает курс только если он уже есть в базе, поэтому строка курса
// должна идти после строк его студентов. Нечисловые и выходящие за int32 значения пропускаются и возвращаются.
func LinkCourseStudents(db *domain.Database, course *domain.Course, candidates []string) []string {
	var skipped []string
	for _, candidate := range candidates {
		studentID, err := parseID(candidate)
		if err != nil {
			skipped = append(skipped, candidate)
			continue
		}
		course.AddStudent(studentID)
		if student, ok := db.Students[studentID]; ok {
			student.AddCourse(course.ID)
		}
	}
	return skipped
}

// ApplyFields выбирает обработчик по первому полю и применяет его.
// Возвращает false, если тег неизвестен: такая строка пропускается без ошибки.
func ApplyFields(db *domain.Database, fields []string) (bool, error) {
	if len(fields) == 0 {
		return false, nil
	}
	handler, ok := lineHandlers[fields[0]]
	if !ok {
		return false, nil
	}
	return true, handler(db, fields)
}

// ApplyLine делит строку по одиночным пробелам и передаёт поля в ApplyFields
func ApplyLine(db *domain.Database, line string) (bool, error) {
	return ApplyFields(db, strings.Split(line, " "))
}

func applyStudent(db *domain.Database, fields []string) error {
	student, err := ParseStudent(fields)
	if err != nil {
		return err
	}
	db.PutStudent(student)
	return nil
}

func applyTeacher(db *domain.Database, fields []string) error {
	teacher, err := ParseTeacher(fields)
	if err != nil {
		return err
	}
	db.PutTeacher(teacher)
	return nil
}

func applyCourse(db *domain.Database, fields []string) error {
	course, err := ParseCourse(fields)
	if err != nil {
		return err
	}
	db.PutCourse(course)

	if skipped := LinkCourseStudents(db, course, fields[3:]); len(skipped) > 0 {
		slog.Debug("пропущены нечисловые идентификаторы студентов",
			"course", course.ID, "values", skipped)
	}
	return nil
}

func requireFields(fields []string, n int) error {
	if len(fields) < n {
		return fmt.Errorf("%w: ожидалось %d, получено %d", ErrMissingField, n, len(fields))
	}
	return nil
}

func parseNumber(value, field string) (int, error) {
	n, err := parseID(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s = %q", ErrInvalidNumber, field, value)
	}
	return n, nil
}

// parseID читает десятичное число в диапазоне int32.
// Значения за пределами диапазона считаются некорректными на любой платформе.
func parseID(value string) (int, error) {
	n, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
