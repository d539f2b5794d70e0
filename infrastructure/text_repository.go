package infrastructure

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/Vaflel/school-registry/domain"
)

// TextDatabaseRepository хранит базу в построчном текстовом файле.
//
// Формат чтения и формат записи различаются: читаются строки вида
// "student 1 Clara", а записываются строки вида "Student Id = 1, Name = Clara, Courses = ".
// Поэтому сохранённый файл при повторной загрузке даёт пустую базу
// (теги "Student", "Teacher", "Course" не распознаются). Для обратимого сохранения
// есть YAMLDatabaseRepository.
type TextDatabaseRepository struct {
	filename string
	mutex    sync.Mutex
}

// NewTextDatabaseRepository создает новый экземпляр репозитория
func NewTextDatabaseRepository(filename string) *TextDatabaseRepository {
	return &TextDatabaseRepository{
		filename: filename,
	}
}

// Filename возвращает путь к файлу базы
func (r *TextDatabaseRepository) Filename() string {
	return r.filename
}

// Load читает базу из файла. Если файла нет, создаёт пустой и возвращает пустую базу.
// Любая некорректная строка прерывает загрузку целиком.
func (r *TextDatabaseRepository) Load() (*domain.Database, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	file, err := os.Open(r.filename)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(r.filename, nil, 0644); err != nil {
			return nil, fmt.Errorf("не удалось создать файл: %w", err)
		}
		slog.Info("файл базы не найден, создан пустой", "file", r.filename)
		return domain.NewDatabase(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл: %w", err)
	}
	defer file.Close()

	return decodeLines(file, r.filename)
}

// Save перезаписывает файл: студенты, затем преподаватели, затем курсы,
// каждая группа по возрастанию идентификатора.
func (r *TextDatabaseRepository) Save(db *domain.Database) (err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	file, err := os.Create(r.filename)
	if err != nil {
		return fmt.Errorf("не удалось открыть файл для записи: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("не удалось закрыть файл: %w", cerr)
		}
	}()

	if err := encodeLines(file, db); err != nil {
		return fmt.Errorf("не удалось записать файл: %w", err)
	}
	return nil
}

// decodeLines разбирает строки в новую базу. При ошибке база не возвращается.
// Длина строки не ограничена: у курса может быть сколько угодно студентов.
func decodeLines(rd io.Reader, source string) (*domain.Database, error) {
	db := domain.NewDatabase()
	reader := bufio.NewReader(rd)

	lineNumber := 0
	for {
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("не удалось прочитать файл: %w", readErr)
		}
		if raw == "" && readErr != nil {
			break
		}

		lineNumber++
		line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
		if line != "" {
			applied, err := ApplyLine(db, line)
			if err != nil {
				return nil, &ParseError{Source: source, Line: lineNumber, Text: line, Err: err}
			}
			if !applied {
				slog.Debug("пропущена строка с неизвестным тегом", "file", source, "line", lineNumber)
			}
		}

		// Последняя строка без перевода строки
		if readErr != nil {
			break
		}
	}

	return db, nil
}

func encodeLines(w io.Writer, db *domain.Database) error {
	writer := bufio.NewWriter(w)
	for _, entity := range db.Entities() {
		if _, err := writer.WriteString(entity.String() + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}
