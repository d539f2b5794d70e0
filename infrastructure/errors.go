package infrastructure

import (
	"errors"
	"fmt"
)

// Ошибки разбора строк базы
var (
	// ErrMalformedLine — общая ошибка для любой строки, которую не удалось разобрать
	ErrMalformedLine = errors.New("некорректная строка")

	// ErrMissingField возвращается, когда в строке меньше полей, чем нужно типу сущности
	ErrMissingField = fmt.Errorf("%w: не хватает полей", ErrMalformedLine)

	// ErrInvalidNumber возвращается, когда числовое поле не является целым числом
	ErrInvalidNumber = fmt.Errorf("%w: поле не является целым числом", ErrMalformedLine)
)

// ParseError указывает источник и номер строки, на которой остановилась загрузка
type ParseError struct {
	Source string
	Line   int
	Text   string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %q: %v", e.Source, e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsMalformedLine проверяет, что ошибка вызвана некорректной строкой
func IsMalformedLine(err error) bool {
	return errors.Is(err, ErrMalformedLine)
}
