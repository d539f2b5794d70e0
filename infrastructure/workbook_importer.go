package infrastructure

// Импорт реестра из XLS-книги. Каждая строка листа — это те же поля, что и
// строка текстового файла базы, только разложенные по ячейкам:
//
//	| student | 1 | Clara |   |   |
//	| course  | 1 | Math  | 1 | 2 |
//
// Пустые ячейки пропускаются, поэтому имя с пробелом внутри одной ячейки
// остаётся одним полем. Строки проходят через ту же таблицу обработчиков и
// тот же механизм связывания курсов, что и текстовый файл. Листы читаются по порядку.
//
// Зависимости:
// - Пакет "github.com/extrame/xls" для работы с XLS-файлами.

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Vaflel/school-registry/domain"
	"github.com/extrame/xls"
)

// DefaultWorkbookCharset используется, если кодировка не указана
const DefaultWorkbookCharset = "utf-8"

// maxSheetColumns — число столбцов листа в формате BIFF8
const maxSheetColumns = 256

// ErrNotWorkbook возвращается, если в файле нет потока Workbook
var ErrNotWorkbook = errors.New("файл не содержит книгу XLS")

// rowSource даёт построчный доступ к листу
type rowSource interface {
	rowCount() int
	rowFields(index int) []string
}

// xlsSheet адаптирует xls.WorkSheet к rowSource
type xlsSheet struct {
	sheet *xls.WorkSheet
}

func (s xlsSheet) rowCount() int {
	return int(s.sheet.MaxRow) + 1
}

func (s xlsSheet) rowFields(index int) []string {
	row := sheetRow(s.sheet, index)
	if row == nil {
		return nil
	}

	// Без записи ROW границы строки нулевые
	last := row.LastCol()
	if last <= row.FirstCol() {
		last = maxSheetColumns
	}

	var fields []string
	for col := row.FirstCol(); col < last; col++ {
		cell := strings.TrimSpace(row.Col(col))
		if cell == "" {
			continue
		}
		fields = append(fields, cell)
	}
	return fields
}

// sheetRow возвращает строку листа или nil, если её нет в файле.
// WorkSheet.Row паникует на отсутствующей строке.
func sheetRow(sheet *xls.WorkSheet, index int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(index)
}

// WorkbookImporter загружает сущности из XLS-книги
type WorkbookImporter struct {
	filePath string
	charset  string
}

// NewWorkbookImporter создаёт импортёр. Пустая кодировка заменяется на DefaultWorkbookCharset.
func NewWorkbookImporter(filePath, charset string) *WorkbookImporter {
	if charset == "" {
		charset = DefaultWorkbookCharset
	}
	return &WorkbookImporter{
		filePath: filePath,
		charset:  charset,
	}
}

// Load читает все листы книги в новую базу.
// Первая некорректная строка прерывает импорт.
func (p *WorkbookImporter) Load() (*domain.Database, error) {
	f, err := os.Open(p.filePath)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть книгу: %w", err)
	}
	// Листы читаются лениво из того же файла
	defer f.Close()

	file, err := xls.OpenReader(f, p.charset)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть книгу: %w", err)
	}
	if file == nil {
		return nil, fmt.Errorf("%s: %w", p.filePath, ErrNotWorkbook)
	}

	db := domain.NewDatabase()
	for i := 0; i < file.NumSheets(); i++ {
		sheet := file.GetSheet(i)
		if sheet == nil {
			continue
		}

		source := fmt.Sprintf("%s[%s]", p.filePath, sheet.Name)
		if err := importRows(db, xlsSheet{sheet: sheet}, source); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// importRows применяет строки листа к базе.
// Номера строк в ошибках начинаются с единицы, как в табличном редакторе.
func importRows(db *domain.Database, rows rowSource, source string) error {
	for index := 0; index < rows.rowCount(); index++ {
		fields := rows.rowFields(index)
		if len(fields) == 0 {
			continue
		}

		applied, err := ApplyFields(db, fields)
		if err != nil {
			return &ParseError{
				Source: source,
				Line:   index + 1,
				Text:   strings.Join(fields, " "),
				Err:    err,
			}
		}
		if !applied {
			slog.Debug("пропущена строка с неизвестным тегом", "sheet", source, "row", index+1)
		}
	}
	return nil
}
