package infrastructure

import (
	"path/filepath"
	"testing"

	"github.com/Vaflel/school-registry/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSheet — лист в памяти для проверки importRows без XLS-файла
type fakeSheet [][]string

func (s fakeSheet) rowCount() int { return len(s) }
func (s fakeSheet) rowFields(index int) []string { return s[index] }

func TestImportRows(t *testing.T) {
	db := domain.NewDatabase()
	sheet := fakeSheet{
		{"student", "1", "Clara"},
		nil,
		{"student", "2", "Domi"},
		{"teacher", "1", "5", "Jane Doe"},
		{"note", "ignored"},
		{"course", "1", "Math", "1", "2"},
	}

	require.NoError(t, importRows(db, sheet, "book.xls[Sheet1]"))

	assert.Len(t, db.Students, 2)
	assert.Equal(t, "Jane Doe", db.Teachers[1].Name)
	assert.Equal(t, []int{1, 2}, db.Courses[1].Students)
	assert.Equal(t, []int{1}, db.Students[2].Courses)
}

func TestImportRowsMalformed(t *testing.T) {
	db := domain.NewDatabase()
	sheet := fakeSheet{
		{"student", "1", "Clara"},
		{"teacher", "1", "many", "Jane"},
	}

	err := importRows(db, sheet, "book.xls[Sheet1]")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
	assert.Equal(t, "book.xls[Sheet1]", parseErr.Source)
	assert.ErrorIs(t, err, ErrInvalidNumber)
}

// testdata/registry.xls: лист Students с пропущенной строкой и числовыми
// ячейками идентификаторов, лист Courses без записей ROW и с пустой ячейкой.
func TestWorkbookImporterLoad(t *testing.T) {
	importer := NewWorkbookImporter(filepath.Join("testdata", "registry.xls"), "")

	db, err := importer.Load()
	require.NoError(t, err)

	require.Len(t, db.Students, 2)
	assert.Equal(t, "Clara", db.Students[1].Name)
	assert.Equal(t, "Domi", db.Students[2].Name)
	assert.Equal(t, []int{1}, db.Students[1].Courses)
	assert.Equal(t, []int{1}, db.Students[2].Courses)

	require.Contains(t, db.Teachers, 1)
	assert.Equal(t, "Jane Doe", db.Teachers[1].Name)
	assert.Equal(t, 5, db.Teachers[1].Experience)

	require.Contains(t, db.Courses, 1)
	assert.Equal(t, "Math", db.Courses[1].Name)
	assert.Equal(t, []int{1, 2}, db.Courses[1].Students)
}

func TestWorkbookImporterNotWorkbook(t *testing.T) {
	path := writeFile(t, "student 1 Clara\n")

	_, err := NewWorkbookImporter(path, "").Load()
	assert.Error(t, err)
}

func TestWorkbookImporterMissingFile(t *testing.T) {
	importer := NewWorkbookImporter(filepath.Join(t.TempDir(), "missing.xls"), "")

	_, err := importer.Load()
	assert.Error(t, err)
}
