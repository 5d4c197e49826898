package library

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportBooks(t *testing.T) {
	lib, _ := newTestLibrary(t)
	desk := &Librarian{EmployeeID: "EMP001", Name: "John"}

	csv := `title,author,isbn,year,category
# classics
Python Programming, Palak Chauhan, 978-1234567890, 2020, Programming
"Data Structures, 2nd ed",Jane Smith,978-0987654321,2019,Computer Science
Broken Row,Nobody,000,not-a-year,Misc
Too Old,Someone,111,1850,History
Short,Row
Machine Learning Basics,Alice Johnson,978-5678901234,2021,AI
`

	res, err := desk.ImportBooks(lib, strings.NewReader(csv))

	require.NoError(t, err)
	require.Len(t, res.Imported, 3)
	require.Len(t, res.Skipped, 3)
	for _, skipped := range res.Skipped {
		assert.ErrorIs(t, skipped, ErrInvalidInput)
	}

	books := lib.Books()
	require.Len(t, books, 3)
	assert.Equal(t, "Python Programming", books[0].Title)
	assert.Equal(t, "Palak Chauhan", books[0].Author)
	assert.Equal(t, "Data Structures, 2nd ed", books[1].Title)
	assert.Equal(t, 2021, books[2].PublicationYear)
	for i, id := range res.Imported {
		assert.Equal(t, books[i].ID, id)
		assert.Equal(t, StatusAvailable, books[i].Status)
	}
}

func TestImportBooksWithoutHeader(t *testing.T) {
	lib, _ := newTestLibrary(t)
	desk := &Librarian{EmployeeID: "EMP001", Name: "John"}

	res, err := desk.ImportBooks(lib, strings.NewReader("Epic,Homer,1,1999,Poetry\n"))

	require.NoError(t, err)
	assert.Len(t, res.Imported, 1)
	assert.Empty(t, res.Skipped)
}

func TestImportBooksReportsRowNumbers(t *testing.T) {
	lib, _ := newTestLibrary(t)
	desk := &Librarian{EmployeeID: "EMP001", Name: "John"}

	res, err := desk.ImportBooks(lib, strings.NewReader("Title,Author,ISBN,Year,Category\n,Anon,1,2000,Misc\n"))

	require.NoError(t, err)
	require.Len(t, res.Skipped, 1)
	assert.Contains(t, res.Skipped[0].Error(), "row 2")
}

func TestImportBooksEmpty(t *testing.T) {
	lib, _ := newTestLibrary(t)
	desk := &Librarian{EmployeeID: "EMP001", Name: "John"}

	res, err := desk.ImportBooks(lib, strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, res.Imported)
	assert.Empty(t, res.Skipped)
}
