package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"library-lending/library"
)

type testApp struct {
	*app
	now time.Time
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	history, err := library.NewSQLiteHistory("")
	require.NoError(t, err)

	ta := &testApp{now: time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)}
	lib := library.NewLibrary("City Central Library", "123 Main St, Cityville",
		library.WithHistory(history),
		library.WithClock(func() time.Time { return ta.now }))
	desk := &library.Librarian{EmployeeID: "EMP001", Name: "John Smith", Email: "john@library.com"}
	_, err = lib.AddLibrarian(desk)
	require.NoError(t, err)

	ta.app = &app{lib: lib, desk: desk, history: history, logger: zap.NewNop()}
	t.Cleanup(func() { ta.Close() })
	return ta
}

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func TestShellAddAndSearch(t *testing.T) {
	a := newTestApp(t)
	var out bytes.Buffer

	err := runShell(script(
		"add book", "Python Programming", "Palak Chauhan", "978-1234567890", "2020", "Programming",
		"add book", "Data Structures", "Jane Smith", "978-0987654321", "2019", "Computer Science",
		"add book", "Bad Year", "Nobody", "0", "1492", "History",
		"search", "prog",
		"search", "cooking",
		"exit",
	), &out, a.app, false)

	require.NoError(t, err)
	got := out.String()
	assert.Equal(t, 2, strings.Count(got, "Book added with ID: "))
	assert.Contains(t, got, "Error adding book:")
	assert.Contains(t, got, "Found 1 book(s) matching 'prog':")
	assert.Contains(t, got, "Python Programming by Palak Chauhan")
	assert.NotContains(t, got, "- Data Structures")
	assert.Contains(t, got, "No books found matching 'cooking'.")
	assert.True(t, strings.HasSuffix(got, "Goodbye!\n"))
	assert.NotContains(t, got, "> ", "scripted input gets no prompts")
}

func TestShellLendingRoundTrip(t *testing.T) {
	a := newTestApp(t)
	bookID, err := a.desk.AddBook(a.lib, library.BookInput{
		Title: "Python Programming", Author: "Palak Chauhan", ISBN: "978-1234567890", PublicationYear: 2020, Category: "Programming",
	})
	require.NoError(t, err)
	memberID, err := a.desk.RegisterMember(a.lib, library.MemberInput{Name: "Bob Wilson", Email: "bob@example.com"})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runShell(script("issue", bookID, memberID, "issue", bookID, memberID), &out, a.app, false))
	assert.Contains(t, out.String(), "Book 'Python Programming' issued to Bob Wilson, due 2024-03-15 10:00")
	assert.Contains(t, out.String(), "Could not issue book:")

	a.now = a.now.Add(library.LoanPeriod + 2*24*time.Hour)
	out.Reset()
	require.NoError(t, runShell(script(
		"overdue report",
		"return", bookID, memberID,
		"return", bookID, memberID,
		"pay fine", memberID, "5",
		"pay fine", memberID, "1.25",
		"popular books",
		"member history", memberID,
		"overview",
	), &out, a.app, false))

	got := out.String()
	assert.Contains(t, got, "Days Late")
	assert.Contains(t, got, "Book returned. Fine: $2.00")
	assert.Contains(t, got, "Invalid return:")
	assert.Contains(t, got, "Payment rejected:")
	assert.Contains(t, got, "Payment accepted. Outstanding fine: $0.75")
	assert.Contains(t, got, fmt.Sprintf("%-5d %-10s %-40s %d", 1, bookID, "Python Programming", 1))
	assert.Contains(t, got, "$2.00")
	assert.Contains(t, got, "Books: 1 (0 issued)")
	assert.Contains(t, got, "Members: 1, outstanding fines: $0.75")
}

func TestShellRemovals(t *testing.T) {
	a := newTestApp(t)
	bookID, err := a.desk.AddBook(a.lib, library.BookInput{Title: "Epic", Author: "Homer", PublicationYear: 1999, Category: "Poetry"})
	require.NoError(t, err)
	memberID, err := a.desk.RegisterMember(a.lib, library.MemberInput{Name: "Sarah Brown"})
	require.NoError(t, err)
	require.NoError(t, a.desk.IssueBook(a.lib, bookID, memberID))

	var out bytes.Buffer
	err = runShell(script(
		"remove book", bookID,
		"remove member", memberID,
		"return", bookID, memberID,
		"remove book", bookID,
		"remove member", memberID,
		"list books",
		"list members",
	), &out, a.app, false)

	require.NoError(t, err)
	got := out.String()
	assert.Contains(t, got, "Error removing book:")
	assert.Contains(t, got, "Error removing member:")
	assert.Contains(t, got, fmt.Sprintf("Book %s removed", bookID))
	assert.Contains(t, got, fmt.Sprintf("Member %s removed", memberID))
	assert.Contains(t, got, "No books in library.")
	assert.Contains(t, got, "No members registered.")
}

func TestShellUnknownCommandAndEOF(t *testing.T) {
	a := newTestApp(t)
	var out bytes.Buffer

	err := runShell(script("dance", "popular books", "add book", "Half"), &out, a.app, false)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Unknown command.")
	assert.Contains(t, out.String(), "No books have been issued yet.")
	assert.Empty(t, a.lib.Books())
}

func TestShellInteractivePrompts(t *testing.T) {
	a := newTestApp(t)
	var out bytes.Buffer

	require.NoError(t, runShell(script("exit"), &out, a.app, true))

	assert.Contains(t, out.String(), "Welcome to City Central Library! Signed in as Librarian: John Smith (ID: EMP001).")
	assert.Contains(t, out.String(), "Available commands:")
	assert.Contains(t, out.String(), "\n> ")
}

func TestSeed(t *testing.T) {
	a := newTestApp(t)
	path := filepath.Join(t.TempDir(), "books.csv")
	csv := "title,author,isbn,year,category\nEpic,Homer,1,1999,Poetry\nBroken,,2,2000,Misc\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	var out bytes.Buffer
	require.NoError(t, a.seed(&out, path))

	assert.Contains(t, out.String(), "Warning: skipped row 3")
	assert.Contains(t, out.String(), "Loaded 1 book(s) from "+path)
	assert.Len(t, a.lib.Books(), 1)

	require.Error(t, a.seed(&out, filepath.Join(t.TempDir(), "missing.csv")))
}

func TestRunDemo(t *testing.T) {
	a := newTestApp(t)
	var out bytes.Buffer

	require.NoError(t, runDemo(&out, a.app))

	got := out.String()
	assert.Contains(t, got, "City Central Library Library - Books: 3, Members: 2")
	assert.Contains(t, got, "Python Programming by Palak Chauhan [978-1234567890] - Issued")
	assert.Contains(t, got, "Fine for returned book: $0.00")
	assert.Contains(t, got, "Search results for 'Programming': 1 books found")
}

func TestShellListsMultibyteTitles(t *testing.T) {
	a := newTestApp(t)
	_, err := a.desk.AddBook(a.lib, library.BookInput{
		Title: "Über die Bücher und ihre Leser im neunzehnten Jahrhundert", Author: "Jürgen Müller-Lüdenscheidt", PublicationYear: 2001, Category: "Geschichte",
	})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runShell(script("list books"), &out, a.app, false))

	assert.True(t, utf8.ValidString(out.String()))
	assert.Contains(t, out.String(), "Über die Bücher und ihre Le...")
}
