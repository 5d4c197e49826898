package library

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Loan is one issue of a book to a member, open until ReturnedAt is set.
type Loan struct {
	BookID     string
	BookTitle  string
	MemberID   string
	IssuedAt   time.Time
	DueAt      time.Time
	ReturnedAt *time.Time
	Fine       float64
}

//go:generate mockgen -source=history.go -destination=mocks/mock_history.go -package=mocks

// History is the loan ledger the Library mirrors issues and returns into.
type History interface {
	RecordIssue(loan Loan) error
	RecordReturn(bookID, memberID string, returnedAt time.Time, fine float64) error
	PopularBooks(limit int) ([]PopularBook, error)
	MemberLoans(memberID string) ([]Loan, error)
}

var _ History = (*SQLiteHistory)(nil)

// memoryDSN keeps the ledger inside the process; it is discarded on Close.
const memoryDSN = "file::memory:?_foreign_keys=1"

// SQLiteHistory stores the loan ledger in SQLite.
type SQLiteHistory struct {
	db *sql.DB

	closeLoanStmt *sql.Stmt
}

// NewSQLiteHistory opens the ledger at dsn, or an in-memory database when
// dsn is empty, applies the schema and prepares common statements.
func NewSQLiteHistory(dsn string) (*SQLiteHistory, error) {
	if dsn == "" {
		dsn = memoryDSN
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	h := &SQLiteHistory{db: db}
	if err := h.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

// Close releases prepared statements and closes the DB.
func (h *SQLiteHistory) Close() error {
	if h.closeLoanStmt != nil {
		h.closeLoanStmt.Close()
	}
	return h.db.Close()
}

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS loans (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            book_id TEXT NOT NULL,
            book_title TEXT NOT NULL,
            member_id TEXT NOT NULL,
            issued_at DATETIME NOT NULL,
            due_at DATETIME NOT NULL,
            returned_at DATETIME,
            fine REAL NOT NULL DEFAULT 0
        );`,
		`CREATE INDEX IF NOT EXISTS idx_loans_book ON loans(book_id);`,
		`CREATE INDEX IF NOT EXISTS idx_loans_member ON loans(member_id);`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Prepared statements
// ---------------------------------------------------------------------------

func (h *SQLiteHistory) prepareStatements() error {
	var err error
	h.closeLoanStmt, err = h.db.Prepare(`UPDATE loans SET returned_at=?, fine=?
        WHERE book_id=? AND member_id=? AND returned_at IS NULL`)
	return err
}

// ---------------------------------------------------------------------------
// Ledger
// ---------------------------------------------------------------------------

// RecordIssue opens a loan. A book can have at most one open loan.
func (h *SQLiteHistory) RecordIssue(loan Loan) error {
	tx, err := h.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var open bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM loans WHERE book_id=? AND returned_at IS NULL)`, loan.BookID).Scan(&open); err != nil {
		return err
	}
	if open {
		return fmt.Errorf("book %s already has an open loan", loan.BookID)
	}

	if _, err := tx.Exec(`INSERT INTO loans(book_id,book_title,member_id,issued_at,due_at) VALUES(?,?,?,?,?)`,
		loan.BookID, loan.BookTitle, loan.MemberID, loan.IssuedAt.UTC(), loan.DueAt.UTC()); err != nil {
		return err
	}
	return tx.Commit()
}

// RecordReturn closes the open loan of bookID by memberID.
func (h *SQLiteHistory) RecordReturn(bookID, memberID string, returnedAt time.Time, fine float64) error {
	res, err := h.closeLoanStmt.Exec(returnedAt.UTC(), fine, bookID, memberID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("no open loan for book %s and member %s", bookID, memberID)
	}
	return nil
}

// PopularBooks counts issues per book, most issued first, ties by book ID.
// A non-positive limit returns every book ever issued.
func (h *SQLiteHistory) PopularBooks(limit int) ([]PopularBook, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := h.db.Query(`
        SELECT book_id, MAX(book_title), COUNT(*) AS issues
        FROM loans
        GROUP BY book_id
        ORDER BY issues DESC, book_id ASC
        LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PopularBook
	for rows.Next() {
		var p PopularBook
		if err := rows.Scan(&p.BookID, &p.Title, &p.Issues); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MemberLoans returns the member's loans, oldest first.
func (h *SQLiteHistory) MemberLoans(memberID string) ([]Loan, error) {
	rows, err := h.db.Query(`SELECT book_id, book_title, member_id, issued_at, due_at, returned_at, fine
        FROM loans WHERE member_id=? ORDER BY id`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []Loan
	for rows.Next() {
		var (
			l        Loan
			returned sql.NullTime
		)
		if err := rows.Scan(&l.BookID, &l.BookTitle, &l.MemberID, &l.IssuedAt, &l.DueAt, &returned, &l.Fine); err != nil {
			return nil, err
		}
		if returned.Valid {
			t := returned.Time
			l.ReturnedAt = &t
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}
