package library

import (
	"fmt"
	"time"
)

// BookStatus is the lending state of a catalog item.
type BookStatus int

const (
	StatusAvailable BookStatus = iota
	StatusIssued
	StatusReserved
	StatusLost
	StatusDamaged
)

var statusNames = map[BookStatus]string{
	StatusAvailable: "Available",
	StatusIssued:    "Issued",
	StatusReserved:  "Reserved",
	StatusLost:      "Lost",
	StatusDamaged:   "Damaged",
}

func (s BookStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("BookStatus(%d)", int(s))
}

// Book represents a catalog item and its current lending status.
// HolderID and DueAt are set only while the book is Issued.
type Book struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	ISBN            string     `json:"isbn"`
	PublicationYear int        `json:"publication_year"`
	Category        string     `json:"category"`
	Status          BookStatus `json:"status"`
	HolderID        string     `json:"holder_id,omitempty"`
	IssuedAt        *time.Time `json:"issued_at,omitempty"`
	DueAt           *time.Time `json:"due_at,omitempty"`
}

func (b *Book) String() string {
	return fmt.Sprintf("%s by %s [%s] - %s", b.Title, b.Author, b.ISBN, b.Status)
}

// Member represents a registered patron.
type Member struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	JoinedAt    time.Time `json:"joined_at"`
	FineBalance float64   `json:"fine_balance"`

	held []string
}

// HeldBooks returns a copy of the IDs of the books the member currently holds.
func (m *Member) HeldBooks() []string {
	out := make([]string, len(m.held))
	copy(out, m.held)
	return out
}

// Holds reports whether bookID is in the member's held set.
func (m *Member) Holds(bookID string) bool {
	for _, id := range m.held {
		if id == bookID {
			return true
		}
	}
	return false
}

func (m *Member) String() string {
	return fmt.Sprintf("%s (ID: %s) - Books issued: %d, Fine: $%.2f", m.Name, m.ID, len(m.held), m.FineBalance)
}

// Librarian is a staff record. It carries no lending state; its methods
// operate on the Library passed to them.
type Librarian struct {
	EmployeeID string    `json:"employee_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	JoinedAt   time.Time `json:"joined_at"`
}

func (l *Librarian) String() string {
	return fmt.Sprintf("Librarian: %s (ID: %s)", l.Name, l.EmployeeID)
}

// BookInput carries the fields staff supply when cataloguing a book.
type BookInput struct {
	Title           string
	Author          string
	ISBN            string
	PublicationYear int
	Category        string
}

// MemberInput carries the fields staff supply when registering a member.
type MemberInput struct {
	Name    string
	Email   string
	Address string
	Phone   string
}

// OverdueEntry is a read-only projection of a late loan. ProjectedFine is
// what the member would owe if the book came back now; nothing is charged.
type OverdueEntry struct {
	Book          *Book
	Member        *Member
	DaysLate      int
	ProjectedFine float64
}

// PopularBook pairs a book with how many times it has been issued.
type PopularBook struct {
	BookID string
	Title  string
	Issues int
}

// Summary is the at-a-glance state of a library.
type Summary struct {
	Name             string
	Books            int
	IssuedBooks      int
	Members          int
	Librarians       int
	OutstandingFines float64
}
