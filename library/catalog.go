package library

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// DefaultFinePerDay is the late fee charged per day unless configured.
const DefaultFinePerDay = 1.0

const idLength = 8

// Library is the in-memory catalog of books, members and staff. It owns the
// fine policy. It is not safe for concurrent use.
type Library struct {
	Name    string
	Address string

	finePerDay float64
	now        func() time.Time
	logger     *zap.Logger
	history    History

	books       map[string]*Book
	bookOrder   []string
	members     map[string]*Member
	memberOrder []string
	librarians  map[string]*Librarian
}

// Option configures a Library.
type Option func(*Library)

// WithFinePerDay sets the late fee per day. Negative or non-finite rates
// are ignored.
func WithFinePerDay(rate float64) Option {
	return func(l *Library) {
		if validRate(rate) {
			l.finePerDay = rate
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Library) { l.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *Library) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithHistory mirrors issues and returns into h.
func WithHistory(h History) Option {
	return func(l *Library) { l.history = h }
}

func NewLibrary(name, address string, opts ...Option) *Library {
	l := &Library{
		Name:       name,
		Address:    address,
		finePerDay: DefaultFinePerDay,
		now:        time.Now,
		logger:     zap.NewNop(),
		books:      make(map[string]*Book),
		members:    make(map[string]*Member),
		librarians: make(map[string]*Librarian),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FinePerDay returns the late fee policy.
func (l *Library) FinePerDay() float64 { return l.finePerDay }

// Now returns the library clock's current time.
func (l *Library) Now() time.Time { return l.now() }

func (l *Library) String() string {
	return fmt.Sprintf("%s Library - Books: %d, Members: %d", l.Name, len(l.books), len(l.members))
}

// newID returns a short identifier not yet used by taken.
func newID(taken func(string) bool) string {
	for {
		id := uuid.NewString()[:idLength]
		if !taken(id) {
			return id
		}
	}
}

// ------------------ Books ------------------

// AddBook catalogues b under a fresh ID, marks it Available and returns the ID.
func (l *Library) AddBook(b *Book) string {
	b.ID = newID(func(id string) bool {
		_, ok := l.books[id]
		return ok
	})
	b.Status = StatusAvailable
	b.HolderID = ""
	b.IssuedAt = nil
	b.DueAt = nil

	l.books[b.ID] = b
	l.bookOrder = append(l.bookOrder, b.ID)
	l.logger.Info("book added", zap.String("book_id", b.ID), zap.String("title", b.Title))
	return b.ID
}

// RemoveBook deletes an Available book from the catalog.
func (l *Library) RemoveBook(id string) error {
	b, err := l.FindBook(id)
	if err != nil {
		return err
	}
	if b.Status != StatusAvailable {
		l.logger.Warn("book removal rejected", zap.String("book_id", id), zap.Stringer("status", b.Status))
		return fmt.Errorf("%w: book %s is %s and cannot be removed", ErrRuleViolation, id, b.Status)
	}

	delete(l.books, id)
	l.bookOrder = removeID(l.bookOrder, id)
	l.logger.Info("book removed", zap.String("book_id", id))
	return nil
}

func (l *Library) FindBook(id string) (*Book, error) {
	b, ok := l.books[id]
	if !ok {
		return nil, fmt.Errorf("book %s: %w", id, ErrNotFound)
	}
	return b, nil
}

// Books returns every book in the order it was added.
func (l *Library) Books() []*Book {
	return lo.Map(l.bookOrder, func(id string, _ int) *Book { return l.books[id] })
}

// SearchBooks returns the books whose title, author, ISBN or category
// contains keyword, ignoring case, in the order they were added.
func (l *Library) SearchBooks(keyword string) []*Book {
	kw := strings.ToLower(keyword)
	return lo.Filter(l.Books(), func(b *Book, _ int) bool {
		return strings.Contains(strings.ToLower(b.Title), kw) ||
			strings.Contains(strings.ToLower(b.Author), kw) ||
			strings.Contains(strings.ToLower(b.ISBN), kw) ||
			strings.Contains(strings.ToLower(b.Category), kw)
	})
}

// ------------------ Members ------------------

// AddMember registers m under a fresh ID and returns the ID.
func (l *Library) AddMember(m *Member) string {
	m.ID = newID(func(id string) bool {
		_, ok := l.members[id]
		return ok
	})
	if m.JoinedAt.IsZero() {
		m.JoinedAt = l.now()
	}
	m.held = nil

	l.members[m.ID] = m
	l.memberOrder = append(l.memberOrder, m.ID)
	l.logger.Info("member registered", zap.String("member_id", m.ID), zap.String("name", m.Name))
	return m.ID
}

// RemoveMember deletes a member holding no books. Outstanding fines do
// not block removal.
func (l *Library) RemoveMember(id string) error {
	m, err := l.FindMember(id)
	if err != nil {
		return err
	}
	if len(m.held) > 0 {
		l.logger.Warn("member removal rejected", zap.String("member_id", id), zap.Int("books_held", len(m.held)))
		return fmt.Errorf("%w: member %s still holds %d book(s)", ErrRuleViolation, id, len(m.held))
	}
	if m.FineBalance > 0 {
		l.logger.Warn("removing member with outstanding fine", zap.String("member_id", id), zap.Float64("fine", m.FineBalance))
	}

	delete(l.members, id)
	l.memberOrder = removeID(l.memberOrder, id)
	l.logger.Info("member removed", zap.String("member_id", id))
	return nil
}

func (l *Library) FindMember(id string) (*Member, error) {
	m, ok := l.members[id]
	if !ok {
		return nil, fmt.Errorf("member %s: %w", id, ErrNotFound)
	}
	return m, nil
}

// Members returns every member in registration order.
func (l *Library) Members() []*Member {
	return lo.Map(l.memberOrder, func(id string, _ int) *Member { return l.members[id] })
}

// ------------------ Staff ------------------

// AddLibrarian registers staff under their employee ID. There is no removal.
func (l *Library) AddLibrarian(lib *Librarian) (string, error) {
	if err := lib.Validate(); err != nil {
		return "", err
	}
	if _, ok := l.librarians[lib.EmployeeID]; ok {
		return "", fmt.Errorf("librarian %s: %w", lib.EmployeeID, ErrDuplicate)
	}
	if lib.JoinedAt.IsZero() {
		lib.JoinedAt = l.now()
	}
	l.librarians[lib.EmployeeID] = lib
	l.logger.Info("librarian added", zap.String("employee_id", lib.EmployeeID))
	return lib.EmployeeID, nil
}

func (l *Library) FindLibrarian(employeeID string) (*Librarian, error) {
	lib, ok := l.librarians[employeeID]
	if !ok {
		return nil, fmt.Errorf("librarian %s: %w", employeeID, ErrNotFound)
	}
	return lib, nil
}

// ------------------ Circulation ------------------

// Lend issues b to m at the library clock's time and records the loan.
// The ledger write happens before any state changes.
func (l *Library) Lend(b *Book, m *Member) error {
	if err := checkIssue(b); err != nil {
		l.logger.Warn("issue rejected", zap.String("book_id", b.ID), zap.String("member_id", m.ID), zap.Error(err))
		return err
	}

	now := l.now()
	if l.history != nil {
		err := l.history.RecordIssue(Loan{
			BookID:    b.ID,
			BookTitle: b.Title,
			MemberID:  m.ID,
			IssuedAt:  now,
			DueAt:     now.Add(LoanPeriod),
		})
		if err != nil {
			l.logger.Error("record issue", zap.String("book_id", b.ID), zap.Error(err))
			return fmt.Errorf("record issue: %w", err)
		}
	}

	if err := m.IssueBook(b, now); err != nil {
		return err
	}
	l.logger.Info("book issued",
		zap.String("book_id", b.ID),
		zap.String("member_id", m.ID),
		zap.Time("due_at", *b.DueAt))
	return nil
}

// Receive takes b back from m and returns the fine charged.
func (l *Library) Receive(b *Book, m *Member) (float64, error) {
	if err := m.checkReturn(b); err != nil {
		l.logger.Warn("return rejected", zap.String("book_id", b.ID), zap.String("member_id", m.ID), zap.Error(err))
		return 0, err
	}

	now := l.now()
	if l.history != nil {
		fine := Fine(*b.DueAt, now, l.finePerDay)
		if err := l.history.RecordReturn(b.ID, m.ID, now, fine); err != nil {
			l.logger.Error("record return", zap.String("book_id", b.ID), zap.Error(err))
			return 0, fmt.Errorf("record return: %w", err)
		}
	}

	fine, err := m.ReturnBook(b, now, l.finePerDay)
	if err != nil {
		return 0, err
	}
	l.logger.Info("book returned",
		zap.String("book_id", b.ID),
		zap.String("member_id", m.ID),
		zap.Float64("fine", fine))
	return fine, nil
}

// CollectFine applies a payment to the member's balance.
func (l *Library) CollectFine(m *Member, amount float64) error {
	if err := m.PayFine(amount); err != nil {
		l.logger.Warn("fine payment rejected", zap.String("member_id", m.ID), zap.Float64("amount", amount), zap.Error(err))
		return err
	}
	l.logger.Info("fine collected",
		zap.String("member_id", m.ID),
		zap.Float64("amount", amount),
		zap.Float64("balance", m.FineBalance))
	return nil
}

// ------------------ Reports ------------------

// OverdueReport lists issued books past their due time with the fine each
// would incur if returned now. Nothing is charged.
func (l *Library) OverdueReport() []OverdueEntry {
	now := l.now()
	return lo.FilterMap(l.Books(), func(b *Book, _ int) (OverdueEntry, bool) {
		if b.Status != StatusIssued || b.DueAt == nil || !b.DueAt.Before(now) {
			return OverdueEntry{}, false
		}
		return OverdueEntry{
			Book:          b,
			Member:        l.members[b.HolderID],
			DaysLate:      DaysLate(*b.DueAt, now),
			ProjectedFine: Fine(*b.DueAt, now, l.finePerDay),
		}, true
	})
}

// PopularBooks returns the most frequently issued books from the loan
// history. Titles come from the ledger so removed books still appear.
func (l *Library) PopularBooks(limit int) ([]PopularBook, error) {
	if l.history == nil {
		return nil, ErrHistoryDisabled
	}
	return l.history.PopularBooks(limit)
}

// MemberLoans returns the recorded loans of a registered member.
func (l *Library) MemberLoans(memberID string) ([]Loan, error) {
	if l.history == nil {
		return nil, ErrHistoryDisabled
	}
	if _, err := l.FindMember(memberID); err != nil {
		return nil, err
	}
	return l.history.MemberLoans(memberID)
}

func (l *Library) Summary() Summary {
	return Summary{
		Name:             l.Name,
		Books:            len(l.books),
		IssuedBooks:      lo.CountBy(l.Books(), func(b *Book) bool { return b.Status == StatusIssued }),
		Members:          len(l.members),
		Librarians:       len(l.librarians),
		OutstandingFines: lo.SumBy(l.Members(), func(m *Member) float64 { return m.FineBalance }),
	}
}
