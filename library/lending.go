package library

import (
	"fmt"
	"math"
	"time"
)

// LoanPeriod is how long a member may keep an issued book.
const LoanPeriod = 14 * 24 * time.Hour

const day = 24 * time.Hour

// DaysLate returns the number of whole days now is past due, or 0.
func DaysLate(due, now time.Time) int {
	if !now.After(due) {
		return 0
	}
	return int(now.Sub(due) / day)
}

// Fine is the late fee for a book due at due and returned at now, in
// whole cents.
func Fine(due, now time.Time, finePerDay float64) float64 {
	return roundCents(float64(DaysLate(due, now)) * finePerDay)
}

func validRate(rate float64) bool {
	return !math.IsNaN(rate) && !math.IsInf(rate, 0) && rate >= 0
}

func cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func roundCents(amount float64) float64 {
	return float64(cents(amount)) / 100
}

// checkIssue reports whether b can be issued.
func checkIssue(b *Book) error {
	switch b.Status {
	case StatusAvailable:
		return nil
	case StatusIssued, StatusReserved, StatusLost, StatusDamaged:
		return fmt.Errorf("%w: book %s is %s", ErrBookUnavailable, b.ID, b.Status)
	default:
		return fmt.Errorf("%w: book %s has unknown status %d", ErrBookUnavailable, b.ID, int(b.Status))
	}
}

// checkReturn reports whether m can return b.
func (m *Member) checkReturn(b *Book) error {
	if !m.Holds(b.ID) {
		return fmt.Errorf("%w: book %s is not held by member %s", ErrInvalidReturn, b.ID, m.ID)
	}
	switch b.Status {
	case StatusIssued:
		if b.HolderID != m.ID || b.DueAt == nil {
			return fmt.Errorf("%w: book %s loan record does not match member %s", ErrInvalidReturn, b.ID, m.ID)
		}
		return nil
	case StatusAvailable, StatusReserved, StatusLost, StatusDamaged:
		return fmt.Errorf("%w: book %s is %s", ErrInvalidReturn, b.ID, b.Status)
	default:
		return fmt.Errorf("%w: book %s has unknown status %d", ErrInvalidReturn, b.ID, int(b.Status))
	}
}

// IssueBook lends b to m at now. The book must be Available; otherwise
// nothing changes and ErrBookUnavailable is returned.
func (m *Member) IssueBook(b *Book, now time.Time) error {
	if err := checkIssue(b); err != nil {
		return err
	}

	issued := now
	due := now.Add(LoanPeriod)
	b.Status = StatusIssued
	b.HolderID = m.ID
	b.IssuedAt = &issued
	b.DueAt = &due
	m.held = append(m.held, b.ID)
	return nil
}

// ReturnBook takes b back from m at now, charges any late fee to the
// member's balance and returns it. A fine of 0 means an on-time return;
// a failed return is reported only through ErrInvalidReturn.
func (m *Member) ReturnBook(b *Book, now time.Time, finePerDay float64) (float64, error) {
	if err := m.checkReturn(b); err != nil {
		return 0, err
	}

	fine := Fine(*b.DueAt, now, finePerDay)

	m.held = removeID(m.held, b.ID)
	b.Status = StatusAvailable
	b.HolderID = ""
	b.IssuedAt = nil
	b.DueAt = nil
	m.FineBalance = roundCents(m.FineBalance + fine)
	return fine, nil
}

// PayFine reduces the member's balance by amount. Amounts are compared
// in cents. Negative or non-finite amounts and amounts above the balance
// are rejected without mutation.
func (m *Member) PayFine(amount float64) error {
	switch {
	case math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0:
		return fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	case cents(amount) > cents(m.FineBalance):
		return fmt.Errorf("%w: paying %.2f against %.2f", ErrFineOverpayment, amount, m.FineBalance)
	}
	m.FineBalance = float64(cents(m.FineBalance)-cents(amount)) / 100
	return nil
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
