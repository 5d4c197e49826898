package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"library-lending/internal/textutil"
	"library-lending/library"
)

const timeLayout = "2006-01-02 15:04"

// shell is the line-oriented front desk. Prompts are printed only when a
// person is typing; scripted input gets the results alone.
type shell struct {
	sc          *bufio.Scanner
	out         io.Writer
	lib         *library.Library
	desk        *library.Librarian
	interactive bool
}

func runShell(in io.Reader, out io.Writer, a *app, interactive bool) error {
	sh := &shell{
		sc:          bufio.NewScanner(in),
		out:         out,
		lib:         a.lib,
		desk:        a.desk,
		interactive: interactive,
	}

	if interactive {
		fmt.Fprintf(out, "Welcome to %s! Signed in as %s.\n", a.lib.Name, a.desk)
		sh.help()
	}

	for {
		sh.prompt("\n> ")
		if !sh.sc.Scan() {
			break
		}
		cmd := strings.ToLower(strings.TrimSpace(sh.sc.Text()))

		switch cmd {
		case "":
			continue
		case "add book":
			sh.handleAddBook()
		case "remove book":
			sh.handleRemoveBook()
		case "register member":
			sh.handleRegisterMember()
		case "remove member":
			sh.handleRemoveMember()
		case "issue":
			sh.handleIssue()
		case "return":
			sh.handleReturn()
		case "pay fine":
			sh.handlePayFine()
		case "search":
			sh.handleSearch()
		case "overdue report":
			sh.handleOverdueReport()
		case "popular books":
			sh.handlePopularBooks()
		case "member history":
			sh.handleMemberHistory()
		case "list books":
			sh.handleListBooks()
		case "list members":
			sh.handleListMembers()
		case "overview":
			sh.handleOverview()
		case "help":
			sh.help()
		case "exit", "quit":
			fmt.Fprintln(out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(out, "Unknown command. Type 'help' to see the available commands.")
		}
	}
	return sh.sc.Err()
}

func (sh *shell) help() {
	fmt.Fprintln(sh.out, "Available commands:")
	fmt.Fprintln(sh.out, "  Books: add book, remove book, search, list books")
	fmt.Fprintln(sh.out, "  Members: register member, remove member, list members, member history")
	fmt.Fprintln(sh.out, "  Circulation: issue, return, pay fine")
	fmt.Fprintln(sh.out, "  Reports: overdue report, popular books, overview")
	fmt.Fprintln(sh.out, "  System: help, exit")
}

func (sh *shell) prompt(label string) {
	if sh.interactive {
		fmt.Fprint(sh.out, label)
	}
}

// ask prompts for one line. ok is false when input is exhausted.
func (sh *shell) ask(label string) (string, bool) {
	sh.prompt(label)
	if !sh.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sh.sc.Text()), true
}

func (sh *shell) handleAddBook() {
	var in library.BookInput
	var ok bool
	if in.Title, ok = sh.ask("Title: "); !ok {
		return
	}
	if in.Author, ok = sh.ask("Author: "); !ok {
		return
	}
	if in.ISBN, ok = sh.ask("ISBN: "); !ok {
		return
	}
	yearStr, ok := sh.ask("Publication year: ")
	if !ok {
		return
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		fmt.Fprintf(sh.out, "Invalid publication year: %s\n", yearStr)
		return
	}
	in.PublicationYear = year
	if in.Category, ok = sh.ask("Category: "); !ok {
		return
	}

	id, err := sh.desk.AddBook(sh.lib, in)
	if err != nil {
		fmt.Fprintf(sh.out, "Error adding book: %v\n", err)
		return
	}
	fmt.Fprintf(sh.out, "Book added with ID: %s\n", id)
}

func (sh *shell) handleRemoveBook() {
	bookID, ok := sh.ask("Book ID: ")
	if !ok {
		return
	}
	if err := sh.desk.RemoveBook(sh.lib, bookID); err != nil {
		fmt.Fprintf(sh.out, "Error removing book: %v\n", err)
		return
	}
	fmt.Fprintf(sh.out, "Book %s removed\n", bookID)
}

func (sh *shell) handleRegisterMember() {
	var in library.MemberInput
	var ok bool
	if in.Name, ok = sh.ask("Name: "); !ok {
		return
	}
	if in.Email, ok = sh.ask("Email: "); !ok {
		return
	}
	if in.Address, ok = sh.ask("Address: "); !ok {
		return
	}
	if in.Phone, ok = sh.ask("Phone: "); !ok {
		return
	}

	id, err := sh.desk.RegisterMember(sh.lib, in)
	if err != nil {
		fmt.Fprintf(sh.out, "Error registering member: %v\n", err)
		return
	}
	fmt.Fprintf(sh.out, "Member registered with ID: %s\n", id)
}

func (sh *shell) handleRemoveMember() {
	memberID, ok := sh.ask("Member ID: ")
	if !ok {
		return
	}
	if err := sh.desk.RemoveMember(sh.lib, memberID); err != nil {
		fmt.Fprintf(sh.out, "Error removing member: %v\n", err)
		return
	}
	fmt.Fprintf(sh.out, "Member %s removed\n", memberID)
}

func (sh *shell) askLoan() (bookID, memberID string, ok bool) {
	if bookID, ok = sh.ask("Book ID: "); !ok {
		return "", "", false
	}
	if memberID, ok = sh.ask("Member ID: "); !ok {
		return "", "", false
	}
	return bookID, memberID, true
}

func (sh *shell) handleIssue() {
	bookID, memberID, ok := sh.askLoan()
	if !ok {
		return
	}
	if err := sh.desk.IssueBook(sh.lib, bookID, memberID); err != nil {
		fmt.Fprintf(sh.out, "Could not issue book: %v\n", err)
		return
	}
	book, _ := sh.lib.FindBook(bookID)
	member, _ := sh.lib.FindMember(memberID)
	fmt.Fprintf(sh.out, "Book '%s' issued to %s, due %s\n", book.Title, member.Name, book.DueAt.Format(timeLayout))
}

func (sh *shell) handleReturn() {
	bookID, memberID, ok := sh.askLoan()
	if !ok {
		return
	}
	fine, err := sh.desk.ReturnBook(sh.lib, bookID, memberID)
	if err != nil {
		fmt.Fprintf(sh.out, "Invalid return: %v\n", err)
		return
	}
	fmt.Fprintf(sh.out, "Book returned. Fine: $%.2f\n", fine)
}

func (sh *shell) handlePayFine() {
	memberID, ok := sh.ask("Member ID: ")
	if !ok {
		return
	}
	amountStr, ok := sh.ask("Amount: ")
	if !ok {
		return
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		fmt.Fprintf(sh.out, "Invalid amount: %s\n", amountStr)
		return
	}
	if err := sh.desk.CollectFine(sh.lib, memberID, amount); err != nil {
		fmt.Fprintf(sh.out, "Payment rejected: %v\n", err)
		return
	}
	member, _ := sh.lib.FindMember(memberID)
	fmt.Fprintf(sh.out, "Payment accepted. Outstanding fine: $%.2f\n", member.FineBalance)
}

func (sh *shell) handleSearch() {
	keyword, ok := sh.ask("Search keyword: ")
	if !ok {
		return
	}
	books := sh.lib.SearchBooks(keyword)
	if len(books) == 0 {
		fmt.Fprintf(sh.out, "No books found matching '%s'.\n", keyword)
		return
	}
	fmt.Fprintf(sh.out, "Found %d book(s) matching '%s':\n", len(books), keyword)
	for _, b := range books {
		fmt.Fprintf(sh.out, "- %s (ID: %s)\n", b, b.ID)
	}
}

func (sh *shell) handleOverdueReport() {
	overdue := sh.lib.OverdueReport()
	if len(overdue) == 0 {
		fmt.Fprintln(sh.out, "No overdue books.")
		return
	}
	fmt.Fprintf(sh.out, "%-10s %-30s %-20s %-10s %s\n", "Book ID", "Title", "Member", "Days Late", "Fine")
	fmt.Fprintln(sh.out, strings.Repeat("-", 85))
	for _, e := range overdue {
		memberName := "Unknown"
		if e.Member != nil {
			memberName = e.Member.Name
		}
		fmt.Fprintf(sh.out, "%-10s %-30s %-20s %-10d $%.2f\n",
			e.Book.ID,
			textutil.Truncate(e.Book.Title, 30),
			textutil.Truncate(memberName, 20),
			e.DaysLate,
			e.ProjectedFine)
	}
}

func (sh *shell) handlePopularBooks() {
	popular, err := sh.lib.PopularBooks(10)
	if err != nil {
		fmt.Fprintf(sh.out, "Error: %v\n", err)
		return
	}
	if len(popular) == 0 {
		fmt.Fprintln(sh.out, "No books have been issued yet.")
		return
	}
	fmt.Fprintf(sh.out, "%-5s %-10s %-40s %s\n", "Rank", "Book ID", "Title", "Issues")
	fmt.Fprintln(sh.out, strings.Repeat("-", 70))
	for i, p := range popular {
		fmt.Fprintf(sh.out, "%-5d %-10s %-40s %d\n", i+1, p.BookID, textutil.Truncate(p.Title, 40), p.Issues)
	}
}

func (sh *shell) handleMemberHistory() {
	memberID, ok := sh.ask("Member ID: ")
	if !ok {
		return
	}
	loans, err := sh.lib.MemberLoans(memberID)
	if err != nil {
		fmt.Fprintf(sh.out, "Error: %v\n", err)
		return
	}
	if len(loans) == 0 {
		fmt.Fprintln(sh.out, "No loans recorded for this member.")
		return
	}
	fmt.Fprintf(sh.out, "%-30s %-17s %-17s %-17s %s\n", "Title", "Issued", "Due", "Returned", "Fine")
	fmt.Fprintln(sh.out, strings.Repeat("-", 95))
	for _, l := range loans {
		returned := "-"
		if l.ReturnedAt != nil {
			returned = l.ReturnedAt.Local().Format(timeLayout)
		}
		fmt.Fprintf(sh.out, "%-30s %-17s %-17s %-17s $%.2f\n",
			textutil.Truncate(l.BookTitle, 30),
			l.IssuedAt.Local().Format(timeLayout),
			l.DueAt.Local().Format(timeLayout),
			returned,
			l.Fine)
	}
}

func (sh *shell) handleListBooks() {
	books := sh.lib.Books()
	if len(books) == 0 {
		fmt.Fprintln(sh.out, "No books in library.")
		return
	}
	fmt.Fprintf(sh.out, "%-10s %-30s %-20s %-10s %-20s %s\n", "ID", "Title", "Author", "Status", "Holder", "Due")
	fmt.Fprintln(sh.out, strings.Repeat("-", 110))
	for _, b := range books {
		holder, due := "None", "-"
		if b.Status == library.StatusIssued {
			holder = b.HolderID
			if m, err := sh.lib.FindMember(b.HolderID); err == nil {
				holder = fmt.Sprintf("%s (%s)", m.Name, m.ID)
			}
			due = b.DueAt.Format(timeLayout)
		}
		fmt.Fprintf(sh.out, "%-10s %-30s %-20s %-10s %-20s %s\n",
			b.ID,
			textutil.Truncate(b.Title, 30),
			textutil.Truncate(b.Author, 20),
			b.Status,
			textutil.Truncate(holder, 20),
			due)
	}
}

func (sh *shell) handleListMembers() {
	members := sh.lib.Members()
	if len(members) == 0 {
		fmt.Fprintln(sh.out, "No members registered.")
		return
	}
	fmt.Fprintf(sh.out, "%-10s %-25s %-30s %-6s %s\n", "ID", "Name", "Email", "Books", "Fine")
	fmt.Fprintln(sh.out, strings.Repeat("-", 85))
	for _, m := range members {
		fmt.Fprintf(sh.out, "%-10s %-25s %-30s %-6d $%.2f\n",
			m.ID,
			textutil.Truncate(m.Name, 25),
			textutil.Truncate(m.Email, 30),
			len(m.HeldBooks()),
			m.FineBalance)
	}
}

func (sh *shell) handleOverview() {
	s := sh.lib.Summary()
	fmt.Fprintln(sh.out, sh.lib)
	fmt.Fprintf(sh.out, "Address: %s\n", sh.lib.Address)
	fmt.Fprintf(sh.out, "Books: %d (%d issued)\n", s.Books, s.IssuedBooks)
	fmt.Fprintf(sh.out, "Members: %d, outstanding fines: $%.2f\n", s.Members, s.OutstandingFines)
	fmt.Fprintf(sh.out, "Librarians: %d\n", s.Librarians)
	fmt.Fprintf(sh.out, "Fine per day late: $%.2f\n", sh.lib.FinePerDay())
}

// seed loads the CSV at path through the desk and reports skipped rows.
func (a *app) seed(out io.Writer, path string) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	res, err := a.desk.ImportBooks(a.lib, f)
	if err != nil {
		return err
	}
	for _, skipped := range res.Skipped {
		fmt.Fprintf(out, "Warning: skipped %v\n", skipped)
	}
	fmt.Fprintf(out, "Loaded %d book(s) from %s\n", len(res.Imported), path)
	return nil
}
