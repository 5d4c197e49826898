package main

import (
	"fmt"
	"io"

	"library-lending/library"
)

var demoBooks = []library.BookInput{
	{Title: "Python Programming", Author: "Palak Chauhan", ISBN: "978-1234567890", PublicationYear: 2020, Category: "Programming"},
	{Title: "Data Structures", Author: "Jane Smith", ISBN: "978-0987654321", PublicationYear: 2019, Category: "Computer Science"},
	{Title: "Machine Learning Basics", Author: "Alice Johnson", ISBN: "978-5678901234", PublicationYear: 2021, Category: "AI"},
}

var demoMembers = []library.MemberInput{
	{Name: "Bob Wilson", Email: "bob@example.com", Address: "456 Park Ave", Phone: "555-1234"},
	{Name: "Sarah Brown", Email: "sarah@example.com", Address: "789 Oak St", Phone: "555-5678"},
}

// runDemo catalogues a few books, lends two of them and returns one.
func runDemo(out io.Writer, a *app) error {
	lib, desk := a.lib, a.desk

	bookIDs := make([]string, 0, len(demoBooks))
	for _, in := range demoBooks {
		id, err := desk.AddBook(lib, in)
		if err != nil {
			return fmt.Errorf("add book %q: %w", in.Title, err)
		}
		bookIDs = append(bookIDs, id)
	}

	memberIDs := make([]string, 0, len(demoMembers))
	for _, in := range demoMembers {
		id, err := desk.RegisterMember(lib, in)
		if err != nil {
			return fmt.Errorf("register member %q: %w", in.Name, err)
		}
		memberIDs = append(memberIDs, id)
	}

	for i, memberID := range memberIDs {
		if err := desk.IssueBook(lib, bookIDs[i], memberID); err != nil {
			return fmt.Errorf("issue book %s: %w", bookIDs[i], err)
		}
	}

	fmt.Fprintln(out, lib)
	for _, id := range bookIDs[:2] {
		b, _ := lib.FindBook(id)
		fmt.Fprintln(out, b)
	}
	m, _ := lib.FindMember(memberIDs[0])
	fmt.Fprintln(out, m)

	fine, err := desk.ReturnBook(lib, bookIDs[0], memberIDs[0])
	if err != nil {
		return fmt.Errorf("return book %s: %w", bookIDs[0], err)
	}
	fmt.Fprintf(out, "Fine for returned book: $%.2f\n", fine)

	results := lib.SearchBooks("Programming")
	fmt.Fprintf(out, "Search results for 'Programming': %d books found\n", len(results))
	for _, b := range results {
		fmt.Fprintf(out, "- %s\n", b)
	}
	return nil
}
