// Command import_books checks a seed catalog before it is passed to
// `library-lending --seed`. It loads the CSV into a scratch catalog and
// prints what would be imported and what would be skipped.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"library-lending/internal/textutil"
	"library-lending/library"
)

const defaultSeedFile = "books.csv"

func main() {
	path := defaultSeedFile
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening seed file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	lib := library.NewLibrary("Scratch", "")
	desk := &library.Librarian{EmployeeID: "IMPORT", Name: "Importer"}
	if _, err := lib.AddLibrarian(desk); err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing catalog: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Checking books in %s...\n", path)
	res, err := desk.ImportBooks(lib, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading seed file: %v\n", err)
		os.Exit(1)
	}

	for _, skipped := range res.Skipped {
		fmt.Printf("ERROR - %v\n", skipped)
	}

	fmt.Printf("\nCheck complete!\n")
	fmt.Printf("Importable: %d books\n", len(res.Imported))
	fmt.Printf("Errors: %d\n", len(res.Skipped))

	if len(res.Imported) > 0 {
		fmt.Println("\nBooks:")
		fmt.Printf("%-40s %-25s %-16s %-5s %s\n", "Title", "Author", "ISBN", "Year", "Category")
		fmt.Println(strings.Repeat("-", 105))
		for _, book := range lib.Books() {
			fmt.Printf("%-40s %-25s %-16s %-5d %s\n",
				textutil.Truncate(book.Title, 40),
				textutil.Truncate(book.Author, 25),
				book.ISBN,
				book.PublicationYear,
				book.Category)
		}
	}

	if len(res.Skipped) > 0 {
		os.Exit(1)
	}
}
