package library

// The Librarian methods below are the staff desk: each resolves IDs
// against the Library and delegates. They hold no state of their own.

// ------------------ Book helpers ------------------

// AddBook validates in, catalogues a new Available book and returns its ID.
func (lb *Librarian) AddBook(lib *Library, in BookInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	return lib.AddBook(&Book{
		Title:           in.Title,
		Author:          in.Author,
		ISBN:            in.ISBN,
		PublicationYear: in.PublicationYear,
		Category:        in.Category,
	}), nil
}

func (lb *Librarian) RemoveBook(lib *Library, bookID string) error {
	return lib.RemoveBook(bookID)
}

// ------------------ Member helpers ------------------

// RegisterMember validates in, registers the member and returns their ID.
func (lb *Librarian) RegisterMember(lib *Library, in MemberInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	return lib.AddMember(&Member{
		Name:    in.Name,
		Email:   in.Email,
		Address: in.Address,
		Phone:   in.Phone,
	}), nil
}

func (lb *Librarian) RemoveMember(lib *Library, memberID string) error {
	return lib.RemoveMember(memberID)
}

// ------------------ Circulation ------------------

// IssueBook lends bookID to memberID.
func (lb *Librarian) IssueBook(lib *Library, bookID, memberID string) error {
	book, member, err := resolve(lib, bookID, memberID)
	if err != nil {
		return err
	}
	return lib.Lend(book, member)
}

// ReturnBook takes bookID back from memberID and returns the fine charged.
// An on-time return yields 0 and a nil error.
func (lb *Librarian) ReturnBook(lib *Library, bookID, memberID string) (float64, error) {
	book, member, err := resolve(lib, bookID, memberID)
	if err != nil {
		return 0, err
	}
	return lib.Receive(book, member)
}

// CollectFine applies amount to the member's outstanding fine.
func (lb *Librarian) CollectFine(lib *Library, memberID string, amount float64) error {
	member, err := lib.FindMember(memberID)
	if err != nil {
		return err
	}
	return lib.CollectFine(member, amount)
}

func resolve(lib *Library, bookID, memberID string) (*Book, *Member, error) {
	book, err := lib.FindBook(bookID)
	if err != nil {
		return nil, nil, err
	}
	member, err := lib.FindMember(memberID)
	if err != nil {
		return nil, nil, err
	}
	return book, member, nil
}
