package library

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Publication years accepted by the catalogue entry form.
const (
	minPublicationYear = 1900
	maxPublicationYear = 2100
)

func (in BookInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required),
		validation.Field(&in.Author, validation.Required),
		validation.Field(&in.Category, validation.Required),
		validation.Field(&in.PublicationYear, validation.Required, validation.Min(minPublicationYear), validation.Max(maxPublicationYear)),
	)
	return wrapInvalid(err)
}

func (in MemberInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Email, is.EmailFormat),
	)
	return wrapInvalid(err)
}

func (l Librarian) Validate() error {
	err := validation.ValidateStruct(&l,
		validation.Field(&l.EmployeeID, validation.Required),
		validation.Field(&l.Name, validation.Required),
		validation.Field(&l.Email, is.EmailFormat),
	)
	return wrapInvalid(err)
}

func wrapInvalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}
