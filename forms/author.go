package forms

import (
	"time"

	"github.com/supakorn-kn/go-library/objects"
)

type AuthorForm struct {
	FirstName   string `form:"first_name" binding:"required,max=100"`
	LastName    string `form:"last_name" binding:"required,max=100"`
	DateOfBirth string `form:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	DateOfDeath string `form:"date_of_death" binding:"omitempty,datetime=2006-01-02"`
}

// NewAuthorForm is the blank create form.
func NewAuthorForm() AuthorForm {
	return AuthorForm{DateOfDeath: time.Date(2016, time.December, 10, 0, 0, 0, 0, time.UTC).Format(DateLayout)}
}

func AuthorFormFrom(author objects.Author) AuthorForm {

	return AuthorForm{
		FirstName:   author.FirstName,
		LastName:    author.LastName,
		DateOfBirth: FormatDate(author.DateOfBirth),
		DateOfDeath: FormatDate(author.DateOfDeath),
	}
}

// Author converts the bound form, failing only if Bind was skipped.
func (f AuthorForm) Author(authorID string) (objects.Author, FieldErrors) {

	fieldErrors := FieldErrors{}

	dateOfBirth, err := ParseOptionalDate(f.DateOfBirth)
	if err != nil {
		fieldErrors.Add("date_of_birth", "Enter a valid date.")
	}

	dateOfDeath, err := ParseOptionalDate(f.DateOfDeath)
	if err != nil {
		fieldErrors.Add("date_of_death", "Enter a valid date.")
	}

	return objects.Author{
		AuthorID:    authorID,
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		DateOfBirth: dateOfBirth,
		DateOfDeath: dateOfDeath,
	}, fieldErrors
}
