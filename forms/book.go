package forms

import (
	"slices"

	"github.com/supakorn-kn/go-library/objects"
)

type BookForm struct {
	Title    string   `form:"title" binding:"required,max=200"`
	AuthorID string   `form:"author_id" binding:"required"`
	Summary  string   `form:"summary" binding:"required,max=1000"`
	ISBN     string   `form:"isbn" binding:"required,len=13"`
	GenreIDs []string `form:"genre_ids"`
}

func BookFormFrom(book objects.Book) BookForm {

	return BookForm{
		Title:    book.Title,
		AuthorID: book.AuthorID,
		Summary:  book.Summary,
		ISBN:     book.ISBN,
		GenreIDs: book.GenreIDs,
	}
}

func (f BookForm) HasGenre(genreID string) bool {
	return slices.Contains(f.GenreIDs, genreID)
}

func (f BookForm) Book(bookID string) objects.Book {

	var genreIDs []string
	for _, genreID := range f.GenreIDs {

		if genreID != "" && !slices.Contains(genreIDs, genreID) {
			genreIDs = append(genreIDs, genreID)
		}
	}

	return objects.Book{
		BookID:   bookID,
		Title:    f.Title,
		AuthorID: f.AuthorID,
		Summary:  f.Summary,
		ISBN:     f.ISBN,
		GenreIDs: genreIDs,
	}
}
