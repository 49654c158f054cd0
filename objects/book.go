package objects

import (
	"reflect"
	"slices"
)

type Book struct {
	BookID   string   `json:"book_id" bson:"book_id,omitempty"`
	Title    string   `json:"title" bson:"title,omitempty"`
	AuthorID string   `json:"author_id" bson:"author_id,omitempty"`
	Summary  string   `json:"summary" bson:"summary,omitempty"`
	ISBN     string   `json:"isbn" bson:"isbn,omitempty"`
	GenreIDs []string `json:"genre_ids" bson:"genre_ids,omitempty"`
}

func (b Book) GetID() string {
	return b.BookID
}

func (b Book) IsNil() bool {
	return reflect.ValueOf(b).IsZero()
}

func (b Book) HasGenre(genreID string) bool {
	return slices.Contains(b.GenreIDs, genreID)
}
