package books

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	serverError "github.com/supakorn-kn/go-library/errors"
	"github.com/supakorn-kn/go-library/models"
	"github.com/supakorn-kn/go-library/mongodb"
	"github.com/supakorn-kn/go-library/objects"
	"go.mongodb.org/mongo-driver/bson"
)

const ISBNLength = 13

type SearchOptions struct {
	CurrentPage int                 `json:"current_page"`
	Title       models.MatchOptions `json:"title,omitempty"`
	AuthorID    string              `json:"author_id,omitempty"`
	GenreIDs    []string            `json:"genre_ids,omitempty"`
}

type BooksModel struct {
	models.BaseModel[objects.Book]
}

var defaultSort = []models.SortData{
	{Key: "title", SortBy: models.SortASC},
	{Key: "book_id", SortBy: models.SortASC},
}

func NewBooksModel(conn *mongodb.MongoDBConn, paginateSize ...int) (*BooksModel, error) {

	searchSize, err := models.ParsePaginateSize(paginateSize)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	coll, err := models.EnsureCollection(ctx, conn.GetDatabase(), models.BooksCollectionName, schema)
	if err != nil {
		return nil, err
	}

	err = models.EnsureIndexes(ctx, coll,
		models.NewIndex(true, "book_id"),
		models.NewIndex(true, "isbn"),
		models.NewIndex(false, "author_id"),
		models.NewIndex(false, "title"),
	)
	if err != nil {
		return nil, err
	}

	var model = new(BooksModel)
	err = model.Inject(coll, searchSize, "book_id")
	if err != nil {
		return nil, err
	}

	return model, nil
}

var schema = bson.M{
	"bsonType": "object",
	"required": []string{"book_id", "title", "author_id", "summary", "isbn"},
	"properties": bson.M{
		"book_id": bson.M{
			"bsonType":    "string",
			"minLength":   1,
			"description": "Book ID must not be empty",
		},
		"title": bson.M{
			"bsonType":    "string",
			"minLength":   1,
			"maxLength":   200,
			"description": "Title must not be empty",
		},
		"author_id": bson.M{
			"bsonType":    "string",
			"minLength":   1,
			"description": "Author must not be empty",
		},
		"summary": bson.M{
			"bsonType":    "string",
			"minLength":   1,
			"maxLength":   1000,
			"description": "Summary must not be empty",
		},
		"isbn": bson.M{
			"bsonType":    "string",
			"minLength":   ISBNLength,
			"maxLength":   ISBNLength,
			"description": "ISBN must have 13 characters",
		},
		"genre_ids": bson.M{
			"bsonType":    "array",
			"uniqueItems": true,
			"items": bson.M{
				"bsonType": "string",
			},
			"description": "Genres must contains unique string elements",
		},
	},
}

func (BooksModel) GetCollectionName() string {
	return models.BooksCollectionName
}

// Create assigns a new book ID when none is given and inserts the book after
// checking its author exists.
func (m BooksModel) Create(ctx context.Context, book objects.Book) (objects.Book, error) {

	if book.BookID == "" {
		book.BookID = uuid.NewString()
	}

	if err := m.checkAuthor(ctx, book.AuthorID); err != nil {
		return objects.Book{}, err
	}

	if err := m.Insert(ctx, book); err != nil {
		return objects.Book{}, err
	}

	return book, nil
}

func (m BooksModel) Replace(ctx context.Context, book objects.Book) error {

	if err := m.checkAuthor(ctx, book.AuthorID); err != nil {
		return err
	}

	return m.BaseModel.Replace(ctx, book)
}

func (m BooksModel) Update(ctx context.Context, book objects.Book) error {

	if book.AuthorID != "" {

		if err := m.checkAuthor(ctx, book.AuthorID); err != nil {
			return err
		}
	}

	return m.BaseModel.Update(ctx, book)
}

func (m BooksModel) checkAuthor(ctx context.Context, authorID string) error {

	exists, err := m.ExistsIn(ctx, models.AuthorsCollectionName, "author_id", authorID)
	if err != nil {
		return err
	}

	if !exists {
		return serverError.DataValidationFailedError.New(fmt.Sprintf("author %s is not exist", authorID))
	}

	return nil
}

func (m BooksModel) List(ctx context.Context, page int) (models.PaginationData[objects.Book], error) {
	return m.Search(ctx, SearchOptions{CurrentPage: page})
}

// CountTitleContains counts books whose title contains keyword, ignoring case.
func (m BooksModel) CountTitleContains(ctx context.Context, keyword string) (int, error) {
	return m.CountMatched(ctx, models.PartialMatchBson("title", keyword))
}

func (m BooksModel) ListByAuthor(ctx context.Context, authorID string) ([]objects.Book, error) {
	return m.Find(ctx, bson.D{{Key: "author_id", Value: authorID}}, models.SortBson(defaultSort))
}

func (m BooksModel) Search(ctx context.Context, opt SearchOptions) (paginationResult models.PaginationData[objects.Book], paginationErr error) {

	var builder = models.NewSearchPipelineBuilder()
	builder.Skip((opt.CurrentPage - 1) * m.SearchLenLimit)
	builder.Limit(m.SearchLenLimit)
	builder.SortedBy(defaultSort)

	if !opt.Title.IsNil() {

		paginationErr = builder.Match("title", opt.Title.Value, opt.Title.MatchType)
		if paginationErr != nil {
			return
		}
	}

	if opt.AuthorID != "" {

		paginationErr = builder.Match("author_id", opt.AuthorID, models.EqualMatchType)
		if paginationErr != nil {
			return
		}
	}

	if opt.GenreIDs != nil {
		builder.MatchBson(bson.D{{Key: "genre_ids", Value: bson.D{{Key: "$in", Value: opt.GenreIDs}}}})
	}

	return m.BaseModel.Search(ctx, models.BaseSearchOptions{
		CurrentPage: opt.CurrentPage,
		Pipeline:    builder.BuildPipeline(),
	})
}

// Delete refuses to remove a book that still has copies.
func (m BooksModel) Delete(ctx context.Context, bookID string) error {

	if err := m.ProtectFrom(ctx, bookID, models.InstancesCollectionName, "book_id"); err != nil {
		return err
	}

	return m.BaseModel.Delete(ctx, bookID)
}
