package authors

import (
	"context"

	"github.com/google/uuid"
	"github.com/supakorn-kn/go-library/models"
	"github.com/supakorn-kn/go-library/mongodb"
	"github.com/supakorn-kn/go-library/objects"
	"go.mongodb.org/mongo-driver/bson"
)

type SearchOptions struct {
	CurrentPage int                 `json:"current_page"`
	FirstName   models.MatchOptions `json:"first_name,omitempty"`
	LastName    models.MatchOptions `json:"last_name,omitempty"`
}

type AuthorsModel struct {
	models.BaseModel[objects.Author]
}

var defaultSort = []models.SortData{
	{Key: "last_name", SortBy: models.SortASC},
	{Key: "first_name", SortBy: models.SortASC},
	{Key: "author_id", SortBy: models.SortASC},
}

func NewAuthorsModel(conn *mongodb.MongoDBConn, paginateSize ...int) (*AuthorsModel, error) {

	searchSize, err := models.ParsePaginateSize(paginateSize)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	coll, err := models.EnsureCollection(ctx, conn.GetDatabase(), models.AuthorsCollectionName, schema)
	if err != nil {
		return nil, err
	}

	err = models.EnsureIndexes(ctx, coll,
		models.NewIndex(true, "author_id"),
		models.NewIndex(false, "last_name", "first_name"),
	)
	if err != nil {
		return nil, err
	}

	var model = new(AuthorsModel)
	err = model.Inject(coll, searchSize, "author_id")
	if err != nil {
		return nil, err
	}

	return model, nil
}

var schema = bson.M{
	"bsonType": "object",
	"required": []string{"author_id", "first_name", "last_name"},
	"properties": bson.M{
		"author_id": bson.M{
			"bsonType":    "string",
			"minLength":   1,
			"description": "Author ID must not be empty",
		},
		"first_name": bson.M{
			"bsonType":    "string",
			"minLength":   1,
			"maxLength":   100,
			"description": "First name must not be empty",
		},
		"last_name": bson.M{
			"bsonType":    "string",
			"minLength":   1,
			"maxLength":   100,
			"description": "Last name must not be empty",
		},
		"date_of_birth": bson.M{
			"bsonType": "date",
		},
		"date_of_death": bson.M{
			"bsonType": "date",
		},
	},
}

func (AuthorsModel) GetCollectionName() string {
	return models.AuthorsCollectionName
}

// Create assigns a new author ID when none is given and inserts the author.
func (m AuthorsModel) Create(ctx context.Context, author objects.Author) (objects.Author, error) {

	if author.AuthorID == "" {
		author.AuthorID = uuid.NewString()
	}

	if err := m.Insert(ctx, author); err != nil {
		return objects.Author{}, err
	}

	return author, nil
}

func (m AuthorsModel) List(ctx context.Context, page int) (models.PaginationData[objects.Author], error) {
	return m.Search(ctx, SearchOptions{CurrentPage: page})
}

func (m AuthorsModel) All(ctx context.Context) ([]objects.Author, error) {

	return m.Find(ctx, bson.D{}, models.SortBson(defaultSort))
}

func (m AuthorsModel) Search(ctx context.Context, opt SearchOptions) (paginationResult models.PaginationData[objects.Author], paginationErr error) {

	var builder = models.NewSearchPipelineBuilder()
	builder.Skip((opt.CurrentPage - 1) * m.SearchLenLimit)
	builder.Limit(m.SearchLenLimit)
	builder.SortedBy(defaultSort)

	if !opt.FirstName.IsNil() {

		paginationErr = builder.Match("first_name", opt.FirstName.Value, opt.FirstName.MatchType)
		if paginationErr != nil {
			return
		}
	}

	if !opt.LastName.IsNil() {

		paginationErr = builder.Match("last_name", opt.LastName.Value, opt.LastName.MatchType)
		if paginationErr != nil {
			return
		}
	}

	return m.BaseModel.Search(ctx, models.BaseSearchOptions{
		CurrentPage: opt.CurrentPage,
		Pipeline:    builder.BuildPipeline(),
	})
}

// Delete refuses to remove an author who still has books.
func (m AuthorsModel) Delete(ctx context.Context, authorID string) error {

	if err := m.ProtectFrom(ctx, authorID, models.BooksCollectionName, "author_id"); err != nil {
		return err
	}

	return m.BaseModel.Delete(ctx, authorID)
}
