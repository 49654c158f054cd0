package genres

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
	Name        models.MatchOptions `json:"name,omitempty"`
}

type GenresModel struct {
	models.BaseModel[objects.Genre]
}

var defaultSort = []models.SortData{
	{Key: "name", SortBy: models.SortASC},
}

func NewGenresModel(conn *mongodb.MongoDBConn, paginateSize ...int) (*GenresModel, error) {

	searchSize, err := models.ParsePaginateSize(paginateSize)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	schema := bson.M{
		"bsonType": "object",
		"required": []string{"genre_id", "name"},
		"properties": bson.M{
			"genre_id": bson.M{
				"bsonType":    "string",
				"minLength":   1,
				"description": "Genre ID must not be empty",
			},
			"name": bson.M{
				"bsonType":    "string",
				"minLength":   1,
				"maxLength":   200,
				"description": "Genre name must not be empty",
			},
		},
	}

	coll, err := models.EnsureCollection(ctx, conn.GetDatabase(), models.GenresCollectionName, schema)
	if err != nil {
		return nil, err
	}

	err = models.EnsureIndexes(ctx, coll,
		models.NewIndex(true, "genre_id"),
		models.NewIndex(true, "name"),
	)
	if err != nil {
		return nil, err
	}

	var model = new(GenresModel)
	err = model.Inject(coll, searchSize, "genre_id")
	if err != nil {
		return nil, err
	}

	return model, nil
}

func (GenresModel) GetCollectionName() string {
	return models.GenresCollectionName
}

func (m GenresModel) Create(ctx context.Context, genre objects.Genre) (objects.Genre, error) {

	if genre.GenreID == "" {
		genre.GenreID = uuid.NewString()
	}

	if err := m.Insert(ctx, genre); err != nil {
		return objects.Genre{}, err
	}

	return genre, nil
}

func (m GenresModel) All(ctx context.Context) ([]objects.Genre, error) {
	return m.Find(ctx, bson.D{}, models.SortBson(defaultSort))
}

func (m GenresModel) Search(ctx context.Context, opt SearchOptions) (paginationResult models.PaginationData[objects.Genre], paginationErr error) {

	var builder = models.NewSearchPipelineBuilder()
	builder.Skip((opt.CurrentPage - 1) * m.SearchLenLimit)
	builder.Limit(m.SearchLenLimit)
	builder.SortedBy(defaultSort)

	if !opt.Name.IsNil() {

		paginationErr = builder.Match("name", opt.Name.Value, opt.Name.MatchType)
		if paginationErr != nil {
			return
		}
	}

	return m.BaseModel.Search(ctx, models.BaseSearchOptions{
		CurrentPage: opt.CurrentPage,
		Pipeline:    builder.BuildPipeline(),
	})
}

// Delete refuses to remove a genre still assigned to a book.
func (m GenresModel) Delete(ctx context.Context, genreID string) error {

	if err := m.ProtectFrom(ctx, genreID, models.BooksCollectionName, "genre_ids"); err != nil {
		return err
	}

	return m.BaseModel.Delete(ctx, genreID)
}
