package instances

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	serverError "github.com/supakorn-kn/go-library/errors"
	"github.com/supakorn-kn/go-library/models"
	"github.com/supakorn-kn/go-library/mongodb"
	"github.com/supakorn-kn/go-library/objects"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type SearchOptions struct {
	CurrentPage int                 `json:"current_page"`
	BookID      string              `json:"book_id,omitempty"`
	BorrowerID  string              `json:"borrower_id,omitempty"`
	Status      objects.LoanStatus  `json:"status,omitempty"`
	Imprint     models.MatchOptions `json:"imprint,omitempty"`
}

type InstancesModel struct {
	models.BaseModel[objects.BookInstance]
}

var dueBackSort = []models.SortData{
	{Key: "due_back", SortBy: models.SortASC},
	{Key: "instance_id", SortBy: models.SortASC},
}

func NewInstancesModel(conn *mongodb.MongoDBConn, paginateSize ...int) (*InstancesModel, error) {

	searchSize, err := models.ParsePaginateSize(paginateSize)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	var statuses []string
	for _, status := range objects.LoanStatuses {
		statuses = append(statuses, string(status))
	}

	schema := bson.M{
		"bsonType": "object",
		"required": []string{"instance_id", "book_id", "status"},
		"properties": bson.M{
			"instance_id": bson.M{
				"bsonType":    "string",
				"minLength":   1,
				"description": "Instance ID must not be empty",
			},
			"book_id": bson.M{
				"bsonType":    "string",
				"minLength":   1,
				"description": "Book must not be empty",
			},
			"imprint": bson.M{
				"bsonType":  "string",
				"maxLength": 200,
			},
			"due_back": bson.M{
				"bsonType": "date",
			},
			"status": bson.M{
				"enum":        statuses,
				"description": "Status must be one of m, o, a, r",
			},
			"borrower_id": bson.M{
				"bsonType": "string",
			},
		},
	}

	coll, err := models.EnsureCollection(ctx, conn.GetDatabase(), models.InstancesCollectionName, schema)
	if err != nil {
		return nil, err
	}

	err = models.EnsureIndexes(ctx, coll,
		models.NewIndex(true, "instance_id"),
		models.NewIndex(false, "book_id"),
		models.NewIndex(false, "status", "due_back"),
		models.NewIndex(false, "borrower_id", "status"),
	)
	if err != nil {
		return nil, err
	}

	var model = new(InstancesModel)
	err = model.Inject(coll, searchSize, "instance_id")
	if err != nil {
		return nil, err
	}

	return model, nil
}

func (InstancesModel) GetCollectionName() string {
	return models.InstancesCollectionName
}

// Create assigns a UUID and the maintenance status when they are missing and inserts
// the copy after checking its book exists.
func (m InstancesModel) Create(ctx context.Context, instance objects.BookInstance) (objects.BookInstance, error) {

	if instance.InstanceID == "" {
		instance.InstanceID = uuid.NewString()
	}

	if instance.Status == "" {
		instance.Status = objects.MaintenanceStatus
	}

	if err := m.validate(ctx, instance); err != nil {
		return objects.BookInstance{}, err
	}

	if err := m.Insert(ctx, instance); err != nil {
		return objects.BookInstance{}, err
	}

	return instance, nil
}

func (m InstancesModel) Update(ctx context.Context, instance objects.BookInstance) error {

	if err := m.validate(ctx, instance); err != nil {
		return err
	}

	return m.BaseModel.Update(ctx, instance)
}

func (m InstancesModel) validate(ctx context.Context, instance objects.BookInstance) error {

	if instance.Status != "" && !instance.Status.IsValid() {
		return serverError.DataValidationFailedError.New(fmt.Sprintf("status %s is invalid", instance.Status))
	}

	if instance.BookID == "" {
		return nil
	}

	exists, err := m.ExistsIn(ctx, models.BooksCollectionName, "book_id", instance.BookID)
	if err != nil {
		return err
	}

	if !exists {
		return serverError.DataValidationFailedError.New(fmt.Sprintf("book %s is not exist", instance.BookID))
	}

	return nil
}

func (m InstancesModel) CountByStatus(ctx context.Context, status objects.LoanStatus) (int, error) {
	return m.CountMatched(ctx, bson.D{{Key: "status", Value: status}})
}

func (m InstancesModel) ListByBook(ctx context.Context, bookID string) ([]objects.BookInstance, error) {
	return m.Find(ctx, bson.D{{Key: "book_id", Value: bookID}}, models.SortBson(dueBackSort))
}

// ListOnLoan pages through on-loan copies ordered by due date. An empty borrowerID
// lists every borrower's loans.
func (m InstancesModel) ListOnLoan(ctx context.Context, borrowerID string, page int) (models.PaginationData[objects.BookInstance], error) {

	return m.Search(ctx, SearchOptions{
		CurrentPage: page,
		BorrowerID:  borrowerID,
		Status:      objects.OnLoanStatus,
	})
}

// Renew moves the due date of the copy.
func (m InstancesModel) Renew(ctx context.Context, instanceID string, dueBack time.Time) error {

	filter := bson.D{{Key: m.ItemIDKey, Value: instanceID}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "due_back", Value: dueBack}}}}

	result := m.Coll.FindOneAndUpdate(ctx, filter, update)
	if err := result.Err(); err != nil {

		if errors.Is(err, mongo.ErrNoDocuments) {
			return serverError.ObjectIDNotFoundError.New(instanceID)
		}

		return err
	}

	return nil
}

func (m InstancesModel) Search(ctx context.Context, opt SearchOptions) (paginationResult models.PaginationData[objects.BookInstance], paginationErr error) {

	var builder = models.NewSearchPipelineBuilder()
	builder.Skip((opt.CurrentPage - 1) * m.SearchLenLimit)
	builder.Limit(m.SearchLenLimit)
	builder.SortedBy(dueBackSort)

	equalMatches := []struct {
		key   string
		value string
	}{
		{"book_id", opt.BookID},
		{"borrower_id", opt.BorrowerID},
		{"status", string(opt.Status)},
	}

	for _, match := range equalMatches {

		if match.value == "" {
			continue
		}

		paginationErr = builder.Match(match.key, match.value, models.EqualMatchType)
		if paginationErr != nil {
			return
		}
	}

	if !opt.Imprint.IsNil() {

		paginationErr = builder.Match("imprint", opt.Imprint.Value, opt.Imprint.MatchType)
		if paginationErr != nil {
			return
		}
	}

	return m.BaseModel.Search(ctx, models.BaseSearchOptions{
		CurrentPage: opt.CurrentPage,
		Pipeline:    builder.BuildPipeline(),
	})
}
