package users

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
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
	UserID      string              `json:"user_id,omitempty"`
	Username    models.MatchOptions `json:"username,omitempty"`
	Email       models.MatchOptions `json:"email,omitempty"`
}

var validate = validator.New()

type UsersModel struct {
	models.BaseModel[objects.User]
}

func NewUsersModel(conn *mongodb.MongoDBConn, paginateSize ...int) (*UsersModel, error) {

	searchSize, err := models.ParsePaginateSize(paginateSize)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	schema := bson.M{
		"bsonType": "object",
		"required": []string{"user_id", "username", "password_hash"},
		"properties": bson.M{
			"user_id": bson.M{
				"bsonType":    "string",
				"minLength":   1,
				"description": "User ID must not be empty",
			},
			"username": bson.M{
				"bsonType":    "string",
				"minLength":   1,
				"maxLength":   150,
				"description": "Username must not be empty",
			},
			"password_hash": bson.M{
				"bsonType":    "string",
				"minLength":   1,
				"description": "Password must not be empty",
			},
			"email": bson.M{
				"bsonType": "string",
			},
			"permissions": bson.M{
				"bsonType":    "array",
				"uniqueItems": true,
				"items": bson.M{
					"bsonType": "string",
				},
			},
		},
	}

	coll, err := models.EnsureCollection(ctx, conn.GetDatabase(), models.UsersCollectionName, schema)
	if err != nil {
		return nil, err
	}

	err = models.EnsureIndexes(ctx, coll,
		models.NewIndex(true, "user_id"),
		models.NewIndex(true, "username"),
	)
	if err != nil {
		return nil, err
	}

	var model = new(UsersModel)
	err = model.Inject(coll, searchSize, "user_id")
	if err != nil {
		return nil, err
	}

	return model, nil
}

func (UsersModel) GetCollectionName() string {
	return models.UsersCollectionName
}

// Create validates and inserts a user whose password is already hashed.
func (m UsersModel) Create(ctx context.Context, user objects.User) (objects.User, error) {

	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}

	if strings.TrimSpace(user.Username) == "" || user.PasswordHash == "" {
		return objects.User{}, serverError.DataValidationFailedError.New("username and password must not be empty")
	}

	if user.Email != "" {

		if err := validate.Var(user.Email, "email"); err != nil {
			return objects.User{}, serverError.DataValidationFailedError.New("email is invalid")
		}
	}

	if err := m.Insert(ctx, user); err != nil {
		return objects.User{}, err
	}

	return user, nil
}

func (m UsersModel) GetByUsername(ctx context.Context, username string) (user objects.User, err error) {

	result := m.Coll.FindOne(ctx, bson.D{{Key: "username", Value: username}})

	err = result.Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		err = serverError.ObjectIDNotFoundError.New(username)
	}

	return
}

// GrantPermission adds permission to the user if not present yet.
func (m UsersModel) GrantPermission(ctx context.Context, userID, permission string) error {

	filter := bson.D{{Key: m.ItemIDKey, Value: userID}}
	update := bson.D{{Key: "$addToSet", Value: bson.D{{Key: "permissions", Value: permission}}}}

	result, err := m.Coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return serverError.ObjectIDNotFoundError.New(userID)
	}

	return nil
}

func (m UsersModel) Search(ctx context.Context, opt SearchOptions) (paginationResult models.PaginationData[objects.User], paginationErr error) {

	var builder = models.NewSearchPipelineBuilder()
	builder.Skip((opt.CurrentPage - 1) * m.SearchLenLimit)
	builder.Limit(m.SearchLenLimit)
	builder.SortedBy([]models.SortData{
		{
			Key:    m.ItemIDKey,
			SortBy: models.SortASC,
		},
	})

	if !strings.EqualFold(opt.UserID, "") {

		paginationErr = builder.Match("user_id", opt.UserID, models.EqualMatchType)
		if paginationErr != nil {
			return
		}
	}

	if !opt.Username.IsNil() {

		paginationErr = builder.Match("username", opt.Username.Value, opt.Username.MatchType)
		if paginationErr != nil {
			return
		}
	}

	if !opt.Email.IsNil() {

		paginationErr = builder.Match("email", opt.Email.Value, opt.Email.MatchType)
		if paginationErr != nil {
			return
		}
	}

	return m.BaseModel.Search(ctx, models.BaseSearchOptions{
		CurrentPage: opt.CurrentPage,
		Pipeline:    builder.BuildPipeline(),
	})
}
