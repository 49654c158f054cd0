package models

import (
	"context"
	"errors"
	"slices"
	"strings"

	serverError "github.com/supakorn-kn/go-library/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var errPaginateSizeLen = errors.New("PaginateSize can have only one elements")

type BaseModel[T Item] struct {
	SearchLenLimit int

	Coll      *mongo.Collection
	ItemIDKey string
}

func (m *BaseModel[T]) Inject(coll *mongo.Collection, searchLenLimit int, itemIDKey string) error {

	if searchLenLimit < 1 {
		return errors.New("PaginateSize value can be only positive integer")
	}

	m.Coll = coll
	m.SearchLenLimit = searchLenLimit
	m.ItemIDKey = itemIDKey

	return nil
}

func (m BaseModel[T]) Insert(ctx context.Context, item T) error {

	_, err := m.Coll.InsertOne(ctx, item)
	if err != nil {
		return m.writeError(err, item.GetID())
	}

	return nil
}

func (m BaseModel[T]) GetByID(ctx context.Context, itemID string) (item T, err error) {

	result := m.Coll.FindOne(ctx, bson.D{{Key: m.ItemIDKey, Value: itemID}})

	err = result.Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		err = serverError.ObjectIDNotFoundError.New(itemID)
		return
	}

	return
}

// Find returns every item matching filter, in sort order.
func (m BaseModel[T]) Find(ctx context.Context, filter bson.D, sort bson.D) ([]T, error) {

	if filter == nil {
		filter = bson.D{}
	}

	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}

	cur, err := m.Coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	items := []T{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}

	return items, nil
}

func (m BaseModel[T]) Search(ctx context.Context, opt BaseSearchOptions) (paginationData PaginationData[T], paginateErr error) {

	var currentPage = opt.CurrentPage
	if currentPage < 1 {
		paginateErr = serverError.CurrentPageInvalidError.New()
		return
	}

	var cur *mongo.Cursor
	cur, paginateErr = m.Coll.Aggregate(ctx, opt.Pipeline)
	if paginateErr != nil {
		return
	}

	var aggResultList []AggregatedResult[T]
	paginateErr = cur.All(ctx, &aggResultList)
	if paginateErr != nil {
		return
	}

	var aggResult AggregatedResult[T]
	if len(aggResultList) > 0 {
		aggResult = aggResultList[0]
	}

	return NewPaginationData(currentPage, m.SearchLenLimit, aggResult.Total, aggResult.Data)
}

// Update sets only the non-empty fields of item.
func (m BaseModel[T]) Update(ctx context.Context, item T) error {

	filter, err := CreateMatchBson(m.ItemIDKey, item.GetID(), EqualMatchType)
	if err != nil {
		return err
	}

	b, err := bson.Marshal(item)
	if err != nil {
		return err
	}

	var parsedBson bson.D
	err = bson.Unmarshal(b, &parsedBson)
	if err != nil {
		return err
	}

	var updateBson bson.D
	for _, keyValue := range parsedBson {

		if keyValue.Key != m.ItemIDKey {
			updateBson = append(updateBson, keyValue)
		}
	}

	if len(updateBson) == 0 {
		_, err := m.GetByID(ctx, item.GetID())
		return err
	}

	result := m.Coll.FindOneAndUpdate(ctx, filter, bson.D{{Key: "$set", Value: updateBson}})
	if err := result.Err(); err != nil {

		if errors.Is(err, mongo.ErrNoDocuments) {
			return serverError.ObjectIDNotFoundError.New(item.GetID())
		}

		return m.writeError(err, item.GetID())
	}

	return nil
}

// Replace overwrites the whole document, so cleared optional fields are removed.
func (m BaseModel[T]) Replace(ctx context.Context, item T) error {

	filter := bson.D{{Key: m.ItemIDKey, Value: item.GetID()}}

	result := m.Coll.FindOneAndReplace(ctx, filter, item)
	if err := result.Err(); err != nil {

		if errors.Is(err, mongo.ErrNoDocuments) {
			return serverError.ObjectIDNotFoundError.New(item.GetID())
		}

		return m.writeError(err, item.GetID())
	}

	return nil
}

func (m BaseModel[T]) Delete(ctx context.Context, itemID string) error {

	filter := bson.D{{Key: m.ItemIDKey, Value: itemID}}

	result := m.Coll.FindOneAndDelete(ctx, filter)
	if err := result.Err(); err != nil {

		if errors.Is(err, mongo.ErrNoDocuments) {
			return serverError.ObjectIDNotFoundError.New(itemID)
		}

		return err
	}

	return nil
}

func (m BaseModel[T]) Count(ctx context.Context) (int, error) {
	return m.CountMatched(ctx, bson.D{})
}

func (m BaseModel[T]) CountMatched(ctx context.Context, filter bson.D) (int, error) {

	count, err := m.Coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// ExistsIn reports whether another collection of the same database has a document
// whose key equals value.
func (m BaseModel[T]) ExistsIn(ctx context.Context, collectionName, key string, value any) (bool, error) {

	coll := m.Coll.Database().Collection(collectionName)

	count, err := coll.CountDocuments(ctx, bson.D{{Key: key, Value: value}}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// ProtectFrom refuses deleting itemID while collectionName still references it by key.
func (m BaseModel[T]) ProtectFrom(ctx context.Context, itemID, collectionName, key string) error {

	referenced, err := m.ExistsIn(ctx, collectionName, key, itemID)
	if err != nil {
		return err
	}

	if referenced {
		return serverError.ObjectInUseError.New(itemID, collectionName)
	}

	return nil
}

func (m BaseModel[T]) writeError(err error, itemID string) error {

	if !mongo.IsDuplicateKeyError(err) {
		return err
	}

	if strings.Contains(err.Error(), m.ItemIDKey+"_1") {
		return serverError.DuplicatedObjectIDError.New(itemID)
	}

	return serverError.DataAlreadyInUsedError.New()
}

// EnsureCollection creates the collection with a strict $jsonSchema validator, or
// updates the validator when the collection already exists.
func EnsureCollection(ctx context.Context, db *mongo.Database, collectionName string, schema bson.M) (*mongo.Collection, error) {

	collectionNameList, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	validator := bson.D{{Key: "$jsonSchema", Value: schema}}

	if slices.Contains(collectionNameList, collectionName) {

		cmd := bson.D{
			{Key: "collMod", Value: collectionName},
			{Key: "validator", Value: validator},
			{Key: "validationLevel", Value: "strict"},
		}

		result := db.RunCommand(ctx, cmd, options.RunCmd())
		if err := result.Err(); err != nil {
			return nil, err
		}

		return db.Collection(collectionName), nil
	}

	collectionOptions := options.CreateCollection()
	collectionOptions.SetValidator(validator)
	collectionOptions.SetValidationLevel("strict")

	err = db.CreateCollection(ctx, collectionName, collectionOptions)
	if err != nil {
		return nil, err
	}

	return db.Collection(collectionName), nil
}

// EnsureIndexes creates every named index model that does not exist yet.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection, indexModels ...mongo.IndexModel) error {

	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return err
	}

	var indexes []bson.M
	err = cur.All(ctx, &indexes)
	if err != nil {
		return err
	}

	for _, indexModel := range indexModels {

		name := *indexModel.Options.Name

		contains := slices.ContainsFunc(indexes, func(m primitive.M) bool {
			return m["name"] == name
		})

		if contains {
			continue
		}

		_, err = coll.Indexes().CreateOne(ctx, indexModel)
		if err != nil {
			return err
		}
	}

	return nil
}

// NewIndex builds an index model named after its keys, e.g. "isbn_1".
func NewIndex(unique bool, keys ...string) mongo.IndexModel {

	var indexKeys bson.D
	var nameParts []string
	for _, key := range keys {
		indexKeys = append(indexKeys, bson.E{Key: key, Value: 1})
		nameParts = append(nameParts, key+"_1")
	}

	indexOptions := options.Index().SetName(strings.Join(nameParts, "_"))
	if unique {
		indexOptions.SetUnique(true)
	}

	return mongo.IndexModel{Keys: indexKeys, Options: indexOptions}
}
