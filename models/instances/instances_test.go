package instances

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/suite"
	"github.com/supakorn-kn/go-library/errors"
	"github.com/supakorn-kn/go-library/models"
	"github.com/supakorn-kn/go-library/mongodb"
	"github.com/supakorn-kn/go-library/mongodb/mongodbtest"
	"github.com/supakorn-kn/go-library/objects"
	"go.mongodb.org/mongo-driver/bson"
)

type InstancesModelTestSuite struct {
	suite.Suite
	conn  *mongodb.MongoDBConn
	model *InstancesModel
	book  objects.Book
}

func (s *InstancesModelTestSuite) SetupSuite() {

	s.conn = mongodbtest.Connect(s.T(), "instances")

	model, err := NewInstancesModel(s.conn)
	s.Require().NoError(err, "Setup instances model failed")

	s.model = model
	s.book = objects.Book{BookID: gofakeit.UUID(), Title: "War and Peace", AuthorID: "author", Summary: "Long", ISBN: "9780000000001"}

	_, err = s.conn.GetCollection(models.BooksCollectionName).InsertOne(context.Background(), s.book)
	s.Require().NoError(err, "Inserting book before testing failed")
}

func (s *InstancesModelTestSuite) AfterTest(suiteName, testName string) {

	_, err := s.model.Coll.DeleteMany(context.Background(), bson.D{})
	s.Require().NoError(err)
}

func (s *InstancesModelTestSuite) TestCreate() {

	ctx := context.Background()

	s.Run("Should assign instance ID and maintenance status", func() {

		instance, err := s.model.Create(ctx, objects.BookInstance{BookID: s.book.BookID, Imprint: "Penguin, 2001"})
		s.Require().NoError(err)
		s.NotEmpty(instance.InstanceID)
		s.Equal(objects.MaintenanceStatus, instance.Status)

		actual, err := s.model.GetByID(ctx, instance.InstanceID)
		s.Require().NoError(err)
		s.Equal(instance, actual)
	})

	s.Run("Should throw error when book does not exist", func() {

		_, err := s.model.Create(ctx, objects.BookInstance{BookID: "non-exist_book"})
		s.Require().ErrorIs(err, errors.DataValidationFailedError.New())
	})

	s.Run("Should throw error when status is invalid", func() {

		_, err := s.model.Create(ctx, objects.BookInstance{BookID: s.book.BookID, Status: "x"})
		s.Require().ErrorIs(err, errors.DataValidationFailedError.New())
	})
}

func (s *InstancesModelTestSuite) TestListOnLoan() {

	ctx := context.Background()

	day := func(offset int) *time.Time {
		t := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
		return &t
	}

	late := s.create(objects.BookInstance{BookID: s.book.BookID, Status: objects.OnLoanStatus, BorrowerID: "alice", DueBack: day(9)})
	early := s.create(objects.BookInstance{BookID: s.book.BookID, Status: objects.OnLoanStatus, BorrowerID: "alice", DueBack: day(1)})
	other := s.create(objects.BookInstance{BookID: s.book.BookID, Status: objects.OnLoanStatus, BorrowerID: "bob", DueBack: day(5)})
	s.create(objects.BookInstance{BookID: s.book.BookID, Status: objects.AvailableStatus})
	s.create(objects.BookInstance{BookID: s.book.BookID, Status: objects.ReservedStatus, BorrowerID: "alice", DueBack: day(0)})

	s.Run("Should list loans of given borrower ordered by due date", func() {

		result, err := s.model.ListOnLoan(ctx, "alice", 1)
		s.Require().NoError(err)
		s.Equal([]objects.BookInstance{early, late}, result.Data)
		s.Equal(2, result.Count)
	})

	s.Run("Should list loans of every borrower when borrower is empty", func() {

		result, err := s.model.ListOnLoan(ctx, "", 1)
		s.Require().NoError(err)
		s.Equal([]objects.BookInstance{early, other, late}, result.Data)
	})

	s.Run("Should count copies by status", func() {

		count, err := s.model.CountByStatus(ctx, objects.OnLoanStatus)
		s.Require().NoError(err)
		s.Equal(3, count)

		count, err = s.model.CountByStatus(ctx, objects.AvailableStatus)
		s.Require().NoError(err)
		s.Equal(1, count)
	})

	s.Run("Should list copies of a book", func() {

		result, err := s.model.ListByBook(ctx, s.book.BookID)
		s.Require().NoError(err)
		s.Len(result, 5)
	})
}

func (s *InstancesModelTestSuite) TestRenew() {

	ctx := context.Background()

	instance := s.create(objects.BookInstance{BookID: s.book.BookID, Status: objects.OnLoanStatus, BorrowerID: "alice"})

	s.Run("Should set due date", func() {

		dueBack := time.Date(2030, time.January, 2, 0, 0, 0, 0, time.UTC)
		s.Require().NoError(s.model.Renew(ctx, instance.InstanceID, dueBack))

		actual, err := s.model.GetByID(ctx, instance.InstanceID)
		s.Require().NoError(err)
		s.Require().NotNil(actual.DueBack)
		s.True(dueBack.Equal(*actual.DueBack))
	})

	s.Run("Should throw error when instance does not exist", func() {

		err := s.model.Renew(ctx, "non-exist_id", time.Now())
		s.Require().ErrorIs(err, errors.ObjectIDNotFoundError.New())
	})
}

func (s *InstancesModelTestSuite) create(instance objects.BookInstance) objects.BookInstance {

	created, err := s.model.Create(context.Background(), instance)
	s.Require().NoError(err, "Creating instance before testing failed")

	return created
}

func TestInstancesModel(t *testing.T) {
	suite.Run(t, new(InstancesModelTestSuite))
}
