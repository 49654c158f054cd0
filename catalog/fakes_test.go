package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/supakorn-kn/go-library/errors"
	"github.com/supakorn-kn/go-library/models"
	"github.com/supakorn-kn/go-library/objects"
)

const pageSize = 10

// library keeps every collection in memory, with the same protections as the MongoDB models.
type library struct {
	authors   []objects.Author
	books     []objects.Book
	instances []objects.BookInstance
	genres    []objects.Genre
	users     []objects.User
	nextID    int
}

func (l *library) newID(prefix string) string {
	l.nextID++
	return fmt.Sprintf("%s-%d", prefix, l.nextID)
}

func (l *library) stores() Stores {

	return Stores{
		Authors:   fakeAuthors{l},
		Books:     fakeBooks{l},
		Instances: fakeInstances{l},
		Genres:    fakeGenres{l},
		Users:     fakeUsers{l},
	}
}

type fakeAuthors struct{ *library }

func (f fakeAuthors) Count(ctx context.Context) (int, error) {
	return len(f.authors), nil
}

func (f fakeAuthors) GetByID(ctx context.Context, authorID string) (objects.Author, error) {

	i := slices.IndexFunc(f.authors, func(a objects.Author) bool { return a.AuthorID == authorID })
	if i < 0 {
		return objects.Author{}, errors.ObjectIDNotFoundError.New(authorID)
	}

	return f.authors[i], nil
}

func (f fakeAuthors) List(ctx context.Context, page int) (models.PaginationData[objects.Author], error) {
	return models.Paginate(f.authors, page, pageSize)
}

func (f fakeAuthors) All(ctx context.Context) ([]objects.Author, error) {
	return f.authors, nil
}

func (f fakeAuthors) Create(ctx context.Context, author objects.Author) (objects.Author, error) {

	author.AuthorID = f.newID("author")
	f.authors = append(f.authors, author)

	return author, nil
}

func (f fakeAuthors) Replace(ctx context.Context, author objects.Author) error {

	i := slices.IndexFunc(f.authors, func(a objects.Author) bool { return a.AuthorID == author.AuthorID })
	if i < 0 {
		return errors.ObjectIDNotFoundError.New(author.AuthorID)
	}

	f.authors[i] = author
	return nil
}

func (f fakeAuthors) Delete(ctx context.Context, authorID string) error {

	if slices.ContainsFunc(f.books, func(b objects.Book) bool { return b.AuthorID == authorID }) {
		return errors.ObjectInUseError.New(authorID, models.BooksCollectionName)
	}

	i := slices.IndexFunc(f.authors, func(a objects.Author) bool { return a.AuthorID == authorID })
	if i < 0 {
		return errors.ObjectIDNotFoundError.New(authorID)
	}

	f.authors = slices.Delete(f.authors, i, i+1)
	return nil
}

type fakeBooks struct{ *library }

func (f fakeBooks) Count(ctx context.Context) (int, error) {
	return len(f.books), nil
}

func (f fakeBooks) CountTitleContains(ctx context.Context, keyword string) (int, error) {

	count := 0
	for _, book := range f.books {

		if strings.Contains(strings.ToLower(book.Title), strings.ToLower(keyword)) {
			count++
		}
	}

	return count, nil
}

func (f fakeBooks) GetByID(ctx context.Context, bookID string) (objects.Book, error) {

	i := slices.IndexFunc(f.books, func(b objects.Book) bool { return b.BookID == bookID })
	if i < 0 {
		return objects.Book{}, errors.ObjectIDNotFoundError.New(bookID)
	}

	return f.books[i], nil
}

func (f fakeBooks) List(ctx context.Context, page int) (models.PaginationData[objects.Book], error) {
	return models.Paginate(f.books, page, pageSize)
}

func (f fakeBooks) ListByAuthor(ctx context.Context, authorID string) ([]objects.Book, error) {

	books := []objects.Book{}
	for _, book := range f.books {

		if book.AuthorID == authorID {
			books = append(books, book)
		}
	}

	return books, nil
}

func (f fakeBooks) check(book objects.Book) error {

	if !slices.ContainsFunc(f.authors, func(a objects.Author) bool { return a.AuthorID == book.AuthorID }) {
		return errors.DataValidationFailedError.New("author " + book.AuthorID + " is not exist")
	}

	if slices.ContainsFunc(f.books, func(b objects.Book) bool { return b.ISBN == book.ISBN && b.BookID != book.BookID }) {
		return errors.DataAlreadyInUsedError.New()
	}

	return nil
}

func (f fakeBooks) Create(ctx context.Context, book objects.Book) (objects.Book, error) {

	book.BookID = f.newID("book")
	if err := f.check(book); err != nil {
		return objects.Book{}, err
	}

	f.books = append(f.books, book)
	return book, nil
}

func (f fakeBooks) Replace(ctx context.Context, book objects.Book) error {

	if err := f.check(book); err != nil {
		return err
	}

	i := slices.IndexFunc(f.books, func(b objects.Book) bool { return b.BookID == book.BookID })
	if i < 0 {
		return errors.ObjectIDNotFoundError.New(book.BookID)
	}

	f.books[i] = book
	return nil
}

func (f fakeBooks) Delete(ctx context.Context, bookID string) error {

	if slices.ContainsFunc(f.instances, func(i objects.BookInstance) bool { return i.BookID == bookID }) {
		return errors.ObjectInUseError.New(bookID, models.InstancesCollectionName)
	}

	i := slices.IndexFunc(f.books, func(b objects.Book) bool { return b.BookID == bookID })
	if i < 0 {
		return errors.ObjectIDNotFoundError.New(bookID)
	}

	f.books = slices.Delete(f.books, i, i+1)
	return nil
}

type fakeInstances struct{ *library }

func (f fakeInstances) Count(ctx context.Context) (int, error) {
	return len(f.instances), nil
}

func (f fakeInstances) CountByStatus(ctx context.Context, status objects.LoanStatus) (int, error) {

	count := 0
	for _, instance := range f.instances {

		if instance.Status == status {
			count++
		}
	}

	return count, nil
}

func (f fakeInstances) GetByID(ctx context.Context, instanceID string) (objects.BookInstance, error) {

	i := slices.IndexFunc(f.instances, func(i objects.BookInstance) bool { return i.InstanceID == instanceID })
	if i < 0 {
		return objects.BookInstance{}, errors.ObjectIDNotFoundError.New(instanceID)
	}

	return f.instances[i], nil
}

func (f fakeInstances) ListByBook(ctx context.Context, bookID string) ([]objects.BookInstance, error) {

	instances := []objects.BookInstance{}
	for _, instance := range f.instances {

		if instance.BookID == bookID {
			instances = append(instances, instance)
		}
	}

	return instances, nil
}

func (f fakeInstances) ListOnLoan(ctx context.Context, borrowerID string, page int) (models.PaginationData[objects.BookInstance], error) {

	var onLoan []objects.BookInstance
	for _, instance := range f.instances {

		if instance.Status == objects.OnLoanStatus && (borrowerID == "" || instance.BorrowerID == borrowerID) {
			onLoan = append(onLoan, instance)
		}
	}

	slices.SortStableFunc(onLoan, func(a, b objects.BookInstance) int {
		return a.DueBack.Compare(*b.DueBack)
	})

	return models.Paginate(onLoan, page, pageSize)
}

func (f fakeInstances) Renew(ctx context.Context, instanceID string, dueBack time.Time) error {

	i := slices.IndexFunc(f.instances, func(i objects.BookInstance) bool { return i.InstanceID == instanceID })
	if i < 0 {
		return errors.ObjectIDNotFoundError.New(instanceID)
	}

	f.instances[i].DueBack = &dueBack
	return nil
}

type fakeGenres struct{ *library }

func (f fakeGenres) All(ctx context.Context) ([]objects.Genre, error) {
	return f.genres, nil
}

type fakeUsers struct{ *library }

func (f fakeUsers) GetByID(ctx context.Context, userID string) (objects.User, error) {

	i := slices.IndexFunc(f.users, func(u objects.User) bool { return u.UserID == userID })
	if i < 0 {
		return objects.User{}, errors.ObjectIDNotFoundError.New(userID)
	}

	return f.users[i], nil
}

func (f fakeUsers) GetByUsername(ctx context.Context, username string) (objects.User, error) {

	i := slices.IndexFunc(f.users, func(u objects.User) bool { return u.Username == username })
	if i < 0 {
		return objects.User{}, errors.ObjectIDNotFoundError.New(username)
	}

	return f.users[i], nil
}
