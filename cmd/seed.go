package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/spf13/cobra"
	"github.com/supakorn-kn/go-library/errors"
	"github.com/supakorn-kn/go-library/objects"
	"go.uber.org/zap"
)

var seedFlags struct {
	authors  int
	books    int
	copies   int
	borrower string
	seed     int64
}

var seedGenres = []string{"Fantasy", "Science Fiction", "Romance", "Poetry", "History", "Life Writing"}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the catalog with demo data",
	Long: `Create demo genres, authors, books and copies.

Copies get a random status. Copies on loan are lent to --borrower when given.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {

	seedCmd.Flags().IntVar(&seedFlags.authors, "authors", 10, "Number of authors")
	seedCmd.Flags().IntVar(&seedFlags.books, "books", 30, "Number of books")
	seedCmd.Flags().IntVar(&seedFlags.copies, "copies", 3, "Copies per book")
	seedCmd.Flags().StringVar(&seedFlags.borrower, "borrower", "", "Username who borrows the copies on loan")
	seedCmd.Flags().Int64Var(&seedFlags.seed, "seed", 0, "Random seed, 0 picks one")
}

func runSeed(cmd *cobra.Command, args []string) error {

	if seedFlags.authors < 1 && seedFlags.books > 0 {
		return fmt.Errorf("books need at least one author")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	faker := gofakeit.New(seedFlags.seed)

	var borrowerID string
	if seedFlags.borrower != "" {

		borrower, err := a.models.Users.GetByUsername(ctx, seedFlags.borrower)
		if err != nil {
			return err
		}

		borrowerID = borrower.UserID
	}

	genreIDs, err := seedGenreIDs(ctx, a)
	if err != nil {
		return err
	}

	authorIDs := make([]string, 0, seedFlags.authors)
	for i := 0; i < seedFlags.authors; i++ {

		author, err := a.models.Authors.Create(ctx, fakeAuthor(faker))
		if err != nil {
			return err
		}

		authorIDs = append(authorIDs, author.AuthorID)
	}

	now := time.Now()
	numBooks, numCopies := 0, 0

	for i := 0; i < seedFlags.books; i++ {

		book := fakeBook(faker, authorIDs[faker.Number(0, len(authorIDs)-1)], genreIDs)

		created, err := a.models.Books.Create(ctx, book)
		if errors.DataAlreadyInUsedError.IsEqual(err) {
			a.logger.Warn("Skip book with a taken ISBN", zap.String("isbn", book.ISBN))
			continue
		}

		if err != nil {
			return err
		}

		numBooks++

		for j := 0; j < seedFlags.copies; j++ {

			if _, err := a.models.Instances.Create(ctx, fakeInstance(faker, created.BookID, borrowerID, now)); err != nil {
				return err
			}

			numCopies++
		}
	}

	a.logger.Info("Catalog seeded",
		zap.Int("genres", len(genreIDs)),
		zap.Int("authors", len(authorIDs)),
		zap.Int("books", numBooks),
		zap.Int("copies", numCopies),
	)

	return nil
}

// seedGenreIDs creates the demo genres, reusing the ones a previous run created.
func seedGenreIDs(ctx context.Context, a *app) ([]string, error) {

	existing, err := a.models.Genres.All(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]string, len(existing))
	for _, genre := range existing {
		byName[genre.Name] = genre.GenreID
	}

	genreIDs := make([]string, 0, len(seedGenres))
	for _, name := range seedGenres {

		if genreID, ok := byName[name]; ok {
			genreIDs = append(genreIDs, genreID)
			continue
		}

		genre, err := a.models.Genres.Create(ctx, objects.Genre{Name: name})
		if err != nil {
			return nil, err
		}

		genreIDs = append(genreIDs, genre.GenreID)
	}

	return genreIDs, nil
}

func fakeAuthor(faker *gofakeit.Faker) objects.Author {

	born := faker.DateRange(time.Date(1800, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))
	born = time.Date(born.Year(), born.Month(), born.Day(), 0, 0, 0, 0, time.UTC)

	author := objects.Author{
		FirstName:   faker.FirstName(),
		LastName:    faker.LastName(),
		DateOfBirth: &born,
	}

	if born.Year() < 1940 {
		died := born.AddDate(faker.Number(30, 90), faker.Number(0, 11), 0)
		author.DateOfDeath = &died
	}

	return author
}

func fakeBook(faker *gofakeit.Faker, authorID string, genreIDs []string) objects.Book {

	title := strings.TrimSuffix(faker.Sentence(faker.Number(1, 5)), ".")

	book := objects.Book{
		Title:    title,
		AuthorID: authorID,
		Summary:  faker.Paragraph(1, 3, 12, " "),
		ISBN:     faker.Numerify("978##########"),
	}

	for _, genreID := range genreIDs {

		if faker.Bool() {
			book.GenreIDs = append(book.GenreIDs, genreID)
		}
	}

	return book
}

// fakeInstance makes a copy with a random status. Copies on loan are due within
// two weeks either side of now, so some are overdue.
func fakeInstance(faker *gofakeit.Faker, bookID, borrowerID string, now time.Time) objects.BookInstance {

	instance := objects.BookInstance{
		BookID:  bookID,
		Imprint: fmt.Sprintf("%s, %d", faker.Company(), faker.Number(1950, 2024)),
		Status:  objects.LoanStatuses[faker.Number(0, len(objects.LoanStatuses)-1)],
	}

	if instance.Status == objects.OnLoanStatus {

		y, m, d := now.AddDate(0, 0, faker.Number(-14, 14)).Date()
		due := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

		instance.DueBack = &due
		instance.BorrowerID = borrowerID
	}

	return instance
}
