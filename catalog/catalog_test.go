package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/supakorn-kn/go-library/auth"
	"github.com/supakorn-kn/go-library/objects"
)

const password = "correct horse"

type CatalogTestSuite struct {
	suite.Suite

	passwordHash string
	now          time.Time

	library *library
	g       *gin.Engine
	cookies map[string]*http.Cookie
}

func (s *CatalogTestSuite) SetupSuite() {

	gin.SetMode(gin.TestMode)

	hash, err := auth.HashPassword(password)
	s.Require().NoError(err)

	s.passwordHash = hash
	s.now = time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)
}

func (s *CatalogTestSuite) SetupTest() {

	s.library = s.newLibrary()
	s.cookies = map[string]*http.Cookie{}

	handler := NewHandler(s.library.stores(), "", nil)
	handler.now = func() time.Time { return s.now }

	g := gin.New()
	g.Use(auth.Sessions(auth.NewCookieStore("test-secret", 3600)), auth.LoadUser(s.library.stores().Users))
	s.Require().NoError(handler.Register(g))

	s.g = g
}

func (s *CatalogTestSuite) newLibrary() *library {

	l := &library{
		authors: []objects.Author{
			{AuthorID: "tolstoy", FirstName: "Leo", LastName: "Tolstoy"},
			{AuthorID: "orphan", FirstName: "No", LastName: "Books"},
		},
		genres: []objects.Genre{
			{GenreID: "novel", Name: "Novel"},
			{GenreID: "poetry", Name: "Poetry"},
		},
		users: []objects.User{
			{UserID: "user-patron", Username: "patron", PasswordHash: s.passwordHash},
			{UserID: "other", Username: "other", PasswordHash: s.passwordHash},
			{
				UserID:       "librarian",
				Username:     "librarian",
				PasswordHash: s.passwordHash,
				Permissions:  []string{objects.CanMarkReturnedPermission},
			},
		},
	}

	titles := []string{"A Life", "Real Life", "Lifeboat", "War and Peace"}
	for i := 0; i < 12; i++ {

		title := fmt.Sprintf("Volume %02d", i)
		if i < len(titles) {
			title = titles[i]
		}

		l.books = append(l.books, objects.Book{
			BookID:   fmt.Sprintf("book-%02d", i),
			Title:    title,
			AuthorID: "tolstoy",
			Summary:  "Summary",
			ISBN:     fmt.Sprintf("97800000000%02d", i),
			GenreIDs: []string{"novel"},
		})
	}

	due := func(days int) *time.Time {
		date := time.Date(2026, time.October, 19+days, 0, 0, 0, 0, time.UTC)
		return &date
	}

	l.instances = []objects.BookInstance{
		{InstanceID: "copy-late", BookID: "book-00", Imprint: "Penguin", Status: objects.OnLoanStatus, BorrowerID: "user-patron", DueBack: due(5)},
		{InstanceID: "copy-soon", BookID: "book-01", Imprint: "Penguin", Status: objects.OnLoanStatus, BorrowerID: "user-patron", DueBack: due(-2)},
		{InstanceID: "copy-other", BookID: "book-02", Imprint: "Vintage", Status: objects.OnLoanStatus, BorrowerID: "other", DueBack: due(1)},
		{InstanceID: "copy-free", BookID: "book-00", Imprint: "Vintage", Status: objects.AvailableStatus},
		{InstanceID: "copy-fixing", BookID: "book-03", Imprint: "Vintage", Status: objects.MaintenanceStatus},
	}

	return l
}

func (s *CatalogTestSuite) do(req *http.Request) *httptest.ResponseRecorder {

	for _, cookie := range s.cookies {
		req.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	s.g.ServeHTTP(recorder, req)

	for _, cookie := range recorder.Result().Cookies() {
		s.cookies[cookie.Name] = cookie
	}

	return recorder
}

func (s *CatalogTestSuite) get(target string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (s *CatalogTestSuite) post(target string, values url.Values) *httptest.ResponseRecorder {

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return s.do(req)
}

func (s *CatalogTestSuite) login(username string) {

	recorder := s.post("/accounts/login", url.Values{"username": {username}, "password": {password}})
	s.Require().Equal(http.StatusFound, recorder.Code)
}

func (s *CatalogTestSuite) TestIndex() {

	s.Run("Should show counts of the stored records", func() {

		body := s.get("/catalog/").Body.String()

		s.Contains(body, `<span id="num-books">12</span>`)
		s.Contains(body, `<span id="num-books-contain">3</span>`)
		s.Contains(body, `<span id="num-instances">5</span>`)
		s.Contains(body, `<span id="num-instances-available">1</span>`)
		s.Contains(body, `<span id="num-authors">2</span>`)
	})

	s.Run("Should count visits within the session", func() {

		s.cookies = map[string]*http.Cookie{}

		for visits := 0; visits < 3; visits++ {

			recorder := s.get("/catalog/")
			s.Equal(http.StatusOK, recorder.Code)
			s.Contains(recorder.Body.String(), fmt.Sprintf(`<span id="num-visits">%d</span>`, visits))
		}
	})

	s.Run("Should redirect the site root to the catalog", func() {

		recorder := s.get("/")
		s.Equal(http.StatusFound, recorder.Code)
		s.Equal("/catalog/", recorder.Header().Get("Location"))
	})
}

func (s *CatalogTestSuite) TestBookList() {

	s.Run("Should show ten books on the first page", func() {

		body := s.get("/catalog/books").Body.String()

		s.Equal(10, strings.Count(body, `<a href="/catalog/book/book-`))
		s.Contains(body, "Page 1 of 2.")
	})

	s.Run("Should show the remaining books on the second page", func() {

		body := s.get("/catalog/books?page=2").Body.String()
		s.Equal(2, strings.Count(body, `<a href="/catalog/book/book-`))
	})

	s.Run("Should answer not found for pages out of range or malformed", func() {

		for _, page := range []string{"3", "0", "last"} {
			s.Equal(http.StatusNotFound, s.get("/catalog/books?page="+page).Code, page)
		}
	})
}

func (s *CatalogTestSuite) TestDetails() {

	s.Run("Should show a book with its author and copies", func() {

		recorder := s.get("/catalog/book/book-00")
		s.Equal(http.StatusOK, recorder.Code)

		body := recorder.Body.String()
		s.Contains(body, "Title: A Life")
		s.Contains(body, "Tolstoy, Leo")
		s.Contains(body, "copy-late")
		s.Contains(body, "copy-free")
		s.NotContains(body, "copy-other")
	})

	s.Run("Should show an author with their books", func() {

		recorder := s.get("/catalog/author/tolstoy")
		s.Equal(http.StatusOK, recorder.Code)
		s.Contains(recorder.Body.String(), "War and Peace")
	})

	s.Run("Should answer not found for unknown records", func() {
		s.Equal(http.StatusNotFound, s.get("/catalog/book/missing").Code)
		s.Equal(http.StatusNotFound, s.get("/catalog/author/missing").Code)
	})
}

func (s *CatalogTestSuite) TestMyLoans() {

	s.Run("Should send anonymous users to the login page", func() {

		recorder := s.get("/catalog/mybooks")
		s.Equal(http.StatusFound, recorder.Code)
		s.Equal("/accounts/login?next=%2Fcatalog%2Fmybooks", recorder.Header().Get("Location"))
	})

	s.Run("Should list only the user's loans by due date", func() {

		s.login("patron")

		body := s.get("/catalog/mybooks").Body.String()
		s.NotContains(body, "Lifeboat")

		soon := strings.Index(body, "Real Life")
		late := strings.Index(body, "A Life")
		s.Require().Positive(soon)
		s.Require().Positive(late)
		s.Less(soon, late)
	})
}

func (s *CatalogTestSuite) TestAllLoans() {

	s.Run("Should forbid users without the librarian permission", func() {

		s.login("patron")
		s.Equal(http.StatusForbidden, s.get("/catalog/borrowed").Code)
	})

	s.Run("Should list every loan with its borrower", func() {

		s.login("librarian")

		recorder := s.get("/catalog/borrowed")
		s.Equal(http.StatusOK, recorder.Code)

		body := recorder.Body.String()
		s.Equal(3, strings.Count(body, "Renew</a>"))
		s.Contains(body, "- other -")
		s.Contains(body, `/catalog/book/copy-soon/renew`)
	})
}

func (s *CatalogTestSuite) TestRenew() {

	s.Run("Should forbid users without the librarian permission", func() {

		s.login("patron")

		s.Equal(http.StatusForbidden, s.get("/catalog/book/copy-late/renew").Code)
		s.Equal(http.StatusForbidden, s.post("/catalog/book/copy-late/renew", url.Values{"renewal_date": {"2026-10-25"}}).Code)

		instance, err := s.library.stores().Instances.GetByID(context.Background(), "copy-late")
		s.Require().NoError(err)
		s.Equal("2026-10-24", instance.DueBack.Format("2006-01-02"))
	})

	s.Run("Should propose a date three weeks from today", func() {

		s.login("librarian")

		recorder := s.get("/catalog/book/copy-late/renew")
		s.Equal(http.StatusOK, recorder.Code)
		s.Contains(recorder.Body.String(), `value="2026-11-09"`)
		s.Contains(recorder.Body.String(), "Borrower: patron")
		s.NotContains(recorder.Body.String(), "user-patron")
	})

	s.Run("Should save a valid date and go back to the loan list", func() {

		s.login("librarian")

		recorder := s.post("/catalog/book/copy-late/renew", url.Values{"renewal_date": {"2026-11-02"}})
		s.Equal(http.StatusFound, recorder.Code)
		s.Equal("/catalog/borrowed", recorder.Header().Get("Location"))

		instance, err := s.library.stores().Instances.GetByID(context.Background(), "copy-late")
		s.Require().NoError(err)
		s.Equal("2026-11-02", instance.DueBack.Format("2006-01-02"))
	})

	s.Run("Should show the form again for a date out of the window", func() {

		s.login("librarian")

		testCases := map[string]string{
			"2026-10-18": "Invalid date - renewal in past",
			"2026-11-17": "Invalid date - renewal more than 4 weeks ahead",
			"":           "This field is required.",
		}

		for date, message := range testCases {

			recorder := s.post("/catalog/book/copy-soon/renew", url.Values{"renewal_date": {date}})
			s.Equal(http.StatusOK, recorder.Code, date)
			s.Contains(recorder.Body.String(), message, date)
		}

		instance, err := s.library.stores().Instances.GetByID(context.Background(), "copy-soon")
		s.Require().NoError(err)
		s.Equal("2026-10-17", instance.DueBack.Format("2006-01-02"))
	})

	s.Run("Should answer not found for an unknown copy", func() {

		s.login("librarian")
		s.Equal(http.StatusNotFound, s.get("/catalog/book/missing/renew").Code)
	})
}

func (s *CatalogTestSuite) TestAuthorEditing() {

	s.Run("Should pre-fill the date of death on the create form", func() {
		s.Contains(s.get("/catalog/author/create").Body.String(), `value="2016-12-10"`)
	})

	s.Run("Should create an author and show it", func() {

		recorder := s.post("/catalog/author/create", url.Values{
			"first_name":    {"Anna"},
			"last_name":     {"Akhmatova"},
			"date_of_birth": {"1889-06-23"},
		})
		s.Equal(http.StatusFound, recorder.Code)

		created := s.library.authors[len(s.library.authors)-1]
		s.Equal("Akhmatova", created.LastName)
		s.Equal("/catalog/author/"+created.AuthorID, recorder.Header().Get("Location"))
	})

	s.Run("Should show missing names on the form", func() {

		recorder := s.post("/catalog/author/create", url.Values{"first_name": {"Anna"}})
		s.Equal(http.StatusOK, recorder.Code)
		s.Contains(recorder.Body.String(), "This field is required.")
	})

	s.Run("Should update an author", func() {

		recorder := s.post("/catalog/author/orphan/update", url.Values{"first_name": {"Some"}, "last_name": {"Books"}})
		s.Equal(http.StatusFound, recorder.Code)
		s.Equal("/catalog/author/orphan", recorder.Header().Get("Location"))

		author, err := s.library.stores().Authors.GetByID(context.Background(), "orphan")
		s.Require().NoError(err)
		s.Equal("Some", author.FirstName)
	})

	s.Run("Should refuse to delete an author with books", func() {

		recorder := s.post("/catalog/author/tolstoy/delete", nil)
		s.Equal(http.StatusConflict, recorder.Code)
		s.Contains(recorder.Body.String(), "still have books")

		_, err := s.library.stores().Authors.GetByID(context.Background(), "tolstoy")
		s.NoError(err)
	})

	s.Run("Should delete an author without books", func() {

		recorder := s.post("/catalog/author/orphan/delete", nil)
		s.Equal(http.StatusFound, recorder.Code)
		s.Equal("/catalog/authors", recorder.Header().Get("Location"))
		s.Equal(http.StatusNotFound, s.get("/catalog/author/orphan").Code)
	})
}

func (s *CatalogTestSuite) TestBookEditing() {

	valid := func() url.Values {

		return url.Values{
			"title":     {"Anna Karenina"},
			"author_id": {"tolstoy"},
			"summary":   {"Trains"},
			"isbn":      {"9780143035008"},
			"genre_ids": {"novel"},
		}
	}

	s.Run("Should create a book", func() {

		recorder := s.post("/catalog/book/create", valid())
		s.Equal(http.StatusFound, recorder.Code)

		created := s.library.books[len(s.library.books)-1]
		s.Equal("Anna Karenina", created.Title)
		s.Equal("/catalog/book/"+created.BookID, recorder.Header().Get("Location"))
	})

	s.Run("Should report a taken ISBN on the form", func() {

		values := valid()
		values.Set("isbn", "9780000000000")

		recorder := s.post("/catalog/book/create", values)
		s.Equal(http.StatusOK, recorder.Code)
		s.Contains(recorder.Body.String(), "Book with this ISBN already exists.")
	})

	s.Run("Should report an unknown author on the form", func() {

		values := valid()
		values.Set("author_id", "nobody")
		values.Set("isbn", "9780000000099")

		recorder := s.post("/catalog/book/create", values)
		s.Equal(http.StatusOK, recorder.Code)
		s.Contains(recorder.Body.String(), "Select a valid author.")
	})

	s.Run("Should refuse to delete a book with copies", func() {
		s.Equal(http.StatusConflict, s.post("/catalog/book/book-00/delete", nil).Code)
	})

	s.Run("Should delete a book without copies", func() {

		recorder := s.post("/catalog/book/book-11/delete", nil)
		s.Equal(http.StatusFound, recorder.Code)
		s.Equal("/catalog/books", recorder.Header().Get("Location"))
	})
}

func (s *CatalogTestSuite) TestAccounts() {

	s.Run("Should reject a wrong password", func() {

		recorder := s.post("/accounts/login", url.Values{"username": {"patron"}, "password": {"wrong"}})
		s.Equal(http.StatusOK, recorder.Code)
		s.Contains(recorder.Body.String(), "Please try again.")
	})

	s.Run("Should follow next after signing in", func() {

		recorder := s.post("/accounts/login", url.Values{
			"username": {"patron"},
			"password": {password},
			"next":     {"/catalog/mybooks"},
		})
		s.Equal(http.StatusFound, recorder.Code)
		s.Equal("/catalog/mybooks", recorder.Header().Get("Location"))
		s.Equal(http.StatusOK, s.get("/catalog/mybooks").Code)
	})

	s.Run("Should not follow next off the site", func() {
		s.Equal("/catalog/", safeNext("//evil.example"))
		s.Equal("/catalog/", safeNext("https://evil.example"))
	})

	s.Run("Should sign out", func() {

		s.login("patron")
		s.Equal(http.StatusFound, s.post("/accounts/logout", nil).Code)
		s.Equal(http.StatusFound, s.get("/catalog/mybooks").Code)
	})
}

func TestCatalogTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}
