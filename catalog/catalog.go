package catalog

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/go-library/auth"
	"github.com/supakorn-kn/go-library/errors"
	"github.com/supakorn-kn/go-library/models"
	"github.com/supakorn-kn/go-library/objects"
	"go.uber.org/zap"
)

const (
	DefaultTitleKeyword = "life"

	LoginPath = "/accounts/login"
)

type AuthorStore interface {
	Count(ctx context.Context) (int, error)
	GetByID(ctx context.Context, authorID string) (objects.Author, error)
	List(ctx context.Context, page int) (models.PaginationData[objects.Author], error)
	All(ctx context.Context) ([]objects.Author, error)
	Create(ctx context.Context, author objects.Author) (objects.Author, error)
	Replace(ctx context.Context, author objects.Author) error
	Delete(ctx context.Context, authorID string) error
}

type BookStore interface {
	Count(ctx context.Context) (int, error)
	CountTitleContains(ctx context.Context, keyword string) (int, error)
	GetByID(ctx context.Context, bookID string) (objects.Book, error)
	List(ctx context.Context, page int) (models.PaginationData[objects.Book], error)
	ListByAuthor(ctx context.Context, authorID string) ([]objects.Book, error)
	Create(ctx context.Context, book objects.Book) (objects.Book, error)
	Replace(ctx context.Context, book objects.Book) error
	Delete(ctx context.Context, bookID string) error
}

type InstanceStore interface {
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status objects.LoanStatus) (int, error)
	GetByID(ctx context.Context, instanceID string) (objects.BookInstance, error)
	ListByBook(ctx context.Context, bookID string) ([]objects.BookInstance, error)
	ListOnLoan(ctx context.Context, borrowerID string, page int) (models.PaginationData[objects.BookInstance], error)
	Renew(ctx context.Context, instanceID string, dueBack time.Time) error
}

type GenreStore interface {
	All(ctx context.Context) ([]objects.Genre, error)
}

type UserStore interface {
	GetByID(ctx context.Context, userID string) (objects.User, error)
	GetByUsername(ctx context.Context, username string) (objects.User, error)
}

type Stores struct {
	Authors   AuthorStore
	Books     BookStore
	Instances InstanceStore
	Genres    GenreStore
	Users     UserStore
}

// Handler serves the HTML catalog and the account pages.
type Handler struct {
	Stores

	titleKeyword string
	logger       *zap.Logger
	now          func() time.Time
}

func NewHandler(stores Stores, titleKeyword string, logger *zap.Logger) *Handler {

	if titleKeyword == "" {
		titleKeyword = DefaultTitleKeyword
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		Stores:       stores,
		titleKeyword: titleKeyword,
		logger:       logger,
		now:          time.Now,
	}
}

// Register mounts the catalog and account pages on g and installs the page templates.
// Sessions and auth.LoadUser must already be in the middleware chain.
func (h *Handler) Register(g *gin.Engine) error {

	renderer, err := NewRenderer()
	if err != nil {
		return err
	}

	g.HTMLRender = renderer

	g.GET("/", func(ctx *gin.Context) {
		ctx.Redirect(http.StatusFound, "/catalog/")
	})

	catalog := g.Group("/catalog", h.handleErrors)
	{
		catalog.GET("/", h.index)
		catalog.GET("/books", h.bookList)
		catalog.GET("/book/:id", h.bookDetail)
		catalog.GET("/authors", h.authorList)
		catalog.GET("/author/:id", h.authorDetail)

		catalog.GET("/mybooks", auth.LoginRequired(), h.myLoans)

		librarian := catalog.Group("", auth.PermissionRequired(objects.CanMarkReturnedPermission))
		librarian.GET("/borrowed", h.allLoans)
		librarian.GET("/book/:id/renew", h.renewForm)
		librarian.POST("/book/:id/renew", h.renew)

		catalog.GET("/author/create", h.authorCreateForm)
		catalog.POST("/author/create", h.authorCreate)
		catalog.GET("/author/:id/update", h.authorUpdateForm)
		catalog.POST("/author/:id/update", h.authorUpdate)
		catalog.GET("/author/:id/delete", h.authorDeleteForm)
		catalog.POST("/author/:id/delete", h.authorDelete)

		catalog.GET("/book/create", h.bookCreateForm)
		catalog.POST("/book/create", h.bookCreate)
		catalog.GET("/book/:id/update", h.bookUpdateForm)
		catalog.POST("/book/:id/update", h.bookUpdate)
		catalog.GET("/book/:id/delete", h.bookDeleteForm)
		catalog.POST("/book/:id/delete", h.bookDelete)
	}

	accounts := g.Group("/accounts", h.handleErrors)
	{
		accounts.GET("/login", h.loginForm)
		accounts.POST("/login", h.login)
		accounts.POST("/logout", h.logout)
	}

	return nil
}

// handleErrors answers the first error left by a handler or an auth middleware:
// anonymous users are sent to the login page, anything else gets the error page.
func (h *Handler) handleErrors(ctx *gin.Context) {

	ctx.Next()

	if len(ctx.Errors) == 0 {
		return
	}

	err := ctx.Errors.Last().Err

	if errors.LoginRequiredError.IsEqual(err) {

		next := url.Values{"next": {ctx.Request.URL.RequestURI()}}
		ctx.Redirect(http.StatusFound, LoginPath+"?"+next.Encode())
		return
	}

	status := errors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("path", ctx.Request.URL.Path), zap.Error(err))
	}

	h.html(ctx, status, "error", gin.H{
		"status":  status,
		"title":   http.StatusText(status),
		"message": err.Error(),
	})
}

func (h *Handler) fail(ctx *gin.Context, err error) {
	ctx.Error(err)
	ctx.Abort()
}

func (h *Handler) html(ctx *gin.Context, status int, name string, data gin.H) {

	if user, ok := auth.CurrentUser(ctx); ok {
		data["user"] = user
	}

	ctx.HTML(status, name, data)
}

// pageQuery reads ?page=, defaulting to the first page.
func pageQuery(ctx *gin.Context) (int, error) {

	value := ctx.DefaultQuery("page", "1")

	page, err := strconv.Atoi(value)
	if err != nil || page < 1 {
		return 0, errors.InvalidPageError.New(value)
	}

	return page, nil
}
