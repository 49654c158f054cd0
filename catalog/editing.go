package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/go-library/errors"
	"github.com/supakorn-kn/go-library/forms"
)

func (h *Handler) authorCreateForm(ctx *gin.Context) {

	h.html(ctx, http.StatusOK, "author_form", gin.H{
		"form":   forms.NewAuthorForm(),
		"action": "/catalog/author/create",
	})
}

func (h *Handler) authorCreate(ctx *gin.Context) {
	h.saveAuthor(ctx, "", "/catalog/author/create")
}

func (h *Handler) authorUpdateForm(ctx *gin.Context) {

	author, err := h.Authors.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		h.fail(ctx, err)
		return
	}

	h.html(ctx, http.StatusOK, "author_form", gin.H{
		"form":   forms.AuthorFormFrom(author),
		"author": author,
		"action": "/catalog/author/" + author.AuthorID + "/update",
	})
}

func (h *Handler) authorUpdate(ctx *gin.Context) {

	author, err := h.Authors.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		h.fail(ctx, err)
		return
	}

	h.saveAuthor(ctx, author.AuthorID, "/catalog/author/"+author.AuthorID+"/update")
}

// saveAuthor creates a new author when authorID is empty and replaces it otherwise.
func (h *Handler) saveAuthor(ctx *gin.Context, authorID, action string) {

	var form forms.AuthorForm

	fieldErrors := forms.Bind(ctx, &form)
	if !fieldErrors.HasErrors() {

		author, conversionErrors := form.Author(authorID)
		fieldErrors = conversionErrors

		if !fieldErrors.HasErrors() {

			var err error
			if authorID == "" {
				author, err = h.Authors.Create(ctx.Request.Context(), author)
			} else {
				err = h.Authors.Replace(ctx.Request.Context(), author)
			}

			if err != nil {
				h.fail(ctx, err)
				return
			}

			ctx.Redirect(http.StatusFound, "/catalog/author/"+author.AuthorID)
			return
		}
	}

	h.html(ctx, http.StatusOK, "author_form", gin.H{
		"form":   form,
		"errors": fieldErrors,
		"action": action,
	})
}

func (h *Handler) authorDeleteForm(ctx *gin.Context) {
	h.renderAuthorDelete(ctx, http.StatusOK, "")
}

func (h *Handler) authorDelete(ctx *gin.Context) {

	err := h.Authors.Delete(ctx.Request.Context(), ctx.Param("id"))
	if errors.ObjectInUseError.IsEqual(err) {
		h.renderAuthorDelete(ctx, http.StatusConflict, "This author cannot be deleted while they still have books.")
		return
	}

	if err != nil {
		h.fail(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, "/catalog/authors")
}

func (h *Handler) renderAuthorDelete(ctx *gin.Context, status int, message string) {

	c := ctx.Request.Context()

	author, err := h.Authors.GetByID(c, ctx.Param("id"))
	if err != nil {
		h.fail(ctx, err)
		return
	}

	books, err := h.Books.ListByAuthor(c, author.AuthorID)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	h.html(ctx, status, "author_delete", gin.H{
		"author": author,
		"books":  books,
		"error":  message,
	})
}

func (h *Handler) bookCreateForm(ctx *gin.Context) {
	h.renderBookForm(ctx, forms.BookForm{}, nil, "/catalog/book/create")
}

func (h *Handler) bookCreate(ctx *gin.Context) {
	h.saveBook(ctx, "", "/catalog/book/create")
}

func (h *Handler) bookUpdateForm(ctx *gin.Context) {

	book, err := h.Books.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		h.fail(ctx, err)
		return
	}

	h.renderBookForm(ctx, forms.BookFormFrom(book), nil, "/catalog/book/"+book.BookID+"/update")
}

func (h *Handler) bookUpdate(ctx *gin.Context) {

	book, err := h.Books.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		h.fail(ctx, err)
		return
	}

	h.saveBook(ctx, book.BookID, "/catalog/book/"+book.BookID+"/update")
}

// saveBook creates a new book when bookID is empty and replaces it otherwise. An
// unknown author or a taken ISBN is reported on the form.
func (h *Handler) saveBook(ctx *gin.Context, bookID, action string) {

	var form forms.BookForm

	fieldErrors := forms.Bind(ctx, &form)
	if fieldErrors.HasErrors() {
		h.renderBookForm(ctx, form, fieldErrors, action)
		return
	}

	book := form.Book(bookID)

	var err error
	if bookID == "" {
		book, err = h.Books.Create(ctx.Request.Context(), book)
	} else {
		err = h.Books.Replace(ctx.Request.Context(), book)
	}

	switch {
	case errors.DataValidationFailedError.IsEqual(err):
		fieldErrors.Add("author_id", "Select a valid author.")
	case errors.DataAlreadyInUsedError.IsEqual(err):
		fieldErrors.Add("isbn", "Book with this ISBN already exists.")
	case err != nil:
		h.fail(ctx, err)
		return
	default:
		ctx.Redirect(http.StatusFound, "/catalog/book/"+book.BookID)
		return
	}

	h.renderBookForm(ctx, form, fieldErrors, action)
}

func (h *Handler) renderBookForm(ctx *gin.Context, form forms.BookForm, fieldErrors forms.FieldErrors, action string) {

	c := ctx.Request.Context()

	authors, err := h.Authors.All(c)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	genres, err := h.Genres.All(c)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	h.html(ctx, http.StatusOK, "book_form", gin.H{
		"form":    form,
		"errors":  fieldErrors,
		"authors": authors,
		"genres":  genres,
		"action":  action,
	})
}

func (h *Handler) bookDeleteForm(ctx *gin.Context) {
	h.renderBookDelete(ctx, http.StatusOK, "")
}

func (h *Handler) bookDelete(ctx *gin.Context) {

	err := h.Books.Delete(ctx.Request.Context(), ctx.Param("id"))
	if errors.ObjectInUseError.IsEqual(err) {
		h.renderBookDelete(ctx, http.StatusConflict, "This book cannot be deleted while copies of it exist.")
		return
	}

	if err != nil {
		h.fail(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, "/catalog/books")
}

func (h *Handler) renderBookDelete(ctx *gin.Context, status int, message string) {

	c := ctx.Request.Context()

	book, err := h.Books.GetByID(c, ctx.Param("id"))
	if err != nil {
		h.fail(ctx, err)
		return
	}

	copies, err := h.Instances.ListByBook(c, book.BookID)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	h.html(ctx, status, "book_delete", gin.H{
		"book":   book,
		"copies": copies,
		"error":  message,
	})
}
