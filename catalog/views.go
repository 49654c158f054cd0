package catalog

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/go-library/objects"
)

const numVisitsSessionKey = "num_visits"

func (h *Handler) index(ctx *gin.Context) {

	c := ctx.Request.Context()

	numBooks, err := h.Books.Count(c)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	numBooksContain, err := h.Books.CountTitleContains(c, h.titleKeyword)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	numInstances, err := h.Instances.Count(c)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	numInstancesAvailable, err := h.Instances.CountByStatus(c, objects.AvailableStatus)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	numAuthors, err := h.Authors.Count(c)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	// The page shows the visits made before this one.
	session := sessions.Default(ctx)
	numVisits, _ := session.Get(numVisitsSessionKey).(int)
	session.Set(numVisitsSessionKey, numVisits+1)

	if err := session.Save(); err != nil {
		h.fail(ctx, err)
		return
	}

	h.html(ctx, http.StatusOK, "index", gin.H{
		"num_books":               numBooks,
		"num_books_contain":       numBooksContain,
		"title_keyword":           h.titleKeyword,
		"num_instances":           numInstances,
		"num_instances_available": numInstancesAvailable,
		"num_authors":             numAuthors,
		"num_visits":              numVisits,
	})
}

func (h *Handler) bookList(ctx *gin.Context) {

	page, err := pageQuery(ctx)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	books, err := h.Books.List(ctx.Request.Context(), page)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	authors, err := h.authorsByID(ctx)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	h.html(ctx, http.StatusOK, "book_list", gin.H{
		"page":    books,
		"authors": authors,
	})
}

func (h *Handler) bookDetail(ctx *gin.Context) {

	c := ctx.Request.Context()

	book, err := h.Books.GetByID(c, ctx.Param("id"))
	if err != nil {
		h.fail(ctx, err)
		return
	}

	author, err := h.Authors.GetByID(c, book.AuthorID)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	allGenres, err := h.Genres.All(c)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	var genres []objects.Genre
	for _, genre := range allGenres {

		if book.HasGenre(genre.GenreID) {
			genres = append(genres, genre)
		}
	}

	copies, err := h.Instances.ListByBook(c, book.BookID)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	h.html(ctx, http.StatusOK, "book_detail", gin.H{
		"book":   book,
		"author": author,
		"genres": genres,
		"copies": copies,
		"now":    h.now(),
	})
}

func (h *Handler) authorList(ctx *gin.Context) {

	page, err := pageQuery(ctx)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	authors, err := h.Authors.List(ctx.Request.Context(), page)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	h.html(ctx, http.StatusOK, "author_list", gin.H{"page": authors})
}

func (h *Handler) authorDetail(ctx *gin.Context) {

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

	h.html(ctx, http.StatusOK, "author_detail", gin.H{
		"author": author,
		"books":  books,
	})
}

func (h *Handler) authorsByID(ctx *gin.Context) (map[string]objects.Author, error) {

	authors, err := h.Authors.All(ctx.Request.Context())
	if err != nil {
		return nil, err
	}

	byID := make(map[string]objects.Author, len(authors))
	for _, author := range authors {
		byID[author.AuthorID] = author
	}

	return byID, nil
}
