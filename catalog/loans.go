package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/go-library/auth"
	"github.com/supakorn-kn/go-library/errors"
	"github.com/supakorn-kn/go-library/forms"
	"github.com/supakorn-kn/go-library/models"
	"github.com/supakorn-kn/go-library/objects"
)

// loan is one row of the loan lists.
type loan struct {
	Instance objects.BookInstance
	Book     objects.Book
	Borrower objects.User
	Overdue  bool
}

func (h *Handler) myLoans(ctx *gin.Context) {

	user, _ := auth.CurrentUser(ctx)
	h.renderLoans(ctx, "my_loans", user.UserID)
}

func (h *Handler) allLoans(ctx *gin.Context) {
	h.renderLoans(ctx, "all_loans", "")
}

func (h *Handler) renderLoans(ctx *gin.Context, name, borrowerID string) {

	page, err := pageQuery(ctx)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	instances, err := h.Instances.ListOnLoan(ctx.Request.Context(), borrowerID, page)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	loans, err := h.loans(ctx, instances)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	h.html(ctx, http.StatusOK, name, gin.H{"page": loans})
}

func (h *Handler) loans(ctx *gin.Context, instances models.PaginationData[objects.BookInstance]) (models.PaginationData[loan], error) {

	c := ctx.Request.Context()
	now := h.now()

	rows := make([]loan, 0, len(instances.Data))
	for _, instance := range instances.Data {

		book, err := h.Books.GetByID(c, instance.BookID)
		if err != nil {
			return models.PaginationData[loan]{}, err
		}

		row := loan{Instance: instance, Book: book, Overdue: instance.IsOverdue(now)}

		if instance.BorrowerID != "" {

			row.Borrower, err = h.Users.GetByID(c, instance.BorrowerID)
			if err != nil && !errors.ObjectIDNotFoundError.IsEqual(err) {
				return models.PaginationData[loan]{}, err
			}
		}

		rows = append(rows, row)
	}

	return models.PaginationData[loan]{
		Page:       instances.Page,
		TotalPages: instances.TotalPages,
		Count:      instances.Count,
		Data:       rows,
	}, nil
}

func (h *Handler) renewForm(ctx *gin.Context) {
	h.renderRenew(ctx, forms.NewRenewBookForm(h.now()), nil)
}

func (h *Handler) renew(ctx *gin.Context) {

	var form forms.RenewBookForm
	if fieldErrors := forms.Bind(ctx, &form); fieldErrors.HasErrors() {
		h.renderRenew(ctx, form, fieldErrors)
		return
	}

	renewalDate, fieldErrors := form.Clean(h.now())
	if fieldErrors.HasErrors() {
		h.renderRenew(ctx, form, fieldErrors)
		return
	}

	if err := h.Instances.Renew(ctx.Request.Context(), ctx.Param("id"), renewalDate); err != nil {
		h.fail(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, "/catalog/borrowed")
}

func (h *Handler) renderRenew(ctx *gin.Context, form forms.RenewBookForm, fieldErrors forms.FieldErrors) {

	c := ctx.Request.Context()

	instance, err := h.Instances.GetByID(c, ctx.Param("id"))
	if err != nil {
		h.fail(ctx, err)
		return
	}

	book, err := h.Books.GetByID(c, instance.BookID)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	var borrower objects.User
	if instance.BorrowerID != "" {

		borrower, err = h.Users.GetByID(c, instance.BorrowerID)
		if err != nil && !errors.ObjectIDNotFoundError.IsEqual(err) {
			h.fail(ctx, err)
			return
		}
	}

	h.html(ctx, http.StatusOK, "renew", gin.H{
		"form":     form,
		"errors":   fieldErrors,
		"instance": instance,
		"book":     book,
		"borrower": borrower,
	})
}
