package catalog

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/go-library/auth"
	"github.com/supakorn-kn/go-library/errors"
	"github.com/supakorn-kn/go-library/forms"
	"go.uber.org/zap"
)

const loginFailedMessage = "Your username and password didn't match. Please try again."

func (h *Handler) loginForm(ctx *gin.Context) {

	h.html(ctx, http.StatusOK, "login", gin.H{
		"form": forms.LoginForm{Next: ctx.Query("next")},
	})
}

func (h *Handler) login(ctx *gin.Context) {

	var form forms.LoginForm

	fieldErrors := forms.Bind(ctx, &form)
	if fieldErrors.HasErrors() {
		h.renderLogin(ctx, form, fieldErrors)
		return
	}

	user, err := h.Users.GetByUsername(ctx.Request.Context(), form.Username)
	if err != nil && !errors.ObjectIDNotFoundError.IsEqual(err) {
		h.fail(ctx, err)
		return
	}

	if err != nil || !auth.CheckPassword(user.PasswordHash, form.Password) {
		fieldErrors.Add(forms.NonFieldErrorsKey, loginFailedMessage)
		h.renderLogin(ctx, form, fieldErrors)
		return
	}

	if err := auth.Login(ctx, user); err != nil {
		h.fail(ctx, err)
		return
	}

	h.logger.Info("User signed in", zap.String("username", user.Username))
	ctx.Redirect(http.StatusFound, safeNext(form.Next))
}

func (h *Handler) renderLogin(ctx *gin.Context, form forms.LoginForm, fieldErrors forms.FieldErrors) {

	form.Password = ""
	h.html(ctx, http.StatusOK, "login", gin.H{
		"form":   form,
		"errors": fieldErrors,
	})
}

func (h *Handler) logout(ctx *gin.Context) {

	if err := auth.Logout(ctx); err != nil {
		h.fail(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, "/catalog/")
}

// safeNext only follows redirects within this site.
func safeNext(next string) string {

	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/catalog/"
	}

	return next
}
