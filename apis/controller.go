package apis

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/go-library/auth"
	"github.com/supakorn-kn/go-library/errors"
	"github.com/supakorn-kn/go-library/models"
	"github.com/supakorn-kn/go-library/models/authors"
	"github.com/supakorn-kn/go-library/models/books"
	"github.com/supakorn-kn/go-library/models/genres"
	"github.com/supakorn-kn/go-library/models/instances"
	"github.com/supakorn-kn/go-library/objects"
)

type Models struct {
	Authors   Model[objects.Author, authors.SearchOptions]
	Books     Model[objects.Book, books.SearchOptions]
	Genres    Model[objects.Genre, genres.SearchOptions]
	Instances Model[objects.BookInstance, instances.SearchOptions]
}

// Register mounts the CRUD APIs of every catalog entity under group. Only librarians
// may use them.
func Register(group *gin.RouterGroup, m Models) {

	group.Use(handleErrors, auth.PermissionRequired(objects.CanMarkReturnedPermission))

	RegisterCrudAPI[objects.Author](NewModelCrudAPI(m.Authors), group.Group("authors"))
	RegisterCrudAPI[objects.Book](NewModelCrudAPI(m.Books), group.Group("books"))
	RegisterCrudAPI[objects.Genre](NewModelCrudAPI(m.Genres), group.Group("genres"))
	RegisterCrudAPI[objects.BookInstance](NewModelCrudAPI(m.Instances), group.Group("instances"))
}

func RegisterCrudAPI[Item models.Item](api CrudAPI[Item], group *gin.RouterGroup) {

	group.POST("", func(ctx *gin.Context) {

		item, err := api.Insert(ctx)
		if err != nil {
			writeErrorJSON(ctx, err)
			return
		}

		ctx.JSON(http.StatusCreated, CRUDResponse{Result: item})
	})

	group.GET(":id", func(ctx *gin.Context) {

		itemID := ctx.Param("id")

		item, err := api.ReadOne(itemID, ctx)
		if err != nil {
			writeErrorJSON(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, CRUDResponse{Result: item})
	})

	group.GET("", func(ctx *gin.Context) {

		paginateResult, err := api.Read(ctx)

		if err != nil {
			writeErrorJSON(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, CRUDResponse{Result: paginateResult})
	})

	group.PUT("", func(ctx *gin.Context) {

		err := api.Update(ctx)
		if err != nil {
			writeErrorJSON(ctx, err)
			return
		}

		ctx.Status(http.StatusNoContent)
	})

	group.DELETE(":id", func(ctx *gin.Context) {

		err := api.Delete(ctx.Param("id"), ctx)
		if err != nil {
			writeErrorJSON(ctx, err)
			return
		}

		ctx.Status(http.StatusNoContent)
	})
}

// handleErrors answers errors left by middlewares that aborted without a body.
func handleErrors(ctx *gin.Context) {

	ctx.Next()

	if len(ctx.Errors) == 0 || ctx.Writer.Written() {
		return
	}

	writeErrorJSON(ctx, ctx.Errors.Last().Err)
}

func writeErrorJSON(ctx *gin.Context, err error) {

	assertedError, ok := errors.TryAssertError(err)
	if !ok {
		ctx.JSON(http.StatusInternalServerError, CRUDResponse{Error: errors.UnknownError.New(err)})
		return
	}

	ctx.JSON(errors.StatusCode(assertedError), CRUDResponse{Error: assertedError})
}
