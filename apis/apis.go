package apis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/go-library/errors"
	"github.com/supakorn-kn/go-library/models"
)

type CRUDResponse struct {
	Result any              `json:"result,omitempty"`
	Error  errors.BaseError `json:"error,omitempty"`
}

type CrudAPI[Item models.Item] interface {
	Insert(ctx *gin.Context) (*Item, error)
	ReadOne(itemID string, ctx *gin.Context) (*Item, error)
	Read(ctx *gin.Context) (*models.PaginationData[Item], error)
	Update(ctx *gin.Context) error
	Delete(itemID string, ctx *gin.Context) error
}

// Model is the storage side of a CrudAPI. Option is the model's search options,
// which must decode the "current_page" JSON key.
type Model[Item models.Item, Option any] interface {
	Create(ctx context.Context, item Item) (Item, error)
	GetByID(ctx context.Context, itemID string) (Item, error)
	Search(ctx context.Context, opt Option) (models.PaginationData[Item], error)
	Update(ctx context.Context, item Item) error
	Delete(ctx context.Context, itemID string) error
}

// ModelCrudAPI exposes a Model over JSON.
type ModelCrudAPI[Item models.Item, Option any] struct {
	model Model[Item, Option]
}

func NewModelCrudAPI[Item models.Item, Option any](model Model[Item, Option]) *ModelCrudAPI[Item, Option] {
	return &ModelCrudAPI[Item, Option]{model: model}
}

func (api ModelCrudAPI[Item, Option]) Insert(ctx *gin.Context) (*Item, error) {

	var item Item
	if err := bindJSON(ctx, &item); err != nil {
		return nil, err
	}

	created, err := api.model.Create(ctx.Request.Context(), item)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (api ModelCrudAPI[Item, Option]) ReadOne(itemID string, ctx *gin.Context) (*Item, error) {

	item, err := api.model.GetByID(ctx.Request.Context(), itemID)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// Read searches with the JSON body as options. Without a body it lists the page
// given by ?page=, or the first page.
func (api ModelCrudAPI[Item, Option]) Read(ctx *gin.Context) (*models.PaginationData[Item], error) {

	var opt Option

	if ctx.Request.ContentLength > 0 {

		if err := bindJSON(ctx, &opt); err != nil {
			return nil, err
		}

	} else {

		page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
		if err != nil {
			return nil, errors.InvalidPageError.New(ctx.Query("page"))
		}

		if err := json.Unmarshal([]byte(fmt.Sprintf(`{"current_page":%d}`, page)), &opt); err != nil {
			return nil, err
		}
	}

	paginationData, err := api.model.Search(ctx.Request.Context(), opt)
	if err != nil {
		return nil, err
	}

	return &paginationData, nil
}

func (api ModelCrudAPI[Item, Option]) Update(ctx *gin.Context) error {

	var item Item
	if err := bindJSON(ctx, &item); err != nil {
		return err
	}

	if item.GetID() == "" {
		return errors.DataValidationFailedError.New("item ID is required")
	}

	return api.model.Update(ctx.Request.Context(), item)
}

func (api ModelCrudAPI[Item, Option]) Delete(itemID string, ctx *gin.Context) error {
	return api.model.Delete(ctx.Request.Context(), itemID)
}

func bindJSON(ctx *gin.Context, obj any) error {

	if err := ctx.ShouldBindJSON(obj); err != nil {
		return errors.DataValidationFailedError.New(err.Error())
	}

	return nil
}

var OKResponse = CRUDResponse{Result: map[string]any{"status": "OK"}}
