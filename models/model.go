package models

import (
	serverError "github.com/supakorn-kn/go-library/errors"
)

// Collection names shared between models that reference each other.
const (
	AuthorsCollectionName   = "authors"
	BooksCollectionName     = "books"
	GenresCollectionName    = "genres"
	InstancesCollectionName = "book_instances"
	UsersCollectionName     = "users"
)

const DefaultPaginateSize = 10

type Item interface {
	GetID() string
}

type PaginationData[Data any] struct {
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	Count      int    `json:"count"`
	Data       []Data `json:"data"`
}

func (p PaginationData[Data]) HasPrevious() bool {
	return p.Page > 1
}

func (p PaginationData[Data]) HasNext() bool {
	return p.Page < p.TotalPages
}

func (p PaginationData[Data]) PreviousPage() int {
	return p.Page - 1
}

func (p PaginationData[Data]) NextPage() int {
	return p.Page + 1
}

// NewPaginationData validates page against total and wraps data. Page 1 is always
// valid so an empty listing still renders.
func NewPaginationData[Data any](page, limit, total int, data []Data) (PaginationData[Data], error) {

	if page < 1 {
		return PaginationData[Data]{}, serverError.CurrentPageInvalidError.New()
	}

	totalPages := total / limit
	if total%limit > 0 {
		totalPages++
	}

	if page > 1 && page > totalPages {
		return PaginationData[Data]{}, serverError.PageOutOfRangeError.New(page)
	}

	if data == nil {
		data = []Data{}
	}

	return PaginationData[Data]{
		Page:       page,
		TotalPages: totalPages,
		Count:      total,
		Data:       data,
	}, nil
}

// Paginate slices an in-memory list the same way Search pages a collection.
func Paginate[Data any](items []Data, page, limit int) (PaginationData[Data], error) {

	if page < 1 {
		return PaginationData[Data]{}, serverError.CurrentPageInvalidError.New()
	}

	start := min((page-1)*limit, len(items))
	end := min(start+limit, len(items))

	return NewPaginationData(page, limit, len(items), items[start:end])
}

// ParsePaginateSize reads the optional variadic paginate size given to model constructors.
func ParsePaginateSize(paginateSize []int) (int, error) {

	switch len(paginateSize) {
	case 0:
		return DefaultPaginateSize, nil
	case 1:
		return paginateSize[0], nil
	default:
		return 0, errPaginateSizeLen
	}
}
