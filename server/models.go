package server

import (
	"github.com/supakorn-kn/go-library/apis"
	"github.com/supakorn-kn/go-library/catalog"
	"github.com/supakorn-kn/go-library/models/authors"
	"github.com/supakorn-kn/go-library/models/books"
	"github.com/supakorn-kn/go-library/models/genres"
	"github.com/supakorn-kn/go-library/models/instances"
	"github.com/supakorn-kn/go-library/models/users"
	"github.com/supakorn-kn/go-library/mongodb"
)

// Models holds one model per collection of the library database.
type Models struct {
	Authors   *authors.AuthorsModel
	Books     *books.BooksModel
	Genres    *genres.GenresModel
	Instances *instances.InstancesModel
	Users     *users.UsersModel
}

// NewModels prepares every collection of conn, paginating searches by pageSize.
func NewModels(conn *mongodb.MongoDBConn, pageSize int) (*Models, error) {

	var (
		m   Models
		err error
	)

	if m.Authors, err = authors.NewAuthorsModel(conn, pageSize); err != nil {
		return nil, err
	}

	if m.Books, err = books.NewBooksModel(conn, pageSize); err != nil {
		return nil, err
	}

	if m.Genres, err = genres.NewGenresModel(conn, pageSize); err != nil {
		return nil, err
	}

	if m.Instances, err = instances.NewInstancesModel(conn, pageSize); err != nil {
		return nil, err
	}

	if m.Users, err = users.NewUsersModel(conn, pageSize); err != nil {
		return nil, err
	}

	return &m, nil
}

func (m *Models) CatalogStores() catalog.Stores {

	return catalog.Stores{
		Authors:   m.Authors,
		Books:     m.Books,
		Instances: m.Instances,
		Genres:    m.Genres,
		Users:     m.Users,
	}
}

func (m *Models) APIModels() apis.Models {

	return apis.Models{
		Authors:   m.Authors,
		Books:     m.Books,
		Genres:    m.Genres,
		Instances: m.Instances,
	}
}
