package objects

import "reflect"

type Genre struct {
	GenreID string `json:"genre_id" bson:"genre_id,omitempty"`
	Name    string `json:"name" bson:"name,omitempty"`
}

func (g Genre) GetID() string {
	return g.GenreID
}

func (g Genre) IsNil() bool {
	return reflect.ValueOf(g).IsZero()
}
