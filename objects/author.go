package objects

import (
	"fmt"
	"reflect"
	"time"
)

type Author struct {
	AuthorID    string     `json:"author_id" bson:"author_id,omitempty"`
	FirstName   string     `json:"first_name" bson:"first_name,omitempty"`
	LastName    string     `json:"last_name" bson:"last_name,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty" bson:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty" bson:"date_of_death,omitempty"`
}

func (a Author) GetID() string {
	return a.AuthorID
}

func (a Author) IsNil() bool {
	return reflect.ValueOf(a).IsZero()
}

// String renders the author as "Last, First".
func (a Author) String() string {
	return fmt.Sprintf("%s, %s", a.LastName, a.FirstName)
}
