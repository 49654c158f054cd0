package objects

import (
	"reflect"
	"slices"
)

// CanMarkReturnedPermission is held by librarians.
const CanMarkReturnedPermission = "catalog.can_mark_returned"

type User struct {
	UserID       string   `json:"user_id" bson:"user_id,omitempty"`
	Username     string   `json:"username" bson:"username,omitempty"`
	PasswordHash string   `json:"-" bson:"password_hash,omitempty"`
	Email        string   `json:"email" bson:"email,omitempty"`
	Permissions  []string `json:"permissions" bson:"permissions,omitempty"`
}

func (u User) GetID() string {
	return u.UserID
}

func (u User) IsNil() bool {
	return reflect.ValueOf(u).IsZero()
}

func (u User) HasPermission(permission string) bool {
	return slices.Contains(u.Permissions, permission)
}

func (u User) IsLibrarian() bool {
	return u.HasPermission(CanMarkReturnedPermission)
}
