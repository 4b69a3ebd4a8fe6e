package models

import "time"

// User is a person who can be made responsible for devices or book them.
// Users are immutable once created.
type User struct {
	// ID is the primary key. By convention it is the user's e-mail address;
	// the format is not validated.
	ID string `json:"id" yaml:"id"`

	// Name is the display name shown in listings.
	Name string `json:"name" yaml:"name"`

	// CreatedAt is set by the store when the record is inserted.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// TableName returns the name of the table holding users.
func (u User) TableName() string {
	return "users"
}
