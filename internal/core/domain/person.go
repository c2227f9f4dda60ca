package domain

import "errors"

var ErrPersonNotFound = errors.New("person not found")
var ErrDuplicateContact = errors.New("telephone already used by another contact")
var ErrUnknownUser = errors.New("owning user does not exist")

// Person is a contact owned by exactly one User. Telephone is unique per owner;
// two users may each hold a contact with the same number.
type Person struct {
	ID        int64  `json:"id"`
	LastName  string `json:"nom"`
	FirstName string `json:"prenom"`
	Telephone string `json:"telephone"`
	UserID    int64  `json:"user_id"`
}
