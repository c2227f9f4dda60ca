package domain

import "errors"

var ErrDuplicateIdentifier = errors.New("numero already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User is an account holder. PhoneNumber (numero) is the login identifier and
// is unique across all users.
type User struct {
	ID           int64  `json:"id"`
	LastName     string `json:"nom"`
	FirstName    string `json:"prenom"`
	PhoneNumber  string `json:"numero"`
	PasswordHash string `json:"-"`
}
