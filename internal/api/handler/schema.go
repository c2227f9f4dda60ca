package handler

import "strings"

// errorResponse is the error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Detail string `json:"detail"`
}

// messageResponse acknowledges an operation that returns no resource.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type registerRequest struct {
	Nom        string `json:"nom"          validate:"required,max=100"`
	Prenom     string `json:"prenom"       validate:"required,max=100"`
	Numero     string `json:"numero"       validate:"required,max=20"`
	MotDePasse string `json:"mot_de_passe" validate:"required,bcryptmax"`
}

func (r *registerRequest) normalize() {
	r.Numero = strings.TrimSpace(r.Numero)
}

type loginRequest struct {
	Numero     string `json:"numero"       validate:"required"`
	MotDePasse string `json:"mot_de_passe" validate:"required"`
}

func (r *loginRequest) normalize() {
	r.Numero = strings.TrimSpace(r.Numero)
}

// personRequest is shared by create and update. On update the owner comes
// from the path and UserID is not used.
type personRequest struct {
	Nom       string `json:"nom"       validate:"required,max=100"`
	Prenom    string `json:"prenom"    validate:"required,max=100"`
	Telephone string `json:"telephone" validate:"required,max=20"`
	UserID    int64  `json:"user_id"   validate:"required,gt=0"`
}

// normalize trims the telephone so a blank one fails the required check.
func (r *personRequest) normalize() {
	r.Telephone = strings.TrimSpace(r.Telephone)
}
